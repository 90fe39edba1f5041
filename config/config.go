// Package config loads the interpreter's tunable limits (identifier
// length, numeric literal length, call-stack depth) from an optional YAML
// file, falling back to the compiled-in defaults for anything the file
// omits or when no file is given.
package config

import (
	"os"

	"github.com/Radkoski002/jplang/interp"
	"github.com/Radkoski002/jplang/lexer"
	"github.com/goccy/go-yaml"
)

// Limits bundles the three compile-time constants the lexer and
// interpreter fix by default, so a host can override them without
// recompiling.
type Limits struct {
	MaxIdentifierLength int `yaml:"maxIdentifierLength"`
	MaxNumberLength     int `yaml:"maxNumberLength"`
	MaxCallStackSize    int `yaml:"maxCallStackSize"`
}

// Default returns the interpreter's built-in limits.
func Default() Limits {
	return Limits{
		MaxIdentifierLength: lexer.MaxIdentifierLength,
		MaxNumberLength:     lexer.MaxNumberLength,
		MaxCallStackSize:    interp.MaxCallStackSize,
	}
}

// Load reads path as YAML and overlays it onto Default(); a zero field in
// the file leaves the default in place. A missing path is not an error:
// Load silently returns the defaults so --config is always optional.
func Load(path string) (Limits, error) {
	limits := Default()
	if path == "" {
		return limits, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return limits, nil
		}
		return limits, err
	}

	var override Limits
	if err := yaml.Unmarshal(data, &override); err != nil {
		return limits, err
	}

	if override.MaxIdentifierLength > 0 {
		limits.MaxIdentifierLength = override.MaxIdentifierLength
	}
	if override.MaxNumberLength > 0 {
		limits.MaxNumberLength = override.MaxNumberLength
	}
	if override.MaxCallStackSize > 0 {
		limits.MaxCallStackSize = override.MaxCallStackSize
	}
	return limits, nil
}
