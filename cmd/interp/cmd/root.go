// Package cmd wires the interp binary's command-line surface with cobra:
// a root command that runs a file (or the built-in demo) plus a repl
// subcommand.
package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/Radkoski002/jplang/config"
	"github.com/Radkoski002/jplang/errs"
	"github.com/Radkoski002/jplang/interp"
	"github.com/Radkoski002/jplang/lexer"
	"github.com/Radkoski002/jplang/parser"
	"github.com/Radkoski002/jplang/std"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// Version information, surfaced by `interp --version` and the REPL banner.
	Version = "v1.0.0"
	Author  = "Radkoski002"
	Licence = "MIT"
	Prompt  = "jplang >>> "
	Line    = "----------------------------------------------------------------"
	Banner  = `
     _       _
    (_)_ __ | | __ _ _ __   __ _
    | | '_ \| |/ _' | '_ \ / _' |
    | | |_) | | (_| | | | | (_| |
    | | .__/|_|\__,_|_| |_|\__, |
    |_|_|                 |___/
`
)

var redColor = color.New(color.FgRed)

// configPath is bound to the persistent --config flag; empty means "use
// the compiled-in defaults".
var configPath string

var rootCmd = &cobra.Command{
	Use:     "interp [path]",
	Short:   "A small curly-brace scripting language interpreter",
	Version: Version,
	Args:    cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		limits, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config %q: %w", configPath, err)
		}
		if len(args) == 1 {
			runFile(args[0], limits)
			return nil
		}
		runSource(demoSource, limits)
		return nil
	},
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("interp {{.Version}} (%s) by %s\n", Licence, Author))
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML file overriding the interpreter's built-in limits")
	rootCmd.AddCommand(replCmd)
}

// Execute runs the root command; the returned error (if any) is already
// formatted for direct printing by main.
func Execute() error {
	return rootCmd.Execute()
}

// demoSource is run when interp is invoked with no path argument.
const demoSource = `
main() {
    greeting = "hello from the demo";
    print(greeting, "\n");

    numbers = Array(1, 2, 3, 4, 5);
    total = 0;
    for (n : numbers) {
        total += n;
    }
    print("sum: ", total, "\n");

    try {
        throw divideByZero();
    } catch (ValueError e) {
        print("caught: ", e.message, "\n");
    }
}

divideByZero() {
    return 1 / 0;
}
`

func runFile(path string, limits config.Limits) {
	content, err := os.ReadFile(path)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[FILE ERROR] could not read %q: %v\n", path, err)
		os.Exit(1)
	}
	runSource(string(content), limits)
}

// runSource drives the full pipeline over source and reports the outcome
// via process exit code: 0 for a clean run (including one where a script
// error was thrown and caught by the script itself), non-zero when
// lexer/parser errors aborted before execution began, or when a script
// error escaped main uncaught.
func runSource(source string, limits config.Limits) {
	handler := errs.New()
	lex := lexer.NewWithLimits(source, handler, limits.MaxIdentifierLength, limits.MaxNumberLength)
	p := parser.New(lex, handler)
	program := p.Parse()

	if handler.HasErrors() {
		var sb strings.Builder
		handler.Report(&sb)
		fmt.Fprint(os.Stderr, sb.String())
		os.Exit(1)
	}

	io := &std.IO{Out: os.Stdout, In: bufio.NewReader(os.Stdin)}
	interpreter := interp.NewWithLimits(handler, io, limits.MaxCallStackSize)
	interpreter.Run(program)

	if handler.HasFatal() {
		for _, d := range handler.All() {
			if d.Fatal() {
				fmt.Fprintln(os.Stdout, d.Error())
			}
		}
		os.Exit(1)
	}
}
