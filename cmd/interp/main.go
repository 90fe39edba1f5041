// Command interp is the entry point: `interp [path]` runs a source file
// (or a built-in demo with no argument), `interp repl` starts an
// interactive session. Flag parsing and subcommand dispatch live in
// cmd/interp/cmd.
package main

import (
	"fmt"
	"os"

	"github.com/Radkoski002/jplang/cmd/interp/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
