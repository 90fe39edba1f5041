package cmd

import (
	"os"
	"path/filepath"

	"github.com/Radkoski002/jplang/repl"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive read-eval-print session",
	RunE: func(_ *cobra.Command, _ []string) error {
		repler := repl.NewRepl(Banner, Version, Author, Line, Licence, Prompt)
		repler.HistoryFile = historyFilePath()
		repler.Start(os.Stdin, os.Stdout)
		return nil
	},
}

// historyFilePath returns where REPL line history persists across
// sessions, or "" (in-memory only) if the home directory can't be
// resolved.
func historyFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".jplang_history")
}
