// Package repl implements an interactive Read-Eval-Print Loop. Since
// every script is a set of top-level function definitions run from
// `main`, the REPL accumulates lines into a buffer and only runs the
// pipeline once the user submits it (a blank line, or `.run`), rather
// than evaluating one line at a time.
package repl

import (
	"bufio"
	"io"
	"strings"

	"github.com/Radkoski002/jplang/errs"
	"github.com/Radkoski002/jplang/interp"
	"github.com/Radkoski002/jplang/lexer"
	"github.com/Radkoski002/jplang/parser"
	"github.com/Radkoski002/jplang/std"
	"github.com/chzyer/readline"
	"github.com/fatih/color"
)

// Color definitions for REPL output.
var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl holds the cosmetic configuration for an interactive session.
type Repl struct {
	Banner  string
	Version string
	Author  string
	Line    string
	License string
	Prompt  string

	// HistoryFile, if set, persists line history across sessions via
	// readline's own history file support. Empty means in-memory only.
	HistoryFile string
}

// NewRepl constructs a Repl ready to Start.
func NewRepl(banner, version, author, line, license, prompt string) *Repl {
	return &Repl{Banner: banner, Version: version, Author: author, Line: line, License: license, Prompt: prompt}
}

// PrintBannerInfo prints the startup banner and usage instructions.
func (r *Repl) PrintBannerInfo(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version+" | Author: "+r.Author+" | License: "+r.License)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "Welcome!")
	cyanColor.Fprintf(writer, "%s\n", "Enter one or more function definitions, then a blank line (or '.run') to execute from main()")
	cyanColor.Fprintf(writer, "%s\n", "Type '.exit' to quit")
	cyanColor.Fprintf(writer, "%s\n", "Use up/down arrows to navigate command history")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start begins the REPL main loop, reading from readline and writing
// results and diagnostics to writer.
func (r *Repl) Start(reader io.Reader, writer io.Writer) {
	r.PrintBannerInfo(writer)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:      r.Prompt,
		HistoryFile: r.HistoryFile,
	})
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	var buf strings.Builder

	for {
		line, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("Good Bye!\n"))
			break
		}

		trimmed := strings.TrimRight(line, " \t\r")
		if strings.TrimSpace(trimmed) == ".exit" {
			writer.Write([]byte("Good Bye!\n"))
			break
		}
		if strings.TrimSpace(trimmed) == ".run" || (trimmed == "" && buf.Len() > 0) {
			rl.SaveHistory(".run")
			r.executeWithRecovery(writer, buf.String())
			buf.Reset()
			continue
		}
		if trimmed == "" {
			continue
		}

		rl.SaveHistory(line)
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
}

// executeWithRecovery runs source through the full lexer/parser/interpreter
// pipeline, recovering from any unexpected panic rather than killing the
// session, and prints every accumulated diagnostic to writer.
func (r *Repl) executeWithRecovery(writer io.Writer, source string) {
	defer func() {
		if recovered := recover(); recovered != nil {
			redColor.Fprintf(writer, "[RUNTIME ERROR] %v\n", recovered)
		}
	}()

	handler := errs.New()
	lex := lexer.New(source, handler)
	p := parser.New(lex, handler)
	program := p.Parse()

	if handler.HasErrors() {
		var sb strings.Builder
		handler.Report(&sb)
		redColor.Fprintf(writer, "%s", sb.String())
		return
	}

	io := &std.IO{Out: writer, In: bufio.NewReader(strings.NewReader(""))}
	interpreter := interp.New(handler, io)
	interpreter.Run(program)

	for _, d := range handler.All() {
		if d.Fatal() {
			redColor.Fprintf(writer, "%s\n", d.Error())
		}
	}
	yellowColor.Fprintf(writer, "%s\n", "done")
}
