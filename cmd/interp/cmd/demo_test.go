package cmd

import (
	"bufio"
	"strings"
	"testing"

	"github.com/Radkoski002/jplang/config"
	"github.com/Radkoski002/jplang/errs"
	"github.com/Radkoski002/jplang/interp"
	"github.com/Radkoski002/jplang/lexer"
	"github.com/Radkoski002/jplang/parser"
	"github.com/Radkoski002/jplang/std"
	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"
)

// TestDemoSourceOutput pins the built-in demo program's stdout via
// snapshot testing, so a change in its observable behavior shows up as a
// diff against the committed snapshot rather than silent drift.
func TestDemoSourceOutput(t *testing.T) {
	limits := config.Default()
	handler := errs.New()
	lex := lexer.NewWithLimits(demoSource, handler, limits.MaxIdentifierLength, limits.MaxNumberLength)
	p := parser.New(lex, handler)
	program := p.Parse()
	require.False(t, handler.HasErrors())

	var out strings.Builder
	io := &std.IO{Out: &out, In: bufio.NewReader(strings.NewReader(""))}
	interp.NewWithLimits(handler, io, limits.MaxCallStackSize).Run(program)
	require.False(t, handler.HasFatal())

	snaps.MatchSnapshot(t, out.String())
}
