// Package interp implements the tree-walking interpreter: the single
// component that actually runs a parsed Program. It evaluates expressions
// directly into Values (the "result rendezvous slot" the language was
// originally specified with collapses into ordinary Go return values),
// while statements still communicate through the explicit control-flow
// flags break/continue/return/error_thrown.
package interp

import (
	"github.com/Radkoski002/jplang/ast"
	"github.com/Radkoski002/jplang/errs"
	"github.com/Radkoski002/jplang/objects"
	"github.com/Radkoski002/jplang/scope"
	"github.com/Radkoski002/jplang/std"
	"github.com/Radkoski002/jplang/token"
)

// MaxCallStackSize bounds the depth of user function calls; exceeding it
// raises StackOverflowError.
const MaxCallStackSize = 100

// Interpreter walks a Program's AST to completion. Each run is
// single-use: construct a fresh one per Program execution.
type Interpreter struct {
	handler  *errs.Handler
	builtins map[string]*std.Builtin
	io       *std.IO

	program   *ast.Program
	current   *scope.FunctionScope
	callStack []*scope.FunctionScope

	maxCallStack int

	thrown       *objects.ScriptError
	returnCalled bool
	returnValue  objects.Value
	breakCalled  bool
	continueCalled bool
}

// New returns an Interpreter that reports to handler and performs I/O
// through io, using the default MaxCallStackSize bound.
func New(handler *errs.Handler, io *std.IO) *Interpreter {
	return NewWithLimits(handler, io, MaxCallStackSize)
}

// NewWithLimits is New with the call-stack depth bound overridden, for
// hosts that load it from a config file.
func NewWithLimits(handler *errs.Handler, io *std.IO, maxCallStack int) *Interpreter {
	return &Interpreter{
		handler:      handler,
		builtins:     std.Registry(),
		io:           io,
		maxCallStack: maxCallStack,
	}
}

// Run executes program starting at its zero-argument `main`. If main is
// missing, or a script error escapes it uncaught, the failure is filed on
// the handler as a critical error and Run returns.
func (i *Interpreter) Run(program *ast.Program) {
	i.program = program

	main, ok := program.Functions["main"]
	if !ok {
		i.handler.Add(&errs.CriticalError{Value: objects.NewScriptError(
			objects.ErrFunction, "program has no main function", token.Position{Line: 1, Column: 1},
		)})
		return
	}
	if len(main.Parameters) != 0 {
		i.handler.Add(&errs.CriticalError{Value: objects.NewScriptError(
			objects.ErrFunction, "main must take zero parameters", main.Pos(),
		)})
		return
	}

	i.current = scope.New()
	i.execBlock(main.Block)

	if i.thrown != nil {
		i.handler.Add(&errs.CriticalError{Value: i.thrown})
	}
}

func (i *Interpreter) throwNew(kind, message string, pos token.Position, args ...objects.Value) {
	i.thrown = objects.NewScriptError(kind, message, pos, args...)
}
