package interp

import (
	"fmt"

	"github.com/Radkoski002/jplang/ast"
	"github.com/Radkoski002/jplang/objects"
	"github.com/Radkoski002/jplang/scope"
	"github.com/Radkoski002/jplang/std"
	"github.com/Radkoski002/jplang/token"
)

// callFunction resolves name against the built-in registry first, then
// user-defined functions, so both kinds share one dispatch mechanism.
func (i *Interpreter) callFunction(name string, argNodes []*ast.Argument, pos token.Position) objects.Value {
	if b, ok := i.builtins[name]; ok {
		return i.callBuiltin(b, argNodes, pos)
	}
	fn, ok := i.program.Functions[name]
	if !ok {
		i.throwNew(objects.ErrFunction, fmt.Sprintf("undefined function %q", name), pos)
		return objects.Null{}
	}
	return i.callUserFunction(fn, argNodes, pos)
}

func (i *Interpreter) callBuiltin(b *std.Builtin, argNodes []*ast.Argument, pos token.Position) objects.Value {
	args := make([]objects.Value, 0, len(argNodes))
	for _, a := range argNodes {
		v := i.evalExpr(a.Value)
		if i.thrown != nil {
			return objects.Null{}
		}
		args = append(args, v)
	}
	if len(args) < b.MinArgs || (b.MaxArgs >= 0 && len(args) > b.MaxArgs) {
		i.throwNew(objects.ErrArgument, fmt.Sprintf("%q expects between %d and %d arguments, got %d", b.Name, b.MinArgs, b.MaxArgs, len(args)), pos)
		return objects.Null{}
	}
	result, scriptErr := b.Call(i.io, pos, args)
	if scriptErr != nil {
		i.thrown = scriptErr
		return objects.Null{}
	}
	return result
}

// callUserFunction implements the language's function-call protocol:
// left-to-right argument evaluation, a bounded call stack, parameter
// binding with optional defaults evaluated in the caller's scope, and
// call-by-reference resolution of `@`-marked arguments back into the
// caller's scope on return.
func (i *Interpreter) callUserFunction(fn *ast.FunctionDef, argNodes []*ast.Argument, pos token.Position) objects.Value {
	if len(argNodes) > len(fn.Parameters) {
		i.throwNew(objects.ErrArgument, fmt.Sprintf("function %q takes at most %d argument(s), got %d", fn.Name, len(fn.Parameters), len(argNodes)), pos)
		return objects.Null{}
	}

	evaluated := make([]objects.Value, len(argNodes))
	refNames := make([]string, len(argNodes))
	for idx, argNode := range argNodes {
		v := i.evalExpr(argNode.Value)
		if i.thrown != nil {
			return objects.Null{}
		}
		evaluated[idx] = v
		if argNode.IsReference {
			if id, ok := argNode.Value.(*ast.Identifier); ok {
				refNames[idx] = id.Name
			}
		}
	}

	if len(i.callStack) >= i.maxCallStack {
		i.throwNew(objects.ErrStackOverflow, fmt.Sprintf("call stack exceeded %d frames calling %q", i.maxCallStack, fn.Name), pos)
		return objects.Null{}
	}

	caller := i.current
	callee := scope.New()

	for idx, param := range fn.Parameters {
		if idx < len(argNodes) {
			val := evaluated[idx]
			if refNames[idx] != "" {
				callee.BindParam(param.Name, val)
				callee.MarkReference(param.Name, refNames[idx])
			} else {
				callee.BindParam(param.Name, objects.Clone(val))
			}
			continue
		}
		if !param.IsOptional {
			i.throwNew(objects.ErrArgument, fmt.Sprintf("missing required parameter %q in call to %q", param.Name, fn.Name), pos)
			return objects.Null{}
		}
		var def objects.Value = objects.Null{}
		if param.Default != nil {
			def = i.evalExpr(param.Default)
			if i.thrown != nil {
				return objects.Null{}
			}
		}
		callee.BindParam(param.Name, objects.Clone(def))
	}

	i.callStack = append(i.callStack, caller)
	i.current = callee

	i.execBlock(fn.Block)

	result := objects.Value(objects.Null{})
	if i.returnCalled {
		result = i.returnValue
	}
	i.returnCalled = false
	i.returnValue = nil

	refs := callee.References()
	i.callStack = i.callStack[:len(i.callStack)-1]
	i.current = caller
	for localName, callerVar := range refs {
		if finalVal, ok := callee.Lookup(localName); ok {
			i.current.Set(callerVar, finalVal)
		}
	}

	if i.thrown != nil {
		return objects.Null{}
	}
	return result
}
