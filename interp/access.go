package interp

import (
	"fmt"

	"github.com/Radkoski002/jplang/ast"
	"github.com/Radkoski002/jplang/objects"
	"github.com/Radkoski002/jplang/token"
)

// evalPropertyAccess evaluates a `.`/`?.` chain link. With the optional
// (`?.`) form, a Null receiver short-circuits to Null instead of raising
// PropertyError, and a PropertyError raised by the lookup itself is
// swallowed into Null rather than propagated.
func (i *Interpreter) evalPropertyAccess(n *ast.BinaryExpr, optional bool) objects.Value {
	obj := i.evalExpr(n.Left)
	if i.thrown != nil {
		return objects.Null{}
	}
	if _, isNull := obj.(objects.Null); isNull && optional {
		return objects.Null{}
	}

	val, propErr := i.accessMember(obj, n.Right)
	if propErr != nil {
		if optional {
			return objects.Null{}
		}
		i.thrown = propErr
		return objects.Null{}
	}
	return val
}

func (i *Interpreter) accessMember(obj objects.Value, member ast.Expr) (objects.Value, *objects.ScriptError) {
	switch m := member.(type) {
	case *ast.Identifier:
		return i.getField(obj, m.Name, m.Pos())
	case *ast.FunctionCall:
		return i.callMethod(obj, m, m.Pos())
	}
	return nil, objects.NewScriptError(objects.ErrProperty, "invalid property access", member.Pos())
}

// getField reads a named field off Student or ScriptError — the only two
// kinds with host-visible fields; everything else (including Array,
// whose surface is methods-only) raises PropertyError.
func (i *Interpreter) getField(obj objects.Value, name string, pos token.Position) (objects.Value, *objects.ScriptError) {
	switch v := obj.(type) {
	case *objects.Student:
		switch name {
		case "name":
			return v.Name, nil
		case "surname":
			return v.Surname, nil
		case "age":
			return v.Age, nil
		}
	case *objects.ScriptError:
		switch name {
		case "message":
			return objects.String{Value: v.Message}, nil
		case "args":
			return v.Args, nil
		case "position":
			return objects.String{Value: v.Position.String()}, nil
		}
	}
	return nil, objects.NewScriptError(objects.ErrProperty, fmt.Sprintf("no field %q on %s", name, obj.TypeTag()), pos)
}

// setField writes a named field; used only by one-level property
// assignment. Position and args on a ScriptError, and the lookup-only
// `is` tag of any value, are not writable targets.
func (i *Interpreter) setField(obj objects.Value, name string, value objects.Value) bool {
	switch v := obj.(type) {
	case *objects.Student:
		switch name {
		case "name":
			v.Name = value
			return true
		case "surname":
			v.Surname = value
			return true
		case "age":
			v.Age = value
			return true
		}
	case *objects.ScriptError:
		if name == "message" {
			if s, ok := value.(objects.String); ok {
				v.Message = s.Value
				return true
			}
		}
	}
	return false
}

func (i *Interpreter) callMethod(obj objects.Value, call *ast.FunctionCall, pos token.Position) (objects.Value, *objects.ScriptError) {
	args := make([]objects.Value, 0, len(call.Args))
	for _, a := range call.Args {
		v := i.evalExpr(a.Value)
		if i.thrown != nil {
			err := i.thrown
			i.thrown = nil
			return nil, err
		}
		args = append(args, v)
	}
	if arr, ok := obj.(*objects.Array); ok {
		return i.callArrayMethod(arr, call.Name, args, pos)
	}
	return nil, objects.NewScriptError(objects.ErrProperty, fmt.Sprintf("no method %q on %s", call.Name, obj.TypeTag()), pos)
}

func intArg(args []objects.Value, idx int) (int64, bool) {
	if idx >= len(args) {
		return 0, false
	}
	n, ok := args[idx].(objects.Int)
	if !ok {
		return 0, false
	}
	return n.Value, true
}

// callArrayMethod implements the Array value's fixed method surface.
func (i *Interpreter) callArrayMethod(arr *objects.Array, name string, args []objects.Value, pos token.Position) (objects.Value, *objects.ScriptError) {
	switch name {
	case "add":
		if len(args) != 1 {
			return nil, objects.NewScriptError(objects.ErrArgument, "add expects 1 argument", pos)
		}
		arr.Add(args[0])
		return objects.Null{}, nil
	case "remove":
		if len(args) != 1 {
			return nil, objects.NewScriptError(objects.ErrArgument, "remove expects 1 argument", pos)
		}
		arr.Remove(args[0])
		return objects.Null{}, nil
	case "removeAt":
		idx, ok := intArg(args, 0)
		if !ok {
			return nil, objects.NewScriptError(objects.ErrArgument, "removeAt expects an Int index", pos)
		}
		if !arr.RemoveAt(int(idx)) {
			return nil, objects.NewScriptError(objects.ErrProperty, "index out of range", pos)
		}
		return objects.Null{}, nil
	case "clear":
		arr.Clear()
		return objects.Null{}, nil
	case "get":
		idx, ok := intArg(args, 0)
		if !ok {
			return nil, objects.NewScriptError(objects.ErrArgument, "get expects an Int index", pos)
		}
		v, found := arr.Get(int(idx))
		if !found {
			return nil, objects.NewScriptError(objects.ErrProperty, "index out of range", pos)
		}
		return v, nil
	case "set":
		idx, ok := intArg(args, 0)
		if !ok || len(args) < 2 {
			return nil, objects.NewScriptError(objects.ErrArgument, "set expects an Int index and a value", pos)
		}
		if !arr.Set(int(idx), args[1]) {
			return nil, objects.NewScriptError(objects.ErrProperty, "index out of range", pos)
		}
		return objects.Null{}, nil
	case "size":
		return objects.Int{Value: int64(arr.Size())}, nil
	case "contains":
		if len(args) != 1 {
			return nil, objects.NewScriptError(objects.ErrArgument, "contains expects 1 argument", pos)
		}
		return objects.Boolean{Value: arr.Contains(args[0])}, nil
	case "indexOf":
		if len(args) != 1 {
			return nil, objects.NewScriptError(objects.ErrArgument, "indexOf expects 1 argument", pos)
		}
		return objects.Int{Value: int64(arr.IndexOf(args[0]))}, nil
	}
	return nil, objects.NewScriptError(objects.ErrProperty, fmt.Sprintf("no method %q on Array", name), pos)
}

// execAssign handles plain identifier assignment and one-level property
// assignment (`a.b = x`); anything deeper (`a.b.c = x`) is rejected with
// PropertyError rather than silently traversed.
func (i *Interpreter) execAssign(n *ast.AssignStmt) {
	value := i.evalExpr(n.Value)
	if i.thrown != nil {
		return
	}

	switch target := n.Target.(type) {
	case *ast.Identifier:
		i.assignIdentifier(target.Name, n.Op, value, n.Pos())
	case *ast.BinaryExpr:
		if target.Op != ast.OpPropertyAccess && target.Op != ast.OpOptionalPropertyAccess {
			i.throwNew(objects.ErrProperty, "invalid assignment target", n.Pos())
			return
		}
		if _, deeper := target.Left.(*ast.BinaryExpr); deeper {
			i.throwNew(objects.ErrProperty, "only one level of property assignment is supported", n.Pos())
			return
		}
		fieldIdent, ok := target.Right.(*ast.Identifier)
		if !ok {
			i.throwNew(objects.ErrProperty, "assignment target must name a field", n.Pos())
			return
		}
		obj := i.evalExpr(target.Left)
		if i.thrown != nil {
			return
		}
		i.assignField(obj, fieldIdent.Name, n.Op, value, n.Pos())
	default:
		i.throwNew(objects.ErrProperty, "invalid assignment target", n.Pos())
	}
}

func (i *Interpreter) assignIdentifier(name string, op ast.AssignOp, value objects.Value, pos token.Position) {
	if op == ast.OpAssign {
		i.current.Set(name, objects.Clone(value))
		return
	}
	current := i.current.GetOrInit(name)
	result := i.applyCompound(op, current, value, pos)
	if i.thrown != nil {
		return
	}
	i.current.Set(name, result)
}

func (i *Interpreter) assignField(obj objects.Value, name string, op ast.AssignOp, value objects.Value, pos token.Position) {
	if op != ast.OpAssign {
		current, fieldErr := i.getField(obj, name, pos)
		if fieldErr != nil {
			i.thrown = fieldErr
			return
		}
		value = i.applyCompound(op, current, value, pos)
		if i.thrown != nil {
			return
		}
	}
	if !i.setField(obj, name, objects.Clone(value)) {
		i.throwNew(objects.ErrProperty, fmt.Sprintf("no writable field %q on %s", name, obj.TypeTag()), pos)
	}
}

var compoundToBinary = map[ast.AssignOp]ast.BinaryOp{
	ast.OpAddAssign:     ast.OpAdd,
	ast.OpSubAssign:     ast.OpSub,
	ast.OpMulAssign:     ast.OpMul,
	ast.OpDivAssign:     ast.OpDiv,
	ast.OpPercentAssign: ast.OpMod,
}

func (i *Interpreter) applyCompound(op ast.AssignOp, current, value objects.Value, pos token.Position) objects.Value {
	binOp, ok := compoundToBinary[op]
	if !ok {
		i.throwNew(objects.ErrType, "unknown compound assignment operator", pos)
		return objects.Null{}
	}
	return i.evalArithmetic(binOp, current, value, pos)
}
