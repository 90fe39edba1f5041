// Package std implements the fixed set of built-in callables the
// language exposes: I/O, the Array and Student constructors, the Error
// constructor hierarchy, and the type-cast functions. Every built-in is
// routed through the same call mechanism a user-defined function is, via
// the dispatch table returned by Registry.
package std

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Radkoski002/jplang/objects"
	"github.com/Radkoski002/jplang/token"
)

// IO bundles the host streams built-ins read from and write to.
type IO struct {
	Out io.Writer
	In  *bufio.Reader
}

// Builtin is one callable entry in the built-in dispatch table.
type Builtin struct {
	Name string
	// MinArgs/MaxArgs bound the accepted argument count; MaxArgs < 0
	// means unbounded (Array's constructor).
	MinArgs, MaxArgs int
	Call             func(io *IO, pos token.Position, args []objects.Value) (objects.Value, *objects.ScriptError)
}

func newError(kind, msg string, pos token.Position, args ...objects.Value) *objects.ScriptError {
	return objects.NewScriptError(kind, msg, pos, args...)
}

// Registry returns every built-in callable, keyed by the name scripts
// invoke it under.
func Registry() map[string]*Builtin {
	reg := make(map[string]*Builtin)
	add := func(b *Builtin) { reg[b.Name] = b }

	add(&Builtin{Name: "print", MinArgs: 0, MaxArgs: -1, Call: biPrint})
	add(&Builtin{Name: "inputString", MinArgs: 0, MaxArgs: 0, Call: biInputString})
	add(&Builtin{Name: "inputInt", MinArgs: 0, MaxArgs: 0, Call: biInputInt})
	add(&Builtin{Name: "inputFloat", MinArgs: 0, MaxArgs: 0, Call: biInputFloat})
	add(&Builtin{Name: "Array", MinArgs: 0, MaxArgs: -1, Call: biArray})
	add(&Builtin{Name: "Student", MinArgs: 0, MaxArgs: 3, Call: biStudent})

	for _, kind := range objects.ErrorKinds {
		kind := kind
		add(&Builtin{Name: kind, MinArgs: 1, MaxArgs: -1, Call: func(io *IO, pos token.Position, args []objects.Value) (objects.Value, *objects.ScriptError) {
			return biErrorConstructor(kind, args, pos)
		}})
	}

	add(&Builtin{Name: "Int", MinArgs: 1, MaxArgs: 1, Call: biCastInt})
	add(&Builtin{Name: "Float", MinArgs: 1, MaxArgs: 1, Call: biCastFloat})
	add(&Builtin{Name: "String", MinArgs: 1, MaxArgs: 1, Call: biCastString})
	add(&Builtin{Name: "Boolean", MinArgs: 1, MaxArgs: 1, Call: biCastBoolean})
	add(&Builtin{Name: "Null", MinArgs: 1, MaxArgs: 1, Call: biCastNull})

	return reg
}

func biPrint(io *IO, _ token.Position, args []objects.Value) (objects.Value, *objects.ScriptError) {
	var sb strings.Builder
	for _, a := range args {
		sb.WriteString(a.String())
	}
	fmt.Fprint(io.Out, sb.String())
	return objects.Null{}, nil
}

func biInputString(io *IO, pos token.Position, _ []objects.Value) (objects.Value, *objects.ScriptError) {
	line, err := readLine(io.In)
	if err != nil {
		return nil, newError(objects.ErrValue, "failed to read input", pos)
	}
	return objects.String{Value: line}, nil
}

func biInputInt(io *IO, pos token.Position, _ []objects.Value) (objects.Value, *objects.ScriptError) {
	line, err := readLine(io.In)
	if err != nil {
		return nil, newError(objects.ErrValue, "failed to read input", pos)
	}
	n, perr := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
	if perr != nil {
		return nil, newError(objects.ErrValue, "input is not a valid integer", pos, objects.String{Value: line})
	}
	return objects.Int{Value: n}, nil
}

func biInputFloat(io *IO, pos token.Position, _ []objects.Value) (objects.Value, *objects.ScriptError) {
	line, err := readLine(io.In)
	if err != nil {
		return nil, newError(objects.ErrValue, "failed to read input", pos)
	}
	f, perr := strconv.ParseFloat(strings.TrimSpace(line), 64)
	if perr != nil {
		return nil, newError(objects.ErrValue, "input is not a valid float", pos, objects.String{Value: line})
	}
	return objects.Float{Value: f}, nil
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func biArray(_ *IO, _ token.Position, args []objects.Value) (objects.Value, *objects.ScriptError) {
	return objects.NewArray(args...), nil
}

func biStudent(_ *IO, _ token.Position, args []objects.Value) (objects.Value, *objects.ScriptError) {
	var name, surname, age objects.Value
	if len(args) > 0 {
		name = args[0]
	}
	if len(args) > 1 {
		surname = args[1]
	}
	if len(args) > 2 {
		age = args[2]
	}
	return objects.NewStudent(name, surname, age), nil
}

func biErrorConstructor(kind string, args []objects.Value, pos token.Position) (objects.Value, *objects.ScriptError) {
	message, ok := args[0].(objects.String)
	msgText := ""
	if ok {
		msgText = message.Value
	} else {
		msgText = args[0].String()
	}
	return objects.NewScriptError(kind, msgText, pos, args[1:]...), nil
}

func biCastInt(_ *IO, pos token.Position, args []objects.Value) (objects.Value, *objects.ScriptError) {
	switch v := args[0].(type) {
	case objects.Int:
		return v, nil
	case objects.Float:
		return objects.Int{Value: int64(v.Value)}, nil
	case objects.Boolean:
		if v.Value {
			return objects.Int{Value: 1}, nil
		}
		return objects.Int{Value: 0}, nil
	case objects.String:
		n, err := strconv.ParseInt(strings.TrimSpace(v.Value), 10, 64)
		if err != nil {
			return nil, newError(objects.ErrValue, "cannot convert string to Int", pos, v)
		}
		return objects.Int{Value: n}, nil
	default:
		return nil, newError(objects.ErrType, "cannot convert value to Int", pos, args[0])
	}
}

func biCastFloat(_ *IO, pos token.Position, args []objects.Value) (objects.Value, *objects.ScriptError) {
	switch v := args[0].(type) {
	case objects.Float:
		return v, nil
	case objects.Int:
		return objects.Float{Value: float64(v.Value)}, nil
	case objects.Boolean:
		if v.Value {
			return objects.Float{Value: 1}, nil
		}
		return objects.Float{Value: 0}, nil
	case objects.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Value), 64)
		if err != nil {
			return nil, newError(objects.ErrValue, "cannot convert string to Float", pos, v)
		}
		return objects.Float{Value: f}, nil
	default:
		return nil, newError(objects.ErrType, "cannot convert value to Float", pos, args[0])
	}
}

func biCastString(_ *IO, _ token.Position, args []objects.Value) (objects.Value, *objects.ScriptError) {
	return objects.String{Value: args[0].String()}, nil
}

func biCastBoolean(_ *IO, pos token.Position, args []objects.Value) (objects.Value, *objects.ScriptError) {
	switch v := args[0].(type) {
	case objects.Boolean:
		return v, nil
	case objects.Null:
		return objects.Boolean{Value: false}, nil
	case objects.Int:
		return objects.Boolean{Value: v.Value != 0}, nil
	case objects.Float:
		return objects.Boolean{Value: v.Value != 0}, nil
	case objects.String:
		switch strings.TrimSpace(v.Value) {
		case "true":
			return objects.Boolean{Value: true}, nil
		case "false":
			return objects.Boolean{Value: false}, nil
		default:
			return nil, newError(objects.ErrValue, "cannot convert string to Boolean", pos, v)
		}
	default:
		return nil, newError(objects.ErrType, "cannot convert value to Boolean", pos, args[0])
	}
}

func biCastNull(_ *IO, _ token.Position, _ []objects.Value) (objects.Value, *objects.ScriptError) {
	return objects.Null{}, nil
}
