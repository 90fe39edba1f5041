package interp

import (
	"fmt"
	"math"

	"github.com/Radkoski002/jplang/ast"
	"github.com/Radkoski002/jplang/objects"
	"github.com/Radkoski002/jplang/token"
)

// evalExpr evaluates e and returns its Value directly; on failure it
// records the error on i.thrown and returns Null, so every caller that
// continues composing an expression must check i.thrown immediately
// after calling this.
func (i *Interpreter) evalExpr(e ast.Expr) objects.Value {
	switch n := e.(type) {
	case *ast.IntLiteral:
		return objects.Int{Value: n.Value}
	case *ast.FloatLiteral:
		return objects.Float{Value: n.Value}
	case *ast.StringLiteral:
		return objects.String{Value: n.Value}
	case *ast.BoolLiteral:
		return objects.Boolean{Value: n.Value}
	case *ast.NullLiteral:
		return objects.Null{}
	case *ast.Identifier:
		return i.current.GetOrInit(n.Name)
	case *ast.FunctionCall:
		return i.callFunction(n.Name, n.Args, n.Pos())
	case *ast.UnaryExpr:
		return i.evalUnary(n)
	case *ast.TypeCheckExpr:
		return i.evalTypeCheck(n)
	case *ast.BinaryExpr:
		switch n.Op {
		case ast.OpPropertyAccess:
			return i.evalPropertyAccess(n, false)
		case ast.OpOptionalPropertyAccess:
			return i.evalPropertyAccess(n, true)
		default:
			return i.evalBinary(n)
		}
	}
	return objects.Null{}
}

func (i *Interpreter) evalUnary(n *ast.UnaryExpr) objects.Value {
	operand := i.evalExpr(n.Operand)
	if i.thrown != nil {
		return objects.Null{}
	}
	switch n.Op {
	case ast.OpNumericNegation:
		switch v := operand.(type) {
		case objects.Int:
			return objects.Int{Value: -v.Value}
		case objects.Float:
			return objects.Float{Value: -v.Value}
		default:
			i.throwNew(objects.ErrType, "unary '-' requires a numeric operand", n.Pos())
			return objects.Null{}
		}
	case ast.OpBitwiseNegation:
		b, ok := operand.(objects.Boolean)
		if !ok {
			i.throwNew(objects.ErrType, "unary '!' requires a Boolean operand", n.Pos())
			return objects.Null{}
		}
		return objects.Boolean{Value: !b.Value}
	}
	return objects.Null{}
}

func (i *Interpreter) evalTypeCheck(n *ast.TypeCheckExpr) objects.Value {
	v := i.evalExpr(n.Expr)
	if i.thrown != nil {
		return objects.Null{}
	}
	return objects.Boolean{Value: v.TypeTag() == n.TypeName}
}

// evalBinary evaluates both operands unconditionally — the language
// defines no short-circuit evaluation for & or |, both sides always run
// when neither throws.
func (i *Interpreter) evalBinary(n *ast.BinaryExpr) objects.Value {
	left := i.evalExpr(n.Left)
	if i.thrown != nil {
		return objects.Null{}
	}
	right := i.evalExpr(n.Right)
	if i.thrown != nil {
		return objects.Null{}
	}

	switch n.Op {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod:
		return i.evalArithmetic(n.Op, left, right, n.Pos())
	case ast.OpEq:
		return objects.Boolean{Value: objects.Equals(left, right)}
	case ast.OpNotEq:
		return objects.Boolean{Value: !objects.Equals(left, right)}
	case ast.OpGt, ast.OpGtEq, ast.OpLt, ast.OpLtEq:
		return i.evalComparison(n.Op, left, right, n.Pos())
	case ast.OpAnd, ast.OpOr:
		return i.evalBoolean(n.Op, left, right, n.Pos())
	}
	return objects.Null{}
}

func numericValue(v objects.Value) (float64, bool) {
	switch n := v.(type) {
	case objects.Int:
		return float64(n.Value), true
	case objects.Float:
		return n.Value, true
	default:
		return 0, false
	}
}

func isInt(v objects.Value) bool {
	_, ok := v.(objects.Int)
	return ok
}

// evalArithmetic implements +, -, *, /, % over Int/Float operands only —
// Boolean never participates in arithmetic, matching the type-checked
// design the language specifies. An operation between two Ints stays an
// Int; any Float operand promotes the result to Float.
func (i *Interpreter) evalArithmetic(op ast.BinaryOp, left, right objects.Value, pos token.Position) objects.Value {
	lf, lok := numericValue(left)
	rf, rok := numericValue(right)
	if !lok || !rok {
		i.throwNew(objects.ErrType, fmt.Sprintf("operator %q requires numeric operands", op), pos)
		return objects.Null{}
	}
	bothInt := isInt(left) && isInt(right)

	switch op {
	case ast.OpAdd:
		if bothInt {
			return objects.Int{Value: left.(objects.Int).Value + right.(objects.Int).Value}
		}
		return objects.Float{Value: lf + rf}
	case ast.OpSub:
		if bothInt {
			return objects.Int{Value: left.(objects.Int).Value - right.(objects.Int).Value}
		}
		return objects.Float{Value: lf - rf}
	case ast.OpMul:
		if bothInt {
			return objects.Int{Value: left.(objects.Int).Value * right.(objects.Int).Value}
		}
		return objects.Float{Value: lf * rf}
	case ast.OpDiv:
		if rf == 0 {
			i.throwNew(objects.ErrValue, "division by zero", pos)
			return objects.Null{}
		}
		if bothInt {
			return objects.Int{Value: left.(objects.Int).Value / right.(objects.Int).Value}
		}
		return objects.Float{Value: lf / rf}
	case ast.OpMod:
		if rf == 0 {
			i.throwNew(objects.ErrValue, "modulo by zero", pos)
			return objects.Null{}
		}
		if bothInt {
			return objects.Int{Value: left.(objects.Int).Value % right.(objects.Int).Value}
		}
		return objects.Float{Value: math.Mod(lf, rf)}
	}
	return objects.Null{}
}

func (i *Interpreter) evalComparison(op ast.BinaryOp, left, right objects.Value, pos token.Position) objects.Value {
	lf, lok := numericValue(left)
	rf, rok := numericValue(right)
	if !lok || !rok {
		i.throwNew(objects.ErrType, fmt.Sprintf("operator %q requires numeric operands", op), pos)
		return objects.Null{}
	}
	switch op {
	case ast.OpGt:
		return objects.Boolean{Value: lf > rf}
	case ast.OpGtEq:
		return objects.Boolean{Value: lf >= rf}
	case ast.OpLt:
		return objects.Boolean{Value: lf < rf}
	case ast.OpLtEq:
		return objects.Boolean{Value: lf <= rf}
	}
	return objects.Null{}
}

func (i *Interpreter) evalBoolean(op ast.BinaryOp, left, right objects.Value, pos token.Position) objects.Value {
	lb, lok := left.(objects.Boolean)
	rb, rok := right.(objects.Boolean)
	if !lok || !rok {
		i.throwNew(objects.ErrType, fmt.Sprintf("operator %q requires Boolean operands", op), pos)
		return objects.Null{}
	}
	switch op {
	case ast.OpAnd:
		return objects.Boolean{Value: lb.Value && rb.Value}
	case ast.OpOr:
		return objects.Boolean{Value: lb.Value || rb.Value}
	}
	return objects.Null{}
}
