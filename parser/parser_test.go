package parser_test

import (
	"testing"

	"github.com/Radkoski002/jplang/ast"
	"github.com/Radkoski002/jplang/errs"
	"github.com/Radkoski002/jplang/lexer"
	"github.com/Radkoski002/jplang/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) (*ast.Program, *errs.Handler) {
	t.Helper()
	h := errs.New()
	p := parser.New(lexer.New(src, h), h)
	return p.Parse(), h
}

func TestParse_FunctionWithParametersAndBlock(t *testing.T) {
	prog, h := parse(t, `add(a, b) { return a + b; }`)
	require.False(t, h.HasErrors())
	fn, ok := prog.Functions["add"]
	require.True(t, ok)
	require.Len(t, fn.Parameters, 2)
	assert.Equal(t, "a", fn.Parameters[0].Name)
	assert.False(t, fn.Parameters[0].IsOptional)
	require.Len(t, fn.Block.Statements, 1)
	_, isReturn := fn.Block.Statements[0].(*ast.ReturnStmt)
	assert.True(t, isReturn)
}

func TestParse_OptionalParameterWithDefault(t *testing.T) {
	prog, h := parse(t, `greet(name?="world") { print(name); }`)
	require.False(t, h.HasErrors())
	fn := prog.Functions["greet"]
	require.Len(t, fn.Parameters, 1)
	assert.True(t, fn.Parameters[0].IsOptional)
	lit, ok := fn.Parameters[0].Default.(*ast.StringLiteral)
	require.True(t, ok)
	assert.Equal(t, "world", lit.Value)
}

func TestParse_DuplicateFunctionNameIsRecorded(t *testing.T) {
	_, h := parse(t, `f(){} f(){}`)
	require.True(t, h.HasErrors())
	found := false
	for _, d := range h.All() {
		if pe, ok := d.(*errs.ParserError); ok && pe.Kind == errs.FunctionAlreadyExists {
			found = true
		}
	}
	assert.True(t, found)
}

func TestParse_DuplicateParameterNameIsRecorded(t *testing.T) {
	_, h := parse(t, `f(a, a){}`)
	require.True(t, h.HasErrors())
	found := false
	for _, d := range h.All() {
		if pe, ok := d.(*errs.ParserError); ok && pe.Kind == errs.ParameterAlreadyExists {
			found = true
		}
	}
	assert.True(t, found)
}

func TestParse_MissingClosingParenRecoversWithPlaceholder(t *testing.T) {
	prog, h := parse(t, `f(a { return a; }`)
	require.True(t, h.HasErrors())
	require.Contains(t, prog.Functions, "f")
}

func TestParse_ReferenceArgumentMarksIsReference(t *testing.T) {
	prog, h := parse(t, `f(){ g(@x); } g(y){}`)
	require.False(t, h.HasErrors())
	stmt := prog.Functions["f"].Block.Statements[0].(*ast.ExprStmt)
	call := stmt.Expr.(*ast.FunctionCall)
	require.Len(t, call.Args, 1)
	assert.True(t, call.Args[0].IsReference)
}

func TestParse_PropertyAccessChainIsLeftAssociative(t *testing.T) {
	prog, h := parse(t, `f(){ a.b.c; }`)
	require.False(t, h.HasErrors())
	stmt := prog.Functions["f"].Block.Statements[0].(*ast.ExprStmt)
	outer := stmt.Expr.(*ast.BinaryExpr)
	assert.Equal(t, ast.OpPropertyAccess, outer.Op)
	inner, ok := outer.Left.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpPropertyAccess, inner.Op)
}

func TestParse_UnaryNegationSwallowsFullExpression(t *testing.T) {
	// unary := ("!"|"-") expr | typeCheck — the operand is the full
	// expression production, so `-1+2` parses as `-(1+2)`, not `(-1)+2`.
	prog, h := parse(t, `f(){ -1+2; }`)
	require.False(t, h.HasErrors())
	stmt := prog.Functions["f"].Block.Statements[0].(*ast.ExprStmt)
	unary, ok := stmt.Expr.(*ast.UnaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpNumericNegation, unary.Op)
	_, operandIsBinary := unary.Operand.(*ast.BinaryExpr)
	assert.True(t, operandIsBinary)
}

func TestParse_CatchClauseWithMultipleErrorTypes(t *testing.T) {
	prog, h := parse(t, `f(){ try { g(); } catch (TypeError | ValueError e) { print(e); } }`)
	require.False(t, h.HasErrors())
	stmt := prog.Functions["f"].Block.Statements[0].(*ast.TryCatchStmt)
	require.Len(t, stmt.Catches, 1)
	assert.Equal(t, []string{"TypeError", "ValueError"}, stmt.Catches[0].ErrorTypes)
	assert.Equal(t, "e", stmt.Catches[0].ErrorVar)
}

func TestParse_TryWithoutCatchIsRecorded(t *testing.T) {
	_, h := parse(t, `f(){ try { g(); } }`)
	require.True(t, h.HasErrors())
	found := false
	for _, d := range h.All() {
		if pe, ok := d.(*errs.ParserError); ok && pe.Kind == errs.MissingCatchKeyword {
			found = true
		}
	}
	assert.True(t, found)
}

func TestParse_IsDeterministic(t *testing.T) {
	src := `f(a, b?=1) { if (a > b) { return a; } elif (a == b) { return 0; } else { return b; } }`
	prog1, h1 := parse(t, src)
	prog2, h2 := parse(t, src)
	require.False(t, h1.HasErrors())
	require.False(t, h2.HasErrors())
	assert.Equal(t, prog1, prog2)
}
