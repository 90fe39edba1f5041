package interp_test

import (
	"bufio"
	"strings"
	"testing"

	"github.com/Radkoski002/jplang/errs"
	"github.com/Radkoski002/jplang/interp"
	"github.com/Radkoski002/jplang/lexer"
	"github.com/Radkoski002/jplang/parser"
	"github.com/Radkoski002/jplang/std"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, source string) (string, *errs.Handler) {
	t.Helper()
	handler := errs.New()
	lex := lexer.New(source, handler)
	p := parser.New(lex, handler)
	program := p.Parse()
	require.False(t, handler.HasErrors(), "unexpected lex/parse errors: %v", handler.All())

	var out strings.Builder
	io := &std.IO{Out: &out, In: bufio.NewReader(strings.NewReader(""))}
	it := interp.New(handler, io)
	it.Run(program)
	return out.String(), handler
}

func TestScenario_SimpleArithmeticPrint(t *testing.T) {
	out, h := run(t, `main(){ print(1+2); }`)
	assert.Equal(t, "3", out)
	assert.False(t, h.HasFatal())
}

func TestScenario_ArrayRemoveAt(t *testing.T) {
	out, h := run(t, `main(){ a=Array(3,2,1); a.removeAt(0); print(a); }`)
	assert.Equal(t, "[2, 1]", out)
	assert.False(t, h.HasFatal())
}

func TestScenario_CallByReferenceMutatesCaller(t *testing.T) {
	out, h := run(t, `test(x){ x+=1; } main(){ a=1; test(@a); print(a); }`)
	assert.Equal(t, "2", out)
	assert.False(t, h.HasFatal())
}

func TestScenario_CallByValueLeavesCallerUnchanged(t *testing.T) {
	out, h := run(t, `test(x){ x+=1; } main(){ a=1; test(a); print(a); }`)
	assert.Equal(t, "1", out)
	assert.False(t, h.HasFatal())
}

func TestScenario_ThrowAndCatchByKind(t *testing.T) {
	out, h := run(t, `main(){ try { throw Error("boom"); } catch (Error e) { print(e.message); } }`)
	assert.Equal(t, "boom", out)
	assert.False(t, h.HasFatal())
}

func TestScenario_DivisionByZeroEscapesAsCritical(t *testing.T) {
	_, h := run(t, `main(){ print(1/0); }`)
	require.True(t, h.HasFatal())
	found := false
	for _, d := range h.All() {
		if ce, ok := d.(*errs.CriticalError); ok {
			assert.Equal(t, "ValueError", ce.Value.ErrorKind())
			found = true
		}
	}
	assert.True(t, found, "expected a CriticalError wrapping a ValueError")
}

func TestScenario_UnboundedRecursionOverflows(t *testing.T) {
	_, h := run(t, `rec(){ rec(); } main(){ rec(); }`)
	require.True(t, h.HasFatal())
	found := false
	for _, d := range h.All() {
		if ce, ok := d.(*errs.CriticalError); ok {
			assert.Equal(t, "StackOverflowError", ce.Value.ErrorKind())
			found = true
		}
	}
	assert.True(t, found, "expected a CriticalError wrapping a StackOverflowError")
}

func TestOptionalPropertyAccessNeverRaises(t *testing.T) {
	out, h := run(t, `main(){ s=null; print(s?.name); }`)
	assert.Equal(t, "null", out)
	assert.False(t, h.HasFatal())
}

func TestIsOperatorIsReflexive(t *testing.T) {
	out, h := run(t, `main(){ print(1 is Int); print(1.5 is Float); print("x" is String); print(true is Boolean); print(null is Null); }`)
	assert.Equal(t, "truetruetruetruetrue", out)
	assert.False(t, h.HasFatal())
}

func TestOptionalParameterDefaultsAreUsedWhenOmitted(t *testing.T) {
	out, h := run(t, `greet(name?="world"){ print("hi ", name); } main(){ greet(); greet("there"); }`)
	assert.Equal(t, "hi worldhi there", out)
	assert.False(t, h.HasFatal())
}

func TestForLoopShadowingIteratedVariableNameIsVariableError(t *testing.T) {
	_, h := run(t, `main(){ a=Array(1,2); for (a : a) { print(a); } }`)
	require.True(t, h.HasFatal())
	ce, ok := h.All()[len(h.All())-1].(*errs.CriticalError)
	require.True(t, ok)
	assert.Equal(t, "VariableError", ce.Value.ErrorKind())
}

func TestBreakOutsideLoopIsExpressionError(t *testing.T) {
	_, h := run(t, `main(){ break; }`)
	require.True(t, h.HasFatal())
	ce, ok := h.All()[len(h.All())-1].(*errs.CriticalError)
	require.True(t, ok)
	assert.Equal(t, "ExpressionError", ce.Value.ErrorKind())
}

func TestArithmeticTypeMismatchIsTypeError(t *testing.T) {
	_, h := run(t, `main(){ print(1 + true); }`)
	require.True(t, h.HasFatal())
	ce, ok := h.All()[len(h.All())-1].(*errs.CriticalError)
	require.True(t, ok)
	assert.Equal(t, "TypeError", ce.Value.ErrorKind())
}

func TestNoShortCircuitEvaluatesBothSidesOfAnd(t *testing.T) {
	out, _ := run(t, `side(v){ print(v); return false; } main(){ r = side("L") & side("R"); }`)
	assert.Equal(t, "LR", out)
}

func TestBoundedRecursionReturnsNormally(t *testing.T) {
	out, h := run(t, `countdown(n){ if (n <= 0) { return 0; } print(n); return countdown(n-1); } main(){ countdown(3); }`)
	assert.Equal(t, "321", out)
	assert.False(t, h.HasFatal())
}
