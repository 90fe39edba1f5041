package std_test

import (
	"bufio"
	"strings"
	"testing"

	"github.com/Radkoski002/jplang/objects"
	"github.com/Radkoski002/jplang/std"
	"github.com/Radkoski002/jplang/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIO(input string) (*std.IO, *strings.Builder) {
	var out strings.Builder
	return &std.IO{Out: &out, In: bufio.NewReader(strings.NewReader(input))}, &out
}

var pos = token.Position{Line: 1, Column: 1}

func TestPrint_NoSeparatorNoNewline(t *testing.T) {
	io, out := newIO("")
	reg := std.Registry()
	_, err := reg["print"].Call(io, pos, []objects.Value{objects.Int{Value: 1}, objects.String{Value: "x"}})
	require.Nil(t, err)
	assert.Equal(t, "1x", out.String())
}

func TestInputInt_ParsesOneLine(t *testing.T) {
	io, _ := newIO("42\n")
	reg := std.Registry()
	v, err := reg["inputInt"].Call(io, pos, nil)
	require.Nil(t, err)
	assert.Equal(t, objects.Int{Value: 42}, v)
}

func TestInputInt_InvalidLineIsValueError(t *testing.T) {
	io, _ := newIO("nope\n")
	reg := std.Registry()
	_, err := reg["inputInt"].Call(io, pos, nil)
	require.NotNil(t, err)
	assert.Equal(t, objects.ErrValue, err.Kind)
}

func TestArrayConstructor_WrapsArguments(t *testing.T) {
	io, _ := newIO("")
	reg := std.Registry()
	v, err := reg["Array"].Call(io, pos, []objects.Value{objects.Int{Value: 1}, objects.Int{Value: 2}})
	require.Nil(t, err)
	arr := v.(*objects.Array)
	assert.Equal(t, 2, arr.Size())
}

func TestStudentConstructor_DefaultsMissingArgsToNull(t *testing.T) {
	io, _ := newIO("")
	reg := std.Registry()
	v, err := reg["Student"].Call(io, pos, []objects.Value{objects.String{Value: "Ada"}})
	require.Nil(t, err)
	s := v.(*objects.Student)
	assert.Equal(t, objects.String{Value: "Ada"}, s.Name)
	assert.Equal(t, objects.Null{}, s.Surname)
	assert.Equal(t, objects.Null{}, s.Age)
}

func TestErrorConstructors_BuildScriptErrorOfMatchingKind(t *testing.T) {
	io, _ := newIO("")
	reg := std.Registry()
	v, err := reg["TypeError"].Call(io, pos, []objects.Value{objects.String{Value: "bad"}})
	require.Nil(t, err)
	se := v.(*objects.ScriptError)
	assert.Equal(t, objects.ErrType, se.Kind)
	assert.Equal(t, "bad", se.Message)
}

func TestCastInt_FromString(t *testing.T) {
	io, _ := newIO("")
	reg := std.Registry()
	v, err := reg["Int"].Call(io, pos, []objects.Value{objects.String{Value: "7"}})
	require.Nil(t, err)
	assert.Equal(t, objects.Int{Value: 7}, v)
}

func TestCastInt_FromUnparsableStringIsValueError(t *testing.T) {
	io, _ := newIO("")
	reg := std.Registry()
	_, err := reg["Int"].Call(io, pos, []objects.Value{objects.String{Value: "abc"}})
	require.NotNil(t, err)
	assert.Equal(t, objects.ErrValue, err.Kind)
}

func TestCastInt_FromArrayIsTypeError(t *testing.T) {
	io, _ := newIO("")
	reg := std.Registry()
	_, err := reg["Int"].Call(io, pos, []objects.Value{objects.NewArray()})
	require.NotNil(t, err)
	assert.Equal(t, objects.ErrType, err.Kind)
}

func TestCastBoolean_OnlyAcceptsTrueFalseLiterals(t *testing.T) {
	io, _ := newIO("")
	reg := std.Registry()
	v, err := reg["Boolean"].Call(io, pos, []objects.Value{objects.String{Value: "true"}})
	require.Nil(t, err)
	assert.Equal(t, objects.Boolean{Value: true}, v)

	_, err = reg["Boolean"].Call(io, pos, []objects.Value{objects.String{Value: "yes"}})
	require.NotNil(t, err)
	assert.Equal(t, objects.ErrValue, err.Kind)
}

func TestCastNull_AlwaysReturnsNull(t *testing.T) {
	io, _ := newIO("")
	reg := std.Registry()
	v, err := reg["Null"].Call(io, pos, []objects.Value{objects.Int{Value: 123}})
	require.Nil(t, err)
	assert.Equal(t, objects.Null{}, v)
}
