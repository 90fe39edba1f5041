package objects_test

import (
	"testing"

	"github.com/Radkoski002/jplang/objects"
	"github.com/Radkoski002/jplang/token"
	"github.com/stretchr/testify/assert"
)

func TestEquals_DifferentTagsAreNeverEqual(t *testing.T) {
	assert.False(t, objects.Equals(objects.Int{Value: 1}, objects.Float{Value: 1}))
	assert.False(t, objects.Equals(objects.String{Value: "1"}, objects.Int{Value: 1}))
}

func TestEquals_PrimitivesCompareByValue(t *testing.T) {
	assert.True(t, objects.Equals(objects.Int{Value: 5}, objects.Int{Value: 5}))
	assert.False(t, objects.Equals(objects.Int{Value: 5}, objects.Int{Value: 6}))
	assert.True(t, objects.Equals(objects.Null{}, objects.Null{}))
}

func TestEquals_ArraysCompareElementwise(t *testing.T) {
	a := objects.NewArray(objects.Int{Value: 1}, objects.Int{Value: 2})
	b := objects.NewArray(objects.Int{Value: 1}, objects.Int{Value: 2})
	c := objects.NewArray(objects.Int{Value: 1}, objects.Int{Value: 3})
	assert.True(t, objects.Equals(a, b))
	assert.False(t, objects.Equals(a, c))
}

func TestClone_ArrayIsDeepCopy(t *testing.T) {
	original := objects.NewArray(objects.Int{Value: 1})
	cloned := objects.Clone(original).(*objects.Array)
	cloned.Add(objects.Int{Value: 2})
	assert.Equal(t, 1, original.Size())
	assert.Equal(t, 2, cloned.Size())
}

func TestClone_PrimitivesPassThrough(t *testing.T) {
	v := objects.Int{Value: 42}
	assert.Equal(t, v, objects.Clone(v))
}

func TestNewStudent_DefaultsOmittedFieldsToNull(t *testing.T) {
	s := objects.NewStudent(objects.String{Value: "Ada"}, nil, nil)
	assert.Equal(t, objects.String{Value: "Ada"}, s.Name)
	assert.Equal(t, objects.Null{}, s.Surname)
	assert.Equal(t, objects.Null{}, s.Age)
}

func TestArray_AddRemoveAtGetSet(t *testing.T) {
	a := objects.NewArray(objects.Int{Value: 1}, objects.Int{Value: 2}, objects.Int{Value: 3})
	a.Add(objects.Int{Value: 4})
	assert.Equal(t, 4, a.Size())

	ok := a.RemoveAt(0)
	assert.True(t, ok)
	assert.Equal(t, "[2, 3, 4]", a.String())

	v, found := a.Get(0)
	assert.True(t, found)
	assert.Equal(t, objects.Int{Value: 2}, v)

	assert.True(t, a.Set(0, objects.Int{Value: 99}))
	assert.Equal(t, "[99, 3, 4]", a.String())

	_, found = a.Get(100)
	assert.False(t, found)
}

func TestScriptError_StringFormatMatchesSpec(t *testing.T) {
	e := objects.NewScriptError(objects.ErrValue, "division by zero", token.Position{Line: 2, Column: 5})
	assert.Equal(t, "[ValueError]: division by zero at line 2 column 5", e.String())
}

func TestScriptError_ArgsAreAppendedToMessage(t *testing.T) {
	e := objects.NewScriptError(objects.ErrArgument, "bad arg", token.Position{Line: 1, Column: 1}, objects.Int{Value: 3})
	assert.Equal(t, "[ArgumentError]: bad arg 3 at line 1 column 1", e.String())
}

func TestIsErrorKind(t *testing.T) {
	assert.True(t, objects.IsErrorKind("TypeError"))
	assert.False(t, objects.IsErrorKind("Int"))
}
