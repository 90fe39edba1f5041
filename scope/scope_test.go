package scope_test

import (
	"testing"

	"github.com/Radkoski002/jplang/objects"
	"github.com/Radkoski002/jplang/scope"
	"github.com/stretchr/testify/assert"
)

func TestGetOrInit_CreatesNullInInnermostFrame(t *testing.T) {
	s := scope.New()
	v := s.GetOrInit("x")
	assert.Equal(t, objects.Null{}, v)
	assert.True(t, s.Has("x"))
}

func TestSet_MutatesExistingBindingWhereFound(t *testing.T) {
	s := scope.New()
	s.BindParam("x", objects.Int{Value: 1})
	s.PushFrame()
	s.Set("x", objects.Int{Value: 2})
	v, ok := s.Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, objects.Int{Value: 2}, v)

	s.PopFrame()
	v, _ = s.Lookup("x")
	assert.Equal(t, objects.Int{Value: 2}, v, "mutation in outer frame must be visible after the inner frame pops")
}

func TestSet_CreatesInInnermostFrameWhenNew(t *testing.T) {
	s := scope.New()
	s.PushFrame()
	s.Set("y", objects.Int{Value: 7})
	s.PopFrame()
	assert.False(t, s.Has("y"), "a binding created in a popped frame must not survive")
}

func TestLookup_SearchesInnermostToOutermost(t *testing.T) {
	s := scope.New()
	s.BindParam("x", objects.Int{Value: 1})
	s.PushFrame()
	s.Set("x", objects.Int{Value: 2})
	v, _ := s.Lookup("x")
	assert.Equal(t, objects.Int{Value: 2}, v)
}

func TestPopFrame_NeverRemovesTheLastFrame(t *testing.T) {
	s := scope.New()
	s.PopFrame()
	s.PopFrame()
	s.BindParam("x", objects.Int{Value: 1})
	v, ok := s.Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, objects.Int{Value: 1}, v)
}

func TestReferences_RecordsAliasesUntilResolved(t *testing.T) {
	s := scope.New()
	s.MarkReference("param", "callerVar")
	refs := s.References()
	assert.Equal(t, "callerVar", refs["param"])
}

func TestLoopDepth_TracksNestedLoops(t *testing.T) {
	s := scope.New()
	assert.False(t, s.InLoop())
	s.EnterLoop()
	assert.True(t, s.InLoop())
	s.EnterLoop()
	s.ExitLoop()
	assert.True(t, s.InLoop())
	s.ExitLoop()
	assert.False(t, s.InLoop())
}
