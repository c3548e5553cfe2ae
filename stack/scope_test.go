// Copyright © 2021 The Stax authors

package stack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeDefineAndGet(t *testing.T) {
	s := NewScope()

	_, ok := s.Get("a")
	assert.False(t, ok)

	s.Define("a", Int(1))
	v, ok := s.Get("a")
	require.True(t, ok)
	assert.True(t, v.Equal(Int(1)))

	// Redefining a root binding writes in place.
	s.Define("a", Int(2))
	v, _ = s.Get("a")
	assert.True(t, v.Equal(Int(2)))
}

func TestScopeSetRequiresName(t *testing.T) {
	s := NewScope()

	assert.False(t, s.Set("a", Int(1)))

	s.Define("a", Int(1))
	assert.True(t, s.Set("a", Int(2)))
	v, _ := s.Get("a")
	assert.True(t, v.Equal(Int(2)))
}

func TestScopeReserve(t *testing.T) {
	s := NewScope()
	s.Reserve("a")

	// Reserved names exist but hold nothing.
	assert.True(t, s.Has("a"))
	_, ok := s.Get("a")
	assert.False(t, ok)

	// Reserving never clobbers a binding.
	s.Define("b", Int(1))
	s.Reserve("b")
	v, ok := s.Get("b")
	require.True(t, ok)
	assert.True(t, v.Equal(Int(1)))
}

func TestScopeDuplicateAliasesValues(t *testing.T) {
	s := NewScope()
	s.Define("a", Int(1))

	dup := s.Duplicate()
	v, ok := dup.Get("a")
	require.True(t, ok)
	assert.True(t, v.Equal(Int(1)))

	// Writes through the duplicate reach the origin.
	assert.True(t, dup.Set("a", Int(2)))
	v, _ = s.Get("a")
	assert.True(t, v.Equal(Int(2)))

	// A define in the duplicate unlinks and stays private.
	dup.Define("a", Int(9))
	v, _ = s.Get("a")
	assert.True(t, v.Equal(Int(2)))
	v, _ = dup.Get("a")
	assert.True(t, v.Equal(Int(9)))
}

func TestScopeCloneSharesChains(t *testing.T) {
	s := NewScope()
	s.Define("a", Int(1))

	c := s.Clone()
	assert.True(t, c.Set("a", Int(2)))
	v, _ := s.Get("a")
	assert.True(t, v.Equal(Int(2)))

	// New names in the clone are invisible to the origin.
	c.Define("b", Int(3))
	assert.False(t, s.Has("b"))
}

func TestScopeMerge(t *testing.T) {
	ambient := NewScope()
	ambient.Define("a", Int(1))
	ambient.Define("b", Int(2))

	fn := NewScope()
	fn.Reserve("a")
	fn.Define("c", Int(3))

	fn.Merge(ambient.Duplicate())

	// The reserved slot adopts the ambient chain.
	v, ok := fn.Get("a")
	require.True(t, ok)
	assert.True(t, v.Equal(Int(1)))
	assert.True(t, fn.Set("a", Int(10)))
	v, _ = ambient.Get("a")
	assert.True(t, v.Equal(Int(10)))

	// Absent names are adopted, bound names are kept.
	v, _ = fn.Get("b")
	assert.True(t, v.Equal(Int(2)))
	v, _ = fn.Get("c")
	assert.True(t, v.Equal(Int(3)))
}

func TestScopeMergeKeepsBound(t *testing.T) {
	a := NewScope()
	a.Define("x", Int(1))
	b := NewScope()
	b.Define("x", Int(2))

	a.Merge(b)
	v, _ := a.Get("x")
	assert.True(t, v.Equal(Int(1)))
}

func TestScopeRemoveAndNames(t *testing.T) {
	s := NewScope()
	s.Define("a", Int(1))
	s.Define("b", Int(2))

	assert.ElementsMatch(t, []Symbol{"a", "b"}, s.Names())

	s.Remove("a")
	assert.False(t, s.Has("a"))
	assert.True(t, s.Has("b"))
}
