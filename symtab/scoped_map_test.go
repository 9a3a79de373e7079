package symtab_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/la/symtab"
)

func TestScopedMapShadowing(t *testing.T) {
	m := symtab.NewScopedMap[int]()
	require.True(t, m.Define("x", 1))
	m.PushScope()
	require.True(t, m.Define("x", 2))

	v, ok := m.LookupOnCurrent("x")
	require.True(t, ok)
	assert.Equal(t, 2, v)

	m.PopScope()
	v, ok = m.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestScopedMapDefineRejectsSameScopeRedefinition(t *testing.T) {
	m := symtab.NewScopedMap[int]()
	require.True(t, m.Define("x", 1))
	assert.False(t, m.Define("x", 2))
}

func TestScopedMapUpdateWalksOuterScopes(t *testing.T) {
	// Documents the preserved quirk: Update overwrites x in every scope
	// that shadows it, not just the innermost. x is bound in the global
	// scope and re-shadowed one level in; a single Update from the
	// innermost scope must change both bindings.
	m := symtab.NewScopedMap[int]()
	m.Define("x", 1)
	m.PushScope()
	m.Define("x", 2)
	m.PushScope()

	require.True(t, m.Update("x", 99))

	v, ok := m.LookupOnCurrent("x")
	require.False(t, ok) // x isn't bound in the innermost scope itself
	_ = v

	m.PopScope()
	v, ok = m.LookupOnCurrent("x")
	require.True(t, ok)
	assert.Equal(t, 99, v, "the shadow one level in must be updated")

	m.PopScope()
	v, ok = m.LookupOnCurrent("x")
	require.True(t, ok)
	assert.Equal(t, 99, v, "the global binding must also be updated")

	assert.False(t, m.Update("never-defined", 0))
}

func TestScopedMapLookupWithLevel(t *testing.T) {
	m := symtab.NewScopedMap[int]()
	m.Define("x", 1)
	m.PushScope()
	m.PushScope()

	_, level, ok := m.LookupWithLevel("x")
	require.True(t, ok)
	assert.Equal(t, 2, level)
}

func TestScopedMapPopScopePanicsOnGlobalScope(t *testing.T) {
	m := symtab.NewScopedMap[int]()
	assert.Panics(t, func() { m.PopScope() })
}

func TestParseLogFlags(t *testing.T) {
	opts := symtab.ParseLogFlags("p,t")
	assert.True(t, opts.Parser)
	assert.True(t, opts.TypeChecker)
	assert.False(t, opts.Lexer)
	assert.False(t, opts.Codegen)
	assert.False(t, opts.General)
}
