package symtab_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/la/symtab"
	"github.com/bufbuild/la/types"
)

func TestFunctionRegistryDefine(t *testing.T) {
	r := symtab.NewFunctionRegistry()
	require.True(t, r.Define(&symtab.FunctionEntry{Name: "add", Kind: types.Normal}))
	assert.False(t, r.Define(&symtab.FunctionEntry{Name: "add", Kind: types.Normal}))

	e, ok := r.Lookup("add")
	require.True(t, ok)
	assert.Equal(t, types.Normal, e.Kind)
}

func TestStructRegistryScanIsSorted(t *testing.T) {
	r := symtab.NewStructRegistry()
	r.Define(&types.Struct{Name: "Zebra"})
	r.Define(&types.Struct{Name: "Apple"})

	var names []string
	r.Scan(func(s *types.Struct) bool {
		names = append(names, s.Name)
		return true
	})
	assert.Equal(t, []string{"Apple", "Zebra"}, names)
}

func TestEnumRegistry(t *testing.T) {
	r := symtab.NewEnumRegistry()
	require.True(t, r.Define(&types.Enum{Name: "Color"}))
	_, ok := r.Lookup("Color")
	assert.True(t, ok)
	assert.True(t, r.Contains("Color"))
}
