package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/la/types"
)

func TestAliasTablePrimitives(t *testing.T) {
	tbl := types.NewAliasTable()
	require.True(t, tbl.Contains("uint8"))
	require.True(t, tbl.Contains("byte_not_defined") == false)

	got := tbl.Resolve("char")
	num, ok := got.(types.Number)
	require.True(t, ok)
	assert.Equal(t, types.I8, num.NumberKind)
}

func TestAliasTableDefine(t *testing.T) {
	tbl := types.NewAliasTable()
	tbl.Define("byte", tbl.Resolve("uint8"))
	require.True(t, tbl.Contains("byte"))
	assert.Equal(t, types.U8, tbl.Resolve("byte").(types.Number).NumberKind)
}

func TestOrderedValuesPreservesDeclarationOrder(t *testing.T) {
	ov := types.NewOrderedValues()
	require.True(t, ov.Define("Red", 0))
	require.True(t, ov.Define("Green", 1))
	require.True(t, ov.Define("Blue", 2))
	require.False(t, ov.Define("Red", 5))

	assert.Equal(t, []string{"Red", "Green", "Blue"}, ov.Names())
	v, ok := ov.Lookup("Green")
	require.True(t, ok)
	assert.Equal(t, uint32(1), v)
}

func TestOrderedValuesDuplicateDetection(t *testing.T) {
	ov := types.NewOrderedValues()
	ov.Define("A", 5)
	ov.Define("B", 5)
	name, dup := ov.HasDuplicateValue()
	assert.True(t, dup)
	assert.Equal(t, "A", name)
}

func TestMangleOperatorFunctionIsInjective(t *testing.T) {
	i32 := types.Number{NumberKind: types.I32}
	f32 := types.Number{NumberKind: types.F32}

	a := types.MangleOperatorFunction("+", types.Infix, []types.Type{i32, i32})
	b := types.MangleOperatorFunction("+", types.Infix, []types.Type{f32, f32})
	assert.NotEqual(t, a, b)

	c := types.MangleOperatorFunction("+", types.Infix, []types.Type{i32, i32})
	assert.Equal(t, a, c)
}

func TestMangleTuple(t *testing.T) {
	i32 := types.Number{NumberKind: types.I32}
	i64 := types.Number{NumberKind: types.I64}
	name := types.MangleTuple([]types.Type{i32, i64})
	assert.Equal(t, "$tuple$int32$int64", name)
}

func TestStructFieldType(t *testing.T) {
	s := &types.Struct{
		Name:       "Node",
		FieldNames: []string{"next", "v"},
		FieldTypes: []types.Type{types.Pointer{Base: nil}, types.Number{NumberKind: types.I32}},
	}
	assert.Equal(t, types.KindStruct, s.FieldType("v").Kind())
	assert.Nil(t, s.FieldType("missing"))
}
