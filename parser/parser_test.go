// Copyright 2020-2024 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/la/ast"
	"github.com/bufbuild/la/parser"
	"github.com/bufbuild/la/symtab"
	"github.com/bufbuild/la/token"
	"github.com/bufbuild/la/types"
)

func parseFile(t *testing.T, src string) (*ast.File, *symtab.Context, error) {
	t.Helper()
	ctx := symtab.NewContext(symtab.LogOptions{})
	id := ctx.Sources.Register("test.la")
	p := parser.New(ctx, id, src)
	f, err := p.ParseCompilationUnit("test.la")
	return f, ctx, err
}

// S1: fun main() int32 { return 0; } -- no diagnostics, one FunctionDecl.
func TestScenarioS1MainFunction(t *testing.T) {
	f, ctx, err := parseFile(t, `fun main() int32 { return 0; }`)
	require.NoError(t, err)
	require.False(t, ctx.Report.HasErrors())
	require.Len(t, f.Decls, 1)

	fn, ok := f.Decls[0].(*ast.FunctionDecl)
	require.True(t, ok)
	assert.Equal(t, "main", fn.Name)
	assert.Empty(t, fn.Params)
	assert.Equal(t, types.Number{NumberKind: types.I32}, fn.Return)
	require.NotNil(t, fn.Body)
	require.Len(t, fn.Body.Stmts, 1)

	ret, ok := fn.Body.Stmts[0].(*ast.ReturnStmt)
	require.True(t, ok)
	lit, ok := ret.Value.(*ast.NumberLit)
	require.True(t, ok)
	assert.Equal(t, "0", lit.Literal)
}

// S2: type byte = uint8; var x: byte = 42;
func TestScenarioS2AliasAndVar(t *testing.T) {
	f, ctx, err := parseFile(t, `type byte = uint8; var x: byte = 42;`)
	require.NoError(t, err)
	require.False(t, ctx.Report.HasErrors())
	require.Len(t, f.Decls, 2)

	assert.True(t, ctx.Aliases.Contains("byte"))
	assert.Equal(t, types.Number{NumberKind: types.U8}, ctx.Aliases.Resolve("byte"))

	v, ok := f.Decls[1].(*ast.VarDecl)
	require.True(t, ok)
	require.Len(t, v.Types, 1)
	assert.Equal(t, types.Number{NumberKind: types.U8}, v.Types[0])

	lit, ok := v.Init.(*ast.NumberLit)
	require.True(t, ok)
	assert.Equal(t, "42", lit.Literal)
	assert.Equal(t, token.Int, lit.Kind)
}

// S3: self-referential struct field resolution -- no None remains.
func TestScenarioS3SelfReferentialStruct(t *testing.T) {
	src := "struct Node { next *Node; v int32; }\nvar head: *Node = null;"
	f, ctx, err := parseFile(t, src)
	require.NoError(t, err)
	require.False(t, ctx.Report.HasErrors())

	st, ok := ctx.Structs.Lookup("Node")
	require.True(t, ok)
	require.Len(t, st.FieldTypes, 2)

	ptr, ok := st.FieldTypes[0].(types.Pointer)
	require.True(t, ok)
	selfStruct, ok := ptr.Base.(*types.Struct)
	require.True(t, ok)
	assert.Equal(t, "Node", selfStruct.Name)
	assert.Equal(t, types.Number{NumberKind: types.I32}, st.FieldTypes[1])

	require.Len(t, f.Decls, 2)
	v, ok := f.Decls[1].(*ast.VarDecl)
	require.True(t, ok)
	headPtr, ok := v.Types[0].(types.Pointer)
	require.True(t, ok)
	assert.Equal(t, "Node", headPtr.Base.(*types.Struct).Name)
}

// S4: mixed explicit/implicit enum values is a diagnostic error at Blue.
func TestScenarioS4EnumAllOrNothing(t *testing.T) {
	src := `enum Color { Red, Green = 5, Blue, }`
	_, ctx, err := parseFile(t, src)
	require.ErrorIs(t, err, parser.ErrParsing)
	require.True(t, ctx.Report.HasErrors())

	errs := ctx.Report.Errors()
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[len(errs)-1].Message, "must add explicit value to all enum fields or to no one")
}

// S5: break count exceeding loop depth is a diagnostic error.
func TestScenarioS5BreakExceedsLoopDepth(t *testing.T) {
	src := `fun main() void { for { break 2; } }`
	_, ctx, err := parseFile(t, src)
	require.ErrorIs(t, err, parser.ErrParsing)
	require.True(t, ctx.Report.HasErrors())
}

// S6: a user-defined @infix function is callable via its bare name mid
// expression, and registers under types.Infix.
func TestScenarioS6InfixOperatorDispatch(t *testing.T) {
	src := "fun add(a int32, b int32) int32 = a + b;\n" +
		"@infix fun plus(a int32, b int32) int32 = a + b;\n" +
		"fun main() int32 { return 1 plus 2; }"
	f, ctx, err := parseFile(t, src)
	require.NoError(t, err)
	require.False(t, ctx.Report.HasErrors())

	entry, ok := ctx.Functions.Lookup("plus")
	require.True(t, ok)
	assert.Equal(t, types.Infix, entry.Kind)

	main, ok := f.Decls[2].(*ast.FunctionDecl)
	require.True(t, ok)
	ret, ok := main.Body.Stmts[0].(*ast.ReturnStmt)
	require.True(t, ok)
	call, ok := ret.Value.(*ast.CallExpr)
	require.True(t, ok)
	callee, ok := call.Callee.(*ast.Ident)
	require.True(t, ok)
	assert.Equal(t, "plus", callee.Name)
	require.Len(t, call.Args, 2)
}

// Property 3: "a > > b" (one space) is never a shift; "a >> b" (no space) is.
func TestRightShiftSpanAdjacency(t *testing.T) {
	t.Run("adjacent produces a shift", func(t *testing.T) {
		src := "fun main() void { var x: int32 = 8 >> 1; }"
		f, ctx, err := parseFile(t, src)
		require.NoError(t, err)
		require.False(t, ctx.Report.HasErrors())

		fn := f.Decls[0].(*ast.FunctionDecl)
		require.Len(t, fn.Body.Stmts, 1)
		v := fn.Body.Stmts[0].(*ast.VarDecl)
		bin, ok := v.Init.(*ast.BinaryExpr)
		require.True(t, ok)
		assert.Equal(t, token.Shr, bin.Op)
	})

	t.Run("spaced pair never produces a shift", func(t *testing.T) {
		src := "fun main() void { var y: int32 = 8 > > 1; }"
		_, _, err := parseFile(t, src)
		require.Error(t, err)
	})
}

// Property 4: generic-call vs comparison disambiguation hinges on whether
// the left identifier names a registered function.
func TestGenericCallVsComparisonDisambiguation(t *testing.T) {
	t.Run("unregistered identifiers compare", func(t *testing.T) {
		src := "fun main() void { var r: int1 = f < g; }"
		_, ctx, err := parseFile(t, src)
		require.NoError(t, err)
		require.False(t, ctx.Report.HasErrors())
	})

	t.Run("registered function starts a generic call", func(t *testing.T) {
		src := "fun f(a int32) int32 = a;\nfun main() void { f < g; }"
		_, ctx, err := parseFile(t, src)
		require.ErrorIs(t, err, parser.ErrParsing)
		require.True(t, ctx.Report.HasErrors())
	})
}

// Property 7: chained comparisons desugar to a ChainedCompareExpr sharing
// each middle operand once.
func TestChainedComparisonDesugaring(t *testing.T) {
	src := "fun main() void { var r: int1 = a < b < c; }"
	f, ctx, err := parseFile(t, src)
	require.NoError(t, err)
	require.False(t, ctx.Report.HasErrors())

	fn := f.Decls[0].(*ast.FunctionDecl)
	v := fn.Body.Stmts[0].(*ast.VarDecl)
	chain, ok := v.Init.(*ast.ChainedCompareExpr)
	require.True(t, ok)
	require.Len(t, chain.Operands, 3)
	require.Len(t, chain.Ops, 2)
	assert.Equal(t, token.Less, chain.Ops[0])
	assert.Equal(t, token.Less, chain.Ops[1])
}

// Property 8: two distinct parameter-type tuples for the same operator
// symbol/kind register under two distinct mangled names.
func TestUserOperatorManglingIsAFunctionOfKindAndParams(t *testing.T) {
	src := "@infix operator + (a int32, b int32) int32 { return a; }\n" +
		"@infix operator + (a float32, b float32) float32 { return a; }\n"
	_, ctx, err := parseFile(t, src)
	require.NoError(t, err)
	require.False(t, ctx.Report.HasErrors())

	intName := types.MangleOperatorFunction("+", types.Infix, []types.Type{
		types.Number{NumberKind: types.I32}, types.Number{NumberKind: types.I32},
	})
	floatName := types.MangleOperatorFunction("+", types.Infix, []types.Type{
		types.Number{NumberKind: types.F32}, types.Number{NumberKind: types.F32},
	})
	require.NotEqual(t, intName, floatName)
	assert.True(t, ctx.Functions.Contains(intName))
	assert.True(t, ctx.Functions.Contains(floatName))
}

// Property 9: a const reference is inlined in place at parse time, and the
// name is not otherwise resolvable as a plain identifier.
func TestConstantInlining(t *testing.T) {
	src := "const X = 7;\nfun main() void { var y: int32 = X; }"
	f, ctx, err := parseFile(t, src)
	require.NoError(t, err)
	require.False(t, ctx.Report.HasErrors())

	fn := f.Decls[1].(*ast.FunctionDecl)
	v := fn.Body.Stmts[0].(*ast.VarDecl)
	lit, ok := v.Init.(*ast.NumberLit)
	require.True(t, ok)
	assert.Equal(t, "7", lit.Literal)

	_, isIdent := v.Init.(*ast.Ident)
	assert.False(t, isIdent, "a constant reference must be inlined, not left as an Ident")
}

// Compound assignment desugars x += y into x = x + y, and the two-token
// ">>=" form desugars the same way as a right shift.
func TestCompoundAssignmentDesugaring(t *testing.T) {
	src := "fun main() void { var x: int32 = 1; x += 2; x >>= 1; }"
	f, ctx, err := parseFile(t, src)
	require.NoError(t, err)
	require.False(t, ctx.Report.HasErrors())

	fn := f.Decls[0].(*ast.FunctionDecl)
	require.Len(t, fn.Body.Stmts, 3)

	plusStmt := fn.Body.Stmts[1].(*ast.ExprStmt)
	assign, ok := plusStmt.X.(*ast.AssignExpr)
	require.True(t, ok)
	bin, ok := assign.Value.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.Plus, bin.Op)

	shrStmt := fn.Body.Stmts[2].(*ast.ExprStmt)
	shrAssign := shrStmt.X.(*ast.AssignExpr)
	shrBin := shrAssign.Value.(*ast.BinaryExpr)
	assert.Equal(t, token.Shr, shrBin.Op)
}
