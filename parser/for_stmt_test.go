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
)

// parseMainForStmt parses src as the lone statement of `fun main`'s body and
// returns it as a *ast.ForStmt.
func parseMainForStmt(t *testing.T, forStmt string) *ast.ForStmt {
	t.Helper()
	f, ctx, err := parseFile(t, `fun main() void { `+forStmt+` }`)
	require.NoError(t, err)
	require.False(t, ctx.Report.HasErrors())
	require.Len(t, f.Decls, 1)

	fn, ok := f.Decls[0].(*ast.FunctionDecl)
	require.True(t, ok)
	require.Len(t, fn.Body.Stmts, 1)

	s, ok := fn.Body.Stmts[0].(*ast.ForStmt)
	require.True(t, ok)
	return s
}

func TestForInfiniteLoop(t *testing.T) {
	s := parseMainForStmt(t, `for { break 1; }`)
	assert.Equal(t, ast.ForInfinite, s.Kind)
}

func TestForEachAutoBindsItAndItIndex(t *testing.T) {
	s := parseMainForStmt(t, `for (xs) { }`)
	require.Equal(t, ast.ForEach, s.Kind)
	assert.Equal(t, "it", s.ItemName)
	assert.Equal(t, "it_index", s.IndexName)
	require.NotNil(t, s.Collection)
}

func TestForEachNamedSingleBinding(t *testing.T) {
	s := parseMainForStmt(t, `for (item: xs) { }`)
	require.Equal(t, ast.ForEach, s.Kind)
	assert.Equal(t, "item", s.ItemName)
	assert.Empty(t, s.IndexName)
}

func TestForEachNamedWithIndexBinding(t *testing.T) {
	s := parseMainForStmt(t, `for (item, idx: xs) { }`)
	require.Equal(t, ast.ForEach, s.Kind)
	assert.Equal(t, "item", s.ItemName)
	assert.Equal(t, "idx", s.IndexName)
}

func TestForRangeWithoutStep(t *testing.T) {
	s := parseMainForStmt(t, `for (0 .. 10) { }`)
	require.Equal(t, ast.ForRange, s.Kind)
	require.NotNil(t, s.RangeStart)
	require.NotNil(t, s.RangeEnd)
	assert.Nil(t, s.RangeStep)
}

func TestForRangeWithStep(t *testing.T) {
	s := parseMainForStmt(t, `for (0 .. 10 : 2) { }`)
	require.Equal(t, ast.ForRange, s.Kind)
	require.NotNil(t, s.RangeStep)
}

// spec.md §4.9.2: "Only for-each may name the index; range-with-custom-
// index-name is an error." `i: 0 .. 10` is lexically routed to the named
// for-each production (an identifier directly followed by ':'), so the `..`
// that follows the collection expression is left unconsumed and parsing
// fails when ')' is expected instead.
func TestForRangeWithCustomIndexNameIsAnError(t *testing.T) {
	_, ctx, err := parseFile(t, `fun main() void { for (i: 0 .. 10) { } }`)
	require.Error(t, err)
	assert.True(t, ctx.Report.HasErrors())
}
