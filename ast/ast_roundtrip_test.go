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

package ast_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/la/ast"
	"github.com/bufbuild/la/parser"
	"github.com/bufbuild/la/symtab"
)

// functionShape is a span-free projection of an *ast.FunctionDecl. Spans
// carry byte-offset-derived line/column bookkeeping that is irrelevant to
// whether two parses agree structurally, so equality assertions compare
// this projection with go-cmp rather than the node itself (spec.md §3's
// spans are per-occurrence, not part of a declaration's shape).
type functionShape struct {
	Name       string
	ParamNames []string
	ParamTypes []string
	Return     string
	BodyStmts  int
}

func shapeOf(fn *ast.FunctionDecl) functionShape {
	s := functionShape{Name: fn.Name, Return: fn.Return.String()}
	for _, p := range fn.Params {
		s.ParamNames = append(s.ParamNames, p.Name)
		s.ParamTypes = append(s.ParamTypes, p.Type.String())
	}
	if fn.Body != nil {
		s.BodyStmts = len(fn.Body.Stmts)
	}
	return s
}

func parseMainFunc(t *testing.T, src string) *ast.FunctionDecl {
	t.Helper()
	ctx := symtab.NewContext(symtab.LogOptions{})
	id := ctx.Sources.Register("roundtrip.la")
	p := parser.New(ctx, id, src)
	f, err := p.ParseCompilationUnit("roundtrip.la")
	require.NoError(t, err)
	require.False(t, ctx.Report.HasErrors())
	require.Len(t, f.Decls, 1)

	fn, ok := f.Decls[0].(*ast.FunctionDecl)
	require.True(t, ok)
	return fn
}

// TestFunctionDeclShapeIsStableAcrossIndependentParses parses the same
// declaration twice, in two independent Parse Contexts, and diffs their
// span-free shapes with go-cmp: parsing is a pure function of its source
// text, so two parses of identical input must round-trip to identical
// shapes.
func TestFunctionDeclShapeIsStableAcrossIndependentParses(t *testing.T) {
	const src = `fun add(a int32, b int32, c *int32) int32 { return a + b; }`

	first := shapeOf(parseMainFunc(t, src))
	second := shapeOf(parseMainFunc(t, src))

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("parsing identical source twice produced different shapes (-first +second):\n%s", diff)
	}
}

// TestFunctionDeclShapeDetectsStructuralDifferences is the negative half of
// the above: two declarations differing only in one parameter's type must
// produce a non-empty diff, so the positive test isn't vacuously true.
func TestFunctionDeclShapeDetectsStructuralDifferences(t *testing.T) {
	a := shapeOf(parseMainFunc(t, `fun add(a int32, b int32) int32 { return a + b; }`))
	b := shapeOf(parseMainFunc(t, `fun add(a int64, b int32) int32 { return a + b; }`))

	assert.NotEmpty(t, cmp.Diff(a, b))
}
