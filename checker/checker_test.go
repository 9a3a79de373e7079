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

package checker_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bufbuild/la/ast"
	"github.com/bufbuild/la/checker"
	"github.com/bufbuild/la/symtab"
)

func TestNoOpReportsNothing(t *testing.T) {
	var c checker.Checker = checker.NoOp{}
	unit := &ast.CompilationUnit{}
	ctx := symtab.NewContext(symtab.LogOptions{})
	assert.Nil(t, c.Check(unit, ctx))
}
