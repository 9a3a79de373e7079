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

// Package checker specifies, but does not implement, the semantic checker
// spec.md §1/§6 excludes from this front end's scope. Checker's only job is
// to give the `check` CLI command a seam to call through; NoOp is the only
// concrete implementation this repository provides.
package checker

import (
	"github.com/bufbuild/la/ast"
	"github.com/bufbuild/la/report"
	"github.com/bufbuild/la/symtab"
)

// Checker runs whole-program semantic analysis (name resolution, type
// inference, monomorphization, constant folding, exhaustiveness checking of
// `@complete` switches) over a fully parsed compilation unit. This front end
// implements none of that; spec.md §6 asks only that the interface be
// specified so a later pass can be wired in without touching the parser.
type Checker interface {
	Check(unit *ast.CompilationUnit, ctx *symtab.Context) []report.Diagnostic
}

// NoOp is a Checker that performs no analysis and reports nothing. The
// `check` CLI command uses it until a real semantic checker exists,
// matching spec.md §1's framing of the checker as an external collaborator.
type NoOp struct{}

var _ Checker = NoOp{}

// Check always returns nil.
func (NoOp) Check(*ast.CompilationUnit, *symtab.Context) []report.Diagnostic {
	return nil
}
