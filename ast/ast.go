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

// Package ast implements the AST Model (spec.md §3, §4.9): a tagged union
// of statements and expressions, every node carrying a source [token.Span].
//
// Unlike the teacher's token-tree AST (which defers type resolution to a
// later pass over a descriptor proto), this AST is built with types already
// resolved: a declaration's field or parameter carries a [types.Type]
// directly, matching spec.md §4.9.4's one-pass parse_type production. There
// is deliberately no separate "unresolved type expression" node.
package ast

import (
	"github.com/bufbuild/la/token"
	"github.com/bufbuild/la/types"
)

// Node is implemented by every AST node.
type Node interface {
	Span() token.Span
}

// Decl is a top-level (or struct/enum-body) declaration.
type Decl interface {
	Node
	declNode()
}

// Stmt is a statement inside a function body.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression. The interface carries no static type; only the
// parse-time-resolvable expressions record one, in their own Type field
// ([NumberLit] for suffixed literals, [EnumAccessExpr]).
type Expr interface {
	Node
	exprNode()
}

// File is the parsed form of a single source file: the compilation driver
// assembles one per root and one per transitively imported/loaded file,
// and the Parse Context accumulates declarations from all of them into one
// shared symbol space (spec.md §4.7, §4.8).
type File struct {
	Path  string
	Decls []Decl
}

// CompilationUnit is what the parser core exposes to the excluded
// downstream collaborators (spec.md §6): every top-level statement/
// declaration parsed for a compilation, across every file pulled in via
// import/load.
type CompilationUnit struct {
	Files      []*File
	TreeNodes  []Decl
}

// baseNode is embedded by every concrete node to provide Span() without
// repeating the field and accessor on each type.
type baseNode struct{ span token.Span }

func (n baseNode) Span() token.Span { return n.span }

// SetSpan records the span produced for this node by the parser production
// that built it. Exported so the parser package can finish constructing a
// node without this package needing a constructor function per node type;
// promotion rules make this accessible on every concrete node despite
// baseNode itself being unexported.
func (n *baseNode) SetSpan(s token.Span) { n.span = s }

// Param is a function/lambda parameter: a name and its resolved type.
type Param struct {
	Name string
	Type types.Type
	Span token.Span
}
