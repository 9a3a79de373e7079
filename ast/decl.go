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

package ast

import (
	"github.com/bufbuild/la/token"
	"github.com/bufbuild/la/types"
)

// ImportDecl is `import "path";` or `import { "a" "b" };` (spec.md §4.9.1).
type ImportDecl struct {
	baseNode
	Paths []string
}

func (*ImportDecl) declNode() {}

// LoadDecl is `load "path";` or the braced-list form, resolved relative to
// the importing file's directory rather than the library root.
type LoadDecl struct {
	baseNode
	Paths []string
}

func (*LoadDecl) declNode() {}

// TypeAliasDecl is `type Name = <type>;`.
type TypeAliasDecl struct {
	baseNode
	Name string
	Type types.Type
}

func (*TypeAliasDecl) declNode() {}

// FunctionDecl covers plain functions, `@extern`/`@intrinsic` prototypes,
// and user-defined `operator` declarations (spec.md §4.6, §4.9.1). Operator
// declarations set OperatorSymbol and OperatorKind. Functions marked
// `@prefix`/`@infix`/`@postfix` also set OperatorKind, with OperatorSymbol
// left empty; everything else leaves OperatorKind at types.Normal.
type FunctionDecl struct {
	baseNode
	Name          string // mangled name for operators, see types.MangleOperatorFunction
	Params        []Param
	Return        types.Type
	Body          *BlockStmt // nil for @extern/@intrinsic prototypes
	IsExtern      bool
	IsIntrinsic   bool
	IntrinsicName string
	HasVarargs    bool
	VarargsName   string
	VarargsElem   types.Type
	IsGeneric     bool
	GenericParams []string

	OperatorSymbol string
	OperatorKind   types.OperatorKind
}

func (*FunctionDecl) declNode() {}

// VarDecl is a `var` declaration, at file scope or inside a block. Multiple
// names cover the destructuring form `var (a: T, b) = expr;`; Types[i] is
// nil where the declared name has no explicit type annotation and must take
// its type from Init.
type VarDecl struct {
	baseNode
	Names []string
	Types []types.Type
	Init  Expr // nil if no initializer
}

func (*VarDecl) declNode() {}
func (*VarDecl) stmtNode() {}

// ConstDecl is `const Name = <literal>;`. Value is required and is a
// character, string, number or bool literal, or a unary minus applied to a
// number literal; no other expression is accepted (spec.md §4.9.1).
type ConstDecl struct {
	baseNode
	Name  string
	Value Expr
}

func (*ConstDecl) declNode() {}
func (*ConstDecl) stmtNode() {}

// FieldDecl is a single struct field.
type FieldDecl struct {
	Name string
	Type types.Type
	Span token.Span
}

// StructDecl is a `struct Name { ... }` declaration, possibly generic,
// `@packed`, or `@extern`.
type StructDecl struct {
	baseNode
	Name          string
	Fields        []FieldDecl
	GenericParams []string
	IsPacked      bool
	IsExtern      bool
}

func (*StructDecl) declNode() {}

// EnumElementDecl is one `Name` or `Name = <const expr>` member of an enum.
type EnumElementDecl struct {
	Name  string
	Value Expr // nil if implicit (prior value + 1, or 0 for the first element)
	Span  token.Span
}

// EnumDecl is an `enum Name { ... }` declaration.
type EnumDecl struct {
	baseNode
	Name        string
	Elements    []EnumElementDecl
	ElementType types.Type
}

func (*EnumDecl) declNode() {}
