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

// Ident is a bare identifier reference: a local, parameter, global, const,
// or (pre-call-resolution) function name.
type Ident struct {
	baseNode
	Name string
}

func (*Ident) exprNode() {}

// NumberLit is an integer or float literal. Kind is the lexed token.Kind
// (token.Int through token.Uint64, or token.Float through token.Float64);
// Suffix is the optional width
// suffix text (e.g. "u32", "f64"), empty when the literal relies on
// context/default typing (spec.md §4.2).
type NumberLit struct {
	baseNode
	Literal string
	Kind    token.Kind
	Suffix  string
	Type    types.Type // filled in once the literal's width is resolved
}

func (*NumberLit) exprNode() {}

// StringLit is a double-quoted string literal with escapes already resolved.
type StringLit struct {
	baseNode
	Value string
}

func (*StringLit) exprNode() {}

// CharLit is a single-quoted character literal.
type CharLit struct {
	baseNode
	Value rune
}

func (*CharLit) exprNode() {}

// BoolLit is `true` or `false`.
type BoolLit struct {
	baseNode
	Value bool
}

func (*BoolLit) exprNode() {}

// NullLit is the `null` pointer literal.
type NullLit struct{ baseNode }

func (*NullLit) exprNode() {}

// UndefinedLit is the `undefined` literal, usable wherever a value of any
// type is accepted without producing a defined bit pattern.
type UndefinedLit struct{ baseNode }

func (*UndefinedLit) exprNode() {}

// UnaryExpr is a prefix or postfix unary operator application: `-x`, `!x`,
// `~x`, `*x` (deref), `&x` (address-of), `x++`, `x--`, or a user-defined
// `@prefix`/`@postfix` operator function resolved at parse time via the
// function registry (spec.md §4.6, §4.9.6).
type UnaryExpr struct {
	baseNode
	Op      token.Kind
	Operand Expr
	Postfix bool
	// FuncName is set when Op does not name a built-in unary operator but a
	// user-defined operator function instead; Op still records the
	// surface-syntax token for diagnostics.
	FuncName string
}

func (*UnaryExpr) exprNode() {}

// BinaryExpr is a built-in or user-defined infix operator application,
// including the short-circuiting `&&`/`||` (spec.md §4.9.6).
type BinaryExpr struct {
	baseNode
	Op       token.Kind
	Left     Expr
	Right    Expr
	FuncName string // set when Op resolves to a user-defined @infix operator
}

func (*BinaryExpr) exprNode() {}

// ChainedCompareExpr is the desugared form of `a < b <= c`: a conjunction of
// pairwise comparisons sharing each intermediate operand exactly once
// (spec.md §4.9.6 "chained comparison desugars to a conjunction, evaluating
// each operand exactly once").
type ChainedCompareExpr struct {
	baseNode
	Operands []Expr
	Ops      []token.Kind // len(Ops) == len(Operands)-1
}

func (*ChainedCompareExpr) exprNode() {}

// AssignExpr is `target = value`, after the parser has desugared any
// compound assignment (`+=`, `>>=`, ...) into the expanded binary form
// (spec.md §4.9.6 "compound assignment desugars to target = target OP
// value").
type AssignExpr struct {
	baseNode
	Target Expr
	Value  Expr
}

func (*AssignExpr) exprNode() {}

// CallExpr is a function call, optionally generic-instantiated
// (`f<T>(...)`, disambiguated from a chained-comparison at parse time, see
// spec.md §4.9.6 "generic-call vs comparison disambiguation") and optionally
// followed by a trailing lambda block (`f(x) { ... }`).
type CallExpr struct {
	baseNode
	Callee         Expr
	TypeArgs       []types.Type
	Args           []Expr
	TrailingLambda *LambdaExpr
}

func (*CallExpr) exprNode() {}

// IndexExpr is `base[index]`.
type IndexExpr struct {
	baseNode
	Base  Expr
	Index Expr
}

func (*IndexExpr) exprNode() {}

// MemberExpr is `base.field`.
type MemberExpr struct {
	baseNode
	Base  Expr
	Field string
}

func (*MemberExpr) exprNode() {}

// EnumAccessExpr is `EnumName::Element`, a qualified enum value reference
// resolved directly to its element at parse time (spec.md §4.9.6).
type EnumAccessExpr struct {
	baseNode
	EnumName string
	Element  string
	Type     types.EnumElement
}

func (*EnumAccessExpr) exprNode() {}

// ConstructorExpr is a struct initializer `Type { field: value, ... }`,
// optionally followed by a trailing lambda (spec.md §4.9.6 "initializer
// expressions").
type ConstructorExpr struct {
	baseNode
	Type           types.Type
	FieldNames     []string // parallel to Args; "" for positional fields
	Args           []Expr
	TrailingLambda *LambdaExpr
}

func (*ConstructorExpr) exprNode() {}

// LambdaExpr is an anonymous function literal, used for closures passed as
// arguments and for trailing-lambda call sugar.
type LambdaExpr struct {
	baseNode
	Params []Param
	Return types.Type // nil if the return type was omitted and is inferred
	Body   *BlockStmt
}

func (*LambdaExpr) exprNode() {}

// CastExpr is an explicit type cast `cast<T>(value)`.
type CastExpr struct {
	baseNode
	Target types.Type
	Value  Expr
}

func (*CastExpr) exprNode() {}

// TypeSizeExpr is `type_size(T)` applied to a type.
type TypeSizeExpr struct {
	baseNode
	Target types.Type
}

func (*TypeSizeExpr) exprNode() {}

// TypeAlignExpr is `type_align(T)`.
type TypeAlignExpr struct {
	baseNode
	Target types.Type
}

func (*TypeAlignExpr) exprNode() {}

// ValueSizeExpr is `value_size(expr)` applied to an expression rather than a
// named type.
type ValueSizeExpr struct {
	baseNode
	Value Expr
}

func (*ValueSizeExpr) exprNode() {}

// DirectiveExpr is a compiler directive usable in expression position, such
// as `@line`, `@column`, `@filepath`, or `@max_value(T)` (spec.md §4.9.7,
// "directives valid in expression context").
type DirectiveExpr struct {
	baseNode
	Name     string
	Args     []Expr
	TypeArg  types.Type // set for directives parameterized by a type, e.g. @max_value(T)
}

func (*DirectiveExpr) exprNode() {}
