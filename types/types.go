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

// Package types implements the algebraic Type Model (spec.md §3): numeric,
// pointer, void, function, static array/vector, struct (possibly generic),
// generic-struct instantiation, generic parameter, tuple, enum, enum
// element, and the None forward placeholder used while a struct's own body
// is still being parsed.
//
// Types are immutable after publication: a compound type is constructed
// once and shared by reference everywhere it is used, mirroring how the
// teacher's AST nodes are built once and referenced from many places in a
// descriptor graph.
package types

import (
	"fmt"
	"strings"
)

// Kind discriminates the sum type implemented by [Type].
type Kind int

const (
	KindNumber Kind = iota
	KindVoid
	KindNone
	KindPointer
	KindStaticArray
	KindStaticVector
	KindFunction
	KindStruct
	KindGenericStruct
	KindGenericParameter
	KindTuple
	KindEnum
	KindEnumElement
)

// Type is the common interface implemented by every member of the type sum.
type Type interface {
	Kind() Kind
	// String returns the canonical formatter used in diagnostics.
	String() string
}

// NumberKind enumerates the primitive numeric widths.
type NumberKind int

const (
	I1 NumberKind = iota
	I8
	I16
	I32
	I64
	U8
	U16
	U32
	U64
	F32
	F64
)

func (n NumberKind) String() string {
	switch n {
	case I1:
		return "int1"
	case I8:
		return "int8"
	case I16:
		return "int16"
	case I32:
		return "int32"
	case I64:
		return "int64"
	case U8:
		return "uint8"
	case U16:
		return "uint16"
	case U32:
		return "uint32"
	case U64:
		return "uint64"
	case F32:
		return "float32"
	case F64:
		return "float64"
	default:
		return fmt.Sprintf("types.NumberKind(%d)", int(n))
	}
}

// IsFloat reports whether n is one of F32/F64.
func (n NumberKind) IsFloat() bool { return n == F32 || n == F64 }

// Number is a primitive numeric type.
type Number struct{ NumberKind NumberKind }

func (Number) Kind() Kind         { return KindNumber }
func (n Number) String() string   { return n.NumberKind.String() }

// Void is the empty return/value type.
type Void struct{}

func (Void) Kind() Kind     { return KindVoid }
func (Void) String() string { return "void" }

// None is a temporary placeholder standing in for a struct's self-reference
// while that struct's own body is being parsed (spec.md §3 invariants,
// §4.9.5). It must never survive past struct-body resolution.
type None struct{}

func (None) Kind() Kind     { return KindNone }
func (None) String() string { return "<none>" }

// Pointer is `*Base`.
type Pointer struct{ Base Type }

func (Pointer) Kind() Kind       { return KindPointer }
func (p Pointer) String() string { return "*" + p.Base.String() }

// StaticArray is `[Size]Element`.
type StaticArray struct {
	Element Type
	Size    uint32
}

func (StaticArray) Kind() Kind { return KindStaticArray }
func (a StaticArray) String() string {
	return fmt.Sprintf("[%d]%s", a.Size, a.Element.String())
}

// StaticVector is `@vec [Size]Element`.
type StaticVector struct{ Array StaticArray }

func (StaticVector) Kind() Kind       { return KindStaticVector }
func (v StaticVector) String() string { return "@vec " + v.Array.String() }

// Function is a function type: its parameter types, return type, and
// whether/how it accepts varargs, plus generic-prototype bookkeeping.
type Function struct {
	Params        []Type
	Return        Type
	HasVarargs    bool
	VarargsElem   Type // nil unless HasVarargs
	IsGeneric     bool
	GenericParams []string
}

func (Function) Kind() Kind { return KindFunction }
func (f Function) String() string {
	var b strings.Builder
	b.WriteString("fun (")
	for i, p := range f.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
	}
	if f.HasVarargs {
		if len(f.Params) > 0 {
			b.WriteString(", ")
		}
		b.WriteString("varargs")
		if f.VarargsElem != nil {
			b.WriteString(" " + f.VarargsElem.String())
		}
	}
	b.WriteString(") ")
	b.WriteString(f.Return.String())
	return b.String()
}

// Struct is a (possibly generic) struct type. Field order matches
// declaration order.
type Struct struct {
	Name          string
	FieldNames    []string
	FieldTypes    []Type
	GenericParams []string
	IsPacked      bool
	IsGeneric     bool
	IsExtern      bool
}

func (*Struct) Kind() Kind { return KindStruct }
func (s *Struct) String() string {
	if len(s.GenericParams) == 0 {
		return s.Name
	}
	return s.Name + "<" + strings.Join(s.GenericParams, ", ") + ">"
}

// FieldType returns the type of the named field, or nil if no such field
// exists.
func (s *Struct) FieldType(name string) Type {
	for i, n := range s.FieldNames {
		if n == name {
			return s.FieldTypes[i]
		}
	}
	return nil
}

// GenericStruct is an instantiation `Base<Args...>` of a generic struct.
type GenericStruct struct {
	Base *Struct
	Args []Type
}

func (GenericStruct) Kind() Kind { return KindGenericStruct }
func (g GenericStruct) String() string {
	names := make([]string, len(g.Args))
	for i, a := range g.Args {
		names[i] = a.String()
	}
	return g.Base.Name + "<" + strings.Join(names, ", ") + ">"
}

// GenericParameter is a type variable scoped to a single generic
// function/struct declaration.
type GenericParameter struct{ Name string }

func (GenericParameter) Kind() Kind       { return KindGenericParameter }
func (g GenericParameter) String() string { return g.Name }

// Tuple is a fixed-arity anonymous product type, `(T1, T2, ...)`. Name is
// the canonical mangled form produced by [MangleTuple].
type Tuple struct {
	Name       string
	FieldTypes []Type
}

func (Tuple) Kind() Kind { return KindTuple }
func (t Tuple) String() string {
	names := make([]string, len(t.FieldTypes))
	for i, f := range t.FieldTypes {
		names[i] = f.String()
	}
	return "(" + strings.Join(names, ", ") + ")"
}

// Enum is an enumeration type. Values preserves declaration order and maps
// each element name to its (explicit or implicit) numeric value.
type Enum struct {
	Name        string
	Values      *OrderedValues
	ElementType Type
}

func (*Enum) Kind() Kind     { return KindEnum }
func (e *Enum) String() string { return e.Name }

// EnumElement is the type of a single qualified enum value expression,
// `EnumName::Element`.
type EnumElement struct {
	EnumName    string
	ElementType Type
}

func (EnumElement) Kind() Kind       { return KindEnumElement }
func (e EnumElement) String() string { return e.EnumName }

// Predicates (spec.md §4.4).

func IsIntegerType(t Type) bool {
	n, ok := t.(Number)
	return ok && !n.NumberKind.IsFloat()
}

func IsVoidType(t Type) bool {
	_, ok := t.(Void)
	return ok
}

func IsStructType(t Type) bool {
	_, ok := t.(*Struct)
	return ok
}

func IsGenericStructType(t Type) bool {
	_, ok := t.(GenericStruct)
	return ok
}

func IsEnumType(t Type) bool {
	_, ok := t.(*Enum)
	return ok
}

func IsEnumElementType(t Type) bool {
	_, ok := t.(EnumElement)
	return ok
}
