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

package types

import (
	"strconv"
	"strings"
)

// OperatorKind distinguishes how a user-defined `operator` declaration may
// be called during expression parsing (spec.md §4.6, glossary "FunctionKind").
type OperatorKind int

const (
	Normal OperatorKind = iota
	Prefix
	Infix
	Postfix
)

func (k OperatorKind) String() string {
	switch k {
	case Prefix:
		return "prefix"
	case Infix:
		return "infix"
	case Postfix:
		return "postfix"
	default:
		return "normal"
	}
}

// MangleTuple returns the canonical mangled name for a tuple type with the
// given field types, used as [Tuple.Name] (spec.md §4.4).
func MangleTuple(fields []Type) string {
	var b strings.Builder
	b.WriteString("$tuple")
	for _, f := range fields {
		b.WriteByte('$')
		b.WriteString(mangleComponent(f))
	}
	return b.String()
}

// MangleOperatorFunction returns the deterministic mangled name under which
// a user-defined `operator` declaration is recorded in the function
// registry, as a pure function of its kind and parameter types (spec.md
// §4.4, §4.9.6, §8 invariant 8: two different param-type tuples must
// produce two different names).
func MangleOperatorFunction(op string, kind OperatorKind, params []Type) string {
	var b strings.Builder
	b.WriteString("$operator$")
	b.WriteString(kind.String())
	b.WriteByte('$')
	b.WriteString(mangleOpSymbol(op))
	for _, p := range params {
		b.WriteByte('$')
		b.WriteString(mangleComponent(p))
	}
	return b.String()
}

// mangleOpSymbol renders an operator token's literal text (e.g. "+", ">>")
// as an identifier-safe fragment.
func mangleOpSymbol(op string) string {
	var b strings.Builder
	for _, r := range op {
		switch r {
		case '+':
			b.WriteString("plus")
		case '-':
			b.WriteString("minus")
		case '*':
			b.WriteString("star")
		case '/':
			b.WriteString("slash")
		case '%':
			b.WriteString("percent")
		case '&':
			b.WriteString("amp")
		case '|':
			b.WriteString("pipe")
		case '^':
			b.WriteString("caret")
		case '~':
			b.WriteString("tilde")
		case '!':
			b.WriteString("bang")
		case '<':
			b.WriteString("lt")
		case '>':
			b.WriteString("gt")
		case '=':
			b.WriteString("eq")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func mangleComponent(t Type) string {
	switch v := t.(type) {
	case Number:
		return v.NumberKind.String()
	case Void:
		return "void"
	case Pointer:
		return "ptr_" + mangleComponent(v.Base)
	case StaticArray:
		return "arr" + strconv.FormatUint(uint64(v.Size), 10) + "_" + mangleComponent(v.Element)
	case StaticVector:
		return "vec" + strconv.FormatUint(uint64(v.Array.Size), 10) + "_" + mangleComponent(v.Array.Element)
	case Function:
		parts := make([]string, len(v.Params))
		for i, p := range v.Params {
			parts[i] = mangleComponent(p)
		}
		s := "fn_" + strings.Join(parts, "_") + "_ret_" + mangleComponent(v.Return)
		if v.HasVarargs {
			s += "_varargs"
		}
		return s
	case *Struct:
		return "struct_" + v.Name
	case GenericStruct:
		parts := make([]string, len(v.Args))
		for i, a := range v.Args {
			parts[i] = mangleComponent(a)
		}
		return "gstruct_" + v.Base.Name + "_" + strings.Join(parts, "_")
	case GenericParameter:
		return "gparam_" + v.Name
	case Tuple:
		return v.Name
	case *Enum:
		return "enum_" + v.Name
	case EnumElement:
		return "enumelem_" + v.EnumName
	default:
		return "unknown"
	}
}
