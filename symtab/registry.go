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

package symtab

import (
	"github.com/tidwall/btree"

	"github.com/bufbuild/la/types"
)

// FunctionEntry is the `functions: name -> FunctionKind` registry's value
// (spec.md §4.7, glossary "FunctionKind"): the parser needs OperatorKind to
// decide whether a bare identifier mid-expression should be recognized as
// an infix/postfix operator call, and Type to type-check the call once
// recognized.
type FunctionEntry struct {
	Name string
	Kind types.OperatorKind
	Type types.Function
}

// FunctionRegistry is `name -> FunctionKind`. It is backed by
// [btree.Map] rather than a plain Go map: unlike the enum-values table (see
// [types.OrderedValues]), nothing about function declaration order is
// observable to a program, and a sorted registry gives deterministic
// iteration for free when dumping the Parse Context for diagnostics or
// tooling, which a plain map cannot (spec.md §9 design notes).
type FunctionRegistry struct{ tree btree.Map[string, *FunctionEntry] }

func NewFunctionRegistry() *FunctionRegistry { return &FunctionRegistry{} }

func (r *FunctionRegistry) Define(e *FunctionEntry) bool {
	if _, ok := r.tree.Get(e.Name); ok {
		return false
	}
	r.tree.Set(e.Name, e)
	return true
}

func (r *FunctionRegistry) Lookup(name string) (*FunctionEntry, bool) {
	return r.tree.Get(name)
}

func (r *FunctionRegistry) Contains(name string) bool {
	_, ok := r.tree.Get(name)
	return ok
}

// Scan calls f for every entry in ascending name order, stopping early if f
// returns false.
func (r *FunctionRegistry) Scan(f func(*FunctionEntry) bool) {
	r.tree.Scan(func(_ string, e *FunctionEntry) bool { return f(e) })
}

// StructRegistry is the `structs: name -> Struct` registry.
type StructRegistry struct{ tree btree.Map[string, *types.Struct] }

func NewStructRegistry() *StructRegistry { return &StructRegistry{} }

func (r *StructRegistry) Define(s *types.Struct) bool {
	if _, ok := r.tree.Get(s.Name); ok {
		return false
	}
	r.tree.Set(s.Name, s)
	return true
}

func (r *StructRegistry) Lookup(name string) (*types.Struct, bool) {
	return r.tree.Get(name)
}

func (r *StructRegistry) Contains(name string) bool {
	_, ok := r.tree.Get(name)
	return ok
}

func (r *StructRegistry) Scan(f func(*types.Struct) bool) {
	r.tree.Scan(func(_ string, s *types.Struct) bool { return f(s) })
}

// EnumRegistry is the `enums: name -> Enum` registry.
type EnumRegistry struct{ tree btree.Map[string, *types.Enum] }

func NewEnumRegistry() *EnumRegistry { return &EnumRegistry{} }

func (r *EnumRegistry) Define(e *types.Enum) bool {
	if _, ok := r.tree.Get(e.Name); ok {
		return false
	}
	r.tree.Set(e.Name, e)
	return true
}

func (r *EnumRegistry) Lookup(name string) (*types.Enum, bool) {
	return r.tree.Get(name)
}

func (r *EnumRegistry) Contains(name string) bool {
	_, ok := r.tree.Get(name)
	return ok
}

func (r *EnumRegistry) Scan(f func(*types.Enum) bool) {
	r.tree.Scan(func(_ string, e *types.Enum) bool { return f(e) })
}
