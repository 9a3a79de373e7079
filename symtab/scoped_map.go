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

// Package symtab implements the Scoped Map (lexical scoping of local
// constants and variables) and the Parse Context that aggregates everything
// the parser needs to resolve names as it goes: the alias table, the
// function/struct/enum registries, and the diagnostic/source machinery
// (spec.md §3, §4.7, §4.8).
package symtab

// ScopedMap is a stack of lexical scopes mapping names to values of type V,
// used for the compile-time constant environment threaded through block
// parsing (spec.md §4.7). Scope 0 is the file/global scope and is never
// popped.
//
// ScopedMap intentionally keeps the spec's documented quirk: Update
// overwrites the binding in every enclosing scope that contains the key,
// not just the innermost match, and does not stop once it finds the first
// one. See [ScopedMap.Update].
type ScopedMap[V any] struct {
	scopes []map[string]V
}

// NewScopedMap returns a ScopedMap with a single, never-popped global scope.
func NewScopedMap[V any]() *ScopedMap[V] {
	return &ScopedMap[V]{scopes: []map[string]V{{}}}
}

// PushScope opens a new, innermost lexical scope.
func (m *ScopedMap[V]) PushScope() {
	m.scopes = append(m.scopes, map[string]V{})
}

// PopScope closes the innermost lexical scope. It panics if called when
// only the global scope remains, which would indicate a parser bug (every
// PushScope must be matched by a PopScope before returning to the caller
// that owns the enclosing scope).
func (m *ScopedMap[V]) PopScope() {
	if len(m.scopes) <= 1 {
		panic("symtab: PopScope called with no scope to pop")
	}
	m.scopes = m.scopes[:len(m.scopes)-1]
}

// Depth returns the number of currently open scopes, including the global
// scope (so a fresh ScopedMap has Depth() == 1).
func (m *ScopedMap[V]) Depth() int { return len(m.scopes) }

// Define binds name to value in the current (innermost) scope. It returns
// false without modifying the map if name is already bound in the current
// scope (shadowing an outer scope's binding of the same name is allowed;
// redefining within the same scope is not, spec.md §8 invariant 9).
func (m *ScopedMap[V]) Define(name string, value V) bool {
	cur := m.scopes[len(m.scopes)-1]
	if _, ok := cur[name]; ok {
		return false
	}
	cur[name] = value
	return true
}

// IsDefined reports whether name is bound in the current scope only,
// ignoring outer scopes.
func (m *ScopedMap[V]) IsDefined(name string) bool {
	_, ok := m.scopes[len(m.scopes)-1][name]
	return ok
}

// Lookup searches from the innermost scope outward and returns the first
// binding found.
func (m *ScopedMap[V]) Lookup(name string) (V, bool) {
	for i := len(m.scopes) - 1; i >= 0; i-- {
		if v, ok := m.scopes[i][name]; ok {
			return v, true
		}
	}
	var zero V
	return zero, false
}

// LookupOnCurrent searches the current scope only.
func (m *ScopedMap[V]) LookupOnCurrent(name string) (V, bool) {
	v, ok := m.scopes[len(m.scopes)-1][name]
	return v, ok
}

// LookupWithLevel behaves like Lookup but additionally reports how many
// scopes outward the binding was found at: 0 for the current scope, 1 for
// its immediate parent, and so on. The parser does not call it.
func (m *ScopedMap[V]) LookupWithLevel(name string) (value V, level int, ok bool) {
	for i := len(m.scopes) - 1; i >= 0; i-- {
		if v, found := m.scopes[i][name]; found {
			return v, len(m.scopes) - 1 - i, true
		}
	}
	var zero V
	return zero, -1, false
}

// Update overwrites every existing binding of name, from the innermost
// scope outward, rather than stopping at the first (innermost) match the
// way Lookup does. This mirrors the teacher's parser-state environment:
// a name shadowed in multiple enclosing scopes has all of its shadows
// overwritten by a single assignment, not just the nearest one. It returns
// false if name is not bound in any scope.
func (m *ScopedMap[V]) Update(name string, value V) bool {
	updated := false
	for i := len(m.scopes) - 1; i >= 0; i-- {
		if _, ok := m.scopes[i][name]; ok {
			m.scopes[i][name] = value
			updated = true
		}
	}
	return updated
}
