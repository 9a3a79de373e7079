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

// OrderedValues is an insertion-ordered string -> uint32 map, used for an
// [Enum]'s value table (spec.md §3, §9 "Use ordered maps, not hash maps,
// for the enum values map"). A sorted structure like [tidwall/btree.Map]
// (used elsewhere in this codebase for the symbol registries, see
// symtab.Context) would reorder entries by key and so cannot stand in for
// this: declaration order is part of the spec, not just an iteration nicety,
// and there is no insertion-ordered map in the example corpus or the
// standard library, so a small slice+map pair is used here directly.
type OrderedValues struct {
	names  []string
	values map[string]uint32
}

// NewOrderedValues returns an empty table.
func NewOrderedValues() *OrderedValues {
	return &OrderedValues{values: map[string]uint32{}}
}

// Define appends name -> value, in declaration order. Returns false if name
// is already present.
func (o *OrderedValues) Define(name string, value uint32) bool {
	if _, ok := o.values[name]; ok {
		return false
	}
	o.names = append(o.names, name)
	o.values[name] = value
	return true
}

// Lookup returns the value for name and whether it was found.
func (o *OrderedValues) Lookup(name string) (uint32, bool) {
	v, ok := o.values[name]
	return v, ok
}

// Contains reports whether name is defined.
func (o *OrderedValues) Contains(name string) bool {
	_, ok := o.values[name]
	return ok
}

// Len returns the number of elements.
func (o *OrderedValues) Len() int { return len(o.names) }

// Names returns the element names in declaration order. The slice must not
// be mutated by the caller.
func (o *OrderedValues) Names() []string { return o.names }

// HasDuplicateValue reports whether any two elements share an explicit
// value, by scanning the recorded values (spec.md §8 invariant 6).
func (o *OrderedValues) HasDuplicateValue() (name string, dup bool) {
	seen := map[uint32]string{}
	for _, n := range o.names {
		v := o.values[n]
		if prior, ok := seen[v]; ok {
			return prior, true
		}
		seen[v] = n
	}
	return "", false
}
