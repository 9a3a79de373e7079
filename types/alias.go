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

// AliasTable is the Alias Table (spec.md §4.5): named type aliases,
// preloaded with the language's primitive numeric types.
type AliasTable struct {
	aliases map[string]Type
}

// NewAliasTable returns an AliasTable preloaded with every primitive.
func NewAliasTable() *AliasTable {
	t := &AliasTable{aliases: map[string]Type{}}
	prim := map[string]Type{
		"int1":    Number{NumberKind: I1},
		"int8":    Number{NumberKind: I8},
		"int16":   Number{NumberKind: I16},
		"int32":   Number{NumberKind: I32},
		"int64":   Number{NumberKind: I64},
		"uint8":   Number{NumberKind: U8},
		"uint16":  Number{NumberKind: U16},
		"uint32":  Number{NumberKind: U32},
		"uint64":  Number{NumberKind: U64},
		"float32": Number{NumberKind: F32},
		"float64": Number{NumberKind: F64},
		"char":    Number{NumberKind: I8},
		"uchar":   Number{NumberKind: U8},
		"void":    Void{},
	}
	for name, ty := range prim {
		t.aliases[name] = ty
	}
	return t
}

// Contains reports whether name is a defined alias.
func (t *AliasTable) Contains(name string) bool {
	_, ok := t.aliases[name]
	return ok
}

// Define records name -> ty. The caller is responsible for first checking
// uniqueness against the struct/enum registries (spec.md §4.5: "no
// overwrite check -- caller enforces uniqueness").
func (t *AliasTable) Define(name string, ty Type) {
	t.aliases[name] = ty
}

// Resolve returns the type aliased by name. The caller must have already
// checked existence with [AliasTable.Contains].
func (t *AliasTable) Resolve(name string) Type {
	return t.aliases[name]
}
