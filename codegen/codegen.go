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

// Package codegen specifies the opaque handle types the LLVM-based code
// generator (spec.md §1/§6, explicitly out of scope) hands back to this
// front end. Neither type has any method: they exist purely so an `Any`
// value envelope elsewhere in the toolchain can carry a code-generator
// handle without this module depending on LLVM bindings.
package codegen

// ValueHandle is an opaque handle to an LLVMValueRef produced by the code
// generator. The front end never constructs or interprets one; it only
// threads it through.
type ValueHandle interface {
	llvmValueHandle()
}

// TypeHandle is an opaque handle to an LLVMTypeRef produced by the code
// generator, analogous to ValueHandle.
type TypeHandle interface {
	llvmTypeHandle()
}
