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

// Package linker wraps the external linker invocation spec.md §1 calls
// "conventional glue": this front end never produces object files itself,
// so the only implementation here is a thin os/exec wrapper.
package linker

import (
	"bytes"
	"fmt"
	"os/exec"
)

// Wrapper invokes an external linker over an object file, producing an
// output binary path.
type Wrapper interface {
	Link(objectFile string) (outputPath string, err error)
}

// SubprocessWrapper runs Program as a subprocess to link ObjectFile into
// OutputPath, matching spec.md §9's note that "faithful behavior is to
// iterate and pick the first [linker] that succeeds" -- see
// [FirstAvailable], which builds one of these per candidate and returns the
// first that runs successfully, rather than the teacher's original
// first-candidate-only check.
type SubprocessWrapper struct {
	// Program is the linker executable (e.g. "cc", "ld", "lld").
	Program string
	// ExtraArgs are appended after the object file and output flag.
	ExtraArgs []string
}

var _ Wrapper = SubprocessWrapper{}

// Link runs Program on objectFile, producing an output path derived from
// it by stripping the ".o" suffix (or appending ".out" if absent).
func (w SubprocessWrapper) Link(objectFile string) (string, error) {
	out := outputPathFor(objectFile)
	args := append([]string{objectFile, "-o", out}, w.ExtraArgs...)

	cmd := exec.Command(w.Program, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("linker: %s failed: %w: %s", w.Program, err, stderr.String())
	}
	return out, nil
}

func outputPathFor(objectFile string) string {
	const suffix = ".o"
	if len(objectFile) > len(suffix) && objectFile[len(objectFile)-len(suffix):] == suffix {
		return objectFile[:len(objectFile)-len(suffix)]
	}
	return objectFile + ".out"
}

// FirstAvailable tries each candidate program in order via a
// SubprocessWrapper, returning the first that links objectFile
// successfully. Unlike the teacher's original checkAvailableLinker (spec.md
// §9), a failure on the first candidate does not abort the search: every
// candidate is tried before giving up.
func FirstAvailable(candidates []string, objectFile string, extraArgs ...string) (string, error) {
	var lastErr error
	for _, candidate := range candidates {
		out, err := (SubprocessWrapper{Program: candidate, ExtraArgs: extraArgs}).Link(objectFile)
		if err == nil {
			return out, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("linker: no candidates given")
	}
	return "", fmt.Errorf("linker: no available linker found: %w", lastErr)
}
