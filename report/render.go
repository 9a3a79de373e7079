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

package report

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/rivo/uniseg"

	"github.com/bufbuild/la/token"
)

// Span is the location a [Diagnostic] is anchored to. It is exactly
// [token.Span]; the alias exists so callers of this package need not import
// token directly for the common case of building a diagnostic.
type Span = token.Span

// PathResolver resolves a [token.FileID] to the path it was registered
// under. [*source.Manager] satisfies this interface.
type PathResolver interface {
	Resolve(id token.FileID) string
}

// Render writes every diagnostic at or above minLevel to w: all errors
// first, then all warnings, each group in the order it was recorded.
// Diagnostics are rendered as:
//
//	LEVEL in <path>:<line>:<col>
//	<line_number> | <text>
//	<tildes pointing to col_start>^ <message>
//
// matching spec.md §4.2. If the offending file can't be opened to fetch the
// source line, that failure is reported to errOut (the "operator stream")
// without aborting the rendering of subsequent diagnostics.
func Render(w io.Writer, errOut io.Writer, resolver PathResolver, r *Report, minLevel Level) {
	all := make([]Diagnostic, 0, len(r.errors)+len(r.warnings))
	all = append(all, r.errors...)
	all = append(all, r.warnings...)

	for _, d := range all {
		if d.Level > minLevel {
			continue
		}
		renderOne(w, errOut, resolver, d)
	}
}

// RenderAll writes both the errors and the warnings in r to w.
func RenderAll(w io.Writer, errOut io.Writer, resolver PathResolver, r *Report) {
	Render(w, errOut, resolver, r, Warning)
}

func renderOne(w io.Writer, errOut io.Writer, resolver PathResolver, d Diagnostic) {
	path := resolver.Resolve(d.Span.FileID)

	fmt.Fprintf(w, "%s in %s:%d:%d\n", levelLabel(d.Level), path, d.Span.Line, d.Span.ColStart)

	line, err := readLine(path, int(d.Span.Line))
	if err != nil {
		fmt.Fprintf(errOut, "report: could not read %s to render diagnostic: %v\n", path, err)
		fmt.Fprintf(w, "%s\n", d.Message)
		return
	}

	lineNoText := fmt.Sprintf("%d", d.Span.Line)
	fmt.Fprintf(w, "%s | %s\n", lineNoText, line)

	gutter := make([]byte, len(lineNoText)+len(" | "))
	for i := range gutter {
		gutter[i] = ' '
	}

	fmt.Fprintf(w, "%s%s^ %s\n", gutter, caretPrefix(line, int(d.Span.ColStart)), d.Message)
}

func levelLabel(l Level) string {
	switch l {
	case Error:
		return "ERROR"
	case Warning:
		return "WARNING"
	default:
		return l.String()
	}
}

// caretPrefix returns one tilde per display column of the first col-1
// grapheme clusters of line (at least one per cluster), so the caret lines
// up even when the prefix contains wide or multi-byte runes.
func caretPrefix(line string, col int) string {
	if col <= 1 {
		return ""
	}
	var (
		tildes int
		taken  int
	)
	state := -1
	for len(line) > 0 && taken < col-1 {
		cluster, rest, width, newState := uniseg.FirstGraphemeClusterInString(line, state)
		line = rest
		state = newState
		taken++
		if width <= 0 {
			width = 1
		}
		tildes += width
		_ = cluster
	}
	b := make([]byte, tildes)
	for i := range b {
		b[i] = '~'
	}
	return string(b)
}

// readLine opens path and returns its n-th (1-indexed) line, without its
// trailing newline. Matches spec.md §4.2's "opening the file and scanning
// to line_number" rendering strategy.
func readLine(path string, n int) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		if line == n {
			return scanner.Text(), nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("line %d not found", n)
}
