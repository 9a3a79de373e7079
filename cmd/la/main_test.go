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

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCheckSucceedsOnValidSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.la")
	require.NoError(t, os.WriteFile(path, []byte(`fun main() int32 { return 0; }`), 0o644))

	outPath := filepath.Join(dir, "stdout.txt")
	errPath := filepath.Join(dir, "stderr.txt")
	outW, err := os.Create(outPath)
	require.NoError(t, err)
	errW, err := os.Create(errPath)
	require.NoError(t, err)

	code := run([]string{"check", path}, outW, errW)
	outW.Close()
	errW.Close()

	assert.Equal(t, 0, code)
}

func TestRunCheckReportsErrorsAndExitsNonZero(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.la")
	require.NoError(t, os.WriteFile(path, []byte(`enum Color { Red, Green = 5, Blue, }`), 0o644))

	outPath := filepath.Join(dir, "stdout.txt")
	errPath := filepath.Join(dir, "stderr.txt")
	outW, err := os.Create(outPath)
	require.NoError(t, err)
	errW, err := os.Create(errPath)
	require.NoError(t, err)

	code := run([]string{"check", path}, outW, errW)
	outW.Close()
	errW.Close()

	assert.Equal(t, 1, code)
	out, _ := os.ReadFile(outPath)
	assert.Contains(t, string(out), "explicit value")
}

func TestRunGenAstPrintsTree(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.la")
	require.NoError(t, os.WriteFile(path, []byte(`fun main() int32 { return 0; }`), 0o644))

	outPath := filepath.Join(dir, "stdout.txt")
	outW, err := os.Create(outPath)
	require.NoError(t, err)
	errW, err := os.Create(filepath.Join(dir, "stderr.txt"))
	require.NoError(t, err)

	code := run([]string{"gen-ast", path}, outW, errW)
	outW.Close()
	errW.Close()

	assert.Equal(t, 0, code)
	out, _ := os.ReadFile(outPath)
	assert.Contains(t, string(out), "(file")
	assert.Contains(t, string(out), "main")
}

func TestRunUnknownCommandExitsOne(t *testing.T) {
	dir := t.TempDir()
	outW, err := os.Create(filepath.Join(dir, "stdout.txt"))
	require.NoError(t, err)
	errW, err := os.Create(filepath.Join(dir, "stderr.txt"))
	require.NoError(t, err)

	code := run([]string{"bogus", "x.la"}, outW, errW)
	outW.Close()
	errW.Close()

	assert.Equal(t, 1, code)
}

func TestRunMissingArgsPrintsUsage(t *testing.T) {
	dir := t.TempDir()
	outW, err := os.Create(filepath.Join(dir, "stdout.txt"))
	require.NoError(t, err)
	errW, err := os.Create(filepath.Join(dir, "stderr.txt"))
	require.NoError(t, err)

	code := run(nil, outW, errW)
	outW.Close()
	errW.Close()

	assert.Equal(t, 1, code)
	errOut, _ := os.ReadFile(filepath.Join(dir, "stderr.txt"))
	assert.Contains(t, string(errOut), "usage:")
}
