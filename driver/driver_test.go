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

package driver_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/la/driver"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

func TestCompileRootSimpleFile(t *testing.T) {
	dir := t.TempDir()
	main := filepath.Join(dir, "main.la")
	writeFile(t, main, `fun main() int32 { return 0; }`)

	d := driver.New(driver.Options{})
	res := d.CompileRoot(main)
	require.NoError(t, res.Err)
	require.False(t, res.Ctx.Report.HasErrors())
	require.Len(t, res.Unit.Files, 1)
	assert.Len(t, res.Unit.TreeNodes, 1)
}

func TestCompileRootFollowsLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "util.la"), `fun helper() int32 { return 1; }`)
	main := filepath.Join(dir, "main.la")
	writeFile(t, main, `load "util"; fun main() int32 { return 0; }`)

	d := driver.New(driver.Options{})
	res := d.CompileRoot(main)
	require.NoError(t, res.Err)
	require.False(t, res.Ctx.Report.HasErrors())
	require.Len(t, res.Unit.Files, 2)
	assert.True(t, res.Ctx.Functions.Contains("helper"))
	assert.True(t, res.Ctx.Functions.Contains("main"))
}

func TestCompileRootFollowsImportFromLibDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "lib", "std.la"), `fun stdfn() int32 { return 2; }`)
	main := filepath.Join(dir, "main.la")
	writeFile(t, main, `import "std"; fun main() int32 { return 0; }`)

	d := driver.New(driver.Options{LibDir: filepath.Join(dir, "lib")})
	res := d.CompileRoot(main)
	require.NoError(t, res.Err)
	require.False(t, res.Ctx.Report.HasErrors())
	assert.True(t, res.Ctx.Functions.Contains("stdfn"))
}

func TestCompileRootMissingImportReportsError(t *testing.T) {
	dir := t.TempDir()
	main := filepath.Join(dir, "main.la")
	writeFile(t, main, `import "nope"; fun main() int32 { return 0; }`)

	d := driver.New(driver.Options{LibDir: filepath.Join(dir, "lib")})
	res := d.CompileRoot(main)
	require.Error(t, res.Err)
	require.True(t, res.Ctx.Report.HasErrors())
	assert.Contains(t, res.Ctx.Report.Errors()[0].Message, "nope")
}

func TestCompileRootAlreadyRegisteredImportIsSkipped(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.la"), `load "b"; fun fromA() int32 { return 1; }`)
	writeFile(t, filepath.Join(dir, "b.la"), `load "a"; fun fromB() int32 { return 2; }`)

	d := driver.New(driver.Options{})
	res := d.CompileRoot(filepath.Join(dir, "a.la"))
	require.NoError(t, res.Err)
	require.False(t, res.Ctx.Report.HasErrors())
	require.Len(t, res.Unit.Files, 2)
}

func TestCompileAllCompilesEveryRootIndependently(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "one.la"), `fun main() int32 { return 0; }`)
	writeFile(t, filepath.Join(dir, "two.la"), `fun main() int32 { return 1; }`)

	roots, err := driver.DiscoverRoots(dir)
	require.NoError(t, err)
	require.Len(t, roots, 2)

	d := driver.New(driver.Options{})
	results, agg := d.CompileAll(roots)
	require.Len(t, results, 2)
	for _, res := range results {
		require.NoError(t, res.Err)
	}
	assert.False(t, agg.HasErrors())
}

func TestDiscoverRootsWalksRecursively(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.la"), `fun main() int32 { return 0; }`)
	writeFile(t, filepath.Join(dir, "nested", "b.la"), `fun main() int32 { return 0; }`)
	writeFile(t, filepath.Join(dir, "ignored.txt"), `not la source`)

	roots, err := driver.DiscoverRoots(dir)
	require.NoError(t, err)
	assert.Len(t, roots, 2)
}
