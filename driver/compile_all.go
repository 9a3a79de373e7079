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

package driver

import (
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/bufbuild/la/report"
)

// defaultMaxParallelism bounds concurrent root compilation: the smaller of
// GOMAXPROCS and the CPU count, and at least 1, matching the teacher's own
// runtime.GOMAXPROCS-based default in compiler.go's Compile.
func defaultMaxParallelism() int {
	n := runtime.GOMAXPROCS(-1)
	if cpus := runtime.NumCPU(); cpus < n {
		n = cpus
	}
	if n < 1 {
		n = 1
	}
	return n
}

// CompileAll compiles every root in roots independently and concurrently --
// one fresh Parse Context per root, exactly as CompileRoot does for a single
// file. Concurrency is bounded by defaultMaxParallelism; there is no option
// to change the bound. spec.md §5's "single-threaded and synchronous" guarantee holds
// *within* each root's parse, which never touches another root's Context.
//
// Results are returned in the same order as roots, independent of
// completion order. The second return value is one aggregate Report built
// by funneling each root's diagnostics in as its compilation finishes,
// guarded by a mutex since multiple roots finish concurrently
// (SPEC_FULL.md §4 item 3, directory-mode CLI output).
func (d *Driver) CompileAll(roots []string) ([]*Result, *report.Report) {
	results := make([]*Result, len(roots))
	agg := report.NewReport()
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(defaultMaxParallelism())
	for i, root := range roots {
		i, root := i, root
		g.Go(func() error {
			res := d.CompileRoot(root)
			results[i] = res

			mu.Lock()
			if res.Ctx != nil {
				agg.Merge(res.Ctx.Report)
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // CompileRoot never returns a Go error; failures live in Result.Err.

	return results, agg
}
