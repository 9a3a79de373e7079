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

// Command la is the front end's command-line entry point: `compiler
// <command> <path> [log_flags]` (spec.md §6). Command-line option parsing
// is itself out of this module's core scope (spec.md §1 names it as a
// conventional external collaborator), so this file is kept deliberately
// thin: it parses flags, drives the Compilation Driver, and renders
// diagnostics.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/bufbuild/la/ast"
	"github.com/bufbuild/la/checker"
	"github.com/bufbuild/la/driver"
	"github.com/bufbuild/la/report"
	"github.com/bufbuild/la/symtab"
)

const usage = `usage: la <command> <path> [log_flags]

commands:
  check          parse and report diagnostics only
  compile        parse, then hand off to the (out-of-scope) code generator
  emit-ir        parse, then hand off to the (out-of-scope) code generator
  generate-code  parse, then hand off to the (out-of-scope) code generator
  gen-ast        parse and pretty-print the resulting AST

path is a .la file or a directory, walked recursively for .la files.

log_flags is a comma-separated subset of p,l,c,t,g enabling
parser/lexer/codegen/typechecker/general tracing.
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr *os.File) int {
	fs := pflag.NewFlagSet("la", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }
	libDir := fs.String("lib-dir", "lib", "directory import \"X\" resolves against")

	if err := fs.Parse(args); err != nil {
		return 1
	}

	positional := fs.Args()
	if len(positional) < 2 {
		fs.Usage()
		return 1
	}

	command, path := positional[0], positional[1]
	var logFlags string
	if len(positional) >= 3 {
		logFlags = positional[2]
	}

	switch command {
	case "check", "compile", "emit-ir", "generate-code", "gen-ast":
	default:
		fmt.Fprintf(stderr, "la: unknown command %q\n\n", command)
		fs.Usage()
		return 1
	}

	d := driver.New(driver.Options{
		LibDir: *libDir,
		Log:    symtab.ParseLogFlags(logFlags),
	})

	results, err := compile(d, path)
	if err != nil {
		fmt.Fprintf(stderr, "la: %v\n", err)
		return 1
	}

	anyFailed := false
	for _, res := range results {
		if res.Err != nil {
			anyFailed = true
		}

		if command == "gen-ast" && res.Unit != nil {
			for _, f := range res.Unit.Files {
				fmt.Fprint(stdout, ast.Print(f))
			}
		}

		if res.Ctx != nil {
			// Each root owns its own Source Manager, so IDs are only
			// meaningful relative to that root's own Context: render each
			// root's diagnostics against its own Context rather than
			// pooling every root into one resolver (spec.md §4.1's IDs
			// are per-Manager, not global across independently-compiled
			// roots).
			report.RenderAll(stdout, stderr, res.Ctx.Sources, res.Ctx.Report)
			if res.Ctx.Report.HasErrors() {
				anyFailed = true
			}
			if command == "check" {
				_ = checker.NoOp{}.Check(res.Unit, res.Ctx)
			}
		}
	}

	if anyFailed {
		return 1
	}

	switch command {
	case "compile", "emit-ir", "generate-code":
		fmt.Fprintln(stdout, "parse succeeded; code generation is out of scope for this front end")
	}
	return 0
}

// compile dispatches to CompileRoot or CompileAll depending on whether path
// is a file or a directory (spec.md §6, SPEC_FULL.md §4.3).
func compile(d *driver.Driver, path string) ([]*driver.Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		return []*driver.Result{d.CompileRoot(path)}, nil
	}

	roots, err := driver.DiscoverRoots(path)
	if err != nil {
		return nil, err
	}
	results, _ := d.CompileAll(roots)
	return results, nil
}
