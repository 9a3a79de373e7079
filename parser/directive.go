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

package parser

import (
	"github.com/bufbuild/la/ast"
	"github.com/bufbuild/la/token"
)

// exprDirectives is the set of directives valid in expression context
// (spec.md §4.9.7); @max_value/@min_value additionally take a type
// argument.
var exprDirectives = map[string]bool{
	"line": true, "column": true, "filepath": true,
	"max_value": true, "min_value": true,
	"infinity": true, "infinity32": true, "infinity64": true,
}

// parseStmtDirective handles the one statement-context directive,
// `@complete`, which must prefix a `switch` statement (spec.md §4.9.2,
// §4.9.7).
func (p *Parser) parseStmtDirective() (ast.Stmt, error) {
	span := p.current.Span
	p.advance() // '@'
	name, nameSpan, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if name != "complete" {
		return nil, p.failAt(nameSpan, "unknown statement directive @%s", name)
	}
	if !p.at(token.Switch) {
		return nil, p.failAt(span, "@complete must prefix a switch statement")
	}
	return p.parseSwitchStmtComplete(true)
}

// parseExprDirective parses a `@ident[(args...)]` expression-context
// directive: `@line`, `@column`, `@filepath`, `@vec`'s type-level use is
// handled in parseType instead, `@max_value(T)`, `@min_value(T)`,
// `@infinity`, `@infinity32`, `@infinity64` (spec.md §4.9.7).
func (p *Parser) parseExprDirective() (ast.Expr, error) {
	start := p.current.Span
	p.advance() // '@'
	name, nameSpan, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if !exprDirectives[name] {
		return nil, p.failAt(nameSpan, "unknown expression directive @%s", name)
	}

	d := &ast.DirectiveExpr{Name: name}
	if name == "max_value" || name == "min_value" {
		if _, err := p.expect(token.LParen); err != nil {
			return nil, err
		}
		ty, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		d.TypeArg = ty
	}
	end := p.previous.Span
	d.SetSpan(start.Join(end))
	return d, nil
}
