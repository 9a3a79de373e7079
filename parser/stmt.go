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

// pushLoopLevel and popLoopLevel maintain the loop_levels_stack (spec.md
// §4.9.2): entering a function or lambda body pushes a fresh 0; entering a
// loop increments the top entry.
func (p *Parser) pushLoopLevel() { p.loopLevels = append(p.loopLevels, 0) }

func (p *Parser) popLoopLevel() { p.loopLevels = p.loopLevels[:len(p.loopLevels)-1] }

func (p *Parser) enterLoop() {
	if len(p.loopLevels) == 0 {
		p.pushLoopLevel()
	}
	p.loopLevels[len(p.loopLevels)-1]++
}

func (p *Parser) exitLoop() {
	p.loopLevels[len(p.loopLevels)-1]--
}

// currentLoopDepth returns how many loops are currently open in the
// innermost function/lambda body.
func (p *Parser) currentLoopDepth() int {
	if len(p.loopLevels) == 0 {
		return 0
	}
	return p.loopLevels[len(p.loopLevels)-1]
}

func (p *Parser) parseBlock() (*ast.BlockStmt, error) {
	start := p.current.Span
	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}
	p.ctx.Constants.PushScope()
	defer p.ctx.Constants.PopScope()

	var stmts []ast.Stmt
	for !p.at(token.RBrace) {
		s, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		if s != nil {
			stmts = append(stmts, s)
		}
	}
	end := p.current.Span
	if _, err := p.expect(token.RBrace); err != nil {
		return nil, err
	}
	b := &ast.BlockStmt{Stmts: stmts}
	b.SetSpan(start.Join(end))
	return b, nil
}

// parseExprBodyAsBlock parses the `= <expr>;` shorthand function body
// (spec.md §4.9.1's sample declarations use this form alongside the full
// `{ ... }` block) and wraps it as a single-statement block returning the
// expression's value, so both body forms produce the same [ast.BlockStmt]
// shape downstream.
func (p *Parser) parseExprBodyAsBlock() (*ast.BlockStmt, error) {
	start := p.current.Span
	p.advance() // '='
	val, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	end := p.current.Span
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}
	ret := &ast.ReturnStmt{Value: val}
	ret.SetSpan(start.Join(end))
	b := &ast.BlockStmt{Stmts: []ast.Stmt{ret}}
	b.SetSpan(start.Join(end))
	return b, nil
}

func (p *Parser) parseStmt() (ast.Stmt, error) {
	switch {
	case p.at(token.Var):
		return p.parseVarDecl()
	case p.at(token.Const):
		return p.parseConstDecl()
	case p.at(token.If):
		return p.parseIfStmt()
	case p.at(token.For):
		return p.parseForStmt()
	case p.at(token.While):
		return p.parseWhileStmt()
	case p.at(token.Switch):
		return p.parseSwitchStmt()
	case p.at(token.Return):
		return p.parseReturnStmt()
	case p.at(token.Defer):
		return p.parseDeferStmt()
	case p.at(token.Break):
		return p.parseBreakStmt()
	case p.at(token.Continue):
		return p.parseContinueStmt()
	case p.at(token.LBrace):
		return p.parseBlock()
	case p.at(token.At):
		return p.parseStmtDirective()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseIfStmt() (*ast.IfStmt, error) {
	start := p.current.Span
	var conds []ast.Expr
	var blocks []*ast.BlockStmt
	var elseBlock *ast.BlockStmt

	p.advance() // 'if'
	for {
		if _, err := p.expect(token.LParen); err != nil {
			return nil, err
		}
		cond, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		block, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		conds = append(conds, cond)
		blocks = append(blocks, block)

		if !p.at(token.Else) {
			break
		}
		p.advance() // 'else'
		if p.at(token.If) {
			p.advance()
			continue
		}
		elseBlock, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
		break
	}

	s := &ast.IfStmt{Conds: conds, Blocks: blocks, Else: elseBlock}
	s.SetSpan(start)
	return s, nil
}

// parseForStmt parses all three surface forms of `for` (spec.md §4.9.2):
// infinite, for-each (auto-binding `it`/`it_index`, or `(name[, idx]: expr)`),
// and range (`start .. end [: step]`).
func (p *Parser) parseForStmt() (*ast.ForStmt, error) {
	start := p.current.Span
	p.advance() // 'for'

	s := &ast.ForStmt{}
	if p.at(token.LBrace) {
		s.Kind = ast.ForInfinite
	} else {
		if _, err := p.expect(token.LParen); err != nil {
			return nil, err
		}

		// Try to distinguish range ("expr .. expr") from for-each
		// ("expr", or "name[, idx]: expr") by first parsing an expression
		// and then looking at what follows.
		if p.looksLikeNamedForEach() {
			itemName, _, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			var indexName string
			if p.at(token.Comma) {
				p.advance()
				indexName, _, err = p.expectIdent()
				if err != nil {
					return nil, err
				}
			}
			if _, err := p.expect(token.Colon); err != nil {
				return nil, err
			}
			coll, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			s.Kind = ast.ForEach
			s.ItemName, s.IndexName, s.Collection = itemName, indexName, coll
		} else {
			first, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if p.at(token.DotDot) {
				p.advance()
				end, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				var step ast.Expr
				if p.at(token.Colon) {
					p.advance()
					step, err = p.parseExpr()
					if err != nil {
						return nil, err
					}
				}
				s.Kind = ast.ForRange
				s.RangeStart, s.RangeEnd, s.RangeStep = first, end, step
			} else {
				s.Kind = ast.ForEach
				s.Collection = first
				s.ItemName, s.IndexName = "it", "it_index"
			}
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
	}

	p.enterLoop()
	body, err := p.parseBlock()
	p.exitLoop()
	if err != nil {
		return nil, err
	}
	s.Body = body
	s.SetSpan(start)
	return s, nil
}

// looksLikeNamedForEach reports whether the tokens at the current position
// begin the `name[, idx]: expr` for-each form, distinguishing it from a bare
// expression by lookahead: an identifier directly followed by ':' or by
// ',' <ident> ':'.
//
// The second case needs a peek past the parser's 3-token window (current,
// next, and one more to see the colon), so it clones the underlying Lexer --
// a plain value type with no shared state -- and scans ahead on the clone,
// leaving the parser's actual position untouched.
func (p *Parser) looksLikeNamedForEach() bool {
	if !p.at(token.Ident) {
		return false
	}
	if p.next.Kind == token.Colon {
		return true
	}
	if p.next.Kind != token.Comma {
		return false
	}
	lookahead := *p.lex
	idxTok := lookahead.ScanNext()
	if idxTok.Kind != token.Ident {
		return false
	}
	colonTok := lookahead.ScanNext()
	return colonTok.Kind == token.Colon
}

func (p *Parser) parseWhileStmt() (*ast.WhileStmt, error) {
	start := p.current.Span
	p.advance() // 'while'
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	p.enterLoop()
	body, err := p.parseBlock()
	p.exitLoop()
	if err != nil {
		return nil, err
	}
	s := &ast.WhileStmt{Cond: cond, Body: body}
	s.SetSpan(start)
	return s, nil
}

// parseSwitchStmt parses `switch (expr[, cmp_op]) { pat -> stmt ...
// else -> stmt }` (spec.md §4.9.2). Each case takes exactly one pattern
// expression; a comma-separated pattern list is not accepted. A case's body
// is a single statement or a `{ ... }` block, stored as a BlockStmt either
// way.
func (p *Parser) parseSwitchStmt() (*ast.SwitchStmt, error) {
	return p.parseSwitchStmtComplete(false)
}

func (p *Parser) parseSwitchStmtComplete(complete bool) (*ast.SwitchStmt, error) {
	start := p.current.Span
	p.advance() // 'switch'

	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	scrutinee, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	cmpOp := token.Equal
	if p.at(token.Comma) {
		p.advance()
		if !isComparisonOp(p.current.Kind) {
			return nil, p.fail("switch comparison operator must be a comparison operator")
		}
		cmpOp = p.current.Kind
		p.advance()
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}

	var cases []ast.SwitchCase
	var elseBlock *ast.BlockStmt
	for !p.at(token.RBrace) {
		caseStart := p.current.Span
		if p.at(token.Else) {
			if elseBlock != nil {
				return nil, p.fail("switch may have at most one else branch")
			}
			p.advance()
			if _, err := p.expect(token.Arrow); err != nil {
				return nil, err
			}
			elseBlock, err = p.parseSwitchCaseBody()
			if err != nil {
				return nil, err
			}
			continue
		}
		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Arrow); err != nil {
			return nil, err
		}
		body, err := p.parseSwitchCaseBody()
		if err != nil {
			return nil, err
		}
		cases = append(cases, ast.SwitchCase{Value: val, Body: body, Span: caseStart})
	}
	if _, err := p.expect(token.RBrace); err != nil {
		return nil, err
	}

	s := &ast.SwitchStmt{Scrutinee: scrutinee, CmpOp: cmpOp, Cases: cases, Else: elseBlock, Complete: complete}
	s.SetSpan(start)
	return s, nil
}

// parseSwitchCaseBody parses either a `{ ... }` block or a single
// statement as a case's body, normalizing to a BlockStmt either way.
func (p *Parser) parseSwitchCaseBody() (*ast.BlockStmt, error) {
	if p.at(token.LBrace) {
		return p.parseBlock()
	}
	start := p.current.Span
	s, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	b := &ast.BlockStmt{Stmts: []ast.Stmt{s}}
	b.SetSpan(start)
	return b, nil
}

func isComparisonOp(k token.Kind) bool {
	switch k {
	case token.Equal, token.NotEqual, token.Less, token.Greater, token.LessEqual, token.GreaterEqual:
		return true
	default:
		return false
	}
}

func (p *Parser) parseReturnStmt() (*ast.ReturnStmt, error) {
	start := p.current.Span
	p.advance() // 'return'
	var val ast.Expr
	if !p.at(token.Semicolon) {
		var err error
		val, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}
	s := &ast.ReturnStmt{Value: val}
	s.SetSpan(start)
	return s, nil
}

// parseDeferStmt accepts exactly a call expression, followed by `;`
// (spec.md §4.9.2).
func (p *Parser) parseDeferStmt() (*ast.DeferStmt, error) {
	start := p.current.Span
	p.advance() // 'defer'
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	call, ok := e.(*ast.CallExpr)
	if !ok {
		return nil, p.failAt(start, "defer requires a call expression")
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}
	s := &ast.DeferStmt{Call: call}
	s.SetSpan(start)
	return s, nil
}

// parseBreakStmt and parseContinueStmt enforce: valid only inside a loop,
// N >= 1, N <= current loop nesting depth, and N must be an integer literal
// (spec.md §4.9.2).
func (p *Parser) parseBreakStmt() (*ast.BreakStmt, error) {
	start := p.current.Span
	p.advance() // 'break'
	count, err := p.parseLoopJumpCount(start)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}
	s := &ast.BreakStmt{Count: count}
	s.SetSpan(start)
	return s, nil
}

func (p *Parser) parseContinueStmt() (*ast.ContinueStmt, error) {
	start := p.current.Span
	p.advance() // 'continue'
	count, err := p.parseLoopJumpCount(start)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}
	s := &ast.ContinueStmt{Count: count}
	s.SetSpan(start)
	return s, nil
}

func (p *Parser) parseLoopJumpCount(start token.Span) (int, error) {
	count := 1
	if p.current.Kind.IsIntegerLiteral() {
		n := parseUintLiteral(p.current.Literal)
		count = int(n)
		p.advance()
	} else if p.current.Kind == token.Float || p.current.Kind == token.Float32 || p.current.Kind == token.Float64 {
		return 0, p.fail("break/continue level must be an integer literal")
	}
	if p.currentLoopDepth() == 0 {
		return 0, p.failAt(start, "break/continue used outside of a loop")
	}
	if count < 1 {
		return 0, p.failAt(start, "break/continue level must be at least 1")
	}
	if count > p.currentLoopDepth() {
		return 0, p.failAt(start, "break/continue level exceeds the current loop nesting depth")
	}
	return count, nil
}

func (p *Parser) parseExprStmt() (*ast.ExprStmt, error) {
	start := p.current.Span
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}
	s := &ast.ExprStmt{X: e}
	s.SetSpan(start)
	return s, nil
}
