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
	"github.com/bufbuild/la/types"
)

// parseExpr is the entry point for the expression precedence climb
// (spec.md §4.9.3), starting at the loosest level, assignment.
//
// The full chain, loosest to tightest, mirrors the spec's ordering exactly:
// assignment, logical-or, logical-and, bitwise-and, bitwise-xor,
// bitwise-or, equality, comparison (with chained-comparison desugaring),
// bitwise-shift (with the >> span-adjacency heuristic), additive,
// multiplicative, enum-access ('::'), infix-user-call, then a unary level
// that folds in both the built-in prefix operators and user-defined
// @prefix calls, and finally a single postfix loop that folds together
// every remaining postfix production named in the spec (postfix-user-call,
// postfix ++/--, call/index/member/generic-call, the '.field' production
// that also covers enum-attribute access, and initializer/trailing-lambda
// sugar) -- these all operate on one operand in a tight loop the way a
// hand-written Pratt parser's postfix stage naturally does, rather than as
// separate mutually-recursive levels.
func (p *Parser) parseExpr() (ast.Expr, error) {
	return p.parseAssignment()
}

func (p *Parser) parseAssignment() (ast.Expr, error) {
	left, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}

	if p.at(token.Assign) {
		p.advance()
		value, err := p.parseAssignment() // right-associative
		if err != nil {
			return nil, err
		}
		return makeAssign(left, value), nil
	}

	if p.current.Kind.IsAssignCompound() {
		opKind := p.current.Kind
		base, ok := compoundBaseOp(opKind)
		if !ok {
			return nil, p.fail("unknown compound assignment operator %s", opKind)
		}
		p.advance()
		value, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		return makeAssign(left, makeBinary(left, base, value)), nil
	}

	// ">>=" is never a single scanned token (spec.md §4.3): the scanner
	// yields Greater followed by GreaterEqual. Recognize the adjacent pair
	// here, the assignment-level analogue of the shift production's
	// adjacency check.
	if p.at(token.Greater) && p.next.Kind == token.GreaterEqual && p.current.Span.AdjacentTo(p.next.Span) {
		p.advance() // first '>'
		p.advance() // '>='
		value, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		return makeAssign(left, makeBinary(left, token.Shr, value)), nil
	}

	return left, nil
}

// compoundBaseOp maps a compound-assignment token to the binary operator
// `x <op>= y` desugars to `x = x <op> y` with (spec.md §4.9.3 "assignment
// desugaring").
func compoundBaseOp(k token.Kind) (token.Kind, bool) {
	switch k {
	case token.PlusAssign:
		return token.Plus, true
	case token.MinusAssign:
		return token.Minus, true
	case token.StarAssign:
		return token.Star, true
	case token.SlashAssign:
		return token.Slash, true
	case token.PercentAssign:
		return token.Percent, true
	case token.AmpAssign:
		return token.Amp, true
	case token.PipeAssign:
		return token.Pipe, true
	case token.CaretAssign:
		return token.Caret, true
	case token.ShlAssign:
		return token.Shl, true
	default:
		return token.Invalid, false
	}
}

func makeAssign(target, value ast.Expr) *ast.AssignExpr {
	a := &ast.AssignExpr{Target: target, Value: value}
	a.SetSpan(target.Span().Join(value.Span()))
	return a
}

func makeBinary(left ast.Expr, op token.Kind, right ast.Expr) *ast.BinaryExpr {
	b := &ast.BinaryExpr{Op: op, Left: left, Right: right}
	b.SetSpan(left.Span().Join(right.Span()))
	return b
}

// binaryLevel is the shared shape of every plain left-associative binary
// precedence level: parse next, then fold in zero or more operators from
// ops with a next-level operand on the right.
func (p *Parser) binaryLevel(next func() (ast.Expr, error), ops ...token.Kind) (ast.Expr, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for p.atAny(ops...) {
		op := p.current.Kind
		p.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = makeBinary(left, op, right)
	}
	return left, nil
}

func (p *Parser) parseLogicalOr() (ast.Expr, error) {
	return p.binaryLevel(p.parseLogicalAnd, token.PipePipe)
}

func (p *Parser) parseLogicalAnd() (ast.Expr, error) {
	return p.binaryLevel(p.parseBitwiseAnd, token.AmpAmp)
}

func (p *Parser) parseBitwiseAnd() (ast.Expr, error) {
	return p.binaryLevel(p.parseBitwiseXor, token.Amp)
}

func (p *Parser) parseBitwiseXor() (ast.Expr, error) {
	return p.binaryLevel(p.parseBitwiseOr, token.Caret)
}

func (p *Parser) parseBitwiseOr() (ast.Expr, error) {
	return p.binaryLevel(p.parseEquality, token.Pipe)
}

func (p *Parser) parseEquality() (ast.Expr, error) {
	return p.binaryLevel(p.parseComparison, token.Equal, token.NotEqual)
}

// isOrderingOp reports whether k is one of the four chainable ordering
// comparisons (spec.md §4.9.3's chained-comparison production); '==' and
// '!=' are handled one level up, at parseEquality, and never chain.
func isOrderingOp(k token.Kind) bool {
	switch k {
	case token.Less, token.Greater, token.LessEqual, token.GreaterEqual:
		return true
	default:
		return false
	}
}

// parseComparison implements both plain comparisons and the chained form
// `a < b < c`, desugared to a [ast.ChainedCompareExpr] that shares each
// intermediate operand exactly once (spec.md §4.9.3, §8 invariant 7): once
// the left operand of a new comparison is itself recognized as a comparison
// (or an existing chain), its right-hand side (or its whole operand list)
// is grafted in rather than re-evaluated.
func (p *Parser) parseComparison() (ast.Expr, error) {
	left, err := p.parseShift()
	if err != nil {
		return nil, err
	}
	for isOrderingOp(p.current.Kind) {
		// An adjacent '>' '>=' pair is ">>=", left for parseAssignment.
		if p.at(token.Greater) && p.next.Kind == token.GreaterEqual && p.current.Span.AdjacentTo(p.next.Span) {
			break
		}
		op := p.current.Kind
		p.advance()
		right, err := p.parseShift()
		if err != nil {
			return nil, err
		}

		switch prev := left.(type) {
		case *ast.ChainedCompareExpr:
			prev.Operands = append(prev.Operands, right)
			prev.Ops = append(prev.Ops, op)
			prev.SetSpan(prev.Span().Join(right.Span()))
			left = prev
		case *ast.BinaryExpr:
			if isOrderingOp(prev.Op) {
				chain := &ast.ChainedCompareExpr{
					Operands: []ast.Expr{prev.Left, prev.Right, right},
					Ops:      []token.Kind{prev.Op, op},
				}
				chain.SetSpan(prev.Span().Join(right.Span()))
				left = chain
			} else {
				left = makeBinary(left, op, right)
			}
		default:
			left = makeBinary(left, op, right)
		}
	}
	return left, nil
}

// parseShift implements the bitwise-shift level (spec.md §4.9.3, §4.3): '<<'
// is already merged by the scanner into a single [token.Shl], but '>>' never
// is, so this production applies the span-adjacency heuristic to a pair of
// Greater tokens itself. A non-adjacent pair (e.g. "a > > b") is left alone
// here -- the lone leading Greater bubbles back up to parseComparison, which
// reports a syntax error when it tries to parse a second comparison with no
// operand between the two '>' tokens, matching spec.md §8 invariant 3's
// "syntax error or chained-comparison desugar, never a shift".
func (p *Parser) parseShift() (ast.Expr, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for {
		if p.at(token.Shl) {
			p.advance()
			right, err := p.parseAdditive()
			if err != nil {
				return nil, err
			}
			left = makeBinary(left, token.Shl, right)
			continue
		}
		if p.at(token.Greater) && p.next.Kind == token.Greater && p.current.Span.AdjacentTo(p.next.Span) {
			p.advance()
			p.advance()
			right, err := p.parseAdditive()
			if err != nil {
				return nil, err
			}
			left = makeBinary(left, token.Shr, right)
			continue
		}
		return left, nil
	}
}

func (p *Parser) parseAdditive() (ast.Expr, error) {
	return p.binaryLevel(p.parseMultiplicative, token.Plus, token.Minus)
}

func (p *Parser) parseMultiplicative() (ast.Expr, error) {
	return p.binaryLevel(p.parseEnumAccess, token.Star, token.Slash, token.Percent)
}

// parseEnumAccess implements `EnumName::Element` (spec.md §4.9.3): the left
// operand must be a bare identifier naming a registered enum.
func (p *Parser) parseEnumAccess() (ast.Expr, error) {
	left, err := p.parseInfixUserCall()
	if err != nil {
		return nil, err
	}
	for p.at(token.DoubleColon) {
		ident, ok := left.(*ast.Ident)
		if !ok {
			return nil, p.fail("'::' requires an enum name on the left")
		}
		en, ok := p.ctx.Enums.Lookup(ident.Name)
		if !ok {
			return nil, p.failAt(ident.Span(), "undefined enum %q", ident.Name)
		}
		p.advance() // '::'
		elemName, elemSpan, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		if !en.Values.Contains(elemName) {
			return nil, p.failAt(elemSpan, "enum %q has no element %q", ident.Name, elemName)
		}
		e := &ast.EnumAccessExpr{
			EnumName: ident.Name,
			Element:  elemName,
			Type:     types.EnumElement{EnumName: ident.Name, ElementType: en.ElementType},
		}
		e.SetSpan(ident.Span().Join(elemSpan))
		left = e
	}
	return left, nil
}

// parseInfixUserCall implements spec.md §4.9.3's "user operators" rule for
// the infix case: once a left operand has been parsed, an identifier
// registered as Infix in the function registry is treated as a binary call
// rather than a bare name, re-entering infix parsing (this same level) for
// the right operand.
func (p *Parser) parseInfixUserCall() (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.at(token.Ident) {
		entry, ok := p.ctx.Functions.Lookup(p.current.Literal)
		if !ok || entry.Kind != types.Infix {
			break
		}
		name := p.current.Literal
		span := p.current.Span
		p.advance()
		right, err := p.parseInfixUserCall()
		if err != nil {
			return nil, err
		}
		callee := &ast.Ident{Name: name}
		callee.SetSpan(span)
		call := &ast.CallExpr{Callee: callee, Args: []ast.Expr{left, right}}
		call.SetSpan(left.Span().Join(right.Span()))
		left = call
	}
	return left, nil
}

// isUnaryOp reports whether k is in the built-in prefix operator set (spec.md §4.9.3: "- ! ~ * &
// ++ --").
func isUnaryOp(k token.Kind) bool {
	switch k {
	case token.Minus, token.Bang, token.Tilde, token.Star, token.Amp, token.PlusPlus, token.MinusMinus:
		return true
	default:
		return false
	}
}

// parseUnary folds together the built-in prefix operators and user-defined
// @prefix operator calls (spec.md §4.9.3, §4.9.6): an identifier registered
// as Prefix is recognized before its operand is parsed, exactly like the
// infix case but unary.
func (p *Parser) parseUnary() (ast.Expr, error) {
	if isUnaryOp(p.current.Kind) {
		op := p.current.Kind
		start := p.current.Span
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		u := &ast.UnaryExpr{Op: op, Operand: operand}
		u.SetSpan(start.Join(operand.Span()))
		return u, nil
	}
	if p.at(token.Ident) {
		if entry, ok := p.ctx.Functions.Lookup(p.current.Literal); ok && entry.Kind == types.Prefix {
			name := p.current.Literal
			start := p.current.Span
			p.advance()
			operand, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			u := &ast.UnaryExpr{FuncName: name, Operand: operand}
			u.SetSpan(start.Join(operand.Span()))
			return u, nil
		}
	}
	return p.parsePostfix()
}

// parsePostfix parses a primary expression and then loops over every
// postfix production in the spec's chain (postfix-user-call, postfix
// ++/--, call/index/member/generic-call, the '.field' production that
// stands in for enum-attribute access too, and trailing-lambda call sugar)
// until none apply.
func (p *Parser) parsePostfix() (ast.Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		switch {
		case p.at(token.LParen):
			expr, err = p.finishCall(expr, nil)
			if err != nil {
				return nil, err
			}

		case p.at(token.Less) && p.calleeIsGenericCallable(expr):
			typeArgs, err2 := p.parseTypeArgList()
			if err2 != nil {
				return nil, err2
			}
			if !p.at(token.LParen) {
				return nil, p.fail("expected '(' after generic call arguments")
			}
			expr, err = p.finishCall(expr, typeArgs)
			if err != nil {
				return nil, err
			}

		case p.at(token.LBracket):
			start := expr.Span()
			p.advance()
			idx, e := p.parseExpr()
			if e != nil {
				return nil, e
			}
			end := p.current.Span
			if _, e := p.expect(token.RBracket); e != nil {
				return nil, e
			}
			ie := &ast.IndexExpr{Base: expr, Index: idx}
			ie.SetSpan(start.Join(end))
			expr = ie

		case p.at(token.Dot):
			p.advance()
			name, span, e := p.expectIdent()
			if e != nil {
				return nil, e
			}
			me := &ast.MemberExpr{Base: expr, Field: name}
			me.SetSpan(expr.Span().Join(span))
			expr = me

		case p.at(token.LBrace) && p.exprIsTrailingLambdaCallable(expr):
			lam, e := p.parseTrailingLambda()
			if e != nil {
				return nil, e
			}
			call := &ast.CallExpr{Callee: expr, TrailingLambda: lam}
			call.SetSpan(expr.Span().Join(lam.Span()))
			expr = call

		case p.isPostfixUserOp():
			name := p.current.Literal
			span := p.current.Span
			p.advance()
			u := &ast.UnaryExpr{FuncName: name, Operand: expr, Postfix: true}
			u.SetSpan(expr.Span().Join(span))
			expr = u

		case p.atAny(token.PlusPlus, token.MinusMinus):
			op := p.current.Kind
			span := p.current.Span
			p.advance()
			u := &ast.UnaryExpr{Op: op, Operand: expr, Postfix: true}
			u.SetSpan(expr.Span().Join(span))
			expr = u

		default:
			return expr, nil
		}
	}
}

// isPostfixUserOp reports whether the current token is an identifier
// registered as a Postfix operator function.
func (p *Parser) isPostfixUserOp() bool {
	if !p.at(token.Ident) {
		return false
	}
	entry, ok := p.ctx.Functions.Lookup(p.current.Literal)
	return ok && entry.Kind == types.Postfix
}

// calleeIsGenericCallable reports whether expr is a bare identifier naming
// a registered function, the gate for the generic-call-vs-comparison
// disambiguation (spec.md §4.9.3, §8 invariant 4): '<' after such an
// identifier starts a generic argument list; otherwise it is left alone for
// parseComparison to consume as a plain less-than.
func (p *Parser) calleeIsGenericCallable(expr ast.Expr) bool {
	ident, ok := expr.(*ast.Ident)
	if !ok {
		return false
	}
	return p.ctx.Functions.Contains(ident.Name)
}

// exprIsTrailingLambdaCallable reports whether a bare `{` immediately after
// expr should be parsed as trailing-lambda call sugar (spec.md §4.9.3:
// "f { ... } ... parses as a call whose single argument is the lambda"),
// gated on expr being an identifier naming a registered function so that an
// unrelated `{` (e.g. the start of a following block statement) is never
// misread as a call.
func (p *Parser) exprIsTrailingLambdaCallable(expr ast.Expr) bool {
	ident, ok := expr.(*ast.Ident)
	if !ok {
		return false
	}
	return p.ctx.Functions.Contains(ident.Name)
}

// finishCall parses `(args...)` [trailing lambda] against an already-parsed
// callee, optionally generic-instantiated.
func (p *Parser) finishCall(callee ast.Expr, typeArgs []types.Type) (ast.Expr, error) {
	start := callee.Span()
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	var args []ast.Expr
	for !p.at(token.RParen) {
		if len(args) > 0 {
			if _, err := p.expect(token.Comma); err != nil {
				return nil, err
			}
		}
		a, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
	}
	end := p.current.Span
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	c := &ast.CallExpr{Callee: callee, TypeArgs: typeArgs, Args: args}
	c.SetSpan(start.Join(end))

	if p.at(token.LBrace) {
		lam, err := p.parseTrailingLambda()
		if err != nil {
			return nil, err
		}
		c.TrailingLambda = lam
		c.SetSpan(c.Span().Join(lam.Span()))
	}
	return c, nil
}

// parseTrailingLambda parses the block that follows trailing-lambda call
// sugar. The lambda itself declares no parameters; the implicit argument
// convention (if any) is a semantic-checker concern, not a parse-time one.
func (p *Parser) parseTrailingLambda() (*ast.LambdaExpr, error) {
	start := p.current.Span
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	l := &ast.LambdaExpr{Body: body}
	l.SetSpan(start.Join(body.Span()))
	return l, nil
}

// parseLambdaLiteral parses a non-trailing lambda literal used as an
// ordinary expression (e.g. a callback argument): `fun (params) [: Type]
// { body }`. This reuses the `fun` keyword already reserved for top-level
// function declarations; there is no ambiguity since a bare expression
// production never otherwise starts with `fun`.
func (p *Parser) parseLambdaLiteral() (ast.Expr, error) {
	start := p.current.Span
	p.advance() // 'fun'
	params, _, _, _, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	var ret types.Type
	if p.at(token.Colon) {
		p.advance()
		ret, err = p.parseType()
		if err != nil {
			return nil, err
		}
	}
	p.pushLoopLevel()
	body, err := p.parseBlock()
	p.popLoopLevel()
	if err != nil {
		return nil, err
	}
	l := &ast.LambdaExpr{Params: params, Return: ret, Body: body}
	l.SetSpan(start.Join(body.Span()))
	return l, nil
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	switch {
	case p.current.Kind.IsNumeric():
		return p.parseNumberLiteral()
	case p.at(token.String):
		return p.parseStringLiteral()
	case p.at(token.Char):
		return p.parseCharLiteral()
	case p.at(token.True), p.at(token.False):
		return p.parseBoolLiteral()
	case p.at(token.Null):
		tok := p.current
		p.advance()
		n := &ast.NullLit{}
		n.SetSpan(tok.Span)
		return n, nil
	case p.at(token.Undefined):
		tok := p.current
		p.advance()
		u := &ast.UndefinedLit{}
		u.SetSpan(tok.Span)
		return u, nil
	case p.at(token.LParen):
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		return e, nil
	case p.at(token.Cast):
		return p.parseCastExpr()
	case p.at(token.TypeSize):
		return p.parseTypeSizeExpr()
	case p.at(token.TypeAlign):
		return p.parseTypeAlignExpr()
	case p.at(token.ValueSize):
		return p.parseValueSizeExpr()
	case p.at(token.At):
		return p.parseExprDirective()
	case p.at(token.Fun):
		return p.parseLambdaLiteral()
	case p.at(token.Ident):
		return p.parseIdentPrimary()
	default:
		return nil, p.fail("expected an expression, found %s", p.current.Kind)
	}
}

// parseIdentPrimary resolves a bare identifier in primary position:
// compile-time constant inlining (spec.md §4.9.3: the reference is replaced
// in place by its stored expression, and is not otherwise visible as an
// ordinary identifier), a struct-initializer construction, or a plain
// [ast.Ident] that the postfix loop or an outer precedence level (infix
// call, comparison's generic-call gate) will interpret as needed.
func (p *Parser) parseIdentPrimary() (ast.Expr, error) {
	name := p.current.Literal
	span := p.current.Span

	if val, ok := p.ctx.Constants.Lookup(name); ok {
		p.advance()
		return val, nil
	}

	p.advance()

	if st, ok := p.ctx.Structs.Lookup(name); ok && p.atAny(token.LParen, token.LBrace, token.Less) {
		return p.finishConstructor(name, span, st)
	}

	ident := &ast.Ident{Name: name}
	ident.SetSpan(span)
	return ident, nil
}

// finishConstructor parses a struct initializer (spec.md §4.9.3
// "initializers"): `Type[<Args>](positional...)` or
// `Type[<Args>]{field: value, ...}`, optionally followed by a trailing
// lambda.
func (p *Parser) finishConstructor(name string, nameSpan token.Span, st *types.Struct) (ast.Expr, error) {
	var ty types.Type = st
	if p.at(token.Less) {
		args, err := p.parseTypeArgList()
		if err != nil {
			return nil, err
		}
		if !st.IsGeneric {
			return nil, p.failAt(nameSpan, "%q is not a generic struct", name)
		}
		ty = types.GenericStruct{Base: st, Args: args}
	} else if st.IsGeneric {
		return nil, p.failAt(nameSpan, "%q is a generic struct and requires type arguments", name)
	}

	c := &ast.ConstructorExpr{Type: ty}
	end := nameSpan
	switch {
	case p.at(token.LParen):
		p.advance()
		for !p.at(token.RParen) {
			if len(c.Args) > 0 {
				if _, err := p.expect(token.Comma); err != nil {
					return nil, err
				}
			}
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			c.Args = append(c.Args, arg)
			c.FieldNames = append(c.FieldNames, "")
		}
		end = p.current.Span
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
	case p.at(token.LBrace):
		p.advance()
		for !p.at(token.RBrace) {
			if len(c.Args) > 0 {
				if _, err := p.expect(token.Comma); err != nil {
					return nil, err
				}
				if p.at(token.RBrace) {
					break
				}
			}
			fieldName := ""
			if p.at(token.Ident) && p.next.Kind == token.Colon {
				fieldName = p.current.Literal
				p.advance()
				p.advance() // ':'
			}
			val, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			c.Args = append(c.Args, val)
			c.FieldNames = append(c.FieldNames, fieldName)
		}
		end = p.current.Span
		if _, err := p.expect(token.RBrace); err != nil {
			return nil, err
		}
	default:
		return nil, p.failAt(nameSpan, "expected '(' or '{' after constructor type %q", name)
	}
	c.SetSpan(nameSpan.Join(end))

	if p.at(token.LBrace) {
		lam, err := p.parseTrailingLambda()
		if err != nil {
			return nil, err
		}
		c.TrailingLambda = lam
		c.SetSpan(c.Span().Join(lam.Span()))
	}
	return c, nil
}

func (p *Parser) parseCastExpr() (ast.Expr, error) {
	start := p.current.Span
	p.advance() // 'cast'
	if _, err := p.expect(token.Less); err != nil {
		return nil, err
	}
	ty, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Greater); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	val, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	end := p.current.Span
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	c := &ast.CastExpr{Target: ty, Value: val}
	c.SetSpan(start.Join(end))
	return c, nil
}

func (p *Parser) parseTypeSizeExpr() (ast.Expr, error) {
	start := p.current.Span
	p.advance() // 'type_size'
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	ty, err := p.parseType()
	if err != nil {
		return nil, err
	}
	end := p.current.Span
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	e := &ast.TypeSizeExpr{Target: ty}
	e.SetSpan(start.Join(end))
	return e, nil
}

func (p *Parser) parseTypeAlignExpr() (ast.Expr, error) {
	start := p.current.Span
	p.advance() // 'type_align'
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	ty, err := p.parseType()
	if err != nil {
		return nil, err
	}
	end := p.current.Span
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	e := &ast.TypeAlignExpr{Target: ty}
	e.SetSpan(start.Join(end))
	return e, nil
}

func (p *Parser) parseValueSizeExpr() (ast.Expr, error) {
	start := p.current.Span
	p.advance() // 'value_size'
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	val, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	end := p.current.Span
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	e := &ast.ValueSizeExpr{Value: val}
	e.SetSpan(start.Join(end))
	return e, nil
}

func (p *Parser) parseNumberLiteral() (*ast.NumberLit, error) {
	tok := p.current
	if !tok.Kind.IsNumeric() {
		return nil, p.fail("expected a number literal, found %s", tok.Kind)
	}
	p.advance()
	lit := &ast.NumberLit{Literal: tok.Literal, Kind: tok.Kind, Suffix: numberSuffixText(tok.Kind)}
	if ty, ok := numberLitType(tok.Kind); ok {
		lit.Type = ty
	}
	lit.SetSpan(tok.Span)
	return lit, nil
}

// numberSuffixText returns the width suffix text for an explicitly-suffixed
// numeric literal kind, or "" for the default (unsuffixed) Int/Float kinds
// ([ast.NumberLit]'s Suffix: "empty when the literal relies on
// context/default typing").
func numberSuffixText(k token.Kind) string {
	switch k {
	case token.Int1:
		return "i1"
	case token.Int8:
		return "i8"
	case token.Int16:
		return "i16"
	case token.Int32:
		return "i32"
	case token.Int64:
		return "i64"
	case token.Uint8:
		return "u8"
	case token.Uint16:
		return "u16"
	case token.Uint32:
		return "u32"
	case token.Uint64:
		return "u64"
	case token.Float32:
		return "f32"
	case token.Float64:
		return "f64"
	default:
		return ""
	}
}

// numberLitType returns the concrete type an explicitly-suffixed literal
// carries from parse time onward. Default (unsuffixed) Int/Float literals
// return ok=false: their width depends on surrounding context and is left
// for the (out-of-scope) semantic checker to resolve, per spec.md §3.
func numberLitType(k token.Kind) (types.Type, bool) {
	switch k {
	case token.Int1:
		return types.Number{NumberKind: types.I1}, true
	case token.Int8:
		return types.Number{NumberKind: types.I8}, true
	case token.Int16:
		return types.Number{NumberKind: types.I16}, true
	case token.Int32:
		return types.Number{NumberKind: types.I32}, true
	case token.Int64:
		return types.Number{NumberKind: types.I64}, true
	case token.Uint8:
		return types.Number{NumberKind: types.U8}, true
	case token.Uint16:
		return types.Number{NumberKind: types.U16}, true
	case token.Uint32:
		return types.Number{NumberKind: types.U32}, true
	case token.Uint64:
		return types.Number{NumberKind: types.U64}, true
	case token.Float32:
		return types.Number{NumberKind: types.F32}, true
	case token.Float64:
		return types.Number{NumberKind: types.F64}, true
	default:
		return nil, false
	}
}

func (p *Parser) parseStringLiteral() (*ast.StringLit, error) {
	tok, err := p.expect(token.String)
	if err != nil {
		return nil, err
	}
	s := &ast.StringLit{Value: tok.Literal}
	s.SetSpan(tok.Span)
	return s, nil
}

func (p *Parser) parseCharLiteral() (*ast.CharLit, error) {
	tok, err := p.expect(token.Char)
	if err != nil {
		return nil, err
	}
	runes := []rune(tok.Literal)
	var v rune
	if len(runes) > 0 {
		v = runes[0]
	}
	c := &ast.CharLit{Value: v}
	c.SetSpan(tok.Span)
	return c, nil
}

func (p *Parser) parseBoolLiteral() (*ast.BoolLit, error) {
	tok := p.current
	value := tok.Kind == token.True
	if !p.at(token.True) && !p.at(token.False) {
		return nil, p.fail("expected 'true' or 'false', found %s", tok.Kind)
	}
	p.advance()
	b := &ast.BoolLit{Value: value}
	b.SetSpan(tok.Span)
	return b, nil
}
