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
	"github.com/bufbuild/la/symtab"
	"github.com/bufbuild/la/token"
	"github.com/bufbuild/la/types"
)

// parsePathList parses a single string literal, or a braced list of string
// literals (`{ "a" "b" }`), used by both `import` and `load` (spec.md
// §4.9.1).
func (p *Parser) parsePathList() ([]string, error) {
	if p.at(token.LBrace) {
		p.advance()
		var paths []string
		for !p.at(token.RBrace) {
			tok, err := p.expect(token.String)
			if err != nil {
				return nil, err
			}
			paths = append(paths, tok.Literal)
		}
		if _, err := p.expect(token.RBrace); err != nil {
			return nil, err
		}
		return paths, nil
	}
	tok, err := p.expect(token.String)
	if err != nil {
		return nil, err
	}
	return []string{tok.Literal}, nil
}

func (p *Parser) parseImportDecl() (ast.Decl, error) {
	start := p.current.Span
	p.advance() // 'import'
	paths, err := p.parsePathList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}
	d := &ast.ImportDecl{Paths: paths}
	d.SetSpan(start)
	return d, nil
}

func (p *Parser) parseLoadDecl() (ast.Decl, error) {
	start := p.current.Span
	p.advance() // 'load'
	paths, err := p.parsePathList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}
	d := &ast.LoadDecl{Paths: paths}
	d.SetSpan(start)
	return d, nil
}

// parseTypeAliasDecl parses `type <Ident> = <Type>;` (spec.md §4.9.1).
// Using the name of an existing alias, or resolving to an Enum/EnumElement,
// is an error.
func (p *Parser) parseTypeAliasDecl() (ast.Decl, error) {
	start := p.current.Span
	p.advance() // 'type'
	name, nameSpan, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if p.ctx.Aliases.Contains(name) {
		return nil, p.failAt(nameSpan, "%q is already a type alias", name)
	}
	if _, err := p.expect(token.Assign); err != nil {
		return nil, err
	}
	ty, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if types.IsEnumType(ty) || types.IsEnumElementType(ty) {
		return nil, p.failAt(nameSpan, "cannot alias an enum or enum element directly")
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}
	p.ctx.Aliases.Define(name, ty)
	d := &ast.TypeAliasDecl{Name: name, Type: ty}
	d.SetSpan(start)
	return d, nil
}

// parseParamList parses `(name Type, ...)`, with an optional trailing
// `varargs [name] [Type]` parameter.
func (p *Parser) parseParamList() (params []ast.Param, hasVarargs bool, varargsName string, varargsElem types.Type, err error) {
	if _, err = p.expect(token.LParen); err != nil {
		return
	}
	for !p.at(token.RParen) {
		if len(params) > 0 || hasVarargs {
			if _, e := p.expect(token.Comma); e != nil {
				err = e
				return
			}
		}
		if p.at(token.Varargs) {
			pStart := p.current.Span
			p.advance()
			hasVarargs = true
			if p.at(token.Ident) {
				varargsName = p.current.Literal
				p.advance()
			}
			if !p.at(token.RParen) && !p.at(token.Comma) {
				varargsElem, err = p.parseType()
				if err != nil {
					return
				}
			}
			_ = pStart
			continue
		}
		pname, pspan, e := p.expectIdent()
		if e != nil {
			err = e
			return
		}
		ty, e := p.parseType()
		if e != nil {
			err = e
			return
		}
		params = append(params, ast.Param{Name: pname, Type: ty, Span: pspan})
	}
	_, err = p.expect(token.RParen)
	return
}

// parseGenericParams parses an optional `<T, U, ...>` generic parameter
// list, registering each name in p.genericParams for the duration of the
// enclosing declaration's parse.
func (p *Parser) parseGenericParams() ([]string, error) {
	if !p.at(token.Less) {
		return nil, nil
	}
	p.advance()
	var names []string
	p.genericParams = map[string]bool{}
	for {
		name, span, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		if p.ctx.Aliases.Contains(name) {
			return nil, p.failAt(span, "generic parameter %q shadows a primitive or alias", name)
		}
		p.genericParams[name] = true
		names = append(names, name)
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(token.Greater); err != nil {
		return nil, err
	}
	return names, nil
}

func (p *Parser) parseFunctionDecl(mods *declModifiers) (ast.Decl, error) {
	if mods == nil {
		mods = &declModifiers{}
	}
	start := p.current.Span
	p.advance() // 'fun'
	name, _, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	generics, err := p.parseGenericParams()
	defer func() { p.genericParams = nil }()
	if err != nil {
		return nil, err
	}

	params, hasVarargs, varargsName, varargsElem, err := p.parseParamList()
	if err != nil {
		return nil, err
	}

	var ret types.Type = types.Void{}
	if !p.atAny(token.LBrace, token.Assign, token.Semicolon) {
		ret, err = p.parseType()
		if err != nil {
			return nil, err
		}
	}

	d := &ast.FunctionDecl{
		Name:          name,
		Params:        params,
		Return:        ret,
		IsExtern:      mods.isExtern,
		IsIntrinsic:   mods.isIntrinsic,
		IntrinsicName: mods.intrinsicName,
		HasVarargs:    hasVarargs,
		VarargsName:   varargsName,
		VarargsElem:   varargsElem,
		IsGeneric:     len(generics) > 0,
		GenericParams: generics,
	}

	switch mods.kind {
	case types.Prefix, types.Postfix:
		if len(params) != 1 {
			return nil, p.failAt(start, "%q is declared @%s and must take exactly one parameter", name, mods.kind)
		}
	case types.Infix:
		if len(params) != 2 {
			return nil, p.failAt(start, "%q is declared @infix and must take exactly two parameters", name)
		}
	}

	switch {
	case mods.isExtern || mods.isIntrinsic:
		if _, err := p.expect(token.Semicolon); err != nil {
			return nil, err
		}
	case p.at(token.Assign):
		body, err := p.parseExprBodyAsBlock()
		if err != nil {
			return nil, err
		}
		d.Body = body
	default:
		p.pushLoopLevel()
		body, err := p.parseBlock()
		p.popLoopLevel()
		if err != nil {
			return nil, err
		}
		d.Body = body
	}
	d.OperatorKind = mods.kind
	d.SetSpan(start)

	paramTypes := make([]types.Type, len(params))
	for i, pr := range params {
		paramTypes[i] = pr.Type
	}
	if !p.ctx.Functions.Define(&symtab.FunctionEntry{
		Name: name,
		Kind: mods.kind,
		Type: types.Function{Params: paramTypes, Return: ret, HasVarargs: hasVarargs, VarargsElem: varargsElem, IsGeneric: d.IsGeneric, GenericParams: generics},
	}) {
		return nil, p.failAt(start, "function %q already declared", name)
	}
	return d, nil
}

// overloadable operator sets (spec.md §4.9.6).
var prefixOverloadable = map[string]bool{"-": true, "!": true, "~": true, "*": true, "&": true, "++": true, "--": true}
var infixOverloadable = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "%": true,
	"&": true, "|": true, "^": true, "<<": true, ">>": true,
	"<": true, ">": true, "<=": true, ">=": true, "==": true, "!=": true,
	"&&": true, "||": true,
}
var postfixOverloadable = map[string]bool{"++": true, "--": true}

// parseOperatorSymbol reads the operator token after `operator`, handling
// the two-Greater-token `>>` case the same way the shift-expression
// production does (spec.md §4.3, §4.9.6: "the op token may span two
// characters").
func (p *Parser) parseOperatorSymbol() (string, token.Span, error) {
	first := p.current
	if first.Kind == token.Greater && p.next.Kind == token.Greater && first.Span.AdjacentTo(p.next.Span) {
		p.advance()
		second := p.current
		p.advance()
		return ">>", first.Span.Join(second.Span), nil
	}
	if !first.Kind.IsKeyword() && first.Kind != token.Ident {
		p.advance()
		return first.Literal, first.Span, nil
	}
	return "", token.Span{}, p.fail("expected an operator symbol, found %s", first.Kind)
}

func (p *Parser) parseOperatorDecl(mods *declModifiers) (ast.Decl, error) {
	if mods == nil {
		mods = &declModifiers{}
	}
	start := p.current.Span
	p.advance() // 'operator'
	sym, symSpan, err := p.parseOperatorSymbol()
	if err != nil {
		return nil, err
	}

	params, hasVarargs, varargsName, varargsElem, err := p.parseParamList()
	if err != nil {
		return nil, err
	}

	kind := mods.kind
	if kind == types.Normal {
		kind = types.Infix
	}
	switch kind {
	case types.Prefix:
		if !prefixOverloadable[sym] || len(params) != 1 {
			return nil, p.failAt(symSpan, "%q is not a valid prefix operator, or has the wrong arity", sym)
		}
	case types.Infix:
		if !infixOverloadable[sym] || len(params) != 2 {
			return nil, p.failAt(symSpan, "%q is not a valid infix operator, or has the wrong arity", sym)
		}
	case types.Postfix:
		if !postfixOverloadable[sym] || len(params) != 1 {
			return nil, p.failAt(symSpan, "%q is not a valid postfix operator, or has the wrong arity", sym)
		}
	}

	var ret types.Type = types.Void{}
	if !p.atAny(token.LBrace, token.Assign) {
		ret, err = p.parseType()
		if err != nil {
			return nil, err
		}
	}

	paramTypes := make([]types.Type, len(params))
	for i, pr := range params {
		paramTypes[i] = pr.Type
	}
	mangled := types.MangleOperatorFunction(sym, kind, paramTypes)

	d := &ast.FunctionDecl{
		Name:           mangled,
		Params:         params,
		Return:         ret,
		HasVarargs:     hasVarargs,
		VarargsName:    varargsName,
		VarargsElem:    varargsElem,
		OperatorSymbol: sym,
		OperatorKind:   kind,
	}

	var body *ast.BlockStmt
	if p.at(token.Assign) {
		body, err = p.parseExprBodyAsBlock()
	} else {
		p.pushLoopLevel()
		body, err = p.parseBlock()
		p.popLoopLevel()
	}
	if err != nil {
		return nil, err
	}
	d.Body = body
	d.SetSpan(start)

	if !p.ctx.Functions.Define(&symtab.FunctionEntry{
		Name: mangled,
		Kind: kind,
		Type: types.Function{Params: paramTypes, Return: ret},
	}) {
		return nil, p.failAt(start, "operator %q with this parameter list is already declared", sym)
	}
	return d, nil
}

// parseVarDecl parses both the simple `var name [: Type] [= expr];` form
// and the destructuring `var (a [:T], b, ...) = expr;` form (spec.md
// §4.9.1).
func (p *Parser) parseVarDecl() (*ast.VarDecl, error) {
	start := p.current.Span
	p.advance() // 'var'

	var names []string
	var varTypes []types.Type

	if p.at(token.LParen) {
		p.advance()
		for !p.at(token.RParen) {
			if len(names) > 0 {
				if _, err := p.expect(token.Comma); err != nil {
					return nil, err
				}
			}
			name, _, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			var ty types.Type
			if p.at(token.Colon) {
				p.advance()
				ty, err = p.parseType()
				if err != nil {
					return nil, err
				}
			}
			names = append(names, name)
			varTypes = append(varTypes, ty)
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
	} else {
		name, _, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		var ty types.Type
		if p.at(token.Colon) {
			p.advance()
			ty, err = p.parseType()
			if err != nil {
				return nil, err
			}
		}
		names = append(names, name)
		varTypes = append(varTypes, ty)
	}

	var init ast.Expr
	if p.at(token.Assign) {
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		init = e
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}
	d := &ast.VarDecl{Names: names, Types: varTypes, Init: init}
	d.SetSpan(start)
	return d, nil
}

// parseConstDecl parses `const Name = <literal_expr>;`. The value must be a
// character, string, number, bool, or a negated number literal (spec.md
// §4.9.1).
func (p *Parser) parseConstDecl() (*ast.ConstDecl, error) {
	start := p.current.Span
	p.advance() // 'const'
	name, nameSpan, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Assign); err != nil {
		return nil, err
	}
	value, err := p.parseConstLiteralExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}
	d := &ast.ConstDecl{Name: name, Value: value}
	d.SetSpan(start)
	if !p.ctx.Constants.Define(name, value) {
		return nil, p.failAt(nameSpan, "constant %q already declared in this scope", name)
	}
	return d, nil
}

// parseConstLiteralExpr parses the restricted expression grammar allowed as
// a const's value: a literal, or a unary minus applied to a numeric literal.
func (p *Parser) parseConstLiteralExpr() (ast.Expr, error) {
	if p.at(token.Minus) {
		start := p.current.Span
		p.advance()
		if !p.current.Kind.IsNumeric() {
			return nil, p.fail("expected a number literal after unary '-' in a constant")
		}
		operand, err := p.parseNumberLiteral()
		if err != nil {
			return nil, err
		}
		u := &ast.UnaryExpr{Op: token.Minus, Operand: operand}
		u.SetSpan(start.Join(operand.Span()))
		return u, nil
	}
	switch {
	case p.current.Kind.IsNumeric():
		return p.parseNumberLiteral()
	case p.at(token.String):
		return p.parseStringLiteral()
	case p.at(token.Char):
		return p.parseCharLiteral()
	case p.at(token.True), p.at(token.False):
		return p.parseBoolLiteral()
	default:
		return nil, p.fail("constant value must be a character, string, number, or bool literal")
	}
}

func (p *Parser) parseStructFields() ([]ast.FieldDecl, error) {
	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}
	var fields []ast.FieldDecl
	for !p.at(token.RBrace) {
		name, span, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		for _, f := range fields {
			if f.Name == name {
				return nil, p.failAt(span, "duplicate field %q", name)
			}
		}
		ty, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Semicolon); err != nil {
			return nil, err
		}
		fields = append(fields, ast.FieldDecl{Name: name, Type: ty, Span: span})
	}
	if _, err := p.expect(token.RBrace); err != nil {
		return nil, err
	}
	return fields, nil
}

func (p *Parser) parseStructDecl(mods *declModifiers) (ast.Decl, error) {
	if mods == nil {
		mods = &declModifiers{}
	}
	start := p.current.Span
	p.advance() // 'struct'
	name, nameSpan, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if p.ctx.Aliases.Contains(name) || p.ctx.Structs.Contains(name) || p.ctx.Enums.Contains(name) {
		return nil, p.failAt(nameSpan, "%q is already declared", name)
	}

	generics, err := p.parseGenericParams()
	defer func() { p.genericParams = nil }()
	if err != nil {
		return nil, err
	}

	prevName, prevCount := p.currentStructName, p.currentStructUnknownFds
	p.currentStructName = name
	p.currentStructUnknownFds = 0

	fields, err := p.parseStructFields()
	if err != nil {
		p.currentStructName, p.currentStructUnknownFds = prevName, prevCount
		return nil, err
	}

	fieldNames := make([]string, len(fields))
	fieldTypes := make([]types.Type, len(fields))
	for i, f := range fields {
		fieldNames[i] = f.Name
		fieldTypes[i] = f.Type
	}
	st := &types.Struct{
		Name:          name,
		FieldNames:    fieldNames,
		FieldTypes:    fieldTypes,
		GenericParams: generics,
		IsPacked:      mods.isPacked,
		IsGeneric:     len(generics) > 0,
		IsExtern:      mods.isExtern,
	}

	if p.currentStructUnknownFds > 0 {
		resolveSelfReferences(st, fieldTypes, &p.currentStructUnknownFds)
	}
	for i := range fields {
		if _, isNone := fieldTypes[i].(types.None); isNone {
			p.currentStructName, p.currentStructUnknownFds = prevName, prevCount
			return nil, p.failAt(fields[i].Span, "field %q refers to its own struct %q without a pointer", fields[i].Name, name)
		}
		fields[i].Type = fieldTypes[i]
	}
	if p.currentStructUnknownFds != 0 {
		p.currentStructName, p.currentStructUnknownFds = prevName, prevCount
		return nil, p.failAt(start, "internal error: unresolved self-reference count is %d after resolution", p.currentStructUnknownFds)
	}
	p.currentStructName, p.currentStructUnknownFds = prevName, prevCount

	p.ctx.Structs.Define(st)

	d := &ast.StructDecl{
		Name:          name,
		Fields:        fields,
		GenericParams: generics,
		IsPacked:      mods.isPacked,
		IsExtern:      mods.isExtern,
	}
	d.SetSpan(start)
	return d, nil
}

func (p *Parser) parseEnumDecl() (ast.Decl, error) {
	start := p.current.Span
	p.advance() // 'enum'
	name, nameSpan, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if p.ctx.Aliases.Contains(name) || p.ctx.Structs.Contains(name) || p.ctx.Enums.Contains(name) {
		return nil, p.failAt(nameSpan, "%q is already declared", name)
	}
	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}

	values := types.NewOrderedValues()
	var elements []ast.EnumElementDecl
	var next uint32
	for !p.at(token.RBrace) {
		if len(elements) > 0 {
			if _, err := p.expect(token.Comma); err != nil {
				return nil, err
			}
			if p.at(token.RBrace) {
				break
			}
		}
		elName, elSpan, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		var valExpr ast.Expr
		value := next
		if p.at(token.Assign) {
			p.advance()
			v, err := p.parseConstLiteralExpr()
			if err != nil {
				return nil, err
			}
			lit, ok := v.(*ast.NumberLit)
			if !ok || !lit.Kind.IsIntegerLiteral() {
				return nil, p.failAt(elSpan, "enum element %q must have an integer explicit value", elName)
			}
			valExpr = v
			value = parseUintLiteral(lit.Literal)
		}
		if !values.Define(elName, value) {
			return nil, p.failAt(elSpan, "duplicate enum element %q", elName)
		}
		elements = append(elements, ast.EnumElementDecl{Name: elName, Value: valExpr, Span: elSpan})
		next = value + 1
	}
	if _, err := p.expect(token.RBrace); err != nil {
		return nil, err
	}
	if dup, ok := values.HasDuplicateValue(); ok {
		return nil, p.failAt(start, "enum element %q shares its explicit value with another element", dup)
	}
	// Every element must carry an explicit value, or none may (spec.md §3,
	// §8 invariant 6): once one element has fixed its own value, a later
	// element that falls back to "previous + 1" is ambiguous about whether
	// that was intended or just happened to follow on. The first element to
	// rely on the implicit default after an earlier sibling set one
	// explicitly is the one reported; failing that, the first explicit
	// element that follows an implicit one is.
	sawExplicit := false
	for _, el := range elements {
		if el.Value != nil {
			sawExplicit = true
			continue
		}
		if sawExplicit {
			return nil, p.failAt(el.Span, "must add explicit value to all enum fields or to no one")
		}
	}
	sawImplicit := false
	for _, el := range elements {
		if el.Value == nil {
			sawImplicit = true
			continue
		}
		if sawImplicit {
			return nil, p.failAt(el.Span, "must add explicit value to all enum fields or to no one")
		}
	}

	e := &types.Enum{Name: name, Values: values, ElementType: types.Number{NumberKind: types.I32}}
	p.ctx.Enums.Define(e)

	d := &ast.EnumDecl{Name: name, Elements: elements, ElementType: e.ElementType}
	d.SetSpan(start)
	return d, nil
}

// parseUintLiteral converts a scanned integer literal's text to a uint32.
// The scanner's Literal keeps any width suffix (e.g. "42i32"); conversion
// stops at the first non-digit, so the suffix is ignored.
func parseUintLiteral(s string) uint32 {
	var v uint32
	for i := 0; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		v = v*10 + uint32(s[i]-'0')
	}
	return v
}
