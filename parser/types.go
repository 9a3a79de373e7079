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
	"github.com/bufbuild/la/token"
	"github.com/bufbuild/la/types"
)

// parseType is parse_type (spec.md §4.9.4).
func (p *Parser) parseType() (types.Type, error) {
	switch {
	case p.at(token.Fun):
		return p.parseFunctionType()
	case p.at(token.Star):
		p.advance()
		base, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return types.Pointer{Base: base}, nil
	case p.at(token.LParen):
		return p.parseTupleType()
	case p.at(token.At):
		return p.parseVectorType()
	case p.at(token.LBracket):
		return p.parseArrayType()
	case p.at(token.Ident):
		return p.parseNamedType()
	default:
		return nil, p.fail("expected a type, found %s", p.current.Kind)
	}
}

func (p *Parser) parseFunctionType() (types.Type, error) {
	p.advance() // 'fun'
	params, hasVarargs, _, varargsElem, err := p.parseParamsAsTypes()
	if err != nil {
		return nil, err
	}
	var ret types.Type = types.Void{}
	if !p.at(token.Semicolon) && !p.at(token.Comma) && !p.at(token.RParen) && !p.at(token.RBracket) {
		ret, err = p.parseType()
		if err != nil {
			return nil, err
		}
	}
	return types.Function{Params: params, Return: ret, HasVarargs: hasVarargs, VarargsElem: varargsElem}, nil
}

// parseParamsAsTypes parses a `(T, T, ...)` parameter-type list for a
// function type (as opposed to a function declaration's named parameter
// list).
func (p *Parser) parseParamsAsTypes() (params []types.Type, hasVarargs bool, varargsName string, varargsElem types.Type, err error) {
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
			p.advance()
			hasVarargs = true
			if !p.at(token.RParen) {
				varargsElem, err = p.parseType()
				if err != nil {
					return
				}
			}
			continue
		}
		var ty types.Type
		ty, err = p.parseType()
		if err != nil {
			return
		}
		params = append(params, ty)
	}
	_, err = p.expect(token.RParen)
	return
}

// parseTupleType parses `(T, T[, ...])`, min arity 2 (spec.md §4.9.4).
func (p *Parser) parseTupleType() (types.Type, error) {
	start := p.current.Span
	p.advance() // '('
	var fields []types.Type
	for !p.at(token.RParen) {
		if len(fields) > 0 {
			if _, err := p.expect(token.Comma); err != nil {
				return nil, err
			}
		}
		ty, err := p.parseType()
		if err != nil {
			return nil, err
		}
		fields = append(fields, ty)
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	if len(fields) < 2 {
		return nil, p.failAt(start, "tuple type requires at least 2 fields")
	}
	return types.Tuple{Name: types.MangleTuple(fields), FieldTypes: fields}, nil
}

// parseArrayType parses `[N]T`, where N is a non-negative integer literal
// and the element may not be void (spec.md §4.9.4).
func (p *Parser) parseArrayType() (types.Type, error) {
	p.advance() // '['
	sizeTok, err := p.expect(token.Int)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RBracket); err != nil {
		return nil, err
	}
	elemStart := p.current.Span
	elem, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if types.IsVoidType(elem) {
		return nil, p.failAt(elemStart, "array element type cannot be void")
	}
	return types.StaticArray{Element: elem, Size: parseUintLiteral(sizeTok.Literal)}, nil
}

// parseVectorType parses `@vec [N]T` (spec.md §4.9.4, §4.9.7).
func (p *Parser) parseVectorType() (types.Type, error) {
	span := p.current.Span
	p.advance() // '@'
	name, nameSpan, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if name != "vec" {
		return nil, p.failAt(nameSpan, "unknown type directive @%s", name)
	}
	arr, err := p.parseArrayType()
	if err != nil {
		return nil, err
	}
	sa, ok := arr.(types.StaticArray)
	if !ok {
		return nil, p.failAt(span, "@vec must be followed by a static array type")
	}
	return types.StaticVector{Array: sa}, nil
}

// parseNamedType resolves an identifier via the alias table, the struct/enum
// registries, the in-scope generic parameters, or (if it names the struct
// currently being parsed) the None self-reference placeholder (spec.md
// §4.9.4, §4.9.5). A struct identifier followed by `<...>` yields a
// GenericStruct; supplying args to a non-generic struct, or omitting them
// for a generic one, is an error.
func (p *Parser) parseNamedType() (types.Type, error) {
	name, span, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	if name == p.currentStructName && p.currentStructName != "" {
		p.currentStructUnknownFds++
		return types.None{}, nil
	}
	if p.genericParams != nil && p.genericParams[name] {
		return types.GenericParameter{Name: name}, nil
	}
	if p.ctx.Aliases.Contains(name) {
		return p.ctx.Aliases.Resolve(name), nil
	}
	if st, ok := p.ctx.Structs.Lookup(name); ok {
		if p.at(token.Less) {
			args, err := p.parseTypeArgList()
			if err != nil {
				return nil, err
			}
			if !st.IsGeneric {
				return nil, p.failAt(span, "%q is not a generic struct", name)
			}
			return types.GenericStruct{Base: st, Args: args}, nil
		}
		if st.IsGeneric {
			return nil, p.failAt(span, "%q is a generic struct and requires type arguments", name)
		}
		return st, nil
	}
	if en, ok := p.ctx.Enums.Lookup(name); ok {
		return en, nil
	}
	return nil, p.failAt(span, "undefined type %q", name)
}

// parseTypeArgList parses `<T, T, ...>` generic-instantiation arguments.
func (p *Parser) parseTypeArgList() ([]types.Type, error) {
	p.advance() // '<'
	var args []types.Type
	for {
		ty, err := p.parseType()
		if err != nil {
			return nil, err
		}
		args = append(args, ty)
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(token.Greater); err != nil {
		return nil, err
	}
	return args, nil
}

// resolveSelfReferences implements spec.md §4.9.5: after parsing a struct
// body, walk each field type and rewrite every None found strictly inside a
// Pointer, StaticArray, Function, or Tuple into a pointer to the struct
// being declared, decrementing remaining per rewrite. A direct (non-pointer)
// None field is left untouched here; parseStructDecl then reports it at the
// field's span.
func resolveSelfReferences(self *types.Struct, fields []types.Type, remaining *int) {
	selfPtr := types.Pointer{Base: self}
	for i, f := range fields {
		fields[i] = rewriteNone(f, selfPtr, remaining)
	}
}

func rewriteNone(t types.Type, selfPtr types.Pointer, remaining *int) types.Type {
	switch v := t.(type) {
	case types.Pointer:
		if _, isNone := v.Base.(types.None); isNone {
			*remaining--
			return selfPtr
		}
		v.Base = rewriteNone(v.Base, selfPtr, remaining)
		return v
	case types.StaticArray:
		if _, isNone := v.Element.(types.None); isNone {
			*remaining--
			v.Element = selfPtr
			return v
		}
		v.Element = rewriteNone(v.Element, selfPtr, remaining)
		return v
	case types.Function:
		for i, p := range v.Params {
			if _, isNone := p.(types.None); isNone {
				*remaining--
				v.Params[i] = selfPtr
				continue
			}
			v.Params[i] = rewriteNone(p, selfPtr, remaining)
		}
		if v.Return != nil {
			if _, isNone := v.Return.(types.None); isNone {
				*remaining--
				v.Return = selfPtr
			} else {
				v.Return = rewriteNone(v.Return, selfPtr, remaining)
			}
		}
		return v
	case types.Tuple:
		for i, f := range v.FieldTypes {
			if _, isNone := f.(types.None); isNone {
				*remaining--
				v.FieldTypes[i] = selfPtr
				continue
			}
			v.FieldTypes[i] = rewriteNone(f, selfPtr, remaining)
		}
		return v
	default:
		return t
	}
}
