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

// Package parser implements the Parser Core (spec.md §4.9): a hand-written,
// precedence-climbing recursive-descent parser holding a 3-token lookahead
// window, consuming the Scanner's token stream and mutating the Parse
// Context's registries as it goes.
package parser

import (
	"errors"
	"strings"

	"github.com/bufbuild/la/ast"
	"github.com/bufbuild/la/lexer"
	"github.com/bufbuild/la/report"
	"github.com/bufbuild/la/symtab"
	"github.com/bufbuild/la/token"
	"github.com/bufbuild/la/types"
)

// ErrParsing is the terminal sentinel every parse error unwinds to: the
// current production aborts and the compilation unit fails (spec.md §4.10).
// The AST is not discarded: [Parser.ParseCompilationUnit] still returns
// the File holding the declarations completed before the error, and the
// driver keeps that File in the unit. Diagnostics themselves are recorded on
// the Parse Context's Report as the error is discovered; this sentinel only
// signals control flow up the call stack.
var ErrParsing = errors.New("parser: parsing failed")

// Parser holds the 3-token lookahead window over one file's token stream
// and a reference to the (shared, possibly multi-file) Parse Context.
type Parser struct {
	ctx    *symtab.Context
	lex    *lexer.Lexer
	fileID token.FileID

	previous token.Token
	current  token.Token
	next     token.Token

	// loopLevels is the loop_levels_stack (spec.md §4.9.2): entering a
	// function or lambda body pushes a fresh 0; entering a loop increments
	// the top entry; break/continue range-check N against it.
	loopLevels []int

	// currentStructName and currentStructUnknownFds implement the
	// self-referential struct resolution counters (spec.md §4.9.5).
	currentStructName        string
	currentStructUnknownFds  int

	// genericParams is the set of in-scope generic type-parameter names for
	// the declaration currently being parsed (function or struct).
	genericParams map[string]bool
}

// New constructs a Parser over src, attributing every token and diagnostic
// to fileID, and primes the 3-token window with two advances.
func New(ctx *symtab.Context, fileID token.FileID, src string) *Parser {
	p := &Parser{ctx: ctx, lex: lexer.New(fileID, src), fileID: fileID}
	p.advance()
	p.advance()
	return p
}

// advance shifts the lookahead window forward by one token.
func (p *Parser) advance() {
	p.previous = p.current
	p.current = p.next
	p.next = p.lex.ScanNext()
}

// at reports whether the current token has the given kind.
func (p *Parser) at(k token.Kind) bool { return p.current.Kind == k }

// atAny reports whether the current token is one of the given kinds.
func (p *Parser) atAny(ks ...token.Kind) bool {
	for _, k := range ks {
		if p.current.Kind == k {
			return true
		}
	}
	return false
}

// fail records an error diagnostic at the current token's span and unwinds
// via ErrParsing.
func (p *Parser) fail(format string, args ...any) error {
	p.ctx.Report.ReportErrorf(p.current.Span, format, args...)
	return ErrParsing
}

// failAt is like fail but anchors the diagnostic at an explicit span.
func (p *Parser) failAt(span token.Span, format string, args ...any) error {
	p.ctx.Report.ReportErrorf(span, format, args...)
	return ErrParsing
}

// expect consumes the current token if it has kind k, or fails.
func (p *Parser) expect(k token.Kind) (token.Token, error) {
	if !p.at(k) {
		return token.Token{}, p.fail("expected %s, found %s", k, p.current.Kind)
	}
	tok := p.current
	p.advance()
	return tok, nil
}

// expectIdent consumes an Ident token and returns its text.
func (p *Parser) expectIdent() (string, token.Span, error) {
	tok, err := p.expect(token.Ident)
	if err != nil {
		return "", token.Span{}, err
	}
	return tok.Literal, tok.Span, nil
}

// ParseCompilationUnit is parse_compilation_unit() (spec.md §4.9): loops
// until EndOfFile, dispatching each top-level declaration. It returns the
// parsed File, or the File built so far plus ErrParsing if a production
// aborted (the caller -- the Compilation Driver -- treats any error as
// failing the whole unit, per spec.md §4.10).
func (p *Parser) ParseCompilationUnit(path string) (*ast.File, error) {
	f := &ast.File{Path: path}
	for !p.at(token.EndOfFile) {
		decl, err := p.parseTopLevelDecl()
		if err != nil {
			return f, err
		}
		if decl != nil {
			f.Decls = append(f.Decls, decl)
		}
	}
	return f, nil
}

func (p *Parser) parseTopLevelDecl() (ast.Decl, error) {
	switch {
	case p.at(token.Import):
		return p.parseImportDecl()
	case p.at(token.Load):
		return p.parseLoadDecl()
	case p.at(token.Type):
		return p.parseTypeAliasDecl()
	case p.at(token.Fun):
		return p.parseFunctionDecl(nil)
	case p.at(token.Operator):
		return p.parseOperatorDecl(nil)
	case p.at(token.Var):
		return p.parseVarDecl()
	case p.at(token.Const):
		return p.parseConstDecl()
	case p.at(token.Struct):
		return p.parseStructDecl(nil)
	case p.at(token.Enum):
		return p.parseEnumDecl()
	case p.at(token.At):
		return p.parseTopLevelDirective()
	default:
		return nil, p.fail("unexpected token %s at top level", p.current.Kind)
	}
}

// parseTopLevelDirective parses a leading `@extern`/`@intrinsic(...)`/
// `@prefix`/`@infix`/`@postfix`/`@packed` directive and dispatches to the
// declaration production it modifies (spec.md §4.9.7, declaration context).
func (p *Parser) parseTopLevelDirective() (ast.Decl, error) {
	mods, err := p.parseDeclModifiers()
	if err != nil {
		return nil, err
	}
	switch {
	case p.at(token.Fun):
		return p.parseFunctionDecl(mods)
	case p.at(token.Operator):
		return p.parseOperatorDecl(mods)
	case p.at(token.Struct):
		return p.parseStructDecl(mods)
	default:
		return nil, p.fail("directive not valid before %s", p.current.Kind)
	}
}

// declModifiers accumulates the declaration-context directives that may
// precede `fun`, `operator`, or `struct`.
type declModifiers struct {
	isExtern      bool
	isIntrinsic   bool
	intrinsicName string
	kind          types.OperatorKind // Prefix/Infix/Postfix, or Normal
	isPacked      bool
}

func (p *Parser) parseDeclModifiers() (*declModifiers, error) {
	mods := &declModifiers{}
	for p.at(token.At) {
		p.advance()
		name, span, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		switch name {
		case "extern":
			mods.isExtern = true
		case "intrinsic":
			if _, err := p.expect(token.LParen); err != nil {
				return nil, err
			}
			nameTok, err := p.expect(token.String)
			if err != nil {
				return nil, err
			}
			if strings.ContainsAny(nameTok.Literal, " \t\n") {
				return nil, p.failAt(nameTok.Span, "intrinsic name must not contain whitespace")
			}
			mods.isIntrinsic = true
			mods.intrinsicName = nameTok.Literal
			if _, err := p.expect(token.RParen); err != nil {
				return nil, err
			}
		case "prefix":
			mods.kind = types.Prefix
		case "infix":
			mods.kind = types.Infix
		case "postfix":
			mods.kind = types.Postfix
		case "packed":
			mods.isPacked = true
		default:
			return nil, p.failAt(span, "unknown directive @%s", name)
		}
	}
	return mods, nil
}
