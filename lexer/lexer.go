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

// Package lexer implements the Scanner (spec.md §4.3): a hand-rolled DFA
// over a byte buffer that tracks (line, col) and produces one [token.Token]
// per [Lexer.ScanNext] call. The scanner is context-free except for the
// two-token right-shift heuristic, which is deliberately left to the parser
// (see [token.Span.AdjacentTo] and the parser's shift production).
package lexer

import (
	"strings"

	"github.com/bufbuild/la/token"
)

// Lexer scans one file's source text into a token stream.
type Lexer struct {
	fileID token.FileID
	src    string
	pos    int // byte offset into src
	line   int // 1-indexed
	col    int // 1-indexed, resets at each '\n'
}

// New returns a Lexer over src, attributing every token it produces to
// fileID.
func New(fileID token.FileID, src string) *Lexer {
	return &Lexer{fileID: fileID, src: src, line: 1, col: 1}
}

func (l *Lexer) done() bool { return l.pos >= len(l.src) }

func (l *Lexer) peek() byte {
	if l.done() {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekAt(off int) byte {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

// advance consumes one byte and updates the line/col cursor.
func (l *Lexer) advance() byte {
	b := l.src[l.pos]
	l.pos++
	if b == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return b
}

// makeSpan builds the half-open [startCol, l.col) span for a token that ran
// from (startLine, startCol) to the lexer's current position: l.col already
// points one past the token's last consumed column.
func (l *Lexer) makeSpan(startLine, startCol int) token.Span {
	return token.Span{
		FileID:   l.fileID,
		Line:     uint32(startLine),
		ColStart: uint32(startCol),
		ColEnd:   uint32(l.col),
	}
}

// ScanNext produces the next token in the stream. Once the end of input is
// reached it returns an [token.EndOfFile] token forever after (spec.md §4.3:
// "produces one token per scan_next() call").
func (l *Lexer) ScanNext() token.Token {
	l.skipWhitespaceAndComments()

	startLine, startCol := l.line, l.col
	if l.done() {
		return token.Token{Kind: token.EndOfFile, Span: l.makeSpan(startLine, startCol)}
	}

	c := l.peek()
	switch {
	case isIdentStart(c):
		return l.scanIdentOrKeyword(startLine, startCol)
	case isDigit(c):
		return l.scanNumber(startLine, startCol)
	case c == '"':
		return l.scanString(startLine, startCol)
	case c == '\'':
		return l.scanChar(startLine, startCol)
	default:
		return l.scanOperatorOrPunct(startLine, startCol)
	}
}

func (l *Lexer) skipWhitespaceAndComments() {
	for !l.done() {
		c := l.peek()
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.advance()
		case c == '/' && l.peekAt(1) == '/':
			for !l.done() && l.peek() != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentCont(c byte) bool { return isIdentStart(c) || isDigit(c) }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func (l *Lexer) invalid(startLine, startCol int, message string) token.Token {
	return token.Token{
		Kind:    token.Invalid,
		Literal: message,
		Span:    l.makeSpan(startLine, startCol),
	}
}

func (l *Lexer) scanIdentOrKeyword(startLine, startCol int) token.Token {
	start := l.pos
	for !l.done() && isIdentCont(l.peek()) {
		l.advance()
	}
	text := l.src[start:l.pos]

	if kw, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: kw, Literal: text, Span: l.makeSpan(startLine, startCol)}
	}
	switch text {
	case "true":
		return token.Token{Kind: token.True, Literal: text, Span: l.makeSpan(startLine, startCol)}
	case "false":
		return token.Token{Kind: token.False, Literal: text, Span: l.makeSpan(startLine, startCol)}
	}
	return token.Token{Kind: token.Ident, Literal: text, Span: l.makeSpan(startLine, startCol)}
}

// numberSuffixes classifies the width suffix on a numeric literal into its
// token.Kind (spec.md §4.3: "42i32, 3.14f32"). The first entry in list
// order wins, and a suffix matches only when no identifier character
// follows it, so "i1" does not claim the start of "i16".
var numberSuffixes = []struct {
	suffix string
	kind   token.Kind
	float  bool
}{
	{"i1", token.Int1, false},
	{"i8", token.Int8, false},
	{"i16", token.Int16, false},
	{"i32", token.Int32, false},
	{"i64", token.Int64, false},
	{"u8", token.Uint8, false},
	{"u16", token.Uint16, false},
	{"u32", token.Uint32, false},
	{"u64", token.Uint64, false},
	{"f32", token.Float32, true},
	{"f64", token.Float64, true},
}

func (l *Lexer) scanNumber(startLine, startCol int) token.Token {
	start := l.pos
	for !l.done() && isDigit(l.peek()) {
		l.advance()
	}
	isFloat := false
	if l.peek() == '.' && isDigit(l.peekAt(1)) {
		isFloat = true
		l.advance() // consume '.'
		for !l.done() && isDigit(l.peek()) {
			l.advance()
		}
	}

	kind := token.Int
	if isFloat {
		kind = token.Float
	}
	for _, suf := range numberSuffixes {
		if strings.HasPrefix(l.src[l.pos:], suf.suffix) && !isIdentCont(l.peekAt(len(suf.suffix))) {
			for range suf.suffix {
				l.advance()
			}
			kind = suf.kind
			break
		}
	}

	literal := l.src[start:l.pos]
	return token.Token{Kind: kind, Literal: literal, Span: l.makeSpan(startLine, startCol)}
}

func (l *Lexer) scanString(startLine, startCol int) token.Token {
	l.advance() // opening quote
	var b strings.Builder
	for {
		if l.done() {
			return l.invalid(startLine, startCol, "unterminated string literal")
		}
		c := l.peek()
		if c == '"' {
			l.advance()
			break
		}
		if c == '\n' {
			return l.invalid(startLine, startCol, "unterminated string literal")
		}
		if c == '\\' {
			l.advance()
			if l.done() {
				return l.invalid(startLine, startCol, "unterminated string literal")
			}
			esc, ok := decodeEscape(l.advance())
			if !ok {
				return l.invalid(startLine, startCol, "unknown string escape sequence")
			}
			b.WriteByte(esc)
			continue
		}
		b.WriteByte(l.advance())
	}
	return token.Token{Kind: token.String, Literal: b.String(), Span: l.makeSpan(startLine, startCol)}
}

func (l *Lexer) scanChar(startLine, startCol int) token.Token {
	l.advance() // opening quote
	if l.done() {
		return l.invalid(startLine, startCol, "unterminated character literal")
	}
	var value byte
	c := l.peek()
	if c == '\\' {
		l.advance()
		if l.done() {
			return l.invalid(startLine, startCol, "unterminated character literal")
		}
		esc, ok := decodeEscape(l.advance())
		if !ok {
			return l.invalid(startLine, startCol, "unknown character escape sequence")
		}
		value = esc
	} else {
		value = l.advance()
	}
	if l.done() || l.peek() != '\'' {
		return l.invalid(startLine, startCol, "unterminated character literal")
	}
	l.advance() // closing quote
	return token.Token{
		Kind:    token.Char,
		Literal: string(rune(value)),
		Span:    l.makeSpan(startLine, startCol),
	}
}

// decodeEscape decodes the character following a backslash in a string or
// character literal: \n \t \\ \" \' \0 (spec.md §4.3).
func decodeEscape(c byte) (byte, bool) {
	switch c {
	case 'n':
		return '\n', true
	case 't':
		return '\t', true
	case '\\':
		return '\\', true
	case '"':
		return '"', true
	case '\'':
		return '\'', true
	case '0':
		return 0, true
	default:
		return 0, false
	}
}

// twoByteOps lists the multi-character operators that are never ambiguous
// with the right-shift heuristic: unlike '>>', these always merge at the
// scanner regardless of surrounding context.
var twoByteOps = map[string]token.Kind{
	"::": token.DoubleColon,
	"..": token.DotDot,
	"->": token.Arrow,
	"<=": token.LessEqual,
	">=": token.GreaterEqual,
	"==": token.Equal,
	"!=": token.NotEqual,
	"&&": token.AmpAmp,
	"||": token.PipePipe,
	"<<": token.Shl,
	"++": token.PlusPlus,
	"--": token.MinusMinus,
	"+=": token.PlusAssign,
	"-=": token.MinusAssign,
	"*=": token.StarAssign,
	"/=": token.SlashAssign,
	"%=": token.PercentAssign,
	"&=": token.AmpAssign,
	"|=": token.PipeAssign,
	"^=": token.CaretAssign,
}

var threeByteOps = map[string]token.Kind{
	"<<=": token.ShlAssign,
}

var oneByteOps = map[byte]token.Kind{
	'{': token.LBrace,
	'}': token.RBrace,
	'(': token.LParen,
	')': token.RParen,
	'[': token.LBracket,
	']': token.RBracket,
	',': token.Comma,
	';': token.Semicolon,
	':': token.Colon,
	'.': token.Dot,
	'=': token.Assign,
	'@': token.At,
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'%': token.Percent,
	'&': token.Amp,
	'|': token.Pipe,
	'^': token.Caret,
	'~': token.Tilde,
	'!': token.Bang,
	'<': token.Less,
	// '>' is intentionally handled like every other one-byte operator: the
	// scanner always emits a lone Greater token, even when immediately
	// followed by another '>'. See the package doc comment.
	'>': token.Greater,
}

func (l *Lexer) scanOperatorOrPunct(startLine, startCol int) token.Token {
	if l.pos+3 <= len(l.src) {
		if kind, ok := threeByteOps[l.src[l.pos:l.pos+3]]; ok {
			l.advance()
			l.advance()
			l.advance()
			return token.Token{Kind: kind, Literal: l.src[l.pos-3 : l.pos], Span: l.makeSpan(startLine, startCol)}
		}
	}
	if l.pos+2 <= len(l.src) {
		two := l.src[l.pos : l.pos+2]
		// ">>" specifically must NOT be merged: only a lone Greater is ever
		// emitted for '>', so the parser can apply the span-adjacency
		// heuristic to decide between a right shift and two nested generic
		// closes (spec.md §4.3, §4.9.6). ">=" is unambiguous and still
		// merges normally.
		if two != ">>" {
			if kind, ok := twoByteOps[two]; ok {
				l.advance()
				l.advance()
				return token.Token{Kind: kind, Literal: two, Span: l.makeSpan(startLine, startCol)}
			}
		}
	}
	c := l.advance()
	if kind, ok := oneByteOps[c]; ok {
		return token.Token{Kind: kind, Literal: string(c), Span: l.makeSpan(startLine, startCol)}
	}
	return l.invalid(startLine, startCol, "unexpected character "+string(rune(c)))
}
