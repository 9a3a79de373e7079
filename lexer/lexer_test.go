package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/la/lexer"
	"github.com/bufbuild/la/token"
)

func scanAll(src string) []token.Token {
	l := lexer.New(0, src)
	var toks []token.Token
	for {
		tok := l.ScanNext()
		toks = append(toks, tok)
		if tok.Kind == token.EndOfFile {
			return toks
		}
	}
}

func kinds(toks []token.Token) []token.Kind {
	ks := make([]token.Kind, len(toks))
	for i, t := range toks {
		ks[i] = t.Kind
	}
	return ks
}

func TestScanIdentsAndKeywords(t *testing.T) {
	toks := scanAll("fun foo var x")
	assert.Equal(t, []token.Kind{token.Fun, token.Ident, token.Var, token.Ident, token.EndOfFile}, kinds(toks))
	assert.Equal(t, "foo", toks[1].Literal)
}

func TestScanNumberSuffixes(t *testing.T) {
	toks := scanAll("42 42i32 3.14 3.14f32")
	require.Len(t, toks, 5)
	assert.Equal(t, token.Int, toks[0].Kind)
	assert.Equal(t, token.Int32, toks[1].Kind)
	assert.Equal(t, token.Float, toks[2].Kind)
	assert.Equal(t, token.Float32, toks[3].Kind)
}

func TestScanStringEscapes(t *testing.T) {
	toks := scanAll(`"a\nb\t\"c\\"`)
	require.Len(t, toks, 2)
	require.Equal(t, token.String, toks[0].Kind)
	assert.Equal(t, "a\nb\t\"c\\", toks[0].Literal)
}

func TestScanCharLiteral(t *testing.T) {
	toks := scanAll(`'a' '\n'`)
	require.Len(t, toks, 3)
	assert.Equal(t, token.Char, toks[0].Kind)
	assert.Equal(t, "a", toks[0].Literal)
	assert.Equal(t, "\n", toks[1].Literal)
}

func TestScanShiftEmitsTwoGreaterTokens(t *testing.T) {
	toks := scanAll("a >> b")
	require.Len(t, toks, 5)
	assert.Equal(t, []token.Kind{token.Ident, token.Greater, token.Greater, token.Ident, token.EndOfFile}, kinds(toks))
	assert.True(t, toks[1].Span.AdjacentTo(toks[2].Span))
}

func TestScanGreaterEqualIsNotSplit(t *testing.T) {
	toks := scanAll("a >= b")
	assert.Equal(t, []token.Kind{token.Ident, token.GreaterEqual, token.Ident, token.EndOfFile}, kinds(toks))
}

func TestScanSkipsLineComments(t *testing.T) {
	toks := scanAll("var x // trailing comment\nvar y")
	assert.Equal(t, []token.Kind{token.Var, token.Ident, token.Var, token.Ident, token.EndOfFile}, kinds(toks))
}

func TestScanUnterminatedStringIsInvalid(t *testing.T) {
	toks := scanAll(`"unterminated`)
	require.Len(t, toks, 2)
	assert.Equal(t, token.Invalid, toks[0].Kind)
}

func TestScanUnexpectedCharacterIsInvalid(t *testing.T) {
	toks := scanAll("$")
	require.Len(t, toks, 2)
	assert.Equal(t, token.Invalid, toks[0].Kind)
}

func TestScanTracksLineAndColumn(t *testing.T) {
	toks := scanAll("a\nbb")
	require.Len(t, toks, 3)
	assert.Equal(t, uint32(1), toks[0].Span.Line)
	assert.Equal(t, uint32(2), toks[1].Span.Line)
	assert.Equal(t, uint32(1), toks[1].Span.ColStart)
	assert.Equal(t, uint32(3), toks[1].Span.ColEnd)
}
