package scanner_test

import (
	"testing"

	"github.com/feint-lang/feint/lang/scanner"
	"github.com/feint-lang/feint/lang/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, src string) ([]token.Token, []token.Value, scanner.ErrorList) {
	t.Helper()
	var (
		s   scanner.Scanner
		el  scanner.ErrorList
		val token.Value
	)
	fs := token.NewFileSet()
	f := fs.AddFile("test.fi", -1, len(src))
	s.Init(f, []byte(src), el.Add)

	var toks []token.Token
	var vals []token.Value
	for {
		tok := s.Scan(&val)
		toks = append(toks, tok)
		vals = append(vals, val)
		if tok == token.EOF {
			break
		}
	}
	return toks, vals, el
}

func TestScanPunctAndOperators(t *testing.T) {
	toks, _, el := scanAll(t, "+ - * / // % ** = == != < <= > >= -> => . , :")
	require.Empty(t, el)
	want := []token.Token{
		token.PLUS, token.MINUS, token.STAR, token.SLASH, token.SLASHSLASH,
		token.PERCENT, token.STARSTAR, token.EQ, token.EQEQ, token.BANGEQ,
		token.LT, token.LE, token.GT, token.GE, token.ARROW, token.FATARROW,
		token.DOT, token.COMMA, token.COLON, token.EOF,
	}
	assert.Equal(t, want, toks)
}

func TestScanKeywordsAndIdents(t *testing.T) {
	toks, vals, el := scanAll(t, "if else loop x Y import")
	require.Empty(t, el)
	assert.Equal(t, []token.Token{token.IF, token.ELSE, token.LOOP, token.IDENT, token.TYPEIDENT, token.IMPORT, token.EOF}, toks)
	assert.Equal(t, "x", vals[3].Raw)
	assert.Equal(t, "Y", vals[4].Raw)
}

func TestScanBuiltinAndAtName(t *testing.T) {
	toks, vals, el := scanAll(t, "$foo @bar $halt $print $debug")
	require.Empty(t, el)
	assert.Equal(t, []token.Token{token.BUILTIN, token.ATNAME, token.HALT, token.PRINT, token.DEBUG, token.EOF}, toks)
	assert.Equal(t, "foo", vals[0].String)
	assert.Equal(t, "bar", vals[1].String)
}

func TestScanIntLiterals(t *testing.T) {
	toks, vals, el := scanAll(t, "123 0b101 0o17 0x1F")
	require.Empty(t, el)
	require.Equal(t, []token.Token{token.INT, token.INT, token.INT, token.INT, token.EOF}, toks)
	assert.Equal(t, int64(123), vals[0].Int.Int64())
	assert.Equal(t, int64(5), vals[1].Int.Int64())
	assert.Equal(t, int64(15), vals[2].Int.Int64())
	assert.Equal(t, int64(31), vals[3].Int.Int64())
}

func TestScanFloatLiterals(t *testing.T) {
	toks, vals, el := scanAll(t, "1.5 1.5e10 2.")
	require.Empty(t, el)
	require.Equal(t, []token.Token{token.FLOAT, token.FLOAT, token.FLOAT, token.EOF}, toks)
	assert.InDelta(t, 1.5, vals[0].Float, 0)
	assert.InDelta(t, 1.5e10, vals[1].Float, 0)
	assert.InDelta(t, 2.0, vals[2].Float, 0)
}

func TestScanStringEscapes(t *testing.T) {
	toks, vals, el := scanAll(t, `"a\nb\t\"c\"" 'single'`)
	require.Empty(t, el)
	require.Equal(t, []token.Token{token.STRING, token.STRING, token.EOF}, toks)
	assert.Equal(t, "a\nb\t\"c\"", vals[0].String)
	assert.Equal(t, "single", vals[1].String)
}

func TestScanUnterminatedString(t *testing.T) {
	_, _, el := scanAll(t, `"abc`)
	require.Len(t, el, 1)
	assert.Equal(t, scanner.UnterminatedString, el[0].Kind)
}

func TestScanFormatString(t *testing.T) {
	toks, vals, el := scanAll(t, `$"hello {name}, you are {age + 1}!"`)
	require.Empty(t, el)
	require.Equal(t, []token.Token{token.FSTRING, token.EOF}, toks)
	v := vals[0]
	require.Len(t, v.Chunks, 3)
	require.Len(t, v.Exprs, 2)
	assert.Equal(t, "hello ", v.Chunks[0])
	assert.Equal(t, ", you are ", v.Chunks[1])
	assert.Equal(t, "!", v.Chunks[2])
	assert.Equal(t, "name", v.Exprs[0])
	assert.Equal(t, "age + 1", v.Exprs[1])
}

func TestScanIndentation(t *testing.T) {
	src := "if x\n  y\n  z\nw\n"
	toks, _, el := scanAll(t, src)
	require.Empty(t, el)
	want := []token.Token{
		token.IF, token.IDENT,
		token.BLOCKSTART, token.IDENT, token.IDENT, token.BLOCKEND,
		token.IDENT, token.EOF,
	}
	assert.Equal(t, want, toks)
}

func TestScanIndentationMultiDedent(t *testing.T) {
	src := "a\n  b\n    c\nd\n"
	toks, _, el := scanAll(t, src)
	require.Empty(t, el)
	want := []token.Token{
		token.IDENT,
		token.BLOCKSTART, token.IDENT,
		token.BLOCKSTART, token.IDENT,
		token.BLOCKEND, token.BLOCKEND,
		token.IDENT, token.EOF,
	}
	assert.Equal(t, want, toks)
}

func TestScanTabsRejected(t *testing.T) {
	_, _, el := scanAll(t, "if x\n\ty\n")
	require.NotEmpty(t, el)
	assert.Equal(t, scanner.UnexpectedWhitespace, el[0].Kind)
}

func TestScanBracketsIgnoreNewlines(t *testing.T) {
	src := "(\n  1,\n  2\n)"
	toks, _, el := scanAll(t, src)
	require.Empty(t, el)
	want := []token.Token{
		token.LPAREN, token.INT, token.COMMA, token.INT, token.RPAREN, token.EOF,
	}
	assert.Equal(t, want, toks)
}

func TestScanUnmatchedClosingBracket(t *testing.T) {
	_, _, el := scanAll(t, ")")
	require.Len(t, el, 1)
	assert.Equal(t, scanner.UnmatchedClosingBracket, el[0].Kind)
}
