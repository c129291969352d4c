package token_test

import (
	"testing"

	"github.com/feint-lang/feint/lang/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupKw(t *testing.T) {
	cases := []struct {
		lit  string
		want token.Token
	}{
		{"nil", token.NIL},
		{"true", token.TRUE},
		{"false", token.FALSE},
		{"import", token.IMPORT},
		{"loop", token.LOOP},
		{"notakeyword", token.IDENT},
		{"x", token.IDENT},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, token.LookupKw(tc.lit), tc.lit)
	}
}

func TestTokenString(t *testing.T) {
	assert.Equal(t, "+", token.PLUS.String())
	assert.Equal(t, "'+'", token.PLUS.GoString())
	assert.Equal(t, "identifier", token.IDENT.GoString())
}

func TestIsBinopUnop(t *testing.T) {
	assert.True(t, token.PLUS.IsBinop())
	assert.False(t, token.PLUS.IsUnop())
	assert.True(t, token.MINUS.IsUnop())
	assert.True(t, token.MINUS.IsBinop())
	assert.False(t, token.COMMA.IsBinop())
}

func TestFileSetPosition(t *testing.T) {
	fs := token.NewFileSet()
	src := "abc\ndef\nghi"
	f := fs.AddFile("test.fi", -1, len(src))
	for i, c := range src {
		if c == '\n' {
			f.AddLine(i + 1)
		}
	}

	pos := f.Pos(5) // 'e' in "def"
	p := fs.Position(pos)
	require.True(t, p.IsValid())
	assert.Equal(t, 2, p.Line)
	assert.Equal(t, 2, p.Column)
	assert.Equal(t, "test.fi", p.Filename)
}
