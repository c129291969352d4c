// Some of the scanner package is adapted from the Go source code:
// https://cs.opensource.google/go/go/+/refs/tags/go1.22.1:src/go/scanner/scanner.go
//
// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scanner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/feint-lang/feint/lang/token"
)

// TokenAndValue combines the token type with the token value type in the
// same struct.
type TokenAndValue struct {
	Token token.Token
	Value token.Value
}

// ScanFiles tokenizes the given source files and returns the list of
// tokens, grouped by the file at the same index, along with any error
// encountered. The error, if non-nil, implements Unwrap() []error.
func ScanFiles(ctx context.Context, files ...string) (*token.FileSet, [][]TokenAndValue, error) {
	if len(files) == 0 {
		return nil, nil, nil
	}

	var (
		s      Scanner
		tokVal token.Value
		el     ErrorList
	)

	fs := token.NewFileSet()
	tokensByFile := make([][]TokenAndValue, len(files))
	for i, file := range files {
		select {
		case <-ctx.Done():
			return fs, tokensByFile, ctx.Err()
		default:
		}

		b, err := os.ReadFile(file)
		if err != nil {
			el.Add(token.Position{Filename: file}, UnknownToken, "%s", err)
			continue
		}

		fsf := fs.AddFile(file, -1, len(b))
		s.Init(fsf, b, el.Add)
		for {
			tok := s.Scan(&tokVal)
			tokensByFile[i] = append(tokensByFile[i], TokenAndValue{Token: tok, Value: tokVal})
			if tok == token.EOF {
				break
			}
		}
	}
	el.Sort()
	return fs, tokensByFile, el.Err()
}

// Scanner tokenizes FeInt source into a flat token stream, folding
// indentation changes into synthetic BLOCKSTART/BLOCKEND tokens.
type Scanner struct {
	// immutable state after Init
	file *token.File
	src  []byte
	err  func(pos token.Position, kind Kind, format string, args ...any)

	// mutable scanning state
	cur  rune // current character, -1 at EOF
	off  int  // byte offset of cur
	roff int  // byte offset after cur

	invalidByte byte // the raw byte when cur == utf8.RuneError due to bad encoding

	atLineStart bool    // true when the next token would start a new logical line
	bracketDepth int    // depth of (), [], {} nesting; gates indentation handling
	indents      []int  // indent-width stack, always starts at {0}
	pending      []pendTok // synthetic tokens queued ahead of the next real scan
}

type pendTok struct {
	tok token.Token
	val token.Value
}

var (
	bom      = [3]byte{0xEF, 0xBB, 0xBF}
	hashBang = [2]byte{'#', '!'}
)

// Init initializes the scanner to tokenize a new file. It panics if the
// file's recorded size does not match len(src).
func (s *Scanner) Init(file *token.File, src []byte, errHandler func(token.Position, Kind, string, ...any)) {
	if file.Size() != len(src) {
		panic(fmt.Sprintf("file size (%d) does not match src len (%d)", file.Size(), len(src)))
	}

	s.file = file
	s.src = src
	s.err = errHandler

	s.cur = ' '
	s.off = 0
	s.roff = 0
	s.invalidByte = 0
	s.atLineStart = true
	s.bracketDepth = 0
	s.indents = []int{0}
	s.pending = nil

	if len(src) >= len(bom) && bytes.Equal(src[:len(bom)], bom[:]) {
		s.off += len(bom)
		s.roff += len(bom)
	}
	if len(src)-s.roff >= len(hashBang) && bytes.Equal(src[s.roff:s.roff+len(hashBang)], hashBang[:]) {
		for s.cur != '\n' && s.cur != -1 {
			s.advance()
		}
	}
	s.advance()
}

func (s *Scanner) peek() byte {
	if s.roff < len(s.src) {
		return s.src[s.roff]
	}
	return 0
}

// advance reads the next Unicode character into s.cur; s.cur == -1 means
// end-of-file. \r\n is normalized to \n here so the rest of the scanner
// never sees a bare \r.
func (s *Scanner) advance() {
	if s.cur == '\r' && s.roff < len(s.src) && s.src[s.roff] == '\n' {
		s.roff++
	}
	if s.roff >= len(s.src) {
		s.off = len(s.src)
		s.cur = -1
		return
	}

	s.off = s.roff
	s.invalidByte = 0
	r, w := rune(s.src[s.roff]), 1
	if r >= utf8.RuneSelf {
		r, w = utf8.DecodeRune(s.src[s.roff:])
		if r == utf8.RuneError && w == 1 {
			s.error(s.off, UnknownToken, "illegal UTF-8 encoding")
			s.invalidByte = s.src[s.roff]
		}
	}
	s.roff += w
	if r == '\r' {
		r = '\n'
	}
	s.cur = r
	if r == '\n' {
		s.file.AddLine(s.roff)
	}
}

func (s *Scanner) error(off int, kind Kind, format string, args ...any) {
	if s.err != nil {
		s.err(s.file.Position(s.file.Pos(off)), kind, format, args...)
	}
}

func (s *Scanner) advanceIf(matches ...byte) bool {
	if s.cur >= 0 && s.cur < utf8.RuneSelf && bytes.IndexByte(matches, byte(s.cur)) >= 0 {
		s.advance()
		return true
	}
	return false
}

// Scan returns the next token in the source file, writing its payload into
// tokVal. Synthetic BLOCKSTART/BLOCKEND tokens are interleaved with real
// tokens as indentation changes are observed.
func (s *Scanner) Scan(tokVal *token.Value) (tok token.Token) {
	if len(s.pending) > 0 {
		p := s.pending[0]
		s.pending = s.pending[1:]
		*tokVal = p.val
		return p.tok
	}

	if s.atLineStart && s.bracketDepth == 0 {
		if done := s.scanIndent(tokVal); done {
			return s.takePending(tokVal)
		}
	}

	s.skipSpacesAndComments(tokVal)
	if s.atLineStart && s.bracketDepth == 0 {
		// a newline was consumed: measure the next line's indentation first
		return s.Scan(tokVal)
	}
	if len(s.pending) > 0 {
		return s.takePending(tokVal)
	}

	pos := s.file.Pos(s.off)
	start := s.off

	switch cur := s.cur; {
	case cur == -1:
		return s.scanEOF(tokVal, pos)

	case isLetter(cur):
		lit := s.ident()
		tok = token.IDENT
		if 'A' <= lit[0] && lit[0] <= 'Z' {
			tok = token.TYPEIDENT
		} else if len(lit) > 1 {
			tok = token.LookupKw(lit)
		}
		*tokVal = token.Value{Raw: lit, Pos: pos}
		return tok

	case isDecimal(cur) || (cur == '.' && isDecimal(rune(s.peek()))):
		tok, base, lit := s.number(start)
		*tokVal = token.Value{Raw: lit, Pos: pos}
		if tok == token.INT {
			v, err := parseBigInt(lit, base)
			tokVal.Int = v
			if err != nil {
				s.error(start, UnknownToken, "invalid int literal %q", lit)
			}
		} else if tok == token.FLOAT {
			v, err := strconv.ParseFloat(lit, 64)
			tokVal.Float = v
			if err != nil && errors.Is(err, strconv.ErrRange) {
				s.error(start, UnknownToken, "float literal out of range")
			}
		}
		return tok

	case cur == '$':
		return s.scanDollar(tokVal, pos, start)

	case cur == '@':
		s.advance()
		if !isLetter(s.cur) {
			s.error(start, UnknownToken, "expected identifier after '@'")
			*tokVal = token.Value{Raw: "@", Pos: pos}
			return token.ILLEGAL
		}
		lit := s.ident()
		*tokVal = token.Value{Raw: "@" + lit, Pos: pos, String: lit}
		return token.ATNAME

	case cur == '"':
		s.advance()
		lit, val := s.shortString('"', start)
		*tokVal = token.Value{Raw: lit, Pos: pos, String: val}
		return token.STRING
	}

	return s.scanPunct(tokVal, pos, start)
}

func (s *Scanner) takePending(tokVal *token.Value) token.Token {
	p := s.pending[0]
	s.pending = s.pending[1:]
	*tokVal = p.val
	return p.tok
}

func (s *Scanner) scanEOF(tokVal *token.Value, pos token.Pos) token.Token {
	for len(s.indents) > 1 {
		s.indents = s.indents[:len(s.indents)-1]
		s.pending = append(s.pending, pendTok{tok: token.BLOCKEND, val: token.Value{Pos: pos}})
	}
	if len(s.pending) > 0 {
		s.pending = append(s.pending, pendTok{tok: token.EOF, val: token.Value{Pos: pos}})
		return s.takePending(tokVal)
	}
	*tokVal = token.Value{Pos: pos}
	return token.EOF
}

func (s *Scanner) scanDollar(tokVal *token.Value, pos token.Pos, start int) token.Token {
	s.advance()
	if s.cur == '"' {
		s.advance()
		lit, chunks, exprs := s.formatString(start)
		*tokVal = token.Value{Raw: "$" + lit, Pos: pos, Chunks: chunks, Exprs: exprs}
		return token.FSTRING
	}
	if !isLetter(s.cur) {
		s.error(start, UnknownToken, "expected identifier after '$'")
		*tokVal = token.Value{Raw: "$", Pos: pos}
		return token.ILLEGAL
	}
	lit := s.ident()
	switch lit {
	case "halt":
		*tokVal = token.Value{Raw: "$halt", Pos: pos}
		return token.HALT
	case "print":
		*tokVal = token.Value{Raw: "$print", Pos: pos}
		return token.PRINT
	case "debug":
		*tokVal = token.Value{Raw: "$debug", Pos: pos}
		return token.DEBUG
	}
	*tokVal = token.Value{Raw: "$" + lit, Pos: pos, String: lit}
	return token.BUILTIN
}

func (s *Scanner) scanPunct(tokVal *token.Value, pos token.Pos, start int) token.Token {
	cur := s.cur
	s.advance()
	var tok token.Token

	switch cur {
	case '=':
		switch {
		case s.advanceIf('='):
			tok = token.EQEQ
		case s.advanceIf('>'):
			tok = token.FATARROW
		default:
			tok = token.EQ
		}
	case '!':
		if s.advanceIf('=') {
			tok = token.BANGEQ
		} else {
			s.error(start, UnknownToken, "unexpected character %#U", cur)
			tok = token.ILLEGAL
		}
	case '<':
		tok = token.LT
		if s.advanceIf('=') {
			tok = token.LE
		}
	case '>':
		tok = token.GT
		if s.advanceIf('=') {
			tok = token.GE
		}
	case '+':
		tok = token.PLUS
	case '-':
		tok = token.MINUS
		if s.advanceIf('>') {
			tok = token.ARROW
		}
	case '*':
		tok = token.STAR
		if s.advanceIf('*') {
			tok = token.STARSTAR
		}
	case '/':
		tok = token.SLASH
		if s.advanceIf('/') {
			tok = token.SLASHSLASH
		}
	case '%':
		tok = token.PERCENT
	case '.':
		tok = token.DOT
	case ',':
		tok = token.COMMA
	case ':':
		tok = token.COLON
	case '(':
		s.bracketDepth++
		tok = token.LPAREN
	case ')':
		s.leaveBracket(start, ')')
		tok = token.RPAREN
	case '[':
		s.bracketDepth++
		tok = token.LBRACK
	case ']':
		s.leaveBracket(start, ']')
		tok = token.RBRACK
	case '{':
		s.bracketDepth++
		tok = token.LBRACE
	case '}':
		s.leaveBracket(start, '}')
		tok = token.RBRACE
	case '\'':
		lit, val := s.shortString('\'', start)
		*tokVal = token.Value{Raw: lit, Pos: pos, String: val}
		return token.STRING
	default:
		r := cur
		if r == utf8.RuneError && s.invalidByte > 0 {
			r = rune(s.invalidByte)
			s.invalidByte = 0
		}
		s.error(start, UnknownToken, "unknown token %#U", r)
		*tokVal = token.Value{Raw: string(cur), Pos: pos}
		return token.ILLEGAL
	}

	*tokVal = token.Value{Raw: tok.String(), Pos: pos}
	return tok
}

func (s *Scanner) leaveBracket(off int, closer byte) {
	if s.bracketDepth == 0 {
		s.error(off, UnmatchedClosingBracket, "unmatched closing bracket %q", closer)
		return
	}
	s.bracketDepth--
}

func (s *Scanner) ident() string {
	start := s.off
	for isLetter(s.cur) || isDigit(s.cur) {
		s.advance()
	}
	return string(s.src[start:s.off])
}

// skipSpacesAndComments consumes run-of-the-mill horizontal whitespace and,
// when at bracket depth zero, a trailing newline, after which it sets
// atLineStart so that Scan hands the next line to scanIndent.
func (s *Scanner) skipSpacesAndComments(tokVal *token.Value) {
	for {
		switch s.cur {
		case ' ':
			s.advance()
			continue
		case '\t':
			s.error(s.off, UnexpectedWhitespace, "tabs are not allowed in whitespace")
			s.advance()
			continue
		case '\n':
			if s.bracketDepth > 0 {
				s.advance()
				continue
			}
			s.advance()
			s.atLineStart = true
			return
		}
		break
	}
}

// scanIndent measures the leading whitespace of a new logical line and
// emits BLOCKSTART/BLOCKEND tokens as the indent stack changes, queuing any
// extra tokens in s.pending. Returns true if it produced at least one
// pending token (including possibly consuming further blank/comment-only
// lines before the line with real content).
func (s *Scanner) scanIndent(tokVal *token.Value) bool {
	for {
		lineOff := s.off
		pos := s.file.Pos(s.off)
		width := 0
		for {
			switch s.cur {
			case ' ':
				width++
				s.advance()
				continue
			case '\t':
				s.error(s.off, UnexpectedWhitespace, "tabs are not allowed in indentation")
				s.advance()
				continue
			}
			break
		}

		if s.cur == '\n' {
			// blank line: doesn't affect indentation
			s.advance()
			continue
		}
		if s.cur == -1 {
			s.atLineStart = false
			return false
		}

		s.atLineStart = false
		top := s.indents[len(s.indents)-1]
		switch {
		case width > top:
			s.indents = append(s.indents, width)
			s.pending = append(s.pending, pendTok{tok: token.BLOCKSTART, val: token.Value{Pos: pos}})
		case width < top:
			for len(s.indents) > 1 && s.indents[len(s.indents)-1] > width {
				s.indents = s.indents[:len(s.indents)-1]
				s.pending = append(s.pending, pendTok{tok: token.BLOCKEND, val: token.Value{Pos: pos}})
			}
			if s.indents[len(s.indents)-1] != width {
				s.error(lineOff, UnexpectedIndent, "unindent does not match any outer indentation level (width %d)", width)
				s.indents[len(s.indents)-1] = width
			}
		}
		return len(s.pending) > 0
	}
}

func isLetter(rn rune) bool {
	return 'a' <= rn && rn <= 'z' ||
		'A' <= rn && rn <= 'Z' ||
		rn == '_' ||
		rn >= utf8.RuneSelf && unicode.IsLetter(rn)
}

func isDigit(rn rune) bool {
	return '0' <= rn && rn <= '9' ||
		rn >= utf8.RuneSelf && unicode.IsDigit(rn)
}
