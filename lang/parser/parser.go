// Package parser implements the recursive-descent, precedence-climbing
// parser that turns a token stream into an AST.
package parser

import (
	"context"
	"errors"
	"os"

	"github.com/feint-lang/feint/lang/ast"
	"github.com/feint-lang/feint/lang/scanner"
	"github.com/feint-lang/feint/lang/token"
)

// ParseFiles parses the given source files and returns the fileset along
// with the ASTs and any error encountered. The error, if non-nil, wraps one
// or more *Error and *scanner.Error values (use errors.As/errors.Is).
func ParseFiles(ctx context.Context, files ...string) (*token.FileSet, []*ast.Chunk, error) {
	if len(files) == 0 {
		return nil, nil, nil
	}

	var p parser
	res := make([]*ast.Chunk, 0, len(files))
	fs := token.NewFileSet()

	for _, file := range files {
		select {
		case <-ctx.Done():
			return fs, res, ctx.Err()
		default:
		}

		b, err := os.ReadFile(file)
		if err != nil {
			p.errors.Add(token.Position{Filename: file}, "%s", err)
			continue
		}

		p.init(fs, file, b)
		ch := p.parseChunk()
		ch.Name = file
		res = append(res, ch)
	}
	p.errors.Sort()
	p.scanErrors.Sort()
	return fs, res, p.combinedErr()
}

// ParseChunk parses a single chunk from src, registering it in fset under
// filename for position reporting. The error, if non-nil, wraps one or more
// *Error and *scanner.Error values.
func ParseChunk(fset *token.FileSet, filename string, src []byte) (*ast.Chunk, error) {
	var p parser
	p.init(fset, filename, src)
	ch := p.parseChunk()
	ch.Name = filename
	p.errors.Sort()
	p.scanErrors.Sort()
	return ch, p.combinedErr()
}

// parser parses a token stream produced by lang/scanner and builds an AST.
type parser struct {
	fset       *token.FileSet
	scanner    scanner.Scanner
	scanErrors scanner.ErrorList
	errors     ErrorList
	file       *token.File

	tok token.Token
	val token.Value
}

func (p *parser) init(fset *token.FileSet, filename string, src []byte) {
	p.fset = fset
	p.file = fset.AddFile(filename, -1, len(src))
	p.scanner.Init(p.file, src, p.scanErrors.Add)
	p.advance()
}

func (p *parser) advance() {
	p.tok = p.scanner.Scan(&p.val)
}

func (p *parser) combinedErr() error {
	var errs []error
	if err := p.scanErrors.Err(); err != nil {
		errs = append(errs, err)
	}
	if err := p.errors.Err(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}

var errPanicMode = errors.New("panic")

// expect consumes the current token if it is one of toks and returns its
// position, otherwise it records an error and panics with errPanicMode,
// recovered at the statement level to produce a BadStmt.
func (p *parser) expect(toks ...token.Token) token.Pos {
	pos := p.val.Pos
	for _, tok := range toks {
		if p.tok == tok {
			p.advance()
			return pos
		}
	}
	p.errorExpected(pos, toks...)
	panic(errPanicMode)
}

func (p *parser) error(pos token.Pos, format string, args ...any) {
	p.errors.Add(p.file.Position(pos), format, args...)
}

func (p *parser) errorExpected(pos token.Pos, toks ...token.Token) {
	var msg string
	if len(toks) == 1 {
		msg = "expected " + toks[0].GoString()
	} else {
		msg = "expected one of"
		for i, tok := range toks {
			if i > 0 {
				msg += ","
			}
			msg += " " + tok.GoString()
		}
	}
	if pos == p.val.Pos {
		found := p.val.Raw
		if found == "" {
			found = p.tok.GoString()
		}
		msg += ", found " + found
	}
	p.error(pos, "%s", msg)
}
