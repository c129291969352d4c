package parser

import (
	"github.com/feint-lang/feint/lang/ast"
	"github.com/feint-lang/feint/lang/token"
)

func (p *parser) parseChunk() *ast.Chunk {
	var chunk ast.Chunk
	start := p.val.Pos
	stmts := p.parseStmts(token.EOF)
	chunk.Block = &ast.Block{Start: start, End: p.val.Pos, Stmts: stmts}
	chunk.EOF = p.expect(token.EOF)
	return &chunk
}

// parseStmts parses statements until the current token is end (which is not
// consumed).
func (p *parser) parseStmts(end token.Token) []ast.Stmt {
	var list []ast.Stmt
	var ending ast.Stmt
	var endingReported bool
	for p.tok != end && p.tok != token.EOF {
		stmt := p.parseStmt()
		if stmt == nil {
			continue
		}
		if ending != nil && !endingReported {
			pos, _ := stmt.Span()
			p.error(pos, "unreachable statement after %T", ending)
			endingReported = true
		} else if stmt.BlockEnding() {
			ending = stmt
		}
		list = append(list, stmt)
	}
	return list
}

// parseBody parses the body that follows an "->" token: either a single
// statement on the same line, or an indented BLOCKSTART/BLOCKEND block.
func (p *parser) parseBody() *ast.Block {
	start := p.val.Pos
	if p.tok == token.BLOCKSTART {
		p.advance()
		stmts := p.parseStmts(token.BLOCKEND)
		end := p.val.Pos
		p.expect(token.BLOCKEND)
		return &ast.Block{Start: start, End: end, Stmts: stmts}
	}
	stmt := p.parseStmt()
	var stmts []ast.Stmt
	if stmt != nil {
		stmts = []ast.Stmt{stmt}
	}
	return &ast.Block{Start: start, End: p.val.Pos, Stmts: stmts}
}

// parseStmt parses a single statement. On a syntax error, it recovers to the
// next safe synchronization point and returns a BadStmt for the skipped
// interval.
func (p *parser) parseStmt() (stmt ast.Stmt) {
	start := p.val.Pos

	defer func() {
		if err := recover(); err != nil {
			if err == errPanicMode {
				stmt = &ast.BadStmt{Start: start, End: p.syncAfterError()}
				return
			}
			panic(err)
		}
	}()

	switch p.tok {
	case token.IMPORT:
		return p.parseImportStmt()
	case token.FROM:
		return p.parseFromImportStmt()
	case token.PACKAGE:
		return p.parsePackageStmt()
	case token.EXPORT:
		return p.parseExportStmt()
	case token.RETURN:
		return p.parseReturnStmt()
	case token.BREAK:
		pos := p.expect(token.BREAK)
		return &ast.BreakStmt{Break: pos}
	case token.CONTINUE:
		pos := p.expect(token.CONTINUE)
		return &ast.ContinueStmt{Continue: pos}
	case token.JUMP:
		return p.parseJumpStmt()
	default:
		return p.parseSimpleStmt()
	}
}

func (p *parser) parseSimpleStmt() ast.Stmt {
	left := p.parseExpr()
	if p.tok != token.EQ {
		return &ast.ExprStmt{Expr: left}
	}
	if !ast.IsAssignable(ast.Unwrap(left)) {
		start, _ := left.Span()
		p.error(start, "invalid assignment target")
	}
	assign := p.expect(token.EQ)
	right := p.parseExpr()
	return &ast.AssignStmt{Left: left, Assign: assign, Right: right}
}

func (p *parser) parseIdentExpr() *ast.IdentExpr {
	var exp ast.IdentExpr
	exp.Lit = p.val.Raw
	exp.Start = p.expect(token.IDENT, token.TYPEIDENT)
	return &exp
}

// parseDottedPath parses a dotted sequence of identifiers, as used by import
// and package paths.
func (p *parser) parseDottedPath() ([]*ast.IdentExpr, []token.Pos) {
	var path []*ast.IdentExpr
	var dots []token.Pos
	path = append(path, p.parseIdentExpr())
	for p.tok == token.DOT {
		dots = append(dots, p.expect(token.DOT))
		path = append(path, p.parseIdentExpr())
	}
	return path, dots
}

func (p *parser) parseImportStmt() *ast.ImportStmt {
	var stmt ast.ImportStmt
	stmt.Import = p.expect(token.IMPORT)
	stmt.Path, stmt.Dots = p.parseDottedPath()
	stmt.End = p.val.Pos
	if p.tok == token.AS {
		stmt.As = p.expect(token.AS)
		stmt.Alias = p.parseIdentExpr()
		stmt.End = p.val.Pos
	}
	return &stmt
}

func (p *parser) parseFromImportStmt() *ast.FromImportStmt {
	var stmt ast.FromImportStmt
	stmt.From = p.expect(token.FROM)
	stmt.Path, stmt.Dots = p.parseDottedPath()
	stmt.Import = p.expect(token.IMPORT)

	name := p.parseIdentExpr()
	stmt.Names = append(stmt.Names, name)
	stmt.Aliases = append(stmt.Aliases, p.parseOptAlias())
	for p.tok == token.COMMA {
		stmt.Commas = append(stmt.Commas, p.expect(token.COMMA))
		name = p.parseIdentExpr()
		stmt.Names = append(stmt.Names, name)
		stmt.Aliases = append(stmt.Aliases, p.parseOptAlias())
	}
	stmt.End = p.val.Pos
	return &stmt
}

func (p *parser) parseOptAlias() *ast.IdentExpr {
	if p.tok != token.AS {
		return nil
	}
	p.expect(token.AS)
	return p.parseIdentExpr()
}

func (p *parser) parsePackageStmt() *ast.PackageStmt {
	var stmt ast.PackageStmt
	stmt.Package = p.expect(token.PACKAGE)
	stmt.Name = p.parseIdentExpr()
	return &stmt
}

func (p *parser) parseExportStmt() *ast.ExportStmt {
	var stmt ast.ExportStmt
	stmt.Export = p.expect(token.EXPORT)
	stmt.Stmt = p.parseStmt()
	return &stmt
}

func (p *parser) parseReturnStmt() *ast.ReturnStmt {
	var stmt ast.ReturnStmt
	stmt.Return = p.expect(token.RETURN)
	if p.startsExpr() {
		stmt.Value = p.parseExpr()
	}
	return &stmt
}

func (p *parser) parseJumpStmt() *ast.JumpStmt {
	var stmt ast.JumpStmt
	stmt.Jump = p.expect(token.JUMP)
	if p.tok == token.IDENT {
		stmt.Label = p.parseIdentExpr()
	}
	return &stmt
}

// startsExpr reports whether the current token can begin an expression, used
// to disambiguate a bare `return` from `return expr`.
func (p *parser) startsExpr() bool {
	switch p.tok {
	case token.BLOCKEND, token.EOF, token.BREAK, token.CONTINUE, token.RETURN,
		token.JUMP, token.IMPORT, token.FROM, token.PACKAGE, token.EXPORT:
		return false
	}
	return true
}

type syncMode int

const (
	syncAfter syncMode = iota
	syncAt
)

// syncToks are safe resynchronization points after a parse error: statement
// starters are safe to stop before (syncAt), BLOCKEND is safe to stop after
// (syncAfter).
var syncToks = map[token.Token]syncMode{
	token.BLOCKEND: syncAfter,
	token.IMPORT:   syncAt,
	token.FROM:     syncAt,
	token.PACKAGE:  syncAt,
	token.EXPORT:   syncAt,
	token.RETURN:   syncAt,
	token.BREAK:    syncAt,
	token.CONTINUE: syncAt,
	token.JUMP:     syncAt,
	token.IF:       syncAt,
	token.LOOP:     syncAt,
	token.BLOCK:    syncAt,
}

func (p *parser) syncAfterError() token.Pos {
	for p.tok != token.EOF {
		if mode, ok := syncToks[p.tok]; ok {
			if mode == syncAfter {
				p.advance()
			}
			return p.val.Pos
		}
		p.advance()
	}
	return p.val.Pos
}
