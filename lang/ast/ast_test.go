package ast_test

import (
	"fmt"
	"testing"

	"github.com/feint-lang/feint/lang/ast"
	"github.com/feint-lang/feint/lang/token"
	"github.com/stretchr/testify/assert"
)

func TestIdentExprSpan(t *testing.T) {
	id := &ast.IdentExpr{Start: 1, Lit: "foo"}
	start, end := id.Span()
	assert.Equal(t, token.Pos(1), start)
	assert.Equal(t, token.Pos(4), end)
}

func TestIsAssignable(t *testing.T) {
	ident := &ast.IdentExpr{Start: 1, Lit: "x"}
	assert.True(t, ast.IsAssignable(ident))

	dot := &ast.DotExpr{Left: ident, Right: &ast.IdentExpr{Start: 3, Lit: "y"}}
	assert.True(t, ast.IsAssignable(dot))

	call := &ast.CallExpr{Fn: ident}
	assert.False(t, ast.IsAssignable(call))
}

func TestUnwrapParen(t *testing.T) {
	ident := &ast.IdentExpr{Start: 1, Lit: "x"}
	wrapped := &ast.ParenExpr{Expr: &ast.ParenExpr{Expr: ident}}
	assert.Same(t, ident, ast.Unwrap(wrapped))
}

func TestNodeFormat(t *testing.T) {
	id := &ast.IdentExpr{Start: 1, Lit: "foo"}
	assert.Equal(t, "foo", fmt.Sprintf("%v", id))

	block := &ast.Block{Stmts: []ast.Stmt{&ast.ExprStmt{Expr: id}}}
	assert.Contains(t, fmt.Sprintf("%#v", block), "stmts=1")
}

func TestBlockEnding(t *testing.T) {
	assert.True(t, (&ast.ReturnStmt{}).BlockEnding())
	assert.True(t, (&ast.BreakStmt{}).BlockEnding())
	assert.True(t, (&ast.ContinueStmt{}).BlockEnding())
	assert.True(t, (&ast.JumpStmt{}).BlockEnding())
	assert.False(t, (&ast.ExprStmt{Expr: &ast.IdentExpr{Lit: "x"}}).BlockEnding())
}
