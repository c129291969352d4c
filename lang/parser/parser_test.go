package parser_test

import (
	"testing"

	"github.com/feint-lang/feint/lang/ast"
	"github.com/feint-lang/feint/lang/parser"
	"github.com/feint-lang/feint/lang/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOne(t *testing.T, src string) *ast.Chunk {
	t.Helper()
	fs := token.NewFileSet()
	chunk, err := parser.ParseChunk(fs, "test.fi", []byte(src))
	require.NoError(t, err)
	require.NotNil(t, chunk)
	return chunk
}

func firstStmt(t *testing.T, chunk *ast.Chunk) ast.Stmt {
	t.Helper()
	require.Len(t, chunk.Block.Stmts, 1)
	return chunk.Block.Stmts[0]
}

func TestParseLiteralExprStmt(t *testing.T) {
	chunk := parseOne(t, "123\n")
	stmt := firstStmt(t, chunk).(*ast.ExprStmt)
	lit := stmt.Expr.(*ast.LiteralExpr)
	assert.Equal(t, token.INT, lit.Type)
	assert.Equal(t, "123", lit.Int.String())
}

func TestParseAssignStmt(t *testing.T) {
	chunk := parseOne(t, "x = 1 + 2\n")
	stmt := firstStmt(t, chunk).(*ast.AssignStmt)
	ident := stmt.Left.(*ast.IdentExpr)
	assert.Equal(t, "x", ident.Lit)
	bin := stmt.Right.(*ast.BinOpExpr)
	assert.Equal(t, token.PLUS, bin.Type)
}

func TestParseBinopPrecedence(t *testing.T) {
	// 1 + 2 * 3 should parse as 1 + (2 * 3)
	chunk := parseOne(t, "1 + 2 * 3\n")
	stmt := firstStmt(t, chunk).(*ast.ExprStmt)
	top := stmt.Expr.(*ast.BinOpExpr)
	assert.Equal(t, token.PLUS, top.Type)
	right := top.Right.(*ast.BinOpExpr)
	assert.Equal(t, token.STAR, right.Type)
}

func TestParsePowerRightAssoc(t *testing.T) {
	// 2 ** 3 ** 2 should parse as 2 ** (3 ** 2)
	chunk := parseOne(t, "2 ** 3 ** 2\n")
	stmt := firstStmt(t, chunk).(*ast.ExprStmt)
	top := stmt.Expr.(*ast.BinOpExpr)
	assert.Equal(t, token.STARSTAR, top.Type)
	right, ok := top.Right.(*ast.BinOpExpr)
	require.True(t, ok)
	assert.Equal(t, token.STARSTAR, right.Type)
}

func TestParseUnaryNot(t *testing.T) {
	chunk := parseOne(t, "not true\n")
	stmt := firstStmt(t, chunk).(*ast.ExprStmt)
	un := stmt.Expr.(*ast.UnaryOpExpr)
	assert.Equal(t, token.NOT, un.Type)
}

func TestParseCallDotIndexChain(t *testing.T) {
	chunk := parseOne(t, "a.b(1, 2)[0]\n")
	stmt := firstStmt(t, chunk).(*ast.ExprStmt)
	idx := stmt.Expr.(*ast.IndexExpr)
	call := idx.Prefix.(*ast.CallExpr)
	assert.Len(t, call.Args, 2)
	dot := call.Fn.(*ast.DotExpr)
	assert.Equal(t, "b", dot.Right.Lit)
}

func TestParseFuncLiteral(t *testing.T) {
	chunk := parseOne(t, "f = (x, y) => x + y\n")
	stmt := firstStmt(t, chunk).(*ast.AssignStmt)
	fn := stmt.Right.(*ast.FuncExpr)
	assert.Len(t, fn.Sig.Params, 2)
	assert.False(t, fn.Sig.Variadic)
	require.Len(t, fn.Body.Stmts, 1)
}

func TestParseFuncLiteralVariadic(t *testing.T) {
	chunk := parseOne(t, "f = (x,) => x\n")
	stmt := firstStmt(t, chunk).(*ast.AssignStmt)
	fn := stmt.Right.(*ast.FuncExpr)
	assert.True(t, fn.Sig.Variadic)
}

func TestParseParenVsTuple(t *testing.T) {
	chunk := parseOne(t, "(1)\n")
	stmt := firstStmt(t, chunk).(*ast.ExprStmt)
	_, ok := stmt.Expr.(*ast.ParenExpr)
	assert.True(t, ok)

	chunk = parseOne(t, "(1, 2)\n")
	stmt = firstStmt(t, chunk).(*ast.ExprStmt)
	tup, ok := stmt.Expr.(*ast.ArrayLikeExpr)
	require.True(t, ok)
	assert.Equal(t, token.LPAREN, tup.Type)
	assert.Len(t, tup.Items, 2)
}

func TestParseEmptyTuple(t *testing.T) {
	chunk := parseOne(t, "()\n")
	stmt := firstStmt(t, chunk).(*ast.ExprStmt)
	tup := stmt.Expr.(*ast.ArrayLikeExpr)
	assert.Equal(t, token.LPAREN, tup.Type)
	assert.Empty(t, tup.Items)
}

func TestParseListLiteral(t *testing.T) {
	chunk := parseOne(t, "[1, 2, 3]\n")
	stmt := firstStmt(t, chunk).(*ast.ExprStmt)
	list := stmt.Expr.(*ast.ArrayLikeExpr)
	assert.Equal(t, token.LBRACK, list.Type)
	assert.Len(t, list.Items, 3)
}

func TestParseMapLiteral(t *testing.T) {
	chunk := parseOne(t, `{"a": 1, "b": 2}`+"\n")
	stmt := firstStmt(t, chunk).(*ast.ExprStmt)
	m := stmt.Expr.(*ast.MapExpr)
	assert.Len(t, m.Items, 2)
}

func TestParseIfElseIfElse(t *testing.T) {
	src := "if a ->\n  1\nelse if b ->\n  2\nelse ->\n  3\n"
	chunk := parseOne(t, src)
	stmt := firstStmt(t, chunk).(*ast.ExprStmt)
	ifExpr := stmt.Expr.(*ast.IfExpr)
	require.NotNil(t, ifExpr.ElseIf)
	require.NotNil(t, ifExpr.ElseIf.ElseBlock)
}

func TestParseLoopBreak(t *testing.T) {
	src := "loop ->\n  break\n"
	chunk := parseOne(t, src)
	stmt := firstStmt(t, chunk).(*ast.ExprStmt)
	loop := stmt.Expr.(*ast.LoopExpr)
	require.Len(t, loop.Body.Stmts, 1)
	_, ok := loop.Body.Stmts[0].(*ast.BreakStmt)
	assert.True(t, ok)
}

func TestParseBlockExpr(t *testing.T) {
	src := "block ->\n  1\n"
	chunk := parseOne(t, src)
	stmt := firstStmt(t, chunk).(*ast.ExprStmt)
	_, ok := stmt.Expr.(*ast.BlockExpr)
	assert.True(t, ok)
}

func TestParseImportAndAlias(t *testing.T) {
	chunk := parseOne(t, "import a.b.c as d\n")
	stmt := firstStmt(t, chunk).(*ast.ImportStmt)
	assert.Len(t, stmt.Path, 3)
	require.NotNil(t, stmt.Alias)
	assert.Equal(t, "d", stmt.Alias.Lit)
}

func TestParseFromImport(t *testing.T) {
	chunk := parseOne(t, "from a.b import x, y as z\n")
	stmt := firstStmt(t, chunk).(*ast.FromImportStmt)
	require.Len(t, stmt.Names, 2)
	assert.Nil(t, stmt.Aliases[0])
	require.NotNil(t, stmt.Aliases[1])
	assert.Equal(t, "z", stmt.Aliases[1].Lit)
}

func TestParsePackageStmt(t *testing.T) {
	chunk := parseOne(t, "package mylib\n")
	stmt := firstStmt(t, chunk).(*ast.PackageStmt)
	assert.Equal(t, "mylib", stmt.Name.Lit)
}

func TestParseExportStmt(t *testing.T) {
	chunk := parseOne(t, "export x = 1\n")
	stmt := firstStmt(t, chunk).(*ast.ExportStmt)
	_, ok := stmt.Stmt.(*ast.AssignStmt)
	assert.True(t, ok)
}

func TestParseReturnBareAndValue(t *testing.T) {
	chunk := parseOne(t, "return\n")
	stmt := firstStmt(t, chunk).(*ast.ReturnStmt)
	assert.Nil(t, stmt.Value)

	chunk = parseOne(t, "return 1 + 1\n")
	stmt = firstStmt(t, chunk).(*ast.ReturnStmt)
	require.NotNil(t, stmt.Value)
}

func TestParseJumpWithAndWithoutLabel(t *testing.T) {
	chunk := parseOne(t, "jump\n")
	stmt := firstStmt(t, chunk).(*ast.JumpStmt)
	assert.Nil(t, stmt.Label)

	chunk = parseOne(t, "jump outer\n")
	stmt = firstStmt(t, chunk).(*ast.JumpStmt)
	require.NotNil(t, stmt.Label)
	assert.Equal(t, "outer", stmt.Label.Lit)
}

func TestParseFormatString(t *testing.T) {
	chunk := parseOne(t, `$"hello {name}, you are {age + 1}!"`+"\n")
	stmt := firstStmt(t, chunk).(*ast.ExprStmt)
	fstr := stmt.Expr.(*ast.FormatStringExpr)
	require.Len(t, fstr.Exprs, 2)
	ident, ok := fstr.Exprs[0].(*ast.IdentExpr)
	require.True(t, ok)
	assert.Equal(t, "name", ident.Lit)
	bin, ok := fstr.Exprs[1].(*ast.BinOpExpr)
	require.True(t, ok)
	assert.Equal(t, token.PLUS, bin.Type)
}

func TestParseTypeIdent(t *testing.T) {
	chunk := parseOne(t, "Point\n")
	stmt := firstStmt(t, chunk).(*ast.ExprStmt)
	ident := stmt.Expr.(*ast.IdentExpr)
	assert.Equal(t, "Point", ident.Lit)
}

func TestParseSyntaxErrorRecovery(t *testing.T) {
	fs := token.NewFileSet()
	_, err := parser.ParseChunk(fs, "test.fi", []byte("x = \nimport a\n"))
	require.Error(t, err)
}
