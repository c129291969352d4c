package parser

import (
	"fmt"

	"github.com/feint-lang/feint/lang/ast"
	"github.com/feint-lang/feint/lang/token"
)

// binopPriority gives the left/right binding power of each binary operator.
// Right-associative operators (STARSTAR) have right < left so that a chain
// a ** b ** c parses as a ** (b ** c).
var binopPriority = [...]struct{ left, right int }{
	token.OR:  {1, 1},
	token.AND: {2, 2},

	token.EQEQ: {3, 3}, token.BANGEQ: {3, 3},
	token.LT: {4, 4}, token.LE: {4, 4}, token.GT: {4, 4}, token.GE: {4, 4},

	token.IS: {5, 5},

	token.PLUS: {6, 6}, token.MINUS: {6, 6},

	token.STAR: {7, 7}, token.SLASH: {7, 7},
	token.SLASHSLASH: {7, 7}, token.PERCENT: {7, 7},

	token.STARSTAR: {8, 7}, // right-associative
}

const unopPriority = 9

// parseExpr parses a full expression at the lowest precedence.
func (p *parser) parseExpr() ast.Expr {
	return p.parseSubExpr(0)
}

func (p *parser) parseExprList() ([]ast.Expr, []token.Pos) {
	var exprs []ast.Expr
	var commas []token.Pos
	exprs = append(exprs, p.parseExpr())
	for p.tok == token.COMMA {
		commas = append(commas, p.expect(token.COMMA))
		if p.tok == token.RPAREN || p.tok == token.RBRACK {
			break // tolerate a trailing comma
		}
		exprs = append(exprs, p.parseExpr())
	}
	return exprs, commas
}

func (p *parser) parseSubExpr(limit int) ast.Expr {
	var left ast.Expr
	if p.tok.IsUnop() {
		opTok, opPos := p.tok, p.val.Pos
		p.advance()
		right := p.parseSubExpr(unopPriority)
		left = &ast.UnaryOpExpr{Type: opTok, Op: opPos, Right: right}
	} else {
		left = p.parseSuffixedExpr()
	}

	for p.tok.IsBinop() && binopPriority[p.tok].left > limit {
		opTok, opPos := p.tok, p.val.Pos
		p.advance()
		right := p.parseSubExpr(binopPriority[opTok].right)
		left = &ast.BinOpExpr{Left: left, Type: opTok, Op: opPos, Right: right}
	}
	return left
}

// parseSuffixedExpr parses a primary expression followed by any chain of
// call/index/attribute suffixes.
func (p *parser) parseSuffixedExpr() ast.Expr {
	e := p.parsePrimaryExpr()
	for {
		switch p.tok {
		case token.DOT:
			dot := p.expect(token.DOT)
			right := p.parseIdentExpr()
			e = &ast.DotExpr{Left: e, Dot: dot, Right: right}
		case token.LBRACK:
			lbrack := p.expect(token.LBRACK)
			index := p.parseExpr()
			rbrack := p.expect(token.RBRACK)
			e = &ast.IndexExpr{Prefix: e, Lbrack: lbrack, Index: index, Rbrack: rbrack}
		case token.LPAREN:
			e = p.parseCallExpr(e)
		default:
			return e
		}
	}
}

func (p *parser) parseCallExpr(fn ast.Expr) *ast.CallExpr {
	var call ast.CallExpr
	call.Fn = fn
	call.Lparen = p.expect(token.LPAREN)
	if p.tok != token.RPAREN {
		call.Args, call.Commas = p.parseExprList()
	}
	call.Rparen = p.expect(token.RPAREN)
	return &call
}

func (p *parser) parsePrimaryExpr() ast.Expr {
	switch p.tok {
	case token.NIL, token.TRUE, token.FALSE:
		lit := &ast.LiteralExpr{Type: p.tok, Start: p.val.Pos, Raw: p.val.Raw}
		p.advance()
		return lit
	case token.INT:
		lit := &ast.LiteralExpr{Type: token.INT, Start: p.val.Pos, Raw: p.val.Raw, Int: p.val.Int}
		p.advance()
		return lit
	case token.FLOAT:
		lit := &ast.LiteralExpr{Type: token.FLOAT, Start: p.val.Pos, Raw: p.val.Raw, Float: p.val.Float}
		p.advance()
		return lit
	case token.STRING:
		lit := &ast.LiteralExpr{Type: token.STRING, Start: p.val.Pos, Raw: p.val.Raw, Str: p.val.String}
		p.advance()
		return lit
	case token.FSTRING:
		return p.parseFormatStringExpr()
	case token.IDENT, token.TYPEIDENT:
		return p.parseIdentExpr()
	case token.BUILTIN:
		b := &ast.BuiltinExpr{Start: p.val.Pos, Name: p.val.String}
		p.advance()
		return b
	case token.ATNAME:
		a := &ast.AtNameExpr{Start: p.val.Pos, Name: p.val.String}
		p.advance()
		return a
	case token.LPAREN:
		if fn, ok := p.tryParseFuncExpr(); ok {
			return fn
		}
		return p.parseTupleOrParenExpr()
	case token.LBRACK:
		return p.parseListExpr()
	case token.LBRACE:
		return p.parseMapExpr()
	case token.IF:
		return p.parseIfExpr()
	case token.LOOP:
		return p.parseLoopExpr()
	case token.BLOCK:
		return p.parseBlockExpr()
	default:
		p.error(p.val.Pos, "expected expression, found %s", p.tok.GoString())
		panic(errPanicMode)
	}
}

// tryParseFuncExpr speculatively parses a `(params) => body` function
// literal starting at the current LPAREN. If the parenthesized group turns
// out not to be a parameter list (not all identifiers) or isn't followed by
// "=>", the scanner and token state are rolled back and ok is false, leaving
// the caller free to parse it as a tuple or parenthesized expression
// instead. This is only safe because bracket nesting suppresses the
// scanner's indentation tracking, so no indent-stack state can be mutated
// while speculating.
func (p *parser) tryParseFuncExpr() (*ast.FuncExpr, bool) {
	savedScanner := p.scanner
	savedTok, savedVal := p.tok, p.val

	sig, ok := p.tryParseFuncSignature()
	if !ok || p.tok != token.FATARROW {
		p.scanner = savedScanner
		p.tok, p.val = savedTok, savedVal
		return nil, false
	}

	var fn ast.FuncExpr
	fn.Sig = sig
	fn.Arrow = p.expect(token.FATARROW)
	fn.Body = p.parseBody()
	fn.End = p.val.Pos
	return &fn, true
}

func (p *parser) tryParseFuncSignature() (*ast.FuncSignature, bool) {
	var sig ast.FuncSignature
	sig.Lparen = p.val.Pos
	p.advance()

	if p.tok == token.RPAREN {
		sig.Rparen = p.val.Pos
		p.advance()
		return &sig, true
	}

	for {
		if p.tok != token.IDENT {
			return nil, false
		}
		sig.Params = append(sig.Params, &ast.IdentExpr{Start: p.val.Pos, Lit: p.val.Raw})
		p.advance()

		if p.tok == token.COMMA {
			sig.Commas = append(sig.Commas, p.val.Pos)
			p.advance()
			if p.tok == token.RPAREN {
				sig.Variadic = true
				sig.Rparen = p.val.Pos
				p.advance()
				return &sig, true
			}
			continue
		}
		if p.tok == token.RPAREN {
			sig.Rparen = p.val.Pos
			p.advance()
			return &sig, true
		}
		return nil, false
	}
}

func (p *parser) parseTupleOrParenExpr() ast.Expr {
	lparen := p.expect(token.LPAREN)
	if p.tok == token.RPAREN {
		rparen := p.expect(token.RPAREN)
		return &ast.ArrayLikeExpr{Type: token.LPAREN, Left: lparen, Right: rparen}
	}

	first := p.parseExpr()
	if p.tok != token.COMMA {
		rparen := p.expect(token.RPAREN)
		return &ast.ParenExpr{Lparen: lparen, Expr: first, Rparen: rparen}
	}

	items := []ast.Expr{first}
	var commas []token.Pos
	for p.tok == token.COMMA {
		commas = append(commas, p.expect(token.COMMA))
		if p.tok == token.RPAREN {
			break
		}
		items = append(items, p.parseExpr())
	}
	rparen := p.expect(token.RPAREN)
	return &ast.ArrayLikeExpr{Type: token.LPAREN, Left: lparen, Items: items, Commas: commas, Right: rparen}
}

func (p *parser) parseListExpr() *ast.ArrayLikeExpr {
	lbrack := p.expect(token.LBRACK)
	if p.tok == token.RBRACK {
		rbrack := p.expect(token.RBRACK)
		return &ast.ArrayLikeExpr{Type: token.LBRACK, Left: lbrack, Right: rbrack}
	}
	items, commas := p.parseExprList()
	rbrack := p.expect(token.RBRACK)
	return &ast.ArrayLikeExpr{Type: token.LBRACK, Left: lbrack, Items: items, Commas: commas, Right: rbrack}
}

func (p *parser) parseMapExpr() *ast.MapExpr {
	var m ast.MapExpr
	m.Lbrace = p.expect(token.LBRACE)
	if p.tok == token.RBRACE {
		m.Rbrace = p.expect(token.RBRACE)
		return &m
	}
	m.Items = append(m.Items, p.parseKeyVal())
	for p.tok == token.COMMA {
		m.Commas = append(m.Commas, p.expect(token.COMMA))
		if p.tok == token.RBRACE {
			break
		}
		m.Items = append(m.Items, p.parseKeyVal())
	}
	m.Rbrace = p.expect(token.RBRACE)
	return &m
}

func (p *parser) parseKeyVal() *ast.KeyVal {
	key := p.parseExpr()
	colon := p.expect(token.COLON)
	value := p.parseExpr()
	return &ast.KeyVal{Key: key, Colon: colon, Value: value}
}

func (p *parser) parseIfExpr() *ast.IfExpr {
	var n ast.IfExpr
	n.If = p.expect(token.IF)
	n.Cond = p.parseExpr()
	n.Arrow = p.expect(token.ARROW)
	n.Then = p.parseBody()
	n.End = n.Then.End

	if p.tok == token.ELSE {
		n.Else = p.expect(token.ELSE)
		if p.tok == token.IF {
			n.ElseIf = p.parseIfExpr()
			n.End = n.ElseIf.End
		} else {
			p.expect(token.ARROW)
			n.ElseBlock = p.parseBody()
			n.End = n.ElseBlock.End
		}
	}
	return &n
}

func (p *parser) parseLoopExpr() *ast.LoopExpr {
	var n ast.LoopExpr
	n.Loop = p.expect(token.LOOP)
	n.Arrow = p.expect(token.ARROW)
	n.Body = p.parseBody()
	n.End = n.Body.End
	return &n
}

func (p *parser) parseBlockExpr() *ast.BlockExpr {
	var n ast.BlockExpr
	n.Block = p.expect(token.BLOCK)
	n.Arrow = p.expect(token.ARROW)
	n.Body = p.parseBody()
	n.End = n.Body.End
	return &n
}

// parseFormatStringExpr parses the raw placeholder expression texts scanned
// into the FSTRING token's Value into AST expressions, each in its own
// sub-parser over the same FileSet so positions remain meaningful.
func (p *parser) parseFormatStringExpr() *ast.FormatStringExpr {
	start := p.val.Pos
	raw := p.val.Raw
	chunks := p.val.Chunks
	rawExprs := p.val.Exprs
	end := start + token.Pos(len(raw))

	exprs := make([]ast.Expr, len(rawExprs))
	for i, text := range rawExprs {
		name := fmt.Sprintf("%s$%d", p.file.Name(), i)
		var sub parser
		sub.init(p.fset, name, []byte(text))
		exprs[i] = sub.parsePlaceholderExpr()
		p.scanErrors = append(p.scanErrors, sub.scanErrors...)
		p.errors = append(p.errors, sub.errors...)
	}

	p.advance()
	return &ast.FormatStringExpr{Start: start, Raw: raw, Chunks: chunks, Exprs: exprs, End: end}
}

// parsePlaceholderExpr parses a full expression, recovering from a syntax
// error into a BadExpr instead of propagating the panic-mode recovery past
// this sub-parser's boundary.
func (p *parser) parsePlaceholderExpr() (e ast.Expr) {
	start := p.val.Pos
	defer func() {
		if err := recover(); err != nil {
			if err == errPanicMode {
				e = &ast.BadExpr{Start: start, End: p.syncAfterError()}
				return
			}
			panic(err)
		}
	}()
	e = p.parseExpr()
	if p.tok != token.EOF {
		p.errorExpected(p.val.Pos, token.EOF)
	}
	return e
}
