package ast

import (
	"fmt"
	"math/big"

	"github.com/feint-lang/feint/lang/token"
)

type (
	// BadExpr is a placeholder for an expression that failed to parse.
	BadExpr struct {
		Start, End token.Pos
	}

	// IdentExpr represents an identifier or type identifier reference.
	IdentExpr struct {
		Start token.Pos
		Lit   string
	}

	// BuiltinExpr represents a `$name` reference to a builtin.
	BuiltinExpr struct {
		Start token.Pos
		Name  string
	}

	// AtNameExpr represents an `@name` reference to a type-level method.
	AtNameExpr struct {
		Start token.Pos
		Name  string
	}

	// LiteralExpr represents a nil, bool, int, float, or plain string
	// literal.
	LiteralExpr struct {
		Type  token.Token // NIL, TRUE, FALSE, INT, FLOAT, or STRING
		Start token.Pos
		Raw   string
		Str   string   // decoded value, for STRING
		Int   *big.Int // decoded value, for INT (arbitrary precision)
		Float float64  // decoded value, for FLOAT
	}

	// FormatStringExpr represents a `$"...{expr}..."` literal: Chunks holds
	// the literal text between placeholders (len(Chunks) == len(Exprs)+1)
	// and Exprs holds the parsed placeholder expressions.
	FormatStringExpr struct {
		Start token.Pos
		Raw   string
		Chunks []string
		Exprs  []Expr
		End    token.Pos
	}

	// UnaryOpExpr represents a unary operator expression, e.g. -x, not x.
	UnaryOpExpr struct {
		Type  token.Token
		Op    token.Pos
		Right Expr
	}

	// BinOpExpr represents a binary expression, e.g. x + y, x is y.
	BinOpExpr struct {
		Left  Expr
		Type  token.Token
		Op    token.Pos
		Right Expr
	}

	// CallExpr represents a function call, e.g. f(a, b).
	CallExpr struct {
		Fn     Expr
		Lparen token.Pos
		Args   []Expr
		Commas []token.Pos // len(Args)-1
		Rparen token.Pos
	}

	// DotExpr represents an attribute access, e.g. x.y.
	DotExpr struct {
		Left  Expr
		Dot   token.Pos
		Right *IdentExpr
	}

	// IndexExpr represents a subscript expression, e.g. x[y].
	IndexExpr struct {
		Prefix Expr
		Lbrack token.Pos
		Index  Expr
		Rbrack token.Pos
	}

	// ParenExpr represents a parenthesized expression.
	ParenExpr struct {
		Lparen token.Pos
		Expr   Expr
		Rparen token.Pos
	}

	// ArrayLikeExpr represents a list `[...]` or tuple `(...)` literal.
	ArrayLikeExpr struct {
		Type   token.Token // LBRACK (list) or LPAREN (tuple)
		Left   token.Pos
		Items  []Expr
		Commas []token.Pos
		Right  token.Pos
	}

	// KeyVal is a single key/value pair inside a MapExpr.
	KeyVal struct {
		Key   Expr
		Colon token.Pos
		Value Expr
	}

	// MapExpr represents a map literal `{k: v, ...}`.
	MapExpr struct {
		Lbrace token.Pos
		Items  []*KeyVal
		Commas []token.Pos
		Rbrace token.Pos
	}

	// FuncSignature is the parameter list of a function literal. Variadic
	// is true when the source had a trailing empty parameter slot (a bare
	// trailing comma), per spec: the extra positional arguments are
	// collected into a tuple bound to the builtin name `$args`.
	FuncSignature struct {
		Lparen    token.Pos
		Params    []*IdentExpr
		Commas    []token.Pos
		Variadic  bool
		Rparen    token.Pos
	}

	// FuncExpr represents a function literal `(params) => body`.
	FuncExpr struct {
		Sig   *FuncSignature
		Arrow token.Pos
		Body  *Block
		End   token.Pos
	}

	// IfExpr represents `if cond -> then [else ...]`. Else, when present,
	// either wraps a single nested IfExpr (an "else if" chain) or a plain
	// block.
	IfExpr struct {
		If    token.Pos
		Cond  Expr
		Arrow token.Pos
		Then  *Block
		Else  token.Pos // 0 if no else clause
		ElseIf *IfExpr  // non-nil for "else if ..."
		ElseBlock *Block // non-nil for a plain "else" block
		End   token.Pos
	}

	// LoopExpr represents `loop -> body`, FeInt's single indefinite-loop
	// construct; termination is via break/return inside the body.
	LoopExpr struct {
		Loop  token.Pos
		Arrow token.Pos
		Body  *Block
		End   token.Pos
	}

	// BlockExpr represents `block -> body`: a grouping evaluated as an
	// expression, whose value is that of its last statement. It opens no
	// new scope; names assigned in it belong to the enclosing function.
	BlockExpr struct {
		Block token.Pos
		Arrow token.Pos
		Body  *Block
		End   token.Pos
	}
)

func (n *BadExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "bad expr", nil) }
func (n *BadExpr) Span() (start, end token.Pos)  { return n.Start, n.End }
func (n *BadExpr) Walk(_ Visitor)                {}
func (n *BadExpr) expr()                         {}

func (n *IdentExpr) Format(f fmt.State, verb rune) { format(f, verb, n, n.Lit, nil) }
func (n *IdentExpr) Span() (start, end token.Pos) {
	return n.Start, n.Start + token.Pos(len(n.Lit))
}
func (n *IdentExpr) Walk(_ Visitor) {}
func (n *IdentExpr) expr()          {}

func (n *BuiltinExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "$"+n.Name, nil) }
func (n *BuiltinExpr) Span() (start, end token.Pos) {
	return n.Start, n.Start + token.Pos(len(n.Name)+1)
}
func (n *BuiltinExpr) Walk(_ Visitor) {}
func (n *BuiltinExpr) expr()          {}

func (n *AtNameExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "@"+n.Name, nil) }
func (n *AtNameExpr) Span() (start, end token.Pos) {
	return n.Start, n.Start + token.Pos(len(n.Name)+1)
}
func (n *AtNameExpr) Walk(_ Visitor) {}
func (n *AtNameExpr) expr()          {}

func (n *LiteralExpr) Format(f fmt.State, verb rune) {
	lbl := n.Type.String()
	if n.Raw != "" {
		lbl += " " + n.Raw
	}
	format(f, verb, n, lbl, nil)
}
func (n *LiteralExpr) Span() (start, end token.Pos) {
	return n.Start, n.Start + token.Pos(len(n.Raw))
}
func (n *LiteralExpr) Walk(_ Visitor) {}
func (n *LiteralExpr) expr()          {}

func (n *FormatStringExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "format string", map[string]int{"exprs": len(n.Exprs)})
}
func (n *FormatStringExpr) Span() (start, end token.Pos) { return n.Start, n.End }
func (n *FormatStringExpr) Walk(v Visitor) {
	for _, e := range n.Exprs {
		Walk(v, e)
	}
}
func (n *FormatStringExpr) expr() {}

func (n *UnaryOpExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "unary "+n.Type.GoString(), nil)
}
func (n *UnaryOpExpr) Span() (start, end token.Pos) {
	_, end = n.Right.Span()
	return n.Op, end
}
func (n *UnaryOpExpr) Walk(v Visitor) { Walk(v, n.Right) }
func (n *UnaryOpExpr) expr()          {}

func (n *BinOpExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "binary "+n.Type.GoString(), nil)
}
func (n *BinOpExpr) Span() (start, end token.Pos) {
	start, _ = n.Left.Span()
	_, end = n.Right.Span()
	return start, end
}
func (n *BinOpExpr) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
}
func (n *BinOpExpr) expr() {}

func (n *CallExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "call", map[string]int{"args": len(n.Args)})
}
func (n *CallExpr) Span() (start, end token.Pos) {
	start, _ = n.Fn.Span()
	return start, n.Rparen + token.Pos(len(token.RPAREN.String()))
}
func (n *CallExpr) Walk(v Visitor) {
	Walk(v, n.Fn)
	for _, a := range n.Args {
		Walk(v, a)
	}
}
func (n *CallExpr) expr() {}

func (n *DotExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "expr.ident", nil) }
func (n *DotExpr) Span() (start, end token.Pos) {
	start, _ = n.Left.Span()
	_, end = n.Right.Span()
	return start, end
}
func (n *DotExpr) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
}
func (n *DotExpr) expr() {}

func (n *IndexExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "expr[index]", nil) }
func (n *IndexExpr) Span() (start, end token.Pos) {
	start, _ = n.Prefix.Span()
	return start, n.Rbrack + token.Pos(len(token.RBRACK.String()))
}
func (n *IndexExpr) Walk(v Visitor) {
	Walk(v, n.Prefix)
	Walk(v, n.Index)
}
func (n *IndexExpr) expr() {}

func (n *ParenExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "(expr)", nil) }
func (n *ParenExpr) Span() (start, end token.Pos) {
	return n.Lparen, n.Rparen + token.Pos(len(token.RPAREN.String()))
}
func (n *ParenExpr) Walk(v Visitor) { Walk(v, n.Expr) }
func (n *ParenExpr) expr()          {}

func (n *ArrayLikeExpr) Format(f fmt.State, verb rune) {
	lbl := "list"
	if n.Type == token.LPAREN {
		lbl = "tuple"
	}
	format(f, verb, n, lbl, map[string]int{"items": len(n.Items)})
}
func (n *ArrayLikeExpr) Span() (start, end token.Pos) {
	closer := token.RBRACK
	if n.Type == token.LPAREN {
		closer = token.RPAREN
	}
	return n.Left, n.Right + token.Pos(len(closer.String()))
}
func (n *ArrayLikeExpr) Walk(v Visitor) {
	for _, e := range n.Items {
		Walk(v, e)
	}
}
func (n *ArrayLikeExpr) expr() {}

func (n *MapExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "map", map[string]int{"keyvals": len(n.Items)})
}
func (n *MapExpr) Span() (start, end token.Pos) {
	return n.Lbrace, n.Rbrace + token.Pos(len(token.RBRACE.String()))
}
func (n *MapExpr) Walk(v Visitor) {
	for _, kv := range n.Items {
		Walk(v, kv.Key)
		Walk(v, kv.Value)
	}
}
func (n *MapExpr) expr() {}

func (n *FuncExpr) Format(f fmt.State, verb rune) {
	lbl := "fn"
	if n.Sig.Variadic {
		lbl += " variadic"
	}
	format(f, verb, n, lbl, map[string]int{"params": len(n.Sig.Params)})
}
func (n *FuncExpr) Span() (start, end token.Pos) { return n.Sig.Lparen, n.End }
func (n *FuncExpr) Walk(v Visitor) {
	for _, p := range n.Sig.Params {
		Walk(v, p)
	}
	Walk(v, n.Body)
}
func (n *FuncExpr) expr() {}

func (n *IfExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "if", nil) }
func (n *IfExpr) Span() (start, end token.Pos)  { return n.If, n.End }
func (n *IfExpr) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.Then)
	if n.ElseIf != nil {
		Walk(v, n.ElseIf)
	} else if n.ElseBlock != nil {
		Walk(v, n.ElseBlock)
	}
}
func (n *IfExpr) expr() {}

func (n *LoopExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "loop", nil) }
func (n *LoopExpr) Span() (start, end token.Pos)  { return n.Loop, n.End }
func (n *LoopExpr) Walk(v Visitor)                { Walk(v, n.Body) }
func (n *LoopExpr) expr()                         {}

func (n *BlockExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "block", nil) }
func (n *BlockExpr) Span() (start, end token.Pos)  { return n.Block, n.End }
func (n *BlockExpr) Walk(v Visitor)                { Walk(v, n.Body) }
func (n *BlockExpr) expr()                         {}
