package ast

import (
	"fmt"

	"github.com/feint-lang/feint/lang/token"
)

type (
	// BadStmt is a placeholder for a statement that failed to parse,
	// covering the source range skipped during error recovery.
	BadStmt struct {
		Start, End token.Pos
	}

	// ExprStmt is an expression used as a statement.
	ExprStmt struct {
		Expr Expr
	}

	// AssignStmt represents `name = expr`. Left is restricted to an
	// assignable expression, see IsAssignable.
	AssignStmt struct {
		Left   Expr
		Assign token.Pos
		Right  Expr
	}

	// ImportStmt represents `import path.to.module [as alias]`.
	ImportStmt struct {
		Import token.Pos
		Path   []*IdentExpr
		Dots   []token.Pos // len(Path)-1
		As     token.Pos   // 0 if no alias
		Alias  *IdentExpr  // nil if no alias
		End    token.Pos
	}

	// FromImportStmt represents `from path.to.module import name [as alias], ...`.
	FromImportStmt struct {
		From    token.Pos
		Path    []*IdentExpr
		Dots    []token.Pos
		Import  token.Pos
		Names   []*IdentExpr
		Aliases []*IdentExpr // parallel to Names, nil entry if no alias
		Commas  []token.Pos
		End     token.Pos
	}

	// PackageStmt declares the current module's package name. Neither the
	// compiler nor the loader reads it.
	PackageStmt struct {
		Package token.Pos
		Name    *IdentExpr
	}

	// ExportStmt marks an inner assignment or function declaration as part
	// of the module's public surface.
	ExportStmt struct {
		Export token.Pos
		Stmt   Stmt
	}

	// ReturnStmt represents `return [expr]`.
	ReturnStmt struct {
		Return token.Pos
		Value  Expr // nil if bare return
	}

	// BreakStmt represents `break`.
	BreakStmt struct {
		Break token.Pos
	}

	// ContinueStmt represents `continue`.
	ContinueStmt struct {
		Continue token.Pos
	}

	// JumpStmt represents `jump [label]`: an unconditional restart of the
	// named enclosing loop, or the innermost one if Label is nil.
	JumpStmt struct {
		Jump  token.Pos
		Label *IdentExpr // nil means innermost enclosing loop
	}
)

func (n *BadStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "bad stmt", nil) }
func (n *BadStmt) Span() (start, end token.Pos)  { return n.Start, n.End }
func (n *BadStmt) Walk(_ Visitor)                {}
func (n *BadStmt) BlockEnding() bool             { return false }

func (n *ExprStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "expr stmt", nil) }
func (n *ExprStmt) Span() (start, end token.Pos)  { return n.Expr.Span() }
func (n *ExprStmt) Walk(v Visitor)                { Walk(v, n.Expr) }
func (n *ExprStmt) BlockEnding() bool             { return false }

func (n *AssignStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "assign", nil) }
func (n *AssignStmt) Span() (start, end token.Pos) {
	start, _ = n.Left.Span()
	_, end = n.Right.Span()
	return start, end
}
func (n *AssignStmt) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
}
func (n *AssignStmt) BlockEnding() bool { return false }

func (n *ImportStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "import", nil) }
func (n *ImportStmt) Span() (start, end token.Pos) {
	return n.Import, n.End
}
func (n *ImportStmt) Walk(v Visitor) {
	for _, p := range n.Path {
		Walk(v, p)
	}
	if n.Alias != nil {
		Walk(v, n.Alias)
	}
}
func (n *ImportStmt) BlockEnding() bool { return false }

func (n *FromImportStmt) Format(f fmt.State, verb rune) {
	format(f, verb, n, "from import", map[string]int{"names": len(n.Names)})
}
func (n *FromImportStmt) Span() (start, end token.Pos) { return n.From, n.End }
func (n *FromImportStmt) Walk(v Visitor) {
	for _, p := range n.Path {
		Walk(v, p)
	}
	for _, name := range n.Names {
		Walk(v, name)
	}
	for _, alias := range n.Aliases {
		if alias != nil {
			Walk(v, alias)
		}
	}
}
func (n *FromImportStmt) BlockEnding() bool { return false }

func (n *PackageStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "package", nil) }
func (n *PackageStmt) Span() (start, end token.Pos) {
	_, end = n.Name.Span()
	return n.Package, end
}
func (n *PackageStmt) Walk(v Visitor)    { Walk(v, n.Name) }
func (n *PackageStmt) BlockEnding() bool { return false }

func (n *ExportStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "export", nil) }
func (n *ExportStmt) Span() (start, end token.Pos) {
	_, end = n.Stmt.Span()
	return n.Export, end
}
func (n *ExportStmt) Walk(v Visitor)    { Walk(v, n.Stmt) }
func (n *ExportStmt) BlockEnding() bool { return false }

func (n *ReturnStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "return", nil) }
func (n *ReturnStmt) Span() (start, end token.Pos) {
	end = n.Return + token.Pos(len(token.RETURN.String()))
	if n.Value != nil {
		_, end = n.Value.Span()
	}
	return n.Return, end
}
func (n *ReturnStmt) Walk(v Visitor) {
	if n.Value != nil {
		Walk(v, n.Value)
	}
}
func (n *ReturnStmt) BlockEnding() bool { return true }

func (n *BreakStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "break", nil) }
func (n *BreakStmt) Span() (start, end token.Pos) {
	return n.Break, n.Break + token.Pos(len(token.BREAK.String()))
}
func (n *BreakStmt) Walk(_ Visitor)    {}
func (n *BreakStmt) BlockEnding() bool { return true }

func (n *ContinueStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "continue", nil) }
func (n *ContinueStmt) Span() (start, end token.Pos) {
	return n.Continue, n.Continue + token.Pos(len(token.CONTINUE.String()))
}
func (n *ContinueStmt) Walk(_ Visitor)    {}
func (n *ContinueStmt) BlockEnding() bool { return true }

func (n *JumpStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "jump", nil) }
func (n *JumpStmt) Span() (start, end token.Pos) {
	end = n.Jump + token.Pos(len(token.JUMP.String()))
	if n.Label != nil {
		_, end = n.Label.Span()
	}
	return n.Jump, end
}
func (n *JumpStmt) Walk(v Visitor) {
	if n.Label != nil {
		Walk(v, n.Label)
	}
}
func (n *JumpStmt) BlockEnding() bool { return true }
