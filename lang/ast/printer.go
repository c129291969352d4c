package ast

import (
	"fmt"
	"io"
	"strings"

	"github.com/feint-lang/feint/lang/token"
)

// Printer pretty-prints an AST as an indented tree, one node per line.
type Printer struct {
	Output io.Writer

	// WithPos, if set, prints each node's source position alongside its
	// label; File must then be non-nil.
	WithPos bool
	File    *token.File
}

// Print walks n and writes its indented tree representation to p.Output.
func (p *Printer) Print(n Node) error {
	pp := &printer{w: p.Output, withPos: p.WithPos, file: p.File}
	Walk(pp, n)
	return pp.err
}

type printer struct {
	w       io.Writer
	withPos bool
	file    *token.File
	depth   int
	err     error
}

func (p *printer) Visit(n Node, dir VisitDirection) Visitor {
	if dir == VisitExit || p.err != nil {
		p.depth--
		return nil
	}
	p.depth++
	p.printNode(n, p.depth-1)
	return p
}

func (p *printer) printNode(n Node, indent int) {
	if p.err != nil {
		return
	}
	var posStr string
	if p.withPos && p.file != nil {
		start, _ := n.Span()
		pos := p.file.Position(start)
		posStr = fmt.Sprintf("[%s] ", pos)
	}
	_, p.err = fmt.Fprintf(p.w, "%s%s%v\n", strings.Repeat(". ", indent), posStr, n)
}
