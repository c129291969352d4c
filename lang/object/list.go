package object

import (
	"strings"

	"github.com/feint-lang/feint/lang/token"
)

// List is FeInt's mutable ordered sequence.
type List struct {
	elems []Value
}

func NewList(elems []Value) *List { return &List{elems: elems} }

var (
	_ Value       = (*List)(nil)
	_ Indexable   = (*List)(nil)
	_ HasSetIndex = (*List)(nil)
	_ Sequence    = (*List)(nil)
	_ HasBinary   = (*List)(nil)
)

func (l *List) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, e := range l.elems {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.String())
	}
	b.WriteByte(']')
	return b.String()
}

func (l *List) Type() string       { return "list" }
func (l *List) Truth() bool        { return len(l.elems) != 0 }
func (l *List) Len() int           { return len(l.elems) }
func (l *List) Index(i int) Value  { return l.elems[i] }
func (l *List) Elems() []Value     { return l.elems }
func (l *List) Append(v Value)     { l.elems = append(l.elems, v) }

func (l *List) SetIndex(i int, v Value) error {
	if i < 0 || i >= len(l.elems) {
		return NewError(IndexError, "list index %d out of range", i)
	}
	l.elems[i] = v
	return nil
}

func (l *List) Iterate() Iterator { return &sliceIterator{elems: l.elems} }

func (l *List) Binary(op token.Token, y Value, side Side) (Value, error) {
	o, ok := y.(*List)
	if !ok {
		return nil, nil
	}
	a, b := l, o
	if side == Right {
		a, b = b, a
	}
	if op == token.PLUS {
		combined := make([]Value, 0, len(a.elems)+len(b.elems))
		combined = append(combined, a.elems...)
		combined = append(combined, b.elems...)
		return NewList(combined), nil
	}
	return nil, nil
}
