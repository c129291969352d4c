package object

import (
	"strings"

	"github.com/feint-lang/feint/lang/token"
)

// Tuple is FeInt's immutable ordered sequence.
type Tuple struct {
	elems []Value
}

func NewTuple(elems []Value) *Tuple { return &Tuple{elems: elems} }

var (
	_ Value     = (*Tuple)(nil)
	_ Indexable = (*Tuple)(nil)
	_ Sequence  = (*Tuple)(nil)
	_ HasBinary = (*Tuple)(nil)
)

func (t *Tuple) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, e := range t.elems {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.String())
	}
	if len(t.elems) == 1 {
		b.WriteByte(',')
	}
	b.WriteByte(')')
	return b.String()
}

func (t *Tuple) Type() string { return "tuple" }
func (t *Tuple) Truth() bool  { return len(t.elems) != 0 }
func (t *Tuple) Len() int     { return len(t.elems) }
func (t *Tuple) Index(i int) Value { return t.elems[i] }
func (t *Tuple) Elems() []Value    { return t.elems }

func (t *Tuple) Iterate() Iterator { return &sliceIterator{elems: t.elems} }

func (t *Tuple) Binary(op token.Token, y Value, side Side) (Value, error) {
	o, ok := y.(*Tuple)
	if !ok {
		return nil, nil
	}
	a, b := t, o
	if side == Right {
		a, b = b, a
	}
	if op == token.PLUS {
		combined := make([]Value, 0, len(a.elems)+len(b.elems))
		combined = append(combined, a.elems...)
		combined = append(combined, b.elems...)
		return NewTuple(combined), nil
	}
	return nil, nil
}

type sliceIterator struct {
	elems []Value
	i     int
}

func (it *sliceIterator) Next(p *Value) bool {
	if it.i >= len(it.elems) {
		return false
	}
	*p = it.elems[it.i]
	it.i++
	return true
}

func (it *sliceIterator) Done() {}
