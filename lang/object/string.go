package object

import (
	"strconv"

	"github.com/feint-lang/feint/lang/token"
)

// String is FeInt's UTF-8 string type.
type String string

var (
	_ Value     = String("")
	_ Ordered   = String("")
	_ HasBinary = String("")
	_ Indexable = String("")
)

func (s String) String() string { return string(s) }
func (s String) Type() string   { return "string" }
func (s String) Truth() bool    { return len(s) != 0 }
func (s String) GoString() string { return strconv.Quote(string(s)) }

func (s String) Cmp(y Value) (int, error) {
	o, ok := y.(String)
	if !ok {
		return 0, wrongType("string", y)
	}
	switch {
	case s < o:
		return -1, nil
	case s > o:
		return +1, nil
	default:
		return 0, nil
	}
}

func (s String) Binary(op token.Token, y Value, side Side) (Value, error) {
	o, ok := y.(String)
	if !ok {
		return nil, nil
	}
	a, b := s, o
	if side == Right {
		a, b = b, a
	}
	if op == token.PLUS {
		return a + b, nil
	}
	return nil, nil
}

// Index returns the value of the i'th rune as a single-character String.
func (s String) Index(i int) Value {
	r := []rune(string(s))
	return String(r[i])
}

func (s String) Len() int { return len([]rune(string(s))) }
