package object

import (
	"math"
	"math/big"
	"strconv"

	"github.com/feint-lang/feint/lang/token"
)

// Float is FeInt's IEEE-754 binary64 floating-point type.
type Float struct {
	V float64
}

func NewFloat(f float64) *Float { return &Float{V: f} }

var (
	_ Value     = (*Float)(nil)
	_ Ordered   = (*Float)(nil)
	_ HasBinary = (*Float)(nil)
	_ HasUnary  = (*Float)(nil)
)

func (f *Float) String() string { return strconv.FormatFloat(f.V, 'g', -1, 64) }
func (f *Float) Type() string   { return "float" }
func (f *Float) Truth() bool    { return f.V != 0 }

func (f *Float) Cmp(y Value) (int, error) {
	switch o := y.(type) {
	case *Float:
		return cmpFloat(f.V, o.V), nil
	case *Int:
		of, _ := new(big.Float).SetInt(o.V).Float64()
		return cmpFloat(f.V, of), nil
	}
	return 0, wrongType("int or float", y)
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return +1
	default:
		return 0
	}
}

func pow(a, b float64) float64 { return math.Pow(a, b) }

func (f *Float) Unary(op token.Token) (Value, error) {
	switch op {
	case token.MINUS:
		return &Float{V: -f.V}, nil
	case token.NOT:
		return Bool(!f.Truth()), nil
	}
	return nil, nil
}

func (f *Float) Binary(op token.Token, y Value, side Side) (Value, error) {
	var g float64
	switch o := y.(type) {
	case *Float:
		g = o.V
	case *Int:
		g, _ = new(big.Float).SetInt(o.V).Float64()
	default:
		return nil, nil
	}
	a, b := f.V, g
	if side == Right {
		a, b = b, a
	}
	switch op {
	case token.PLUS:
		return &Float{V: a + b}, nil
	case token.MINUS:
		return &Float{V: a - b}, nil
	case token.STAR:
		return &Float{V: a * b}, nil
	case token.SLASH:
		if b == 0 {
			return nil, NewError(ZeroDivisionError, "division by zero")
		}
		return &Float{V: a / b}, nil
	case token.SLASHSLASH:
		if b == 0 {
			return nil, NewError(ZeroDivisionError, "division by zero")
		}
		return &Float{V: math.Floor(a / b)}, nil
	case token.PERCENT:
		if b == 0 {
			return nil, NewError(ZeroDivisionError, "modulo by zero")
		}
		return &Float{V: math.Mod(a, b)}, nil
	case token.STARSTAR:
		return &Float{V: pow(a, b)}, nil
	}
	return nil, nil
}
