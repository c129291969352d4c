package object

import (
	"math/big"

	"github.com/feint-lang/feint/lang/token"
)

// Int is FeInt's arbitrary-precision integer type, backed by math/big since
// spec.md requires unbounded precision that a fixed-width int64 cannot give.
type Int struct {
	V *big.Int
}

func NewInt(i int64) *Int { return &Int{V: big.NewInt(i)} }

var (
	_ Value     = (*Int)(nil)
	_ Ordered   = (*Int)(nil)
	_ HasBinary = (*Int)(nil)
	_ HasUnary  = (*Int)(nil)
)

func (i *Int) String() string { return i.V.String() }
func (i *Int) Type() string   { return "int" }
func (i *Int) Truth() bool    { return i.V.Sign() != 0 }

func (i *Int) Cmp(y Value) (int, error) {
	switch o := y.(type) {
	case *Int:
		return i.V.Cmp(o.V), nil
	case *Float:
		f, _ := new(big.Float).SetInt(i.V).Float64()
		return cmpFloat(f, o.V), nil
	}
	return 0, wrongType("int or float", y)
}

func (i *Int) Unary(op token.Token) (Value, error) {
	switch op {
	case token.MINUS:
		return &Int{V: new(big.Int).Neg(i.V)}, nil
	case token.NOT:
		return Bool(!i.Truth()), nil
	}
	return nil, nil
}

func (i *Int) Binary(op token.Token, y Value, side Side) (Value, error) {
	if f, ok := y.(*Float); ok {
		return floatFromInt(i).Binary(op, f, side)
	}
	o, ok := y.(*Int)
	if !ok {
		return nil, nil
	}
	a, b := i.V, o.V
	if side == Right {
		a, b = b, a
	}
	switch op {
	case token.PLUS:
		return &Int{V: new(big.Int).Add(a, b)}, nil
	case token.MINUS:
		return &Int{V: new(big.Int).Sub(a, b)}, nil
	case token.STAR:
		return &Int{V: new(big.Int).Mul(a, b)}, nil
	case token.SLASH:
		if b.Sign() == 0 {
			return nil, NewError(ZeroDivisionError, "division by zero")
		}
		fa, _ := new(big.Float).SetInt(a).Float64()
		fb, _ := new(big.Float).SetInt(b).Float64()
		return &Float{V: fa / fb}, nil
	case token.SLASHSLASH:
		if b.Sign() == 0 {
			return nil, NewError(ZeroDivisionError, "division by zero")
		}
		q := new(big.Int)
		m := new(big.Int)
		q.DivMod(a, b, m)
		return &Int{V: q}, nil
	case token.PERCENT:
		if b.Sign() == 0 {
			return nil, NewError(ZeroDivisionError, "modulo by zero")
		}
		m := new(big.Int).Mod(a, b)
		return &Int{V: m}, nil
	case token.STARSTAR:
		if b.Sign() < 0 {
			fa, _ := new(big.Float).SetInt(a).Float64()
			fb, _ := new(big.Float).SetInt(b).Float64()
			return &Float{V: pow(fa, fb)}, nil
		}
		return &Int{V: new(big.Int).Exp(a, b, nil)}, nil
	}
	return nil, nil
}

func floatFromInt(i *Int) *Float {
	f, _ := new(big.Float).SetInt(i.V).Float64()
	return &Float{V: f}
}
