package object

import "github.com/feint-lang/feint/lang/token"

// Binary applies a binary operator to x and y, trying x as the left operand
// first and y as the right operand second, per spec.md §4.4's binary
// semantics. A HasBinary implementation may decline by returning (nil, nil),
// in which case the other operand gets a chance before a TypeError is
// reported.
func Binary(op token.Token, x, y Value) (Value, error) {
	if hx, ok := x.(HasBinary); ok {
		v, err := hx.Binary(op, y, Left)
		if err != nil {
			return nil, err
		}
		if v != nil {
			return v, nil
		}
	}
	if hy, ok := y.(HasBinary); ok {
		v, err := hy.Binary(op, x, Right)
		if err != nil {
			return nil, err
		}
		if v != nil {
			return v, nil
		}
	}
	return nil, NewError(TypeError, "unsupported operand types for %s: %s and %s", op, x.Type(), y.Type())
}

// Unary applies a unary operator to x.
func Unary(op token.Token, x Value) (Value, error) {
	if hx, ok := x.(HasUnary); ok {
		v, err := hx.Unary(op)
		if err != nil {
			return nil, err
		}
		if v != nil {
			return v, nil
		}
	}
	return nil, NewError(TypeError, "unsupported operand type for %s: %s", op, x.Type())
}

// Compare evaluates a relational operator (<, <=, >, >=, ==, !=). Equality
// across int and float compares by mathematical value, per spec.md §4.4.
func Compare(op token.Token, x, y Value) (Value, error) {
	if op == token.EQEQ || op == token.BANGEQ {
		eq := Equals(x, y)
		if op == token.BANGEQ {
			eq = !eq
		}
		return Bool(eq), nil
	}

	ox, ok := x.(Ordered)
	if !ok {
		return nil, NewError(TypeError, "%s is not ordered", x.Type())
	}
	c, err := ox.Cmp(y)
	if err != nil {
		return nil, err
	}
	switch op {
	case token.LT:
		return Bool(c < 0), nil
	case token.LE:
		return Bool(c <= 0), nil
	case token.GT:
		return Bool(c > 0), nil
	case token.GE:
		return Bool(c >= 0), nil
	}
	return nil, NewError(TypeError, "unsupported comparison operator %s", op)
}

// Equals reports whether x and y are equal. Ordered values (numbers,
// strings, bools) compare by value, numeric equality spanning int and float
// by mathematical value; every other value, including tuples, lists and
// maps, compares by identity, with no element-wise comparison. Cross-type
// comparisons are false rather than an error.
func Equals(x, y Value) bool {
	if ox, ok := x.(Ordered); ok {
		if _, ok := y.(Ordered); ok {
			if sameComparableKind(x, y) {
				c, err := ox.Cmp(y)
				return err == nil && c == 0
			}
		}
	}
	if x == y {
		return true
	}
	if sx, ok := x.(String); ok {
		sy, ok := y.(String)
		return ok && sx == sy
	}
	return false
}

func sameComparableKind(x, y Value) bool {
	_, xInt := x.(*Int)
	_, yInt := y.(*Int)
	_, xFloat := x.(*Float)
	_, yFloat := y.(*Float)
	if (xInt || xFloat) && (yInt || yFloat) {
		return true
	}
	return x.Type() == y.Type()
}

// GetAttr reads the named attribute from x via dot expression semantics.
func GetAttr(x Value, name string) (Value, error) {
	hx, ok := x.(HasAttrs)
	if !ok {
		return nil, NewError(AttributeError, "%s has no attribute %q", x.Type(), name)
	}
	v, err := hx.Attr(name)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, NewError(AttributeError, "%s has no attribute %q", x.Type(), name)
	}
	return v, nil
}

// SetAttr writes the named attribute on x via dot expression semantics.
func SetAttr(x Value, name string, v Value) error {
	hx, ok := x.(HasSetField)
	if !ok {
		return NewError(AttributeError, "%s does not support attribute assignment", x.Type())
	}
	return hx.SetField(name, v)
}

// GetItem implements the subscript operator x[key].
func GetItem(x, key Value) (Value, error) {
	switch recv := x.(type) {
	case Indexable:
		i, ok := key.(*Int)
		if !ok {
			return nil, NewError(TypeError, "index must be int, got %s", key.Type())
		}
		idx := int(i.V.Int64())
		if idx < 0 {
			idx += recv.Len()
		}
		if idx < 0 || idx >= recv.Len() {
			return nil, NewError(IndexError, "index %d out of range", idx)
		}
		return recv.Index(idx), nil
	case Mapping:
		v, found, err := recv.Get(key)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, NewError(KeyError, "key not found: %s", key.String())
		}
		return v, nil
	}
	return nil, NewError(TypeError, "%s is not subscriptable", x.Type())
}

// SetItem implements the subscript assignment x[key] = v.
func SetItem(x, key, v Value) error {
	switch recv := x.(type) {
	case HasSetIndex:
		i, ok := key.(*Int)
		if !ok {
			return NewError(TypeError, "index must be int, got %s", key.Type())
		}
		idx := int(i.V.Int64())
		if idx < 0 {
			idx += recv.Len()
		}
		return recv.SetIndex(idx, v)
	case HasSetKey:
		return recv.SetKey(key, v)
	}
	return NewError(TypeError, "%s does not support item assignment", x.Type())
}
