package object_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/feint-lang/feint/lang/object"
	"github.com/feint-lang/feint/lang/token"
)

func TestNamespaceInsertVsSet(t *testing.T) {
	ns := object.NewNamespace(4)

	require.False(t, ns.Set("x", object.NewInt(1)), "Set must fail when the name is absent")
	ns.Insert("x", object.NewInt(1))
	require.True(t, ns.Set("x", object.NewInt(2)), "Set must succeed once the name exists")

	v, ok := ns.Get("x")
	require.True(t, ok)
	require.Equal(t, "2", v.String())
	require.Equal(t, []string{"x"}, ns.Names())
}

func TestNamespaceEqual(t *testing.T) {
	a := object.NewNamespace(2)
	b := object.NewNamespace(2)
	one := object.NewInt(1)
	a.Insert("x", one)
	b.Insert("x", one)
	require.True(t, a.Equal(b))

	b.Insert("y", object.NewInt(2))
	require.False(t, a.Equal(b))
}

func TestIntArithmeticArbitraryPrecision(t *testing.T) {
	big := object.NewInt(1)
	for i := 0; i < 25; i++ {
		v, err := object.Binary(token.STAR, big, object.NewInt(10))
		require.NoError(t, err)
		big = v.(*object.Int)
	}
	require.Equal(t, "10000000000000000000000000", big.String())

	v, err := object.Binary(token.PLUS, object.NewInt(1), object.NewInt(2))
	require.NoError(t, err)
	require.Equal(t, "3", v.String())
}

func TestIntDivisionByZero(t *testing.T) {
	_, err := object.Binary(token.SLASH, object.NewInt(1), object.NewInt(0))
	require.Error(t, err)
	oe, ok := err.(*object.Error)
	require.True(t, ok)
	require.Equal(t, object.ZeroDivisionError, oe.Kind)
}

func TestIntFloatCrossTypeEquality(t *testing.T) {
	require.True(t, object.Equals(object.NewInt(2), &object.Float{V: 2.0}))
	require.False(t, object.Equals(object.NewInt(2), &object.Float{V: 2.5}))
}

func TestCompareOrdering(t *testing.T) {
	lt, err := object.Compare(token.LT, object.NewInt(1), object.NewInt(2))
	require.NoError(t, err)
	require.Equal(t, object.Bool(true), lt)

	_, err = object.Compare(token.LT, object.Nil{}, object.NewInt(2))
	require.Error(t, err)
}

func TestBinaryTypeMismatchIsTypeError(t *testing.T) {
	_, err := object.Binary(token.PLUS, object.NewInt(1), object.String("x"))
	require.Error(t, err)
	oe, ok := err.(*object.Error)
	require.True(t, ok)
	require.Equal(t, object.TypeError, oe.Kind)
}

func TestTupleIndexAndString(t *testing.T) {
	tup := object.NewTuple([]object.Value{object.NewInt(1), object.String("a")})
	require.Equal(t, 2, tup.Len())
	require.Equal(t, object.NewInt(1).String(), tup.Index(0).String())

	v, err := object.GetItem(tup, object.NewInt(-1))
	require.NoError(t, err)
	require.Equal(t, "a", v.String())
}

func TestListSetIndexAndOutOfRange(t *testing.T) {
	l := object.NewList([]object.Value{object.NewInt(1), object.NewInt(2)})
	require.NoError(t, object.SetItem(l, object.NewInt(0), object.NewInt(9)))
	v, err := object.GetItem(l, object.NewInt(0))
	require.NoError(t, err)
	require.Equal(t, "9", v.String())

	_, err = object.GetItem(l, object.NewInt(5))
	require.Error(t, err)
	oe, ok := err.(*object.Error)
	require.True(t, ok)
	require.Equal(t, object.IndexError, oe.Kind)
}

func TestMapGetSetAndMissingKey(t *testing.T) {
	m := object.NewMap(4)
	require.NoError(t, object.SetItem(m, object.String("k"), object.NewInt(1)))
	v, err := object.GetItem(m, object.String("k"))
	require.NoError(t, err)
	require.Equal(t, "1", v.String())

	_, err = object.GetItem(m, object.String("missing"))
	require.Error(t, err)
	oe, ok := err.(*object.Error)
	require.True(t, ok)
	require.Equal(t, object.KeyError, oe.Kind)
}

func TestMapBinaryPlusMerges(t *testing.T) {
	a := object.NewMap(2)
	a.SetKey(object.String("x"), object.NewInt(1))
	b := object.NewMap(2)
	b.SetKey(object.String("x"), object.NewInt(2))
	b.SetKey(object.String("y"), object.NewInt(3))

	v, err := object.Binary(token.PLUS, a, b)
	require.NoError(t, err)
	merged := v.(*object.Map)
	require.Equal(t, 2, merged.Len())
	got, _, _ := merged.Get(object.String("x"))
	require.Equal(t, "2", got.String())
}

func TestCellMutationVisibleThroughAlias(t *testing.T) {
	cell := &object.Cell{V: object.NewInt(1)}
	alias := cell
	alias.V = object.NewInt(2)
	require.Equal(t, "2", cell.V.String())
}

func TestGetAttrMissingIsAttributeError(t *testing.T) {
	_, err := object.GetAttr(object.NewInt(1), "nope")
	require.Error(t, err)
	oe, ok := err.(*object.Error)
	require.True(t, ok)
	require.Equal(t, object.AttributeError, oe.Kind)
}

func TestErrorStringFormat(t *testing.T) {
	err := object.NewError(object.NameError, "undefined: %s", "foo")
	require.Equal(t, "NameError: undefined: foo", err.String())
	require.False(t, err.Truth())
}
