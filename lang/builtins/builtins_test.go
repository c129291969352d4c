package builtins_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/feint-lang/feint/lang/builtins"
	"github.com/feint-lang/feint/lang/object"
)

func TestNamespaceTypeAndLen(t *testing.T) {
	ns := builtins.Namespace()

	typeFn, ok := ns.Get("type")
	require.True(t, ok)
	fn := typeFn.(*object.IntrinsicFunc)
	v, err := fn.Fn([]object.Value{object.NewInt(3)})
	require.NoError(t, err)
	require.Equal(t, object.String("int"), v)

	lenFn, ok := ns.Get("len")
	require.True(t, ok)
	fn = lenFn.(*object.IntrinsicFunc)
	v, err = fn.Fn([]object.Value{object.NewList([]object.Value{object.NewInt(1), object.NewInt(2)})})
	require.NoError(t, err)
	i := v.(*object.Int)
	require.Equal(t, "2", i.String())
}

func TestSystemModuleExposesArgv(t *testing.T) {
	mod := builtins.SystemModule([]string{"a", "b"})
	v, ok := mod.Globals.Get("argv")
	require.True(t, ok)
	list := v.(*object.List)
	require.Equal(t, 2, list.Len())
}

func TestBuiltinsModuleMirrorsNamespace(t *testing.T) {
	mod := builtins.BuiltinsModule()
	_, ok := mod.Globals.Get("type")
	require.True(t, ok)
	_, ok = mod.Globals.Get("len")
	require.True(t, ok)
}
