package machine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/feint-lang/feint/lang/compiler"
	"github.com/feint-lang/feint/lang/machine"
	"github.com/feint-lang/feint/lang/object"
	"github.com/feint-lang/feint/lang/parser"
	"github.com/feint-lang/feint/lang/token"
)

func compile(t *testing.T, fset *token.FileSet, src string) *object.Code {
	t.Helper()
	chunk, err := parser.ParseChunk(fset, "test.fi", []byte(src))
	require.NoError(t, err)
	code, err := compiler.CompileModule("test", fset.File("test.fi"), chunk)
	require.NoError(t, err)
	return code
}

func runModule(t *testing.T, src string, configure func(*machine.Thread)) (*object.Module, error) {
	t.Helper()
	fset := token.NewFileSet()
	code := compile(t, fset, src)
	th := &machine.Thread{Fset: fset}
	if configure != nil {
		configure(th)
	}
	return th.RunModule(context.Background(), "test", code)
}

func global(t *testing.T, mod *object.Module, name string) object.Value {
	t.Helper()
	v, ok := mod.Globals.Get(name)
	require.True(t, ok, "global %q not found", name)
	return v
}

func TestArithmetic(t *testing.T) {
	mod, err := runModule(t, "result = 2 * (3 + 4)\n", nil)
	require.NoError(t, err)

	v := global(t, mod, "result")
	i, ok := v.(*object.Int)
	require.True(t, ok, "expected *object.Int, got %T", v)
	require.Equal(t, "14", i.String())
}

func TestMixedNumerics(t *testing.T) {
	mod, err := runModule(t, ""+
		"a = 1 + 1.5\n"+
		"b = 2 == 2.0\n"+
		"c = 2 == 2.1\n", nil)
	require.NoError(t, err)

	a := global(t, mod, "a")
	f, ok := a.(*object.Float)
	require.True(t, ok, "expected *object.Float, got %T", a)
	require.Equal(t, 2.5, f.V)

	require.Equal(t, object.Bool(true), global(t, mod, "b"))
	require.Equal(t, object.Bool(false), global(t, mod, "c"))
}

func TestClosureCaptureWithMutation(t *testing.T) {
	src := "" +
		"make_counter = () =>\n" +
		"  n = 0\n" +
		"  return () =>\n" +
		"    n = n + 1\n" +
		"    return n\n" +
		"counter = make_counter()\n" +
		"a = counter()\n" +
		"b = counter()\n" +
		"c = counter()\n"
	mod, err := runModule(t, src, nil)
	require.NoError(t, err)

	c := global(t, mod, "c")
	i, ok := c.(*object.Int)
	require.True(t, ok, "expected *object.Int, got %T", c)
	require.Equal(t, "3", i.String())
}

func TestRecursionDepthExceeded(t *testing.T) {
	src := "" +
		"f = (n) => f(n + 1)\n" +
		"result = f(0)\n"
	_, err := runModule(t, src, func(th *machine.Thread) {
		th.MaxCallDepth = 16
	})
	require.Error(t, err)

	oe, ok := err.(*object.Error)
	require.True(t, ok, "expected *object.Error, got %T", err)
	require.Equal(t, object.RecursionDepthExceeded, oe.Kind)
}

func TestVariadicArgs(t *testing.T) {
	src := "" +
		"f = (a, ) => a + $args[0] + $args[1]\n" +
		"result = f(1, 2, 3)\n"
	mod, err := runModule(t, src, nil)
	require.NoError(t, err)

	v := global(t, mod, "result")
	i, ok := v.(*object.Int)
	require.True(t, ok, "expected *object.Int, got %T", v)
	require.Equal(t, "6", i.String())
}

// TestImportCycleResolvesPartialModule exercises the Import instruction's
// interaction with a cyclic module graph directly against a hand-rolled
// Thread.Load, standing in for the module loader's cache/loading-sentinel
// behavior (spec.md §4.5/§9) which lang/loader implements for real: a
// module that imports a module still in the middle of loading it gets back
// that same (incompletely populated) *object.Module rather than looping
// forever or erroring.
func TestImportCycleResolvesPartialModule(t *testing.T) {
	fset := token.NewFileSet()
	codes := map[string]*object.Code{
		"a": compile(t, fset, "import b\nexport value = 1\n"),
		"b": compile(t, fset, "import a\nexport value = 2\n"),
	}

	modules := map[string]*object.Module{}
	var load func(name string) (*object.Module, error)
	load = func(name string) (*object.Module, error) {
		if m, ok := modules[name]; ok {
			return m, nil
		}
		code := codes[name]
		mod := object.NewModule(name, code)
		mod.Loading = true
		modules[name] = mod

		fn := &object.Function{CodeObj: code, Module: mod}
		depTh := &machine.Thread{Fset: fset, Load: func(_ *machine.Thread, path []string) (*object.Module, error) {
			return load(path[0])
		}}
		if _, err := machine.Call(depTh, fn, nil); err != nil {
			return nil, err
		}
		mod.Loading = false
		return mod, nil
	}

	mod, err := load("a")
	require.NoError(t, err)

	bVal := global(t, mod, "b")
	bMod, ok := bVal.(*object.Module)
	require.True(t, ok, "expected a's global \"b\" to be a *object.Module, got %T", bVal)

	aVal := global(t, bMod, "a")
	_, ok = aVal.(*object.Module)
	require.True(t, ok, "expected b's global \"a\" to be a *object.Module, got %T", aVal)
}
