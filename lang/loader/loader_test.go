package loader_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/feint-lang/feint/lang/loader"
	"github.com/feint-lang/feint/lang/machine"
	"github.com/feint-lang/feint/lang/object"
	"github.com/feint-lang/feint/lang/token"
)

func writeModule(t *testing.T, dir, name, src string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".fi"), []byte(src), 0o644))
}

func TestLoadResolvesFromSearchPath(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "greeting", "export value = \"hi\"\n")

	fset := token.NewFileSet()
	ld, err := loader.New([]string{dir}, fset)
	require.NoError(t, err)

	th := &machine.Thread{Fset: fset, Load: ld.Load}
	mod, err := ld.Load(th, []string{"greeting"})
	require.NoError(t, err)

	v, ok := mod.Globals.Get("value")
	require.True(t, ok)
	require.Equal(t, object.String("hi"), v)
}

func TestLoadMissingModuleIsNotFoundError(t *testing.T) {
	dir := t.TempDir()
	fset := token.NewFileSet()
	ld, err := loader.New([]string{dir}, fset)
	require.NoError(t, err)

	th := &machine.Thread{Fset: fset, Load: ld.Load}
	_, err = ld.Load(th, []string{"nope"})
	require.Error(t, err)

	var nf *loader.NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestNewRejectsAllMissingSearchPath(t *testing.T) {
	fset := token.NewFileSet()
	_, err := loader.New([]string{"/no/such/dir/a", "/no/such/dir/b"}, fset)
	require.Error(t, err)

	var dnf *loader.DirNotFoundError
	require.ErrorAs(t, err, &dnf)
}

func TestLoadResolvesImportCycleToPartialModule(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "a", "import b\nexport value = 1\n")
	writeModule(t, dir, "b", "import a\nexport value = 2\n")

	fset := token.NewFileSet()
	ld, err := loader.New([]string{dir}, fset)
	require.NoError(t, err)

	th := &machine.Thread{Fset: fset, Load: ld.Load}
	modA, err := ld.Load(th, []string{"a"})
	require.NoError(t, err)

	bVal, ok := modA.Globals.Get("b")
	require.True(t, ok)
	modB, ok := bVal.(*object.Module)
	require.True(t, ok, "expected a module for global \"b\", got %T", bVal)

	aVal, ok := modB.Globals.Get("a")
	require.True(t, ok)
	_, ok = aVal.(*object.Module)
	require.True(t, ok, "expected a module for global \"a\", got %T", aVal)
}

func TestSeedBypassesFileResolution(t *testing.T) {
	fset := token.NewFileSet()
	ld, err := loader.New(nil, fset)
	require.NoError(t, err)

	seeded := object.NewModule("system", object.NewCode("system", "system"))
	seeded.Globals.Insert("argv", object.NewList(nil))
	ld.Seed("system", seeded)

	th := &machine.Thread{Fset: fset, Load: ld.Load}
	mod, err := ld.Load(th, []string{"system"})
	require.NoError(t, err)
	require.Same(t, seeded, mod)
}
