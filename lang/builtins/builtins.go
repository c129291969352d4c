// Package builtins constructs the values seeded into a Thread's $-name
// namespace and the "system"/"builtins" modules the loader bootstraps, per
// spec.md §4.5's "Built-in modules ... are constructed programmatically at
// bootstrap and seeded into the cache." spec.md §1 explicitly scopes "built-in
// library functions' individual behaviors (file I/O, printing)" out as
// external-collaborator glue; what this package provides instead is the
// small, structural set of reflective builtins the object model itself makes
// trivial ($type, $len) plus the bootstrap wiring, not a standard library.
package builtins

import (
	"github.com/feint-lang/feint/lang/object"
)

type lengthy interface {
	Len() int
}

func typeOf(args []object.Value) (object.Value, error) {
	return object.String(args[0].Type()), nil
}

func lenOf(args []object.Value) (object.Value, error) {
	v, ok := args[0].(lengthy)
	if !ok {
		return nil, object.NewError(object.TypeError, "%s has no length", args[0].Type())
	}
	return object.NewInt(int64(v.Len())), nil
}

// Namespace returns the namespace a Thread's Builtins field should point at,
// resolving every bare `$name` reference the compiler emits as LoadBuiltin.
func Namespace() *object.Namespace {
	ns := object.NewNamespace(8)
	ns.Insert("type", &object.IntrinsicFunc{NameStr: "type", NumParams: 1, Fn: typeOf})
	ns.Insert("len", &object.IntrinsicFunc{NameStr: "len", NumParams: 1, Fn: lenOf})
	return ns
}

// BuiltinsModule wraps Namespace's functions as the importable "builtins"
// module, so `import builtins` and bare `$name` references reach the same
// underlying functions.
func BuiltinsModule() *object.Module {
	code := object.NewCode("builtins", "builtins")
	mod := object.NewModule("builtins", code)
	ns := Namespace()
	for _, name := range ns.Names() {
		v, _ := ns.Get(name)
		mod.Globals.Insert(name, v)
	}
	return mod
}

// SystemModule builds the importable "system" module, exposing the
// process's trailing positional arguments as system.argv per spec.md §6:
// "Trailing positional args become the module-level system.argv."
func SystemModule(argv []string) *object.Module {
	code := object.NewCode("system", "system")
	mod := object.NewModule("system", code)
	elems := make([]object.Value, len(argv))
	for i, a := range argv {
		elems[i] = object.String(a)
	}
	mod.Globals.Insert("argv", object.NewList(elems))
	return mod
}
