package object

import "fmt"

// Module is a named top-level unit holding a compiled body and a globals
// namespace, cached once per process by the loader. Per spec.md §4.4/§9, the
// cache holds a loading sentinel while a module's top-level Code is still
// executing so that a recursive import observes the partially-initialized
// module rather than looping.
type Module struct {
	NameStr string
	Code    *Code
	Globals *Namespace
	Loading bool
}

var _ Value = (*Module)(nil)

func NewModule(name string, code *Code) *Module {
	m := &Module{NameStr: name, Code: code, Globals: NewNamespace(8), Loading: true}
	m.Globals.Insert(name, m)
	return m
}

func (m *Module) String() string { return fmt.Sprintf("module(%s)", m.NameStr) }
func (m *Module) Type() string   { return "module" }
func (m *Module) Truth() bool    { return true }
