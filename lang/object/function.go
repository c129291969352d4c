package object

import "fmt"

// Function is a plain (non-closing) compiled function value: name, owning
// module name, parameter list and code, per spec.md §3. The implicit
// top-level body of a module is represented the same way.
type Function struct {
	CodeObj *Code
	Module  *Module // owning module; LoadGlobal/StoreGlobal/Import resolve against its Globals
}

var (
	_ Value    = (*Function)(nil)
	_ Callable = (*Function)(nil)
)

func (f *Function) String() string { return fmt.Sprintf("function(%s)", f.Name()) }
func (f *Function) Type() string   { return "function" }
func (f *Function) Truth() bool    { return true }
func (f *Function) Name() string   { return f.CodeObj.Name }

// Closure wraps a Function together with a map from captured name to Cell.
type Closure struct {
	Fn       *Function
	Captures map[string]*Cell
}

var (
	_ Value    = (*Closure)(nil)
	_ Callable = (*Closure)(nil)
)

func (c *Closure) String() string { return fmt.Sprintf("closure(%s)", c.Name()) }
func (c *Closure) Type() string   { return "closure" }
func (c *Closure) Truth() bool    { return true }
func (c *Closure) Name() string   { return c.Fn.Name() }

// BoundFunc wraps a Callable with a bound "this" value.
type BoundFunc struct {
	Fn   Callable
	This Value
}

var (
	_ Value    = (*BoundFunc)(nil)
	_ Callable = (*BoundFunc)(nil)
)

func (b *BoundFunc) String() string { return fmt.Sprintf("bound-function(%s)", b.Name()) }
func (b *BoundFunc) Type() string   { return "bound-function" }
func (b *BoundFunc) Truth() bool    { return true }
func (b *BoundFunc) Name() string   { return b.Fn.Name() }

// IntrinsicFunc wraps a host-language callable with a declared arity, used
// for the builtins module.
type IntrinsicFunc struct {
	NameStr   string
	NumParams int
	Variadic  bool
	Fn        func(args []Value) (Value, error)
}

var (
	_ Value    = (*IntrinsicFunc)(nil)
	_ Callable = (*IntrinsicFunc)(nil)
)

func (f *IntrinsicFunc) String() string { return fmt.Sprintf("intrinsic(%s)", f.NameStr) }
func (f *IntrinsicFunc) Type() string   { return "intrinsic" }
func (f *IntrinsicFunc) Truth() bool    { return true }
func (f *IntrinsicFunc) Name() string   { return f.NameStr }
