package object

import (
	"sort"

	"github.com/feint-lang/feint/lang/token"
)

// PosEntry records the source position of the instruction starting at Addr.
// Code.Positions is kept sorted by Addr so PosAt can binary search it, the
// same "sparse table, binary search on lookup" shape token.File uses for its
// line-start index.
type PosEntry struct {
	Addr int
	Pos  token.Pos
}

// ImportBinding is a single name bound by an Import instruction. Name is ""
// for a plain `import path.to.module [as alias]`, meaning As is bound to the
// whole module; a from-import has one ImportBinding per pulled-in name.
type ImportBinding struct {
	Name string
	As   string
}

// ImportSpec is one entry of Code.Imports, referenced by an Import
// instruction's operand.
type ImportSpec struct {
	Path     []string
	Bindings []ImportBinding
}

// Code is a compiled function body: an immutable instruction stream, an
// append-only constant pool, its parameter list, and source-location
// metadata for error reporting, per spec.md §3.
type Code struct {
	Name         string
	ModuleName   string
	ParamNames   []string // last entry "" marks a variadic trailing parameter
	NumLocals    int      // slot count, including parameters
	MaxStack     int
	CellLocals   []int    // indices into the locals vector that must be boxed as cells
	Captures     []string // free variable names, in the order MakeClosure expects cells
	Instructions []byte
	Constants    []Value
	Names        []string // interned names for Load/StoreGlobal, LoadBuiltin, GetAttr/SetAttr, LoadCaptured/StoreCaptured
	LocalNames   []string // slot -> declared name, including parameters; used by MakeClosure to resolve a capture to a cell
	Imports      []ImportSpec
	Exported     []string // names this module's top-level body marked export, empty for function code
	Docstring    int      // index into Constants, -1 if none
	Positions    []PosEntry
}

func NewCode(name, moduleName string) *Code {
	return &Code{Name: name, ModuleName: moduleName, Docstring: -1}
}

// Code sits directly in an enclosing function's constant pool so MakeFunc
// can reference it by index; it is never itself a value a FeInt program can
// observe, since MakeFunc immediately wraps it into a Function.
var _ Value = (*Code)(nil)

func (c *Code) String() string { return "code(" + c.Name + ")" }
func (c *Code) Type() string   { return "code" }
func (c *Code) Truth() bool    { return true }

func (c *Code) Variadic() bool {
	return len(c.ParamNames) > 0 && c.ParamNames[len(c.ParamNames)-1] == ""
}

func (c *Code) NumParams() int { return len(c.ParamNames) }

// PosAt returns the source position recorded for the instruction at or
// immediately before addr.
func (c *Code) PosAt(addr int) token.Pos {
	i := sort.Search(len(c.Positions), func(i int) bool { return c.Positions[i].Addr > addr })
	if i == 0 {
		return token.NoPos
	}
	return c.Positions[i-1].Pos
}
