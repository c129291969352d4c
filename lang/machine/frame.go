// Package machine implements the virtual machine that executes the
// bytecode-compiled form of FeInt source: the dispatch loop, call frames,
// closures and module loading, per spec.md §4.4. It dispatches the
// varint-encoded instruction stream of lang/compiler/opcode.go; there is
// deliberately no defer/catch or label-based goto machinery, since spec.md
// §7 states plainly that a surrounding handler is "future work — currently
// none", so there is nothing for such opcodes to serve yet.
package machine

import (
	"github.com/feint-lang/feint/lang/object"
	"github.com/feint-lang/feint/lang/token"
)

// Frame is the VM's per-call record: the executing function, its operand
// stack and locals, the instruction pointer, and (for a closure call) the
// captured-cell map it resolves LoadCaptured/StoreCaptured/MakeClosure
// through.
type Frame struct {
	fn      *object.Function
	closure *object.Closure // nil unless fn was invoked through a Closure

	locals []object.Value
	stack  []object.Value
	sp     int
	pc     int

	// localSlots maps a local's name to its slot, built lazily from the
	// function's Code.LocalNames only when MakeClosure needs to resolve a
	// capture by name against this frame's own locals.
	localSlots map[string]int
}

func (fr *Frame) code() *object.Code { return fr.fn.CodeObj }

// Name returns the frame's function name, for error traces.
func (fr *Frame) Name() string { return fr.fn.Name() }

// Pos returns the source position of the instruction the frame is currently
// executing, for error traces.
func (fr *Frame) Pos() token.Pos { return fr.code().PosAt(fr.pc) }

func (fr *Frame) push(v object.Value) {
	fr.stack[fr.sp] = v
	fr.sp++
}

func (fr *Frame) pop() object.Value {
	fr.sp--
	return fr.stack[fr.sp]
}

// cellFor returns the cell backing a captured variable named name, looked up
// first among this frame's own boxed locals (for a variable this function
// declares and an inner closure captures directly from it), then among the
// cells this frame itself received as a closure (for a variable chained
// through from a still-further-out scope). It is only ever consulted while
// building a nested closure's capture map, so the lazy slot index is built on
// first use rather than unconditionally at frame setup.
func (fr *Frame) cellFor(name string) (*object.Cell, bool) {
	if fr.localSlots == nil {
		fr.localSlots = make(map[string]int, len(fr.code().LocalNames))
		for slot, n := range fr.code().LocalNames {
			fr.localSlots[n] = slot
		}
	}
	if slot, ok := fr.localSlots[name]; ok {
		if c, ok := fr.locals[slot].(*object.Cell); ok {
			return c, true
		}
	}
	if fr.closure != nil {
		if c, ok := fr.closure.Captures[name]; ok {
			return c, true
		}
	}
	return nil, false
}
