package machine

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/feint-lang/feint/lang/object"
	"github.com/feint-lang/feint/lang/token"
)

// State is one of the VM's four execution states, per spec.md §4.4's state
// machine: execute_module moves Idle to Running, normal completion returns
// to Idle, a Halt instruction moves to Halted, any uncaught runtime error
// moves to Errored. A Halted or Errored thread must be Reset before reuse.
type State int

const (
	Idle State = iota
	Running
	Halted
	Errored
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Halted:
		return "halted"
	case Errored:
		return "errored"
	}
	return "unknown"
}

// Thread drives one VM instance: its own call stack and execution state, a
// host clock it never suspends on (per spec.md §5, the only suspension point
// is returning to the caller), and the hooks into the module loader and
// builtins namespace that Import and LoadBuiltin consult.
type Thread struct {
	// Name optionally describes the thread, for debugging and trace output.
	Name string

	// Stdout, Stderr and Stdin back $print/$debug and any I/O builtins. If
	// nil, os.Stdout, os.Stderr and os.Stdin are used.
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader

	// MaxCallDepth bounds nested Call frames; 0 means unlimited, per spec.md
	// §4.4's recursion limit.
	MaxCallDepth int

	// Debug gates the Debug instruction's output; per spec.md §9's open
	// question, $debug is a no-op unless the debug flag is set.
	Debug bool

	// Builtins is the namespace LoadBuiltin resolves against; the driver sets
	// it to lang/builtins.Namespace().
	Builtins *object.Namespace

	// Fset resolves the source positions recorded in a Code's instruction
	// stream back to a file/line/column for error traces.
	Fset *token.FileSet

	// Load resolves an Import instruction's module path to a loaded module,
	// delegating to the module loader's search path and cache.
	Load func(th *Thread, path []string) (*object.Module, error)

	ctx       context.Context
	callStack []*Frame
	state     State
	haltCode  int
}

func (th *Thread) stdout() io.Writer {
	if th.Stdout != nil {
		return th.Stdout
	}
	return os.Stdout
}

func (th *Thread) stderr() io.Writer {
	if th.Stderr != nil {
		return th.Stderr
	}
	return os.Stderr
}

// State reports the thread's current VM state.
func (th *Thread) State() State { return th.state }

// HaltCode returns the exit code recorded by a Halt instruction, meaningful
// only once State returns Halted.
func (th *Thread) HaltCode() int { return th.haltCode }

// Reset returns a Halted or Errored thread to Idle so it may run another
// module.
func (th *Thread) Reset() {
	th.state = Idle
	th.haltCode = 0
	th.callStack = nil
}

// RunModule executes a module's compiled top-level Code in a fresh top-level
// frame, returning the resulting Module (its Globals populated by the
// executed body) per spec.md §4.4's Import instruction description.
func (th *Thread) RunModule(ctx context.Context, moduleName string, code *object.Code) (*object.Module, error) {
	if th.state == Running {
		return nil, fmt.Errorf("thread %s is already executing", th.Name)
	}
	th.ctx = ctx

	mod := object.NewModule(moduleName, code)
	topFn := &object.Function{CodeObj: code, Module: mod}

	th.state = Running
	_, err := Call(th, topFn, nil)
	mod.Loading = false

	if err != nil {
		if oe, ok := err.(*object.Error); ok && oe.Kind == object.ExitError {
			th.state = Halted
			th.haltCode = oe.Code
			return mod, err
		}
		th.state = Errored
		return mod, err
	}
	th.state = Idle
	return mod, nil
}
