package object

import "fmt"

// ErrorKind tags the RuntimeErr taxonomy.
type ErrorKind string

const (
	TypeError              ErrorKind = "TypeError"
	NameError               ErrorKind = "NameError"
	AttributeError          ErrorKind = "AttributeError"
	IndexError              ErrorKind = "IndexError"
	KeyError                ErrorKind = "KeyError"
	ArgCountError           ErrorKind = "ArgCountError"
	ZeroDivisionError       ErrorKind = "ZeroDivisionError"
	AssertionError          ErrorKind = "AssertionError"
	RecursionDepthExceeded  ErrorKind = "RecursionDepthExceeded"
	ExitError               ErrorKind = "Exit"
	NotCallable             ErrorKind = "NotCallable"
	ImportError             ErrorKind = "ImportError"
)

// Error is the runtime error value: a RuntimeErr materializes as an Error
// value that propagates on the Go error channel until the driver formats it,
// or is pushed to the FeInt stack once a surrounding handler exists (not yet
// implemented; see spec's §7 propagation policy).
type Error struct {
	Kind ErrorKind
	Msg  string
	Code int // exit status, only meaningful when Kind == ExitError
	// Trace is the call-frame trace captured by the machine when the error
	// unwinds past a call frame, one entry appended per frame popped.
	// Populated by lang/machine as it propagates the error, not by the
	// constructors below.
	Trace []string
}

var _ Value = (*Error)(nil)

func (e *Error) String() string { return fmt.Sprintf("%s: %s", e.Kind, e.Msg) }
func (e *Error) Type() string   { return "error" }
func (e *Error) Truth() bool    { return false }
func (e *Error) Error() string  { return e.String() }

func NewError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func typeError(op string, y Value) *Error {
	return NewError(TypeError, "unsupported operand for %s: %s", op, y.Type())
}

func wrongType(expected string, got Value) *Error {
	return NewError(TypeError, "expected %s, got %s", expected, got.Type())
}
