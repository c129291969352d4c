package compiler

import (
	"fmt"

	"github.com/feint-lang/feint/lang/token"
)

// ErrorKind tags the static errors the compiler itself can report, distinct
// from the object.ErrorKind taxonomy raised at runtime.
type ErrorKind string

const (
	NameError               ErrorKind = "NameError"
	DuplicateParam          ErrorKind = "DuplicateParam"
	InvalidAssignmentTarget ErrorKind = "InvalidAssignmentTarget"
	ExportOutsideModule     ErrorKind = "ExportOutsideModule"
	BreakOutsideLoop        ErrorKind = "BreakOutsideLoop"
	ContinueOutsideLoop     ErrorKind = "ContinueOutsideLoop"
	JumpOutsideLoop         ErrorKind = "JumpOutsideLoop"
	TooManyConstants        ErrorKind = "TooManyConstants"
)

// Error is a single static compilation error, tied to a source position so
// the driver can format it alongside scanner and parser errors.
type Error struct {
	Kind ErrorKind
	Pos  token.Pos
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

// ErrorList collects every Error found while compiling a chunk; compilation
// continues past a statement-level error where it safely can, so a single
// run can surface more than one mistake.
type ErrorList []*Error

func (errs ErrorList) Error() string {
	switch len(errs) {
	case 0:
		return "no errors"
	case 1:
		return errs[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more errors)", errs[0].Error(), len(errs)-1)
	}
}

func newError(kind ErrorKind, pos token.Pos, format string, args ...any) *Error {
	return &Error{Kind: kind, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
