package scanner

import (
	"fmt"
	"sort"
	"strings"

	"github.com/feint-lang/feint/lang/token"
)

// Kind identifies the category of a scan error, mirroring spec.md's ScanErr
// taxonomy.
type Kind uint8

const (
	UnexpectedIndent Kind = iota
	UnexpectedWhitespace
	UnterminatedString
	UnknownToken
	UnmatchedOpeningBracket
	UnmatchedClosingBracket
)

func (k Kind) String() string {
	switch k {
	case UnexpectedIndent:
		return "unexpected indent"
	case UnexpectedWhitespace:
		return "unexpected whitespace"
	case UnterminatedString:
		return "unterminated string"
	case UnknownToken:
		return "unknown token"
	case UnmatchedOpeningBracket:
		return "unmatched opening bracket"
	case UnmatchedClosingBracket:
		return "unmatched closing bracket"
	default:
		return "scan error"
	}
}

// Error is a single scan error, anchored to a source position. It follows
// the shape of go/scanner.Error; this package cannot alias go/scanner's type
// directly because its Pos field is a go/token.Position, not this package's
// own Position, so the shape is reproduced instead of reused.
type Error struct {
	Pos  token.Position
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
	}
	return e.Msg
}

// ErrorList is a list of *Error, sortable by position, and itself an error.
type ErrorList []*Error

// Add appends an error with the given position, kind and formatted message.
func (l *ErrorList) Add(pos token.Position, kind Kind, format string, args ...any) {
	*l = append(*l, &Error{Pos: pos, Kind: kind, Msg: fmt.Sprintf(format, args...)})
}

func (l ErrorList) Len() int      { return len(l) }
func (l ErrorList) Swap(i, j int) { l[i], l[j] = l[j], l[i] }
func (l ErrorList) Less(i, j int) bool {
	pi, pj := l[i].Pos, l[j].Pos
	if pi.Filename != pj.Filename {
		return pi.Filename < pj.Filename
	}
	if pi.Line != pj.Line {
		return pi.Line < pj.Line
	}
	return pi.Column < pj.Column
}

// Sort sorts the error list in place by source position.
func (l ErrorList) Sort() { sort.Sort(l) }

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	var sb strings.Builder
	for i, e := range l {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(e.Error())
	}
	fmt.Fprintf(&sb, " (and %d more errors)", len(l)-1)
	return sb.String()
}

// Err returns the ErrorList as an error, or nil if the list is empty.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// Unwrap lets errors.Is/As walk into the individual errors, matching the
// contract go/scanner.ErrorList promises callers.
func (l ErrorList) Unwrap() []error {
	errs := make([]error, len(l))
	for i, e := range l {
		errs[i] = e
	}
	return errs
}
