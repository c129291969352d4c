package driver

import (
	"fmt"
	"strings"

	"github.com/feint-lang/feint/lang/compiler"
	"github.com/feint-lang/feint/lang/object"
	"github.com/feint-lang/feint/lang/token"
)

// FormatError renders any error the pipeline can produce — a
// scanner.ErrorList/parser.ErrorList (already position-formatted by their
// own Error methods), a compiler.ErrorList (resolved against fset here,
// since compiler.Error.Error() deliberately omits position so it can be
// reused outside a fileset context), or a runtime *object.Error (its Trace,
// if any, appended one frame per line innermost-first) — into the single
// multi-line report printed to standard error.
func FormatError(fset *token.FileSet, err error) string {
	if err == nil {
		return ""
	}

	if errs, ok := err.(compiler.ErrorList); ok {
		var sb strings.Builder
		for i, e := range errs {
			if i > 0 {
				sb.WriteByte('\n')
			}
			pos := fset.Position(e.Pos)
			if pos.IsValid() {
				fmt.Fprintf(&sb, "%s: %s: %s", pos, e.Kind, e.Msg)
			} else {
				fmt.Fprintf(&sb, "%s: %s", e.Kind, e.Msg)
			}
		}
		return sb.String()
	}

	if oe, ok := err.(*object.Error); ok {
		var sb strings.Builder
		fmt.Fprintf(&sb, "%s: %s", oe.Kind, oe.Msg)
		for _, frame := range oe.Trace {
			fmt.Fprintf(&sb, "\n\tat %s", frame)
		}
		return sb.String()
	}

	return err.Error()
}
