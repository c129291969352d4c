package compiler

import (
	"fmt"
	"strings"

	"github.com/feint-lang/feint/lang/object"
)

// Disassemble renders code and every function literal it references into a
// human-readable instruction listing, depth-first, for debugging and
// tests. The format is deliberately simple (one instruction per line, a
// blank-line-separated section per function) since nothing needs to
// round-trip it back into bytecode — this is a read-only diagnostic view.
func Disassemble(code *object.Code) string {
	var b strings.Builder
	seen := map[*object.Code]bool{}
	disasmOne(&b, code, seen)
	return b.String()
}

func disasmOne(b *strings.Builder, code *object.Code, seen map[*object.Code]bool) {
	if seen[code] {
		return
	}
	seen[code] = true

	fmt.Fprintf(b, "function %s(", code.Name)
	for i, p := range code.ParamNames {
		if i > 0 {
			b.WriteString(", ")
		}
		if p == "" {
			b.WriteString("$args")
		} else {
			b.WriteString(p)
		}
	}
	fmt.Fprintf(b, ") locals=%d maxstack=%d\n", code.NumLocals, code.MaxStack)

	var nested []*object.Code

	instr := code.Instructions
	for pc := 0; pc < len(instr); {
		op := Opcode(instr[pc])
		pc++
		switch {
		case !(op >= OpcodeArgMin):
			fmt.Fprintf(b, "  %4d  %s\n", pc-1, op)
		case isJump(op):
			target := int(uint32(instr[pc]) | uint32(instr[pc+1])<<8 | uint32(instr[pc+2])<<16 | uint32(instr[pc+3])<<24)
			fmt.Fprintf(b, "  %4d  %s %d\n", pc-1, op, target)
			pc += 4
		default:
			arg, n := decodeVarUint32(instr[pc:])
			pc += n
			fmt.Fprintf(b, "  %4d  %s %s\n", pc-1-n, op, describeArg(code, op, arg))
			if op == MAKEFUNC {
				if fc, ok := code.Constants[arg].(*object.Code); ok {
					nested = append(nested, fc)
				}
			}
		}
	}
	b.WriteString("\n")
	for _, fc := range nested {
		disasmOne(b, fc, seen)
	}
}

func decodeVarUint32(b []byte) (uint32, int) {
	var x uint32
	var shift uint
	for i, c := range b {
		x |= uint32(c&0x7f) << shift
		if c < 0x80 {
			return x, i + 1
		}
		shift += 7
	}
	return x, len(b)
}

// describeArg annotates an instruction argument with the constant/name it
// refers to, when that's more useful than the bare index.
func describeArg(code *object.Code, op Opcode, arg uint32) string {
	switch op {
	case PUSH, MAKEFUNC:
		if int(arg) < len(code.Constants) {
			return fmt.Sprintf("%d ; %v", arg, code.Constants[arg])
		}
	case LOADGLOBAL, STOREGLOBAL, LOADBUILTIN, LOADCAPTURED, STORECAPTURED,
		GETATTR, SETATTR, DECLARELOCAL:
		if int(arg) < len(code.Names) {
			return fmt.Sprintf("%d ; %s", arg, code.Names[arg])
		}
	case IMPORT:
		if int(arg) < len(code.Imports) {
			return fmt.Sprintf("%d ; %s", arg, strings.Join(code.Imports[arg].Path, "."))
		}
	}
	return fmt.Sprintf("%d", arg)
}
