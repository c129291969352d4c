package machine

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/feint-lang/feint/lang/compiler"
	"github.com/feint-lang/feint/lang/object"
	"github.com/feint-lang/feint/lang/token"
)

// Call invokes callee with the given positional arguments, dispatching by
// the callee's concrete type per spec.md §4.4's Call protocol.
func Call(th *Thread, callee object.Value, args []object.Value) (object.Value, error) {
	switch c := callee.(type) {
	case *object.IntrinsicFunc:
		return callIntrinsic(c, args)
	case *object.Function:
		return callFunction(th, c, nil, args)
	case *object.Closure:
		return callFunction(th, c.Fn, c, args)
	case *object.BoundFunc:
		full := make([]object.Value, 0, len(args)+1)
		full = append(full, c.This)
		full = append(full, args...)
		return Call(th, c.Fn, full)
	case *object.Type:
		return callConstructor(th, c, args)
	default:
		return nil, object.NewError(object.NotCallable, "%s is not callable", callee.Type())
	}
}

func callIntrinsic(fn *object.IntrinsicFunc, args []object.Value) (object.Value, error) {
	if err := checkArity(fn.NameStr, fn.NumParams, fn.Variadic, len(args)); err != nil {
		return nil, err
	}
	v, err := fn.Fn(args)
	if err != nil {
		if oe, ok := err.(*object.Error); ok {
			return nil, oe
		}
		return nil, object.NewError(object.TypeError, "%s", err)
	}
	return v, nil
}

// callConstructor implements a type descriptor as the callee of Call: it
// allocates a bare instance and, if the type declares a "new" method, invokes
// it bound to that instance for its side effects before returning it.
func callConstructor(th *Thread, t *object.Type, args []object.Value) (object.Value, error) {
	inst := object.NewCustomObject(t)
	if v, ok := t.Attrs.Get("new"); ok {
		if ctor, ok := v.(object.Callable); ok {
			if _, err := Call(th, &object.BoundFunc{Fn: ctor, This: inst}, args); err != nil {
				return nil, err
			}
		}
	}
	return inst, nil
}

// callFunction pushes a new Frame for fn (boxing cell locals, binding
// arguments per spec.md §4.4's arity rules) and runs its dispatch loop to
// completion.
func callFunction(th *Thread, fn *object.Function, closure *object.Closure, args []object.Value) (object.Value, error) {
	code := fn.CodeObj

	if th.MaxCallDepth > 0 && len(th.callStack) >= th.MaxCallDepth {
		return nil, object.NewError(object.RecursionDepthExceeded, "maximum call depth of %d exceeded", th.MaxCallDepth)
	}

	locals := make([]object.Value, code.NumLocals)
	if err := bindArgs(locals, code, args); err != nil {
		return nil, err
	}
	for _, slot := range code.CellLocals {
		locals[slot] = &object.Cell{V: locals[slot]}
	}

	fr := &Frame{fn: fn, closure: closure, locals: locals, stack: make([]object.Value, code.MaxStack)}
	th.callStack = append(th.callStack, fr)
	defer func() { th.callStack = th.callStack[:len(th.callStack)-1] }()

	result, err := run(th, fr)
	if err != nil {
		if oe, ok := err.(*object.Error); ok {
			oe.Trace = append(oe.Trace, fr.traceEntry(th))
		}
		return nil, err
	}
	return result, nil
}

func checkArity(name string, numParams int, variadic bool, nargs int) error {
	required := numParams
	if variadic {
		required--
		if nargs < required {
			return object.NewError(object.ArgCountError, "function %s requires at least %d arguments (%d given)", name, required, nargs)
		}
		return nil
	}
	if nargs != required {
		return object.NewError(object.ArgCountError, "function %s accepts %d arguments (%d given)", name, required, nargs)
	}
	return nil
}

// bindArgs binds positional args into locals per the code's parameter list,
// collecting surplus arguments into a tuple for the trailing variadic slot
// (code.ParamNames' last entry being "" marks a variadic function; the local
// itself is still declared and named "$args" by the compiler).
func bindArgs(locals []object.Value, code *object.Code, args []object.Value) error {
	if err := checkArity(code.Name, code.NumParams(), code.Variadic(), len(args)); err != nil {
		return err
	}
	required := code.NumParams()
	if code.Variadic() {
		required--
	}
	for i := 0; i < required; i++ {
		locals[i] = args[i]
	}
	if code.Variadic() {
		rest := make([]object.Value, len(args)-required)
		copy(rest, args[required:])
		locals[required] = object.NewTuple(rest)
	}
	return nil
}

func (fr *Frame) traceEntry(th *Thread) string {
	name := fr.Name()
	if mod := fr.fn.Module; mod != nil && mod.NameStr != "" {
		name = mod.NameStr + "." + name
	}
	if th.Fset != nil {
		if pos := th.Fset.Position(fr.Pos()); pos.IsValid() {
			return fmt.Sprintf("%s (%s)", name, pos)
		}
	}
	return name
}

func localName(code *object.Code, slot uint32) string {
	if int(slot) < len(code.LocalNames) {
		return code.LocalNames[slot]
	}
	return fmt.Sprintf("<slot %d>", slot)
}

// decodeArg reads a varint-encoded instruction operand starting at pc,
// mirroring the compiler's own addUint32Var encoding.
func decodeArg(code []byte, pc int) (arg uint32, next int) {
	var shift uint
	for {
		b := code[pc]
		pc++
		arg |= uint32(b&0x7f) << shift
		if b < 0x80 {
			break
		}
		shift += 7
	}
	return arg, pc
}

func isJumpOp(op compiler.Opcode) bool {
	return op >= compiler.JUMP && op <= compiler.JUMPIFNIL
}

// run executes fr's instruction stream to completion: a Return instruction
// or an unhandled runtime error. fr is assumed already pushed onto
// th.callStack by the caller (callFunction).
func run(th *Thread, fr *Frame) (object.Value, error) { //nolint:gocyclo
	code := fr.code()
	instr := code.Instructions

	var inFlightErr error
	var result object.Value

loop:
	for {
		op := compiler.Opcode(instr[fr.pc])
		fr.pc++

		var arg uint32
		switch {
		case op < compiler.OpcodeArgMin:
			// no operand
		case isJumpOp(op):
			arg = binary.LittleEndian.Uint32(instr[fr.pc : fr.pc+4])
			fr.pc += 4
		default:
			var n int
			arg, n = decodeArg(instr, fr.pc)
			fr.pc += n
		}

		switch op {
		case compiler.NOP, compiler.DECLARELOCAL:
			// DeclareLocal exists only to give the disassembler a debug name
			// map; every local's slot is already allocated and, if cellular,
			// boxed at frame setup.

		case compiler.POP:
			fr.pop()

		case compiler.DUP:
			fr.push(fr.stack[fr.sp-1])

		case compiler.SWAP:
			fr.stack[fr.sp-1], fr.stack[fr.sp-2] = fr.stack[fr.sp-2], fr.stack[fr.sp-1]

		case compiler.GETITEM:
			key := fr.pop()
			recv := fr.pop()
			v, err := object.GetItem(recv, key)
			if err != nil {
				inFlightErr = err
				break loop
			}
			fr.push(v)

		case compiler.SETITEM:
			v := fr.pop()
			key := fr.pop()
			recv := fr.pop()
			if err := object.SetItem(recv, key, v); err != nil {
				inFlightErr = err
				break loop
			}

		case compiler.ISOP:
			y := fr.pop()
			x := fr.pop()
			fr.push(object.Bool(x == y))

		case compiler.NOT:
			fr.stack[fr.sp-1] = object.Bool(!fr.stack[fr.sp-1].Truth())

		case compiler.RETURN:
			result = fr.pop()
			break loop

		case compiler.PRINT:
			fmt.Fprintln(th.stdout(), fr.pop().String())

		case compiler.DEBUG:
			v := fr.pop()
			if th.Debug {
				fmt.Fprintln(th.stderr(), "debug: "+v.String())
			}

		case compiler.PUSH:
			fr.push(code.Constants[arg])

		case compiler.LOADLOCAL:
			v := fr.locals[arg]
			if c, ok := v.(*object.Cell); ok {
				v = c.V
			}
			if v == nil {
				inFlightErr = object.NewError(object.NameError, "local variable %s referenced before assignment", localName(code, arg))
				break loop
			}
			fr.push(v)

		case compiler.STORELOCAL:
			v := fr.pop()
			if c, ok := fr.locals[arg].(*object.Cell); ok {
				c.V = v
			} else {
				fr.locals[arg] = v
			}

		case compiler.LOADCAPTURED:
			name := code.Names[arg]
			c, ok := fr.closure.Captures[name]
			if !ok {
				inFlightErr = object.NewError(object.NameError, "internal error: %s is not a captured variable", name)
				break loop
			}
			if c.V == nil {
				inFlightErr = object.NewError(object.NameError, "captured variable %s referenced before assignment", name)
				break loop
			}
			fr.push(c.V)

		case compiler.STORECAPTURED:
			v := fr.pop()
			name := code.Names[arg]
			c, ok := fr.closure.Captures[name]
			if !ok {
				inFlightErr = object.NewError(object.NameError, "internal error: %s is not a captured variable", name)
				break loop
			}
			c.V = v

		case compiler.LOADGLOBAL:
			name := code.Names[arg]
			v, ok := fr.fn.Module.Globals.Get(name)
			if !ok {
				inFlightErr = object.NewError(object.NameError, "name %q is not defined", name)
				break loop
			}
			fr.push(v)

		case compiler.STOREGLOBAL:
			fr.fn.Module.Globals.Insert(code.Names[arg], fr.pop())

		case compiler.LOADBUILTIN:
			name := code.Names[arg]
			var v object.Value
			var ok bool
			if th.Builtins != nil {
				v, ok = th.Builtins.Get(name)
			}
			if !ok {
				inFlightErr = object.NewError(object.NameError, "name %q is not defined", name)
				break loop
			}
			fr.push(v)

		case compiler.GETATTR:
			recv := fr.pop()
			v, err := object.GetAttr(recv, code.Names[arg])
			if err != nil {
				inFlightErr = err
				break loop
			}
			fr.push(v)

		case compiler.SETATTR:
			v := fr.pop()
			recv := fr.pop()
			if err := object.SetAttr(recv, code.Names[arg], v); err != nil {
				inFlightErr = err
				break loop
			}

		case compiler.UNARYOP:
			x := fr.pop()
			v, err := object.Unary(token.Token(arg), x)
			if err != nil {
				inFlightErr = err
				break loop
			}
			fr.push(v)

		case compiler.BINARYOP:
			y := fr.pop()
			x := fr.pop()
			v, err := object.Binary(token.Token(arg), x, y)
			if err != nil {
				inFlightErr = err
				break loop
			}
			fr.push(v)

		case compiler.COMPAREOP:
			y := fr.pop()
			x := fr.pop()
			v, err := object.Compare(token.Token(arg), x, y)
			if err != nil {
				inFlightErr = err
				break loop
			}
			fr.push(v)

		case compiler.JUMP:
			fr.pc = int(arg)

		case compiler.JUMPIFTRUE:
			if fr.pop().Truth() {
				fr.pc = int(arg)
			}

		case compiler.JUMPIFFALSE:
			if !fr.pop().Truth() {
				fr.pc = int(arg)
			}

		case compiler.JUMPIFNIL:
			if _, ok := fr.pop().(object.Nil); ok {
				fr.pc = int(arg)
			}

		case compiler.CALL:
			n := int(arg)
			callArgs := make([]object.Value, n)
			copy(callArgs, fr.stack[fr.sp-n:fr.sp])
			fr.sp -= n
			callee := fr.pop()
			v, err := Call(th, callee, callArgs)
			if err != nil {
				inFlightErr = err
				break loop
			}
			fr.push(v)

		case compiler.MAKEFUNC:
			fnCode, ok := code.Constants[arg].(*object.Code)
			if !ok {
				inFlightErr = object.NewError(object.TypeError, "internal error: constant %d is not a function body", arg)
				break loop
			}
			fr.push(&object.Function{CodeObj: fnCode, Module: fr.fn.Module})

		case compiler.MAKECLOSURE:
			fnVal, ok := fr.pop().(*object.Function)
			if !ok {
				inFlightErr = object.NewError(object.TypeError, "internal error: MakeClosure operand is not a function")
				break loop
			}
			captures := make(map[string]*object.Cell, len(fnVal.CodeObj.Captures))
			var missing string
			for _, name := range fnVal.CodeObj.Captures {
				c, ok := fr.cellFor(name)
				if !ok {
					missing = name
					break
				}
				captures[name] = c
			}
			if missing != "" {
				inFlightErr = object.NewError(object.NameError, "internal error: no cell for captured variable %s", missing)
				break loop
			}
			fr.push(&object.Closure{Fn: fnVal, Captures: captures})

		case compiler.BUILDTUPLE:
			n := int(arg)
			elems := make([]object.Value, n)
			copy(elems, fr.stack[fr.sp-n:fr.sp])
			fr.sp -= n
			fr.push(object.NewTuple(elems))

		case compiler.BUILDLIST:
			n := int(arg)
			elems := make([]object.Value, n)
			copy(elems, fr.stack[fr.sp-n:fr.sp])
			fr.sp -= n
			fr.push(object.NewList(elems))

		case compiler.BUILDMAP:
			n := int(arg)
			m := object.NewMap(n)
			base := fr.sp - 2*n
			for i := 0; i < n; i++ {
				if err := m.SetKey(fr.stack[base+2*i], fr.stack[base+2*i+1]); err != nil {
					inFlightErr = err
					break loop
				}
			}
			fr.sp = base
			fr.push(m)

		case compiler.BUILDSTRING:
			n := int(arg)
			var b strings.Builder
			for _, v := range fr.stack[fr.sp-n : fr.sp] {
				b.WriteString(v.String())
			}
			fr.sp -= n
			fr.push(object.String(b.String()))

		case compiler.IMPORT:
			spec := code.Imports[arg]
			if th.Load == nil {
				inFlightErr = object.NewError(object.ImportError, "imports are not supported by this thread")
				break loop
			}
			mod, err := th.Load(th, spec.Path)
			if err != nil {
				inFlightErr = object.NewError(object.ImportError, "%s", err)
				break loop
			}
			for _, b := range spec.Bindings {
				if b.Name == "" {
					fr.fn.Module.Globals.Insert(b.As, mod)
					continue
				}
				v, ok := mod.Globals.Get(b.Name)
				if !ok {
					inFlightErr = object.NewError(object.ImportError, "module %s has no exported name %q", strings.Join(spec.Path, "."), b.Name)
					break loop
				}
				fr.fn.Module.Globals.Insert(b.As, v)
			}

		case compiler.HALT:
			inFlightErr = &object.Error{Kind: object.ExitError, Msg: fmt.Sprintf("exit(%d)", arg), Code: int(arg)}
			break loop

		default:
			panic(fmt.Sprintf("unimplemented opcode: %s", op))
		}
	}

	if inFlightErr != nil {
		return nil, inFlightErr
	}
	return result, nil
}
