package compiler

import (
	"encoding/binary"

	"github.com/feint-lang/feint/lang/ast"
	"github.com/feint-lang/feint/lang/object"
	"github.com/feint-lang/feint/lang/token"
)

// pcomp holds state shared by every fcomp compiling within one module: the
// static errors accumulated so far and the set of names that are module
// globals (computed once, up front, so a forward reference to a
// not-yet-assigned global still resolves as LoadGlobal rather than
// LoadBuiltin).
type pcomp struct {
	moduleName string
	file       *token.File
	globals    map[string]bool
	errs       ErrorList
}

func (pc *pcomp) errf(kind ErrorKind, pos token.Pos, format string, args ...any) {
	pc.errs = append(pc.errs, newError(kind, pos, format, args...))
}

// loopCtx tracks the backpatch state of one enclosing loop expression.
type loopCtx struct {
	label        string
	continueAddr int
	breakPatches []int
}

// fcomp compiles a single function body (or a module's top-level body, when
// scope is nil) into an object.Code. It is a single-pass tree-walking
// emitter: scope resolution, constant/name interning, and bytecode emission
// all happen in one traversal instead of separate resolve/visit/linearize
// passes.
type fcomp struct {
	pcomp *pcomp
	scope *funcScope // nil for module-level code
	code  *object.Code

	isModule bool

	instr    []byte
	consts   []object.Value
	constIdx map[string]int
	names    []string
	nameIdx  map[string]int
	imports  []object.ImportSpec
	exported []string

	positions []object.PosEntry
	lastPos   token.Pos

	stack    int
	maxStack int

	loops []*loopCtx
}

func newFcomp(pc *pcomp, scope *funcScope, name, moduleName string) *fcomp {
	return &fcomp{
		pcomp:    pc,
		scope:    scope,
		code:     object.NewCode(name, moduleName),
		constIdx: make(map[string]int),
		nameIdx:  make(map[string]int),
	}
}

// CompileModule compiles a parsed chunk into the module's top-level Code.
// The module-globals prepass (spec.md §9) runs first so every top-level name
// is known before any statement is compiled, which is what lets a function
// defined early in a module call one defined later.
func CompileModule(moduleName string, file *token.File, chunk *ast.Chunk) (*object.Code, error) {
	pc := &pcomp{moduleName: moduleName, file: file, globals: make(map[string]bool)}
	collectModuleGlobals(chunk.Block, pc.globals)

	fe := newFcomp(pc, nil, moduleName, moduleName)
	fe.isModule = true
	fe.compileBlockTail(chunk.Block)
	fe.emit(RETURN, token.NoPos)

	code := fe.finish()
	if len(pc.errs) > 0 {
		return nil, pc.errs
	}
	return code, nil
}

func (fe *fcomp) finish() *object.Code {
	c := fe.code
	c.Instructions = fe.instr
	c.Constants = fe.consts
	c.Names = fe.names
	c.MaxStack = fe.maxStack
	c.Positions = fe.positions
	c.Imports = fe.imports
	c.Exported = fe.exported
	if fe.scope != nil {
		c.NumLocals = len(fe.scope.localNames)
		c.LocalNames = fe.scope.localNames
		c.CellLocals = fe.scope.cellOrder
		c.Captures = fe.scope.captureOrder
	}
	return c
}

func posOf(n ast.Node) token.Pos {
	s, _ := n.Span()
	return s
}

// --- byte-stream emission -------------------------------------------------

func (fe *fcomp) markPos(pos token.Pos) {
	if pos.IsValid() && pos != fe.lastPos {
		fe.positions = append(fe.positions, object.PosEntry{Addr: len(fe.instr), Pos: pos})
		fe.lastPos = pos
	}
}

func (fe *fcomp) applyDelta(delta int) {
	fe.stack += delta
	if fe.stack > fe.maxStack {
		fe.maxStack = fe.stack
	}
}

func (fe *fcomp) applyOpEffect(op Opcode) {
	se := stackEffect[op]
	if int(se) == variableStackEffect {
		return
	}
	fe.applyDelta(int(se))
}

func addUint32Var(code []byte, x uint32) []byte {
	for x >= 0x80 {
		code = append(code, byte(x)|0x80)
		x >>= 7
	}
	return append(code, byte(x))
}

// emit writes a zero-argument opcode.
func (fe *fcomp) emit(op Opcode, pos token.Pos) {
	fe.markPos(pos)
	fe.instr = append(fe.instr, byte(op))
	fe.applyOpEffect(op)
}

// emitArg writes an opcode with a varint-encoded argument (non-jump
// opcodes above OpcodeArgMin).
func (fe *fcomp) emitArg(op Opcode, arg uint32, pos token.Pos) {
	fe.markPos(pos)
	fe.instr = append(fe.instr, byte(op))
	fe.instr = addUint32Var(fe.instr, arg)
	fe.applyOpEffect(op)
}

// emitBuild writes a CALL/BUILD* opcode whose stack effect depends on its
// operand; the caller supplies the already-computed delta.
func (fe *fcomp) emitBuild(op Opcode, n int, delta int, pos token.Pos) {
	fe.markPos(pos)
	fe.instr = append(fe.instr, byte(op))
	fe.instr = addUint32Var(fe.instr, uint32(n))
	fe.applyDelta(delta)
}

// emitJump reserves a fixed 4-byte jump target, returning the byte offset to
// patch once the destination address is known.
func (fe *fcomp) emitJump(op Opcode, pos token.Pos) int {
	fe.markPos(pos)
	fe.instr = append(fe.instr, byte(op))
	at := len(fe.instr)
	fe.instr = append(fe.instr, 0, 0, 0, 0)
	fe.applyOpEffect(op)
	return at
}

func (fe *fcomp) emitJumpTo(op Opcode, target int, pos token.Pos) {
	at := fe.emitJump(op, pos)
	fe.patchJump(at, target)
}

func (fe *fcomp) patchJump(at, target int) {
	binary.LittleEndian.PutUint32(fe.instr[at:at+4], uint32(target))
}

func (fe *fcomp) internName(name string) uint32 {
	if idx, ok := fe.nameIdx[name]; ok {
		return uint32(idx)
	}
	idx := len(fe.names)
	fe.names = append(fe.names, name)
	fe.nameIdx[name] = idx
	return uint32(idx)
}

// internConst deduplicates literal constants by key; key == "" (object.Code
// constants from nested function literals) always appends fresh, since two
// textually identical function bodies are still distinct closures.
func (fe *fcomp) internConst(v object.Value, key string) uint32 {
	if key != "" {
		if idx, ok := fe.constIdx[key]; ok {
			return uint32(idx)
		}
	}
	idx := len(fe.consts)
	fe.consts = append(fe.consts, v)
	if key != "" {
		fe.constIdx[key] = idx
	}
	return uint32(idx)
}

func (fe *fcomp) pushConst(v object.Value, key string, pos token.Pos) {
	idx := fe.internConst(v, key)
	fe.emitArg(PUSH, idx, pos)
}

func (fe *fcomp) pushAlways() {
	fe.pushConst(object.AlwaysValue, "always", token.NoPos)
}

// --- name load/store -------------------------------------------------------

func (fe *fcomp) loadName(name string, pos token.Pos) {
	if fe.isModule {
		if fe.pcomp.globals[name] {
			fe.emitArg(LOADGLOBAL, fe.internName(name), pos)
		} else {
			fe.emitArg(LOADBUILTIN, fe.internName(name), pos)
		}
		return
	}
	res := fe.scope.resolve(name)
	switch res.kind {
	case resLocal:
		fe.emitArg(LOADLOCAL, uint32(res.slot), pos)
	case resCaptured:
		fe.emitArg(LOADCAPTURED, fe.internName(name), pos)
	case resGlobal:
		fe.emitArg(LOADGLOBAL, fe.internName(name), pos)
	case resBuiltin:
		fe.emitArg(LOADBUILTIN, fe.internName(name), pos)
	}
}

func (fe *fcomp) storeName(name string, pos token.Pos) {
	if fe.isModule {
		fe.emitArg(STOREGLOBAL, fe.internName(name), pos)
		return
	}
	res := fe.scope.resolve(name)
	switch res.kind {
	case resLocal:
		fe.emitArg(STORELOCAL, uint32(res.slot), pos)
	case resCaptured:
		fe.emitArg(STORECAPTURED, fe.internName(name), pos)
	case resGlobal:
		fe.emitArg(STOREGLOBAL, fe.internName(name), pos)
	case resBuiltin:
		fe.pcomp.errf(NameError, pos, "cannot assign to builtin %q", name)
	}
}

// --- statements --------------------------------------------------------

// compileBlock compiles every statement of block for effect only; the
// block's own value (if any) is discarded. Used for loop bodies, where the
// loop itself supplies the expression value once it exits.
func (fe *fcomp) compileBlock(block *ast.Block) {
	for _, s := range block.Stmts {
		fe.compileStmtDiscard(s)
	}
}

// compileBlockTail compiles block so that exactly one value representing
// the block is left on the stack, per FeInt's expression-oriented grammar:
// every statement but the last executes for effect; the last, if a bare
// expression statement, supplies the block's value, otherwise the block's
// value is object.AlwaysValue.
func (fe *fcomp) compileBlockTail(block *ast.Block) {
	stmts := block.Stmts
	if len(stmts) == 0 {
		fe.pushAlways()
		return
	}
	for _, s := range stmts[:len(stmts)-1] {
		fe.compileStmtDiscard(s)
	}
	last := stmts[len(stmts)-1]
	if last.BlockEnding() {
		// return/break/continue/jump: unreachable code follows, no value
		// needs to be balanced onto the stack.
		fe.compileStmtDiscard(last)
		return
	}
	if es, ok := last.(*ast.ExprStmt); ok {
		fe.compileExpr(es.Expr)
		return
	}
	fe.compileStmtDiscard(last)
	fe.pushAlways()
}

func (fe *fcomp) compileStmtDiscard(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		fe.compileExpr(s.Expr)
		fe.emit(POP, posOf(s))
	case *ast.AssignStmt:
		fe.compileAssign(s)
	case *ast.ImportStmt:
		fe.compileImport(s)
	case *ast.FromImportStmt:
		fe.compileFromImport(s)
	case *ast.PackageStmt:
		// no instruction is emitted; modules are named by their import path,
		// and the loader does not read the package statement.
	case *ast.ExportStmt:
		fe.compileExport(s)
	case *ast.ReturnStmt:
		fe.compileReturn(s)
	case *ast.BreakStmt:
		fe.compileBreak(s)
	case *ast.ContinueStmt:
		fe.compileContinue(s)
	case *ast.JumpStmt:
		fe.compileJump(s)
	case *ast.BadStmt:
		// the parser already reported this statement; nothing to emit.
	}
}

func (fe *fcomp) compileAssign(s *ast.AssignStmt) {
	target := ast.Unwrap(s.Left)
	if !ast.IsAssignable(target) {
		fe.pcomp.errf(InvalidAssignmentTarget, posOf(s.Left), "invalid assignment target")
		return
	}
	switch t := target.(type) {
	case *ast.IdentExpr:
		fe.compileExprNamed(s.Right, t.Lit)
		fe.storeName(t.Lit, t.Start)
	case *ast.DotExpr:
		fe.compileExpr(t.Left)
		fe.compileExpr(s.Right)
		fe.emitArg(SETATTR, fe.internName(t.Right.Lit), posOf(s))
	case *ast.IndexExpr:
		fe.compileExpr(t.Prefix)
		fe.compileExpr(t.Index)
		fe.compileExpr(s.Right)
		fe.emit(SETITEM, posOf(s))
	}
}

// compileExprNamed compiles an assignment's right-hand side, threading the
// target name through to function/loop literals so their debug name and
// implicit label come from the assignment rather than being anonymous.
func (fe *fcomp) compileExprNamed(expr ast.Expr, name string) {
	switch e := ast.Unwrap(expr).(type) {
	case *ast.FuncExpr:
		fe.compileFuncExprValue(e, name)
	case *ast.LoopExpr:
		fe.compileLoopValue(e, name)
	default:
		fe.compileExpr(expr)
	}
}

func (fe *fcomp) compileImport(s *ast.ImportStmt) {
	path := make([]string, len(s.Path))
	for i, p := range s.Path {
		path[i] = p.Lit
	}
	as := ""
	if len(path) > 0 {
		as = path[len(path)-1]
	}
	if s.Alias != nil {
		as = s.Alias.Lit
	}
	idx := len(fe.imports)
	fe.imports = append(fe.imports, object.ImportSpec{
		Path:     path,
		Bindings: []object.ImportBinding{{Name: "", As: as}},
	})
	fe.emitArg(IMPORT, uint32(idx), s.Import)
}

func (fe *fcomp) compileFromImport(s *ast.FromImportStmt) {
	path := make([]string, len(s.Path))
	for i, p := range s.Path {
		path[i] = p.Lit
	}
	bindings := make([]object.ImportBinding, len(s.Names))
	for i, name := range s.Names {
		as := name.Lit
		if i < len(s.Aliases) && s.Aliases[i] != nil {
			as = s.Aliases[i].Lit
		}
		bindings[i] = object.ImportBinding{Name: name.Lit, As: as}
	}
	idx := len(fe.imports)
	fe.imports = append(fe.imports, object.ImportSpec{Path: path, Bindings: bindings})
	fe.emitArg(IMPORT, uint32(idx), s.From)
}

func (fe *fcomp) compileExport(s *ast.ExportStmt) {
	if !fe.isModule {
		fe.pcomp.errf(ExportOutsideModule, posOf(s), "export is only valid at module scope")
	}
	if as, ok := s.Stmt.(*ast.AssignStmt); ok {
		if id, ok := ast.Unwrap(as.Left).(*ast.IdentExpr); ok {
			fe.exported = append(fe.exported, id.Lit)
		}
	}
	fe.compileStmtDiscard(s.Stmt)
}

func (fe *fcomp) compileReturn(s *ast.ReturnStmt) {
	if s.Value != nil {
		fe.compileExpr(s.Value)
	} else {
		fe.pushConst(object.NilValue, "nil", s.Return)
	}
	fe.emit(RETURN, s.Return)
}

func (fe *fcomp) compileBreak(s *ast.BreakStmt) {
	if len(fe.loops) == 0 {
		fe.pcomp.errf(BreakOutsideLoop, s.Break, "break outside loop")
		return
	}
	lc := fe.loops[len(fe.loops)-1]
	at := fe.emitJump(JUMP, s.Break)
	lc.breakPatches = append(lc.breakPatches, at)
}

func (fe *fcomp) compileContinue(s *ast.ContinueStmt) {
	if len(fe.loops) == 0 {
		fe.pcomp.errf(ContinueOutsideLoop, s.Continue, "continue outside loop")
		return
	}
	lc := fe.loops[len(fe.loops)-1]
	fe.emitJumpTo(JUMP, lc.continueAddr, s.Continue)
}

func (fe *fcomp) compileJump(s *ast.JumpStmt) {
	var target *loopCtx
	if s.Label == nil {
		if len(fe.loops) > 0 {
			target = fe.loops[len(fe.loops)-1]
		}
	} else {
		for i := len(fe.loops) - 1; i >= 0; i-- {
			if fe.loops[i].label == s.Label.Lit {
				target = fe.loops[i]
				break
			}
		}
	}
	if target == nil {
		name := "<innermost>"
		if s.Label != nil {
			name = s.Label.Lit
		}
		fe.pcomp.errf(JumpOutsideLoop, s.Jump, "no enclosing loop named %q", name)
		return
	}
	fe.emitJumpTo(JUMP, target.continueAddr, s.Jump)
}

// --- expressions -------------------------------------------------------

func (fe *fcomp) compileExpr(expr ast.Expr) {
	e := ast.Unwrap(expr)
	switch n := e.(type) {
	case *ast.LiteralExpr:
		fe.compileLiteral(n)
	case *ast.FormatStringExpr:
		fe.compileFormatString(n)
	case *ast.IdentExpr:
		fe.loadName(n.Lit, n.Start)
	case *ast.BuiltinExpr:
		fe.compileBuiltin(n)
	case *ast.AtNameExpr:
		fe.compileAtName(n)
	case *ast.UnaryOpExpr:
		fe.compileUnary(n)
	case *ast.BinOpExpr:
		fe.compileBinOp(n)
	case *ast.CallExpr:
		fe.compileCall(n)
	case *ast.DotExpr:
		fe.compileExpr(n.Left)
		fe.emitArg(GETATTR, fe.internName(n.Right.Lit), n.Dot)
	case *ast.IndexExpr:
		fe.compileExpr(n.Prefix)
		fe.compileExpr(n.Index)
		fe.emit(GETITEM, n.Lbrack)
	case *ast.ArrayLikeExpr:
		fe.compileArrayLike(n)
	case *ast.MapExpr:
		fe.compileMap(n)
	case *ast.FuncExpr:
		fe.compileFuncExprValue(n, "")
	case *ast.IfExpr:
		fe.compileIf(n)
	case *ast.LoopExpr:
		fe.compileLoopValue(n, "")
	case *ast.BlockExpr:
		fe.compileBlockTail(n.Body)
	default:
		fe.pushAlways()
	}
}

func (fe *fcomp) compileLiteral(lit *ast.LiteralExpr) {
	switch lit.Type {
	case token.NIL:
		fe.pushConst(object.NilValue, "nil", lit.Start)
	case token.TRUE:
		fe.pushConst(object.True, "bool:true", lit.Start)
	case token.FALSE:
		fe.pushConst(object.False, "bool:false", lit.Start)
	case token.INT:
		fe.pushConst(&object.Int{V: lit.Int}, "int:"+lit.Int.String(), lit.Start)
	case token.FLOAT:
		fe.pushConst(object.NewFloat(lit.Float), "float:"+lit.Raw, lit.Start)
	case token.STRING:
		fe.pushConst(object.String(lit.Str), "string:"+lit.Str, lit.Start)
	}
}

// compileFormatString interleaves each literal chunk with its interpolated
// expression and joins all of them with a single BuildString.
func (fe *fcomp) compileFormatString(fx *ast.FormatStringExpr) {
	n := 0
	for i, chunk := range fx.Chunks {
		fe.pushConst(object.String(chunk), "string:"+chunk, fx.Start)
		n++
		if i < len(fx.Exprs) {
			fe.compileExpr(fx.Exprs[i])
			n++
		}
	}
	if n == 0 {
		fe.pushConst(object.String(""), "string:", fx.Start)
		n = 1
	}
	fe.emitBuild(BUILDSTRING, n, 1-n, fx.Start)
}

// compileBuiltin loads a `$name` builtin reference; inside a variadic
// function, `$args` resolves through the ordinary local/capture chain like
// any other name instead of always hitting LoadBuiltin.
func (fe *fcomp) compileBuiltin(n *ast.BuiltinExpr) {
	if n.Name == "args" && fe.scope != nil {
		res := fe.scope.resolve("$args")
		switch res.kind {
		case resLocal:
			fe.emitArg(LOADLOCAL, uint32(res.slot), n.Start)
			return
		case resCaptured:
			fe.emitArg(LOADCAPTURED, fe.internName("$args"), n.Start)
			return
		}
	}
	fe.emitArg(LOADBUILTIN, fe.internName(n.Name), n.Start)
}

// compileAtName compiles `@name` as sugar for an attribute read off the
// enclosing method's implicit receiver, bound under the reserved name
// "self".
func (fe *fcomp) compileAtName(n *ast.AtNameExpr) {
	fe.loadName("self", n.Start)
	fe.emitArg(GETATTR, fe.internName(n.Name), n.Start)
}

func (fe *fcomp) compileUnary(n *ast.UnaryOpExpr) {
	fe.compileExpr(n.Right)
	switch n.Type {
	case token.NOT:
		fe.emit(NOT, n.Op)
	case token.MINUS:
		fe.emitArg(UNARYOP, uint32(n.Type), n.Op)
	}
}

func (fe *fcomp) compileBinOp(n *ast.BinOpExpr) {
	switch n.Type {
	case token.AND:
		fe.compileShortCircuit(n, JUMPIFFALSE)
	case token.OR:
		fe.compileShortCircuit(n, JUMPIFTRUE)
	case token.IS:
		fe.compileExpr(n.Left)
		fe.compileExpr(n.Right)
		fe.emit(ISOP, n.Op)
	case token.EQEQ, token.BANGEQ, token.LT, token.LE, token.GT, token.GE:
		fe.compileExpr(n.Left)
		fe.compileExpr(n.Right)
		fe.emitArg(COMPAREOP, uint32(n.Type), n.Op)
	default:
		fe.compileExpr(n.Left)
		fe.compileExpr(n.Right)
		fe.emitArg(BINARYOP, uint32(n.Type), n.Op)
	}
}

// compileShortCircuit compiles `x and y` / `x or y`. Both leave x itself on
// the stack when it already decides the result (false for and, true for
// or), only falling through to evaluate y when x doesn't short-circuit.
func (fe *fcomp) compileShortCircuit(n *ast.BinOpExpr, testOp Opcode) {
	fe.compileExpr(n.Left)
	fe.emit(DUP, n.Op)
	at := fe.emitJump(testOp, n.Op)
	fe.emit(POP, n.Op)
	fe.compileExpr(n.Right)
	fe.patchJump(at, len(fe.instr))
}

func (fe *fcomp) compileCall(n *ast.CallExpr) {
	fe.compileExpr(n.Fn)
	for _, a := range n.Args {
		fe.compileExpr(a)
	}
	fe.emitBuild(CALL, len(n.Args), -len(n.Args), n.Lparen)
}

func (fe *fcomp) compileArrayLike(n *ast.ArrayLikeExpr) {
	for _, it := range n.Items {
		fe.compileExpr(it)
	}
	op := BUILDLIST
	if n.Type == token.LPAREN {
		op = BUILDTUPLE
	}
	fe.emitBuild(op, len(n.Items), 1-len(n.Items), n.Left)
}

func (fe *fcomp) compileMap(n *ast.MapExpr) {
	for _, kv := range n.Items {
		fe.compileExpr(kv.Key)
		fe.compileExpr(kv.Value)
	}
	fe.emitBuild(BUILDMAP, len(n.Items), 1-2*len(n.Items), n.Lbrace)
}

// compileFuncExprValue compiles a nested function literal and leaves the
// resulting function (or closure, if it captures anything) on the stack.
// name, when non-empty, comes from the enclosing `name = (params) => ...` assignment
// and becomes the function's debug name.
func (fe *fcomp) compileFuncExprValue(fx *ast.FuncExpr, name string) {
	child := newFuncScope(fe.scope, fe.pcomp)
	codeName := name
	if codeName == "" {
		codeName = "<anonymous>"
	}
	cfe := newFcomp(fe.pcomp, child, codeName, fe.code.ModuleName)

	seenParam := make(map[string]bool, len(fx.Sig.Params))
	paramNames := make([]string, 0, len(fx.Sig.Params)+1)
	for _, p := range fx.Sig.Params {
		if seenParam[p.Lit] {
			fe.pcomp.errf(DuplicateParam, p.Start, "duplicate parameter %q", p.Lit)
			continue
		}
		seenParam[p.Lit] = true
		child.declareLocal(p.Lit)
		paramNames = append(paramNames, p.Lit)
	}
	if fx.Sig.Variadic {
		child.declareLocal("$args")
		paramNames = append(paramNames, "")
	}
	cfe.code.ParamNames = paramNames
	numParamSlots := len(child.localNames)

	locals := newNameSet()
	collectFuncLocals(fx.Body, locals)
	for _, ln := range locals.order {
		// a name an enclosing function already declares stays that
		// function's variable and resolves as a capture, not a new local
		outer := false
		for p := fe.scope; p != nil && !outer; p = p.parent {
			_, outer = p.locals[ln]
		}
		if !outer {
			child.declareLocal(ln)
		}
	}

	for slot := numParamSlots; slot < len(child.localNames); slot++ {
		cfe.emitArg(DECLARELOCAL, cfe.internName(child.localNames[slot]), token.NoPos)
	}

	cfe.compileBlockTail(fx.Body)
	cfe.emit(RETURN, fx.End)

	code := cfe.finish()

	idx := fe.internConst(code, "")
	fe.emitArg(MAKEFUNC, idx, fx.Sig.Lparen)
	if len(child.captureOrder) > 0 {
		fe.emitArg(MAKECLOSURE, uint32(len(child.captureOrder)), fx.Sig.Lparen)
	}
}

// compileIf compiles an if/elseif/else chain as a single expression: both
// arms push exactly one value, so the stack depth is reset to the
// pre-branch depth before compiling the alternate arm (it never actually
// executes both in the same run, but the tracker otherwise sees them as
// sequential).
func (fe *fcomp) compileIf(n *ast.IfExpr) {
	fe.compileExpr(n.Cond)
	atFalse := fe.emitJump(JUMPIFFALSE, n.If)
	pre := fe.stack

	fe.compileBlockTail(n.Then)
	atEnd := fe.emitJump(JUMP, n.End)

	fe.patchJump(atFalse, len(fe.instr))
	fe.stack = pre

	switch {
	case n.ElseIf != nil:
		fe.compileIf(n.ElseIf)
	case n.ElseBlock != nil:
		fe.compileBlockTail(n.ElseBlock)
	default:
		fe.pushAlways()
	}

	fe.patchJump(atEnd, len(fe.instr))
}

// compileLoopValue compiles a `loop -> ...` expression. The loop body
// executes purely for effect; break/continue/jump backpatch into it; the
// loop's own value, once it exits, is always object.AlwaysValue.
func (fe *fcomp) compileLoopValue(n *ast.LoopExpr, label string) {
	start := len(fe.instr)
	lc := &loopCtx{label: label, continueAddr: start}
	fe.loops = append(fe.loops, lc)

	pre := fe.stack
	fe.compileBlock(n.Body)
	fe.emitJumpTo(JUMP, start, n.End)
	fe.stack = pre

	end := len(fe.instr)
	for _, at := range lc.breakPatches {
		fe.patchJump(at, end)
	}
	fe.loops = fe.loops[:len(fe.loops)-1]

	fe.pushAlways()
}
