package compiler

import (
	"github.com/feint-lang/feint/lang/ast"
)

// resKind classifies how a name resolves, per the four-tier lookup the
// compiler now performs directly (local slot, an enclosing function's
// boxed local reached through a chain of captures, a module global, or a
// builtin) since scope resolution is no longer a separate pass.
type resKind int

const (
	resLocal resKind = iota
	resCaptured
	resGlobal
	resBuiltin
)

type resolution struct {
	kind resKind
	slot int
	name string
}

// funcScope holds the compile-time bookkeeping for a single function body:
// its local slots, which of those slots are boxed as cells because an inner
// function captures them, and the free variables this function itself
// receives from an enclosing one.
type funcScope struct {
	parent *funcScope
	pcomp  *pcomp

	locals     map[string]int
	localNames []string // slot -> name, parallel to locals' values

	cellSet   map[int]bool // subset of local slots boxed as cells
	cellOrder []int

	captureSet   map[string]bool
	captureOrder []string
}

func newFuncScope(parent *funcScope, pcomp *pcomp) *funcScope {
	return &funcScope{
		parent:     parent,
		pcomp:      pcomp,
		locals:     make(map[string]int),
		cellSet:    make(map[int]bool),
		captureSet: make(map[string]bool),
	}
}

// declareLocal allocates a new slot for name if it doesn't already have one,
// returning its slot.
func (fs *funcScope) declareLocal(name string) int {
	if slot, ok := fs.locals[name]; ok {
		return slot
	}
	slot := len(fs.localNames)
	fs.locals[name] = slot
	fs.localNames = append(fs.localNames, name)
	return slot
}

func (fs *funcScope) markCell(slot int) {
	if !fs.cellSet[slot] {
		fs.cellSet[slot] = true
		fs.cellOrder = append(fs.cellOrder, slot)
	}
}

func (fs *funcScope) addCapture(name string) {
	if !fs.captureSet[name] {
		fs.captureSet[name] = true
		fs.captureOrder = append(fs.captureOrder, name)
	}
}

// resolve determines how a reference to name from within fs must be
// compiled. Climbing past an enclosing function's own local promotes that
// local to a cell in the owning scope and chains the capture through every
// intermediate function scope, so each frame can resolve it from its own
// cells or its own captures without the machine ever walking the call
// stack.
func (fs *funcScope) resolve(name string) resolution {
	if slot, ok := fs.locals[name]; ok {
		return resolution{kind: resLocal, slot: slot, name: name}
	}

	var chain []*funcScope
	for p := fs.parent; p != nil; p = p.parent {
		if slot, ok := p.locals[name]; ok {
			p.markCell(slot)
			for _, s := range chain {
				s.addCapture(name)
			}
			fs.addCapture(name)
			return resolution{kind: resCaptured, name: name}
		}
		if p.captureSet[name] {
			for _, s := range chain {
				s.addCapture(name)
			}
			fs.addCapture(name)
			return resolution{kind: resCaptured, name: name}
		}
		chain = append(chain, p)
	}

	if fs.pcomp.globals[name] {
		return resolution{kind: resGlobal, name: name}
	}
	return resolution{kind: resBuiltin, name: name}
}

// collectModuleGlobals scans a module's top-level block for every name that
// becomes a module global: assignment targets, import bindings, and names
// pulled in by a from-import. It does not descend into function literals,
// whose bodies have their own local scope, per spec.md §9's prepass.
func collectModuleGlobals(block *ast.Block, globals map[string]bool) {
	for _, stmt := range block.Stmts {
		collectGlobalsStmt(stmt, globals)
	}
}

func collectGlobalsStmt(stmt ast.Stmt, globals map[string]bool) {
	switch s := stmt.(type) {
	case *ast.AssignStmt:
		if id, ok := ast.Unwrap(s.Left).(*ast.IdentExpr); ok {
			globals[id.Lit] = true
		}
		collectGlobalsExpr(s.Right, globals)
	case *ast.ExprStmt:
		collectGlobalsExpr(s.Expr, globals)
	case *ast.ExportStmt:
		collectGlobalsStmt(s.Stmt, globals)
	case *ast.ImportStmt:
		if s.Alias != nil {
			globals[s.Alias.Lit] = true
		} else if len(s.Path) > 0 {
			globals[s.Path[len(s.Path)-1].Lit] = true
		}
	case *ast.FromImportStmt:
		for i, name := range s.Names {
			if i < len(s.Aliases) && s.Aliases[i] != nil {
				globals[s.Aliases[i].Lit] = true
			} else {
				globals[name.Lit] = true
			}
		}
	}
}

// collectGlobalsExpr looks for block-bearing expressions (if/loop/block)
// reachable from module scope without crossing a function literal boundary.
func collectGlobalsExpr(expr ast.Expr, globals map[string]bool) {
	switch e := ast.Unwrap(expr).(type) {
	case *ast.IfExpr:
		collectModuleGlobals(e.Then, globals)
		if e.ElseIf != nil {
			collectGlobalsExpr(e.ElseIf, globals)
		} else if e.ElseBlock != nil {
			collectModuleGlobals(e.ElseBlock, globals)
		}
	case *ast.LoopExpr:
		collectModuleGlobals(e.Body, globals)
	case *ast.BlockExpr:
		collectModuleGlobals(e.Body, globals)
	case *ast.BinOpExpr:
		collectGlobalsExpr(e.Left, globals)
		collectGlobalsExpr(e.Right, globals)
	case *ast.UnaryOpExpr:
		collectGlobalsExpr(e.Right, globals)
	case *ast.CallExpr:
		collectGlobalsExpr(e.Fn, globals)
		for _, a := range e.Args {
			collectGlobalsExpr(a, globals)
		}
	case *ast.DotExpr:
		collectGlobalsExpr(e.Left, globals)
	case *ast.IndexExpr:
		collectGlobalsExpr(e.Prefix, globals)
		collectGlobalsExpr(e.Index, globals)
	case *ast.ArrayLikeExpr:
		for _, it := range e.Items {
			collectGlobalsExpr(it, globals)
		}
	case *ast.MapExpr:
		for _, kv := range e.Items {
			collectGlobalsExpr(kv.Key, globals)
			collectGlobalsExpr(kv.Value, globals)
		}
	case *ast.FormatStringExpr:
		for _, sub := range e.Exprs {
			collectGlobalsExpr(sub, globals)
		}
		// *ast.FuncExpr is deliberately not descended into: its body is a
		// separate function scope with its own locals.
	}
}

// nameSet accumulates names in first-seen order, so slot assignment derived
// from it stays deterministic across recompiles of the same source.
type nameSet struct {
	seen  map[string]bool
	order []string
}

func newNameSet() *nameSet { return &nameSet{seen: make(map[string]bool)} }

func (s *nameSet) add(name string) {
	if !s.seen[name] {
		s.seen[name] = true
		s.order = append(s.order, name)
	}
}

// collectFuncLocals scans a function body (not descending into nested
// function literals) for every name assigned directly within it; those
// names, less any that an enclosing function already declares (which
// resolve as captures), together with the parameters, are this function's
// whole set of local slots, fixed before the body is compiled (so a forward
// reference within the same function resolves as local, not as a capture or
// global).
func collectFuncLocals(block *ast.Block, locals *nameSet) {
	for _, stmt := range block.Stmts {
		collectLocalsStmt(stmt, locals)
	}
}

func collectLocalsStmt(stmt ast.Stmt, locals *nameSet) {
	switch s := stmt.(type) {
	case *ast.AssignStmt:
		if id, ok := ast.Unwrap(s.Left).(*ast.IdentExpr); ok {
			locals.add(id.Lit)
		}
		collectLocalsExpr(s.Right, locals)
	case *ast.ExprStmt:
		collectLocalsExpr(s.Expr, locals)
	case *ast.ExportStmt:
		collectLocalsStmt(s.Stmt, locals)
	case *ast.ReturnStmt:
		if s.Value != nil {
			collectLocalsExpr(s.Value, locals)
		}
	}
}

func collectLocalsExpr(expr ast.Expr, locals *nameSet) {
	switch e := ast.Unwrap(expr).(type) {
	case *ast.IfExpr:
		collectFuncLocals(e.Then, locals)
		if e.ElseIf != nil {
			collectLocalsExpr(e.ElseIf, locals)
		} else if e.ElseBlock != nil {
			collectFuncLocals(e.ElseBlock, locals)
		}
	case *ast.LoopExpr:
		collectFuncLocals(e.Body, locals)
	case *ast.BlockExpr:
		collectFuncLocals(e.Body, locals)
	case *ast.BinOpExpr:
		collectLocalsExpr(e.Left, locals)
		collectLocalsExpr(e.Right, locals)
	case *ast.UnaryOpExpr:
		collectLocalsExpr(e.Right, locals)
	case *ast.CallExpr:
		collectLocalsExpr(e.Fn, locals)
		for _, a := range e.Args {
			collectLocalsExpr(a, locals)
		}
	case *ast.DotExpr:
		collectLocalsExpr(e.Left, locals)
	case *ast.IndexExpr:
		collectLocalsExpr(e.Prefix, locals)
		collectLocalsExpr(e.Index, locals)
	case *ast.ArrayLikeExpr:
		for _, it := range e.Items {
			collectLocalsExpr(it, locals)
		}
	case *ast.MapExpr:
		for _, kv := range e.Items {
			collectLocalsExpr(kv.Key, locals)
			collectLocalsExpr(kv.Value, locals)
		}
	case *ast.FormatStringExpr:
		for _, sub := range e.Exprs {
			collectLocalsExpr(sub, locals)
		}
		// *ast.FuncExpr is not descended into, same rationale as
		// collectGlobalsExpr.
	}
}
