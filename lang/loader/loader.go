// Package loader implements FeInt's module loader: search-path resolution,
// compile-and-cache, and the cycle-tolerant re-entrant load hook the machine
// package's Import instruction drives, per spec.md §4.5 and §9's recursive
// import design note. It is patterned after `lang/machine/thread.go`'s
// `Load` callback field, generalized from a single caller-supplied function
// into a full cache plus search-path resolver.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/feint-lang/feint/lang/compiler"
	"github.com/feint-lang/feint/lang/machine"
	"github.com/feint-lang/feint/lang/object"
	"github.com/feint-lang/feint/lang/parser"
	"github.com/feint-lang/feint/lang/token"
)

// NotFoundError reports that no file on the search path matched a module
// path, spec.md §4.5's ModuleNotFound.
type NotFoundError struct {
	Path []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("module not found: %s", strings.Join(e.Path, "."))
}

// DirNotFoundError reports that every directory configured on the search
// path is missing, spec.md §6's ModuleDirNotFound (raised at bootstrap, not
// per-import: a single missing entry is silently skipped).
type DirNotFoundError struct {
	Dirs []string
}

func (e *DirNotFoundError) Error() string {
	return fmt.Sprintf("module search path: none of %s exist", strings.Join(e.Dirs, ", "))
}

// Loader resolves, compiles and caches FeInt modules. Its Load method has
// the exact shape of machine.Thread.Load, so it plugs directly into a
// Thread's Import handling: a cyclic import simply re-enters Load for a
// module whose cache entry is still marked Loading, returning that same
// (incompletely populated) *object.Module per spec.md §4.4's Import
// instruction description.
type Loader struct {
	searchPath []string
	fset       *token.FileSet

	mu    sync.Mutex
	cache map[string]*object.Module
}

// New builds a Loader over searchPath (each entry an ordered directory to
// check, joining the module's dotted path with the OS separator and a .fi
// extension). If searchPath is non-empty but every entry is missing,
// DirNotFoundError is returned immediately: this is a configuration error,
// not a per-import one.
func New(searchPath []string, fset *token.FileSet) (*Loader, error) {
	if len(searchPath) > 0 {
		anyPresent := false
		for _, dir := range searchPath {
			if info, err := os.Stat(dir); err == nil && info.IsDir() {
				anyPresent = true
				break
			}
		}
		if !anyPresent {
			return nil, &DirNotFoundError{Dirs: searchPath}
		}
	}
	return &Loader{searchPath: searchPath, fset: fset, cache: make(map[string]*object.Module)}, nil
}

// Seed inserts a programmatically-constructed module (a built-in such as
// "builtins" or "system") into the cache under name, bypassing file
// resolution entirely, per spec.md §4.5's "Built-in modules ... are
// constructed programmatically at bootstrap and seeded into the cache."
func (l *Loader) Seed(name string, mod *object.Module) {
	l.mu.Lock()
	l.cache[name] = mod
	l.mu.Unlock()
}

func (l *Loader) resolve(path []string) (string, error) {
	rel := filepath.Join(path...) + ".fi"
	for _, dir := range l.searchPath {
		candidate := filepath.Join(dir, rel)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", &NotFoundError{Path: path}
}

// Load is a machine.Thread.Load hook: it consults the cache first (a hit
// covers both a fully-loaded module and one still mid-load, the latter
// satisfying a cyclic import), otherwise resolves, reads, scans, parses and
// compiles the source file and executes its top-level Code as a fresh frame
// on th — the same thread and call stack that triggered the import, so
// recursion-depth accounting and frame-based cycle re-entrancy apply exactly
// as they would for an ordinary nested call.
func (l *Loader) Load(th *machine.Thread, path []string) (*object.Module, error) {
	name := strings.Join(path, ".")

	l.mu.Lock()
	if mod, ok := l.cache[name]; ok {
		l.mu.Unlock()
		return mod, nil
	}
	l.mu.Unlock()

	file, err := l.resolve(path)
	if err != nil {
		return nil, err
	}
	src, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", file, err)
	}
	chunk, err := parser.ParseChunk(l.fset, file, src)
	if err != nil {
		return nil, err
	}
	code, err := compiler.CompileModule(name, l.fset.File(file), chunk)
	if err != nil {
		return nil, err
	}

	mod := object.NewModule(name, code)
	mod.Loading = true

	l.mu.Lock()
	if existing, ok := l.cache[name]; ok {
		// Lost a race with a concurrent Load for the same module name; the
		// mutex only ever guards the cache itself (spec.md §5), so defer to
		// whichever caller won and discard this compile.
		l.mu.Unlock()
		return existing, nil
	}
	l.cache[name] = mod
	l.mu.Unlock()

	topFn := &object.Function{CodeObj: code, Module: mod}
	if _, err := machine.Call(th, topFn, nil); err != nil {
		return nil, err
	}
	mod.Loading = false
	return mod, nil
}
