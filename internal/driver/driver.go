// Package driver wires scan→parse→compile→run into the single entry point
// cmd/feint calls, and formats every error taxonomy spec.md §7 names (scan,
// parse, compile, runtime) for display. This package is the thin,
// out-of-scope-by-itself glue spec.md §1 describes cmd/feint as needing.
package driver

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/feint-lang/feint/lang/builtins"
	"github.com/feint-lang/feint/lang/compiler"
	"github.com/feint-lang/feint/lang/loader"
	"github.com/feint-lang/feint/lang/machine"
	"github.com/feint-lang/feint/lang/object"
	"github.com/feint-lang/feint/lang/parser"
	"github.com/feint-lang/feint/lang/token"
)

// Driver holds everything a single run of FeInt source needs beyond the
// source itself: where to look for imported modules, the VM's recursion
// bound and debug flag, the program's argv, and where to send output.
type Driver struct {
	SearchPath   []string
	MaxCallDepth int
	Debug        bool
	Argv         []string

	Stdout io.Writer
	Stderr io.Writer
}

func (d *Driver) stdout() io.Writer {
	if d.Stdout != nil {
		return d.Stdout
	}
	return os.Stdout
}

func (d *Driver) stderr() io.Writer {
	if d.Stderr != nil {
		return d.Stderr
	}
	return os.Stderr
}

// RunFile scans, parses, compiles and executes the module at path, per
// spec.md §6's CLI surface. The returned exit code is 0 on success, the low
// byte of an `Exit(code)` runtime error, or 1 for any uncaught
// scan/parse/compile/runtime error (already printed to Stderr).
func (d *Driver) RunFile(ctx context.Context, path string) int {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(d.stderr(), err)
		return 1
	}
	name := moduleName(path)
	return d.run(ctx, path, name, src)
}

// RunSource executes inline source (the `-c/--code` flag), named "main".
func (d *Driver) RunSource(ctx context.Context, src []byte) int {
	return d.run(ctx, "<code>", "main", src)
}

// Disassemble compiles src and returns its disassembly instead of running
// it, for the `-i/--dis` flag.
func (d *Driver) Disassemble(path string, src []byte) (string, error) {
	fset := token.NewFileSet()
	chunk, err := parser.ParseChunk(fset, path, src)
	if err != nil {
		return "", err
	}
	code, err := compiler.CompileModule(moduleName(path), fset.File(path), chunk)
	if err != nil {
		return "", err
	}
	return compiler.Disassemble(code), nil
}

func (d *Driver) run(ctx context.Context, filename, name string, src []byte) int {
	fset := token.NewFileSet()
	chunk, err := parser.ParseChunk(fset, filename, src)
	if err != nil {
		fmt.Fprintln(d.stderr(), FormatError(fset, err))
		return 1
	}
	code, err := compiler.CompileModule(name, fset.File(filename), chunk)
	if err != nil {
		fmt.Fprintln(d.stderr(), FormatError(fset, err))
		return 1
	}

	ld, err := loader.New(d.SearchPath, fset)
	if err != nil {
		fmt.Fprintln(d.stderr(), err)
		return 1
	}
	ld.Seed("system", builtins.SystemModule(d.Argv))
	ld.Seed("builtins", builtins.BuiltinsModule())

	th := &machine.Thread{
		Name:         name,
		Stdout:       d.stdout(),
		Stderr:       d.stderr(),
		MaxCallDepth: d.MaxCallDepth,
		Debug:        d.Debug,
		Builtins:     builtins.Namespace(),
		Fset:         fset,
		Load:         ld.Load,
	}

	_, err = th.RunModule(ctx, name, code)
	if err == nil {
		return 0
	}

	if oe, ok := err.(*object.Error); ok && oe.Kind == object.ExitError {
		return oe.Code & 0xff
	}

	fmt.Fprintln(d.stderr(), FormatError(fset, err))
	return 1
}

func moduleName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
