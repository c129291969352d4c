// Package maincmd implements cmd/feint's command-line surface: flag parsing
// via github.com/mna/mainer's `flag:"..."` struct-tag reflection, dispatching
// into internal/driver for the actual scan→parse→compile→run work. Kept
// thin per spec.md §1's explicit scoping of "the command-line front-end
// (argument parsing, shell completion generation)" as external glue: every
// substantive decision lives in internal/driver or lang/*.
package maincmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/mna/mainer"

	"github.com/feint-lang/feint/internal/config"
	"github.com/feint-lang/feint/internal/driver"
)

const binName = "feint"

var shortUsage = fmt.Sprintf(`
usage: %s [<option>...] [<command>] [<file_name>]
Run '%[1]s --help' for details.
`, binName)

var longUsage = fmt.Sprintf(`usage: %s [<option>...] [<command>] [<file_name>] [-- <arg>...]
       %[1]s -h|--help
       %[1]s -v|--version

Runs FeInt source.

The <command> can be one of:
       run                       Execute FILE_NAME (the default if no
                                 command is given).
       test                      Execute FILE_NAME's top-level body and
                                 report as a failure any uncaught error.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
       -c --code <src>           Run an inline snippet instead of a file.
       -i --dis                  Disassemble compiled code instead of
                                 running it.
       --history-path <path>     REPL history file (REPL not implemented
                                 by this build).
       --no-history              Disable REPL history.
       -x --max-call-depth <N>   Recursion depth bound (0 = unlimited),
                                 also FEINT_MAX_CALL_DEPTH.
       -d --debug                Enable $debug output, also FEINT_DEBUG.
`, binName)

// Cmd is cmd/feint's flag-bound command object, parsed by mainer.Parser.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	Code         string `flag:"c,code"`
	Dis          bool   `flag:"i,dis"`
	HistoryPath  string `flag:"history-path"`
	NoHistory    bool   `flag:"no-history"`
	MaxCallDepth int    `flag:"x,max-call-depth"`
	DebugFlag    bool   `flag:"d,debug"`

	args  []string
	cmdFn func(context.Context, mainer.Stdio, []string) error
}

func (c *Cmd) SetArgs(args []string) { c.args = args }

func (c *Cmd) SetFlags(map[string]bool) {}

// Validate resolves the subcommand (defaulting to "run" when the first
// positional argument isn't itself a known command name) and checks that a
// file name or inline snippet was actually given.
func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}

	cmdName := "run"
	fileArgs := c.args
	commands := buildCmds(c)
	if len(c.args) > 0 {
		if _, ok := commands[c.args[0]]; ok {
			cmdName = c.args[0]
			fileArgs = c.args[1:]
		}
	}

	c.cmdFn = commands[cmdName]
	if c.cmdFn == nil {
		return fmt.Errorf("unknown command: %s", cmdName)
	}
	if c.Code == "" && len(fileArgs) == 0 {
		return errors.New("FILE_NAME or --code is required")
	}
	c.args = fileArgs
	return nil
}

// Main parses args and dispatches to the resolved subcommand, per
// spec.md §6's CLI surface.
func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{EnvVars: false}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success
	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	if err := c.cmdFn(ctx, stdio, c.args); err != nil {
		if ec, ok := err.(exitCode); ok {
			return mainer.ExitCode(ec)
		}
		return mainer.Failure
	}
	return mainer.Success
}

// exitCode lets a subcommand propagate a specific process exit status (a
// runtime Exit(code) error) through the error-returning mainer.Stdio
// command signature.
type exitCode int

func (e exitCode) Error() string { return fmt.Sprintf("exit(%d)", int(e)) }

func (c *Cmd) newDriver(stdio mainer.Stdio) (*driver.Driver, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	maxDepth := cfg.MaxCallDepth
	if c.MaxCallDepth != 0 {
		maxDepth = c.MaxCallDepth
	}
	debug := cfg.Debug || c.DebugFlag

	return &driver.Driver{
		SearchPath:   []string{"scripts"},
		MaxCallDepth: maxDepth,
		Debug:        debug,
		Argv:         c.args,
		Stdout:       stdio.Stdout,
		Stderr:       stdio.Stderr,
	}, nil
}

// Run executes FILE_NAME (or --code's inline snippet), spec.md §6's default
// command.
func (c *Cmd) Run(_ context.Context, stdio mainer.Stdio, args []string) error {
	d, err := c.newDriver(stdio)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	if c.Dis {
		var (
			name string
			src  []byte
		)
		if c.Code != "" {
			name, src = "<code>", []byte(c.Code)
		} else {
			name = args[0]
			src, err = os.ReadFile(name)
			if err != nil {
				fmt.Fprintln(stdio.Stderr, err)
				return err
			}
		}
		dis, err := d.Disassemble(name, src)
		if err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			return err
		}
		fmt.Fprint(stdio.Stdout, dis)
		return nil
	}

	var code int
	if c.Code != "" {
		code = d.RunSource(context.Background(), []byte(c.Code))
	} else {
		code = d.RunFile(context.Background(), args[0])
	}
	if code != 0 {
		return exitCode(code)
	}
	return nil
}

// Test executes FILE_NAME's top-level body, treating any uncaught error as a
// test failure; a clean run is a pass.
func (c *Cmd) Test(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return c.Run(ctx, stdio, args)
}

func buildCmds(v any) map[string]func(context.Context, mainer.Stdio, []string) error {
	cmds := make(map[string]func(context.Context, mainer.Stdio, []string) error)

	vv := reflect.ValueOf(v)
	vt := vv.Type()
	for i := 0; i < vt.NumMethod(); i++ {
		m := vt.Method(i)
		mt := m.Type
		if mt.NumIn() != 4 || mt.NumOut() != 1 {
			continue
		}
		if rt := mt.Out(0); rt.Kind() != reflect.Interface || rt.Name() != "error" {
			continue
		}
		if p1 := mt.In(1); p1.Kind() != reflect.Interface || p1.Name() != "Context" {
			continue
		}
		if p2 := mt.In(2); p2.Kind() != reflect.Struct || p2.Name() != "Stdio" {
			continue
		}
		if p3 := mt.In(3); p3.Kind() != reflect.Slice || p3.Elem().Name() != "string" {
			continue
		}
		cmds[strings.ToLower(m.Name)] = vv.Method(i).Interface().(func(context.Context, mainer.Stdio, []string) error)
	}
	return cmds
}
