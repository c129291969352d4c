package compiler_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/feint-lang/feint/lang/compiler"
	"github.com/feint-lang/feint/lang/parser"
	"github.com/feint-lang/feint/lang/token"
)

func TestCompileModule_Arithmetic(t *testing.T) {
	fset := token.NewFileSet()
	chunk, err := parser.ParseChunk(fset, "test.fi", []byte("x = 1 + 2 * 3\n"))
	require.NoError(t, err)
	code, err := compiler.CompileModule("test", fset.File("test.fi"), chunk)
	require.NoError(t, err)
	require.NotNil(t, code)

	dis := compiler.Disassemble(code)
	require.Contains(t, dis, "push")
	require.Contains(t, dis, "binaryop")
	require.Contains(t, dis, "storeglobal")
}

func TestCompileModule_IfExpression(t *testing.T) {
	fset := token.NewFileSet()
	src := "y = if x > 0 -> 1 else -> -1\n"
	chunk, err := parser.ParseChunk(fset, "test.fi", []byte(src))
	require.NoError(t, err)
	code, err := compiler.CompileModule("test", fset.File("test.fi"), chunk)
	require.NoError(t, err)

	dis := compiler.Disassemble(code)
	require.Contains(t, dis, "jumpiffalse")
	require.Contains(t, dis, "jump ")
}

func TestCompileModule_LoopBreak(t *testing.T) {
	fset := token.NewFileSet()
	src := "n = 0\n" +
		"loop ->\n" +
		"  n = n + 1\n" +
		"  if n > 3 ->\n" +
		"    break\n"
	chunk, err := parser.ParseChunk(fset, "test.fi", []byte(src))
	require.NoError(t, err)
	code, err := compiler.CompileModule("test", fset.File("test.fi"), chunk)
	require.NoError(t, err)

	dis := compiler.Disassemble(code)
	require.Contains(t, dis, "jump ")
}

func TestCompileModule_ClosureCaptures(t *testing.T) {
	fset := token.NewFileSet()
	src := "make_counter = () =>\n" +
		"  n = 0\n" +
		"  return () =>\n" +
		"    n = n + 1\n" +
		"    return n\n"
	chunk, err := parser.ParseChunk(fset, "test.fi", []byte(src))
	require.NoError(t, err)
	code, err := compiler.CompileModule("test", fset.File("test.fi"), chunk)
	require.NoError(t, err)

	dis := compiler.Disassemble(code)
	require.Contains(t, dis, "makeclosure")
	require.Contains(t, dis, "loadcaptured")
	require.Contains(t, dis, "storecaptured")
}

func TestCompileModule_ImportBindsGlobal(t *testing.T) {
	fset := token.NewFileSet()
	src := "import math.trig as trig\n" +
		"from io import write as w\n"
	chunk, err := parser.ParseChunk(fset, "test.fi", []byte(src))
	require.NoError(t, err)
	code, err := compiler.CompileModule("test", fset.File("test.fi"), chunk)
	require.NoError(t, err)

	require.Len(t, code.Imports, 2)
	require.Equal(t, []string{"math", "trig"}, code.Imports[0].Path)
	require.Equal(t, "trig", code.Imports[0].Bindings[0].As)
	require.Equal(t, "write", code.Imports[1].Bindings[0].Name)
	require.Equal(t, "w", code.Imports[1].Bindings[0].As)
}

func TestCompileModule_ExportTracksName(t *testing.T) {
	fset := token.NewFileSet()
	src := "export greeting = \"hi\"\n"
	chunk, err := parser.ParseChunk(fset, "test.fi", []byte(src))
	require.NoError(t, err)
	code, err := compiler.CompileModule("test", fset.File("test.fi"), chunk)
	require.NoError(t, err)

	require.Equal(t, []string{"greeting"}, code.Exported)
}

func TestCompileModule_BreakOutsideLoopIsError(t *testing.T) {
	fset := token.NewFileSet()
	chunk, err := parser.ParseChunk(fset, "test.fi", []byte("break\n"))
	require.NoError(t, err)
	_, err = compiler.CompileModule("test", fset.File("test.fi"), chunk)
	require.Error(t, err)

	var errs compiler.ErrorList
	require.ErrorAs(t, err, &errs)
	require.Equal(t, compiler.BreakOutsideLoop, errs[0].Kind)
}
