package driver_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/feint-lang/feint/internal/driver"
)

func TestRunSourceSuccess(t *testing.T) {
	var stdout, stderr bytes.Buffer
	d := &driver.Driver{Stdout: &stdout, Stderr: &stderr}

	code := d.RunSource(context.Background(), []byte("result = 1 + 2\n"))
	require.Equal(t, 0, code)
	require.Empty(t, stderr.String())
}

func TestRunSourceCompileError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	d := &driver.Driver{Stdout: &stdout, Stderr: &stderr}

	code := d.RunSource(context.Background(), []byte("break\n"))
	require.Equal(t, 1, code)
	require.NotEmpty(t, stderr.String())
}

func TestRunSourceRuntimeErrorReported(t *testing.T) {
	var stdout, stderr bytes.Buffer
	d := &driver.Driver{Stdout: &stdout, Stderr: &stderr}

	code := d.RunSource(context.Background(), []byte("x = 1 / 0\n"))
	require.Equal(t, 1, code)
	require.Contains(t, stderr.String(), "ZeroDivisionError")
}

func TestDisassemble(t *testing.T) {
	d := &driver.Driver{}
	dis, err := d.Disassemble("<code>", []byte("x = 1 + 2\n"))
	require.NoError(t, err)
	require.Contains(t, dis, "binaryop")
}
