package exec_test

import (
	"bytes"
	"context"
	"errors"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/stdkit/pkg/exec"
	"github.com/yaklabco/stdkit/pkg/secrets"
)

func skipWithoutShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires sh")
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cmdline  string
		wantName string
		wantArgs []string
	}{
		{name: "simple", cmdline: "echo hello", wantName: "echo", wantArgs: []string{"hello"}},
		{name: "double quotes", cmdline: `git commit -m "first commit"`, wantName: "git", wantArgs: []string{"commit", "-m", "first commit"}},
		{name: "single quotes", cmdline: `sh -c 'echo $HOME'`, wantName: "sh", wantArgs: []string{"-c", "echo $HOME"}},
		{name: "escaped space", cmdline: `ls my\ dir`, wantName: "ls", wantArgs: []string{"my dir"}},
		{name: "no args", cmdline: "  pwd  ", wantName: "pwd", wantArgs: []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cmd, err := exec.Parse(tc.cmdline)
			require.NoError(t, err)
			assert.Equal(t, tc.wantName, cmd.Name)
			assert.Equal(t, tc.wantArgs, cmd.Args)
		})
	}
}

func TestParseEmpty(t *testing.T) {
	t.Parallel()

	_, err := exec.Parse("   ")
	assert.ErrorIs(t, err, exec.ErrEmptyCommand)
}

func TestCommandString(t *testing.T) {
	t.Parallel()

	cmd := exec.Command{Name: "git", Args: []string{"commit", "-m", `say "hi"`, ""}}
	assert.Equal(t, `git commit -m "say \"hi\"" ""`, cmd.String())
}

func TestRun(t *testing.T) {
	t.Parallel()
	skipWithoutShell(t)

	out, err := exec.Run(context.Background(), exec.Command{
		Name: "sh",
		Args: []string{"-c", `printf '%s' "$GREETING"; printf 'warn' >&2`},
		Env:  map[string]string{"GREETING": "hello"},
	}, exec.Options{})
	require.NoError(t, err)
	assert.Equal(t, "hello", out.Stdout)
	assert.Equal(t, "warn", out.Stderr)
	assert.Equal(t, 0, out.ExitCode)
}

func TestRunStdin(t *testing.T) {
	t.Parallel()
	skipWithoutShell(t)

	out, err := exec.Run(context.Background(), exec.Command{
		Name:  "cat",
		Stdin: strings.NewReader("piped"),
	}, exec.Options{})
	require.NoError(t, err)
	assert.Equal(t, "piped", out.Stdout)
}

func TestRunExitError(t *testing.T) {
	t.Parallel()
	skipWithoutShell(t)

	masker := secrets.NewMasker("s3cret")
	out, err := exec.Run(context.Background(), exec.Command{
		Name: "sh",
		Args: []string{"-c", "echo bad token s3cret >&2; exit 3", "s3cret"},
	}, exec.Options{Masker: masker})

	var exitErr *exec.ExitError
	require.True(t, errors.As(err, &exitErr), "error = %v", err)
	assert.Equal(t, 3, exitErr.Code)
	assert.Equal(t, 3, out.ExitCode)
	assert.NotContains(t, exitErr.Error(), "s3cret")
	assert.Contains(t, exitErr.Error(), "bad token *******")
}

func TestRunTeesMaskedOutput(t *testing.T) {
	t.Parallel()
	skipWithoutShell(t)

	var live bytes.Buffer
	out, err := exec.Run(context.Background(), exec.Command{
		Name: "sh",
		Args: []string{"-c", "printf 'key=abc123'"},
	}, exec.Options{Masker: secrets.NewMasker("abc123"), Stdout: &live})
	require.NoError(t, err)
	assert.Equal(t, "key=abc123", out.Stdout, "captured output is raw")
	assert.Equal(t, "key=*******", live.String())
}

func TestRunCancelled(t *testing.T) {
	t.Parallel()
	skipWithoutShell(t)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := exec.Run(ctx, exec.Command{Name: "sleep", Args: []string{"5"}}, exec.Options{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRunMissingProgram(t *testing.T) {
	t.Parallel()

	_, err := exec.Run(context.Background(), exec.Command{Name: "stdkit-no-such-program"}, exec.Options{})
	require.Error(t, err)

	var exitErr *exec.ExitError
	assert.False(t, errors.As(err, &exitErr))
}

func TestOutputOf(t *testing.T) {
	t.Parallel()
	skipWithoutShell(t)

	got, err := exec.OutputOf(context.Background(), "echo", "hi")
	require.NoError(t, err)
	assert.Equal(t, "hi", got)
}
