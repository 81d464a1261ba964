// Package exec runs external commands, capturing their output and logging
// the command line with secrets masked.
package exec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	osexec "os/exec"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/shlex"

	"github.com/yaklabco/stdkit/pkg/secrets"
)

// ErrEmptyCommand is returned for a command with no program name.
var ErrEmptyCommand = errors.New("empty command")

// Command describes a process to start.
type Command struct {
	Name string
	Args []string

	// Dir is the working directory. Empty means the current one.
	Dir string

	// Env is added on top of the current process environment.
	Env map[string]string

	Stdin io.Reader
}

// Parse splits a shell-style command line into a Command. Quotes and
// backslash escapes are honored; no expansion or globbing is done.
func Parse(cmdline string) (Command, error) {
	fields, err := shlex.Split(cmdline)
	if err != nil {
		return Command{}, fmt.Errorf("parse command line: %w", err)
	}
	if len(fields) == 0 {
		return Command{}, ErrEmptyCommand
	}
	return Command{Name: fields[0], Args: fields[1:]}, nil
}

// String renders the command line with arguments quoted where needed.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	for _, arg := range append([]string{c.Name}, c.Args...) {
		if arg == "" || strings.ContainsAny(arg, " \t\n'\"\\$") {
			arg = `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(arg) + `"`
		}
		parts = append(parts, arg)
	}
	return strings.Join(parts, " ")
}

// Options controls Run.
type Options struct {
	// Masker hides secrets in the logged command line and in ExitError.
	Masker *secrets.Masker

	Logger *log.Logger

	// Stdout and Stderr, when set, also receive the process output as it is
	// produced, masked when Masker is set.
	Stdout io.Writer
	Stderr io.Writer
}

// Output is the result of a finished process.
type Output struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// ExitError reports a process that exited with a non-zero status.
type ExitError struct {
	Command string
	Code    int
	Stderr  string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s: exit status %d", e.Command, e.Code)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + firstLine(stderr)
	}
	return msg
}

// Run starts cmd, waits for it and returns its captured output. A non-zero
// exit returns both the Output and an *ExitError.
func Run(ctx context.Context, cmd Command, opts Options) (*Output, error) {
	if cmd.Name == "" {
		return nil, ErrEmptyCommand
	}

	mask := func(s string) string { return s }
	if opts.Masker != nil {
		mask = opts.Masker.Mask
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	line := mask(cmd.String())
	logger.Debug("running command", "cmd", line, "dir", cmd.Dir)

	proc := osexec.CommandContext(ctx, cmd.Name, cmd.Args...)
	proc.Dir = cmd.Dir
	proc.Stdin = cmd.Stdin
	if len(cmd.Env) > 0 {
		proc.Env = os.Environ()
		for _, key := range slices.Sorted(maps.Keys(cmd.Env)) {
			proc.Env = append(proc.Env, key+"="+cmd.Env[key])
		}
	}

	var stdout, stderr bytes.Buffer
	proc.Stdout = tee(&stdout, opts.Stdout, opts.Masker)
	proc.Stderr = tee(&stderr, opts.Stderr, opts.Masker)

	start := time.Now()
	err := proc.Run()
	out := &Output{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if err != nil {
		var exitErr *osexec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			out.ExitCode = exitErr.ExitCode()
			logger.Debug("command failed", "cmd", line, "exit_code", out.ExitCode, "duration", out.Duration)
			return out, &ExitError{Command: line, Code: out.ExitCode, Stderr: mask(out.Stderr)}
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return out, fmt.Errorf("%s: %w", line, ctxErr)
		}
		return out, fmt.Errorf("%s: %w", line, err)
	}

	logger.Debug("command finished", "cmd", line, "duration", out.Duration)
	return out, nil
}

// OutputOf runs name with args and returns its trimmed standard output.
func OutputOf(ctx context.Context, name string, args ...string) (string, error) {
	out, err := Run(ctx, Command{Name: name, Args: args}, Options{})
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out.Stdout, "\r\n"), nil
}

func tee(buf *bytes.Buffer, extra io.Writer, masker *secrets.Masker) io.Writer {
	if extra == nil {
		return buf
	}
	if masker != nil {
		extra = masker.Writer(extra)
	}
	return io.MultiWriter(buf, extra)
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
