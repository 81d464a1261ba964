package cli

import (
	"errors"

	"github.com/yaklabco/stdkit/internal/configloader"
	"github.com/yaklabco/stdkit/pkg/dotenv"
	"github.com/yaklabco/stdkit/pkg/exec"
	"github.com/yaklabco/stdkit/pkg/fsutil"
	"github.com/yaklabco/stdkit/pkg/runner"
)

// Exit codes for stdkit.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitIssues indicates the command ran but found problems: unformatted
	// or unparsable files, a missing key, unequal strings.
	ExitIssues = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// Sentinel errors mapped to exit codes by ExitCode.
var (
	// ErrIssuesFound signals ExitIssues without an error message.
	ErrIssuesFound = errors.New("issues found")

	// ErrConfig wraps configuration loading failures.
	ErrConfig = errors.New("configuration error")

	// ErrUsage wraps invalid arguments.
	ErrUsage = errors.New("invalid usage")
)

// ExitCodeFromResult determines the exit code for a check or format run.
func ExitCodeFromResult(result *runner.Result) int {
	if result == nil {
		return ExitSuccess
	}
	if result.HasFailures() || result.Stats.FilesChanged > result.Stats.FilesWritten {
		return ExitIssues
	}
	return ExitSuccess
}

// ExitCode maps an error returned by a command to a process exit code.
// A child process's own exit status is passed through.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *exec.ExitError
	var validationErr *configloader.ValidationError
	var parseErr *dotenv.ParseError
	switch {
	case errors.As(err, &exitErr):
		return exitErr.Code
	case errors.Is(err, ErrIssuesFound), errors.Is(err, ErrKeyNotFound), errors.As(err, &parseErr):
		return ExitIssues
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig), errors.As(err, &validationErr):
		return ExitConfigError
	case errors.Is(err, fsutil.ErrNotFound), errors.Is(err, fsutil.ErrPermissionDenied), errors.Is(err, fsutil.ErrIsDirectory):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
