// Package main is the entry point for the stdkit CLI.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/yaklabco/stdkit/internal/cli"
	"github.com/yaklabco/stdkit/internal/logging"
	"github.com/yaklabco/stdkit/pkg/exec"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	err := rootCmd.ExecuteContext(ctx)
	if err != nil && !quiet(err) {
		logging.Default().Error("command failed", logging.FieldError, err)
	}
	return cli.ExitCode(err)
}

// quiet reports whether err only carries an exit status: issues already
// reported on stdout, or a child process that printed its own errors.
func quiet(err error) bool {
	var exitErr *exec.ExitError
	return errors.Is(err, cli.ErrIssuesFound) || errors.As(err, &exitErr)
}
