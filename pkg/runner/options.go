// Package runner checks and formats dotenv files across many paths.
package runner

import (
	"github.com/charmbracelet/log"

	"github.com/yaklabco/stdkit/pkg/config"
)

// Mode selects what the runner does with each file.
type Mode int

const (
	// ModeCheck parses each file and reports whether it is formatted.
	ModeCheck Mode = iota

	// ModeFormat rewrites files whose formatted form differs.
	ModeFormat
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeCheck:
		return "check"
	case ModeFormat:
		return "format"
	default:
		return "unknown"
	}
}

// Options controls multi-file processing.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// ExcludeGlobs are glob patterns, relative to WorkingDir, used to skip
	// files or directories.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	Mode Mode

	// DryRun computes changes without writing them.
	DryRun bool

	// Config supplies line endings and backup settings. Nil means defaults.
	Config *config.Config

	Logger *log.Logger
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

func (o Options) effectiveConfig() *config.Config {
	if o.Config == nil {
		return config.NewConfig()
	}
	return o.Config
}
