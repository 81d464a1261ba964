package dotenv

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/stdkit/pkg/env"
	"github.com/yaklabco/stdkit/pkg/fsutil"
)

// DefaultFile is the file Load reads when no paths are given.
const DefaultFile = ".env"

// LoadOptions controls Load.
type LoadOptions struct {
	// Paths are read in order; later files override earlier ones.
	Paths []string

	// Required makes a missing file an error instead of being skipped.
	Required bool

	// Expand resolves $VAR references after merging.
	Expand bool

	// Export writes the merged values into Env.
	Export bool

	// Override lets exported values replace variables already set in Env.
	Override bool

	// Env is the environment used for expansion and export. Nil means the
	// process environment.
	Env env.Env

	Logger *log.Logger
}

// Load reads, parses and merges dotenv files.
func Load(ctx context.Context, opts LoadOptions) (map[string]string, error) {
	paths := opts.Paths
	if len(paths) == 0 {
		paths = []string{DefaultFile}
	}
	target := opts.Env
	if target == nil {
		target = env.OS()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	values := make(map[string]string)
	for _, path := range paths {
		content, _, err := fsutil.ReadFile(ctx, path)
		if err != nil {
			if errors.Is(err, fsutil.ErrNotFound) && !opts.Required {
				logger.Debug("skipping missing dotenv file", "path", path)
				continue
			}
			return nil, err
		}

		doc, err := Parse(string(content))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		merged := doc.ToMap()
		logger.Debug("loaded dotenv file", "path", path, "keys", len(merged))
		maps.Copy(values, merged)
	}

	if opts.Expand {
		expanded, err := Expand(values, target.Lookup)
		if err != nil {
			return nil, err
		}
		values = expanded
	}

	if opts.Export {
		if err := env.Apply(target, values, opts.Override); err != nil {
			return nil, fmt.Errorf("export: %w", err)
		}
	}

	return values, nil
}

// LoadFile parses a single file and returns its document.
func LoadFile(ctx context.Context, path string) (*Document, error) {
	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// SaveOptions controls Save.
type SaveOptions struct {
	Backup       fsutil.BackupConfig
	Mode         os.FileMode
	OnlyLineFeed bool
}

// Save writes doc to path atomically while holding the path's lock. The
// file is left untouched when its content would not change. It reports
// whether the file was written.
func Save(ctx context.Context, path string, doc *Document, opts SaveOptions) (written bool, err error) {
	lock, err := fsutil.Acquire(ctx, path)
	if err != nil {
		return false, err
	}
	defer func() {
		if releaseErr := lock.Release(); releaseErr != nil && err == nil {
			err = releaseErr
		}
	}()

	content := []byte(Stringify(doc, StringifyOptions{OnlyLineFeed: opts.OnlyLineFeed}))

	if existing, _, readErr := fsutil.ReadFile(ctx, path); readErr == nil && string(existing) == string(content) {
		return false, nil
	}

	if _, err := fsutil.CreateBackup(ctx, path, opts.Backup); err != nil {
		return false, err
	}
	if err := fsutil.WriteAtomic(ctx, path, content, opts.Mode); err != nil {
		return false, err
	}
	return true, nil
}
