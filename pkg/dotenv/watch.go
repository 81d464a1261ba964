package dotenv

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/yaklabco/stdkit/pkg/fsutil"
)

// WatchFunc receives the re-parsed document after each change, or the error
// that reading or parsing it produced.
type WatchFunc func(doc *Document, err error)

// Watcher re-parses a dotenv file whenever it changes on disk.
//
// The parent directory is watched rather than the file itself so that
// atomic saves, which replace the file by rename, keep being observed.
type Watcher struct {
	path string
	fsw  *fsnotify.Watcher
}

// NewWatcher starts watching path. Events are delivered once Run is called.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	return &Watcher{path: abs, fsw: fsw}, nil
}

// Run delivers changes to fn until ctx is done, then closes the watcher.
func (w *Watcher) Run(ctx context.Context, fn WatchFunc) error {
	defer w.fsw.Close()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			doc, err := LoadFile(ctx, w.path)
			if errors.Is(err, fsutil.ErrNotFound) {
				continue
			}
			fn(doc, err)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch %s: %w", w.path, err)
		}
	}
}

// Close stops the watcher without running it. It is safe to call after Run.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// Watch blocks until ctx is done, calling fn each time path changes.
func Watch(ctx context.Context, path string, fn WatchFunc) error {
	w, err := NewWatcher(path)
	if err != nil {
		return err
	}
	return w.Run(ctx, fn)
}
