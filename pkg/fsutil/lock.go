package fsutil

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/flock"
)

// LockSuffix names the lock file guarding a path.
const LockSuffix = ".lock"

const lockRetry = 50 * time.Millisecond

// Lock is an exclusive advisory lock on a file, held through a sibling
// lock file so the target itself can be replaced by rename.
type Lock struct {
	fl *flock.Flock
}

// Acquire blocks until it holds the lock for path or ctx is done.
func Acquire(ctx context.Context, path string) (*Lock, error) {
	fl := flock.New(path + LockSuffix)

	locked, err := fl.TryLockContext(ctx, lockRetry)
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", path, err)
	}
	if !locked {
		return nil, fmt.Errorf("lock %s: %w", path, context.Cause(ctx))
	}
	return &Lock{fl: fl}, nil
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.fl.Path()
}

// Release drops the lock. The lock file is left in place; removing it would
// race with another process that has it open.
func (l *Lock) Release() error {
	if err := l.fl.Unlock(); err != nil {
		return fmt.Errorf("unlock %s: %w", l.fl.Path(), err)
	}
	return nil
}
