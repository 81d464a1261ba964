package fsutil_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/yaklabco/stdkit/pkg/fsutil"
)

func TestAcquire(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".env")

	lock, err := fsutil.Acquire(context.Background(), path)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if lock.Path() != path+fsutil.LockSuffix {
		t.Errorf("Path() = %q", lock.Path())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()
	if _, err := fsutil.Acquire(ctx, path); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("second Acquire() error = %v, want deadline exceeded", err)
	}

	if err := lock.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}

	again, err := fsutil.Acquire(context.Background(), path)
	if err != nil {
		t.Fatalf("Acquire() after release error = %v", err)
	}
	_ = again.Release()
}
