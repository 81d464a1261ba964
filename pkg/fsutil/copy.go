package fsutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	dirCopy "github.com/otiai10/copy"
)

// CopyTree copies src to dst. Files and directories whose base name starts
// with a dot are skipped when skipHidden is set, except for dotenv files.
func CopyTree(ctx context.Context, src, dst string, skipHidden bool) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("copy: %w", err)
	}

	opts := dirCopy.Options{
		Skip: func(info os.FileInfo, srcPath, _ string) (bool, error) {
			if err := ctx.Err(); err != nil {
				return false, err
			}
			if !skipHidden || srcPath == src {
				return false, nil
			}
			name := filepath.Base(srcPath)
			if !strings.HasPrefix(name, ".") {
				return false, nil
			}
			if !info.IsDir() && (name == ".env" || strings.HasPrefix(name, ".env.")) {
				return false, nil
			}
			return true, nil
		},
		PermissionControl: dirCopy.PerservePermission,
		Sync:              true,
	}

	if err := dirCopy.Copy(src, dst, opts); err != nil {
		return fmt.Errorf("copy %s to %s: %w", src, dst, err)
	}
	return nil
}
