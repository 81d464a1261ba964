package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/stdkit/pkg/fsutil"
)

// ErrInvalidPattern is returned when an exclude glob does not compile.
var ErrInvalidPattern = errors.New("invalid exclude pattern")

// IsDotenvFile reports whether name looks like a dotenv file: ".env",
// ".env.<suffix>" or "<name>.env". Backups, lock files and temp files
// written by stdkit are never dotenv files.
func IsDotenvFile(name string) bool {
	base := filepath.Base(name)
	if strings.HasSuffix(base, fsutil.BackupSuffix) ||
		strings.HasSuffix(base, fsutil.LockSuffix) ||
		strings.Contains(base, ".tmp.") {
		return false
	}
	return base == ".env" ||
		strings.HasPrefix(base, ".env.") ||
		(strings.HasSuffix(base, ".env") && len(base) > len(".env"))
}

// Discover finds dotenv files matching opts under the working directory.
// It returns a deterministically sorted list of absolute file paths.
// Explicitly named files are included whatever their name.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	excludes, err := compileGlobs(opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, ok := seen[path]; !ok {
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			if !excludes.match(relative(workDir, absPath)) {
				add(absPath)
			}
			continue
		}

		discovered, err := walkDirectory(ctx, absPath, workDir, excludes, opts.FollowSymlinks)
		if err != nil {
			return nil, err
		}
		for _, f := range discovered {
			add(f)
		}
	}

	slices.Sort(files)
	return files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

func relative(workDir, path string) string {
	rel, err := filepath.Rel(workDir, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func walkDirectory(ctx context.Context, root, workDir string, excludes globSet, followSymlinks bool) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		relPath := relative(workDir, path)

		if entry.IsDir() {
			if path != root && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			if path != root && excludes.match(relPath) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, evalErr := filepath.EvalSymlinks(path)
			if evalErr != nil {
				return nil //nolint:nilerr // broken symlinks are skipped
			}
			info, statErr := os.Stat(realPath)
			if statErr != nil {
				return nil //nolint:nilerr // unreadable symlink targets are skipped
			}
			if info.IsDir() {
				if !followSymlinks {
					return nil
				}
				// Walk the target; WalkDir would not descend into the link itself.
				subFiles, err := walkDirectory(ctx, realPath, workDir, excludes, followSymlinks)
				if err != nil {
					return err
				}
				files = append(files, subFiles...)
				return nil
			}
		}

		if IsDotenvFile(entry.Name()) && !excludes.match(relPath) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

// globSet matches a slash separated relative path against compiled
// patterns. A pattern also matches when it matches the base name alone.
type globSet []glob.Glob

func compileGlobs(patterns []string) (globSet, error) {
	set := make(globSet, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(filepath.ToSlash(pattern), '/')
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidPattern, pattern, err)
		}
		set = append(set, g)
	}
	return set, nil
}

func (s globSet) match(relPath string) bool {
	base := relPath
	if i := strings.LastIndexByte(relPath, '/'); i >= 0 {
		base = relPath[i+1:]
	}
	for _, g := range s {
		if g.Match(relPath) || g.Match(base) {
			return true
		}
	}
	return false
}
