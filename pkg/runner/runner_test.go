package runner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/stdkit/pkg/config"
	"github.com/yaklabco/stdkit/pkg/dotenv"
	"github.com/yaklabco/stdkit/pkg/fsutil"
	"github.com/yaklabco/stdkit/pkg/runner"
)

func lfConfig() *config.Config {
	cfg := config.NewConfig()
	cfg.Dotenv.OnlyLineFeed = config.Bool(true)
	return cfg
}

func TestRunCheck(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		".env":       "A='1'\nB='2'\n",
		"svc/.env":   "C=3\n",
		"bad/.env":   "BAD KEY=x\n",
		"empty/.env": "",
	})

	result, err := runner.Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Mode:       runner.ModeCheck,
		Config:     lfConfig(),
		Jobs:       2,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	stats := result.Stats
	if stats.FilesDiscovered != 4 || stats.FilesProcessed != 3 || stats.FilesErrored != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.FilesChanged != 1 || stats.FilesWritten != 0 || stats.KeysTotal != 3 {
		t.Errorf("stats = %+v", stats)
	}
	if !result.HasFailures() || !result.HasChanges() {
		t.Errorf("HasFailures/HasChanges = %v/%v", result.HasFailures(), result.HasChanges())
	}

	// Outcomes follow path order.
	for i := 1; i < len(result.Files); i++ {
		if result.Files[i-1].Path >= result.Files[i].Path {
			t.Errorf("outcomes out of order: %s before %s", result.Files[i-1].Path, result.Files[i].Path)
		}
	}

	var parseErr *dotenv.ParseError
	for _, f := range result.Files {
		if filepath.Base(filepath.Dir(f.Path)) == "bad" && !errors.As(f.Error, &parseErr) {
			t.Errorf("bad/.env error = %v, want *ParseError", f.Error)
		}
	}

	content, err := os.ReadFile(filepath.Join(dir, "svc", ".env"))
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "C=3\n" {
		t.Errorf("check mode modified file: %q", content)
	}
}

func TestRunFormat(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		".env":       "A=1\n# note\nB=\"x y\"\n",
		".env.local": "C='3'\n",
	})

	result, err := runner.Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Mode:       runner.ModeFormat,
		Config:     lfConfig(),
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Stats.FilesChanged != 1 || result.Stats.FilesWritten != 1 {
		t.Errorf("stats = %+v", result.Stats)
	}

	path := filepath.Join(dir, ".env")
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := "A='1'\n# note\nB='x y'\n"; string(content) != want {
		t.Errorf("formatted = %q, want %q", content, want)
	}

	backup, err := os.ReadFile(fsutil.BackupPath(path, fsutil.BackupModeSidecar))
	if err != nil {
		t.Fatalf("backup missing: %v", err)
	}
	if string(backup) != "A=1\n# note\nB=\"x y\"\n" {
		t.Errorf("backup = %q", backup)
	}

	// A second run finds nothing to change.
	again, err := runner.Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Mode:       runner.ModeFormat,
		Config:     lfConfig(),
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if again.HasChanges() {
		t.Errorf("second run changed files: %+v", again.Stats)
	}
}

func TestRunFormatDryRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{".env": "A=1\n"})

	result, err := runner.Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Mode:       runner.ModeFormat,
		DryRun:     true,
		Config:     lfConfig(),
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !result.DryRun || result.Stats.FilesChanged != 1 || result.Stats.FilesWritten != 0 {
		t.Errorf("result = %+v", result)
	}
	if got := result.Files[0].Formatted; got != "A='1'\n" {
		t.Errorf("Formatted = %q", got)
	}

	content, err := os.ReadFile(filepath.Join(dir, ".env"))
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "A=1\n" {
		t.Errorf("dry run wrote file: %q", content)
	}
}

func TestRunNoFiles(t *testing.T) {
	t.Parallel()

	result, err := runner.Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(result.Files) != 0 || result.HasFailures() || result.HasChanges() {
		t.Errorf("result = %+v", result)
	}
}

func TestNilResult(t *testing.T) {
	t.Parallel()

	var r *runner.Result
	if r.HasFailures() || r.HasChanges() {
		t.Error("nil result reports failures or changes")
	}
}

func TestModeString(t *testing.T) {
	t.Parallel()

	if runner.ModeCheck.String() != "check" || runner.ModeFormat.String() != "format" {
		t.Error("unexpected mode names")
	}
	if runner.Mode(9).String() != "unknown" {
		t.Error("unexpected name for unknown mode")
	}
}
