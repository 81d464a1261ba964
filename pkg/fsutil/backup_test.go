package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/stdkit/pkg/fsutil"
)

func TestBackupPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mode fsutil.BackupMode
		want string
	}{
		{fsutil.BackupModeSidecar, "/srv/.env.stdkit.bak"},
		{fsutil.BackupModeNone, ""},
		{"unknown", "/srv/.env.stdkit.bak"},
	}

	for _, tc := range tests {
		if got := fsutil.BackupPath("/srv/.env", tc.mode); got != tc.want {
			t.Errorf("BackupPath(%q) = %q, want %q", tc.mode, got, tc.want)
		}
	}
}

func TestBackupLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), ".env")
	writeFile(t, path, "ORIGINAL=1")
	cfg := fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}

	created, err := fsutil.CreateBackup(ctx, path, cfg)
	if err != nil || !created {
		t.Fatalf("CreateBackup() = %v, %v; want true, nil", created, err)
	}

	writeFile(t, path, "CHANGED=1")

	// The first backup is kept.
	created, err = fsutil.CreateBackup(ctx, path, cfg)
	if err != nil || created {
		t.Fatalf("second CreateBackup() = %v, %v; want false, nil", created, err)
	}

	restored, err := fsutil.RestoreBackup(ctx, path, cfg.Mode)
	if err != nil || !restored {
		t.Fatalf("RestoreBackup() = %v, %v; want true, nil", restored, err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "ORIGINAL=1" {
		t.Errorf("restored content = %q", got)
	}

	removed, err := fsutil.RemoveBackup(path, cfg.Mode)
	if err != nil || !removed {
		t.Fatalf("RemoveBackup() = %v, %v; want true, nil", removed, err)
	}
	removed, err = fsutil.RemoveBackup(path, cfg.Mode)
	if err != nil || removed {
		t.Fatalf("second RemoveBackup() = %v, %v; want false, nil", removed, err)
	}
}

func TestCreateBackupDisabled(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), ".env")
	writeFile(t, path, "A=1")

	for _, cfg := range []fsutil.BackupConfig{
		{Enabled: false, Mode: fsutil.BackupModeSidecar},
		{Enabled: true, Mode: fsutil.BackupModeNone},
	} {
		created, err := fsutil.CreateBackup(ctx, path, cfg)
		if err != nil || created {
			t.Errorf("CreateBackup(%+v) = %v, %v; want false, nil", cfg, created, err)
		}
	}
	if fsutil.Exists(path + fsutil.BackupSuffix) {
		t.Error("backup written while disabled")
	}
}

func TestCreateBackupMissingOriginal(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".env")
	created, err := fsutil.CreateBackup(context.Background(), path, fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar})
	if err != nil || created {
		t.Errorf("CreateBackup() = %v, %v; want false, nil", created, err)
	}
}
