package fsutil_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/sclangfmt/pkg/config"
	"github.com/yaklabco/sclangfmt/pkg/fsutil"
)

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	t.Run("creates file with default mode", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "new.scd")
		if err := fsutil.WriteAtomic(context.Background(), path, []byte("x;\n"), 0); err != nil {
			t.Fatalf("WriteAtomic() error = %v", err)
		}

		stat, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if stat.Mode().Perm() != fsutil.DefaultFileMode {
			t.Errorf("mode = %o, want %o", stat.Mode().Perm(), fsutil.DefaultFileMode)
		}
	})

	t.Run("leaves no temp files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "a.scd")
		for _, content := range []string{"one", "two"} {
			if err := fsutil.WriteAtomic(context.Background(), path, []byte(content), 0o600); err != nil {
				t.Fatal(err)
			}
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 1 {
			t.Errorf("expected only the target file, found %d entries", len(entries))
		}
		if got, _ := os.ReadFile(path); string(got) != "two" {
			t.Errorf("content = %q, want two", got)
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "missing", "a.scd")
		if err := fsutil.WriteAtomic(context.Background(), path, []byte("x"), 0); err == nil {
			t.Error("expected error for missing directory")
		}
	})
}

func TestWriteFormatted(t *testing.T) {
	t.Parallel()

	t.Run("keeps encoding and mode and backs up", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "bom.scd")
		original := []byte("\xEF\xBB\xBFx=1;")
		if err := os.WriteFile(path, original, 0o600); err != nil {
			t.Fatal(err)
		}

		_, info, err := fsutil.ReadFile(context.Background(), path)
		if err != nil {
			t.Fatal(err)
		}

		cfg := fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}
		backedUp, err := fsutil.WriteFormatted(context.Background(), info, []byte("x = 1;\n"), cfg)
		if err != nil {
			t.Fatalf("WriteFormatted() error = %v", err)
		}
		if !backedUp {
			t.Error("expected a backup")
		}

		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != "\xEF\xBB\xBFx = 1;\n" {
			t.Errorf("content = %q", got)
		}
		stat, _ := os.Stat(path)
		if stat.Mode().Perm() != 0o600 {
			t.Errorf("mode = %o, want 600", stat.Mode().Perm())
		}
		if backup, _ := os.ReadFile(path + fsutil.BackupSuffix); string(backup) != string(original) {
			t.Errorf("backup = %q, want original", backup)
		}
	})

	t.Run("refuses a file changed on disk", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a.scd")
		if err := os.WriteFile(path, []byte("x;"), 0o644); err != nil {
			t.Fatal(err)
		}
		_, info, err := fsutil.ReadFile(context.Background(), path)
		if err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("someone else;"), 0o644); err != nil {
			t.Fatal(err)
		}

		_, err = fsutil.WriteFormatted(context.Background(), info, []byte("x;\n"), fsutil.BackupConfig{})
		if !errors.Is(err, fsutil.ErrModified) {
			t.Errorf("error = %v, want ErrModified", err)
		}
		if got, _ := os.ReadFile(path); string(got) != "someone else;" {
			t.Errorf("file was overwritten: %q", got)
		}
	})
}

func TestCreateBackup(t *testing.T) {
	t.Parallel()

	t.Run("first backup wins", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a.scd")
		cfg := fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}

		if err := os.WriteFile(path, []byte("first"), 0o644); err != nil {
			t.Fatal(err)
		}
		if created, err := fsutil.CreateBackup(context.Background(), path, cfg); err != nil || !created {
			t.Fatalf("CreateBackup() = %v, %v", created, err)
		}

		if err := os.WriteFile(path, []byte("second"), 0o644); err != nil {
			t.Fatal(err)
		}
		if created, err := fsutil.CreateBackup(context.Background(), path, cfg); err != nil || created {
			t.Fatalf("second CreateBackup() = %v, %v", created, err)
		}

		if backup, _ := os.ReadFile(path + fsutil.BackupSuffix); string(backup) != "first" {
			t.Errorf("backup = %q, want first", backup)
		}
	})

	t.Run("disabled", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a.scd")
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}

		for _, cfg := range []fsutil.BackupConfig{
			{Enabled: false, Mode: fsutil.BackupModeSidecar},
			{Enabled: true, Mode: fsutil.BackupModeNone},
		} {
			if created, err := fsutil.CreateBackup(context.Background(), path, cfg); err != nil || created {
				t.Errorf("CreateBackup(%+v) = %v, %v", cfg, created, err)
			}
		}
	})
}

func TestBackupConfigFrom(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	if got := fsutil.BackupConfigFrom(cfg); !got.Enabled || got.Mode != fsutil.BackupModeSidecar {
		t.Errorf("defaults = %+v", got)
	}

	cfg.NoBackups = true
	if got := fsutil.BackupConfigFrom(cfg); got.Enabled {
		t.Errorf("--no-backups should disable backups, got %+v", got)
	}

	if got := fsutil.BackupPath("a.scd", fsutil.BackupModeNone); got != "" {
		t.Errorf("BackupPath(none) = %q", got)
	}
}
