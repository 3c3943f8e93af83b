package fsutil

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yaklabco/sclangfmt/pkg/config"
)

// BackupMode specifies how backups are stored.
type BackupMode string

const (
	// BackupModeSidecar stores the original next to the file with BackupSuffix appended.
	BackupModeSidecar BackupMode = "sidecar"

	// BackupModeNone disables backups.
	BackupModeNone BackupMode = "none"
)

// BackupSuffix is the suffix used for sidecar backup files.
const BackupSuffix = ".sclangfmt.bak"

// BackupConfig controls backup behavior.
type BackupConfig struct {
	Enabled bool
	Mode    BackupMode
}

// BackupConfigFrom derives the backup behavior for a run from the loaded
// configuration. --no-backups wins over the config file.
func BackupConfigFrom(cfg *config.Config) BackupConfig {
	if cfg == nil || cfg.NoBackups {
		return BackupConfig{Mode: BackupModeNone}
	}

	mode := BackupMode(cfg.Backups.Mode)
	if mode == "" {
		mode = BackupModeSidecar
	}
	return BackupConfig{Enabled: cfg.Backups.Enabled, Mode: mode}
}

// BackupPath returns the backup path for the given file, or "" when mode
// keeps no backups.
func BackupPath(path string, mode BackupMode) string {
	if mode == BackupModeNone {
		return ""
	}
	return path + BackupSuffix
}

// CreateBackup copies path to its backup location unless a backup already
// exists. An existing backup is never overwritten so repeated runs keep the
// first original. It returns true if a backup was written.
func CreateBackup(ctx context.Context, path string, cfg BackupConfig) (bool, error) {
	backupPath := BackupPath(path, cfg.Mode)
	if !cfg.Enabled || backupPath == "" {
		return false, nil
	}

	select {
	case <-ctx.Done():
		return false, fmt.Errorf("create backup: %w", ctx.Err())
	default:
	}

	if _, err := os.Stat(backupPath); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("stat backup path: %w", err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat original for backup: %w", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read original for backup: %w", err)
	}

	if err := WriteAtomic(ctx, backupPath, content, stat.Mode().Perm()); err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}
	return true, nil
}
