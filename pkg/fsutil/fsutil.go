// Package fsutil reads and writes SuperCollider sources safely. It decodes
// BOM-marked input to UTF-8, writes formatted output back in the original
// encoding through an atomic rename, keeps backups and detects files that
// changed on disk while they were being formatted.
package fsutil

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"time"
)

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNilFileInfo is returned when a nil FileInfo is passed.
	ErrNilFileInfo = errors.New("nil FileInfo")

	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")

	// ErrModified indicates the file changed on disk after it was read.
	ErrModified = errors.New("file modified since it was read")
)

// FileInfo captures the state of a file when it was read.
type FileInfo struct {
	// Path is the path the file was read from.
	Path string

	// Mode is the file's permission and mode bits.
	Mode os.FileMode

	// ModTime is the file's modification time.
	ModTime time.Time

	// Size is the on-disk size in bytes.
	Size int64

	// Hash is the SHA-256 hash of the raw on-disk bytes.
	Hash [32]byte

	// Encoding is the encoding detected from the byte order mark.
	Encoding Encoding
}

// ReadFile reads a source file and returns its content as UTF-8 along with
// the metadata needed to write it back.
func ReadFile(ctx context.Context, path string) ([]byte, *FileInfo, error) {
	select {
	case <-ctx.Done():
		return nil, nil, fmt.Errorf("read file: %w", ctx.Err())
	default:
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}
	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}

	content, enc, err := Decode(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("decode %s: %w", path, err)
	}

	info := &FileInfo{
		Path:     path,
		Mode:     stat.Mode(),
		ModTime:  stat.ModTime(),
		Size:     stat.Size(),
		Hash:     sha256.Sum256(raw),
		Encoding: enc,
	}
	return content, info, nil
}

func classify(path string, err error) error {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}
}

// CheckModified reports whether the file changed since info was captured.
// Modification time and size are compared first; if both match the content
// is re-hashed. A deleted file counts as modified.
func CheckModified(ctx context.Context, info *FileInfo) (bool, error) {
	if info == nil {
		return false, ErrNilFileInfo
	}

	select {
	case <-ctx.Done():
		return false, fmt.Errorf("check modified: %w", ctx.Err())
	default:
	}

	stat, err := os.Stat(info.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return true, nil
		}
		return false, fmt.Errorf("stat %s: %w", info.Path, err)
	}

	if !stat.ModTime().Equal(info.ModTime) || stat.Size() != info.Size {
		return true, nil
	}

	raw, err := os.ReadFile(info.Path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", info.Path, err)
	}
	return sha256.Sum256(raw) != info.Hash, nil
}
