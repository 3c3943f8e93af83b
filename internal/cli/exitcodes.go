package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/yaklabco/sclangfmt/internal/configloader"
	"github.com/yaklabco/sclangfmt/pkg/format"
	"github.com/yaklabco/sclangfmt/pkg/fsutil"
)

// Exit codes for sclangfmt.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitUnformatted indicates files need formatting (--check) or a file
	// could not be formatted.
	ExitUnformatted = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrUnformatted is returned by --check when files would change.
	ErrUnformatted = errors.New("files need formatting")

	// ErrFilesFailed is returned when some files could not be formatted.
	// The failures themselves have already been reported.
	ErrFilesFailed = errors.New("some files could not be formatted")

	// ErrUsage marks invalid flags or arguments.
	ErrUsage = errors.New("invalid usage")
)

// usageError wraps a message with ErrUsage.
func usageError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUsage, fmt.Sprintf(format, args...))
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	var validationErr *configloader.ValidationError
	var pathErr *fs.PathError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.As(err, &validationErr), errors.Is(err, format.ErrUnknownPhase):
		return ExitConfigError
	case errors.Is(err, ErrUnformatted), errors.Is(err, ErrFilesFailed):
		return ExitUnformatted
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.As(err, &pathErr):
		return ExitIOError
	default:
		return ExitInternalError
	}
}

// IsReported reports whether err only signals an outcome that was already
// shown to the user, so it should not be logged again.
func IsReported(err error) bool {
	if err == nil {
		return false
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			if !IsReported(e) {
				return false
			}
		}
		return true
	}
	return errors.Is(err, ErrUnformatted) || errors.Is(err, ErrFilesFailed)
}
