// Package reporter writes the outcome of a formatting run as text, JSON or
// unified diffs.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/sclangfmt/pkg/config"
	"github.com/yaklabco/sclangfmt/pkg/runner"
)

// Reporter formats and writes run results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of files that changed and any write errors.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}
	if opts.ErrorWriter == nil {
		opts.ErrorWriter = DefaultOptions().ErrorWriter
	}

	format := opts.Format
	if format == "" {
		format = config.FormatText
	}

	switch format {
	case config.FormatJSON:
		return NewJSONReporter(opts), nil
	case config.FormatDiff:
		return NewDiffReporter(opts), nil
	case config.FormatText:
		return NewTextReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
