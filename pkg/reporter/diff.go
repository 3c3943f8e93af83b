package reporter

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/yaklabco/sclangfmt/internal/ui/pretty"
	"github.com/yaklabco/sclangfmt/pkg/fix"
	"github.com/yaklabco/sclangfmt/pkg/runner"
)

// DiffReporter formats results as unified diffs in git style.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Report implements Reporter.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	if result == nil {
		return 0, nil
	}

	var filesWithDiffs int
	var totalAdditions, totalDeletions int

	for _, file := range result.Files {
		if file.Error != nil {
			errOut := r.opts.ErrorWriter
			if errOut == nil {
				errOut = r.out
			}
			fmt.Fprintf(errOut, "%s: %s\n",
				r.styles.FilePath.Render(file.Path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}

		if !file.Changed() {
			continue
		}

		diff := fix.GenerateDiff(r.opts.displayPath(file.Path), file.Original, file.Result.Output)
		if !diff.HasChanges() {
			continue
		}

		filesWithDiffs++
		totalAdditions += diff.Additions
		totalDeletions += diff.Deletions
		r.writeDiff(diff)
	}

	if filesWithDiffs > 0 && r.opts.ShowSummary {
		r.writeSummary(filesWithDiffs, totalAdditions, totalDeletions)
	}

	return filesWithDiffs, nil
}

// writeDiff outputs a single file's diff with formatting.
func (r *DiffReporter) writeDiff(diff *fix.Diff) {
	path := strings.TrimPrefix(diff.Path, "/")
	header := fmt.Sprintf("diff --git a/%s b/%s", path, path)
	fmt.Fprintln(r.out, r.styles.DiffHeader.Render(header))

	for _, line := range strings.Split(strings.TrimSuffix(diff.String(), "\n"), "\n") {
		r.writeDiffLine(line)
	}

	fmt.Fprintln(r.out)
}

// writeDiffLine formats a single diff line with color.
func (r *DiffReporter) writeDiffLine(line string) {
	var styled string

	switch {
	case strings.HasPrefix(line, "@@"):
		styled = r.styles.DiffHunk.Render(line)
	case strings.HasPrefix(line, "+"):
		styled = r.styles.DiffAdd.Render(line)
	case strings.HasPrefix(line, "-"):
		styled = r.styles.DiffRemove.Render(line)
	default:
		styled = r.styles.DiffContext.Render(line)
	}

	fmt.Fprintln(r.out, styled)
}

// writeSummary writes a git-style stat line at the end.
func (r *DiffReporter) writeSummary(files, additions, deletions int) {
	parts := []string{fmt.Sprintf("%d %s changed", files, plural(files, "file", "files"))}

	if additions > 0 {
		parts = append(parts, r.styles.DiffAdd.Render(
			fmt.Sprintf("%d %s(+)", additions, plural(additions, "insertion", "insertions"))))
	}
	if deletions > 0 {
		parts = append(parts, r.styles.DiffRemove.Render(
			fmt.Sprintf("%d %s(-)", deletions, plural(deletions, "deletion", "deletions"))))
	}

	fmt.Fprintln(r.out, strings.Join(parts, ", "))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
