package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/sclangfmt/pkg/runner"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummary renders run statistics as one line. In check mode changed
// files are reported as needing formatting; otherwise as formatted or,
// when written, as rewritten.
// Example: "2 of 5 files need formatting, 1 failed".
func (s *Styles) FormatSummary(stats runner.Stats, check bool) string {
	total := stats.FilesProcessed + stats.FilesErrored

	var parts []string
	switch {
	case stats.FilesChanged == 0:
		parts = append(parts, s.Success.Render("All files formatted")+
			s.Dim.Render(fmt.Sprintf(" (%d %s checked)", total, plural(total, "file", "files"))))
	case check:
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d of %d %s need formatting",
			stats.FilesChanged, total, plural(total, "file", "files"))))
	case stats.FilesWritten > 0:
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d of %d %s reformatted",
			stats.FilesWritten, total, plural(total, "file", "files"))))
	default:
		parts = append(parts, s.Changed.Render(fmt.Sprintf("%d of %d %s would change",
			stats.FilesChanged, total, plural(total, "file", "files"))))
	}

	if stats.FilesErrored > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}
	if stats.FilesUnstable > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d did not settle", stats.FilesUnstable)))
	}

	return strings.Join(parts, ", ") + "\n"
}
