package runner

import "github.com/yaklabco/sclangfmt/pkg/format"

// FileOutcome is what happened to one file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Original is the decoded input.
	Original []byte

	// Result is the formatting result. For Markdown files it describes the
	// whole document. Nil when Error is set.
	Result *format.Result

	// Markdown is true when only code fences were formatted.
	Markdown bool

	// Fences is the number of SuperCollider fences found in a Markdown file.
	Fences int

	// Written is true when the formatted output replaced the file.
	Written bool

	// BackedUp is true when a backup was taken before writing.
	BackedUp bool

	// Error is set if the file could not be processed.
	Error error
}

// Changed reports whether formatting changed the file's content.
func (o FileOutcome) Changed() bool {
	return o.Result != nil && o.Result.Changed
}

// Stats aggregates a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesChanged    int
	FilesWritten    int
	FilesErrored    int

	// FilesUnstable counts files whose formatting did not settle within
	// the pass limit.
	FilesUnstable int

	EditsApplied int
	EditsDropped int
}

// Result is the overall runner result.
type Result struct {
	// Files holds one outcome per discovered file, sorted by path.
	Files []FileOutcome

	Stats Stats
}

// HasChanges reports whether any file needed formatting.
func (r *Result) HasChanges() bool {
	return r != nil && r.Stats.FilesChanged > 0
}

// HasErrors reports whether any file failed.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	if outcome.Result == nil {
		return
	}

	r.Stats.FilesProcessed++
	if outcome.Result.Changed {
		r.Stats.FilesChanged++
	}
	if outcome.Written {
		r.Stats.FilesWritten++
	}
	if !outcome.Result.Converged {
		r.Stats.FilesUnstable++
	}

	totals := outcome.Result.Totals()
	r.Stats.EditsApplied += totals.Applied
	r.Stats.EditsDropped += totals.Dropped + totals.Blocked
}
