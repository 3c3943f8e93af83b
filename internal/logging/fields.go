// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Configuration fields.
	FieldPhase     = "phase"
	FieldIndent    = "indent"
	FieldMaxWidth  = "max_width"
	FieldMaxPasses = "max_passes"
	FieldWrite     = "write"
	FieldCheck     = "check"
	FieldJobs      = "jobs"

	// Pipeline fields.
	FieldRule    = "rule"
	FieldPass    = "pass"
	FieldPasses  = "passes"
	FieldEdits   = "edits"
	FieldApplied = "applied"
	FieldDropped = "dropped"
	FieldBlocked = "blocked"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesChanged    = "files_changed"
	FieldFilesFailed     = "files_failed"
	FieldFences          = "fences"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
