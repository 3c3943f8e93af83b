package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/sclangfmt/pkg/config"
	"github.com/yaklabco/sclangfmt/pkg/runner"
)

// jsonVersion is the schema version of JSONOutput.
const jsonVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path      string         `json:"path"`
	Changed   bool           `json:"changed"`
	Written   bool           `json:"written,omitempty"`
	BackedUp  bool           `json:"backedUp,omitempty"`
	Markdown  bool           `json:"markdown,omitempty"`
	Fences    int            `json:"fences,omitempty"`
	Passes    int            `json:"passes"`
	Converged bool           `json:"converged"`
	Rules     []JSONRuleStat `json:"rules,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// JSONRuleStat holds the edit counts of one rule that did something.
type JSONRuleStat struct {
	Rule    string `json:"rule"`
	Applied int    `json:"applied"`
	Dropped int    `json:"dropped,omitempty"`
	Blocked int    `json:"blocked,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked  int `json:"filesChecked"`
	FilesChanged  int `json:"filesChanged"`
	FilesWritten  int `json:"filesWritten"`
	FilesErrored  int `json:"filesErrored"`
	FilesUnstable int `json:"filesUnstable"`
	EditsApplied  int `json:"editsApplied"`
	EditsDropped  int `json:"editsDropped"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.FilesChanged, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonVersion,
		Files:   make([]JSONFileResult, 0),
	}

	if result == nil {
		return output
	}

	output.Files = make([]JSONFileResult, 0, len(result.Files))
	for _, file := range result.Files {
		output.Files = append(output.Files, r.buildFile(file))
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesChecked:  stats.FilesProcessed + stats.FilesErrored,
		FilesChanged:  stats.FilesChanged,
		FilesWritten:  stats.FilesWritten,
		FilesErrored:  stats.FilesErrored,
		FilesUnstable: stats.FilesUnstable,
		EditsApplied:  stats.EditsApplied,
		EditsDropped:  stats.EditsDropped,
	}

	return output
}

func (r *JSONReporter) buildFile(file runner.FileOutcome) JSONFileResult {
	fileResult := JSONFileResult{
		Path:     r.opts.displayPath(file.Path),
		Changed:  file.Changed(),
		Written:  file.Written,
		BackedUp: file.BackedUp,
		Markdown: file.Markdown,
		Fences:   file.Fences,
	}

	if file.Error != nil {
		fileResult.Error = file.Error.Error()
		return fileResult
	}
	if file.Result == nil {
		return fileResult
	}

	fileResult.Passes = file.Result.Passes
	fileResult.Converged = file.Result.Converged
	for _, rs := range file.Result.Rules {
		if rs.Applied == 0 && rs.Dropped == 0 && rs.Blocked == 0 {
			continue
		}
		fileResult.Rules = append(fileResult.Rules, JSONRuleStat{
			Rule:    config.FormatRuleID(r.opts.RuleFormat, rs.RuleID, rs.RuleName),
			Applied: rs.Applied,
			Dropped: rs.Dropped,
			Blocked: rs.Blocked,
		})
	}

	return fileResult
}
