package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/sclangfmt/internal/ui/pretty"
	"github.com/yaklabco/sclangfmt/pkg/config"
	"github.com/yaklabco/sclangfmt/pkg/runner"
)

// TextReporter lists changed and failed files as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to format."))
		}
		return 0, nil
	}

	var changed int
	for _, file := range result.Files {
		path := r.styles.FilePath.Render(r.opts.displayPath(file.Path))

		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n", path, r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)))
			continue
		}
		if file.Result == nil {
			continue
		}

		if !file.Result.Converged {
			fmt.Fprintf(r.bw, "%s: %s\n", path, r.styles.Warning.Render(
				fmt.Sprintf("formatting did not settle after %d passes", file.Result.Passes)))
		}
		if !file.Changed() {
			continue
		}

		changed++
		fmt.Fprintf(r.bw, "%s %s\n", r.styles.Changed.Render(r.verb(file)), path)
		if r.opts.ShowRules {
			r.writeRules(file)
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats, r.opts.Check))
	}

	return changed, nil
}

func (r *TextReporter) verb(file runner.FileOutcome) string {
	switch {
	case file.Written:
		return "reformatted"
	case r.opts.Check:
		return "unformatted"
	default:
		return "would reformat"
	}
}

// writeRules lists the rules that applied edits, in pipeline order.
func (r *TextReporter) writeRules(file runner.FileOutcome) {
	for _, rs := range file.Result.Rules {
		if rs.Applied == 0 {
			continue
		}
		id := config.FormatRuleID(r.opts.RuleFormat, rs.RuleID, rs.RuleName)
		fmt.Fprintf(r.bw, "    %s %s\n", r.styles.RuleID.Render(id), r.styles.Dim.Render(fmt.Sprintf("(%d)", rs.Applied)))
	}
}
