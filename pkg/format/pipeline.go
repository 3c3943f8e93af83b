package format

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yaklabco/sclangfmt/internal/logging"
	"github.com/yaklabco/sclangfmt/pkg/config"
)

// DefaultMaxPasses is the maximum number of full pipeline passes. Rules are
// written so one pass is normally enough; a second pass confirms it.
const DefaultMaxPasses = config.DefaultMaxPasses

// Options controls one formatting call.
type Options struct {
	// Phase selects what runs. Empty means PhaseInline.
	Phase Phase

	// Indent is the indentation rules emit.
	Indent IndentStyle

	// MaxWidth is the column limit for layout decisions.
	// Set to 0 to use config.DefaultMaxWidth.
	MaxWidth int

	// MaxPasses bounds the fixed-point loop. Set to 0 to use
	// DefaultMaxPasses; 1 runs the stages exactly once.
	MaxPasses int

	// Stages limits the run to these stages. Empty means all.
	Stages []Stage

	// Config supplies rule enablement. May be nil.
	Config *config.Config
}

// DefaultOptions returns options for the inline phase with four-space
// indentation and an 80-column limit.
func DefaultOptions() Options {
	return Options{
		Phase:     PhaseInline,
		Indent:    DefaultIndent(),
		MaxWidth:  config.DefaultMaxWidth,
		MaxPasses: DefaultMaxPasses,
	}
}

// OptionsFromConfig builds Options from a loaded configuration.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	if cfg == nil {
		return DefaultOptions(), nil
	}

	phase, err := ParsePhase(cfg.Phase)
	if err != nil {
		return Options{}, err
	}

	return Options{
		Phase:     phase,
		Indent:    IndentFromConfig(cfg.Indent),
		MaxWidth:  cfg.MaxWidth,
		MaxPasses: cfg.MaxPasses,
		Config:    cfg,
	}, nil
}

// RuleStats is the edit bookkeeping for one rule over a whole run.
type RuleStats struct {
	RuleID   string
	RuleName string
	ApplyStats
}

// Result is the outcome of one formatting call.
type Result struct {
	// Path is the logical path that was formatted.
	Path string

	// Output is the formatted text.
	Output []byte

	// Changed is true if Output differs from the input.
	Changed bool

	// Passes is the number of full passes over the stages.
	Passes int

	// Converged is false when MaxPasses ran out while the text was still
	// changing.
	Converged bool

	// Rules holds per-rule statistics in pipeline order.
	Rules []RuleStats
}

// Totals sums the statistics of every rule.
func (r *Result) Totals() ApplyStats {
	var total ApplyStats
	for _, rs := range r.Rules {
		total.Add(rs.ApplyStats)
	}
	return total
}

// Pipeline runs the enabled rules of a registry over a document.
type Pipeline struct {
	// Parser parses the text initially and after every applied batch.
	Parser Parser

	// Registry supplies the rules.
	Registry *Registry
}

// NewPipeline creates a pipeline.
func NewPipeline(parser Parser, registry *Registry) *Pipeline {
	return &Pipeline{Parser: parser, Registry: registry}
}

// Format runs the pipeline with default options and returns the output.
func (p *Pipeline) Format(ctx context.Context, src []byte) ([]byte, error) {
	result, err := p.Run(ctx, "", src, DefaultOptions())
	if err != nil {
		return nil, err
	}
	return result.Output, nil
}

// Run formats src.
//
// Every enabled rule runs once per pass, in stage order, and its edits are
// applied and reparsed before the next rule reads the document. Passes
// repeat until one leaves the text unchanged or MaxPasses is reached.
// A cancelled context or a parse failure aborts the run with no output.
func (p *Pipeline) Run(ctx context.Context, path string, src []byte, opts Options) (*Result, error) {
	phase, err := ParsePhase(string(opts.Phase))
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("format cancelled: %w", err)
	}

	result := &Result{Path: path, Converged: true}
	if !phase.RunsPipeline() {
		result.Output = bytes.Clone(src)
		return result, nil
	}

	maxPasses := opts.MaxPasses
	if maxPasses <= 0 {
		maxPasses = DefaultMaxPasses
	}

	logger := logging.FromContext(ctx)
	rules := ResolveRules(p.Registry, opts.Config, opts.Stages)

	doc, err := NewDocument(ctx, p.Parser, path, src, opts.Indent)
	if err != nil {
		return nil, err
	}
	doc.WithMaxWidth(opts.MaxWidth)

	result.Rules = make([]RuleStats, len(rules))
	for i, rule := range rules {
		result.Rules[i] = RuleStats{RuleID: rule.ID(), RuleName: rule.Name()}
	}

	result.Converged = false
	for pass := 1; pass <= maxPasses; pass++ {
		before := doc.Text()

		for i, rule := range rules {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("format cancelled: %w", err)
			}

			edits := rule.Apply(doc.Snapshot())
			if len(edits) == 0 {
				continue
			}

			stats, err := doc.Apply(ctx, edits)
			if err != nil {
				return nil, fmt.Errorf("rule %s: %w", rule.ID(), err)
			}
			result.Rules[i].Add(stats)

			logger.Debug("rule applied",
				logging.FieldRule, rule.ID(),
				logging.FieldPass, pass,
				logging.FieldApplied, stats.Applied,
				logging.FieldDropped, stats.Dropped,
				logging.FieldBlocked, stats.Blocked)
		}

		result.Passes = pass
		if bytes.Equal(before, doc.Text()) {
			result.Converged = true
			break
		}
	}

	if !result.Converged && maxPasses > 1 {
		logger.Warn("formatting did not converge",
			logging.FieldPath, path,
			logging.FieldPasses, result.Passes)
	}

	result.Output = doc.Text()
	result.Changed = !bytes.Equal(result.Output, src)
	return result, nil
}
