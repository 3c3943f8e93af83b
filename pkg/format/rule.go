// Package format provides the rewriting engine for sclangfmt: the document
// buffer, rule contract, registry and the staged pipeline that drives rules
// to a fixed point.
package format

import "github.com/yaklabco/sclangfmt/pkg/fix"

// Rule defines the interface that all formatting rules must implement.
type Rule interface {
	// ID returns the unique identifier for this rule (e.g., "SC301").
	ID() string

	// Name returns the human-readable name of the rule.
	Name() string

	// Description returns a short description of what the rule rewrites.
	Description() string

	// Stage returns the pipeline stage the rule runs in.
	Stage() Stage

	// DefaultEnabled returns whether the rule is enabled by default.
	DefaultEnabled() bool

	// Tags returns categorization tags for this rule (e.g., ["spacing"]).
	Tags() []string

	// Apply inspects the snapshot and returns edits against it.
	//
	// Rules must:
	//   - hold no state between calls,
	//   - return pairwise disjoint edits,
	//   - leave string, symbol, character and comment bytes alone,
	//   - return no edits for text they already consider formatted.
	Apply(snap *Snapshot) []fix.TextEdit
}

// BaseRule provides the metadata half of the Rule interface.
// Embed it in rule implementations and supply Apply.
//
// Fields are unexported to avoid stutter and name collisions with interface methods.
type BaseRule struct {
	id    string
	name  string
	desc  string
	stage Stage
	tags  []string
}

// NewBaseRule creates a BaseRule with the given properties.
func NewBaseRule(id, name, desc string, stage Stage, tags ...string) BaseRule {
	return BaseRule{
		id:    id,
		name:  name,
		desc:  desc,
		stage: stage,
		tags:  tags,
	}
}

// ID returns the unique identifier for this rule.
func (r *BaseRule) ID() string {
	return r.id
}

// Name returns the human-readable name of the rule.
func (r *BaseRule) Name() string {
	return r.name
}

// Description returns a short description of the rule.
func (r *BaseRule) Description() string {
	return r.desc
}

// Stage returns the pipeline stage of the rule.
func (r *BaseRule) Stage() Stage {
	return r.stage
}

// DefaultEnabled returns whether the rule is enabled by default.
// Override this method to change the default.
func (r *BaseRule) DefaultEnabled() bool {
	return true
}

// Tags returns categorization tags for this rule.
func (r *BaseRule) Tags() []string {
	return r.tags
}
