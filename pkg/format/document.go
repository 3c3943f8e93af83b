package format

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/sclangfmt/internal/logging"
	"github.com/yaklabco/sclangfmt/pkg/config"
	"github.com/yaklabco/sclangfmt/pkg/cst"
	"github.com/yaklabco/sclangfmt/pkg/fix"
	"github.com/yaklabco/sclangfmt/pkg/scan"
)

// ErrParseFailure indicates the parser could not produce a tree. It is
// fatal: formatting stops and no partial output is returned.
var ErrParseFailure = errors.New("parse failure")

// ApplyStats counts what happened to one batch of edits.
type ApplyStats struct {
	// Applied is the number of edits written to the text.
	Applied int

	// Dropped is the number of edits that lost a conflict to an edit with
	// a later start.
	Dropped int

	// Blocked is the number of edits that touched an error region.
	Blocked int

	// Rejected is the number of edits in a batch refused as invalid.
	Rejected int
}

// Add accumulates other into s.
func (s *ApplyStats) Add(other ApplyStats) {
	s.Applied += other.Applied
	s.Dropped += other.Dropped
	s.Blocked += other.Blocked
	s.Rejected += other.Rejected
}

// Document owns the text being formatted and the tree parsed from it.
// The tree, class table and error ranges are always rebuilt from the
// current text before anything reads them again.
type Document struct {
	parser   Parser
	path     string
	content  []byte
	tree     *cst.Tree
	classes  scan.Classes
	errors   []scan.Span
	indent   IndentStyle
	maxWidth int
}

// NewDocument parses content and returns a document ready for rules.
// content is copied; the caller may reuse it.
func NewDocument(ctx context.Context, parser Parser, path string, content []byte, indent IndentStyle) (*Document, error) {
	doc := &Document{
		parser:   parser,
		path:     path,
		indent:   indent,
		maxWidth: config.DefaultMaxWidth,
	}

	if err := doc.reparse(ctx, bytes.Clone(content)); err != nil {
		return nil, err
	}
	return doc, nil
}

// WithMaxWidth sets the column limit exposed to layout rules.
func (d *Document) WithMaxWidth(width int) *Document {
	if width > 0 {
		d.maxWidth = width
	}
	return d
}

// Path returns the logical path of the document.
func (d *Document) Path() string {
	return d.path
}

// Text returns the current text. Callers must not modify it.
func (d *Document) Text() []byte {
	return d.content
}

// Tree returns the tree for the current text.
func (d *Document) Tree() *cst.Tree {
	return d.tree
}

// Indent returns the indentation style for this formatting call.
func (d *Document) Indent() IndentStyle {
	return d.indent
}

// Slice returns bytes [start, end) of the current text, clamped to the
// document bounds.
func (d *Document) Slice(start, end int) string {
	start = max(start, 0)
	end = min(end, len(d.content))
	if start >= end {
		return ""
	}
	return string(d.content[start:end])
}

// Snapshot returns an immutable view of the current state for one rule.
func (d *Document) Snapshot() *Snapshot {
	return &Snapshot{
		Path:     d.path,
		Content:  d.content,
		Tree:     d.tree,
		Classes:  d.classes,
		Indent:   d.indent,
		MaxWidth: d.maxWidth,
		errors:   d.errors,
	}
}

// Apply applies one rule's edits and reparses the result.
//
// All edits must be computed against the current text. A batch holding an
// out-of-range edit is refused whole and logged, since it can only come
// from a broken rule. Edits touching an error region are blocked. Of the
// rest, an edit overlapping one with a later start is dropped. The
// survivors are applied and the whole text is parsed again; a parse
// failure is returned wrapped in ErrParseFailure and leaves the document
// unchanged.
func (d *Document) Apply(ctx context.Context, edits []fix.TextEdit) (ApplyStats, error) {
	var stats ApplyStats
	if len(edits) == 0 {
		return stats, nil
	}

	if err := fix.ValidateEdits(edits, len(d.content)); err != nil {
		logging.FromContext(ctx).Warn("rejected invalid edit batch",
			logging.FieldPath, d.path,
			logging.FieldEdits, len(edits),
			logging.FieldError, err)
		stats.Rejected = len(edits)
		return stats, nil
	}

	open := make([]fix.TextEdit, 0, len(edits))
	for _, e := range edits {
		if d.intersectsError(e.StartOffset, e.EndOffset) {
			stats.Blocked++
			continue
		}
		open = append(open, e)
	}

	accepted, skipped, err := fix.PrepareEdits(open, len(d.content))
	if err != nil {
		return stats, fmt.Errorf("prepare edits: %w", err)
	}
	stats.Applied = len(accepted)
	stats.Dropped = len(skipped)

	if len(accepted) == 0 {
		return stats, nil
	}

	next := fix.ApplyEdits(d.content, accepted)
	if bytes.Equal(next, d.content) {
		return stats, nil
	}

	if err := d.reparse(ctx, next); err != nil {
		return stats, err
	}
	return stats, nil
}

// reparse replaces the text and rebuilds everything derived from it.
func (d *Document) reparse(ctx context.Context, content []byte) error {
	tree, err := d.parser.Parse(ctx, d.path, content)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrParseFailure, err)
	}
	if tree == nil || tree.Root == nil {
		return fmt.Errorf("%w: parser returned no tree for %s", ErrParseFailure, d.path)
	}

	d.content = content
	d.tree = tree
	d.classes = scan.Classify(content)
	d.errors = tree.ErrorRanges()
	return nil
}

func (d *Document) intersectsError(start, end int) bool {
	return spansIntersect(d.errors, start, end)
}

// spansIntersect reports whether [start, end) overlaps any span. An empty
// range intersects a span only when it falls strictly inside it.
func spansIntersect(spans []scan.Span, start, end int) bool {
	for _, s := range spans {
		if s.Start >= max(end, start+1) {
			break
		}
		if start == end {
			if s.Start < start && start < s.End {
				return true
			}
			continue
		}
		if start < s.End && s.Start < end {
			return true
		}
	}
	return false
}
