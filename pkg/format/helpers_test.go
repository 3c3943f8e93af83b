package format_test

import (
	"context"
	"errors"
	"strings"

	"github.com/yaklabco/sclangfmt/pkg/cst"
	"github.com/yaklabco/sclangfmt/pkg/fix"
	"github.com/yaklabco/sclangfmt/pkg/format"
	"github.com/yaklabco/sclangfmt/pkg/parser/sclang"
)

// funcRule adapts a function to the Rule interface.
type funcRule struct {
	format.BaseRule
	enabled bool
	fn      func(snap *format.Snapshot) []fix.TextEdit
}

func newFuncRule(id string, stage format.Stage, fn func(snap *format.Snapshot) []fix.TextEdit) *funcRule {
	return &funcRule{
		BaseRule: format.NewBaseRule(id, "rule-"+strings.ToLower(id), "test rule", stage, "test"),
		enabled:  true,
		fn:       fn,
	}
}

func (r *funcRule) DefaultEnabled() bool { return r.enabled }

func (r *funcRule) Apply(snap *format.Snapshot) []fix.TextEdit { return r.fn(snap) }

var errRejected = errors.New("rejected content")

// rejectingParser fails on any content holding marker.
type rejectingParser struct {
	marker string
	inner  *sclang.Parser
}

func (p *rejectingParser) Parse(ctx context.Context, path string, content []byte) (*cst.Tree, error) {
	if strings.Contains(string(content), p.marker) {
		return nil, errRejected
	}
	return p.inner.Parse(ctx, path, content)
}

// spaceAfterComma inserts one space after every code comma followed by a
// non-space byte.
func spaceAfterComma(snap *format.Snapshot) []fix.TextEdit {
	b := snap.Edits()
	for i := range snap.Len() - 1 {
		if snap.CodeAt(i, ',') && snap.Content[i+1] != ' ' && snap.Content[i+1] != '\n' {
			b.Insert(i+1, " ")
		}
	}
	return b.Edits()
}
