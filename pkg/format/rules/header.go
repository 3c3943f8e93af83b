package rules

import (
	"github.com/yaklabco/sclangfmt/pkg/cst"
	"github.com/yaklabco/sclangfmt/pkg/fix"
	"github.com/yaklabco/sclangfmt/pkg/format"
)

// PipeDefaultParensRule wraps non-literal parameter defaults in
// parentheses, which the language requires for computed defaults.
type PipeDefaultParensRule struct {
	format.BaseRule
}

// NewPipeDefaultParensRule creates a new pipe default parens rule.
func NewPipeDefaultParensRule() *PipeDefaultParensRule {
	return &PipeDefaultParensRule{
		BaseRule: format.NewBaseRule(
			"SC201",
			"pipe-default-parens",
			"Parameter defaults that are not literals are wrapped in parentheses",
			format.StageHeader,
			"headers",
		),
	}
}

// Apply turns `|a = 1 + 2|` into `|a = (1 + 2)|`.
func (r *PipeDefaultParensRule) Apply(snap *format.Snapshot) []fix.TextEdit {
	b := snap.Edits()

	for _, param := range snap.NodesOfKind(cst.KindParameter) {
		kids := param.Significant()
		if len(kids) != 2 || param.ContainsError() {
			continue
		}
		def := kids[1]
		if literalDefault(snap, def) || def.ContainsComment() {
			continue
		}
		b.ReplaceRange(def.Start, def.End, "("+text(snap, def)+")")
	}

	return b.Edits()
}

// literalDefault reports whether a default value needs no parentheses.
func literalDefault(snap *format.Snapshot, n *cst.Node) bool {
	switch n.Kind {
	case cst.KindNumber, cst.KindString, cst.KindSymbol, cst.KindChar,
		cst.KindKeyword, cst.KindLiteralSymbol, cst.KindParen, cst.KindEvent:
		return true
	case cst.KindUnary:
		return snap.Content[n.Start] == '-' && n.FirstChild != nil && n.FirstChild.Kind == cst.KindNumber
	case cst.KindCollection:
		return snap.Content[n.Start] == '#'
	}
	return false
}
