package rules

import (
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/sclangfmt/pkg/cst"
	"github.com/yaklabco/sclangfmt/pkg/fix"
	"github.com/yaklabco/sclangfmt/pkg/format"
	"github.com/yaklabco/sclangfmt/pkg/scan"
)

// trailingIf is an `if (cond) {a} {b}` call whose condition and bodies
// each fit on one line.
type trailingIf struct {
	call   *cst.Node
	cond   string
	bodies []string
}

// parseTrailingIf recognizes a clean trailing-block if.
func parseTrailingIf(snap *format.Snapshot, n *cst.Node) (trailingIf, bool) {
	if calleeName(snap, n) != "if" || !usable(n) {
		return trailingIf{}, false
	}
	args, ok := argumentsOf(snap, n.FirstChildOfKind(cst.KindCallArgs))
	if !ok || len(args) != 1 {
		return trailingIf{}, false
	}
	cond := args[0].Significant()
	if len(cond) != 1 || !singleLine(snap, cond[0].Start, cond[0].End) {
		return trailingIf{}, false
	}

	blocks := n.ChildrenOfKind(cst.KindFunctionBlock)
	if len(blocks) == 0 || len(blocks) > 2 {
		return trailingIf{}, false
	}
	out := trailingIf{call: n, cond: text(snap, cond[0])}
	for _, blk := range blocks {
		body, ok := blockBody(snap, blk)
		if !ok {
			return trailingIf{}, false
		}
		out.bodies = append(out.bodies, body)
	}
	return out, utf8.ValidString(out.cond)
}

// compact renders the if on one line.
func (t trailingIf) compact() string {
	var sb strings.Builder
	sb.WriteString("if (" + t.cond + ")")
	for _, body := range t.bodies {
		sb.WriteString(" " + padded(body))
	}
	return sb.String()
}

// expand renders each body on its own line between braces.
func (t trailingIf) expand(indent, unit string) string {
	var sb strings.Builder
	sb.WriteString("if (" + t.cond + ")")
	for _, body := range t.bodies {
		if body == "" {
			sb.WriteString(" { }")
			continue
		}
		sb.WriteString(" {\n" + indent + unit + body + "\n" + indent + "}")
	}
	return sb.String()
}

func (t trailingIf) empty() bool {
	for _, body := range t.bodies {
		if body != "" {
			return false
		}
	}
	return true
}

// IfCompactRule collapses a multi-line trailing-block if onto one line
// when the result fits.
type IfCompactRule struct {
	format.BaseRule
}

// NewIfCompactRule creates a new if compact rule.
func NewIfCompactRule() *IfCompactRule {
	return &IfCompactRule{
		BaseRule: format.NewBaseRule(
			"SC501",
			"if-trailing-compact",
			"A multi-line if whose parts are one line each is collapsed when it fits the column limit",
			format.StageLayout,
			"layout", "width",
		),
	}
}

// Apply turns `if (c) {\n    a\n} {\n    b\n}` into `if (c) { a } { b }`.
func (r *IfCompactRule) Apply(snap *format.Snapshot) []fix.TextEdit {
	b := snap.Edits()

	for _, n := range snap.NodesOfKind(cst.KindCall) {
		if singleLine(snap, n.Start, n.End) {
			continue
		}
		t, ok := parseTrailingIf(snap, n)
		if !ok {
			continue
		}
		collapsed := t.compact()
		if snap.Fits(lineAround(snap, n.Start, n.End, collapsed)) {
			b.ReplaceRange(n.Start, n.End, collapsed)
		}
	}

	return b.Edits()
}

// IfExpandRule breaks a one-line trailing-block if that overflows the
// column limit into one body per block.
type IfExpandRule struct {
	format.BaseRule
}

// NewIfExpandRule creates a new if expand rule.
func NewIfExpandRule() *IfExpandRule {
	return &IfExpandRule{
		BaseRule: format.NewBaseRule(
			"SC502",
			"if-trailing-expand",
			"A one-line if that exceeds the column limit gets its bodies on their own lines",
			format.StageLayout,
			"layout", "width",
		),
	}
}

// Apply expands the outermost overflowing if on each line.
func (r *IfExpandRule) Apply(snap *format.Snapshot) []fix.TextEdit {
	b := snap.Edits()
	var taken []scan.Span

	for _, n := range snap.NodesOfKind(cst.KindCall) {
		if insideAny(taken, n.Start, n.End) || !singleLine(snap, n.Start, n.End) {
			continue
		}
		if snap.LineWidth(n.Start) <= snap.MaxWidth {
			continue
		}
		t, ok := parseTrailingIf(snap, n)
		if !ok || t.empty() {
			continue
		}
		b.ReplaceRange(n.Start, n.End, t.expand(snap.LineIndent(n.Start), snap.Indent.Unit()))
		taken = append(taken, scan.Span{Start: n.Start, End: n.End})
	}

	return b.Edits()
}

func insideAny(spans []scan.Span, start, end int) bool {
	for _, s := range spans {
		if s.Start <= start && end <= s.End {
			return true
		}
	}
	return false
}

// list is an array literal or event with its delimiters and elements.
type list struct {
	node  *cst.Node
	open  int
	close int
	elems []scan.Span
}

// listOf locates the delimiters and top-level elements of a collection
// or event. Elements are trimmed; empty elements reject the list.
func listOf(snap *format.Snapshot, n *cst.Node) (list, bool) {
	if n.ContainsError() || n.Len() < 2 {
		return list{}, false
	}

	l := list{node: n, close: n.End - 1}
	switch n.Kind {
	case cst.KindCollection:
		l.open = n.Start
		if head := n.FirstChildOfKind(cst.KindClassName); head != nil {
			l.open = scan.SkipWhitespace(snap.Content, head.End)
		} else if snap.Content[l.open] == '#' {
			l.open++
		}
		if !snap.CodeAt(l.open, '[') || !snap.CodeAt(l.close, ']') {
			return list{}, false
		}
	case cst.KindEvent:
		l.open = n.Start
		if !snap.CodeAt(l.open, '(') || !snap.CodeAt(l.close, ')') {
			return list{}, false
		}
	default:
		return list{}, false
	}

	elems, ok := snap.SplitTopLevel(l.open+1, l.close)
	if !ok {
		return list{}, false
	}
	for _, e := range elems {
		if e.IsEmpty() || !utf8.Valid(snap.Content[e.Start:e.End]) {
			return list{}, false
		}
	}
	l.elems = elems
	return l, true
}

func (l list) texts(snap *format.Snapshot) []string {
	out := make([]string, len(l.elems))
	for i, e := range l.elems {
		out[i] = snap.Slice(e.Start, e.End)
	}
	return out
}

func (l list) delims(snap *format.Snapshot) (string, string) {
	return string(snap.Content[l.open]), string(snap.Content[l.close])
}

// CollectionCompactRule collapses a multi-line array or event onto one
// line when it fits.
type CollectionCompactRule struct {
	format.BaseRule
}

// NewCollectionCompactRule creates a new collection compact rule.
func NewCollectionCompactRule() *CollectionCompactRule {
	return &CollectionCompactRule{
		BaseRule: format.NewBaseRule(
			"SC503",
			"collection-compact",
			"A multi-line array or event of one-line elements is collapsed when it fits the column limit",
			format.StageLayout,
			"layout", "width", "collections",
		),
	}
}

// Apply turns `[\n    1,\n    2\n]` into `[1, 2]`.
func (r *CollectionCompactRule) Apply(snap *format.Snapshot) []fix.TextEdit {
	b := snap.Edits()

	for _, n := range snap.NodesOfKind(cst.KindCollection, cst.KindEvent) {
		if n.ContainsComment() {
			continue
		}
		l, ok := listOf(snap, n)
		if !ok || len(l.elems) == 0 || singleLine(snap, l.open, l.close) {
			continue
		}

		texts := l.texts(snap)
		multiLine := false
		for _, t := range texts {
			multiLine = multiLine || strings.ContainsAny(t, "\r\n")
		}
		if multiLine {
			continue
		}

		openText, closeText := l.delims(snap)
		collapsed := openText + strings.Join(texts, ", ") + closeText
		if snap.Fits(lineAround(snap, l.open, l.close+1, collapsed)) {
			b.ReplaceRange(l.open, l.close+1, collapsed)
		}
	}

	return b.Edits()
}

// CollectionExpandRule breaks a one-line array or event that overflows the
// column limit into one element per line.
type CollectionExpandRule struct {
	format.BaseRule
}

// NewCollectionExpandRule creates a new collection expand rule.
func NewCollectionExpandRule() *CollectionExpandRule {
	return &CollectionExpandRule{
		BaseRule: format.NewBaseRule(
			"SC504",
			"collection-expand",
			"A one-line array or event that exceeds the column limit gets one element per line",
			format.StageLayout,
			"layout", "width", "collections",
		),
	}
}

// Apply expands the outermost overflowing collection on each line.
func (r *CollectionExpandRule) Apply(snap *format.Snapshot) []fix.TextEdit {
	b := snap.Edits()
	var taken []scan.Span

	for _, n := range snap.NodesOfKind(cst.KindCollection, cst.KindEvent) {
		if insideAny(taken, n.Start, n.End) || n.ContainsComment() {
			continue
		}
		l, ok := listOf(snap, n)
		if !ok || len(l.elems) < 2 || !singleLine(snap, l.open, l.close) {
			continue
		}
		if snap.LineWidth(l.open) <= snap.MaxWidth {
			continue
		}

		indent := snap.LineIndent(l.open)
		unit := snap.Indent.Unit()
		openText, closeText := l.delims(snap)

		var sb strings.Builder
		sb.WriteString(openText + "\n")
		texts := l.texts(snap)
		for i, t := range texts {
			sb.WriteString(indent + unit + t)
			if i < len(texts)-1 {
				sb.WriteByte(',')
			}
			sb.WriteByte('\n')
		}
		sb.WriteString(indent + closeText)

		b.ReplaceRange(l.open, l.close+1, sb.String())
		taken = append(taken, scan.Span{Start: n.Start, End: n.End})
	}

	return b.Edits()
}

// MultilineBreakRule puts each element of a multi-line list on its own
// line. One instance handles arrays, another events.
type MultilineBreakRule struct {
	format.BaseRule
	kind cst.Kind
}

// NewArrayMultilineRule creates the one-element-per-line rule for arrays.
func NewArrayMultilineRule() *MultilineBreakRule {
	return &MultilineBreakRule{
		BaseRule: format.NewBaseRule(
			"SC505",
			"array-multiline",
			"An array that spans lines has one element per line",
			format.StageLayout,
			"layout", "collections",
		),
		kind: cst.KindCollection,
	}
}

// NewEventMultilineRule creates the one-key-per-line rule for events.
func NewEventMultilineRule() *MultilineBreakRule {
	return &MultilineBreakRule{
		BaseRule: format.NewBaseRule(
			"SC506",
			"event-multiline",
			"An event that spans lines has one key per line",
			format.StageLayout,
			"layout", "collections",
		),
		kind: cst.KindEvent,
	}
}

// Apply breaks the line after every top-level comma that has another
// element after it on the same line.
func (r *MultilineBreakRule) Apply(snap *format.Snapshot) []fix.TextEdit {
	b := snap.Edits()
	src := snap.Content

	for _, n := range snap.NodesOfKind(r.kind) {
		l, ok := listOf(snap, n)
		if !ok || len(l.elems) < 2 || singleLine(snap, l.open, l.close) {
			continue
		}
		commas, ok := snap.TopLevelCommas(l.open+1, l.close)
		if !ok {
			continue
		}

		indent := snap.LineIndent(l.open) + snap.Indent.Unit()
		if first := l.elems[0].Start; !singleLine(snap, l.open, first) {
			indent = snap.LineIndent(first)
		}

		keys := map[int]bool{}
		for _, assoc := range n.ChildrenOfKind(cst.KindAssociation) {
			keys[assoc.Start] = true
		}

		for _, comma := range commas {
			next := scan.SkipSpaces(src, comma+1)
			if next >= l.close || scan.IsNewline(src[next]) || snap.HasComment(next, next+1) {
				continue
			}
			if r.kind == cst.KindEvent && !keys[next] {
				continue
			}
			b.ReplaceRange(comma+1, next, "\n"+indent)
		}
	}

	return b.Edits()
}
