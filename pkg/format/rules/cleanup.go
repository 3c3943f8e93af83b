package rules

import (
	"github.com/yaklabco/sclangfmt/pkg/cst"
	"github.com/yaklabco/sclangfmt/pkg/fix"
	"github.com/yaklabco/sclangfmt/pkg/format"
	"github.com/yaklabco/sclangfmt/pkg/scan"
)

// NoSemicolonBeforeBraceRule drops the statement separator right before a
// closing brace.
type NoSemicolonBeforeBraceRule struct {
	format.BaseRule
}

// NewNoSemicolonBeforeBraceRule creates a new no-semicolon-before-brace rule.
func NewNoSemicolonBeforeBraceRule() *NoSemicolonBeforeBraceRule {
	return &NoSemicolonBeforeBraceRule{
		BaseRule: format.NewBaseRule(
			"SC601",
			"no-semicolon-before-brace",
			"The last statement of a block has no trailing semicolon",
			format.StageCleanup,
			"cleanup", "punctuation",
		),
	}
}

// Apply turns `{ a; b; }` into `{ a; b }`. Every separator in the run
// before the brace goes, together with the whitespace around it; a block
// left empty keeps one space. Semicolons ending a var or arg declaration
// are required and kept.
func (r *NoSemicolonBeforeBraceRule) Apply(snap *format.Snapshot) []fix.TextEdit {
	b := snap.Edits()
	src := snap.Content

	for _, brace := range codeOffsets(snap, '}') {
		first := -1
		for semi := scan.PrevNonWhitespace(src, brace); snap.CodeAt(semi, ';') && !declarationSemicolon(snap, semi); {
			first = semi
			semi = scan.PrevNonWhitespace(src, semi)
		}
		if first < 0 {
			continue
		}

		start := scan.PrevNonWhitespace(src, first) + 1
		b.ReplaceRange(start, brace, bracePadding(src, start, brace))
	}

	return b.Edits()
}

// declarationSemicolon reports whether the `;` at off ends a var or arg
// declaration.
func declarationSemicolon(snap *format.Snapshot, off int) bool {
	n := snap.Tree.DescendantForRange(off, off+1)
	return n != nil && (n.Kind == cst.KindVarDecl || n.Kind == cst.KindParameterList)
}

// bracePadding is the whitespace kept before a closing brace once the
// separators in [start, brace) are removed: the last line break with the
// indentation after it, else one space when there was any.
func bracePadding(src []byte, start, brace int) string {
	for i := brace - 1; i >= start; i-- {
		if src[i] != '\n' {
			continue
		}
		if i > start && src[i-1] == '\r' {
			i--
		}
		return string(src[i:brace])
	}
	if brace > start && scan.IsSpace(src[brace-1]) {
		return " "
	}
	return ""
}

// TrailingWhitespaceRule trims spaces and tabs at the end of lines.
type TrailingWhitespaceRule struct {
	format.BaseRule
}

// NewTrailingWhitespaceRule creates a new trailing whitespace rule.
func NewTrailingWhitespaceRule() *TrailingWhitespaceRule {
	return &TrailingWhitespaceRule{
		BaseRule: format.NewBaseRule(
			"SC602",
			"trailing-whitespace",
			"Lines have no trailing spaces or tabs",
			format.StageCleanup,
			"cleanup", "whitespace",
		),
	}
}

// Apply removes trailing whitespace outside multi-line strings.
func (r *TrailingWhitespaceRule) Apply(snap *format.Snapshot) []fix.TextEdit {
	b := snap.Edits()

	for _, ln := range lines(snap) {
		start := scan.SkipSpacesBack(snap.Content, ln.End)
		if start < ln.Start {
			start = ln.Start
		}
		if start == ln.End || snap.Classes.At(start).IsQuoted() {
			continue
		}
		b.Delete(start, ln.End)
	}

	return b.Edits()
}

// FinalNewlineRule ends non-empty content with exactly one newline.
type FinalNewlineRule struct {
	format.BaseRule
}

// NewFinalNewlineRule creates a new final newline rule.
func NewFinalNewlineRule() *FinalNewlineRule {
	return &FinalNewlineRule{
		BaseRule: format.NewBaseRule(
			"SC603",
			"final-newline",
			"Files end with exactly one newline",
			format.StageCleanup,
			"cleanup", "whitespace",
		),
	}
}

// Apply appends a missing newline or removes extra blank lines at the
// end. Content made only of line breaks becomes empty; CRLF files keep
// CRLF.
func (r *FinalNewlineRule) Apply(snap *format.Snapshot) []fix.TextEdit {
	b := snap.Edits()
	src := snap.Content

	end := len(src)
	for end > 0 && scan.IsNewline(src[end-1]) {
		end--
	}
	if end == 0 {
		b.Delete(0, len(src))
		return b.Edits()
	}
	if snap.Classes.At(end-1).IsQuoted() && end < len(src) && snap.Classes.At(end).IsQuoted() {
		return nil
	}

	want := "\n"
	if end+1 < len(src) && src[end] == '\r' && src[end+1] == '\n' {
		want = "\r\n"
	}
	b.Set(end, len(src), want)
	return b.Edits()
}
