package rules

import (
	"strings"

	"github.com/yaklabco/sclangfmt/pkg/fix"
	"github.com/yaklabco/sclangfmt/pkg/format"
	"github.com/yaklabco/sclangfmt/pkg/scan"
)

// IndentStyleRule converts leading whitespace to the configured style,
// keeping its visual width.
type IndentStyleRule struct {
	format.BaseRule
}

// NewIndentStyleRule creates a new indent style rule.
func NewIndentStyleRule() *IndentStyleRule {
	return &IndentStyleRule{
		BaseRule: format.NewBaseRule(
			"SC401",
			"indent-style",
			"Leading whitespace uses the configured indent style; blank lines are emptied",
			format.StageIndent,
			"indent", "whitespace",
		),
	}
}

// Apply rewrites mixed tab and space indentation. A tab counts as one
// indent width.
func (r *IndentStyleRule) Apply(snap *format.Snapshot) []fix.TextEdit {
	b := snap.Edits()
	src := snap.Content
	width := snap.Indent.ColumnWidth()

	for _, ln := range lines(snap) {
		if continuesQuoted(snap, ln.Start) {
			continue
		}
		end := scan.IndentEnd(src, ln.Start)
		if end == ln.Start {
			continue
		}
		if end == ln.End {
			b.Delete(ln.Start, end)
			continue
		}

		cols := 0
		for _, c := range src[ln.Start:end] {
			if c == '\t' {
				cols += width
			} else {
				cols++
			}
		}

		want := strings.Repeat(" ", cols)
		if snap.Indent.Tabs {
			want = strings.Repeat("\t", cols/width) + strings.Repeat(" ", cols%width)
		}
		b.Set(ln.Start, end, want)
	}

	return b.Edits()
}

// NestingIndentRule indents every line by its bracket depth.
type NestingIndentRule struct {
	format.BaseRule
}

// NewNestingIndentRule creates a new nesting indent rule.
func NewNestingIndentRule() *NestingIndentRule {
	return &NestingIndentRule{
		BaseRule: format.NewBaseRule(
			"SC402",
			"nesting-indent",
			"Lines are indented one level per enclosing bracket opened on an earlier line",
			format.StageIndent,
			"indent",
		),
	}
}

// opener is an unclosed bracket: the level of the line that opened it
// and the level its contents take.
type opener struct {
	level int
	inner int
}

// Apply reindents code lines. Brackets opened on one line add a single
// level however many there are. A line starting with closers takes the
// level of the line that opened the outermost of them, and a line
// starting with a message dot is indented one extra level. Lines starting
// inside a multi-line string or comment and blank lines are not touched.
func (r *NestingIndentRule) Apply(snap *format.Snapshot) []fix.TextEdit {
	b := snap.Edits()
	src := snap.Content
	var stack []opener

	current := func() int {
		if len(stack) == 0 {
			return 0
		}
		return stack[len(stack)-1].inner
	}

	for _, ln := range lines(snap) {
		indentEnd := scan.IndentEnd(src, ln.Start)
		scanFrom := ln.Start
		level := current()

		if !continuesQuoted(snap, ln.Start) && indentEnd < ln.End {
			p := indentEnd
			popped := false
			for p < ln.End && snap.IsCode(p) && strings.IndexByte(")]}", src[p]) >= 0 {
				if len(stack) > 0 {
					level = stack[len(stack)-1].level
					stack = stack[:len(stack)-1]
					popped = true
				}
				p = scan.SkipSpaces(src, p+1)
			}
			if !popped && isLeadingDot(snap, p) {
				level++
			}
			b.Set(ln.Start, indentEnd, snap.Indent.Repeat(level))
			scanFrom = p
		}

		for i := scanFrom; i < ln.End; i++ {
			if !snap.IsCode(i) {
				continue
			}
			switch src[i] {
			case '(', '[', '{':
				stack = append(stack, opener{level: level, inner: level + 1})
			case ')', ']', '}':
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
				}
			}
		}
	}

	return b.Edits()
}

// isLeadingDot reports whether off holds the dot of a message sent to the
// previous line's expression.
func isLeadingDot(snap *format.Snapshot, off int) bool {
	src := snap.Content
	if !snap.CodeAt(off, '.') || isRangeDot(src, off) {
		return false
	}
	return off+1 < len(src) && !isDigit(src[off+1])
}

// InlineWhitespaceRule collapses runs of spaces and tabs between tokens to
// a single space.
type InlineWhitespaceRule struct {
	format.BaseRule
}

// NewInlineWhitespaceRule creates a new inline whitespace rule.
func NewInlineWhitespaceRule() *InlineWhitespaceRule {
	return &InlineWhitespaceRule{
		BaseRule: format.NewBaseRule(
			"SC403",
			"inline-whitespace",
			"Runs of spaces and tabs inside a line collapse to one space",
			format.StageIndent,
			"whitespace",
		),
	}
}

// Apply leaves indentation, trailing whitespace and the gap before a
// trailing comment to their own rules.
func (r *InlineWhitespaceRule) Apply(snap *format.Snapshot) []fix.TextEdit {
	b := snap.Edits()
	src := snap.Content

	for _, ln := range lines(snap) {
		i := scan.IndentEnd(src, ln.Start)
		for i < ln.End {
			if !scan.IsSpace(src[i]) || !snap.IsCode(i) {
				i++
				continue
			}
			j := scan.SkipSpaces(src, i)
			if j < ln.End && !lineCommentAt(snap, j) && (j-i > 1 || src[i] == '\t') {
				b.Set(i, j, " ")
			}
			i = j
		}
	}

	return b.Edits()
}
