package rules

import (
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"

	"github.com/yaklabco/sclangfmt/pkg/cst"
	"github.com/yaklabco/sclangfmt/pkg/fix"
	"github.com/yaklabco/sclangfmt/pkg/format"
	"github.com/yaklabco/sclangfmt/pkg/scan"
)

// controlWords are the identifiers that keep a space before their
// parenthesized condition.
//
//nolint:gochecknoglobals // read-only lookup table
var controlWords = []string{"if", "while", "for", "switch", "case"}

// declWords introduce variable and argument declarations.
//
//nolint:gochecknoglobals // read-only lookup table
var declWords = []string{"var", "arg", "classvar", "const"}

func isControlWord(word string) bool {
	return lo.Contains(controlWords, word)
}

// line is one line of the content, without its terminator.
type line struct {
	Start int // first byte
	End   int // newline or end of content; a trailing CR is excluded
}

// lines splits the content into lines.
func lines(snap *format.Snapshot) []line {
	src := snap.Content
	var out []line
	for start := 0; start < len(src); {
		out = append(out, line{Start: start, End: scan.LineEnd(src, start)})
		next := scan.NextLineStart(src, start)
		if next == start {
			break
		}
		start = next
	}
	return out
}

// continuesQuoted reports whether the line starting at lineStart begins
// inside a multi-line string or block comment.
func continuesQuoted(snap *format.Snapshot, lineStart int) bool {
	return lineStart > 0 && !snap.IsCode(lineStart-1)
}

// codeOffsets returns the offset of every code byte equal to c.
func codeOffsets(snap *format.Snapshot, c byte) []int {
	var out []int
	for i, b := range snap.Content {
		if b == c && snap.IsCode(i) {
			out = append(out, i)
		}
	}
	return out
}

// lineCommentAt reports whether a line comment starts at off.
func lineCommentAt(snap *format.Snapshot, off int) bool {
	if off < 0 || off+1 >= snap.Len() {
		return false
	}
	if snap.Content[off] != '/' || snap.Content[off+1] != '/' {
		return false
	}
	return snap.Classes.At(off) == scan.LineComment && (off == 0 || snap.Classes.At(off-1) != scan.LineComment)
}

// spaceAfter normalizes the spaces after off to exactly one. Spaces
// running into the end of the line are removed; a run ending at a line
// comment is left for the comment rule.
func spaceAfter(b *fix.EditBuilder, snap *format.Snapshot, off int) {
	k := scan.SkipSpaces(snap.Content, off)
	switch {
	case k >= snap.Len() || scan.IsNewline(snap.Content[k]):
		b.Delete(off, k)
	case lineCommentAt(snap, k):
	default:
		b.Set(off, k, " ")
	}
}

// spaceBefore normalizes the spaces before off to want, leaving
// indentation alone.
func spaceBefore(b *fix.EditBuilder, snap *format.Snapshot, off int, want string) {
	j := scan.SkipSpacesBack(snap.Content, off)
	if j == snap.LineStart(off) {
		return
	}
	b.Set(j, off, want)
}

// noSpaceAfter removes the spaces after off on the same line unless a
// line comment follows.
func noSpaceAfter(b *fix.EditBuilder, snap *format.Snapshot, off int) {
	k := scan.SkipSpaces(snap.Content, off)
	if lineCommentAt(snap, k) {
		return
	}
	b.Delete(off, k)
}

// text returns the source text of a node.
func text(snap *format.Snapshot, n *cst.Node) string {
	return snap.Slice(n.Start, n.End)
}

// usable reports whether a node can be rewritten as a whole: it parsed
// cleanly and holds no comments.
func usable(n *cst.Node) bool {
	return n != nil && !n.ContainsError() && !n.ContainsComment()
}

// singleLine reports whether [start, end) holds no line break.
func singleLine(snap *format.Snapshot, start, end int) bool {
	return !scan.HasNewline(snap.Content, start, end)
}

// blockBounds returns the offsets of the braces of a function block,
// which may start with `#`.
func blockBounds(snap *format.Snapshot, fb *cst.Node) (int, int, bool) {
	if fb == nil || fb.IsError() || fb.Len() < 2 {
		return 0, 0, false
	}
	open := fb.Start
	if snap.Content[open] == '#' {
		open++
	}
	closeOff := fb.End - 1
	if !snap.CodeAt(open, '{') || !snap.CodeAt(closeOff, '}') {
		return 0, 0, false
	}
	if last := fb.LastChild; last != nil && last.IsMissing() {
		return 0, 0, false
	}
	return open, closeOff, true
}

// pipeHeader returns the |...| parameter list of a function block.
func pipeHeader(snap *format.Snapshot, fb *cst.Node) *cst.Node {
	pl := fb.FirstChildOfKind(cst.KindParameterList)
	if pl == nil || pl.IsError() || pl.Len() < 2 {
		return nil
	}
	if snap.Content[pl.Start] != '|' || snap.Content[pl.End-1] != '|' {
		return nil
	}
	return pl
}

// blockBody returns the trimmed text between the braces of a single-line
// function block.
func blockBody(snap *format.Snapshot, fb *cst.Node) (string, bool) {
	open, closeOff, ok := blockBounds(snap, fb)
	if !ok {
		return "", false
	}
	body := strings.TrimSpace(snap.Slice(open+1, closeOff))
	if strings.ContainsAny(body, "\r\n") || !utf8.ValidString(body) {
		return "", false
	}
	return body, true
}

// padded renders a one-line block: `{ body }`, or `{ }` when empty.
func padded(body string) string {
	if body == "" {
		return "{ }"
	}
	return "{ " + body + " }"
}

// calleeName returns the identifier a call is made on, if any.
func calleeName(snap *format.Snapshot, call *cst.Node) string {
	if call.Kind != cst.KindCall || call.FirstChild == nil || call.FirstChild.Kind != cst.KindIdentifier {
		return ""
	}
	return text(snap, call.FirstChild)
}

// selectorName returns the selector of a method call, if any.
func selectorName(snap *format.Snapshot, mc *cst.Node) (*cst.Node, string) {
	sel := mc.FirstChildOfKind(cst.KindSelector)
	if sel == nil {
		return nil, ""
	}
	return sel, text(snap, sel)
}

// isReceiver reports whether n is the receiver of a postfix message or
// index, where moving its arguments into trailing blocks would change
// what the postfix binds to.
func isReceiver(n *cst.Node) bool {
	p := n.Parent
	if p == nil || p.FirstChild != n {
		return false
	}
	return p.Kind == cst.KindMethodCall || p.Kind == cst.KindIndex
}

// blockArgs returns the function blocks passed as plain positional
// arguments, or false if any argument is something else.
func blockArgs(args []*cst.Node) ([]*cst.Node, bool) {
	blocks := make([]*cst.Node, 0, len(args))
	for _, arg := range args {
		kids := arg.Significant()
		if len(kids) != 1 || kids[0].Kind != cst.KindFunctionBlock {
			return nil, false
		}
		blocks = append(blocks, kids[0])
	}
	return blocks, true
}

// argGapsClean reports whether the argument list holds no comments
// outside its arguments.
func argGapsClean(snap *format.Snapshot, callArgs *cst.Node, args []*cst.Node) bool {
	prev := callArgs.Start + 1
	for _, arg := range args {
		if snap.HasComment(prev, arg.Start) {
			return false
		}
		prev = arg.End
	}
	return !snap.HasComment(prev, callArgs.End-1)
}

// argumentsOf returns the arguments of a parsed, closed argument list.
func argumentsOf(snap *format.Snapshot, callArgs *cst.Node) ([]*cst.Node, bool) {
	if callArgs == nil || callArgs.ContainsError() || !snap.CodeAt(callArgs.End-1, ')') {
		return nil, false
	}
	return callArgs.ChildrenOfKind(cst.KindArgument), true
}

// lineAround returns the full text of the line(s) holding [start, end),
// with [start, end) replaced by repl.
func lineAround(snap *format.Snapshot, start, end int, repl string) string {
	return snap.Slice(snap.LineStart(start), start) + repl + snap.Slice(end, snap.LineEnd(end))
}

// word is an identifier in code.
type word struct {
	Start int
	End   int
	Text  string
}

// codeWords returns every identifier that starts in code.
func codeWords(snap *format.Snapshot) []word {
	src := snap.Content
	var out []word
	for i := 0; i < len(src); {
		if !scan.IsIdentStart(src[i]) || !snap.IsCode(i) || (i > 0 && scan.IsIdentByte(src[i-1])) {
			i++
			continue
		}
		j := i
		for j < len(src) && scan.IsIdentByte(src[j]) {
			j++
		}
		out = append(out, word{Start: i, End: j, Text: string(src[i:j])})
		i = j
	}
	return out
}

// afterDot reports whether the nearest code before off on its line is a
// message dot, which makes the word at off a selector.
func afterDot(src []byte, off int) bool {
	j := scan.SkipSpacesBack(src, off)
	return j > 0 && src[j-1] == '.'
}
