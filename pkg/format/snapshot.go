package format

import (
	"github.com/yaklabco/sclangfmt/pkg/cst"
	"github.com/yaklabco/sclangfmt/pkg/fix"
	"github.com/yaklabco/sclangfmt/pkg/scan"
)

// Snapshot is the read-only state a rule sees: the text, its tree, the
// shared class table and the style settings. Rules must not modify any of
// it; every offset they return refers to Content.
type Snapshot struct {
	Path     string
	Content  []byte
	Tree     *cst.Tree
	Classes  scan.Classes
	Indent   IndentStyle
	MaxWidth int

	errors []scan.Span
}

// NewSnapshot builds a snapshot directly from a tree, for callers that do
// not need a Document.
func NewSnapshot(tree *cst.Tree, indent IndentStyle, maxWidth int) *Snapshot {
	return &Snapshot{
		Path:     tree.Path,
		Content:  tree.Content,
		Tree:     tree,
		Classes:  scan.Classify(tree.Content),
		Indent:   indent,
		MaxWidth: maxWidth,
		errors:   tree.ErrorRanges(),
	}
}

// Len returns the length of the content in bytes.
func (s *Snapshot) Len() int {
	return len(s.Content)
}

// IsCode reports whether the byte at off is outside strings and comments.
func (s *Snapshot) IsCode(off int) bool {
	return s.Classes.IsCode(off)
}

// CodeAt reports whether off holds the code byte b.
func (s *Snapshot) CodeAt(off int, b byte) bool {
	return off >= 0 && off < len(s.Content) && s.Content[off] == b && s.Classes.IsCode(off)
}

// Slice returns bytes [start, end) as a string, clamped to the content.
func (s *Snapshot) Slice(start, end int) string {
	start = max(start, 0)
	end = min(end, len(s.Content))
	if start >= end {
		return ""
	}
	return string(s.Content[start:end])
}

// LineStart returns the offset of the first byte of the line holding off.
func (s *Snapshot) LineStart(off int) int {
	return scan.LineStart(s.Content, off)
}

// LineEnd returns the offset of the newline ending the line holding off,
// or the content length on the last line.
func (s *Snapshot) LineEnd(off int) int {
	return scan.LineEnd(s.Content, off)
}

// LineIndent returns the leading whitespace of the line holding off.
func (s *Snapshot) LineIndent(off int) string {
	return scan.Indent(s.Content, off)
}

// MatchDelimiter returns the offset of the bracket closing the one at open.
func (s *Snapshot) MatchDelimiter(open int) (int, bool) {
	return scan.Match(s.Content, s.Classes, open)
}

// TopLevelCommas returns the commas at the top level of [start, end).
func (s *Snapshot) TopLevelCommas(start, end int) ([]int, bool) {
	return scan.TopLevelSeparators(s.Content, s.Classes, start, end, ',')
}

// SplitTopLevel splits [start, end) into trimmed elements at top-level commas.
func (s *Snapshot) SplitTopLevel(start, end int) ([]scan.Span, bool) {
	return scan.SplitTopLevel(s.Content, s.Classes, start, end, ',')
}

// InErrorRegion reports whether [start, end) touches a region the parser
// could not make sense of.
func (s *Snapshot) InErrorRegion(start, end int) bool {
	return spansIntersect(s.errors, start, end)
}

// HasComment reports whether any byte in [start, end) is a comment.
func (s *Snapshot) HasComment(start, end int) bool {
	return s.Classes.AnyComment(start, end)
}

// Width returns the display width of text, measuring tabs as one indent.
func (s *Snapshot) Width(text string) int {
	return scan.Width(text, s.Indent.ColumnWidth())
}

// LineWidth returns the display width of the line holding off.
func (s *Snapshot) LineWidth(off int) int {
	return scan.LineWidth(s.Content, off, s.Indent.ColumnWidth())
}

// Fits reports whether text fits within the column limit.
func (s *Snapshot) Fits(text string) bool {
	return s.Width(text) <= s.MaxWidth
}

// Edits returns a builder for edits against this snapshot.
func (s *Snapshot) Edits() *fix.EditBuilder {
	return fix.NewEditBuilder(s.Content)
}

// NodesOfKind returns every node of the given kinds in document order.
func (s *Snapshot) NodesOfKind(kinds ...cst.Kind) []*cst.Node {
	return cst.FindByKind(s.Tree.Root, kinds...)
}
