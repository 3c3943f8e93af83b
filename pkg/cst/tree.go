package cst

import (
	"sort"

	"github.com/yaklabco/sclangfmt/pkg/scan"
)

// Tree is an immutable, lossless view of one version of a source file.
type Tree struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Content is the full file bytes the tree was parsed from.
	Content []byte

	// Lines contains metadata for each line in the file.
	Lines []LineInfo

	// Root is the Source node spanning the whole content.
	Root *Node
}

// LineInfo holds metadata for a single line in a file.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For lines without a trailing newline (e.g., last line), this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of file).
	EndOffset int
}

// NewTree wraps a parsed root with its content and line table.
func NewTree(path string, content []byte, root *Node) *Tree {
	return &Tree{
		Path:    path,
		Content: content,
		Lines:   BuildLines(content),
		Root:    root,
	}
}

// BuildLines constructs line metadata from file content.
// It handles both LF (\n) and CRLF (\r\n) line endings.
func BuildLines(content []byte) []LineInfo {
	if len(content) == 0 {
		return []LineInfo{}
	}

	var lines []LineInfo
	lineStart := 0

	for idx, char := range content {
		if char != '\n' {
			continue
		}
		newlineStart := idx
		if idx > 0 && content[idx-1] == '\r' {
			newlineStart = idx - 1
		}
		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: newlineStart,
			EndOffset:    idx + 1,
		})
		lineStart = idx + 1
	}

	lines = append(lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(content),
		EndOffset:    len(content),
	})

	return lines
}

// LineCount returns the number of lines in the file.
func (t *Tree) LineCount() int {
	return len(t.Lines)
}

// LineAt converts a byte offset to 1-based line and column numbers.
// Column counts bytes, not runes. Returns (0, 0) if the offset is negative.
func (t *Tree) LineAt(offset int) (int, int) {
	if offset < 0 || len(t.Lines) == 0 {
		return 0, 0
	}

	if offset >= len(t.Content) {
		last := t.Lines[len(t.Lines)-1]
		return len(t.Lines), offset - last.StartOffset + 1
	}

	idx := sort.Search(len(t.Lines), func(i int) bool {
		return t.Lines[i].EndOffset > offset
	})
	if idx >= len(t.Lines) {
		idx = len(t.Lines) - 1
	}

	return idx + 1, offset - t.Lines[idx].StartOffset + 1
}

// LineContent returns the content of a 1-based line number, excluding the newline.
// Returns nil if the line number is out of range.
func (t *Tree) LineContent(line int) []byte {
	if line < 1 || line > len(t.Lines) {
		return nil
	}

	info := t.Lines[line-1]
	return t.Content[info.StartOffset:info.NewlineStart]
}

// DescendantForRange returns the smallest node covering [start, end).
func (t *Tree) DescendantForRange(start, end int) *Node {
	if t.Root == nil || !t.Root.Covers(start, end) {
		return nil
	}

	node := t.Root
	for {
		var next *Node
		for child := node.FirstChild; child != nil; child = child.Next {
			if child.Len() > 0 && child.Covers(start, end) {
				next = child
				break
			}
		}
		if next == nil {
			return node
		}
		node = next
	}
}

// InStringOrComment reports whether the byte at off lies inside a string,
// symbol, character literal or comment node.
func (t *Tree) InStringOrComment(off int) bool {
	for n := t.DescendantForRange(off, off+1); n != nil; n = n.Parent {
		if n.Kind.IsOpaque() {
			return true
		}
	}
	return false
}

// ErrorRanges returns the merged byte ranges that rules must not touch:
// every error node, and the parent of every missing node.
func (t *Tree) ErrorRanges() []scan.Span {
	var spans []scan.Span

	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	Walk(t.Root, func(n *Node) error {
		switch {
		case n.IsMissing():
			if n.Parent != nil {
				spans = append(spans, scan.Span{Start: n.Parent.Start, End: n.Parent.End})
			}
		case n.IsError():
			spans = append(spans, scan.Span{Start: n.Start, End: n.End})
		}
		return nil
	})

	if len(spans) == 0 {
		return nil
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })

	merged := spans[:1]
	for _, s := range spans[1:] {
		last := &merged[len(merged)-1]
		if s.Start <= last.End {
			last.End = max(last.End, s.End)
			continue
		}
		merged = append(merged, s)
	}

	return merged
}

// HasErrors returns true if the tree contains any error or missing node.
func (t *Tree) HasErrors() bool {
	return t.Root != nil && t.Root.ContainsError()
}
