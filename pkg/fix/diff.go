package fix

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// contextLines is the number of unchanged lines shown around each change.
const contextLines = 3

// LineOp marks a line in a hunk as unchanged, removed or added.
type LineOp byte

// Line operations, using their unified diff prefixes.
const (
	LineEqual  LineOp = ' '
	LineDelete LineOp = '-'
	LineInsert LineOp = '+'
)

// Line is one line of a hunk. Text includes its newline, if it had one.
type Line struct {
	Op   LineOp
	Text string
}

// Hunk is a group of nearby changes with surrounding context.
type Hunk struct {
	OldStart, OldCount int
	NewStart, NewCount int
	Lines              []Line
}

// Diff is a unified diff between the original and formatted content of a file.
type Diff struct {
	Path      string
	Hunks     []Hunk
	Additions int
	Deletions int
}

// GenerateDiff computes a unified diff. Returns nil if the contents are equal.
func GenerateDiff(path string, original, modified []byte) *Diff {
	if bytes.Equal(original, modified) {
		return nil
	}

	a := splitLines(original)
	b := splitLines(modified)

	matcher := difflib.NewMatcher(a, b)
	diff := &Diff{Path: path}

	for _, group := range matcher.GetGroupedOpCodes(contextLines) {
		first, last := group[0], group[len(group)-1]
		hunk := Hunk{
			OldStart: first.I1,
			OldCount: last.I2 - first.I1,
			NewStart: first.J1,
			NewCount: last.J2 - first.J1,
		}

		for _, code := range group {
			if code.Tag == 'e' {
				hunk.Lines = appendLines(hunk.Lines, LineEqual, a[code.I1:code.I2])
				continue
			}
			if code.Tag == 'r' || code.Tag == 'd' {
				hunk.Lines = appendLines(hunk.Lines, LineDelete, a[code.I1:code.I2])
				diff.Deletions += code.I2 - code.I1
			}
			if code.Tag == 'r' || code.Tag == 'i' {
				hunk.Lines = appendLines(hunk.Lines, LineInsert, b[code.J1:code.J2])
				diff.Additions += code.J2 - code.J1
			}
		}

		diff.Hunks = append(diff.Hunks, hunk)
	}

	if len(diff.Hunks) == 0 {
		return nil
	}
	return diff
}

func appendLines(dst []Line, op LineOp, lines []string) []Line {
	for _, text := range lines {
		dst = append(dst, Line{Op: op, Text: text})
	}
	return dst
}

// splitLines splits content after each newline. A final line without a
// newline is kept as is, so a missing final newline shows up as a change.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	lines := strings.SplitAfter(string(content), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// HasChanges returns true if the diff contains any changes.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// Header returns the ---/+++ file header lines.
func (d *Diff) Header() string {
	if d == nil {
		return ""
	}
	path := strings.TrimPrefix(d.Path, "/")
	return fmt.Sprintf("--- a/%s\n+++ b/%s\n", path, path)
}

// String returns the diff in unified format, header included.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	var b strings.Builder
	b.WriteString(d.Header())
	for _, h := range d.Hunks {
		b.WriteString(h.Range())
		b.WriteByte('\n')
		for _, line := range h.Lines {
			b.WriteString(line.String())
		}
	}
	return b.String()
}

// Range returns the hunk's @@ line without a trailing newline.
func (h Hunk) Range() string {
	return fmt.Sprintf("@@ -%s +%s @@", unifiedRange(h.OldStart, h.OldCount), unifiedRange(h.NewStart, h.NewCount))
}

// String renders the line with its prefix. A line lacking a newline is
// followed by the conventional marker.
func (l Line) String() string {
	if strings.HasSuffix(l.Text, "\n") {
		return string(l.Op) + l.Text
	}
	return string(l.Op) + l.Text + "\n\\ No newline at end of file\n"
}

// unifiedRange formats a 0-based start and count the way diff(1) does:
// 1-based, count omitted when 1, and the preceding line for empty ranges.
func unifiedRange(start, count int) string {
	begin := start + 1
	switch count {
	case 0:
		return fmt.Sprintf("%d,0", begin-1)
	case 1:
		return fmt.Sprintf("%d", begin)
	default:
		return fmt.Sprintf("%d,%d", begin, count)
	}
}
