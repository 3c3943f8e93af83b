package scan

import "bytes"

// IsSpace reports whether b is a space or tab.
func IsSpace(b byte) bool {
	return b == ' ' || b == '\t'
}

// IsNewline reports whether b is a line feed or carriage return.
func IsNewline(b byte) bool {
	return b == '\n' || b == '\r'
}

// IsWhitespace reports whether b is a space, tab, or line break.
func IsWhitespace(b byte) bool {
	return IsSpace(b) || IsNewline(b)
}

// IsIdentByte reports whether b can appear inside an identifier.
func IsIdentByte(b byte) bool {
	return b == '_' || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || ('0' <= b && b <= '9')
}

// IsIdentStart reports whether b can begin an identifier.
func IsIdentStart(b byte) bool {
	return b == '_' || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

// LineStart returns the offset of the first byte of the line holding off.
func LineStart(src []byte, off int) int {
	off = min(off, len(src))
	if i := bytes.LastIndexByte(src[:off], '\n'); i >= 0 {
		return i + 1
	}
	return 0
}

// LineEnd returns the offset of the newline ending the line holding off,
// or len(src) for the last line. A carriage return before the newline is
// not part of the line.
func LineEnd(src []byte, off int) int {
	off = max(off, 0)
	end := len(src)
	if off < len(src) {
		if i := bytes.IndexByte(src[off:], '\n'); i >= 0 {
			end = off + i
		}
	}
	if end > off && src[end-1] == '\r' {
		end--
	}
	return end
}

// NextLineStart returns the offset just past the newline ending the line
// holding off, or len(src).
func NextLineStart(src []byte, off int) int {
	if off >= len(src) {
		return len(src)
	}
	if i := bytes.IndexByte(src[off:], '\n'); i >= 0 {
		return off + i + 1
	}
	return len(src)
}

// IndentEnd returns the offset of the first non-space byte at or after
// lineStart on the same line.
func IndentEnd(src []byte, lineStart int) int {
	i := lineStart
	for i < len(src) && IsSpace(src[i]) {
		i++
	}
	return i
}

// Indent returns the leading spaces and tabs of the line holding off.
func Indent(src []byte, off int) string {
	start := LineStart(src, off)
	return string(src[start:IndentEnd(src, start)])
}

// SkipSpaces returns the first offset at or after i that is not a space or
// tab. It never crosses a line break.
func SkipSpaces(src []byte, i int) int {
	for i < len(src) && IsSpace(src[i]) {
		i++
	}
	return i
}

// SkipSpacesBack returns the start of the run of spaces and tabs that ends
// just before i. It never crosses a line break.
func SkipSpacesBack(src []byte, i int) int {
	for i > 0 && IsSpace(src[i-1]) {
		i--
	}
	return i
}

// SkipWhitespace returns the first offset at or after i that is not
// whitespace, crossing line breaks.
func SkipWhitespace(src []byte, i int) int {
	for i < len(src) && IsWhitespace(src[i]) {
		i++
	}
	return i
}

// PrevNonWhitespace returns the offset of the nearest byte before i that is
// not whitespace, or -1.
func PrevNonWhitespace(src []byte, i int) int {
	for j := i - 1; j >= 0; j-- {
		if !IsWhitespace(src[j]) {
			return j
		}
	}
	return -1
}

// AtLineStart reports whether only spaces and tabs precede off on its line.
func AtLineStart(src []byte, off int) bool {
	return SkipSpacesBack(src, off) == LineStart(src, off)
}

// RestIsBlank reports whether only spaces and tabs follow off on its line.
func RestIsBlank(src []byte, off int) bool {
	i := SkipSpaces(src, off)
	return i >= len(src) || IsNewline(src[i])
}

// HasNewline reports whether [start, end) contains a line break.
func HasNewline(src []byte, start, end int) bool {
	start = max(start, 0)
	end = min(end, len(src))
	if start >= end {
		return false
	}
	return bytes.IndexByte(src[start:end], '\n') >= 0
}

// WordAt reports whether the keyword kw starts at i as a whole word.
func WordAt(src []byte, i int, kw string) bool {
	if i < 0 || i+len(kw) > len(src) || string(src[i:i+len(kw)]) != kw {
		return false
	}
	if i > 0 && IsIdentByte(src[i-1]) {
		return false
	}
	end := i + len(kw)
	return end >= len(src) || !IsIdentByte(src[end])
}

// WordBefore returns the identifier that ends just before i, if any.
func WordBefore(src []byte, i int) (string, int) {
	start := i
	for start > 0 && IsIdentByte(src[start-1]) {
		start--
	}
	return string(src[start:i]), start
}

// CollapseSpace joins the whitespace-separated fields of s with single
// spaces.
func CollapseSpace(s string) string {
	return string(bytes.Join(bytes.Fields([]byte(s)), []byte{' '}))
}
