package scan

// Span is a half-open byte range [Start, End).
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// IsEmpty reports whether the span covers no bytes.
func (s Span) IsEmpty() bool {
	return s.End <= s.Start
}

// MatchDelimiter finds the byte that balances the delimiter at open.
//
// Only openByte and closeByte are counted, and only when they are code.
// It returns false when the buffer ends before the depth returns to zero, or
// when open does not hold openByte; callers must then leave the region alone.
func MatchDelimiter(src []byte, classes Classes, open int, openByte, closeByte byte) (int, bool) {
	if open < 0 || open >= len(src) || src[open] != openByte || !classes.IsCode(open) {
		return 0, false
	}

	depth := 0
	for i := open; i < len(src); i++ {
		if !classes.IsCode(i) {
			continue
		}
		switch src[i] {
		case openByte:
			depth++
		case closeByte:
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}

	return 0, false
}

// CloserFor returns the closing byte for an opening bracket, or 0.
func CloserFor(open byte) byte {
	switch open {
	case '(':
		return ')'
	case '[':
		return ']'
	case '{':
		return '}'
	default:
		return 0
	}
}

// Match finds the closer for whichever bracket sits at open.
func Match(src []byte, classes Classes, open int) (int, bool) {
	if open < 0 || open >= len(src) {
		return 0, false
	}
	closer := CloserFor(src[open])
	if closer == 0 {
		return 0, false
	}
	return MatchDelimiter(src, classes, open, src[open], closer)
}

// depths tracks one counter per bracket kind.
type depths struct {
	paren, bracket, brace int
}

func (d *depths) step(b byte) {
	switch b {
	case '(':
		d.paren++
	case ')':
		d.paren--
	case '[':
		d.bracket++
	case ']':
		d.bracket--
	case '{':
		d.brace++
	case '}':
		d.brace--
	}
}

func (d depths) zero() bool {
	return d.paren == 0 && d.bracket == 0 && d.brace == 0
}

func (d depths) negative() bool {
	return d.paren < 0 || d.bracket < 0 || d.brace < 0
}

// TopLevelSeparators returns the offsets of sep within [start, end) that sit
// outside every nested (), [] and {} pair.
//
// Bytes that are not code are skipped. It returns false when the region is
// unbalanced, in which case no separators are reported.
func TopLevelSeparators(src []byte, classes Classes, start, end int, sep byte) ([]int, bool) {
	start = max(start, 0)
	end = min(end, len(src))

	var (
		seps []int
		d    depths
	)

	for i := start; i < end; i++ {
		if !classes.IsCode(i) {
			continue
		}
		b := src[i]
		if b == sep && d.zero() {
			seps = append(seps, i)
			continue
		}
		d.step(b)
		if d.negative() {
			return nil, false
		}
	}

	if !d.zero() {
		return nil, false
	}

	return seps, true
}

// HasTopLevel reports whether sep occurs at the top level of [start, end).
func HasTopLevel(src []byte, classes Classes, start, end int, sep byte) bool {
	seps, ok := TopLevelSeparators(src, classes, start, end, sep)
	return ok && len(seps) > 0
}

// SplitTopLevel splits [start, end) at its top-level separators. Each
// returned span is trimmed of surrounding whitespace; a trailing empty
// element (as left by a trailing comma) is dropped.
func SplitTopLevel(src []byte, classes Classes, start, end int, sep byte) ([]Span, bool) {
	seps, ok := TopLevelSeparators(src, classes, start, end, sep)
	if !ok {
		return nil, false
	}

	spans := make([]Span, 0, len(seps)+1)
	from := start
	for _, s := range seps {
		spans = append(spans, TrimSpace(src, Span{Start: from, End: s}))
		from = s + 1
	}

	last := TrimSpace(src, Span{Start: from, End: end})
	if !last.IsEmpty() || len(seps) == 0 {
		spans = append(spans, last)
	}

	return spans, true
}

// TrimSpace shrinks span so it neither starts nor ends with whitespace
// (spaces, tabs, carriage returns, or newlines).
func TrimSpace(src []byte, span Span) Span {
	for span.Start < span.End && IsWhitespace(src[span.Start]) {
		span.Start++
	}
	for span.End > span.Start && IsWhitespace(src[span.End-1]) {
		span.End--
	}
	return span
}
