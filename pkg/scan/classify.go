// Package scan classifies the bytes of sclang source text and provides
// nesting-aware scanning helpers shared by every formatting rule.
//
// A single Classes table is built per parse and consulted by offset, so all
// rules agree on which bytes are code and which belong to strings, symbols,
// character literals, or comments.
package scan

// Class identifies the lexical context of a single byte.
type Class uint8

// Byte classes.
const (
	// Code is ordinary program text (including whitespace between tokens).
	Code Class = iota

	// LineComment covers "//" through the end of the line (newline excluded).
	LineComment

	// BlockComment covers "/*" through the matching "*/", nesting included.
	BlockComment

	// Symbol covers a single-quoted symbol literal, quotes included.
	Symbol

	// String covers a double-quoted string literal, quotes included.
	String

	// Char covers a character literal such as $a or $\n.
	Char
)

var classNames = [...]string{
	Code:         "code",
	LineComment:  "line-comment",
	BlockComment: "block-comment",
	Symbol:       "symbol",
	String:       "string",
	Char:         "char",
}

// String returns a short name for the class.
func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return "unknown"
}

// IsComment reports whether c is either comment class.
func (c Class) IsComment() bool {
	return c == LineComment || c == BlockComment
}

// IsQuoted reports whether c is a string or quoted symbol.
func (c Class) IsQuoted() bool {
	return c == String || c == Symbol
}

// Classes is a byte-indexed classification table.
type Classes []Class

// At returns the class of the byte at off. Offsets outside the table
// are reported as Code.
func (cs Classes) At(off int) Class {
	if off < 0 || off >= len(cs) {
		return Code
	}
	return cs[off]
}

// IsCode reports whether the byte at off is program text.
// Offsets outside the table are not code.
func (cs Classes) IsCode(off int) bool {
	return off >= 0 && off < len(cs) && cs[off] == Code
}

// InStringOrComment reports whether off lies inside a string, symbol,
// character literal, or comment.
func (cs Classes) InStringOrComment(off int) bool {
	return off >= 0 && off < len(cs) && cs[off] != Code
}

// AnyComment reports whether any byte in [start, end) belongs to a comment.
func (cs Classes) AnyComment(start, end int) bool {
	start = max(start, 0)
	end = min(end, len(cs))
	for i := start; i < end; i++ {
		if cs[i].IsComment() {
			return true
		}
	}
	return false
}

// state is the position of the classifier between bytes.
type state uint8

const (
	stateNone state = iota
	stateLineComment
	stateBlockComment
	stateSingle
	stateDouble
)

// Classify scans src once from the start and classifies every byte.
//
// Strings and quoted symbols end only at a quote preceded by an even number
// of consecutive backslashes. Line comments end before the newline, block
// comments end at the "*/" that balances their opening "/*".
func Classify(src []byte) Classes {
	classes := make(Classes, len(src))

	st := stateNone
	depth := 0
	backslashes := 0

	for i := 0; i < len(src); i++ {
		b := src[i]

		switch st {
		case stateLineComment:
			if b == '\n' {
				st = stateNone
				classes[i] = Code
				continue
			}
			classes[i] = LineComment

		case stateBlockComment:
			classes[i] = BlockComment
			switch {
			case b == '/' && i+1 < len(src) && src[i+1] == '*':
				classes[i+1] = BlockComment
				depth++
				i++
			case b == '*' && i+1 < len(src) && src[i+1] == '/':
				classes[i+1] = BlockComment
				depth--
				i++
				if depth == 0 {
					st = stateNone
				}
			}

		case stateSingle, stateDouble:
			quote, class := byte('\''), Symbol
			if st == stateDouble {
				quote, class = '"', String
			}
			classes[i] = class
			switch {
			case b == '\\':
				backslashes++
			case b == quote && backslashes%2 == 0:
				st = stateNone
				backslashes = 0
			default:
				backslashes = 0
			}

		default:
			switch {
			case b == '/' && i+1 < len(src) && src[i+1] == '/':
				st = stateLineComment
				classes[i] = LineComment
				classes[i+1] = LineComment
				i++
			case b == '/' && i+1 < len(src) && src[i+1] == '*':
				st = stateBlockComment
				depth = 1
				classes[i] = BlockComment
				classes[i+1] = BlockComment
				i++
			case b == '"':
				st = stateDouble
				backslashes = 0
				classes[i] = String
			case b == '\'':
				st = stateSingle
				backslashes = 0
				classes[i] = Symbol
			case b == '$' && i+1 < len(src):
				i = markChar(src, classes, i)
			default:
				classes[i] = Code
			}
		}
	}

	return classes
}

// markChar classifies a character literal starting at the '$' at off and
// returns the offset of its last byte.
func markChar(src []byte, classes Classes, off int) int {
	end := off + 1
	if src[end] == '\\' && end+1 < len(src) {
		end++
	}
	end += utf8Tail(src, end)
	for i := off; i <= end && i < len(src); i++ {
		classes[i] = Char
	}
	return min(end, len(src)-1)
}

// utf8Tail returns the number of continuation bytes following the lead
// byte at off.
func utf8Tail(src []byte, off int) int {
	n := 0
	for i := off + 1; i < len(src) && i <= off+3; i++ {
		if src[i]&0xC0 != 0x80 {
			break
		}
		n++
	}
	return n
}

// InStringOrCommentAt classifies src and reports whether off lies inside a
// string, symbol, character literal, or comment. Rules should query a shared
// Classes table instead; this is for callers holding only raw bytes.
func InStringOrCommentAt(src []byte, off int) bool {
	if off < 0 || off >= len(src) {
		return false
	}
	return Classify(src).InStringOrComment(off)
}
