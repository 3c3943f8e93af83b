package sclang

import (
	"unicode/utf8"

	"github.com/yaklabco/sclangfmt/pkg/scan"
)

// tokenKind classifies a lexical token.
type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokLineComment
	tokBlockComment
	tokString
	tokSymbol
	tokChar
	tokNumber
	tokIdent
	tokClass
	tokEnvVar
	tokLiteralSymbol
	tokOp
	tokAssign
	tokPunct
	tokInvalid
)

// token is a half-open byte range with its kind.
type token struct {
	kind  tokenKind
	start int
	end   int
}

// lexer produces tokens on demand. It reads the shared class table so that
// strings, symbols, character literals and comments are delimited exactly as
// the byte classifier sees them.
type lexer struct {
	src     []byte
	classes scan.Classes
	pos     int
}

func newLexer(src []byte) lexer {
	return lexer{src: src, classes: scan.Classify(src)}
}

// next returns the token starting at or after the current position.
func (l *lexer) next() token {
	l.pos = scan.SkipWhitespace(l.src, l.pos)
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, start: len(l.src), end: len(l.src)}
	}

	start := l.pos
	if class := l.classes[start]; class != scan.Code {
		end := start + 1
		for end < len(l.src) && l.classes[end] == class {
			end++
		}
		l.pos = end
		return token{kind: quotedKind(class), start: start, end: end}
	}

	b := l.src[start]
	switch {
	case isDigit(b):
		l.pos = l.scanNumber(start)
		return token{kind: tokNumber, start: start, end: l.pos}
	case b >= 'A' && b <= 'Z':
		l.pos = l.scanIdent(start)
		return token{kind: tokClass, start: start, end: l.pos}
	case scan.IsIdentStart(b):
		l.pos = l.scanIdent(start)
		return token{kind: tokIdent, start: start, end: l.pos}
	case b == '~' && start+1 < len(l.src) && scan.IsIdentStart(l.src[start+1]):
		l.pos = l.scanIdent(start + 1)
		return token{kind: tokEnvVar, start: start, end: l.pos}
	case b == '\\':
		l.pos = l.scanIdent(start + 1)
		return token{kind: tokLiteralSymbol, start: start, end: l.pos}
	case b == '.':
		return l.scanDots(start)
	case isOpByte(b):
		return l.scanOp(start)
	case isPunct(b):
		l.pos = start + 1
		return token{kind: tokPunct, start: start, end: l.pos}
	default:
		_, size := utf8.DecodeRune(l.src[start:])
		l.pos = start + size
		return token{kind: tokInvalid, start: start, end: l.pos}
	}
}

func quotedKind(class scan.Class) tokenKind {
	switch class {
	case scan.LineComment:
		return tokLineComment
	case scan.BlockComment:
		return tokBlockComment
	case scan.Symbol:
		return tokSymbol
	case scan.Char:
		return tokChar
	default:
		return tokString
	}
}

func (l *lexer) scanIdent(i int) int {
	for i < len(l.src) && scan.IsIdentByte(l.src[i]) && l.classes.IsCode(i) {
		i++
	}
	return i
}

// scanNumber accepts integers, decimals, exponents, radix notation (16rFF),
// hex (0x1F) and a trailing pi multiplier.
func (l *lexer) scanNumber(i int) int {
	src := l.src
	start := i
	for i < len(src) && isDigit(src[i]) {
		i++
	}

	switch {
	case i < len(src) && src[i] == 'r' && i+1 < len(src) && isAlnum(src[i+1]):
		i++
		for i < len(src) && (isAlnum(src[i]) || (src[i] == '.' && i+1 < len(src) && isAlnum(src[i+1]))) {
			i++
		}
		return i
	case i == start+1 && src[start] == '0' && i < len(src) && src[i] == 'x':
		i++
		for i < len(src) && isHex(src[i]) {
			i++
		}
		return i
	}

	if i+1 < len(src) && src[i] == '.' && isDigit(src[i+1]) {
		i++
		for i < len(src) && isDigit(src[i]) {
			i++
		}
	}

	if i < len(src) && (src[i] == 'e' || src[i] == 'E') {
		j := i + 1
		if j < len(src) && (src[j] == '+' || src[j] == '-') {
			j++
		}
		if j < len(src) && isDigit(src[j]) {
			i = j
			for i < len(src) && isDigit(src[i]) {
				i++
			}
		}
	}

	if i+1 < len(src) && src[i] == 'p' && src[i+1] == 'i' && (i+2 >= len(src) || !scan.IsIdentByte(src[i+2])) {
		i += 2
	}

	return i
}

func (l *lexer) scanDots(start int) token {
	end := start + 1
	for end < len(l.src) && end-start < 3 && l.src[end] == '.' {
		end++
	}
	l.pos = end
	if end-start == 1 {
		return token{kind: tokPunct, start: start, end: end}
	}
	return token{kind: tokOp, start: start, end: end}
}

// scanOp consumes a maximal run of operator bytes. A lone '=' (or '='
// followed by anything but another '=') is an assignment.
func (l *lexer) scanOp(start int) token {
	if l.src[start] == '=' && (start+1 >= len(l.src) || l.src[start+1] != '=') {
		l.pos = start + 1
		return token{kind: tokAssign, start: start, end: l.pos}
	}

	end := start + 1
	for end < len(l.src) && isOpByte(l.src[end]) && l.classes.IsCode(end) {
		end++
	}
	l.pos = end
	return token{kind: tokOp, start: start, end: end}
}

func isDigit(b byte) bool {
	return '0' <= b && b <= '9'
}

func isHex(b byte) bool {
	return isDigit(b) || ('a' <= b && b <= 'f') || ('A' <= b && b <= 'F')
}

func isAlnum(b byte) bool {
	return isDigit(b) || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

func isOpByte(b byte) bool {
	switch b {
	case '!', '@', '%', '&', '*', '-', '+', '=', '|', '<', '>', '?', '/':
		return true
	default:
		return false
	}
}

func isPunct(b byte) bool {
	switch b {
	case '(', ')', '[', ']', '{', '}', ',', ';', ':', '#', '`', '^':
		return true
	default:
		return false
	}
}
