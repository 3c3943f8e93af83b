package rules

import (
	"strings"

	"github.com/samber/lo"

	"github.com/yaklabco/sclangfmt/pkg/cst"
	"github.com/yaklabco/sclangfmt/pkg/fix"
	"github.com/yaklabco/sclangfmt/pkg/format"
	"github.com/yaklabco/sclangfmt/pkg/scan"
)

// CommaSpacingRule puts no space before a comma and one space after it.
type CommaSpacingRule struct {
	format.BaseRule
}

// NewCommaSpacingRule creates a new comma spacing rule.
func NewCommaSpacingRule() *CommaSpacingRule {
	return &CommaSpacingRule{
		BaseRule: format.NewBaseRule(
			"SC301",
			"comma-spacing",
			"No space before a comma, one space after it unless a closer or line end follows",
			format.StageSpacing,
			"spacing", "punctuation",
		),
	}
}

// Apply normalizes the spaces around every code comma.
func (r *CommaSpacingRule) Apply(snap *format.Snapshot) []fix.TextEdit {
	b := snap.Edits()
	src := snap.Content

	for _, comma := range codeOffsets(snap, ',') {
		if j := scan.SkipSpacesBack(src, comma); j > snap.LineStart(comma) && src[j-1] != ',' {
			b.Delete(j, comma)
		}

		k := scan.SkipSpaces(src, comma+1)
		switch {
		case k >= len(src) || strings.IndexByte("\r\n)]}|,;", src[k]) >= 0:
			b.Delete(comma+1, k)
		case lineCommentAt(snap, k):
		default:
			b.Set(comma+1, k, " ")
		}
	}

	return b.Edits()
}

// AssignmentSpacingRule puts one space on each side of `=`.
type AssignmentSpacingRule struct {
	format.BaseRule
}

// NewAssignmentSpacingRule creates a new assignment spacing rule.
func NewAssignmentSpacingRule() *AssignmentSpacingRule {
	return &AssignmentSpacingRule{
		BaseRule: format.NewBaseRule(
			"SC302",
			"assignment-spacing",
			"Exactly one space on each side of an assignment; comparisons are untouched",
			format.StageSpacing,
			"spacing", "operators",
		),
	}
}

// Apply normalizes the spaces around every assignment sign.
func (r *AssignmentSpacingRule) Apply(snap *format.Snapshot) []fix.TextEdit {
	b := snap.Edits()

	for _, eq := range codeOffsets(snap, '=') {
		if !isAssignment(snap.Content, eq) {
			continue
		}
		spaceBefore(b, snap, eq, " ")
		spaceAfter(b, snap, eq+1)
	}

	return b.Edits()
}

// isAssignment reports whether the `=` at off stands alone rather than
// being part of `==`, `!=`, `<=`, `>=` or a compound operator.
func isAssignment(src []byte, off int) bool {
	if off+1 < len(src) && src[off+1] == '=' {
		return false
	}
	return off == 0 || strings.IndexByte("=<>!+-*/%&|^~", src[off-1]) < 0
}

// SemicolonSpacingRule removes spaces before a semicolon.
type SemicolonSpacingRule struct {
	format.BaseRule
}

// NewSemicolonSpacingRule creates a new semicolon spacing rule.
func NewSemicolonSpacingRule() *SemicolonSpacingRule {
	return &SemicolonSpacingRule{
		BaseRule: format.NewBaseRule(
			"SC303",
			"semicolon-spacing",
			"No space before a semicolon",
			format.StageSpacing,
			"spacing", "punctuation",
		),
	}
}

// Apply deletes the spaces before every code semicolon that does not
// start its line.
func (r *SemicolonSpacingRule) Apply(snap *format.Snapshot) []fix.TextEdit {
	b := snap.Edits()
	src := snap.Content

	for _, semi := range codeOffsets(snap, ';') {
		if j := scan.SkipSpacesBack(src, semi); j > snap.LineStart(semi) {
			b.Delete(j, semi)
		}
	}

	return b.Edits()
}

// DotSpacingRule removes spaces around message dots.
type DotSpacingRule struct {
	format.BaseRule
}

// NewDotSpacingRule creates a new dot spacing rule.
func NewDotSpacingRule() *DotSpacingRule {
	return &DotSpacingRule{
		BaseRule: format.NewBaseRule(
			"SC304",
			"dot-spacing",
			"No spaces around the dot of a message send",
			format.StageSpacing,
			"spacing", "chains",
		),
	}
}

// Apply turns `x  .  foo` into `x.foo`. A dot starting a continuation line
// keeps its indentation. Dots of ranges and number literals are skipped.
func (r *DotSpacingRule) Apply(snap *format.Snapshot) []fix.TextEdit {
	b := snap.Edits()
	src := snap.Content

	for _, dot := range codeOffsets(snap, '.') {
		if isRangeDot(src, dot) {
			continue
		}
		after := scan.SkipSpaces(src, dot+1)
		if after < len(src) && isDigit(src[after]) {
			continue
		}

		if before := scan.SkipSpacesBack(src, dot); before > snap.LineStart(dot) {
			prev := before - 1
			if !snap.IsCode(prev) || strings.IndexByte(",;([{=:+-*/%<>!&|^~", src[prev]) < 0 {
				b.Delete(before, dot)
			}
		}
		noSpaceAfter(b, snap, dot+1)
	}

	return b.Edits()
}

// BlockPaddingRule pads the inside of one-line function blocks with one
// space on each side.
type BlockPaddingRule struct {
	format.BaseRule
}

// NewBlockPaddingRule creates a new block padding rule.
func NewBlockPaddingRule() *BlockPaddingRule {
	return &BlockPaddingRule{
		BaseRule: format.NewBaseRule(
			"SC305",
			"block-padding",
			"One-line function blocks have one space inside each brace",
			format.StageSpacing,
			"spacing", "braces",
		),
	}
}

// Apply turns `{a}` into `{ a }`. Empty blocks are left alone.
func (r *BlockPaddingRule) Apply(snap *format.Snapshot) []fix.TextEdit {
	b := snap.Edits()
	src := snap.Content

	for _, fb := range snap.NodesOfKind(cst.KindFunctionBlock) {
		open, closeOff, ok := blockBounds(snap, fb)
		if !ok || !singleLine(snap, open, closeOff) {
			continue
		}
		if strings.TrimSpace(snap.Slice(open+1, closeOff)) == "" {
			continue
		}
		b.Set(open+1, scan.SkipSpaces(src, open+1), " ")
		b.Set(scan.SkipSpacesBack(src, closeOff), closeOff, " ")
	}

	return b.Edits()
}

// binaryOps are the operators BinaryOperatorSpacingRule spaces.
//
//nolint:gochecknoglobals // read-only lookup table
var binaryOps = []string{"==", "!=", "<=", ">=", "&&", "||", "+", "-", "*", "/", "%", "<", ">", "!"}

const operatorBytes = "+-*/%<>!=&|"

// BinaryOperatorSpacingRule puts one space on each side of binary
// operators. It is off by default.
type BinaryOperatorSpacingRule struct {
	format.BaseRule
}

// NewBinaryOperatorSpacingRule creates a new binary operator spacing rule.
func NewBinaryOperatorSpacingRule() *BinaryOperatorSpacingRule {
	return &BinaryOperatorSpacingRule{
		BaseRule: format.NewBaseRule(
			"SC306",
			"binary-operator-spacing",
			"One space on each side of binary operators; unary operators are untouched",
			format.StageSpacing,
			"spacing", "operators",
		),
	}
}

// DefaultEnabled returns false: operator spacing is opt-in.
func (r *BinaryOperatorSpacingRule) DefaultEnabled() bool {
	return false
}

// Apply turns `1+2` into `1 + 2`.
func (r *BinaryOperatorSpacingRule) Apply(snap *format.Snapshot) []fix.TextEdit {
	b := snap.Edits()
	src := snap.Content

	for i := 0; i < len(src); {
		if !isOperatorCode(snap, i) {
			i++
			continue
		}
		start := i
		for i < len(src) && isOperatorCode(snap, i) {
			i++
		}

		if !lo.Contains(binaryOps, string(src[start:i])) || unaryPosition(snap, start) {
			continue
		}
		if n := snap.Tree.DescendantForRange(start, i); n == nil || n.Kind != cst.KindBinary {
			continue
		}
		spaceBefore(b, snap, start, " ")
		spaceAfter(b, snap, i)
	}

	return b.Edits()
}

func isOperatorCode(snap *format.Snapshot, off int) bool {
	return strings.IndexByte(operatorBytes, snap.Content[off]) >= 0 && snap.IsCode(off)
}

// unaryPosition reports whether an operator at off is in prefix position:
// nothing precedes it, or the nearest byte before it opens a group,
// separates, or is itself an operator or assignment.
func unaryPosition(snap *format.Snapshot, off int) bool {
	p := scan.PrevNonWhitespace(snap.Content, off)
	if p < 0 {
		return true
	}
	return snap.IsCode(p) && strings.IndexByte("([{,;:"+operatorBytes, snap.Content[p]) >= 0
}

// ColonSpacingRule formats the colon of keyword arguments and event
// entries: `key: value`.
type ColonSpacingRule struct {
	format.BaseRule
}

// NewColonSpacingRule creates a new colon spacing rule.
func NewColonSpacingRule() *ColonSpacingRule {
	return &ColonSpacingRule{
		BaseRule: format.NewBaseRule(
			"SC307",
			"colon-spacing",
			"No space before the colon of a key, one space after it",
			format.StageSpacing,
			"spacing", "punctuation",
		),
	}
}

// Apply normalizes `freq :440` to `freq: 440` in arguments and events.
func (r *ColonSpacingRule) Apply(snap *format.Snapshot) []fix.TextEdit {
	b := snap.Edits()
	src := snap.Content

	for _, n := range snap.NodesOfKind(cst.KindArgument, cst.KindAssociation) {
		kids := n.Significant()
		if len(kids) != 2 {
			continue
		}
		key, value := kids[0], kids[1]

		colon := -1
		for i := key.End; i < value.Start; i++ {
			if snap.CodeAt(i, ':') {
				colon = i
				break
			}
		}
		if colon < 0 || (colon+1 < len(src) && src[colon+1] == ':') {
			continue
		}

		if scan.SkipSpacesBack(src, colon) == key.End {
			b.Delete(key.End, colon)
		}
		spaceAfter(b, snap, colon+1)
	}

	return b.Edits()
}

// KeywordParenSpacingRule puts one space between a control keyword and
// its parenthesized condition.
type KeywordParenSpacingRule struct {
	format.BaseRule
}

// NewKeywordParenSpacingRule creates a new keyword paren spacing rule.
func NewKeywordParenSpacingRule() *KeywordParenSpacingRule {
	return &KeywordParenSpacingRule{
		BaseRule: format.NewBaseRule(
			"SC308",
			"keyword-paren-spacing",
			"One space between if, while, for, switch or case and the parenthesis",
			format.StageSpacing,
			"spacing", "keywords",
		),
	}
}

// Apply turns `if(` into `if (`.
func (r *KeywordParenSpacingRule) Apply(snap *format.Snapshot) []fix.TextEdit {
	b := snap.Edits()

	for _, w := range codeWords(snap) {
		if !isControlWord(w.Text) || afterDot(snap.Content, w.Start) {
			continue
		}
		k := scan.SkipSpaces(snap.Content, w.End)
		if snap.CodeAt(k, '(') {
			b.Set(w.End, k, " ")
		}
	}

	return b.Edits()
}

// CallParenSpacingRule removes spaces between a callee and its argument
// list or index.
type CallParenSpacingRule struct {
	format.BaseRule
}

// NewCallParenSpacingRule creates a new call paren spacing rule.
func NewCallParenSpacingRule() *CallParenSpacingRule {
	return &CallParenSpacingRule{
		BaseRule: format.NewBaseRule(
			"SC309",
			"call-paren-spacing",
			"No space between a name or closing bracket and a following ( or [",
			format.StageSpacing,
			"spacing", "calls",
		),
	}
}

// Apply turns `foo (1)` into `foo(1)` and `a [0]` into `a[0]`.
func (r *CallParenSpacingRule) Apply(snap *format.Snapshot) []fix.TextEdit {
	b := snap.Edits()
	src := snap.Content

	for _, open := range append(codeOffsets(snap, '('), codeOffsets(snap, '[')...) {
		j := scan.SkipSpacesBack(src, open)
		if j == open || j == snap.LineStart(open) || !snap.IsCode(j-1) {
			continue
		}

		switch prev := src[j-1]; {
		case scan.IsIdentByte(prev):
			w, start := scan.WordBefore(src, j)
			if isDigit(src[start]) || isControlWord(w) || lo.Contains(declWords, w) {
				continue
			}
		case strings.IndexByte(")]}", prev) < 0:
			continue
		}
		b.Delete(j, open)
	}

	return b.Edits()
}

// ParenPaddingRule removes spaces just inside parentheses and brackets.
type ParenPaddingRule struct {
	format.BaseRule
}

// NewParenPaddingRule creates a new paren padding rule.
func NewParenPaddingRule() *ParenPaddingRule {
	return &ParenPaddingRule{
		BaseRule: format.NewBaseRule(
			"SC310",
			"paren-padding",
			"No spaces just inside ( ) and [ ]",
			format.StageSpacing,
			"spacing", "brackets",
		),
	}
}

// Apply turns `( a )` into `(a)`. Indentation before a closer is kept.
func (r *ParenPaddingRule) Apply(snap *format.Snapshot) []fix.TextEdit {
	b := snap.Edits()
	src := snap.Content

	for i := range src {
		if !snap.IsCode(i) {
			continue
		}
		switch src[i] {
		case '(', '[':
			noSpaceAfter(b, snap, i+1)
		case ')', ']':
			j := scan.SkipSpacesBack(src, i)
			if j == i || j == snap.LineStart(i) {
				continue
			}
			if snap.CodeAt(j-1, '(') || snap.CodeAt(j-1, '[') {
				continue
			}
			b.Delete(j, i)
		}
	}

	return b.Edits()
}

// BlockBraceSpacingRule puts one space before the `{` of a trailing or
// assigned block.
type BlockBraceSpacingRule struct {
	format.BaseRule
}

// NewBlockBraceSpacingRule creates a new block brace spacing rule.
func NewBlockBraceSpacingRule() *BlockBraceSpacingRule {
	return &BlockBraceSpacingRule{
		BaseRule: format.NewBaseRule(
			"SC311",
			"block-brace-spacing",
			"One space before { when it follows a name, a closer or =",
			format.StageSpacing,
			"spacing", "braces",
		),
	}
}

// Apply turns `x.do{` into `x.do {` and `if (c){` into `if (c) {`.
func (r *BlockBraceSpacingRule) Apply(snap *format.Snapshot) []fix.TextEdit {
	b := snap.Edits()
	src := snap.Content

	for _, open := range codeOffsets(snap, '{') {
		j := scan.SkipSpacesBack(src, open)
		if j == snap.LineStart(open) || !snap.IsCode(j-1) {
			continue
		}
		if prev := src[j-1]; scan.IsIdentByte(prev) || strings.IndexByte(")]}=", prev) >= 0 {
			b.Set(j, open, " ")
		}
	}

	return b.Edits()
}

// DeclarationKeywordSpacingRule puts one space after var, arg, classvar
// and const.
type DeclarationKeywordSpacingRule struct {
	format.BaseRule
}

// NewDeclarationKeywordSpacingRule creates a new declaration keyword
// spacing rule.
func NewDeclarationKeywordSpacingRule() *DeclarationKeywordSpacingRule {
	return &DeclarationKeywordSpacingRule{
		BaseRule: format.NewBaseRule(
			"SC312",
			"declaration-keyword-spacing",
			"Exactly one space after var, arg, classvar and const",
			format.StageSpacing,
			"spacing", "keywords",
		),
	}
}

// Apply turns `var   a` into `var a`.
func (r *DeclarationKeywordSpacingRule) Apply(snap *format.Snapshot) []fix.TextEdit {
	b := snap.Edits()
	src := snap.Content

	for _, w := range codeWords(snap) {
		if !lo.Contains(declWords, w.Text) || afterDot(src, w.Start) {
			continue
		}
		k := scan.SkipSpaces(src, w.End)
		if k < len(src) && (scan.IsIdentStart(src[k]) || strings.IndexByte("<>.", src[k]) >= 0) {
			b.Set(w.End, k, " ")
		}
	}

	return b.Edits()
}

// PipeHeaderSpacingRule formats the |...| header of a function block:
// `{ |a, b|`.
type PipeHeaderSpacingRule struct {
	format.BaseRule
}

// NewPipeHeaderSpacingRule creates a new pipe header spacing rule.
func NewPipeHeaderSpacingRule() *PipeHeaderSpacingRule {
	return &PipeHeaderSpacingRule{
		BaseRule: format.NewBaseRule(
			"SC313",
			"pipe-header-spacing",
			"One space between { and |, none just inside the pipes",
			format.StageSpacing,
			"spacing", "headers",
		),
	}
}

// Apply turns `{|  a, b |` into `{ |a, b|`.
func (r *PipeHeaderSpacingRule) Apply(snap *format.Snapshot) []fix.TextEdit {
	b := snap.Edits()
	src := snap.Content

	for _, fb := range snap.NodesOfKind(cst.KindFunctionBlock) {
		open, _, ok := blockBounds(snap, fb)
		if !ok {
			continue
		}
		pl := pipeHeader(snap, fb)
		if pl == nil {
			continue
		}

		if singleLine(snap, open, pl.Start) && !snap.HasComment(open+1, pl.Start) {
			b.Set(open+1, pl.Start, " ")
		}

		if pl.Len() <= 2 || !singleLine(snap, pl.Start, pl.End) {
			continue
		}
		left := scan.SkipSpaces(src, pl.Start+1)
		b.Delete(pl.Start+1, left)
		if right := scan.SkipSpacesBack(src, pl.End-1); right > left {
			b.Delete(right, pl.End-1)
		}
	}

	return b.Edits()
}

// PipeBodySpacingRule puts one space between a pipe header and a body on
// the same line.
type PipeBodySpacingRule struct {
	format.BaseRule
}

// NewPipeBodySpacingRule creates a new pipe body spacing rule.
func NewPipeBodySpacingRule() *PipeBodySpacingRule {
	return &PipeBodySpacingRule{
		BaseRule: format.NewBaseRule(
			"SC314",
			"pipe-body-spacing",
			"One space after the closing pipe when the body continues on the same line",
			format.StageSpacing,
			"spacing", "headers",
		),
	}
}

// Apply turns `|a|a + 1` into `|a| a + 1`.
func (r *PipeBodySpacingRule) Apply(snap *format.Snapshot) []fix.TextEdit {
	b := snap.Edits()

	for _, fb := range snap.NodesOfKind(cst.KindFunctionBlock) {
		if _, _, ok := blockBounds(snap, fb); !ok {
			continue
		}
		if pl := pipeHeader(snap, fb); pl != nil {
			spaceAfter(b, snap, pl.End)
		}
	}

	return b.Edits()
}

// InlineCommentSpacingRule formats comments that follow code on the same
// line: two spaces before `//` and one after it.
type InlineCommentSpacingRule struct {
	format.BaseRule
}

// NewInlineCommentSpacingRule creates a new inline comment spacing rule.
func NewInlineCommentSpacingRule() *InlineCommentSpacingRule {
	return &InlineCommentSpacingRule{
		BaseRule: format.NewBaseRule(
			"SC315",
			"inline-comment-spacing",
			"Two spaces before a trailing // comment and one space after the slashes",
			format.StageSpacing,
			"spacing", "comments",
		),
	}
}

// Apply turns `x;// note` into `x;  // note`. Comments starting with `///`
// or `//*` keep their text as written.
func (r *InlineCommentSpacingRule) Apply(snap *format.Snapshot) []fix.TextEdit {
	b := snap.Edits()
	src := snap.Content

	for i := range src {
		if !lineCommentAt(snap, i) {
			continue
		}
		if !scan.AtLineStart(src, i) {
			b.Set(scan.SkipSpacesBack(src, i), i, "  ")
		}

		body := i + 2
		if body >= len(src) {
			continue
		}
		switch c := src[body]; {
		case c == '\t':
			b.ReplaceRange(body, body+1, " ")
		case c == ' ' || c == '/' || c == '*' || scan.IsNewline(c):
		default:
			b.Insert(body, " ")
		}
	}

	return b.Edits()
}
