package rules

import (
	"strings"

	"github.com/samber/lo"

	"github.com/yaklabco/sclangfmt/pkg/cst"
	"github.com/yaklabco/sclangfmt/pkg/fix"
	"github.com/yaklabco/sclangfmt/pkg/format"
	"github.com/yaklabco/sclangfmt/pkg/scan"
)

// BlockBraceLayoutRule moves a `{` standing alone on its line up to the end
// of the line before it, and joins `}` / `else` / `{` lines into one.
type BlockBraceLayoutRule struct {
	format.BaseRule
}

// NewBlockBraceLayoutRule creates a new block brace layout rule.
func NewBlockBraceLayoutRule() *BlockBraceLayoutRule {
	return &BlockBraceLayoutRule{
		BaseRule: format.NewBaseRule(
			"SC101",
			"block-brace-layout",
			"Opening braces of blocks belong on the line that introduces them",
			format.StageStructural,
			"structural", "braces",
		),
	}
}

// Apply runs two sub-passes over the same lines. The first never touches
// a line of an else triple, so their edits are disjoint and the second
// sees the text the first leaves behind.
func (r *BlockBraceLayoutRule) Apply(snap *format.Snapshot) []fix.TextEdit {
	b := snap.Edits()
	all := lines(snap)

	attachBraces(snap, b, all)
	joinElseTriples(snap, b, all)

	return b.Edits()
}

// attachBraces joins `<expr>\n{` into `<expr> {` when the previous line
// ends with `=`, `)`, `]` or `}`.
func attachBraces(snap *format.Snapshot, b *fix.EditBuilder, all []line) {
	src := snap.Content

	for i := 1; i < len(all); i++ {
		ln := all[i]
		brace := scan.IndentEnd(src, ln.Start)
		if brace >= ln.End || !snap.CodeAt(brace, '{') || !scan.RestIsBlank(src, brace+1) {
			continue
		}

		prev := all[i-1]
		last := scan.SkipSpacesBack(src, prev.End) - 1
		if last < prev.Start || !snap.IsCode(last) || !strings.ContainsRune("=)]}", rune(src[last])) {
			continue
		}

		b.ReplaceRange(last+1, brace+1, " {")
	}
}

// joinElseTriples rewrites the three lines `}`, `else`, `{` sharing one
// indentation as `} else {`.
func joinElseTriples(snap *format.Snapshot, b *fix.EditBuilder, all []line) {
	for i := 0; i+2 < len(all); i++ {
		closeLn, elseLn, openLn := all[i], all[i+1], all[i+2]

		indent, ok := soleToken(snap, closeLn, "}")
		if !ok {
			continue
		}
		if ind, ok := soleToken(snap, elseLn, "else"); !ok || ind != indent {
			continue
		}
		if ind, ok := soleToken(snap, openLn, "{"); !ok || ind != indent {
			continue
		}

		b.ReplaceRange(closeLn.Start, openLn.End, indent+"} else {")
		i += 2
	}
}

// soleToken reports whether ln holds exactly the code token tok after its
// indentation, and returns that indentation.
func soleToken(snap *format.Snapshot, ln line, tok string) (string, bool) {
	src := snap.Content
	start := scan.IndentEnd(src, ln.Start)
	end := start + len(tok)
	if end > ln.End || string(src[start:end]) != tok || !snap.IsCode(start) {
		return "", false
	}
	if scan.SkipSpaces(src, end) < ln.End {
		return "", false
	}
	return string(src[ln.Start:start]), true
}

// ArgToPipeRule rewrites `arg a, b;` declarations as `|a, b|` headers.
type ArgToPipeRule struct {
	format.BaseRule
}

// NewArgToPipeRule creates a new arg-to-pipe rule.
func NewArgToPipeRule() *ArgToPipeRule {
	return &ArgToPipeRule{
		BaseRule: format.NewBaseRule(
			"SC102",
			"arg-to-pipe-header",
			"Function parameters use the |a, b| header form instead of arg",
			format.StageStructural,
			"structural", "headers",
		),
	}
}

// Apply replaces each clean `arg` parameter list with a pipe header holding
// the same parameters.
func (r *ArgToPipeRule) Apply(snap *format.Snapshot) []fix.TextEdit {
	b := snap.Edits()

	for _, pl := range snap.NodesOfKind(cst.KindParameterList) {
		if !scan.WordAt(snap.Content, pl.Start, "arg") || !usable(pl) {
			continue
		}
		params := pl.ChildrenOfKind(cst.KindParameter)
		if len(params) == 0 {
			continue
		}
		inner := snap.Slice(params[0].Start, params[len(params)-1].End)
		b.ReplaceRange(pl.Start, pl.End, "|"+inner+"|")
	}

	return b.Edits()
}

// PipeHeaderOnBraceLineRule pulls a pipe header that starts its own line up
// onto the line of its opening brace.
type PipeHeaderOnBraceLineRule struct {
	format.BaseRule
}

// NewPipeHeaderOnBraceLineRule creates a new pipe-header-on-brace-line rule.
func NewPipeHeaderOnBraceLineRule() *PipeHeaderOnBraceLineRule {
	return &PipeHeaderOnBraceLineRule{
		BaseRule: format.NewBaseRule(
			"SC103",
			"pipe-header-on-brace-line",
			"A |params| header sits on the same line as its opening brace",
			format.StageStructural,
			"structural", "headers",
		),
	}
}

// Apply joins `{\n |a|` into `{ |a|`.
func (r *PipeHeaderOnBraceLineRule) Apply(snap *format.Snapshot) []fix.TextEdit {
	b := snap.Edits()

	for _, fb := range snap.NodesOfKind(cst.KindFunctionBlock) {
		open, _, ok := blockBounds(snap, fb)
		if !ok {
			continue
		}
		pl := pipeHeader(snap, fb)
		if pl == nil || singleLine(snap, open, pl.Start) || snap.HasComment(open+1, pl.Start) {
			continue
		}
		b.ReplaceRange(open+1, pl.Start, " ")
	}

	return b.Edits()
}

// TrailingClosureRule moves the function arguments of `if` and `do` out of
// the parentheses: `if(c, {a}, {b})` becomes `if (c) {a} {b}` and
// `x.do({..})` becomes `x.do {..}`.
type TrailingClosureRule struct {
	format.BaseRule
	callees   []string
	selectors []string
}

// NewTrailingClosureRule creates a new trailing closure rule for if and do.
func NewTrailingClosureRule() *TrailingClosureRule {
	return &TrailingClosureRule{
		BaseRule: format.NewBaseRule(
			"SC104",
			"trailing-closures",
			"if and do take their function arguments as trailing blocks",
			format.StageStructural,
			"structural", "closures",
		),
		callees:   []string{"if"},
		selectors: []string{"do"},
	}
}

// NewIterationClosureRule creates the trailing closure rule for the
// collection iterators and while.
func NewIterationClosureRule() *TrailingClosureRule {
	return &TrailingClosureRule{
		BaseRule: format.NewBaseRule(
			"SC105",
			"iteration-trailing-closures",
			"Iterators (collect, select, reject, detect, inject) and while take trailing blocks",
			format.StageStructural,
			"structural", "closures",
		),
		callees:   []string{"while"},
		selectors: []string{"collect", "select", "reject", "detect", "inject"},
	}
}

// Apply rewrites every eligible call.
func (r *TrailingClosureRule) Apply(snap *format.Snapshot) []fix.TextEdit {
	b := snap.Edits()

	for _, n := range snap.NodesOfKind(cst.KindCall, cst.KindMethodCall) {
		if isReceiver(n) || n.FirstChildOfKind(cst.KindFunctionBlock) != nil {
			continue
		}
		callArgs := n.FirstChildOfKind(cst.KindCallArgs)
		args, ok := argumentsOf(snap, callArgs)
		if !ok || !argGapsClean(snap, callArgs, args) {
			continue
		}

		switch n.Kind {
		case cst.KindCall:
			r.rewriteCall(b, snap, n, callArgs, args)
		case cst.KindMethodCall:
			r.rewriteMethod(b, snap, n, callArgs, args)
		}
	}

	return b.Edits()
}

func (r *TrailingClosureRule) rewriteCall(b *fix.EditBuilder, snap *format.Snapshot, call, callArgs *cst.Node, args []*cst.Node) {
	name := calleeName(snap, call)
	if !lo.Contains(r.callees, name) {
		return
	}

	var head string
	var rest []*cst.Node
	switch name {
	case "if":
		if len(args) < 2 || len(args) > 3 {
			return
		}
		cond := args[0].Significant()
		if len(cond) != 1 {
			return
		}
		head = " (" + text(snap, cond[0]) + ")"
		rest = args[1:]
	case "while":
		if len(args) != 2 {
			return
		}
		rest = args
	}

	blocks, ok := blockArgs(rest)
	if !ok {
		return
	}

	var sb strings.Builder
	sb.WriteString(head)
	for _, blk := range blocks {
		sb.WriteByte(' ')
		sb.WriteString(text(snap, blk))
	}
	b.ReplaceRange(call.FirstChild.End, callArgs.End, sb.String())
}

func (r *TrailingClosureRule) rewriteMethod(b *fix.EditBuilder, snap *format.Snapshot, mc, callArgs *cst.Node, args []*cst.Node) {
	sel, name := selectorName(snap, mc)
	if sel == nil || !lo.Contains(r.selectors, name) || len(args) != 1 {
		return
	}
	blocks, ok := blockArgs(args)
	if !ok {
		return
	}
	b.ReplaceRange(sel.End, callArgs.End, " "+text(snap, blocks[0]))
}

// PipeParamCommasRule inserts the commas missing between parameters of a
// pipe header.
type PipeParamCommasRule struct {
	format.BaseRule
}

// NewPipeParamCommasRule creates a new pipe parameter commas rule.
func NewPipeParamCommasRule() *PipeParamCommasRule {
	return &PipeParamCommasRule{
		BaseRule: format.NewBaseRule(
			"SC106",
			"pipe-param-commas",
			"Parameters in a |...| header are separated by commas",
			format.StageStructural,
			"structural", "headers",
		),
	}
}

// Apply turns `|a b|` into `|a, b|`.
func (r *PipeParamCommasRule) Apply(snap *format.Snapshot) []fix.TextEdit {
	b := snap.Edits()

	for _, pl := range snap.NodesOfKind(cst.KindParameterList) {
		if snap.Content[pl.Start] != '|' {
			continue
		}
		params := pl.ChildrenOfKind(cst.KindParameter)
		for i := 1; i < len(params); i++ {
			gapStart, gapEnd := params[i-1].End, params[i].Start
			if snap.HasComment(gapStart, gapEnd) || hasCodeByte(snap, gapStart, gapEnd, ',') {
				continue
			}
			b.ReplaceRange(gapStart, gapEnd, ", ")
		}
	}

	return b.Edits()
}

func hasCodeByte(snap *format.Snapshot, start, end int, c byte) bool {
	for i := start; i < end; i++ {
		if snap.CodeAt(i, c) {
			return true
		}
	}
	return false
}

// DotChainLayoutRule moves a dot that ends a line to the start of the next
// one, so chained messages read `\n    .foo`.
type DotChainLayoutRule struct {
	format.BaseRule
}

// NewDotChainLayoutRule creates a new dot chain layout rule.
func NewDotChainLayoutRule() *DotChainLayoutRule {
	return &DotChainLayoutRule{
		BaseRule: format.NewBaseRule(
			"SC107",
			"dot-chain-layout",
			"Chained messages split across lines start the line with the dot",
			format.StageStructural,
			"structural", "chains",
		),
	}
}

// Apply rewrites `x.\n  foo` as `x\n  .foo`.
func (r *DotChainLayoutRule) Apply(snap *format.Snapshot) []fix.TextEdit {
	b := snap.Edits()
	src := snap.Content

	for _, dot := range codeOffsets(snap, '.') {
		if isRangeDot(src, dot) || (dot > 0 && isDigit(src[dot-1])) {
			continue
		}
		if scan.AtLineStart(src, dot) || !scan.RestIsBlank(src, dot+1) {
			continue
		}
		eol := scan.SkipSpaces(src, dot+1)
		next := scan.SkipSpaces(src, scan.NextLineStart(src, eol))
		if eol >= len(src) || next >= len(src) || !scan.IsIdentStart(src[next]) || !snap.IsCode(next) {
			continue
		}
		b.Delete(dot, eol)
		b.Insert(next, ".")
	}

	return b.Edits()
}

// isRangeDot reports whether the dot at off is part of `..` or `...`.
func isRangeDot(src []byte, off int) bool {
	return (off > 0 && src[off-1] == '.') || (off+1 < len(src) && src[off+1] == '.')
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
