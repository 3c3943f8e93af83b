package sclang

import (
	"context"
	"fmt"

	"github.com/yaklabco/sclangfmt/pkg/cst"
)

// keywords are identifiers that evaluate to a fixed value or pseudo-variable.
//
//nolint:gochecknoglobals // read-only lookup table
var keywords = map[string]bool{
	"true": true, "false": true, "nil": true, "inf": true, "pi": true,
	"this": true, "super": true, "thisProcess": true, "thisThread": true,
	"thisFunction": true, "thisFunctionDef": true, "thisMethod": true,
	"currentEnvironment": true, "topEnvironment": true,
}

// parser holds the state of one recursive-descent parse.
type parser struct {
	ctx      context.Context
	src      []byte
	lex      lexer
	tok      token
	comments []*cst.Node
	depth    int
	maxDepth int
	steps    int

	// inHeader is set while parsing default values in a |...| header,
	// where a '|' closes the header instead of acting as an operator.
	inHeader bool

	err error
}

// advance moves to the next significant token, collecting comments.
func (p *parser) advance() {
	for {
		t := p.lex.next()
		switch t.kind {
		case tokLineComment:
			p.comments = append(p.comments, cst.NewNode(cst.KindLineComment, t.start, t.end))
		case tokBlockComment:
			p.comments = append(p.comments, cst.NewNode(cst.KindBlockComment, t.start, t.end))
		default:
			p.tok = t
			return
		}
	}
}

// peek returns the significant token after the current one.
func (p *parser) peek() token {
	l := p.lex
	for {
		t := l.next()
		if t.kind != tokLineComment && t.kind != tokBlockComment {
			return t
		}
	}
}

func (p *parser) text(t token) string {
	return string(p.src[t.start:t.end])
}

func (p *parser) isPunctTok(t token, c byte) bool {
	return t.kind == tokPunct && p.src[t.start] == c
}

func (p *parser) isPunct(c byte) bool {
	return p.isPunctTok(p.tok, c)
}

func (p *parser) atCloser() bool {
	return p.tok.kind == tokEOF || p.isPunct(')') || p.isPunct(']') || p.isPunct('}')
}

func (p *parser) isPipe() bool {
	return p.tok.kind == tokOp && p.src[p.tok.start] == '|'
}

func (p *parser) isHeaderPipe() bool {
	return p.inHeader && p.isPipe()
}

// splitPipe narrows the current operator token to its leading '|'.
func (p *parser) splitPipe() {
	p.tok.end = p.tok.start + 1
	p.lex.pos = p.tok.end
}

func (p *parser) setHeader(v bool) bool {
	old := p.inHeader
	p.inHeader = v
	return old
}

// leaf consumes the current token as a node of the given kind.
func (p *parser) leaf(kind cst.Kind) *cst.Node {
	n := cst.NewNode(kind, p.tok.start, p.tok.end)
	p.advance()
	return n
}

func (p *parser) errorToken() *cst.Node {
	return p.leaf(cst.KindError)
}

func (p *parser) missing() *cst.Node {
	return cst.NewMissing(cst.KindError, p.tok.start)
}

func (p *parser) enter() bool {
	p.depth++
	if p.depth > p.maxDepth {
		if p.err == nil {
			p.err = fmt.Errorf("%w: limit %d", ErrNestingTooDeep, p.maxDepth)
		}
		return false
	}
	return true
}

func (p *parser) leave() {
	p.depth--
}

// wrap creates a node of kind spanning its children.
func wrap(kind cst.Kind, children ...*cst.Node) *cst.Node {
	n := cst.NewNode(kind, children[0].Start, children[len(children)-1].End)
	for _, c := range children {
		cst.AppendChild(n, c)
	}
	return n
}

// extend appends child and grows n to cover it.
func extend(n, child *cst.Node) {
	cst.AppendChild(n, child)
	n.End = max(n.End, child.End)
}

func (p *parser) parseSource() *cst.Node {
	root := cst.NewNode(cst.KindSource, 0, len(p.src))
	p.parseStatements(root, 0)
	return root
}

// parseStatements appends statements to parent until closer (left
// unconsumed) or end of input. Stray closers of other kinds become errors.
func (p *parser) parseStatements(parent *cst.Node, closer byte) {
	for p.err == nil {
		if p.tok.kind == tokEOF {
			return
		}
		if p.tok.kind == tokPunct {
			switch c := p.src[p.tok.start]; c {
			case ';':
				p.advance()
				continue
			case ')', ']', '}':
				if c == closer {
					return
				}
				cst.AppendChild(parent, p.errorToken())
				continue
			}
		}

		p.steps++
		if p.steps%ctxCheckInterval == 0 {
			if err := p.ctx.Err(); err != nil {
				p.err = fmt.Errorf("parse cancelled: %w", err)
				return
			}
		}

		cst.AppendChild(parent, p.parseStatement())
	}
}

func (p *parser) parseStatement() *cst.Node {
	if p.tok.kind == tokIdent {
		switch p.text(p.tok) {
		case "var", "classvar", "const":
			return p.parseVarDecl()
		}
	}
	return p.parseExpr()
}

// parseVarDecl parses `var a, b = 1;` including accessor markers used in
// class bodies (`var <>x`).
func (p *parser) parseVarDecl() *cst.Node {
	decl := p.leaf(cst.KindVarDecl)

	for p.err == nil {
		if p.tok.kind == tokOp {
			switch p.text(p.tok) {
			case "<", ">", "<>":
				p.advance()
			}
		}
		if p.tok.kind != tokIdent {
			break
		}
		extend(decl, p.leaf(cst.KindIdentifier))
		if p.tok.kind == tokAssign {
			p.advance()
			extend(decl, p.parseExpr())
		}
		if !p.isPunct(',') {
			break
		}
		p.advance()
	}

	if p.isPunct(';') {
		decl.End = p.tok.end
		p.advance()
	}

	return decl
}

func (p *parser) parseExpr() *cst.Node {
	if p.isPunct('#') && p.peek().kind == tokIdent {
		return p.parseDestructure()
	}

	left := p.parseBinary()
	if p.tok.kind == tokAssign {
		p.advance()
		return wrap(cst.KindAssignment, left, p.parseExpr())
	}
	return left
}

// parseDestructure parses `#a, b ... c = expr`.
func (p *parser) parseDestructure() *cst.Node {
	n := p.leaf(cst.KindAssignment)

	for p.err == nil && p.tok.kind == tokIdent {
		extend(n, p.leaf(cst.KindIdentifier))
		if p.isPunct(',') || (p.tok.kind == tokOp && p.text(p.tok) == "...") {
			p.advance()
			continue
		}
		break
	}

	if p.tok.kind != tokAssign {
		extend(n, p.missing())
		return n
	}
	p.advance()
	extend(n, p.parseExpr())
	return n
}

// parseBinary parses a left-to-right chain of binary operators; sclang has
// no operator precedence.
func (p *parser) parseBinary() *cst.Node {
	left := p.parseUnary()

	for p.err == nil {
		switch {
		case p.tok.kind == tokOp && !p.isHeaderPipe():
			op := p.tok
			p.advance()
			if p.text(op) == ".." && (p.atCloser() || p.isPunct(',')) {
				open := cst.NewNode(cst.KindBinary, left.Start, op.end)
				cst.AppendChild(open, left)
				left = open
				continue
			}
			left = wrap(cst.KindBinary, left, p.parseUnary())
		case p.isKeywordOp():
			p.advance()
			p.advance()
			left = wrap(cst.KindBinary, left, p.parseUnary())
		default:
			return left
		}
	}

	return left
}

// isKeywordOp reports whether the current token starts a keyword binary
// operator such as `a max: b`.
func (p *parser) isKeywordOp() bool {
	if p.inHeader || p.tok.kind != tokIdent {
		return false
	}
	next := p.peek()
	return p.isPunctTok(next, ':') && next.start == p.tok.end
}

func (p *parser) parseUnary() *cst.Node {
	ok := p.enter()
	defer p.leave()
	if !ok {
		return p.missing()
	}

	if (p.tok.kind == tokOp && !p.isHeaderPipe()) || p.isPunct('`') || p.isPunct('^') {
		start := p.tok.start
		p.advance()
		operand := p.parseUnary()
		n := cst.NewNode(cst.KindUnary, start, operand.End)
		cst.AppendChild(n, operand)
		return n
	}

	return p.parsePostfix(p.parsePrimary())
}

func (p *parser) parsePrimary() *cst.Node {
	switch p.tok.kind {
	case tokNumber:
		return p.leaf(cst.KindNumber)
	case tokString:
		return p.leaf(cst.KindString)
	case tokSymbol:
		return p.leaf(cst.KindSymbol)
	case tokChar:
		return p.leaf(cst.KindChar)
	case tokLiteralSymbol:
		return p.leaf(cst.KindLiteralSymbol)
	case tokEnvVar:
		return p.leaf(cst.KindEnvVar)
	case tokClass:
		return p.parseClassPrimary()
	case tokIdent:
		if keywords[p.text(p.tok)] {
			return p.leaf(cst.KindKeyword)
		}
		id := p.leaf(cst.KindIdentifier)
		if p.isPunct('(') || p.isPunct('{') {
			return p.parseCallTail(wrap(cst.KindCall, id))
		}
		return id
	case tokPunct:
		switch p.src[p.tok.start] {
		case '(':
			return p.parseParen()
		case '[':
			return p.parseCollection(nil)
		case '{':
			return p.parseFunctionBlock()
		case '#':
			return p.parseHash()
		case ')', ']', '}':
			return p.missing()
		}
	case tokEOF:
		return p.missing()
	case tokOp:
		if p.isHeaderPipe() {
			return p.missing()
		}
	}

	return p.errorToken()
}

// parseClassPrimary handles `Foo`, `Foo(args)`, `Foo[items]`, `Foo { }`
// (a trailing closure or a class body) and `Foo : Bar { }`.
func (p *parser) parseClassPrimary() *cst.Node {
	cls := p.leaf(cst.KindClassName)

	switch {
	case p.isPunct('(') || p.isPunct('{'):
		return p.parseCallTail(wrap(cst.KindCall, cls))
	case p.isPunct('['):
		return p.parseCollection(cls)
	case p.isPunct(':') && p.peek().kind == tokClass:
		p.advance()
		call := wrap(cst.KindCall, cls, p.leaf(cst.KindClassName))
		return p.parseCallTail(call)
	}

	return cls
}

// parseCallTail extends a call with its argument list and any trailing
// function blocks.
func (p *parser) parseCallTail(call *cst.Node) *cst.Node {
	if p.isPunct('(') {
		extend(call, p.parseCallArgs())
	}
	for p.err == nil && p.isPunct('{') {
		extend(call, p.parseFunctionBlock())
	}
	return call
}

func (p *parser) parsePostfix(n *cst.Node) *cst.Node {
	for p.err == nil {
		switch {
		case p.isPunct('.'):
			dot := p.tok
			p.advance()
			switch {
			case p.tok.kind == tokIdent:
				n = p.parseCallTail(wrap(cst.KindMethodCall, n, p.leaf(cst.KindSelector)))
			case p.isPunct('('):
				n = p.parseCallTail(wrap(cst.KindMethodCall, n))
			case p.isPunct('['):
				n = p.parseIndex(n)
			default:
				mc := cst.NewNode(cst.KindMethodCall, n.Start, dot.end)
				cst.AppendChild(mc, n)
				extend(mc, p.missing())
				n = mc
			}
		case p.isPunct('['):
			n = p.parseIndex(n)
		default:
			return n
		}
	}
	return n
}

func (p *parser) parseIndex(recv *cst.Node) *cst.Node {
	old := p.setHeader(false)
	defer p.setHeader(old)

	n := cst.NewNode(cst.KindIndex, recv.Start, p.tok.end)
	cst.AppendChild(n, recv)
	p.advance()
	p.parseElements(n, ']', p.parseExpr)
	return n
}

// parseHash handles `#[..]` literal arrays and `#{..}` closed functions.
func (p *parser) parseHash() *cst.Node {
	start := p.tok.start
	next := p.peek()

	switch {
	case p.isPunctTok(next, '[') && next.start == start+1:
		p.advance()
		n := p.parseCollection(nil)
		n.Start = start
		return n
	case p.isPunctTok(next, '{') && next.start == start+1:
		p.advance()
		n := p.parseFunctionBlock()
		n.Start = start
		return n
	}

	return p.errorToken()
}

func (p *parser) parseCollection(head *cst.Node) *cst.Node {
	old := p.setHeader(false)
	defer p.setHeader(old)

	start := p.tok.start
	if head != nil {
		start = head.Start
	}
	n := cst.NewNode(cst.KindCollection, start, p.tok.end)
	if head != nil {
		cst.AppendChild(n, head)
	}
	p.advance()
	p.parseElements(n, ']', func() *cst.Node { return p.parseElement(true) })
	return n
}

func (p *parser) parseCallArgs() *cst.Node {
	old := p.setHeader(false)
	defer p.setHeader(old)

	n := p.leaf(cst.KindCallArgs)
	p.parseElements(n, ')', p.parseArgument)
	return n
}

// parseParen handles `()` (an empty event), `(k: v, ..)` events and
// parenthesized expressions or code blocks.
func (p *parser) parseParen() *cst.Node {
	old := p.setHeader(false)
	defer p.setHeader(old)

	if p.isPunctTok(p.peek(), ')') {
		n := p.leaf(cst.KindEvent)
		n.End = p.tok.end
		p.advance()
		return n
	}

	open := p.tok
	p.advance()

	if p.isAssocKey() {
		n := cst.NewNode(cst.KindEvent, open.start, open.end)
		p.parseElements(n, ')', func() *cst.Node { return p.parseElement(true) })
		return n
	}

	n := cst.NewNode(cst.KindParen, open.start, open.end)
	p.parseStatements(n, ')')
	if p.isPunct(')') {
		n.End = p.tok.end
		p.advance()
	} else {
		extend(n, p.missing())
	}
	return n
}

// parseElements parses separator-delimited elements into n until closer.
// Trailing and doubled commas are tolerated; a missing separator or closer
// leaves a missing node so the region is left untouched.
func (p *parser) parseElements(n *cst.Node, closer byte, elem func() *cst.Node) {
	for p.err == nil {
		switch {
		case p.isPunct(closer):
			n.End = p.tok.end
			p.advance()
			return
		case p.atCloser():
			extend(n, p.missing())
			return
		case p.isPunct(','):
			p.advance()
			continue
		case p.isPunct(';'):
			extend(n, p.errorToken())
			continue
		}

		extend(n, elem())

		if p.isPunct(',') {
			p.advance()
			continue
		}
		if !p.atCloser() {
			extend(n, p.missing())
		}
	}
}

func (p *parser) isAssocKey() bool {
	if p.tok.kind != tokIdent && p.tok.kind != tokSymbol {
		return false
	}
	return p.isPunctTok(p.peek(), ':')
}

func (p *parser) parseElement(allowAssoc bool) *cst.Node {
	if allowAssoc && p.isAssocKey() {
		kind := cst.KindIdentifier
		if p.tok.kind == tokSymbol {
			kind = cst.KindSymbol
		}
		key := p.leaf(kind)
		p.advance()
		return wrap(cst.KindAssociation, key, p.parseExpr())
	}
	return p.parseExpr()
}

func (p *parser) parseArgument() *cst.Node {
	if p.tok.kind == tokIdent && p.isAssocKey() {
		key := p.leaf(cst.KindIdentifier)
		p.advance()
		return wrap(cst.KindArgument, key, p.parseExpr())
	}
	return wrap(cst.KindArgument, p.parseExpr())
}

// parseFunctionBlock parses `{ [params] body }`.
func (p *parser) parseFunctionBlock() *cst.Node {
	old := p.setHeader(false)
	defer p.setHeader(old)

	n := p.leaf(cst.KindFunctionBlock)

	switch {
	case p.isPipe():
		extend(n, p.parsePipeParams())
	case p.tok.kind == tokIdent && p.text(p.tok) == "arg":
		extend(n, p.parseArgParams())
	}

	p.parseStatements(n, '}')
	if p.isPunct('}') {
		n.End = p.tok.end
		p.advance()
	} else {
		extend(n, p.missing())
	}
	return n
}

// parsePipeParams parses a `|a, b = 1|` header. Missing commas between
// parameters are tolerated.
func (p *parser) parsePipeParams() *cst.Node {
	if p.text(p.tok) == "||" {
		return p.leaf(cst.KindParameterList)
	}

	p.splitPipe()
	n := p.leaf(cst.KindParameterList)

	old := p.setHeader(true)
	defer p.setHeader(old)

	for p.err == nil {
		switch {
		case p.isPipe():
			p.splitPipe()
			n.End = p.tok.end
			p.advance()
			return n
		case p.tok.kind == tokIdent || (p.tok.kind == tokOp && p.text(p.tok) == "..."):
			extend(n, p.parseParameter())
		case p.isPunct(','):
			p.advance()
		case p.atCloser():
			extend(n, p.missing())
			return n
		default:
			extend(n, p.errorToken())
		}
	}
	return n
}

// parseArgParams parses an `arg a, b = 1;` declaration.
func (p *parser) parseArgParams() *cst.Node {
	n := p.leaf(cst.KindParameterList)

	for p.err == nil {
		if p.tok.kind != tokIdent && (p.tok.kind != tokOp || p.text(p.tok) != "...") {
			break
		}
		extend(n, p.parseParameter())
		if !p.isPunct(',') {
			break
		}
		p.advance()
	}

	if p.isPunct(';') {
		n.End = p.tok.end
		p.advance()
	}
	return n
}

func (p *parser) parseParameter() *cst.Node {
	param := cst.NewNode(cst.KindParameter, p.tok.start, p.tok.end)
	if p.tok.kind == tokOp {
		p.advance()
	}

	if p.tok.kind != tokIdent {
		extend(param, p.missing())
		return param
	}
	extend(param, p.leaf(cst.KindIdentifier))

	if p.tok.kind == tokAssign {
		p.advance()
		extend(param, p.parseBinary())
	}
	return param
}
