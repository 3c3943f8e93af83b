// Package sclang provides an error-tolerant parser for SuperCollider source
// that produces a cst.Tree.
package sclang

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/sclangfmt/pkg/cst"
)

// DefaultMaxDepth bounds expression nesting. Deeper input fails with
// ErrNestingTooDeep rather than exhausting the stack.
const DefaultMaxDepth = 1000

// ErrNestingTooDeep is returned when the input nests deeper than the
// parser's limit.
var ErrNestingTooDeep = errors.New("nesting too deep")

// ctxCheckInterval is how many statements are parsed between context checks.
const ctxCheckInterval = 64

// Parser implements format.Parser for SuperCollider.
//
// Parsing never fails on malformed input: unparseable tokens become error
// nodes and unterminated constructs get a missing child. It fails only when
// the context is cancelled or nesting exceeds MaxDepth.
type Parser struct {
	maxDepth int
}

// New creates a parser with the default nesting limit.
func New() *Parser {
	return &Parser{maxDepth: DefaultMaxDepth}
}

// WithMaxDepth returns a copy of the parser using the given nesting limit.
func (p *Parser) WithMaxDepth(depth int) *Parser {
	cp := *p
	cp.maxDepth = max(depth, 1)
	return &cp
}

// Parse converts SuperCollider source into a syntax tree.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*cst.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	src := copyContent(content)
	ps := &parser{
		ctx:      ctx,
		src:      src,
		lex:      newLexer(src),
		maxDepth: p.maxDepth,
	}
	ps.advance()

	root := ps.parseSource()
	if ps.err != nil {
		return nil, ps.err
	}

	for _, c := range ps.comments {
		cst.Attach(root, c)
	}

	return cst.NewTree(path, src, root), nil
}

// copyContent creates a copy of the content slice to ensure immutability.
func copyContent(content []byte) []byte {
	if content == nil {
		return []byte{}
	}
	cp := make([]byte, len(content))
	copy(cp, content)
	return cp
}
