// Package mdfence formats SuperCollider code fences embedded in Markdown.
//
// Fences are located with goldmark; only the bytes between the opening and
// closing fence lines are rewritten, so the surrounding Markdown is kept
// byte for byte.
package mdfence

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/sclangfmt/pkg/langdetect"
)

// Block is one fenced SuperCollider block.
type Block struct {
	// Info is the fence info string, e.g. "supercollider title=x".
	Info string

	// Start and End delimit the code between the fence lines.
	Start int
	End   int

	// Line is the 1-based line of the first code line.
	Line int
}

// FormatFunc formats the code of one block.
type FormatFunc func(ctx context.Context, block Block, code []byte) ([]byte, error)

// Result is the outcome of formatting a Markdown document.
type Result struct {
	Output []byte

	// Blocks is the number of SuperCollider fences found.
	Blocks int

	// Changed is the number of fences whose code changed.
	Changed int
}

// Find returns the fenced blocks of src whose info string names one of
// languages, in source order. Fences nested in containers that prefix
// their lines (block quotes, list items) are skipped because their code is
// not a contiguous byte range.
func Find(src []byte, languages []string) []Block {
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var blocks []Block
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fence, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		var info string
		if fence.Info != nil {
			info = string(fence.Info.Value(src))
		}
		if !langdetect.IsFenceLanguage(info, languages) {
			return ast.WalkSkipChildren, nil
		}

		if block, ok := contiguous(src, fence.Lines()); ok {
			block.Info = info
			blocks = append(blocks, block)
		}
		return ast.WalkSkipChildren, nil
	})

	return blocks
}

// contiguous reports the byte range of lines when every line starts at the
// beginning of a source line.
func contiguous(src []byte, lines *text.Segments) (Block, bool) {
	if lines.Len() == 0 {
		return Block{}, false
	}

	for i := range lines.Len() {
		seg := lines.At(i)
		if seg.Padding > 0 || (seg.Start > 0 && src[seg.Start-1] != '\n') {
			return Block{}, false
		}
	}

	start := lines.At(0).Start
	end := lines.At(lines.Len() - 1).Stop
	return Block{
		Start: start,
		End:   end,
		Line:  bytes.Count(src[:start], []byte("\n")) + 1,
	}, true
}

// Format rewrites every SuperCollider fence of src with fn. A block that
// formats to nothing is left as is. Formatted code always ends in a newline
// so the closing fence stays on its own line.
func Format(ctx context.Context, src []byte, languages []string, fn FormatFunc) (*Result, error) {
	blocks := Find(src, languages)
	result := &Result{Blocks: len(blocks)}

	var out bytes.Buffer
	out.Grow(len(src))
	last := 0

	for _, block := range blocks {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("format fences: %w", err)
		}

		code := src[block.Start:block.End]
		formatted, err := fn(ctx, block, code)
		if err != nil {
			return nil, fmt.Errorf("fence at line %d: %w", block.Line, err)
		}
		if len(formatted) > 0 && formatted[len(formatted)-1] != '\n' {
			formatted = append(formatted, '\n')
		}

		out.Write(src[last:block.Start])
		if len(formatted) == 0 || bytes.Equal(formatted, code) {
			out.Write(code)
		} else {
			out.Write(formatted)
			result.Changed++
		}
		last = block.End
	}
	out.Write(src[last:])

	result.Output = out.Bytes()
	return result, nil
}
