package format

import (
	"context"

	"github.com/yaklabco/sclangfmt/pkg/cst"
)

// Parser turns SuperCollider source into a concrete syntax tree.
//
// The format package defines this interface in the consumer package;
// parser/sclang provides the implementation.
//
// Implementations must be:
//   - deterministic for a given (path, content) pair,
//   - side-effect free (no I/O, no global state mutation),
//   - error tolerant: unparseable regions become error or missing nodes
//     rather than a failed parse.
type Parser interface {
	// Parse converts raw source bytes into a tree.
	//
	// The returned tree must satisfy:
	//   - tree.Path == path
	//   - bytes.Equal(tree.Content, content)
	//   - tree.Root covers [0, len(content))
	//
	// An error means no tree could be produced at all; formatting stops.
	Parse(ctx context.Context, path string, content []byte) (*cst.Tree, error)
}
