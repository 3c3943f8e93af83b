// Package cst provides the concrete syntax tree for SuperCollider source.
// It defines a lossless view of one version of a file:
//   - Tree: the source bytes, line table and root node
//   - Node: a byte-addressed syntax node with error and missing flags
//   - walking, searching and the tree-based string/comment classifier
package cst

// Kind classifies the type of a syntax node.
type Kind uint16

// Node kinds.
const (
	KindSource Kind = iota

	// Trivia and literals.
	KindLineComment
	KindBlockComment
	KindString
	KindSymbol
	KindChar
	KindNumber
	KindLiteralSymbol
	KindKeyword

	// Names.
	KindIdentifier
	KindClassName
	KindEnvVar
	KindSelector

	// Functions and declarations.
	KindFunctionBlock
	KindParameterList
	KindParameter
	KindVarDecl

	// Calls.
	KindCall
	KindMethodCall
	KindCallArgs
	KindArgument
	KindIndex

	// Compound literals and expressions.
	KindCollection
	KindEvent
	KindAssociation
	KindParen
	KindBinary
	KindUnary
	KindAssignment

	// Recovery.
	KindError
)

var kindNames = [...]string{
	KindSource:        "source",
	KindLineComment:   "line_comment",
	KindBlockComment:  "block_comment",
	KindString:        "string",
	KindSymbol:        "symbol",
	KindChar:          "char",
	KindNumber:        "number",
	KindLiteralSymbol: "literal_symbol",
	KindKeyword:       "keyword",
	KindIdentifier:    "identifier",
	KindClassName:     "class_name",
	KindEnvVar:        "env_var",
	KindSelector:      "selector",
	KindFunctionBlock: "function_block",
	KindParameterList: "parameter_list",
	KindParameter:     "parameter",
	KindVarDecl:       "var_decl",
	KindCall:          "call",
	KindMethodCall:    "method_call",
	KindCallArgs:      "call_args",
	KindArgument:      "argument",
	KindIndex:         "index",
	KindCollection:    "collection",
	KindEvent:         "event",
	KindAssociation:   "association",
	KindParen:         "paren",
	KindBinary:        "binary",
	KindUnary:         "unary",
	KindAssignment:    "assignment",
	KindError:         "error",
}

// String returns the snake_case name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// IsComment returns true for line and block comments.
func (k Kind) IsComment() bool {
	return k == KindLineComment || k == KindBlockComment
}

// IsQuoted returns true for kinds whose bytes are opaque literal text.
func (k Kind) IsQuoted() bool {
	return k == KindString || k == KindSymbol || k == KindChar
}

// IsOpaque returns true if no byte of the node is code.
func (k Kind) IsOpaque() bool {
	return k.IsComment() || k.IsQuoted()
}
