package cst

// Flags mark recovery state on a node.
type Flags uint8

const (
	// FlagError marks a node the parser could not make sense of.
	FlagError Flags = 1 << iota

	// FlagMissing marks a zero-width node standing in for a token the
	// parser expected but did not find (usually a closing delimiter).
	FlagMissing
)

// Node represents a single node in the syntax tree.
// Nodes form a tree structure with parent/child/sibling relationships.
type Node struct {
	// Kind identifies what type of node this is.
	Kind Kind

	// Byte range [Start, End) in Tree.Content.
	Start int
	End   int

	// Flags holds the error and missing markers.
	Flags Flags

	// Tree structure pointers.
	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node
}

// IsError returns true if the parser flagged this node as unparseable.
func (n *Node) IsError() bool {
	return n.Kind == KindError || n.Flags&FlagError != 0
}

// IsMissing returns true if this node stands in for an absent token.
func (n *Node) IsMissing() bool {
	return n.Flags&FlagMissing != 0
}

// Len returns the length of the node in bytes.
func (n *Node) Len() int {
	return n.End - n.Start
}

// Covers returns true if [start, end) lies within the node.
func (n *Node) Covers(start, end int) bool {
	return n.Start <= start && end <= n.End
}

// Intersects returns true if [start, end) overlaps the node. A zero-width
// range intersects when it falls strictly inside the node.
func (n *Node) Intersects(start, end int) bool {
	if start == end {
		return n.Start < start && start < n.End
	}
	return start < n.End && n.Start < end
}

// Text returns the bytes of the node within src.
func (n *Node) Text(src []byte) []byte {
	if n.Start < 0 || n.End > len(src) || n.Start > n.End {
		return nil
	}
	return src[n.Start:n.End]
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return n.FirstChild != nil
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	count := 0
	for child := n.FirstChild; child != nil; child = child.Next {
		count++
	}
	return count
}

// Children returns a slice of all direct children.
func (n *Node) Children() []*Node {
	var children []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		children = append(children, child)
	}
	return children
}

// ChildrenOfKind returns the direct children of the given kind.
func (n *Node) ChildrenOfKind(kind Kind) []*Node {
	var children []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		if child.Kind == kind {
			children = append(children, child)
		}
	}
	return children
}

// FirstChildOfKind returns the first direct child of the given kind, or nil.
func (n *Node) FirstChildOfKind(kind Kind) *Node {
	for child := n.FirstChild; child != nil; child = child.Next {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

// Significant returns the direct children that are not comments.
func (n *Node) Significant() []*Node {
	var children []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		if !child.Kind.IsComment() {
			children = append(children, child)
		}
	}
	return children
}

// ContainsComment returns true if any descendant is a comment.
func (n *Node) ContainsComment() bool {
	return FindFirst(n, func(d *Node) bool { return d.Kind.IsComment() }) != nil
}

// ContainsError returns true if the subtree holds an error or missing node.
func (n *Node) ContainsError() bool {
	return FindFirst(n, func(d *Node) bool { return d.IsError() || d.IsMissing() }) != nil
}
