package cst

// NewNode creates a new node of the specified kind covering [start, end).
// The node has no parent or children.
func NewNode(kind Kind, start, end int) *Node {
	return &Node{
		Kind:  kind,
		Start: start,
		End:   end,
	}
}

// NewMissing creates a zero-width placeholder at off.
func NewMissing(kind Kind, off int) *Node {
	n := NewNode(kind, off, off)
	n.Flags |= FlagMissing
	return n
}

// AppendChild appends a child node to a parent.
// It maintains the parent/child/sibling relationships correctly.
func AppendChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}

	if child.Parent != nil {
		RemoveChild(child.Parent, child)
	}

	child.Parent = parent
	child.Prev = parent.LastChild
	child.Next = nil

	if parent.LastChild != nil {
		parent.LastChild.Next = child
	} else {
		parent.FirstChild = child
	}

	parent.LastChild = child
}

// InsertBefore inserts newNode before sibling.
// sibling must have a parent.
func InsertBefore(sibling, newNode *Node) {
	if sibling == nil || newNode == nil || sibling.Parent == nil {
		return
	}

	parent := sibling.Parent

	if newNode.Parent != nil {
		RemoveChild(newNode.Parent, newNode)
	}

	newNode.Parent = parent
	newNode.Prev = sibling.Prev
	newNode.Next = sibling

	if sibling.Prev != nil {
		sibling.Prev.Next = newNode
	} else {
		parent.FirstChild = newNode
	}

	sibling.Prev = newNode
}

// RemoveChild removes a child from its parent.
func RemoveChild(parent, child *Node) {
	if parent == nil || child == nil || child.Parent != parent {
		return
	}

	if child.Prev != nil {
		child.Prev.Next = child.Next
	} else {
		parent.FirstChild = child.Next
	}

	if child.Next != nil {
		child.Next.Prev = child.Prev
	} else {
		parent.LastChild = child.Prev
	}

	child.Parent = nil
	child.Prev = nil
	child.Next = nil
}

// InsertOrdered places child among parent's children by start offset.
// Children with equal starts keep insertion order.
func InsertOrdered(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}
	for sib := parent.FirstChild; sib != nil; sib = sib.Next {
		if sib.Start > child.Start {
			InsertBefore(sib, child)
			return
		}
	}
	AppendChild(parent, child)
}

// Attach inserts leaf into the deepest node under root whose range covers it,
// keeping siblings ordered by offset. Used to hang comments on the tree after
// parsing.
func Attach(root, leaf *Node) {
	if root == nil || leaf == nil {
		return
	}

	parent := root
	for {
		var next *Node
		for child := parent.FirstChild; child != nil; child = child.Next {
			if child.Len() > 0 && child.Covers(leaf.Start, leaf.End) && !child.Kind.IsOpaque() {
				next = child
				break
			}
		}
		if next == nil {
			break
		}
		parent = next
	}

	InsertOrdered(parent, leaf)
}
