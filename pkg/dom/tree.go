package dom

import "errors"

// ErrHierarchy is the panic value for insertions that would make a node its
// own ancestor or give a document root a parent.
var ErrHierarchy = errors.New("dom: hierarchy request error")

// ErrNotFound is the panic value for RemoveChild and InsertBefore calls whose
// node argument is not a child of the receiver.
var ErrNotFound = errors.New("dom: node is not a child of this node")

// AppendChild inserts child as the last child of n. Fragments insert their
// children; an attached child is moved.
func (n *Node) AppendChild(child *Node) *Node {
	return n.InsertBefore(child, nil)
}

// InsertBefore inserts child immediately before ref, or last when ref is nil.
func (n *Node) InsertBefore(child, ref *Node) *Node {
	if ref != nil && ref.parent != n {
		panic(ErrNotFound)
	}
	if child.typ == FragmentNode {
		for _, c := range child.ChildNodes() {
			n.InsertBefore(c, ref)
		}
		return child
	}
	if child.typ == DocumentNode || child.Contains(n) {
		panic(ErrHierarchy)
	}
	if ref == child {
		ref = child.nextSibling
	}
	if child.parent != nil {
		child.parent.unlink(child)
	}
	n.link(child, ref)
	n.notify(MutationRecord{Kind: MutationInsert, Target: n, Node: child, Before: ref})
	return child
}

// RemoveChild detaches child from n.
func (n *Node) RemoveChild(child *Node) *Node {
	if child.parent != n {
		panic(ErrNotFound)
	}
	n.unlink(child)
	return child
}

// Remove detaches n from its parent. Removing a parentless node is a no-op.
func (n *Node) Remove() {
	if n.parent != nil {
		n.parent.unlink(n)
	}
}

// Append inserts nodes, in order, as the last children of n.
func (n *Node) Append(nodes ...*Node) {
	for _, c := range flatten(nodes) {
		n.InsertBefore(c, nil)
	}
}

// Before inserts nodes, in order, just before n. It is a no-op when n has no
// parent. n may appear in nodes.
func (n *Node) Before(nodes ...*Node) {
	parent := n.parent
	if parent == nil {
		return
	}
	list := flatten(nodes)
	prev := n.prevSibling
	for prev != nil && containsNode(list, prev) {
		prev = prev.prevSibling
	}
	for _, c := range list {
		c.Remove()
	}
	ref := parent.firstChild
	if prev != nil {
		ref = prev.nextSibling
	}
	for _, c := range list {
		parent.InsertBefore(c, ref)
	}
}

// After inserts nodes, in order, just after n. It is a no-op when n has no
// parent. n may appear in nodes.
func (n *Node) After(nodes ...*Node) {
	parent := n.parent
	if parent == nil {
		return
	}
	list := flatten(nodes)
	next := n.nextSibling
	for next != nil && containsNode(list, next) {
		next = next.nextSibling
	}
	for _, c := range list {
		c.Remove()
	}
	for _, c := range list {
		parent.InsertBefore(c, next)
	}
}

// ReplaceWith puts nodes where n is and detaches n. It is a no-op when n has
// no parent. n may appear in nodes.
func (n *Node) ReplaceWith(nodes ...*Node) {
	parent := n.parent
	if parent == nil {
		return
	}
	list := flatten(nodes)
	next := n.nextSibling
	for next != nil && containsNode(list, next) {
		next = next.nextSibling
	}
	n.Remove()
	for _, c := range list {
		c.Remove()
	}
	for _, c := range list {
		parent.InsertBefore(c, next)
	}
}

// link splices child into n's child list before ref.
func (n *Node) link(child, ref *Node) {
	child.parent = n
	if ref == nil {
		child.prevSibling = n.lastChild
		child.nextSibling = nil
		if n.lastChild != nil {
			n.lastChild.nextSibling = child
		} else {
			n.firstChild = child
		}
		n.lastChild = child
		return
	}
	child.nextSibling = ref
	child.prevSibling = ref.prevSibling
	if ref.prevSibling != nil {
		ref.prevSibling.nextSibling = child
	} else {
		n.firstChild = child
	}
	ref.prevSibling = child
}

// unlink removes child from n's child list and records the removal.
func (n *Node) unlink(child *Node) {
	next := child.nextSibling
	if child.prevSibling != nil {
		child.prevSibling.nextSibling = child.nextSibling
	} else {
		n.firstChild = child.nextSibling
	}
	if child.nextSibling != nil {
		child.nextSibling.prevSibling = child.prevSibling
	} else {
		n.lastChild = child.prevSibling
	}
	child.parent = nil
	child.prevSibling = nil
	child.nextSibling = nil
	n.notify(MutationRecord{Kind: MutationRemove, Target: n, Node: child, Before: next})
}

// flatten expands fragments into their children.
func flatten(nodes []*Node) []*Node {
	out := make([]*Node, 0, len(nodes))
	for _, c := range nodes {
		if c == nil {
			continue
		}
		if c.typ == FragmentNode {
			out = append(out, c.ChildNodes()...)
			continue
		}
		out = append(out, c)
	}
	return out
}

func containsNode(list []*Node, n *Node) bool {
	for _, c := range list {
		if c == n {
			return true
		}
	}
	return false
}
