package dom

import "strings"

// NodeType is the node kind discriminator.
type NodeType uint8

const (
	DocumentNode NodeType = iota + 1 // tree root owned by a Document
	FragmentNode                     // parentless container, inserts its children
	ElementNode                      // <div>, <li>, ...
	TextNode                         // character data
	CommentNode                      // <!-- ... -->, used as slot placeholders
)

// String returns the string representation of the NodeType.
func (t NodeType) String() string {
	switch t {
	case DocumentNode:
		return "Document"
	case FragmentNode:
		return "Fragment"
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	case CommentNode:
		return "Comment"
	default:
		return "Unknown"
	}
}

// Attr is a single serialized attribute.
type Attr struct {
	Name  string
	Value string
}

// Node is a mutable DOM node.
//
// Nodes are not safe for concurrent use. A tree and every signal bound into it
// belong to one goroutine.
type Node struct {
	typ  NodeType
	tag  string
	data string

	attrs    []Attr
	props    map[string]any
	handlers map[string]Handler
	marks    map[any]struct{}

	parent      *Node
	firstChild  *Node
	lastChild   *Node
	prevSibling *Node
	nextSibling *Node

	// doc is set on DocumentNode roots only.
	doc *Document
}

// NewElement creates a detached element. Tag names are case-insensitive and
// stored lower-cased.
func NewElement(tag string) *Node {
	return &Node{typ: ElementNode, tag: strings.ToLower(tag)}
}

// NewText creates a detached text node.
func NewText(data string) *Node {
	return &Node{typ: TextNode, data: data}
}

// NewComment creates a detached comment node.
func NewComment(data string) *Node {
	return &Node{typ: CommentNode, data: data}
}

// NewFragment creates an empty fragment holding the given children.
func NewFragment(children ...*Node) *Node {
	f := &Node{typ: FragmentNode}
	for _, c := range children {
		f.AppendChild(c)
	}
	return f
}

// Type returns the node kind.
func (n *Node) Type() NodeType { return n.typ }

// Tag returns the lower-cased tag name of an element, or "".
func (n *Node) Tag() string { return n.tag }

// NodeName returns the DOM nodeName: the upper-cased tag for elements and a
// "#"-prefixed name for everything else.
func (n *Node) NodeName() string {
	switch n.typ {
	case ElementNode:
		return strings.ToUpper(n.tag)
	case TextNode:
		return "#text"
	case CommentNode:
		return "#comment"
	case DocumentNode:
		return "#document"
	case FragmentNode:
		return "#document-fragment"
	default:
		return ""
	}
}

// Data returns the character data of a text or comment node.
func (n *Node) Data() string { return n.data }

// SetData replaces the character data of a text or comment node.
func (n *Node) SetData(data string) {
	if n.typ != TextNode && n.typ != CommentNode {
		return
	}
	if n.data == data {
		return
	}
	n.data = data
	n.notify(MutationRecord{Kind: MutationText, Target: n, Value: data})
}

// Parent returns the parent node, or nil.
func (n *Node) Parent() *Node { return n.parent }

// FirstChild returns the first child, or nil.
func (n *Node) FirstChild() *Node { return n.firstChild }

// LastChild returns the last child, or nil.
func (n *Node) LastChild() *Node { return n.lastChild }

// NextSibling returns the following sibling, or nil.
func (n *Node) NextSibling() *Node { return n.nextSibling }

// PrevSibling returns the preceding sibling, or nil.
func (n *Node) PrevSibling() *Node { return n.prevSibling }

// ChildNodes returns a snapshot of the children.
func (n *Node) ChildNodes() []*Node {
	var out []*Node
	for c := n.firstChild; c != nil; c = c.nextSibling {
		out = append(out, c)
	}
	return out
}

// Contains reports whether other is n or one of its descendants.
func (n *Node) Contains(other *Node) bool {
	for p := other; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

// root returns the top-most ancestor.
func (n *Node) root() *Node {
	r := n
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// OwnerDocument returns the document this node is attached to, or nil.
func (n *Node) OwnerDocument() *Document {
	r := n.root()
	if r.typ == DocumentNode {
		return r.doc
	}
	return nil
}

// IsConnected reports whether the node is attached to a document.
func (n *Node) IsConnected() bool {
	return n.OwnerDocument() != nil
}

// TextContent returns the concatenated text of the node and its descendants.
func (n *Node) TextContent() string {
	switch n.typ {
	case TextNode, CommentNode:
		return n.data
	}
	var b strings.Builder
	n.Walk(func(d *Node) {
		if d.typ == TextNode {
			b.WriteString(d.data)
		}
	})
	return b.String()
}

// SetTextContent replaces all children with a single text node.
func (n *Node) SetTextContent(s string) {
	switch n.typ {
	case TextNode, CommentNode:
		n.SetData(s)
		return
	}
	for c := n.firstChild; c != nil; c = n.firstChild {
		n.RemoveChild(c)
	}
	if s != "" {
		n.AppendChild(NewText(s))
	}
}

// Walk calls fn for n and every descendant in document order.
// The tree must not be restructured from inside fn; take a Descendants
// snapshot for that.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for c := n.firstChild; c != nil; c = c.nextSibling {
		c.Walk(fn)
	}
}

// Descendants returns n and all descendants in document order.
func (n *Node) Descendants() []*Node {
	var out []*Node
	n.Walk(func(d *Node) { out = append(out, d) })
	return out
}

// Clone copies the node. Attributes are copied; live properties, handlers and
// marks are not. With deep set, children are cloned recursively.
func (n *Node) Clone(deep bool) *Node {
	c := &Node{typ: n.typ, tag: n.tag, data: n.data}
	if n.typ == DocumentNode {
		c.typ = FragmentNode
	}
	if len(n.attrs) > 0 {
		c.attrs = make([]Attr, len(n.attrs))
		copy(c.attrs, n.attrs)
	}
	if deep {
		for ch := n.firstChild; ch != nil; ch = ch.nextSibling {
			c.AppendChild(ch.Clone(true))
		}
	}
	return c
}

// Mark tags the node with an identity key. The template binder uses marks to
// recognise the nodes a child slot owns.
func (n *Node) Mark(key any) {
	if n.marks == nil {
		n.marks = make(map[any]struct{})
	}
	n.marks[key] = struct{}{}
}

// Unmark removes a mark.
func (n *Node) Unmark(key any) {
	delete(n.marks, key)
}

// HasMark reports whether the node carries the mark.
func (n *Node) HasMark(key any) bool {
	_, ok := n.marks[key]
	return ok
}
