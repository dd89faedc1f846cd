package dom

// MutationKind identifies a recorded change.
type MutationKind uint8

const (
	MutationInsert     MutationKind = iota + 1 // Node inserted into Target before Before
	MutationRemove                             // Node removed from Target; Before was its next sibling
	MutationAttr                               // attribute Name set to Value
	MutationRemoveAttr                         // attribute Name removed
	MutationProp                               // live property Name set to Prop
	MutationText                               // character data set to Value
	MutationHandler                            // handler Name installed (Value "on") or removed
)

// String returns the string representation of the MutationKind.
func (k MutationKind) String() string {
	switch k {
	case MutationInsert:
		return "Insert"
	case MutationRemove:
		return "Remove"
	case MutationAttr:
		return "Attr"
	case MutationRemoveAttr:
		return "RemoveAttr"
	case MutationProp:
		return "Prop"
	case MutationText:
		return "Text"
	case MutationHandler:
		return "Handler"
	default:
		return "Unknown"
	}
}

// MutationRecord describes one change to a connected node.
type MutationRecord struct {
	Kind   MutationKind
	Target *Node
	Node   *Node
	Before *Node
	Name   string
	Value  string
	Prop   any
}

// Observer receives mutation records synchronously, in the order the changes
// happen.
type Observer func(MutationRecord)

// Document is the root of a connected tree.
//
// Only nodes reachable from the document root are connected; changes to them
// are reported to observers. Detached subtrees change silently.
type Document struct {
	root *Node

	observers []observerEntry
	nextObsID int
}

type observerEntry struct {
	id int
	fn Observer
}

// NewDocument creates a document holding <html><head></head><body></body></html>.
func NewDocument() *Document {
	d := &Document{}
	d.root = &Node{typ: DocumentNode, doc: d}
	html := NewElement("html")
	html.AppendChild(NewElement("head"))
	html.AppendChild(NewElement("body"))
	d.root.AppendChild(html)
	return d
}

// Root returns the document node.
func (d *Document) Root() *Node { return d.root }

// DocumentElement returns the <html> element.
func (d *Document) DocumentElement() *Node {
	for c := d.root.firstChild; c != nil; c = c.nextSibling {
		if c.typ == ElementNode {
			return c
		}
	}
	return nil
}

// Head returns the <head> element.
func (d *Document) Head() *Node { return d.child("head") }

// Body returns the <body> element.
func (d *Document) Body() *Node { return d.child("body") }

func (d *Document) child(tag string) *Node {
	html := d.DocumentElement()
	if html == nil {
		return nil
	}
	for c := html.firstChild; c != nil; c = c.nextSibling {
		if c.typ == ElementNode && c.tag == tag {
			return c
		}
	}
	return nil
}

// Observe registers fn for every mutation of a connected node. The returned
// function unregisters it.
func (d *Document) Observe(fn Observer) (cancel func()) {
	d.nextObsID++
	id := d.nextObsID
	d.observers = append(d.observers, observerEntry{id: id, fn: fn})
	return func() {
		for i, o := range d.observers {
			if o.id == id {
				d.observers = append(d.observers[:i:i], d.observers[i+1:]...)
				return
			}
		}
	}
}

func (d *Document) emit(rec MutationRecord) {
	for _, o := range d.observers {
		o.fn(rec)
	}
}

// notify reports rec to the owning document, if n is connected.
func (n *Node) notify(rec MutationRecord) {
	if d := n.OwnerDocument(); d != nil && len(d.observers) > 0 {
		d.emit(rec)
	}
}
