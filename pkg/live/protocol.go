package live

import (
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/smallie-dev/smallie/internal/errors"
	"github.com/smallie-dev/smallie/pkg/dom"
)

// Frame types sent to the browser.
const (
	FrameInit  = "init"
	FramePatch = "patch"
	FrameError = "error"
)

// Patch operations.
const (
	OpInsert = "insert"
	OpMove   = "move"
	OpRemove = "remove"
	OpAttr   = "attr"
	OpRmAttr = "rmattr"
	OpProp   = "prop"
	OpText   = "text"
	OpOn     = "on"
)

// Frame is one server message. Init frames carry the body subtree; patch
// frames carry the operations of one dispatch and the ids the client may
// forget.
type Frame struct {
	Type    string    `json:"t"`
	Node    *WireNode `json:"node,omitempty"`
	Ops     []Op      `json:"ops,omitempty"`
	Drop    []int     `json:"drop,omitempty"`
	Code    string    `json:"code,omitempty"`
	Message string    `json:"message,omitempty"`
	Detail  string    `json:"detail,omitempty"`
}

// errorFrame reports err to the client. Coded errors keep their code.
func errorFrame(err error) *Frame {
	var e *errors.Error
	if stderrors.As(err, &e) {
		return &Frame{Type: FrameError, Code: e.Code, Message: e.Message, Detail: e.Detail}
	}
	return &Frame{Type: FrameError, Message: err.Error()}
}

// Op is a single patch operation against the client's copy of the tree.
type Op struct {
	Op     string    `json:"op"`
	ID     int       `json:"id,omitempty"`
	Parent int       `json:"parent,omitempty"`
	Before int       `json:"before,omitempty"`
	Node   *WireNode `json:"node,omitempty"`
	Name   string    `json:"name,omitempty"`
	Value  string    `json:"value,omitempty"`
	Prop   any       `json:"prop,omitempty"`
}

// WireNode is a node subtree as the client builds it.
type WireNode struct {
	ID       int            `json:"id"`
	Kind     string         `json:"k"`
	Tag      string         `json:"tag,omitempty"`
	Data     string         `json:"d,omitempty"`
	Attrs    [][2]string    `json:"attrs,omitempty"`
	Props    map[string]any `json:"props,omitempty"`
	On       []string       `json:"on,omitempty"`
	Children []*WireNode    `json:"children,omitempty"`
}

// ClientMessage is sent by the browser when a listened event fires. Value and
// Checked carry form state at the time of the event.
type ClientMessage struct {
	Type      string  `json:"t"`
	ID        int     `json:"id"`
	EventType string  `json:"type"`
	Value     *string `json:"value,omitempty"`
	Checked   *bool   `json:"checked,omitempty"`
}

// DecodeClientMessage parses and validates a browser message.
func DecodeClientMessage(data []byte) (ClientMessage, error) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return msg, errors.New("E061").
			WithDetail("Message is not valid JSON: " + err.Error()).
			Wrap(err)
	}
	if msg.Type != "event" {
		return msg, errors.New("E061").WithDetail(fmt.Sprintf("Unsupported message type %q.", msg.Type))
	}
	if msg.ID <= 0 || msg.EventType == "" {
		return msg, errors.New("E061").WithDetail("Event messages need a node id and an event type.")
	}
	return msg, nil
}

// idMap assigns session-scoped ids to nodes the client knows about.
type idMap struct {
	next  int
	ids   map[*dom.Node]int
	nodes map[int]*dom.Node
}

func newIDMap() *idMap {
	return &idMap{
		ids:   make(map[*dom.Node]int),
		nodes: make(map[int]*dom.Node),
	}
}

func (m *idMap) assign(n *dom.Node) int {
	if id, ok := m.ids[n]; ok {
		return id
	}
	m.next++
	m.ids[n] = m.next
	m.nodes[m.next] = n
	return m.next
}

func (m *idMap) lookup(id int) *dom.Node {
	return m.nodes[id]
}

func (m *idMap) id(n *dom.Node) (int, bool) {
	id, ok := m.ids[n]
	return id, ok
}

// sweep forgets every node that is no longer connected and returns the ids.
func (m *idMap) sweep() []int {
	var dropped []int
	for n, id := range m.ids {
		if !n.IsConnected() {
			delete(m.ids, n)
			delete(m.nodes, id)
			dropped = append(dropped, id)
		}
	}
	return dropped
}

// wire converts a subtree, assigning ids to every node in it.
func (m *idMap) wire(n *dom.Node) *WireNode {
	w := &WireNode{ID: m.assign(n)}
	switch n.Type() {
	case dom.TextNode:
		w.Kind = "text"
		w.Data = n.Data()
		return w
	case dom.CommentNode:
		w.Kind = "comment"
		w.Data = n.Data()
		return w
	}

	w.Kind = "element"
	w.Tag = n.Tag()
	for _, a := range n.Attrs() {
		w.Attrs = append(w.Attrs, [2]string{a.Name, a.Value})
	}
	if props := n.Props(); len(props) > 0 {
		w.Props = props
	}
	w.On = n.HandlerNames()
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		w.Children = append(w.Children, m.wire(c))
	}
	return w
}

// encoder turns mutation records into patch operations. Subtrees are
// serialized when they are inserted, so later records for their nodes apply
// on top of a consistent client copy.
type encoder struct {
	ids *idMap
	ops []Op
}

func (e *encoder) record(rec dom.MutationRecord) {
	switch rec.Kind {
	case dom.MutationInsert:
		parent, ok := e.ids.id(rec.Target)
		if !ok {
			return
		}
		before := 0
		if rec.Before != nil {
			before, _ = e.ids.id(rec.Before)
		}
		if id, known := e.ids.id(rec.Node); known {
			e.ops = append(e.ops, Op{Op: OpMove, ID: id, Parent: parent, Before: before})
			return
		}
		e.ops = append(e.ops, Op{Op: OpInsert, Parent: parent, Before: before, Node: e.ids.wire(rec.Node)})

	case dom.MutationRemove:
		if id, ok := e.ids.id(rec.Node); ok {
			e.ops = append(e.ops, Op{Op: OpRemove, ID: id})
		}

	case dom.MutationAttr:
		e.push(rec.Target, Op{Op: OpAttr, Name: rec.Name, Value: rec.Value})
	case dom.MutationRemoveAttr:
		e.push(rec.Target, Op{Op: OpRmAttr, Name: rec.Name})
	case dom.MutationProp:
		e.push(rec.Target, Op{Op: OpProp, Name: rec.Name, Prop: rec.Prop})
	case dom.MutationText:
		e.push(rec.Target, Op{Op: OpText, Value: rec.Value})
	case dom.MutationHandler:
		e.push(rec.Target, Op{Op: OpOn, Name: rec.Name, Value: rec.Value})
	}
}

func (e *encoder) push(target *dom.Node, op Op) {
	id, ok := e.ids.id(target)
	if !ok {
		return
	}
	op.ID = id
	e.ops = append(e.ops, op)
}

// flush returns the pending operations as a patch frame, or nil when there
// is nothing to send.
func (e *encoder) flush() *Frame {
	drop := e.ids.sweep()
	if len(e.ops) == 0 && len(drop) == 0 {
		return nil
	}
	f := &Frame{Type: FramePatch, Ops: e.ops, Drop: drop}
	e.ops = nil
	return f
}
