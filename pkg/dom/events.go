package dom

import (
	"sort"
	"strings"
)

// Event is a DOM event delivered to handlers.
type Event struct {
	// Type is the event name without the "on" prefix, e.g. "click".
	Type string

	// Target is the node the event was dispatched on.
	Target *Node

	// CurrentTarget is the node whose handler is running.
	CurrentTarget *Node

	// Value and Checked carry form-control state reported with input events.
	Value   string
	Checked bool

	stopped bool
}

// StopPropagation keeps the event from bubbling to ancestors.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// Handler handles a DOM event.
type Handler func(*Event)

// SetHandler installs an event handler property such as "onclick".
// A nil handler removes it.
func (n *Node) SetHandler(name string, h Handler) {
	if n.typ != ElementNode {
		return
	}
	name = strings.ToLower(name)
	if h == nil {
		if _, ok := n.handlers[name]; !ok {
			return
		}
		delete(n.handlers, name)
		n.notify(MutationRecord{Kind: MutationHandler, Target: n, Name: name})
		return
	}
	if n.handlers == nil {
		n.handlers = make(map[string]Handler)
	}
	_, existed := n.handlers[name]
	n.handlers[name] = h
	if !existed {
		n.notify(MutationRecord{Kind: MutationHandler, Target: n, Name: name, Value: "on"})
	}
}

// Handler returns the installed handler for name, or nil.
func (n *Node) Handler(name string) Handler {
	return n.handlers[strings.ToLower(name)]
}

// HandlerNames returns the installed handler names, sorted.
func (n *Node) HandlerNames() []string {
	names := make([]string, 0, len(n.handlers))
	for name := range n.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch delivers ev to n and then bubbles it up the ancestors until a
// handler stops it. It reports whether any handler ran.
func (n *Node) Dispatch(ev *Event) bool {
	if ev.Target == nil {
		ev.Target = n
	}
	name := "on" + strings.ToLower(ev.Type)
	handled := false
	for cur := n; cur != nil && !ev.stopped; cur = cur.parent {
		h := cur.handlers[name]
		if h == nil {
			continue
		}
		ev.CurrentTarget = cur
		h(ev)
		handled = true
	}
	return handled
}
