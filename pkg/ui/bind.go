package ui

import (
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"sync/atomic"

	"github.com/smallie-dev/smallie/pkg/dom"
	"github.com/smallie-dev/smallie/pkg/reactive"
)

// AttachmentObserver reports whether a bound node is still part of the
// rendered document. A reactive binding whose node is no longer attached
// disposes itself on its next run.
type AttachmentObserver interface {
	IsAttached(n *dom.Node) bool
}

// AttachmentFunc adapts a function to AttachmentObserver.
type AttachmentFunc func(n *dom.Node) bool

// IsAttached calls f(n).
func (f AttachmentFunc) IsAttached(n *dom.Node) bool { return f(n) }

// Connected is the default observer: a node is attached while it is
// connected to a dom.Document.
var Connected AttachmentObserver = AttachmentFunc((*dom.Node).IsConnected)

// Binder binds values into DOM nodes.
type Binder struct {
	observer AttachmentObserver
	logger   *slog.Logger
}

// BinderOption configures a Binder.
type BinderOption func(*Binder)

// WithAttachmentObserver sets the observer consulted before each reactive
// re-run.
func WithAttachmentObserver(o AttachmentObserver) BinderOption {
	return func(b *Binder) {
		b.observer = o
	}
}

// WithLogger sets the binder's logger.
func WithLogger(l *slog.Logger) BinderOption {
	return func(b *Binder) {
		b.logger = l
	}
}

// NewBinder creates a Binder. Without options it uses Connected and the
// default logger.
func NewBinder(opts ...BinderOption) *Binder {
	b := &Binder{}
	for _, opt := range opts {
		opt(b)
	}
	if b.observer == nil {
		b.observer = Connected
	}
	if b.logger == nil {
		b.logger = slog.Default().With("component", "ui")
	}
	return b
}

var defaultBinder = NewBinder()

// Default returns the binder used by the package-level functions.
func Default() *Binder {
	return defaultBinder
}

// Render binds value to node using the default binder.
func Render(node *dom.Node, attr string, value any) {
	defaultBinder.Render(node, attr, value)
}

// Render binds value to node.
//
// With attr set, the value drives that attribute of an element; other node
// types are ignored. Names starting with "on" and given a func(), a
// func(*dom.Event) or a dom.Handler install an event handler; any other
// value, including functions of other shapes such as func() string, is bound
// like a regular attribute. "value" and "checked" set live properties. false
// and nil remove the attribute, any other value (the empty string included)
// is written as text.
//
// With attr empty, node is a placeholder and the value drives the nodes that
// follow it: nodes are inserted as they are, lists are flattened, nil renders
// nothing and everything else becomes a text node. Each run replaces the
// nodes the previous run inserted.
//
// Reactive values are applied inside an effect and follow their signals.
func (b *Binder) Render(node *dom.Node, attr string, value any) {
	if attr != "" {
		b.bindAttr(node, attr, value)
		return
	}
	b.bindChildren(node, value)
}

// run applies v once, or inside an effect when v is reactive. The effect
// disposes itself on a run where node is no longer attached; the first run
// always applies.
func (b *Binder) run(node *dom.Node, v Value, apply func(Value)) {
	r, ok := v.(Reactive)
	if !ok {
		apply(v)
		return
	}
	stats.bindings.Add(1)
	var eff *reactive.Effect
	eff = reactive.CreateEffect(func() {
		if eff != nil && !b.observer.IsAttached(node) {
			eff.Dispose()
			stats.detached.Add(1)
			b.logger.Debug("binding detached", "node", node.NodeName())
			return
		}
		apply(resolve(r))
	})
}

func (b *Binder) bindAttr(node *dom.Node, attr string, value any) {
	if node.Type() != dom.ElementNode {
		return
	}
	name := strings.ToLower(attr)
	node.RemoveAttr(name)

	if strings.HasPrefix(name, "on") {
		if h, ok := handlerOf(value); ok {
			node.SetHandler(name, h)
			return
		}
		if value != nil && reflect.TypeOf(value).Kind() == reflect.Func {
			b.logger.Debug("function is not an event handler, binding it as an attribute",
				"attr", name, "type", fmt.Sprintf("%T", value))
		}
	}

	b.run(node, ValueOf(value), func(v Value) {
		switch name {
		case "value":
			node.SetProp(name, textOf(v))
			return
		case "checked":
			node.SetProp(name, truthy(v))
			return
		}
		if _, empty := v.(Empty); empty || isFalse(v) {
			node.RemoveAttr(name)
			return
		}
		node.SetAttr(name, textOf(v))
	})
}

// slotKey marks the nodes one child slot has inserted.
type slotKey struct {
	id uint64
}

var slotIDs atomic.Uint64

func (b *Binder) bindChildren(node *dom.Node, value any) {
	key := &slotKey{id: slotIDs.Add(1)}

	b.run(node, ValueOf(value), func(v Value) {
		updates := normalize(v, nil)
		for _, u := range updates {
			u.Mark(key)
		}

		var last *dom.Node
		cur := node
		for next := cur.NextSibling(); next != nil; next = cur.NextSibling() {
			if !next.HasMark(key) {
				cur = next
				continue
			}
			if len(updates) == 0 {
				next.Unmark(key)
				next.Remove()
				continue
			}
			u := updates[0]
			updates = updates[1:]
			if u != next {
				next.ReplaceWith(u)
			}
			last, cur = u, u
		}

		if len(updates) > 0 {
			anchor := node
			if last != nil {
				anchor = last
			}
			anchor.After(updates...)
		}
	})
}

// normalize flattens v into the nodes a child slot inserts.
func normalize(v Value, out []*dom.Node) []*dom.Node {
	switch v := resolve(v).(type) {
	case NodeValue:
		if v.Node.Type() == dom.FragmentNode {
			return append(out, v.Node.ChildNodes()...)
		}
		return append(out, v.Node)
	case List:
		for _, e := range v {
			out = normalize(e, out)
		}
		return out
	case Static:
		return append(out, dom.NewText(stringify(v.V)))
	case Empty:
		return out
	}
	return out
}
