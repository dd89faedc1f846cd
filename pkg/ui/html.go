package ui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/smallie-dev/smallie/internal/errors"
	"github.com/smallie-dev/smallie/pkg/dom"
)

// Marker joins template parts before parsing. Attribute values equal to it
// and its occurrences in text are the template's slots.
const Marker = "\ufeff"

// rawText elements keep their content as unparsed text; markers inside them
// cannot be bound.
var rawText = map[string]bool{
	"script":   true,
	"style":    true,
	"textarea": true,
	"title":    true,
}

// prototype is a parsed template, shared by every Template with the same
// markup and cloned for each execution.
type prototype struct {
	root  *dom.Node
	slots int
}

// prototypes caches parsed markup by the joined string.
var prototypes sync.Map

// Template is compiled markup with value slots.
type Template struct {
	proto  *prototype
	binder *Binder
}

// Compile parses parts with the default binder. Coded errors carry the
// location of the Compile call.
func Compile(parts ...string) (*Template, error) {
	t, err := defaultBinder.Compile(parts...)
	if e, ok := err.(*errors.Error); ok && e.Location == nil {
		return nil, e.WithCaller(1)
	}
	return t, err
}

// Compile joins parts with Marker and parses the result. Every join point
// must land on a whole attribute value or in text; anything else is an
// E001 error.
func (b *Binder) Compile(parts ...string) (*Template, error) {
	if len(parts) == 0 {
		parts = []string{""}
	}
	markup := strings.Join(parts, Marker)

	if p, ok := prototypes.Load(markup); ok {
		return &Template{proto: p.(*prototype), binder: b}, nil
	}

	nodes, err := dom.ParseFragment(markup)
	if err != nil {
		return nil, err
	}
	root := dom.NewFragment(nodes...)
	slots, stray := countSlots(root)
	if stray > 0 || slots != len(parts)-1 {
		return nil, errors.New("E001").
			WithDetail(fmt.Sprintf("%d values were interpolated but %d slots were found in the markup.", len(parts)-1, slots)).
			WithSuggestion("Interpolate whole attribute values (class=${v}) or text, never part of a value, a tag or a comment.")
	}

	p, loaded := prototypes.LoadOrStore(markup, &prototype{root: root, slots: slots})
	if !loaded {
		stats.templates.Add(1)
	}
	return &Template{proto: p.(*prototype), binder: b}, nil
}

// countSlots returns the bindable markers under root and the markers found
// anywhere else.
func countSlots(root *dom.Node) (slots, stray int) {
	root.Walk(func(n *dom.Node) {
		switch n.Type() {
		case dom.ElementNode:
			if strings.Contains(n.Tag(), Marker) {
				stray++
			}
			for _, a := range n.Attrs() {
				switch {
				case strings.Contains(a.Name, Marker):
					stray++
				case a.Value == Marker:
					slots++
				case strings.Contains(a.Value, Marker):
					stray += strings.Count(a.Value, Marker)
				}
			}
		case dom.TextNode:
			c := strings.Count(n.Data(), Marker)
			if p := n.Parent(); p != nil && rawText[p.Tag()] {
				stray += c
				return
			}
			slots += c
		case dom.CommentNode:
			stray += strings.Count(n.Data(), Marker)
		}
	})
	return slots, stray
}

// Slots returns the number of values Execute expects.
func (t *Template) Slots() int {
	return t.proto.slots
}

// Execute clones the template, binds values to its slots in document order
// and returns the detached top-level nodes.
func (t *Template) Execute(values ...any) ([]*dom.Node, error) {
	if len(values) != t.proto.slots {
		return nil, errors.New("E003").
			WithDetail(fmt.Sprintf("The template has %d slots but %d values were given.", t.proto.slots, len(values)))
	}

	root := t.proto.root.Clone(true)
	if len(values) > 0 {
		idx := 0
		for _, n := range root.Descendants() {
			switch n.Type() {
			case dom.ElementNode:
				for _, a := range n.Attrs() {
					if a.Value == Marker {
						t.binder.Render(n, a.Name, values[idx])
						idx++
					}
				}
			case dom.TextNode:
				if p := n.Parent(); p != nil && rawText[p.Tag()] {
					continue
				}
				if !strings.Contains(n.Data(), Marker) {
					continue
				}
				idx = t.bindText(n, values, idx)
			}
		}
	}

	out := root.ChildNodes()
	for _, n := range out {
		n.Remove()
	}
	return out, nil
}

// bindText splits a text node at its markers into text and placeholder
// comments, binds each placeholder and returns the next value index.
func (t *Template) bindText(n *dom.Node, values []any, idx int) int {
	pieces := strings.Split(n.Data(), Marker)
	nodes := make([]*dom.Node, 0, 2*len(pieces)-1)
	holders := make([]*dom.Node, 0, len(pieces)-1)
	for i, piece := range pieces {
		if i > 0 {
			c := dom.NewComment("")
			nodes = append(nodes, c)
			holders = append(holders, c)
		}
		if piece != "" {
			nodes = append(nodes, dom.NewText(piece))
		}
	}
	n.ReplaceWith(nodes...)
	for _, c := range holders {
		t.binder.Render(c, "", values[idx])
		idx++
	}
	return idx
}

// HTML compiles parts and executes the template with values. It panics if
// the markup and values do not line up.
func (b *Binder) HTML(parts []string, values ...any) []*dom.Node {
	t, err := b.Compile(parts...)
	if err != nil {
		panic(err)
	}
	nodes, err := t.Execute(values...)
	if err != nil {
		panic(err)
	}
	return nodes
}

// HTML renders parts and values with the default binder.
func HTML(parts []string, values ...any) []*dom.Node {
	return defaultBinder.HTML(parts, values...)
}

// One renders a template and returns its first element, for list item
// templates.
func (b *Binder) One(parts []string, values ...any) *dom.Node {
	for _, n := range b.HTML(parts, values...) {
		if n.Type() == dom.ElementNode {
			return n
		}
	}
	return nil
}

// One is Binder.One with the default binder.
func One(parts []string, values ...any) *dom.Node {
	return defaultBinder.One(parts, values...)
}
