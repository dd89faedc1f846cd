package dom

import "strings"

// Attr returns the value of the named attribute and whether it is present.
func (n *Node) Attr(name string) (string, bool) {
	name = strings.ToLower(name)
	for _, a := range n.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Attrs returns a copy of the attributes in source order.
func (n *Node) Attrs() []Attr {
	out := make([]Attr, len(n.attrs))
	copy(out, n.attrs)
	return out
}

// HasAttributes reports whether the element has any attribute.
func (n *Node) HasAttributes() bool {
	return len(n.attrs) > 0
}

// SetAttr sets an attribute on an element. Non-elements ignore the call.
func (n *Node) SetAttr(name, value string) {
	if n.typ != ElementNode {
		return
	}
	name = strings.ToLower(name)
	for i, a := range n.attrs {
		if a.Name == name {
			if a.Value == value {
				return
			}
			n.attrs[i].Value = value
			n.notify(MutationRecord{Kind: MutationAttr, Target: n, Name: name, Value: value})
			return
		}
	}
	n.attrs = append(n.attrs, Attr{Name: name, Value: value})
	n.notify(MutationRecord{Kind: MutationAttr, Target: n, Name: name, Value: value})
}

// RemoveAttr removes an attribute if present.
func (n *Node) RemoveAttr(name string) {
	name = strings.ToLower(name)
	for i, a := range n.attrs {
		if a.Name == name {
			n.attrs = append(n.attrs[:i], n.attrs[i+1:]...)
			n.notify(MutationRecord{Kind: MutationRemoveAttr, Target: n, Name: name})
			return
		}
	}
}

// Prop returns a live property. Unset "value" and "checked" properties fall
// back to the corresponding attribute, as form controls do before they are
// edited.
func (n *Node) Prop(name string) any {
	if v, ok := n.props[name]; ok {
		return v
	}
	switch name {
	case "value":
		v, _ := n.Attr("value")
		return v
	case "checked":
		_, ok := n.Attr("checked")
		return ok
	}
	return nil
}

// SetProp sets a live property without touching attributes.
func (n *Node) SetProp(name string, value any) {
	if n.typ != ElementNode {
		return
	}
	if old, ok := n.props[name]; ok && sameProp(old, value) {
		return
	}
	n.SyncProp(name, value)
	n.notify(MutationRecord{Kind: MutationProp, Target: n, Name: name, Prop: value})
}

// SyncProp sets a live property without producing a mutation record. It is
// used to mirror state that already changed on the far side, like an input
// value typed by the user.
func (n *Node) SyncProp(name string, value any) {
	if n.props == nil {
		n.props = make(map[string]any)
	}
	n.props[name] = value
}

// Props returns a copy of the live properties that have been set.
func (n *Node) Props() map[string]any {
	out := make(map[string]any, len(n.props))
	for k, v := range n.props {
		out[k] = v
	}
	return out
}

// sameProp compares the scalar property values form controls use.
func sameProp(a, b any) bool {
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case nil:
		return b == nil
	}
	return false
}
