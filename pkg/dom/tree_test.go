package dom

import (
	"strings"
	"testing"
)

func childTags(n *Node) string {
	var parts []string
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c.Type() {
		case ElementNode:
			parts = append(parts, c.Tag())
		default:
			parts = append(parts, c.NodeName())
		}
	}
	return strings.Join(parts, ",")
}

func TestAppendChild(t *testing.T) {
	ul := NewElement("UL")
	if ul.Tag() != "ul" || ul.NodeName() != "UL" {
		t.Errorf("Tag/NodeName = %q/%q, want ul/UL", ul.Tag(), ul.NodeName())
	}
	a, b := NewElement("a"), NewElement("b")
	ul.AppendChild(a)
	ul.AppendChild(b)

	if got := childTags(ul); got != "a,b" {
		t.Errorf("children = %q, want a,b", got)
	}
	if a.Parent() != ul || a.NextSibling() != b || b.PrevSibling() != a {
		t.Error("sibling links are wrong")
	}
	if ul.FirstChild() != a || ul.LastChild() != b {
		t.Error("first/last child are wrong")
	}
}

func TestInsertBefore_MovesAttachedNode(t *testing.T) {
	p := NewElement("div")
	a, b, c := NewElement("a"), NewElement("b"), NewElement("c")
	p.Append(a, b, c)

	p.InsertBefore(c, a)
	if got := childTags(p); got != "c,a,b" {
		t.Errorf("children = %q, want c,a,b", got)
	}

	// Inserting a node before itself leaves it in place.
	p.InsertBefore(a, a)
	if got := childTags(p); got != "c,a,b" {
		t.Errorf("children = %q, want c,a,b", got)
	}

	other := NewElement("section")
	other.AppendChild(b)
	if got := childTags(p); got != "c,a" {
		t.Errorf("children = %q, want c,a", got)
	}
	if b.Parent() != other {
		t.Error("b should have moved to the other parent")
	}
}

func TestInsertBefore_Fragment(t *testing.T) {
	p := NewElement("div")
	last := NewElement("z")
	p.AppendChild(last)

	frag := NewFragment(NewElement("a"), NewElement("b"))
	p.InsertBefore(frag, last)

	if got := childTags(p); got != "a,b,z" {
		t.Errorf("children = %q, want a,b,z", got)
	}
	if frag.FirstChild() != nil {
		t.Error("fragment should be empty after insertion")
	}
}

func TestInsertBefore_Panics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
		want error
	}{
		{
			name: "ancestor into descendant",
			fn: func() {
				outer := NewElement("div")
				inner := NewElement("span")
				outer.AppendChild(inner)
				inner.AppendChild(outer)
			},
			want: ErrHierarchy,
		},
		{
			name: "reference not a child",
			fn: func() {
				NewElement("div").InsertBefore(NewElement("a"), NewElement("b"))
			},
			want: ErrNotFound,
		},
		{
			name: "remove non-child",
			fn: func() {
				NewElement("div").RemoveChild(NewElement("a"))
			},
			want: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if r := recover(); r != tt.want {
					t.Errorf("panic = %v, want %v", r, tt.want)
				}
			}()
			tt.fn()
		})
	}
}

func TestBeforeAfterReplaceWith(t *testing.T) {
	setup := func() (*Node, *Node, *Node, *Node) {
		p := NewElement("div")
		a, b, c := NewElement("a"), NewElement("b"), NewElement("c")
		p.Append(a, b, c)
		return p, a, b, c
	}

	t.Run("before", func(t *testing.T) {
		p, _, b, _ := setup()
		b.Before(NewElement("x"), NewElement("y"))
		if got := childTags(p); got != "a,x,y,b,c" {
			t.Errorf("children = %q, want a,x,y,b,c", got)
		}
	})

	t.Run("after", func(t *testing.T) {
		p, _, b, _ := setup()
		b.After(NewElement("x"))
		if got := childTags(p); got != "a,b,x,c" {
			t.Errorf("children = %q, want a,b,x,c", got)
		}
	})

	t.Run("after with sibling in list", func(t *testing.T) {
		p, a, b, c := setup()
		a.After(c, b)
		if got := childTags(p); got != "a,c,b" {
			t.Errorf("children = %q, want a,c,b", got)
		}
	})

	t.Run("replace", func(t *testing.T) {
		p, _, b, _ := setup()
		b.ReplaceWith(NewElement("x"), NewElement("y"))
		if got := childTags(p); got != "a,x,y,c" {
			t.Errorf("children = %q, want a,x,y,c", got)
		}
		if b.Parent() != nil {
			t.Error("replaced node should be detached")
		}
	})

	t.Run("replace with next sibling", func(t *testing.T) {
		p, _, b, c := setup()
		b.ReplaceWith(c)
		if got := childTags(p); got != "a,c" {
			t.Errorf("children = %q, want a,c", got)
		}
	})

	t.Run("replace with itself", func(t *testing.T) {
		p, _, b, _ := setup()
		b.ReplaceWith(b)
		if got := childTags(p); got != "a,b,c" {
			t.Errorf("children = %q, want a,b,c", got)
		}
	})

	t.Run("detached is a no-op", func(t *testing.T) {
		n := NewElement("a")
		n.Before(NewElement("x"))
		n.After(NewElement("y"))
		n.ReplaceWith(NewElement("z"))
		if n.Parent() != nil || n.NextSibling() != nil {
			t.Error("detached node should stay alone")
		}
	})
}

func TestRemove(t *testing.T) {
	p := NewElement("div")
	a, b := NewElement("a"), NewElement("b")
	p.Append(a, b)

	a.Remove()
	if got := childTags(p); got != "b" {
		t.Errorf("children = %q, want b", got)
	}
	if a.Parent() != nil || a.NextSibling() != nil {
		t.Error("removed node should have no links")
	}
	a.Remove() // no-op
}

func TestIsConnected(t *testing.T) {
	doc := NewDocument()
	div := NewElement("div")
	span := NewElement("span")
	div.AppendChild(span)

	if span.IsConnected() {
		t.Error("detached subtree should not be connected")
	}
	doc.Body().AppendChild(div)
	if !span.IsConnected() || span.OwnerDocument() != doc {
		t.Error("subtree under body should be connected")
	}
	div.Remove()
	if span.IsConnected() {
		t.Error("removed subtree should not be connected")
	}
}

func TestTextContent(t *testing.T) {
	p := NewElement("p")
	p.Append(NewText("a"), NewComment("skip"), NewElement("b"))
	p.LastChild().AppendChild(NewText("c"))

	if got := p.TextContent(); got != "ac" {
		t.Errorf("TextContent = %q, want ac", got)
	}

	p.SetTextContent("new")
	if p.FirstChild() == nil || p.FirstChild() != p.LastChild() || p.FirstChild().Data() != "new" {
		t.Errorf("SetTextContent left %q", childTags(p))
	}
}

func TestClone(t *testing.T) {
	li := NewElement("li")
	li.SetAttr("class", "item")
	li.SetProp("value", "typed")
	li.SetHandler("onclick", func(*Event) {})
	li.Mark("slot")
	li.AppendChild(NewText("x"))

	shallow := li.Clone(false)
	if shallow.FirstChild() != nil {
		t.Error("shallow clone should have no children")
	}

	deep := li.Clone(true)
	if got, _ := deep.Attr("class"); got != "item" {
		t.Errorf("class = %q, want item", got)
	}
	if deep.TextContent() != "x" {
		t.Errorf("TextContent = %q, want x", deep.TextContent())
	}
	if len(deep.Props()) != 0 || deep.Handler("onclick") != nil || deep.HasMark("slot") {
		t.Error("clone should not copy properties, handlers or marks")
	}

	deep.SetAttr("class", "other")
	if got, _ := li.Attr("class"); got != "item" {
		t.Error("clone should not share attributes")
	}
}

func TestMarks(t *testing.T) {
	type key struct{ id int }
	k1, k2 := &key{1}, &key{2}
	n := NewText("x")

	n.Mark(k1)
	if !n.HasMark(k1) || n.HasMark(k2) {
		t.Error("mark lookup is wrong")
	}
	n.Unmark(k1)
	if n.HasMark(k1) {
		t.Error("mark should be gone")
	}
}
