package ui

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/smallie-dev/smallie/pkg/dom"
	"github.com/smallie-dev/smallie/pkg/reactive"
)

// slot returns a placeholder followed by an unrelated sibling, attached to a
// document.
func slot(t *testing.T) (parent, placeholder, tail *dom.Node) {
	t.Helper()
	parent = dom.NewElement("div")
	placeholder = dom.NewComment("")
	tail = dom.NewElement("footer")
	parent.Append(placeholder, tail)
	mount(t, parent)
	return parent, placeholder, tail
}

func tags(n *dom.Node) string {
	var out string
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if out != "" {
			out += ","
		}
		switch c.Type() {
		case dom.ElementNode:
			out += c.Tag()
		case dom.TextNode:
			out += "'" + c.Data() + "'"
		default:
			out += "#"
		}
	}
	return out
}

func TestRender_ChildReplacement(t *testing.T) {
	parent, placeholder, _ := slot(t)
	a, b, c, d := dom.NewElement("a"), dom.NewElement("b"), dom.NewElement("c"), dom.NewElement("d")
	nodes := reactive.NewSignal([]*dom.Node{a, b})

	Render(placeholder, "", nodes)
	if got := tags(parent); got != "#,a,b,footer" {
		t.Fatalf("children = %q, want #,a,b,footer", got)
	}

	steps := []struct {
		set  []*dom.Node
		want string
	}{
		{[]*dom.Node{c, d}, "#,c,d,footer"},
		{[]*dom.Node{c}, "#,c,footer"},
		{nil, "#,footer"},
		{[]*dom.Node{a, b, c}, "#,a,b,c,footer"},
		{[]*dom.Node{c, a}, "#,c,a,footer"},
		{[]*dom.Node{d}, "#,d,footer"},
	}
	for _, step := range steps {
		nodes.Set(step.set)
		if got := tags(parent); got != step.want {
			t.Errorf("after %d nodes: children = %q, want %q", len(step.set), got, step.want)
		}
	}
}

func TestRender_ChildText(t *testing.T) {
	parent, placeholder, _ := slot(t)
	count := reactive.NewSignal(0)

	Render(placeholder, "", count)
	reactive.Add(count, 5)

	if got := tags(parent); got != "#,'5',footer" {
		t.Errorf("children = %q", got)
	}
}

func TestRender_SelfDisposesWhenDetached(t *testing.T) {
	parent, placeholder, _ := slot(t)
	text := reactive.NewSignal("a")
	Render(placeholder, "", text)
	detached := ReadStats().Detached

	text.Set("b")
	if got := parent.TextContent(); got != "b" {
		t.Fatalf("text = %q, want b", got)
	}

	parent.Remove()
	text.Set("c")
	if got := parent.TextContent(); got != "b" {
		t.Errorf("detached binding still applied: %q", got)
	}
	if d := ReadStats().Detached - detached; d != 1 {
		t.Errorf("detached bindings = %d, want 1", d)
	}

	// The disposed subscription is culled on the next notification.
	text.Set("d")
	if n := text.Subscribers(); n != 0 {
		t.Errorf("subscribers = %d, want 0", n)
	}
}

func TestRender_FirstRunAppliesWhileDetached(t *testing.T) {
	text := reactive.NewSignal("a")
	p := One([]string{"<p>", "</p>"}, text)

	if p.IsConnected() {
		t.Fatal("template output should be detached")
	}
	if got := p.TextContent(); got != "a" {
		t.Errorf("text = %q, want a", got)
	}
}

func TestBinder_AttachmentObserver(t *testing.T) {
	attached := true
	b := NewBinder(WithAttachmentObserver(AttachmentFunc(func(*dom.Node) bool { return attached })))
	title := reactive.NewSignal("one")

	// Never connected to a document; the observer decides.
	div := b.One([]string{"<div title=", "></div>"}, title)

	title.Set("two")
	if got, _ := div.Attr("title"); got != "two" {
		t.Errorf("title = %q, want two", got)
	}

	attached = false
	title.Set("three")
	if got, _ := div.Attr("title"); got != "two" {
		t.Errorf("title = %q after detach, want two", got)
	}
}

func TestRender_AttributeOnNonElement(t *testing.T) {
	text := dom.NewText("x")
	Render(text, "class", "a")
	if text.HasAttributes() {
		t.Error("text nodes take no attributes")
	}
}

func TestRender_HandlerRequiresFunction(t *testing.T) {
	btn := dom.NewElement("button")
	Render(btn, "onclick", "alert(1)")

	if btn.Handler("onclick") != nil {
		t.Error("strings must not become handlers")
	}
	if got, _ := btn.Attr("onclick"); got != "alert(1)" {
		t.Errorf("onclick = %q", got)
	}
}

func TestRender_HandlerShapes(t *testing.T) {
	var logs bytes.Buffer
	b := NewBinder(WithLogger(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))))

	clicks := 0
	for _, h := range []any{
		func() { clicks++ },
		func(*dom.Event) { clicks++ },
		dom.Handler(func(*dom.Event) { clicks++ }),
	} {
		btn := dom.NewElement("button")
		b.Render(btn, "onclick", h)
		btn.Dispatch(&dom.Event{Type: "click"})
	}
	if clicks != 3 {
		t.Errorf("clicks = %d, want 3", clicks)
	}
	if logs.Len() != 0 {
		t.Errorf("unexpected logs: %s", logs.String())
	}

	btn := dom.NewElement("button")
	b.Render(btn, "onclick", func() string { return "go()" })
	if btn.Handler("onclick") != nil {
		t.Error("func() string must not become a handler")
	}
	if got, _ := btn.Attr("onclick"); got != "go()" {
		t.Errorf("onclick = %q, want the function result", got)
	}
	if !strings.Contains(logs.String(), "attr=onclick") {
		t.Errorf("expected a debug log for the rejected function, got %q", logs.String())
	}
}

func TestRender_EmptyStringKeepsAttribute(t *testing.T) {
	input := dom.NewElement("input")
	Render(input, "disabled", "")
	if v, ok := input.Attr("disabled"); !ok || v != "" {
		t.Errorf("disabled = %q, %v, want present and empty", v, ok)
	}

	Render(input, "disabled", false)
	if _, ok := input.Attr("disabled"); ok {
		t.Error("false should remove the attribute")
	}
}

func TestRender_ComputedAttribute(t *testing.T) {
	done := reactive.NewSignal(false)
	style := reactive.NewComputed(func() string {
		if done.Get() {
			return "text-decoration: line-through"
		}
		return ""
	})
	li := One([]string{"<li style=", ">todo</li>"}, style)
	mount(t, li)

	done.Set(true)
	if got, _ := li.Attr("style"); got != "text-decoration: line-through" {
		t.Errorf("style = %q", got)
	}
}
