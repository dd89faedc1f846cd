package dom

import (
	"fmt"
	"io"
	"strings"
)

// voidElements cannot have children and have no closing tag.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// rawTextElements hold text that is written without escaping.
var rawTextElements = map[string]bool{
	"script": true,
	"style":  true,
}

// RenderOption configures Render.
type RenderOption func(*renderConfig)

type renderConfig struct {
	properties bool
}

// WithProperties writes live "value" and "checked" properties as attributes,
// so the output reflects what a user would currently see.
func WithProperties() RenderOption {
	return func(c *renderConfig) {
		c.properties = true
	}
}

// Render writes n as HTML. Documents get a doctype; fragments write their
// children.
func Render(w io.Writer, n *Node, opts ...RenderOption) error {
	var cfg renderConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	r := &renderer{w: w, cfg: cfg}
	if n.typ == DocumentNode {
		r.write("<!DOCTYPE html>")
	}
	r.node(n)
	return r.err
}

// OuterHTML returns n serialized as HTML.
func OuterHTML(n *Node, opts ...RenderOption) string {
	var b strings.Builder
	_ = Render(&b, n, opts...)
	return b.String()
}

// InnerHTML returns the serialized children of n.
func InnerHTML(n *Node, opts ...RenderOption) string {
	var b strings.Builder
	for c := n.firstChild; c != nil; c = c.nextSibling {
		_ = Render(&b, c, opts...)
	}
	return b.String()
}

// renderer keeps the first write error and stops writing after it.
type renderer struct {
	w   io.Writer
	cfg renderConfig
	err error
}

func (r *renderer) write(s string) {
	if r.err != nil {
		return
	}
	_, r.err = io.WriteString(r.w, s)
}

func (r *renderer) node(n *Node) {
	switch n.typ {
	case DocumentNode, FragmentNode:
		for c := n.firstChild; c != nil; c = c.nextSibling {
			r.node(c)
		}
	case ElementNode:
		r.element(n)
	case TextNode:
		if p := n.parent; p != nil && rawTextElements[p.tag] {
			r.write(n.data)
			return
		}
		r.write(escapeHTML(n.data))
	case CommentNode:
		r.write("<!--")
		r.write(n.data)
		r.write("-->")
	default:
		r.err = fmt.Errorf("dom: unknown node type %d", n.typ)
	}
}

func (r *renderer) element(n *Node) {
	r.write("<")
	r.write(n.tag)

	props := r.cfg.properties && n.props != nil
	for _, a := range n.attrs {
		if props && (a.Name == "value" || a.Name == "checked") {
			if _, ok := n.props[a.Name]; ok {
				continue
			}
		}
		r.attr(a.Name, a.Value)
	}
	if props {
		if v, ok := n.props["value"]; ok && n.tag != "textarea" {
			r.attr("value", fmt.Sprint(v))
		}
		if v, ok := n.props["checked"].(bool); ok && v {
			r.write(" checked")
		}
	}
	r.write(">")

	if voidElements[n.tag] {
		return
	}

	if props && n.tag == "textarea" {
		if v, ok := n.props["value"]; ok {
			r.write(escapeHTML(fmt.Sprint(v)))
			r.write("</textarea>")
			return
		}
	}

	for c := n.firstChild; c != nil; c = c.nextSibling {
		r.node(c)
	}
	r.write("</")
	r.write(n.tag)
	r.write(">")
}

func (r *renderer) attr(name, value string) {
	r.write(" ")
	r.write(name)
	if value == "" {
		return
	}
	r.write(`="`)
	r.write(escapeAttr(value))
	r.write(`"`)
}

// escapeHTML escapes text for safe inclusion in HTML content.
func escapeHTML(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;")
		default:
			buf.WriteRune(r)
		}
	}

	return buf.String()
}

// escapeAttr escapes text for attribute values. In addition to the HTML
// entities it escapes whitespace that could break attribute parsing.
func escapeAttr(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;")
		case '\n':
			buf.WriteString("&#10;")
		case '\r':
			buf.WriteString("&#13;")
		case '\t':
			buf.WriteString("&#9;")
		default:
			buf.WriteRune(r)
		}
	}

	return buf.String()
}
