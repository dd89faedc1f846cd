package dom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/smallie-dev/smallie/internal/errors"
)

// templateContext parses markup the way a <template> element's content is
// parsed, so table rows, list items and option elements survive at top level.
var templateContext = &html.Node{
	Type:     html.ElementNode,
	Data:     "template",
	DataAtom: atom.Template,
}

// ParseFragment parses markup into detached, inert nodes. Nothing is bound and
// no handler is installed; doctype nodes are dropped.
func ParseFragment(markup string) ([]*Node, error) {
	parsed, err := html.ParseFragment(strings.NewReader(markup), templateContext)
	if err != nil {
		return nil, errors.New("E002").
			WithDetail("Markup could not be parsed: " + err.Error()).
			Wrap(err)
	}

	out := make([]*Node, 0, len(parsed))
	for _, p := range parsed {
		if n := convert(p); n != nil {
			out = append(out, n)
		}
	}
	return out, nil
}

// MustParseFragment is like ParseFragment but panics on error.
func MustParseFragment(markup string) []*Node {
	nodes, err := ParseFragment(markup)
	if err != nil {
		panic(err)
	}
	return nodes
}

// convert copies an x/net/html subtree into dom nodes.
func convert(p *html.Node) *Node {
	var n *Node
	switch p.Type {
	case html.ElementNode:
		n = &Node{typ: ElementNode, tag: p.Data}
		if len(p.Attr) > 0 {
			n.attrs = make([]Attr, 0, len(p.Attr))
			for _, a := range p.Attr {
				name := a.Key
				if a.Namespace != "" {
					name = a.Namespace + ":" + a.Key
				}
				n.attrs = append(n.attrs, Attr{Name: name, Value: a.Val})
			}
		}
	case html.TextNode:
		return NewText(p.Data)
	case html.CommentNode:
		return NewComment(p.Data)
	default:
		return nil
	}

	for c := p.FirstChild; c != nil; c = c.NextSibling {
		if child := convert(c); child != nil {
			n.link(child, nil)
		}
	}
	return n
}
