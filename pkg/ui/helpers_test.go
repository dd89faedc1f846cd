package ui

import (
	"strings"
	"testing"

	"github.com/smallie-dev/smallie/pkg/dom"
)

// mount attaches nodes to a fresh document's body.
func mount(t *testing.T, nodes ...*dom.Node) *dom.Document {
	t.Helper()
	doc := dom.NewDocument()
	doc.Body().Append(nodes...)
	return doc
}

// record collects the mutation records of doc until the returned stop
// function is called.
func record(doc *dom.Document) (recs *[]dom.MutationRecord, stop func()) {
	var out []dom.MutationRecord
	stop = doc.Observe(func(r dom.MutationRecord) { out = append(out, r) })
	return &out, stop
}

// texts returns the text content of each element child of n.
func texts(n *dom.Node) string {
	var parts []string
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if c.Type() == dom.ElementNode {
			parts = append(parts, c.TextContent())
		}
	}
	return strings.Join(parts, ",")
}

func elementChildren(n *dom.Node) []*dom.Node {
	var out []*dom.Node
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if c.Type() == dom.ElementNode {
			out = append(out, c)
		}
	}
	return out
}
