// Package dom provides the host DOM that smallie binds into.
//
// The tree mirrors the parts of the browser DOM the binder needs: elements
// with ordered attributes, live form properties ("value", "checked") and event
// handler properties, text and comment nodes, and the insertion primitives
// (AppendChild, InsertBefore, Before, After, ReplaceWith, Remove) with browser
// semantics. A node is connected when its root is a Document.
//
// # Mutation Records
//
// Every change to a connected node is reported synchronously to the
// document's observers:
//
//	doc := dom.NewDocument()
//	cancel := doc.Observe(func(rec dom.MutationRecord) {
//	    fmt.Println(rec.Kind, rec.Target.NodeName())
//	})
//	defer cancel()
//
// The live server turns these records into patches for a browser.
//
// # Parsing and Serialization
//
// ParseFragment parses markup with golang.org/x/net/html the way a
// <template> element's content is parsed. Render, OuterHTML and InnerHTML
// write the tree back out as HTML.
package dom
