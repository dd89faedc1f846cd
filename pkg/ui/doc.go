// Package ui binds reactive values into DOM templates.
//
// HTML parses markup once per distinct set of literal parts and binds one
// value per slot, in document order. A slot is either a whole attribute value
// or a position in text:
//
//	count := reactive.NewSignal(0)
//	nodes := ui.HTML([]string{
//	    `<button onclick=`, `>clicked `, ` times</button>`,
//	}, func() { reactive.Add(count, 1) }, count)
//
// Signals, computeds and functions with no arguments and one result are
// reactive: the slot is updated in place whenever they change, until its node
// leaves the document.
//
// Each keeps a keyed list in sync with a slice source, reusing and moving
// the existing item nodes:
//
//	list := ui.Each(todos, func(t Todo) int { return t.ID }, renderTodo)
//	ui.HTML([]string{"<ul>", "</ul>"}, list)
package ui
