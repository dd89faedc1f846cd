// Package todo is the demo app served by "smallie serve": a todo list with
// keyed items, per-item reactive state and a computed counter.
package todo

import (
	"strings"

	"github.com/smallie-dev/smallie/pkg/dom"
	"github.com/smallie-dev/smallie/pkg/reactive"
	"github.com/smallie-dev/smallie/pkg/ui"
)

// Todo is one list entry. Done is its own signal so toggling an item only
// touches that item's bindings.
type Todo struct {
	ID   int
	Text string
	Done *reactive.Signal[bool]
}

// App holds the state of one todo list.
type App struct {
	todos     *reactive.Signal[[]*Todo]
	draft     *reactive.Signal[string]
	remaining *reactive.Computed[int]
	nextID    int
}

// New creates an empty todo list.
func New() *App {
	a := &App{
		todos: reactive.NewSignal([]*Todo{}).WithEquals(sameTodos),
		draft: reactive.NewSignal(""),
	}
	a.remaining = reactive.NewComputed(func() int {
		n := 0
		for _, t := range a.todos.Get() {
			if !t.Done.Get() {
				n++
			}
		}
		return n
	})
	return a
}

// Mount renders a new todo list into the body of doc.
func Mount(doc *dom.Document) {
	doc.Body().Append(New().Render()...)
}

// Render builds the app markup bound to a's state.
func (a *App) Render() []*dom.Node {
	return ui.HTML([]string{
		`<div class="todo-app"><h1>Todo App</h1><input type="text" class="new-todo" value=`,
		` oninput=`,
		` placeholder="Add a new todo"><button class="add" onclick=`,
		`>Add</button><ul class="todo-list">`,
		`</ul><p class="remaining">`,
		` items left</p></div>`,
	},
		a.draft,
		func(ev *dom.Event) { a.draft.Set(ev.Value) },
		a.Add,
		ui.Each[*Todo, int](a.todos, func(t *Todo) int { return t.ID }, a.renderItem),
		a.remaining,
	)
}

func (a *App) renderItem(t *Todo, _ int) *dom.Node {
	return ui.One([]string{
		`<li class="todo"><input type="checkbox" checked=`,
		` onchange=`,
		`><span style=`,
		`>`,
		`</span><button class="remove" onclick=`,
		`>Remove</button></li>`,
	},
		t.Done,
		func() { reactive.Toggle(t.Done) },
		func() string {
			if t.Done.Get() {
				return "text-decoration: line-through"
			}
			return ""
		},
		t.Text,
		func() { a.Remove(t.ID) },
	)
}

// Add appends the current draft as a new item and clears the draft. Blank
// drafts are ignored.
func (a *App) Add() {
	text := a.draft.Peek()
	if strings.TrimSpace(text) == "" {
		return
	}
	a.nextID++
	reactive.Append(a.todos, &Todo{ID: a.nextID, Text: text, Done: reactive.NewSignal(false)})
	a.draft.Set("")
}

// Remove deletes the item with the given id.
func (a *App) Remove(id int) {
	reactive.RemoveWhere(a.todos, func(t *Todo) bool { return t.ID == id })
}

// Remaining returns how many items are not done.
func (a *App) Remaining() int {
	return a.remaining.Peek()
}

// Todos returns the current items.
func (a *App) Todos() []*Todo {
	return a.todos.Peek()
}

func sameTodos(a, b []*Todo) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
