package ui

import "github.com/smallie-dev/smallie/pkg/dom"

// Source supplies the items of a list. *reactive.Signal[[]T] and
// *reactive.Computed[[]T] are sources; reading them inside a binding
// subscribes it.
type Source[T any] interface {
	Get() []T
}

// SourceFunc adapts a function to Source.
type SourceFunc[T any] func() []T

// Get calls f.
func (f SourceFunc[T]) Get() []T { return f() }

type staticSource[T any] []T

func (s staticSource[T]) Get() []T { return s }

// Items returns a Source over a fixed slice.
func Items[T any](items []T) Source[T] {
	return staticSource[T](items)
}

// entry is one previously rendered item. Entries consumed out of order are
// tombstoned by clearing live.
type entry[K comparable] struct {
	key  K
	node *dom.Node
	live bool
}

// Each returns a function that reconciles the rendered list with the current
// items of source and returns the item nodes in order.
//
// Items are matched by keyOf; render creates the node for a new item. On
// each call, matching nodes are kept, nodes whose key disappeared are
// removed, nodes whose key moved are moved in front of the old node at the
// current position, and new items are rendered and inserted there. Items
// added at the end are returned but not inserted; binding the function into
// a child slot appends them. Keys must be unique.
//
// The returned function is meant to be bound into a template slot:
//
//	ui.HTML([]string{"<ul>", "</ul>"}, ui.Each(todos, keyOf, renderTodo))
func Each[T any, K comparable](source Source[T], keyOf func(T) K, render func(T, int) *dom.Node) func() []*dom.Node {
	var old []entry[K]

	return func() []*dom.Node {
		items := source.Get()
		keys := make([]K, len(items))
		for j, item := range items {
			keys[j] = keyOf(item)
		}

		aIdx := make(map[K]int, len(old))
		for i, e := range old {
			aIdx[e.key] = i
		}
		bIdx := make(map[K]int, len(keys))
		for j, k := range keys {
			bIdx[k] = j
		}

		create := func(j int) *dom.Node {
			stats.created.Add(1)
			if n := render(items[j], j); n != nil {
				return n
			}
			return dom.NewComment("")
		}

		bNodes := make([]*dom.Node, len(keys))
		i, j := 0, 0
		for i < len(old) || j < len(keys) {
			switch {
			case i < len(old) && !old[i].live:
				i++

			case j >= len(keys):
				old[i].node.Remove()
				old[i].live = false
				stats.removed.Add(1)
				i++

			case i >= len(old):
				// An entry skipped by an earlier advance may still hold this
				// key; reuse its node rather than leave it in the DOM.
				if oi, ok := aIdx[keys[j]]; ok && old[oi].live {
					n := old[oi].node
					old[oi].live = false
					if j > 0 {
						if prev := bNodes[j-1]; prev.Parent() != nil && prev.NextSibling() != n {
							prev.After(n)
						}
					}
					bNodes[j] = n
					stats.moved.Add(1)
				} else {
					bNodes[j] = create(j)
				}
				j++

			case old[i].key == keys[j]:
				bNodes[j] = old[i].node
				stats.reused.Add(1)
				i++
				j++

			default:
				oi, inA := aIdx[keys[j]]
				if _, inB := bIdx[old[i].key]; !inB {
					old[i].node.Remove()
					old[i].live = false
					stats.removed.Add(1)
					i++
				} else if !inA || !old[oi].live {
					n := create(j)
					old[i].node.Before(n)
					bNodes[j] = n
					j++
				} else {
					n := old[oi].node
					old[i].node.Before(n)
					old[oi].live = false
					bNodes[j] = n
					stats.moved.Add(1)
					j++
					if oi > i+1 {
						i++
					}
				}
			}
		}

		next := make([]entry[K], len(keys))
		for j, k := range keys {
			next[j] = entry[K]{key: k, node: bNodes[j], live: true}
		}
		old = next

		out := make([]*dom.Node, len(bNodes))
		copy(out, bNodes)
		return out
	}
}
