package search

import (
	"github.com/gomlx/exceptions"
	"slices"
)

// noParent marks the start node: the only node without predecessor (and without action).
const noParent = -1

// node is one step of the exploration. Nodes are never changed after they are added to the
// arena: extending a path appends a new node pointing to its predecessor by index.
type node[S comparable, A any] struct {
	state  S
	parent int
	action A

	// cost accumulated from the start node.
	cost float64
}

// arena owns all nodes created during one search. Nodes refer to their predecessor by index,
// so the whole exploration is released at once when the search returns.
type arena[S comparable, A any] struct {
	nodes []node[S, A]
}

// newArena returns an arena with the start node at index 0.
func newArena[S comparable, A any](start S) *arena[S, A] {
	ar := &arena[S, A]{nodes: make([]node[S, A], 0, 64)}
	ar.nodes = append(ar.nodes, node[S, A]{state: start, parent: noParent})
	return ar
}

// extend creates a node reached from parentIdx through succ, and returns its index.
func (ar *arena[S, A]) extend(parentIdx int, succ Successor[S, A]) int {
	parent := ar.at(parentIdx)
	ar.nodes = append(ar.nodes, node[S, A]{
		state:  succ.State,
		parent: parentIdx,
		action: succ.Action,
		cost:   parent.cost + succ.Cost,
	})
	return len(ar.nodes) - 1
}

// at returns a copy of the node at idx.
func (ar *arena[S, A]) at(idx int) node[S, A] {
	if idx < 0 || idx >= len(ar.nodes) {
		exceptions.Panicf("search: node index %d out of range [0, %d)", idx, len(ar.nodes))
	}
	return ar.nodes[idx]
}

// path returns the actions from the start node to the node at idx, in execution order.
func (ar *arena[S, A]) path(idx int) []A {
	actions := make([]A, 0, 16)
	for n := ar.at(idx); n.parent != noParent; n = ar.at(n.parent) {
		actions = append(actions, n.action)
	}
	slices.Reverse(actions)
	return actions
}

// Len returns the number of nodes created so far.
func (ar *arena[S, A]) Len() int {
	return len(ar.nodes)
}
