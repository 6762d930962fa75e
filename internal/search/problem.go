// Package search implements generic single-agent graph search: depth-first, breadth-first,
// uniform-cost and A*.
//
// The algorithms only know about the Problem interface, and they are generic over the type of
// the state (S, which must be comparable to be kept in the closed set) and the type of the
// actions (A). They all share the same "graph search" skeleton (see Run), and differ only on
// the Frontier used to decide which node to expand next.
package search

import (
	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/mazeGo/internal/generics"
	"github.com/pkg/errors"
	"slices"
)

// Successor is one transition out of a state: taking Action leads to State at the given step Cost.
type Successor[S comparable, A any] struct {
	State  S
	Action A
	Cost   float64
}

// Problem is the interface a search problem must implement to be solved by this package.
//
// The search tolerates cyclic state graphs and non-uniform step costs.
type Problem[S comparable, A any] interface {
	// StartState returns the state where the search begins.
	StartState() S

	// IsGoal returns whether state is a goal.
	IsGoal(state S) bool

	// Successors returns the transitions out of state. The order matters: it is the
	// order nodes are pushed into the frontier.
	Successors(state S) []Successor[S, A]

	// CostOfActions returns the total cost of following actions from the start state.
	CostOfActions(actions []A) float64
}

// Heuristic estimates the remaining cost from state to the nearest goal of problem.
// It should return a non-negative number, but that is not checked.
//
// Admissible heuristics (that never overestimate) make AStar return optimal paths, others
// may lead to sub-optimal paths, which is accepted.
type Heuristic[S comparable, A any] func(state S, problem Problem[S, A]) float64

// NullHeuristic always returns 0: A* with it is the same as uniform-cost search.
func NullHeuristic[S comparable, A any](S, Problem[S, A]) float64 {
	return 0
}

// NullHeuristicName is the name under which NullHeuristic is registered in every Heuristics.
const NullHeuristicName = "null"

// Heuristics is a registry of heuristics selectable by name, for a specific problem type.
//
// Registration is expected to happen during initialization: it is not safe for concurrent
// registration and lookups.
type Heuristics[S comparable, A any] struct {
	byName map[string]Heuristic[S, A]
}

// NewHeuristics returns a registry with NullHeuristic already registered as "null".
func NewHeuristics[S comparable, A any]() *Heuristics[S, A] {
	hs := &Heuristics[S, A]{byName: make(map[string]Heuristic[S, A])}
	return hs.Register(NullHeuristicName, NullHeuristic[S, A])
}

// Register heuristic under name. It panics if the name is taken or heuristic is nil.
// It returns itself, so calls can be chained.
func (hs *Heuristics[S, A]) Register(name string, heuristic Heuristic[S, A]) *Heuristics[S, A] {
	if heuristic == nil {
		exceptions.Panicf("search.Heuristics: registering nil heuristic %q", name)
	}
	if _, found := hs.byName[name]; found {
		exceptions.Panicf("search.Heuristics: heuristic %q registered twice", name)
	}
	hs.byName[name] = heuristic
	return hs
}

// Lookup returns the heuristic registered under name.
func (hs *Heuristics[S, A]) Lookup(name string) (Heuristic[S, A], error) {
	heuristic, found := hs.byName[name]
	if !found {
		return nil, errors.Errorf("unknown heuristic %q, valid values are %q", name, hs.Names())
	}
	return heuristic, nil
}

// Names of the registered heuristics, sorted.
func (hs *Heuristics[S, A]) Names() []string {
	return slices.Collect(generics.SortedKeys(hs.byName))
}
