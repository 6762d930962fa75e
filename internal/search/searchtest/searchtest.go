// Package searchtest provides explicit graph problems to create tests of the search package.
package searchtest

import (
	"fmt"
	"github.com/janpfeifer/mazeGo/internal/generics"
	"github.com/janpfeifer/mazeGo/internal/search"
	"math"
	"math/rand/v2"
)

// Edge of a Graph: from state From, action Action leads to state To with cost Cost.
type Edge struct {
	From, To string
	Action   string
	Cost     float64
}

// Graph is a search.Problem over an explicit directed graph, with string states and actions.
type Graph struct {
	Start string
	Goals generics.Set[string]
	Edges map[string][]Edge

	// order in which states were added, used to enumerate them deterministically.
	order []string
}

// Assert Graph implements search.Problem.
var _ search.Problem[string, string] = (*Graph)(nil)

// NewGraph creates an empty graph that starts at start and has the given goals.
func NewGraph(start string, goals ...string) *Graph {
	g := &Graph{
		Start: start,
		Goals: generics.SetWith(goals...),
		Edges: make(map[string][]Edge),
	}
	g.addState(start)
	for _, goal := range goals {
		g.addState(goal)
	}
	return g
}

func (g *Graph) addState(state string) {
	if _, found := g.Edges[state]; !found {
		g.Edges[state] = nil
		g.order = append(g.order, state)
	}
}

// AddEdge from -> to, taking action, at the given cost. It returns the Graph, so calls can be chained.
func (g *Graph) AddEdge(from, to, action string, cost float64) *Graph {
	g.addState(from)
	g.addState(to)
	g.Edges[from] = append(g.Edges[from], Edge{From: from, To: to, Action: action, Cost: cost})
	return g
}

// States returns all states in the order they were first seen.
func (g *Graph) States() []string {
	return g.order
}

// StartState implements search.Problem.
func (g *Graph) StartState() string { return g.Start }

// IsGoal implements search.Problem.
func (g *Graph) IsGoal(state string) bool { return g.Goals.Has(state) }

// Successors implements search.Problem.
func (g *Graph) Successors(state string) []search.Successor[string, string] {
	return generics.SliceMap(g.Edges[state], func(e Edge) search.Successor[string, string] {
		return search.Successor[string, string]{State: e.To, Action: e.Action, Cost: e.Cost}
	})
}

// Apply follows actions from the start state and returns the final state and the total cost.
// If any action is not available in the state it is taken, ok is false.
func (g *Graph) Apply(actions []string) (state string, cost float64, ok bool) {
	state = g.Start
	for _, action := range actions {
		found := false
		for _, e := range g.Edges[state] {
			if e.Action == action {
				state, cost, found = e.To, cost+e.Cost, true
				break
			}
		}
		if !found {
			return state, cost, false
		}
	}
	return state, cost, true
}

// CostOfActions implements search.Problem. It returns +Inf for an invalid sequence of actions.
func (g *Graph) CostOfActions(actions []string) float64 {
	_, cost, ok := g.Apply(actions)
	if !ok {
		return math.Inf(1)
	}
	return cost
}

// HeuristicFromTable returns a heuristic that looks up the estimate of each state in table,
// and returns 0 for missing states.
func HeuristicFromTable(table map[string]float64) search.Heuristic[string, string] {
	return func(state string, _ search.Problem[string, string]) float64 {
		return table[state]
	}
}

// RandomGraph creates a graph with numStates states "s0" ... "s<numStates-1>", starting at "s0"
// with "s<numStates-1>" as goal. Each state gets up to maxEdges outgoing edges with integer
// costs from 1 to maxCost.
//
// If acyclic is true, edges only go from lower to higher numbered states, and "s0" -> "s1" -> ...
// -> goal is always present, so the goal is reachable. Otherwise, edges may go anywhere (except
// self-loops) and the goal may be unreachable.
func RandomGraph(rng *rand.Rand, numStates, maxEdges, maxCost int, acyclic bool) *Graph {
	name := func(ii int) string { return fmt.Sprintf("s%d", ii) }
	g := NewGraph(name(0), name(numStates-1))
	for ii := range numStates - 1 {
		g.addState(name(ii))
		if acyclic {
			g.AddEdge(name(ii), name(ii+1), fmt.Sprintf("%d->%d", ii, ii+1), float64(1+rng.IntN(maxCost)))
		}
		numEdges := rng.IntN(maxEdges + 1)
		for range numEdges {
			var to int
			if acyclic {
				to = ii + 1 + rng.IntN(numStates-ii-1)
			} else {
				to = rng.IntN(numStates)
				if to == ii {
					continue
				}
			}
			g.AddEdge(name(ii), name(to), fmt.Sprintf("%d->%d#%d", ii, to, len(g.Edges[name(ii)])),
				float64(1+rng.IntN(maxCost)))
		}
	}
	return g
}
