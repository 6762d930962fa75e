package search

import (
	"fmt"
	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/mazeGo/internal/generics"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
	"strings"
	"time"
)

// Strategy selects the frontier ordering used by Run.
type Strategy int

const (
	DepthFirst Strategy = iota
	BreadthFirst
	UniformCost
	AStar
)

var (
	strategyNames = [...]string{"DepthFirst", "BreadthFirst", "UniformCost", "AStar"}

	// strategyAliases accepted by ParseStrategy, besides the lower-cased names.
	strategyAliases = map[string]Strategy{
		"dfs":   DepthFirst,
		"bfs":   BreadthFirst,
		"ucs":   UniformCost,
		"astar": AStar,
		"a*":    AStar,
	}
)

// String implements fmt.Stringer.
func (s Strategy) String() string {
	if s < 0 || int(s) >= len(strategyNames) {
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
	return strategyNames[s]
}

// ParseStrategy from its name (case-insensitive) or one of the short aliases "dfs", "bfs", "ucs"
// and "astar".
func ParseStrategy(name string) (Strategy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if s, found := strategyAliases[name]; found {
		return s, nil
	}
	for ii, strategyName := range strategyNames {
		if strings.ToLower(strategyName) == name {
			return Strategy(ii), nil
		}
	}
	return DepthFirst, errors.Errorf("unknown search strategy %q, valid values are dfs, bfs, ucs or astar", name)
}

// newFrontier for the given strategy.
func newFrontier(strategy Strategy) Frontier {
	switch strategy {
	case DepthFirst:
		return NewStack()
	case BreadthFirst:
		return NewQueue()
	case UniformCost, AStar:
		return NewPriorityQueue()
	}
	exceptions.Panicf("search: invalid strategy %s", strategy)
	return nil
}

// Stats collected during one search, for benchmarking and debugging.
type Stats struct {
	// Expanded is the number of states whose successors were generated: the size of the closed set.
	Expanded int

	// Generated is the number of nodes pushed into the frontier, including the start node.
	Generated int

	// MaxFrontier is the largest size the frontier reached.
	MaxFrontier int
}

// Result of a search.
type Result[A any] struct {
	// Actions from the start state to the goal found, in execution order. Never nil.
	Actions []A

	// Cost accumulated along Actions.
	Cost float64

	// Found is false if the search space was exhausted without reaching a goal. Notice
	// that an empty Actions with Found set means the start state is a goal.
	Found bool

	Stats Stats
}

// DepthFirstSearch searches the deepest nodes first.
// It returns the actions to the first goal found, or an empty slice if there is none.
func DepthFirstSearch[S comparable, A any](problem Problem[S, A]) []A {
	return Run(problem, DepthFirst, nil).Actions
}

// BreadthFirstSearch searches the shallowest nodes first, so it returns a path with the
// least number of actions.
// It returns an empty slice if no goal is reachable.
func BreadthFirstSearch[S comparable, A any](problem Problem[S, A]) []A {
	return Run(problem, BreadthFirst, nil).Actions
}

// UniformCostSearch searches the node of least total cost first, so it returns a path
// of minimal cost.
// It returns an empty slice if no goal is reachable.
func UniformCostSearch[S comparable, A any](problem Problem[S, A]) []A {
	return Run(problem, UniformCost, nil).Actions
}

// AStarSearch searches the node with the lowest combined cost and heuristic first.
// If heuristic is nil, NullHeuristic is used.
// It returns an empty slice if no goal is reachable.
func AStarSearch[S comparable, A any](problem Problem[S, A], heuristic Heuristic[S, A]) []A {
	return Run(problem, AStar, heuristic).Actions
}

// Run executes the graph search shared by all strategies:
//
//  1. The frontier starts with the start node, with priority heuristic(start) (0 except for A*).
//  2. The best node is popped: if it is a goal, the path to it is returned. Otherwise, if its
//     state was not expanded before, it is added to the closed set and all its successors are
//     pushed with priority cost(parent)+stepCost (+heuristic(successor) for A*).
//  3. If the frontier empties, it returns an empty result with Found set to false.
//
// The heuristic is only used by AStar, and if nil NullHeuristic is used.
//
// Run holds no state across calls: calling it twice with the same arguments yields the same result.
func Run[S comparable, A any](problem Problem[S, A], strategy Strategy, heuristic Heuristic[S, A]) (result Result[A]) {
	if problem == nil {
		exceptions.Panicf("search.Run(%s): nil Problem", strategy)
	}
	if heuristic == nil || strategy != AStar {
		heuristic = NullHeuristic[S, A]
	}
	start := time.Now()
	frontier := newFrontier(strategy)
	startState := problem.StartState()
	ar := newArena[S, A](startState)
	closed := generics.MakeSet[S]()
	stats := &result.Stats

	frontier.Push(0, heuristic(startState, problem))
	stats.MaxFrontier = 1
	result.Actions = []A{}
	for !frontier.IsEmpty() {
		nodeIdx := frontier.Pop()
		n := ar.at(nodeIdx)
		if problem.IsGoal(n.state) {
			result.Actions = ar.path(nodeIdx)
			result.Cost = n.cost
			result.Found = true
			break
		}
		if closed.Has(n.state) {
			continue
		}
		closed.Insert(n.state)
		stats.Expanded++
		for _, succ := range problem.Successors(n.state) {
			childIdx := ar.extend(nodeIdx, succ)
			frontier.Push(childIdx, n.cost+succ.Cost+heuristic(succ.State, problem))
		}
		stats.MaxFrontier = max(stats.MaxFrontier, frontier.Len())
	}
	stats.Generated = ar.Len()

	if klog.V(2).Enabled() {
		klog.Infof("%s search: found=%v, #actions=%d, cost=%g, stats=%+v, elapsed=%s",
			strategy, result.Found, len(result.Actions), result.Cost, result.Stats, time.Since(start))
	}
	return
}
