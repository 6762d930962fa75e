package adversarial

import (
	"fmt"
	"github.com/gomlx/exceptions"
	"gonum.org/v1/gonum/stat"
	"k8s.io/klog/v2"
	"math"
	"time"
)

// DefaultMaxDepth of the search, in plies: one ply is one move of every agent.
const DefaultMaxDepth = 2

// Searcher runs a depth-limited game-tree search for agent 0, under one of the decision Rules.
//
// Create it with New (or NewMinimax, NewAlphaBeta, NewExpectimax) and configure it with the
// With... methods.
//
// A Searcher keeps the Stats of the last search, so it is not safe for concurrent use.
type Searcher[A any] struct {
	rule      Rule
	maxDepth  int
	maxTime   time.Duration
	evaluate  EvaluationFunc[A]
	noop      A
	stats     Stats
	lastDepth int
}

// Stats stores counts collected during the last search: for benchmarking and debugging purposes.
// With WithMaxTime, the counts are summed over all depths searched.
type Stats struct {
	// Nodes visited: every (state, agent, depth) evaluated, including the root and the leaves.
	Nodes int

	// Evaluations is the number of calls to the evaluation function (at leaves and terminal states).
	Evaluations int

	// Cutoffs counts the times alpha-beta stopped exploring the remaining siblings.
	Cutoffs int
}

// New returns a Searcher for the given rule, with DefaultMaxDepth and ScoreEvaluation.
func New[A any](rule Rule) *Searcher[A] {
	if rule < Minimax || rule > Expectimax {
		exceptions.Panicf("adversarial.New: invalid rule %s", rule)
	}
	return &Searcher[A]{
		rule:     rule,
		maxDepth: DefaultMaxDepth,
		evaluate: ScoreEvaluation[A],
	}
}

// NewMinimax returns a minimax Searcher: adversaries pick the action worst for agent 0.
func NewMinimax[A any]() *Searcher[A] { return New[A](Minimax) }

// NewAlphaBeta returns a minimax Searcher with alpha-beta pruning.
// See wikipedia.org/wiki/Alpha-beta_pruning
func NewAlphaBeta[A any]() *Searcher[A] { return New[A](AlphaBeta) }

// NewExpectimax returns an expectimax Searcher: adversaries pick uniformly at random.
func NewExpectimax[A any]() *Searcher[A] { return New[A](Expectimax) }

// WithMaxDepth sets the max depth of the search, in plies: each ply is one move of every agent.
// A depth of 0 evaluates only the current state. It panics on negative values.
func (s *Searcher[A]) WithMaxDepth(maxDepth int) *Searcher[A] {
	if maxDepth < 0 {
		exceptions.Panicf("adversarial.Searcher.WithMaxDepth(%d): depth must be >= 0", maxDepth)
	}
	s.maxDepth = maxDepth
	return s
}

// WithMaxTime limits the duration of each search. If maxTime > 0, Search deepens iteratively,
// from depth 1 up to MaxDepth, and stops starting new depths once maxTime has elapsed: the
// result of the deepest completed depth is returned. At least depth 1 is always completed.
//
// A value <= 0 disables it (the default): the search goes straight to MaxDepth.
func (s *Searcher[A]) WithMaxTime(maxTime time.Duration) *Searcher[A] {
	s.maxTime = max(maxTime, 0)
	return s
}

// WithEvaluation sets the function used to score leaves and terminal states.
// If nil, it reverts to ScoreEvaluation.
func (s *Searcher[A]) WithEvaluation(evaluate EvaluationFunc[A]) *Searcher[A] {
	if evaluate == nil {
		evaluate = ScoreEvaluation[A]
	}
	s.evaluate = evaluate
	return s
}

// WithNoop sets the action returned when there is nothing to choose: at terminal states, at
// the depth limit, or when agent 0 has no legal actions. The default is the zero value of A.
func (s *Searcher[A]) WithNoop(noop A) *Searcher[A] {
	s.noop = noop
	return s
}

// Rule used by the searcher.
func (s *Searcher[A]) Rule() Rule { return s.rule }

// MaxDepth of the search in plies.
func (s *Searcher[A]) MaxDepth() int { return s.maxDepth }

// MaxTime of each search, or 0 if not time-limited.
func (s *Searcher[A]) MaxTime() time.Duration { return s.maxTime }

// LastDepth returns the depth of the result of the last call to Search. It is smaller than MaxDepth
// only if the search was cut short by WithMaxTime.
func (s *Searcher[A]) LastDepth() int { return s.lastDepth }

// LastStats returns the Stats of the last call to Search.
func (s *Searcher[A]) LastStats() Stats { return s.stats }

// String implements fmt.Stringer.
func (s *Searcher[A]) String() string {
	if s.maxTime > 0 {
		return fmt.Sprintf("%s(depth=%d, max_time=%s)", s.rule, s.maxDepth, s.maxTime)
	}
	return fmt.Sprintf("%s(depth=%d)", s.rule, s.maxDepth)
}

// Search returns the best action for agent 0 in state, along with its value.
//
// Among actions of equal value, the first one in state.LegalActions(0) order is returned.
// If state is terminal, or agent 0 has no legal action, it returns the noop action (see WithNoop)
// and the evaluation of the state.
func (s *Searcher[A]) Search(state GameState[A]) (action A, value float64) {
	if state == nil {
		exceptions.Panicf("adversarial.Searcher.Search: nil GameState")
	}
	s.stats = Stats{}
	start := time.Now()
	firstDepth := s.maxDepth
	if s.maxTime > 0 {
		firstDepth = min(1, s.maxDepth)
	}
	for depth := firstDepth; depth <= s.maxDepth; depth++ {
		value, action = s.recursion(state, 0, depth, math.Inf(-1), math.Inf(1))
		s.lastDepth = depth
		if s.maxTime > 0 && time.Since(start) >= s.maxTime {
			break
		}
	}
	if klog.V(2).Enabled() {
		elapsed := time.Since(start).Seconds()
		klog.Infof("%s: action=%v, value=%g, depth=%d, stats=%+v, nodes/s=%.1f",
			s, action, value, s.lastDepth, s.stats, float64(s.stats.Nodes)/elapsed)
	}
	return
}

// recursion evaluates state with agent to move and depthLeft plies to go. The returned action is
// only meaningful for agent 0.
//
// alpha and beta are only used by AlphaBeta: alpha is the best value the maximizer can
// guarantee so far in the path to the root, beta the best value the minimizers can guarantee.
func (s *Searcher[A]) recursion(state GameState[A], agent, depthLeft int, alpha, beta float64) (float64, A) {
	s.stats.Nodes++
	if depthLeft == 0 || state.IsWin() || state.IsLose() {
		return s.leaf(state), s.noop
	}
	actions := state.LegalActions(agent)
	if len(actions) == 0 {
		// Games should always offer some "stop" action, but if they don't, the state is
		// treated as terminal.
		return s.leaf(state), s.noop
	}

	// Next agent, and next ply once all agents have moved.
	nextAgent, nextDepth := agent+1, depthLeft
	if nextAgent >= state.NumAgents() {
		nextAgent, nextDepth = 0, depthLeft-1
	}

	switch {
	case agent == 0:
		return s.maximize(state, actions, agent, nextAgent, nextDepth, alpha, beta)
	case s.rule == Expectimax:
		return s.expectation(state, actions, agent, nextAgent, nextDepth)
	default:
		return s.minimize(state, actions, agent, nextAgent, nextDepth, alpha, beta)
	}
}

func (s *Searcher[A]) leaf(state GameState[A]) float64 {
	s.stats.Evaluations++
	return s.evaluate(state)
}

// maximize picks the action with strictly greatest value: the first one wins ties.
func (s *Searcher[A]) maximize(state GameState[A], actions []A, agent, nextAgent, nextDepth int,
	alpha, beta float64) (bestValue float64, bestAction A) {
	bestValue, bestAction = math.Inf(-1), actions[0]
	for _, action := range actions {
		value, _ := s.recursion(state.GenerateSuccessor(agent, action), nextAgent, nextDepth, alpha, beta)
		if value > bestValue {
			bestValue, bestAction = value, action
		}
		if s.rule == AlphaBeta {
			if value > beta {
				// A minimizer up in the path already has a better option: it will never let
				// the game get here.
				s.stats.Cutoffs++
				return
			}
			alpha = max(alpha, bestValue)
		}
	}
	return
}

// minimize picks the action with strictly smallest value: the first one wins ties.
func (s *Searcher[A]) minimize(state GameState[A], actions []A, agent, nextAgent, nextDepth int,
	alpha, beta float64) (bestValue float64, bestAction A) {
	bestValue, bestAction = math.Inf(1), actions[0]
	for _, action := range actions {
		value, _ := s.recursion(state.GenerateSuccessor(agent, action), nextAgent, nextDepth, alpha, beta)
		if value < bestValue {
			bestValue, bestAction = value, action
		}
		if s.rule == AlphaBeta {
			if value < alpha {
				// The maximizer up in the path already has a better option.
				s.stats.Cutoffs++
				return
			}
			beta = min(beta, bestValue)
		}
	}
	return
}

// expectation returns the mean value over all actions, as if agent picked one uniformly at random.
// The action returned is always the noop: only the value propagates up.
//
// The mean is a floating point sum in legal actions order, so a different order may change the
// last bits of the value, but nothing else.
func (s *Searcher[A]) expectation(state GameState[A], actions []A, agent, nextAgent, nextDepth int) (float64, A) {
	values := make([]float64, len(actions))
	for ii, action := range actions {
		values[ii], _ = s.recursion(state.GenerateSuccessor(agent, action), nextAgent, nextDepth,
			math.Inf(-1), math.Inf(1))
	}
	return stat.Mean(values, nil), s.noop
}
