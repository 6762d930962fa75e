// Package adversarial implements depth-limited game-tree search for turn-based multi-agent
// games: minimax, minimax with alpha-beta pruning, and expectimax.
//
// Agent 0 is always the maximizing agent. Agents 1 to N-1 are adversaries (minimizers for
// Minimax and AlphaBeta, uniformly random chance agents for Expectimax) that move in increasing
// index order after agent 0. One ply is one move by every agent, so the depth of the recursion
// is bounded by maxDepth * numAgents.
//
// The search is a pure recursive evaluation: no tree is kept in memory.
package adversarial

import (
	"fmt"
	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/mazeGo/internal/generics"
	"github.com/pkg/errors"
	"slices"
	"strings"
)

// GameState is the interface a game must implement to be searched.
//
// States are immutable: GenerateSuccessor returns a new state.
type GameState[A any] interface {
	// LegalActions for the given agent. The order is the tie-break order of the search:
	// among equally valued actions, the first one is returned.
	LegalActions(agent int) []A

	// GenerateSuccessor returns the state after agent takes action.
	GenerateSuccessor(agent int, action A) GameState[A]

	// NumAgents in the game, including the maximizing agent 0.
	NumAgents() int

	// IsWin and IsLose report terminal states (from agent 0 perspective).
	IsWin() bool
	IsLose() bool

	// Score is the game score, used by ScoreEvaluation.
	Score() float64
}

// EvaluationFunc scores a state from the maximizing agent's perspective: higher is better.
type EvaluationFunc[A any] func(state GameState[A]) float64

// ScoreEvaluation simply returns the game score of the state.
func ScoreEvaluation[A any](state GameState[A]) float64 {
	return state.Score()
}

// ScoreEvaluationName is the name under which ScoreEvaluation is registered in every Evaluations.
const ScoreEvaluationName = "score"

// Rule is the decision rule used for the adversaries.
type Rule int

const (
	// Minimax assumes adversaries play the move worst for agent 0.
	Minimax Rule = iota

	// AlphaBeta is Minimax with alpha-beta pruning: same results, fewer nodes visited.
	AlphaBeta

	// Expectimax assumes adversaries choose uniformly at random among their legal actions.
	Expectimax
)

var ruleNames = [...]string{"Minimax", "AlphaBeta", "Expectimax"}

// String implements fmt.Stringer.
func (r Rule) String() string {
	if r < 0 || int(r) >= len(ruleNames) {
		return fmt.Sprintf("Rule(%d)", int(r))
	}
	return ruleNames[r]
}

// ParseRule from its name, case-insensitive. "ab" is accepted for AlphaBeta.
func ParseRule(name string) (Rule, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "ab" {
		return AlphaBeta, nil
	}
	for ii, ruleName := range ruleNames {
		if strings.ToLower(ruleName) == name {
			return Rule(ii), nil
		}
	}
	return Minimax, errors.Errorf("unknown adversarial search rule %q, valid values are minimax, alphabeta or expectimax", name)
}

// Evaluations is a registry of evaluation functions selectable by name.
//
// Registration is expected to happen during initialization: it is not safe for concurrent
// registration and lookups.
type Evaluations[A any] struct {
	byName map[string]EvaluationFunc[A]
}

// NewEvaluations returns a registry with ScoreEvaluation already registered as "score".
func NewEvaluations[A any]() *Evaluations[A] {
	es := &Evaluations[A]{byName: make(map[string]EvaluationFunc[A])}
	return es.Register(ScoreEvaluationName, ScoreEvaluation[A])
}

// Register evaluation under name. It panics if the name is taken or fn is nil.
func (es *Evaluations[A]) Register(name string, fn EvaluationFunc[A]) *Evaluations[A] {
	if fn == nil {
		exceptions.Panicf("adversarial.Evaluations: registering nil evaluation function %q", name)
	}
	if _, found := es.byName[name]; found {
		exceptions.Panicf("adversarial.Evaluations: evaluation function %q registered twice", name)
	}
	es.byName[name] = fn
	return es
}

// Lookup returns the evaluation function registered under name.
func (es *Evaluations[A]) Lookup(name string) (EvaluationFunc[A], error) {
	fn, found := es.byName[name]
	if !found {
		return nil, errors.Errorf("unknown evaluation function %q, valid values are %q", name, es.Names())
	}
	return fn, nil
}

// Names of the registered evaluation functions, sorted.
func (es *Evaluations[A]) Names() []string {
	return slices.Collect(generics.SortedKeys(es.byName))
}
