package agents

import (
	"fmt"
	"github.com/janpfeifer/mazeGo/internal/adversarial"
	"github.com/janpfeifer/mazeGo/internal/generics"
	"github.com/janpfeifer/mazeGo/internal/grid"
	"github.com/janpfeifer/mazeGo/internal/parameters"
	"github.com/janpfeifer/mazeGo/internal/pursuit"
	"github.com/pkg/errors"
	"time"
)

func init() {
	for _, rule := range []adversarial.Rule{adversarial.Minimax, adversarial.AlphaBeta, adversarial.Expectimax} {
		RegisterModule(moduleNameForRule(rule), func(index int, params parameters.Params) (Agent, error) {
			return newSearchingAgent(rule, index, params)
		})
	}
	RegisterModule("reflex", newReflexAgent)
}

func moduleNameForRule(rule adversarial.Rule) string {
	switch rule {
	case adversarial.AlphaBeta:
		return "alphabeta"
	case adversarial.Expectimax:
		return "expectimax"
	}
	return "minimax"
}

// SearchingAgent plays pacman by searching the game tree with an adversarial.Searcher.
//
// Parameters:
//
//   - depth: number of plies to search, where each ply is a move by every agent. Default is
//     adversarial.DefaultMaxDepth.
//   - eval: name of the evaluation function in pursuit.Evaluations. Default is "score".
//   - max_time: if set (e.g. "200ms"), deepens the search iteratively up to depth until this
//     time per move has elapsed (see adversarial.Searcher.WithMaxTime). Default is 0, no time limit.
type SearchingAgent struct {
	searcher *adversarial.Searcher[grid.Direction]
	evalName string
}

func newSearchingAgent(rule adversarial.Rule, index int, params parameters.Params) (Agent, error) {
	moduleName := moduleNameForRule(rule)
	if err := requirePacman(moduleName, index); err != nil {
		return nil, err
	}
	depth, err := parameters.PopParamOr(params, "depth", adversarial.DefaultMaxDepth)
	if err != nil {
		return nil, err
	}
	if depth < 0 {
		return nil, errors.Errorf("agent %q: depth must be >= 0, got %d", moduleName, depth)
	}
	evalName, err := parameters.PopParamOr(params, "eval", adversarial.ScoreEvaluationName)
	if err != nil {
		return nil, err
	}
	eval, err := pursuit.Evaluations.Lookup(evalName)
	if err != nil {
		return nil, err
	}
	maxTime, err := parameters.PopParamOr(params, "max_time", time.Duration(0))
	if err != nil {
		return nil, err
	}
	if maxTime < 0 {
		return nil, errors.Errorf("agent %q: max_time must be >= 0, got %s", moduleName, maxTime)
	}
	searcher := adversarial.New[grid.Direction](rule).
		WithMaxDepth(depth).
		WithMaxTime(maxTime).
		WithEvaluation(eval).
		WithNoop(grid.Stop)
	return &SearchingAgent{searcher: searcher, evalName: evalName}, nil
}

// Act implements Agent.
func (a *SearchingAgent) Act(state *pursuit.State) grid.Direction {
	action, _ := a.searcher.Search(state)
	return action
}

// LastStats returns the statistics of the last search.
func (a *SearchingAgent) LastStats() adversarial.Stats {
	return a.searcher.LastStats()
}

// String implements Agent.
func (a *SearchingAgent) String() string {
	if maxTime := a.searcher.MaxTime(); maxTime > 0 {
		return fmt.Sprintf("%s(depth=%d, max_time=%s, eval=%s)",
			a.searcher.Rule(), a.searcher.MaxDepth(), maxTime, a.evalName)
	}
	return fmt.Sprintf("%s(depth=%d, eval=%s)", a.searcher.Rule(), a.searcher.MaxDepth(), a.evalName)
}

// ReflexAgent plays pacman by looking only one move ahead: it picks the move whose successor
// state evaluates best, the first one in case of ties.
//
// Parameters:
//
//   - eval: name of the evaluation function in pursuit.Evaluations. Default is "reflex".
type ReflexAgent struct {
	eval     adversarial.EvaluationFunc[grid.Direction]
	evalName string
}

func newReflexAgent(index int, params parameters.Params) (Agent, error) {
	if err := requirePacman("reflex", index); err != nil {
		return nil, err
	}
	evalName, err := parameters.PopParamOr(params, "eval", pursuit.ReflexEvaluationName)
	if err != nil {
		return nil, err
	}
	eval, err := pursuit.Evaluations.Lookup(evalName)
	if err != nil {
		return nil, err
	}
	return &ReflexAgent{eval: eval, evalName: evalName}, nil
}

// Act implements Agent.
func (a *ReflexAgent) Act(state *pursuit.State) grid.Direction {
	actions := state.LegalActions(pursuit.PacmanIndex)
	idx, _ := generics.ArgMin(actions, func(dir grid.Direction) float64 {
		return -a.eval(state.GenerateSuccessor(pursuit.PacmanIndex, dir))
	})
	if idx < 0 {
		return grid.Stop
	}
	return actions[idx]
}

// String implements Agent.
func (a *ReflexAgent) String() string {
	return fmt.Sprintf("Reflex(eval=%s)", a.evalName)
}
