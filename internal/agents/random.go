package agents

import (
	"fmt"
	"github.com/janpfeifer/mazeGo/internal/grid"
	"github.com/janpfeifer/mazeGo/internal/parameters"
	"github.com/janpfeifer/mazeGo/internal/pursuit"
	"github.com/pkg/errors"
	"math/rand/v2"
)

func init() {
	RegisterModule("random", newRandomAgent)
	RegisterModule("directional", newDirectionalAgent)
}

// newRNG returns a random number generator from the "seed" parameter, or randomly seeded if
// seed < 0 (the default). The agent index is mixed in, so ghosts sharing a configuration
// don't move in lockstep.
func newRNG(index int, params parameters.Params) (*rand.Rand, int, error) {
	seed, err := parameters.PopParamOr(params, "seed", -1)
	if err != nil {
		return nil, 0, err
	}
	if seed < 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), seed, nil
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(index))), seed, nil
}

// RandomAgent moves uniformly at random among its legal moves. It can play as pacman or as a ghost.
//
// Parameters:
//
//   - seed: seed of the random number generator. If < 0 (default) it is seeded randomly.
type RandomAgent struct {
	index int
	seed  int
	rng   *rand.Rand
}

func newRandomAgent(index int, params parameters.Params) (Agent, error) {
	rng, seed, err := newRNG(index, params)
	if err != nil {
		return nil, err
	}
	return &RandomAgent{index: index, seed: seed, rng: rng}, nil
}

// Act implements Agent.
func (a *RandomAgent) Act(state *pursuit.State) grid.Direction {
	actions := state.LegalActions(a.index)
	if len(actions) == 0 {
		return grid.Stop
	}
	return actions[a.rng.IntN(len(actions))]
}

// String implements Agent.
func (a *RandomAgent) String() string {
	return fmt.Sprintf("Random(seed=%d)", a.seed)
}

// DirectionalAgent is a ghost that, with probability prob, takes one of the moves that gets it closest
// to pacman (or farthest, if scared). Otherwise, it moves uniformly at random.
//
// Parameters:
//
//   - prob: probability of taking the best move. Default is 0.8.
//   - seed: seed of the random number generator. If < 0 (default) it is seeded randomly.
type DirectionalAgent struct {
	index int
	prob  float64
	seed  int
	rng   *rand.Rand
}

func newDirectionalAgent(index int, params parameters.Params) (Agent, error) {
	if err := requireGhost("directional", index); err != nil {
		return nil, err
	}
	prob, err := parameters.PopParamOr(params, "prob", 0.8)
	if err != nil {
		return nil, err
	}
	if prob < 0 || prob > 1 {
		return nil, errors.Errorf("directional agent: prob must be in [0, 1], got %g", prob)
	}
	rng, seed, err := newRNG(index, params)
	if err != nil {
		return nil, err
	}
	return &DirectionalAgent{index: index, prob: prob, seed: seed, rng: rng}, nil
}

// Act implements Agent.
func (a *DirectionalAgent) Act(state *pursuit.State) grid.Direction {
	actions := state.LegalActions(a.index)
	if len(actions) == 0 {
		return grid.Stop
	}
	if a.rng.Float64() >= a.prob {
		return actions[a.rng.IntN(len(actions))]
	}
	best := a.bestActions(state, actions)
	return best[a.rng.IntN(len(best))]
}

// bestActions returns the actions that lead closest to pacman, or farthest if the ghost is scared.
func (a *DirectionalAgent) bestActions(state *pursuit.State, actions []grid.Direction) (best []grid.Direction) {
	ghost := state.Agent(a.index)
	sign := 1
	if ghost.Scared > 0 {
		sign = -1
	}
	bestDistance := 0
	for _, dir := range actions {
		distance := sign * grid.ManhattanDistance(ghost.Pos.Move(dir), state.PacmanPos())
		if len(best) == 0 || distance < bestDistance {
			best, bestDistance = []grid.Direction{dir}, distance
		} else if distance == bestDistance {
			best = append(best, dir)
		}
	}
	return
}

// String implements Agent.
func (a *DirectionalAgent) String() string {
	return fmt.Sprintf("Directional(prob=%g, seed=%d)", a.prob, a.seed)
}
