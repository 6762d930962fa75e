package pursuit

import (
	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/mazeGo/internal/adversarial"
	"github.com/janpfeifer/mazeGo/internal/grid"
	"math"
)

// Names under which the evaluations are registered in Evaluations.
const (
	ReflexEvaluationName = "reflex"
	BetterEvaluationName = "better"
)

// Evaluations available to the searching agents, by name: "score" (adversarial.ScoreEvaluation),
// "reflex" (ReflexEvaluation) and "better" (BetterEvaluation).
var Evaluations = adversarial.NewEvaluations[grid.Direction]().
	Register(ReflexEvaluationName, ReflexEvaluation).
	Register(BetterEvaluationName, BetterEvaluation)

// Weights of ReflexEvaluation and BetterEvaluation.
const (
	GhostDistanceWeight = 7.0
	FoodDistanceWeight  = 1.0 / 3.0

	// ScaredGhostDistance replaces the nearest ghost distance in BetterEvaluation once any
	// ghost is scared: it turns the ghost penalty into a bonus of 7/9.
	ScaredGhostDistance = -10.0
)

func asState(gameState adversarial.GameState[grid.Direction]) *State {
	s, ok := gameState.(*State)
	if !ok {
		exceptions.Panicf("pursuit evaluations require a *pursuit.State, got %T", gameState)
	}
	return s
}

// nearestFood returns the Manhattan distance from pacman to the nearest food, or 0 if there is none left.
func (s *State) nearestFood() float64 {
	if s.NumFood() == 0 {
		return 0
	}
	pacman := s.PacmanPos()
	nearest := math.Inf(1)
	for _, pos := range s.FoodPositions() {
		nearest = min(nearest, float64(grid.ManhattanDistance(pacman, pos)))
	}
	return nearest
}

// nearestActiveGhost returns the Manhattan distance from pacman to the nearest non-scared ghost,
// +Inf if there is none, and whether any ghost is scared.
func (s *State) nearestActiveGhost() (nearest float64, anyScared bool) {
	pacman := s.PacmanPos()
	nearest = math.Inf(1)
	for ghost := 1; ghost < s.NumAgents(); ghost++ {
		agent := s.Agent(ghost)
		if agent.Scared > 0 {
			anyScared = true
			continue
		}
		nearest = min(nearest, float64(grid.ManhattanDistance(pacman, agent.Pos)))
	}
	return
}

// ReflexEvaluation improves on the score by penalizing being close to an active ghost, and being
// far from the food:
//
//	score - 7/(distance to the nearest non-scared ghost + 1) - (distance to the nearest food)/3
//
// Distances are Manhattan distances, ignoring walls.
func ReflexEvaluation(gameState adversarial.GameState[grid.Direction]) float64 {
	s := asState(gameState)
	nearestGhost, _ := s.nearestActiveGhost()
	return s.Score() - GhostDistanceWeight/(nearestGhost+1) - s.nearestFood()*FoodDistanceWeight
}

// BetterEvaluation is ReflexEvaluation with an incentive to hunt: while any ghost is scared the
// ghost distance is taken to be ScaredGhostDistance, so the ghost term becomes a bonus of 7/9
// instead of a penalty.
func BetterEvaluation(gameState adversarial.GameState[grid.Direction]) float64 {
	s := asState(gameState)
	nearestGhost, anyScared := s.nearestActiveGhost()
	if anyScared {
		nearestGhost = ScaredGhostDistance
	}
	return s.Score() - GhostDistanceWeight/(nearestGhost+1) - s.nearestFood()*FoodDistanceWeight
}
