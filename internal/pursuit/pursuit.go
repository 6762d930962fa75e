// Package pursuit implements the pursuit game played on a grid.Layout: agent 0 ("pacman")
// eats the food of the maze while agents 1 to N-1 (the ghosts) chase it.
//
// The game is won when all the food is eaten, and lost if a ghost catches pacman.
// Eating a capsule scares the ghosts for ScaredTime moves, during which pacman can
// eat them and send them back home.
//
// States are immutable: every move returns a new State, sharing what didn't change.
// State implements adversarial.GameState, so it can be searched by the adversarial package.
package pursuit

import (
	"fmt"
	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/mazeGo/internal/adversarial"
	"github.com/janpfeifer/mazeGo/internal/grid"
	"github.com/pkg/errors"
	"slices"
	"strings"
)

// Scoring and timing rules.
const (
	TimePenalty   = 1
	FoodScore     = 10
	WinScore      = 500
	LoseScore     = -500
	EatGhostScore = 200
	ScaredTime    = 40
)

// PacmanIndex is the index of the agent that eats and is chased. Every other agent is a ghost.
const PacmanIndex = 0

// AgentState holds the position of one agent.
type AgentState struct {
	Pos grid.Pos

	// Dir of the last move: grid.Stop at the start.
	Dir grid.Direction

	// Scared is the number of moves a ghost remains scared. Always 0 for pacman.
	Scared int
}

// State of a match. Create with NewState, and advance it with Act or GenerateSuccessor.
type State struct {
	layout    *grid.Layout
	agents    []AgentState
	food      []bool // Indexed like layout.Food.
	numFood   int
	capsules  []bool // Indexed like layout.Capsules.
	score     float64
	win, lose bool
	moves     int
}

// Assert State is an adversarial.GameState.
var _ adversarial.GameState[grid.Direction] = (*State)(nil)

// NewState creates the initial state of a game in layout, with all of its ghosts.
func NewState(layout *grid.Layout) *State {
	s, _ := NewStateWithGhosts(layout, len(layout.GhostStarts))
	return s
}

// NewStateWithGhosts creates the initial state of a game in layout, with only the first numGhosts
// ghosts of the layout.
func NewStateWithGhosts(layout *grid.Layout, numGhosts int) (*State, error) {
	if numGhosts < 0 || numGhosts > len(layout.GhostStarts) {
		return nil, errors.Errorf("layout %q has %d ghosts, %d requested", layout.Name, len(layout.GhostStarts), numGhosts)
	}
	s := &State{
		layout:   layout,
		agents:   make([]AgentState, 1+numGhosts),
		food:     make([]bool, len(layout.Food)),
		numFood:  len(layout.Food),
		capsules: make([]bool, len(layout.Capsules)),
	}
	s.agents[PacmanIndex] = AgentState{Pos: layout.PacmanStart, Dir: grid.Stop}
	for ii := range numGhosts {
		s.agents[1+ii] = AgentState{Pos: layout.GhostStarts[ii], Dir: grid.Stop}
	}
	for ii := range s.food {
		s.food[ii] = true
	}
	for ii := range s.capsules {
		s.capsules[ii] = true
	}
	return s, nil
}

// Layout of the game.
func (s *State) Layout() *grid.Layout { return s.layout }

// NumAgents implements adversarial.GameState: pacman plus the ghosts.
func (s *State) NumAgents() int { return len(s.agents) }

// Agent returns the state of the agent with the given index.
func (s *State) Agent(agent int) AgentState { return s.agents[agent] }

// PacmanPos returns the position of pacman.
func (s *State) PacmanPos() grid.Pos { return s.agents[PacmanIndex].Pos }

// GhostPositions returns the positions of the ghosts, in agent order.
func (s *State) GhostPositions() []grid.Pos {
	positions := make([]grid.Pos, len(s.agents)-1)
	for ii, agent := range s.agents[1:] {
		positions[ii] = agent.Pos
	}
	return positions
}

// Score implements adversarial.GameState.
func (s *State) Score() float64 { return s.score }

// IsWin implements adversarial.GameState.
func (s *State) IsWin() bool { return s.win }

// IsLose implements adversarial.GameState.
func (s *State) IsLose() bool { return s.lose }

// IsTerminal returns whether the game is over.
func (s *State) IsTerminal() bool { return s.win || s.lose }

// Moves returns the number of moves (of any agent) played so far.
func (s *State) Moves() int { return s.moves }

// NumFood returns the number of food left.
func (s *State) NumFood() int { return s.numFood }

// HasFood returns whether there is food left at pos.
func (s *State) HasFood(pos grid.Pos) bool {
	idx, found := s.layout.FoodIndex(pos)
	return found && s.food[idx]
}

// FoodPositions returns the positions of the food left, in row-major order.
func (s *State) FoodPositions() []grid.Pos {
	positions := make([]grid.Pos, 0, s.numFood)
	for ii, present := range s.food {
		if present {
			positions = append(positions, s.layout.Food[ii])
		}
	}
	return positions
}

// CapsulePositions returns the positions of the capsules left.
func (s *State) CapsulePositions() []grid.Pos {
	var positions []grid.Pos
	for ii, present := range s.capsules {
		if present {
			positions = append(positions, s.layout.Capsules[ii])
		}
	}
	return positions
}

// LegalActions implements adversarial.GameState. The order is always a subsequence of
// North, South, East, West, Stop.
//
// Pacman can move to any open neighbor, or stop. Ghosts can't stop, and can only reverse
// their last direction if there is no other option. Terminal states have no legal actions.
func (s *State) LegalActions(agent int) []grid.Direction {
	if s.IsTerminal() {
		return nil
	}
	agentState := s.agents[agent]
	dirs := s.layout.LegalDirections(agentState.Pos)
	if agent == PacmanIndex {
		return append(dirs, grid.Stop)
	}
	if len(dirs) == 0 {
		// Ghost walled in.
		return []grid.Direction{grid.Stop}
	}
	if len(dirs) > 1 && agentState.Dir != grid.Stop {
		reverse := agentState.Dir.Reverse()
		dirs = slices.DeleteFunc(dirs, func(dir grid.Direction) bool { return dir == reverse })
	}
	return dirs
}

// Act returns the state after agent moves in direction dir. It returns an error if the
// game is over or the move is not legal.
func (s *State) Act(agent int, dir grid.Direction) (*State, error) {
	if agent < 0 || agent >= len(s.agents) {
		return nil, errors.Errorf("invalid agent %d, game has %d agents", agent, len(s.agents))
	}
	if s.IsTerminal() {
		return nil, errors.Errorf("agent %d can't move %s, game is over", agent, dir)
	}
	if !slices.Contains(s.LegalActions(agent), dir) {
		return nil, errors.Errorf("agent %d can't move %s from %s", agent, dir, s.agents[agent].Pos)
	}

	next := *s
	next.agents = slices.Clone(s.agents)
	next.moves++
	agentState := &next.agents[agent]
	agentState.Pos = agentState.Pos.Move(dir)
	agentState.Dir = dir
	if agent == PacmanIndex {
		next.score -= TimePenalty
		next.consume()
		for ghost := 1; ghost < len(next.agents); ghost++ {
			next.checkCollision(ghost)
		}
	} else {
		agentState.Scared = max(0, agentState.Scared-1)
		next.checkCollision(agent)
	}
	return &next, nil
}

// GenerateSuccessor implements adversarial.GameState. It panics if the move is not legal:
// searchers only generate successors for the legal actions.
func (s *State) GenerateSuccessor(agent int, dir grid.Direction) adversarial.GameState[grid.Direction] {
	next, err := s.Act(agent, dir)
	if err != nil {
		exceptions.Panicf("pursuit.State.GenerateSuccessor: %+v", err)
	}
	return next
}

// consume food or capsule at pacman's position. It must only be called on a fresh copy of the state.
func (s *State) consume() {
	pos := s.PacmanPos()
	if idx, found := s.layout.FoodIndex(pos); found && s.food[idx] {
		s.food = slices.Clone(s.food)
		s.food[idx] = false
		s.numFood--
		s.score += FoodScore
		if s.numFood == 0 && !s.lose {
			s.score += WinScore
			s.win = true
		}
	}
	for idx, capsulePos := range s.layout.Capsules {
		if capsulePos == pos && s.capsules[idx] {
			s.capsules = slices.Clone(s.capsules)
			s.capsules[idx] = false
			for ghost := 1; ghost < len(s.agents); ghost++ {
				s.agents[ghost].Scared = ScaredTime
			}
		}
	}
}

// checkCollision between pacman and the given ghost: either the ghost is eaten, or pacman is.
func (s *State) checkCollision(ghost int) {
	if s.agents[ghost].Pos != s.PacmanPos() {
		return
	}
	if s.agents[ghost].Scared > 0 {
		s.score += EatGhostScore
		s.agents[ghost] = AgentState{Pos: s.layout.GhostStarts[ghost-1], Dir: grid.Stop}
		return
	}
	if !s.win {
		s.score += LoseScore
		s.lose = true
	}
}

// String renders the board and the score.
func (s *State) String() string {
	marks := make(map[grid.Pos]rune)
	for _, pos := range s.FoodPositions() {
		marks[pos] = grid.FoodCell
	}
	for _, pos := range s.CapsulePositions() {
		marks[pos] = grid.CapsuleCell
	}
	for _, agent := range s.agents[1:] {
		if agent.Scared > 0 {
			marks[agent.Pos] = 'g'
		} else {
			marks[agent.Pos] = grid.GhostCell
		}
	}
	marks[s.PacmanPos()] = grid.PacmanCell
	var sb strings.Builder
	sb.WriteString(s.layout.Render(marks))
	fmt.Fprintf(&sb, "score=%g, food=%d, moves=%d", s.score, s.numFood, s.moves)
	if s.win {
		sb.WriteString(", won")
	} else if s.lose {
		sb.WriteString(", lost")
	}
	return sb.String()
}
