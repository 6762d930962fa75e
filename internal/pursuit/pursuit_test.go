package pursuit

import (
	"github.com/janpfeifer/mazeGo/internal/adversarial"
	"github.com/janpfeifer/mazeGo/internal/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
)

func newLayout(t *testing.T, rows ...string) *grid.Layout {
	layout, err := grid.NewLayout(t.Name(), rows...)
	require.NoError(t, err)
	return layout
}

func act(t *testing.T, s *State, agent int, dir grid.Direction) *State {
	next, err := s.Act(agent, dir)
	require.NoError(t, err)
	return next
}

func TestCapsuleAndWin(t *testing.T) {
	layout := newLayout(t,
		"%%%%%%%",
		"%P.o.G%",
		"%%%%%%%")
	s := NewState(layout)
	assert.Equal(t, 2, s.NumAgents())
	assert.Equal(t, 2, s.NumFood())
	assert.Equal(t, []grid.Direction{grid.East, grid.Stop}, s.LegalActions(PacmanIndex))
	assert.Equal(t, []grid.Direction{grid.West}, s.LegalActions(1))

	s = act(t, s, PacmanIndex, grid.East)
	assert.Equal(t, 9.0, s.Score(), "food minus time penalty")
	assert.Equal(t, 1, s.NumFood())
	assert.False(t, s.HasFood(grid.Pos{X: 2, Y: 1}))
	assert.True(t, s.HasFood(grid.Pos{X: 4, Y: 1}))

	s = act(t, s, 1, grid.West)
	assert.Equal(t, []grid.Direction{grid.West}, s.LegalActions(1), "ghosts don't reverse")

	s = act(t, s, PacmanIndex, grid.East)
	assert.Equal(t, 8.0, s.Score())
	assert.Empty(t, s.CapsulePositions())
	assert.Equal(t, ScaredTime, s.Agent(1).Scared)

	// The scared ghost runs into pacman: it's eaten and goes back home.
	s = act(t, s, 1, grid.West)
	assert.Equal(t, 208.0, s.Score())
	assert.Equal(t, AgentState{Pos: grid.Pos{X: 5, Y: 1}, Dir: grid.Stop}, s.Agent(1))
	assert.False(t, s.IsTerminal())

	s = act(t, s, PacmanIndex, grid.East)
	assert.True(t, s.IsWin())
	assert.False(t, s.IsLose())
	assert.Equal(t, 717.0, s.Score())
	assert.Equal(t, 5, s.Moves())
	assert.Nil(t, s.LegalActions(PacmanIndex))
	assert.Nil(t, s.LegalActions(1))
}

func TestCaught(t *testing.T) {
	layout := newLayout(t,
		"%%%%%%",
		"%P G.%",
		"%%%%%%")
	initial := NewState(layout)
	s := act(t, initial, PacmanIndex, grid.East)
	s = act(t, s, 1, grid.West)
	assert.True(t, s.IsLose())
	assert.Equal(t, -501.0, s.Score())
	assert.Contains(t, s.String(), "lost")

	_, err := s.Act(PacmanIndex, grid.West)
	assert.Error(t, err, "game is over")
	assert.Panics(t, func() { s.GenerateSuccessor(PacmanIndex, grid.West) })

	// The initial state is unchanged.
	assert.Equal(t, 0.0, initial.Score())
	assert.Equal(t, layout.PacmanStart, initial.PacmanPos())
	assert.Equal(t, []grid.Pos{{X: 3, Y: 1}}, initial.GhostPositions())
	assert.Equal(t, 0, initial.Moves())
}

func TestIllegalMoves(t *testing.T) {
	layout := newLayout(t,
		"%%%%%%%",
		"%P. G %",
		"%%%%%%%")
	s := NewState(layout)
	_, err := s.Act(PacmanIndex, grid.North)
	assert.Error(t, err)
	_, err = s.Act(1, grid.Stop)
	assert.Error(t, err, "ghosts can't stop")
	_, err = s.Act(2, grid.East)
	assert.Error(t, err)
	assert.Panics(t, func() { s.GenerateSuccessor(PacmanIndex, grid.West) })

	// At the dead-end the ghost is forced to reverse.
	assert.Equal(t, []grid.Direction{grid.East, grid.West}, s.LegalActions(1))
	s = act(t, s, 1, grid.East)
	assert.Equal(t, []grid.Direction{grid.West}, s.LegalActions(1))

	// Pacman can stop: it still pays the time penalty.
	s = act(t, s, PacmanIndex, grid.Stop)
	assert.Equal(t, -1.0, s.Score())
	assert.Equal(t, layout.PacmanStart, s.PacmanPos())
}

func TestNewStateWithGhosts(t *testing.T) {
	layout, err := grid.LoadLayout("minimax")
	require.NoError(t, err)
	s, err := NewStateWithGhosts(layout, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, s.NumAgents())
	assert.Equal(t, []grid.Pos{layout.GhostStarts[0]}, s.GhostPositions())
	_, err = NewStateWithGhosts(layout, 4)
	assert.Error(t, err)
	assert.Equal(t, 4, NewState(layout).NumAgents())

	// Rendering the initial state gives back the layout.
	rendered := NewState(layout).String()
	assert.True(t, strings.HasPrefix(rendered, layout.Render(layout.InitialMarks())))
	assert.True(t, strings.HasSuffix(rendered, "score=0, food=2, moves=0"))
}

func TestEvaluations(t *testing.T) {
	layout := newLayout(t,
		"%%%%%%%",
		"%P.o.G%",
		"%%%%%%%")
	s := NewState(layout)
	assert.Equal(t, []string{"better", "reflex", "score"}, Evaluations.Names())

	reflex, err := Evaluations.Lookup(ReflexEvaluationName)
	require.NoError(t, err)
	better, err := Evaluations.Lookup(BetterEvaluationName)
	require.NoError(t, err)
	// Ghost at distance 4, food at distance 1: both agree while no ghost is scared.
	assert.InDelta(t, -7.0/5.0-1.0/3.0, reflex(s), 1e-9)
	assert.InDelta(t, -7.0/5.0-1.0/3.0, better(s), 1e-9)

	// After eating the capsule scared ghosts are not a threat for reflex, and a bonus for better.
	s = act(t, act(t, s, PacmanIndex, grid.East), PacmanIndex, grid.East)
	assert.InDelta(t, 8.0-1.0/3.0, reflex(s), 1e-9)
	assert.InDelta(t, 8.0+7.0/9.0-1.0/3.0, better(s), 1e-9)

	score, err := Evaluations.Lookup(adversarial.ScoreEvaluationName)
	require.NoError(t, err)
	assert.Equal(t, 8.0, score(s))
}

func TestSearchingTheGame(t *testing.T) {
	layout, err := grid.LoadLayout("minimax")
	require.NoError(t, err)
	s := NewState(layout)
	for depth := range 3 {
		minimax := adversarial.NewMinimax[grid.Direction]().WithMaxDepth(depth).WithNoop(grid.Stop)
		alphaBeta := adversarial.NewAlphaBeta[grid.Direction]().WithMaxDepth(depth).WithNoop(grid.Stop)
		action, value := minimax.Search(s)
		abAction, abValue := alphaBeta.Search(s)
		assert.Equal(t, action, abAction, "depth=%d", depth)
		assert.Equal(t, value, abValue, "depth=%d", depth)
		assert.LessOrEqual(t, alphaBeta.LastStats().Nodes, minimax.LastStats().Nodes)
		if depth > 0 {
			assert.Contains(t, s.LegalActions(PacmanIndex), action)
		}
	}
}
