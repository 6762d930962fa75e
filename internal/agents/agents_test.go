package agents

import (
	"context"
	"github.com/janpfeifer/mazeGo/internal/grid"
	"github.com/janpfeifer/mazeGo/internal/pursuit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func newState(t *testing.T, rows ...string) *pursuit.State {
	layout, err := grid.NewLayout(t.Name(), rows...)
	require.NoError(t, err)
	return pursuit.NewState(layout)
}

func TestNew(t *testing.T) {
	assert.Equal(t, []string{"alphabeta", "directional", "expectimax", "minimax", "random", "reflex"}, ModuleNames())

	agent, err := New("alphabeta:depth=3,eval=better", pursuit.PacmanIndex)
	require.NoError(t, err)
	assert.Equal(t, "AlphaBeta(depth=3, eval=better)", agent.String())

	agent, err = New("", pursuit.PacmanIndex)
	require.NoError(t, err)
	assert.Equal(t, "AlphaBeta(depth=2, eval=better)", agent.String())
	agent, err = New("", 1)
	require.NoError(t, err)
	assert.IsType(t, &RandomAgent{}, agent)

	agent, err = New("expectimax", pursuit.PacmanIndex)
	require.NoError(t, err)
	assert.Equal(t, "Expectimax(depth=2, eval=score)", agent.String())

	agent, err = New("alphabeta:depth=4,max_time=250ms", pursuit.PacmanIndex)
	require.NoError(t, err)
	assert.Equal(t, "AlphaBeta(depth=4, max_time=250ms, eval=score)", agent.String())

	agent, err = New("directional:prob=0.5,seed=3", 2)
	require.NoError(t, err)
	assert.Equal(t, "Directional(prob=0.5, seed=3)", agent.String())

	for _, tc := range []struct {
		config string
		index  int
	}{
		{"mcts", 0},                  // Unknown module.
		{"alphabeta:depht=3", 0},     // Unknown parameter.
		{"minimax:depth=two", 0},     // Malformed value.
		{"minimax:depth=-1", 0},      // Invalid value.
		{"minimax:eval=magic", 0},    // Unknown evaluation.
		{"minimax:max_time=soon", 0}, // Malformed duration.
		{"minimax:max_time=-1s", 0},  // Negative duration.
		{"minimax", 1},               // Searching agents only play pacman.
		{"reflex", 2},                // Reflex agent only plays pacman.
		{"directional", 0},           // Directional agent only plays ghosts.
		{"directional:prob=1.5", 1},  // Invalid probability.
		{"random:seed=x", 1},         // Malformed seed.
	} {
		_, err := New(tc.config, tc.index)
		assert.Error(t, err, "config %q for index %d", tc.config, tc.index)
	}

	players, err := NewPlayers("reflex", "random:seed=1", 2)
	require.NoError(t, err)
	require.Len(t, players, 3)
	assert.NotSame(t, players[1], players[2], "each ghost gets its own agent")
}

func TestReflexAgent(t *testing.T) {
	s := newState(t,
		"%%%%%",
		"% P.%",
		"%%%%%")
	agent, err := New("reflex", pursuit.PacmanIndex)
	require.NoError(t, err)
	assert.Equal(t, grid.East, agent.Act(s))
	assert.Equal(t, "Reflex(eval=reflex)", agent.String())
}

func TestRandomAgents(t *testing.T) {
	s := newState(t,
		"%%%%%%",
		"%    %",
		"%Po G%",
		"%%%%%%")
	random1, err := New("random:seed=7", 1)
	require.NoError(t, err)
	random2, err := New("random:seed=7", 1)
	require.NoError(t, err)
	for range 10 {
		dir := random1.Act(s)
		assert.Contains(t, s.LegalActions(1), dir)
		assert.Equal(t, dir, random2.Act(s), "same seed, same moves")
	}

	// Directional ghost with prob=1 always approaches pacman.
	directional, err := New("directional:prob=1,seed=1", 1)
	require.NoError(t, err)
	assert.Equal(t, []grid.Direction{grid.North, grid.West}, s.LegalActions(1))
	for range 10 {
		assert.Equal(t, grid.West, directional.Act(s))
	}

	// Once scared, it runs away.
	scared, err := s.Act(pursuit.PacmanIndex, grid.East)
	require.NoError(t, err)
	require.Equal(t, pursuit.ScaredTime, scared.Agent(1).Scared)
	for range 10 {
		assert.Equal(t, grid.North, directional.Act(scared))
	}
}

// constantAgent always plays the same direction, legal or not.
type constantAgent grid.Direction

func (a constantAgent) Act(*pursuit.State) grid.Direction { return grid.Direction(a) }
func (a constantAgent) String() string                    { return "Constant(" + grid.Direction(a).String() + ")" }

func TestPlay(t *testing.T) {
	corridor := []string{
		"%%%%%%",
		"%P...%",
		"%%%%%%",
	}
	for _, config := range []string{"minimax:depth=1", "alphabeta:depth=1,eval=better", "expectimax:depth=2", "reflex",
		"alphabeta:depth=3,max_time=1ns"} {
		players, err := NewPlayers(config, "", 0)
		require.NoError(t, err)
		result, err := Play(context.Background(), "corridor", newState(t, corridor...), players, 100)
		require.NoError(t, err)
		assert.True(t, result.Win, config)
		assert.Equal(t, 3, result.Rounds, config)
		assert.Equal(t, 3.0*(pursuit.FoodScore-pursuit.TimePenalty)+pursuit.WinScore, result.Score, config)
	}

	// Round limit.
	result, err := Play(context.Background(), "stopped", newState(t, corridor...), []Agent{constantAgent(grid.Stop)}, 5)
	require.NoError(t, err)
	assert.False(t, result.Win || result.Lose)
	assert.Equal(t, 5, result.Rounds)
	assert.Equal(t, -5.0, result.Score)
	assert.Contains(t, result.String(), "draw")

	// Illegal move.
	_, err = Play(context.Background(), "illegal", newState(t, corridor...), []Agent{constantAgent(grid.North)}, 5)
	assert.Error(t, err)

	// Wrong number of players.
	_, err = Play(context.Background(), "crowded", newState(t, corridor...), []Agent{constantAgent(grid.Stop), constantAgent(grid.Stop)}, 5)
	assert.Error(t, err)

	// Cancelled context.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result, err = Play(ctx, "cancelled", newState(t, corridor...), []Agent{constantAgent(grid.Stop)}, 0)
	require.NoError(t, err)
	assert.True(t, result.Interrupted)
	assert.Equal(t, 0, result.Rounds)
}

func TestPlayWithGhosts(t *testing.T) {
	layout, err := grid.LoadLayout("minimax")
	require.NoError(t, err)
	initial := pursuit.NewState(layout)
	players, err := NewPlayers("alphabeta:depth=2,eval=better", "random:seed=42", len(layout.GhostStarts))
	require.NoError(t, err)
	result, err := Play(context.Background(), "minimax", initial, players, 50)
	require.NoError(t, err)
	assert.True(t, result.Win || result.Lose || result.Rounds == 50)
	assert.LessOrEqual(t, result.Rounds, 50)
}

func TestPlayObserved(t *testing.T) {
	var scores []float64
	result, err := PlayObserved(context.Background(), "observed", newState(t, "%%%%%", "%P..%", "%%%%%"),
		[]Agent{constantAgent(grid.East)}, 0, func(round int, state *pursuit.State) {
			assert.Equal(t, len(scores)+1, round)
			scores = append(scores, state.Score())
		})
	require.NoError(t, err)
	assert.True(t, result.Win)
	assert.Equal(t, []float64{9, 18 + pursuit.WinScore}, scores)
}
