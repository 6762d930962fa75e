package grid

import (
	"github.com/janpfeifer/mazeGo/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
)

func TestDirections(t *testing.T) {
	pos := Pos{3, 3}
	assert.Equal(t, Pos{3, 2}, pos.Move(North))
	assert.Equal(t, Pos{3, 4}, pos.Move(South))
	assert.Equal(t, Pos{4, 3}, pos.Move(East))
	assert.Equal(t, Pos{2, 3}, pos.Move(West))
	assert.Equal(t, pos, pos.Move(Stop))
	for _, dir := range Directions {
		assert.Equal(t, pos, pos.Move(dir).Move(dir.Reverse()), dir.String())
	}
	assert.Equal(t, Stop, Stop.Reverse())
	assert.Equal(t, "West", West.String())
	assert.Equal(t, "Direction(9)", Direction(9).String())
	assert.Equal(t, "(3, 3)", pos.String())
}

func TestDistances(t *testing.T) {
	assert.Equal(t, 7, ManhattanDistance(Pos{1, 1}, Pos{4, 5}))
	assert.Equal(t, 5.0, EuclideanDistance(Pos{1, 1}, Pos{4, 5}))
	assert.Equal(t, 2.5, Manhattan(0.5, 0.0, -1.0, 1.0))
}

func TestNewLayout(t *testing.T) {
	l, err := NewLayout("test",
		"%%%%%",
		"%P.G%",
		"%o% %",
		"%%%%%")
	require.NoError(t, err)
	assert.Equal(t, 5, l.Width)
	assert.Equal(t, 4, l.Height)
	assert.Equal(t, Pos{1, 1}, l.PacmanStart)
	assert.Equal(t, []Pos{{3, 1}}, l.GhostStarts)
	assert.Equal(t, []Pos{{2, 1}}, l.Food)
	assert.Equal(t, []Pos{{1, 2}}, l.Capsules)
	assert.Equal(t, 5, l.NumOpenCells())
	idx, found := l.FoodIndex(Pos{2, 1})
	assert.True(t, found)
	assert.Equal(t, 0, idx)
	_, found = l.FoodIndex(Pos{1, 1})
	assert.False(t, found)

	assert.True(t, l.IsWall(Pos{0, 0}))
	assert.True(t, l.IsWall(Pos{-1, 1}))
	assert.True(t, l.IsWall(Pos{1, 10}))
	assert.False(t, l.IsWall(Pos{3, 2}))
	assert.Equal(t, []Direction{South, East}, l.LegalDirections(Pos{1, 1}))
	assert.Equal(t, []Pos{{3, 2}, {2, 1}}, l.Neighbors(Pos{3, 1}))

	for name, rows := range map[string][]string{
		"no rows":      nil,
		"ragged":       {"%%%", "%P%%", "%%%"},
		"no pacman":    {"%%%", "%.%", "%%%"},
		"two pacmen":   {"%%%%", "%PP%", "%%%%"},
		"unknown cell": {"%%%", "%P#", "%%%"},
	} {
		_, err := NewLayout(name, rows...)
		assert.Error(t, err, name)
	}
}

func TestBuiltinLayouts(t *testing.T) {
	names := LayoutNames()
	assert.Equal(t, []string{"medium", "minimax", "openclassic", "small", "tiny", "tinysearch", "trickyclassic"}, names)
	for _, name := range names {
		l, err := LoadLayout(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, l.Name)

		// Rendering with the initial marks reproduces the layout.
		want := strings.Join(builtinLayouts[name], "\n") + "\n"
		assert.Equal(t, want, l.Render(l.InitialMarks()), name)
	}
	_, err := LoadLayout("huge")
	assert.Error(t, err)
}

func TestPositionProblem(t *testing.T) {
	testCases := []struct {
		layout                 string
		cost                   float64
		ucsExpanded, aExpanded int
	}{
		{"tiny", 8, 15, 14},
		{"small", 19, 92, 53},
		{"medium", 59, 121, 116},
	}
	heuristics := PositionHeuristics()
	manhattan, err := heuristics.Lookup(ManhattanHeuristicName)
	require.NoError(t, err)
	euclidean, err := heuristics.Lookup(EuclideanHeuristicName)
	require.NoError(t, err)

	for _, tc := range testCases {
		t.Run(tc.layout, func(t *testing.T) {
			l, err := LoadLayout(tc.layout)
			require.NoError(t, err)
			for _, strategy := range []search.Strategy{search.DepthFirst, search.BreadthFirst, search.UniformCost} {
				p, err := NewPositionProblemToFood(l)
				require.NoError(t, err)
				result := search.Run[Pos, Direction](p, strategy, nil)
				require.True(t, result.Found)
				assert.Equal(t, result.Cost, p.CostOfActions(result.Actions))
				if strategy != search.DepthFirst {
					assert.Equal(t, tc.cost, result.Cost, strategy.String())
				}
				if strategy == search.UniformCost {
					assert.Equal(t, tc.ucsExpanded, result.Stats.Expanded)
					count, visited := p.Expanded()
					assert.Equal(t, tc.ucsExpanded, count)
					assert.Equal(t, l.PacmanStart, visited[0])
				}
			}

			p, _ := NewPositionProblemToFood(l)
			result := search.Run[Pos, Direction](p, search.AStar, manhattan)
			assert.Equal(t, tc.cost, result.Cost)
			assert.Equal(t, tc.aExpanded, result.Stats.Expanded)

			p, _ = NewPositionProblemToFood(l)
			result = search.Run[Pos, Direction](p, search.AStar, euclidean)
			assert.Equal(t, tc.cost, result.Cost)
			assert.LessOrEqual(t, result.Stats.Expanded, tc.ucsExpanded)
		})
	}
}

func TestPositionProblemCosts(t *testing.T) {
	l, err := LoadLayout("tiny")
	require.NoError(t, err)
	p := NewPositionProblem(l, Pos{5, 1}, Pos{5, 3})
	assert.Equal(t, 2.0, p.CostOfActions([]Direction{South, South}))
	assert.Equal(t, float64(IllegalCost), p.CostOfActions([]Direction{East}))
	assert.Equal(t, 0.0, p.CostOfActions(nil))

	// Stepping into the left half of the maze is expensive: the search avoids it if possible.
	p = NewPositionProblem(l, l.PacmanStart, l.Food[0]).WithCostFn(func(pos Pos) float64 {
		if pos.X < 3 {
			return 10
		}
		return 1
	})
	result := search.Run[Pos, Direction](p, search.UniformCost, nil)
	require.True(t, result.Found)
	assert.Equal(t, p.CostOfActions(result.Actions), result.Cost)
	assert.Equal(t, result.Cost, search.Run[Pos, Direction](p, search.AStar, ManhattanHeuristic).Cost,
		"Manhattan is still admissible when steps cost at least 1")

	_, err = NewPositionProblemToFood(&Layout{Name: "empty"})
	assert.Error(t, err)
}

func TestFoodProblem(t *testing.T) {
	l, err := LoadLayout("tinysearch")
	require.NoError(t, err)
	p := NewFoodProblem(l)
	start := p.StartState()
	assert.Equal(t, 10, start.Remaining())
	assert.False(t, p.IsGoal(start))
	assert.Len(t, p.RemainingFood(start), 10)

	ucs := search.Run[FoodState, Direction](p, search.UniformCost, nil)
	require.True(t, ucs.Found)
	assert.Equal(t, 27.0, ucs.Cost)
	assert.Equal(t, 27.0, p.CostOfActions(ucs.Actions))

	food, err := FoodHeuristics().Lookup(FoodHeuristicName)
	require.NoError(t, err)
	astar := search.Run[FoodState, Direction](p, search.AStar, food)
	assert.Equal(t, 27.0, astar.Cost)
	assert.Less(t, astar.Stats.Expanded, ucs.Stats.Expanded)

	bfs := search.BreadthFirstSearch[FoodState, Direction](p)
	assert.Len(t, bfs, 27)

	// Walking the path eats everything.
	state := start
	for _, dir := range astar.Actions {
		for _, succ := range p.Successors(state) {
			if succ.Action == dir {
				state = succ.State
				break
			}
		}
	}
	assert.True(t, p.IsGoal(state))
	assert.Equal(t, 0, state.Remaining())
	assert.Equal(t, 0.0, FoodHeuristic(state, p))
	assert.Equal(t, float64(IllegalCost), p.CostOfActions([]Direction{North, North, North}))
}

func TestHeuristicsRequireTheirProblems(t *testing.T) {
	l, err := LoadLayout("tiny")
	require.NoError(t, err)
	p := NewPositionProblem(l, l.PacmanStart, Pos{1, 5})
	assert.Equal(t, 8.0, ManhattanHeuristic(l.PacmanStart, p))
	assert.InDelta(t, 5.657, EuclideanHeuristic(l.PacmanStart, p), 1e-3)
	assert.Panics(t, func() { ManhattanHeuristic(Pos{}, nil) })
	assert.Panics(t, func() { FoodHeuristic(FoodState{}, nil) })
}
