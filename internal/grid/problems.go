package grid

import (
	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/mazeGo/internal/search"
	"github.com/pkg/errors"
	"strings"
)

// IllegalCost is returned by CostOfActions when the actions walk into a wall.
const IllegalCost = 999999

// PositionProblem is the problem of finding a path from a start position to a goal position.
//
// It counts the number of expanded states, so it's not safe for concurrent searches.
type PositionProblem struct {
	layout      *Layout
	start, goal Pos
	costFn      func(pos Pos) float64

	expanded int
	visited  []Pos
}

// Assert PositionProblem is a search.Problem.
var _ search.Problem[Pos, Direction] = (*PositionProblem)(nil)

// NewPositionProblem from start to goal in layout, where each step costs 1.
func NewPositionProblem(layout *Layout, start, goal Pos) *PositionProblem {
	return &PositionProblem{
		layout: layout,
		start:  start,
		goal:   goal,
		costFn: func(Pos) float64 { return 1 },
	}
}

// NewPositionProblemToFood goes from the pacman start to the first food of the layout (in row-major order).
func NewPositionProblemToFood(layout *Layout) (*PositionProblem, error) {
	if len(layout.Food) == 0 {
		return nil, errors.Errorf("layout %q has no food to use as goal", layout.Name)
	}
	return NewPositionProblem(layout, layout.PacmanStart, layout.Food[0]), nil
}

// WithCostFn sets the cost of stepping into each position.
func (p *PositionProblem) WithCostFn(costFn func(pos Pos) float64) *PositionProblem {
	p.costFn = costFn
	return p
}

// Layout of the problem.
func (p *PositionProblem) Layout() *Layout { return p.layout }

// Goal position.
func (p *PositionProblem) Goal() Pos { return p.goal }

// Expanded returns the number of calls to Successors, and the positions expanded, in order.
func (p *PositionProblem) Expanded() (count int, positions []Pos) {
	return p.expanded, p.visited
}

// StartState implements search.Problem.
func (p *PositionProblem) StartState() Pos { return p.start }

// IsGoal implements search.Problem.
func (p *PositionProblem) IsGoal(pos Pos) bool { return pos == p.goal }

// Successors implements search.Problem.
func (p *PositionProblem) Successors(pos Pos) []search.Successor[Pos, Direction] {
	p.expanded++
	p.visited = append(p.visited, pos)
	dirs := p.layout.LegalDirections(pos)
	successors := make([]search.Successor[Pos, Direction], len(dirs))
	for ii, dir := range dirs {
		next := pos.Move(dir)
		successors[ii] = search.Successor[Pos, Direction]{State: next, Action: dir, Cost: p.costFn(next)}
	}
	return successors
}

// CostOfActions implements search.Problem. It returns IllegalCost if any action walks into a wall.
func (p *PositionProblem) CostOfActions(actions []Direction) float64 {
	pos, cost := p.start, 0.0
	for _, dir := range actions {
		pos = pos.Move(dir)
		if p.layout.IsWall(pos) {
			return IllegalCost
		}
		cost += p.costFn(pos)
	}
	return cost
}

// FoodState is the state of a FoodProblem: the position and which of the layout's food
// is still left, one byte per food ('1' if present).
//
// It's a comparable value, so it can be used as a search state.
type FoodState struct {
	Pos  Pos
	Food string
}

// Remaining number of food.
func (s FoodState) Remaining() int {
	return strings.Count(s.Food, "1")
}

// FoodProblem is the problem of finding a path that eats all the food in the layout.
type FoodProblem struct {
	layout *Layout
	start  FoodState
}

// Assert FoodProblem is a search.Problem.
var _ search.Problem[FoodState, Direction] = (*FoodProblem)(nil)

// NewFoodProblem starting at the pacman start of layout with all the food.
func NewFoodProblem(layout *Layout) *FoodProblem {
	start := FoodState{Pos: layout.PacmanStart, Food: strings.Repeat("1", len(layout.Food))}
	if idx, found := layout.FoodIndex(start.Pos); found {
		start.Food = eat(start.Food, idx)
	}
	return &FoodProblem{layout: layout, start: start}
}

func eat(food string, idx int) string {
	if food[idx] == '0' {
		return food
	}
	return food[:idx] + "0" + food[idx+1:]
}

// Layout of the problem.
func (p *FoodProblem) Layout() *Layout { return p.layout }

// RemainingFood returns the positions of the food still present in state.
func (p *FoodProblem) RemainingFood(state FoodState) []Pos {
	positions := make([]Pos, 0, len(state.Food))
	for ii, pos := range p.layout.Food {
		if state.Food[ii] == '1' {
			positions = append(positions, pos)
		}
	}
	return positions
}

// StartState implements search.Problem.
func (p *FoodProblem) StartState() FoodState { return p.start }

// IsGoal implements search.Problem: no food left.
func (p *FoodProblem) IsGoal(state FoodState) bool {
	return !strings.Contains(state.Food, "1")
}

// Successors implements search.Problem.
func (p *FoodProblem) Successors(state FoodState) []search.Successor[FoodState, Direction] {
	dirs := p.layout.LegalDirections(state.Pos)
	successors := make([]search.Successor[FoodState, Direction], len(dirs))
	for ii, dir := range dirs {
		next := FoodState{Pos: state.Pos.Move(dir), Food: state.Food}
		if idx, found := p.layout.FoodIndex(next.Pos); found {
			next.Food = eat(next.Food, idx)
		}
		successors[ii] = search.Successor[FoodState, Direction]{State: next, Action: dir, Cost: 1}
	}
	return successors
}

// CostOfActions implements search.Problem. It returns IllegalCost if any action walks into a wall.
func (p *FoodProblem) CostOfActions(actions []Direction) float64 {
	pos := p.start.Pos
	for _, dir := range actions {
		pos = pos.Move(dir)
		if p.layout.IsWall(pos) {
			return IllegalCost
		}
	}
	return float64(len(actions))
}

// Heuristic names registered by PositionHeuristics and FoodHeuristics.
const (
	ManhattanHeuristicName = "manhattan"
	EuclideanHeuristicName = "euclidean"
	FoodHeuristicName      = "food"
)

// PositionHeuristics returns the registry of heuristics for a PositionProblem.
func PositionHeuristics() *search.Heuristics[Pos, Direction] {
	return search.NewHeuristics[Pos, Direction]().
		Register(ManhattanHeuristicName, ManhattanHeuristic).
		Register(EuclideanHeuristicName, EuclideanHeuristic)
}

// FoodHeuristics returns the registry of heuristics for a FoodProblem.
func FoodHeuristics() *search.Heuristics[FoodState, Direction] {
	return search.NewHeuristics[FoodState, Direction]().
		Register(FoodHeuristicName, FoodHeuristic)
}

func goalOf(problem search.Problem[Pos, Direction]) Pos {
	withGoal, ok := problem.(interface{ Goal() Pos })
	if !ok {
		exceptions.Panicf("grid: heuristic requires a problem with a Goal() method, got %T", problem)
	}
	return withGoal.Goal()
}

// ManhattanHeuristic is the Manhattan distance to the goal of a PositionProblem: admissible for unit costs.
func ManhattanHeuristic(pos Pos, problem search.Problem[Pos, Direction]) float64 {
	return float64(ManhattanDistance(pos, goalOf(problem)))
}

// EuclideanHeuristic is the straight line distance to the goal of a PositionProblem.
func EuclideanHeuristic(pos Pos, problem search.Problem[Pos, Direction]) float64 {
	return EuclideanDistance(pos, goalOf(problem))
}

// FoodHeuristic for a FoodProblem is the Manhattan distance to the farthest remaining food.
// Any path that eats all food has to reach that one, so it is admissible.
func FoodHeuristic(state FoodState, problem search.Problem[FoodState, Direction]) float64 {
	foodProblem, ok := problem.(*FoodProblem)
	if !ok {
		exceptions.Panicf("grid.FoodHeuristic requires a *grid.FoodProblem, got %T", problem)
	}
	farthest := 0
	for _, pos := range foodProblem.RemainingFood(state) {
		farthest = max(farthest, ManhattanDistance(state.Pos, pos))
	}
	return float64(farthest)
}
