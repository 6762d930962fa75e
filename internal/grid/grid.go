// Package grid implements a rectangular maze world: positions, moves, layouts and the
// search problems defined over them.
//
// Coordinates: X is the column (growing East) and Y is the row (growing South), so
// the first row of a layout is Y=0.
package grid

import (
	"fmt"
	"github.com/janpfeifer/mazeGo/internal/generics"
	"golang.org/x/exp/constraints"
	"math"
)

// Pos is a position in the grid.
type Pos struct {
	X, Y int
}

// String implements fmt.Stringer.
func (pos Pos) String() string {
	return fmt.Sprintf("(%d, %d)", pos.X, pos.Y)
}

// Move returns the position one step in the given direction. It doesn't check for walls.
func (pos Pos) Move(dir Direction) Pos {
	dx, dy := dir.Vector()
	return Pos{pos.X + dx, pos.Y + dy}
}

// Direction of a move.
type Direction int8

const (
	North Direction = iota
	South
	East
	West
	Stop
)

// Directions of movement, in the fixed order used everywhere an enumeration of moves
// is needed (successors of search problems, legal actions of games). Stop is not included.
var Directions = [...]Direction{North, South, East, West}

var directionNames = [...]string{"North", "South", "East", "West", "Stop"}

// String implements fmt.Stringer.
func (dir Direction) String() string {
	if dir < 0 || int(dir) >= len(directionNames) {
		return fmt.Sprintf("Direction(%d)", int(dir))
	}
	return directionNames[dir]
}

// Vector returns the displacement of one step in the direction.
func (dir Direction) Vector() (dx, dy int) {
	switch dir {
	case North:
		return 0, -1
	case South:
		return 0, 1
	case East:
		return 1, 0
	case West:
		return -1, 0
	}
	return 0, 0
}

// Reverse returns the opposite direction. Stop is its own reverse.
func (dir Direction) Reverse() Direction {
	switch dir {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	}
	return dir
}

// Manhattan distance between two points with coordinates of any signed or float type.
func Manhattan[T constraints.Signed | constraints.Float](x1, y1, x2, y2 T) T {
	return generics.Abs(x1-x2) + generics.Abs(y1-y2)
}

// ManhattanDistance between two positions.
func ManhattanDistance(a, b Pos) int {
	return Manhattan(a.X, a.Y, b.X, b.Y)
}

// EuclideanDistance between two positions.
func EuclideanDistance(a, b Pos) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}
