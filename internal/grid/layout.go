package grid

import (
	"github.com/pkg/errors"
	"strings"
)

// Layout cell symbols.
const (
	WallCell    = '%'
	FoodCell    = '.'
	CapsuleCell = 'o'
	PacmanCell  = 'P'
	GhostCell   = 'G'
	EmptyCell   = ' '
)

// Layout is a static maze: walls, initial food and capsules, and the starting positions of the agents.
//
// It is immutable after creation, and can be shared among goroutines.
type Layout struct {
	Name          string
	Width, Height int

	// Food and Capsules positions, in row-major order.
	Food, Capsules []Pos

	// PacmanStart is the starting position of agent 0, GhostStarts of agents 1 to N-1.
	PacmanStart Pos
	GhostStarts []Pos

	walls     []bool
	foodIndex map[Pos]int
}

// NewLayout parses a layout from its rows: all rows must have the same width, and there must be
// exactly one pacman start ('P'). Positions outside the rows are considered walls.
func NewLayout(name string, rows ...string) (*Layout, error) {
	if len(rows) == 0 {
		return nil, errors.Errorf("layout %q has no rows", name)
	}
	l := &Layout{
		Name:      name,
		Width:     len(rows[0]),
		Height:    len(rows),
		foodIndex: make(map[Pos]int),
	}
	l.walls = make([]bool, l.Width*l.Height)
	foundPacman := false
	for y, row := range rows {
		if len(row) != l.Width {
			return nil, errors.Errorf("layout %q row %d has width %d, but row 0 has width %d", name, y, len(row), l.Width)
		}
		for x := range len(row) {
			pos := Pos{x, y}
			switch row[x] {
			case WallCell:
				l.walls[l.index(pos)] = true
			case FoodCell:
				l.foodIndex[pos] = len(l.Food)
				l.Food = append(l.Food, pos)
			case CapsuleCell:
				l.Capsules = append(l.Capsules, pos)
			case PacmanCell:
				if foundPacman {
					return nil, errors.Errorf("layout %q has more than one pacman start, second one at %s", name, pos)
				}
				foundPacman = true
				l.PacmanStart = pos
			case GhostCell:
				l.GhostStarts = append(l.GhostStarts, pos)
			case EmptyCell:
			default:
				return nil, errors.Errorf("layout %q has unknown cell %q at %s", name, row[x], pos)
			}
		}
	}
	if !foundPacman {
		return nil, errors.Errorf("layout %q has no pacman start (%q)", name, PacmanCell)
	}
	return l, nil
}

func (l *Layout) index(pos Pos) int {
	return pos.Y*l.Width + pos.X
}

// InBounds returns whether pos is inside the layout.
func (l *Layout) InBounds(pos Pos) bool {
	return pos.X >= 0 && pos.X < l.Width && pos.Y >= 0 && pos.Y < l.Height
}

// IsWall returns whether there is a wall in pos. Positions out of bounds are walls.
func (l *Layout) IsWall(pos Pos) bool {
	return !l.InBounds(pos) || l.walls[l.index(pos)]
}

// LegalDirections from pos, in Directions order: the ones that don't lead into a wall.
func (l *Layout) LegalDirections(pos Pos) []Direction {
	dirs := make([]Direction, 0, len(Directions))
	for _, dir := range Directions {
		if !l.IsWall(pos.Move(dir)) {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// Neighbors of pos that are not walls, in Directions order.
func (l *Layout) Neighbors(pos Pos) []Pos {
	dirs := l.LegalDirections(pos)
	neighbors := make([]Pos, len(dirs))
	for ii, dir := range dirs {
		neighbors[ii] = pos.Move(dir)
	}
	return neighbors
}

// FoodIndex returns the index in Food of the initial food at pos, if there is one.
func (l *Layout) FoodIndex(pos Pos) (idx int, found bool) {
	idx, found = l.foodIndex[pos]
	return
}

// NumOpenCells returns the number of cells that are not walls.
func (l *Layout) NumOpenCells() (count int) {
	for _, wall := range l.walls {
		if !wall {
			count++
		}
	}
	return
}

// Render the walls of the layout as text, one line per row, with marks overwriting the cells at their
// positions. Use it to display agents, remaining food, or a path.
//
// Marks out of bounds are ignored.
func (l *Layout) Render(marks map[Pos]rune) string {
	var sb strings.Builder
	for y := range l.Height {
		for x := range l.Width {
			pos := Pos{x, y}
			if mark, found := marks[pos]; found {
				sb.WriteRune(mark)
			} else if l.walls[l.index(pos)] {
				sb.WriteByte(WallCell)
			} else {
				sb.WriteByte(EmptyCell)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// InitialMarks returns the marks to Render the layout as it was parsed: food, capsules and starting positions.
func (l *Layout) InitialMarks() map[Pos]rune {
	marks := make(map[Pos]rune, len(l.Food)+len(l.Capsules)+len(l.GhostStarts)+1)
	for _, pos := range l.Food {
		marks[pos] = FoodCell
	}
	for _, pos := range l.Capsules {
		marks[pos] = CapsuleCell
	}
	for _, pos := range l.GhostStarts {
		marks[pos] = GhostCell
	}
	marks[l.PacmanStart] = PacmanCell
	return marks
}
