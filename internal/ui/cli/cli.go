// Package cli implements the command-line output of the mazeGo programs: boards, paths and
// match summaries.
package cli

import (
	"fmt"
	"github.com/charmbracelet/lipgloss"
	"github.com/janpfeifer/mazeGo/internal/agents"
	"github.com/janpfeifer/mazeGo/internal/grid"
	"github.com/janpfeifer/mazeGo/internal/pursuit"
	"github.com/janpfeifer/mazeGo/internal/search"
	"golang.org/x/term"
	"io"
	"os"
	"regexp"
	"strings"
)

// PathCell marks the cells visited by a path.
const PathCell = '*'

var ansiFilter = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// displayWidth of s removes its color/control sequences and returns the length of what is left.
func displayWidth(s string) int {
	return len([]rune(ansiFilter.ReplaceAllString(s, "")))
}

// UI prints to a writer, optionally with colors and centered on the terminal.
type UI struct {
	w        io.Writer
	color    bool
	centered bool
}

// New creates a UI that prints to os.Stdout, centered if it is a terminal.
func New(color bool) *UI {
	return &UI{
		w:        os.Stdout,
		color:    color,
		centered: term.IsTerminal(int(os.Stdout.Fd())),
	}
}

// NewWithWriter creates a UI that prints to w, never centered.
func NewWithWriter(w io.Writer, color bool) *UI {
	return &UI{w: w, color: color}
}

func (ui *UI) printBlock(block string) {
	block = strings.TrimRight(block, "\n")
	indent := 0
	if ui.centered {
		terminalWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err == nil {
			blockWidth := 0
			for _, line := range strings.Split(block, "\n") {
				blockWidth = max(blockWidth, displayWidth(line))
			}
			indent = max(0, (terminalWidth-blockWidth)/2)
		}
	}
	for _, line := range strings.Split(block, "\n") {
		if len(line) == 0 {
			fmt.Fprintln(ui.w)
			continue
		}
		fmt.Fprintf(ui.w, "%s%s\n", strings.Repeat(" ", indent), line)
	}
}

func (ui *UI) style(fg, bg string) lipgloss.Style {
	s := lipgloss.NewStyle()
	if ui.color {
		s = s.Foreground(lipgloss.Color(fg)).Background(lipgloss.Color(bg))
	}
	return s
}

// colorizeBoard colors the cells of a rendered board.
func (ui *UI) colorizeBoard(board string) string {
	if !ui.color {
		return board
	}
	styles := map[rune]lipgloss.Style{
		grid.WallCell:    ui.style("12", "4"),
		grid.FoodCell:    ui.style("15", "0"),
		grid.CapsuleCell: ui.style("15", "0").Bold(true),
		grid.PacmanCell:  ui.style("11", "0").Bold(true),
		grid.GhostCell:   ui.style("9", "0").Bold(true),
		'g':              ui.style("14", "0"),
		PathCell:         ui.style("10", "0"),
	}
	var sb strings.Builder
	for _, r := range board {
		if s, found := styles[r]; found {
			sb.WriteString(s.Render(string(r)))
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func (ui *UI) box(title string, lines []string) string {
	titleStyle := lipgloss.NewStyle().Bold(true)
	if ui.color {
		titleStyle = titleStyle.Foreground(lipgloss.Color("11"))
	}
	content := titleStyle.Render(title) + "\n\n" + strings.Join(lines, "\n")
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 2).
		Render(content)
}

// PathMarks returns the marks to render a path of actions from start: every cell visited is
// marked with PathCell, the start with grid.PacmanCell.
func PathMarks(start grid.Pos, actions []grid.Direction) map[grid.Pos]rune {
	marks := map[grid.Pos]rune{}
	pos := start
	for _, dir := range actions {
		pos = pos.Move(dir)
		marks[pos] = PathCell
	}
	marks[start] = grid.PacmanCell
	return marks
}

// PrintPathResult prints the layout with the path found, and the search statistics.
func (ui *UI) PrintPathResult(layout *grid.Layout, description string, result search.Result[grid.Direction]) {
	ui.printBlock(ui.colorizeBoard(layout.Render(PathMarks(layout.PacmanStart, result.Actions))))
	fmt.Fprintln(ui.w)
	lines := []string{
		fmt.Sprintf("Layout:           %s (%dx%d)", layout.Name, layout.Width, layout.Height),
		fmt.Sprintf("Found:            %t", result.Found),
		fmt.Sprintf("Path length:      %d", len(result.Actions)),
		fmt.Sprintf("Cost:             %g", result.Cost),
		fmt.Sprintf("States expanded:  %d", result.Stats.Expanded),
		fmt.Sprintf("States generated: %d", result.Stats.Generated),
		fmt.Sprintf("Max frontier:     %d", result.Stats.MaxFrontier),
	}
	ui.printBlock(ui.box(description, lines))
}

// PrintState prints the board of a pursuit game, followed by its score.
func (ui *UI) PrintState(title string, state *pursuit.State) {
	// The last line of the rendered state is the status, the rest the board.
	rendered := state.String()
	idx := strings.LastIndex(rendered, "\n")
	board, status := rendered[:idx+1], rendered[idx+1:]
	ui.printBlock(title)
	ui.printBlock(ui.colorizeBoard(board))
	ui.printBlock(status)
}

// MatchesSummary aggregates the results of many matches.
type MatchesSummary struct {
	Matches, Wins, Losses, Draws, Interrupted int
	TotalScore                                float64
	MinScore, MaxScore                        float64
	TotalRounds                               int
}

// Summarize the results of the matches. Interrupted matches are counted, but don't contribute to
// the scores.
func Summarize(results []agents.MatchResult) (s MatchesSummary) {
	for _, r := range results {
		s.Matches++
		switch {
		case r.Interrupted:
			s.Interrupted++
			continue
		case r.Win:
			s.Wins++
		case r.Lose:
			s.Losses++
		default:
			s.Draws++
		}
		completed := s.Wins + s.Losses + s.Draws
		if completed == 1 {
			s.MinScore, s.MaxScore = r.Score, r.Score
		} else {
			s.MinScore, s.MaxScore = min(s.MinScore, r.Score), max(s.MaxScore, r.Score)
		}
		s.TotalScore += r.Score
		s.TotalRounds += r.Rounds
	}
	return
}

// MeanScore over the completed matches, or 0 if there are none.
func (s MatchesSummary) MeanScore() float64 {
	completed := s.Matches - s.Interrupted
	if completed == 0 {
		return 0
	}
	return s.TotalScore / float64(completed)
}

// WinRate over the completed matches, or 0 if there are none.
func (s MatchesSummary) WinRate() float64 {
	completed := s.Matches - s.Interrupted
	if completed == 0 {
		return 0
	}
	return float64(s.Wins) / float64(completed)
}

// PrintMatchResults prints a summary of the results of many matches.
func (ui *UI) PrintMatchResults(title string, results []agents.MatchResult) {
	s := Summarize(results)
	lines := []string{
		fmt.Sprintf("Matches:     %d", s.Matches),
		fmt.Sprintf("Wins:        %d (%.1f%%)", s.Wins, 100*s.WinRate()),
		fmt.Sprintf("Losses:      %d", s.Losses),
		fmt.Sprintf("Draws:       %d", s.Draws),
	}
	if s.Interrupted > 0 {
		lines = append(lines, fmt.Sprintf("Interrupted: %d", s.Interrupted))
	}
	if s.Matches > s.Interrupted {
		lines = append(lines,
			fmt.Sprintf("Mean score:  %.1f", s.MeanScore()),
			fmt.Sprintf("Score range: [%g, %g]", s.MinScore, s.MaxScore),
			fmt.Sprintf("Mean rounds: %.1f", float64(s.TotalRounds)/float64(s.Matches-s.Interrupted)))
	}
	fmt.Fprintln(ui.w)
	ui.printBlock(ui.box(title, lines))
	fmt.Fprintln(ui.w)
}
