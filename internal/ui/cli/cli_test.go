package cli

import (
	"bytes"
	"github.com/janpfeifer/mazeGo/internal/agents"
	"github.com/janpfeifer/mazeGo/internal/grid"
	"github.com/janpfeifer/mazeGo/internal/pursuit"
	"github.com/janpfeifer/mazeGo/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
)

func TestSummarize(t *testing.T) {
	s := Summarize([]agents.MatchResult{
		{Win: true, Score: 500, Rounds: 10},
		{Lose: true, Score: -400, Rounds: 20},
		{Score: 100, Rounds: 30},
		{Interrupted: true, Score: 1e6, Rounds: 1},
	})
	assert.Equal(t, MatchesSummary{
		Matches: 4, Wins: 1, Losses: 1, Draws: 1, Interrupted: 1,
		TotalScore: 200, MinScore: -400, MaxScore: 500, TotalRounds: 60,
	}, s)
	assert.InDelta(t, 200.0/3, s.MeanScore(), 1e-9)
	assert.InDelta(t, 1.0/3, s.WinRate(), 1e-9)

	empty := Summarize(nil)
	assert.Equal(t, 0.0, empty.MeanScore())
	assert.Equal(t, 0.0, empty.WinRate())
}

func TestPrintPathResult(t *testing.T) {
	layout, err := grid.LoadLayout("tiny")
	require.NoError(t, err)
	p, err := grid.NewPositionProblemToFood(layout)
	require.NoError(t, err)
	result := search.Run[grid.Pos, grid.Direction](p, search.BreadthFirst, nil)

	var buf bytes.Buffer
	NewWithWriter(&buf, false).PrintPathResult(layout, "BreadthFirst", result)
	output := buf.String()
	assert.Equal(t, len(result.Actions), strings.Count(output, string(PathCell)))
	assert.Contains(t, output, "Cost:             8")
	assert.Contains(t, output, "BreadthFirst")
	assert.NotContains(t, output, "\x1b[", "no colors")
}

func TestPrintMatchResults(t *testing.T) {
	var buf bytes.Buffer
	ui := NewWithWriter(&buf, false)
	ui.PrintMatchResults("AlphaBeta vs Random", []agents.MatchResult{{Win: true, Score: 500}, {Interrupted: true}})
	output := buf.String()
	assert.Contains(t, output, "Wins:        1 (100.0%)")
	assert.Contains(t, output, "Interrupted: 1")
	assert.Contains(t, output, "Mean score:  500.0")

	layout, err := grid.LoadLayout("minimax")
	require.NoError(t, err)
	buf.Reset()
	ui.PrintState("start", pursuit.NewState(layout))
	assert.Contains(t, buf.String(), layout.Render(layout.InitialMarks()))
	assert.True(t, strings.HasSuffix(buf.String(), "score=0, food=2, moves=0\n"))
}

func TestPathMarks(t *testing.T) {
	marks := PathMarks(grid.Pos{X: 1, Y: 1}, []grid.Direction{grid.East, grid.South})
	assert.Equal(t, map[grid.Pos]rune{{X: 1, Y: 1}: grid.PacmanCell, {X: 2, Y: 1}: PathCell, {X: 2, Y: 2}: PathCell}, marks)
}
