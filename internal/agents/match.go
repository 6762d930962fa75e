package agents

import (
	"context"
	"fmt"
	"github.com/janpfeifer/mazeGo/internal/pursuit"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
	"time"
)

// MatchResult summarizes a finished (or interrupted) match.
type MatchResult struct {
	Name      string
	Win, Lose bool
	Score     float64

	// Rounds played: in each round every agent moves once.
	Rounds int

	// Interrupted is set if the match was stopped by the context before the end.
	Interrupted bool
	Elapsed     time.Duration
}

// String implements fmt.Stringer.
func (r MatchResult) String() string {
	outcome := "draw"
	switch {
	case r.Interrupted:
		outcome = "interrupted"
	case r.Win:
		outcome = "win"
	case r.Lose:
		outcome = "lose"
	}
	return fmt.Sprintf("%s: %s, score=%g, rounds=%d, elapsed=%s", r.Name, outcome, r.Score, r.Rounds, r.Elapsed)
}

// Play a match from the initial state, where players[i] plays agent i, until the game is
// over or maxRounds rounds were played (if maxRounds > 0).
//
// If ctx is cancelled the match stops early and the result is marked as Interrupted: this is
// not an error. Errors are only returned if an agent plays an illegal move.
func Play(ctx context.Context, name string, initial *pursuit.State, players []Agent, maxRounds int) (MatchResult, error) {
	return PlayObserved(ctx, name, initial, players, maxRounds, nil)
}

// RoundObserver is called by PlayObserved after each round with the round number (starting at 1)
// and the state at the end of the round.
type RoundObserver func(round int, state *pursuit.State)

// PlayObserved is like Play, but calls onRound (if not nil) at the end of every round.
func PlayObserved(ctx context.Context, name string, initial *pursuit.State, players []Agent, maxRounds int,
	onRound RoundObserver) (MatchResult, error) {
	result := MatchResult{Name: name}
	if len(players) != initial.NumAgents() {
		return result, errors.Errorf("match %s: game has %d agents, but %d players were given",
			name, initial.NumAgents(), len(players))
	}
	start := time.Now()
	klog.V(1).Infof("Starting match %s", name)
	state := initial
	for !state.IsTerminal() && (maxRounds <= 0 || result.Rounds < maxRounds) {
		for agent, player := range players {
			if ctx.Err() != nil {
				klog.V(1).Infof("Match %s interrupted: %s", name, ctx.Err())
				result.Interrupted = true
				break
			}
			if state.IsTerminal() {
				break
			}
			dir := player.Act(state)
			next, err := state.Act(agent, dir)
			if err != nil {
				return result, errors.WithMessagef(err, "match %s, round %d: agent %s", name, result.Rounds, player)
			}
			state = next
		}
		if result.Interrupted {
			break
		}
		result.Rounds++
		if klog.V(3).Enabled() {
			klog.Infof("Match %s, round %d:\n%s", name, result.Rounds, state)
		}
		if onRound != nil {
			onRound(result.Rounds, state)
		}
	}
	result.Win, result.Lose, result.Score = state.IsWin(), state.IsLose(), state.Score()
	result.Elapsed = time.Since(start)
	klog.V(1).Infof("Finished %s", result)
	return result, nil
}
