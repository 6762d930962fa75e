// pursuit plays a number of matches of the pursuit game with the configured agents, in parallel,
// and prints a summary of the results.
//
// Agents are configured with strings like "alphabeta:depth=3,eval=better" (see -pacman and -ghosts).
// Flags can also be set with environment variables (or a .env file) named MAZEGO_<FLAG>, e.g.
// MAZEGO_NUM_MATCHES=100.
package main

import (
	"context"
	"flag"
	"fmt"
	"github.com/google/uuid"
	"github.com/janpfeifer/mazeGo/internal/agents"
	"github.com/janpfeifer/mazeGo/internal/envflags"
	"github.com/janpfeifer/mazeGo/internal/grid"
	"github.com/janpfeifer/mazeGo/internal/profilers"
	"github.com/janpfeifer/mazeGo/internal/pursuit"
	"github.com/janpfeifer/mazeGo/internal/ui/cli"
	"github.com/janpfeifer/mazeGo/internal/ui/spinning"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"
)

var (
	flagLayout = flag.String("layout", "minimax", "Layout name, one of: "+strings.Join(grid.LayoutNames(), ", "))
	flagPacman = flag.String("pacman", agents.DefaultPacmanConfig, "Pacman agent configuration. "+
		"Modules: "+strings.Join(agents.ModuleNames(), ", "))
	flagGhosts    = flag.String("ghosts", agents.DefaultGhostConfig, "Configuration used for every ghost agent.")
	flagNumGhosts = flag.Int("num_ghosts", -1, "Number of ghosts. "+
		"If < 0, use all the ghosts in the layout, otherwise the first num_ghosts ones.")
	flagNumMatches  = flag.Int("num_matches", 10, "Number of matches to play.")
	flagParallelism = flag.Int("parallelism", 0, "If > 0 ignore GOMAXPROCS and play "+
		"these many matches simultaneously.")
	flagMaxMoves = flag.Int("max_moves", 500, "Max rounds before the match is assumed to be a draw. "+
		"If <= 0 there is no limit.")
	flagPrintSteps = flag.Bool("print_steps", false, "Print board at each round. "+
		"Very verbose, and you probably want to set -parallelism=1.")
	flagColor = flag.Bool("color", true, "Use colors to print the boards.")
)

// Globals
var (
	// globalCtx used everywhere. It is cancelled when the program is about to exit either by
	// an interrupt (ctrl+C) or by reaching the end.
	globalCtx = context.Background()
)

func main() {
	klog.InitFlags(nil)
	must.M(envflags.Parse())
	if err := validateFlags(); err != nil {
		klog.Exitf("%v", err)
	}

	// Capture Control+C
	var globalCancel func()
	globalCtx, globalCancel = context.WithCancel(context.Background())
	spinning.SafeInterrupt(globalCancel, 5*time.Second)
	defer globalCancel()

	// Profilers: HTTP profiler server and CPU profile.
	prof := must.M1(profilers.Setup(globalCtx))
	defer prof.OnQuit()

	initial := must.M1(newInitialState())
	must.M(validateConfigs(initial.NumAgents() - 1))

	ui := cli.New(*flagColor)
	results := must.M1(runMatches(globalCtx, initial, ui))
	title := fmt.Sprintf("%s vs %s on %s", *flagPacman, *flagGhosts, initial.Layout().Name)
	ui.PrintMatchResults(title, results)
}

// validateFlags that don't depend on the layout.
func validateFlags() error {
	if *flagNumMatches < 0 {
		return errors.Errorf("invalid -num_matches=%d, it must be >= 0", *flagNumMatches)
	}
	return nil
}

// validateConfigs of the agents, so errors are reported before any match starts.
// Agents are created again for each match.
func validateConfigs(numGhosts int) error {
	_, err := agents.NewPlayers(*flagPacman, *flagGhosts, numGhosts)
	return err
}

func newInitialState() (*pursuit.State, error) {
	layout, err := grid.LoadLayout(*flagLayout)
	if err != nil {
		return nil, err
	}
	if *flagNumGhosts < 0 {
		return pursuit.NewState(layout), nil
	}
	return pursuit.NewStateWithGhosts(layout, *flagNumGhosts)
}

// progress of the matches, displayed by the spinning status line.
type progress struct {
	mu            sync.Mutex
	start         time.Time
	played, total int
	wins, losses  int
}

func (p *progress) String() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return fmt.Sprintf("Played %d of %d: %d wins, %d losses, %d draws - %s",
		p.played, p.total, p.wins, p.losses, p.played-p.wins-p.losses, time.Since(p.start).Round(time.Second))
}

func (p *progress) record(result agents.MatchResult) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if result.Interrupted {
		return
	}
	p.played++
	if result.Win {
		p.wins++
	} else if result.Lose {
		p.losses++
	}
}

func runMatches(ctx context.Context, initial *pursuit.State, ui *cli.UI) ([]agents.MatchResult, error) {
	p := &progress{start: time.Now(), total: *flagNumMatches}
	results := make([]agents.MatchResult, *flagNumMatches)
	var spinner *spinning.Spinning
	if !*flagPrintSteps {
		spinner = spinning.New(ctx, os.Stdout, p.String)
	}

	var wg errgroup.Group
	wg.SetLimit(getParallelism())
	for matchIdx := range *flagNumMatches {
		wg.Go(func() error {
			if ctx.Err() != nil {
				results[matchIdx] = agents.MatchResult{Name: fmt.Sprintf("Match-%05d", matchIdx), Interrupted: true}
				return nil
			}
			result, err := runMatch(ctx, matchIdx, initial, ui)
			if err != nil {
				return err
			}
			results[matchIdx] = result
			p.record(result)
			return nil
		})
	}
	err := wg.Wait()
	if spinner != nil {
		spinner.Done()
	}
	if ctx.Err() != nil {
		fmt.Printf("Interrupted: %s\n", ctx.Err())
	}
	return results, err
}

var muStepUI sync.Mutex

// runMatch with freshly created agents, since searching agents keep statistics and random agents
// their own random number generators.
func runMatch(ctx context.Context, matchIdx int, initial *pursuit.State, ui *cli.UI) (agents.MatchResult, error) {
	players, err := agents.NewPlayers(*flagPacman, *flagGhosts, initial.NumAgents()-1)
	if err != nil {
		return agents.MatchResult{}, err
	}
	matchName := fmt.Sprintf("Match-%05d (%s)", matchIdx, uuid.NewString())
	var onRound agents.RoundObserver
	if *flagPrintSteps {
		onRound = func(round int, state *pursuit.State) {
			muStepUI.Lock()
			defer muStepUI.Unlock()
			ui.PrintState(fmt.Sprintf("%s, round #%d", matchName, round), state)
			fmt.Println()
		}
	}
	return agents.PlayObserved(ctx, matchName, initial, players, *flagMaxMoves, onRound)
}

// getParallelism returns the parallelism.
func getParallelism() (parallelism int) {
	parallelism = runtime.GOMAXPROCS(0)
	if *flagParallelism > 0 {
		parallelism = *flagParallelism
	}
	return
}
