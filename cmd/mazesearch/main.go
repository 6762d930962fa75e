// mazesearch finds a path in a maze layout using one of the graph search strategies, and prints
// the path found with the search statistics.
//
// Flags can also be set with environment variables (or a .env file) named MAZEGO_<FLAG>, e.g.
// MAZEGO_LAYOUT=medium.
package main

import (
	"context"
	"flag"
	"fmt"
	"github.com/janpfeifer/mazeGo/internal/envflags"
	"github.com/janpfeifer/mazeGo/internal/grid"
	"github.com/janpfeifer/mazeGo/internal/profilers"
	"github.com/janpfeifer/mazeGo/internal/search"
	"github.com/janpfeifer/mazeGo/internal/ui/cli"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
	"strings"
)

var (
	flagLayout    = flag.String("layout", "tiny", "Layout name, one of: "+strings.Join(grid.LayoutNames(), ", "))
	flagAlgo      = flag.String("algo", "astar", "Search strategy: dfs, bfs, ucs or astar.")
	flagHeuristic = flag.String("heuristic", "", "Heuristic used by astar. "+
		"For -problem=position: manhattan or euclidean (default manhattan). For -problem=food: food (default).")
	flagProblem = flag.String("problem", "position", "Problem to solve: "+
		"\"position\" finds a path to the first food, \"food\" finds a path eating all the food.")
	flagColor = flag.Bool("color", true, "Use colors to print the maze.")
)

func main() {
	klog.InitFlags(nil)
	must.M(envflags.Parse())

	prof := must.M1(profilers.Setup(context.Background()))
	defer prof.OnQuit()

	layout := must.M1(grid.LoadLayout(*flagLayout))
	strategy := must.M1(search.ParseStrategy(*flagAlgo))
	ui := cli.New(*flagColor)
	description := fmt.Sprintf("%s on %s", strategy, layout.Name)
	var result search.Result[grid.Direction]
	switch *flagProblem {
	case "position":
		result = must.M1(solvePosition(layout, strategy))
	case "food":
		result = must.M1(solveFood(layout, strategy))
	default:
		klog.Fatalf("Unknown -problem=%q, valid values are \"position\" or \"food\"", *flagProblem)
	}
	ui.PrintPathResult(layout, description, result)
	if !result.Found {
		klog.Errorf("No path found in layout %q", layout.Name)
	}
}

func heuristicName(defaultName string) string {
	if *flagHeuristic == "" {
		return defaultName
	}
	return *flagHeuristic
}

func solvePosition(layout *grid.Layout, strategy search.Strategy) (result search.Result[grid.Direction], err error) {
	problem, err := grid.NewPositionProblemToFood(layout)
	if err != nil {
		return
	}
	heuristic, err := grid.PositionHeuristics().Lookup(heuristicName(grid.ManhattanHeuristicName))
	if err != nil {
		return
	}
	result = search.Run[grid.Pos, grid.Direction](problem, strategy, heuristic)
	if result.Found && problem.CostOfActions(result.Actions) != result.Cost {
		err = errors.Errorf("path found costs %g, but search reported %g",
			problem.CostOfActions(result.Actions), result.Cost)
	}
	return
}

func solveFood(layout *grid.Layout, strategy search.Strategy) (result search.Result[grid.Direction], err error) {
	if len(layout.Food) == 0 {
		err = errors.Errorf("layout %q has no food to eat", layout.Name)
		return
	}
	problem := grid.NewFoodProblem(layout)
	heuristic, err := grid.FoodHeuristics().Lookup(heuristicName(grid.FoodHeuristicName))
	if err != nil {
		return
	}
	result = search.Run[grid.FoodState, grid.Direction](problem, strategy, heuristic)
	return
}
