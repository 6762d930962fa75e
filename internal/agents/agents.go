// Package agents provides a factory of agents that play the pursuit game, created from
// configuration strings.
//
// Agent modules register themselves with RegisterModule, and are created with New, given a
// configuration like "alphabeta:depth=3,eval=better".
package agents

import (
	"github.com/janpfeifer/mazeGo/internal/generics"
	"github.com/janpfeifer/mazeGo/internal/grid"
	"github.com/janpfeifer/mazeGo/internal/parameters"
	"github.com/janpfeifer/mazeGo/internal/pursuit"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
	"slices"
)

// Agent is anything able to play the pursuit game, either as pacman (index 0) or as a ghost.
//
// Agents may keep state (statistics, random number generators), so they are not safe for
// concurrent use: create one per match.
type Agent interface {
	// Act returns the move of the agent in state. It is only called for non-terminal states.
	Act(state *pursuit.State) grid.Direction

	// String describes the agent and its configuration.
	String() string
}

// Module creates an agent that plays with the given index, configured by params.
//
// Modules should pop the parameters they use (see parameters.PopParamOr), and leave the others:
// New reports unknown parameters as an error.
type Module func(index int, params parameters.Params) (Agent, error)

var (
	// Registered modules.
	keywordToModules = make(map[string]Module)
)

// RegisterModule so it can be used by New.
// It is meant to be called from init functions, and it exits if the name is already in use.
func RegisterModule(name string, module Module) {
	if _, found := keywordToModules[name]; found {
		klog.Fatalf("agents.RegisterModule(%q): module registered twice", name)
	}
	keywordToModules[name] = module
}

// ModuleNames returns the names of the registered modules, sorted.
func ModuleNames() []string {
	return slices.Collect(generics.SortedKeys(keywordToModules))
}

var (
	// DefaultPacmanConfig is used if no configuration is given for pacman.
	DefaultPacmanConfig = "alphabeta:depth=2,eval=better"

	// DefaultGhostConfig is used if no configuration is given for the ghosts.
	DefaultGhostConfig = "random"
)

// New creates a new agent with the given index, from its configuration string.
//
// Args:
//
//	config: the module name, optionally followed by a colon (":") and a comma-separated list of
//		parameters with optional values associated. If empty, DefaultPacmanConfig or DefaultGhostConfig
//		is used, depending on the index.
//	index: pursuit.PacmanIndex (0) for pacman, 1 to N-1 for the ghosts.
func New(config string, index int) (Agent, error) {
	if config == "" {
		config = DefaultGhostConfig
		if index == pursuit.PacmanIndex {
			config = DefaultPacmanConfig
		}
	}
	moduleName, paramsConfig := parameters.SplitModule(config)
	module, found := keywordToModules[moduleName]
	if !found {
		return nil, errors.Errorf("unknown agent %q, valid agents are %q", moduleName, ModuleNames())
	}
	params := parameters.NewFromConfigString(paramsConfig)
	agent, err := module(index, params)
	if err == nil {
		err = parameters.CheckAllConsumed(params)
	}
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to create agent %q for index %d", moduleName, index)
	}
	klog.V(1).Infof("Created agent #%d: %s", index, agent)
	return agent, nil
}

// NewPlayers creates one agent for pacman and one for each ghost: the ghosts share the same
// configuration, but each gets its own agent.
func NewPlayers(pacmanConfig, ghostConfig string, numGhosts int) ([]Agent, error) {
	players := make([]Agent, 1+numGhosts)
	var err error
	players[pursuit.PacmanIndex], err = New(pacmanConfig, pursuit.PacmanIndex)
	if err != nil {
		return nil, err
	}
	for ghost := 1; ghost <= numGhosts; ghost++ {
		players[ghost], err = New(ghostConfig, ghost)
		if err != nil {
			return nil, err
		}
	}
	return players, nil
}

func requirePacman(moduleName string, index int) error {
	if index != pursuit.PacmanIndex {
		return errors.Errorf("agent %q can only play as pacman (index %d), not as ghost %d",
			moduleName, pursuit.PacmanIndex, index)
	}
	return nil
}

func requireGhost(moduleName string, index int) error {
	if index == pursuit.PacmanIndex {
		return errors.Errorf("agent %q can only play as a ghost (index > 0)", moduleName)
	}
	return nil
}
