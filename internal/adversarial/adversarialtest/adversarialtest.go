// Package adversarialtest provides explicit game trees to create tests of the adversarial package.
package adversarialtest

import (
	"fmt"
	"github.com/janpfeifer/mazeGo/internal/adversarial"
	"math/rand/v2"
	"strings"
)

// Node of an explicit game tree. Actions are the indices of the children.
//
// Nodes without children are leaves: the search treats them as terminal and evaluates
// their Value.
type Node struct {
	Value     float64
	Children  []*Node
	Win, Lose bool
}

// Leaf returns a node without children, with the given value.
func Leaf(value float64) *Node {
	return &Node{Value: value}
}

// Branch returns a node with the given children. Its own value is 0, only used if the search
// is cut by the depth limit at this node.
func Branch(children ...*Node) *Node {
	return &Node{Children: children}
}

// Leaves returns one leaf per value.
func Leaves(values ...float64) []*Node {
	nodes := make([]*Node, len(values))
	for ii, v := range values {
		nodes[ii] = Leaf(v)
	}
	return nodes
}

// Tree is a game played over explicit Nodes. It counts the states generated, so tests can
// compare the work done by different searches.
type Tree struct {
	Root      *Node
	NumAgents int

	// Generated is the number of calls to GenerateSuccessor since the last Reset.
	Generated int
}

// NewTree returns a game over root, for numAgents agents.
func NewTree(root *Node, numAgents int) *Tree {
	return &Tree{Root: root, NumAgents: numAgents}
}

// Start returns the game state at the root of the tree.
func (t *Tree) Start() *State {
	return &State{tree: t, node: t.Root}
}

// Reset the Generated counter.
func (t *Tree) Reset() {
	t.Generated = 0
}

// State is a position in a Tree.
type State struct {
	tree *Tree
	node *Node
}

// Assert State implements adversarial.GameState.
var _ adversarial.GameState[int] = (*State)(nil)

// Node returns the node of the tree of the current state.
func (s *State) Node() *Node { return s.node }

// LegalActions implements adversarial.GameState: indices of the children, independent of the agent.
func (s *State) LegalActions(_ int) []int {
	actions := make([]int, len(s.node.Children))
	for ii := range actions {
		actions[ii] = ii
	}
	return actions
}

// GenerateSuccessor implements adversarial.GameState.
func (s *State) GenerateSuccessor(_ int, action int) adversarial.GameState[int] {
	s.tree.Generated++
	return &State{tree: s.tree, node: s.node.Children[action]}
}

// NumAgents implements adversarial.GameState.
func (s *State) NumAgents() int { return s.tree.NumAgents }

// IsWin implements adversarial.GameState.
func (s *State) IsWin() bool { return s.node.Win }

// IsLose implements adversarial.GameState.
func (s *State) IsLose() bool { return s.node.Lose }

// Score implements adversarial.GameState.
func (s *State) Score() float64 { return s.node.Value }

// RandomTree returns a tree with numLevels levels of branches (each level one agent's move) with
// 1 to maxBranching children each, and integer leaf values in [0, maxValue). Intermediate nodes
// also get random values, used if the search depth limit cuts there.
//
// Integer values make ties frequent, which exercises the tie-breaking rules.
func RandomTree(rng *rand.Rand, numLevels, maxBranching, maxValue int) *Node {
	node := &Node{Value: float64(rng.IntN(maxValue))}
	if numLevels == 0 {
		return node
	}
	numChildren := 1 + rng.IntN(maxBranching)
	node.Children = make([]*Node, numChildren)
	for ii := range node.Children {
		node.Children[ii] = RandomTree(rng, numLevels-1, maxBranching, maxValue)
	}
	return node
}

// String pretty-prints the tree, one node per line: useful in test failure messages.
func (n *Node) String() string {
	var sb strings.Builder
	n.write(&sb, 0)
	return sb.String()
}

func (n *Node) write(sb *strings.Builder, indent int) {
	fmt.Fprintf(sb, "%s%g", strings.Repeat("  ", indent), n.Value)
	if n.Win {
		sb.WriteString(" (win)")
	}
	if n.Lose {
		sb.WriteString(" (lose)")
	}
	sb.WriteString("\n")
	for _, child := range n.Children {
		child.write(sb, indent+1)
	}
}
