package mcts

import (
	"math"
	"sync"

	"connectn/game"
)

// node is a position in the search tree. Its statistics are from the point of view of mover,
// the player whose move led to it, so a parent always picks the child with the best score.
type node struct {
	sync.RWMutex
	parent   *node
	mover    game.Player
	moves    []game.Position // expanded in order, heaviest first
	children []*node
	rewards  float64
	visits   float64
}

// newNode creates the node for the position on b. b must already reflect the node's move.
func newNode(parent *node, mover game.Player, b *game.Board) *node {
	moves := b.SmartLegalMoves()
	return &node{
		parent:   parent,
		mover:    mover,
		moves:    moves,
		children: make([]*node, 0, len(moves)),
	}
}

// selectOrExpand either adds the next unexplored child (selected false) or descends to the
// child with the best UCT score (selected true), playing the child's move on b either way.
// A terminal node returns itself and leaves b unchanged.
func (n *node) selectOrExpand(b *game.Board) (*node, bool) {
	n.Lock()
	defer n.Unlock()

	if len(n.moves) == 0 { // Terminal node
		return n, false
	}

	if len(n.moves) > len(n.children) { // Expandable node
		move := n.moves[len(n.children)]
		mover := b.WhoseTurn()
		b.MakeMove(move)
		child := newNode(n, mover, b)
		child.applyLoss()
		n.children = append(n.children, child)
		return child, false
	}

	// Fully expanded node
	ith := n.pickChild()
	child := n.children[ith]
	b.MakeMove(n.moves[ith])
	child.applyLoss()
	return child, true
}

func (n *node) pickChild() int {
	total := 0.0
	for _, child := range n.children {
		total += child.Visits()
	}
	policy := newUCT(CSquared, total)

	maxIndex := -1
	maxScore := math.Inf(-1)
	for i, child := range n.children {
		if score := child.score(policy); score > maxScore {
			maxScore = score
			maxIndex = i
		}
	}
	return maxIndex
}

// applyLoss records a virtual loss so that concurrent workers spread over other children.
func (n *node) applyLoss() {
	n.Lock()
	defer n.Unlock()

	n.rewards += Loss
	n.visits++
}

func (n *node) score(policy *uct) float64 {
	n.RLock()
	defer n.RUnlock()

	return policy.evaluate(n.rewards, n.visits)
}

// backup replaces the virtual loss with the playout's reward and returns the parent.
func (n *node) backup(winner game.Player) *node {
	n.Lock()
	defer n.Unlock()

	if n.parent != nil { // Non-root node
		n.reverseLoss()
	}

	n.rewards += reward(winner, n.mover)
	n.visits++

	return n.parent
}

func (n *node) reverseLoss() {
	n.rewards -= Loss
	n.visits--
}

func (n *node) Visits() float64 {
	n.RLock()
	defer n.RUnlock()

	return n.visits
}

// bestMove returns the move of the most visited child, the first one on ties.
func (n *node) bestMove() (game.Position, bool) {
	n.RLock()
	defer n.RUnlock()

	if len(n.children) == 0 {
		return game.Position{}, false
	}

	bestIndex := 0
	maxVisits := n.children[0].Visits()
	for i, child := range n.children[1:] {
		if v := child.Visits(); v > maxVisits {
			maxVisits = v
			bestIndex = i + 1
		}
	}
	return n.moves[bestIndex], true
}
