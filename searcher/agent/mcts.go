package agent

import (
	"fmt"

	"connectn/game"
	"connectn/searcher"
	"connectn/searcher/mcts"
)

type mctsAgent struct {
	mcts *mcts.MCTS
}

// NewMCTSAgent returns an agent that plays the most visited move of a tree search.
func NewMCTSAgent(mcts *mcts.MCTS) Agent {
	return mctsAgent{mcts: mcts}
}

func (a mctsAgent) FindMove(b *game.Board) (game.Position, bool, searcher.SearchMetrics) {
	return a.mcts.FindMove(b)
}

func (a mctsAgent) Name() string {
	return fmt.Sprintf("mcts(goroutines=%d)", a.mcts.Goroutines())
}
