package agent

import (
	"fmt"

	"connectn/game"
	"connectn/searcher"
)

type searchAgent struct {
	minimax *searcher.Minimax
}

// NewSearchAgent returns an agent that plays the move chosen by minimax.
func NewSearchAgent(minimax *searcher.Minimax) Agent {
	return searchAgent{minimax: minimax}
}

func (a searchAgent) FindMove(b *game.Board) (game.Position, bool, searcher.SearchMetrics) {
	result, metrics := a.minimax.FindMove(b)
	return result.Move, result.Found, metrics
}

func (a searchAgent) Name() string {
	if !a.minimax.Pruning() {
		return fmt.Sprintf("minimax(depth=%d)", a.minimax.Depth())
	}
	return fmt.Sprintf("alphabeta(depth=%d)", a.minimax.Depth())
}
