package agent

import (
	"connectn/game"
	"connectn/searcher"
)

type Agent interface {
	// FindMove returns the move to play on b (false if there is none) and search metrics (if collected)
	FindMove(b *game.Board) (game.Position, bool, searcher.SearchMetrics)
	Name() string
}
