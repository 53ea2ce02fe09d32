package searcher

import (
	"math"

	"connectn/game"
)

// Infinity bounds the search window. Every reachable board score lies strictly inside
// (-Infinity, Infinity).
const Infinity int64 = math.MaxInt64

// DefaultDepth is the number of plies searched when no depth is configured.
const DefaultDepth = 4

// Result is the outcome of a search. Found is false when the node had no move to choose,
// i.e. the depth was exhausted or the position offered no candidate.
type Result struct {
	Score int64
	Move  game.Position
	Found bool
}

// Searcher picks a move for the side to play on b and reports how the search went.
type Searcher interface {
	FindMove(b *game.Board) (Result, SearchMetrics)
}
