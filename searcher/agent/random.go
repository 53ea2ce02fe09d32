package agent

import (
	"connectn/game"
	"connectn/searcher"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent returns a baseline agent that plays uniformly among all legal moves.
// The same seed replays the same choices.
func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) FindMove(b *game.Board) (game.Position, bool, searcher.SearchMetrics) {
	moves := b.LegalMoves()
	if len(moves) == 0 {
		return game.Position{}, false, searcher.SearchMetrics{}
	}
	return moves[a.rng.Intn(len(moves))], true, searcher.SearchMetrics{}
}

func (a *randomAgent) Name() string {
	return "random"
}
