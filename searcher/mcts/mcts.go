package mcts

import (
	"sync"
	"time"

	"connectn/game"
	"connectn/searcher"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(m *MCTS)

// MCTS is a parallel UCT search: goroutines share one tree and spread out with virtual loss.
// Every worker plays on its own copy of the board and takes its moves back after each episode.
type MCTS struct {
	goroutines int
	duration   time.Duration
	episodes   int
	cutoff     int // 0 plays every rollout to the end
	seed       uint64
	metrics    bool
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithEpisodes(episodes int) Option {
	return func(m *MCTS) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

// WithCutoff stops rollouts after depth plies; the sign of the board score then decides them.
func WithCutoff(depth int) Option {
	return func(m *MCTS) {
		if depth > 0 {
			m.cutoff = depth
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.seed = seed
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = true
	}
}

func NewMCTS(goroutines int, options ...Option) *MCTS {
	m := &MCTS{ // Default values
		goroutines: max(goroutines, 1),
		seed:       1,
	}
	for _, option := range options {
		option(m)
	}
	if m.episodes <= 0 && m.duration <= 0 {
		panic("Must specify search episodes or duration")
	}
	return m
}

func (m *MCTS) Goroutines() int {
	return m.goroutines
}

// FindMove simulates from b and returns the most visited move, false if b offers none.
// b itself is not modified.
func (m *MCTS) FindMove(b *game.Board) (game.Position, bool, searcher.SearchMetrics) {
	root := newNode(nil, game.None, b)
	if len(root.moves) == 0 {
		return game.Position{}, false, searcher.SearchMetrics{}
	}

	collector := NewNoMetricsCollector()
	if m.metrics {
		collector = NewMetricsCollector()
	}

	collector.Start(m.goroutines, m.cutoff)
	if m.episodes > 0 {
		m.iterate(root, b, collector)
	} else {
		m.countdown(root, b, collector)
	}
	metrics := collector.Complete()

	move, ok := root.bestMove()
	log.Debug().Msgf("mcts with %d goroutines for %s: move=%v after %d episodes in %s",
		m.goroutines, b.WhoseTurn(), move, metrics.Episodes, metrics.Duration)
	return move, ok, metrics
}

func (m *MCTS) iterate(root *node, b *game.Board, collector MetricsCollector) {
	task := make(chan any, m.episodes)
	for i := 0; i < m.episodes; i++ {
		task <- nil
	}
	close(task)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func(worker uint64) {
			defer wg.Done()

			board := b.Clone()
			rng := rand.New(rand.NewSource(m.seed + worker))
			for range task {
				simulate(root, board, m.cutoff, rng, collector)
			}
		}(uint64(i))
	}

	wg.Wait()
}

func (m *MCTS) countdown(root *node, b *game.Board, collector MetricsCollector) {
	done := make(chan any)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func(worker uint64) {
			defer wg.Done()

			board := b.Clone()
			rng := rand.New(rand.NewSource(m.seed + worker))
			for {
				select {
				case <-done:
					return
				default:
					simulate(root, board, m.cutoff, rng, collector)
				}
			}
		}(uint64(i))
	}

	<-time.After(m.duration)
	close(done)
	wg.Wait()
}

// simulate runs one episode on b and restores b afterwards.
func simulate(root *node, b *game.Board, cutoff int, rng *rand.Rand, collector MetricsCollector) {
	leaf, plies := selectThenExpand(root, b, collector)
	winner, rolled := rollout(b, cutoff, rng, collector)
	for i := 0; i < plies+rolled; i++ {
		b.UndoMove()
	}
	backup(leaf, winner)
	collector.AddEpisode()
}

func selectThenExpand(root *node, b *game.Board, collector MetricsCollector) (*node, int) {
	plies := 0
	parent := root
	for {
		child, selected := parent.selectOrExpand(b)
		if child == parent { // Terminal
			return child, plies
		}
		plies++
		if !selected {
			collector.AddNode()
			return child, plies
		}
		parent = child
	}
}

func rollout(b *game.Board, cutoff int, rng *rand.Rand, collector MetricsCollector) (game.Player, int) {
	plies := 0
	// Rollout till game over or for cutoff number of moves
	for !b.IsOver() && (cutoff == 0 || plies < cutoff) {
		moves := b.LegalMoves()
		b.MakeMove(moves[rng.Intn(len(moves))]) // Random rollout policy
		plies++
	}

	if b.IsOver() {
		collector.AddFullPlayout()
		return b.Winner(), plies
	}

	switch score := b.Score(); {
	case score > 0:
		return game.PlayerA, plies
	case score < 0:
		return game.PlayerB, plies
	default:
		return game.None, plies
	}
}

func backup(leaf *node, winner game.Player) {
	n := leaf
	for n != nil {
		n = n.backup(winner)
	}
}
