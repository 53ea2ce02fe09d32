package searcher

import (
	"connectn/game"

	"github.com/rs/zerolog/log"
)

type Option func(m *Minimax)

// Minimax searches the game tree to a fixed depth on the smart move list, scoring leaves with
// the board's running score. X maximizes, O minimizes.
//
// The board is searched in place: every move is applied and taken back, so a Minimax must not
// be used on a board that anything else touches during FindMove.
type Minimax struct {
	depth   int
	pruning bool
	metrics bool
}

func WithDepth(depth int) Option {
	return func(m *Minimax) {
		if depth > 0 {
			m.depth = depth
		}
	}
}

// WithoutPruning switches to plain minimax. It returns the same scores as alpha-beta, only
// slower, and exists to check the pruned search against.
func WithoutPruning() Option {
	return func(m *Minimax) {
		m.pruning = false
	}
}

func WithMetrics() Option {
	return func(m *Minimax) {
		m.metrics = true
	}
}

func NewMinimax(options ...Option) *Minimax {
	m := &Minimax{ // Default values
		depth:   DefaultDepth,
		pruning: true,
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *Minimax) Depth() int {
	return m.depth
}

// SetDepth changes the depth used by later searches. Non-positive depths are ignored.
func (m *Minimax) SetDepth(depth int) {
	if depth > 0 {
		m.depth = depth
	}
}

func (m *Minimax) Pruning() bool {
	return m.pruning
}

// FindMove searches from the side to play with a full window and returns the chosen move.
func (m *Minimax) FindMove(b *game.Board) (Result, SearchMetrics) {
	s := &search{board: b, metrics: m.newCollector()}
	maximizing := b.WhoseTurn() == game.PlayerA

	s.metrics.Start(m.depth, m.pruning)
	var result Result
	if m.pruning {
		result = s.alphaBeta(m.depth, maximizing, -Infinity, Infinity)
	} else {
		result = s.minimax(m.depth, maximizing)
	}
	metrics := s.metrics.Complete()

	log.Debug().Msgf("searched depth %d for %s: move=%v found=%t score=%d nodes=%d cutoffs=%d in %s",
		m.depth, b.WhoseTurn(), result.Move, result.Found, result.Score, metrics.Nodes, metrics.Cutoffs, metrics.Duration)

	return result, metrics
}

// Search runs alpha-beta from the current position with the given depth and window.
func (m *Minimax) Search(b *game.Board, depth int, maximizing bool, alpha, beta int64) Result {
	s := &search{board: b, metrics: NewNoMetricsCollector()}
	return s.alphaBeta(depth, maximizing, alpha, beta)
}

func (m *Minimax) newCollector() MetricsCollector {
	if m.metrics {
		return NewMetricsCollector()
	}
	return NewNoMetricsCollector()
}

type search struct {
	board   *game.Board
	metrics MetricsCollector
}

// alphaBeta keeps the best score for the maximizer in alpha and for the minimizer in beta,
// remembers the move only on strict improvement, and stops once alpha >= beta.
func (s *search) alphaBeta(depth int, maximizing bool, alpha, beta int64) Result {
	s.metrics.AddNode()

	moves := s.board.SmartLegalMoves()
	if len(moves) == 0 || depth == 0 {
		s.metrics.AddLeaf()
		return Result{Score: s.board.Score()}
	}

	var bestMove game.Position
	found := false
	for _, move := range moves {
		score := s.play(move, func() Result {
			return s.alphaBeta(depth-1, !maximizing, alpha, beta)
		}).Score

		if maximizing {
			if score > alpha {
				alpha = score
				bestMove, found = move, true
			}
		} else {
			if score < beta {
				beta = score
				bestMove, found = move, true
			}
		}

		if alpha >= beta {
			s.metrics.AddCutoff()
			break
		}
	}

	if maximizing {
		return Result{Score: alpha, Move: bestMove, Found: found}
	}
	return Result{Score: beta, Move: bestMove, Found: found}
}

func (s *search) minimax(depth int, maximizing bool) Result {
	s.metrics.AddNode()

	moves := s.board.SmartLegalMoves()
	if len(moves) == 0 || depth == 0 {
		s.metrics.AddLeaf()
		return Result{Score: s.board.Score()}
	}

	best := Result{Score: Infinity}
	if maximizing {
		best.Score = -Infinity
	}
	for _, move := range moves {
		score := s.play(move, func() Result {
			return s.minimax(depth-1, !maximizing)
		}).Score

		if (maximizing && score > best.Score) || (!maximizing && score < best.Score) {
			best = Result{Score: score, Move: move, Found: true}
		}
	}
	return best
}

// play evaluates next with move on the board and always takes the move back.
func (s *search) play(move game.Position, next func() Result) Result {
	undo := s.board.Apply(move)
	defer undo()
	return next()
}
