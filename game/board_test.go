package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func newTestBoard(t *testing.T, rows, cols, winLength int) *Board {
	t.Helper()
	b, err := NewBoard(rows, cols, winLength)
	require.NoError(t, err)
	return b
}

// recomputedScore sums every line's score from scratch, ignoring the running total.
func recomputedScore(b *Board) int64 {
	var total int64
	for _, line := range b.lines {
		fresh := Line{cells: line.cells}
		fresh.CalculateScore(b.cells)
		total += fresh.score
	}
	return total
}

func playAll(t *testing.T, b *Board, moves ...Position) {
	t.Helper()
	for _, m := range moves {
		require.NoError(t, b.Play(m))
	}
}

func TestNewBoard(t *testing.T) {
	t.Run("rejects invalid dimensions", func(t *testing.T) {
		_, err := NewBoard(0, 3, 3)
		require.ErrorIs(t, err, ErrInvalidDimensions)

		_, err = NewBoard(3, -1, 3)
		require.ErrorIs(t, err, ErrInvalidDimensions)
	})

	t.Run("rejects invalid win lengths", func(t *testing.T) {
		_, err := NewBoard(3, 3, 0)
		require.ErrorIs(t, err, ErrInvalidWinLength)

		_, err = NewBoard(3, 3, 4)
		require.ErrorIs(t, err, ErrInvalidWinLength)

		_, err = NewBoard(20, 20, MaxWinLength+1)
		require.ErrorIs(t, err, ErrInvalidWinLength)
	})

	t.Run("rejects boards whose total score could overflow", func(t *testing.T) {
		b := newTestBoard(t, 1, 15, MaxWinLength)
		require.Equal(t, 1, b.NumLines())

		_, err := NewBoard(200, 200, MaxWinLength)
		require.ErrorIs(t, err, ErrBoardTooLarge)

		_, err = NewBoard(100, 100, 5)
		require.NoError(t, err, "Short lines leave plenty of room")
	})

	t.Run("counts lines before building them", func(t *testing.T) {
		for _, size := range [][3]int{{3, 3, 3}, {5, 5, 3}, {6, 7, 4}, {1, 5, 5}, {4, 9, 2}} {
			b := newTestBoard(t, size[0], size[1], size[2])
			require.Equal(t, int64(b.NumLines()), countLines(size[0], size[1], size[2]), "%v", size)
		}
	})

	t.Run("win length may use the longer side", func(t *testing.T) {
		b := newTestBoard(t, 1, 5, 5)
		require.Equal(t, 1, b.NumLines(), "Only the single horizontal line fits")
	})

	t.Run("builds every line that fits", func(t *testing.T) {
		tests := []struct {
			rows, cols, winLength, lines int
		}{
			{3, 3, 3, 8},
			{5, 5, 3, 48},
			{19, 19, 5, 1020},
			{6, 7, 4, 69},
		}
		for _, tt := range tests {
			b := newTestBoard(t, tt.rows, tt.cols, tt.winLength)
			require.Equal(t, tt.lines, b.NumLines(), "%dx%d with %d to win", tt.rows, tt.cols, tt.winLength)
		}
	})

	t.Run("lines and cells reference each other", func(t *testing.T) {
		b := newTestBoard(t, 5, 5, 3)
		for id := 0; id < b.NumLines(); id++ {
			line := b.Line(id)
			require.Len(t, line.Cells(), 3)
			for _, index := range line.Cells() {
				require.Contains(t, b.cells[index].Lines(), id)
			}
		}
	})

	t.Run("lines through a cell keep construction order", func(t *testing.T) {
		b := newTestBoard(t, 5, 5, 3)
		cell := b.Cell(Position{Row: 2, Col: 2})
		require.Len(t, cell.Lines(), 12)

		first := b.Line(cell.Lines()[0])
		positions := []Position{}
		for _, index := range first.Cells() {
			positions = append(positions, b.PositionOf(index))
		}
		require.Equal(t, []Position{{0, 0}, {1, 1}, {2, 2}}, positions,
			"The down-right diagonal anchored at the corner is built first")

		lines := b.Lines(Position{Row: 2, Col: 2})
		require.Len(t, lines, 12)
		require.Equal(t, first.ID(), lines[0].ID())
	})

	t.Run("starts empty", func(t *testing.T) {
		b := newTestBoard(t, 3, 4, 3)
		require.Equal(t, int64(0), b.Score())
		require.Equal(t, None, b.Winner())
		require.Empty(t, b.History())
		require.Len(t, b.LegalMoves(), 12)
	})
}

func TestBoardTurnsAndLegality(t *testing.T) {
	t.Run("turns alternate starting with X", func(t *testing.T) {
		b := newTestBoard(t, 3, 3, 3)
		require.Equal(t, PlayerA, b.WhoseTurn())
		b.MakeMove(Position{0, 0})
		require.Equal(t, PlayerB, b.WhoseTurn())
		b.MakeMove(Position{1, 1})
		require.Equal(t, PlayerA, b.WhoseTurn())
		require.Equal(t, PlayerA, b.Occupant(Position{0, 0}))
		require.Equal(t, PlayerB, b.Occupant(Position{1, 1}))
	})

	t.Run("occupied and out of bounds positions are illegal", func(t *testing.T) {
		b := newTestBoard(t, 3, 3, 3)
		b.MakeMove(Position{0, 0})
		require.False(t, b.IsLegalMove(Position{0, 0}))
		require.False(t, b.IsLegalMove(Position{3, 0}))
		require.False(t, b.IsLegalMove(Position{0, -1}))
		require.True(t, b.IsLegalMove(Position{2, 2}))
	})

	t.Run("legal moves are row-major empty cells", func(t *testing.T) {
		b := newTestBoard(t, 2, 2, 2)
		b.MakeMove(Position{0, 1})
		require.Equal(t, []Position{{0, 0}, {1, 0}, {1, 1}}, b.LegalMoves())
	})

	t.Run("checked play reports errors", func(t *testing.T) {
		b := newTestBoard(t, 3, 3, 3)
		require.ErrorIs(t, b.Play(Position{5, 5}), ErrOutOfBounds)
		require.NoError(t, b.Play(Position{1, 1}))
		require.ErrorIs(t, b.Play(Position{1, 1}), ErrIllegalMove)
		require.Len(t, b.History(), 1)
	})

	t.Run("checked undo reports empty history", func(t *testing.T) {
		b := newTestBoard(t, 3, 3, 3)
		require.ErrorIs(t, b.Undo(), ErrEmptyHistory)
	})

	t.Run("unchecked operations panic on contract violations", func(t *testing.T) {
		b := newTestBoard(t, 3, 3, 3)
		require.Panics(t, func() { b.UndoMove() })
		b.MakeMove(Position{0, 0})
		require.Panics(t, func() { b.MakeMove(Position{0, 0}) })
	})
}

func TestBoardWinner(t *testing.T) {
	t.Run("completing a line wins and stops play", func(t *testing.T) {
		b := newTestBoard(t, 3, 3, 3)
		playAll(t, b, Position{0, 0}, Position{1, 0}, Position{0, 1}, Position{1, 1}, Position{0, 2})

		require.Equal(t, PlayerA, b.Winner())
		require.True(t, b.IsOver())
		require.Empty(t, b.LegalMoves())
		require.False(t, b.IsLegalMove(Position{2, 2}))
		require.ErrorIs(t, b.Play(Position{2, 2}), ErrIllegalMove)
		require.Equal(t, recomputedScore(b), b.Score())
	})

	t.Run("O wins with a negative line", func(t *testing.T) {
		b := newTestBoard(t, 3, 3, 3)
		playAll(t, b, Position{0, 0}, Position{1, 0}, Position{0, 1}, Position{1, 1}, Position{2, 2}, Position{1, 2})

		require.Equal(t, PlayerB, b.Winner())
		require.Less(t, b.Score(), int64(0))
	})

	t.Run("undo clears the winner", func(t *testing.T) {
		b := newTestBoard(t, 3, 3, 3)
		playAll(t, b, Position{0, 0}, Position{1, 0}, Position{0, 1}, Position{1, 1}, Position{0, 2})
		require.Equal(t, PlayerA, b.Winner())

		b.UndoMove()

		require.Equal(t, None, b.Winner())
		require.True(t, b.IsLegalMove(Position{0, 2}))
	})

	t.Run("undo clears the winner even when a completed line remains", func(t *testing.T) {
		b := newTestBoard(t, 2, 2, 1)
		b.MakeMove(Position{0, 0})
		require.Equal(t, PlayerA, b.Winner())

		// Reach a second completed line behind the board's back, then undo it.
		b.winner = None
		b.MakeMove(Position{1, 1})
		require.Equal(t, PlayerB, b.Winner())

		b.UndoMove()

		require.Equal(t, None, b.Winner(), "Undo never restores an earlier winner")
		require.Equal(t, PlayerA, b.Line(b.Cell(Position{0, 0}).Lines()[0]).Winner())
	})

	t.Run("board fills without a winner", func(t *testing.T) {
		b := newTestBoard(t, 3, 3, 3)
		playAll(t, b,
			Position{0, 0}, Position{0, 1}, Position{0, 2},
			Position{1, 1}, Position{1, 0}, Position{1, 2},
			Position{2, 1}, Position{2, 0}, Position{2, 2},
		)
		require.Equal(t, None, b.Winner())
		require.True(t, b.IsFull())
		require.True(t, b.IsOver())
		require.Empty(t, b.LegalMoves())
	})
}

func TestBoardMakeUndo(t *testing.T) {
	t.Run("undo restores occupant, line scores and total", func(t *testing.T) {
		b := newTestBoard(t, 5, 5, 3)
		playAll(t, b, Position{2, 2}, Position{2, 3}, Position{1, 1})

		p := Position{3, 3}
		cell := b.Cell(p)
		before := map[int]int64{}
		for _, id := range cell.Lines() {
			before[id] = b.Line(id).Score()
		}
		total := b.Score()

		b.MakeMove(p)
		require.NotEqual(t, total, b.Score())
		b.UndoMove()

		require.Equal(t, None, b.Occupant(p))
		require.Equal(t, total, b.Score())
		for id, score := range before {
			require.Equal(t, score, b.Line(id).Score(), "line %d", id)
		}
		require.Len(t, b.History(), 3)
	})

	t.Run("clone is independent", func(t *testing.T) {
		b := newTestBoard(t, 5, 5, 3)
		playAll(t, b, Position{2, 2}, Position{2, 3})

		c := b.Clone()
		require.Equal(t, b.Score(), c.Score())
		require.Equal(t, b.History(), c.History())

		c.MakeMove(Position{1, 1})
		require.Equal(t, None, b.Occupant(Position{1, 1}))
		require.Len(t, b.History(), 2)
		require.Equal(t, recomputedScore(b), b.Score())
		require.Equal(t, recomputedScore(c), c.Score())
		require.NotEqual(t, b.Score(), c.Score())
	})

	t.Run("apply returns a scoped undo", func(t *testing.T) {
		b := newTestBoard(t, 3, 3, 3)
		func() {
			undo := b.Apply(Position{1, 1})
			defer undo()
			require.Equal(t, PlayerA, b.Occupant(Position{1, 1}))
			require.Equal(t, int64(4), b.Score())
		}()
		require.Equal(t, None, b.Occupant(Position{1, 1}))
		require.Equal(t, int64(0), b.Score())
		require.Empty(t, b.History())
	})

	t.Run("apply undo refuses to run out of order", func(t *testing.T) {
		b := newTestBoard(t, 3, 3, 3)
		undo := b.Apply(Position{0, 0})
		b.MakeMove(Position{1, 1})
		require.Panics(t, func() { undo() })
	})

	t.Run("score stays consistent over random games", func(t *testing.T) {
		for seed := uint64(1); seed <= 20; seed++ {
			r := rand.New(rand.NewSource(seed))
			b := newTestBoard(t, 6, 7, 4)

			scores := []int64{b.Score()}
			for !b.IsOver() {
				moves := b.LegalMoves()
				b.MakeMove(moves[r.Intn(len(moves))])
				require.Equal(t, recomputedScore(b), b.Score(), "seed %d ply %d", seed, len(b.History()))
				scores = append(scores, b.Score())
			}

			for len(b.History()) > 0 {
				b.UndoMove()
				require.Equal(t, scores[len(b.History())], b.Score(), "seed %d", seed)
				require.Equal(t, recomputedScore(b), b.Score())
			}
			require.Equal(t, int64(0), b.Score())
			require.Len(t, b.LegalMoves(), 42)
		}
	})
}

func TestBoardString(t *testing.T) {
	b := newTestBoard(t, 2, 3, 2)
	b.MakeMove(Position{0, 1})
	b.MakeMove(Position{1, 2})

	require.Equal(t, "     0  1  2\n  0  .  X  .\n  1  .  .  O\n", b.String())
}
