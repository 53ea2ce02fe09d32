package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSmartLegalMoves(t *testing.T) {
	t.Run("empty board opens in the centre", func(t *testing.T) {
		tests := []struct {
			rows, cols, winLength int
			center                Position
		}{
			{1, 1, 1, Position{0, 0}},
			{3, 3, 3, Position{1, 1}},
			{4, 6, 3, Position{2, 3}},
			{5, 4, 4, Position{2, 2}},
			{19, 19, 5, Position{9, 9}},
		}
		for _, tt := range tests {
			b := newTestBoard(t, tt.rows, tt.cols, tt.winLength)
			require.Equal(t, []Position{tt.center}, b.SmartLegalMoves(), "%dx%d", tt.rows, tt.cols)
		}
	})

	t.Run("no moves once someone has won", func(t *testing.T) {
		b := newTestBoard(t, 3, 3, 3)
		playAll(t, b, Position{0, 0}, Position{1, 0}, Position{0, 1}, Position{1, 1}, Position{0, 2})
		require.Empty(t, b.SmartLegalMoves())
	})

	t.Run("candidates are empty, distinct and sorted by weight", func(t *testing.T) {
		b := newTestBoard(t, 7, 7, 4)
		playAll(t, b, Position{3, 3}, Position{3, 4}, Position{2, 2}, Position{4, 4}, Position{1, 1})

		candidates := b.Candidates()
		seen := map[Position]bool{}
		for i, c := range candidates {
			require.True(t, b.IsLegalMove(c.Position), "%v should be legal", c.Position)
			require.False(t, seen[c.Position], "%v listed twice", c.Position)
			seen[c.Position] = true
			if i > 0 {
				require.GreaterOrEqual(t, candidates[i-1].Weight, c.Weight)
			}
		}
	})

	t.Run("centre then neighbour on 5x5 with three to win", func(t *testing.T) {
		b := newTestBoard(t, 5, 5, 3)
		center, neighbour := Position{2, 2}, Position{2, 3}
		playAll(t, b, center, neighbour)

		// Every empty cell on a line through either played cell.
		want := map[Position]bool{}
		for _, line := range b.lines {
			touches := false
			for _, index := range line.cells {
				p := b.PositionOf(index)
				if p == center || p == neighbour {
					touches = true
				}
			}
			if !touches {
				continue
			}
			for _, index := range line.cells {
				if b.cells[index].IsEmpty() {
					want[b.PositionOf(index)] = true
				}
			}
		}

		candidates := b.Candidates()
		got := map[Position]int64{}
		for i, c := range candidates {
			got[c.Position] = c.Weight
			if i > 0 {
				require.GreaterOrEqual(t, candidates[i-1].Weight, c.Weight)
			}
		}
		require.Len(t, candidates, len(want))
		for p := range want {
			require.Contains(t, got, p)
		}

		// The four cells next to both stones sit on two open lines of each colour; ties keep
		// the order in which the centre's lines surfaced them.
		require.Equal(t, []Position{{1, 2}, {1, 3}, {3, 3}, {3, 2}}, b.SmartLegalMoves()[:4])
		for _, c := range candidates[:4] {
			require.Equal(t, int64(4), c.Weight)
		}
		require.Equal(t, int64(2), got[Position{1, 1}])
		require.Equal(t, int64(1), got[Position{2, 1}], "Only the open X line through (2,1) counts")
		require.Equal(t, int64(1), got[Position{2, 0}])
		require.Equal(t, int64(0), got[Position{2, 4}], "Blocked lines surface moves with no weight")
	})

	t.Run("a line shared by two past moves counts for each", func(t *testing.T) {
		b := newTestBoard(t, 1, 5, 5)
		playAll(t, b, Position{0, 0}, Position{0, 4}, Position{0, 1})
		// The single line is blocked, every empty cell still surfaces once.
		require.Equal(t, []Position{{0, 2}, {0, 3}}, b.SmartLegalMoves())

		b = newTestBoard(t, 3, 3, 3)
		playAll(t, b, Position{0, 0}, Position{2, 2}, Position{0, 1})
		got := map[Position]int64{}
		for _, c := range b.Candidates() {
			got[c.Position] = c.Weight
		}
		// Row 0 holds two Xs (score 16) and was reached from both (0,0) and (0,1).
		// (0,2) also lies on column 2 with the O at (2,2) (score -1) and on the
		// anti-diagonal through (1,1) which no past move surfaces.
		require.Equal(t, int64(16+16+1), got[Position{0, 2}])
	})
}
