package engine

import (
	"testing"

	"connectn/game"
	"connectn/searcher"
	"connectn/searcher/agent"

	"github.com/stretchr/testify/require"
)

func TestLocalEngine(t *testing.T) {
	t.Run("rejects invalid boards", func(t *testing.T) {
		_, err := LocalEngine(Settings{Rows: 2, Cols: 2, WinLength: 3},
			[2]agent.Agent{agent.NewRandomAgent(1), agent.NewRandomAgent(2)})
		require.ErrorIs(t, err, game.ErrInvalidWinLength)
	})

	t.Run("plays random games to the end", func(t *testing.T) {
		for seed := uint64(1); seed <= 10; seed++ {
			e, err := LocalEngine(Settings{Rows: 4, Cols: 4, WinLength: 3},
				[2]agent.Agent{agent.NewRandomAgent(seed), agent.NewRandomAgent(seed + 100)})
			require.NoError(t, err)

			winner, gameMetric, moveMetrics := e.Run()

			require.Equal(t, winner, gameMetric.Winner)
			require.Len(t, moveMetrics, gameMetric.TotalMoves)
			require.False(t, gameMetric.EndTime.Before(gameMetric.StartTime))
			for i, mm := range moveMetrics {
				require.Equal(t, i+1, mm.Step)
				if i%2 == 0 {
					require.Equal(t, game.PlayerA, mm.Player)
				} else {
					require.Equal(t, game.PlayerB, mm.Player)
				}
			}
			if winner == game.None {
				require.Equal(t, 16, gameMetric.TotalMoves, "A draw fills the board")
			} else {
				require.Equal(t, winner, moveMetrics[len(moveMetrics)-1].Player, "The last mover wins")
			}
		}
	})

	t.Run("search beats random", func(t *testing.T) {
		e, err := LocalEngine(Settings{Rows: 5, Cols: 5, WinLength: 3}, [2]agent.Agent{
			agent.NewSearchAgent(searcher.NewMinimax(searcher.WithDepth(2), searcher.WithMetrics())),
			agent.NewRandomAgent(3),
		})
		require.NoError(t, err)

		winner, _, moveMetrics := e.Run()

		require.Equal(t, game.PlayerA, winner)
		require.Greater(t, moveMetrics[0].Nodes, int64(0), "Search moves carry metrics")
		require.Zero(t, moveMetrics[1].Nodes, "Random moves carry none")
	})
}
