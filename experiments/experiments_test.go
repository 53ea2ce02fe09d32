package experiments

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"connectn/engine"

	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestRunDepthExperiment(t *testing.T) {
	t.Run("plays every matchup and stores the records", func(t *testing.T) {
		settings := engine.Settings{Rows: 4, Cols: 4, WinLength: 3}

		results, dir, err := RunDepthExperiment(settings, []int{1, 2}, 2, t.TempDir())

		require.NoError(t, err)
		require.Len(t, results, 4, "Each depth meets the baseline and the random agent")
		for _, r := range results {
			require.Equal(t, 2, r.Wins+r.Losses+r.Draws)
		}
		require.Equal(t, 2, results[2].Candidate.Depth)
		require.True(t, results[1].Opponent.Random)

		configs := readCSV(t, filepath.Join(dir, "agent_configs.csv"))
		require.Len(t, configs, 1+4)
		require.Equal(t, []string{"id", "depth", "pruning", "random", "seed", "goroutines", "episodes"}, configs[0])

		games := readCSV(t, filepath.Join(dir, "game_records.csv"))
		require.Len(t, games, 1+8)
		require.Equal(t, games[1][1], games[2][2], "Sides alternate within a matchup")

		moves := readCSV(t, filepath.Join(dir, "move_records.csv"))
		require.Greater(t, len(moves), 8)
	})

	t.Run("fails on an invalid board", func(t *testing.T) {
		_, _, err := RunDepthExperiment(engine.Settings{Rows: 2, Cols: 2, WinLength: 5}, []int{1}, 1, t.TempDir())
		require.Error(t, err)
	})
}

func TestRunMCTSExperiment(t *testing.T) {
	settings := engine.Settings{Rows: 3, Cols: 3, WinLength: 3}

	results, dir, err := RunMCTSExperiment(settings, []int{1, 2}, 50, 2, t.TempDir())

	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, 2, results[1].Candidate.Goroutines)
	require.Equal(t, 1, results[0].Opponent.Depth)
	for _, r := range results {
		require.Equal(t, 2, r.Wins+r.Losses+r.Draws)
	}

	configs := readCSV(t, filepath.Join(dir, "agent_configs.csv"))
	require.Len(t, configs, 1+3)
	require.Equal(t, []string{"2", "0", "false", "false", "1", "1", "50"}, configs[2])

	moves := readCSV(t, filepath.Join(dir, "move_records.csv"))
	episodes := 0
	for _, row := range moves[1:] {
		if row[10] == "50" {
			episodes++
		}
	}
	require.Positive(t, episodes, "Tree search moves record their episodes")
}
