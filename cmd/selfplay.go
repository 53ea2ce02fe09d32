package cmd

import (
	"fmt"
	"text/tabwriter"

	"connectn/experiments"
	"connectn/experiments/metrics"

	"github.com/spf13/cobra"
)

func newSelfPlayCommand(opts *options) *cobra.Command {
	var (
		games      int
		depths     []int
		outDir     string
		tree       bool
		goroutines []int
		episodes   int
	)

	cmd := &cobra.Command{
		Use:   "selfplay",
		Short: "Play search agents against a depth-1 baseline and record the games",
		Long: `Play each search depth against a depth-1 baseline and a random agent.
With --mcts, play a tree search agent per goroutine count against the baseline instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("games") {
				opts.config.Experiment.Games = games
			}
			if cmd.Flags().Changed("depths") {
				opts.config.Experiment.Depths = depths
			}
			if cmd.Flags().Changed("out") {
				opts.config.Experiment.OutDir = outDir
			}
			if cmd.Flags().Changed("goroutines") {
				opts.config.Experiment.MCTSGoroutines = goroutines
			}
			if cmd.Flags().Changed("episodes") {
				opts.config.Experiment.MCTSEpisodes = episodes
			}
			if err := opts.config.Validate(); err != nil {
				return err
			}

			exp := opts.config.Experiment
			var (
				results []experiments.Result
				dir     string
				err     error
			)
			if tree {
				results, dir, err = experiments.RunMCTSExperiment(opts.settings(), exp.MCTSGoroutines, exp.MCTSEpisodes, exp.Games, exp.OutDir)
			} else {
				results, dir, err = experiments.RunDepthExperiment(opts.settings(), exp.Depths, exp.Games, exp.OutDir)
			}
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "agent\topponent\twins\tlosses\tdraws")
			for _, r := range results {
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\n", describe(r.Candidate), describe(r.Opponent), r.Wins, r.Losses, r.Draws)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "records written to %s\n", dir)
			return nil
		},
	}

	cmd.Flags().IntVar(&games, "games", 0, "games per matchup (overrides the config)")
	cmd.Flags().IntSliceVar(&depths, "depths", nil, "search depths to evaluate (overrides the config)")
	cmd.Flags().StringVar(&outDir, "out", "", "directory for the CSV records (overrides the config)")
	cmd.Flags().BoolVar(&tree, "mcts", false, "evaluate tree search instead of search depths")
	cmd.Flags().IntSliceVar(&goroutines, "goroutines", nil, "tree search worker counts to evaluate (overrides the config)")
	cmd.Flags().IntVar(&episodes, "episodes", 0, "tree search episodes per move (overrides the config)")
	return cmd
}

func describe(config metrics.AgentConfig) string {
	if config.Random {
		return "random"
	}
	if config.Episodes > 0 {
		return fmt.Sprintf("mcts x%d", config.Goroutines)
	}
	return fmt.Sprintf("depth %d", config.Depth)
}
