package experiments

import (
	"fmt"

	"connectn/engine"
	"connectn/experiments/metrics"
	"connectn/game"
	"connectn/searcher"
	"connectn/searcher/agent"
	"connectn/searcher/mcts"

	"github.com/rs/zerolog/log"
)

// Opponent IDs shared by every depth experiment. Depth agents are numbered from 2.
const (
	baselineID = 0
	randomID   = 1
)

// Result summarizes the games of one matchup from the point of view of the candidate agent.
type Result struct {
	Candidate metrics.AgentConfig
	Opponent  metrics.AgentConfig
	Wins      int
	Losses    int
	Draws     int
}

// RunDepthExperiment plays every depth against a depth-1 baseline and a random agent, games
// times per matchup with the starting side alternating, and writes the records under outDir.
func RunDepthExperiment(settings engine.Settings, depths []int, games int, outDir string) ([]Result, string, error) {
	baseline := metrics.AgentConfig{ID: baselineID, Depth: 1, Pruning: true}
	random := metrics.AgentConfig{ID: randomID, Random: true, Seed: 1}

	configs := []metrics.AgentConfig{baseline, random}
	matchUps := [][]metrics.AgentConfig{}
	for i, depth := range depths {
		config := metrics.AgentConfig{ID: i + 2, Depth: depth, Pruning: !settings.NoPruning}
		configs = append(configs, config)
		matchUps = append(matchUps, []metrics.AgentConfig{config, baseline}, []metrics.AgentConfig{config, random})
	}

	return runExperiment("depth", settings, configs, matchUps, games, outDir)
}

// RunMCTSExperiment plays a tree search agent per goroutine count, each simulating episodes per
// move, against the depth-1 baseline.
func RunMCTSExperiment(settings engine.Settings, goroutines []int, episodes, games int, outDir string) ([]Result, string, error) {
	baseline := metrics.AgentConfig{ID: baselineID, Depth: 1, Pruning: true}

	configs := []metrics.AgentConfig{baseline}
	matchUps := [][]metrics.AgentConfig{}
	for i, n := range goroutines {
		config := metrics.AgentConfig{ID: i + 2, Goroutines: n, Episodes: episodes, Seed: 1}
		configs = append(configs, config)
		matchUps = append(matchUps, []metrics.AgentConfig{config, baseline})
	}

	return runExperiment("mcts", settings, configs, matchUps, games, outDir)
}

func runExperiment(name string, settings engine.Settings, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig,
	games int, outDir string) ([]Result, string, error) {
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}
	results := []Result{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchup := range matchUps {
		candidate, opponent := matchup[0], matchup[1]
		result := Result{Candidate: candidate, Opponent: opponent}

		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), candidate, opponent)

		for i := 0; i < games; i++ {
			// Alternate who plays X
			first, second := candidate, opponent
			if i%2 == 1 {
				first, second = opponent, candidate
			}

			winner, gameMetric, moveMetrics, err := runGame(settings, first, second, uint64(count))
			if err != nil {
				return nil, "", err
			}
			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent1:     first.ID,
				Agent2:     second.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			candidateSide := game.PlayerA
			if first != candidate {
				candidateSide = game.PlayerB
			}
			switch winner {
			case game.None:
				result.Draws++
			case candidateSide:
				result.Wins++
			default:
				result.Losses++
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %q", mi+1, len(matchUps), i+1, winner)
		}
		results = append(results, result)
		log.Info().Msgf("completed matchup %d of %d: %d wins, %d losses, %d draws",
			mi+1, len(matchUps), result.Wins, result.Losses, result.Draws)
	}

	log.Info().Msgf("completed %s experiment", name)

	dir, err := writeRecords(name, outDir, configs, gameRecords, moveRecords)
	if err != nil {
		return nil, "", err
	}
	return results, dir, nil
}

func writeRecords(name, outDir string, configs []metrics.AgentConfig, gameRecords []metrics.GameRecord,
	moveRecords []metrics.MoveRecord) (string, error) {
	writer, err := metrics.NewWriter(outDir, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	err = writer.WriteAgentConfigs(configs)
	if err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	err = writer.WriteGameRecords(gameRecords)
	if err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	err = writer.WriteMoveRecords(moveRecords)
	if err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msgf("stored move records in %s", writer.Dir())

	return writer.Dir(), nil
}

// runGame executes a single game between two agents and returns the winner.
// Random and tree search agents are reseeded per game so that repeated games differ.
func runGame(settings engine.Settings, config1, config2 metrics.AgentConfig, gameID uint64) (game.Player, metrics.GameMetric, []metrics.MoveMetric, error) {
	agents := [2]agent.Agent{createAgent(config1, gameID), createAgent(config2, gameID)}
	e, err := engine.LocalEngine(settings, agents)
	if err != nil {
		return game.None, metrics.GameMetric{}, nil, err
	}

	winner, gameMetric, moveMetrics := e.Run()
	return winner, gameMetric, moveMetrics, nil
}

func createAgent(config metrics.AgentConfig, gameID uint64) agent.Agent {
	if config.Random {
		return agent.NewRandomAgent(config.Seed + gameID)
	}
	if config.Episodes > 0 {
		return agent.NewMCTSAgent(mcts.NewMCTS(config.Goroutines,
			mcts.WithEpisodes(config.Episodes), mcts.WithSeed(config.Seed+gameID), mcts.WithMetrics()))
	}

	options := []searcher.Option{searcher.WithDepth(config.Depth), searcher.WithMetrics()}
	if !config.Pruning {
		options = append(options, searcher.WithoutPruning())
	}
	return agent.NewSearchAgent(searcher.NewMinimax(options...))
}
