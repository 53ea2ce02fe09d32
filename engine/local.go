package engine

import (
	"time"

	"connectn/experiments/metrics"
	"connectn/game"
	"connectn/searcher/agent"

	"github.com/rs/zerolog/log"
)

type localEngine struct {
	board  *game.Board
	agents [2]agent.Agent
}

// LocalEngine pits two agents against each other on a fresh board. agents[0] plays X.
func LocalEngine(settings Settings, agents [2]agent.Agent) (Engine, error) {
	board, err := game.NewBoard(settings.Rows, settings.Cols, settings.WinLength)
	if err != nil {
		return nil, err
	}
	return &localEngine{board: board, agents: agents}, nil
}

// Run executes the entire game loop until a winner is found or no move can be made.
func (e *localEngine) Run() (game.Player, metrics.GameMetric, []metrics.MoveMetric) {
	log.Info().Msgf("%s (X) against %s (O) on %dx%d, %d to win",
		e.agents[0].Name(), e.agents[1].Name(), e.board.Rows(), e.board.Cols(), e.board.WinLength())

	gameMetric := metrics.GameMetric{StartTime: time.Now()}
	moveMetrics := []metrics.MoveMetric{}

	for step := 1; !e.board.IsOver(); step++ {
		player := e.board.WhoseTurn()
		current := e.agents[player-game.PlayerA]

		move, ok, searchMetrics := current.FindMove(e.board)
		if !ok {
			log.Warn().Msgf("%s found no move for %s, ending the game", current.Name(), player)
			break
		}
		e.board.MakeMove(move)

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:          step,
			Player:        player,
			Move:          move,
			SearchMetrics: searchMetrics,
		})
		log.Debug().Msgf("step %d: %s played %v, score %d", step, player, move, e.board.Score())
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.Winner = e.board.Winner()
	gameMetric.TotalMoves = len(e.board.History())
	gameMetric.FinalScore = e.board.Score()

	if gameMetric.Winner != game.None {
		log.Info().Msgf("%s wins after %d moves", gameMetric.Winner, gameMetric.TotalMoves)
	} else {
		log.Info().Msgf("draw after %d moves", gameMetric.TotalMoves)
	}

	return gameMetric.Winner, gameMetric, moveMetrics
}
