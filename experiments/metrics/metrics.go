package metrics

import (
	"time"

	"connectn/game"
	"connectn/searcher"
)

// AgentConfig describes one player of an experiment. Random agents ignore Depth and Pruning.
// A positive Episodes makes it a tree search agent running Goroutines workers.
type AgentConfig struct {
	ID         int
	Depth      int
	Pruning    bool
	Random     bool
	Seed       uint64
	Goroutines int
	Episodes   int
}

type MoveMetric struct {
	Step   int
	Player game.Player
	Move   game.Position
	searcher.SearchMetrics
}

type GameMetric struct {
	Winner     game.Player // None for a draw
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
	FinalScore int64
}
