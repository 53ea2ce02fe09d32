package engine

import (
	"connectn/experiments/metrics"
	"connectn/game"
)

type Engine interface {
	// Run plays a game until there's a winner, the board is full or no move is found
	Run() (winner game.Player, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}

// Settings are the values a game is created with.
type Settings struct {
	Rows            int
	Cols            int
	WinLength       int
	PlayerGoesFirst bool
	Depth           int
	NoPruning       bool // plain minimax instead of alpha-beta
}
