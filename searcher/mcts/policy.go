package mcts

import (
	"math"

	"connectn/game"
)

// Hyperparameters for MCTS

const CSquared = 2.0 // Exploration constant

// Rewards estimate the chance of winning
const (
	Win  = 1.0
	Draw = 0.5
	Loss = 1 - Win
)

type uct struct {
	numerator float64
}

func newUCT(cSquared float64, N float64) *uct {
	if N == 0 {
		panic("N cannot be 0")
	}
	return &uct{numerator: cSquared * math.Log(N)}
}

func (u uct) evaluate(q float64, n float64) float64 {
	if n == 0 {
		panic("n cannot be 0")
	}
	// UCT = q/n + sqrt(c^2*ln(N)/n)
	return q/n + math.Sqrt(u.numerator/n)
}

// reward scores a finished playout for the player who made the move into a node.
func reward(winner, mover game.Player) float64 {
	switch winner {
	case game.None:
		return Draw
	case mover:
		return Win
	default:
		return Loss
	}
}
