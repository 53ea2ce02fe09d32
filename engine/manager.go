package engine

import (
	"errors"
	"fmt"

	"connectn/game"
	"connectn/searcher"

	"github.com/rs/zerolog/log"
)

var ErrInvalidDepth = errors.New("AI depth must be an integer greater than or equal to 1")

// Manager is a game between a human and the AI: the board plus the AI's search settings.
// The board operations are promoted from the embedded Board.
type Manager struct {
	*game.Board

	minimax         *searcher.Minimax
	playerGoesFirst bool
}

// NewManager creates an empty game. A zero depth falls back to searcher.DefaultDepth.
func NewManager(settings Settings) (*Manager, error) {
	board, err := game.NewBoard(settings.Rows, settings.Cols, settings.WinLength)
	if err != nil {
		return nil, err
	}

	depth := settings.Depth
	if depth == 0 {
		depth = searcher.DefaultDepth
	}
	if depth < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDepth, depth)
	}

	options := []searcher.Option{searcher.WithDepth(depth), searcher.WithMetrics()}
	if settings.NoPruning {
		options = append(options, searcher.WithoutPruning())
	}

	return &Manager{
		Board:           board,
		minimax:         searcher.NewMinimax(options...),
		playerGoesFirst: settings.PlayerGoesFirst,
	}, nil
}

// AIMove searches for the best move of the side to play without making it.
// It returns false when the game is won or there is nothing to play.
func (m *Manager) AIMove() (game.Position, bool) {
	result, metrics := m.minimax.FindMove(m.Board)
	log.Info().Msgf("AI searched %d nodes (%d cutoffs) at depth %d in %s",
		metrics.Nodes, metrics.Cutoffs, metrics.Depth, metrics.Duration)

	if !result.Found {
		return game.Position{}, false
	}
	return result.Move, true
}

// PlayAI finds the AI move and makes it.
func (m *Manager) PlayAI() (game.Position, bool) {
	move, ok := m.AIMove()
	if !ok {
		return game.Position{}, false
	}
	m.MakeMove(move)
	log.Info().Msgf("AI played %s at %v", m.Occupant(move), move)
	return move, true
}

func (m *Manager) Depth() int {
	return m.minimax.Depth()
}

func (m *Manager) SetDepth(depth int) error {
	if depth < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidDepth, depth)
	}
	m.minimax.SetDepth(depth)
	return nil
}

func (m *Manager) PlayerGoesFirst() bool {
	return m.playerGoesFirst
}

// HumanPlayer is the side the UI lets the user play. X always moves first.
func (m *Manager) HumanPlayer() game.Player {
	if m.playerGoesFirst {
		return game.PlayerA
	}
	return game.PlayerB
}

func (m *Manager) AIPlayer() game.Player {
	return m.HumanPlayer().Opponent()
}
