package game

import (
	"errors"
	"fmt"
)

// Player identifies who occupies a cell or owns a line. PlayerA always makes the first ply.
type Player int

const (
	None Player = iota
	PlayerA
	PlayerB
)

// MaxWinLength bounds the win length so that a single line's score fits in int64. NewBoard
// additionally rejects boards whose lines could add up past it (ErrBoardTooLarge).
const MaxWinLength = 15

var (
	ErrInvalidDimensions = errors.New("board dimensions must be positive")
	ErrInvalidWinLength  = errors.New("win length must be positive and fit on the board")
	ErrBoardTooLarge     = errors.New("board has too many lines for its win length")
	ErrOutOfBounds       = errors.New("position is outside the board")
	ErrIllegalMove       = errors.New("illegal move")
	ErrEmptyHistory      = errors.New("no move to undo")
)

func (p Player) String() string {
	switch p {
	case PlayerA:
		return "X"
	case PlayerB:
		return "O"
	default:
		return ""
	}
}

// Opponent returns the other player, None for None.
func (p Player) Opponent() Player {
	switch p {
	case PlayerA:
		return PlayerB
	case PlayerB:
		return PlayerA
	default:
		return None
	}
}

// Position is a 0-indexed (row, col) pair. It is a plain value and compares with ==.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}
