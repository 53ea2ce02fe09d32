package game

import (
	"fmt"
	"math"
	"strings"
)

// directions in which lines are laid out from their first cell: down, right, down-right and
// down-left. Lines through a cell are registered in this order per anchor cell.
var directions = [4][2]int{{1, 0}, {0, 1}, {1, 1}, {1, -1}}

// Board owns the grid of cells and every winnable line. Topology is fixed at construction;
// only occupants, line scores, the running score, the winner and the history change.
type Board struct {
	rows      int
	cols      int
	winLength int

	cells []Cell  // row-major
	lines []*Line // indexed by line id

	history []Position
	score   int64
	winner  Player
}

// NewBoard creates an empty rows x cols board on which winLength in a row wins, and builds
// every line of length winLength that fits on it.
func NewBoard(rows, cols, winLength int) (*Board, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rows, cols)
	}
	if winLength <= 0 || winLength > max(rows, cols) || winLength > MaxWinLength {
		return nil, fmt.Errorf("%w: %d on a %dx%d board", ErrInvalidWinLength, winLength, rows, cols)
	}
	// Every line scoring 16^(winLength-1) at once must stay strictly inside ±Infinity.
	if lines := countLines(rows, cols, winLength); lines > math.MaxInt64>>(4*(winLength-1)) {
		return nil, fmt.Errorf("%w: %d lines of %d on a %dx%d board", ErrBoardTooLarge, lines, winLength, rows, cols)
	}

	b := &Board{
		rows:      rows,
		cols:      cols,
		winLength: winLength,
		cells:     make([]Cell, 0, rows*cols),
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			b.cells = append(b.cells, newCell(Position{Row: i, Col: j}))
		}
	}
	b.buildLines()

	return b, nil
}

// Clone returns an independent copy of the board. Line membership is immutable and shared.
func (b *Board) Clone() *Board {
	c := &Board{
		rows:      b.rows,
		cols:      b.cols,
		winLength: b.winLength,
		cells:     make([]Cell, len(b.cells)),
		lines:     make([]*Line, len(b.lines)),
		history:   make([]Position, len(b.history)),
		score:     b.score,
		winner:    b.winner,
	}
	copy(c.cells, b.cells)
	copy(c.history, b.history)
	for i, line := range b.lines {
		l := *line
		c.lines[i] = &l
	}
	return c
}

// countLines is the number of lines buildLines creates, computed without building them.
func countLines(rows, cols, winLength int) int64 {
	r := int64(max(rows-winLength+1, 0))
	c := int64(max(cols-winLength+1, 0))
	return r*int64(cols) + int64(rows)*c + 2*r*c
}

func (b *Board) buildLines() {
	for i := 0; i < b.rows; i++ {
		for j := 0; j < b.cols; j++ {
			for _, d := range directions {
				last := Position{Row: i + (b.winLength-1)*d[0], Col: j + (b.winLength-1)*d[1]}
				if !b.InBounds(last) {
					continue
				}

				line := NewLine(len(b.lines))
				for k := 0; k < b.winLength; k++ {
					index := b.index(Position{Row: i + k*d[0], Col: j + k*d[1]})
					line.AddCell(index, &b.cells[index])
				}
				b.lines = append(b.lines, line)
			}
		}
	}
}

func (b *Board) Rows() int      { return b.rows }
func (b *Board) Cols() int      { return b.cols }
func (b *Board) WinLength() int { return b.winLength }

// Score is the sum of every line's score. Positive favours X.
func (b *Board) Score() int64 { return b.score }

// Winner is the player who completed a line with the last move, None otherwise.
func (b *Board) Winner() Player { return b.winner }

// History returns a copy of the played positions, oldest first.
func (b *Board) History() []Position {
	return append([]Position(nil), b.history...)
}

// LastMove returns the most recent move, false if nothing has been played.
func (b *Board) LastMove() (Position, bool) {
	if len(b.history) == 0 {
		return Position{}, false
	}
	return b.history[len(b.history)-1], true
}

func (b *Board) InBounds(p Position) bool {
	return p.Row >= 0 && p.Col >= 0 && p.Row < b.rows && p.Col < b.cols
}

func (b *Board) index(p Position) int {
	return p.Row*b.cols + p.Col
}

// Cell returns a copy of the cell at p.
func (b *Board) Cell(p Position) Cell {
	return b.cells[b.index(p)]
}

func (b *Board) Occupant(p Position) Player {
	return b.cells[b.index(p)].Occupant
}

// PositionOf maps a cell index, as stored in a line, back to its position.
func (b *Board) PositionOf(index int) Position {
	return b.cells[index].Position
}

func (b *Board) NumLines() int {
	return len(b.lines)
}

// Line returns a copy of the line with the given id.
func (b *Board) Line(id int) Line {
	return *b.lines[id]
}

// Lines returns copies of the lines through p in registration order.
func (b *Board) Lines(p Position) []Line {
	cell := &b.cells[b.index(p)]
	lines := make([]Line, 0, len(cell.lines))
	for _, id := range cell.lines {
		lines = append(lines, *b.lines[id])
	}
	return lines
}

// WhoseTurn returns X after an even number of plies and O after an odd number.
func (b *Board) WhoseTurn() Player {
	if len(b.history)%2 == 0 {
		return PlayerA
	}
	return PlayerB
}

// IsLegalMove reports whether nobody has won yet and the cell at p is empty.
func (b *Board) IsLegalMove(p Position) bool {
	if !b.InBounds(p) {
		return false
	}
	return b.winner == None && b.cells[b.index(p)].IsEmpty()
}

// LegalMoves returns every empty position in row-major order, or none once someone has won.
func (b *Board) LegalMoves() []Position {
	moves := []Position{}
	if b.winner != None {
		return moves
	}
	for i := range b.cells {
		if b.cells[i].IsEmpty() {
			moves = append(moves, b.cells[i].Position)
		}
	}
	return moves
}

func (b *Board) IsFull() bool {
	return len(b.history) == len(b.cells)
}

// IsOver reports whether the game has a winner or no empty cell is left.
func (b *Board) IsOver() bool {
	return b.winner != None || b.IsFull()
}

// MakeMove places the current player's mark at p. The move must be legal.
func (b *Board) MakeMove(p Position) {
	if !b.IsLegalMove(p) {
		panic(fmt.Sprintf("game: illegal move %v", p))
	}

	cell := &b.cells[b.index(p)]
	cell.Occupant = b.WhoseTurn()
	b.calculateScore(cell)
	b.history = append(b.history, p)
}

// UndoMove takes back the most recent move. The history must not be empty.
//
// The winner is always cleared, even if some other completed line remains on the board.
func (b *Board) UndoMove() {
	if len(b.history) == 0 {
		panic("game: undo with empty history")
	}

	last := len(b.history) - 1
	p := b.history[last]
	b.history = b.history[:last]

	cell := &b.cells[b.index(p)]
	cell.Occupant = None
	b.calculateScore(cell)

	b.winner = None
}

// Apply makes the move at p and returns a function that takes exactly that move back.
// Callers defer the returned function so the board is restored on every exit path.
func (b *Board) Apply(p Position) (undo func()) {
	b.MakeMove(p)
	ply := len(b.history)
	return func() {
		if len(b.history) != ply || b.history[ply-1] != p {
			panic(fmt.Sprintf("game: undo of %v out of order", p))
		}
		b.UndoMove()
	}
}

// Play is the checked form of MakeMove for callers that cannot guarantee legality.
func (b *Board) Play(p Position) error {
	if !b.InBounds(p) {
		return fmt.Errorf("%w: %v on a %dx%d board", ErrOutOfBounds, p, b.rows, b.cols)
	}
	if !b.IsLegalMove(p) {
		return fmt.Errorf("%w: %v", ErrIllegalMove, p)
	}
	b.MakeMove(p)
	return nil
}

// Undo is the checked form of UndoMove.
func (b *Board) Undo() error {
	if len(b.history) == 0 {
		return ErrEmptyHistory
	}
	b.UndoMove()
	return nil
}

// calculateScore refreshes every line through cell and moves the running score by each line's
// change. The first line found with a winner, in registration order, decides the winner.
func (b *Board) calculateScore(cell *Cell) {
	for _, id := range cell.lines {
		line := b.lines[id]

		b.score -= line.score
		line.CalculateScore(b.cells)
		b.score += line.score

		if b.winner == None && line.winner != None {
			b.winner = line.winner
		}
	}
}

// String renders the board with column and row numbers, '.' for empty cells.
func (b *Board) String() string {
	var sb strings.Builder

	sb.WriteString("   ")
	for j := 0; j < b.cols; j++ {
		fmt.Fprintf(&sb, "%3d", j)
	}
	sb.WriteByte('\n')

	for i := 0; i < b.rows; i++ {
		fmt.Fprintf(&sb, "%3d", i)
		for j := 0; j < b.cols; j++ {
			mark := b.cells[b.index(Position{Row: i, Col: j})].Occupant.String()
			if mark == "" {
				mark = "."
			}
			fmt.Fprintf(&sb, "%3s", mark)
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}
