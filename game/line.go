package game

// Line is a run of exactly winLength cells that could complete a win. Cells are indices into
// the owning board's cell arena. Score and winner always reflect the current occupants.
type Line struct {
	id     int
	cells  []int
	score  int64
	winner Player
}

// NewLine returns an empty line with score 0 and no winner.
func NewLine(id int) *Line {
	return &Line{id: id}
}

// AddCell appends the cell at index to the line and lets the cell know it belongs to the line.
func (l *Line) AddCell(index int, cell *Cell) {
	l.cells = append(l.cells, index)
	cell.lines = append(cell.lines, l.id)
}

// CalculateScore recomputes score and winner from the occupants of the line's cells.
//
// A line holding only X scores 16^(numX-1), a line holding only O scores -(16^(numO-1)), and a
// line holding both (blocked) or neither scores 0. The winner is set only when one player fills
// every cell of the line.
func (l *Line) CalculateScore(cells []Cell) {
	numA, numB := 0, 0
	for _, index := range l.cells {
		switch cells[index].Occupant {
		case PlayerA:
			numA++
		case PlayerB:
			numB++
		}
	}

	l.winner = None

	switch {
	case numA > 0 && numB > 0:
		l.score = 0
	case numA > 0:
		l.score = pow16(numA - 1)
		if numA == len(l.cells) {
			l.winner = PlayerA
		}
	case numB > 0:
		l.score = -pow16(numB - 1)
		if numB == len(l.cells) {
			l.winner = PlayerB
		}
	default:
		l.score = 0
	}
}

func (l Line) ID() int {
	return l.id
}

// Cells returns the indices of the line's cells in the order they were added.
func (l Line) Cells() []int {
	return l.cells
}

func (l Line) Score() int64 {
	return l.score
}

func (l Line) Winner() Player {
	return l.winner
}

func pow16(exp int) int64 {
	return int64(1) << (4 * exp)
}
