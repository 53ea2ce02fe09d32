package game

// Cell is a single board position. Lines holds the ids of every line through the cell, in the
// order the lines were built; it never changes after the board is constructed.
type Cell struct {
	Position Position
	Occupant Player
	lines    []int
}

func newCell(position Position) Cell {
	return Cell{Position: position}
}

// Lines returns the ids of the lines this cell belongs to.
func (c Cell) Lines() []int {
	return c.lines
}

func (c Cell) IsEmpty() bool {
	return c.Occupant == None
}
