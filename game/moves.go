package game

import "sort"

// Candidate is a move surfaced by SmartLegalMoves together with its ordering weight.
type Candidate struct {
	Position Position `json:"position"`
	Weight   int64    `json:"weight"`
}

// SmartLegalMoves returns the reduced, ordered move list the search branches on.
//
// With no history the only move is the centre of the board; once someone has won there is no
// move at all. Otherwise the moves are the empty cells of every line through a previously
// played cell, heaviest first.
func (b *Board) SmartLegalMoves() []Position {
	candidates := b.Candidates()
	moves := make([]Position, len(candidates))
	for i, c := range candidates {
		moves[i] = c.Position
	}
	return moves
}

// Candidates is SmartLegalMoves with weights. A move's weight is the sum of |score| over every
// line that surfaced it; a line shared by several past moves is counted once per such move.
// Ties keep discovery order.
func (b *Board) Candidates() []Candidate {
	if len(b.history) == 0 {
		return []Candidate{{Position: Position{Row: b.rows / 2, Col: b.cols / 2}}}
	}
	if b.winner != None {
		return []Candidate{}
	}

	candidates := []Candidate{}
	seen := make(map[Position]int)

	for _, past := range b.history {
		pastCell := &b.cells[b.index(past)]
		for _, id := range pastCell.lines {
			line := b.lines[id]
			weight := abs(line.score)
			for _, index := range line.cells {
				cell := &b.cells[index]
				if !cell.IsEmpty() {
					continue
				}
				if i, ok := seen[cell.Position]; ok {
					candidates[i].Weight += weight
					continue
				}
				seen[cell.Position] = len(candidates)
				candidates = append(candidates, Candidate{Position: cell.Position, Weight: weight})
			}
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Weight > candidates[j].Weight
	})
	return candidates
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
