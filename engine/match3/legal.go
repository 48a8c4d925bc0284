package match3

import "triplet/types"

type offset struct {
	dRow, dCol int
}

// swapPatterns holds, per direction, the pairs of cells that complete a
// run of three once the pivot's colour lands on the neighbour in that
// direction. Families in order: run ending at the target, run centred on
// the target, run starting at the target, run continuing along the swap
// axis.
var swapPatterns = map[types.Direction][4][2]offset{
	types.Up: {
		{{-1, -2}, {-1, -1}},
		{{-1, -1}, {-1, +1}},
		{{-1, +1}, {-1, +2}},
		{{-3, 0}, {-2, 0}},
	},
	types.Down: {
		{{+1, -1}, {+1, -2}},
		{{+1, -1}, {+1, +1}},
		{{+1, +2}, {+1, +1}},
		{{+2, 0}, {+3, 0}},
	},
	types.Left: {
		{{-1, -1}, {-2, -1}},
		{{-1, -1}, {+1, -1}},
		{{+1, -1}, {+2, -1}},
		{{0, -3}, {0, -2}},
	},
	types.Right: {
		{{-1, +1}, {-2, +1}},
		{{+1, +1}, {-1, +1}},
		{{+1, +1}, {+2, +1}},
		{{0, +2}, {0, +3}},
	},
}

// IsLegalSwap reports whether moving the colour at (row, col) onto its
// neighbour in dir completes a run of three. Cells outside the board read
// as OutOfBounds and never match, so edge swaps need no special casing.
func (b *Board) IsLegalSwap(row, col int, dir types.Direction) bool {
	colour := b.Colour(row, col)
	if !b.validColour(colour) {
		return false
	}
	families, ok := swapPatterns[dir]
	if !ok {
		return false
	}
	for _, pair := range families {
		if b.Colour(row+pair[0].dRow, col+pair[0].dCol) == colour &&
			b.Colour(row+pair[1].dRow, col+pair[1].dCol) == colour {
			return true
		}
	}
	return false
}

// HasAnyLegalMove scans every cell and direction for a legal swap.
func (b *Board) HasAnyLegalMove() bool {
	for row := 0; row < b.rows; row++ {
		for col := 0; col < b.cols; col++ {
			for _, dir := range types.Directions {
				if b.IsLegalSwap(row, col, dir) {
					return true
				}
			}
		}
	}
	return false
}

// FindMoves lists every legal swap in row-major, direction order.
func (b *Board) FindMoves() []types.Move {
	var moves []types.Move
	for row := 0; row < b.rows; row++ {
		for col := 0; col < b.cols; col++ {
			for _, dir := range types.Directions {
				if b.IsLegalSwap(row, col, dir) {
					moves = append(moves, types.Move{Row: row, Col: col, Dir: dir})
				}
			}
		}
	}
	return moves
}
