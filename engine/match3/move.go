package match3

import "triplet/types"

// ApplyMove swaps (row, col) with its neighbour in dir if the swap is
// legal. An illegal swap returns false and leaves the board untouched.
// Runs created by the swap are left in place.
func (b *Board) ApplyMove(row, col int, dir types.Direction) bool {
	if !b.IsLegalSwap(row, col, dir) {
		return false
	}
	targetRow, targetCol := types.Move{Row: row, Col: col, Dir: dir}.Target()

	colour := b.Colour(row, col)
	targetColour := b.Colour(targetRow, targetCol)
	b.SetColour(row, col, targetColour)
	b.SetColour(targetRow, targetCol, colour)
	return true
}
