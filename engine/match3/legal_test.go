package match3

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"triplet/types"
)

// hasRunThrough reports whether (row, col) is part of a run of three.
func hasRunThrough(b *Board, row, col int) bool {
	c := b.Colour(row, col)
	if !b.validColour(c) {
		return false
	}
	for start := -2; start <= 0; start++ {
		if b.Colour(row+start, col) == c && b.Colour(row+start+1, col) == c && b.Colour(row+start+2, col) == c {
			return true
		}
		if b.Colour(row, col+start) == c && b.Colour(row, col+start+1) == c && b.Colour(row, col+start+2) == c {
			return true
		}
	}
	return false
}

func TestSwapPatternsCompleteRuns(t *testing.T) {
	const pivotRow, pivotCol = 3, 3
	for _, dir := range types.Directions {
		for family, pair := range swapPatterns[dir] {
			t.Run(fmt.Sprintf("%s/%d", dir, family), func(t *testing.T) {
				// Zero is not a colour, so only the cells set below can match.
				b := NewBoard(7, 7, 2, forbiddenSource{t})
				b.SetColour(pivotRow, pivotCol, 1)
				b.SetColour(pivotRow+pair[0].dRow, pivotCol+pair[0].dCol, 1)
				b.SetColour(pivotRow+pair[1].dRow, pivotCol+pair[1].dCol, 1)

				require.True(t, b.IsLegalSwap(pivotRow, pivotCol, dir))
				require.True(t, b.ApplyMove(pivotRow, pivotCol, dir))

				targetRow, targetCol := types.Move{Row: pivotRow, Col: pivotCol, Dir: dir}.Target()
				assert.True(t, hasRunThrough(b, targetRow, targetCol), "swap should complete a run at the target")
			})
		}
	}
}

func TestSinglePartnerIsNotEnough(t *testing.T) {
	for _, dir := range types.Directions {
		for family, pair := range swapPatterns[dir] {
			for i := range pair {
				b := NewBoard(7, 7, 2, forbiddenSource{t})
				b.SetColour(3, 3, 1)
				b.SetColour(3+pair[i].dRow, 3+pair[i].dCol, 1)
				for _, d := range types.Directions {
					assert.False(t, b.IsLegalSwap(3, 3, d), "%s/%d cell %d checked %s", dir, family, i, d)
				}
			}
		}
	}
}

func TestOneRowSwap(t *testing.T) {
	g := NewGame()
	require.NoError(t, g.LoadGrid([][]int{{1, 1, 2, 1}}, 2))

	assert.True(t, g.IsLegalSwap(0, 3, types.Left))
	assert.False(t, g.IsLegalSwap(0, 3, types.Right), "no neighbour to the right")
	assert.False(t, g.IsLegalSwap(0, 2, types.Left))
	assert.False(t, g.IsLegalSwap(0, 0, types.Up))

	require.True(t, g.DoAction(0, 3, types.Left))
	assert.Equal(t, [][]int{{1, 1, 1, 2}}, g.Board().Grid())
}

func TestEdgeSwapsNeverLegal(t *testing.T) {
	// Uniform colour so every in-bounds pattern cell would match.
	b := boardFrom(t, 1, [][]int{
		{1, 1, 1, 1},
		{1, 1, 1, 1},
		{1, 1, 1, 1},
		{1, 1, 1, 1},
	})
	for i := 0; i < 4; i++ {
		assert.False(t, b.IsLegalSwap(0, i, types.Up), "up from top row col %d", i)
		assert.False(t, b.IsLegalSwap(3, i, types.Down), "down from bottom row col %d", i)
		assert.False(t, b.IsLegalSwap(i, 0, types.Left), "left from first col row %d", i)
		assert.False(t, b.IsLegalSwap(i, 3, types.Right), "right from last col row %d", i)
	}
	assert.True(t, b.IsLegalSwap(1, 1, types.Up))
}

func TestOffBoardPivotNeverLegal(t *testing.T) {
	b := boardFrom(t, 2, [][]int{{1}})
	for _, dir := range types.Directions {
		// Every pattern cell reads the sentinel too; it must not count as a colour.
		assert.False(t, b.IsLegalSwap(-5, -5, dir))
		assert.False(t, b.IsLegalSwap(10, 10, dir))
	}
}

func TestUnknownDirection(t *testing.T) {
	b := boardFrom(t, 2, [][]int{{1, 1, 2, 1}})
	before := b.Snapshot()
	assert.False(t, b.IsLegalSwap(0, 3, types.Direction(7)))
	assert.False(t, b.ApplyMove(0, 3, types.Direction(-1)))
	assert.Equal(t, before, b.Snapshot())
}

func TestFindMoves(t *testing.T) {
	b := boardFrom(t, 2, [][]int{
		{1, 1, 2, 1},
		{2, 2, 1, 2},
	})
	moves := b.FindMoves()
	for _, m := range moves {
		assert.True(t, b.IsLegalSwap(m.Row, m.Col, m.Dir), "%s", m)
	}
	assert.Contains(t, moves, types.Move{Row: 0, Col: 3, Dir: types.Left})
	assert.Contains(t, moves, types.Move{Row: 1, Col: 2, Dir: types.Up})
	assert.Equal(t, len(moves) > 0, b.HasAnyLegalMove())
}
