// Package match3 implements the triplet board engine: a grid of coloured
// tiles where a swap is legal only if it completes a run of three, kept in
// a state with no ready-made runs and at least one legal swap.
package match3

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// OutOfBounds is returned for reads and writes outside the grid.
// It never equals a valid colour.
const OutOfBounds = -1

// IntNSource is all the engine needs out of a random generator.
// Tests substitute scripted sources.
type IntNSource interface {
	IntN(int) int
}

// NewRand returns a ChaCha8 generator. A zero seed draws one from crypto/rand.
func NewRand(seed int64) *rand.Rand {
	var key [32]byte
	if seed == 0 {
		_, _ = crand.Read(key[:])
	} else {
		binary.LittleEndian.PutUint64(key[:8], uint64(seed))
	}
	return rand.New(rand.NewChaCha8(key))
}

// Board is a rows x cols grid of colours 1..colours, stored row-major.
type Board struct {
	rows    int
	cols    int
	colours int
	grid    []int

	Rand IntNSource
}

// NewBoard allocates an empty board. Every cell starts at 0 until filled.
func NewBoard(rows, cols, colours int, rnd IntNSource) *Board {
	return &Board{
		rows:    rows,
		cols:    cols,
		colours: colours,
		grid:    make([]int, rows*cols),
		Rand:    rnd,
	}
}

func (b *Board) Rows() int    { return b.rows }
func (b *Board) Cols() int    { return b.cols }
func (b *Board) Colours() int { return b.colours }

func (b *Board) inBounds(row, col int) bool {
	return row >= 0 && row < b.rows && col >= 0 && col < b.cols
}

// Colour returns the colour at (row, col), or OutOfBounds.
func (b *Board) Colour(row, col int) int {
	if !b.inBounds(row, col) {
		return OutOfBounds
	}
	return b.grid[row*b.cols+col]
}

// SetColour stores colour at (row, col) and returns it.
// Outside the grid it does nothing and returns OutOfBounds.
func (b *Board) SetColour(row, col, colour int) int {
	if !b.inBounds(row, col) {
		return OutOfBounds
	}
	b.grid[row*b.cols+col] = colour
	return colour
}

// validColour reports whether c is a colour this board can hold.
func (b *Board) validColour(c int) bool {
	return c >= 1 && c <= b.colours
}

func (b *Board) randomColour() int {
	return b.Rand.IntN(b.colours) + 1
}

// fill re-randomizes every cell.
func (b *Board) fill() {
	for row := 0; row < b.rows; row++ {
		for col := 0; col < b.cols; col++ {
			b.SetColour(row, col, b.randomColour())
		}
	}
}

// Snapshot returns a row-major copy of the grid.
func (b *Board) Snapshot() []int {
	out := make([]int, len(b.grid))
	copy(out, b.grid)
	return out
}

// Grid returns a copy of the grid indexed as [row][col].
func (b *Board) Grid() [][]int {
	out := make([][]int, b.rows)
	for row := range out {
		out[row] = make([]int, b.cols)
		copy(out[row], b.grid[row*b.cols:(row+1)*b.cols])
	}
	return out
}
