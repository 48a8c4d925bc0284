// Package engine defines the interface for match-3 board engines.
package engine

import (
	"io"

	"triplet/types"
)

// GameEngine is what front ends (terminal UI, console loop, RL wrapper) drive.
type GameEngine interface {
	// Start (re)initializes the board and repairs it until it has no
	// pre-existing runs and at least one legal move.
	Start(cfg GameConfig) error

	// DoAction swaps the tile at (row, col) with its neighbour in dir.
	// Returns false and leaves the board untouched if the swap is illegal.
	DoAction(row, col int, dir types.Direction) bool

	// Observation returns the row-major one-hot encoding of the board.
	Observation() []float32

	// BoardState returns a copy of the current board.
	BoardState() *types.BoardState

	// FindMoves lists every legal swap on the current board.
	FindMoves() []types.Move

	// Render writes the diagnostic text view of the board.
	Render(w io.Writer)
}

// GameConfig holds configuration for starting a new board.
type GameConfig struct {
	Rows            int   // Number of rows, >= 1
	Cols            int   // Number of columns, >= 1
	Colours         int   // Distinct colours, values 1..Colours
	Show            bool  // Render diagnostics to the engine's output
	Seed            int64 // 0 picks a random seed
	MaxResets       int   // Full re-randomizations before giving up, 0 = unbounded
	RepairAfterMove bool  // Run the repair cycle after each successful swap
}

// DefaultConfig returns a reasonable default configuration.
func DefaultConfig() GameConfig {
	return GameConfig{
		Rows:      7,
		Cols:      7,
		Colours:   4,
		MaxResets: 10000,
	}
}
