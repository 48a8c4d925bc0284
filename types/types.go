// Package types contains shared data structures for triplet.
package types

import (
	"fmt"
	"strings"
)

// Direction is the side of a tile that a swap moves it towards.
// The numeric values are part of the console protocol: 0=up, 1=down, 2=left, 3=right.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists every direction in protocol order.
var Directions = [...]Direction{Up, Down, Left, Right}

// Valid returns true for the four known directions.
func (d Direction) Valid() bool {
	return d >= Up && d <= Right
}

// Offset returns the unit (row, col) step for the direction.
// Unknown directions return (0, 0).
func (d Direction) Offset() (int, int) {
	switch d {
	case Up:
		return -1, 0
	case Down:
		return 1, 0
	case Left:
		return 0, -1
	case Right:
		return 0, 1
	}
	return 0, 0
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("direction(%d)", int(d))
}

// ParseDirection accepts a direction name (up, down, left, right, or the
// first letter) case-insensitively, or its protocol number 0-3.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u", "0":
		return Up, nil
	case "down", "d", "1":
		return Down, nil
	case "left", "l", "2":
		return Left, nil
	case "right", "r", "3":
		return Right, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// MarshalText encodes the direction by name.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText decodes a direction name.
func (d *Direction) UnmarshalText(text []byte) error {
	v, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Move is a swap of the tile at (Row, Col) with its neighbour in Dir.
type Move struct {
	Row int       `json:"row" yaml:"row"`
	Col int       `json:"col" yaml:"col"`
	Dir Direction `json:"dir" yaml:"dir"`
}

// Target returns the neighbour cell the move swaps with.
func (m Move) Target() (int, int) {
	dr, dc := m.Dir.Offset()
	return m.Row + dr, m.Col + dc
}

func (m Move) String() string {
	return fmt.Sprintf("(%d,%d) %s", m.Row, m.Col, m.Dir)
}

// BoardState is a read-only snapshot of a match-3 board.
// Board is indexed as Board[row][col]; colours are 1..Colours.
type BoardState struct {
	Colours   int     `json:"colours"`
	Board     [][]int `json:"board"`
	Moves     int     `json:"moves"`
	Successes int     `json:"successes"`
	Failures  int     `json:"failures"`
	LastMove  *Move   `json:"last_move,omitempty"`
}

// Height returns the number of rows.
func (b *BoardState) Height() int {
	return len(b.Board)
}

// Width returns the number of columns.
func (b *BoardState) Width() int {
	if b.Height() == 0 {
		return 0
	}
	return len(b.Board[0])
}

// BoardPos represents a position on the board.
type BoardPos struct {
	Row int
	Col int
}
