// Package console implements the line-based front end: each line names a
// tile and a direction as "<row> <col> <dir>" with dir 0=up, 1=down,
// 2=left, 3=right, and a line reading "Q" ends the session.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"triplet/engine"
	"triplet/types"
)

const (
	Prompt   = "enter act: 'rowIndex columnIndex act' (act: up=0, down=1, left=2, right=3)"
	QuitLine = "Q"
)

// ParseMove reads "<row> <col> <dir>". Extra fields are ignored; the
// direction number is not range-checked, an unknown one is simply an
// illegal move.
func ParseMove(line string) (types.Move, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return types.Move{}, fmt.Errorf("parse move %q: want 3 fields, got %d", line, len(fields))
	}
	var nums [3]int
	for i := range nums {
		n, err := strconv.Atoi(fields[i])
		if err != nil {
			return types.Move{}, fmt.Errorf("parse move %q: %w", line, err)
		}
		nums[i] = n
	}
	return types.Move{Row: nums[0], Col: nums[1], Dir: types.Direction(nums[2])}, nil
}

// Run prompts for moves on out and applies each line read from in to eng.
// It returns nil on "Q" or end of input, and the parse error for the
// first malformed line.
func Run(ctx context.Context, eng engine.GameEngine, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprintln(out, Prompt)
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := scanner.Text()
		if line == QuitLine {
			return nil
		}
		m, err := ParseMove(line)
		if err != nil {
			return err
		}
		eng.DoAction(m.Row, m.Col, m.Dir)
	}
}
