package match3

import (
	"errors"

	"github.com/sirupsen/logrus"
)

// ErrUnsolvable is returned when the repair cycle gives up before reaching
// a board with no runs and at least one legal move.
var ErrUnsolvable = errors.New("board did not settle into a solvable state")

// clearPassLimit bounds a single run-clearing fix point when retries are
// bounded. One colour can never clear a run, so without it the fix point
// would spin forever before the reset limit is ever consulted.
const clearPassLimit = 1000

// RepairStats counts the work done by one repair cycle.
type RepairStats struct {
	Rerolls int `json:"rerolls"` // cells rerolled while clearing runs
	Resets  int `json:"resets"`  // full re-randomizations
}

// clearExistingRuns rerolls every cell that sits in the middle of a
// vertical or horizontal run of three, together with its two flanking
// cells, until a full pass changes nothing. A positive passLimit stops
// early and reports false.
func (b *Board) clearExistingRuns(passLimit int) (int, bool) {
	rerolls := 0
	for pass := 0; ; pass++ {
		if passLimit > 0 && pass >= passLimit {
			return rerolls, false
		}
		changed := false
		for row := 0; row < b.rows; row++ {
			for col := 0; col < b.cols; col++ {
				colour := b.Colour(row, col)
				if b.Colour(row-1, col) == colour && b.Colour(row+1, col) == colour {
					b.SetColour(row, col, b.randomColour())
					b.SetColour(row-1, col, b.randomColour())
					b.SetColour(row+1, col, b.randomColour())
					rerolls += 3
					changed = true
				} else if b.Colour(row, col-1) == colour && b.Colour(row, col+1) == colour {
					b.SetColour(row, col, b.randomColour())
					b.SetColour(row, col-1, b.randomColour())
					b.SetColour(row, col+1, b.randomColour())
					rerolls += 3
					changed = true
				}
			}
		}
		if !changed {
			return rerolls, true
		}
	}
}

// ensureValid clears runs and re-randomizes the whole board until it has
// no runs and at least one legal move. maxResets <= 0 retries forever.
func (b *Board) ensureValid(maxResets int) (RepairStats, error) {
	var stats RepairStats
	passLimit := 0
	if maxResets > 0 {
		passLimit = clearPassLimit
	}
	for {
		rerolls, settled := b.clearExistingRuns(passLimit)
		stats.Rerolls += rerolls
		if settled && b.HasAnyLegalMove() {
			break
		}
		if maxResets > 0 && stats.Resets >= maxResets {
			Log.WithFields(logrus.Fields{
				"rows": b.rows, "cols": b.cols, "colours": b.colours,
				"resets": stats.Resets,
			}).Error("repair gave up")
			return stats, ErrUnsolvable
		}
		b.fill()
		stats.Resets++
	}
	Log.WithFields(logrus.Fields{
		"rerolls": stats.Rerolls,
		"resets":  stats.Resets,
	}).Debug("board repaired")
	return stats, nil
}
