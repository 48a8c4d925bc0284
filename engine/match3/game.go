package match3

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"triplet/engine"
	"triplet/types"
)

// Log receives engine diagnostics. It discards output until a front end
// points it somewhere.
var Log = logrus.New()

func init() {
	Log.SetOutput(io.Discard)
}

// InvalidConfig reports start parameters or a grid the engine cannot use.
type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("invalid board: %s", e.err)
}

// Game implements engine.GameEngine on top of a Board.
// It is not safe for concurrent use.
type Game struct {
	board *Board
	cfg   engine.GameConfig

	// Rand overrides the seeded generator built by Start when set.
	Rand IntNSource
	// Out receives diagnostics when Show is enabled.
	Out    io.Writer
	Glyphs Glyphs

	moves     int
	successes int
	failures  int
	lastMove  *types.Move
	lastStats RepairStats
}

var _ engine.GameEngine = (*Game)(nil)

// NewGame creates a game with no board; call Start or LoadGrid before use.
func NewGame() *Game {
	return &Game{
		Out:    os.Stdout,
		Glyphs: Glyphs{Palette: DefaultGlyphs, Unknown: UnknownGlyph},
	}
}

func validate(rows, cols, colours int) error {
	if rows < 1 || cols < 1 {
		return &InvalidConfig{fmt.Sprintf("size %dx%d must be at least 1x1", rows, cols)}
	}
	if colours < 1 {
		return &InvalidConfig{fmt.Sprintf("colour count %d must be at least 1", colours)}
	}
	return nil
}

func (g *Game) source() IntNSource {
	if g.Rand != nil {
		return g.Rand
	}
	return NewRand(g.cfg.Seed)
}

// Start replaces the board with a freshly randomized one and repairs it.
func (g *Game) Start(cfg engine.GameConfig) error {
	if err := validate(cfg.Rows, cfg.Cols, cfg.Colours); err != nil {
		return err
	}
	g.cfg = cfg
	g.board = NewBoard(cfg.Rows, cfg.Cols, cfg.Colours, g.source())
	g.resetCounters()

	g.board.fill()
	if err := g.repair(); err != nil {
		return err
	}
	Log.WithFields(logrus.Fields{
		"rows": cfg.Rows, "cols": cfg.Cols, "colours": cfg.Colours, "seed": cfg.Seed,
	}).Info("board started")
	return nil
}

// LoadGrid installs a hand-built grid as-is, without clearing runs or
// checking for legal moves. Options from the last Start are kept.
func (g *Game) LoadGrid(grid [][]int, colours int) error {
	rows := len(grid)
	cols := 0
	if rows > 0 {
		cols = len(grid[0])
	}
	if err := validate(rows, cols, colours); err != nil {
		return err
	}
	board := NewBoard(rows, cols, colours, nil)
	for row, line := range grid {
		if len(line) != cols {
			return &InvalidConfig{fmt.Sprintf("row %d has %d cells, want %d", row, len(line), cols)}
		}
		for col, colour := range line {
			if !board.validColour(colour) {
				return &InvalidConfig{fmt.Sprintf("colour %d at (%d,%d) outside 1..%d", colour, row, col, colours)}
			}
			board.SetColour(row, col, colour)
		}
	}
	g.cfg.Rows, g.cfg.Cols, g.cfg.Colours = rows, cols, colours
	board.Rand = g.source()
	g.board = board
	g.resetCounters()
	return nil
}

func (g *Game) resetCounters() {
	g.moves = 0
	g.successes = 0
	g.failures = 0
	g.lastMove = nil
	g.lastStats = RepairStats{}
}

func (g *Game) repair() error {
	stats, err := g.board.ensureValid(g.cfg.MaxResets)
	g.lastStats = stats
	if err != nil {
		return fmt.Errorf("repair %dx%d board with %d colours after %d resets: %w",
			g.board.rows, g.board.cols, g.board.colours, stats.Resets, err)
	}
	if g.cfg.Show {
		g.Render(g.Out)
	}
	return nil
}

// Repair runs the repair cycle on the current board.
func (g *Game) Repair() (RepairStats, error) {
	if g.board == nil {
		return RepairStats{}, &InvalidConfig{"no board"}
	}
	err := g.repair()
	return g.lastStats, err
}

// DoAction attempts one swap.
func (g *Game) DoAction(row, col int, dir types.Direction) bool {
	if g.board == nil {
		return false
	}
	g.moves++
	if !g.board.ApplyMove(row, col, dir) {
		g.failures++
		Log.WithFields(logrus.Fields{"row": row, "col": col, "dir": dir}).Debug("illegal move")
		if g.cfg.Show {
			fmt.Fprintln(g.Out, "Action Error!")
		}
		return false
	}
	g.successes++
	g.lastMove = &types.Move{Row: row, Col: col, Dir: dir}

	if g.cfg.RepairAfterMove {
		if err := g.repair(); err != nil {
			Log.WithError(err).Error("repair after move failed")
		}
		return true
	}
	if g.cfg.Show {
		g.Render(g.Out)
	}
	return true
}

// IsLegalSwap reports whether DoAction(row, col, dir) would succeed.
func (g *Game) IsLegalSwap(row, col int, dir types.Direction) bool {
	if g.board == nil {
		return false
	}
	return g.board.IsLegalSwap(row, col, dir)
}

// Board exposes the underlying board.
func (g *Game) Board() *Board {
	return g.board
}

// LastRepair returns what the most recent repair cycle did.
func (g *Game) LastRepair() RepairStats {
	return g.lastStats
}

// Observation returns the one-hot encoding of the board.
func (g *Game) Observation() []float32 {
	if g.board == nil {
		return nil
	}
	return g.board.Observation()
}

// FindMoves lists every legal swap.
func (g *Game) FindMoves() []types.Move {
	if g.board == nil {
		return nil
	}
	return g.board.FindMoves()
}

// BoardState returns a snapshot for front ends.
func (g *Game) BoardState() *types.BoardState {
	state := &types.BoardState{
		Moves:     g.moves,
		Successes: g.successes,
		Failures:  g.failures,
	}
	if g.board != nil {
		state.Colours = g.board.colours
		state.Board = g.board.Grid()
	}
	if g.lastMove != nil {
		m := *g.lastMove
		state.LastMove = &m
	}
	return state
}

// Render writes the text view of the board.
func (g *Game) Render(w io.Writer) {
	if g.board == nil {
		return
	}
	g.board.Render(w, g.Glyphs)
}

// SetShow turns diagnostic rendering on or off.
func (g *Game) SetShow(show bool) {
	g.cfg.Show = show
}

// Config returns the parameters the board was started with.
func (g *Game) Config() engine.GameConfig {
	return g.cfg
}
