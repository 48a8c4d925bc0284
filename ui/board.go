// Package ui specifies custom controls for tview to play match-3 in the terminal.
package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"triplet/config"
	"triplet/engine"
	"triplet/types"
)

// Background style slots.
const (
	styleBoard = iota
	styleBoardAlt
	styleCursor
	stylePicked
	styleHint
	styleLastMove
)

// MoveEntry is one attempted swap in the session history.
type MoveEntry struct {
	Move  types.Move
	Legal bool
}

type BoardUI struct {
	Box        *tview.Box
	BoardState *types.BoardState
	hint       *tview.TextView
	cfg        *config.Config
	eng        engine.GameEngine
	styles     []tcell.Color
	tiles      []tcell.Color
	infoPanel  *InfoPanel

	selRow   int
	selCol   int
	picked   *types.BoardPos
	hintMove *types.Move
	status   string

	moveHistory []MoveEntry

	// OnNewBoard and OnQuit are called for the n and q keys.
	OnNewBoard func()
	OnQuit     func()
}

func NewBoard(c *config.Config, hint *tview.TextView) *BoardUI {
	board := &BoardUI{
		Box:        tview.NewBox(),
		BoardState: &types.BoardState{},
		hint:       hint,
		selRow:     -1,
		selCol:     -1,
	}
	board.SetConfig(c)
	board.Box.SetDrawFunc(func(screen tcell.Screen, x int, y int, width int, height int) (int, int, int, int) {
		if board.BoardState == nil || board.BoardState.Width() == 0 {
			return x, y, 1, 1
		}
		glyphs := board.cfg.Theme.Glyphs()
		// 2 characters per cell for square appearance
		boardW, boardH := board.BoardState.Width()*2, board.BoardState.Height()
		for row := 0; row < board.BoardState.Height(); row++ {
			for col := 0; col < board.BoardState.Width(); col++ {
				colour := board.BoardState.Board[row][col]
				style := tcell.StyleDefault.
					Background(board.cellBackground(row, col)).
					Foreground(board.tileColor(colour))
				drawTileCell(screen, style, glyphs.Glyph(colour), col, row, x+4, y)
			}
		}
		drawCoordinates(screen, x, y, board)
		return x, y, boardW + 4, boardH + 2
	})
	return board
}

func (g *BoardUI) SetConfig(c *config.Config) {
	g.styles = []tcell.Color{
		tcell.PaletteColor(c.Theme.Colors.BoardColor),    // styleBoard
		tcell.PaletteColor(c.Theme.Colors.BoardColorAlt), // styleBoardAlt
		tcell.PaletteColor(c.Theme.Colors.CursorColorBG), // styleCursor
		tcell.PaletteColor(c.Theme.Colors.PickedColorBG), // stylePicked
		tcell.PaletteColor(c.Theme.Colors.HintColorBG),   // styleHint
		tcell.PaletteColor(c.Theme.Colors.LastMoveBG),    // styleLastMove
	}
	g.tiles = g.tiles[:0]
	for _, idx := range c.Theme.Colors.Tiles {
		g.tiles = append(g.tiles, tcell.PaletteColor(idx))
	}
	g.cfg = c
}

// ConnectEngine attaches a started engine and resets the selection and history.
func (g *BoardUI) ConnectEngine(e engine.GameEngine) {
	g.eng = e
	g.moveHistory = nil
	g.picked = nil
	g.hintMove = nil
	g.status = ""
	g.ResetSelection()
	g.sync()
}

// MoveHistory returns the swaps attempted since the engine was connected.
func (g *BoardUI) MoveHistory() []MoveEntry {
	return g.moveHistory
}

func (g *BoardUI) SelectedTile() *types.BoardPos {
	if g.selRow == -1 && g.selCol == -1 {
		return nil
	}
	return &types.BoardPos{Row: g.selRow, Col: g.selCol}
}

// PickedTile returns the tile chosen with Enter, or nil.
func (g *BoardUI) PickedTile() *types.BoardPos {
	return g.picked
}

// Status returns the one-line message shown above the controls.
func (g *BoardUI) Status() string {
	return g.status
}

// MoveSelection moves the cursor by the given offset. The first move places
// the cursor on the last swapped tile, or the board centre.
func (g *BoardUI) MoveSelection(dRow, dCol int) {
	if g.BoardState == nil || g.BoardState.Width() == 0 {
		return
	}
	if g.SelectedTile() == nil {
		if last := g.BoardState.LastMove; last != nil {
			g.selRow, g.selCol = last.Row, last.Col
		} else {
			g.selRow = g.BoardState.Height() / 2
			g.selCol = g.BoardState.Width() / 2
		}
		return
	}
	if g.selRow+dRow < 0 || g.selRow+dRow >= g.BoardState.Height() {
		return
	}
	if g.selCol+dCol < 0 || g.selCol+dCol >= g.BoardState.Width() {
		return
	}
	g.selRow += dRow
	g.selCol += dCol
}

func (g *BoardUI) ResetSelection() {
	g.selRow = -1
	g.selCol = -1
}

// Pick marks the tile under the cursor as the one to swap. Picking the same
// tile again drops it.
func (g *BoardUI) Pick() {
	sel := g.SelectedTile()
	if sel == nil {
		return
	}
	if g.picked != nil && *g.picked == *sel {
		g.picked = nil
	} else {
		g.picked = sel
	}
	g.refreshHint()
}

// Swap swaps the picked tile towards dir. The cursor follows a successful swap.
func (g *BoardUI) Swap(dir types.Direction) bool {
	if g.eng == nil || g.picked == nil {
		return false
	}
	m := types.Move{Row: g.picked.Row, Col: g.picked.Col, Dir: dir}
	ok := g.eng.DoAction(m.Row, m.Col, m.Dir)
	g.moveHistory = append(g.moveHistory, MoveEntry{Move: m, Legal: ok})
	g.picked = nil
	g.hintMove = nil
	if ok {
		g.selRow, g.selCol = m.Target()
		g.status = fmt.Sprintf("Matched %s", m)
	} else {
		g.status = fmt.Sprintf("No match for %s", m)
	}
	g.sync()
	return ok
}

// ShowHint highlights one legal swap and moves the cursor onto it.
func (g *BoardUI) ShowHint() {
	if g.eng == nil {
		return
	}
	moves := g.eng.FindMoves()
	if len(moves) == 0 {
		g.hintMove = nil
		g.status = "No legal moves left, n for a new board"
		g.refreshHint()
		return
	}
	m := moves[0]
	g.hintMove = &m
	g.selRow, g.selCol = m.Row, m.Col
	g.status = fmt.Sprintf("Try %s", m)
	g.refreshHint()
}

// HandleKey applies a key press and returns nil when the key was consumed.
func (g *BoardUI) HandleKey(event *tcell.EventKey) *tcell.EventKey {
	if dir, ok := keyDirection(event); ok {
		if g.picked != nil {
			g.Swap(dir)
		} else {
			dRow, dCol := dir.Offset()
			g.MoveSelection(dRow, dCol)
		}
		return nil
	}
	switch event.Key() {
	case tcell.KeyEnter:
		g.Pick()
		return nil
	case tcell.KeyEsc:
		g.quit()
		return nil
	case tcell.KeyRune:
		switch event.Rune() {
		case ' ':
			g.Pick()
		case '?':
			g.ShowHint()
		case 'n':
			if g.OnNewBoard != nil {
				g.OnNewBoard()
			}
		case 'q':
			g.quit()
		default:
			return event
		}
		return nil
	}
	return event
}

func (g *BoardUI) quit() {
	if g.picked != nil {
		g.picked = nil
		g.refreshHint()
		return
	}
	if g.OnQuit != nil {
		g.OnQuit()
	}
}

func keyDirection(event *tcell.EventKey) (types.Direction, bool) {
	switch event.Key() {
	case tcell.KeyUp:
		return types.Up, true
	case tcell.KeyDown:
		return types.Down, true
	case tcell.KeyLeft:
		return types.Left, true
	case tcell.KeyRight:
		return types.Right, true
	case tcell.KeyRune:
		switch event.Rune() {
		case 'k':
			return types.Up, true
		case 'j':
			return types.Down, true
		case 'h':
			return types.Left, true
		case 'l':
			return types.Right, true
		}
	}
	return 0, false
}

func (g *BoardUI) sync() {
	if g.eng != nil {
		g.BoardState = g.eng.BoardState()
	}
	if g.infoPanel != nil && g.eng != nil {
		g.infoPanel.SetLegalMoves(len(g.eng.FindMoves()))
	}
	g.refreshHint()
}

func (g *BoardUI) refreshHint() {
	if g.infoPanel != nil {
		g.infoPanel.SetBoardState(g.BoardState)
	}
	if g.hint == nil {
		return
	}
	statusLine := ""
	if g.status != "" {
		statusLine = "  " + g.status + "\n"
	}
	var controlsLine string
	if g.picked != nil {
		controlsLine = fmt.Sprintf("  (%d,%d) picked · hjkl/↑↓←→ swap   q cancel", g.picked.Row, g.picked.Col)
	} else {
		controlsLine = "  hjkl/↑↓←→ move   ⏎ pick   ? hint   n new   q quit"
	}
	g.hint.SetText(statusLine + controlsLine)
}

func (g *BoardUI) tileColor(colour int) tcell.Color {
	if colour < 1 || colour > len(g.tiles) {
		return tcell.ColorDefault
	}
	return g.tiles[colour-1]
}

// cellBackground picks the background for a cell: cursor over picked tile
// over hint over last move over the (optionally checkered) board.
func (g *BoardUI) cellBackground(row, col int) tcell.Color {
	if g.cfg.Theme.DrawCursorBackground && row == g.selRow && col == g.selCol {
		return g.styles[styleCursor]
	}
	if g.picked != nil && row == g.picked.Row && col == g.picked.Col {
		return g.styles[stylePicked]
	}
	if g.hintMove != nil && touches(*g.hintMove, row, col) {
		return g.styles[styleHint]
	}
	if g.cfg.Theme.DrawLastMoveBackground && g.BoardState.LastMove != nil && touches(*g.BoardState.LastMove, row, col) {
		return g.styles[styleLastMove]
	}
	if g.cfg.Theme.Checkered && (row+col)%2 == 1 {
		return g.styles[styleBoardAlt]
	}
	return g.styles[styleBoard]
}

// touches reports whether the cell is one of the two cells a move swaps.
func touches(m types.Move, row, col int) bool {
	if row == m.Row && col == m.Col {
		return true
	}
	tr, tc := m.Target()
	return row == tr && col == tc
}

// drawTileCell draws a tile cell (2 characters wide)
func drawTileCell(s tcell.Screen, c tcell.Style, r rune, col, row, l, t int) {
	s.SetContent(l+col*2, t+row, r, nil, c)
	s.SetContent(l+col*2+1, t+row, ' ', nil, c)
}

// drawCoordinates labels rows on the left and columns below the board, in
// the same 0-based indices the text mode reads.
func drawCoordinates(s tcell.Screen, x, y int, ui *BoardUI) {
	w, h := ui.BoardState.Width(), ui.BoardState.Height()
	style := tcell.StyleDefault
	highlight := tcell.StyleDefault.Background(ui.styles[styleCursor])

	for col := 0; col < w; col++ {
		_style := style
		if col == ui.selCol {
			_style = highlight
		}
		label := []rune(fmt.Sprintf("%-2d", col%100))
		s.SetContent(x+4+col*2, y+h+1, label[0], nil, _style)
		s.SetContent(x+4+col*2+1, y+h+1, label[1], nil, _style)
	}
	for row := 0; row < h; row++ {
		_style := style
		if row == ui.selRow {
			_style = highlight
		}
		label := []rune(fmt.Sprintf("%2d", row%100))
		s.SetContent(x+1, y+row, label[0], nil, _style)
		s.SetContent(x+2, y+row, label[1], nil, _style)
	}
}
