package ui

import (
	"fmt"

	"github.com/rivo/tview"

	"triplet/types"
)

// InfoPanel displays board information and move history alongside the board.
type InfoPanel struct {
	box         *tview.TextView
	boardState  *types.BoardState
	legalMoves  int
	moveHistory func() []MoveEntry
}

// NewInfoPanel creates a new info panel.
func NewInfoPanel() *InfoPanel {
	panel := &InfoPanel{
		box:        tview.NewTextView(),
		legalMoves: -1,
	}

	panel.box.SetDynamicColors(true)
	panel.box.SetBorder(false)
	panel.box.SetTextAlign(tview.AlignLeft)

	return panel
}

// Box returns the underlying tview component.
func (p *InfoPanel) Box() *tview.TextView {
	return p.box
}

// SetBoardState updates the panel with current board state.
func (p *InfoPanel) SetBoardState(state *types.BoardState) {
	p.boardState = state
	p.refresh()
}

// SetLegalMoves sets the number of swaps currently available. A negative
// count hides the line.
func (p *InfoPanel) SetLegalMoves(n int) {
	p.legalMoves = n
	p.refresh()
}

// SetMoveHistory sets the function the panel reads the move list from.
func (p *InfoPanel) SetMoveHistory(history func() []MoveEntry) {
	p.moveHistory = history
}

func (p *InfoPanel) refresh() {
	if p.boardState == nil || p.boardState.Width() == 0 {
		p.box.SetText("")
		return
	}

	var text string

	text += "[white::b]Board[-:-:-]\n"
	text += "[dimgray]──────────────────────[-:-:-]\n"
	text += fmt.Sprintf("[white]Size:[-:-:-] %dx%d\n", p.boardState.Height(), p.boardState.Width())
	text += fmt.Sprintf("[white]Colours:[-:-:-] %d\n", p.boardState.Colours)
	text += fmt.Sprintf("[white]Moves:[-:-:-] %d\n", p.boardState.Moves)
	text += fmt.Sprintf("[white]Matched:[-:-:-] %d\n", p.boardState.Successes)
	text += fmt.Sprintf("[white]Rejected:[-:-:-] %d\n", p.boardState.Failures)
	if p.legalMoves >= 0 {
		text += fmt.Sprintf("[white]Available:[-:-:-] %d\n", p.legalMoves)
	}

	if p.moveHistory != nil {
		if moves := p.moveHistory(); len(moves) > 0 {
			text += "\n[white::b]History[-:-:-]\n"
			text += "[dimgray]──────────────────────[-:-:-]\n"

			maxVisible := 12
			start := 0
			if len(moves) > maxVisible {
				start = len(moves) - maxVisible
			}
			for i := start; i < len(moves); i++ {
				m := moves[i]
				mark := "[green]✓[-]"
				if !m.Legal {
					mark = "[red]✗[-]"
				}
				marker := " "
				if i == len(moves)-1 {
					marker = "[white]>[-]"
				}
				text += fmt.Sprintf("%s[dimgray]%3d.[-] %s %s\n", marker, i+1, mark, m.Move)
			}
			if start > 0 {
				text += fmt.Sprintf("[dimgray]  ··· %d earlier[-]\n", start)
			}
		}
	}

	p.box.SetText(text)
}

// CreateGameLayout creates the main game layout with board and side panel.
func CreateGameLayout(board *BoardUI, hint *tview.TextView) *tview.Flex {
	infoPanel := NewInfoPanel()

	board.infoPanel = infoPanel
	infoPanel.SetMoveHistory(board.MoveHistory)

	boardRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	boardRow.AddItem(board.Box, 0, 1, true)
	boardRow.AddItem(infoPanel.Box(), 26, 0, false)

	mainFlex := tview.NewFlex().SetDirection(tview.FlexRow)
	mainFlex.AddItem(boardRow, 0, 1, true)
	mainFlex.AddItem(hint, 3, 0, false)

	return mainFlex
}
