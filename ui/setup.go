package ui

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"triplet/config"
	"triplet/engine"
)

// MinColours is the smallest colour count offered by the setup form.
const MinColours = 2

// SetupUI provides a form for configuring a new board.
type SetupUI struct {
	form     *tview.Form
	flex     *tview.Flex
	onStart  func(engine.GameConfig)
	onCancel func()

	defaults        config.GameDefaults
	rows            int
	cols            int
	colours         int
	seed            int64
	repairAfterMove bool
}

func numeric(text string, lastChar rune) bool {
	return lastChar >= '0' && lastChar <= '9'
}

// NewSetup creates a new board setup form. maxColours is the number of
// tile glyphs the theme can draw.
func NewSetup(defaults config.GameDefaults, maxColours int, onStart func(engine.GameConfig), onCancel func()) *SetupUI {
	setup := &SetupUI{
		onStart:         onStart,
		onCancel:        onCancel,
		defaults:        defaults,
		rows:            defaults.Rows,
		cols:            defaults.Cols,
		colours:         defaults.Colours,
		repairAfterMove: defaults.RepairAfterMove,
	}
	if maxColours < setup.colours {
		maxColours = setup.colours
	}
	if maxColours < MinColours {
		maxColours = MinColours
	}

	var colourOpts []string
	initial := 0
	for c := MinColours; c <= maxColours; c++ {
		if c == setup.colours {
			initial = len(colourOpts)
		}
		colourOpts = append(colourOpts, strconv.Itoa(c))
	}

	form := tview.NewForm()

	form.AddInputField("Rows", strconv.Itoa(setup.rows), 4, numeric, func(text string) {
		setup.rows = parseSize(text, defaults.Rows)
	})
	form.AddInputField("Columns", strconv.Itoa(setup.cols), 4, numeric, func(text string) {
		setup.cols = parseSize(text, defaults.Cols)
	})
	form.AddDropDown("Colours", colourOpts, initial, func(option string, index int) {
		if c, err := strconv.Atoi(option); err == nil {
			setup.colours = c
		}
	})
	form.AddInputField("Seed (blank: random)", "", 12, numeric, func(text string) {
		setup.seed, _ = strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	})
	form.AddCheckbox("Repair after move", setup.repairAfterMove, func(checked bool) {
		setup.repairAfterMove = checked
	})

	form.AddButton("Start", func() {
		onStart(setup.GameConfig())
	})
	form.AddButton("Quit", func() {
		onCancel()
	})

	form.SetBorder(true)
	form.SetTitle(" New Board ")
	form.SetTitleAlign(tview.AlignCenter)
	form.SetBorderColor(MenuColors.Border)
	form.SetLabelColor(MenuColors.Label)
	form.SetButtonBackgroundColor(MenuColors.ButtonBG)
	form.SetButtonTextColor(MenuColors.ButtonText)

	helpText := tview.NewTextView().
		SetText("Tab/Shift+Tab: navigate fields  |  Arrow keys: change dropdown  |  Enter: confirm").
		SetTextAlign(tview.AlignCenter)
	helpText.SetTextColor(MenuColors.Hint)

	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(form, 0, 1, true).
		AddItem(helpText, 1, 0, false)

	setup.form = form
	setup.flex = flex
	return setup
}

// parseSize reads a board dimension, falling back to def for blank or zero input.
func parseSize(text string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n < 1 {
		return def
	}
	return n
}

// GameConfig returns the start parameters currently entered in the form.
func (s *SetupUI) GameConfig() engine.GameConfig {
	cfg := s.defaults.GameConfig()
	cfg.Rows = s.rows
	cfg.Cols = s.cols
	cfg.Colours = s.colours
	cfg.Seed = s.seed
	cfg.RepairAfterMove = s.repairAfterMove
	cfg.Show = false
	return cfg
}

// Form returns the flex container with form and help text.
func (s *SetupUI) Form() *tview.Flex {
	return s.flex
}

// SetInputCapture sets the input capture function for the form.
func (s *SetupUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	s.form.SetInputCapture(capture)
}
