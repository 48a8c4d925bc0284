package cli

import (
	"fmt"
	"io"

	"github.com/rivo/tview"
	"github.com/spf13/cobra"

	"triplet/engine"
	"triplet/ui"
)

// NewPlayCommand creates the play command: the full-screen board view.
func NewPlayCommand(rootOpts *RootOptions) *cobra.Command {
	var quickStart bool
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play in a full-screen board view",
		Long: `Play in a full-screen terminal board view.

Move the cursor with hjkl or the arrow keys, pick a tile with Enter and
swap it with a direction key. ? shows a legal swap, n deals a new board
and q backs out.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cfg := boardFlags(cmd, rootOpts.Config.Game.GameConfig())
	cmd.Flags().BoolVar(&quickStart, "quick", false, "skip the setup screen and start with the flag values")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runPlay(rootOpts, *cfg, quickStart || anyBoardFlag(cmd))
	}
	return cmd
}

func anyBoardFlag(cmd *cobra.Command) bool {
	for _, name := range []string{"rows", "cols", "colours", "seed"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

func runPlay(opts *RootOptions, startCfg engine.GameConfig, quickStart bool) error {
	app := tview.NewApplication()
	rootPage := tview.NewPages()
	rootPage.SetBorder(true).SetTitle(" ◆ triplet ")

	gameHint := tview.NewTextView()
	gameHint.SetBorder(true)
	gameHint.SetBorderPadding(0, 0, 1, 1)
	gameHint.SetTitle(" Status ")
	gameHint.SetTitleAlign(tview.AlignLeft)
	gameBoard := ui.NewBoard(opts.Config, gameHint)
	gameFrame := ui.CreateGameLayout(gameBoard, gameHint)

	lastCfg := startCfg
	startGame := func(gameCfg engine.GameConfig) {
		g := opts.newGame()
		g.Out = io.Discard
		gameCfg.Show = false
		if err := g.Start(gameCfg); err != nil {
			modal := tview.NewModal().
				SetText(fmt.Sprintf("Failed to start board:\n%s", err.Error())).
				AddButtons([]string{"OK"}).
				SetDoneFunc(func(buttonIndex int, buttonLabel string) {
					rootPage.RemovePage("error")
				})
			rootPage.AddPage("error", modal, true, true)
			return
		}
		lastCfg = gameCfg
		gameBoard.ConnectEngine(g)
		rootPage.SwitchToPage("gameview")
	}

	gameBoard.OnQuit = func() {
		gameBoard.ResetSelection()
		rootPage.SwitchToPage("setup")
	}
	gameBoard.OnNewBoard = func() {
		next := lastCfg
		if next.Seed != 0 {
			next.Seed++
		}
		startGame(next)
	}
	gameBoard.Box.SetInputCapture(gameBoard.HandleKey)

	maxColours := len(opts.Config.Theme.Symbols.Tiles)
	setupUI := ui.NewSetup(opts.Config.Game, maxColours, startGame, app.Stop)

	rootPage.AddPage("setup", setupUI.Form(), true, !quickStart)
	rootPage.AddPage("gameview", gameFrame, true, quickStart)

	if quickStart {
		startGame(startCfg)
	}

	if err := app.SetRoot(rootPage, true).Run(); err != nil {
		return WrapExitError(ExitCommandError, "terminal", err)
	}
	return nil
}
