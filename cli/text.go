package cli

import (
	"github.com/spf13/cobra"

	"triplet/agent"
	"triplet/console"
)

// NewTextCommand creates the text command: the line-based console with
// diagnostics printed after every move.
func NewTextCommand(rootOpts *RootOptions) *cobra.Command {
	base := rootOpts.Config.Game.GameConfig()
	base.Colours = agent.DefaultColours

	cmd := &cobra.Command{
		Use:   "text",
		Short: "Play on a printed board by typing 'row col dir' lines",
		Long: `Play on a printed board from standard input.

Each line names a tile and a direction: "<row> <col> <dir>" with
dir 0=up, 1=down, 2=left, 3=right. A line reading Q ends the session.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cfg := boardFlags(cmd, base)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		g := rootOpts.newGame()
		g.Out = cmd.OutOrStdout()
		start := *cfg
		start.Show = true
		if err := g.Start(start); err != nil {
			return startError(err)
		}
		if err := console.Run(cmd.Context(), g, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
			return WrapExitError(ExitCommandError, "text session", err)
		}
		return nil
	}
	return cmd
}
