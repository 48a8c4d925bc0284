package cli

import (
	"io"

	"github.com/spf13/cobra"

	"triplet/engine/match3"
	"triplet/types"
)

// RenderReport is the render command's JSON output.
type RenderReport struct {
	State       *types.BoardState  `json:"state"`
	Observation []float32          `json:"observation"`
	Moves       []types.Move       `json:"moves"`
	Repair      match3.RepairStats `json:"repair"`
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Generate a board and print it",
		Long: `Generate a board with the given parameters and print it.

Text output is the same board diagram the text mode prints. JSON output
adds the observation vector and the legal swaps.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cfg := boardFlags(cmd, rootOpts.Config.Game.GameConfig())
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		out := rootOpts.formatter(cmd)
		g := rootOpts.newGame()
		g.Out = io.Discard
		start := *cfg
		start.Show = false
		if err := g.Start(start); err != nil {
			out.Error(ErrCodeBoard, err.Error(), nil)
			return startError(err)
		}
		report := RenderReport{
			State:       g.BoardState(),
			Observation: g.Observation(),
			Moves:       g.FindMoves(),
			Repair:      g.LastRepair(),
		}
		return out.Success(report, func(w io.Writer) {
			g.Render(w)
		})
	}
	return cmd
}
