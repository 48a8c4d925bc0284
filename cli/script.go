package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/spf13/cobra"

	"triplet/script"
)

// NewScriptCommand creates the script command.
func NewScriptCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "script <file.yaml>...",
		Short: "Run move scripts and check their expectations",
		Long: `Run YAML move scripts against the engine.

A script describes a seeded or hand-built board, a list of swaps with the
expected legality of each, and optionally the expected final grid. The
command exits 1 when any expectation fails.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScripts(rootOpts, args, cmd)
		},
	}
	return cmd
}

func runScripts(opts *RootOptions, paths []string, cmd *cobra.Command) error {
	out := opts.formatter(cmd)

	var results []*script.Result
	for _, path := range paths {
		s, err := script.LoadFile(path)
		if err != nil {
			code := ErrCodeScript
			if errors.Is(err, fs.ErrNotExist) {
				code = ErrCodeNotFound
			}
			out.Error(code, err.Error(), nil)
			return WrapExitError(ExitCommandError, code, err)
		}
		g := opts.newGame()
		g.Out = io.Discard
		res, err := script.Run(s, g)
		if err != nil {
			out.Error(ErrCodeBoard, err.Error(), nil)
			return WrapExitError(ExitCommandError, ErrCodeBoard, err)
		}
		results = append(results, res)
	}

	failed := 0
	for _, r := range results {
		if !r.Passed {
			failed++
		}
	}
	err := out.Success(results, func(w io.Writer) {
		for _, r := range results {
			if r.Passed {
				fmt.Fprintf(w, "PASS %s (%d moves)\n", r.Name, len(r.Steps))
				continue
			}
			fmt.Fprintf(w, "FAIL %s\n", r.Name)
			for _, f := range r.Failures {
				fmt.Fprintf(w, "  %s\n", f)
			}
		}
		fmt.Fprintf(w, "%d passed, %d failed\n", len(results)-failed, failed)
	})
	if err != nil {
		return err
	}
	if failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d scripts failed", failed, len(results)))
	}
	return nil
}
