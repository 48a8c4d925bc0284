// Package cli wires the triplet commands together with cobra.
package cli

import (
	"fmt"
	"os"
	"slices"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"triplet/agent"
	"triplet/config"
	"triplet/engine"
	"triplet/engine/match3"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Format   string // "json" | "text"
	DebugLog string
	Config   *config.Config

	logFile *os.File
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command. A nil cfg uses the built-in defaults.
func NewRootCommand(cfg *config.Config) *cobra.Command {
	if cfg == nil {
		def := config.DefaultConfig()
		cfg = &def
	}
	opts := &RootOptions{Config: cfg}

	cmd := &cobra.Command{
		Use:   "triplet",
		Short: "triplet - match-3 in the terminal",
		Long: `A match-3 board engine with a terminal board view, a line-based text mode,
a random-agent harness and a move script runner.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return opts.openDebugLog()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return opts.closeDebugLog()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.DebugLog, "debug-log", "", "write engine and agent debug logs to this file")

	cmd.AddCommand(NewPlayCommand(opts))
	cmd.AddCommand(NewTextCommand(opts))
	cmd.AddCommand(NewAgentCommand(opts))
	cmd.AddCommand(NewScriptCommand(opts))
	cmd.AddCommand(NewRenderCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

// openDebugLog points the engine and agent loggers at the debug log file.
func (o *RootOptions) openDebugLog() error {
	if o.DebugLog == "" {
		return nil
	}
	f, err := os.OpenFile(o.DebugLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return WrapExitError(ExitCommandError, "open debug log", err)
	}
	o.logFile = f
	for _, l := range []*logrus.Logger{match3.Log, agent.Log} {
		l.SetOutput(f)
		l.SetLevel(logrus.DebugLevel)
		l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}
	return nil
}

func (o *RootOptions) closeDebugLog() error {
	if o.logFile == nil {
		return nil
	}
	err := o.logFile.Close()
	o.logFile = nil
	return err
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{Format: o.Format, Writer: cmd.OutOrStdout()}
}

// boardFlags registers the board parameter flags on cmd, defaulting to base.
// The returned config is filled in when the flags are parsed.
func boardFlags(cmd *cobra.Command, base engine.GameConfig) *engine.GameConfig {
	cfg := base
	cmd.Flags().IntVar(&cfg.Rows, "rows", base.Rows, "board rows")
	cmd.Flags().IntVar(&cfg.Cols, "cols", base.Cols, "board columns")
	cmd.Flags().IntVar(&cfg.Colours, "colours", base.Colours, "number of tile colours")
	cmd.Flags().Int64Var(&cfg.Seed, "seed", base.Seed, "board seed (0 for a random board)")
	cmd.Flags().IntVar(&cfg.MaxResets, "max-resets", base.MaxResets, "board resets before giving up (0 for no limit)")
	cmd.Flags().BoolVar(&cfg.RepairAfterMove, "repair-after-move", base.RepairAfterMove, "clear runs and restore a legal move after each swap")
	return &cfg
}

// newGame builds an engine with the configured glyphs.
func (o *RootOptions) newGame() *match3.Game {
	g := match3.NewGame()
	g.Glyphs = o.Config.Theme.Glyphs()
	return g
}

// startError classifies a failed engine start.
func startError(err error) error {
	return WrapExitError(ExitCommandError, "start board", err)
}
