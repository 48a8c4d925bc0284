package cli

import (
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"triplet/agent"
	"triplet/engine"
)

type agentOptions struct {
	episodes int
	policy   string
	workers  int
	colours  int
	seed     int64
	maxSteps int
}

// AgentReport is the agent command's output.
type AgentReport struct {
	Policy   string                `json:"policy"`
	Episodes []agent.EpisodeResult `json:"episodes"`
	Summary  agent.Summary         `json:"summary"`
}

// NewAgentCommand creates the agent command.
func NewAgentCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &agentOptions{}
	cmd := &cobra.Command{
		Use:   "agent",
		Short: "Play episodes with a scripted policy on 7x7 boards",
		Long: fmt.Sprintf(`Play episodes of the reinforcement-learning environment with a built-in policy.

An episode ends after every %d successful swaps, or when --max-steps is reached.
Legal swaps score %+.0f and illegal ones %+.0f.`, agent.EpisodeLength, agent.RewardSuccess, agent.RewardFailure),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAgent(rootOpts, opts, cmd)
		},
	}
	cmd.Flags().IntVarP(&opts.episodes, "episodes", "n", 10, "episodes to play")
	cmd.Flags().StringVar(&opts.policy, "policy", "legal", fmt.Sprintf("policy (%s|%s)", agent.PolicyNames[0], agent.PolicyNames[1]))
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", runtime.NumCPU(), "episodes played in parallel")
	cmd.Flags().IntVar(&opts.colours, "colours", agent.DefaultColours, "number of tile colours")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "seed for episode 0, episode i uses seed+i (0 for random boards)")
	cmd.Flags().IntVar(&opts.maxSteps, "max-steps", agent.DefaultMaxSteps, "truncate episodes after this many steps")
	return cmd
}

func runAgent(rootOpts *RootOptions, opts *agentOptions, cmd *cobra.Command) error {
	out := rootOpts.formatter(cmd)
	newPolicy, err := agent.NewPolicy(opts.policy)
	if err != nil {
		return WrapExitError(ExitCommandError, "agent", err)
	}
	if opts.episodes < 0 {
		return NewExitError(ExitCommandError, "episodes cannot be negative")
	}

	runner := &agent.Runner{
		Episodes:  opts.episodes,
		Workers:   opts.workers,
		Colours:   opts.colours,
		MaxSteps:  opts.maxSteps,
		Seed:      opts.seed,
		NewPolicy: newPolicy,
		NewEngine: func() engine.GameEngine {
			g := rootOpts.newGame()
			g.Out = io.Discard
			return g
		},
	}
	results, err := runner.Run(cmd.Context())
	if err != nil {
		out.Error(ErrCodeBoard, err.Error(), nil)
		return WrapExitError(ExitCommandError, "agent", err)
	}

	report := AgentReport{Policy: opts.policy, Episodes: results, Summary: agent.Summarize(results)}
	return out.Success(report, func(w io.Writer) {
		for _, r := range results {
			trunc := ""
			if r.Truncated {
				trunc = " (truncated)"
			}
			fmt.Fprintf(w, "episode %3d  seed %-6d steps %5d  successes %3d  reward %+7.0f  %s%s\n",
				r.Index, r.Seed, r.Steps, r.Successes, r.Reward, r.Dt.Round(time.Millisecond), trunc)
		}
		s := report.Summary
		fmt.Fprintf(w, "%d episodes, %d steps, %d successes, mean reward %.2f, success rate %.3f\n",
			s.Episodes, s.Steps, s.Successes, s.MeanReward, s.SuccessRate)
	})
}
