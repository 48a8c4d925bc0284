package agent

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"triplet/engine"
	"triplet/engine/match3"
)

// EpisodeResult summarizes one finished episode.
type EpisodeResult struct {
	ID        uuid.UUID     `json:"id"`
	Index     int           `json:"index"`
	Seed      int64         `json:"seed"`
	Steps     int           `json:"steps"`
	Successes int           `json:"successes"`
	Reward    float32       `json:"reward"`
	Truncated bool          `json:"truncated"`
	Dt        time.Duration `json:"dt"`
	Err       error         `json:"-"`
}

// DefaultMaxSteps truncates runner episodes when MaxSteps is unset.
const DefaultMaxSteps = 5000

// Runner plays episodes across a pool of workers, one engine per worker.
type Runner struct {
	Episodes  int
	Workers   int
	Colours   int
	MaxSteps  int
	Seed      int64 // episode i uses Seed+i; 0 means random boards
	NewPolicy func(seed int64) Policy
	NewEngine func() engine.GameEngine
}

func (r *Runner) episodeSeed(i int) int64 {
	if r.Seed == 0 {
		return 0
	}
	return r.Seed + int64(i)
}

func (r *Runner) engine() engine.GameEngine {
	if r.NewEngine != nil {
		return r.NewEngine()
	}
	g := match3.NewGame()
	g.Out = io.Discard
	return g
}

func (r *Runner) policy(seed int64) Policy {
	if r.NewPolicy != nil {
		return r.NewPolicy(seed)
	}
	return NewLegalPolicy(seed)
}

func sourceThread(ctx context.Context, source chan<- int, n int) {
	defer close(source)
	for i := 0; i < n; i++ {
		select {
		case source <- i:
		case <-ctx.Done():
			return
		}
	}
}

func (r *Runner) worker(ctx context.Context, wg *sync.WaitGroup, source <-chan int, results chan<- EpisodeResult) {
	defer wg.Done()
	env := NewEnv(r.engine(), r.Colours)
	env.MaxSteps = r.MaxSteps
	if env.MaxSteps <= 0 {
		// Boards are not repaired between swaps and can run out of legal moves.
		env.MaxSteps = DefaultMaxSteps
	}
	for i := range source {
		res := r.playEpisode(ctx, env, i)
		select {
		case results <- res:
		case <-ctx.Done():
			return
		}
	}
}

func (r *Runner) playEpisode(ctx context.Context, env *Env, i int) EpisodeResult {
	seed := r.episodeSeed(i)
	res := EpisodeResult{ID: uuid.New(), Index: i, Seed: seed}
	start := time.Now()

	log := Log.WithFields(logrus.Fields{"episode": res.ID, "index": i, "seed": seed})
	if _, err := env.Reset(seed); err != nil {
		log.WithError(err).Error("episode reset failed")
		res.Err = err
		return res
	}
	policy := r.policy(seed)
	for {
		if err := ctx.Err(); err != nil {
			res.Err = err
			break
		}
		step := env.Step(policy.NextAction(env))
		res.Reward += step.Reward
		if step.Done {
			res.Truncated = step.Truncated
			break
		}
	}
	res.Steps = env.Steps()
	res.Successes = env.Successes()
	res.Dt = time.Since(start)
	log.WithFields(logrus.Fields{
		"steps": res.Steps, "successes": res.Successes, "reward": res.Reward, "truncated": res.Truncated,
	}).Info("episode finished")
	return res
}

// Run plays all episodes and returns their results ordered by index.
func (r *Runner) Run(ctx context.Context) ([]EpisodeResult, error) {
	workers := r.Workers
	if workers < 1 {
		workers = 1
	}
	source := make(chan int, workers*2)
	results := make(chan EpisodeResult, workers*2)

	go sourceThread(ctx, source, r.Episodes)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go r.worker(ctx, &wg, source, results)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	out := make([]EpisodeResult, r.Episodes)
	var firstErr error
	for res := range results {
		out[res.Index] = res
		if res.Err != nil && firstErr == nil {
			firstErr = res.Err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, firstErr
}

// Summary aggregates episode results.
type Summary struct {
	Episodes    int     `json:"episodes"`
	Steps       int     `json:"steps"`
	Successes   int     `json:"successes"`
	MeanReward  float64 `json:"mean_reward"`
	SuccessRate float64 `json:"success_rate"`
	Truncated   int     `json:"truncated"`
}

// Summarize folds results into a Summary.
func Summarize(results []EpisodeResult) Summary {
	var s Summary
	var reward float64
	for _, r := range results {
		s.Episodes++
		s.Steps += r.Steps
		s.Successes += r.Successes
		reward += float64(r.Reward)
		if r.Truncated {
			s.Truncated++
		}
	}
	if s.Episodes > 0 {
		s.MeanReward = reward / float64(s.Episodes)
	}
	if s.Steps > 0 {
		s.SuccessRate = float64(s.Successes) / float64(s.Steps)
	}
	return s
}
