// Package agent wraps the board engine as a reinforcement-learning
// environment: episodes on a 7x7 board, +1 for a legal swap, -1 for an
// illegal one, and an episode boundary after every 50th legal swap.
package agent

import (
	"io"

	"github.com/sirupsen/logrus"

	"triplet/engine"
	"triplet/types"
)

// Log receives episode diagnostics; discarded unless redirected.
var Log = logrus.New()

func init() {
	Log.SetOutput(io.Discard)
}

const (
	BoardRows      = 7
	BoardCols      = 7
	DefaultColours = 3
	EpisodeLength  = 50 // successful swaps per episode

	RewardSuccess float32 = 1
	RewardFailure float32 = -1
)

// Action is one decision: swap (Row, Col) towards Dir.
type Action struct {
	Row int
	Col int
	Dir types.Direction
}

// ActionSpace returns the number of discrete actions on a rows x cols board.
func ActionSpace(rows, cols int) int {
	return rows * cols * len(types.Directions)
}

// DecodeAction maps a flat index to an action. Index = (row*cols+col)*4 + dir.
func DecodeAction(index, cols int) Action {
	n := len(types.Directions)
	cell := index / n
	return Action{Row: cell / cols, Col: cell % cols, Dir: types.Direction(index % n)}
}

// EncodeAction is the inverse of DecodeAction.
func EncodeAction(a Action, cols int) int {
	return (a.Row*cols+a.Col)*len(types.Directions) + int(a.Dir)
}

// StepResult is what the environment reports after one action.
type StepResult struct {
	Observation []float32
	Reward      float32
	Success     bool
	Done        bool
	Truncated   bool // Done because MaxSteps was reached
}

// Env drives one engine through episodes.
type Env struct {
	Engine   engine.GameEngine
	Colours  int
	MaxSteps int // 0 = no step limit

	successes int
	steps     int
}

// NewEnv creates an environment over eng with the given colour count.
func NewEnv(eng engine.GameEngine, colours int) *Env {
	if colours <= 0 {
		colours = DefaultColours
	}
	return &Env{Engine: eng, Colours: colours}
}

// Reset starts a new episode on a fresh board and returns its observation.
func (e *Env) Reset(seed int64) ([]float32, error) {
	e.successes = 0
	e.steps = 0
	err := e.Engine.Start(engine.GameConfig{
		Rows:      BoardRows,
		Cols:      BoardCols,
		Colours:   e.Colours,
		Seed:      seed,
		MaxResets: engine.DefaultConfig().MaxResets,
	})
	if err != nil {
		return nil, err
	}
	return e.Engine.Observation(), nil
}

// Step applies one action.
func (e *Env) Step(a Action) StepResult {
	e.steps++
	res := StepResult{Reward: RewardFailure}
	if e.Engine.DoAction(a.Row, a.Col, a.Dir) {
		res.Success = true
		res.Reward = RewardSuccess
		e.successes++
		if e.successes%EpisodeLength == 0 {
			res.Done = true
		}
	}
	if !res.Done && e.MaxSteps > 0 && e.steps >= e.MaxSteps {
		res.Done = true
		res.Truncated = true
	}
	res.Observation = e.Engine.Observation()
	return res
}

// Observation returns the current encoded board.
func (e *Env) Observation() []float32 {
	return e.Engine.Observation()
}

// LegalMoves lists the swaps that would earn a positive reward.
func (e *Env) LegalMoves() []types.Move {
	return e.Engine.FindMoves()
}

// Steps returns the number of actions taken this episode.
func (e *Env) Steps() int {
	return e.steps
}

// Successes returns the number of legal swaps this episode.
func (e *Env) Successes() int {
	return e.successes
}
