package agent

import (
	"fmt"

	"triplet/engine/match3"
)

// Policy picks the next action for an environment.
type Policy interface {
	NextAction(env *Env) Action
}

// RandomPolicy samples uniformly over the whole action space, legal or not.
type RandomPolicy struct {
	rng match3.IntNSource
}

func NewRandomPolicy(seed int64) *RandomPolicy {
	return &RandomPolicy{rng: match3.NewRand(seed)}
}

func (p *RandomPolicy) NextAction(env *Env) Action {
	return DecodeAction(p.rng.IntN(ActionSpace(BoardRows, BoardCols)), BoardCols)
}

// LegalPolicy samples uniformly among legal swaps. With none available it
// falls back to a random action.
type LegalPolicy struct {
	rng      match3.IntNSource
	fallback *RandomPolicy
}

func NewLegalPolicy(seed int64) *LegalPolicy {
	fallbackSeed := seed
	if seed != 0 {
		fallbackSeed = seed + 1
	}
	return &LegalPolicy{
		rng:      match3.NewRand(seed),
		fallback: NewRandomPolicy(fallbackSeed),
	}
}

func (p *LegalPolicy) NextAction(env *Env) Action {
	moves := env.LegalMoves()
	if len(moves) == 0 {
		return p.fallback.NextAction(env)
	}
	m := moves[p.rng.IntN(len(moves))]
	return Action{Row: m.Row, Col: m.Col, Dir: m.Dir}
}

// PolicyNames lists the names NewPolicy accepts.
var PolicyNames = []string{"random", "legal"}

// NewPolicy returns a constructor for the named policy.
func NewPolicy(name string) (func(seed int64) Policy, error) {
	switch name {
	case "random":
		return func(seed int64) Policy { return NewRandomPolicy(seed) }, nil
	case "legal":
		return func(seed int64) Policy { return NewLegalPolicy(seed) }, nil
	}
	return nil, fmt.Errorf("unknown policy %q: must be one of %v", name, PolicyNames)
}
