// Package script runs YAML move scripts against an engine: a seeded or
// hand-built board, a list of swaps with their expected outcome, and an
// optional expected final grid.
package script

import (
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"

	"gopkg.in/yaml.v3"

	"triplet/engine"
	"triplet/types"
)

// Step is one scripted swap. A nil Expect accepts either outcome.
type Step struct {
	Row    int             `yaml:"row"`
	Col    int             `yaml:"col"`
	Dir    types.Direction `yaml:"dir"`
	Expect *bool           `yaml:"expect,omitempty"`
}

func (s Step) Move() types.Move {
	return types.Move{Row: s.Row, Col: s.Col, Dir: s.Dir}
}

// Script is a parsed move script.
type Script struct {
	Name      string  `yaml:"name"`
	Rows      int     `yaml:"rows"`
	Cols      int     `yaml:"cols"`
	Colours   int     `yaml:"colours"`
	Seed      int64   `yaml:"seed"`
	MaxResets int     `yaml:"max_resets"`
	Grid      [][]int `yaml:"grid,omitempty"`

	Moves      []Step  `yaml:"moves"`
	ExpectGrid [][]int `yaml:"expect_grid,omitempty"`
}

// GridLoader is implemented by engines that accept a hand-built board.
type GridLoader interface {
	LoadGrid(grid [][]int, colours int) error
}

var ErrNoGridLoader = errors.New("engine cannot load a hand-built grid")

// Load parses one script. Unknown keys are rejected.
func Load(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var s Script
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decode script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadFile parses the script at path.
func LoadFile(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = path
	}
	return s, nil
}

// Validate checks that the script describes a board.
func (s *Script) Validate() error {
	if s.Colours < 1 {
		return fmt.Errorf("script %q: colours must be at least 1", s.Name)
	}
	if s.Grid == nil && (s.Rows < 1 || s.Cols < 1) {
		return fmt.Errorf("script %q: needs rows and cols or a grid", s.Name)
	}
	return nil
}

// StepResult records one executed step.
type StepResult struct {
	Move   types.Move `json:"move"`
	Legal  bool       `json:"legal"`
	Expect *bool      `json:"expect,omitempty"`
	Passed bool       `json:"passed"`
}

// Result is the outcome of a whole script.
type Result struct {
	Name     string       `json:"name"`
	Steps    []StepResult `json:"steps"`
	Grid     [][]int      `json:"grid"`
	Passed   bool         `json:"passed"`
	Failures []string     `json:"failures,omitempty"`
}

// Run sets up the board and plays every step. Mismatched expectations are
// reported in the Result; errors are reserved for boards that cannot be
// set up.
func Run(s *Script, eng engine.GameEngine) (*Result, error) {
	if s.Grid != nil {
		loader, ok := eng.(GridLoader)
		if !ok {
			return nil, ErrNoGridLoader
		}
		if err := loader.LoadGrid(s.Grid, s.Colours); err != nil {
			return nil, fmt.Errorf("script %q: %w", s.Name, err)
		}
	} else {
		err := eng.Start(engine.GameConfig{
			Rows:      s.Rows,
			Cols:      s.Cols,
			Colours:   s.Colours,
			Seed:      s.Seed,
			MaxResets: s.MaxResets,
		})
		if err != nil {
			return nil, fmt.Errorf("script %q: %w", s.Name, err)
		}
	}

	res := &Result{Name: s.Name, Passed: true}
	for i, step := range s.Moves {
		m := step.Move()
		sr := StepResult{Move: m, Expect: step.Expect, Passed: true}
		sr.Legal = eng.DoAction(m.Row, m.Col, m.Dir)
		if step.Expect != nil && *step.Expect != sr.Legal {
			sr.Passed = false
			res.Passed = false
			res.Failures = append(res.Failures, fmt.Sprintf("step %d %s: legal=%t, want %t", i, m, sr.Legal, *step.Expect))
		}
		res.Steps = append(res.Steps, sr)
	}
	res.Grid = eng.BoardState().Board
	if s.ExpectGrid != nil && !reflect.DeepEqual(s.ExpectGrid, res.Grid) {
		res.Passed = false
		res.Failures = append(res.Failures, fmt.Sprintf("final grid %v, want %v", res.Grid, s.ExpectGrid))
	}
	return res, nil
}
