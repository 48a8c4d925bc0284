package console

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"triplet/engine/match3"
	"triplet/types"
)

func oneRowGame(t *testing.T, out *bytes.Buffer) *match3.Game {
	t.Helper()
	g := match3.NewGame()
	g.Out = out
	require.NoError(t, g.LoadGrid([][]int{{1, 1, 2, 1}}, 2))
	g.SetShow(true)
	return g
}

func TestParseMove(t *testing.T) {
	tests := []struct {
		line string
		want types.Move
	}{
		{"0 3 2", types.Move{Row: 0, Col: 3, Dir: types.Left}},
		{"  4   5 1 ", types.Move{Row: 4, Col: 5, Dir: types.Down}},
		{"1 1 9 extra", types.Move{Row: 1, Col: 1, Dir: types.Direction(9)}},
		{"-1 0 0", types.Move{Row: -1, Col: 0, Dir: types.Up}},
	}
	for _, tt := range tests {
		got, err := ParseMove(tt.line)
		require.NoError(t, err, tt.line)
		assert.Equal(t, tt.want, got, tt.line)
	}

	for _, bad := range []string{"", "1 2", "a b c", "1 2 x", "q"} {
		_, err := ParseMove(bad)
		assert.Error(t, err, "%q", bad)
	}
}

func TestSessionGolden(t *testing.T) {
	var out bytes.Buffer
	g := oneRowGame(t, &out)

	in := strings.NewReader("0 3 2\n0 0 0\n1 1 9\nQ\n0 0 1\n")
	require.NoError(t, Run(context.Background(), g, in, &out))

	gold := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	gold.Assert(t, "session", out.Bytes())
	assert.Equal(t, [][]int{{1, 1, 1, 2}}, g.Board().Grid())
	assert.Equal(t, 3, g.BoardState().Moves, "lines after Q are not read")
}

func TestEndOfInput(t *testing.T) {
	var out bytes.Buffer
	g := oneRowGame(t, &out)
	require.NoError(t, Run(context.Background(), g, strings.NewReader("0 3 2\n"), &out))
	assert.Equal(t, 1, g.BoardState().Successes)
}

func TestMalformedLineEndsSession(t *testing.T) {
	var out bytes.Buffer
	g := oneRowGame(t, &out)
	err := Run(context.Background(), g, strings.NewReader("0 0\n0 3 2\n"), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want 3 fields")
	assert.Zero(t, g.BoardState().Moves)
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	err := Run(ctx, oneRowGame(t, &out), strings.NewReader("0 3 2\n"), &out)
	assert.ErrorIs(t, err, context.Canceled)
}
