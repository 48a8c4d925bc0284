package match3

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"triplet/engine"
)

var paletteGrid = [][]int{
	{1, 2, 3, 4},
	{5, 6, 1, 2},
	{3, 3, 4, 4},
}

func TestRenderGolden(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	game := NewGame()
	require.NoError(t, game.LoadGrid(paletteGrid, 6))

	var buf bytes.Buffer
	game.Render(&buf)
	g.Assert(t, "render_palette", buf.Bytes())

	game.Glyphs = Glyphs{Palette: []rune("abcde"), Unknown: '?'}
	buf.Reset()
	game.Render(&buf)
	g.Assert(t, "render_custom_glyphs", buf.Bytes())
}

func TestGlyphFallback(t *testing.T) {
	assert.Equal(t, UnknownGlyph, Glyphs{}.Glyph(1))
	assert.Equal(t, '☆', Glyphs{Palette: DefaultGlyphs}.Glyph(1))
	assert.Equal(t, UnknownGlyph, Glyphs{Palette: DefaultGlyphs}.Glyph(0))
	assert.Equal(t, '#', Glyphs{Palette: DefaultGlyphs, Unknown: '#'}.Glyph(9))
}

func TestObservationShape(t *testing.T) {
	for _, cfg := range []engine.GameConfig{
		{Rows: 7, Cols: 7, Colours: 3, Seed: 1},
		{Rows: 5, Cols: 6, Colours: 4, Seed: 2},
		{Rows: 3, Cols: 9, Colours: 5, Seed: 3},
	} {
		g := startGame(t, cfg)
		obs := g.Observation()
		require.Len(t, obs, cfg.Rows*cfg.Cols*cfg.Colours)

		var ones int
		for _, v := range obs {
			if v == 1 {
				ones++
			} else {
				require.Zero(t, v)
			}
		}
		assert.Equal(t, cfg.Rows*cfg.Cols, ones)

		for i, colour := range g.Board().Snapshot() {
			block := obs[i*cfg.Colours : (i+1)*cfg.Colours]
			for j, v := range block {
				if j == colour-1 {
					assert.Equal(t, float32(1), v, "cell %d", i)
				} else {
					assert.Equal(t, float32(0), v, "cell %d", i)
				}
			}
		}
	}
}

func TestObservationHandBuilt(t *testing.T) {
	g := NewGame()
	require.NoError(t, g.LoadGrid([][]int{{2, 1}, {3, 2}}, 3))
	assert.Equal(t, []float32{
		0, 1, 0,
		1, 0, 0,
		0, 0, 1,
		0, 1, 0,
	}, g.Observation())
}
