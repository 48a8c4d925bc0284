package match3

import (
	"fmt"
	"io"
	"strings"
)

// DefaultGlyphs maps colours 1..5 to their text glyphs.
var DefaultGlyphs = []rune{'☆', '●', '□', '△', '○'}

// UnknownGlyph is drawn for colours beyond the glyph palette.
const UnknownGlyph = 'X'

// Glyphs picks the rune drawn for each colour.
type Glyphs struct {
	Palette []rune
	Unknown rune
}

// Glyph returns the rune for colour.
func (g Glyphs) Glyph(colour int) rune {
	if colour >= 1 && colour <= len(g.Palette) {
		return g.Palette[colour-1]
	}
	if g.Unknown == 0 {
		return UnknownGlyph
	}
	return g.Unknown
}

// Render writes the column header, then one line per row prefixed by the
// row index.
//
//	  0 1 2
//	0 ☆●□
//	1 △☆●
func (b *Board) Render(w io.Writer, glyphs Glyphs) {
	var sb strings.Builder
	sb.WriteString("  ")
	for col := 0; col < b.cols; col++ {
		fmt.Fprintf(&sb, "%d ", col)
	}
	for row := 0; row < b.rows; row++ {
		fmt.Fprintf(&sb, "\n%d ", row)
		for col := 0; col < b.cols; col++ {
			sb.WriteRune(glyphs.Glyph(b.Colour(row, col)))
		}
	}
	sb.WriteString("\n")
	io.WriteString(w, sb.String())
}

// String renders the board with the default glyphs.
func (b *Board) String() string {
	var sb strings.Builder
	b.Render(&sb, Glyphs{Palette: DefaultGlyphs, Unknown: UnknownGlyph})
	return sb.String()
}

// Observation returns a one-hot block of length colours per cell, in
// row-major order.
func (b *Board) Observation() []float32 {
	obs := make([]float32, len(b.grid)*b.colours)
	for i, colour := range b.grid {
		if b.validColour(colour) {
			obs[i*b.colours+colour-1] = 1
		}
	}
	return obs
}
