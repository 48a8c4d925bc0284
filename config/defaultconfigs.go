package config

import "triplet/engine/match3"

var DefaultTheme Theme

func init() {
	DefaultTheme = Theme{
		DrawCursorBackground:   true,
		DrawLastMoveBackground: true,
		Checkered:              true,
		Colors: ConfigColors{
			Tiles:         []int{220, 203, 75, 114, 183},
			BoardColor:    236,
			BoardColorAlt: 237,
			CursorColorBG: 4,
			PickedColorBG: 130,
			HintColorBG:   22,
			LastMoveBG:    239,
		},
		Symbols: ConfigSymbols{
			Tiles:   append([]rune(nil), match3.DefaultGlyphs...),
			Unknown: match3.UnknownGlyph,
		},
	}
}

// DefaultConfig returns a fresh copy of the built-in configuration.
func DefaultConfig() Config {
	theme := DefaultTheme
	theme.Colors.Tiles = append([]int(nil), DefaultTheme.Colors.Tiles...)
	theme.Symbols.Tiles = append([]rune(nil), DefaultTheme.Symbols.Tiles...)
	return Config{
		Theme: theme,
		Game: GameDefaults{
			Rows:      7,
			Cols:      7,
			Colours:   4,
			MaxResets: 10000,
		},
	}
}
