package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"github.com/adrg/xdg"

	"triplet/engine"
	"triplet/engine/match3"
)

var (
	cfgFile = "triplet/config.json"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

// ConfigColors holds 256-colour palette indices.
type ConfigColors struct {
	Tiles         []int `json:"tiles"` // foreground per colour value, 1-based order
	BoardColor    int   `json:"board"`
	BoardColorAlt int   `json:"board_alt"`
	CursorColorBG int   `json:"cursor_bg"`
	PickedColorBG int   `json:"picked_bg"`
	HintColorBG   int   `json:"hint_bg"`
	LastMoveBG    int   `json:"last_move_bg"`
}

type ConfigSymbols struct {
	Tiles   []rune `json:"tiles"` // glyph per colour value, 1-based order
	Unknown rune   `json:"unknown"`
}

type Theme struct {
	DrawCursorBackground   bool          `json:"draw_cursor_bg"`
	DrawLastMoveBackground bool          `json:"draw_last_move_bg"`
	Checkered              bool          `json:"checkered"`
	Colors                 ConfigColors  `json:"colors"`
	Symbols                ConfigSymbols `json:"symbols"`
}

// Glyphs returns the symbol set in the engine's form.
func (t Theme) Glyphs() match3.Glyphs {
	return match3.Glyphs{Palette: t.Symbols.Tiles, Unknown: t.Symbols.Unknown}
}

// GameDefaults holds the parameters used when no flag overrides them.
type GameDefaults struct {
	Rows            int  `json:"rows"`
	Cols            int  `json:"cols"`
	Colours         int  `json:"colours"`
	MaxResets       int  `json:"max_resets"`
	RepairAfterMove bool `json:"repair_after_move"`
	Show            bool `json:"show"`
}

// GameConfig converts the defaults into engine start parameters.
func (d GameDefaults) GameConfig() engine.GameConfig {
	return engine.GameConfig{
		Rows:            d.Rows,
		Cols:            d.Cols,
		Colours:         d.Colours,
		Show:            d.Show,
		MaxResets:       d.MaxResets,
		RepairAfterMove: d.RepairAfterMove,
	}
}

type Config struct {
	Theme Theme        `json:"theme"`
	Game  GameDefaults `json:"game"`
}

func InitConfig() (*Config, error) {
	config := DefaultConfig()
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err == nil {
		if err = readCfgFile(absPath, &config); err != nil {
			return nil, err
		}
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	runes := append([]rune{c.Theme.Symbols.Unknown}, c.Theme.Symbols.Tiles...)
	for _, r := range runes {
		if r < 32 || (r >= 127 && r <= 159) {
			return &InvalidConfig{"Unicode characters 1-31 and 127-159 are not allowed"}
		}
	}
	if c.Game.Rows < 1 || c.Game.Cols < 1 {
		return &InvalidConfig{fmt.Sprintf("board size %dx%d must be at least 1x1", c.Game.Rows, c.Game.Cols)}
	}
	if c.Game.Colours < 1 {
		return &InvalidConfig{fmt.Sprintf("colour count %d must be at least 1", c.Game.Colours)}
	}
	if c.Game.MaxResets < 0 {
		return &InvalidConfig{"max_resets cannot be negative"}
	}
	return nil
}

func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return err
	}
	return saveCfgFile(absPath, c, 0664)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, jsonData, perm)
}

func readCfgFile(filePath string, a interface{}) error {
	configReader, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(configReader, a); err != nil {
		return &InvalidConfig{fmt.Sprintf("%s: %s", filePath, err)}
	}
	return nil
}
