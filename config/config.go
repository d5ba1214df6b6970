// Package config loads renderer and demo settings from TOML files.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Validation errors.
var (
	ErrBadGridSize   = errors.New("config: grid dimensions must be positive")
	ErrBadOutputSize = errors.New("config: output dimensions must be positive")
	ErrBadColorMode  = errors.New("config: color mode must be \"direct\" or \"palette\"")
)

// Grid holds the logical grid dimensions in cells.
type Grid struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// Output holds the composite target size in pixels.
type Output struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// Atlas selects the glyph atlas source. An empty path selects the
// built-in font atlas; CellWidth and CellHeight are required for file
// atlases and ignored otherwise.
type Atlas struct {
	Path       string `toml:"path"`
	CellWidth  int    `toml:"cell_width"`
	CellHeight int    `toml:"cell_height"`
	Indexed    bool   `toml:"indexed"`
}

// Capture controls offscreen frame export.
type Capture struct {
	Dir    string `toml:"dir"`
	Prefix string `toml:"prefix"`
	Every  int    `toml:"every"`
}

// Config is the root configuration.
type Config struct {
	Mode    string  `toml:"mode"`
	Grid    Grid    `toml:"grid"`
	Output  Output  `toml:"output"`
	Atlas   Atlas   `toml:"atlas"`
	Capture Capture `toml:"capture"`
	Script  string  `toml:"script"`
	Frames  int     `toml:"frames"`
}

// Default returns the configuration used when no file is given: an
// 80x25 direct-color grid rendered at 640x400 for 300 frames.
func Default() Config {
	return Config{
		Mode:   "direct",
		Grid:   Grid{Width: 80, Height: 25},
		Output: Output{Width: 640, Height: 400},
		Capture: Capture{
			Dir:    "frames",
			Prefix: "frame",
			Every:  1,
		},
		Frames: 300,
	}
}

// Load reads and validates a TOML configuration file. Fields absent
// from the file keep their Default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks dimension and mode constraints.
func (c Config) Validate() error {
	if c.Grid.Width <= 0 || c.Grid.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrBadGridSize, c.Grid.Width, c.Grid.Height)
	}
	if c.Output.Width <= 0 || c.Output.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrBadOutputSize, c.Output.Width, c.Output.Height)
	}
	if c.Mode != "direct" && c.Mode != "palette" {
		return fmt.Errorf("%w: %q", ErrBadColorMode, c.Mode)
	}
	return nil
}

// PaletteMode reports whether palette coloring is selected.
func (c Config) PaletteMode() bool { return c.Mode == "palette" }
