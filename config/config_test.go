package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cellgrid.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Grid.Width != 80 || cfg.Grid.Height != 25 {
		t.Errorf("default grid = %dx%d, want 80x25", cfg.Grid.Width, cfg.Grid.Height)
	}
	if cfg.PaletteMode() {
		t.Error("default config must use direct mode")
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
mode = "palette"
frames = 60
script = "demo.lua"

[grid]
width = 40
height = 12

[output]
width = 320
height = 200

[atlas]
path = "sprites.png"
cell_width = 8
cell_height = 16
indexed = true

[capture]
dir = "out"
prefix = "shot"
every = 10
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.PaletteMode() {
		t.Error("mode = direct, want palette")
	}
	if cfg.Grid.Width != 40 || cfg.Grid.Height != 12 {
		t.Errorf("grid = %dx%d, want 40x12", cfg.Grid.Width, cfg.Grid.Height)
	}
	if cfg.Output.Width != 320 || cfg.Output.Height != 200 {
		t.Errorf("output = %dx%d, want 320x200", cfg.Output.Width, cfg.Output.Height)
	}
	if cfg.Atlas.Path != "sprites.png" || !cfg.Atlas.Indexed {
		t.Errorf("atlas = %+v", cfg.Atlas)
	}
	if cfg.Capture.Every != 10 || cfg.Capture.Prefix != "shot" {
		t.Errorf("capture = %+v", cfg.Capture)
	}
	if cfg.Frames != 60 || cfg.Script != "demo.lua" {
		t.Errorf("frames = %d, script = %q", cfg.Frames, cfg.Script)
	}
}

func TestLoadKeepsDefaultsForAbsentFields(t *testing.T) {
	path := writeConfig(t, `
[grid]
width = 10
height = 10
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	def := Default()
	if cfg.Output != def.Output {
		t.Errorf("output = %+v, want default %+v", cfg.Output, def.Output)
	}
	if cfg.Mode != def.Mode {
		t.Errorf("mode = %q, want default %q", cfg.Mode, def.Mode)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
			t.Error("expected an error for a missing file")
		}
	})

	t.Run("malformed toml", func(t *testing.T) {
		path := writeConfig(t, "mode = [broken")
		if _, err := Load(path); err == nil {
			t.Error("expected a parse error")
		}
	})

	t.Run("bad grid", func(t *testing.T) {
		path := writeConfig(t, "[grid]\nwidth = 0\nheight = 5\n")
		if _, err := Load(path); !errors.Is(err, ErrBadGridSize) {
			t.Errorf("error = %v, want ErrBadGridSize", err)
		}
	})

	t.Run("bad mode", func(t *testing.T) {
		path := writeConfig(t, `mode = "truecolor"`)
		if _, err := Load(path); !errors.Is(err, ErrBadColorMode) {
			t.Errorf("error = %v, want ErrBadColorMode", err)
		}
	})
}
