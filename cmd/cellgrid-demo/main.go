//go:build !nogpu

// Command cellgrid-demo renders a scripted cell grid offscreen and
// writes the frames as WebP images.
//
// A Lua script drives the grid: its tick(frame) function is called
// once per frame with the global cell API (set_cell, fill, clear,
// grid_width, grid_height) in scope. Without a script the demo shows
// a character ramp.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/cellgrid"
	"github.com/gogpu/cellgrid/atlas"
	"github.com/gogpu/cellgrid/capture"
	"github.com/gogpu/cellgrid/config"
	"github.com/gogpu/cellgrid/render"
)

func main() {
	var (
		configPath = flag.String("config", "", "TOML configuration file")
		scriptPath = flag.String("script", "", "Lua script driving the grid (overrides config)")
		frames     = flag.Int("frames", 0, "frame count (overrides config)")
		mode       = flag.String("mode", "", "color mode: direct or palette (overrides config)")
		watch      = flag.Bool("watch", false, "run until q is pressed instead of a fixed frame count")
		verbose    = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	cellgrid.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("load config: %v", err)
		}
	}
	if *scriptPath != "" {
		cfg.Script = *scriptPath
	}
	if *frames > 0 {
		cfg.Frames = *frames
	}
	if *mode != "" {
		cfg.Mode = *mode
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := run(cfg, *watch); err != nil {
		log.Fatalf("cellgrid-demo: %v", err)
	}
}

func run(cfg config.Config, watch bool) error {
	a, err := loadAtlas(cfg.Atlas)
	if err != nil {
		return fmt.Errorf("load atlas: %w", err)
	}

	grid, err := cellgrid.NewGrid(cfg.Grid.Width, cfg.Grid.Height)
	if err != nil {
		return err
	}

	backend := render.NewBackend()
	if err := backend.Init(); err != nil {
		return fmt.Errorf("init backend: %w", err)
	}
	defer backend.Close()

	rcfg := render.Config{
		Mode:         render.ColorModeDirect,
		Atlas:        a,
		OutputWidth:  uint32(cfg.Output.Width),
		OutputHeight: uint32(cfg.Output.Height),
		ClearColor:   gputypes.Color{R: 0, G: 0, B: 0, A: 1},
	}
	if cfg.PaletteMode() {
		rcfg.Mode = render.ColorModePalette
		rcfg.Palette = cellgrid.NewPalette(16)
	}

	renderer, err := render.NewRenderer(backend, rcfg)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	defer renderer.Destroy()

	var script *gridScript
	if cfg.Script != "" {
		if script, err = loadScript(cfg.Script, grid); err != nil {
			return fmt.Errorf("load script: %w", err)
		}
		defer script.close()
	}

	var seq *capture.Sequence
	if cfg.Capture.Dir != "" {
		if seq, err = capture.NewSequence(cfg.Capture.Dir, cfg.Capture.Prefix); err != nil {
			return err
		}
	}

	stop := make(chan struct{})
	if watch {
		go waitForQuit(stop)
	}

	w, h := renderer.OutputSize()
	every := cfg.Capture.Every
	if every <= 0 {
		every = 1
	}
	for frame := 0; watch || frame < cfg.Frames; frame++ {
		if watch {
			select {
			case <-stop:
				return nil
			default:
			}
		}

		if script != nil {
			if err := script.tick(frame); err != nil {
				return fmt.Errorf("script tick %d: %w", frame, err)
			}
		} else {
			demoPattern(grid, frame)
		}

		if err := renderer.RenderFrame(grid); err != nil {
			return fmt.Errorf("render frame %d: %w", frame, err)
		}

		if seq != nil && frame%every == 0 {
			pixels, err := renderer.ReadPixels()
			if err != nil {
				return fmt.Errorf("read frame %d: %w", frame, err)
			}
			if _, err := seq.Write(pixels, int(w), int(h)); err != nil {
				return err
			}
		}
	}

	if seq != nil {
		log.Printf("wrote %d frames to %s", seq.Count(), cfg.Capture.Dir)
	}
	return nil
}

// loadAtlas builds the glyph atlas from the configured source. An
// empty path selects the built-in font.
func loadAtlas(cfg config.Atlas) (*atlas.Atlas, error) {
	if cfg.Path == "" {
		return atlas.FromBuiltinFont(), nil
	}
	if cfg.Indexed {
		return atlas.LoadIndexed(cfg.Path, cfg.CellWidth, cfg.CellHeight)
	}
	return atlas.Load(cfg.Path, cfg.CellWidth, cfg.CellHeight)
}

// demoPattern fills the grid with a scrolling character ramp so the
// demo produces visible output without a script.
func demoPattern(grid *cellgrid.Grid, frame int) {
	w := grid.Width()
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < w; x++ {
			shade := uint8(80 + (x*175)/max(w-1, 1))
			grid.Set(x, y, cellgrid.Cell{
				Glyph: uint32((x + y + frame) % 94),
				FG:    cellgrid.Color{R: shade, G: 255 - shade, B: 128, A: 255},
				BG:    cellgrid.Black,
			})
		}
	}
}
