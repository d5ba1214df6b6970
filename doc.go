// Package cellgrid provides a GPU-accelerated cell grid renderer for Go.
//
// # Overview
//
// cellgrid renders a logical grid of glyph cells, the model behind
// terminal emulators and tile-based displays, in a single instanced
// draw call per frame. The CPU side is this root package: a dense
// row-major Grid of Cells plus the Palette used in indexed-color mode.
// The GPU side lives in the render sub-package.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/cellgrid"
//	    "github.com/gogpu/cellgrid/atlas"
//	    "github.com/gogpu/cellgrid/render"
//	)
//
//	grid, _ := cellgrid.NewGrid(80, 25)
//	grid.Set(0, 0, cellgrid.Cell{
//	    Glyph: atlas.GlyphForRune('A'),
//	    FG:    cellgrid.White,
//	    BG:    cellgrid.Black,
//	})
//
//	backend := render.NewBackend()
//	backend.Init()
//	defer backend.Close()
//
//	r, _ := render.NewRenderer(backend, render.Config{
//	    Mode:  render.ColorModeDirect,
//	    Atlas: atlas.FromBuiltinFont(),
//	})
//	defer r.Destroy()
//
//	r.RenderFrame(grid)
//	pixels, _ := r.ReadPixels()
//
// # Architecture
//
// The library is organized into:
//   - cellgrid (this package): Grid, Cell, Color, Palette, logging
//   - render: instance building, uniforms, the cell and screen passes
//   - atlas: glyph atlas construction from images or the built-in font
//   - capture: WebP export of rendered frames
//   - config: TOML configuration for the demo binary
//
// # Coordinate System
//
// Grids use a top-left origin: X increases right, Y increases down,
// matching text flow. Cell (0, 0) is the top-left character.
//
// # Color Modes
//
// Direct mode colors each cell from its own FG/BG pair; the atlas is a
// binary mask. Palette mode treats atlas texels as indices into the
// 16-color palette row assigned to each cell.
package cellgrid

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"
)
