package cellgrid

import (
	"errors"
	"fmt"
	"iter"
)

// Grid errors.
var (
	// ErrOutOfBounds is returned when a cell coordinate lies outside
	// the grid dimensions.
	ErrOutOfBounds = errors.New("cellgrid: coordinate out of bounds")

	// ErrInvalidSize is returned when a grid is created or resized
	// with a non-positive dimension.
	ErrInvalidSize = errors.New("cellgrid: grid dimensions must be positive")
)

// Point is a cell coordinate. X is the column, Y the row; the origin
// is the top-left corner and Y increases downward.
type Point struct {
	X, Y int
}

// Grid is the logical screen: a dense row-major array of cells sized
// width x height. The application mutates it between frames; the
// renderer only reads it while building instance data. Grid is not
// safe for concurrent mutation.
type Grid struct {
	width  int
	height int
	cells  []Cell
}

// NewGrid creates a grid of the given dimensions with every cell set
// to the blank default.
func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	g := &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
	g.Clear()
	return g, nil
}

// Width returns the grid width in cells.
func (g *Grid) Width() int { return g.width }

// Height returns the grid height in cells.
func (g *Grid) Height() int { return g.height }

// Len returns the cell count, always width*height.
func (g *Grid) Len() int { return len(g.cells) }

// At returns the cell at (x, y).
func (g *Grid) At(x, y int) (Cell, error) {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return Cell{}, fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfBounds, x, y, g.width, g.height)
	}
	return g.cells[y*g.width+x], nil
}

// Set replaces the cell at (x, y).
func (g *Grid) Set(x, y int, c Cell) error {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfBounds, x, y, g.width, g.height)
	}
	g.cells[y*g.width+x] = c
	return nil
}

// All returns a restartable row-major iterator over (position, cell)
// pairs. Mutating the grid while iterating is undefined.
func (g *Grid) All() iter.Seq2[Point, Cell] {
	return func(yield func(Point, Cell) bool) {
		for y := 0; y < g.height; y++ {
			for x := 0; x < g.width; x++ {
				if !yield(Point{X: x, Y: y}, g.cells[y*g.width+x]) {
					return
				}
			}
		}
	}
}

// Cells returns the backing cell slice in row-major order. The slice
// is owned by the grid; callers must not hold it across a Resize.
func (g *Grid) Cells() []Cell { return g.cells }

// Resize reallocates the grid to the new dimensions. Cells whose
// coordinates are valid under both the old and the new dimensions keep
// their value; all other cells become the blank default.
func (g *Grid) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if width == g.width && height == g.height {
		return nil
	}
	cells := make([]Cell, width*height)
	blank := BlankCell()
	for i := range cells {
		cells[i] = blank
	}
	copyW := min(width, g.width)
	copyH := min(height, g.height)
	for y := 0; y < copyH; y++ {
		copy(cells[y*width:y*width+copyW], g.cells[y*g.width:y*g.width+copyW])
	}
	g.width = width
	g.height = height
	g.cells = cells
	return nil
}

// Clear resets every cell to the blank default.
func (g *Grid) Clear() {
	g.Fill(BlankCell())
}

// Fill sets every cell to c.
func (g *Grid) Fill(c Cell) {
	for i := range g.cells {
		g.cells[i] = c
	}
}

// ClearGlyphs resets every cell's glyph to 0 while keeping its colors.
func (g *Grid) ClearGlyphs() {
	for i := range g.cells {
		g.cells[i].Glyph = 0
	}
}

// Stamp copies src onto the grid with its top-left corner at (ox, oy).
// Source cells falling outside the grid are truncated; source cells
// marked Transparent leave the destination untouched. Negative
// offsets clip the source against the top/left edges.
func (g *Grid) Stamp(src *Grid, ox, oy int) {
	for y := 0; y < src.height; y++ {
		dy := oy + y
		if dy < 0 || dy >= g.height {
			continue
		}
		for x := 0; x < src.width; x++ {
			dx := ox + x
			if dx < 0 || dx >= g.width {
				continue
			}
			c := src.cells[y*src.width+x]
			if c.Transparent {
				continue
			}
			g.cells[dy*g.width+dx] = c
		}
	}
}
