package render

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/cellgrid"
)

// ColorMode selects how the cell pass colors fragments.
type ColorMode int

const (
	// ColorModeDirect colors each cell from its own FG/BG pair: atlas
	// texels equal to the white marker select FG, everything else BG.
	ColorModeDirect ColorMode = iota

	// ColorModePalette treats atlas texels as indices into the cell's
	// 16-color palette row.
	ColorModePalette
)

// String returns the mode name.
func (m ColorMode) String() string {
	switch m {
	case ColorModeDirect:
		return "Direct"
	case ColorModePalette:
		return "Palette"
	default:
		return "Unknown"
	}
}

// instanceStride is the byte stride of one instance record.
// Layout per instance (matches the cell shaders):
//
//	translate (vec2<f32>)  =  8 bytes  (location 2)
//	aux       (vec2<u32>)  =  8 bytes  (location 3)
//	sprite    (u32)        =  4 bytes  (location 4)
//	index     (u32)        =  4 bytes  (location 5)
//
// Total = 24 bytes. In palette mode aux carries the cell coordinates
// used for the palette row lookup; in direct mode it carries the
// packed FG and BG colors instead, since no palette lookup happens.
const instanceStride = 24

// InstanceBuilder serializes a grid into packed instance records.
// Building is deterministic: the same grid, mode, and atlas geometry
// always produce byte-identical output.
type InstanceBuilder struct {
	mode ColorMode

	// Atlas geometry the records are built against.
	atlasCols uint32
	atlasRows uint32

	// Scratch buffer reused across builds to avoid per-frame
	// allocation once it has grown to the grid size.
	scratch []byte

	warn onceLog
}

// NewInstanceBuilder creates a builder for the given color mode and
// atlas tile dimensions.
func NewInstanceBuilder(mode ColorMode, atlasCols, atlasRows uint32) *InstanceBuilder {
	if atlasCols == 0 {
		atlasCols = 1
	}
	if atlasRows == 0 {
		atlasRows = 1
	}
	return &InstanceBuilder{
		mode:      mode,
		atlasCols: atlasCols,
		atlasRows: atlasRows,
	}
}

// Mode returns the builder's color mode.
func (b *InstanceBuilder) Mode() ColorMode { return b.mode }

// Build packs one record per cell in row-major order and returns the
// backing bytes, valid until the next Build call. The record count
// always equals grid.Len(). Glyph indices at or beyond the atlas
// capacity are clamped to tile 0 and reported once.
func (b *InstanceBuilder) Build(grid *cellgrid.Grid) []byte {
	w := grid.Width()
	h := grid.Height()
	size := w * h * instanceStride
	if cap(b.scratch) < size {
		b.scratch = make([]byte, size)
	}
	data := b.scratch[:size]

	capacity := b.atlasCols * b.atlasRows
	cells := grid.Cells()
	off := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := cells[y*w+x]
			glyph, clamped := clampGlyph(c.Glyph, capacity)
			if clamped {
				b.warn.warn("glyph-range", "glyph index beyond atlas capacity, using tile 0",
					"err", ErrInvalidGlyphIndex, "glyph", c.Glyph, "capacity", capacity)
			}

			tx, ty := translateForCell(x, y, w, h)
			var auxX, auxY uint32
			if b.mode == ColorModePalette {
				auxX = uint32(x)
				auxY = uint32(y)
			} else {
				auxX = c.FG.Packed()
				auxY = c.BG.Packed()
			}
			writeInstance(data[off:], tx, ty, auxX, auxY, glyph, uint32(y*w+x))
			off += instanceStride
		}
	}
	return data
}

// writeInstance packs a single 24-byte instance record into buf.
func writeInstance(buf []byte, tx, ty float32, auxX, auxY, sprite, index uint32) {
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(tx))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(ty))
	binary.LittleEndian.PutUint32(buf[8:12], auxX)
	binary.LittleEndian.PutUint32(buf[12:16], auxY)
	binary.LittleEndian.PutUint32(buf[16:20], sprite)
	binary.LittleEndian.PutUint32(buf[20:24], index)
}
