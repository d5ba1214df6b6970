package cellgrid

// Color is an 8-bit RGBA color as stored in cells and palettes.
// Cell colors are not premultiplied; alpha is applied by the cell
// pass when compositing foreground over background.
type Color struct {
	R, G, B, A uint8
}

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// Packed returns the color packed as 0xAABBGGRR, the byte order the
// instance buffer and palette texture use (RGBA, little-endian).
func (c Color) Packed() uint32 {
	return uint32(c.R) | uint32(c.G)<<8 | uint32(c.B)<<16 | uint32(c.A)<<24
}

// Common colors.
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(255, 255, 255)
	Transparent = Color{}
)

// Cell is one grid position: a glyph index into the sprite atlas plus
// its coloring. In direct-color mode FG and BG are used as-is; in
// palette mode PaletteRow selects a 16-color row from the Palette and
// FG/BG are ignored.
type Cell struct {
	// Glyph is the sprite atlas index. Glyph g maps to atlas tile
	// (g % cols, g / cols). Values at or beyond the atlas capacity
	// are clamped to tile 0 at instance build time.
	Glyph uint32

	// FG is the foreground color, selected where the atlas mask is
	// white (direct-color mode).
	FG Color

	// BG is the background color, selected elsewhere.
	BG Color

	// PaletteRow selects the cell's 16-color palette row (palette
	// mode only).
	PaletteRow uint8

	// Transparent marks the cell as a hole for Stamp: transparent
	// source cells leave the destination untouched.
	Transparent bool
}

// BlankCell is the value new grid cells take after creation or resize:
// glyph 0 with a transparent background.
func BlankCell() Cell {
	return Cell{Glyph: 0, FG: White, BG: Transparent}
}
