package atlas

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Builtin font atlas geometry: printable ASCII 0x20-0x7F rasterized
// from basicfont.Face7x13 into a 16x6 tile grid.
const (
	builtinCols      = 16
	builtinRows      = 6
	builtinFirstRune = 0x20
)

// FromBuiltinFont rasterizes the built-in 7x13 bitmap font into a
// direct-color-mode atlas. Glyph index g renders rune 0x20+g; index 0
// is the space, which doubles as the blank fallback tile.
func FromBuiltinFont() *Atlas {
	face := basicfont.Face7x13
	cellW := face.Advance
	cellH := face.Height

	img := image.NewGray(image.Rect(0, 0, builtinCols*cellW, builtinRows*cellH))
	d := font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: face,
	}
	for i := 0; i < builtinCols*builtinRows; i++ {
		col := i % builtinCols
		row := i / builtinCols
		d.Dot = fixed.P(col*cellW, row*cellH+face.Ascent)
		d.DrawString(string(rune(builtinFirstRune + i)))
	}

	a := &Atlas{
		cellWidth:  cellW,
		cellHeight: cellH,
		cols:       builtinCols,
		rows:       builtinRows,
		pixels:     make([]uint8, len(img.Pix)),
	}
	for i, v := range img.Pix {
		if v >= maskThreshold {
			a.pixels[i] = 255
		}
	}
	return a
}

// GlyphForRune maps a rune to its builtin-font glyph index, returning
// 0 (the space tile) for runes outside the printable ASCII range.
func GlyphForRune(r rune) uint32 {
	if r < builtinFirstRune || r >= builtinFirstRune+builtinCols*builtinRows {
		return 0
	}
	return uint32(r - builtinFirstRune)
}
