package render

import "github.com/gogpu/cellgrid"

// paletteRowBytes is the byte width of one palette texture row:
// 16 RGBA texels.
const paletteRowBytes = cellgrid.PaletteRowSize * 4

// buildPaletteData flattens per-cell palette rows into the palette
// texture payload: one 64-byte row per cell in grid order. Cells with
// an out-of-range palette reference fall back to row 0.
func buildPaletteData(grid *cellgrid.Grid, palette *cellgrid.Palette) []byte {
	cells := grid.Cells()
	data := make([]byte, len(cells)*paletteRowBytes)
	for i, c := range cells {
		row := palette.RowFor(c)
		off := i * paletteRowBytes
		for j, col := range row {
			o := off + j*4
			data[o+0] = col.R
			data[o+1] = col.G
			data[o+2] = col.B
			data[o+3] = col.A
		}
	}
	return data
}
