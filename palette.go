package cellgrid

import (
	"errors"
	"fmt"
)

// PaletteRowSize is the number of colors in one palette row. The cell
// pass clamps sampled color indices to [0, PaletteRowSize-1].
const PaletteRowSize = 16

// Palette errors.
var (
	// ErrPaletteRowRange is returned when a row index is outside the
	// palette.
	ErrPaletteRowRange = errors.New("cellgrid: palette row out of range")
)

// PaletteRow is one row of 16 colors. In palette mode the atlas texel
// value selects a color from the row assigned to the cell.
type PaletteRow [PaletteRowSize]Color

// Palette is an ordered set of 16-color rows. Cells reference rows by
// index via Cell.PaletteRow. The zero row of a new palette is a
// grayscale ramp so unconfigured cells render visibly.
type Palette struct {
	rows []PaletteRow
}

// NewPalette creates a palette with the given number of rows. Row 0 is
// initialized to a grayscale ramp; all other rows start black.
func NewPalette(rows int) *Palette {
	if rows < 1 {
		rows = 1
	}
	p := &Palette{rows: make([]PaletteRow, rows)}
	for i := 0; i < PaletteRowSize; i++ {
		v := uint8(i * 17)
		p.rows[0][i] = RGB(v, v, v)
	}
	return p
}

// Rows returns the number of rows.
func (p *Palette) Rows() int { return len(p.rows) }

// Row returns row i.
func (p *Palette) Row(i int) (PaletteRow, error) {
	if i < 0 || i >= len(p.rows) {
		return PaletteRow{}, fmt.Errorf("%w: %d of %d", ErrPaletteRowRange, i, len(p.rows))
	}
	return p.rows[i], nil
}

// SetRow replaces row i.
func (p *Palette) SetRow(i int, row PaletteRow) error {
	if i < 0 || i >= len(p.rows) {
		return fmt.Errorf("%w: %d of %d", ErrPaletteRowRange, i, len(p.rows))
	}
	p.rows[i] = row
	return nil
}

// RowFor returns the row referenced by the cell, falling back to row 0
// when the reference is out of range.
func (p *Palette) RowFor(c Cell) PaletteRow {
	i := int(c.PaletteRow)
	if i >= len(p.rows) {
		i = 0
	}
	return p.rows[i]
}
