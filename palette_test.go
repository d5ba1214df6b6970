package cellgrid

import (
	"errors"
	"testing"
)

func TestNewPalette(t *testing.T) {
	p := NewPalette(4)
	if p.Rows() != 4 {
		t.Fatalf("Rows() = %d, want 4", p.Rows())
	}

	// Row 0 is the grayscale ramp.
	row, err := p.Row(0)
	if err != nil {
		t.Fatal(err)
	}
	if row[0] != RGB(0, 0, 0) || row[15] != RGB(255, 255, 255) {
		t.Errorf("ramp endpoints = %+v, %+v", row[0], row[15])
	}
	for i := 1; i < PaletteRowSize; i++ {
		if row[i].R <= row[i-1].R {
			t.Fatalf("ramp not increasing at %d", i)
		}
	}

	if p := NewPalette(0); p.Rows() != 1 {
		t.Errorf("NewPalette(0).Rows() = %d, want 1", p.Rows())
	}
}

func TestPaletteSetRow(t *testing.T) {
	p := NewPalette(2)
	var row PaletteRow
	for i := range row {
		row[i] = RGB(uint8(i), 0, 0)
	}
	if err := p.SetRow(1, row); err != nil {
		t.Fatal(err)
	}
	got, err := p.Row(1)
	if err != nil {
		t.Fatal(err)
	}
	if got != row {
		t.Errorf("Row(1) = %+v, want %+v", got, row)
	}

	if err := p.SetRow(2, row); !errors.Is(err, ErrPaletteRowRange) {
		t.Errorf("SetRow(2) error = %v, want ErrPaletteRowRange", err)
	}
	if _, err := p.Row(-1); !errors.Is(err, ErrPaletteRowRange) {
		t.Errorf("Row(-1) error = %v, want ErrPaletteRowRange", err)
	}
}

func TestPaletteRowFor(t *testing.T) {
	p := NewPalette(2)
	var red PaletteRow
	for i := range red {
		red[i] = RGB(255, 0, 0)
	}
	p.SetRow(1, red)

	if got := p.RowFor(Cell{PaletteRow: 1}); got != red {
		t.Errorf("RowFor(row 1) = %+v, want red row", got[0])
	}

	// Out-of-range references fall back to row 0.
	row0, _ := p.Row(0)
	if got := p.RowFor(Cell{PaletteRow: 99}); got != row0 {
		t.Error("RowFor(row 99) did not fall back to row 0")
	}
}
