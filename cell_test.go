package cellgrid

import "testing"

func TestColorPacked(t *testing.T) {
	tests := []struct {
		name string
		c    Color
		want uint32
	}{
		{"black opaque", Black, 0xFF000000},
		{"white opaque", White, 0xFFFFFFFF},
		{"transparent", Transparent, 0x00000000},
		{"channel order", Color{R: 0x11, G: 0x22, B: 0x33, A: 0x44}, 0x44332211},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Packed(); got != tt.want {
				t.Errorf("Packed() = %#08x, want %#08x", got, tt.want)
			}
		})
	}
}

func TestRGB(t *testing.T) {
	c := RGB(1, 2, 3)
	if c.A != 255 {
		t.Errorf("RGB alpha = %d, want 255", c.A)
	}
}

func TestBlankCell(t *testing.T) {
	c := BlankCell()
	if c.Glyph != 0 {
		t.Errorf("blank glyph = %d, want 0", c.Glyph)
	}
	if c.BG != Transparent {
		t.Errorf("blank background = %+v, want transparent", c.BG)
	}
	if c.Transparent {
		t.Error("blank cell must not be a Stamp hole")
	}
}
