package atlas

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

// checkerImage returns a w x h image whose even pixels are white and
// odd pixels black.
func checkerImage(w, h int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				img.Set(x, y, color.NRGBA{255, 255, 255, 255})
			} else {
				img.Set(x, y, color.NRGBA{0, 0, 0, 255})
			}
		}
	}
	return img
}

func TestFromMaskImage(t *testing.T) {
	a, err := FromMaskImage(checkerImage(16, 8), 8, 8)
	if err != nil {
		t.Fatal(err)
	}
	if a.Cols() != 2 || a.Rows() != 1 {
		t.Fatalf("atlas = %dx%d tiles, want 2x1", a.Cols(), a.Rows())
	}
	if a.Capacity() != 2 {
		t.Errorf("Capacity() = %d, want 2", a.Capacity())
	}
	if a.PixelWidth() != 16 || a.PixelHeight() != 8 {
		t.Errorf("pixel size = %dx%d, want 16x8", a.PixelWidth(), a.PixelHeight())
	}

	px := a.Pixels()
	if px[0] != 255 || px[1] != 0 {
		t.Errorf("mask texels = %d, %d, want 255, 0", px[0], px[1])
	}
	for i, v := range px {
		if v != 0 && v != 255 {
			t.Fatalf("texel %d = %d, mask atlases must be binary", i, v)
		}
	}
}

func TestFromMaskImageRejectsBadDimensions(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		cellW, cellH int
		wantErr      error
	}{
		{"width not multiple", 15, 8, 8, 8, ErrBadDimensions},
		{"height not multiple", 16, 9, 8, 8, ErrBadDimensions},
		{"zero tile", 16, 8, 0, 8, ErrBadDimensions},
		{"empty image", 0, 0, 8, 8, ErrEmptyAtlas},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromMaskImage(checkerImage(tt.w, tt.h), tt.cellW, tt.cellH)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFromIndexedImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			// Red channel encodes the index scaled by 17.
			img.Set(x, y, color.NRGBA{uint8((y*4 + x) * 17), 0, 0, 255})
		}
	}

	a, err := FromIndexedImage(img, 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range a.Pixels() {
		if int(v) != i {
			t.Fatalf("texel %d = %d, want %d", i, v, i)
		}
	}
}

func TestScale(t *testing.T) {
	src := checkerImage(4, 4)
	dst := Scale(src, 8, 8)
	b := dst.Bounds()
	if b.Dx() != 8 || b.Dy() != 8 {
		t.Fatalf("scaled bounds = %v, want 8x8", b)
	}
	// Nearest-neighbor doubling keeps the top-left pixel white.
	c := color.NRGBAModel.Convert(dst.At(0, 0)).(color.NRGBA)
	if c.R != 255 {
		t.Errorf("top-left after scale = %+v, want white", c)
	}
}

func TestFromBuiltinFont(t *testing.T) {
	a := FromBuiltinFont()
	if a.Cols() != 16 || a.Rows() != 6 {
		t.Fatalf("builtin atlas = %dx%d tiles, want 16x6", a.Cols(), a.Rows())
	}
	if a.Capacity() != 96 {
		t.Errorf("Capacity() = %d, want 96", a.Capacity())
	}
	if len(a.Pixels()) != a.PixelWidth()*a.PixelHeight() {
		t.Errorf("payload length = %d, want %d", len(a.Pixels()), a.PixelWidth()*a.PixelHeight())
	}

	// Tile 0 is the space: fully background.
	for y := 0; y < a.CellHeight(); y++ {
		for x := 0; x < a.CellWidth(); x++ {
			if v := a.Pixels()[y*a.PixelWidth()+x]; v != 0 {
				t.Fatalf("space tile texel (%d, %d) = %d, want 0", x, y, v)
			}
		}
	}

	// A visible glyph has at least one foreground texel.
	idx := GlyphForRune('A')
	col := int(idx) % a.Cols()
	row := int(idx) / a.Cols()
	found := false
	for y := 0; y < a.CellHeight() && !found; y++ {
		for x := 0; x < a.CellWidth(); x++ {
			px := (row*a.CellHeight()+y)*a.PixelWidth() + col*a.CellWidth() + x
			if a.Pixels()[px] == 255 {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("glyph 'A' rendered no foreground texels")
	}
}

func TestGlyphForRune(t *testing.T) {
	tests := []struct {
		r    rune
		want uint32
	}{
		{' ', 0},
		{'!', 1},
		{'A', 33},
		{'\n', 0},
		{0x7F, 95},
		{0x80, 0},
	}
	for _, tt := range tests {
		if got := GlyphForRune(tt.r); got != tt.want {
			t.Errorf("GlyphForRune(%q) = %d, want %d", tt.r, got, tt.want)
		}
	}
}
