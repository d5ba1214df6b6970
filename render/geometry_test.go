package render

import (
	"math"
	"testing"
)

func TestTranslateForCell(t *testing.T) {
	tests := []struct {
		name       string
		x, y, w, h int
		wantX      float32
		wantY      float32
	}{
		{"top left", 0, 0, 80, 25, -1, 1 - 2.0/25},
		{"top right", 79, 0, 80, 25, -1 + 79*2.0/80, 1 - 2.0/25},
		{"bottom left", 0, 24, 80, 25, -1, -1},
		{"bottom right", 79, 24, 80, 25, -1 + 79*2.0/80, -1},
		{"single cell", 0, 0, 1, 1, -1, -1},
	}

	const eps = 1e-6
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gx, gy := translateForCell(tt.x, tt.y, tt.w, tt.h)
			if math.Abs(float64(gx-tt.wantX)) > eps || math.Abs(float64(gy-tt.wantY)) > eps {
				t.Errorf("translateForCell(%d, %d) = (%v, %v), want (%v, %v)",
					tt.x, tt.y, gx, gy, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestTranslateForCellInClipRange(t *testing.T) {
	for y := 0; y < 25; y++ {
		for x := 0; x < 80; x++ {
			gx, gy := translateForCell(x, y, 80, 25)
			if gx < -1 || gx >= 1 || gy < -1 || gy >= 1 {
				t.Fatalf("translate for (%d, %d) = (%v, %v) outside [-1, 1)", x, y, gx, gy)
			}
		}
	}
}

func TestTileForGlyph(t *testing.T) {
	const cols, rows = 16, 6
	tests := []struct {
		glyph          uint32
		wantC, wantR   uint32
	}{
		{0, 0, 0},
		{1, 1, 0},
		{15, 15, 0},
		{16, 0, 1},
		{95, 15, 5},
	}
	for _, tt := range tests {
		c, r := tileForGlyph(tt.glyph, cols, rows)
		if c != tt.wantC || r != tt.wantR {
			t.Errorf("tileForGlyph(%d) = (%d, %d), want (%d, %d)", tt.glyph, c, r, tt.wantC, tt.wantR)
		}
	}
}

func TestTileForGlyphStaysInAtlas(t *testing.T) {
	const cols, rows = 16, 6
	for g := uint32(0); g < cols*rows; g++ {
		c, r := tileForGlyph(g, cols, rows)
		if c >= cols || r >= rows {
			t.Fatalf("glyph %d mapped to tile (%d, %d) outside %dx%d", g, c, r, cols, rows)
		}
	}
}

func TestClampGlyph(t *testing.T) {
	tests := []struct {
		glyph, capacity uint32
		want            uint32
		wantClamped     bool
	}{
		{0, 96, 0, false},
		{95, 96, 95, false},
		{96, 96, 0, true},
		{1 << 30, 96, 0, true},
	}
	for _, tt := range tests {
		got, clamped := clampGlyph(tt.glyph, tt.capacity)
		if got != tt.want || clamped != tt.wantClamped {
			t.Errorf("clampGlyph(%d, %d) = (%d, %v), want (%d, %v)",
				tt.glyph, tt.capacity, got, clamped, tt.want, tt.wantClamped)
		}
	}
}

func TestLetterboxScale(t *testing.T) {
	tests := []struct {
		name           string
		cw, ch, ww, wh uint32
		wantX, wantY   float32
	}{
		{"exact fit", 640, 400, 640, 400, 1, 1},
		{"integer multiple", 640, 400, 1280, 800, 1, 1},
		{"wider window pillarboxes", 640, 400, 1280, 400, 0.5, 1},
		{"taller window letterboxes", 640, 400, 640, 800, 1, 0.5},
		{"degenerate window", 640, 400, 0, 400, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gx, gy := letterboxScale(tt.cw, tt.ch, tt.ww, tt.wh)
			if gx != tt.wantX || gy != tt.wantY {
				t.Errorf("letterboxScale = (%v, %v), want (%v, %v)", gx, gy, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestLetterboxScalePreservesAspect(t *testing.T) {
	// Whatever the window shape, the scaled region keeps the content
	// aspect ratio and fits inside the window.
	windows := [][2]uint32{{640, 400}, {1920, 1080}, {400, 640}, {333, 777}}
	for _, w := range windows {
		sx, sy := letterboxScale(640, 400, w[0], w[1])
		if sx <= 0 || sx > 1 || sy <= 0 || sy > 1 {
			t.Fatalf("window %v: scale (%v, %v) outside (0, 1]", w, sx, sy)
		}
		regionW := float64(sx) * float64(w[0])
		regionH := float64(sy) * float64(w[1])
		aspect := regionW / regionH
		if math.Abs(aspect-1.6) > 0.02 {
			t.Errorf("window %v: region aspect %v, want 1.6", w, aspect)
		}
	}
}

func TestGCD(t *testing.T) {
	tests := []struct{ a, b, want uint32 }{
		{640, 400, 80},
		{1, 1, 1},
		{7, 13, 1},
		{0, 5, 5},
		{0, 0, 1},
	}
	for _, tt := range tests {
		if got := gcd(tt.a, tt.b); got != tt.want {
			t.Errorf("gcd(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
