package render

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestCellGlobalsPack(t *testing.T) {
	g := CellGlobals{
		ScreenSizeInSprites:      [2]uint32{80, 25},
		SpriteMapDimensions:      [2]uint32{16, 6},
		SpriteTextureDimensions:  [2]uint32{112, 78},
		SpriteDimensions:         [2]uint32{7, 13},
		PaletteTextureDimensions: [2]uint32{16, 2000},
	}
	buf := g.pack()
	if len(buf) != cellGlobalsSize {
		t.Fatalf("packed size = %d, want %d", len(buf), cellGlobalsSize)
	}

	want := []uint32{80, 25, 16, 6, 112, 78, 7, 13, 16, 2000}
	for i, w := range want {
		if got := binary.LittleEndian.Uint32(buf[i*4:]); got != w {
			t.Errorf("word %d = %d, want %d", i, got, w)
		}
	}
}

func TestScreenGlobalsPack(t *testing.T) {
	g := ScreenGlobals{
		ScreenSize:   [2]float32{640, 400},
		ScaleFactor:  [2]float32{1, 0.5},
		FrameCounter: 12345,
		ElapsedTime:  2.5,
	}
	buf := g.pack()
	if len(buf) != screenGlobalsSize {
		t.Fatalf("packed size = %d, want %d", len(buf), screenGlobalsSize)
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[0:])); got != 640 {
		t.Errorf("screen width = %v, want 640", got)
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[12:])); got != 0.5 {
		t.Errorf("scale y = %v, want 0.5", got)
	}
	if got := binary.LittleEndian.Uint32(buf[16:]); got != 12345 {
		t.Errorf("frame counter = %d, want 12345", got)
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[20:])); got != 2.5 {
		t.Errorf("elapsed = %v, want 2.5", got)
	}
}

func TestUniformManagerDirtyTracking(t *testing.T) {
	m := NewUniformManager()
	if !m.CellDirty() || !m.ScreenDirty() {
		t.Fatal("new manager must start with both blocks dirty")
	}
	m.cellDirty = false
	m.screenDirty = false

	g := CellGlobals{ScreenSizeInSprites: [2]uint32{80, 25}}
	m.SetCellGlobals(g)
	if !m.CellDirty() {
		t.Error("changed cell block not marked dirty")
	}
	m.cellDirty = false

	// Same value again: stays clean.
	m.SetCellGlobals(g)
	if m.CellDirty() {
		t.Error("unchanged cell block marked dirty")
	}
}

func TestUniformManagerWindowResizeOnly(t *testing.T) {
	// A window resize with unchanged grid geometry touches only the
	// screen block.
	m := NewUniformManager()
	m.SetCellGlobals(CellGlobals{ScreenSizeInSprites: [2]uint32{80, 25}})
	m.SetScreenGeometry(640, 400, 560, 325)
	m.cellDirty = false
	m.screenDirty = false

	m.SetScreenGeometry(1280, 800, 560, 325)
	if m.CellDirty() {
		t.Error("window resize dirtied the cell block")
	}
	if !m.ScreenDirty() {
		t.Error("window resize did not dirty the screen block")
	}

	got := m.Screen()
	if got.ScreenSize != [2]float32{1280, 800} {
		t.Errorf("screen size = %v, want {1280 800}", got.ScreenSize)
	}
}

func TestUniformManagerSameGeometryStaysClean(t *testing.T) {
	m := NewUniformManager()
	m.SetScreenGeometry(640, 400, 640, 400)
	m.screenDirty = false

	m.SetScreenGeometry(640, 400, 640, 400)
	if m.ScreenDirty() {
		t.Error("identical geometry dirtied the screen block")
	}
}

func TestUniformManagerTick(t *testing.T) {
	m := NewUniformManager()
	m.screenDirty = false

	m.Tick(7, 1.25)
	if !m.ScreenDirty() {
		t.Error("Tick did not dirty the screen block")
	}
	got := m.Screen()
	if got.FrameCounter != 7 || got.ElapsedTime != 1.25 {
		t.Errorf("screen block = %+v after Tick", got)
	}

	// The frame counter wraps; the manager must accept the wrapped
	// value without complaint.
	m.Tick(math.MaxUint32, 2)
	m.Tick(0, 3)
	if got := m.Screen().FrameCounter; got != 0 {
		t.Errorf("frame counter after wrap = %d, want 0", got)
	}
}
