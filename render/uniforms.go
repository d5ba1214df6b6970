package render

import (
	"encoding/binary"
	"math"
)

// cellGlobalsSize is the byte size of the cell pass uniform block.
// Layout: five vec2<u32> fields = 40 bytes.
const cellGlobalsSize = 40

// screenGlobalsSize is the byte size of the screen pass uniform block.
// Layout: screen_size (vec2<f32>) + scale_factor (vec2<f32>) +
// frame_counter (u32) + elapsed_time (f32) = 24 bytes.
const screenGlobalsSize = 24

// CellGlobals is the uniform block consumed by the cell pass shaders.
// All fields are pixel or cell counts; see cell_*.wgsl.
type CellGlobals struct {
	// ScreenSizeInSprites is the grid size in cells.
	ScreenSizeInSprites [2]uint32

	// SpriteMapDimensions is the atlas size in tiles (cols, rows).
	SpriteMapDimensions [2]uint32

	// SpriteTextureDimensions is the atlas size in pixels.
	SpriteTextureDimensions [2]uint32

	// SpriteDimensions is the size of one tile in pixels.
	SpriteDimensions [2]uint32

	// PaletteTextureDimensions is the palette texture size in texels.
	PaletteTextureDimensions [2]uint32
}

// ScreenGlobals is the uniform block consumed by the screen pass.
type ScreenGlobals struct {
	// ScreenSize is the output surface size in pixels.
	ScreenSize [2]float32

	// ScaleFactor letterboxes the intermediate target into the
	// output; recomputed only when the window resizes.
	ScaleFactor [2]float32

	// FrameCounter increments every presented frame and wraps.
	FrameCounter uint32

	// ElapsedTime is seconds since renderer start.
	ElapsedTime float32
}

// pack serializes the block for GPU upload.
func (g *CellGlobals) pack() []byte {
	buf := make([]byte, cellGlobalsSize)
	fields := [][2]uint32{
		g.ScreenSizeInSprites,
		g.SpriteMapDimensions,
		g.SpriteTextureDimensions,
		g.SpriteDimensions,
		g.PaletteTextureDimensions,
	}
	off := 0
	for _, f := range fields {
		binary.LittleEndian.PutUint32(buf[off:], f[0])
		binary.LittleEndian.PutUint32(buf[off+4:], f[1])
		off += 8
	}
	return buf
}

// pack serializes the block for GPU upload.
func (g *ScreenGlobals) pack() []byte {
	buf := make([]byte, screenGlobalsSize)
	binary.LittleEndian.PutUint32(buf[0:], math.Float32bits(g.ScreenSize[0]))
	binary.LittleEndian.PutUint32(buf[4:], math.Float32bits(g.ScreenSize[1]))
	binary.LittleEndian.PutUint32(buf[8:], math.Float32bits(g.ScaleFactor[0]))
	binary.LittleEndian.PutUint32(buf[12:], math.Float32bits(g.ScaleFactor[1]))
	binary.LittleEndian.PutUint32(buf[16:], g.FrameCounter)
	binary.LittleEndian.PutUint32(buf[20:], math.Float32bits(g.ElapsedTime))
	return buf
}

// UniformManager tracks both uniform blocks and their dirty state. A
// block is uploaded at most once per frame and only when a field
// actually changed since the last upload.
type UniformManager struct {
	cell   CellGlobals
	screen ScreenGlobals

	cellDirty   bool
	screenDirty bool

	// lastUploadFrame guards against double uploads within a frame.
	lastUploadFrame uint64
	hasUploaded     bool
}

// NewUniformManager returns a manager with both blocks dirty so the
// first frame uploads them.
func NewUniformManager() *UniformManager {
	return &UniformManager{cellDirty: true, screenDirty: true}
}

// Cell returns the current cell pass block.
func (m *UniformManager) Cell() CellGlobals { return m.cell }

// Screen returns the current screen pass block.
func (m *UniformManager) Screen() ScreenGlobals { return m.screen }

// SetCellGlobals replaces the cell pass block, marking it dirty only
// when a field changed.
func (m *UniformManager) SetCellGlobals(g CellGlobals) {
	if g != m.cell {
		m.cell = g
		m.cellDirty = true
	}
}

// SetScreenGeometry updates the window-dependent screen pass fields.
// The scale factor is recomputed here, on resize, not per frame.
func (m *UniformManager) SetScreenGeometry(winW, winH, contentW, contentH uint32) {
	sx, sy := letterboxScale(contentW, contentH, winW, winH)
	g := m.screen
	g.ScreenSize = [2]float32{float32(winW), float32(winH)}
	g.ScaleFactor = [2]float32{sx, sy}
	if g != m.screen {
		m.screen = g
		m.screenDirty = true
	}
}

// Tick advances the per-frame screen fields. The frame counter wraps
// on overflow; that is expected, never an error.
func (m *UniformManager) Tick(frameCounter uint32, elapsed float32) {
	m.screen.FrameCounter = frameCounter
	m.screen.ElapsedTime = elapsed
	m.screenDirty = true
}

// CellDirty reports whether the cell block needs an upload.
func (m *UniformManager) CellDirty() bool { return m.cellDirty }

// ScreenDirty reports whether the screen block needs an upload.
func (m *UniformManager) ScreenDirty() bool { return m.screenDirty }
