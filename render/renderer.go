//go:build !nogpu

package render

import (
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/cellgrid"
	"github.com/gogpu/cellgrid/atlas"
)

// State is the orchestrator lifecycle state.
type State int

const (
	// StateUninitialized is the zero state before NewRenderer, and the
	// state after Destroy.
	StateUninitialized State = iota

	// StateReady means resources exist and a frame can be rendered.
	StateReady

	// StateRendering means a frame is being built and submitted.
	StateRendering

	// StatePresented means the last frame completed. Rendering another
	// frame is allowed.
	StatePresented
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StateReady:
		return "Ready"
	case StateRendering:
		return "Rendering"
	case StatePresented:
		return "Presented"
	default:
		return "Unknown"
	}
}

// cellClearColor fills intermediate texels no cell quad covers. The
// deliberate off-red makes coverage gaps visible during development.
var cellClearColor = gputypes.Color{R: 0.5, G: 0.1, B: 0.1, A: 1.0}

// fpsLogInterval is the frame period of the statistics log line.
const fpsLogInterval = 1000

// Config configures a Renderer.
type Config struct {
	// Mode selects direct or palette coloring. The mode is fixed for
	// the renderer's lifetime; it decides the shader variant and the
	// bind group layout at creation.
	Mode ColorMode

	// Atlas is the glyph atlas. Required.
	Atlas *atlas.Atlas

	// Palette supplies color rows in palette mode. Required there,
	// ignored in direct mode.
	Palette *cellgrid.Palette

	// OutputWidth and OutputHeight set the composite target size in
	// pixels.
	OutputWidth  uint32
	OutputHeight uint32

	// ClearColor fills the letterbox area of the screen pass.
	ClearColor gputypes.Color
}

// DefaultConfig returns a direct-color configuration with a 640x400
// output and a black clear color. The atlas must still be supplied.
func DefaultConfig() Config {
	return Config{
		Mode:         ColorModeDirect,
		OutputWidth:  640,
		OutputHeight: 400,
		ClearColor:   gputypes.Color{R: 0, G: 0, B: 0, A: 1},
	}
}

// Renderer is the frame orchestrator. It owns every GPU resource of
// the two-pass cell pipeline and sequences instance building, uniform
// upload, the cell pass, the screen pass, and submission.
//
// Renderer is not thread-safe; call all methods from one goroutine.
// The GPU executes asynchronously, so instance buffer replacement is
// deferred through the frames-in-flight pending list.
type Renderer struct {
	device hal.Device
	queue  hal.Queue

	mode    ColorMode
	atlas   *atlas.Atlas
	palette *cellgrid.Palette

	cellPipe   *cellPipeline
	screenPipe *screenPipeline

	uniforms *UniformManager
	ubufs    *uniformBuffers
	builder  *InstanceBuilder
	ibuf     *instanceBuffer

	cellQuadBuf   hal.Buffer
	screenQuadBuf hal.Buffer
	quadIdxBuf    hal.Buffer

	atlasTex  hal.Texture
	atlasView hal.TextureView

	paletteTex   paletteTexture
	intermediate targetSet
	output       targetSet

	cellBind   hal.BindGroup
	screenBind hal.BindGroup

	// surfaceView, when non-nil, receives the screen pass instead of
	// the offscreen output texture. The caller owns the view.
	surfaceView hal.TextureView

	outputW uint32
	outputH uint32

	// pendingResize holds a window size change until the next frame
	// boundary. Resizes never apply mid-frame.
	pendingResize *[2]uint32

	// Grid dimensions the size-dependent resources were built for.
	gridW int
	gridH int

	state        State
	frame        uint64
	frameCounter uint32
	start        time.Time
	lastFrame    time.Time
	fps          float64

	clearColor gputypes.Color
}

// NewRenderer creates a renderer on the backend's device and queue.
func NewRenderer(b *Backend, cfg Config) (*Renderer, error) {
	if b == nil || !b.IsInitialized() {
		return nil, ErrNotInitialized
	}
	return NewRendererWith(b.Device(), b.Queue(), cfg)
}

// NewRendererWith creates a renderer on an externally owned device and
// queue. Grid-size-dependent resources (intermediate target, palette
// texture, bind groups) are created on the first RenderFrame call.
func NewRendererWith(device hal.Device, queue hal.Queue, cfg Config) (*Renderer, error) {
	if cfg.Atlas == nil {
		return nil, fmt.Errorf("%w: atlas", ErrMissingBinding)
	}
	if cfg.Mode == ColorModePalette && cfg.Palette == nil {
		return nil, fmt.Errorf("%w: palette", ErrMissingBinding)
	}
	if cfg.OutputWidth == 0 || cfg.OutputHeight == 0 {
		def := DefaultConfig()
		cfg.OutputWidth = def.OutputWidth
		cfg.OutputHeight = def.OutputHeight
	}

	if err := validateShaders(); err != nil {
		return nil, fmt.Errorf("validate shaders: %w", err)
	}

	r := &Renderer{
		device:     device,
		queue:      queue,
		mode:       cfg.Mode,
		atlas:      cfg.Atlas,
		palette:    cfg.Palette,
		uniforms:   NewUniformManager(),
		ibuf:       newInstanceBuffer(),
		outputW:    cfg.OutputWidth,
		outputH:    cfg.OutputHeight,
		clearColor: cfg.ClearColor,
		start:      time.Now(),
	}
	r.builder = NewInstanceBuilder(cfg.Mode,
		uint32(cfg.Atlas.Cols()), uint32(cfg.Atlas.Rows()))

	if err := r.createStaticResources(); err != nil {
		r.Destroy()
		return nil, err
	}
	r.state = StateReady
	return r, nil
}

// createStaticResources builds everything that does not depend on the
// grid size: pipelines, quad geometry, uniform buffers, and the atlas
// texture.
func (r *Renderer) createStaticResources() error {
	var err error
	if r.cellPipe, err = newCellPipeline(r.device, r.mode); err != nil {
		return err
	}
	if r.screenPipe, err = newScreenPipeline(r.device); err != nil {
		return err
	}
	if r.ubufs, err = createUniformBuffers(r.device); err != nil {
		return err
	}

	if r.cellQuadBuf, err = r.createAndUploadBuffer("cell_quad", cellQuadVertexData(),
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst); err != nil {
		return err
	}
	if r.screenQuadBuf, err = r.createAndUploadBuffer("screen_quad", screenQuadVertexData(),
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst); err != nil {
		return err
	}
	if r.quadIdxBuf, err = r.createAndUploadBuffer("quad_indices", quadIndexData(),
		gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst); err != nil {
		return err
	}

	if r.atlasTex, r.atlasView, err = createAtlasTexture(r.device, r.queue, r.atlas); err != nil {
		return err
	}
	return nil
}

// createAndUploadBuffer creates a GPU buffer and uploads data to it.
func (r *Renderer) createAndUploadBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrResourceCreationFailed, label, err)
	}
	r.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

// State returns the orchestrator state.
func (r *Renderer) State() State { return r.state }

// Mode returns the color mode.
func (r *Renderer) Mode() ColorMode { return r.mode }

// Fps returns the rolling frames-per-second estimate.
func (r *Renderer) Fps() float64 { return r.fps }

// FrameCount returns the number of frames submitted so far.
func (r *Renderer) FrameCount() uint64 { return r.frame }

// OutputSize returns the composite target size in pixels.
func (r *Renderer) OutputSize() (uint32, uint32) { return r.outputW, r.outputH }

// Resize records a new output size. The change is deferred to the
// next frame boundary so size-dependent state is never swapped while
// a pass references it. Zero dimensions are ignored.
func (r *Renderer) Resize(w, h uint32) {
	if w == 0 || h == 0 {
		return
	}
	if w == r.outputW && h == r.outputH && r.pendingResize == nil {
		return
	}
	r.pendingResize = &[2]uint32{w, h}
}

// SetSurfaceTarget switches the screen pass to composite into the
// given external view instead of the offscreen output texture. Call
// with nil to return to offscreen mode. The caller retains ownership
// of the view.
func (r *Renderer) SetSurfaceTarget(view hal.TextureView, w, h uint32) {
	r.surfaceView = view
	if view != nil {
		r.output.destroy(r.device)
		r.Resize(w, h)
	}
}

// RenderFrame builds and submits one frame from the grid. On error
// the frame is abandoned without touching the previous output.
func (r *Renderer) RenderFrame(grid *cellgrid.Grid) error {
	switch r.state {
	case StateReady, StatePresented:
	default:
		return ErrNotInitialized
	}
	if grid == nil {
		return ErrNilGrid
	}

	r.state = StateRendering
	if err := r.renderFrame(grid); err != nil {
		r.state = StateReady
		return err
	}
	r.state = StatePresented
	return nil
}

// renderFrame runs the per-frame sequence: apply the deferred resize,
// refresh geometry-dependent resources, build and upload instance and
// uniform data, then encode and submit both passes.
func (r *Renderer) renderFrame(grid *cellgrid.Grid) error {
	if r.pendingResize != nil {
		r.outputW = r.pendingResize[0]
		r.outputH = r.pendingResize[1]
		r.pendingResize = nil
		r.uniforms.SetScreenGeometry(r.outputW, r.outputH, r.intermediate.width, r.intermediate.height)
	}

	if err := r.ensureGridResources(grid); err != nil {
		return err
	}
	if r.surfaceView == nil {
		if err := r.output.ensure(r.device, r.outputW, r.outputH, outputFormat,
			gputypes.TextureUsageRenderAttachment|gputypes.TextureUsageCopySrc, "cell_output"); err != nil {
			return err
		}
	}

	instances := r.builder.Build(grid)
	if err := r.ibuf.upload(r.device, r.queue, instances, r.frame); err != nil {
		return err
	}

	if r.mode == ColorModePalette {
		r.paletteTex.upload(r.queue, buildPaletteData(grid, r.palette))
	}

	elapsed := float32(time.Since(r.start).Seconds())
	r.uniforms.Tick(r.frameCounter, elapsed)
	r.uniforms.upload(r.queue, r.ubufs, r.frame)

	if err := r.encodeAndSubmit(); err != nil {
		return err
	}

	r.frame++
	r.frameCounter++ // wraps
	r.ibuf.drain(r.device, r.frame)
	r.updateStats()
	return nil
}

// ensureGridResources recreates the intermediate target, the palette
// texture, and both bind groups when the grid dimensions changed.
// Unchanged dimensions are a no-op, so a steady-state frame performs
// no recreation.
func (r *Renderer) ensureGridResources(grid *cellgrid.Grid) error {
	w := grid.Width()
	h := grid.Height()
	if w == r.gridW && h == r.gridH {
		return nil
	}

	cellW := uint32(r.atlas.CellWidth())
	cellH := uint32(r.atlas.CellHeight())
	iw := uint32(w) * cellW
	ih := uint32(h) * cellH

	if err := r.intermediate.ensure(r.device, iw, ih, intermediateFormat,
		gputypes.TextureUsageRenderAttachment|gputypes.TextureUsageTextureBinding, "cell_intermediate"); err != nil {
		return err
	}
	if r.mode == ColorModePalette {
		if err := r.paletteTex.ensure(r.device, uint32(w*h)); err != nil {
			return err
		}
	}
	if err := r.createBindGroups(); err != nil {
		return err
	}

	r.uniforms.SetCellGlobals(CellGlobals{
		ScreenSizeInSprites:      [2]uint32{uint32(w), uint32(h)},
		SpriteMapDimensions:      [2]uint32{uint32(r.atlas.Cols()), uint32(r.atlas.Rows())},
		SpriteTextureDimensions:  [2]uint32{uint32(r.atlas.PixelWidth()), uint32(r.atlas.PixelHeight())},
		SpriteDimensions:         [2]uint32{cellW, cellH},
		PaletteTextureDimensions: [2]uint32{cellgrid.PaletteRowSize, uint32(w * h)},
	})
	r.uniforms.SetScreenGeometry(r.outputW, r.outputH, iw, ih)

	r.gridW = w
	r.gridH = h
	return nil
}

// createBindGroups rebuilds both bind groups against the current
// textures. Missing views fail fast before any draw is recorded.
func (r *Renderer) createBindGroups() error {
	if r.atlasView == nil || r.intermediate.view == nil {
		return fmt.Errorf("%w: atlas or intermediate view", ErrMissingBinding)
	}
	if r.mode == ColorModePalette && r.paletteTex.view == nil {
		return fmt.Errorf("%w: palette view", ErrMissingBinding)
	}
	r.destroyBindGroups()

	cellEntries := []gputypes.BindGroupEntry{
		{Binding: 0, Resource: gputypes.BufferBinding{
			Buffer: r.ubufs.cell.NativeHandle(), Offset: 0, Size: cellGlobalsSize,
		}},
		{Binding: 1, Resource: gputypes.TextureViewBinding{
			TextureView: r.atlasView.NativeHandle(),
		}},
	}
	if r.mode == ColorModePalette {
		cellEntries = append(cellEntries, gputypes.BindGroupEntry{
			Binding: 2, Resource: gputypes.TextureViewBinding{
				TextureView: r.paletteTex.view.NativeHandle(),
			},
		})
	}
	cellBind, err := r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:   "cell_bind",
		Layout:  r.cellPipe.bindLayout,
		Entries: cellEntries,
	})
	if err != nil {
		return fmt.Errorf("%w: cell bind group: %w", ErrResourceCreationFailed, err)
	}
	r.cellBind = cellBind

	screenBind, err := r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "screen_bind",
		Layout: r.screenPipe.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: r.ubufs.screen.NativeHandle(), Offset: 0, Size: screenGlobalsSize,
			}},
			{Binding: 1, Resource: gputypes.TextureViewBinding{
				TextureView: r.intermediate.view.NativeHandle(),
			}},
			{Binding: 2, Resource: gputypes.SamplerBinding{
				Sampler: r.screenPipe.sampler.NativeHandle(),
			}},
		},
	})
	if err != nil {
		r.destroyBindGroups()
		return fmt.Errorf("%w: screen bind group: %w", ErrResourceCreationFailed, err)
	}
	r.screenBind = screenBind
	return nil
}

func (r *Renderer) destroyBindGroups() {
	if r.screenBind != nil {
		r.device.DestroyBindGroup(r.screenBind)
		r.screenBind = nil
	}
	if r.cellBind != nil {
		r.device.DestroyBindGroup(r.cellBind)
		r.cellBind = nil
	}
}

// updateStats maintains the rolling FPS estimate and logs it every
// fpsLogInterval frames.
func (r *Renderer) updateStats() {
	now := time.Now()
	if !r.lastFrame.IsZero() {
		dt := now.Sub(r.lastFrame).Seconds()
		if dt > 0 {
			r.fps = 0.9*r.fps + 0.1*(1.0/dt)
		}
	}
	r.lastFrame = now
	if r.frame%fpsLogInterval == 0 {
		cellgrid.Logger().Debug("frame statistics", "frame", r.frame, "fps", r.fps)
	}
}

// Destroy releases every GPU resource. Safe to call more than once.
// An external surface view is not destroyed.
func (r *Renderer) Destroy() {
	r.destroyBindGroups()
	if r.ibuf != nil {
		r.ibuf.destroy(r.device)
	}
	r.paletteTex.destroy(r.device)
	r.intermediate.destroy(r.device)
	r.output.destroy(r.device)
	if r.atlasView != nil {
		r.device.DestroyTextureView(r.atlasView)
		r.atlasView = nil
	}
	if r.atlasTex != nil {
		r.device.DestroyTexture(r.atlasTex)
		r.atlasTex = nil
	}
	if r.quadIdxBuf != nil {
		r.device.DestroyBuffer(r.quadIdxBuf)
		r.quadIdxBuf = nil
	}
	if r.screenQuadBuf != nil {
		r.device.DestroyBuffer(r.screenQuadBuf)
		r.screenQuadBuf = nil
	}
	if r.cellQuadBuf != nil {
		r.device.DestroyBuffer(r.cellQuadBuf)
		r.cellQuadBuf = nil
	}
	if r.ubufs != nil {
		r.ubufs.destroy(r.device)
	}
	if r.screenPipe != nil {
		r.screenPipe.destroy()
	}
	if r.cellPipe != nil {
		r.cellPipe.destroy()
	}
	r.surfaceView = nil
	r.state = StateUninitialized
}
