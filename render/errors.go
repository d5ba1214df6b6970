package render

import (
	"errors"
	"sync"

	"github.com/gogpu/cellgrid"
)

// Renderer errors.
var (
	// ErrNotInitialized is returned when a frame is requested before
	// Init succeeded.
	ErrNotInitialized = errors.New("render: renderer not initialized")

	// ErrResourceCreationFailed wraps a GPU buffer or texture
	// allocation failure. The current frame is aborted; the renderer
	// stays usable.
	ErrResourceCreationFailed = errors.New("render: resource creation failed")

	// ErrMissingBinding is returned when a pass is configured without
	// its atlas or palette texture. This is a setup error surfaced
	// before any draw is recorded.
	ErrMissingBinding = errors.New("render: required texture binding missing")

	// ErrInvalidGlyphIndex reports a glyph index at or beyond the
	// atlas capacity. Offending cells are clamped to tile 0; the
	// condition is logged once per kind, never fatal.
	ErrInvalidGlyphIndex = errors.New("render: glyph index beyond atlas capacity")

	// ErrNilGrid is returned when RenderFrame is called without a grid.
	ErrNilGrid = errors.New("render: grid is nil")

	// ErrNoAdapter is returned when no GPU adapter is available.
	ErrNoAdapter = errors.New("render: no GPU adapter found")

	// ErrNoOffscreenTarget is returned when pixels are requested while
	// the renderer composites to an external surface.
	ErrNoOffscreenTarget = errors.New("render: no offscreen target to read")

	// ErrSubmitTimeout is returned when a submission does not complete
	// within the frame wait budget.
	ErrSubmitTimeout = errors.New("render: gpu submission timed out")
)

// onceLog suppresses repeated per-frame warnings. Each distinct key
// logs a single time for the lifetime of the process.
type onceLog struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func (o *onceLog) warn(key, msg string, args ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.seen == nil {
		o.seen = make(map[string]struct{})
	}
	if _, ok := o.seen[key]; ok {
		return
	}
	o.seen[key] = struct{}{}
	cellgrid.Logger().Warn(msg, args...)
}
