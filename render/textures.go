//go:build !nogpu

package render

import (
	"fmt"

	"github.com/gogpu/cellgrid"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/cellgrid/atlas"
)

// targetSet owns one render target texture and its view, recreated
// when the requested size changes.
type targetSet struct {
	tex    hal.Texture
	view   hal.TextureView
	width  uint32
	height uint32
}

// ensure creates or recreates the target at w x h with the given
// format and usage. A matching existing target is a no-op.
func (t *targetSet) ensure(device hal.Device, w, h uint32, format gputypes.TextureFormat, usage gputypes.TextureUsage, label string) error {
	if t.tex != nil && t.width == w && t.height == h {
		return nil
	}
	t.destroy(device)

	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         usage,
	})
	if err != nil {
		return fmt.Errorf("%w: %s %dx%d: %w", ErrResourceCreationFailed, label, w, h, err)
	}
	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         label + "_view",
		Format:        format,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		device.DestroyTexture(tex)
		return fmt.Errorf("%w: %s view: %w", ErrResourceCreationFailed, label, err)
	}
	t.tex = tex
	t.view = view
	t.width = w
	t.height = h
	return nil
}

// destroy releases the view and texture in reverse creation order.
func (t *targetSet) destroy(device hal.Device) {
	if t.view != nil {
		device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.tex != nil {
		device.DestroyTexture(t.tex)
		t.tex = nil
	}
	t.width = 0
	t.height = 0
}

// createAtlasTexture uploads the atlas payload as an immutable R8Uint
// texture and returns the texture and its view.
func createAtlasTexture(device hal.Device, queue hal.Queue, a *atlas.Atlas) (hal.Texture, hal.TextureView, error) {
	w := uint32(a.PixelWidth())  //nolint:gosec // atlas dimensions fit uint32
	h := uint32(a.PixelHeight()) //nolint:gosec // atlas dimensions fit uint32

	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "sprite_atlas",
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatR8Uint,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%w: atlas texture: %w", ErrResourceCreationFailed, err)
	}
	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "sprite_atlas_view",
		Format:        gputypes.TextureFormatR8Uint,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		device.DestroyTexture(tex)
		return nil, nil, fmt.Errorf("%w: atlas texture view: %w", ErrResourceCreationFailed, err)
	}

	queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: tex, MipLevel: 0},
		a.Pixels(),
		&hal.ImageDataLayout{Offset: 0, BytesPerRow: w, RowsPerImage: h},
		&hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	)
	return tex, view, nil
}

// paletteTexture owns the 16-wide palette texture with one row per
// grid cell, re-uploaded when the palette or grid content changes.
type paletteTexture struct {
	tex  hal.Texture
	view hal.TextureView
	rows uint32
}

// ensure recreates the texture when the grid cell count changed.
func (p *paletteTexture) ensure(device hal.Device, rows uint32) error {
	if p.tex != nil && p.rows == rows {
		return nil
	}
	p.destroy(device)

	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "cell_palette",
		Size:          hal.Extent3D{Width: cellgrid.PaletteRowSize, Height: rows, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("%w: palette texture (%d rows): %w", ErrResourceCreationFailed, rows, err)
	}
	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "cell_palette_view",
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		device.DestroyTexture(tex)
		return fmt.Errorf("%w: palette texture view: %w", ErrResourceCreationFailed, err)
	}
	p.tex = tex
	p.view = view
	p.rows = rows
	return nil
}

// upload writes the flattened per-cell palette rows.
func (p *paletteTexture) upload(queue hal.Queue, data []byte) {
	queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: p.tex, MipLevel: 0},
		data,
		&hal.ImageDataLayout{Offset: 0, BytesPerRow: paletteRowBytes, RowsPerImage: p.rows},
		&hal.Extent3D{Width: cellgrid.PaletteRowSize, Height: p.rows, DepthOrArrayLayers: 1},
	)
}

func (p *paletteTexture) destroy(device hal.Device) {
	if p.view != nil {
		device.DestroyTextureView(p.view)
		p.view = nil
	}
	if p.tex != nil {
		device.DestroyTexture(p.tex)
		p.tex = nil
	}
	p.rows = 0
}
