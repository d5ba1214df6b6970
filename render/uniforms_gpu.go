//go:build !nogpu

package render

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// uniformBuffers holds the two GPU-side uniform blocks.
type uniformBuffers struct {
	cell   hal.Buffer
	screen hal.Buffer
}

// createUniformBuffers allocates both uniform buffers.
func createUniformBuffers(device hal.Device) (*uniformBuffers, error) {
	cell, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "cell_globals",
		Size:  cellGlobalsSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: cell globals buffer: %w", ErrResourceCreationFailed, err)
	}
	screen, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "screen_globals",
		Size:  screenGlobalsSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		device.DestroyBuffer(cell)
		return nil, fmt.Errorf("%w: screen globals buffer: %w", ErrResourceCreationFailed, err)
	}
	return &uniformBuffers{cell: cell, screen: screen}, nil
}

func (u *uniformBuffers) destroy(device hal.Device) {
	if u.screen != nil {
		device.DestroyBuffer(u.screen)
		u.screen = nil
	}
	if u.cell != nil {
		device.DestroyBuffer(u.cell)
		u.cell = nil
	}
}

// upload writes dirty blocks to the GPU, at most once per frame. A
// second call within the same frame is a no-op even when a block was
// re-marked dirty meanwhile.
func (m *UniformManager) upload(queue hal.Queue, bufs *uniformBuffers, frame uint64) {
	if m.hasUploaded && frame == m.lastUploadFrame {
		return
	}
	if m.cellDirty {
		queue.WriteBuffer(bufs.cell, 0, m.cell.pack())
		m.cellDirty = false
	}
	if m.screenDirty {
		queue.WriteBuffer(bufs.screen, 0, m.screen.pack())
		m.screenDirty = false
	}
	m.lastUploadFrame = frame
	m.hasUploaded = true
}
