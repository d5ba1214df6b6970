//go:build !nogpu

package render

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// defaultSlackFactor oversizes grown instance buffers to amortize
// reallocation when the grid size oscillates.
const defaultSlackFactor = 1.5

// defaultFramesInFlight bounds how many submitted frames may still be
// executing on the GPU. Replaced buffers are kept alive for this many
// frames before destruction.
const defaultFramesInFlight = 2

// pendingBuffer is a replaced GPU buffer awaiting destruction once the
// submissions that may reference it have completed.
type pendingBuffer struct {
	buf hal.Buffer

	// retireFrame is the first frame number at which no in-flight
	// submission can reference the buffer.
	retireFrame uint64
}

// instanceBuffer owns the GPU-side instance vertex buffer and its
// growth/release lifecycle. The buffer grows by slackFactor when the
// packed data outgrows it; the outgrown buffer moves to a pending list
// drained after the frame's submission is observed complete.
type instanceBuffer struct {
	buf      hal.Buffer
	capacity uint64

	slackFactor    float64
	framesInFlight uint64

	pending []pendingBuffer
}

func newInstanceBuffer() *instanceBuffer {
	return &instanceBuffer{
		slackFactor:    defaultSlackFactor,
		framesInFlight: defaultFramesInFlight,
	}
}

// upload ensures the GPU buffer can hold data and writes it. When the
// buffer must grow, the old one is queued for release at
// frame+framesInFlight rather than destroyed, because the previous
// submissions may still read it.
func (ib *instanceBuffer) upload(device hal.Device, queue hal.Queue, data []byte, frame uint64) error {
	needed := uint64(len(data))
	if ib.buf == nil || needed > ib.capacity {
		newCap := uint64(float64(needed) * ib.slackFactor)
		if newCap < needed {
			newCap = needed
		}
		buf, err := device.CreateBuffer(&hal.BufferDescriptor{
			Label: "cell_instances",
			Size:  newCap,
			Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("%w: instance buffer (%d bytes): %w", ErrResourceCreationFailed, newCap, err)
		}
		if ib.buf != nil {
			ib.pending = append(ib.pending, pendingBuffer{
				buf:         ib.buf,
				retireFrame: frame + ib.framesInFlight,
			})
		}
		ib.buf = buf
		ib.capacity = newCap
	}
	queue.WriteBuffer(ib.buf, 0, data)
	return nil
}

// drain destroys pending buffers whose retire frame has been reached.
// Called after the frame's submission completed, so reaching the
// retire frame guarantees the GPU is done with them.
func (ib *instanceBuffer) drain(device hal.Device, completedFrame uint64) {
	kept := ib.pending[:0]
	for _, p := range ib.pending {
		if completedFrame >= p.retireFrame {
			device.DestroyBuffer(p.buf)
			continue
		}
		kept = append(kept, p)
	}
	ib.pending = kept
}

// destroy releases the live buffer and everything still pending.
func (ib *instanceBuffer) destroy(device hal.Device) {
	for _, p := range ib.pending {
		device.DestroyBuffer(p.buf)
	}
	ib.pending = nil
	if ib.buf != nil {
		device.DestroyBuffer(ib.buf)
		ib.buf = nil
	}
	ib.capacity = 0
}
