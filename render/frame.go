//go:build !nogpu

package render

import (
	"fmt"
	"time"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// submitTimeout bounds how long a frame may wait on GPU completion.
const submitTimeout = 5 * time.Second

// completionPollInterval is the backoff between completion polls while
// waiting for a submission index.
const completionPollInterval = 100 * time.Microsecond

// encodeAndSubmit records both passes into one command buffer and
// submits it, waiting for the submission to complete before returning.
//
// Pass order within the command buffer:
//
//  1. cell pass: one indexed instanced draw of every cell quad into
//     the intermediate target
//  2. barrier: intermediate RenderAttachment -> TextureBinding
//  3. screen pass: fullscreen composite into the output target (or
//     the external surface view)
//  4. barrier: intermediate back to RenderAttachment for the next frame
func (r *Renderer) encodeAndSubmit() error {
	if r.cellBind == nil || r.screenBind == nil {
		return fmt.Errorf("%w: bind groups not created", ErrMissingBinding)
	}
	screenTarget := r.surfaceView
	if screenTarget == nil {
		screenTarget = r.output.view
	}
	if screenTarget == nil {
		return fmt.Errorf("%w: screen target view", ErrMissingBinding)
	}

	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "cell_frame_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	defer encoder.Destroy()
	if err := encoder.BeginEncoding("cell_frame"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	instCount := uint32(r.gridW * r.gridH)

	// Cell pass.
	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "cell_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       r.intermediate.view,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: cellClearColor,
		}},
	})
	rp.SetPipeline(r.cellPipe.pipeline)
	rp.SetBindGroup(0, r.cellBind, nil)
	rp.SetVertexBuffer(0, r.cellQuadBuf, 0)
	rp.SetVertexBuffer(1, r.ibuf.buf, 0)
	rp.SetIndexBuffer(r.quadIdxBuf, gputypes.IndexFormatUint16, 0)
	rp.DrawIndexed(quadIndexCount, instCount, 0, 0, 0)
	rp.End()

	// The screen pass samples the intermediate target, so transition
	// it out of render-attachment usage first.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: r.intermediate.tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageTextureBinding,
		},
	}})

	// Screen pass.
	rp = encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "screen_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       screenTarget,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: r.clearColor,
		}},
	})
	rp.SetPipeline(r.screenPipe.pipeline)
	rp.SetBindGroup(0, r.screenBind, nil)
	rp.SetVertexBuffer(0, r.screenQuadBuf, 0)
	rp.SetIndexBuffer(r.quadIdxBuf, gputypes.IndexFormatUint16, 0)
	rp.DrawIndexed(quadIndexCount, 1, 0, 0, 0)
	rp.End()

	// Back to render-attachment usage for the next frame's cell pass.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: r.intermediate.tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageTextureBinding,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer r.device.FreeCommandBuffer(cmdBuf)

	if r.surfaceView == nil {
		// Offscreen submits must not consume swapchain semaphores.
		r.queue.SetSwapchainSuppressed(true)
		defer r.queue.SetSwapchainSuppressed(false)
	}
	return r.submitAndWait(cmdBuf)
}

// submitAndWait submits one command buffer and blocks until the queue
// reports its submission index complete. The HAL fences submissions
// internally; completion is observed by polling the queue.
func (r *Renderer) submitAndWait(cmdBuf hal.CommandBuffer) error {
	submission, err := r.queue.Submit([]hal.CommandBuffer{cmdBuf})
	if err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	deadline := time.Now().Add(submitTimeout)
	for r.queue.PollCompleted() < submission {
		if time.Now().After(deadline) {
			return fmt.Errorf("%w: submission %d", ErrSubmitTimeout, submission)
		}
		time.Sleep(completionPollInterval)
	}
	return nil
}

// ReadPixels copies the offscreen output target back to the CPU and
// returns tightly packed RGBA bytes, row-major, outputW*outputH*4
// long. It fails with ErrNoOffscreenTarget while an external surface
// view is set.
//
// The copy round-trips through a mappable staging buffer with
// 256-byte-aligned rows; the padding is stripped and the BGRA output
// converted to RGBA before returning.
func (r *Renderer) ReadPixels() ([]byte, error) {
	if r.state != StatePresented {
		return nil, ErrNotInitialized
	}
	if r.surfaceView != nil || r.output.tex == nil {
		return nil, ErrNoOffscreenTarget
	}

	w := r.output.width
	h := r.output.height
	bytesPerRow := w * 4

	// WebGPU (and DX12) requires BytesPerRow aligned to 256 bytes.
	const copyPitchAlignment = 256
	alignedBytesPerRow := (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	stagingSize := uint64(alignedBytesPerRow) * uint64(h)

	staging, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "readback_staging",
		Size:  stagingSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: readback staging buffer: %w", ErrResourceCreationFailed, err)
	}
	defer r.device.DestroyBuffer(staging)

	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "readback_encoder",
	})
	if err != nil {
		return nil, fmt.Errorf("create readback encoder: %w", err)
	}
	defer encoder.Destroy()
	if err := encoder.BeginEncoding("readback"); err != nil {
		return nil, fmt.Errorf("begin readback encoding: %w", err)
	}

	// CopyTextureToBuffer requires transfer-source usage; transition
	// there and back so the next frame's screen pass stays valid.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: r.output.tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})
	encoder.CopyTextureToBuffer(r.output.tex, staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: r.output.tex, MipLevel: 0},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: r.output.tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("end readback encoding: %w", err)
	}
	defer r.device.FreeCommandBuffer(cmdBuf)

	// Readback is always offscreen; never touch swapchain semaphores.
	r.queue.SetSwapchainSuppressed(true)
	defer r.queue.SetSwapchainSuppressed(false)

	if err := r.submitAndWait(cmdBuf); err != nil {
		return nil, err
	}

	// The submission completed, so the GPU is done with the staging
	// buffer and mapping it is safe. The backend invalidates host
	// caches for non-coherent memory inside MapBuffer.
	mapping, err := r.device.MapBuffer(staging, 0, stagingSize)
	if err != nil {
		return nil, fmt.Errorf("map readback staging: %w", err)
	}
	padded := unsafe.Slice((*byte)(mapping.Ptr), stagingSize)

	// Strip row padding while the mapping is live.
	pixels := make([]byte, uint64(bytesPerRow)*uint64(h))
	for row := uint32(0); row < h; row++ {
		srcOff := uint64(row) * uint64(alignedBytesPerRow)
		dstOff := uint64(row) * uint64(bytesPerRow)
		copy(pixels[dstOff:dstOff+uint64(bytesPerRow)], padded[srcOff:srcOff+uint64(bytesPerRow)])
	}
	if err := r.device.UnmapBuffer(staging); err != nil {
		return nil, fmt.Errorf("unmap readback staging: %w", err)
	}
	bgraToRGBA(pixels, pixels, int(w)*int(h))
	return pixels, nil
}
