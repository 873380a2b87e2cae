// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package null

import (
	"errors"

	"gviegas/gpu"
	"gviegas/gpu/wsi"
)

// CommandBuffer implements gpu.CommandBufferRef, recording
// the calls it receives. The recorded stream is exposed to
// tests through exported fields; it is reset on every
// acquisition.
type CommandBuffer struct {
	rend *Renderer

	// Draws is the list of native draw calls recorded
	// since the last acquisition.
	Draws []Draw

	// UploadedVertexBytes sums the sizes of buffer uploads
	// into vertex-usage buffers.
	UploadedVertexBytes int

	// LastSubmitDraws and LastSubmitVertexBytes snapshot
	// the recording of the most recent submission, which
	// survives the next acquisition.
	LastSubmitDraws       []Draw
	LastSubmitVertexBytes int

	pipeline      *graphicsPipeline
	vertexBufOff  int
	activeWindows []*windowData
	attachments   []gpu.ColorAttachmentInfo
}

// InsertDebugLabel implements gpu.CommandBufferRef.
func (cb *CommandBuffer) InsertDebugLabel(string) {}

// PushDebugGroup implements gpu.CommandBufferRef.
func (cb *CommandBuffer) PushDebugGroup(string) {}

// PopDebugGroup implements gpu.CommandBufferRef.
func (cb *CommandBuffer) PopDebugGroup() {}

// PushVertexUniformData implements gpu.CommandBufferRef.
func (cb *CommandBuffer) PushVertexUniformData(slot int, data []byte) {}

// PushFragmentUniformData implements gpu.CommandBufferRef.
func (cb *CommandBuffer) PushFragmentUniformData(slot int, data []byte) {}

// PushComputeUniformData implements gpu.CommandBufferRef.
func (cb *CommandBuffer) PushComputeUniformData(slot int, data []byte) {}

// BeginRenderPass implements gpu.CommandBufferRef.
func (cb *CommandBuffer) BeginRenderPass(colors []gpu.ColorAttachmentInfo, ds *gpu.DepthStencilAttachmentInfo) {
	cb.attachments = append(cb.attachments[:0], colors...)
}

// LastAttachments returns the color attachments of the
// most recent render pass.
func (cb *CommandBuffer) LastAttachments() []gpu.ColorAttachmentInfo { return cb.attachments }

// SetViewport implements gpu.CommandBufferRef.
func (cb *CommandBuffer) SetViewport(*gpu.Viewport) {}

// SetScissor implements gpu.CommandBufferRef.
func (cb *CommandBuffer) SetScissor(*gpu.Rect) {}

// BindGraphicsPipeline implements gpu.CommandBufferRef.
func (cb *CommandBuffer) BindGraphicsPipeline(ref gpu.GraphicsPipelineRef) {
	cb.pipeline = ref.(*graphicsPipeline)
}

// BindVertexBuffers implements gpu.CommandBufferRef.
func (cb *CommandBuffer) BindVertexBuffers(first int, bindings []gpu.BufferBinding) {
	if len(bindings) > 0 {
		cb.vertexBufOff = bindings[0].Offset
	}
}

// BindIndexBuffer implements gpu.CommandBufferRef.
func (cb *CommandBuffer) BindIndexBuffer(*gpu.BufferBinding, gpu.IndexElementSize) {}

// BindVertexSamplers implements gpu.CommandBufferRef.
func (cb *CommandBuffer) BindVertexSamplers(int, []gpu.TextureSamplerBinding) {}

// BindVertexStorageTextures implements gpu.CommandBufferRef.
func (cb *CommandBuffer) BindVertexStorageTextures(int, []gpu.TextureSlice) {}

// BindVertexStorageBuffers implements gpu.CommandBufferRef.
func (cb *CommandBuffer) BindVertexStorageBuffers(int, []*gpu.Buffer) {}

// BindFragmentSamplers implements gpu.CommandBufferRef.
func (cb *CommandBuffer) BindFragmentSamplers(int, []gpu.TextureSamplerBinding) {}

// BindFragmentStorageTextures implements gpu.CommandBufferRef.
func (cb *CommandBuffer) BindFragmentStorageTextures(int, []gpu.TextureSlice) {}

// BindFragmentStorageBuffers implements gpu.CommandBufferRef.
func (cb *CommandBuffer) BindFragmentStorageBuffers(int, []*gpu.Buffer) {}

// DrawPrimitives implements gpu.CommandBufferRef.
func (cb *CommandBuffer) DrawPrimitives(vertexStart, primitiveCount int) {
	prim := gpu.PrimTriangleList
	if cb.pipeline != nil {
		prim = cb.pipeline.primitive
	}
	cb.Draws = append(cb.Draws, Draw{
		VertexStart:        vertexStart,
		VertexCount:        prim.VertexCount(primitiveCount),
		VertexBufferOffset: cb.vertexBufOff,
	})
}

// DrawIndexedPrimitives implements gpu.CommandBufferRef.
func (cb *CommandBuffer) DrawIndexedPrimitives(baseVertex, startIndex, primitiveCount, instanceCount int) {
	prim := gpu.PrimTriangleList
	if cb.pipeline != nil {
		prim = cb.pipeline.primitive
	}
	cb.Draws = append(cb.Draws, Draw{
		VertexStart:        baseVertex,
		VertexCount:        prim.VertexCount(primitiveCount),
		VertexBufferOffset: cb.vertexBufOff,
		Indexed:            true,
	})
}

// DrawPrimitivesIndirect implements gpu.CommandBufferRef.
func (cb *CommandBuffer) DrawPrimitivesIndirect(buf gpu.BufferRef, offset, drawCount, stride int) {
	cb.Draws = append(cb.Draws, Draw{VertexBufferOffset: cb.vertexBufOff})
}

// DrawIndexedPrimitivesIndirect implements gpu.CommandBufferRef.
func (cb *CommandBuffer) DrawIndexedPrimitivesIndirect(buf gpu.BufferRef, offset, drawCount, stride int) {
	cb.Draws = append(cb.Draws, Draw{VertexBufferOffset: cb.vertexBufOff, Indexed: true})
}

// EndRenderPass implements gpu.CommandBufferRef.
func (cb *CommandBuffer) EndRenderPass() {}

// BeginComputePass implements gpu.CommandBufferRef.
func (cb *CommandBuffer) BeginComputePass([]gpu.StorageTextureReadWriteBinding, []gpu.StorageBufferReadWriteBinding) {
}

// BindComputePipeline implements gpu.CommandBufferRef.
func (cb *CommandBuffer) BindComputePipeline(gpu.ComputePipelineRef) {}

// BindComputeStorageTextures implements gpu.CommandBufferRef.
func (cb *CommandBuffer) BindComputeStorageTextures(int, []gpu.TextureSlice) {}

// BindComputeStorageBuffers implements gpu.CommandBufferRef.
func (cb *CommandBuffer) BindComputeStorageBuffers(int, []*gpu.Buffer) {}

// DispatchCompute implements gpu.CommandBufferRef.
func (cb *CommandBuffer) DispatchCompute(x, y, z int) {}

// DispatchComputeIndirect implements gpu.CommandBufferRef.
func (cb *CommandBuffer) DispatchComputeIndirect(gpu.BufferRef, int) {}

// EndComputePass implements gpu.CommandBufferRef.
func (cb *CommandBuffer) EndComputePass() {}

// BeginCopyPass implements gpu.CommandBufferRef.
func (cb *CommandBuffer) BeginCopyPass() {}

// UploadToTexture implements gpu.CommandBufferRef.
func (cb *CommandBuffer) UploadToTexture(src *gpu.TextureTransferInfo, dst *gpu.TextureRegion, cycle bool) {
}

// UploadToBuffer implements gpu.CommandBufferRef.
// The transfer bytes are copied into the destination
// buffer's backing store.
func (cb *CommandBuffer) UploadToBuffer(src *gpu.TransferBufferLocation, dst *gpu.BufferRegion, cycle bool) {
	tb, ok1 := src.TransferBuffer.Ref().(*transferBuffer)
	db, ok2 := dst.Buffer.Ref().(*buffer)
	if !ok1 || !ok2 {
		return
	}
	n := dst.Size
	if n > len(tb.data)-src.Offset {
		n = len(tb.data) - src.Offset
	}
	copy(db.data[dst.Offset:], tb.data[src.Offset:src.Offset+n])
	if db.usage&gpu.BufUsageVertex != 0 {
		cb.UploadedVertexBytes += n
	}
}

// CopyTextureToTexture implements gpu.CommandBufferRef.
func (cb *CommandBuffer) CopyTextureToTexture(src, dst *gpu.TextureLocation, w, h, d int, cycle bool) {
}

// CopyBufferToBuffer implements gpu.CommandBufferRef.
func (cb *CommandBuffer) CopyBufferToBuffer(src, dst *gpu.BufferLocation, size int, cycle bool) {
	sb, ok1 := src.Buffer.Ref().(*buffer)
	db, ok2 := dst.Buffer.Ref().(*buffer)
	if !ok1 || !ok2 {
		return
	}
	copy(db.data[dst.Offset:], sb.data[src.Offset:src.Offset+size])
}

// GenerateMipmaps implements gpu.CommandBufferRef.
func (cb *CommandBuffer) GenerateMipmaps(gpu.TextureRef) {}

// DownloadFromTexture implements gpu.CommandBufferRef.
func (cb *CommandBuffer) DownloadFromTexture(src *gpu.TextureRegion, dst *gpu.TextureTransferInfo) {}

// DownloadFromBuffer implements gpu.CommandBufferRef.
func (cb *CommandBuffer) DownloadFromBuffer(src *gpu.BufferRegion, dst *gpu.TransferBufferLocation) {
	sb, ok1 := src.Buffer.Ref().(*buffer)
	tb, ok2 := dst.TransferBuffer.Ref().(*transferBuffer)
	if !ok1 || !ok2 {
		return
	}
	copy(tb.data[dst.Offset:], sb.data[src.Offset:src.Offset+src.Size])
}

// EndCopyPass implements gpu.CommandBufferRef.
func (cb *CommandBuffer) EndCopyPass() {}

// Blit implements gpu.CommandBufferRef.
func (cb *CommandBuffer) Blit(src, dst *gpu.TextureRegion, filter gpu.Filter, cycle bool) {}

// AcquireSwapchainTexture implements gpu.CommandBufferRef.
func (cb *CommandBuffer) AcquireSwapchainTexture(win wsi.Window) (gpu.TextureRef, gpu.TextureInfo, error) {
	wd := fetchWindowData(win)
	if wd == nil {
		return nil, gpu.TextureInfo{}, errors.New("null: window has not been claimed")
	}
	if !wd.active {
		wd.active = true
		cb.activeWindows = append(cb.activeWindows, wd)
	}
	t := wd.textures[wd.frameCounter]
	return t, t.info, nil
}

// Submit implements gpu.CommandBufferRef.
// Execution completes instantly: active windows present
// and rotate their back-buffer index, and the fence value
// advances.
func (cb *CommandBuffer) Submit() error {
	cb.LastSubmitDraws = append(cb.LastSubmitDraws[:0], cb.Draws...)
	cb.LastSubmitVertexBytes = cb.UploadedVertexBytes
	for _, wd := range cb.activeWindows {
		wd.active = false
		wd.frameCounter = (wd.frameCounter + 1) % swapchainBufferCount
	}
	cb.activeWindows = cb.activeWindows[:0]
	cb.rend.fenceValue++
	return nil
}

// SubmitAndAcquireFence implements gpu.CommandBufferRef.
func (cb *CommandBuffer) SubmitAndAcquireFence() (gpu.FenceRef, error) {
	if err := cb.Submit(); err != nil {
		return nil, err
	}
	cb.rend.acquiredFences++
	return &fence{value: cb.rend.fenceValue}, nil
}
