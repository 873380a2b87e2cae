// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package gpu

import "gviegas/gpu/wsi"

// CommandBuffer is a short-lived recorder of GPU commands.
// Commands are recorded into passes (render, compute or
// copy; at most one in progress at a time) and executed on
// the GPU when the command buffer is submitted. After
// submission the command buffer is inert; acquire a new one
// for further recording.
type CommandBuffer struct {
	dev *Device
	ref CommandBufferRef

	renderPass  RenderPass
	computePass ComputePass
	copyPass    CopyPass

	graphicsPipelineBound bool
	computePipelineBound  bool
	submitted             bool
}

// RenderPass records rasterization state and draw calls.
type RenderPass struct {
	cb         *CommandBuffer
	inProgress bool
}

// ComputePass records compute state and dispatches.
type ComputePass struct {
	cb         *CommandBuffer
	inProgress bool
}

// CopyPass records data transfer commands.
type CopyPass struct {
	cb         *CommandBuffer
	inProgress bool
}

// AcquireCommandBuffer acquires a command buffer prepared
// for recording.
func (d *Device) AcquireCommandBuffer() (*CommandBuffer, error) {
	ref, err := d.rend.AcquireCommandBuffer()
	if err != nil {
		return nil, err
	}
	cb := &CommandBuffer{dev: d, ref: ref}
	cb.renderPass.cb = cb
	cb.computePass.cb = cb
	cb.copyPass.cb = cb
	return cb, nil
}

// Device returns the device that owns the command buffer.
func (cb *CommandBuffer) Device() *Device { return cb.dev }

// Submitted returns whether the command buffer has been
// submitted.
func (cb *CommandBuffer) Submitted() bool { return cb.submitted }

// anyPassInProgress reports whether any of the three pass
// roles is currently recording.
func (cb *CommandBuffer) anyPassInProgress() bool {
	return cb.renderPass.inProgress || cb.computePass.inProgress || cb.copyPass.inProgress
}

// checkRecording gates calls that require an unsubmitted
// command buffer. It is only consulted under debug mode.
func (cb *CommandBuffer) checkRecording(op string) bool {
	if cb.submitted {
		warn(op + ": command buffer already submitted")
		return false
	}
	return true
}

/* Uniform data */

// PushVertexUniformData copies data into the uniform slot
// of the vertex stage. It takes effect for draws recorded
// after the push.
func (cb *CommandBuffer) PushVertexUniformData(slot int, data []byte) {
	if len(data) == 0 {
		warn("PushVertexUniformData: empty data")
		return
	}
	if cb.dev.debugMode && !cb.checkRecording("PushVertexUniformData") {
		return
	}
	cb.ref.PushVertexUniformData(slot, data)
}

// PushFragmentUniformData copies data into the uniform
// slot of the fragment stage.
func (cb *CommandBuffer) PushFragmentUniformData(slot int, data []byte) {
	if len(data) == 0 {
		warn("PushFragmentUniformData: empty data")
		return
	}
	if cb.dev.debugMode && !cb.checkRecording("PushFragmentUniformData") {
		return
	}
	cb.ref.PushFragmentUniformData(slot, data)
}

// PushComputeUniformData copies data into the uniform slot
// of the compute stage.
func (cb *CommandBuffer) PushComputeUniformData(slot int, data []byte) {
	if len(data) == 0 {
		warn("PushComputeUniformData: empty data")
		return
	}
	if cb.dev.debugMode && !cb.checkRecording("PushComputeUniformData") {
		return
	}
	cb.ref.PushComputeUniformData(slot, data)
}

/* Debug groups */

// InsertDebugLabel inserts an annotation into the command
// stream.
func (cb *CommandBuffer) InsertDebugLabel(text string) {
	if cb.dev.debugMode && !cb.checkRecording("InsertDebugLabel") {
		return
	}
	cb.ref.InsertDebugLabel(text)
}

// PushDebugGroup opens a named region in the command
// stream.
func (cb *CommandBuffer) PushDebugGroup(name string) {
	if cb.dev.debugMode && !cb.checkRecording("PushDebugGroup") {
		return
	}
	cb.ref.PushDebugGroup(name)
}

// PopDebugGroup closes the innermost debug region.
func (cb *CommandBuffer) PopDebugGroup() {
	if cb.dev.debugMode && !cb.checkRecording("PopDebugGroup") {
		return
	}
	cb.ref.PopDebugGroup()
}

/* Render pass */

// BeginRenderPass begins a render pass over the given
// attachments. It returns nil when the pass cannot begin.
func (cb *CommandBuffer) BeginRenderPass(colors []ColorAttachmentInfo, depthStencil *DepthStencilAttachmentInfo) *RenderPass {
	if len(colors) > MaxColorTargets {
		warn("BeginRenderPass: too many color attachments")
		return nil
	}
	if cb.dev.debugMode {
		if !cb.checkRecording("BeginRenderPass") {
			return nil
		}
		if cb.anyPassInProgress() {
			warn("BeginRenderPass: pass already in progress")
			return nil
		}
	}
	cb.ref.BeginRenderPass(colors, depthStencil)
	cb.renderPass.inProgress = true
	return &cb.renderPass
}

// checkActive gates render pass calls under debug mode.
func (p *RenderPass) checkActive(op string) bool {
	if !p.cb.dev.debugMode {
		return true
	}
	if !p.inProgress {
		warn(op + ": render pass not in progress")
		return false
	}
	return true
}

// checkDraw additionally requires a bound graphics
// pipeline.
func (p *RenderPass) checkDraw(op string) bool {
	if !p.cb.dev.debugMode {
		return true
	}
	if !p.inProgress {
		warn(op + ": render pass not in progress")
		return false
	}
	if !p.cb.graphicsPipelineBound {
		warn(op + ": graphics pipeline not bound")
		return false
	}
	return true
}

// BindGraphicsPipeline binds a graphics pipeline to the
// pass.
func (p *RenderPass) BindGraphicsPipeline(pl *GraphicsPipeline) {
	if pl == nil {
		warn("BindGraphicsPipeline: nil pipeline")
		return
	}
	if !p.checkActive("BindGraphicsPipeline") {
		return
	}
	p.cb.ref.BindGraphicsPipeline(pl.ref)
	p.cb.graphicsPipelineBound = true
}

// SetViewport sets the viewport bounds.
func (p *RenderPass) SetViewport(vp *Viewport) {
	if vp == nil {
		warn("SetViewport: nil viewport")
		return
	}
	if !p.checkActive("SetViewport") {
		return
	}
	p.cb.ref.SetViewport(vp)
}

// SetScissor sets the scissor rectangle.
func (p *RenderPass) SetScissor(sc *Rect) {
	if sc == nil {
		warn("SetScissor: nil scissor")
		return
	}
	if !p.checkActive("SetScissor") {
		return
	}
	p.cb.ref.SetScissor(sc)
}

// BindVertexBuffers binds one or more vertex buffers
// starting at the given slot.
func (p *RenderPass) BindVertexBuffers(first int, bindings []BufferBinding) {
	if len(bindings) == 0 {
		return
	}
	if !p.checkActive("BindVertexBuffers") {
		return
	}
	p.cb.ref.BindVertexBuffers(first, bindings)
}

// BindIndexBuffer binds the index buffer.
func (p *RenderPass) BindIndexBuffer(binding *BufferBinding, size IndexElementSize) {
	if binding == nil {
		warn("BindIndexBuffer: nil binding")
		return
	}
	if !p.checkActive("BindIndexBuffer") {
		return
	}
	p.cb.ref.BindIndexBuffer(binding, size)
}

// BindVertexSamplers binds texture-sampler pairs to the
// vertex stage.
func (p *RenderPass) BindVertexSamplers(first int, bindings []TextureSamplerBinding) {
	if !p.checkActive("BindVertexSamplers") {
		return
	}
	p.cb.ref.BindVertexSamplers(first, bindings)
}

// BindVertexStorageTextures binds storage textures to the
// vertex stage.
func (p *RenderPass) BindVertexStorageTextures(first int, slices []TextureSlice) {
	if !p.checkActive("BindVertexStorageTextures") {
		return
	}
	p.cb.ref.BindVertexStorageTextures(first, slices)
}

// BindVertexStorageBuffers binds storage buffers to the
// vertex stage.
func (p *RenderPass) BindVertexStorageBuffers(first int, buffers []*Buffer) {
	if !p.checkActive("BindVertexStorageBuffers") {
		return
	}
	p.cb.ref.BindVertexStorageBuffers(first, buffers)
}

// BindFragmentSamplers binds texture-sampler pairs to the
// fragment stage.
func (p *RenderPass) BindFragmentSamplers(first int, bindings []TextureSamplerBinding) {
	if !p.checkActive("BindFragmentSamplers") {
		return
	}
	p.cb.ref.BindFragmentSamplers(first, bindings)
}

// BindFragmentStorageTextures binds storage textures to
// the fragment stage.
func (p *RenderPass) BindFragmentStorageTextures(first int, slices []TextureSlice) {
	if !p.checkActive("BindFragmentStorageTextures") {
		return
	}
	p.cb.ref.BindFragmentStorageTextures(first, slices)
}

// BindFragmentStorageBuffers binds storage buffers to the
// fragment stage.
func (p *RenderPass) BindFragmentStorageBuffers(first int, buffers []*Buffer) {
	if !p.checkActive("BindFragmentStorageBuffers") {
		return
	}
	p.cb.ref.BindFragmentStorageBuffers(first, buffers)
}

// DrawPrimitives draws primitiveCount primitives starting
// at vertexStart.
func (p *RenderPass) DrawPrimitives(vertexStart, primitiveCount int) {
	if !p.checkDraw("DrawPrimitives") {
		return
	}
	p.cb.ref.DrawPrimitives(vertexStart, primitiveCount)
}

// DrawIndexedPrimitives draws indexed primitives.
func (p *RenderPass) DrawIndexedPrimitives(baseVertex, startIndex, primitiveCount, instanceCount int) {
	if !p.checkDraw("DrawIndexedPrimitives") {
		return
	}
	p.cb.ref.DrawIndexedPrimitives(baseVertex, startIndex, primitiveCount, instanceCount)
}

// DrawPrimitivesIndirect sources draw parameters from a
// buffer.
func (p *RenderPass) DrawPrimitivesIndirect(buf *Buffer, offset, drawCount, stride int) {
	if buf == nil {
		warn("DrawPrimitivesIndirect: nil buffer")
		return
	}
	if !p.checkDraw("DrawPrimitivesIndirect") {
		return
	}
	p.cb.ref.DrawPrimitivesIndirect(buf.ref, offset, drawCount, stride)
}

// DrawIndexedPrimitivesIndirect sources indexed draw
// parameters from a buffer.
func (p *RenderPass) DrawIndexedPrimitivesIndirect(buf *Buffer, offset, drawCount, stride int) {
	if buf == nil {
		warn("DrawIndexedPrimitivesIndirect: nil buffer")
		return
	}
	if !p.checkDraw("DrawIndexedPrimitivesIndirect") {
		return
	}
	p.cb.ref.DrawIndexedPrimitivesIndirect(buf.ref, offset, drawCount, stride)
}

// End ends the render pass. Color attachments are returned
// to their presentable state and the graphics pipeline
// binding is cleared.
func (p *RenderPass) End() {
	if !p.checkActive("EndRenderPass") {
		return
	}
	p.cb.ref.EndRenderPass()
	p.inProgress = false
	p.cb.graphicsPipelineBound = false
}

/* Compute pass */

// BeginComputePass begins a compute pass with the given
// read-write bindings. It returns nil when the pass cannot
// begin.
func (cb *CommandBuffer) BeginComputePass(textures []StorageTextureReadWriteBinding, buffers []StorageBufferReadWriteBinding) *ComputePass {
	if len(textures) > MaxComputeWriteTextures {
		warn("BeginComputePass: too many storage texture bindings")
		return nil
	}
	if len(buffers) > MaxComputeWriteBuffers {
		warn("BeginComputePass: too many storage buffer bindings")
		return nil
	}
	if cb.dev.debugMode {
		if !cb.checkRecording("BeginComputePass") {
			return nil
		}
		if cb.anyPassInProgress() {
			warn("BeginComputePass: pass already in progress")
			return nil
		}
	}
	cb.ref.BeginComputePass(textures, buffers)
	cb.computePass.inProgress = true
	return &cb.computePass
}

func (p *ComputePass) checkActive(op string) bool {
	if !p.cb.dev.debugMode {
		return true
	}
	if !p.inProgress {
		warn(op + ": compute pass not in progress")
		return false
	}
	return true
}

func (p *ComputePass) checkDispatch(op string) bool {
	if !p.cb.dev.debugMode {
		return true
	}
	if !p.inProgress {
		warn(op + ": compute pass not in progress")
		return false
	}
	if !p.cb.computePipelineBound {
		warn(op + ": compute pipeline not bound")
		return false
	}
	return true
}

// BindComputePipeline binds a compute pipeline to the
// pass.
func (p *ComputePass) BindComputePipeline(pl *ComputePipeline) {
	if pl == nil {
		warn("BindComputePipeline: nil pipeline")
		return
	}
	if !p.checkActive("BindComputePipeline") {
		return
	}
	p.cb.ref.BindComputePipeline(pl.ref)
	p.cb.computePipelineBound = true
}

// BindStorageTextures binds read-only storage textures to
// the compute stage.
func (p *ComputePass) BindStorageTextures(first int, slices []TextureSlice) {
	if !p.checkActive("BindComputeStorageTextures") {
		return
	}
	p.cb.ref.BindComputeStorageTextures(first, slices)
}

// BindStorageBuffers binds read-only storage buffers to
// the compute stage.
func (p *ComputePass) BindStorageBuffers(first int, buffers []*Buffer) {
	if !p.checkActive("BindComputeStorageBuffers") {
		return
	}
	p.cb.ref.BindComputeStorageBuffers(first, buffers)
}

// Dispatch dispatches compute thread groups.
func (p *ComputePass) Dispatch(groupCountX, groupCountY, groupCountZ int) {
	if !p.checkDispatch("DispatchCompute") {
		return
	}
	p.cb.ref.DispatchCompute(groupCountX, groupCountY, groupCountZ)
}

// DispatchIndirect sources dispatch parameters from a
// buffer.
func (p *ComputePass) DispatchIndirect(buf *Buffer, offset int) {
	if buf == nil {
		warn("DispatchComputeIndirect: nil buffer")
		return
	}
	if !p.checkDispatch("DispatchComputeIndirect") {
		return
	}
	p.cb.ref.DispatchComputeIndirect(buf.ref, offset)
}

// End ends the compute pass and clears the compute
// pipeline binding.
func (p *ComputePass) End() {
	if !p.checkActive("EndComputePass") {
		return
	}
	p.cb.ref.EndComputePass()
	p.inProgress = false
	p.cb.computePipelineBound = false
}

/* Copy pass */

// BeginCopyPass begins a copy pass. It returns nil when
// the pass cannot begin.
func (cb *CommandBuffer) BeginCopyPass() *CopyPass {
	if cb.dev.debugMode {
		if !cb.checkRecording("BeginCopyPass") {
			return nil
		}
		if cb.anyPassInProgress() {
			warn("BeginCopyPass: pass already in progress")
			return nil
		}
	}
	cb.ref.BeginCopyPass()
	cb.copyPass.inProgress = true
	return &cb.copyPass
}

func (p *CopyPass) checkActive(op string) bool {
	if !p.cb.dev.debugMode {
		return true
	}
	if !p.inProgress {
		warn(op + ": copy pass not in progress")
		return false
	}
	return true
}

// UploadToTexture copies texture data from a transfer
// buffer to a texture region.
func (p *CopyPass) UploadToTexture(src *TextureTransferInfo, dst *TextureRegion, cycle bool) {
	if src == nil || dst == nil {
		warn("UploadToTexture: nil source or destination")
		return
	}
	if !p.checkActive("UploadToTexture") {
		return
	}
	p.cb.ref.UploadToTexture(src, dst, cycle)
}

// UploadToBuffer copies data from a transfer buffer to a
// device buffer.
func (p *CopyPass) UploadToBuffer(src *TransferBufferLocation, dst *BufferRegion, cycle bool) {
	if src == nil || dst == nil {
		warn("UploadToBuffer: nil source or destination")
		return
	}
	if !p.checkActive("UploadToBuffer") {
		return
	}
	p.cb.ref.UploadToBuffer(src, dst, cycle)
}

// CopyTextureToTexture copies a region between textures of
// the same format.
func (p *CopyPass) CopyTextureToTexture(src, dst *TextureLocation, w, h, d int, cycle bool) {
	if src == nil || dst == nil {
		warn("CopyTextureToTexture: nil source or destination")
		return
	}
	if !p.checkActive("CopyTextureToTexture") {
		return
	}
	p.cb.ref.CopyTextureToTexture(src, dst, w, h, d, cycle)
}

// CopyBufferToBuffer copies bytes between device buffers.
func (p *CopyPass) CopyBufferToBuffer(src, dst *BufferLocation, size int, cycle bool) {
	if src == nil || dst == nil {
		warn("CopyBufferToBuffer: nil source or destination")
		return
	}
	if !p.checkActive("CopyBufferToBuffer") {
		return
	}
	p.cb.ref.CopyBufferToBuffer(src, dst, size, cycle)
}

// GenerateMipmaps fills the mip chain of the texture from
// its base level.
func (p *CopyPass) GenerateMipmaps(t *Texture) {
	if t == nil {
		warn("GenerateMipmaps: nil texture")
		return
	}
	if !p.checkActive("GenerateMipmaps") {
		return
	}
	p.cb.ref.GenerateMipmaps(t.ref)
}

// DownloadFromTexture copies a texture region into a
// transfer buffer.
func (p *CopyPass) DownloadFromTexture(src *TextureRegion, dst *TextureTransferInfo) {
	if src == nil || dst == nil {
		warn("DownloadFromTexture: nil source or destination")
		return
	}
	if !p.checkActive("DownloadFromTexture") {
		return
	}
	p.cb.ref.DownloadFromTexture(src, dst)
}

// DownloadFromBuffer copies a buffer region into a
// transfer buffer.
func (p *CopyPass) DownloadFromBuffer(src *BufferRegion, dst *TransferBufferLocation) {
	if src == nil || dst == nil {
		warn("DownloadFromBuffer: nil source or destination")
		return
	}
	if !p.checkActive("DownloadFromBuffer") {
		return
	}
	p.cb.ref.DownloadFromBuffer(src, dst)
}

// End ends the copy pass.
func (p *CopyPass) End() {
	if !p.checkActive("EndCopyPass") {
		return
	}
	p.cb.ref.EndCopyPass()
	p.inProgress = false
}

/* Blit */

// Blit copies a texture region into another, scaling with
// the given filter. It must be called outside of any pass.
func (cb *CommandBuffer) Blit(src, dst *TextureRegion, filter Filter, cycle bool) {
	if src == nil || dst == nil {
		warn("Blit: nil source or destination")
		return
	}
	if cb.dev.debugMode {
		if !cb.checkRecording("Blit") {
			return
		}
		srcInfo := src.Slice.Texture.Info()
		dstInfo := dst.Slice.Texture.Info()
		if srcInfo.Usage&TexUsageSampler == 0 {
			warn("Blit: source texture must be created with Sampler usage")
			return
		}
		if dstInfo.Usage&TexUsageColorTarget == 0 {
			warn("Blit: destination texture must be created with ColorTarget usage")
			return
		}
		if srcInfo.LayerCount > 1 || dstInfo.LayerCount > 1 {
			warn("Blit: source and destination must have a layerCount of 1")
			return
		}
		if srcInfo.Depth > 1 || dstInfo.Depth > 1 {
			warn("Blit: source and destination must have a depth of 1")
			return
		}
	}
	cb.ref.Blit(src, dst, filter, cycle)
}

/* Submission and presentation */

// AcquireSwapchainTexture returns the current back-buffer
// of a claimed window and enlists the window for
// presentation when the command buffer is submitted.
// The returned texture is a borrowed view owned by the
// window.
func (cb *CommandBuffer) AcquireSwapchainTexture(win wsi.Window) (*Texture, error) {
	if win == nil {
		return nil, invalidParam("win")
	}
	if cb.dev.debugMode && cb.submitted {
		return nil, validationErr("AcquireSwapchainTexture: command buffer already submitted")
	}
	ref, info, err := cb.ref.AcquireSwapchainTexture(win)
	if err != nil {
		return nil, err
	}
	if ref == nil {
		return nil, nil
	}
	return &Texture{ref: ref, info: info}, nil
}

// Submit submits the command buffer for execution.
// The command buffer must not be reused afterwards.
func (cb *CommandBuffer) Submit() error {
	if cb.dev.debugMode {
		if cb.submitted {
			return validationErr("Submit: command buffer already submitted")
		}
		if cb.anyPassInProgress() {
			return validationErr("Submit: cannot submit while a pass is in progress")
		}
	}
	cb.submitted = true
	return cb.ref.Submit()
}

// SubmitAndAcquireFence is like Submit, additionally
// returning a fence that signals when the submitted
// commands complete on the GPU.
func (cb *CommandBuffer) SubmitAndAcquireFence() (*Fence, error) {
	if cb.dev.debugMode {
		if cb.submitted {
			return nil, validationErr("Submit: command buffer already submitted")
		}
		if cb.anyPassInProgress() {
			return nil, validationErr("Submit: cannot submit while a pass is in progress")
		}
	}
	cb.submitted = true
	ref, err := cb.ref.SubmitAndAcquireFence()
	if err != nil {
		return nil, err
	}
	return &Fence{ref: ref}, nil
}
