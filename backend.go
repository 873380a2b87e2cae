// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package gpu

import "gviegas/gpu/wsi"

// This file defines the SPI between the front end and the
// back-end packages. The front end validates arguments and
// tracks command-buffer state; back-ends translate calls
// into their native API. Users never touch these types
// directly - they are reachable only through the exported
// wrappers, which keep native handles opaque.

// Destroyer is the interface that wraps the Destroy method.
// Types that implement this interface own external memory
// that is not managed by GC, so Destroy must be called
// explicitly to ensure such memory is deallocated.
type Destroyer interface {
	Destroy()
}

// Back-end resource handles.
// Each is owned by the renderer that created it.
type (
	TextureRef          interface{ Destroyer }
	BufferRef           interface{ Destroyer }
	TransferBufferRef   interface{ Destroyer }
	SamplerRef          interface{ Destroyer }
	ShaderRef           interface{ Destroyer }
	GraphicsPipelineRef interface{ Destroyer }
	ComputePipelineRef  interface{ Destroyer }
)

// FenceRef is an opaque back-end fence. Fences are pooled
// by their renderer and returned through ReleaseFence
// rather than destroyed.
type FenceRef interface{}

// Renderer is the interface that back-end devices
// implement. A Renderer is obtained from Driver.Open and
// is owned by exactly one Device.
type Renderer interface {
	// Destroy tears the device down. All child objects
	// must already be released.
	Destroy()

	SupportsTextureFormat(TextureFormat, TextureType, TextureUsage) bool
	BestSampleCount(TextureFormat, SampleCount) SampleCount

	CreateComputePipeline(*ComputePipelineInfo) (ComputePipelineRef, error)
	CreateGraphicsPipeline(*GraphicsPipelineInfo) (GraphicsPipelineRef, error)
	CreateSampler(*SamplerInfo) (SamplerRef, error)
	CreateShader(*ShaderInfo) (ShaderRef, error)
	CreateTexture(*TextureInfo) (TextureRef, error)
	CreateBuffer(BufferUsage, int) (BufferRef, error)
	CreateTransferBuffer(TransferBufferUsage, int) (TransferBufferRef, error)

	SetBufferName(BufferRef, string)
	SetTextureName(TextureRef, string)

	// AcquireCommandBuffer returns the renderer's command
	// buffer prepared for recording.
	AcquireCommandBuffer() (CommandBufferRef, error)

	// MapTransferBuffer maps the transfer buffer into host
	// memory and returns its backing bytes. With cycle set,
	// the back-end may substitute a fresh allocation when
	// the region is still in use by the GPU.
	MapTransferBuffer(ref TransferBufferRef, cycle bool) ([]byte, error)
	UnmapTransferBuffer(TransferBufferRef)

	SupportsSwapchainComposition(wsi.Window, SwapchainComposition) bool
	SupportsPresentMode(wsi.Window, PresentMode) bool
	ClaimWindow(wsi.Window, SwapchainComposition, PresentMode) error
	UnclaimWindow(wsi.Window)
	SetSwapchainParameters(wsi.Window, SwapchainComposition, PresentMode) error
	SwapchainTextureFormat(wsi.Window) (TextureFormat, error)

	Wait() error
	WaitForFences(waitAll bool, fences []FenceRef) error
	QueryFence(FenceRef) bool
	ReleaseFence(FenceRef)
}

// CommandBufferRef is the back-end side of a command
// buffer. Pass nesting and submission-state rules are
// enforced by the front end; implementations may assume
// calls arrive in a valid order.
type CommandBufferRef interface {
	InsertDebugLabel(string)
	PushDebugGroup(string)
	PopDebugGroup()

	PushVertexUniformData(slot int, data []byte)
	PushFragmentUniformData(slot int, data []byte)
	PushComputeUniformData(slot int, data []byte)

	BeginRenderPass([]ColorAttachmentInfo, *DepthStencilAttachmentInfo)
	SetViewport(*Viewport)
	SetScissor(*Rect)
	BindGraphicsPipeline(GraphicsPipelineRef)
	BindVertexBuffers(first int, bindings []BufferBinding)
	BindIndexBuffer(*BufferBinding, IndexElementSize)
	BindVertexSamplers(first int, bindings []TextureSamplerBinding)
	BindVertexStorageTextures(first int, slices []TextureSlice)
	BindVertexStorageBuffers(first int, buffers []*Buffer)
	BindFragmentSamplers(first int, bindings []TextureSamplerBinding)
	BindFragmentStorageTextures(first int, slices []TextureSlice)
	BindFragmentStorageBuffers(first int, buffers []*Buffer)
	DrawPrimitives(vertexStart, primitiveCount int)
	DrawIndexedPrimitives(baseVertex, startIndex, primitiveCount, instanceCount int)
	DrawPrimitivesIndirect(buf BufferRef, offset, drawCount, stride int)
	DrawIndexedPrimitivesIndirect(buf BufferRef, offset, drawCount, stride int)
	EndRenderPass()

	BeginComputePass([]StorageTextureReadWriteBinding, []StorageBufferReadWriteBinding)
	BindComputePipeline(ComputePipelineRef)
	BindComputeStorageTextures(first int, slices []TextureSlice)
	BindComputeStorageBuffers(first int, buffers []*Buffer)
	DispatchCompute(groupCountX, groupCountY, groupCountZ int)
	DispatchComputeIndirect(buf BufferRef, offset int)
	EndComputePass()

	BeginCopyPass()
	UploadToTexture(src *TextureTransferInfo, dst *TextureRegion, cycle bool)
	UploadToBuffer(src *TransferBufferLocation, dst *BufferRegion, cycle bool)
	CopyTextureToTexture(src, dst *TextureLocation, w, h, d int, cycle bool)
	CopyBufferToBuffer(src, dst *BufferLocation, size int, cycle bool)
	GenerateMipmaps(TextureRef)
	DownloadFromTexture(src *TextureRegion, dst *TextureTransferInfo)
	DownloadFromBuffer(src *BufferRegion, dst *TransferBufferLocation)
	EndCopyPass()

	Blit(src, dst *TextureRegion, filter Filter, cycle bool)

	// AcquireSwapchainTexture returns the claimed window's
	// current back-buffer and its description, enlisting
	// the window for presentation at submission time.
	AcquireSwapchainTexture(wsi.Window) (TextureRef, TextureInfo, error)

	Submit() error
	SubmitAndAcquireFence() (FenceRef, error)
}
