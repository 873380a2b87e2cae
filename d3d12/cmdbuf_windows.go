// Copyright 2024 Gustavo C. Viegas. All rights reserved.

//go:build windows

package d3d12

import (
	"errors"
	"log"
	"unsafe"

	"golang.org/x/sys/windows"

	"gviegas/gpu"
	"gviegas/gpu/wsi"
)

// Shader-visible descriptor heap capacities. Tables are
// allocated per draw and the rings reset on submission.
const (
	viewHeapCapacity    = 4096
	samplerHeapCapacity = 256
)

// heapRing is a shader-visible descriptor heap consumed as
// a ring within one recording.
type heapRing struct {
	heap      *iD3D12DescriptorHeap
	cpuStart  _D3D12_CPU_DESCRIPTOR_HANDLE
	gpuStart  _D3D12_GPU_DESCRIPTOR_HANDLE
	increment uint32
	next      int
	capacity  int
}

func (r *renderer) newHeapRing(typ int32, capacity int) (heapRing, error) {
	desc := _D3D12_DESCRIPTOR_HEAP_DESC{
		Type:           typ,
		NumDescriptors: uint32(capacity),
		Flags:          _D3D12_DESCRIPTOR_HEAP_FLAG_SHADER_VISIBLE,
	}
	heap, err := r.device.CreateDescriptorHeap(&desc)
	if err != nil {
		r.logError("could not create shader-visible descriptor heap", err)
		return heapRing{}, err
	}
	return heapRing{
		heap:      heap,
		cpuStart:  heap.GetCPUDescriptorHandleForHeapStart(),
		gpuStart:  heap.GetGPUDescriptorHandleForHeapStart(),
		increment: r.device.GetDescriptorHandleIncrementSize(typ),
		capacity:  capacity,
	}, nil
}

// allocTable reserves n contiguous descriptors, returning
// the CPU handle for writes and the GPU handle for the
// root-parameter bind.
func (h *heapRing) allocTable(n int) (_D3D12_CPU_DESCRIPTOR_HANDLE, _D3D12_GPU_DESCRIPTOR_HANDLE) {
	if h.next+n > h.capacity {
		// The ring wraps; a heap this size outlives any
		// realistic single recording.
		h.next = 0
	}
	cpu := h.cpuStart
	cpu.Offset(h.next, h.increment)
	gpuBase := h.gpuStart
	gpuBase.Offset(h.next, h.increment)
	h.next += n
	return cpu, gpuBase
}

func (h *heapRing) reset() { h.next = 0 }

func (h *heapRing) destroy() {
	if h.heap != nil {
		h.heap.Release()
		h.heap = nil
	}
}

// uniformSlot is one leased uniform binding.
type uniformSlot struct {
	ub     *uniformBuffer
	offset int
	size   int
}

// commandBuffer implements gpu.CommandBufferRef.
// The renderer owns a single command buffer; submission
// blocks until the GPU drains it, so reuse is safe.
type commandBuffer struct {
	rend *renderer

	queue     *iD3D12CommandQueue
	allocator *iD3D12CommandAllocator
	list      *iD3D12GraphicsCommandList

	fence      *iD3D12Fence
	fenceValue uint64
	fenceEvent windows.Handle

	viewHeap    heapRing
	samplerHeap heapRing

	activeWindows []*windowData

	colorAttachments []*texture
	depthAttachment  *texture

	graphicsPipeline *graphicsPipeline
	computePipeline  *computePipeline

	// Shared-register uniform slots; the graphics root
	// signature has ALL visibility, so vertex, fragment
	// and compute pushes address the same slots.
	uniforms [maxVertexUniformBuffers]uniformSlot

	samplerBindings        [maxFragmentSamplers]gpu.TextureSamplerBinding
	storageBufferBindings  [maxComputeStorage]*buffer
	storageTextureBindings [maxComputeStorage]*texture

	needUniformBind bool
	needSamplerBind bool
	needStorageBind bool

	usedUniformBuffers []*uniformBuffer
}

const maxComputeStorage = gpu.MaxComputeWriteBuffers + 8

func newCommandBuffer(r *renderer) (*commandBuffer, error) {
	cb := &commandBuffer{rend: r}

	var err error
	queueDesc := _D3D12_COMMAND_QUEUE_DESC{Type: _D3D12_COMMAND_LIST_TYPE_DIRECT}
	if cb.queue, err = r.device.CreateCommandQueue(&queueDesc); err != nil {
		r.logError("could not create command queue", err)
		return nil, err
	}
	if cb.allocator, err = r.device.CreateCommandAllocator(_D3D12_COMMAND_LIST_TYPE_DIRECT); err != nil {
		r.logError("could not create command allocator", err)
		cb.destroy()
		return nil, err
	}
	if cb.list, err = r.device.CreateCommandList(0, _D3D12_COMMAND_LIST_TYPE_DIRECT, cb.allocator); err != nil {
		r.logError("could not create command list", err)
		cb.destroy()
		return nil, err
	}
	// The list is born open; cycle it once so recording
	// always starts from a fresh reset.
	if err = cb.list.Close(); err != nil {
		cb.destroy()
		return nil, err
	}
	if err = cb.allocator.Reset(); err != nil {
		cb.destroy()
		return nil, err
	}
	if err = cb.list.Reset(cb.allocator); err != nil {
		cb.destroy()
		return nil, err
	}
	if cb.fence, err = r.device.CreateFence(0); err != nil {
		r.logError("could not create fence", err)
		cb.destroy()
		return nil, err
	}
	cb.fenceValue = 1
	if cb.fenceEvent, err = windows.CreateEvent(nil, 0, 0, nil); err != nil {
		cb.destroy()
		return nil, err
	}
	if cb.viewHeap, err = r.newHeapRing(_D3D12_DESCRIPTOR_HEAP_TYPE_CBV_SRV_UAV, viewHeapCapacity); err != nil {
		cb.destroy()
		return nil, err
	}
	if cb.samplerHeap, err = r.newHeapRing(_D3D12_DESCRIPTOR_HEAP_TYPE_SAMPLER, samplerHeapCapacity); err != nil {
		cb.destroy()
		return nil, err
	}
	return cb, nil
}

func (cb *commandBuffer) destroy() {
	cb.viewHeap.destroy()
	cb.samplerHeap.destroy()
	if cb.fenceEvent != 0 {
		windows.CloseHandle(cb.fenceEvent)
		cb.fenceEvent = 0
	}
	if cb.fence != nil {
		cb.fence.Release()
		cb.fence = nil
	}
	if cb.list != nil {
		cb.list.Release()
		cb.list = nil
	}
	if cb.allocator != nil {
		cb.allocator.Release()
		cb.allocator = nil
	}
	if cb.queue != nil {
		cb.queue.Release()
		cb.queue = nil
	}
}

/* Debug groups */

// InsertDebugLabel implements gpu.CommandBufferRef.
// PIX markers need the WinPixEventRuntime; without it the
// labels are logged under debug mode only.
func (cb *commandBuffer) InsertDebugLabel(text string) {
	if cb.rend.debugMode {
		log.Printf("d3d12: label: %s", text)
	}
}

// PushDebugGroup implements gpu.CommandBufferRef.
func (cb *commandBuffer) PushDebugGroup(name string) {
	if cb.rend.debugMode {
		log.Printf("d3d12: begin group: %s", name)
	}
}

// PopDebugGroup implements gpu.CommandBufferRef.
func (cb *commandBuffer) PopDebugGroup() {
	if cb.rend.debugMode {
		log.Print("d3d12: end group")
	}
}

/* Uniform data */

func (cb *commandBuffer) pushUniformData(slot int, data []byte) {
	if slot < 0 || slot >= len(cb.uniforms) {
		log.Printf("[!] d3d12: uniform slot %d out of range", slot)
		return
	}
	us := &cb.uniforms[slot]
	if us.ub == nil {
		ub, err := cb.rend.acquireUniformBuffer()
		if err != nil {
			return
		}
		cb.trackUniformBuffer(ub)
		us.ub = ub
	}
	off := us.ub.alloc(len(data))
	if off < 0 {
		// Ring exhausted; lease a fresh one.
		ub, err := cb.rend.acquireUniformBuffer()
		if err != nil {
			return
		}
		cb.trackUniformBuffer(ub)
		us.ub = ub
		off = ub.alloc(len(data))
		if off < 0 {
			log.Printf("[!] d3d12: uniform data of %d bytes does not fit", len(data))
			return
		}
	}
	copy(us.ub.mapped[off:], data)
	us.offset = off
	us.size = (len(data) + uniformBlockSize - 1) &^ (uniformBlockSize - 1)
	cb.needUniformBind = true
}

func (cb *commandBuffer) trackUniformBuffer(ub *uniformBuffer) {
	for _, x := range cb.usedUniformBuffers {
		if x == ub {
			return
		}
	}
	cb.usedUniformBuffers = append(cb.usedUniformBuffers, ub)
}

// PushVertexUniformData implements gpu.CommandBufferRef.
func (cb *commandBuffer) PushVertexUniformData(slot int, data []byte) {
	cb.pushUniformData(slot, data)
}

// PushFragmentUniformData implements gpu.CommandBufferRef.
func (cb *commandBuffer) PushFragmentUniformData(slot int, data []byte) {
	cb.pushUniformData(slot, data)
}

// PushComputeUniformData implements gpu.CommandBufferRef.
func (cb *commandBuffer) PushComputeUniformData(slot int, data []byte) {
	cb.pushUniformData(slot, data)
}

/* Render pass */

// BeginRenderPass implements gpu.CommandBufferRef.
func (cb *commandBuffer) BeginRenderPass(colors []gpu.ColorAttachmentInfo, ds *gpu.DepthStencilAttachmentInfo) {
	fbWidth, fbHeight := framebufferExtent(colors, ds)

	cb.colorAttachments = cb.colorAttachments[:0]
	var rtvs []_D3D12_CPU_DESCRIPTOR_HANDLE
	for i := range colors {
		t, ok := colors[i].Slice.Texture.Ref().(*texture)
		if !ok || !t.isRenderTarget {
			log.Printf("[!] d3d12: color attachment texture was not designated as a target")
			return
		}
		cb.colorAttachments = append(cb.colorAttachments, t)

		cb.list.ResourceBarrier([]_D3D12_RESOURCE_BARRIER{{
			Type: _D3D12_RESOURCE_BARRIER_TYPE_TRANSITION,
			Transition: _D3D12_RESOURCE_TRANSITION_BARRIER{
				PResource:   t.resource,
				Subresource: _D3D12_RESOURCE_BARRIER_ALL_SUBRESOURCES,
				StateBefore: _D3D12_RESOURCE_STATE_PRESENT,
				StateAfter:  _D3D12_RESOURCE_STATE_RENDER_TARGET,
			},
		}})
		rtvs = append(rtvs, t.rtvHandle)

		if colors[i].LoadOp == gpu.LoadOpClear {
			c := colors[i].ClearColor
			clear := [4]float32{c.R, c.G, c.B, c.A}
			cb.list.ClearRenderTargetView(t.rtvHandle, &clear)
		}
	}

	var dsv *_D3D12_CPU_DESCRIPTOR_HANDLE
	if ds != nil {
		t, ok := ds.Slice.Texture.Ref().(*texture)
		if !ok || !t.isRenderTarget {
			log.Printf("[!] d3d12: depth stencil attachment texture was not designated as a target")
			return
		}
		cb.depthAttachment = t
		cb.list.ResourceBarrier([]_D3D12_RESOURCE_BARRIER{{
			Type: _D3D12_RESOURCE_BARRIER_TYPE_TRANSITION,
			Transition: _D3D12_RESOURCE_TRANSITION_BARRIER{
				PResource:   t.resource,
				Subresource: _D3D12_RESOURCE_BARRIER_ALL_SUBRESOURCES,
				StateBefore: _D3D12_RESOURCE_STATE_COMMON,
				StateAfter:  _D3D12_RESOURCE_STATE_DEPTH_WRITE,
			},
		}})
		dsv = &t.dsvHandle
		var flags uint32
		if ds.LoadOp == gpu.LoadOpClear {
			flags |= _D3D12_CLEAR_FLAG_DEPTH
		}
		if ds.StencilLoadOp == gpu.LoadOpClear {
			flags |= _D3D12_CLEAR_FLAG_STENCIL
		}
		if flags != 0 {
			cb.list.ClearDepthStencilView(t.dsvHandle, flags, ds.DepthClear, uint8(ds.StencilClear))
		}
	}

	cb.list.OMSetRenderTargets(rtvs, dsv)

	// Sensible full-framebuffer defaults.
	cb.SetViewport(&gpu.Viewport{
		W: float32(fbWidth), H: float32(fbHeight),
		MinDepth: 0, MaxDepth: 1,
	})
	cb.SetScissor(&gpu.Rect{W: int32(fbWidth), H: int32(fbHeight)})
}

// SetViewport implements gpu.CommandBufferRef.
func (cb *commandBuffer) SetViewport(vp *gpu.Viewport) {
	cb.list.RSSetViewports([]_D3D12_VIEWPORT{{
		TopLeftX: vp.X,
		TopLeftY: vp.Y,
		Width:    vp.W,
		Height:   vp.H,
		MinDepth: vp.MinDepth,
		MaxDepth: vp.MaxDepth,
	}})
}

// SetScissor implements gpu.CommandBufferRef.
func (cb *commandBuffer) SetScissor(sc *gpu.Rect) {
	cb.list.RSSetScissorRects([]_D3D12_RECT{{
		Left:   sc.X,
		Top:    sc.Y,
		Right:  sc.X + sc.W,
		Bottom: sc.Y + sc.H,
	}})
}

// BindGraphicsPipeline implements gpu.CommandBufferRef.
func (cb *commandBuffer) BindGraphicsPipeline(ref gpu.GraphicsPipelineRef) {
	pl, ok := ref.(*graphicsPipeline)
	if !ok {
		return
	}
	cb.graphicsPipeline = pl

	cb.list.SetPipelineState(pl.pso)
	cb.list.SetGraphicsRootSignature(pl.rootSignature)
	cb.list.IASetPrimitiveTopology(convPrimitiveType[pl.primitiveType])
	cb.list.OMSetBlendFactor(&pl.blendConstants)
	cb.list.OMSetStencilRef(pl.stencilRef)
	cb.list.SetDescriptorHeaps([]*iD3D12DescriptorHeap{cb.viewHeap.heap, cb.samplerHeap.heap})

	// Pre-seed uniform slots so every declared register is
	// backed before the first draw.
	n := max(pl.vertexUniformBufferCount, pl.fragmentUniformBufferCount)
	for slot := 0; slot < n; slot++ {
		if cb.uniforms[slot].ub == nil {
			ub, err := cb.rend.acquireUniformBuffer()
			if err != nil {
				break
			}
			cb.trackUniformBuffer(ub)
			cb.uniforms[slot].ub = ub
			cb.uniforms[slot].offset = ub.alloc(uniformBlockSize)
			cb.uniforms[slot].size = uniformBlockSize
		}
	}

	cb.needUniformBind = true
	cb.needSamplerBind = true
	cb.needStorageBind = true
}

// BindVertexBuffers implements gpu.CommandBufferRef.
func (cb *commandBuffer) BindVertexBuffers(first int, bindings []gpu.BufferBinding) {
	if len(bindings) == 0 {
		return
	}
	views := make([]_D3D12_VERTEX_BUFFER_VIEW, len(bindings))
	for i, bind := range bindings {
		b, ok := bind.Buffer.Ref().(*buffer)
		if !ok {
			return
		}
		stride := uint32(0)
		if pl := cb.graphicsPipeline; pl != nil {
			stride = cb.vertexStride(first + i)
		}
		views[i] = _D3D12_VERTEX_BUFFER_VIEW{
			BufferLocation: b.gpuAddr + uint64(bind.Offset),
			SizeInBytes:    uint32(b.size - bind.Offset),
			StrideInBytes:  stride,
		}
	}
	cb.list.IASetVertexBuffers(uint32(first), views)
}

// vertexStride returns the bound pipeline's stride for a
// vertex buffer slot.
func (cb *commandBuffer) vertexStride(slot int) uint32 {
	for _, b := range cb.graphicsPipeline.vertexStrides {
		if b.slot == slot {
			return b.stride
		}
	}
	return 0
}

// BindIndexBuffer implements gpu.CommandBufferRef.
func (cb *commandBuffer) BindIndexBuffer(binding *gpu.BufferBinding, size gpu.IndexElementSize) {
	b, ok := binding.Buffer.Ref().(*buffer)
	if !ok {
		return
	}
	format := _DXGI_FORMAT_R16_UINT
	if size == gpu.Index32 {
		format = _DXGI_FORMAT_R32_UINT
	}
	cb.list.IASetIndexBuffer(&_D3D12_INDEX_BUFFER_VIEW{
		BufferLocation: b.gpuAddr + uint64(binding.Offset),
		SizeInBytes:    uint32(b.size - binding.Offset),
		Format:         format,
	})
}

func (cb *commandBuffer) bindSamplers(first int, bindings []gpu.TextureSamplerBinding) {
	for i, bind := range bindings {
		if first+i < len(cb.samplerBindings) {
			cb.samplerBindings[first+i] = bind
		}
	}
	cb.needSamplerBind = true
}

// BindVertexSamplers implements gpu.CommandBufferRef.
func (cb *commandBuffer) BindVertexSamplers(first int, bindings []gpu.TextureSamplerBinding) {
	cb.bindSamplers(first, bindings)
}

// BindFragmentSamplers implements gpu.CommandBufferRef.
func (cb *commandBuffer) BindFragmentSamplers(first int, bindings []gpu.TextureSamplerBinding) {
	cb.bindSamplers(first, bindings)
}

func (cb *commandBuffer) bindStorageTextures(first int, slices []gpu.TextureSlice) {
	for i, s := range slices {
		if t, ok := s.Texture.Ref().(*texture); ok && first+i < len(cb.storageTextureBindings) {
			cb.storageTextureBindings[first+i] = t
		}
	}
	cb.needStorageBind = true
}

func (cb *commandBuffer) bindStorageBuffers(first int, buffers []*gpu.Buffer) {
	for i, b := range buffers {
		if x, ok := b.Ref().(*buffer); ok && first+i < len(cb.storageBufferBindings) {
			cb.storageBufferBindings[first+i] = x
		}
	}
	cb.needStorageBind = true
}

// BindVertexStorageTextures implements gpu.CommandBufferRef.
func (cb *commandBuffer) BindVertexStorageTextures(first int, slices []gpu.TextureSlice) {
	cb.bindStorageTextures(first, slices)
}

// BindVertexStorageBuffers implements gpu.CommandBufferRef.
func (cb *commandBuffer) BindVertexStorageBuffers(first int, buffers []*gpu.Buffer) {
	cb.bindStorageBuffers(first, buffers)
}

// BindFragmentStorageTextures implements gpu.CommandBufferRef.
func (cb *commandBuffer) BindFragmentStorageTextures(first int, slices []gpu.TextureSlice) {
	cb.bindStorageTextures(first, slices)
}

// BindFragmentStorageBuffers implements gpu.CommandBufferRef.
func (cb *commandBuffer) BindFragmentStorageBuffers(first int, buffers []*gpu.Buffer) {
	cb.bindStorageBuffers(first, buffers)
}

// flushGraphicsBinds issues the pending descriptor-table
// binds at the slots of the pipeline's synthesized layout,
// then clears the flags.
func (cb *commandBuffer) flushGraphicsBinds() {
	pl := cb.graphicsPipeline
	if pl == nil {
		return
	}
	layout := pl.layout

	if cb.needUniformBind {
		if layout.UniformTable >= 0 {
			n := max(pl.vertexUniformBufferCount, pl.fragmentUniformBufferCount)
			cpu, gpuBase := cb.viewHeap.allocTable(n)
			for slot := 0; slot < n; slot++ {
				us := cb.uniforms[slot]
				if us.ub != nil {
					cb.rend.device.CreateConstantBufferView(&_D3D12_CONSTANT_BUFFER_VIEW_DESC{
						BufferLocation: us.ub.gpuAddr + uint64(us.offset),
						SizeInBytes:    uint32(us.size),
					}, cpu)
				}
				cpu.Offset(1, cb.viewHeap.increment)
			}
			cb.list.SetGraphicsRootDescriptorTable(uint32(layout.UniformTable), gpuBase)
		}
		cb.needUniformBind = false
	}

	if cb.needSamplerBind {
		if layout.SamplerTable >= 0 {
			n := layout.Params[layout.SamplerTable].Count
			cpu, gpuBase := cb.samplerHeap.allocTable(n)
			srvCPU, srvGPU := cb.viewHeap.allocTable(n)
			for slot := 0; slot < n; slot++ {
				bind := cb.samplerBindings[slot]
				if s, ok := samplerRef(bind.Sampler); ok {
					cb.rend.device.CreateSampler(&s.desc, cpu)
				}
				if bind.Texture != nil {
					if t, ok := bind.Texture.Ref().(*texture); ok {
						cb.rend.device.CreateShaderResourceView(t.resource, &_D3D12_SHADER_RESOURCE_VIEW_DESC{
							Format:                  t.desc.Format,
							ViewDimension:           _D3D12_SRV_DIMENSION_TEXTURE2D,
							Shader4ComponentMapping: _D3D12_DEFAULT_SHADER_4_COMPONENT_MAPPING,
							MipLevels:               uint32(t.desc.MipLevels),
						}, srvCPU)
					}
				}
				cpu.Offset(1, cb.samplerHeap.increment)
				srvCPU.Offset(1, cb.viewHeap.increment)
			}
			cb.list.SetGraphicsRootDescriptorTable(uint32(layout.SamplerTable), gpuBase)
			if layout.SampledTextureTable >= 0 {
				cb.list.SetGraphicsRootDescriptorTable(uint32(layout.SampledTextureTable), srvGPU)
			}
		}
		cb.needSamplerBind = false
	}

	if cb.needStorageBind {
		if layout.StorageBufferTable >= 0 {
			n := layout.Params[layout.StorageBufferTable].Count
			cpu, gpuBase := cb.viewHeap.allocTable(n)
			for slot := 0; slot < n; slot++ {
				if b := cb.storageBufferBindings[slot]; b != nil {
					cb.rend.device.CreateUnorderedAccessView(b.resource, &_D3D12_UNORDERED_ACCESS_VIEW_DESC{
						Format:        _DXGI_FORMAT_R32_TYPELESS,
						ViewDimension: _D3D12_UAV_DIMENSION_BUFFER,
						NumElements:   uint32(b.size / 4),
						Flags:         _D3D12_BUFFER_UAV_FLAG_RAW,
					}, cpu)
				}
				cpu.Offset(1, cb.viewHeap.increment)
			}
			cb.list.SetGraphicsRootDescriptorTable(uint32(layout.StorageBufferTable), gpuBase)
		}
		if layout.StorageTextureTable >= 0 {
			n := layout.Params[layout.StorageTextureTable].Count
			cpu, gpuBase := cb.viewHeap.allocTable(n)
			for slot := 0; slot < n; slot++ {
				if t := cb.storageTextureBindings[slot]; t != nil {
					cb.rend.device.CreateUnorderedAccessView(t.resource, &_D3D12_UNORDERED_ACCESS_VIEW_DESC{
						Format:        t.desc.Format,
						ViewDimension: _D3D12_UAV_DIMENSION_TEXTURE2D,
					}, cpu)
				}
				cpu.Offset(1, cb.viewHeap.increment)
			}
			cb.list.SetGraphicsRootDescriptorTable(uint32(layout.StorageTextureTable), gpuBase)
		}
		cb.needStorageBind = false
	}
}

func samplerRef(s *gpu.Sampler) (*sampler, bool) {
	if s == nil {
		return nil, false
	}
	x, ok := s.Ref().(*sampler)
	return x, ok
}

// DrawPrimitives implements gpu.CommandBufferRef.
func (cb *commandBuffer) DrawPrimitives(vertexStart, primitiveCount int) {
	cb.flushGraphicsBinds()
	prim := cb.graphicsPipeline.primitiveType
	cb.list.IASetPrimitiveTopology(convPrimitiveType[prim])
	cb.list.DrawInstanced(uint32(prim.VertexCount(primitiveCount)), 1, uint32(vertexStart), 0)
}

// DrawIndexedPrimitives implements gpu.CommandBufferRef.
func (cb *commandBuffer) DrawIndexedPrimitives(baseVertex, startIndex, primitiveCount, instanceCount int) {
	cb.flushGraphicsBinds()
	prim := cb.graphicsPipeline.primitiveType
	cb.list.IASetPrimitiveTopology(convPrimitiveType[prim])
	cb.list.DrawIndexedInstanced(uint32(prim.VertexCount(primitiveCount)), uint32(instanceCount),
		uint32(startIndex), int32(baseVertex), 0)
}

// DrawPrimitivesIndirect implements gpu.CommandBufferRef.
// Indirect draws need a command signature object, which
// this back-end does not create yet.
func (cb *commandBuffer) DrawPrimitivesIndirect(buf gpu.BufferRef, offset, drawCount, stride int) {
	log.Print("[!] d3d12: indirect draws are not supported")
}

// DrawIndexedPrimitivesIndirect implements gpu.CommandBufferRef.
func (cb *commandBuffer) DrawIndexedPrimitivesIndirect(buf gpu.BufferRef, offset, drawCount, stride int) {
	log.Print("[!] d3d12: indirect draws are not supported")
}

// EndRenderPass implements gpu.CommandBufferRef.
// Color attachments transition back to their presentable
// state.
func (cb *commandBuffer) EndRenderPass() {
	for _, t := range cb.colorAttachments {
		cb.list.ResourceBarrier([]_D3D12_RESOURCE_BARRIER{{
			Type: _D3D12_RESOURCE_BARRIER_TYPE_TRANSITION,
			Transition: _D3D12_RESOURCE_TRANSITION_BARRIER{
				PResource:   t.resource,
				Subresource: _D3D12_RESOURCE_BARRIER_ALL_SUBRESOURCES,
				StateBefore: _D3D12_RESOURCE_STATE_RENDER_TARGET,
				StateAfter:  _D3D12_RESOURCE_STATE_PRESENT,
			},
		}})
	}
	if t := cb.depthAttachment; t != nil {
		cb.list.ResourceBarrier([]_D3D12_RESOURCE_BARRIER{{
			Type: _D3D12_RESOURCE_BARRIER_TYPE_TRANSITION,
			Transition: _D3D12_RESOURCE_TRANSITION_BARRIER{
				PResource:   t.resource,
				Subresource: _D3D12_RESOURCE_BARRIER_ALL_SUBRESOURCES,
				StateBefore: _D3D12_RESOURCE_STATE_DEPTH_WRITE,
				StateAfter:  _D3D12_RESOURCE_STATE_COMMON,
			},
		}})
		cb.depthAttachment = nil
	}
	cb.colorAttachments = cb.colorAttachments[:0]
	cb.graphicsPipeline = nil
}

/* Compute pass */

// BeginComputePass implements gpu.CommandBufferRef.
func (cb *commandBuffer) BeginComputePass(textures []gpu.StorageTextureReadWriteBinding, buffers []gpu.StorageBufferReadWriteBinding) {
	for i := range cb.storageTextureBindings {
		cb.storageTextureBindings[i] = nil
	}
	for i := range cb.storageBufferBindings {
		cb.storageBufferBindings[i] = nil
	}
	for i, b := range textures {
		if t, ok := b.Slice.Texture.Ref().(*texture); ok && i < len(cb.storageTextureBindings) {
			cb.storageTextureBindings[i] = t
		}
	}
	for i, b := range buffers {
		if x, ok := b.Buffer.Ref().(*buffer); ok && i < len(cb.storageBufferBindings) {
			cb.storageBufferBindings[i] = x
		}
	}
	cb.needStorageBind = true
}

// BindComputePipeline implements gpu.CommandBufferRef.
func (cb *commandBuffer) BindComputePipeline(ref gpu.ComputePipelineRef) {
	pl, ok := ref.(*computePipeline)
	if !ok {
		return
	}
	cb.computePipeline = pl
	cb.list.SetPipelineState(pl.pso)
	cb.list.SetComputeRootSignature(pl.rootSignature)
	cb.list.SetDescriptorHeaps([]*iD3D12DescriptorHeap{cb.viewHeap.heap, cb.samplerHeap.heap})
	cb.needUniformBind = true
	cb.needStorageBind = true
}

// BindComputeStorageTextures implements gpu.CommandBufferRef.
func (cb *commandBuffer) BindComputeStorageTextures(first int, slices []gpu.TextureSlice) {
	cb.bindStorageTextures(first, slices)
}

// BindComputeStorageBuffers implements gpu.CommandBufferRef.
func (cb *commandBuffer) BindComputeStorageBuffers(first int, buffers []*gpu.Buffer) {
	cb.bindStorageBuffers(first, buffers)
}

// flushComputeBinds mirrors flushGraphicsBinds for the
// compute binding point.
func (cb *commandBuffer) flushComputeBinds() {
	pl := cb.computePipeline
	if pl == nil {
		return
	}
	layout := pl.layout

	if cb.needUniformBind && layout.UniformTable >= 0 {
		n := pl.uniformBufferCount
		cpu, gpuBase := cb.viewHeap.allocTable(n)
		for slot := 0; slot < n; slot++ {
			us := cb.uniforms[slot]
			if us.ub != nil {
				cb.rend.device.CreateConstantBufferView(&_D3D12_CONSTANT_BUFFER_VIEW_DESC{
					BufferLocation: us.ub.gpuAddr + uint64(us.offset),
					SizeInBytes:    uint32(us.size),
				}, cpu)
			}
			cpu.Offset(1, cb.viewHeap.increment)
		}
		cb.list.SetComputeRootDescriptorTable(uint32(layout.UniformTable), gpuBase)
		cb.needUniformBind = false
	}

	if cb.needStorageBind {
		if layout.StorageBufferTable >= 0 {
			n := layout.Params[layout.StorageBufferTable].Count
			cpu, gpuBase := cb.viewHeap.allocTable(n)
			for slot := 0; slot < n; slot++ {
				if b := cb.storageBufferBindings[slot]; b != nil {
					cb.rend.device.CreateUnorderedAccessView(b.resource, &_D3D12_UNORDERED_ACCESS_VIEW_DESC{
						Format:        _DXGI_FORMAT_R32_TYPELESS,
						ViewDimension: _D3D12_UAV_DIMENSION_BUFFER,
						NumElements:   uint32(b.size / 4),
						Flags:         _D3D12_BUFFER_UAV_FLAG_RAW,
					}, cpu)
				}
				cpu.Offset(1, cb.viewHeap.increment)
			}
			cb.list.SetComputeRootDescriptorTable(uint32(layout.StorageBufferTable), gpuBase)
		}
		if layout.StorageTextureTable >= 0 {
			n := layout.Params[layout.StorageTextureTable].Count
			cpu, gpuBase := cb.viewHeap.allocTable(n)
			for slot := 0; slot < n; slot++ {
				if t := cb.storageTextureBindings[slot]; t != nil {
					cb.rend.device.CreateUnorderedAccessView(t.resource, &_D3D12_UNORDERED_ACCESS_VIEW_DESC{
						Format:        t.desc.Format,
						ViewDimension: _D3D12_UAV_DIMENSION_TEXTURE2D,
					}, cpu)
				}
				cpu.Offset(1, cb.viewHeap.increment)
			}
			cb.list.SetComputeRootDescriptorTable(uint32(layout.StorageTextureTable), gpuBase)
		}
		cb.needStorageBind = false
	}
}

// DispatchCompute implements gpu.CommandBufferRef.
func (cb *commandBuffer) DispatchCompute(x, y, z int) {
	cb.flushComputeBinds()
	cb.list.Dispatch(uint32(x), uint32(y), uint32(z))
}

// DispatchComputeIndirect implements gpu.CommandBufferRef.
func (cb *commandBuffer) DispatchComputeIndirect(buf gpu.BufferRef, offset int) {
	log.Print("[!] d3d12: indirect dispatch is not supported")
}

// EndComputePass implements gpu.CommandBufferRef.
func (cb *commandBuffer) EndComputePass() {
	cb.computePipeline = nil
}

/* Copy pass */

// BeginCopyPass implements gpu.CommandBufferRef.
// Copies rely on common-state promotion; there is no
// per-pass state to establish.
func (cb *commandBuffer) BeginCopyPass() {}

// UploadToTexture implements gpu.CommandBufferRef.
func (cb *commandBuffer) UploadToTexture(src *gpu.TextureTransferInfo, dst *gpu.TextureRegion, cycle bool) {
	tb, ok := src.TransferBuffer.Ref().(*transferBuffer)
	if !ok {
		return
	}
	t, ok := dst.Slice.Texture.Ref().(*texture)
	if !ok {
		return
	}
	blockSize := t.format.TexelBlockSize()
	pitch := src.ImagePitch
	if pitch == 0 {
		pitch = dst.W
	}
	rowPitch := (pitch*blockSize + _D3D12_TEXTURE_DATA_PITCH_ALIGNMENT - 1) &^
		(_D3D12_TEXTURE_DATA_PITCH_ALIGNMENT - 1)
	srcLoc := _D3D12_TEXTURE_COPY_LOCATION_PLACED{
		PResource: tb.resource,
		Type:      _D3D12_TEXTURE_COPY_TYPE_PLACED_FOOTPRINT,
		PlacedFootprint: _D3D12_PLACED_SUBRESOURCE_FOOTPRINT{
			Offset: uint64(src.Offset),
			Footprint: _D3D12_SUBRESOURCE_FOOTPRINT{
				Format:   t.desc.Format,
				Width:    uint32(dst.W),
				Height:   uint32(dst.H),
				Depth:    uint32(max(dst.D, 1)),
				RowPitch: uint32(rowPitch),
			},
		},
	}
	dstLoc := _D3D12_TEXTURE_COPY_LOCATION_SUBRESOURCE{
		PResource:        t.resource,
		Type:             _D3D12_TEXTURE_COPY_TYPE_SUBRESOURCE_INDEX,
		SubresourceIndex: uint32(dst.Slice.MipLevel) + uint32(dst.Slice.Layer)*uint32(t.desc.MipLevels),
	}
	cb.list.CopyTextureRegion(unsafe.Pointer(&dstLoc), uint32(dst.X), uint32(dst.Y), uint32(dst.Z),
		unsafe.Pointer(&srcLoc), nil)
}

// UploadToBuffer implements gpu.CommandBufferRef.
func (cb *commandBuffer) UploadToBuffer(src *gpu.TransferBufferLocation, dst *gpu.BufferRegion, cycle bool) {
	tb, ok := src.TransferBuffer.Ref().(*transferBuffer)
	if !ok {
		return
	}
	b, ok := dst.Buffer.Ref().(*buffer)
	if !ok {
		return
	}
	cb.list.CopyBufferRegion(b.resource, uint64(dst.Offset), tb.resource, uint64(src.Offset), uint64(dst.Size))
}

// CopyTextureToTexture implements gpu.CommandBufferRef.
func (cb *commandBuffer) CopyTextureToTexture(src, dst *gpu.TextureLocation, w, h, d int, cycle bool) {
	st, ok := src.Slice.Texture.Ref().(*texture)
	if !ok {
		return
	}
	dt, ok := dst.Slice.Texture.Ref().(*texture)
	if !ok {
		return
	}
	srcLoc := _D3D12_TEXTURE_COPY_LOCATION_SUBRESOURCE{
		PResource:        st.resource,
		Type:             _D3D12_TEXTURE_COPY_TYPE_SUBRESOURCE_INDEX,
		SubresourceIndex: uint32(src.Slice.MipLevel) + uint32(src.Slice.Layer)*uint32(st.desc.MipLevels),
	}
	dstLoc := _D3D12_TEXTURE_COPY_LOCATION_SUBRESOURCE{
		PResource:        dt.resource,
		Type:             _D3D12_TEXTURE_COPY_TYPE_SUBRESOURCE_INDEX,
		SubresourceIndex: uint32(dst.Slice.MipLevel) + uint32(dst.Slice.Layer)*uint32(dt.desc.MipLevels),
	}
	box := _D3D12_BOX{
		Left:   uint32(src.X),
		Top:    uint32(src.Y),
		Front:  uint32(src.Z),
		Right:  uint32(src.X + w),
		Bottom: uint32(src.Y + h),
		Back:   uint32(src.Z + max(d, 1)),
	}
	cb.list.CopyTextureRegion(unsafe.Pointer(&dstLoc), uint32(dst.X), uint32(dst.Y), uint32(dst.Z),
		unsafe.Pointer(&srcLoc), &box)
}

// CopyBufferToBuffer implements gpu.CommandBufferRef.
func (cb *commandBuffer) CopyBufferToBuffer(src, dst *gpu.BufferLocation, size int, cycle bool) {
	sb, ok := src.Buffer.Ref().(*buffer)
	if !ok {
		return
	}
	db, ok := dst.Buffer.Ref().(*buffer)
	if !ok {
		return
	}
	cb.list.CopyBufferRegion(db.resource, uint64(dst.Offset), sb.resource, uint64(src.Offset), uint64(size))
}

// GenerateMipmaps implements gpu.CommandBufferRef.
// Downsampling needs a blit/compute path this back-end
// does not carry.
func (cb *commandBuffer) GenerateMipmaps(gpu.TextureRef) {
	log.Print("[!] d3d12: mipmap generation is not supported")
}

// DownloadFromTexture implements gpu.CommandBufferRef.
func (cb *commandBuffer) DownloadFromTexture(src *gpu.TextureRegion, dst *gpu.TextureTransferInfo) {
	t, ok := src.Slice.Texture.Ref().(*texture)
	if !ok {
		return
	}
	tb, ok := dst.TransferBuffer.Ref().(*transferBuffer)
	if !ok {
		return
	}
	blockSize := t.format.TexelBlockSize()
	pitch := dst.ImagePitch
	if pitch == 0 {
		pitch = src.W
	}
	rowPitch := (pitch*blockSize + _D3D12_TEXTURE_DATA_PITCH_ALIGNMENT - 1) &^
		(_D3D12_TEXTURE_DATA_PITCH_ALIGNMENT - 1)
	srcLoc := _D3D12_TEXTURE_COPY_LOCATION_SUBRESOURCE{
		PResource:        t.resource,
		Type:             _D3D12_TEXTURE_COPY_TYPE_SUBRESOURCE_INDEX,
		SubresourceIndex: uint32(src.Slice.MipLevel) + uint32(src.Slice.Layer)*uint32(t.desc.MipLevels),
	}
	dstLoc := _D3D12_TEXTURE_COPY_LOCATION_PLACED{
		PResource: tb.resource,
		Type:      _D3D12_TEXTURE_COPY_TYPE_PLACED_FOOTPRINT,
		PlacedFootprint: _D3D12_PLACED_SUBRESOURCE_FOOTPRINT{
			Offset: uint64(dst.Offset),
			Footprint: _D3D12_SUBRESOURCE_FOOTPRINT{
				Format:   t.desc.Format,
				Width:    uint32(src.W),
				Height:   uint32(src.H),
				Depth:    uint32(max(src.D, 1)),
				RowPitch: uint32(rowPitch),
			},
		},
	}
	box := _D3D12_BOX{
		Left:   uint32(src.X),
		Top:    uint32(src.Y),
		Front:  uint32(src.Z),
		Right:  uint32(src.X + src.W),
		Bottom: uint32(src.Y + src.H),
		Back:   uint32(src.Z + max(src.D, 1)),
	}
	cb.list.CopyTextureRegion(unsafe.Pointer(&dstLoc), 0, 0, 0, unsafe.Pointer(&srcLoc), &box)
}

// DownloadFromBuffer implements gpu.CommandBufferRef.
func (cb *commandBuffer) DownloadFromBuffer(src *gpu.BufferRegion, dst *gpu.TransferBufferLocation) {
	sb, ok := src.Buffer.Ref().(*buffer)
	if !ok {
		return
	}
	tb, ok := dst.TransferBuffer.Ref().(*transferBuffer)
	if !ok {
		return
	}
	cb.list.CopyBufferRegion(tb.resource, uint64(dst.Offset), sb.resource, uint64(src.Offset), uint64(src.Size))
}

// EndCopyPass implements gpu.CommandBufferRef.
func (cb *commandBuffer) EndCopyPass() {}

// Blit implements gpu.CommandBufferRef.
// Only 1:1 copies between same-format textures are
// handled; scaling needs a render path.
func (cb *commandBuffer) Blit(src, dst *gpu.TextureRegion, filter gpu.Filter, cycle bool) {
	if src.W != dst.W || src.H != dst.H ||
		src.Slice.Texture.Info().Format != dst.Slice.Texture.Info().Format {
		log.Print("[!] d3d12: scaled or converting blits are not supported")
		return
	}
	cb.CopyTextureToTexture(
		&gpu.TextureLocation{Slice: src.Slice, X: src.X, Y: src.Y, Z: src.Z},
		&gpu.TextureLocation{Slice: dst.Slice, X: dst.X, Y: dst.Y, Z: dst.Z},
		src.W, src.H, src.D, cycle)
}

/* Swapchain */

// windowData is the per-claimed-window record.
type windowData struct {
	win       wsi.Window
	swapchain *iDXGISwapChain3

	presentMode gpu.PresentMode
	composition gpu.SwapchainComposition
	format      _DXGI_FORMAT
	colorSpace  _DXGI_COLOR_SPACE_TYPE

	rtvHeap        *iD3D12DescriptorHeap
	renderTargets  [swapchainBufferCount]*iD3D12Resource
	renderTextures [swapchainBufferCount]*texture
	frameCounter   int

	active bool
}

func fetchWindowData(win wsi.Window) *windowData {
	wd, _ := win.Props().Get(windowProp).(*windowData)
	return wd
}

// SupportsSwapchainComposition implements gpu.Renderer.
func (r *renderer) SupportsSwapchainComposition(win wsi.Window, c gpu.SwapchainComposition) bool {
	return c >= gpu.CompositionSDR && c <= gpu.CompositionHDR10
}

// SupportsPresentMode implements gpu.Renderer.
// Immediate presentation needs tearing support; mailbox
// does not map to DXGI flip-discard.
func (r *renderer) SupportsPresentMode(win wsi.Window, m gpu.PresentMode) bool {
	switch m {
	case gpu.PresentVsync:
		return true
	case gpu.PresentImmediate:
		return r.supportsTearing
	}
	return false
}

// ClaimWindow implements gpu.Renderer.
func (r *renderer) ClaimWindow(win wsi.Window, c gpu.SwapchainComposition, m gpu.PresentMode) error {
	if fetchWindowData(win) != nil {
		log.Print("[!] d3d12: window already claimed")
		return errors.New("d3d12: window already claimed")
	}
	wd := &windowData{win: win}
	if err := r.createSwapchain(wd, c, m); err != nil {
		log.Print("[!] d3d12: could not create swapchain, failed to claim window")
		return err
	}
	win.Props().Set(windowProp, wd)
	return nil
}

func (r *renderer) createSwapchain(wd *windowData, c gpu.SwapchainComposition, m gpu.PresentMode) error {
	hwnd := windows.HWND(wd.win.Props().Pointer(wsi.PropWin32HWND))
	if hwnd == 0 {
		return errors.New("d3d12: window has no native handle")
	}

	format := swapchainCompositionFormat[c]
	desc := _DXGI_SWAP_CHAIN_DESC1{
		Format:      format,
		SampleDesc:  _DXGI_SAMPLE_DESC{Count: 1},
		BufferUsage: _DXGI_USAGE_RENDER_TARGET_OUTPUT,
		BufferCount: swapchainBufferCount,
		Scaling:     _DXGI_SCALING_STRETCH,
		SwapEffect:  _DXGI_SWAP_EFFECT_FLIP_DISCARD,
		AlphaMode:   _DXGI_ALPHA_MODE_UNSPECIFIED,
	}
	if r.supportsTearing {
		desc.Flags = _DXGI_SWAP_CHAIN_FLAG_ALLOW_TEARING
	}
	fullscreen := _DXGI_SWAP_CHAIN_FULLSCREEN_DESC{Windowed: 1}

	sc1, err := r.factory.CreateSwapChainForHwnd(unsafe.Pointer(r.cmdBuf.queue), hwnd, &desc, &fullscreen)
	if err != nil {
		r.logError("could not create swapchain", err)
		return err
	}
	var sc3 *iDXGISwapChain3
	if err := sc1.QueryInterface(&iidIDXGISwapChain3, unsafe.Pointer(&sc3)); err != nil {
		sc1.Release()
		r.logError("could not create IDXGISwapChain3", err)
		return err
	}
	sc1.Release()

	colorSpace := swapchainCompositionColorSpace[c]
	support, err := sc3.CheckColorSpaceSupport(colorSpace)
	if err != nil || support&_DXGI_SWAP_CHAIN_COLOR_SPACE_SUPPORT_FLAG_PRESENT == 0 {
		sc3.Release()
		log.Print("[!] d3d12: requested colorspace is unsupported")
		return errors.New("d3d12: requested colorspace is unsupported")
	}
	if err := sc3.SetColorSpace1(colorSpace); err != nil {
		sc3.Release()
		return err
	}

	// Only the swapchain's parent factory can adjust the
	// window association; suppress the built-in Alt+Enter
	// handling there.
	var parent *iDXGIFactory1
	if err := sc3.GetParent(&iidIDXGIFactory1, unsafe.Pointer(&parent)); err != nil {
		log.Printf("[!] d3d12: could not get swapchain parent: %v", err)
	} else {
		if err := parent.MakeWindowAssociation(hwnd, _DXGI_MWA_NO_WINDOW_CHANGES); err != nil {
			log.Printf("[!] d3d12: MakeWindowAssociation failed: %v", err)
		}
		parent.Release()
	}

	wd.swapchain = sc3
	wd.presentMode = m
	wd.composition = c
	wd.format = format
	wd.colorSpace = colorSpace
	wd.frameCounter = 0

	// Under a flip model the swapchain cannot be created
	// sRGB; the render-target view carries the sRGB format
	// instead.
	rtvFormat := format
	if c == gpu.CompositionSDRLinear {
		rtvFormat = _DXGI_FORMAT_B8G8R8A8_UNORM_SRGB
	}
	if err := r.initSwapchainTextures(wd, rtvFormat); err != nil {
		r.destroyWindowData(wd)
		return err
	}
	return nil
}

func (r *renderer) initSwapchainTextures(wd *windowData, rtvFormat _DXGI_FORMAT) error {
	heapDesc := _D3D12_DESCRIPTOR_HEAP_DESC{
		Type:           _D3D12_DESCRIPTOR_HEAP_TYPE_RTV,
		NumDescriptors: swapchainBufferCount,
	}
	heap, err := r.device.CreateDescriptorHeap(&heapDesc)
	if err != nil {
		r.logError("could not create swapchain RTV heap", err)
		return err
	}
	wd.rtvHeap = heap
	increment := r.device.GetDescriptorHandleIncrementSize(_D3D12_DESCRIPTOR_HEAP_TYPE_RTV)
	handle := heap.GetCPUDescriptorHandleForHeapStart()

	for i := 0; i < swapchainBufferCount; i++ {
		back, err := wd.swapchain.GetBuffer(uint32(i))
		if err != nil {
			r.logError("could not get swapchain buffer", err)
			return err
		}
		wd.renderTargets[i] = back
		rtvDesc := _D3D12_RENDER_TARGET_VIEW_DESC{
			Format:        rtvFormat,
			ViewDimension: _D3D12_RTV_DIMENSION_TEXTURE2D,
		}
		r.device.CreateRenderTargetView(back, &rtvDesc, handle)
		wd.renderTextures[i] = &texture{
			rend:           r,
			resource:       back,
			desc:           back.GetDesc(),
			format:         swapchainTextureFormat(wd.format),
			rtvHandle:      handle,
			isRenderTarget: true,
			windowOwned:    true,
		}
		handle.Offset(1, increment)
	}
	return nil
}

func swapchainTextureFormat(f _DXGI_FORMAT) gpu.TextureFormat {
	switch f {
	case _DXGI_FORMAT_B8G8R8A8_UNORM:
		return gpu.TexFmtBGRA8
	case _DXGI_FORMAT_B8G8R8A8_UNORM_SRGB:
		return gpu.TexFmtBGRA8sRGB
	case _DXGI_FORMAT_R16G16B16A16_FLOAT:
		return gpu.TexFmtRGBA16f
	case _DXGI_FORMAT_R10G10B10A2_UNORM:
		return gpu.TexFmtRGB10A2
	}
	return gpu.TexFmtInvalid
}

func (r *renderer) destroyWindowData(wd *windowData) {
	for i := swapchainBufferCount - 1; i >= 0; i-- {
		if t := wd.renderTextures[i]; t != nil {
			wd.renderTextures[i] = nil
			t.resource = nil
		}
		if res := wd.renderTargets[i]; res != nil {
			wd.renderTargets[i] = nil
			res.Release()
		}
	}
	if wd.rtvHeap != nil {
		wd.rtvHeap.Release()
		wd.rtvHeap = nil
	}
	if wd.swapchain != nil {
		wd.swapchain.Release()
		wd.swapchain = nil
	}
}

// UnclaimWindow implements gpu.Renderer.
func (r *renderer) UnclaimWindow(win wsi.Window) {
	wd := fetchWindowData(win)
	if wd == nil {
		log.Print("[!] d3d12: window already unclaimed")
		return
	}
	r.destroyWindowData(wd)
	win.Props().Clear(windowProp)
}

// SetSwapchainParameters implements gpu.Renderer.
func (r *renderer) SetSwapchainParameters(win wsi.Window, c gpu.SwapchainComposition, m gpu.PresentMode) error {
	wd := fetchWindowData(win)
	if wd == nil {
		return errors.New("d3d12: window has not been claimed")
	}
	if wd.composition == c {
		wd.presentMode = m
		return nil
	}
	// A composition change rebuilds the swapchain.
	r.destroyWindowData(wd)
	return r.createSwapchain(wd, c, m)
}

// SwapchainTextureFormat implements gpu.Renderer.
func (r *renderer) SwapchainTextureFormat(win wsi.Window) (gpu.TextureFormat, error) {
	wd := fetchWindowData(win)
	if wd == nil {
		return gpu.TexFmtInvalid, errors.New("d3d12: window has not been claimed")
	}
	return swapchainTextureFormat(wd.format), nil
}

// AcquireSwapchainTexture implements gpu.CommandBufferRef.
func (cb *commandBuffer) AcquireSwapchainTexture(win wsi.Window) (gpu.TextureRef, gpu.TextureInfo, error) {
	wd := fetchWindowData(win)
	if wd == nil {
		return nil, gpu.TextureInfo{}, errors.New("d3d12: window has not been claimed")
	}
	if !wd.active {
		wd.active = true
		cb.activeWindows = append(cb.activeWindows, wd)
	}
	t := wd.renderTextures[wd.frameCounter]
	info := gpu.TextureInfo{
		Format:      t.format,
		Type:        gpu.Texture2D,
		Width:       int(t.desc.Width),
		Height:      int(t.desc.Height),
		Depth:       1,
		LayerCount:  1,
		LevelCount:  1,
		SampleCount: gpu.Samples1,
		Usage:       gpu.TexUsageColorTarget,
	}
	return t, info, nil
}

/* Submission */

func (cb *commandBuffer) submit() error {
	var firstErr error

	if err := cb.list.Close(); err != nil {
		cb.rend.logError("could not close command list", err)
		firstErr = err
	} else {
		cb.queue.ExecuteCommandLists([]*iD3D12GraphicsCommandList{cb.list})
	}

	// Present and unlink the active-window chain.
	for _, wd := range cb.activeWindows {
		wd.active = false
		sync, flags := uint32(1), uint32(0)
		if wd.presentMode == gpu.PresentImmediate && cb.rend.supportsTearing {
			sync, flags = 0, _DXGI_PRESENT_ALLOW_TEARING
		}
		if err := wd.swapchain.Present(sync, flags); err != nil {
			log.Printf("[!] d3d12: present failed: %v", err)
		}
		wd.frameCounter = int(wd.swapchain.GetCurrentBackBufferIndex())
	}
	cb.activeWindows = cb.activeWindows[:0]

	// The fence value advances on every submission attempt,
	// signal failure included.
	fenceToWaitFor := cb.fenceValue
	if err := cb.queue.Signal(cb.fence, cb.fenceValue); err != nil {
		cb.rend.logError("could not signal command queue", err)
		if firstErr == nil {
			firstErr = err
		}
	}
	cb.fenceValue++

	if cb.fence.GetCompletedValue() < fenceToWaitFor {
		if err := cb.fence.SetEventOnCompletion(fenceToWaitFor, cb.fenceEvent); err == nil {
			windows.WaitForSingleObject(cb.fenceEvent, windows.INFINITE)
		}
	}

	// Submission completion: recycle leases and rings.
	cb.rend.returnUniformBuffers(cb.usedUniformBuffers)
	cb.usedUniformBuffers = cb.usedUniformBuffers[:0]
	for i := range cb.uniforms {
		cb.uniforms[i] = uniformSlot{}
	}
	cb.viewHeap.reset()
	cb.samplerHeap.reset()
	cb.graphicsPipeline = nil
	cb.computePipeline = nil

	if err := cb.allocator.Reset(); err != nil {
		cb.rend.logError("could not reset command allocator", err)
		if firstErr == nil {
			firstErr = err
		}
	}
	if err := cb.list.Reset(cb.allocator); err != nil {
		cb.rend.logError("could not reset command list", err)
		if firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Submit implements gpu.CommandBufferRef.
func (cb *commandBuffer) Submit() error {
	return cb.submit()
}

// SubmitAndAcquireFence implements gpu.CommandBufferRef.
func (cb *commandBuffer) SubmitAndAcquireFence() (gpu.FenceRef, error) {
	value := cb.fenceValue
	err := cb.submit()
	return &fence{value: value}, err
}
