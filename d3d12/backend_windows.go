// Copyright 2024 Gustavo C. Viegas. All rights reserved.

//go:build windows

package d3d12

import (
	"errors"
	"fmt"
	"log"
	"unsafe"

	"golang.org/x/sys/windows"

	"gviegas/gpu"
	"gviegas/gpu/internal/bitm"
)

// renderer implements gpu.Renderer over D3D12.
type renderer struct {
	debugMode       bool
	supportsTearing bool

	debug   *iD3D12Debug
	factory *iDXGIFactory4
	adapter *iDXGIAdapter1
	device  *iD3D12Device

	cmdBuf *commandBuffer

	// Uniform-buffer free list; leased buffers return here
	// on submission completion, up to uniformBufferPool
	// entries.
	uniformPool []*uniformBuffer
}

func openDevice(debugMode, preferLowPower bool) (gpu.Renderer, error) {
	r := &renderer{debugMode: debugMode}

	if debugMode {
		if d, err := d3d12GetDebugInterface(); err == nil {
			r.debug = d
			d.EnableDebugLayer()
		} else {
			log.Printf("[!] d3d12: could not get debug interface")
		}
	}

	factory1, err := createDXGIFactory1()
	if err != nil {
		r.destroy()
		return nil, err
	}
	if err := factory1.QueryInterface(&iidIDXGIFactory4, unsafe.Pointer(&r.factory)); err != nil {
		factory1.Release()
		r.destroy()
		return nil, fmt.Errorf("d3d12: DXGI 1.4 support not found: %w", err)
	}
	factory1.Release()

	// Explicit tearing support.
	var factory5 *iDXGIFactory5
	if err := r.factory.QueryInterface(&iidIDXGIFactory5, unsafe.Pointer(&factory5)); err == nil {
		var allow int32
		if factory5.CheckFeatureSupport(_DXGI_FEATURE_PRESENT_ALLOW_TEARING,
			unsafe.Pointer(&allow), unsafe.Sizeof(allow)) == nil {
			r.supportsTearing = allow != 0
		}
		factory5.Release()
	}

	// Adapter selection honors the power preference when
	// DXGI 1.6 is available.
	var factory6 *iDXGIFactory6
	if err := r.factory.QueryInterface(&iidIDXGIFactory6, unsafe.Pointer(&factory6)); err == nil {
		pref := uint32(_DXGI_GPU_PREFERENCE_HIGH_PERFORMANCE)
		if preferLowPower {
			pref = _DXGI_GPU_PREFERENCE_MINIMUM_POWER
		}
		r.adapter, err = factory6.EnumAdapterByGpuPreference(0, pref)
		factory6.Release()
		if err != nil {
			r.destroy()
			return nil, err
		}
	} else if r.adapter, err = r.factory.EnumAdapters1(0); err != nil {
		r.destroy()
		return nil, err
	}

	var desc _DXGI_ADAPTER_DESC1
	if err := r.adapter.GetDesc1(&desc); err == nil {
		log.Printf("d3d12: using adapter '%s'", windows.UTF16ToString(desc.Description[:]))
	}

	if err := d3d12CreateDevice(r.adapter, _D3D_FEATURE_LEVEL_11_1, &r.device); err != nil {
		r.destroy()
		return nil, err
	}

	cb, err := newCommandBuffer(r)
	if err != nil {
		r.destroy()
		return nil, err
	}
	r.cmdBuf = cb
	return r, nil
}

func (r *renderer) destroy() {
	if r.cmdBuf != nil {
		r.cmdBuf.destroy()
		r.cmdBuf = nil
	}
	for _, ub := range r.uniformPool {
		ub.destroy()
	}
	r.uniformPool = nil
	if r.device != nil {
		r.device.Release()
		r.device = nil
	}
	if r.adapter != nil {
		r.adapter.Release()
		r.adapter = nil
	}
	if r.factory != nil {
		r.factory.Release()
		r.factory = nil
	}
	if r.debug != nil {
		r.debug.Release()
		r.debug = nil
	}
}

// Destroy implements gpu.Renderer.
func (r *renderer) Destroy() { r.destroy() }

// logError logs a human-readable diagnostic for a native
// failure, resolving device-removed reasons.
func (r *renderer) logError(op string, err error) {
	if r.device != nil {
		if res := r.device.GetDeviceRemovedReason(); failed(res) {
			log.Printf("[!] d3d12: %s: %v (device removed: 0x%08X)", op, err, uint32(res))
			return
		}
	}
	log.Printf("[!] d3d12: %s: %v", op, err)
}

// SupportsTextureFormat implements gpu.Renderer.
func (r *renderer) SupportsTextureFormat(f gpu.TextureFormat, t gpu.TextureType, u gpu.TextureUsage) bool {
	if f < 0 || int(f) >= len(convTextureFormat) {
		return false
	}
	if f.IsDepthStencil() {
		// Depth formats serve depth/stencil attachment and
		// sampling only.
		return u&(gpu.TexUsageColorTarget|gpu.TexUsageComputeStorageWrite) == 0
	}
	if u&gpu.TexUsageDepthStencilTarget != 0 {
		return false
	}
	if f.IsInteger() && u&gpu.TexUsageSampler != 0 {
		return false
	}
	switch f {
	case gpu.TexFmtBC1, gpu.TexFmtBC2, gpu.TexFmtBC3, gpu.TexFmtBC7,
		gpu.TexFmtBC3sRGB, gpu.TexFmtBC7sRGB:
		// Block-compressed formats cannot be rendered to
		// or written from compute.
		return u&(gpu.TexUsageColorTarget|gpu.TexUsageComputeStorageWrite) == 0 &&
			t != gpu.Texture3D
	}
	return true
}

// BestSampleCount implements gpu.Renderer.
func (r *renderer) BestSampleCount(f gpu.TextureFormat, want gpu.SampleCount) gpu.SampleCount {
	if want > gpu.Samples8 {
		return gpu.Samples8
	}
	return want
}

/* Resources */

type texture struct {
	rend     *renderer
	resource *iD3D12Resource
	desc     _D3D12_RESOURCE_DESC
	format   gpu.TextureFormat

	rtvHeap   *iD3D12DescriptorHeap
	rtvHandle _D3D12_CPU_DESCRIPTOR_HANDLE
	dsvHeap   *iD3D12DescriptorHeap
	dsvHandle _D3D12_CPU_DESCRIPTOR_HANDLE

	isRenderTarget bool
	// Swapchain back buffers are owned by their window
	// data; Destroy must leave the resource alone.
	windowOwned bool
}

// Destroy implements gpu.Destroyer.
func (t *texture) Destroy() {
	if t == nil {
		return
	}
	if t.rtvHeap != nil {
		t.rtvHeap.Release()
		t.rtvHeap = nil
	}
	if t.dsvHeap != nil {
		t.dsvHeap.Release()
		t.dsvHeap = nil
	}
	if t.resource != nil && !t.windowOwned {
		t.resource.Release()
	}
	t.resource = nil
}

type buffer struct {
	rend     *renderer
	resource *iD3D12Resource
	size     int
	gpuAddr  uint64
}

// Destroy implements gpu.Destroyer.
func (b *buffer) Destroy() {
	if b == nil || b.resource == nil {
		return
	}
	b.resource.Release()
	b.resource = nil
}

type transferBuffer struct {
	rend     *renderer
	resource *iD3D12Resource
	usage    gpu.TransferBufferUsage
	size     int
	mapped   []byte
}

// Destroy implements gpu.Destroyer.
func (b *transferBuffer) Destroy() {
	if b == nil || b.resource == nil {
		return
	}
	if b.mapped != nil {
		b.resource.Unmap(0)
		b.mapped = nil
	}
	b.resource.Release()
	b.resource = nil
}

type sampler struct {
	desc _D3D12_SAMPLER_DESC
}

// Destroy implements gpu.Destroyer.
// Samplers hold no native object; descriptors are created
// into shader-visible heaps at bind time.
func (s *sampler) Destroy() {}

type shader struct {
	bytecode            []byte
	stage               gpu.ShaderStage
	samplerCount        int
	uniformBufferCount  int
	storageBufferCount  int
	storageTextureCount int
}

// Destroy implements gpu.Destroyer.
func (s *shader) Destroy() {
	if s == nil {
		return
	}
	s.bytecode = nil
}

// vertexStride records the byte stride of one vertex
// buffer slot of a pipeline's input layout.
type vertexStride struct {
	slot   int
	stride uint32
}

type graphicsPipeline struct {
	pso           *iD3D12PipelineState
	rootSignature *iD3D12RootSignature
	layout        rootSignatureLayout
	primitiveType gpu.PrimitiveType
	vertexStrides []vertexStride

	blendConstants [4]float32
	stencilRef     uint32

	vertexSamplerCount        int
	vertexUniformBufferCount  int
	vertexStorageBufferCount  int
	vertexStorageTextureCount int

	fragmentSamplerCount        int
	fragmentUniformBufferCount  int
	fragmentStorageBufferCount  int
	fragmentStorageTextureCount int
}

// Destroy implements gpu.Destroyer.
func (p *graphicsPipeline) Destroy() {
	if p == nil {
		return
	}
	if p.pso != nil {
		p.pso.Release()
		p.pso = nil
	}
	if p.rootSignature != nil {
		p.rootSignature.Release()
		p.rootSignature = nil
	}
}

type computePipeline struct {
	pso           *iD3D12PipelineState
	rootSignature *iD3D12RootSignature
	layout        rootSignatureLayout
	uniformBufferCount int
}

// Destroy implements gpu.Destroyer.
func (p *computePipeline) Destroy() {
	if p == nil {
		return
	}
	if p.pso != nil {
		p.pso.Release()
		p.pso = nil
	}
	if p.rootSignature != nil {
		p.rootSignature.Release()
		p.rootSignature = nil
	}
}

type fence struct {
	value uint64
}

// CreateTexture implements gpu.Renderer.
func (r *renderer) CreateTexture(info *gpu.TextureInfo) (gpu.TextureRef, error) {
	desc := _D3D12_RESOURCE_DESC{
		Dimension:        _D3D12_RESOURCE_DIMENSION_TEXTURE2D,
		Width:            uint64(info.Width),
		Height:           uint32(info.Height),
		DepthOrArraySize: uint16(info.LayerCount),
		MipLevels:        uint16(info.LevelCount),
		Format:           convTextureFormat[info.Format],
		SampleDesc:       _DXGI_SAMPLE_DESC{Count: uint32(convSampleCount[info.SampleCount]), Quality: 0},
		Layout:           _D3D12_TEXTURE_LAYOUT_UNKNOWN,
	}
	if info.Type == gpu.Texture3D {
		desc.Dimension = _D3D12_RESOURCE_DIMENSION_TEXTURE3D
		desc.DepthOrArraySize = uint16(info.Depth)
	}
	if info.Usage&gpu.TexUsageColorTarget != 0 {
		desc.Flags |= _D3D12_RESOURCE_FLAG_ALLOW_RENDER_TARGET
	}
	if info.Usage&gpu.TexUsageDepthStencilTarget != 0 {
		desc.Flags |= _D3D12_RESOURCE_FLAG_ALLOW_DEPTH_STENCIL
	}
	if info.Usage&gpu.TexUsageComputeStorageWrite != 0 {
		desc.Flags |= _D3D12_RESOURCE_FLAG_ALLOW_UNORDERED_ACCESS
	}
	heap := _D3D12_HEAP_PROPERTIES{
		Type:             _D3D12_HEAP_TYPE_DEFAULT,
		CreationNodeMask: 1,
		VisibleNodeMask:  1,
	}
	resource, err := r.device.CreateCommittedResource(&heap, _D3D12_HEAP_FLAG_NONE, &desc,
		_D3D12_RESOURCE_STATE_COMMON)
	if err != nil {
		r.logError("could not create texture", err)
		return nil, err
	}
	t := &texture{
		rend:     r,
		resource: resource,
		desc:     desc,
		format:   info.Format,
	}
	if info.Usage&gpu.TexUsageColorTarget != 0 {
		if err := r.initTextureRTV(t); err != nil {
			t.Destroy()
			return nil, err
		}
	}
	if info.Usage&gpu.TexUsageDepthStencilTarget != 0 {
		if err := r.initTextureDSV(t); err != nil {
			t.Destroy()
			return nil, err
		}
	}
	return t, nil
}

func (r *renderer) initTextureRTV(t *texture) error {
	heapDesc := _D3D12_DESCRIPTOR_HEAP_DESC{
		Type:           _D3D12_DESCRIPTOR_HEAP_TYPE_RTV,
		NumDescriptors: 1,
	}
	heap, err := r.device.CreateDescriptorHeap(&heapDesc)
	if err != nil {
		r.logError("could not create RTV heap", err)
		return err
	}
	t.rtvHeap = heap
	t.rtvHandle = heap.GetCPUDescriptorHandleForHeapStart()
	rtvDesc := _D3D12_RENDER_TARGET_VIEW_DESC{
		Format:        t.desc.Format,
		ViewDimension: _D3D12_RTV_DIMENSION_TEXTURE2D,
	}
	r.device.CreateRenderTargetView(t.resource, &rtvDesc, t.rtvHandle)
	t.isRenderTarget = true
	return nil
}

func (r *renderer) initTextureDSV(t *texture) error {
	heapDesc := _D3D12_DESCRIPTOR_HEAP_DESC{
		Type:           _D3D12_DESCRIPTOR_HEAP_TYPE_DSV,
		NumDescriptors: 1,
	}
	heap, err := r.device.CreateDescriptorHeap(&heapDesc)
	if err != nil {
		r.logError("could not create DSV heap", err)
		return err
	}
	t.dsvHeap = heap
	t.dsvHandle = heap.GetCPUDescriptorHandleForHeapStart()
	r.device.CreateDepthStencilView(t.resource, t.dsvHandle)
	t.isRenderTarget = true
	return nil
}

func bufferResourceDesc(size int, flags _D3D12_RESOURCE_FLAGS) _D3D12_RESOURCE_DESC {
	return _D3D12_RESOURCE_DESC{
		Dimension:        _D3D12_RESOURCE_DIMENSION_BUFFER,
		Width:            uint64(size),
		Height:           1,
		DepthOrArraySize: 1,
		MipLevels:        1,
		Format:           _DXGI_FORMAT_UNKNOWN,
		SampleDesc:       _DXGI_SAMPLE_DESC{Count: 1},
		Layout:           _D3D12_TEXTURE_LAYOUT_ROW_MAJOR,
		Flags:            flags,
	}
}

// CreateBuffer implements gpu.Renderer.
func (r *renderer) CreateBuffer(usage gpu.BufferUsage, size int) (gpu.BufferRef, error) {
	flags := _D3D12_RESOURCE_FLAG_NONE
	if usage&gpu.BufUsageComputeStorageWrite != 0 {
		flags |= _D3D12_RESOURCE_FLAG_ALLOW_UNORDERED_ACCESS
	}
	heap := _D3D12_HEAP_PROPERTIES{
		Type:             _D3D12_HEAP_TYPE_DEFAULT,
		CreationNodeMask: 1,
		VisibleNodeMask:  1,
	}
	desc := bufferResourceDesc(size, flags)
	resource, err := r.device.CreateCommittedResource(&heap, _D3D12_HEAP_FLAG_NONE, &desc,
		_D3D12_RESOURCE_STATE_COMMON)
	if err != nil {
		r.logError("could not create buffer", err)
		return nil, err
	}
	return &buffer{
		rend:     r,
		resource: resource,
		size:     size,
		gpuAddr:  resource.GetGPUVirtualAddress(),
	}, nil
}

// CreateTransferBuffer implements gpu.Renderer.
// Upload buffers live on the UPLOAD heap in GENERIC_READ;
// download buffers on the READBACK heap in COPY_DEST. Both
// stay persistently mapped.
func (r *renderer) CreateTransferBuffer(usage gpu.TransferBufferUsage, size int) (gpu.TransferBufferRef, error) {
	heap := _D3D12_HEAP_PROPERTIES{
		Type:             _D3D12_HEAP_TYPE_UPLOAD,
		CreationNodeMask: 1,
		VisibleNodeMask:  1,
	}
	state := _D3D12_RESOURCE_STATE_GENERIC_READ
	if usage == gpu.TransferDownload {
		heap.Type = _D3D12_HEAP_TYPE_READBACK
		state = _D3D12_RESOURCE_STATE_COPY_DEST
	}
	desc := bufferResourceDesc(size, _D3D12_RESOURCE_FLAG_NONE)
	resource, err := r.device.CreateCommittedResource(&heap, _D3D12_HEAP_FLAG_NONE, &desc, state)
	if err != nil {
		r.logError("could not create transfer buffer", err)
		return nil, err
	}
	p, err := resource.Map(0, nil)
	if err != nil {
		r.logError("could not map transfer buffer", err)
		resource.Release()
		return nil, err
	}
	return &transferBuffer{
		rend:     r,
		resource: resource,
		usage:    usage,
		size:     size,
		mapped:   unsafe.Slice((*byte)(p), size),
	}, nil
}

// CreateSampler implements gpu.Renderer.
func (r *renderer) CreateSampler(info *gpu.SamplerInfo) (gpu.SamplerRef, error) {
	desc := _D3D12_SAMPLER_DESC{
		Filter:        convFilter(info.MinFilter, info.MagFilter, info.MipmapFilter, info.AnisotropyEnable),
		AddressU:      convAddressMode[info.AddressModeU],
		AddressV:      convAddressMode[info.AddressModeV],
		AddressW:      convAddressMode[info.AddressModeW],
		MipLODBias:    info.MipLodBias,
		MaxAnisotropy: uint32(info.MaxAnisotropy),
		MinLOD:        info.MinLod,
		MaxLOD:        info.MaxLod,
	}
	if info.CompareEnable {
		desc.ComparisonFunc = convCompareOp[info.CompareOp]
	} else {
		desc.ComparisonFunc = _D3D12_COMPARISON_FUNC_ALWAYS
	}
	return &sampler{desc: desc}, nil
}

// CreateShader implements gpu.Renderer.
// HLSL source is compiled with the stage's SM 5.1 profile;
// DXBC blobs are copied verbatim.
func (r *renderer) CreateShader(info *gpu.ShaderInfo) (gpu.ShaderRef, error) {
	bytecode, err := r.shaderBytecode(info.Stage, info.Format, info.Code, info.EntryPoint)
	if err != nil {
		return nil, err
	}
	return &shader{
		bytecode:            bytecode,
		stage:               info.Stage,
		samplerCount:        info.SamplerCount,
		uniformBufferCount:  info.UniformBufferCount,
		storageBufferCount:  info.StorageBufferCount,
		storageTextureCount: info.StorageTextureCount,
	}, nil
}

func (r *renderer) shaderBytecode(stage gpu.ShaderStage, format gpu.ShaderFormat, code []byte, entryPoint string) ([]byte, error) {
	switch format {
	case gpu.ShaderFmtHLSL:
		blob, errorBlob, err := d3dCompile(code, entryPoint, shaderProfiles[stage])
		if err != nil {
			if errorBlob != nil {
				log.Printf("[!] d3d12: %s", errorBlob.String())
				errorBlob.Release()
			}
			return nil, err
		}
		if errorBlob != nil {
			errorBlob.Release()
		}
		bytecode := blob.Bytes()
		blob.Release()
		return bytecode, nil
	case gpu.ShaderFmtDXBC:
		return append([]byte(nil), code...), nil
	}
	return nil, errors.New("d3d12: incompatible shader format")
}

// createRootSignature serializes and creates a native root
// signature for the given layout.
func (r *renderer) createRootSignature(layout rootSignatureLayout) (*iD3D12RootSignature, error) {
	ranges := make([]_D3D12_DESCRIPTOR_RANGE, len(layout.Params))
	params := make([]_D3D12_ROOT_PARAMETER, len(layout.Params))
	for i, p := range layout.Params {
		ranges[i] = _D3D12_DESCRIPTOR_RANGE{
			RangeType:                         p.RangeType,
			NumDescriptors:                    uint32(p.Count),
			BaseShaderRegister:                0,
			RegisterSpace:                     0,
			OffsetInDescriptorsFromTableStart: _D3D12_DESCRIPTOR_RANGE_OFFSET_APPEND,
		}
		params[i] = _D3D12_ROOT_PARAMETER{
			ParameterType: _D3D12_ROOT_PARAMETER_TYPE_DESCRIPTOR_TABLE,
			DescriptorTable: _D3D12_ROOT_DESCRIPTOR_TABLE{
				NumDescriptorRanges: 1,
				PDescriptorRanges:   &ranges[i],
			},
			ShaderVisibility: _D3D12_SHADER_VISIBILITY_ALL,
		}
	}
	desc := _D3D12_ROOT_SIGNATURE_DESC{
		NumParameters: uint32(len(params)),
		Flags:         _D3D12_ROOT_SIGNATURE_FLAG_ALLOW_INPUT_ASSEMBLER_INPUT_LAYOUT,
	}
	if len(params) > 0 {
		desc.PParameters = &params[0]
	}
	blob, errorBlob, err := d3d12SerializeRootSignature(&desc)
	if err != nil {
		if errorBlob != nil {
			log.Printf("[!] d3d12: failed to serialize root signature: %s", errorBlob.String())
			errorBlob.Release()
		}
		return nil, err
	}
	if errorBlob != nil {
		errorBlob.Release()
	}
	rs, err := r.device.CreateRootSignature(blob.GetBufferPointer(), blob.GetBufferSize())
	blob.Release()
	if err != nil {
		r.logError("could not create root signature", err)
		return nil, err
	}
	return rs, nil
}

// CreateGraphicsPipeline implements gpu.Renderer.
func (r *renderer) CreateGraphicsPipeline(info *gpu.GraphicsPipelineInfo) (gpu.GraphicsPipelineRef, error) {
	vert, ok := info.VertexShader.Ref().(*shader)
	if !ok {
		return nil, errors.New("d3d12: foreign vertex shader")
	}
	frag, ok := info.FragmentShader.Ref().(*shader)
	if !ok {
		return nil, errors.New("d3d12: foreign fragment shader")
	}

	samplers, uniforms, storageBufs, storageTexs := graphicsSignatureCounts(
		vert.samplerCount, vert.uniformBufferCount, vert.storageBufferCount, vert.storageTextureCount,
		frag.samplerCount, frag.uniformBufferCount, frag.storageBufferCount, frag.storageTextureCount)
	layout, err := makeRootSignatureLayout(samplers, uniforms, storageBufs, storageTexs)
	if err != nil {
		return nil, err
	}
	rootSig, err := r.createRootSignature(layout)
	if err != nil {
		return nil, err
	}

	inter, err := convPipelineState(info)
	if err != nil {
		rootSig.Release()
		return nil, err
	}

	desc := _D3D12_GRAPHICS_PIPELINE_STATE_DESC{
		PRootSignature: rootSig,
		VS: _D3D12_SHADER_BYTECODE{
			PShaderBytecode: &vert.bytecode[0],
			BytecodeLength:  uintptr(len(vert.bytecode)),
		},
		PS: _D3D12_SHADER_BYTECODE{
			PShaderBytecode: &frag.bytecode[0],
			BytecodeLength:  uintptr(len(frag.bytecode)),
		},
		BlendState:            convertBlendDesc(&inter.Blend),
		SampleMask:            ^uint32(0),
		RasterizerState:       convertRasterizerDesc(&inter.Rasterizer),
		DepthStencilState:     convertDepthStencilDesc(&inter.DepthStencil),
		PrimitiveTopologyType: inter.PrimitiveTopology,
		NumRenderTargets:      uint32(len(inter.RTVFormats)),
		DSVFormat:             inter.DSVFormat,
		SampleDesc:            _DXGI_SAMPLE_DESC{Count: uint32(inter.SampleCount)},
	}
	copy(desc.RTVFormats[:], inter.RTVFormats)

	// Semantic-name strings must outlive the creation call.
	var semantics [][]byte
	var elems []_D3D12_INPUT_ELEMENT_DESC
	if len(inter.InputLayout) > 0 {
		elems = make([]_D3D12_INPUT_ELEMENT_DESC, len(inter.InputLayout))
		for i, e := range inter.InputLayout {
			name := append([]byte(e.SemanticName), 0)
			semantics = append(semantics, name)
			elems[i] = _D3D12_INPUT_ELEMENT_DESC{
				SemanticName:         &name[0],
				SemanticIndex:        e.SemanticIndex,
				Format:               e.Format,
				InputSlot:            e.InputSlot,
				AlignedByteOffset:    e.AlignedByteOffset,
				InputSlotClass:       e.InputSlotClass,
				InstanceDataStepRate: e.InstanceDataStepRate,
			}
		}
		desc.InputLayout = _D3D12_INPUT_LAYOUT_DESC{
			PInputElementDescs: &elems[0],
			NumElements:        uint32(len(elems)),
		}
	}

	pso, err := r.device.CreateGraphicsPipelineState(&desc)
	if err != nil {
		r.logError("could not create graphics pipeline state", err)
		rootSig.Release()
		return nil, err
	}
	_ = semantics

	strides := make([]vertexStride, len(info.VertexInput.Bindings))
	for i, b := range info.VertexInput.Bindings {
		strides[i] = vertexStride{slot: b.Binding, stride: uint32(b.Stride)}
	}

	return &graphicsPipeline{
		pso:            pso,
		rootSignature:  rootSig,
		layout:         layout,
		primitiveType:  info.Primitive,
		vertexStrides:  strides,
		blendConstants: info.BlendConstants,
		stencilRef:     info.DepthStencil.Reference,

		vertexSamplerCount:        vert.samplerCount,
		vertexUniformBufferCount:  vert.uniformBufferCount,
		vertexStorageBufferCount:  vert.storageBufferCount,
		vertexStorageTextureCount: vert.storageTextureCount,

		fragmentSamplerCount:        frag.samplerCount,
		fragmentUniformBufferCount:  frag.uniformBufferCount,
		fragmentStorageBufferCount:  frag.storageBufferCount,
		fragmentStorageTextureCount: frag.storageTextureCount,
	}, nil
}

// CreateComputePipeline implements gpu.Renderer.
func (r *renderer) CreateComputePipeline(info *gpu.ComputePipelineInfo) (gpu.ComputePipelineRef, error) {
	bytecode, err := r.shaderBytecode(gpu.StageCompute, info.Format, info.Code, info.EntryPoint)
	if err != nil {
		return nil, err
	}
	layout, err := makeRootSignatureLayout(0, info.UniformBufferCount,
		info.ReadOnlyStorageBufferCount+info.ReadWriteStorageBufferCount,
		info.ReadOnlyStorageTextureCount+info.ReadWriteStorageTextureCount)
	if err != nil {
		return nil, err
	}
	rootSig, err := r.createRootSignature(layout)
	if err != nil {
		return nil, err
	}
	desc := _D3D12_COMPUTE_PIPELINE_STATE_DESC{
		PRootSignature: rootSig,
		CS: _D3D12_SHADER_BYTECODE{
			PShaderBytecode: &bytecode[0],
			BytecodeLength:  uintptr(len(bytecode)),
		},
	}
	pso, err := r.device.CreateComputePipelineState(&desc)
	if err != nil {
		r.logError("could not create compute pipeline state", err)
		rootSig.Release()
		return nil, err
	}
	return &computePipeline{
		pso:                pso,
		rootSignature:      rootSig,
		layout:             layout,
		uniformBufferCount: info.UniformBufferCount,
	}, nil
}

// SetBufferName implements gpu.Renderer.
func (r *renderer) SetBufferName(ref gpu.BufferRef, name string) {
	if b, ok := ref.(*buffer); ok && b.resource != nil {
		b.resource.SetName(name)
	}
}

// SetTextureName implements gpu.Renderer.
func (r *renderer) SetTextureName(ref gpu.TextureRef, name string) {
	if t, ok := ref.(*texture); ok && t.resource != nil {
		t.resource.SetName(name)
	}
}

// AcquireCommandBuffer implements gpu.Renderer.
func (r *renderer) AcquireCommandBuffer() (gpu.CommandBufferRef, error) {
	return r.cmdBuf, nil
}

// MapTransferBuffer implements gpu.Renderer.
func (r *renderer) MapTransferBuffer(ref gpu.TransferBufferRef, cycle bool) ([]byte, error) {
	b, ok := ref.(*transferBuffer)
	if !ok {
		return nil, errors.New("d3d12: not a transfer buffer")
	}
	return b.mapped, nil
}

// UnmapTransferBuffer implements gpu.Renderer.
// Transfer buffers stay persistently mapped.
func (r *renderer) UnmapTransferBuffer(gpu.TransferBufferRef) {}

/* Uniform ring */

// uniformBuffer is a pooled, host-visible ring segment
// suballocated in 256-byte blocks.
type uniformBuffer struct {
	resource *iD3D12Resource
	mapped   []byte
	gpuAddr  uint64

	blocks      bitm.Bitm[uint32]
	writeOffset int
	drawOffset  int
}

func (ub *uniformBuffer) destroy() {
	if ub == nil || ub.resource == nil {
		return
	}
	ub.resource.Unmap(0)
	ub.resource.Release()
	ub.resource = nil
}

// reset returns the ring to its empty state for reuse.
func (ub *uniformBuffer) reset() {
	ub.blocks.Clear()
	ub.writeOffset = 0
	ub.drawOffset = 0
}

// alloc leases size bytes from the ring, rounded up to
// whole blocks. It returns -1 when the ring is full.
func (ub *uniformBuffer) alloc(size int) int {
	nblocks := (size + uniformBlockSize - 1) / uniformBlockSize
	start := -1
	for i := 0; i < nblocks; i++ {
		idx := ub.blocks.Search()
		if idx < 0 {
			return -1
		}
		ub.blocks.Set(idx)
		if start < 0 {
			start = idx
		}
	}
	return start * uniformBlockSize
}

func (r *renderer) createUniformBuffer() (*uniformBuffer, error) {
	heap := _D3D12_HEAP_PROPERTIES{
		Type:             _D3D12_HEAP_TYPE_UPLOAD,
		CreationNodeMask: 1,
		VisibleNodeMask:  1,
	}
	desc := bufferResourceDesc(uniformBufferSize, _D3D12_RESOURCE_FLAG_NONE)
	resource, err := r.device.CreateCommittedResource(&heap, _D3D12_HEAP_FLAG_NONE, &desc,
		_D3D12_RESOURCE_STATE_GENERIC_READ)
	if err != nil {
		r.logError("could not create uniform buffer", err)
		return nil, err
	}
	p, err := resource.Map(0, nil)
	if err != nil {
		r.logError("could not map uniform buffer", err)
		resource.Release()
		return nil, err
	}
	ub := &uniformBuffer{
		resource: resource,
		mapped:   unsafe.Slice((*byte)(p), uniformBufferSize),
		gpuAddr:  resource.GetGPUVirtualAddress(),
	}
	ub.blocks.Grow(uniformBufferSize / uniformBlockSize / 32)
	return ub, nil
}

// acquireUniformBuffer leases a ring from the pool,
// allocating when the pool is dry.
func (r *renderer) acquireUniformBuffer() (*uniformBuffer, error) {
	if n := len(r.uniformPool); n > 0 {
		ub := r.uniformPool[n-1]
		r.uniformPool = r.uniformPool[:n-1]
		return ub, nil
	}
	return r.createUniformBuffer()
}

// returnUniformBuffers puts leased rings back in the pool
// until it holds uniformBufferPool rings; the rest are
// destroyed. It is called on submission completion.
func (r *renderer) returnUniformBuffers(used []*uniformBuffer) {
	for _, ub := range used {
		ub.reset()
		if len(r.uniformPool) < uniformBufferPool {
			r.uniformPool = append(r.uniformPool, ub)
		} else {
			ub.destroy()
		}
	}
}

/* Synchronization */

// Wait implements gpu.Renderer.
func (r *renderer) Wait() error {
	cb := r.cmdBuf
	value := cb.fenceValue - 1
	if cb.fence.GetCompletedValue() >= value {
		return nil
	}
	if err := cb.fence.SetEventOnCompletion(value, cb.fenceEvent); err != nil {
		return err
	}
	_, err := windows.WaitForSingleObject(cb.fenceEvent, windows.INFINITE)
	if err != nil {
		return err
	}
	return nil
}

// WaitForFences implements gpu.Renderer.
func (r *renderer) WaitForFences(waitAll bool, fences []gpu.FenceRef) error {
	cb := r.cmdBuf
	if !waitAll {
		// Completion is monotonic on a single queue, so
		// waiting on the smallest value waits on "any".
		var least *fence
		for _, ref := range fences {
			f, ok := ref.(*fence)
			if !ok {
				continue
			}
			if least == nil || f.value < least.value {
				least = f
			}
		}
		if least == nil {
			return nil
		}
		fences = []gpu.FenceRef{least}
	}
	for _, ref := range fences {
		f, ok := ref.(*fence)
		if !ok {
			continue
		}
		if cb.fence.GetCompletedValue() >= f.value {
			continue
		}
		if err := cb.fence.SetEventOnCompletion(f.value, cb.fenceEvent); err != nil {
			return err
		}
		if _, err := windows.WaitForSingleObject(cb.fenceEvent, windows.INFINITE); err != nil {
			return err
		}
	}
	return nil
}

// QueryFence implements gpu.Renderer.
func (r *renderer) QueryFence(ref gpu.FenceRef) bool {
	f, ok := ref.(*fence)
	if !ok {
		return false
	}
	return r.cmdBuf.fence.GetCompletedValue() >= f.value
}

// ReleaseFence implements gpu.Renderer.
// Fences are value snapshots; nothing is pooled natively.
func (r *renderer) ReleaseFence(gpu.FenceRef) {}
