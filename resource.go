// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package gpu

import (
	"log"

	"gviegas/gpu/wsi"
)

// Texture is a GPU image resource.
// Swapchain textures are borrowed views owned by their
// claimed window; they remain valid until the window is
// unclaimed.
type Texture struct {
	ref  TextureRef
	info TextureInfo
}

// Ref returns the opaque back-end handle.
func (t *Texture) Ref() TextureRef { return t.ref }

// Info returns the creation info of the texture.
func (t *Texture) Info() TextureInfo { return t.info }

// Buffer is a device-local GPU buffer.
// Device buffers are not mappable; data moves through
// transfer buffers in copy passes.
type Buffer struct {
	ref   BufferRef
	usage BufferUsage
	size  int
}

// Ref returns the opaque back-end handle.
func (b *Buffer) Ref() BufferRef { return b.ref }

// Usage returns the buffer's usage flags.
func (b *Buffer) Usage() BufferUsage { return b.usage }

// Size returns the buffer's size in bytes.
func (b *Buffer) Size() int { return b.size }

// TransferBuffer is a host-visible staging buffer.
type TransferBuffer struct {
	ref   TransferBufferRef
	usage TransferBufferUsage
	size  int
}

// Ref returns the opaque back-end handle.
func (b *TransferBuffer) Ref() TransferBufferRef { return b.ref }

// Usage returns the transfer direction.
func (b *TransferBuffer) Usage() TransferBufferUsage { return b.usage }

// Size returns the buffer's size in bytes.
func (b *TransferBuffer) Size() int { return b.size }

// Sampler is an immutable filter/address-mode descriptor.
type Sampler struct {
	ref SamplerRef
}

// Ref returns the opaque back-end handle.
func (s *Sampler) Ref() SamplerRef { return s.ref }

// Shader is an opaque compiled shader blob tagged by stage
// and the resource counts it expects.
type Shader struct {
	ref                 ShaderRef
	stage               ShaderStage
	samplerCount        int
	storageTextureCount int
	storageBufferCount  int
	uniformBufferCount  int
}

// Ref returns the opaque back-end handle.
func (s *Shader) Ref() ShaderRef { return s.ref }

// Stage returns the shader's pipeline stage.
func (s *Shader) Stage() ShaderStage { return s.stage }

// SamplerCount returns the number of samplers the shader
// expects bound.
func (s *Shader) SamplerCount() int { return s.samplerCount }

// StorageTextureCount returns the number of storage
// textures the shader expects bound.
func (s *Shader) StorageTextureCount() int { return s.storageTextureCount }

// StorageBufferCount returns the number of storage buffers
// the shader expects bound.
func (s *Shader) StorageBufferCount() int { return s.storageBufferCount }

// UniformBufferCount returns the number of uniform buffers
// the shader expects bound.
func (s *Shader) UniformBufferCount() int { return s.uniformBufferCount }

// GraphicsPipeline is the compiled bundle of shaders and
// fixed-function state for rasterization.
type GraphicsPipeline struct {
	ref GraphicsPipelineRef
}

// Ref returns the opaque back-end handle.
func (p *GraphicsPipeline) Ref() GraphicsPipelineRef { return p.ref }

// ComputePipeline is a compiled compute shader with its
// resource interface.
type ComputePipeline struct {
	ref ComputePipelineRef
}

// Ref returns the opaque back-end handle.
func (p *ComputePipeline) Ref() ComputePipelineRef { return p.ref }

// Fence is a synchronization primitive signaled when the
// GPU completes a submission.
type Fence struct {
	ref FenceRef
}

// CreateTexture creates a new texture.
// Under debug mode the creation info is validated against
// the invariants of the texture's type.
func (d *Device) CreateTexture(info *TextureInfo) (*Texture, error) {
	if info == nil {
		return nil, invalidParam("info")
	}
	if d.debugMode {
		if err := d.validateTexture(info); err != nil {
			return nil, err
		}
	}
	ref, err := d.rend.CreateTexture(info)
	if err != nil {
		return nil, err
	}
	return &Texture{ref: ref, info: *info}, nil
}

func (d *Device) validateTexture(info *TextureInfo) error {
	if info.Width <= 0 || info.Height <= 0 || info.Depth <= 0 {
		return validationErr("for any texture: width, height, and depth must be >= 1")
	}
	if info.LayerCount <= 0 {
		return validationErr("for any texture: layerCount must be >= 1")
	}
	if info.LevelCount <= 0 {
		return validationErr("for any texture: levelCount must be >= 1")
	}
	if info.Usage&TexUsageGraphicsStorageRead != 0 && info.Usage&TexUsageSampler != 0 {
		return validationErr("for any texture: usage cannot contain both GraphicsStorageRead and Sampler")
	}
	if info.Format.IsInteger() && info.Usage&TexUsageSampler != 0 {
		return validationErr("for any texture: usage cannot contain Sampler for integer formats")
	}
	switch info.Type {
	case TextureCube:
		if info.Width != info.Height {
			return validationErr("for cube textures: width and height must be identical")
		}
		if info.Width > MaxTextureSize2D || info.Height > MaxTextureSize2D {
			return validationErr("for cube textures: width and height must be <= 16384")
		}
		if info.Depth > 1 {
			return validationErr("for cube textures: depth must be 1")
		}
		if info.LayerCount != 6 {
			return validationErr("for cube textures: layerCount must be 6")
		}
		if info.SampleCount > Samples1 {
			return validationErr("for cube textures: sampleCount must be Samples1")
		}
		if !d.SupportsTextureFormat(info.Format, TextureCube, info.Usage) {
			return validationErr("for cube textures: the format is unsupported for the given usage")
		}
	case Texture3D:
		if info.Width > MaxTextureSize3D || info.Height > MaxTextureSize3D || info.Depth > MaxTextureSize3D {
			return validationErr("for 3D textures: width, height, and depth must be <= 2048")
		}
		if info.Usage&TexUsageDepthStencilTarget != 0 {
			return validationErr("for 3D textures: usage must not contain DepthStencilTarget")
		}
		if info.LayerCount > 1 {
			return validationErr("for 3D textures: layerCount must be 1")
		}
		if info.SampleCount > Samples1 {
			return validationErr("for 3D textures: sampleCount must be Samples1")
		}
		if !d.SupportsTextureFormat(info.Format, Texture3D, info.Usage) {
			return validationErr("for 3D textures: the format is unsupported for the given usage")
		}
	case Texture2DArray:
		if info.Usage&TexUsageDepthStencilTarget != 0 {
			return validationErr("for array textures: usage must not contain DepthStencilTarget")
		}
		if info.SampleCount > Samples1 {
			return validationErr("for array textures: sampleCount must be Samples1")
		}
		if !d.SupportsTextureFormat(info.Format, Texture2D, info.Usage) {
			return validationErr("for array textures: the format is unsupported for the given usage")
		}
	default:
		if info.SampleCount > Samples1 && info.LevelCount > 1 {
			return validationErr("for 2D textures: if sampleCount is > Samples1, then levelCount must be 1")
		}
		if !d.SupportsTextureFormat(info.Format, Texture2D, info.Usage) {
			return validationErr("for 2D textures: the format is unsupported for the given usage")
		}
	}
	return nil
}

// CreateBuffer creates a new device buffer.
func (d *Device) CreateBuffer(info *BufferInfo) (*Buffer, error) {
	if info == nil {
		return nil, invalidParam("info")
	}
	ref, err := d.rend.CreateBuffer(info.Usage, info.Size)
	if err != nil {
		return nil, err
	}
	return &Buffer{ref: ref, usage: info.Usage, size: info.Size}, nil
}

// CreateTransferBuffer creates a new transfer buffer.
func (d *Device) CreateTransferBuffer(info *TransferBufferInfo) (*TransferBuffer, error) {
	if info == nil {
		return nil, invalidParam("info")
	}
	ref, err := d.rend.CreateTransferBuffer(info.Usage, info.Size)
	if err != nil {
		return nil, err
	}
	return &TransferBuffer{ref: ref, usage: info.Usage, size: info.Size}, nil
}

// CreateSampler creates a new sampler.
func (d *Device) CreateSampler(info *SamplerInfo) (*Sampler, error) {
	if info == nil {
		return nil, invalidParam("info")
	}
	ref, err := d.rend.CreateSampler(info)
	if err != nil {
		return nil, err
	}
	return &Sampler{ref: ref}, nil
}

// CreateShader creates a new shader from a compiled blob
// or, where the back-end supports it, from source text.
func (d *Device) CreateShader(info *ShaderInfo) (*Shader, error) {
	if info == nil {
		return nil, invalidParam("info")
	}
	if len(info.Code) == 0 {
		return nil, invalidParam("info.Code")
	}
	if d.debugMode {
		if info.Format&d.shaderFormats == 0 {
			return nil, validationErr("incompatible shader format for back-end")
		}
	}
	ref, err := d.rend.CreateShader(info)
	if err != nil {
		return nil, err
	}
	return &Shader{
		ref:                 ref,
		stage:               info.Stage,
		samplerCount:        info.SamplerCount,
		storageTextureCount: info.StorageTextureCount,
		storageBufferCount:  info.StorageBufferCount,
		uniformBufferCount:  info.UniformBufferCount,
	}, nil
}

// CreateGraphicsPipeline creates a new graphics pipeline.
//
// An unsupported depth-stencil format is swapped for its
// closest supported pair before delegation, with a logged
// warning.
func (d *Device) CreateGraphicsPipeline(info *GraphicsPipelineInfo) (*GraphicsPipeline, error) {
	if info == nil {
		return nil, invalidParam("info")
	}
	if info.VertexShader == nil || info.FragmentShader == nil {
		return nil, invalidParam("info: vertex and fragment shaders are required")
	}
	if info.Attachments.HasDepthStencil &&
		!d.SupportsTextureFormat(info.Attachments.DepthStencilFormat, Texture2D, TexUsageDepthStencilTarget) {
		var fallback TextureFormat
		switch info.Attachments.DepthStencilFormat {
		case TexFmtD24un:
			fallback = TexFmtD32f
		case TexFmtD32f:
			fallback = TexFmtD24un
		case TexFmtD24unS8ui:
			fallback = TexFmtD32fS8ui
		case TexFmtD32fS8ui:
			fallback = TexFmtD24unS8ui
		default:
			fallback = TexFmtD16un
		}
		log.Printf("[!] gpu: unsupported depth format %d, falling back to %d",
			info.Attachments.DepthStencilFormat, fallback)
		info.Attachments.DepthStencilFormat = fallback
	}
	ref, err := d.rend.CreateGraphicsPipeline(info)
	if err != nil {
		return nil, err
	}
	return &GraphicsPipeline{ref: ref}, nil
}

// CreateComputePipeline creates a new compute pipeline.
func (d *Device) CreateComputePipeline(info *ComputePipelineInfo) (*ComputePipeline, error) {
	if info == nil {
		return nil, invalidParam("info")
	}
	if d.debugMode {
		if info.Format&d.shaderFormats == 0 {
			return nil, validationErr("incompatible shader format for back-end")
		}
		if info.ReadWriteStorageTextureCount > MaxComputeWriteTextures {
			return nil, validationErr("compute pipeline read-write texture count cannot be higher than 8")
		}
		if info.ReadWriteStorageBufferCount > MaxComputeWriteBuffers {
			return nil, validationErr("compute pipeline read-write buffer count cannot be higher than 8")
		}
		if info.ThreadCountX <= 0 || info.ThreadCountY <= 0 || info.ThreadCountZ <= 0 {
			return nil, validationErr("compute pipeline thread count dimensions must be at least 1")
		}
	}
	ref, err := d.rend.CreateComputePipeline(info)
	if err != nil {
		return nil, err
	}
	return &ComputePipeline{ref: ref}, nil
}

// SetBufferName attaches a debug name to the buffer.
func (d *Device) SetBufferName(b *Buffer, name string) {
	if b == nil {
		warn("SetBufferName: nil buffer")
		return
	}
	d.rend.SetBufferName(b.ref, name)
}

// SetTextureName attaches a debug name to the texture.
func (d *Device) SetTextureName(t *Texture, name string) {
	if t == nil {
		warn("SetTextureName: nil texture")
		return
	}
	d.rend.SetTextureName(t.ref, name)
}

// ReleaseTexture releases the texture.
// Releasing nil has no effect.
func (d *Device) ReleaseTexture(t *Texture) {
	if t == nil || t.ref == nil {
		return
	}
	t.ref.Destroy()
	t.ref = nil
}

// ReleaseBuffer releases the buffer.
func (d *Device) ReleaseBuffer(b *Buffer) {
	if b == nil || b.ref == nil {
		return
	}
	b.ref.Destroy()
	b.ref = nil
}

// ReleaseTransferBuffer releases the transfer buffer.
func (d *Device) ReleaseTransferBuffer(b *TransferBuffer) {
	if b == nil || b.ref == nil {
		return
	}
	b.ref.Destroy()
	b.ref = nil
}

// ReleaseSampler releases the sampler.
func (d *Device) ReleaseSampler(s *Sampler) {
	if s == nil || s.ref == nil {
		return
	}
	s.ref.Destroy()
	s.ref = nil
}

// ReleaseShader releases the shader and its bytecode.
func (d *Device) ReleaseShader(s *Shader) {
	if s == nil || s.ref == nil {
		return
	}
	s.ref.Destroy()
	s.ref = nil
}

// ReleaseGraphicsPipeline releases the pipeline and its
// root objects.
func (d *Device) ReleaseGraphicsPipeline(p *GraphicsPipeline) {
	if p == nil || p.ref == nil {
		return
	}
	p.ref.Destroy()
	p.ref = nil
}

// ReleaseComputePipeline releases the pipeline.
func (d *Device) ReleaseComputePipeline(p *ComputePipeline) {
	if p == nil || p.ref == nil {
		return
	}
	p.ref.Destroy()
	p.ref = nil
}

// MapTransferBuffer maps the transfer buffer and returns
// its backing bytes. The slice remains valid until
// UnmapTransferBuffer. With cycle set, the back-end may
// substitute a fresh allocation when the buffer is still
// in use by pending GPU work.
func (d *Device) MapTransferBuffer(b *TransferBuffer, cycle bool) ([]byte, error) {
	if b == nil {
		return nil, invalidParam("b")
	}
	return d.rend.MapTransferBuffer(b.ref, cycle)
}

// UnmapTransferBuffer unmaps the transfer buffer.
func (d *Device) UnmapTransferBuffer(b *TransferBuffer) {
	if b == nil {
		warn("UnmapTransferBuffer: nil buffer")
		return
	}
	d.rend.UnmapTransferBuffer(b.ref)
}

// SupportsSwapchainComposition returns whether the window
// can present with the given composition.
func (d *Device) SupportsSwapchainComposition(win wsi.Window, c SwapchainComposition) bool {
	if win == nil {
		warn("SupportsSwapchainComposition: nil window")
		return false
	}
	return d.rend.SupportsSwapchainComposition(win, c)
}

// SupportsPresentMode returns whether the window can
// present with the given mode.
func (d *Device) SupportsPresentMode(win wsi.Window, m PresentMode) bool {
	if win == nil {
		warn("SupportsPresentMode: nil window")
		return false
	}
	return d.rend.SupportsPresentMode(win, m)
}

// ClaimWindow registers a swapchain for the window.
// A window can be claimed by at most one device at a time.
func (d *Device) ClaimWindow(win wsi.Window, c SwapchainComposition, m PresentMode) error {
	if win == nil {
		return invalidParam("win")
	}
	return d.rend.ClaimWindow(win, c, m)
}

// UnclaimWindow destroys the window's swapchain and
// returns its property bag to the pre-claim state.
func (d *Device) UnclaimWindow(win wsi.Window) {
	if win == nil {
		warn("UnclaimWindow: nil window")
		return
	}
	d.rend.UnclaimWindow(win)
}

// SetSwapchainParameters reconfigures the composition and
// present mode of a claimed window.
func (d *Device) SetSwapchainParameters(win wsi.Window, c SwapchainComposition, m PresentMode) error {
	if win == nil {
		return invalidParam("win")
	}
	return d.rend.SetSwapchainParameters(win, c, m)
}

// SwapchainTextureFormat returns the texture format of the
// window's swapchain.
func (d *Device) SwapchainTextureFormat(win wsi.Window) (TextureFormat, error) {
	if win == nil {
		return TexFmtInvalid, invalidParam("win")
	}
	return d.rend.SwapchainTextureFormat(win)
}
