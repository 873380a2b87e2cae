// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package null implements the gpu SPI entirely in memory.
// The null driver accepts every shader format, records the
// commands it receives and "executes" submissions
// instantly. It is registered unselected, so devices only
// use it when created with the driver name "null".
// Tests and headless tooling are its intended consumers.
package null

import (
	"errors"

	"gviegas/gpu"
	"gviegas/gpu/wsi"
)

const driverName = "null"

// windowProp is the property under which claimed windows
// store their swapchain data.
const windowProp = "gpu.null.window"

const swapchainBufferCount = 2

// Driver implements gpu.Driver.
type Driver struct {
	last *Renderer
}

func init() {
	gpu.Register(&drv)
}

var drv Driver

// Last returns the most recently opened renderer.
// It is a test hook; it returns nil before the first
// device is created.
func Last() *Renderer { return drv.last }

// Claimed reports whether win currently carries a
// null-driver swapchain entry in its property bag.
func Claimed(win wsi.Window) bool { return win.Props().Has(windowProp) }

// Name returns the driver name.
func (*Driver) Name() string { return driverName }

// ShaderFormats returns every format; the null driver
// never inspects shader code.
func (*Driver) ShaderFormats() gpu.ShaderFormat {
	return gpu.ShaderFmtPrivate | gpu.ShaderFmtSPIRV | gpu.ShaderFmtDXBC |
		gpu.ShaderFmtDXIL | gpu.ShaderFmtMSL | gpu.ShaderFmtMetalLib |
		gpu.ShaderFmtHLSL
}

// Prepare always succeeds.
func (*Driver) Prepare() bool { return true }

// Unselected reports true: the null driver must be
// requested by name.
func (*Driver) Unselected() bool { return true }

// Open creates a new in-memory renderer.
func (d *Driver) Open(debugMode, preferLowPower bool) (gpu.Renderer, error) {
	r := &Renderer{debugMode: debugMode}
	r.cmdBuf = &CommandBuffer{rend: r}
	d.last = r
	return r, nil
}

// Draw records the parameters of one recorded draw call.
type Draw struct {
	VertexStart        int
	VertexCount        int
	VertexBufferOffset int
	Indexed            bool
}

// Renderer implements gpu.Renderer in memory.
type Renderer struct {
	debugMode bool
	cmdBuf    *CommandBuffer

	pipelineCount  int
	shaderCount    int
	samplerCount   int
	textureCount   int
	releasedCount  int
	acquiredFences int
	releasedFences int
	fenceValue     uint64
}

// PipelineCount returns the number of graphics pipelines
// created so far.
func (r *Renderer) PipelineCount() int { return r.pipelineCount }

// OutstandingFences returns the number of acquired fences
// not yet released.
func (r *Renderer) OutstandingFences() int { return r.acquiredFences - r.releasedFences }

// CmdBuf returns the renderer's command buffer.
func (r *Renderer) CmdBuf() *CommandBuffer { return r.cmdBuf }

// Destroy implements gpu.Renderer.
func (r *Renderer) Destroy() {}

// SupportsTextureFormat implements gpu.Renderer.
// Every valid format, block-compressed ones included, is
// supported for every use.
func (r *Renderer) SupportsTextureFormat(f gpu.TextureFormat, t gpu.TextureType, u gpu.TextureUsage) bool {
	return f.TexelBlockSize() != 0
}

// BestSampleCount implements gpu.Renderer.
func (r *Renderer) BestSampleCount(f gpu.TextureFormat, want gpu.SampleCount) gpu.SampleCount {
	return want
}

type texture struct{ info gpu.TextureInfo }

func (*texture) Destroy() {}

type buffer struct {
	usage gpu.BufferUsage
	data  []byte
}

func (*buffer) Destroy() {}

type transferBuffer struct {
	usage gpu.TransferBufferUsage
	data  []byte
}

func (*transferBuffer) Destroy() {}

type sampler struct{ info gpu.SamplerInfo }

func (*sampler) Destroy() {}

type shader struct{ info gpu.ShaderInfo }

func (*shader) Destroy() {}

type graphicsPipeline struct {
	primitive PrimType
	vertexUniformCount,
	fragmentUniformCount int
}

// PrimType aliases the portable primitive type for
// introspection by tests.
type PrimType = gpu.PrimitiveType

func (*graphicsPipeline) Destroy() {}

type computePipeline struct{ info gpu.ComputePipelineInfo }

func (*computePipeline) Destroy() {}

type fence struct{ value uint64 }

// CreateComputePipeline implements gpu.Renderer.
func (r *Renderer) CreateComputePipeline(info *gpu.ComputePipelineInfo) (gpu.ComputePipelineRef, error) {
	return &computePipeline{info: *info}, nil
}

// CreateGraphicsPipeline implements gpu.Renderer.
func (r *Renderer) CreateGraphicsPipeline(info *gpu.GraphicsPipelineInfo) (gpu.GraphicsPipelineRef, error) {
	r.pipelineCount++
	return &graphicsPipeline{
		primitive:            info.Primitive,
		vertexUniformCount:   info.VertexShader.UniformBufferCount(),
		fragmentUniformCount: info.FragmentShader.UniformBufferCount(),
	}, nil
}

// CreateSampler implements gpu.Renderer.
func (r *Renderer) CreateSampler(info *gpu.SamplerInfo) (gpu.SamplerRef, error) {
	r.samplerCount++
	return &sampler{info: *info}, nil
}

// CreateShader implements gpu.Renderer.
func (r *Renderer) CreateShader(info *gpu.ShaderInfo) (gpu.ShaderRef, error) {
	r.shaderCount++
	s := &shader{info: *info}
	s.info.Code = append([]byte(nil), info.Code...)
	return s, nil
}

// CreateTexture implements gpu.Renderer.
func (r *Renderer) CreateTexture(info *gpu.TextureInfo) (gpu.TextureRef, error) {
	r.textureCount++
	return &texture{info: *info}, nil
}

// CreateBuffer implements gpu.Renderer.
func (r *Renderer) CreateBuffer(usage gpu.BufferUsage, size int) (gpu.BufferRef, error) {
	return &buffer{usage: usage, data: make([]byte, size)}, nil
}

// CreateTransferBuffer implements gpu.Renderer.
func (r *Renderer) CreateTransferBuffer(usage gpu.TransferBufferUsage, size int) (gpu.TransferBufferRef, error) {
	return &transferBuffer{usage: usage, data: make([]byte, size)}, nil
}

// SetBufferName implements gpu.Renderer.
func (r *Renderer) SetBufferName(gpu.BufferRef, string) {}

// SetTextureName implements gpu.Renderer.
func (r *Renderer) SetTextureName(gpu.TextureRef, string) {}

// AcquireCommandBuffer implements gpu.Renderer.
func (r *Renderer) AcquireCommandBuffer() (gpu.CommandBufferRef, error) {
	cb := r.cmdBuf
	cb.Draws = cb.Draws[:0]
	cb.UploadedVertexBytes = 0
	return cb, nil
}

// MapTransferBuffer implements gpu.Renderer.
func (r *Renderer) MapTransferBuffer(ref gpu.TransferBufferRef, cycle bool) ([]byte, error) {
	b, ok := ref.(*transferBuffer)
	if !ok {
		return nil, errors.New("null: not a transfer buffer")
	}
	return b.data, nil
}

// UnmapTransferBuffer implements gpu.Renderer.
func (r *Renderer) UnmapTransferBuffer(gpu.TransferBufferRef) {}

// windowData is the per-claimed-window record.
type windowData struct {
	composition  gpu.SwapchainComposition
	presentMode  gpu.PresentMode
	textures     [swapchainBufferCount]*texture
	frameCounter int
	active       bool
}

func fetchWindowData(win wsi.Window) *windowData {
	wd, _ := win.Props().Get(windowProp).(*windowData)
	return wd
}

// SupportsSwapchainComposition implements gpu.Renderer.
func (r *Renderer) SupportsSwapchainComposition(win wsi.Window, c gpu.SwapchainComposition) bool {
	return true
}

// SupportsPresentMode implements gpu.Renderer.
func (r *Renderer) SupportsPresentMode(win wsi.Window, m gpu.PresentMode) bool {
	return true
}

// ClaimWindow implements gpu.Renderer.
func (r *Renderer) ClaimWindow(win wsi.Window, c gpu.SwapchainComposition, m gpu.PresentMode) error {
	if fetchWindowData(win) != nil {
		return errors.New("null: window already claimed")
	}
	wd := &windowData{composition: c, presentMode: m}
	info := gpu.TextureInfo{
		Format:      swapchainFormat(c),
		Type:        gpu.Texture2D,
		Width:       win.Width(),
		Height:      win.Height(),
		Depth:       1,
		LayerCount:  1,
		LevelCount:  1,
		SampleCount: gpu.Samples1,
		Usage:       gpu.TexUsageColorTarget,
	}
	for i := range wd.textures {
		wd.textures[i] = &texture{info: info}
	}
	win.Props().Set(windowProp, wd)
	return nil
}

func swapchainFormat(c gpu.SwapchainComposition) gpu.TextureFormat {
	switch c {
	case gpu.CompositionSDRLinear:
		return gpu.TexFmtBGRA8sRGB
	case gpu.CompositionHDRExtendedLinear:
		return gpu.TexFmtRGBA16f
	case gpu.CompositionHDR10:
		return gpu.TexFmtRGB10A2
	}
	return gpu.TexFmtBGRA8
}

// UnclaimWindow implements gpu.Renderer.
func (r *Renderer) UnclaimWindow(win wsi.Window) {
	win.Props().Clear(windowProp)
}

// SetSwapchainParameters implements gpu.Renderer.
func (r *Renderer) SetSwapchainParameters(win wsi.Window, c gpu.SwapchainComposition, m gpu.PresentMode) error {
	wd := fetchWindowData(win)
	if wd == nil {
		return errors.New("null: window has not been claimed")
	}
	wd.composition = c
	wd.presentMode = m
	return nil
}

// SwapchainTextureFormat implements gpu.Renderer.
func (r *Renderer) SwapchainTextureFormat(win wsi.Window) (gpu.TextureFormat, error) {
	wd := fetchWindowData(win)
	if wd == nil {
		return gpu.TexFmtInvalid, errors.New("null: window has not been claimed")
	}
	return swapchainFormat(wd.composition), nil
}

// FrameCounter returns the window's current back-buffer
// index, or -1 when the window is not claimed.
func (r *Renderer) FrameCounter(win wsi.Window) int {
	wd := fetchWindowData(win)
	if wd == nil {
		return -1
	}
	return wd.frameCounter
}

// Wait implements gpu.Renderer. Submissions complete
// instantly, so it has nothing to do.
func (r *Renderer) Wait() error { return nil }

// WaitForFences implements gpu.Renderer.
func (r *Renderer) WaitForFences(waitAll bool, fences []gpu.FenceRef) error { return nil }

// QueryFence implements gpu.Renderer.
func (r *Renderer) QueryFence(f gpu.FenceRef) bool {
	x, ok := f.(*fence)
	return ok && x.value <= r.fenceValue
}

// ReleaseFence implements gpu.Renderer.
func (r *Renderer) ReleaseFence(gpu.FenceRef) { r.releasedFences++ }
