// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package gpu

// TextureFormat describes the format of a texel.
type TextureFormat int32

// Texture formats.
const (
	TexFmtInvalid TextureFormat = -1

	// Unsigned normalized color.
	TexFmtRGBA8 TextureFormat = iota - 1
	TexFmtBGRA8
	TexFmtB5G6R5
	TexFmtB5G5R5A1
	TexFmtB4G4R4A4
	TexFmtRGB10A2
	TexFmtRG16
	TexFmtRGBA16
	TexFmtR8
	TexFmtA8
	// Compressed.
	TexFmtBC1
	TexFmtBC2
	TexFmtBC3
	TexFmtBC7
	// Signed normalized color.
	TexFmtRG8n
	TexFmtRGBA8n
	// Floating-point color.
	TexFmtR16f
	TexFmtRG16f
	TexFmtRGBA16f
	TexFmtR32f
	TexFmtRG32f
	TexFmtRGBA32f
	// Unsigned integer.
	TexFmtR8ui
	TexFmtRG8ui
	TexFmtRGBA8ui
	TexFmtR16ui
	TexFmtRG16ui
	TexFmtRGBA16ui
	// sRGB-encoded color.
	TexFmtRGBA8sRGB
	TexFmtBGRA8sRGB
	TexFmtBC3sRGB
	TexFmtBC7sRGB
	// Depth/stencil.
	TexFmtD16un
	TexFmtD24un
	TexFmtD32f
	TexFmtD24unS8ui
	TexFmtD32fS8ui

	numTextureFormats
)

// TexelBlockSize returns the size in bytes of a single texel
// block of format f, or 0 if f is not a valid format.
// For block-compressed formats this is the size of the whole
// 4x4 block.
func (f TextureFormat) TexelBlockSize() int {
	switch f {
	case TexFmtBC1:
		return 8
	case TexFmtBC2, TexFmtBC3, TexFmtBC7, TexFmtBC3sRGB, TexFmtBC7sRGB:
		return 16
	case TexFmtR8, TexFmtA8, TexFmtR8ui:
		return 1
	case TexFmtB5G6R5, TexFmtB5G5R5A1, TexFmtB4G4R4A4, TexFmtR16f,
		TexFmtRG8n, TexFmtRG8ui, TexFmtR16ui, TexFmtD16un:
		return 2
	case TexFmtRGBA8, TexFmtBGRA8, TexFmtRGBA8sRGB, TexFmtBGRA8sRGB,
		TexFmtR32f, TexFmtRG16f, TexFmtRGBA8n, TexFmtRGB10A2,
		TexFmtRGBA8ui, TexFmtRG16ui, TexFmtRG16, TexFmtD24un,
		TexFmtD32f, TexFmtD24unS8ui:
		return 4
	case TexFmtRGBA16f, TexFmtRGBA16, TexFmtRG32f, TexFmtRGBA16ui,
		TexFmtD32fS8ui:
		return 8
	case TexFmtRGBA32f:
		return 16
	}
	return 0
}

// IsInteger returns whether f is an unsigned integer format.
// Integer formats cannot be sampled.
func (f TextureFormat) IsInteger() bool {
	switch f {
	case TexFmtR8ui, TexFmtRG8ui, TexFmtRGBA8ui, TexFmtR16ui,
		TexFmtRG16ui, TexFmtRGBA16ui:
		return true
	}
	return false
}

// IsDepthStencil returns whether f has a depth and/or
// stencil aspect.
func (f TextureFormat) IsDepthStencil() bool {
	switch f {
	case TexFmtD16un, TexFmtD24un, TexFmtD32f, TexFmtD24unS8ui, TexFmtD32fS8ui:
		return true
	}
	return false
}

// TextureType describes the dimensionality of a texture.
type TextureType int

// Texture types.
const (
	Texture2D TextureType = iota
	Texture2DArray
	TextureCube
	Texture3D
)

// TextureUsage is a mask indicating valid uses for a texture.
type TextureUsage int

// Texture usage flags.
const (
	TexUsageSampler TextureUsage = 1 << iota
	TexUsageColorTarget
	TexUsageDepthStencilTarget
	TexUsageGraphicsStorageRead
	TexUsageComputeStorageRead
	TexUsageComputeStorageWrite
)

// SampleCount describes the number of samples per texel.
type SampleCount int

// Sample counts.
const (
	Samples1 SampleCount = iota
	Samples2
	Samples4
	Samples8
)

// Samples returns the numeric sample count.
func (s SampleCount) Samples() int { return 1 << s }

// BufferUsage is a mask indicating valid uses for a buffer.
type BufferUsage int

// Buffer usage flags.
const (
	BufUsageVertex BufferUsage = 1 << iota
	BufUsageIndex
	BufUsageIndirect
	BufUsageGraphicsStorageRead
	BufUsageComputeStorageRead
	BufUsageComputeStorageWrite
)

// TransferBufferUsage describes the direction of a
// transfer buffer.
type TransferBufferUsage int

// Transfer buffer usages.
const (
	TransferUpload TransferBufferUsage = iota
	TransferDownload
)

// ShaderStage identifies a programmable pipeline stage.
type ShaderStage int

// Shader stages.
const (
	StageVertex ShaderStage = iota
	StageFragment
	StageCompute
)

// ShaderFormat is a mask of shader code formats.
type ShaderFormat int

// Shader formats.
const (
	ShaderFmtPrivate ShaderFormat = 1 << iota
	ShaderFmtSPIRV
	ShaderFmtDXBC
	ShaderFmtDXIL
	ShaderFmtMSL
	ShaderFmtMetalLib
	ShaderFmtHLSL
)

// PrimitiveType describes how vertex data is assembled
// into primitives.
type PrimitiveType int

// Primitive types.
const (
	PrimPointList PrimitiveType = iota
	PrimLineList
	PrimLineStrip
	PrimTriangleList
	PrimTriangleStrip
)

// VertexCount returns the number of vertices that
// primitiveCount primitives of type p consume.
func (p PrimitiveType) VertexCount(primitiveCount int) int {
	switch p {
	case PrimPointList:
		return primitiveCount
	case PrimLineList:
		return primitiveCount * 2
	case PrimLineStrip:
		return primitiveCount + 1
	case PrimTriangleList:
		return primitiveCount * 3
	case PrimTriangleStrip:
		return primitiveCount + 2
	}
	return 0
}

// LoadOp is the action applied to an attachment at
// render pass begin.
type LoadOp int

// Load operations.
const (
	LoadOpLoad LoadOp = iota
	LoadOpClear
	LoadOpDontCare
)

// StoreOp is the action applied to an attachment at
// render pass end.
type StoreOp int

// Store operations.
const (
	StoreOpStore StoreOp = iota
	StoreOpDontCare
)

// IndexElementSize describes the width of index buffer
// elements.
type IndexElementSize int

// Index element sizes.
const (
	Index16 IndexElementSize = iota
	Index32
)

// BlendFactor is the type of blend factors.
type BlendFactor int

// Blend factors.
const (
	BlendFactorInvalid BlendFactor = -1

	BlendZero BlendFactor = iota - 1
	BlendOne
	BlendSrcColor
	BlendOneMinusSrcColor
	BlendDstColor
	BlendOneMinusDstColor
	BlendSrcAlpha
	BlendOneMinusSrcAlpha
	BlendDstAlpha
	BlendOneMinusDstAlpha
	BlendConstantColor
	BlendOneMinusConstantColor
	BlendSrcAlphaSaturate
)

// BlendOp is the type of blend operations.
type BlendOp int

// Blend operations.
const (
	BlendOpInvalid BlendOp = -1

	BlendOpAdd BlendOp = iota - 1
	BlendOpSubtract
	BlendOpRevSubtract
	BlendOpMin
	BlendOpMax
)

// ColorComponentFlags is a mask of color channels.
type ColorComponentFlags int

// Color components.
const (
	ColorCompR ColorComponentFlags = 1 << iota
	ColorCompG
	ColorCompB
	ColorCompA

	ColorCompAll ColorComponentFlags = 1<<iota - 1
)

// CompareOp is the type of comparison functions.
type CompareOp int

// Comparison functions.
const (
	CompareNever CompareOp = iota
	CompareLess
	CompareEqual
	CompareLessEqual
	CompareGreater
	CompareNotEqual
	CompareGreaterEqual
	CompareAlways
)

// StencilOp is the type of stencil operations.
type StencilOp int

// Stencil operations.
const (
	StencilKeep StencilOp = iota
	StencilZero
	StencilReplace
	StencilIncClamp
	StencilDecClamp
	StencilInvert
	StencilIncWrap
	StencilDecWrap
)

// CullMode determines primitive culling based on
// triangle facing.
type CullMode int

// Cull modes.
const (
	CullNone CullMode = iota
	CullFront
	CullBack
)

// FillMode determines the rasterization of triangles.
type FillMode int

// Fill modes.
const (
	FillModeFill FillMode = iota
	FillModeLine
)

// FrontFace determines the winding order of front-facing
// triangles.
type FrontFace int

// Front-face winding orders.
const (
	FrontFaceCCW FrontFace = iota
	FrontFaceCW
)

// VertexElementFormat describes the format of a vertex
// attribute.
type VertexElementFormat int

// Vertex element formats.
const (
	VertexFmtUint VertexElementFormat = iota
	VertexFmtFloat
	VertexFmtVector2
	VertexFmtVector3
	VertexFmtVector4
	VertexFmtColor
	VertexFmtByte4
	VertexFmtShort2
	VertexFmtShort4
	VertexFmtNormalizedShort2
	VertexFmtNormalizedShort4
	VertexFmtHalfVector2
	VertexFmtHalfVector4
)

// VertexInputRate determines whether vertex input advances
// per vertex or per instance.
type VertexInputRate int

// Vertex input rates.
const (
	RateVertex VertexInputRate = iota
	RateInstance
)

// Filter is the type of sampler filters.
type Filter int

// Filters.
const (
	FilterNearest Filter = iota
	FilterLinear
)

// SamplerAddressMode is the type of sampler address modes.
type SamplerAddressMode int

// Sampler address modes.
const (
	AddressRepeat SamplerAddressMode = iota
	AddressMirroredRepeat
	AddressClampToEdge
)

// PresentMode describes how presentation waits for the
// display.
type PresentMode int

// Present modes.
const (
	PresentVsync PresentMode = iota
	PresentImmediate
	PresentMailbox
)

// SwapchainComposition describes the format and color
// space of swapchain images.
type SwapchainComposition int

// Swapchain compositions.
const (
	CompositionSDR SwapchainComposition = iota
	CompositionSDRLinear
	CompositionHDRExtendedLinear
	CompositionHDR10
)

// Fixed limits honored uniformly by all back-ends.
const (
	// MaxColorTargets is the maximum number of color
	// attachments in a render pass.
	MaxColorTargets = 4

	// MaxComputeWriteTextures and MaxComputeWriteBuffers
	// bound the read-write bindings of a compute pass.
	MaxComputeWriteTextures = 8
	MaxComputeWriteBuffers  = 8

	// Maximum extents of 2D/cube and 3D textures.
	MaxTextureSize2D = 16384
	MaxTextureSize3D = 2048
)
