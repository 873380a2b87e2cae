// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package gpu

// Viewport defines the bounds of a viewport.
type Viewport struct {
	X, Y, W, H float32
	MinDepth   float32
	MaxDepth   float32
}

// Rect defines an axis-aligned rectangle.
type Rect struct {
	X, Y, W, H int32
}

// Color is a normalized RGBA color.
type Color struct {
	R, G, B, A float32
}

// TextureInfo describes a texture to create.
type TextureInfo struct {
	Format      TextureFormat
	Type        TextureType
	Width       int
	Height      int
	Depth       int
	LayerCount  int
	LevelCount  int
	SampleCount SampleCount
	Usage       TextureUsage
}

// BufferInfo describes a device buffer to create.
type BufferInfo struct {
	Usage BufferUsage
	Size  int
}

// TransferBufferInfo describes a transfer buffer to create.
type TransferBufferInfo struct {
	Usage TransferBufferUsage
	Size  int
}

// SamplerInfo describes an immutable sampler to create.
type SamplerInfo struct {
	MinFilter        Filter
	MagFilter        Filter
	MipmapFilter     Filter
	AddressModeU     SamplerAddressMode
	AddressModeV     SamplerAddressMode
	AddressModeW     SamplerAddressMode
	MipLodBias       float32
	AnisotropyEnable bool
	MaxAnisotropy    int
	CompareEnable    bool
	CompareOp        CompareOp
	MinLod           float32
	MaxLod           float32
}

// ShaderInfo describes a shader to create.
// The resource counts declare what the shader expects to
// have bound; they participate in pipeline layout.
type ShaderInfo struct {
	Code                []byte
	EntryPoint          string
	Format              ShaderFormat
	Stage               ShaderStage
	SamplerCount        int
	StorageTextureCount int
	StorageBufferCount  int
	UniformBufferCount  int
}

// VertexBinding describes a vertex buffer slot.
type VertexBinding struct {
	Binding   int
	Stride    int
	InputRate VertexInputRate
	StepRate  int
}

// VertexAttribute describes a single vertex attribute.
type VertexAttribute struct {
	Location int
	Binding  int
	Format   VertexElementFormat
	Offset   int
}

// VertexInputState describes the vertex input layout of a
// graphics pipeline.
type VertexInputState struct {
	Bindings   []VertexBinding
	Attributes []VertexAttribute
}

// RasterizerState defines the rasterization state of a
// graphics pipeline.
type RasterizerState struct {
	FillMode          FillMode
	CullMode          CullMode
	FrontFace         FrontFace
	DepthBiasEnable   bool
	DepthBiasConstant float32
	DepthBiasClamp    float32
	DepthBiasSlope    float32
}

// MultisampleState defines the multisample state of a
// graphics pipeline.
type MultisampleState struct {
	Count SampleCount
	Mask  uint32
}

// StencilOpState defines the stencil operations of one
// triangle facing.
type StencilOpState struct {
	FailOp      StencilOp
	PassOp      StencilOp
	DepthFailOp StencilOp
	CompareOp   CompareOp
}

// DepthStencilState defines the depth/stencil state of a
// graphics pipeline.
type DepthStencilState struct {
	DepthTestEnable   bool
	DepthWriteEnable  bool
	CompareOp         CompareOp
	StencilTestEnable bool
	Front             StencilOpState
	Back              StencilOpState
	CompareMask       uint32
	WriteMask         uint32
	Reference         uint32
}

// ColorAttachmentBlendState defines one color attachment's
// blend parameters.
type ColorAttachmentBlendState struct {
	BlendEnable    bool
	SrcColorFactor BlendFactor
	DstColorFactor BlendFactor
	ColorOp        BlendOp
	SrcAlphaFactor BlendFactor
	DstAlphaFactor BlendFactor
	AlphaOp        BlendOp
	WriteMask      ColorComponentFlags
}

// ColorAttachmentDescription pairs an attachment format
// with its blend state.
type ColorAttachmentDescription struct {
	Format TextureFormat
	Blend  ColorAttachmentBlendState
}

// GraphicsPipelineAttachmentInfo describes the render
// targets a graphics pipeline renders into.
type GraphicsPipelineAttachmentInfo struct {
	ColorDescriptions     []ColorAttachmentDescription
	HasDepthStencil       bool
	DepthStencilFormat    TextureFormat
}

// GraphicsPipelineInfo describes a graphics pipeline to
// create.
type GraphicsPipelineInfo struct {
	VertexShader   *Shader
	FragmentShader *Shader
	VertexInput    VertexInputState
	Primitive      PrimitiveType
	Rasterizer     RasterizerState
	Multisample    MultisampleState
	DepthStencil   DepthStencilState
	Attachments    GraphicsPipelineAttachmentInfo
	BlendConstants [4]float32
}

// ComputePipelineInfo describes a compute pipeline to
// create.
type ComputePipelineInfo struct {
	Code                         []byte
	EntryPoint                   string
	Format                       ShaderFormat
	ReadOnlyStorageTextureCount  int
	ReadOnlyStorageBufferCount   int
	ReadWriteStorageTextureCount int
	ReadWriteStorageBufferCount  int
	UniformBufferCount           int
	ThreadCountX                 int
	ThreadCountY                 int
	ThreadCountZ                 int
}

// TextureSlice identifies a single mip level of a single
// layer of a texture.
type TextureSlice struct {
	Texture  *Texture
	MipLevel int
	Layer    int
}

// ColorAttachmentInfo describes one color target of a
// render pass.
type ColorAttachmentInfo struct {
	Slice      TextureSlice
	ClearColor Color
	LoadOp     LoadOp
	StoreOp    StoreOp
	Cycle      bool
}

// DepthStencilAttachmentInfo describes the depth/stencil
// target of a render pass.
type DepthStencilAttachmentInfo struct {
	Slice          TextureSlice
	DepthClear     float32
	StencilClear   uint32
	LoadOp         LoadOp
	StoreOp        StoreOp
	StencilLoadOp  LoadOp
	StencilStoreOp StoreOp
	Cycle          bool
}

// BufferBinding identifies a byte offset into a buffer.
type BufferBinding struct {
	Buffer *Buffer
	Offset int
}

// TextureSamplerBinding pairs a texture with a sampler.
type TextureSamplerBinding struct {
	Texture *Texture
	Sampler *Sampler
}

// StorageTextureReadWriteBinding describes a read-write
// storage texture bound to a compute pass.
type StorageTextureReadWriteBinding struct {
	Slice TextureSlice
	Cycle bool
}

// StorageBufferReadWriteBinding describes a read-write
// storage buffer bound to a compute pass.
type StorageBufferReadWriteBinding struct {
	Buffer *Buffer
	Cycle  bool
}

// TextureTransferInfo describes the addressing of texture
// data within a transfer buffer.
type TextureTransferInfo struct {
	TransferBuffer *TransferBuffer
	Offset         int
	// ImagePitch is the row length in texels;
	// ImageHeight the image height in rows.
	ImagePitch  int
	ImageHeight int
}

// TextureRegion identifies a region of a texture slice.
type TextureRegion struct {
	Slice   TextureSlice
	X, Y, Z int
	W, H, D int
}

// TextureLocation identifies an offset into a texture
// slice.
type TextureLocation struct {
	Slice   TextureSlice
	X, Y, Z int
}

// BufferRegion identifies a byte range of a buffer.
type BufferRegion struct {
	Buffer *Buffer
	Offset int
	Size   int
}

// BufferLocation identifies a byte offset into a buffer.
type BufferLocation struct {
	Buffer *Buffer
	Offset int
}

// TransferBufferLocation identifies a byte offset into a
// transfer buffer.
type TransferBufferLocation struct {
	TransferBuffer *TransferBuffer
	Offset         int
}
