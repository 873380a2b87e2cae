// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package d3d12 implements the gpu SPI using Direct3D 12.
// The translation layer (conversion tables, root-signature
// and pipeline-state synthesis) is portable and testable
// everywhere; device bring-up and command submission drive
// the native API through COM vtables and are built on
// Windows only. On other systems the driver registers
// itself unselected and probes for a dxvk installation.
package d3d12

// Mirrors of the D3D12/DXGI enumerations and plain
// descriptor records consumed by the translation layer.
// Values match the native headers; only members this
// back-end uses are defined.

type _DXGI_FORMAT int32

const (
	_DXGI_FORMAT_UNKNOWN                _DXGI_FORMAT = 0
	_DXGI_FORMAT_R32G32B32A32_FLOAT     _DXGI_FORMAT = 2
	_DXGI_FORMAT_R32G32B32_FLOAT        _DXGI_FORMAT = 6
	_DXGI_FORMAT_R16G16B16A16_FLOAT     _DXGI_FORMAT = 10
	_DXGI_FORMAT_R16G16B16A16_UNORM     _DXGI_FORMAT = 11
	_DXGI_FORMAT_R16G16B16A16_UINT      _DXGI_FORMAT = 12
	_DXGI_FORMAT_R16G16B16A16_SNORM     _DXGI_FORMAT = 13
	_DXGI_FORMAT_R16G16B16A16_SINT      _DXGI_FORMAT = 14
	_DXGI_FORMAT_R32G32_FLOAT           _DXGI_FORMAT = 16
	_DXGI_FORMAT_R10G10B10A2_UNORM      _DXGI_FORMAT = 24
	_DXGI_FORMAT_R8G8B8A8_UNORM         _DXGI_FORMAT = 28
	_DXGI_FORMAT_R8G8B8A8_UNORM_SRGB    _DXGI_FORMAT = 29
	_DXGI_FORMAT_R8G8B8A8_UINT          _DXGI_FORMAT = 30
	_DXGI_FORMAT_R8G8B8A8_SNORM         _DXGI_FORMAT = 31
	_DXGI_FORMAT_R16G16_FLOAT           _DXGI_FORMAT = 34
	_DXGI_FORMAT_R16G16_UNORM           _DXGI_FORMAT = 35
	_DXGI_FORMAT_R16G16_UINT            _DXGI_FORMAT = 36
	_DXGI_FORMAT_R16G16_SNORM           _DXGI_FORMAT = 37
	_DXGI_FORMAT_R16G16_SINT            _DXGI_FORMAT = 38
	_DXGI_FORMAT_D32_FLOAT              _DXGI_FORMAT = 40
	_DXGI_FORMAT_R32_FLOAT              _DXGI_FORMAT = 41
	_DXGI_FORMAT_R32_UINT               _DXGI_FORMAT = 42
	_DXGI_FORMAT_D24_UNORM_S8_UINT      _DXGI_FORMAT = 45
	_DXGI_FORMAT_R8G8_UNORM             _DXGI_FORMAT = 49
	_DXGI_FORMAT_R8G8_UINT              _DXGI_FORMAT = 50
	_DXGI_FORMAT_R8G8_SNORM             _DXGI_FORMAT = 51
	_DXGI_FORMAT_R16_FLOAT              _DXGI_FORMAT = 54
	_DXGI_FORMAT_D16_UNORM              _DXGI_FORMAT = 55
	_DXGI_FORMAT_R16_UINT               _DXGI_FORMAT = 57
	_DXGI_FORMAT_R8_UNORM               _DXGI_FORMAT = 61
	_DXGI_FORMAT_R8_UINT                _DXGI_FORMAT = 62
	_DXGI_FORMAT_A8_UNORM               _DXGI_FORMAT = 65
	_DXGI_FORMAT_BC1_UNORM              _DXGI_FORMAT = 71
	_DXGI_FORMAT_BC2_UNORM              _DXGI_FORMAT = 74
	_DXGI_FORMAT_BC3_UNORM              _DXGI_FORMAT = 77
	_DXGI_FORMAT_BC3_UNORM_SRGB         _DXGI_FORMAT = 78
	_DXGI_FORMAT_B5G6R5_UNORM           _DXGI_FORMAT = 85
	_DXGI_FORMAT_B5G5R5A1_UNORM         _DXGI_FORMAT = 86
	_DXGI_FORMAT_B8G8R8A8_UNORM         _DXGI_FORMAT = 87
	_DXGI_FORMAT_B8G8R8A8_UNORM_SRGB    _DXGI_FORMAT = 91
	_DXGI_FORMAT_BC7_UNORM              _DXGI_FORMAT = 98
	_DXGI_FORMAT_BC7_UNORM_SRGB         _DXGI_FORMAT = 99
	_DXGI_FORMAT_B4G4R4A4_UNORM         _DXGI_FORMAT = 115
	_DXGI_FORMAT_D32_FLOAT_S8X24_UINT   _DXGI_FORMAT = 20
	_DXGI_FORMAT_R16G16B16A16_TYPELESS  _DXGI_FORMAT = 9
	_DXGI_FORMAT_R32_TYPELESS           _DXGI_FORMAT = 39
)

type _DXGI_COLOR_SPACE_TYPE int32

const (
	_DXGI_COLOR_SPACE_RGB_FULL_G22_NONE_P709   _DXGI_COLOR_SPACE_TYPE = 0
	_DXGI_COLOR_SPACE_RGB_FULL_G10_NONE_P709   _DXGI_COLOR_SPACE_TYPE = 1
	_DXGI_COLOR_SPACE_RGB_FULL_G2084_NONE_P2020 _DXGI_COLOR_SPACE_TYPE = 12
)

const (
	_DXGI_SWAP_CHAIN_COLOR_SPACE_SUPPORT_FLAG_PRESENT = 0x1

	_DXGI_USAGE_RENDER_TARGET_OUTPUT = 1 << (1 + 4)

	_DXGI_SCALING_STRETCH = 0

	_DXGI_SWAP_EFFECT_FLIP_DISCARD = 4

	_DXGI_ALPHA_MODE_UNSPECIFIED = 0

	_DXGI_SWAP_CHAIN_FLAG_ALLOW_TEARING = 2048

	_DXGI_PRESENT_ALLOW_TEARING = 0x00000200

	_DXGI_MWA_NO_WINDOW_CHANGES = 1

	_DXGI_FEATURE_PRESENT_ALLOW_TEARING = 0

	_DXGI_GPU_PREFERENCE_MINIMUM_POWER    = 1
	_DXGI_GPU_PREFERENCE_HIGH_PERFORMANCE = 2
)

type _D3D12_BLEND int32

const (
	_D3D12_BLEND_ZERO             _D3D12_BLEND = 1
	_D3D12_BLEND_ONE              _D3D12_BLEND = 2
	_D3D12_BLEND_SRC_COLOR        _D3D12_BLEND = 3
	_D3D12_BLEND_INV_SRC_COLOR    _D3D12_BLEND = 4
	_D3D12_BLEND_SRC_ALPHA        _D3D12_BLEND = 5
	_D3D12_BLEND_INV_SRC_ALPHA    _D3D12_BLEND = 6
	_D3D12_BLEND_DEST_ALPHA       _D3D12_BLEND = 7
	_D3D12_BLEND_INV_DEST_ALPHA   _D3D12_BLEND = 8
	_D3D12_BLEND_DEST_COLOR       _D3D12_BLEND = 9
	_D3D12_BLEND_INV_DEST_COLOR   _D3D12_BLEND = 10
	_D3D12_BLEND_SRC_ALPHA_SAT    _D3D12_BLEND = 11
	_D3D12_BLEND_BLEND_FACTOR     _D3D12_BLEND = 14
	_D3D12_BLEND_INV_BLEND_FACTOR _D3D12_BLEND = 15
)

type _D3D12_BLEND_OP int32

const (
	_D3D12_BLEND_OP_ADD          _D3D12_BLEND_OP = 1
	_D3D12_BLEND_OP_SUBTRACT     _D3D12_BLEND_OP = 2
	_D3D12_BLEND_OP_REV_SUBTRACT _D3D12_BLEND_OP = 3
	_D3D12_BLEND_OP_MIN          _D3D12_BLEND_OP = 4
	_D3D12_BLEND_OP_MAX          _D3D12_BLEND_OP = 5
)

type _D3D12_COMPARISON_FUNC int32

const (
	_D3D12_COMPARISON_FUNC_NEVER         _D3D12_COMPARISON_FUNC = 1
	_D3D12_COMPARISON_FUNC_LESS          _D3D12_COMPARISON_FUNC = 2
	_D3D12_COMPARISON_FUNC_EQUAL         _D3D12_COMPARISON_FUNC = 3
	_D3D12_COMPARISON_FUNC_LESS_EQUAL    _D3D12_COMPARISON_FUNC = 4
	_D3D12_COMPARISON_FUNC_GREATER       _D3D12_COMPARISON_FUNC = 5
	_D3D12_COMPARISON_FUNC_NOT_EQUAL     _D3D12_COMPARISON_FUNC = 6
	_D3D12_COMPARISON_FUNC_GREATER_EQUAL _D3D12_COMPARISON_FUNC = 7
	_D3D12_COMPARISON_FUNC_ALWAYS        _D3D12_COMPARISON_FUNC = 8
)

type _D3D12_STENCIL_OP int32

const (
	_D3D12_STENCIL_OP_KEEP     _D3D12_STENCIL_OP = 1
	_D3D12_STENCIL_OP_ZERO     _D3D12_STENCIL_OP = 2
	_D3D12_STENCIL_OP_REPLACE  _D3D12_STENCIL_OP = 3
	_D3D12_STENCIL_OP_INCR_SAT _D3D12_STENCIL_OP = 4
	_D3D12_STENCIL_OP_DECR_SAT _D3D12_STENCIL_OP = 5
	_D3D12_STENCIL_OP_INVERT   _D3D12_STENCIL_OP = 6
	_D3D12_STENCIL_OP_INCR     _D3D12_STENCIL_OP = 7
	_D3D12_STENCIL_OP_DECR     _D3D12_STENCIL_OP = 8
)

type _D3D12_CULL_MODE int32

const (
	_D3D12_CULL_MODE_NONE  _D3D12_CULL_MODE = 1
	_D3D12_CULL_MODE_FRONT _D3D12_CULL_MODE = 2
	_D3D12_CULL_MODE_BACK  _D3D12_CULL_MODE = 3
)

type _D3D12_FILL_MODE int32

const (
	_D3D12_FILL_MODE_WIREFRAME _D3D12_FILL_MODE = 2
	_D3D12_FILL_MODE_SOLID     _D3D12_FILL_MODE = 3
)

type _D3D12_INPUT_CLASSIFICATION int32

const (
	_D3D12_INPUT_CLASSIFICATION_PER_VERTEX_DATA   _D3D12_INPUT_CLASSIFICATION = 0
	_D3D12_INPUT_CLASSIFICATION_PER_INSTANCE_DATA _D3D12_INPUT_CLASSIFICATION = 1
)

type _D3D_PRIMITIVE_TOPOLOGY int32

const (
	_D3D_PRIMITIVE_TOPOLOGY_POINTLIST     _D3D_PRIMITIVE_TOPOLOGY = 1
	_D3D_PRIMITIVE_TOPOLOGY_LINELIST      _D3D_PRIMITIVE_TOPOLOGY = 2
	_D3D_PRIMITIVE_TOPOLOGY_LINESTRIP     _D3D_PRIMITIVE_TOPOLOGY = 3
	_D3D_PRIMITIVE_TOPOLOGY_TRIANGLELIST  _D3D_PRIMITIVE_TOPOLOGY = 4
	_D3D_PRIMITIVE_TOPOLOGY_TRIANGLESTRIP _D3D_PRIMITIVE_TOPOLOGY = 5
)

type _D3D12_PRIMITIVE_TOPOLOGY_TYPE int32

const (
	_D3D12_PRIMITIVE_TOPOLOGY_TYPE_POINT    _D3D12_PRIMITIVE_TOPOLOGY_TYPE = 1
	_D3D12_PRIMITIVE_TOPOLOGY_TYPE_LINE     _D3D12_PRIMITIVE_TOPOLOGY_TYPE = 2
	_D3D12_PRIMITIVE_TOPOLOGY_TYPE_TRIANGLE _D3D12_PRIMITIVE_TOPOLOGY_TYPE = 3
)

type _D3D12_FILTER int32

const (
	_D3D12_FILTER_MIN_MAG_MIP_POINT               _D3D12_FILTER = 0x00
	_D3D12_FILTER_MIN_MAG_POINT_MIP_LINEAR        _D3D12_FILTER = 0x01
	_D3D12_FILTER_MIN_POINT_MAG_LINEAR_MIP_POINT  _D3D12_FILTER = 0x04
	_D3D12_FILTER_MIN_POINT_MAG_MIP_LINEAR        _D3D12_FILTER = 0x05
	_D3D12_FILTER_MIN_LINEAR_MAG_MIP_POINT        _D3D12_FILTER = 0x10
	_D3D12_FILTER_MIN_LINEAR_MAG_POINT_MIP_LINEAR _D3D12_FILTER = 0x11
	_D3D12_FILTER_MIN_MAG_LINEAR_MIP_POINT        _D3D12_FILTER = 0x14
	_D3D12_FILTER_MIN_MAG_MIP_LINEAR              _D3D12_FILTER = 0x15
	_D3D12_FILTER_ANISOTROPIC                     _D3D12_FILTER = 0x55
)

type _D3D12_TEXTURE_ADDRESS_MODE int32

const (
	_D3D12_TEXTURE_ADDRESS_MODE_WRAP   _D3D12_TEXTURE_ADDRESS_MODE = 1
	_D3D12_TEXTURE_ADDRESS_MODE_MIRROR _D3D12_TEXTURE_ADDRESS_MODE = 2
	_D3D12_TEXTURE_ADDRESS_MODE_CLAMP  _D3D12_TEXTURE_ADDRESS_MODE = 3
)

type _D3D12_RESOURCE_STATES int32

const (
	_D3D12_RESOURCE_STATE_COMMON        _D3D12_RESOURCE_STATES = 0
	_D3D12_RESOURCE_STATE_RENDER_TARGET _D3D12_RESOURCE_STATES = 0x4
	_D3D12_RESOURCE_STATE_DEPTH_WRITE   _D3D12_RESOURCE_STATES = 0x10
	_D3D12_RESOURCE_STATE_COPY_DEST     _D3D12_RESOURCE_STATES = 0x400
	_D3D12_RESOURCE_STATE_COPY_SOURCE   _D3D12_RESOURCE_STATES = 0x800
	_D3D12_RESOURCE_STATE_GENERIC_READ  _D3D12_RESOURCE_STATES = 0xAC3
	_D3D12_RESOURCE_STATE_PRESENT       _D3D12_RESOURCE_STATES = 0
)

type _D3D12_HEAP_TYPE int32

const (
	_D3D12_HEAP_TYPE_DEFAULT  _D3D12_HEAP_TYPE = 1
	_D3D12_HEAP_TYPE_UPLOAD   _D3D12_HEAP_TYPE = 2
	_D3D12_HEAP_TYPE_READBACK _D3D12_HEAP_TYPE = 3
)

type _D3D12_RESOURCE_FLAGS int32

const (
	_D3D12_RESOURCE_FLAG_NONE                      _D3D12_RESOURCE_FLAGS = 0
	_D3D12_RESOURCE_FLAG_ALLOW_RENDER_TARGET       _D3D12_RESOURCE_FLAGS = 0x1
	_D3D12_RESOURCE_FLAG_ALLOW_DEPTH_STENCIL       _D3D12_RESOURCE_FLAGS = 0x2
	_D3D12_RESOURCE_FLAG_ALLOW_UNORDERED_ACCESS    _D3D12_RESOURCE_FLAGS = 0x4
)

type _D3D12_DESCRIPTOR_RANGE_TYPE int32

const (
	_D3D12_DESCRIPTOR_RANGE_TYPE_SRV     _D3D12_DESCRIPTOR_RANGE_TYPE = 0
	_D3D12_DESCRIPTOR_RANGE_TYPE_UAV     _D3D12_DESCRIPTOR_RANGE_TYPE = 1
	_D3D12_DESCRIPTOR_RANGE_TYPE_CBV     _D3D12_DESCRIPTOR_RANGE_TYPE = 2
	_D3D12_DESCRIPTOR_RANGE_TYPE_SAMPLER _D3D12_DESCRIPTOR_RANGE_TYPE = 3
)

const (
	_D3D12_DESCRIPTOR_RANGE_OFFSET_APPEND = 0xffffffff

	_D3D12_ROOT_SIGNATURE_FLAG_ALLOW_INPUT_ASSEMBLER_INPUT_LAYOUT = 0x1

	_D3D12_SHADER_VISIBILITY_ALL = 0

	_D3D12_ROOT_PARAMETER_TYPE_DESCRIPTOR_TABLE = 0

	_D3D_ROOT_SIGNATURE_VERSION_1 = 1

	_D3D12_SIMULTANEOUS_RENDER_TARGET_COUNT = 8

	_D3D12_IA_VERTEX_INPUT_STRUCTURE_ELEMENT_COUNT = 32

	_D3D12_COLOR_WRITE_ENABLE_ALL = 0xf

	_D3D12_DEFAULT_DEPTH_BIAS       = 0
	_D3D12_DEFAULT_DEPTH_BIAS_CLAMP = 0

	_D3D12_RESOURCE_BARRIER_ALL_SUBRESOURCES = 0xffffffff

	_D3D12_APPEND_ALIGNED_ELEMENT = 0xffffffff

	_D3D12_TEXTURE_DATA_PITCH_ALIGNMENT = 256

	_D3D_FEATURE_LEVEL_11_1 = 0xb100
)

// Plain (handle-free) intermediate descriptors produced by
// the conversion layer. The Windows half translates them
// into the native structures at creation time; tests
// everywhere can inspect them directly.

type rasterizerDesc struct {
	FillMode              _D3D12_FILL_MODE
	CullMode              _D3D12_CULL_MODE
	FrontCounterClockwise bool
	DepthBias             int32
	DepthBiasClamp        float32
	SlopeScaledDepthBias  float32
	DepthClipEnable       bool
}

type renderTargetBlendDesc struct {
	BlendEnable           bool
	SrcBlend              _D3D12_BLEND
	DestBlend             _D3D12_BLEND
	BlendOp               _D3D12_BLEND_OP
	SrcBlendAlpha         _D3D12_BLEND
	DestBlendAlpha        _D3D12_BLEND
	BlendOpAlpha          _D3D12_BLEND_OP
	RenderTargetWriteMask uint8
}

type blendDesc struct {
	AlphaToCoverageEnable  bool
	IndependentBlendEnable bool
	RenderTarget           [_D3D12_SIMULTANEOUS_RENDER_TARGET_COUNT]renderTargetBlendDesc
}

type stencilOpDesc struct {
	StencilFailOp      _D3D12_STENCIL_OP
	StencilDepthFailOp _D3D12_STENCIL_OP
	StencilPassOp      _D3D12_STENCIL_OP
	StencilFunc        _D3D12_COMPARISON_FUNC
}

type depthStencilDesc struct {
	DepthEnable      bool
	DepthWriteAll    bool
	DepthFunc        _D3D12_COMPARISON_FUNC
	StencilEnable    bool
	StencilReadMask  uint8
	StencilWriteMask uint8
	FrontFace        stencilOpDesc
	BackFace         stencilOpDesc
}

type inputElementDesc struct {
	SemanticName         string
	SemanticIndex        uint32
	Format               _DXGI_FORMAT
	InputSlot            uint32
	AlignedByteOffset    uint32
	InputSlotClass       _D3D12_INPUT_CLASSIFICATION
	InstanceDataStepRate uint32
}

// psoDesc aggregates everything the PSO factory derives
// from the portable create-info.
type psoDesc struct {
	InputLayout          []inputElementDesc
	Rasterizer           rasterizerDesc
	Blend                blendDesc
	DepthStencil         depthStencilDesc
	PrimitiveTopology    _D3D12_PRIMITIVE_TOPOLOGY_TYPE
	SampleCount          int
	RTVFormats           []_DXGI_FORMAT
	DSVFormat            _DXGI_FORMAT
}
