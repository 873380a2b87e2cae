// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package d3d12

import (
	"errors"
	"math"

	"gviegas/gpu"
)

// Shader profile strings, indexed by gpu.ShaderStage.
var shaderProfiles = [3]string{"vs_5_1", "ps_5_1", "cs_5_1"}

// swapchainCompositionFormat maps a composition to the
// swapchain buffer format.
var swapchainCompositionFormat = [4]_DXGI_FORMAT{
	gpu.CompositionSDR: _DXGI_FORMAT_B8G8R8A8_UNORM,
	// The swapchain buffer itself must not be created
	// sRGB under a flip model; the RTV uses the sRGB view.
	gpu.CompositionSDRLinear:         _DXGI_FORMAT_B8G8R8A8_UNORM,
	gpu.CompositionHDRExtendedLinear: _DXGI_FORMAT_R16G16B16A16_FLOAT,
	gpu.CompositionHDR10:             _DXGI_FORMAT_R10G10B10A2_UNORM,
}

// swapchainCompositionColorSpace maps a composition to the
// DXGI color space requested on the swapchain.
var swapchainCompositionColorSpace = [4]_DXGI_COLOR_SPACE_TYPE{
	gpu.CompositionSDR:               _DXGI_COLOR_SPACE_RGB_FULL_G22_NONE_P709,
	gpu.CompositionSDRLinear:         _DXGI_COLOR_SPACE_RGB_FULL_G22_NONE_P709,
	gpu.CompositionHDRExtendedLinear: _DXGI_COLOR_SPACE_RGB_FULL_G10_NONE_P709,
	gpu.CompositionHDR10:             _DXGI_COLOR_SPACE_RGB_FULL_G2084_NONE_P2020,
}

// convBlendFactor maps a blend factor for the color
// channels.
var convBlendFactor = [13]_D3D12_BLEND{
	gpu.BlendZero:                  _D3D12_BLEND_ZERO,
	gpu.BlendOne:                   _D3D12_BLEND_ONE,
	gpu.BlendSrcColor:              _D3D12_BLEND_SRC_COLOR,
	gpu.BlendOneMinusSrcColor:      _D3D12_BLEND_INV_SRC_COLOR,
	gpu.BlendDstColor:              _D3D12_BLEND_DEST_COLOR,
	gpu.BlendOneMinusDstColor:      _D3D12_BLEND_INV_DEST_COLOR,
	gpu.BlendSrcAlpha:              _D3D12_BLEND_SRC_ALPHA,
	gpu.BlendOneMinusSrcAlpha:      _D3D12_BLEND_INV_SRC_ALPHA,
	gpu.BlendDstAlpha:              _D3D12_BLEND_DEST_ALPHA,
	gpu.BlendOneMinusDstAlpha:      _D3D12_BLEND_INV_DEST_ALPHA,
	gpu.BlendConstantColor:         _D3D12_BLEND_BLEND_FACTOR,
	gpu.BlendOneMinusConstantColor: _D3D12_BLEND_INV_BLEND_FACTOR,
	gpu.BlendSrcAlphaSaturate:      _D3D12_BLEND_SRC_ALPHA_SAT,
}

// convBlendFactorAlpha maps a blend factor for the alpha
// channel. It deliberately differs from convBlendFactor:
// the color-sourced enumerants collapse to their alpha
// counterparts, matching the behavior of the other
// back-ends.
var convBlendFactorAlpha = [13]_D3D12_BLEND{
	gpu.BlendZero:                  _D3D12_BLEND_ZERO,
	gpu.BlendOne:                   _D3D12_BLEND_ONE,
	gpu.BlendSrcColor:              _D3D12_BLEND_SRC_ALPHA,
	gpu.BlendOneMinusSrcColor:      _D3D12_BLEND_INV_SRC_ALPHA,
	gpu.BlendDstColor:              _D3D12_BLEND_DEST_ALPHA,
	gpu.BlendOneMinusDstColor:      _D3D12_BLEND_INV_DEST_ALPHA,
	gpu.BlendSrcAlpha:              _D3D12_BLEND_SRC_ALPHA,
	gpu.BlendOneMinusSrcAlpha:      _D3D12_BLEND_INV_SRC_ALPHA,
	gpu.BlendDstAlpha:              _D3D12_BLEND_DEST_ALPHA,
	gpu.BlendOneMinusDstAlpha:      _D3D12_BLEND_INV_DEST_ALPHA,
	gpu.BlendConstantColor:         _D3D12_BLEND_BLEND_FACTOR,
	gpu.BlendOneMinusConstantColor: _D3D12_BLEND_INV_BLEND_FACTOR,
	gpu.BlendSrcAlphaSaturate:      _D3D12_BLEND_SRC_ALPHA_SAT,
}

var convBlendOp = [5]_D3D12_BLEND_OP{
	gpu.BlendOpAdd:         _D3D12_BLEND_OP_ADD,
	gpu.BlendOpSubtract:    _D3D12_BLEND_OP_SUBTRACT,
	gpu.BlendOpRevSubtract: _D3D12_BLEND_OP_REV_SUBTRACT,
	gpu.BlendOpMin:         _D3D12_BLEND_OP_MIN,
	gpu.BlendOpMax:         _D3D12_BLEND_OP_MAX,
}

var convTextureFormat = [...]_DXGI_FORMAT{
	gpu.TexFmtRGBA8:     _DXGI_FORMAT_R8G8B8A8_UNORM,
	gpu.TexFmtBGRA8:     _DXGI_FORMAT_B8G8R8A8_UNORM,
	gpu.TexFmtB5G6R5:    _DXGI_FORMAT_B5G6R5_UNORM,
	gpu.TexFmtB5G5R5A1:  _DXGI_FORMAT_B5G5R5A1_UNORM,
	gpu.TexFmtB4G4R4A4:  _DXGI_FORMAT_B4G4R4A4_UNORM,
	gpu.TexFmtRGB10A2:   _DXGI_FORMAT_R10G10B10A2_UNORM,
	gpu.TexFmtRG16:      _DXGI_FORMAT_R16G16_UNORM,
	gpu.TexFmtRGBA16:    _DXGI_FORMAT_R16G16B16A16_UNORM,
	gpu.TexFmtR8:        _DXGI_FORMAT_R8_UNORM,
	gpu.TexFmtA8:        _DXGI_FORMAT_A8_UNORM,
	gpu.TexFmtBC1:       _DXGI_FORMAT_BC1_UNORM,
	gpu.TexFmtBC2:       _DXGI_FORMAT_BC2_UNORM,
	gpu.TexFmtBC3:       _DXGI_FORMAT_BC3_UNORM,
	gpu.TexFmtBC7:       _DXGI_FORMAT_BC7_UNORM,
	gpu.TexFmtRG8n:      _DXGI_FORMAT_R8G8_SNORM,
	gpu.TexFmtRGBA8n:    _DXGI_FORMAT_R8G8B8A8_SNORM,
	gpu.TexFmtR16f:      _DXGI_FORMAT_R16_FLOAT,
	gpu.TexFmtRG16f:     _DXGI_FORMAT_R16G16_FLOAT,
	gpu.TexFmtRGBA16f:   _DXGI_FORMAT_R16G16B16A16_FLOAT,
	gpu.TexFmtR32f:      _DXGI_FORMAT_R32_FLOAT,
	gpu.TexFmtRG32f:     _DXGI_FORMAT_R32G32_FLOAT,
	gpu.TexFmtRGBA32f:   _DXGI_FORMAT_R32G32B32A32_FLOAT,
	gpu.TexFmtR8ui:      _DXGI_FORMAT_R8_UINT,
	gpu.TexFmtRG8ui:     _DXGI_FORMAT_R8G8_UINT,
	gpu.TexFmtRGBA8ui:   _DXGI_FORMAT_R8G8B8A8_UINT,
	gpu.TexFmtR16ui:     _DXGI_FORMAT_R16_UINT,
	gpu.TexFmtRG16ui:    _DXGI_FORMAT_R16G16_UINT,
	gpu.TexFmtRGBA16ui:  _DXGI_FORMAT_R16G16B16A16_UINT,
	gpu.TexFmtRGBA8sRGB: _DXGI_FORMAT_R8G8B8A8_UNORM_SRGB,
	gpu.TexFmtBGRA8sRGB: _DXGI_FORMAT_B8G8R8A8_UNORM_SRGB,
	gpu.TexFmtBC3sRGB:   _DXGI_FORMAT_BC3_UNORM_SRGB,
	gpu.TexFmtBC7sRGB:   _DXGI_FORMAT_BC7_UNORM_SRGB,
	gpu.TexFmtD16un:     _DXGI_FORMAT_D16_UNORM,
	gpu.TexFmtD24un:     _DXGI_FORMAT_D24_UNORM_S8_UINT,
	gpu.TexFmtD32f:      _DXGI_FORMAT_D32_FLOAT,
	gpu.TexFmtD24unS8ui: _DXGI_FORMAT_D24_UNORM_S8_UINT,
	gpu.TexFmtD32fS8ui:  _DXGI_FORMAT_D32_FLOAT_S8X24_UINT,
}

var convCompareOp = [8]_D3D12_COMPARISON_FUNC{
	gpu.CompareNever:        _D3D12_COMPARISON_FUNC_NEVER,
	gpu.CompareLess:         _D3D12_COMPARISON_FUNC_LESS,
	gpu.CompareEqual:        _D3D12_COMPARISON_FUNC_EQUAL,
	gpu.CompareLessEqual:    _D3D12_COMPARISON_FUNC_LESS_EQUAL,
	gpu.CompareGreater:      _D3D12_COMPARISON_FUNC_GREATER,
	gpu.CompareNotEqual:     _D3D12_COMPARISON_FUNC_NOT_EQUAL,
	gpu.CompareGreaterEqual: _D3D12_COMPARISON_FUNC_GREATER_EQUAL,
	gpu.CompareAlways:       _D3D12_COMPARISON_FUNC_ALWAYS,
}

var convStencilOp = [8]_D3D12_STENCIL_OP{
	gpu.StencilKeep:     _D3D12_STENCIL_OP_KEEP,
	gpu.StencilZero:     _D3D12_STENCIL_OP_ZERO,
	gpu.StencilReplace:  _D3D12_STENCIL_OP_REPLACE,
	gpu.StencilIncClamp: _D3D12_STENCIL_OP_INCR_SAT,
	gpu.StencilDecClamp: _D3D12_STENCIL_OP_DECR_SAT,
	gpu.StencilInvert:   _D3D12_STENCIL_OP_INVERT,
	gpu.StencilIncWrap:  _D3D12_STENCIL_OP_INCR,
	gpu.StencilDecWrap:  _D3D12_STENCIL_OP_DECR,
}

var convCullMode = [3]_D3D12_CULL_MODE{
	gpu.CullNone:  _D3D12_CULL_MODE_NONE,
	gpu.CullFront: _D3D12_CULL_MODE_FRONT,
	gpu.CullBack:  _D3D12_CULL_MODE_BACK,
}

var convFillMode = [2]_D3D12_FILL_MODE{
	gpu.FillModeFill: _D3D12_FILL_MODE_SOLID,
	gpu.FillModeLine: _D3D12_FILL_MODE_WIREFRAME,
}

var convInputRate = [2]_D3D12_INPUT_CLASSIFICATION{
	gpu.RateVertex:   _D3D12_INPUT_CLASSIFICATION_PER_VERTEX_DATA,
	gpu.RateInstance: _D3D12_INPUT_CLASSIFICATION_PER_INSTANCE_DATA,
}

var convVertexFormat = [13]_DXGI_FORMAT{
	gpu.VertexFmtUint:             _DXGI_FORMAT_R32_UINT,
	gpu.VertexFmtFloat:            _DXGI_FORMAT_R32_FLOAT,
	gpu.VertexFmtVector2:          _DXGI_FORMAT_R32G32_FLOAT,
	gpu.VertexFmtVector3:          _DXGI_FORMAT_R32G32B32_FLOAT,
	gpu.VertexFmtVector4:          _DXGI_FORMAT_R32G32B32A32_FLOAT,
	gpu.VertexFmtColor:            _DXGI_FORMAT_R8G8B8A8_UNORM,
	gpu.VertexFmtByte4:            _DXGI_FORMAT_R8G8B8A8_UINT,
	gpu.VertexFmtShort2:           _DXGI_FORMAT_R16G16_SINT,
	gpu.VertexFmtShort4:           _DXGI_FORMAT_R16G16B16A16_SINT,
	gpu.VertexFmtNormalizedShort2: _DXGI_FORMAT_R16G16_SNORM,
	gpu.VertexFmtNormalizedShort4: _DXGI_FORMAT_R16G16B16A16_SNORM,
	gpu.VertexFmtHalfVector2:      _DXGI_FORMAT_R16G16_FLOAT,
	gpu.VertexFmtHalfVector4:      _DXGI_FORMAT_R16G16B16A16_FLOAT,
}

var convSampleCount = [4]int{
	gpu.Samples1: 1,
	gpu.Samples2: 2,
	gpu.Samples4: 4,
	gpu.Samples8: 8,
}

var convPrimitiveType = [5]_D3D_PRIMITIVE_TOPOLOGY{
	gpu.PrimPointList:     _D3D_PRIMITIVE_TOPOLOGY_POINTLIST,
	gpu.PrimLineList:      _D3D_PRIMITIVE_TOPOLOGY_LINELIST,
	gpu.PrimLineStrip:     _D3D_PRIMITIVE_TOPOLOGY_LINESTRIP,
	gpu.PrimTriangleList:  _D3D_PRIMITIVE_TOPOLOGY_TRIANGLELIST,
	gpu.PrimTriangleStrip: _D3D_PRIMITIVE_TOPOLOGY_TRIANGLESTRIP,
}

// convTopologyType maps a primitive type to the PSO
// topology family.
func convTopologyType(p gpu.PrimitiveType) _D3D12_PRIMITIVE_TOPOLOGY_TYPE {
	switch p {
	case gpu.PrimPointList:
		return _D3D12_PRIMITIVE_TOPOLOGY_TYPE_POINT
	case gpu.PrimLineList, gpu.PrimLineStrip:
		return _D3D12_PRIMITIVE_TOPOLOGY_TYPE_LINE
	}
	return _D3D12_PRIMITIVE_TOPOLOGY_TYPE_TRIANGLE
}

// convFilter selects the combined filter enumerant.
func convFilter(min, mag, mip gpu.Filter, aniso bool) _D3D12_FILTER {
	if aniso {
		return _D3D12_FILTER_ANISOTROPIC
	}
	var f _D3D12_FILTER
	if min == gpu.FilterLinear {
		f |= 0x10
	}
	if mag == gpu.FilterLinear {
		f |= 0x04
	}
	if mip == gpu.FilterLinear {
		f |= 0x01
	}
	return f
}

var convAddressMode = [3]_D3D12_TEXTURE_ADDRESS_MODE{
	gpu.AddressRepeat:         _D3D12_TEXTURE_ADDRESS_MODE_WRAP,
	gpu.AddressMirroredRepeat: _D3D12_TEXTURE_ADDRESS_MODE_MIRROR,
	gpu.AddressClampToEdge:    _D3D12_TEXTURE_ADDRESS_MODE_CLAMP,
}

// convRasterizerState converts the portable rasterizer
// state. Depth clipping is always enabled; multisample
// rasterization, antialiased lines and conservative raster
// are not exposed by the portable API.
func convRasterizerState(rs *gpu.RasterizerState) rasterizerDesc {
	desc := rasterizerDesc{
		FillMode:              convFillMode[rs.FillMode],
		CullMode:              convCullMode[rs.CullMode],
		FrontCounterClockwise: rs.FrontFace == gpu.FrontFaceCCW,
		DepthClipEnable:       true,
	}
	if rs.DepthBiasEnable {
		desc.DepthBias = int32(math.Round(float64(rs.DepthBiasConstant)))
		desc.DepthBiasClamp = rs.DepthBiasClamp
		desc.SlopeScaledDepthBias = rs.DepthBiasSlope
	}
	return desc
}

// convBlendState converts the per-attachment blend state.
// Slots beyond the configured attachments keep identity
// state; independent blend is raised as soon as a second
// attachment is configured.
func convBlendState(colors []gpu.ColorAttachmentDescription) blendDesc {
	var desc blendDesc
	for i := range desc.RenderTarget {
		rt := renderTargetBlendDesc{
			SrcBlend:              _D3D12_BLEND_ONE,
			DestBlend:             _D3D12_BLEND_ZERO,
			BlendOp:               _D3D12_BLEND_OP_ADD,
			SrcBlendAlpha:         _D3D12_BLEND_ONE,
			DestBlendAlpha:        _D3D12_BLEND_ZERO,
			BlendOpAlpha:          _D3D12_BLEND_OP_ADD,
			RenderTargetWriteMask: _D3D12_COLOR_WRITE_ENABLE_ALL,
		}
		if i < len(colors) {
			b := colors[i].Blend
			rt.BlendEnable = b.BlendEnable
			rt.SrcBlend = convBlendFactor[b.SrcColorFactor]
			rt.DestBlend = convBlendFactor[b.DstColorFactor]
			rt.BlendOp = convBlendOp[b.ColorOp]
			rt.SrcBlendAlpha = convBlendFactorAlpha[b.SrcAlphaFactor]
			rt.DestBlendAlpha = convBlendFactorAlpha[b.DstAlphaFactor]
			rt.BlendOpAlpha = convBlendOp[b.AlphaOp]
			rt.RenderTargetWriteMask = uint8(b.WriteMask)
			if i > 0 {
				desc.IndependentBlendEnable = true
			}
		}
		desc.RenderTarget[i] = rt
	}
	return desc
}

// convDepthStencilState converts the portable
// depth/stencil state.
func convDepthStencilState(ds *gpu.DepthStencilState) depthStencilDesc {
	return depthStencilDesc{
		DepthEnable:      ds.DepthTestEnable,
		DepthWriteAll:    ds.DepthWriteEnable,
		DepthFunc:        convCompareOp[ds.CompareOp],
		StencilEnable:    ds.StencilTestEnable,
		StencilReadMask:  uint8(ds.CompareMask),
		StencilWriteMask: uint8(ds.WriteMask),
		FrontFace: stencilOpDesc{
			StencilFailOp:      convStencilOp[ds.Front.FailOp],
			StencilDepthFailOp: convStencilOp[ds.Front.DepthFailOp],
			StencilPassOp:      convStencilOp[ds.Front.PassOp],
			StencilFunc:        convCompareOp[ds.Front.CompareOp],
		},
		BackFace: stencilOpDesc{
			StencilFailOp:      convStencilOp[ds.Back.FailOp],
			StencilDepthFailOp: convStencilOp[ds.Back.DepthFailOp],
			StencilPassOp:      convStencilOp[ds.Back.PassOp],
			StencilFunc:        convCompareOp[ds.Back.CompareOp],
		},
	}
}

// vertexAttributeSemantic is the HLSL semantic every
// vertex attribute maps to; SemanticIndex carries the
// attribute location. The shader toolchain emits HLSL
// using the same convention.
const vertexAttributeSemantic = "TEXCOORD"

// convVertexInputState converts the vertex input layout.
func convVertexInputState(in *gpu.VertexInputState) ([]inputElementDesc, error) {
	if len(in.Attributes) > _D3D12_IA_VERTEX_INPUT_STRUCTURE_ELEMENT_COUNT {
		return nil, errors.New("d3d12: too many vertex attributes")
	}
	descs := make([]inputElementDesc, len(in.Attributes))
	for i, attr := range in.Attributes {
		if attr.Binding >= len(in.Bindings) {
			return nil, errors.New("d3d12: vertex attribute references missing binding")
		}
		binding := in.Bindings[attr.Binding]
		descs[i] = inputElementDesc{
			SemanticName:         vertexAttributeSemantic,
			SemanticIndex:        uint32(attr.Location),
			Format:               convVertexFormat[attr.Format],
			InputSlot:            uint32(attr.Binding),
			AlignedByteOffset:    uint32(attr.Offset),
			InputSlotClass:       convInputRate[binding.InputRate],
			InstanceDataStepRate: uint32(binding.StepRate),
		}
	}
	return descs, nil
}

// convPipelineState derives the full intermediate PSO
// description from the portable create-info.
func convPipelineState(info *gpu.GraphicsPipelineInfo) (psoDesc, error) {
	layout, err := convVertexInputState(&info.VertexInput)
	if err != nil {
		return psoDesc{}, err
	}
	desc := psoDesc{
		InputLayout:       layout,
		Rasterizer:        convRasterizerState(&info.Rasterizer),
		Blend:             convBlendState(info.Attachments.ColorDescriptions),
		DepthStencil:      convDepthStencilState(&info.DepthStencil),
		PrimitiveTopology: convTopologyType(info.Primitive),
		SampleCount:       convSampleCount[info.Multisample.Count],
	}
	for _, c := range info.Attachments.ColorDescriptions {
		desc.RTVFormats = append(desc.RTVFormats, convTextureFormat[c.Format])
	}
	if info.Attachments.HasDepthStencil {
		desc.DSVFormat = convTextureFormat[info.Attachments.DepthStencilFormat]
	}
	return desc, nil
}

// framebufferExtent computes the extent of a render pass
// as the minimum over all attachments of the attachment's
// mip-adjusted size. The framebuffer cannot be larger than
// the smallest attachment.
func framebufferExtent(colors []gpu.ColorAttachmentInfo, ds *gpu.DepthStencilAttachmentInfo) (w, h int) {
	w, h = math.MaxInt32, math.MaxInt32
	dim := func(s gpu.TextureSlice) (int, int) {
		info := s.Texture.Info()
		return info.Width >> s.MipLevel, info.Height >> s.MipLevel
	}
	for i := range colors {
		x, y := dim(colors[i].Slice)
		w = min(w, x)
		h = min(h, y)
	}
	if ds != nil {
		x, y := dim(ds.Slice)
		w = min(w, x)
		h = min(h, y)
	}
	return w, h
}
