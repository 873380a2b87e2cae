// Copyright 2024 Gustavo C. Viegas. All rights reserved.

//go:build windows

package d3d12

// Translation of the portable intermediate descriptors
// into the native PSO structures.

func convertRasterizerDesc(d *rasterizerDesc) _D3D12_RASTERIZER_DESC {
	return _D3D12_RASTERIZER_DESC{
		FillMode:              d.FillMode,
		CullMode:              d.CullMode,
		FrontCounterClockwise: boolToInt32(d.FrontCounterClockwise),
		DepthBias:             d.DepthBias,
		DepthBiasClamp:        d.DepthBiasClamp,
		SlopeScaledDepthBias:  d.SlopeScaledDepthBias,
		DepthClipEnable:       boolToInt32(d.DepthClipEnable),
	}
}

func convertBlendDesc(d *blendDesc) _D3D12_BLEND_DESC {
	out := _D3D12_BLEND_DESC{
		AlphaToCoverageEnable:  boolToInt32(d.AlphaToCoverageEnable),
		IndependentBlendEnable: boolToInt32(d.IndependentBlendEnable),
	}
	for i, rt := range d.RenderTarget {
		out.RenderTarget[i] = _D3D12_RENDER_TARGET_BLEND_DESC{
			BlendEnable:           boolToInt32(rt.BlendEnable),
			SrcBlend:              rt.SrcBlend,
			DestBlend:             rt.DestBlend,
			BlendOp:               rt.BlendOp,
			SrcBlendAlpha:         rt.SrcBlendAlpha,
			DestBlendAlpha:        rt.DestBlendAlpha,
			BlendOpAlpha:          rt.BlendOpAlpha,
			RenderTargetWriteMask: rt.RenderTargetWriteMask,
		}
	}
	return out
}

func convertDepthStencilDesc(d *depthStencilDesc) _D3D12_DEPTH_STENCIL_DESC {
	writeMask := int32(0)
	if d.DepthWriteAll {
		writeMask = 1
	}
	return _D3D12_DEPTH_STENCIL_DESC{
		DepthEnable:      boolToInt32(d.DepthEnable),
		DepthWriteMask:   writeMask,
		DepthFunc:        d.DepthFunc,
		StencilEnable:    boolToInt32(d.StencilEnable),
		StencilReadMask:  d.StencilReadMask,
		StencilWriteMask: d.StencilWriteMask,
		FrontFace: _D3D12_DEPTH_STENCILOP_DESC{
			StencilFailOp:      d.FrontFace.StencilFailOp,
			StencilDepthFailOp: d.FrontFace.StencilDepthFailOp,
			StencilPassOp:      d.FrontFace.StencilPassOp,
			StencilFunc:        d.FrontFace.StencilFunc,
		},
		BackFace: _D3D12_DEPTH_STENCILOP_DESC{
			StencilFailOp:      d.BackFace.StencilFailOp,
			StencilDepthFailOp: d.BackFace.StencilDepthFailOp,
			StencilPassOp:      d.BackFace.StencilPassOp,
			StencilFunc:        d.BackFace.StencilFunc,
		},
	}
}
