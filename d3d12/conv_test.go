// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package d3d12

import (
	"testing"

	"gviegas/gpu"
	_ "gviegas/gpu/internal/null"
)

func TestBlendFactorTables(t *testing.T) {
	// The color table maps enumerants straight through.
	for _, x := range [...]struct {
		factor gpu.BlendFactor
		want   _D3D12_BLEND
	}{
		{gpu.BlendZero, _D3D12_BLEND_ZERO},
		{gpu.BlendOne, _D3D12_BLEND_ONE},
		{gpu.BlendSrcColor, _D3D12_BLEND_SRC_COLOR},
		{gpu.BlendOneMinusSrcColor, _D3D12_BLEND_INV_SRC_COLOR},
		{gpu.BlendDstColor, _D3D12_BLEND_DEST_COLOR},
		{gpu.BlendOneMinusDstColor, _D3D12_BLEND_INV_DEST_COLOR},
		{gpu.BlendSrcAlphaSaturate, _D3D12_BLEND_SRC_ALPHA_SAT},
	} {
		if got := convBlendFactor[x.factor]; got != x.want {
			t.Errorf("convBlendFactor[%v]:\nhave %v\nwant %v", x.factor, got, x.want)
		}
	}
}

func TestBlendFactorAlphaRemap(t *testing.T) {
	// In the alpha channel the color-sourced enumerants
	// collapse to their alpha counterparts. This mapping
	// must hold verbatim to match the other back-ends.
	for _, x := range [...]struct {
		factor gpu.BlendFactor
		want   _D3D12_BLEND
	}{
		{gpu.BlendSrcColor, _D3D12_BLEND_SRC_ALPHA},
		{gpu.BlendOneMinusSrcColor, _D3D12_BLEND_INV_SRC_ALPHA},
		{gpu.BlendDstColor, _D3D12_BLEND_DEST_ALPHA},
		{gpu.BlendOneMinusDstColor, _D3D12_BLEND_INV_DEST_ALPHA},
		{gpu.BlendSrcAlpha, _D3D12_BLEND_SRC_ALPHA},
		{gpu.BlendDstAlpha, _D3D12_BLEND_DEST_ALPHA},
		{gpu.BlendZero, _D3D12_BLEND_ZERO},
		{gpu.BlendOne, _D3D12_BLEND_ONE},
	} {
		if got := convBlendFactorAlpha[x.factor]; got != x.want {
			t.Errorf("convBlendFactorAlpha[%v]:\nhave %v\nwant %v", x.factor, got, x.want)
		}
	}
}

func TestRootSignatureLayout(t *testing.T) {
	layout, err := makeRootSignatureLayout(2, 1, 3, 4)
	if err != nil {
		t.Fatalf("makeRootSignatureLayout: %v", err)
	}
	wantParams := []rootParameter{
		{RangeType: _D3D12_DESCRIPTOR_RANGE_TYPE_CBV, Count: 1},
		{RangeType: _D3D12_DESCRIPTOR_RANGE_TYPE_UAV, Count: 3},
		{RangeType: _D3D12_DESCRIPTOR_RANGE_TYPE_UAV, Count: 4},
		{RangeType: _D3D12_DESCRIPTOR_RANGE_TYPE_SAMPLER, Count: 2},
		{RangeType: _D3D12_DESCRIPTOR_RANGE_TYPE_SRV, Count: 2},
	}
	if len(layout.Params) != len(wantParams) {
		t.Fatalf("layout.Params:\nhave %v\nwant %v", layout.Params, wantParams)
	}
	for i := range wantParams {
		if layout.Params[i] != wantParams[i] {
			t.Errorf("layout.Params[%v]:\nhave %v\nwant %v", i, layout.Params[i], wantParams[i])
		}
	}
	if layout.UniformTable != 0 || layout.StorageBufferTable != 1 ||
		layout.StorageTextureTable != 2 || layout.SamplerTable != 3 ||
		layout.SampledTextureTable != 4 {
		t.Errorf("layout table indices: %+v", layout)
	}
}

func TestRootSignatureLayoutSparse(t *testing.T) {
	layout, err := makeRootSignatureLayout(0, 1, 0, 2)
	if err != nil {
		t.Fatalf("makeRootSignatureLayout: %v", err)
	}
	if len(layout.Params) != 2 {
		t.Fatalf("layout.Params:\nhave %v entries\nwant 2", len(layout.Params))
	}
	if layout.UniformTable != 0 || layout.StorageTextureTable != 1 {
		t.Errorf("layout table indices: %+v", layout)
	}
	if layout.StorageBufferTable != -1 || layout.SamplerTable != -1 || layout.SampledTextureTable != -1 {
		t.Errorf("empty categories must be absent: %+v", layout)
	}

	layout, err = makeRootSignatureLayout(0, 0, 0, 0)
	if err != nil {
		t.Fatalf("makeRootSignatureLayout: %v", err)
	}
	if len(layout.Params) != 0 {
		t.Errorf("layout.Params:\nhave %v entries\nwant 0", len(layout.Params))
	}
}

func TestGraphicsSignatureCounts(t *testing.T) {
	s, u, sb, st := graphicsSignatureCounts(1, 2, 3, 4, 4, 3, 2, 1)
	if s != 4 || u != 3 || sb != 3 || st != 4 {
		t.Errorf("graphicsSignatureCounts:\nhave %v %v %v %v\nwant 4 3 3 4", s, u, sb, st)
	}
}

func TestConvRasterizerState(t *testing.T) {
	desc := convRasterizerState(&gpu.RasterizerState{
		FillMode:          gpu.FillModeLine,
		CullMode:          gpu.CullBack,
		FrontFace:         gpu.FrontFaceCW,
		DepthBiasEnable:   true,
		DepthBiasConstant: 1.6,
		DepthBiasClamp:    2,
		DepthBiasSlope:    0.5,
	})
	if desc.FillMode != _D3D12_FILL_MODE_WIREFRAME || desc.CullMode != _D3D12_CULL_MODE_BACK {
		t.Errorf("fill/cull:\nhave %v %v", desc.FillMode, desc.CullMode)
	}
	if desc.FrontCounterClockwise {
		t.Error("FrontCounterClockwise:\nhave true\nwant false")
	}
	// The constant factor rounds to integer.
	if desc.DepthBias != 2 {
		t.Errorf("DepthBias:\nhave %v\nwant 2", desc.DepthBias)
	}
	if !desc.DepthClipEnable {
		t.Error("DepthClipEnable:\nhave false\nwant true")
	}

	desc = convRasterizerState(&gpu.RasterizerState{DepthBiasConstant: 5})
	if desc.DepthBias != 0 {
		t.Errorf("DepthBias without enable:\nhave %v\nwant 0", desc.DepthBias)
	}
}

func TestConvBlendState(t *testing.T) {
	colors := []gpu.ColorAttachmentDescription{
		{Format: gpu.TexFmtBGRA8, Blend: gpu.ColorAttachmentBlendState{
			BlendEnable:    true,
			SrcColorFactor: gpu.BlendSrcColor,
			DstColorFactor: gpu.BlendOneMinusSrcColor,
			SrcAlphaFactor: gpu.BlendSrcColor,
			DstAlphaFactor: gpu.BlendOneMinusSrcColor,
			ColorOp:        gpu.BlendOpAdd,
			AlphaOp:        gpu.BlendOpRevSubtract,
			WriteMask:      gpu.ColorCompAll,
		}},
	}
	desc := convBlendState(colors)
	if desc.IndependentBlendEnable {
		t.Error("IndependentBlendEnable with one attachment:\nhave true\nwant false")
	}
	rt := desc.RenderTarget[0]
	if rt.SrcBlend != _D3D12_BLEND_SRC_COLOR || rt.SrcBlendAlpha != _D3D12_BLEND_SRC_ALPHA {
		t.Errorf("alpha-channel factors must use the alpha table:\nhave %v %v", rt.SrcBlend, rt.SrcBlendAlpha)
	}
	if rt.DestBlendAlpha != _D3D12_BLEND_INV_SRC_ALPHA {
		t.Errorf("DestBlendAlpha:\nhave %v\nwant %v", rt.DestBlendAlpha, _D3D12_BLEND_INV_SRC_ALPHA)
	}
	if rt.BlendOpAlpha != _D3D12_BLEND_OP_REV_SUBTRACT {
		t.Errorf("BlendOpAlpha:\nhave %v", rt.BlendOpAlpha)
	}
	// Identity state on unconfigured slots.
	for i := 1; i < len(desc.RenderTarget); i++ {
		rt := desc.RenderTarget[i]
		if rt.BlendEnable || rt.SrcBlend != _D3D12_BLEND_ONE || rt.DestBlend != _D3D12_BLEND_ZERO {
			t.Errorf("RenderTarget[%v] is not identity: %+v", i, rt)
		}
	}

	colors = append(colors, colors[0])
	if desc := convBlendState(colors); !desc.IndependentBlendEnable {
		t.Error("IndependentBlendEnable with two attachments:\nhave false\nwant true")
	}
}

func TestConvVertexInputState(t *testing.T) {
	in := gpu.VertexInputState{
		Bindings: []gpu.VertexBinding{
			{Binding: 0, Stride: 24, InputRate: gpu.RateVertex},
			{Binding: 1, Stride: 16, InputRate: gpu.RateInstance, StepRate: 2},
		},
		Attributes: []gpu.VertexAttribute{
			{Location: 0, Binding: 0, Format: gpu.VertexFmtVector2, Offset: 0},
			{Location: 3, Binding: 1, Format: gpu.VertexFmtVector4, Offset: 8},
		},
	}
	descs, err := convVertexInputState(&in)
	if err != nil {
		t.Fatalf("convVertexInputState: %v", err)
	}
	for _, d := range descs {
		if d.SemanticName != "TEXCOORD" {
			t.Errorf("SemanticName:\nhave %v\nwant TEXCOORD", d.SemanticName)
		}
	}
	if descs[0].SemanticIndex != 0 || descs[1].SemanticIndex != 3 {
		t.Errorf("SemanticIndex must carry the location:\nhave %v %v", descs[0].SemanticIndex, descs[1].SemanticIndex)
	}
	if descs[1].InputSlotClass != _D3D12_INPUT_CLASSIFICATION_PER_INSTANCE_DATA {
		t.Errorf("InputSlotClass:\nhave %v", descs[1].InputSlotClass)
	}
	if descs[1].InstanceDataStepRate != 2 {
		t.Errorf("InstanceDataStepRate:\nhave %v\nwant 2", descs[1].InstanceDataStepRate)
	}
}

func TestSwapchainCompositionTables(t *testing.T) {
	if swapchainCompositionFormat[gpu.CompositionSDR] != _DXGI_FORMAT_B8G8R8A8_UNORM {
		t.Error("SDR format mismatch")
	}
	// SDR-linear swapchains are created non-sRGB; the RTV
	// carries the sRGB view.
	if swapchainCompositionFormat[gpu.CompositionSDRLinear] != _DXGI_FORMAT_B8G8R8A8_UNORM {
		t.Error("SDR-linear format mismatch")
	}
	if swapchainCompositionFormat[gpu.CompositionHDRExtendedLinear] != _DXGI_FORMAT_R16G16B16A16_FLOAT {
		t.Error("HDR format mismatch")
	}
	if swapchainCompositionFormat[gpu.CompositionHDR10] != _DXGI_FORMAT_R10G10B10A2_UNORM {
		t.Error("HDR10 format mismatch")
	}
	if swapchainCompositionColorSpace[gpu.CompositionHDR10] != _DXGI_COLOR_SPACE_RGB_FULL_G2084_NONE_P2020 {
		t.Error("HDR10 color space mismatch")
	}
}

func TestFramebufferExtent(t *testing.T) {
	dev, err := gpu.CreateDevice(gpu.ShaderFmtDXBC, false, false, "null")
	if err != nil {
		t.Fatalf("CreateDevice: %v", err)
	}
	defer dev.Destroy()

	newTex := func(w, h int) *gpu.Texture {
		tex, err := dev.CreateTexture(&gpu.TextureInfo{
			Format: gpu.TexFmtBGRA8, Type: gpu.Texture2D,
			Width: w, Height: h, Depth: 1,
			LayerCount: 1, LevelCount: 2,
			Usage: gpu.TexUsageColorTarget,
		})
		if err != nil {
			t.Fatalf("CreateTexture: %v", err)
		}
		return tex
	}

	colors := []gpu.ColorAttachmentInfo{
		{Slice: gpu.TextureSlice{Texture: newTex(256, 128), MipLevel: 1}},
		{Slice: gpu.TextureSlice{Texture: newTex(100, 100)}},
	}
	w, h := framebufferExtent(colors, nil)
	if w != 100 || h != 64 {
		t.Errorf("framebufferExtent:\nhave %v x %v\nwant 100 x 64", w, h)
	}

	ds := &gpu.DepthStencilAttachmentInfo{
		Slice: gpu.TextureSlice{Texture: newTex(64, 512)},
	}
	w, h = framebufferExtent(colors, ds)
	if w != 64 || h != 64 {
		t.Errorf("framebufferExtent with depth:\nhave %v x %v\nwant 64 x 64", w, h)
	}
}

func TestTopologyType(t *testing.T) {
	for _, x := range [...]struct {
		prim gpu.PrimitiveType
		want _D3D12_PRIMITIVE_TOPOLOGY_TYPE
	}{
		{gpu.PrimPointList, _D3D12_PRIMITIVE_TOPOLOGY_TYPE_POINT},
		{gpu.PrimLineList, _D3D12_PRIMITIVE_TOPOLOGY_TYPE_LINE},
		{gpu.PrimLineStrip, _D3D12_PRIMITIVE_TOPOLOGY_TYPE_LINE},
		{gpu.PrimTriangleList, _D3D12_PRIMITIVE_TOPOLOGY_TYPE_TRIANGLE},
		{gpu.PrimTriangleStrip, _D3D12_PRIMITIVE_TOPOLOGY_TYPE_TRIANGLE},
	} {
		if got := convTopologyType(x.prim); got != x.want {
			t.Errorf("convTopologyType(%v):\nhave %v\nwant %v", x.prim, got, x.want)
		}
	}
}
