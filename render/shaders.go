// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package render

import (
	"errors"

	"gviegas/gpu"
)

// Shader identities used by the pipeline cache key.
type (
	vertexShaderID   int
	fragmentShaderID int
)

const (
	vertLinePoint vertexShaderID = iota
	vertTriColor
	vertTriTexture
	numVertShaders
)

const (
	fragColor fragmentShaderID = iota
	fragTextureRGBA
	numFragShaders
)

// The shader bundle. Vertex attributes use the TEXCOORD
// semantic with the attribute location as its index; this
// matches the convention the back-ends expect.
//
// All vertex shaders share one uniform block: the MVP
// matrix, the constant draw color and the bound texture's
// size in texels.
const shaderHeaderHLSL = `
cbuffer Context : register(b0) {
	float4x4 mvp;
	float4 color;
	float2 texture_size;
};
`

const linePointVertHLSL = shaderHeaderHLSL + `
struct VSIn { float2 pos : TEXCOORD0; };
struct VSOut { float4 pos : SV_Position; float4 color : COLOR0; };

VSOut main(VSIn input) {
	VSOut output;
	output.pos = mul(mvp, float4(input.pos, 0.0, 1.0));
	output.color = color;
	return output;
}
`

const triColorVertHLSL = shaderHeaderHLSL + `
struct VSIn { float2 pos : TEXCOORD0; float4 color : TEXCOORD1; };
struct VSOut { float4 pos : SV_Position; float4 color : COLOR0; };

VSOut main(VSIn input) {
	VSOut output;
	output.pos = mul(mvp, float4(input.pos, 0.0, 1.0));
	output.color = input.color;
	return output;
}
`

const triTextureVertHLSL = shaderHeaderHLSL + `
struct VSIn { float2 pos : TEXCOORD0; float4 color : TEXCOORD1; float2 uv : TEXCOORD2; };
struct VSOut { float4 pos : SV_Position; float4 color : COLOR0; float2 uv : TEXCOORD0; };

VSOut main(VSIn input) {
	VSOut output;
	output.pos = mul(mvp, float4(input.pos, 0.0, 1.0));
	output.color = input.color;
	output.uv = input.uv / texture_size;
	return output;
}
`

const colorFragHLSL = `
struct PSIn { float4 pos : SV_Position; float4 color : COLOR0; };

float4 main(PSIn input) : SV_Target {
	return input.color;
}
`

const textureRGBAFragHLSL = `
Texture2D tex : register(t0);
SamplerState smp : register(s0);

struct PSIn { float4 pos : SV_Position; float4 color : COLOR0; float2 uv : TEXCOORD0; };

float4 main(PSIn input) : SV_Target {
	return tex.Sample(smp, input.uv) * input.color;
}
`

// shaderSource is one entry of the shader bundle: code in
// a specific format plus the resource counts that drive
// pipeline layout.
type shaderSource struct {
	code               string
	format             gpu.ShaderFormat
	samplerCount       int
	uniformBufferCount int
}

var vertShaderSources = [numVertShaders]shaderSource{
	vertLinePoint:  {code: linePointVertHLSL, format: gpu.ShaderFmtHLSL, uniformBufferCount: 1},
	vertTriColor:   {code: triColorVertHLSL, format: gpu.ShaderFmtHLSL, uniformBufferCount: 1},
	vertTriTexture: {code: triTextureVertHLSL, format: gpu.ShaderFmtHLSL, uniformBufferCount: 1},
}

var fragShaderSources = [numFragShaders]shaderSource{
	fragColor:       {code: colorFragHLSL, format: gpu.ShaderFmtHLSL},
	fragTextureRGBA: {code: textureRGBAFragHLSL, format: gpu.ShaderFmtHLSL, samplerCount: 1},
}

// shaders holds the renderer's compiled shader set.
type shaders struct {
	vert [numVertShaders]*gpu.Shader
	frag [numFragShaders]*gpu.Shader
}

func compileShader(dev *gpu.Device, src *shaderSource, stage gpu.ShaderStage) (*gpu.Shader, error) {
	if src.format&dev.ShaderFormats() == 0 {
		return nil, errors.New("render: device accepts none of the bundled shader formats")
	}
	return dev.CreateShader(&gpu.ShaderInfo{
		Code:               []byte(src.code),
		EntryPoint:         "main",
		Format:             src.format,
		Stage:              stage,
		SamplerCount:       src.samplerCount,
		UniformBufferCount: src.uniformBufferCount,
	})
}

func (s *shaders) init(dev *gpu.Device) error {
	for i := range vertShaderSources {
		sh, err := compileShader(dev, &vertShaderSources[i], gpu.StageVertex)
		if err != nil {
			s.release(dev)
			return err
		}
		s.vert[i] = sh
	}
	for i := range fragShaderSources {
		sh, err := compileShader(dev, &fragShaderSources[i], gpu.StageFragment)
		if err != nil {
			s.release(dev)
			return err
		}
		s.frag[i] = sh
	}
	return nil
}

func (s *shaders) release(dev *gpu.Device) {
	for i := range s.vert {
		dev.ReleaseShader(s.vert[i])
		s.vert[i] = nil
	}
	for i := range s.frag {
		dev.ReleaseShader(s.frag[i])
		s.frag[i] = nil
	}
}

// vertexLayout returns the input layout of a vertex
// shader's vertex stream.
func vertexLayout(id vertexShaderID) gpu.VertexInputState {
	switch id {
	case vertLinePoint:
		return gpu.VertexInputState{
			Bindings: []gpu.VertexBinding{{Binding: 0, Stride: 8}},
			Attributes: []gpu.VertexAttribute{
				{Location: 0, Binding: 0, Format: gpu.VertexFmtVector2, Offset: 0},
			},
		}
	case vertTriColor:
		return gpu.VertexInputState{
			Bindings: []gpu.VertexBinding{{Binding: 0, Stride: 24}},
			Attributes: []gpu.VertexAttribute{
				{Location: 0, Binding: 0, Format: gpu.VertexFmtVector2, Offset: 0},
				{Location: 1, Binding: 0, Format: gpu.VertexFmtVector4, Offset: 8},
			},
		}
	case vertTriTexture:
		return gpu.VertexInputState{
			Bindings: []gpu.VertexBinding{{Binding: 0, Stride: 32}},
			Attributes: []gpu.VertexAttribute{
				{Location: 0, Binding: 0, Format: gpu.VertexFmtVector2, Offset: 0},
				{Location: 1, Binding: 0, Format: gpu.VertexFmtVector4, Offset: 8},
				{Location: 2, Binding: 0, Format: gpu.VertexFmtVector2, Offset: 24},
			},
		}
	}
	return gpu.VertexInputState{}
}
