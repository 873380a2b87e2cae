// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package gpu_test

import (
	"testing"

	"gviegas/gpu"
)

func TestTexelBlockSize(t *testing.T) {
	for _, x := range [...]struct {
		fmt  gpu.TextureFormat
		want int
	}{
		{gpu.TexFmtBC1, 8},
		{gpu.TexFmtBC2, 16},
		{gpu.TexFmtBC3, 16},
		{gpu.TexFmtBC7, 16},
		{gpu.TexFmtBC3sRGB, 16},
		{gpu.TexFmtBC7sRGB, 16},
		{gpu.TexFmtR8, 1},
		{gpu.TexFmtA8, 1},
		{gpu.TexFmtR8ui, 1},
		{gpu.TexFmtB5G6R5, 2},
		{gpu.TexFmtB4G4R4A4, 2},
		{gpu.TexFmtB5G5R5A1, 2},
		{gpu.TexFmtR16f, 2},
		{gpu.TexFmtRG8n, 2},
		{gpu.TexFmtRG8ui, 2},
		{gpu.TexFmtR16ui, 2},
		{gpu.TexFmtRGBA8, 4},
		{gpu.TexFmtBGRA8, 4},
		{gpu.TexFmtRGBA8sRGB, 4},
		{gpu.TexFmtBGRA8sRGB, 4},
		{gpu.TexFmtR32f, 4},
		{gpu.TexFmtRG16f, 4},
		{gpu.TexFmtRGBA8n, 4},
		{gpu.TexFmtRGB10A2, 4},
		{gpu.TexFmtRGBA8ui, 4},
		{gpu.TexFmtRG16ui, 4},
		{gpu.TexFmtRGBA16f, 8},
		{gpu.TexFmtRGBA16, 8},
		{gpu.TexFmtRG32f, 8},
		{gpu.TexFmtRGBA16ui, 8},
		{gpu.TexFmtRGBA32f, 16},
		{gpu.TexFmtInvalid, 0},
	} {
		if n := x.fmt.TexelBlockSize(); n != x.want {
			t.Errorf("TexelBlockSize(%v):\nhave %v\nwant %v", x.fmt, n, x.want)
		}
	}
}

func TestIsInteger(t *testing.T) {
	ints := [...]gpu.TextureFormat{
		gpu.TexFmtR8ui, gpu.TexFmtRG8ui, gpu.TexFmtRGBA8ui,
		gpu.TexFmtR16ui, gpu.TexFmtRG16ui, gpu.TexFmtRGBA16ui,
	}
	for _, f := range ints {
		if !f.IsInteger() {
			t.Errorf("IsInteger(%v):\nhave false\nwant true", f)
		}
	}
	for _, f := range [...]gpu.TextureFormat{gpu.TexFmtRGBA8, gpu.TexFmtD32f, gpu.TexFmtRGBA16f} {
		if f.IsInteger() {
			t.Errorf("IsInteger(%v):\nhave true\nwant false", f)
		}
	}
}

func TestVertexCount(t *testing.T) {
	for _, x := range [...]struct {
		prim  gpu.PrimitiveType
		prims int
		want  int
	}{
		{gpu.PrimPointList, 50, 50},
		{gpu.PrimLineList, 3, 6},
		{gpu.PrimLineStrip, 3, 4},
		{gpu.PrimTriangleList, 2, 6},
		{gpu.PrimTriangleStrip, 2, 4},
	} {
		if n := x.prim.VertexCount(x.prims); n != x.want {
			t.Errorf("%v.VertexCount(%v):\nhave %v\nwant %v", x.prim, x.prims, n, x.want)
		}
	}
}
