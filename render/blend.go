// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package render

import "gviegas/gpu"

// BlendMode selects how drawn pixels combine with the
// render target.
type BlendMode int

// Blend modes.
const (
	// BlendNone writes source pixels unmodified.
	BlendNone BlendMode = iota
	// BlendAlpha blends by the source alpha.
	BlendAlpha
	// BlendAdd adds alpha-scaled source to destination.
	BlendAdd
	// BlendMod multiplies destination by source color.
	BlendMod
	// BlendMul multiplies and alpha-blends.
	BlendMul

	numBlendModes
)

// blendState returns the per-attachment blend parameters
// of a blend mode.
func (m BlendMode) blendState() gpu.ColorAttachmentBlendState {
	s := gpu.ColorAttachmentBlendState{
		ColorOp:   gpu.BlendOpAdd,
		AlphaOp:   gpu.BlendOpAdd,
		WriteMask: gpu.ColorCompAll,
	}
	switch m {
	case BlendAlpha:
		s.BlendEnable = true
		s.SrcColorFactor = gpu.BlendSrcAlpha
		s.DstColorFactor = gpu.BlendOneMinusSrcAlpha
		s.SrcAlphaFactor = gpu.BlendOne
		s.DstAlphaFactor = gpu.BlendOneMinusSrcAlpha
	case BlendAdd:
		s.BlendEnable = true
		s.SrcColorFactor = gpu.BlendSrcAlpha
		s.DstColorFactor = gpu.BlendOne
		s.SrcAlphaFactor = gpu.BlendZero
		s.DstAlphaFactor = gpu.BlendOne
	case BlendMod:
		s.BlendEnable = true
		s.SrcColorFactor = gpu.BlendZero
		s.DstColorFactor = gpu.BlendSrcColor
		s.SrcAlphaFactor = gpu.BlendZero
		s.DstAlphaFactor = gpu.BlendOne
	case BlendMul:
		s.BlendEnable = true
		s.SrcColorFactor = gpu.BlendDstColor
		s.DstColorFactor = gpu.BlendOneMinusSrcAlpha
		s.SrcAlphaFactor = gpu.BlendDstAlpha
		s.DstAlphaFactor = gpu.BlendOneMinusSrcAlpha
	}
	return s
}
