// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package d3d12

import "errors"

// maxRootSignatureParameters bounds the number of root
// parameters a signature may declare.
const maxRootSignatureParameters = 64

// Per-stage resource limits.
const (
	maxVertexUniformBuffers   = 14
	maxFragmentUniformBuffers = 14
	maxVertexSamplers         = 16
	maxFragmentSamplers       = 16
	maxVertexResourceCount    = 128 + 14 + 8
	maxFragmentResourceCount  = 128 + 14 + 8
)

// rootParameter describes one descriptor-table parameter
// of a root signature: a single range covering all
// descriptors of its category, register 0 based, with
// append offsets and ALL visibility.
type rootParameter struct {
	RangeType _D3D12_DESCRIPTOR_RANGE_TYPE
	Count     int
}

// rootSignatureLayout is the synthesized root-signature
// description. One descriptor table exists per non-empty
// category, in the order CBV (uniforms), UAV (storage
// buffers), UAV (storage textures), SAMPLER. The *Table
// fields hold the parameter index of each category, or -1
// when the category is empty.
type rootSignatureLayout struct {
	Params []rootParameter

	UniformTable        int
	StorageBufferTable  int
	StorageTextureTable int
	SamplerTable        int

	// SampledTextureTable trails the four specified
	// categories whenever samplers are declared: sampler
	// descriptors live in a sampler heap, so the texture
	// SRVs they pair with need a view table of their own.
	SampledTextureTable int
}

// makeRootSignatureLayout produces the flat layout for the
// given per-category descriptor counts.
func makeRootSignatureLayout(samplerCount, uniformBufferCount, storageBufferCount, storageTextureCount int) (rootSignatureLayout, error) {
	layout := rootSignatureLayout{
		UniformTable:        -1,
		StorageBufferTable:  -1,
		StorageTextureTable: -1,
		SamplerTable:        -1,
		SampledTextureTable: -1,
	}
	add := func(rt _D3D12_DESCRIPTOR_RANGE_TYPE, n int) (int, error) {
		if len(layout.Params) >= maxRootSignatureParameters {
			return -1, errors.New("d3d12: too many root signature parameters")
		}
		layout.Params = append(layout.Params, rootParameter{RangeType: rt, Count: n})
		return len(layout.Params) - 1, nil
	}
	var err error
	if uniformBufferCount > 0 {
		if layout.UniformTable, err = add(_D3D12_DESCRIPTOR_RANGE_TYPE_CBV, uniformBufferCount); err != nil {
			return layout, err
		}
	}
	if storageBufferCount > 0 {
		if layout.StorageBufferTable, err = add(_D3D12_DESCRIPTOR_RANGE_TYPE_UAV, storageBufferCount); err != nil {
			return layout, err
		}
	}
	if storageTextureCount > 0 {
		if layout.StorageTextureTable, err = add(_D3D12_DESCRIPTOR_RANGE_TYPE_UAV, storageTextureCount); err != nil {
			return layout, err
		}
	}
	if samplerCount > 0 {
		if layout.SamplerTable, err = add(_D3D12_DESCRIPTOR_RANGE_TYPE_SAMPLER, samplerCount); err != nil {
			return layout, err
		}
		if layout.SampledTextureTable, err = add(_D3D12_DESCRIPTOR_RANGE_TYPE_SRV, samplerCount); err != nil {
			return layout, err
		}
	}
	return layout, nil
}

// graphicsSignatureCounts returns the shared per-category
// counts of a graphics pipeline: the element-wise maximum
// of the vertex and fragment shader declarations. The two
// stages share one root signature with ALL visibility.
func graphicsSignatureCounts(vertSamplers, vertUniforms, vertStorageBufs, vertStorageTexs,
	fragSamplers, fragUniforms, fragStorageBufs, fragStorageTexs int) (samplers, uniforms, storageBufs, storageTexs int) {
	samplers = max(vertSamplers, fragSamplers)
	uniforms = max(vertUniforms, fragUniforms)
	storageBufs = max(vertStorageBufs, fragStorageBufs)
	storageTexs = max(vertStorageTexs, fragStorageTexs)
	return
}
