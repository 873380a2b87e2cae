// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package render

import "gviegas/gpu"

// pipelineKey identifies one graphics pipeline variant.
// Equal keys always resolve to the same pipeline object.
type pipelineKey struct {
	blend  BlendMode
	vert   vertexShaderID
	frag   fragmentShaderID
	prim   gpu.PrimitiveType
	format gpu.TextureFormat
}

// pipelineCache maps pipeline parameters to compiled
// graphics pipelines. Misses construct the pipeline and
// memoize it for the renderer's lifetime.
type pipelineCache struct {
	m map[pipelineKey]*gpu.GraphicsPipeline
}

func (c *pipelineCache) init() {
	c.m = make(map[pipelineKey]*gpu.GraphicsPipeline)
}

// len returns the number of cached pipelines.
func (c *pipelineCache) len() int { return len(c.m) }

// get returns the pipeline for key, constructing it on a
// miss.
func (c *pipelineCache) get(dev *gpu.Device, s *shaders, key pipelineKey) (*gpu.GraphicsPipeline, error) {
	if pl, ok := c.m[key]; ok {
		return pl, nil
	}
	info := gpu.GraphicsPipelineInfo{
		VertexShader:   s.vert[key.vert],
		FragmentShader: s.frag[key.frag],
		VertexInput:    vertexLayout(key.vert),
		Primitive:      key.prim,
		Rasterizer: gpu.RasterizerState{
			FillMode:  gpu.FillModeFill,
			CullMode:  gpu.CullNone,
			FrontFace: gpu.FrontFaceCCW,
		},
		Multisample: gpu.MultisampleState{Count: gpu.Samples1, Mask: ^uint32(0)},
		Attachments: gpu.GraphicsPipelineAttachmentInfo{
			ColorDescriptions: []gpu.ColorAttachmentDescription{{
				Format: key.format,
				Blend:  key.blend.blendState(),
			}},
		},
	}
	pl, err := dev.CreateGraphicsPipeline(&info)
	if err != nil {
		return nil, err
	}
	c.m[key] = pl
	return pl, nil
}

func (c *pipelineCache) release(dev *gpu.Device) {
	for k, pl := range c.m {
		dev.ReleaseGraphicsPipeline(pl)
		delete(c.m, k)
	}
}
