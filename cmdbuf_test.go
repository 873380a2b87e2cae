// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package gpu_test

import (
	"testing"

	"gviegas/gpu"
	"gviegas/gpu/internal/null"
)

func newTestPipeline(t *testing.T, dev *gpu.Device) *gpu.GraphicsPipeline {
	t.Helper()
	vert, err := dev.CreateShader(&gpu.ShaderInfo{
		Code:               []byte{1},
		Format:             gpu.ShaderFmtDXBC,
		Stage:              gpu.StageVertex,
		UniformBufferCount: 1,
	})
	if err != nil {
		t.Fatalf("CreateShader: %v", err)
	}
	frag, err := dev.CreateShader(&gpu.ShaderInfo{
		Code:   []byte{2},
		Format: gpu.ShaderFmtDXBC,
		Stage:  gpu.StageFragment,
	})
	if err != nil {
		t.Fatalf("CreateShader: %v", err)
	}
	pl, err := dev.CreateGraphicsPipeline(&gpu.GraphicsPipelineInfo{
		VertexShader:   vert,
		FragmentShader: frag,
		Primitive:      gpu.PrimTriangleList,
		Attachments: gpu.GraphicsPipelineAttachmentInfo{
			ColorDescriptions: []gpu.ColorAttachmentDescription{{Format: gpu.TexFmtBGRA8}},
		},
	})
	if err != nil {
		t.Fatalf("CreateGraphicsPipeline: %v", err)
	}
	return pl
}

func acquire(t *testing.T, dev *gpu.Device) *gpu.CommandBuffer {
	t.Helper()
	cb, err := dev.AcquireCommandBuffer()
	if err != nil {
		t.Fatalf("AcquireCommandBuffer: %v", err)
	}
	return cb
}

func TestPassExclusive(t *testing.T) {
	dev := newTestDevice(t, true)
	cb := acquire(t, dev)

	rp := cb.BeginRenderPass(nil, nil)
	if rp == nil {
		t.Fatal("BeginRenderPass: unexpected nil")
	}
	if cp := cb.BeginComputePass(nil, nil); cp != nil {
		t.Error("BeginComputePass: began while a render pass is in progress")
	}
	if yp := cb.BeginCopyPass(); yp != nil {
		t.Error("BeginCopyPass: began while a render pass is in progress")
	}
	rp.End()

	cp := cb.BeginComputePass(nil, nil)
	if cp == nil {
		t.Fatal("BeginComputePass: unexpected nil")
	}
	if rp := cb.BeginRenderPass(nil, nil); rp != nil {
		t.Error("BeginRenderPass: began while a compute pass is in progress")
	}
	cp.End()

	yp := cb.BeginCopyPass()
	if yp == nil {
		t.Fatal("BeginCopyPass: unexpected nil")
	}
	yp.End()

	if err := cb.Submit(); err != nil {
		t.Fatalf("Submit: %v", err)
	}
}

func TestSubmittedIsInert(t *testing.T) {
	dev := newTestDevice(t, true)
	cb := acquire(t, dev)

	if err := cb.Submit(); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !cb.Submitted() {
		t.Fatal("CommandBuffer.Submitted:\nhave false\nwant true")
	}
	if rp := cb.BeginRenderPass(nil, nil); rp != nil {
		t.Error("BeginRenderPass: began on a submitted command buffer")
	}
	if cp := cb.BeginComputePass(nil, nil); cp != nil {
		t.Error("BeginComputePass: began on a submitted command buffer")
	}
	if yp := cb.BeginCopyPass(); yp != nil {
		t.Error("BeginCopyPass: began on a submitted command buffer")
	}
	if err := cb.Submit(); err == nil {
		t.Error("Submit: double submission was not rejected")
	}
	if _, err := cb.SubmitAndAcquireFence(); err == nil {
		t.Error("SubmitAndAcquireFence: double submission was not rejected")
	}
}

func TestSubmitWhilePassInProgress(t *testing.T) {
	dev := newTestDevice(t, true)
	cb := acquire(t, dev)

	rp := cb.BeginRenderPass(nil, nil)
	if err := cb.Submit(); err == nil {
		t.Error("Submit: succeeded while a pass is in progress")
	}
	rp.End()
	if err := cb.Submit(); err != nil {
		t.Fatalf("Submit: %v", err)
	}
}

func TestDrawNeedsBoundPipeline(t *testing.T) {
	dev := newTestDevice(t, true)
	pl := newTestPipeline(t, dev)
	cb := acquire(t, dev)
	rec := null.Last().CmdBuf()

	rp := cb.BeginRenderPass(nil, nil)
	rp.DrawPrimitives(0, 1)
	if n := len(rec.Draws); n != 0 {
		t.Fatalf("draws without a bound pipeline:\nhave %v\nwant 0", n)
	}

	rp.BindGraphicsPipeline(pl)
	rp.DrawPrimitives(0, 1)
	if n := len(rec.Draws); n != 1 {
		t.Fatalf("draws with a bound pipeline:\nhave %v\nwant 1", n)
	}

	// Ending the pass clears the pipeline binding.
	rp.End()
	rp = cb.BeginRenderPass(nil, nil)
	rp.DrawPrimitives(0, 1)
	if n := len(rec.Draws); n != 1 {
		t.Fatalf("draws after pass end cleared the binding:\nhave %v\nwant 1", n)
	}
	rp.End()
	if err := cb.Submit(); err != nil {
		t.Fatalf("Submit: %v", err)
	}
}

func TestBeginComputePassLimits(t *testing.T) {
	dev := newTestDevice(t, true)
	cb := acquire(t, dev)

	textures := make([]gpu.StorageTextureReadWriteBinding, gpu.MaxComputeWriteTextures+1)
	if cp := cb.BeginComputePass(textures, nil); cp != nil {
		t.Error("BeginComputePass: storage texture binding count over the limit")
	}
	buffers := make([]gpu.StorageBufferReadWriteBinding, gpu.MaxComputeWriteBuffers+1)
	if cp := cb.BeginComputePass(nil, buffers); cp != nil {
		t.Error("BeginComputePass: storage buffer binding count over the limit")
	}
	if err := cb.Submit(); err != nil {
		t.Fatalf("Submit: %v", err)
	}
}
