// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package render

import (
	"testing"

	"golang.org/x/image/math/f32"

	"gviegas/gpu"
	"gviegas/gpu/internal/null"
	"gviegas/gpu/wsi"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	win, err := wsi.NewWindow(640, 480, "render test")
	if err != nil {
		t.Fatalf("wsi.NewWindow: %v", err)
	}
	r, err := New(win, &Options{DriverName: "null"})
	if err != nil {
		win.Close()
		t.Fatalf("render.New: %v", err)
	}
	t.Cleanup(func() {
		r.Destroy()
		win.Close()
	})
	return r
}

func TestClearFrame(t *testing.T) {
	r := newTestRenderer(t)
	rec := null.Last().CmdBuf()

	r.SetDrawColor(gpu.Color{R: 0.25, G: 0.5, B: 0.75, A: 1})
	r.Clear()
	if err := r.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}

	atts := rec.LastAttachments()
	if len(atts) != 1 {
		t.Fatalf("color attachments:\nhave %v\nwant 1", len(atts))
	}
	if atts[0].LoadOp != gpu.LoadOpClear {
		t.Errorf("LoadOp:\nhave %v\nwant %v", atts[0].LoadOp, gpu.LoadOpClear)
	}
	want := gpu.Color{R: 0.25, G: 0.5, B: 0.75, A: 1}
	if atts[0].ClearColor != want {
		t.Errorf("ClearColor:\nhave %v\nwant %v", atts[0].ClearColor, want)
	}

	// The frame counter toggles between the two back
	// buffers.
	if fc := null.Last().FrameCounter(r.win); fc != 1 {
		t.Errorf("frame counter after one present:\nhave %v\nwant 1", fc)
	}
	r.Clear()
	if err := r.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}
	if fc := null.Last().FrameCounter(r.win); fc != 0 {
		t.Errorf("frame counter after two presents:\nhave %v\nwant 0", fc)
	}

	// At steady state exactly one fence is outstanding.
	if n := null.Last().OutstandingFences(); n != 1 {
		t.Errorf("outstanding fences:\nhave %v\nwant 1", n)
	}
}

func redTriangle() ([]f32.Vec2, []gpu.Color) {
	xy := []f32.Vec2{{0, 0}, {10, 0}, {0, 10}}
	red := gpu.Color{R: 1, A: 1}
	return xy, []gpu.Color{red, red, red}
}

func TestTriangle(t *testing.T) {
	r := newTestRenderer(t)
	rec := null.Last().CmdBuf()

	if n := r.PipelineCount(); n != 0 {
		t.Fatalf("pipeline cache size before first draw:\nhave %v\nwant 0", n)
	}
	xy, colors := redTriangle()
	if err := r.Geometry(nil, xy, colors, nil, nil); err != nil {
		t.Fatalf("Geometry: %v", err)
	}
	if err := r.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}

	if n := r.PipelineCount(); n != 1 {
		t.Errorf("pipeline cache size:\nhave %v\nwant 1", n)
	}
	draws := rec.LastSubmitDraws
	if len(draws) != 1 {
		t.Fatalf("draw calls:\nhave %v\nwant 1", len(draws))
	}
	if draws[0].VertexCount != 3 {
		t.Errorf("draw vertex count:\nhave %v\nwant 3", draws[0].VertexCount)
	}

	// An identical frame reuses the cached pipeline.
	if err := r.Geometry(nil, xy, colors, nil, nil); err != nil {
		t.Fatalf("Geometry: %v", err)
	}
	if err := r.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}
	if n := r.PipelineCount(); n != 1 {
		t.Errorf("pipeline cache size after identical frame:\nhave %v\nwant 1", n)
	}
}

func TestPointBatching(t *testing.T) {
	r := newTestRenderer(t)
	rec := null.Last().CmdBuf()

	for i := 0; i < 50; i++ {
		r.Points([]f32.Vec2{{float32(i), float32(i)}})
	}
	if err := r.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}

	draws := rec.LastSubmitDraws
	if len(draws) != 1 {
		t.Fatalf("draw calls:\nhave %v\nwant 1", len(draws))
	}
	if draws[0].VertexCount != 50 {
		t.Errorf("coalesced vertex count:\nhave %v\nwant 50", draws[0].VertexCount)
	}
}

func TestBatchingBreaksOnBlend(t *testing.T) {
	r := newTestRenderer(t)
	rec := null.Last().CmdBuf()

	r.Points([]f32.Vec2{{0, 0}})
	r.SetBlendMode(BlendAlpha)
	r.Points([]f32.Vec2{{1, 1}})
	if err := r.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}
	if n := len(rec.LastSubmitDraws); n != 2 {
		t.Errorf("draw calls across blend change:\nhave %v\nwant 2", n)
	}
}

func TestLineBatching(t *testing.T) {
	r := newTestRenderer(t)
	rec := null.Last().CmdBuf()

	// Three two-point segments with one blend mode
	// coalesce into a single line-list draw.
	for i := 0; i < 3; i++ {
		x := float32(i * 10)
		r.Lines([]f32.Vec2{{x, 0}, {x, 10}})
	}
	if err := r.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}
	draws := rec.LastSubmitDraws
	if len(draws) != 1 {
		t.Fatalf("segment draw calls:\nhave %v\nwant 1", len(draws))
	}
	if draws[0].VertexCount != 6 {
		t.Errorf("segment vertex count:\nhave %v\nwant 6", draws[0].VertexCount)
	}

	// Joined runs do not coalesce.
	r.Lines([]f32.Vec2{{0, 0}, {5, 5}, {10, 0}})
	r.Lines([]f32.Vec2{{0, 10}, {5, 15}, {10, 10}})
	if err := r.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}
	draws = rec.LastSubmitDraws
	if len(draws) != 2 {
		t.Fatalf("joined-run draw calls:\nhave %v\nwant 2", len(draws))
	}
	for i := range draws {
		// A three-point strip rasterizes two segments from
		// three vertices.
		if draws[i].VertexCount != 3 {
			t.Errorf("draws[%v].VertexCount:\nhave %v\nwant 3", i, draws[i].VertexCount)
		}
	}
}

func TestVertexAccounting(t *testing.T) {
	r := newTestRenderer(t)
	rec := null.Last().CmdBuf()

	for i := 0; i < 50; i++ {
		r.Points([]f32.Vec2{{float32(i), 0}})
	}
	xy, colors := redTriangle()
	if err := r.Geometry(nil, xy, colors, nil, nil); err != nil {
		t.Fatalf("Geometry: %v", err)
	}
	if err := r.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}

	// 50 point vertices of 8 bytes plus 3 triangle
	// vertices of 24 bytes, uploaded as one batch.
	want := 50*8 + 3*24
	if n := rec.LastSubmitVertexBytes; n != want {
		t.Errorf("uploaded vertex bytes:\nhave %v\nwant %v", n, want)
	}
	for _, d := range rec.LastSubmitDraws {
		if d.VertexBufferOffset < 0 || d.VertexBufferOffset >= vertexBufferSize {
			t.Errorf("draw offset out of range: %v", d.VertexBufferOffset)
		}
	}
}

func TestFenceRotation(t *testing.T) {
	r := newTestRenderer(t)

	for i := 0; i < 3; i++ {
		r.Clear()
		if err := r.Present(); err != nil {
			t.Fatalf("Present: %v", err)
		}
		if n := null.Last().OutstandingFences(); n != 1 {
			t.Fatalf("outstanding fences after frame %v:\nhave %v\nwant 1", i, n)
		}
	}
}

func TestSamplerCacheStable(t *testing.T) {
	r := newTestRenderer(t)

	s := r.sampler(ScaleLinear, AddressClamp)
	if s == nil {
		t.Fatal("sampler: unexpected nil")
	}
	r.Clear()
	if err := r.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}
	if s2 := r.sampler(ScaleLinear, AddressClamp); s2 != s {
		t.Error("sampler identity changed across frames")
	}
	for scale := ScaleMode(0); scale < numScaleModes; scale++ {
		for addr := AddressMode(0); addr < numAddressModes; addr++ {
			if r.sampler(scale, addr) == nil {
				t.Errorf("sampler(%v, %v): unexpected nil", scale, addr)
			}
		}
	}
}

func TestPipelineCacheKey(t *testing.T) {
	r := newTestRenderer(t)

	xy, colors := redTriangle()
	// Same key across frames: one pipeline. A different
	// blend mode adds a second one.
	if err := r.Geometry(nil, xy, colors, nil, nil); err != nil {
		t.Fatalf("Geometry: %v", err)
	}
	r.SetBlendMode(BlendAlpha)
	if err := r.Geometry(nil, xy, colors, nil, nil); err != nil {
		t.Fatalf("Geometry: %v", err)
	}
	r.Points([]f32.Vec2{{0, 0}})
	if err := r.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}
	// Triangle with no blend, triangle with alpha blend,
	// points with alpha blend.
	if n := r.PipelineCount(); n != 3 {
		t.Errorf("pipeline cache size:\nhave %v\nwant 3", n)
	}
}

func TestStreamingTexture(t *testing.T) {
	r := newTestRenderer(t)

	tex, err := r.CreateTexture(8, 8, AccessStreaming)
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}
	defer tex.Destroy()

	pix, pitch, err := tex.Lock(gpu.Rect{W: 8, H: 8})
	if err != nil {
		t.Fatalf("Lock: %v", err)
	}
	if pitch != 8*4 {
		t.Fatalf("pitch:\nhave %v\nwant 32", pitch)
	}
	for i := 0; i < 8*pitch; i++ {
		pix[i] = byte(i)
	}
	if err := tex.Unlock(); err != nil {
		t.Fatalf("Unlock: %v", err)
	}

	uv := []f32.Vec2{{0, 0}, {1, 0}, {0, 1}}
	xy, colors := redTriangle()
	if err := r.Geometry(tex, xy, colors, uv, nil); err != nil {
		t.Fatalf("Geometry: %v", err)
	}
	if err := r.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}
}
