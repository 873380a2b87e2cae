// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package render implements a 2D renderer on top of the
// portable gpu API.
// Drawing calls append nodes to a per-frame command
// stream; Present uploads the frame's vertex batch in one
// copy pass, replays the stream - coalescing runs of
// compatible draws into single draw calls - and presents
// the claimed window, keeping exactly one frame of GPU
// work in flight through a pair of rotating fences.
package render

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/image/math/f32"

	"gviegas/gpu"
	"gviegas/gpu/wsi"
)

// vertexBufferSize bounds the vertex bytes of one frame.
const vertexBufferSize = 1 << 20

// ScaleMode selects the sampler filter of a texture.
type ScaleMode int

// Scale modes.
const (
	ScaleNearest ScaleMode = iota
	ScaleLinear
	// ScaleBest enables anisotropic filtering.
	ScaleBest

	numScaleModes
)

// AddressMode selects how texture coordinates outside the
// image are treated.
type AddressMode int

// Address modes.
const (
	AddressClamp AddressMode = iota
	AddressWrap

	numAddressModes
)

// Options configures renderer construction.
type Options struct {
	// DriverName forces a gpu back-end by name.
	DriverName string

	// PreferLowPower selects an integrated GPU.
	PreferLowPower bool

	// Composition and PresentMode configure the window's
	// swapchain; the zero values are SDR and vsync.
	Composition gpu.SwapchainComposition
	PresentMode gpu.PresentMode
}

// Renderer is a 2D renderer bound to one window.
// It is not safe for concurrent use.
type Renderer struct {
	dev *gpu.Device
	win wsi.Window

	shaders   shaders
	pipelines pipelineCache

	presentFence *gpu.Fence

	swapchain struct {
		texture     *gpu.Texture
		format      gpu.TextureFormat
		width       int
		height      int
		composition gpu.SwapchainComposition
		presentMode gpu.PresentMode
	}

	vertices struct {
		transferBuf *gpu.TransferBuffer
		buffer      *gpu.Buffer
	}

	state struct {
		cmdBuf          *gpu.CommandBuffer
		renderPass      *gpu.RenderPass
		renderTarget    *Texture
		colorAttachment gpu.ColorAttachmentInfo
		viewport        gpu.Viewport
		scissor         gpu.Rect
		scissorEnabled  bool
		drawColor       gpu.Color
	}

	samplers [numScaleModes][numAddressModes]*gpu.Sampler

	// Command stream under construction.
	head       *renderCmd
	tail       *renderCmd
	vertexData []byte

	drawColor  gpu.Color
	colorScale float32
	blend      BlendMode
	linear     bool

	// Single-use upload buffers retired after the next
	// submission completes.
	retired []*gpu.TransferBuffer
}

// New creates a renderer over win, constructing its own
// device and claiming the window.
func New(win wsi.Window, opts *Options) (*Renderer, error) {
	if win == nil {
		return nil, errors.New("render: nil window")
	}
	var o Options
	if opts != nil {
		o = *opts
	}
	dev, err := gpu.CreateDevice(gpu.ShaderFmtHLSL|gpu.ShaderFmtDXBC, true, o.PreferLowPower, o.DriverName)
	if err != nil {
		return nil, err
	}

	r := &Renderer{
		dev:        dev,
		win:        win,
		drawColor:  gpu.Color{R: 1, G: 1, B: 1, A: 1},
		colorScale: 1,
	}
	r.swapchain.composition = o.Composition
	r.swapchain.presentMode = o.PresentMode
	r.linear = o.Composition != gpu.CompositionSDR

	if err := r.shaders.init(dev); err != nil {
		r.Destroy()
		return nil, err
	}
	r.pipelines.init()
	if err := r.initVertexBuffer(vertexBufferSize); err != nil {
		r.Destroy()
		return nil, err
	}
	if err := r.initSamplers(); err != nil {
		r.Destroy()
		return nil, err
	}
	if err := dev.ClaimWindow(win, r.swapchain.composition, r.swapchain.presentMode); err != nil {
		r.Destroy()
		return nil, err
	}
	cb, err := dev.AcquireCommandBuffer()
	if err != nil {
		r.Destroy()
		return nil, err
	}
	r.state.cmdBuf = cb
	if err := r.renewSwapchain(); err != nil {
		r.Destroy()
		return nil, err
	}
	r.state.viewport = gpu.Viewport{
		W: float32(r.swapchain.width), H: float32(r.swapchain.height),
		MinDepth: 0, MaxDepth: 1,
	}
	r.state.drawColor = gpu.Color{R: 1, G: 1, B: 1, A: 1}
	return r, nil
}

// Device returns the renderer's device.
func (r *Renderer) Device() *gpu.Device { return r.dev }

// PipelineCount returns the number of pipelines in the
// renderer's cache.
func (r *Renderer) PipelineCount() int { return r.pipelines.len() }

func (r *Renderer) initVertexBuffer(size int) error {
	buf, err := r.dev.CreateBuffer(&gpu.BufferInfo{Usage: gpu.BufUsageVertex, Size: size})
	if err != nil {
		return err
	}
	r.vertices.buffer = buf
	tbuf, err := r.dev.CreateTransferBuffer(&gpu.TransferBufferInfo{Usage: gpu.TransferUpload, Size: size})
	if err != nil {
		return err
	}
	r.vertices.transferBuf = tbuf
	return nil
}

func (r *Renderer) initSamplers() error {
	configs := [...]struct {
		scale ScaleMode
		addr  AddressMode
		info  gpu.SamplerInfo
	}{
		{ScaleNearest, AddressClamp, gpu.SamplerInfo{MinFilter: gpu.FilterNearest, MagFilter: gpu.FilterNearest, AddressModeU: gpu.AddressClampToEdge, AddressModeV: gpu.AddressClampToEdge, AddressModeW: gpu.AddressClampToEdge}},
		{ScaleLinear, AddressClamp, gpu.SamplerInfo{MinFilter: gpu.FilterLinear, MagFilter: gpu.FilterLinear, AddressModeU: gpu.AddressClampToEdge, AddressModeV: gpu.AddressClampToEdge, AddressModeW: gpu.AddressClampToEdge}},
		{ScaleBest, AddressClamp, gpu.SamplerInfo{MinFilter: gpu.FilterLinear, MagFilter: gpu.FilterLinear, AnisotropyEnable: true, MaxAnisotropy: 16, AddressModeU: gpu.AddressClampToEdge, AddressModeV: gpu.AddressClampToEdge, AddressModeW: gpu.AddressClampToEdge}},
		{ScaleNearest, AddressWrap, gpu.SamplerInfo{MinFilter: gpu.FilterNearest, MagFilter: gpu.FilterNearest, AddressModeU: gpu.AddressRepeat, AddressModeV: gpu.AddressRepeat, AddressModeW: gpu.AddressRepeat}},
		{ScaleLinear, AddressWrap, gpu.SamplerInfo{MinFilter: gpu.FilterLinear, MagFilter: gpu.FilterLinear, AddressModeU: gpu.AddressRepeat, AddressModeV: gpu.AddressRepeat, AddressModeW: gpu.AddressRepeat}},
		{ScaleBest, AddressWrap, gpu.SamplerInfo{MinFilter: gpu.FilterLinear, MagFilter: gpu.FilterLinear, AnisotropyEnable: true, MaxAnisotropy: 16, AddressModeU: gpu.AddressRepeat, AddressModeV: gpu.AddressRepeat, AddressModeW: gpu.AddressRepeat}},
	}
	for i := range configs {
		info := configs[i].info
		s, err := r.dev.CreateSampler(&info)
		if err != nil {
			return err
		}
		r.samplers[configs[i].scale][configs[i].addr] = s
	}
	return nil
}

// sampler returns the pre-allocated sampler for a mode
// pair. The result is stable for the renderer's lifetime.
func (r *Renderer) sampler(scale ScaleMode, addr AddressMode) *gpu.Sampler {
	return r.samplers[scale][addr]
}

func (r *Renderer) renewSwapchain() error {
	tex, err := r.state.cmdBuf.AcquireSwapchainTexture(r.win)
	if err != nil {
		return err
	}
	r.swapchain.texture = tex
	if tex != nil {
		info := tex.Info()
		r.swapchain.width = info.Width
		r.swapchain.height = info.Height
		format, err := r.dev.SwapchainTextureFormat(r.win)
		if err != nil {
			return err
		}
		r.swapchain.format = format
	}
	return nil
}

/* State and draw queueing */

// SetDrawColor sets the color used by Clear and by
// primitive draws.
func (r *Renderer) SetDrawColor(c gpu.Color) {
	r.drawColor = c
	r.queue(&renderCmd{kind: cmdSetDrawColor, color: r.convColor(c)})
}

// SetColorScale scales the RGB channels of subsequent
// draws; HDR compositions use it to reach beyond 1.0.
func (r *Renderer) SetColorScale(scale float32) {
	r.colorScale = scale
}

// SetBlendMode sets the blend mode of untextured draws.
func (r *Renderer) SetBlendMode(m BlendMode) {
	r.blend = m
}

// SetViewport sets the drawing viewport.
func (r *Renderer) SetViewport(rect gpu.Rect) {
	r.queue(&renderCmd{kind: cmdSetViewport, rect: rect})
}

// SetClipRect sets or disables the scissor rectangle.
func (r *Renderer) SetClipRect(rect gpu.Rect, enabled bool) {
	r.queue(&renderCmd{kind: cmdSetClipRect, rect: rect, enabled: enabled})
}

// Clear fills the render target with the draw color.
func (r *Renderer) Clear() {
	r.queue(&renderCmd{kind: cmdClear, color: r.convColor(r.drawColor)})
}

// convColor converts a draw color to the output space:
// linearized when the composition is linear, then scaled.
func (r *Renderer) convColor(c gpu.Color) gpu.Color {
	if r.linear {
		c.R = srgbToLinear(c.R)
		c.G = srgbToLinear(c.G)
		c.B = srgbToLinear(c.B)
	}
	c.R *= r.colorScale
	c.G *= r.colorScale
	c.B *= r.colorScale
	return c
}

// Points queues a point draw.
func (r *Renderer) Points(points []f32.Vec2) {
	if len(points) == 0 {
		return
	}
	r.queuePointVerts(cmdDrawPoints, points)
}

// Lines queues a line draw. Two points draw a segment;
// more draw a joined strip.
func (r *Renderer) Lines(points []f32.Vec2) {
	if len(points) < 2 {
		return
	}
	r.queuePointVerts(cmdDrawLines, points)
}

func (r *Renderer) queuePointVerts(kind cmdKind, points []f32.Vec2) {
	verts, first := r.allocVertices(len(points) * 8)
	for i, p := range points {
		// Center on the texel.
		putFloat32(verts[i*8:], 0.5+p[0])
		putFloat32(verts[i*8+4:], 0.5+p[1])
	}
	r.queue(&renderCmd{
		kind:  kind,
		first: first,
		count: len(points),
		blend: r.blend,
	})
}

// Geometry queues a textured or untextured triangle-list
// draw. uv may be nil when tex is nil; indices may be nil
// to draw vertices in order.
func (r *Renderer) Geometry(tex *Texture, xy []f32.Vec2, colors []gpu.Color, uv []f32.Vec2, indices []int) error {
	count := len(xy)
	if indices != nil {
		count = len(indices)
	}
	if count == 0 {
		return nil
	}
	if len(colors) != len(xy) {
		return errors.New("render: geometry colors must match vertices")
	}
	if tex != nil && len(uv) != len(xy) {
		return errors.New("render: geometry uv must match vertices")
	}

	stride := 24
	if tex != nil {
		stride = 32
	}
	verts, first := r.allocVertices(count * stride)
	for i := 0; i < count; i++ {
		j := i
		if indices != nil {
			j = indices[i]
		}
		out := verts[i*stride:]
		putFloat32(out[0:], xy[j][0])
		putFloat32(out[4:], xy[j][1])
		c := colors[j]
		if r.linear {
			c.R = srgbToLinear(c.R)
			c.G = srgbToLinear(c.G)
			c.B = srgbToLinear(c.B)
		}
		putFloat32(out[8:], c.R*r.colorScale)
		putFloat32(out[12:], c.G*r.colorScale)
		putFloat32(out[16:], c.B*r.colorScale)
		putFloat32(out[20:], c.A)
		if tex != nil {
			putFloat32(out[24:], uv[j][0]*float32(tex.width))
			putFloat32(out[28:], uv[j][1]*float32(tex.height))
		}
	}

	blend := r.blend
	if tex != nil {
		blend = tex.Blend
	}
	r.queue(&renderCmd{
		kind:    cmdGeometry,
		first:   first,
		count:   count,
		texture: tex,
		blend:   blend,
	})
	return nil
}

// SetRenderTarget redirects drawing to a target texture,
// or back to the window when tex is nil.
func (r *Renderer) SetRenderTarget(tex *Texture) error {
	if tex != nil && tex.access != AccessTarget {
		return errors.New("render: texture is not a render target")
	}
	r.state.renderTarget = tex
	return nil
}

/* Command stream consumption */

func (r *Renderer) uploadVertices() error {
	if len(r.vertexData) == 0 {
		return nil
	}
	if len(r.vertexData) > vertexBufferSize {
		return fmt.Errorf("render: vertex batch of %d bytes exceeds buffer size", len(r.vertexData))
	}
	staging, err := r.dev.MapTransferBuffer(r.vertices.transferBuf, true)
	if err != nil {
		return err
	}
	copy(staging, r.vertexData)
	r.dev.UnmapTransferBuffer(r.vertices.transferBuf)

	pass := r.state.cmdBuf.BeginCopyPass()
	if pass == nil {
		return errors.New("render: could not begin copy pass")
	}
	pass.UploadToBuffer(
		&gpu.TransferBufferLocation{TransferBuffer: r.vertices.transferBuf},
		&gpu.BufferRegion{Buffer: r.vertices.buffer, Size: len(r.vertexData)},
		true)
	pass.End()
	return nil
}

// restartRenderPass ends any active render pass and begins
// a fresh one over the current color attachment, then
// downgrades the attachment's load op so that subsequent
// restarts preserve contents.
func (r *Renderer) restartRenderPass() *gpu.RenderPass {
	if r.state.renderPass != nil {
		r.state.renderPass.End()
	}
	r.state.renderPass = r.state.cmdBuf.BeginRenderPass(
		[]gpu.ColorAttachmentInfo{r.state.colorAttachment}, nil)

	if r.state.renderPass != nil {
		if r.state.viewport.W > 0 && r.state.viewport.H > 0 {
			r.state.renderPass.SetViewport(&r.state.viewport)
		}
		if r.state.scissorEnabled {
			r.state.renderPass.SetScissor(&r.state.scissor)
		}
	}
	r.state.colorAttachment.LoadOp = gpu.LoadOpLoad
	return r.state.renderPass
}

// pushUniforms uploads the per-draw uniform block: an
// ortho projection over the viewport, the constant draw
// color and the bound texture's size.
func (r *Renderer) pushUniforms(cmd *renderCmd) {
	var mvp f32.Mat4
	if r.state.viewport.W > 0 && r.state.viewport.H > 0 {
		mvp[0] = 2 / r.state.viewport.W
		mvp[5] = -2 / r.state.viewport.H
	}
	mvp[10] = 1
	mvp[12] = -1
	mvp[13] = 1
	mvp[15] = 1

	var data [88]byte
	for i, f := range mvp {
		putFloat32(data[i*4:], f)
	}
	c := r.state.drawColor
	putFloat32(data[64:], c.R)
	putFloat32(data[68:], c.G)
	putFloat32(data[72:], c.B)
	putFloat32(data[76:], c.A)
	if cmd.texture != nil {
		putFloat32(data[80:], float32(cmd.texture.width))
		putFloat32(data[84:], float32(cmd.texture.height))
	}
	r.state.cmdBuf.PushVertexUniformData(0, data[:])
}

// primitiveCount returns how many primitives numVerts
// vertices assemble into.
func primitiveCount(p gpu.PrimitiveType, numVerts int) int {
	switch p {
	case gpu.PrimPointList:
		return numVerts
	case gpu.PrimLineList:
		return numVerts / 2
	case gpu.PrimLineStrip:
		return numVerts - 1
	case gpu.PrimTriangleList:
		return numVerts / 3
	case gpu.PrimTriangleStrip:
		return numVerts - 2
	}
	return 0
}

// draw issues one coalesced draw call.
func (r *Renderer) draw(cmd *renderCmd, numVerts, offset int, prim gpu.PrimitiveType) error {
	if r.state.renderPass == nil {
		if restarted := r.restartRenderPass(); restarted == nil {
			return errors.New("render: could not begin render pass")
		}
	}
	pass := r.state.renderPass

	var vid vertexShaderID
	var fid fragmentShaderID
	if prim == gpu.PrimTriangleList {
		if cmd.texture != nil {
			vid = vertTriTexture
			fid = cmd.texture.shader
		} else {
			vid = vertTriColor
			fid = fragColor
		}
	} else {
		vid = vertLinePoint
		fid = fragColor
	}

	format := r.swapchain.format
	if r.state.renderTarget != nil {
		format = r.state.renderTarget.format
	}
	pl, err := r.pipelines.get(r.dev, &r.shaders, pipelineKey{
		blend:  cmd.blend,
		vert:   vid,
		frag:   fid,
		prim:   prim,
		format: format,
	})
	if err != nil {
		return err
	}

	pass.BindGraphicsPipeline(pl)
	if t := cmd.texture; t != nil {
		pass.BindFragmentSamplers(0, []gpu.TextureSamplerBinding{{
			Texture: t.tex,
			Sampler: r.sampler(t.Scale, t.Address),
		}})
	}
	pass.BindVertexBuffers(0, []gpu.BufferBinding{{Buffer: r.vertices.buffer, Offset: offset}})
	r.pushUniforms(cmd)
	pass.DrawPrimitives(0, primitiveCount(prim, numVerts))
	return nil
}

// flush consumes the frame's command stream.
func (r *Renderer) flush() error {
	defer func() {
		r.head = nil
		r.tail = nil
		r.vertexData = r.vertexData[:0]
	}()

	if err := r.uploadVertices(); err != nil {
		return err
	}

	r.state.colorAttachment.LoadOp = gpu.LoadOpLoad
	if r.state.renderTarget != nil {
		r.state.colorAttachment.Slice = gpu.TextureSlice{Texture: r.state.renderTarget.tex}
	} else {
		r.state.colorAttachment.Slice = gpu.TextureSlice{Texture: r.swapchain.texture}
	}
	if r.state.colorAttachment.Slice.Texture == nil {
		return errors.New("render: render target texture is nil")
	}

	for cmd := r.head; cmd != nil; cmd = cmd.next {
		switch cmd.kind {
		case cmdSetDrawColor:
			r.state.drawColor = cmd.color

		case cmdSetViewport:
			r.state.viewport = gpu.Viewport{
				X: float32(cmd.rect.X), Y: float32(cmd.rect.Y),
				W: float32(cmd.rect.W), H: float32(cmd.rect.H),
				MinDepth: 0, MaxDepth: 1,
			}
			if r.state.renderPass != nil && cmd.rect.W > 0 && cmd.rect.H > 0 {
				r.state.renderPass.SetViewport(&r.state.viewport)
			}

		case cmdSetClipRect:
			r.state.scissor = cmd.rect
			r.state.scissorEnabled = cmd.enabled
			if r.state.renderPass != nil && cmd.enabled {
				r.state.renderPass.SetScissor(&r.state.scissor)
			}

		case cmdClear:
			// The load op is an attribute of pass begin,
			// so an active pass restarts for the clear to
			// take effect.
			r.state.colorAttachment.ClearColor = cmd.color
			r.state.colorAttachment.LoadOp = gpu.LoadOpClear
			if r.state.renderPass != nil {
				r.restartRenderPass()
			}

		case cmdDrawLines:
			if cmd.count > 2 {
				// Joined runs draw as one strip and never
				// coalesce with their neighbors.
				if err := r.draw(cmd, cmd.count, cmd.first, gpu.PrimLineStrip); err != nil {
					return err
				}
				break
			}
			final := cmd
			count := cmd.count
			for next := cmd.next; next != nil; next = next.next {
				if next.kind != cmdDrawLines || next.count != 2 || next.blend != cmd.blend {
					break
				}
				final = next
				count += next.count
			}
			if err := r.draw(cmd, count, cmd.first, gpu.PrimLineList); err != nil {
				return err
			}
			cmd = final

		case cmdDrawPoints, cmdGeometry:
			// Runs of the same kind with the same texture
			// and blend mode combine into one draw call.
			final := cmd
			count := cmd.count
			for next := cmd.next; next != nil; next = next.next {
				if next.kind != cmd.kind || next.texture != cmd.texture || next.blend != cmd.blend {
					break
				}
				final = next
				count += next.count
			}
			prim := gpu.PrimTriangleList
			if cmd.kind == cmdDrawPoints {
				prim = gpu.PrimPointList
			}
			if err := r.draw(cmd, count, cmd.first, prim); err != nil {
				return err
			}
			cmd = final

		case cmdNoOp:
		}
	}

	// A pending clear with no draws still needs a pass.
	if r.state.colorAttachment.LoadOp == gpu.LoadOpClear && r.state.renderPass == nil {
		r.restartRenderPass()
	}
	if r.state.renderPass != nil {
		r.state.renderPass.End()
		r.state.renderPass = nil
	}
	return nil
}

// Present flushes the frame and presents the window.
// The previous frame's fence is waited on and released, so
// exactly one submission stays outstanding.
func (r *Renderer) Present() error {
	if err := r.flush(); err != nil {
		return err
	}
	next, err := r.state.cmdBuf.SubmitAndAcquireFence()
	if err != nil {
		return err
	}
	if r.presentFence != nil {
		if err := r.dev.WaitForFences(true, r.presentFence); err != nil {
			return err
		}
		r.dev.ReleaseFence(r.presentFence)
	}
	r.presentFence = next

	for _, tb := range r.retired {
		r.dev.ReleaseTransferBuffer(tb)
	}
	r.retired = r.retired[:0]

	cb, err := r.dev.AcquireCommandBuffer()
	if err != nil {
		return err
	}
	r.state.cmdBuf = cb
	return r.renewSwapchain()
}

// Destroy releases everything the renderer owns, the
// device included.
func (r *Renderer) Destroy() {
	if r.dev == nil {
		return
	}
	if r.presentFence != nil {
		r.dev.WaitForFences(true, r.presentFence)
		r.dev.ReleaseFence(r.presentFence)
		r.presentFence = nil
	}
	if r.state.cmdBuf != nil {
		r.state.cmdBuf.Submit()
		r.state.cmdBuf = nil
	}
	for _, tb := range r.retired {
		r.dev.ReleaseTransferBuffer(tb)
	}
	r.retired = nil
	for i := range r.samplers {
		for j := range r.samplers[i] {
			r.dev.ReleaseSampler(r.samplers[i][j])
			r.samplers[i][j] = nil
		}
	}
	r.dev.UnclaimWindow(r.win)
	r.dev.ReleaseTransferBuffer(r.vertices.transferBuf)
	r.dev.ReleaseBuffer(r.vertices.buffer)
	r.pipelines.release(r.dev)
	r.shaders.release(r.dev)
	r.dev.Destroy()
	r.dev = nil
}

// srgbToLinear converts one sRGB-encoded channel to
// linear light.
func srgbToLinear(x float32) float32 {
	if x <= 0.04045 {
		return x / 12.92
	}
	return float32(math.Pow(float64(x+0.055)/1.055, 2.4))
}
