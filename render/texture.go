// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package render

import (
	"errors"
	"image"

	"golang.org/x/image/draw"

	"gviegas/gpu"
)

// Access describes how a texture's contents change.
type Access int

// Access patterns.
const (
	// AccessStatic textures update rarely.
	AccessStatic Access = iota
	// AccessStreaming textures keep a host-side shadow
	// for Lock/Unlock updates.
	AccessStreaming
	// AccessTarget textures can be drawn into.
	AccessTarget
)

// Texture is a 2D image usable by Geometry draws.
type Texture struct {
	r      *Renderer
	tex    *gpu.Texture
	width  int
	height int
	format gpu.TextureFormat
	access Access
	shader fragmentShaderID

	// Blend, Scale and Address select the pipeline and
	// sampler of draws that use the texture.
	Blend   BlendMode
	Scale   ScaleMode
	Address AddressMode

	// Streaming shadow.
	pixels     []byte
	pitch      int
	lockedRect gpu.Rect
}

const textureBytesPerPixel = 4

// CreateTexture creates a w by h RGBA texture.
func (r *Renderer) CreateTexture(w, h int, access Access) (*Texture, error) {
	if w <= 0 || h <= 0 {
		return nil, errors.New("render: invalid texture size")
	}
	format := gpu.TexFmtRGBA8
	usage := gpu.TexUsageSampler
	if access == AccessTarget {
		usage |= gpu.TexUsageColorTarget
	}
	tex, err := r.dev.CreateTexture(&gpu.TextureInfo{
		Format:      format,
		Type:        gpu.Texture2D,
		Width:       w,
		Height:      h,
		Depth:       1,
		LayerCount:  1,
		LevelCount:  1,
		SampleCount: gpu.Samples1,
		Usage:       usage,
	})
	if err != nil {
		return nil, err
	}
	t := &Texture{
		r:      r,
		tex:    tex,
		width:  w,
		height: h,
		format: format,
		access: access,
		shader: fragTextureRGBA,
		Blend:  BlendAlpha,
		Scale:  ScaleLinear,
	}
	if access == AccessStreaming {
		t.pitch = w * textureBytesPerPixel
		t.pixels = make([]byte, h*t.pitch)
	}
	return t, nil
}

// CreateTextureFromImage creates a static texture holding
// img, converting through RGBA when necessary.
func (r *Renderer) CreateTextureFromImage(img image.Image) (*Texture, error) {
	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != bounds.Dx()*textureBytesPerPixel {
		rgba = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	}
	t, err := r.CreateTexture(bounds.Dx(), bounds.Dy(), AccessStatic)
	if err != nil {
		return nil, err
	}
	rect := gpu.Rect{W: int32(bounds.Dx()), H: int32(bounds.Dy())}
	if err := t.Update(rect, rgba.Pix, rgba.Stride); err != nil {
		t.Destroy()
		return nil, err
	}
	return t, nil
}

// Update replaces the pixels of a texture region.
// pixels addresses rows pitch bytes apart; each row holds
// rect.W RGBA texels. The copy stages through a single-use
// upload buffer sized exactly to the region.
func (t *Texture) Update(rect gpu.Rect, pixels []byte, pitch int) error {
	rowSize := int(rect.W) * textureBytesPerPixel
	dataSize := rowSize * int(rect.H)
	if dataSize == 0 {
		return nil
	}

	tbuf, err := t.r.dev.CreateTransferBuffer(&gpu.TransferBufferInfo{
		Usage: gpu.TransferUpload,
		Size:  dataSize,
	})
	if err != nil {
		return err
	}
	staging, err := t.r.dev.MapTransferBuffer(tbuf, false)
	if err != nil {
		t.r.dev.ReleaseTransferBuffer(tbuf)
		return err
	}
	if pitch == rowSize {
		copy(staging, pixels[:dataSize])
	} else {
		for y := 0; y < int(rect.H); y++ {
			copy(staging[y*rowSize:(y+1)*rowSize], pixels[y*pitch:y*pitch+rowSize])
		}
	}
	t.r.dev.UnmapTransferBuffer(tbuf)

	pass := t.r.state.cmdBuf.BeginCopyPass()
	if pass == nil {
		t.r.dev.ReleaseTransferBuffer(tbuf)
		return errors.New("render: could not begin copy pass")
	}
	pass.UploadToTexture(
		&gpu.TextureTransferInfo{
			TransferBuffer: tbuf,
			ImagePitch:     int(rect.W),
			ImageHeight:    int(rect.H),
		},
		&gpu.TextureRegion{
			Slice: gpu.TextureSlice{Texture: t.tex},
			X:     int(rect.X),
			Y:     int(rect.Y),
			W:     int(rect.W),
			H:     int(rect.H),
			D:     1,
		},
		true)
	pass.End()

	// The buffer stays alive until the frame's submission
	// completes.
	t.r.retired = append(t.r.retired, tbuf)
	return nil
}

// Lock returns writable pixels of a streaming texture
// region along with the shadow's pitch. The update reaches
// the GPU on Unlock.
func (t *Texture) Lock(rect gpu.Rect) ([]byte, int, error) {
	if t.access != AccessStreaming {
		return nil, 0, errors.New("render: texture is not streaming")
	}
	t.lockedRect = rect
	off := int(rect.Y)*t.pitch + int(rect.X)*textureBytesPerPixel
	return t.pixels[off:], t.pitch, nil
}

// Unlock uploads the region locked by the previous Lock.
func (t *Texture) Unlock() error {
	if t.access != AccessStreaming {
		return errors.New("render: texture is not streaming")
	}
	rect := t.lockedRect
	off := int(rect.Y)*t.pitch + int(rect.X)*textureBytesPerPixel
	return t.Update(rect, t.pixels[off:], t.pitch)
}

// Destroy releases the texture.
func (t *Texture) Destroy() {
	if t == nil || t.tex == nil {
		return
	}
	if t.r.state.renderTarget == t {
		t.r.state.renderTarget = nil
	}
	t.r.dev.ReleaseTexture(t.tex)
	t.tex = nil
	t.pixels = nil
}
