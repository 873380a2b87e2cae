// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package gpu_test

import (
	"errors"
	"testing"

	"gviegas/gpu"
	"gviegas/gpu/internal/null"
	"gviegas/gpu/wsi"
)

func newTestDevice(t *testing.T, debugMode bool) *gpu.Device {
	t.Helper()
	dev, err := gpu.CreateDevice(gpu.ShaderFmtDXBC|gpu.ShaderFmtHLSL, debugMode, false, "null")
	if err != nil {
		t.Fatalf("CreateDevice: %v", err)
	}
	t.Cleanup(dev.Destroy)
	return dev
}

func TestDrivers(t *testing.T) {
	drivers := gpu.Drivers()
	if len(drivers) == 0 {
		t.Fatal("gpu.Drivers: no drivers registered")
	}
	for i := range drivers {
		name := drivers[i].Name()
		if name == "" {
			t.Error("gpu.Drivers: Driver.Name is empty")
		}
		for j := 0; j < i; j++ {
			if name == drivers[j].Name() {
				t.Error("gpu.Drivers: Driver.Name is not unique")
			}
		}
	}
}

func TestCreateDevice(t *testing.T) {
	dev := newTestDevice(t, true)
	if name := dev.Driver().Name(); name != "null" {
		t.Errorf("Device.Driver.Name:\nhave %v\nwant null", name)
	}
	if !dev.DebugMode() {
		t.Error("Device.DebugMode:\nhave false\nwant true")
	}
	want := gpu.ShaderFmtDXBC | gpu.ShaderFmtHLSL
	if f := dev.ShaderFormats(); f != want {
		t.Errorf("Device.ShaderFormats:\nhave %v\nwant %v", f, want)
	}
}

func TestCreateDeviceUnknownName(t *testing.T) {
	_, err := gpu.CreateDevice(gpu.ShaderFmtDXBC, false, false, "no-such-driver")
	if !errors.Is(err, gpu.ErrNoDevice) {
		t.Errorf("CreateDevice:\nhave %v\nwant %v", err, gpu.ErrNoDevice)
	}
}

func TestCreateDeviceNoFormatOverlap(t *testing.T) {
	_, err := gpu.CreateDevice(0, false, false, "null")
	if !errors.Is(err, gpu.ErrNoDevice) {
		t.Errorf("CreateDevice:\nhave %v\nwant %v", err, gpu.ErrNoDevice)
	}
}

func TestUnselectedNeedsName(t *testing.T) {
	// The null driver registers unselected, so a nameless
	// request must never pick it.
	dev, err := gpu.CreateDevice(gpu.ShaderFmtDXBC|gpu.ShaderFmtSPIRV, false, false, "")
	if err != nil {
		return
	}
	defer dev.Destroy()
	if dev.Driver().Name() == "null" {
		t.Error("CreateDevice: priority scan selected an unselected driver")
	}
}

func cubeInfo() gpu.TextureInfo {
	return gpu.TextureInfo{
		Format:      gpu.TexFmtRGBA8,
		Type:        gpu.TextureCube,
		Width:       256,
		Height:      256,
		Depth:       1,
		LayerCount:  6,
		LevelCount:  1,
		SampleCount: gpu.Samples1,
		Usage:       gpu.TexUsageSampler,
	}
}

func TestTextureValidation(t *testing.T) {
	dev := newTestDevice(t, true)

	// Non-square cube textures are rejected (debug mode).
	info := cubeInfo()
	info.Height = 128
	if tex, err := dev.CreateTexture(&info); err == nil {
		t.Error("CreateTexture: non-square cube texture was not rejected")
		dev.ReleaseTexture(tex)
	}

	for _, mutate := range [...]func(*gpu.TextureInfo){
		func(i *gpu.TextureInfo) { i.Width = 0 },
		func(i *gpu.TextureInfo) { i.LayerCount = 5 },
		func(i *gpu.TextureInfo) { i.LevelCount = 0 },
		func(i *gpu.TextureInfo) { i.Depth = 2 },
		func(i *gpu.TextureInfo) { i.SampleCount = gpu.Samples4 },
		func(i *gpu.TextureInfo) { i.Usage |= gpu.TexUsageGraphicsStorageRead },
	} {
		info := cubeInfo()
		mutate(&info)
		if tex, err := dev.CreateTexture(&info); err == nil {
			t.Errorf("CreateTexture(%+v): invalid cube info was not rejected", info)
			dev.ReleaseTexture(tex)
		}
	}

	// Integer formats cannot be sampled.
	info = gpu.TextureInfo{
		Format: gpu.TexFmtRGBA8ui, Type: gpu.Texture2D,
		Width: 4, Height: 4, Depth: 1, LayerCount: 1, LevelCount: 1,
		Usage: gpu.TexUsageSampler,
	}
	if tex, err := dev.CreateTexture(&info); err == nil {
		t.Error("CreateTexture: sampled integer format was not rejected")
		dev.ReleaseTexture(tex)
	}

	// A valid cube texture passes.
	info = cubeInfo()
	tex, err := dev.CreateTexture(&info)
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}
	dev.ReleaseTexture(tex)
}

func TestTextureValidationSkippedWithoutDebug(t *testing.T) {
	dev := newTestDevice(t, false)
	// Without debug mode creation is delegated; the null
	// back-end accepts anything.
	info := cubeInfo()
	info.Height = 128
	tex, err := dev.CreateTexture(&info)
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}
	dev.ReleaseTexture(tex)
}

func TestShaderFormatValidation(t *testing.T) {
	dev := newTestDevice(t, true)
	_, err := dev.CreateShader(&gpu.ShaderInfo{
		Code:   []byte{0x03, 0x02, 0x23, 0x07},
		Format: gpu.ShaderFmtSPIRV,
		Stage:  gpu.StageVertex,
	})
	if err == nil {
		t.Error("CreateShader: format outside the device's set was not rejected")
	}
	sh, err := dev.CreateShader(&gpu.ShaderInfo{
		Code:               []byte{0x44, 0x58, 0x42, 0x43},
		Format:             gpu.ShaderFmtDXBC,
		Stage:              gpu.StageVertex,
		UniformBufferCount: 1,
	})
	if err != nil {
		t.Fatalf("CreateShader: %v", err)
	}
	if n := sh.UniformBufferCount(); n != 1 {
		t.Errorf("Shader.UniformBufferCount:\nhave %v\nwant 1", n)
	}
	dev.ReleaseShader(sh)
}

func TestComputePipelineValidation(t *testing.T) {
	dev := newTestDevice(t, true)
	valid := gpu.ComputePipelineInfo{
		Code:         []byte{1},
		Format:       gpu.ShaderFmtDXBC,
		ThreadCountX: 8, ThreadCountY: 8, ThreadCountZ: 1,
	}
	if _, err := dev.CreateComputePipeline(&valid); err != nil {
		t.Fatalf("CreateComputePipeline: %v", err)
	}
	for _, mutate := range [...]func(*gpu.ComputePipelineInfo){
		func(i *gpu.ComputePipelineInfo) { i.ReadWriteStorageTextureCount = 9 },
		func(i *gpu.ComputePipelineInfo) { i.ReadWriteStorageBufferCount = 9 },
		func(i *gpu.ComputePipelineInfo) { i.ThreadCountX = 0 },
		func(i *gpu.ComputePipelineInfo) { i.Format = gpu.ShaderFmtMSL },
	} {
		info := valid
		mutate(&info)
		if _, err := dev.CreateComputePipeline(&info); err == nil {
			t.Errorf("CreateComputePipeline(%+v): invalid info was not rejected", info)
		}
	}
}

func TestClaimWindowRoundTrip(t *testing.T) {
	dev := newTestDevice(t, true)
	win, err := wsi.NewWindow(640, 480, "claim")
	if err != nil {
		t.Fatalf("wsi.NewWindow: %v", err)
	}
	defer win.Close()

	if err := dev.ClaimWindow(win, gpu.CompositionSDR, gpu.PresentVsync); err != nil {
		t.Fatalf("ClaimWindow: %v", err)
	}
	if !null.Claimed(win) {
		t.Fatal("ClaimWindow: no window data entry in the property bag")
	}
	if err := dev.ClaimWindow(win, gpu.CompositionSDR, gpu.PresentVsync); err == nil {
		t.Error("ClaimWindow: double claim was not rejected")
	}
	format, err := dev.SwapchainTextureFormat(win)
	if err != nil {
		t.Fatalf("SwapchainTextureFormat: %v", err)
	}
	if format != gpu.TexFmtBGRA8 {
		t.Errorf("SwapchainTextureFormat:\nhave %v\nwant %v", format, gpu.TexFmtBGRA8)
	}

	dev.UnclaimWindow(win)
	if null.Claimed(win) {
		t.Error("UnclaimWindow: property bag was not returned to its pre-claim state")
	}
}
