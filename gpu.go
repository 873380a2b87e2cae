// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package gpu provides a portable, low-level GPU abstraction.
// A single front-end API issues resource creation, command
// recording (render/compute/copy passes) and swapchain
// presentation, and delegates to one of several native
// back-ends. Back-end packages register themselves on import;
// use CreateDevice to select one and construct a device.
//
// All calls on a device, its command buffers and its claimed
// windows must execute on a single thread. The GPU executes
// submitted work asynchronously; the CPU synchronizes with it
// only through fences.
package gpu

import (
	"errors"
	"log"
	"strings"
)

// Device is a process-wide handle to a configured back-end.
type Device struct {
	rend          Renderer
	drv           Driver
	shaderFormats ShaderFormat
	debugMode     bool
}

// DeviceOptions configures device creation.
type DeviceOptions struct {
	// ShaderFormats is the set of shader formats the
	// caller can provide. A back-end is selectable only
	// when at least one of its formats is requested.
	ShaderFormats ShaderFormat

	// DebugMode enables front-end argument validation and
	// back-end debug layers.
	DebugMode bool

	// PreferLowPower selects an integrated GPU when the
	// system has more than one adapter.
	PreferLowPower bool

	// Name forces a back-end by driver name.
	Name string
}

// CreateDevice selects a back-end and constructs a device.
//
// The first registered driver that matches name (when non
// empty), overlaps formats with its supported shader formats
// and probes successfully is chosen. Unselected drivers are
// skipped unless requested by name. Failure surfaces a
// diagnostic and returns an error.
func CreateDevice(formats ShaderFormat, debugMode, preferLowPower bool, name string) (*Device, error) {
	return CreateDeviceWith(&DeviceOptions{
		ShaderFormats:  formats,
		DebugMode:      debugMode,
		PreferLowPower: preferLowPower,
		Name:           name,
	})
}

// CreateDeviceWith is like CreateDevice, taking the
// configuration as an options record.
func CreateDeviceWith(opts *DeviceOptions) (*Device, error) {
	if opts == nil {
		return nil, invalidParam("opts")
	}
	drv := selectDriver(opts.Name, opts.ShaderFormats)
	if drv == nil {
		if opts.Name != "" {
			log.Printf("[!] gpu: requested driver '%s' unsupported", opts.Name)
		} else {
			log.Printf("[!] gpu: no supported back-end found")
		}
		return nil, ErrNoDevice
	}
	rend, err := drv.Open(opts.DebugMode, opts.PreferLowPower)
	if err != nil {
		return nil, err
	}
	return &Device{
		rend:          rend,
		drv:           drv,
		shaderFormats: drv.ShaderFormats() & opts.ShaderFormats,
		debugMode:     opts.DebugMode,
	}, nil
}

func selectDriver(name string, formats ShaderFormat) Driver {
	for _, drv := range Drivers() {
		if name != "" {
			if !strings.EqualFold(name, drv.Name()) {
				continue
			}
		} else if drv.Unselected() {
			continue
		}
		if drv.ShaderFormats()&formats == 0 {
			continue
		}
		if !drv.Prepare() {
			continue
		}
		return drv
	}
	return nil
}

// Destroy destroys the device.
// All objects created from the device must already be
// released.
func (d *Device) Destroy() {
	if d == nil || d.rend == nil {
		return
	}
	d.rend.Destroy()
	d.rend = nil
}

// Driver returns the Driver that backs the device.
func (d *Device) Driver() Driver { return d.drv }

// ShaderFormats returns the intersection of the formats
// requested at creation and the formats the back-end
// supports.
func (d *Device) ShaderFormats() ShaderFormat { return d.shaderFormats }

// DebugMode returns whether front-end validation is
// enabled.
func (d *Device) DebugMode() bool { return d.debugMode }

// SupportsTextureFormat returns whether textures of the
// given format, type and usage can be created.
func (d *Device) SupportsTextureFormat(f TextureFormat, t TextureType, u TextureUsage) bool {
	return d.rend.SupportsTextureFormat(f, t, u)
}

// BestSampleCount returns the highest supported sample
// count not exceeding want for render targets of format f.
func (d *Device) BestSampleCount(f TextureFormat, want SampleCount) SampleCount {
	return d.rend.BestSampleCount(f, want)
}

// Wait blocks until the GPU is idle.
func (d *Device) Wait() error { return d.rend.Wait() }

// WaitForFences blocks until the given fences signal.
// With waitAll unset it returns when any fence signals.
func (d *Device) WaitForFences(waitAll bool, fences ...*Fence) error {
	refs := make([]FenceRef, 0, len(fences))
	for _, f := range fences {
		if f != nil {
			refs = append(refs, f.ref)
		}
	}
	return d.rend.WaitForFences(waitAll, refs)
}

// QueryFence returns whether the fence has signaled.
// It never blocks.
func (d *Device) QueryFence(f *Fence) bool {
	if f == nil {
		warn("QueryFence: nil fence")
		return false
	}
	return d.rend.QueryFence(f.ref)
}

// ReleaseFence returns the fence to its back-end pool.
func (d *Device) ReleaseFence(f *Fence) {
	if f == nil {
		return
	}
	d.rend.ReleaseFence(f.ref)
	f.ref = nil
}

// invalidParam reports a missing or malformed required
// argument.
func invalidParam(param string) error {
	return errors.New("gpu: invalid parameter: " + param)
}

// validationErr reports a debug-mode validation failure.
// The diagnostic is logged in addition to being returned so
// that misuse surfaces even when the caller drops the error.
func validationErr(msg string) error {
	log.Printf("[!] gpu: %s", msg)
	return errors.New("gpu: " + msg)
}

// warn logs a diagnostic for a void call that cannot return
// an error.
func warn(msg string) {
	log.Printf("[!] gpu: %s", msg)
}
