// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package vk registers the Vulkan back-end entry with the
// gpu driver registry.
// The entry probes the Vulkan loader so that availability
// queries answer truthfully, but it declares itself
// unselected: the Vulkan translation layer is not carried
// by this module, so opening a device reports a missing
// implementation rather than silently degrading.
package vk

import (
	"errors"
	"log"

	vulkan "github.com/goki/vulkan"

	"gviegas/gpu"
)

const driverName = "vulkan"

// Driver implements gpu.Driver.
type Driver struct{}

func init() {
	gpu.Register(&Driver{})
}

// Name returns the driver name.
func (*Driver) Name() string { return driverName }

// ShaderFormats returns SPIR-V, the only format the
// Vulkan back-end ingests.
func (*Driver) ShaderFormats() gpu.ShaderFormat { return gpu.ShaderFmtSPIRV }

// Unselected reports true: the entry is informational and
// reachable by explicit name only.
func (*Driver) Unselected() bool { return true }

// Prepare probes for a working Vulkan loader.
func (*Driver) Prepare() bool {
	if err := vulkan.Init(); err != nil {
		log.Printf("[!] vk: could not initialize loader: %v", err)
		return false
	}
	return true
}

// Open reports that the translation layer is not built
// into this module.
func (*Driver) Open(debugMode, preferLowPower bool) (gpu.Renderer, error) {
	return nil, errors.New("vk: translation layer not compiled in")
}
