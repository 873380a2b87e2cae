// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package vk_test

import (
	"testing"

	"gviegas/gpu"
	_ "gviegas/gpu/vk"
)

func TestRegistration(t *testing.T) {
	for _, drv := range gpu.Drivers() {
		if drv.Name() != "vulkan" {
			continue
		}
		if !drv.Unselected() {
			t.Error("vulkan driver must register unselected")
		}
		if drv.ShaderFormats() != gpu.ShaderFmtSPIRV {
			t.Errorf("vulkan shader formats:\nhave %v\nwant %v",
				drv.ShaderFormats(), gpu.ShaderFmtSPIRV)
		}
		return
	}
	t.Fatal("vulkan driver is not registered")
}
