// Copyright 2024 Gustavo C. Viegas. All rights reserved.

//go:build !windows

package d3d12

import (
	"fmt"
	"log"

	"github.com/ebitengine/purego"

	"gviegas/gpu"
)

// Away from Windows the D3D12 and DXGI libraries are
// provided by dxvk, and the shader compiler by vkd3d.
const (
	dllD3D12      = "libdxvk_d3d12.so"
	dllDXGI       = "libdxvk_dxgi.so"
	dllD3DCompile = "libvkd3d-utils.so.1"
)

// prepareDriver probes for a dxvk installation: the
// libraries must load and export the entry points the
// back-end drives.
func prepareDriver() bool {
	for _, probe := range [...]struct {
		lib string
		fn  string
	}{
		{dllD3D12, "D3D12CreateDevice"},
		{dllD3D12, "D3D12SerializeRootSignature"},
		{dllDXGI, "CreateDXGIFactory1"},
		{dllD3DCompile, "D3DCompile"},
	} {
		h, err := purego.Dlopen(probe.lib, purego.RTLD_NOW|purego.RTLD_LOCAL)
		if err != nil {
			log.Printf("[!] d3d12: could not find %s", probe.lib)
			return false
		}
		_, err = purego.Dlsym(h, probe.fn)
		purego.Dlclose(h)
		if err != nil {
			log.Printf("[!] d3d12: could not find function %s in %s", probe.fn, probe.lib)
			return false
		}
	}
	return true
}

// openDevice reports that device bring-up is not driven on
// this platform. The driver registers unselected here; a
// by-name request still probes dxvk above, so the failure
// mode is explicit rather than silent.
func openDevice(debugMode, preferLowPower bool) (gpu.Renderer, error) {
	return nil, fmt.Errorf("d3d12: device bring-up is driven on windows only: %w", gpu.ErrNotInstalled)
}
