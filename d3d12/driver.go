// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package d3d12

import (
	"runtime"

	"gviegas/gpu"
)

const driverName = "direct3d12"

// windowProp is the property under which claimed windows
// store their back-end data.
const windowProp = "gpu.d3d12.window"

const swapchainBufferCount = 2

// Sizes of the pooled uniform ring buffers, suballocated
// in 256-byte blocks.
const (
	uniformBufferSize = 1 << 20
	uniformBlockSize  = 256
	uniformBufferPool = 16
)

// Driver implements gpu.Driver.
type Driver struct{}

func init() {
	gpu.Register(&Driver{})
}

// Name returns the driver name.
func (*Driver) Name() string { return driverName }

// ShaderFormats returns the shader formats the back-end
// ingests: pre-compiled DXBC blobs and HLSL source text
// compiled at creation time.
func (*Driver) ShaderFormats() gpu.ShaderFormat {
	return gpu.ShaderFmtDXBC | gpu.ShaderFmtHLSL
}

// Unselected reports whether the back-end opted out of
// priority-order selection. Away from Windows the
// translation layer runs on dxvk, whose bring-up is
// probed but not driven; selection then requires an
// explicit name.
func (*Driver) Unselected() bool { return runtime.GOOS != "windows" }

// Prepare probes the runtime environment: the D3D12, DXGI
// and shader-compiler libraries must load and a minimal
// device must be creatable.
func (*Driver) Prepare() bool { return prepareDriver() }

// Open constructs the D3D12 renderer.
func (*Driver) Open(debugMode, preferLowPower bool) (gpu.Renderer, error) {
	return openDevice(debugMode, preferLowPower)
}
