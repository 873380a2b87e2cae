// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package d3d12

import (
	"runtime"
	"testing"

	"gviegas/gpu"
)

func TestRegistration(t *testing.T) {
	for _, drv := range gpu.Drivers() {
		if drv.Name() != driverName {
			continue
		}
		want := gpu.ShaderFmtDXBC | gpu.ShaderFmtHLSL
		if f := drv.ShaderFormats(); f != want {
			t.Errorf("shader formats:\nhave %v\nwant %v", f, want)
		}
		if onWindows := runtime.GOOS == "windows"; drv.Unselected() == onWindows {
			t.Errorf("Unselected:\nhave %v\nwant %v", drv.Unselected(), !onWindows)
		}
		return
	}
	t.Fatal("direct3d12 driver is not registered")
}
