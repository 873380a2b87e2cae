// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package gpu

import (
	"errors"
	"log"
	"sync"
)

// Driver is the interface that a back-end implements to
// participate in device selection.
type Driver interface {
	// Name returns the name of the driver.
	// It must not cause the driver to be opened.
	Name() string

	// ShaderFormats returns the shader formats the
	// back-end can ingest.
	ShaderFormats() ShaderFormat

	// Prepare probes the runtime environment.
	// It returns true only when the required native
	// libraries can be loaded and a minimal device can
	// be created. It must not leave state behind.
	Prepare() bool

	// Unselected reports whether the back-end opted out
	// of priority-order selection. Unselected back-ends
	// are only considered when requested by name.
	Unselected() bool

	// Open constructs a device renderer.
	// Callers should assume that Open is not safe for
	// parallel execution.
	Open(debugMode, preferLowPower bool) (Renderer, error)
}

// ErrNotInstalled means that a platform-specific library
// required for a driver to work is not present in the
// system.
var ErrNotInstalled = errors.New("gpu: missing required library")

// ErrNoDevice means that no suitable back-end could be
// found for the requested configuration.
var ErrNoDevice = errors.New("gpu: no suitable device found")

// ErrDeviceRemoved means that the native device was lost.
// The caller is expected to destroy the device and create
// a new one.
var ErrDeviceRemoved = errors.New("gpu: device removed")

// Drivers returns the registered Drivers, in priority
// order. Back-end packages register themselves on import,
// so drivers whose packages were not imported will not be
// considered for selection.
func Drivers() []Driver {
	driverMu.Lock()
	defer driverMu.Unlock()
	drv := make([]Driver, len(drivers))
	copy(drv, drivers)
	return drv
}

// Register registers a Driver.
// Driver implementations are expected to call Register
// exactly once, from an init function.
// If a driver with the same name has already been
// registered, it will be replaced by drv.
func Register(drv Driver) {
	driverMu.Lock()
	defer driverMu.Unlock()
	for i := range drivers {
		if drivers[i].Name() == drv.Name() {
			drivers[i] = drv
			log.Printf("[!] gpu: driver '%s' replaced", drv.Name())
			return
		}
	}
	drivers = append(drivers, drv)
	log.Printf("gpu: driver '%s' registered", drv.Name())
}

// Variables used for driver registration.
var (
	driverMu sync.Mutex
	drivers  = make([]Driver, 0, 1)
)
