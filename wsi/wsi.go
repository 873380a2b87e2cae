// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package wsi defines the window-system host interface that GPU
// back-ends consume.
// The module does not create native windows itself; a host embeds
// its windowing layer by calling RegisterHost. Back-ends read what
// they need (e.g., a native window handle) from the window's
// property bag. When no host is registered, NewWindow creates
// offscreen windows, which suffice for headless operation.
package wsi

import (
	"errors"
	"strconv"
)

// Window is the interface that defines a drawable window.
// The purpose of a window is to provide a surface into which
// a GPU can present.
type Window interface {
	// Width returns the window's width.
	Width() int

	// Height returns the window's height.
	Height() int

	// Title returns the window's title.
	Title() string

	// Props returns the window's property bag.
	// The bag stores host-provided data, such as native
	// handles, alongside data that claimed windows carry
	// for their GPU back-end.
	// It must not return nil.
	Props() *Props

	// Close closes the window.
	Close()
}

// Well-known property names that hosts may set.
const (
	// PropWin32HWND is the window's native HWND, stored
	// as an uintptr. Required to claim a window on the
	// D3D12 back-end.
	PropWin32HWND = "wsi.win32.hwnd"
)

// The maximum number of windows that can exist at any
// given time.
const MaxWindows = 16

// NewWindow creates a new window.
// It is served by the registered host, or by the offscreen
// implementation when no host was registered.
func NewWindow(width, height int, title string) (Window, error) {
	if windowCount >= MaxWindows {
		return nil, errors.New("wsi: too many windows")
	}
	win, err := newWindow(width, height, title)
	if err != nil {
		return nil, err
	}
	for i := range createdWindows {
		if createdWindows[i] == nil {
			createdWindows[i] = win
			windowCount++
			break
		}
	}
	return win, nil
}

// RegisterHost sets the factory that NewWindow delegates to.
// Hosts are expected to call it once, before any window is
// created. Passing nil restores the offscreen implementation.
func RegisterHost(factory func(width, height int, title string) (Window, error)) {
	if factory == nil {
		newWindow = newOffscreen
		return
	}
	newWindow = factory
}

// Windows returns all created windows.
// The returned value becomes out of date after calls to
// NewWindow and Window.Close.
func Windows() []Window {
	if windowCount == 0 {
		return nil
	}
	wins := make([]Window, 0, windowCount)
	for i := range createdWindows {
		if createdWindows[i] != nil {
			wins = append(wins, createdWindows[i])
		}
	}
	return wins
}

// closeWindow removes win from createdWindows and
// decrements windowCount.
// It must be called by implementations on win.Close.
// Note that win must be comparable.
func closeWindow(win Window) {
	for i := range createdWindows {
		if createdWindows[i] == win {
			createdWindows[i] = nil
			windowCount--
			return
		}
	}
}

var (
	newWindow      func(int, int, string) (Window, error) = newOffscreen
	windowCount    int
	createdWindows [MaxWindows]Window
)

// offscreen implements Window without a native surface.
type offscreen struct {
	width  int
	height int
	title  string
	props  Props
}

func newOffscreen(width, height int, title string) (Window, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New("wsi: invalid window size " +
			strconv.Itoa(width) + "x" + strconv.Itoa(height))
	}
	return &offscreen{width: width, height: height, title: title}, nil
}

func (w *offscreen) Width() int    { return w.width }
func (w *offscreen) Height() int   { return w.height }
func (w *offscreen) Title() string { return w.title }
func (w *offscreen) Props() *Props { return &w.props }
func (w *offscreen) Close()        { closeWindow(w) }
