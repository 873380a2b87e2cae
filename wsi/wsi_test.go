// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package wsi

import "testing"

func TestNewWindow(t *testing.T) {
	win, err := NewWindow(640, 480, "wsi test")
	if err != nil {
		t.Fatalf("NewWindow: %v", err)
	}
	if w := win.Width(); w != 640 {
		t.Errorf("win.Width:\nhave %v\nwant 640", w)
	}
	if h := win.Height(); h != 480 {
		t.Errorf("win.Height:\nhave %v\nwant 480", h)
	}
	if s := win.Title(); s != "wsi test" {
		t.Errorf("win.Title:\nhave %v\nwant wsi test", s)
	}
	if win.Props() == nil {
		t.Error("win.Props: unexpected nil")
	}

	n := len(Windows())
	win.Close()
	if len(Windows()) != n-1 {
		t.Error("Close: window was not removed from the registry")
	}
}

func TestNewWindowInvalidSize(t *testing.T) {
	if _, err := NewWindow(0, 480, "bad"); err == nil {
		t.Error("NewWindow: zero width was not rejected")
	}
	if _, err := NewWindow(640, -1, "bad"); err == nil {
		t.Error("NewWindow: negative height was not rejected")
	}
}

func TestWindowLimit(t *testing.T) {
	var wins []Window
	defer func() {
		for _, w := range wins {
			w.Close()
		}
	}()
	for {
		win, err := NewWindow(16, 16, "limit")
		if err != nil {
			break
		}
		wins = append(wins, win)
		if len(wins) > MaxWindows {
			t.Fatal("NewWindow: created more than MaxWindows windows")
		}
	}
}

func TestProps(t *testing.T) {
	var p Props
	if p.Has("x") {
		t.Error("Props.Has on empty bag:\nhave true\nwant false")
	}
	p.Set("x", 1)
	if !p.Has("x") {
		t.Error("Props.Has:\nhave false\nwant true")
	}
	if v := p.Get("x"); v != 1 {
		t.Errorf("Props.Get:\nhave %v\nwant 1", v)
	}
	p.Set("x", 2)
	if v := p.Get("x"); v != 2 {
		t.Errorf("Props.Get after replace:\nhave %v\nwant 2", v)
	}
	p.Clear("x")
	if p.Has("x") {
		t.Error("Props.Clear: entry is still present")
	}

	if x := p.Pointer(PropWin32HWND); x != 0 {
		t.Errorf("Props.Pointer on absent entry:\nhave %v\nwant 0", x)
	}
	p.Set(PropWin32HWND, uintptr(0xbeef))
	if x := p.Pointer(PropWin32HWND); x != 0xbeef {
		t.Errorf("Props.Pointer:\nhave %#x\nwant 0xbeef", x)
	}
	p.Set("y", "not a pointer")
	if x := p.Pointer("y"); x != 0 {
		t.Errorf("Props.Pointer on mistyped entry:\nhave %v\nwant 0", x)
	}
}
