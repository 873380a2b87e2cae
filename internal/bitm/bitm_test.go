// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package bitm

import (
	"testing"
	"unsafe"
)

func TestNbit(t *testing.T) {
	for _, x := range [...][2]int{
		{int(unsafe.Sizeof(uint(0))) * 8, (&Bitm[uint]{}).nbit()},
		{int(unsafe.Sizeof(uint8(0))) * 8, (&Bitm[uint8]{}).nbit()},
		{int(unsafe.Sizeof(uint16(0))) * 8, (&Bitm[uint16]{}).nbit()},
		{int(unsafe.Sizeof(uint32(0))) * 8, (&Bitm[uint32]{}).nbit()},
		{int(unsafe.Sizeof(uint64(0))) * 8, (&Bitm[uint64]{}).nbit()},
		{int(unsafe.Sizeof(uintptr(0))) * 8, (&Bitm[uintptr]{}).nbit()},
	} {
		if x[0] != x[1] {
			t.Fatalf("Bitm[T].nbit:\nhave %v\nwant %v", x[0], x[1])
		}
	}
}

func TestZero(t *testing.T) {
	var bitm16 Bitm[uint16]
	if bitm16.m != nil {
		t.Fatalf("bitm16.m:\nhave %v\nwant nil", bitm16.m)
	}
	if bitm16.rem != 0 {
		t.Fatalf("bitm16.rem:\nhave %v\nwant 0", bitm16.rem)
	}
	if n := bitm16.Len(); n != 0 {
		t.Fatalf("bitm16.Len:\nhave %v\nwant 0", n)
	}
	if n := bitm16.Cap(); n != 0 {
		t.Fatalf("bitm16.Cap:\nhave %v\nwant 0", n)
	}
}

func TestGrow(t *testing.T) {
	var m Bitm[uint8]
	if idx := m.Grow(2); idx != 0 {
		t.Fatalf("m.Grow:\nhave %v\nwant 0", idx)
	}
	if n := m.Cap(); n != 16 {
		t.Fatalf("m.Cap:\nhave %v\nwant 16", n)
	}
	if n := m.Rem(); n != 16 {
		t.Fatalf("m.Rem:\nhave %v\nwant 16", n)
	}
	if idx := m.Grow(1); idx != 16 {
		t.Fatalf("m.Grow:\nhave %v\nwant 16", idx)
	}
	if n := m.Cap(); n != 24 {
		t.Fatalf("m.Cap:\nhave %v\nwant 24", n)
	}
}

func TestSetUnset(t *testing.T) {
	var m Bitm[uint32]
	m.Grow(1)
	for i := 0; i < m.Cap(); i++ {
		if m.IsSet(i) {
			t.Fatalf("m.IsSet(%v):\nhave true\nwant false", i)
		}
	}
	m.Set(3)
	m.Set(3)
	if n := m.Len(); n != 1 {
		t.Fatalf("m.Len:\nhave %v\nwant 1", n)
	}
	if !m.IsSet(3) {
		t.Fatal("m.IsSet(3):\nhave false\nwant true")
	}
	m.Unset(3)
	m.Unset(3)
	if n := m.Len(); n != 0 {
		t.Fatalf("m.Len:\nhave %v\nwant 0", n)
	}
}

func TestSearch(t *testing.T) {
	var m Bitm[uint16]
	if idx := m.Search(); idx != -1 {
		t.Fatalf("m.Search:\nhave %v\nwant -1", idx)
	}
	m.Grow(1)
	for i := 0; i < m.Cap(); i++ {
		idx := m.Search()
		if idx != i {
			t.Fatalf("m.Search:\nhave %v\nwant %v", idx, i)
		}
		m.Set(idx)
	}
	if idx := m.Search(); idx != -1 {
		t.Fatalf("m.Search:\nhave %v\nwant -1", idx)
	}
	m.Unset(9)
	if idx := m.Search(); idx != 9 {
		t.Fatalf("m.Search:\nhave %v\nwant 9", idx)
	}
	m.Clear()
	if n := m.Len(); n != 0 {
		t.Fatalf("m.Len:\nhave %v\nwant 0", n)
	}
	if idx := m.Search(); idx != 0 {
		t.Fatalf("m.Search:\nhave %v\nwant 0", idx)
	}
}
