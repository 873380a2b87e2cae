// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package render

import (
	"encoding/binary"
	"math"

	"gviegas/gpu"
)

// cmdKind tags the nodes of the render-command stream.
type cmdKind int

const (
	cmdNoOp cmdKind = iota
	cmdSetDrawColor
	cmdSetViewport
	cmdSetClipRect
	cmdClear
	cmdDrawLines
	cmdDrawPoints
	cmdGeometry
)

// renderCmd is one node of the per-frame command stream.
// Nodes form a singly-linked list consumed in order at
// present time; adjacent compatible draws coalesce into a
// single native draw call there.
type renderCmd struct {
	kind cmdKind
	next *renderCmd

	// Draw payload: the byte offset of the draw's vertices
	// in the vertex arena, their count (in vertices) and
	// the state the draw depends on.
	first   int
	count   int
	texture *Texture
	blend   BlendMode

	// State payload.
	color   gpu.Color
	rect    gpu.Rect
	enabled bool
}

// queue appends a node to the command stream.
func (r *Renderer) queue(cmd *renderCmd) {
	if r.tail != nil {
		r.tail.next = cmd
	} else {
		r.head = cmd
	}
	r.tail = cmd
}

// allocVertices reserves n bytes of the frame's vertex
// arena and returns the slice and its byte offset.
func (r *Renderer) allocVertices(n int) ([]byte, int) {
	first := len(r.vertexData)
	r.vertexData = append(r.vertexData, make([]byte, n)...)
	return r.vertexData[first:], first
}

// putFloat32 little-endian encodes one float into the
// vertex arena or uniform scratch.
func putFloat32(dst []byte, f float32) {
	binary.LittleEndian.PutUint32(dst, math.Float32bits(f))
}
