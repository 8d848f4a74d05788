// Package glyphatlas rasterizes fonts into packed texture atlases and draws
// text as textured quad meshes.
//
// # Overview
//
// glyphatlas builds a single-channel coverage atlas containing every glyph a
// font defines, records normalized per-character metrics, and turns strings
// into vertex/index buffers that render with exactly one draw call per mesh.
// It integrates with the GoGPU ecosystem but works headless through a pure-Go
// software device.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/glyphatlas"
//	    "github.com/gogpu/glyphatlas/backend"
//	    _ "github.com/gogpu/glyphatlas/backend/softdev"
//	)
//
//	// The TextSystem owns the shader program and the device.
//	system, _ := glyphatlas.NewTextSystem(backend.MustDefault())
//
//	// The Atlas holds every glyph of the font at the requested size.
//	atlas, _ := glyphatlas.NewAtlas(fontData, 24)
//
//	// The TextMesh holds the buffers for one specific string.
//	mesh, _ := glyphatlas.NewTextMesh(system, atlas, "Hello world!")
//
//	// One draw call, with the caller's transform and color.
//	glyphatlas.Draw(mesh, system, target, matrix, glyphatlas.RGBA{R: 1, G: 1, A: 1})
//
// # Coordinate Space
//
// Mesh vertices live in a local text space where the baseline sits at y=0 and
// one unit of height corresponds to a line of text (glyphs may extend above 1
// or below 0). The caller maps this space to clip space with the 4x4 matrix
// passed to Draw.
//
// # Concurrency
//
// An Atlas is immutable after construction and safe for concurrent readers.
// TextMesh and TextSystem are single-owner objects and must not be mutated
// concurrently.
package glyphatlas
