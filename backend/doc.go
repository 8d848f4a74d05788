// Package backend defines the rendering device boundary for glyphatlas.
//
// A Device owns GPU (or software) resources: coverage textures, shader
// programs, and vertex/index buffers. Devices register themselves in a
// global registry from their package init, so importing a device package
// for side effects is enough to make it available:
//
//	import _ "github.com/gogpu/glyphatlas/backend/softdev"
//
// The registry picks the best available device by priority (wgpu first,
// software as fallback). Callers that hold concrete GPU handles construct
// a device directly instead of going through the registry.
package backend
