// Package softdev provides a pure-Go software device for glyphatlas.
//
// The device composites text meshes into in-memory images and counts every
// draw call it receives, which makes it the reference device for tests and
// for headless rendering. It registers itself as "software" on import:
//
//	import _ "github.com/gogpu/glyphatlas/backend/softdev"
package softdev
