package glyphatlas

import "github.com/gogpu/glyphatlas/backend"

// Draw renders a text mesh onto the target with the given transform and
// color, issuing exactly one indexed draw call.
//
// Drawing an empty mesh is a no-op and returns nil; zero draw calls reach
// the device. The matrix maps local text space (baseline at y=0, one line
// of text per unit of height) to clip space.
func Draw(mesh *TextMesh, system *TextSystem, target backend.Target, matrix Mat4, color RGBA) error {
	if mesh == nil || mesh.IsEmpty() || mesh.vertexBuf == nil || mesh.indexBuf == nil {
		return nil
	}
	if system == nil {
		return ErrNilSystem
	}
	if system.program == nil {
		return ErrSystemClosed
	}

	return system.device.Draw(target, &backend.DrawCall{
		Program:    system.program,
		Vertices:   mesh.vertexBuf,
		Indices:    mesh.indexBuf,
		IndexCount: len(mesh.indices),
		Texture:    mesh.texture,
		Matrix:     [16]float32(matrix),
		Color:      color.components(),
	})
}
