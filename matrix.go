package glyphatlas

// Mat4 is a 4x4 transform matrix in row-major order.
// It maps the local text space (baseline at y=0, one line of text per unit
// of height) to clip space.
type Mat4 [16]float32

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Scale returns a matrix scaling x, y and z by the given factors.
func Scale(sx, sy, sz float32) Mat4 {
	return Mat4{
		sx, 0, 0, 0,
		0, sy, 0, 0,
		0, 0, sz, 0,
		0, 0, 0, 1,
	}
}

// Translate returns a translation matrix.
func Translate(tx, ty, tz float32) Mat4 {
	return Mat4{
		1, 0, 0, tx,
		0, 1, 0, ty,
		0, 0, 1, tz,
		0, 0, 0, 1,
	}
}

// Mul returns the matrix product m * n.
func (m Mat4) Mul(n Mat4) Mat4 {
	var out Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[row*4+k] * n[k*4+col]
			}
			out[row*4+col] = sum
		}
	}
	return out
}
