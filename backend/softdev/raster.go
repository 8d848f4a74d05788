package softdev

import "math"

// alphaDiscardThreshold mirrors the fragment stage: fragments at or below
// this alpha are dropped entirely.
const alphaDiscardThreshold = 0.01

// screenPoint is a transformed vertex in pixel coordinates, with its
// texture coordinates carried along.
type screenPoint struct {
	x, y float32
	u, v float32
}

// rasterizeQuads runs the text shader semantics on the CPU: vertices pass
// through the 4x4 matrix (with the x*4 scale applied first), fragments
// sample the coverage texture with linear filtering, alpha-test, and blend
// source-over.
//
// Vertices are consumed in groups of four (top-left, top-right,
// bottom-left, bottom-right), matching the quad layout of text meshes.
func rasterizeQuads(img *Image, vb *buffer, tex *texture, matrix [16]float32, color [4]float32) {
	w, h := img.Size()
	if w == 0 || h == 0 {
		return
	}

	count := vb.vertexCount()
	for quad := 0; quad+4 <= count; quad += 4 {
		var pts [4]screenPoint
		degenerate := false
		for i := 0; i < 4; i++ {
			v := vb.vertexAt(quad + i)
			sx, sy, ok := projectVertex(matrix, v.x, v.y, w, h)
			if !ok {
				degenerate = true
				break
			}
			pts[i] = screenPoint{x: sx, y: sy, u: v.u, v: v.v}
		}
		if !degenerate {
			fillQuad(img, tex, pts, color)
		}
	}
}

// projectVertex applies the vertex stage: clip = matrix * (4x, y, 0, 1),
// then the perspective divide and the viewport transform.
func projectVertex(m [16]float32, x, y float32, w, h int) (sx, sy float32, ok bool) {
	px := x * 4.0
	clipX := m[0]*px + m[1]*y + m[3]
	clipY := m[4]*px + m[5]*y + m[7]
	clipW := m[12]*px + m[13]*y + m[15]
	if clipW == 0 {
		return 0, 0, false
	}
	ndcX := clipX / clipW
	ndcY := clipY / clipW
	sx = (ndcX + 1) / 2 * float32(w)
	sy = (1 - ndcY) / 2 * float32(h)
	return sx, sy, true
}

// fillQuad rasterizes one parallelogram. Text quads are rectangles in
// local space, so any affine matrix maps them to parallelograms; the
// top-left corner with the two edge vectors spans the whole primitive.
func fillQuad(img *Image, tex *texture, pts [4]screenPoint, color [4]float32) {
	tl, tr, bl := pts[0], pts[1], pts[2]

	e1x := tr.x - tl.x
	e1y := tr.y - tl.y
	e2x := bl.x - tl.x
	e2y := bl.y - tl.y

	det := e1x*e2y - e1y*e2x
	if det == 0 {
		return
	}
	invDet := 1 / det

	minX := int(math.Floor(float64(min4(pts[0].x, pts[1].x, pts[2].x, pts[3].x))))
	maxX := int(math.Ceil(float64(max4(pts[0].x, pts[1].x, pts[2].x, pts[3].x))))
	minY := int(math.Floor(float64(min4(pts[0].y, pts[1].y, pts[2].y, pts[3].y))))
	maxY := int(math.Ceil(float64(max4(pts[0].y, pts[1].y, pts[2].y, pts[3].y))))

	w, h := img.Size()
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX > w {
		maxX = w
	}
	if maxY > h {
		maxY = h
	}

	for py := minY; py < maxY; py++ {
		for px := minX; px < maxX; px++ {
			dx := float32(px) + 0.5 - tl.x
			dy := float32(py) + 0.5 - tl.y

			// Solve d = a*e1 + b*e2 for the quad-local coordinates.
			a := (dx*e2y - dy*e2x) * invDet
			b := (e1x*dy - e1y*dx) * invDet
			if a < 0 || a > 1 || b < 0 || b > 1 {
				continue
			}

			u := tl.u + a*(tr.u-tl.u) + b*(bl.u-tl.u)
			v := tl.v + a*(tr.v-tl.v) + b*(bl.v-tl.v)

			coverage := tex.sample(u, v)
			alpha := color[3] * coverage
			if alpha <= alphaDiscardThreshold {
				continue
			}
			blendPixel(img, px, py, color[0], color[1], color[2], alpha)
		}
	}
}

// blendPixel composites a premultiplied fragment source-over into the
// target. The stored pixmap is alpha-premultiplied, matching image.RGBA.
func blendPixel(img *Image, x, y int, r, g, b, alpha float32) {
	pix := img.rgba.Pix
	off := img.rgba.PixOffset(x, y)

	srcR := r * alpha
	srcG := g * alpha
	srcB := b * alpha
	inv := 1 - alpha

	dstR := float32(pix[off+0]) / 255
	dstG := float32(pix[off+1]) / 255
	dstB := float32(pix[off+2]) / 255
	dstA := float32(pix[off+3]) / 255

	pix[off+0] = toByte(srcR + dstR*inv)
	pix[off+1] = toByte(srcG + dstG*inv)
	pix[off+2] = toByte(srcB + dstB*inv)
	pix[off+3] = toByte(alpha + dstA*inv)
}

func min4(a, b, c, d float32) float32 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	if d < m {
		m = d
	}
	return m
}

func max4(a, b, c, d float32) float32 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	if d > m {
		m = d
	}
	return m
}
