package glyphatlas

import "math"

// packedGlyph records where a glyph bitmap landed in the atlas.
// Coordinates are in pixels, measured from the atlas top-left corner.
type packedGlyph struct {
	bmp  glyphBitmap
	x, y int
}

// atlasImage is the packed coverage image before normalization.
type atlasImage struct {
	// pixels holds width*height coverage values in [0, 1], row-major.
	pixels []float32
	width  int
	height int
}

// packGlyphs places glyph bitmaps into a power-of-two-wide image using
// row-based cursor packing: glyphs fill the current row left to right and
// wrap to a fresh row when the next one does not fit. Rows are as tall as
// the tallest glyph placed since the last wrap.
//
// Placement is fully determined by the input order, so the same bitmaps
// always produce the same image.
func packGlyphs(bitmaps []glyphBitmap, fontSize uint32) (atlasImage, []packedGlyph, error) {
	// Width heuristic: aim for a roughly square texture. Any width works
	// as long as it holds the widest glyph, which the pre-scan below
	// guarantees.
	estimate := fontSize * 2
	if sq := uint32(math.Sqrt(float64(len(bitmaps)) * float64(fontSize) * float64(fontSize))); sq > estimate {
		estimate = sq
	}
	width := nextPow2(int(estimate))

	maxGlyphWidth := 0
	for _, bmp := range bitmaps {
		if bmp.width > maxGlyphWidth {
			maxGlyphWidth = bmp.width
		}
	}
	// A glyph wider than the estimate would never fit on any row; widen
	// the texture up front instead of truncating it later.
	if maxGlyphWidth >= width {
		width = nextPow2(maxGlyphWidth + 1)
	}

	var (
		pixels     []float32
		cursorX    int
		cursorY    int
		rowsToSkip int
	)

	placed := make([]packedGlyph, 0, len(bitmaps))

	for _, bmp := range bitmaps {
		if bmp.width >= width {
			// Unreachable after the pre-scan; fail loudly rather than
			// clip the glyph.
			return atlasImage{}, nil, &PackError{
				Rune:       bmp.r,
				GlyphWidth: bmp.width,
				AtlasWidth: width,
			}
		}

		// Wrap to the next row when the glyph does not fit.
		if cursorX+bmp.width >= width {
			cursorX = 0
			cursorY += rowsToSkip
			rowsToSkip = 0
		}

		// Extend the image with blank rows to hold this glyph.
		if rowsToSkip < bmp.height {
			diff := bmp.height - rowsToSkip
			rowsToSkip = bmp.height
			pixels = append(pixels, make([]float32, diff*width)...)
		}

		x := cursorX
		if bmp.height >= 1 && bmp.width >= 1 {
			for row := 0; row < bmp.height; row++ {
				src := bmp.coverage[row*bmp.width : (row+1)*bmp.width]
				dstOff := (cursorY+row)*width + cursorX
				dst := pixels[dstOff : dstOff+bmp.width]
				for i, v := range src {
					dst[i] = float32(v) / 255.0
				}
			}
			cursorX += bmp.width
		}

		placed = append(placed, packedGlyph{bmp: bmp, x: x, y: cursorY})
	}

	// Pad with blank rows until the height is a power of two.
	height := len(pixels) / width
	if height == 0 {
		height = 1
		pixels = make([]float32, width)
	} else if padded := nextPow2(height); padded != height {
		pixels = append(pixels, make([]float32, (padded-height)*width)...)
		height = padded
	}

	return atlasImage{pixels: pixels, width: width, height: height}, placed, nil
}

// nextPow2 returns the smallest power of two >= x.
func nextPow2(x int) int {
	if x <= 1 {
		return 1
	}
	x--
	x |= x >> 1
	x |= x >> 2
	x |= x >> 4
	x |= x >> 8
	x |= x >> 16
	x |= x >> 32
	return x + 1
}
