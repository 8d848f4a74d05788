package glyphatlas

import (
	"bytes"
	"fmt"
	"image"
	"math"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// glyphBitmap is a rasterized glyph with placement metrics.
// All fields are in integer pixels.
type glyphBitmap struct {
	r rune

	// coverage holds width*height bytes, row-major, top row first.
	// Empty for glyphs with no visible pixels (e.g. space).
	coverage []byte
	width    int
	height   int

	// bearingLeft is the distance from the pen position to the left edge
	// of the bitmap.
	bearingLeft int

	// bearingTop is the distance from the baseline up to the top edge
	// of the bitmap.
	bearingTop int

	// advance is the horizontal pen advance in whole pixels.
	advance int
}

// rasterizeFont parses the font and rasterizes every glyph reachable from
// the character map, in character-map enumeration order.
//
// The parsed face never escapes this function: it is built fresh per call
// and released to the collector when the call returns. Individual glyphs
// that cannot be rasterized are skipped; an unparseable font or an empty
// character map is fatal.
func rasterizeFont(data []byte, fontSize uint32) ([]glyphBitmap, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	if fontSize == 0 {
		return nil, ErrInvalidFontSize
	}

	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFontLoad, err)
	}

	scale := float64(fontSize) / float64(face.Font.Upem())

	var bitmaps []glyphBitmap
	skipped := 0

	iter := face.Font.Cmap.Iter()
	for iter.Next() {
		r, gid := iter.Char()
		bmp, ok := rasterizeGlyph(face, r, gid, scale)
		if !ok {
			skipped++
			Logger().Debug("glyphatlas: glyph skipped", "rune", string(r))
			continue
		}
		bitmaps = append(bitmaps, bmp)
	}

	if len(bitmaps) == 0 {
		return nil, fmt.Errorf("%w: character map is empty", ErrFontLoad)
	}

	Logger().Debug("glyphatlas: font rasterized",
		"glyphs", len(bitmaps), "skipped", skipped, "size", fontSize)

	return bitmaps, nil
}

// rasterizeGlyph renders a single glyph outline into a coverage bitmap.
// Returns ok=false for glyphs that are not outlines (bitmap and SVG glyph
// formats are not supported).
func rasterizeGlyph(face *font.Face, r rune, gid font.GID, scale float64) (glyphBitmap, bool) {
	outline, ok := face.GlyphData(gid).(font.GlyphOutline)
	if !ok {
		return glyphBitmap{}, false
	}

	// Pen advance, truncated from 26.6 fixed point the way hinting engines
	// report it.
	adv := fixed.Int26_6(float64(face.HorizontalAdvance(gid)) * scale * 64)
	advance := int(adv >> 6)

	bmp := glyphBitmap{r: r, advance: advance}

	if len(outline.Segments) == 0 {
		// Whitespace glyphs carry an advance but no pixels.
		return bmp, true
	}

	// Bitmap bounds from the scaled control points. Control points of
	// curves lie outside the curve, so this box is conservative; the
	// rasterizer clips to it.
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, seg := range outline.Segments {
		for i := 0; i < segmentArgCount(seg.Op); i++ {
			x := float64(seg.Args[i].X) * scale
			y := float64(seg.Args[i].Y) * scale
			minX = math.Min(minX, x)
			minY = math.Min(minY, y)
			maxX = math.Max(maxX, x)
			maxY = math.Max(maxY, y)
		}
	}

	left := int(math.Floor(minX))
	top := int(math.Ceil(maxY))
	width := int(math.Ceil(maxX)) - left
	height := top - int(math.Floor(minY))
	if width <= 0 || height <= 0 {
		return bmp, true
	}

	bmp.width = width
	bmp.height = height
	bmp.bearingLeft = left
	bmp.bearingTop = top

	// Font outlines are y-up with the origin on the baseline; the raster
	// target is y-down with the origin at the bitmap top-left.
	toX := func(v float32) float32 { return float32(float64(v)*scale) - float32(left) }
	toY := func(v float32) float32 { return float32(top) - float32(float64(v)*scale) }

	rast := vector.NewRasterizer(width, height)
	started := false
	for _, seg := range outline.Segments {
		switch seg.Op {
		case ot.SegmentOpMoveTo:
			if started {
				rast.ClosePath()
			}
			rast.MoveTo(toX(seg.Args[0].X), toY(seg.Args[0].Y))
			started = true
		case ot.SegmentOpLineTo:
			rast.LineTo(toX(seg.Args[0].X), toY(seg.Args[0].Y))
		case ot.SegmentOpQuadTo:
			rast.QuadTo(
				toX(seg.Args[0].X), toY(seg.Args[0].Y),
				toX(seg.Args[1].X), toY(seg.Args[1].Y))
		case ot.SegmentOpCubeTo:
			rast.CubeTo(
				toX(seg.Args[0].X), toY(seg.Args[0].Y),
				toX(seg.Args[1].X), toY(seg.Args[1].Y),
				toX(seg.Args[2].X), toY(seg.Args[2].Y))
		default:
			return glyphBitmap{}, false
		}
	}
	if started {
		rast.ClosePath()
	}

	dst := image.NewAlpha(image.Rect(0, 0, width, height))
	rast.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	bmp.coverage = dst.Pix

	return bmp, true
}

// segmentArgCount returns the number of meaningful points in a segment.
func segmentArgCount(op ot.SegmentOp) int {
	switch op {
	case ot.SegmentOpQuadTo:
		return 2
	case ot.SegmentOpCubeTo:
		return 3
	default:
		return 1
	}
}
