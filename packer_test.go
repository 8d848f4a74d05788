package glyphatlas

import (
	"testing"
)

// --- nextPow2 Tests ---

func TestNextPow2(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 4},
		{4, 4},
		{5, 8},
		{127, 128},
		{128, 128},
		{129, 256},
		{1000, 1024},
	}

	for _, tt := range tests {
		if got := nextPow2(tt.in); got != tt.want {
			t.Errorf("nextPow2(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

// --- Packing Tests ---

// solidBitmap builds a glyph bitmap with every coverage byte set to 255.
func solidBitmap(r rune, w, h int) glyphBitmap {
	cov := make([]byte, w*h)
	for i := range cov {
		cov[i] = 255
	}
	return glyphBitmap{
		r:          r,
		coverage:   cov,
		width:      w,
		height:     h,
		bearingTop: h,
		advance:    w + 1,
	}
}

func TestPackGlyphsDimensionsArePowerOfTwo(t *testing.T) {
	bitmaps := []glyphBitmap{
		solidBitmap('a', 10, 12),
		solidBitmap('b', 7, 9),
		solidBitmap('c', 14, 5),
	}

	img, placed, err := packGlyphs(bitmaps, 16)
	if err != nil {
		t.Fatalf("packGlyphs: %v", err)
	}

	if img.width&(img.width-1) != 0 {
		t.Errorf("width %d is not a power of two", img.width)
	}
	if img.height&(img.height-1) != 0 {
		t.Errorf("height %d is not a power of two", img.height)
	}
	if len(img.pixels) != img.width*img.height {
		t.Errorf("pixel count %d != %d*%d", len(img.pixels), img.width, img.height)
	}
	if len(placed) != len(bitmaps) {
		t.Errorf("placed %d glyphs, want %d", len(placed), len(bitmaps))
	}
}

func TestPackGlyphsNoOverlap(t *testing.T) {
	var bitmaps []glyphBitmap
	for i := 0; i < 40; i++ {
		w := 3 + i%11
		h := 4 + i%7
		bitmaps = append(bitmaps, solidBitmap(rune('A'+i), w, h))
	}

	img, placed, err := packGlyphs(bitmaps, 8)
	if err != nil {
		t.Fatalf("packGlyphs: %v", err)
	}

	type rect struct{ x0, y0, x1, y1 int }
	var rects []rect
	for _, p := range placed {
		if p.bmp.width == 0 || p.bmp.height == 0 {
			continue
		}
		r := rect{p.x, p.y, p.x + p.bmp.width, p.y + p.bmp.height}
		if r.x1 > img.width || r.y1 > img.height {
			t.Errorf("glyph %q at (%d,%d) size %dx%d exceeds atlas %dx%d",
				p.bmp.r, p.x, p.y, p.bmp.width, p.bmp.height, img.width, img.height)
		}
		rects = append(rects, r)
	}

	for i := 0; i < len(rects); i++ {
		for j := i + 1; j < len(rects); j++ {
			a, b := rects[i], rects[j]
			if a.x0 < b.x1 && b.x0 < a.x1 && a.y0 < b.y1 && b.y0 < a.y1 {
				t.Errorf("glyph rects %d and %d overlap: %+v vs %+v", i, j, a, b)
			}
		}
	}
}

func TestPackGlyphsDeterministic(t *testing.T) {
	make2 := func() ([]glyphBitmap, []glyphBitmap) {
		var a, b []glyphBitmap
		for i := 0; i < 20; i++ {
			a = append(a, solidBitmap(rune('a'+i), 5+i%6, 6+i%5))
			b = append(b, solidBitmap(rune('a'+i), 5+i%6, 6+i%5))
		}
		return a, b
	}
	ba, bb := make2()

	imgA, placedA, err := packGlyphs(ba, 12)
	if err != nil {
		t.Fatalf("packGlyphs: %v", err)
	}
	imgB, placedB, err := packGlyphs(bb, 12)
	if err != nil {
		t.Fatalf("packGlyphs: %v", err)
	}

	if imgA.width != imgB.width || imgA.height != imgB.height {
		t.Fatalf("dimensions differ: %dx%d vs %dx%d",
			imgA.width, imgA.height, imgB.width, imgB.height)
	}
	for i := range imgA.pixels {
		if imgA.pixels[i] != imgB.pixels[i] {
			t.Fatalf("pixel %d differs", i)
		}
	}
	for i := range placedA {
		if placedA[i].x != placedB[i].x || placedA[i].y != placedB[i].y {
			t.Fatalf("placement %d differs: (%d,%d) vs (%d,%d)",
				i, placedA[i].x, placedA[i].y, placedB[i].x, placedB[i].y)
		}
	}
}

func TestPackGlyphsWideGlyphGrowsAtlas(t *testing.T) {
	// A glyph far wider than the size heuristic must widen the texture
	// instead of failing or being clipped.
	bitmaps := []glyphBitmap{
		solidBitmap('a', 3, 3),
		solidBitmap('M', 300, 10),
	}

	img, placed, err := packGlyphs(bitmaps, 8)
	if err != nil {
		t.Fatalf("packGlyphs: %v", err)
	}
	if img.width <= 300 {
		t.Errorf("width %d does not hold the 300 px glyph", img.width)
	}
	if len(placed) != 2 {
		t.Fatalf("placed %d glyphs, want 2", len(placed))
	}
}

func TestPackGlyphsEmptyBitmapKeepsAdvance(t *testing.T) {
	// Whitespace glyphs have no pixels but still occupy a slot in the
	// metric table.
	space := glyphBitmap{r: ' ', advance: 5}
	img, placed, err := packGlyphs([]glyphBitmap{space}, 8)
	if err != nil {
		t.Fatalf("packGlyphs: %v", err)
	}
	if len(placed) != 1 {
		t.Fatalf("placed %d glyphs, want 1", len(placed))
	}
	if placed[0].bmp.advance != 5 {
		t.Errorf("advance = %d, want 5", placed[0].bmp.advance)
	}
	if img.width == 0 || img.height == 0 {
		t.Errorf("empty-bitmap atlas has zero dimension: %dx%d", img.width, img.height)
	}
}

func TestPackGlyphsCoverageCopied(t *testing.T) {
	bmp := glyphBitmap{
		r:        'x',
		coverage: []byte{0, 128, 255, 64},
		width:    2,
		height:   2,
	}

	img, placed, err := packGlyphs([]glyphBitmap{bmp}, 4)
	if err != nil {
		t.Fatalf("packGlyphs: %v", err)
	}

	p := placed[0]
	got := [4]float32{
		img.pixels[p.y*img.width+p.x],
		img.pixels[p.y*img.width+p.x+1],
		img.pixels[(p.y+1)*img.width+p.x],
		img.pixels[(p.y+1)*img.width+p.x+1],
	}
	want := [4]float32{0, 128.0 / 255, 1, 64.0 / 255}
	if got != want {
		t.Errorf("coverage = %v, want %v", got, want)
	}
}
