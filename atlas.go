package glyphatlas

// CharacterMetrics describes one character's region and spacing in an
// atlas. All values are normalized to texture units: x-axis fields are
// divided by the atlas width, y-axis fields by the atlas height.
type CharacterMetrics struct {
	// OriginX, OriginY locate the top-left corner of the character in
	// the texture.
	OriginX float32
	OriginY float32

	// Width, Height are the character's extent in the texture.
	Width  float32
	Height float32

	// BearingTop is the distance from the baseline up to the top of the
	// character.
	BearingTop float32

	// PadLeft is the spacing between the pen position and the left edge
	// of the character.
	PadLeft float32

	// PadRight is the spacing between the right edge of the character
	// and the next pen position. Can be negative for overhanging glyphs.
	PadRight float32
}

// Atlas is a packed coverage texture containing every glyph a font defines
// at one pixel size, together with per-character metrics.
//
// An Atlas is immutable after construction and safe for concurrent readers.
// It holds no device resources; a TextSystem uploads it on first use.
type Atlas struct {
	pixels  []float32
	width   int
	height  int
	metrics map[rune]CharacterMetrics
	runes   []rune
	size    uint32
}

// NewAtlas rasterizes every glyph in the font's character map at the given
// pixel size and packs them into a single power-of-two texture.
//
// Glyphs that cannot be rasterized are left out of the atlas; looking them
// up later is a normal miss, not an error. A font that cannot be parsed or
// maps no characters fails with ErrFontLoad, and no atlas is returned.
func NewAtlas(data []byte, fontSize uint32) (*Atlas, error) {
	bitmaps, err := rasterizeFont(data, fontSize)
	if err != nil {
		return nil, err
	}

	img, placed, err := packGlyphs(bitmaps, fontSize)
	if err != nil {
		return nil, err
	}

	// Normalize every metric exactly once, now that the final texture
	// dimensions are known.
	w := float32(img.width)
	h := float32(img.height)
	metrics := make(map[rune]CharacterMetrics, len(placed))
	runes := make([]rune, 0, len(placed))
	for _, p := range placed {
		bmp := p.bmp
		metrics[bmp.r] = CharacterMetrics{
			OriginX:    float32(p.x) / w,
			OriginY:    float32(p.y) / h,
			Width:      float32(bmp.width) / w,
			Height:     float32(bmp.height) / h,
			BearingTop: float32(bmp.bearingTop) / h,
			PadLeft:    float32(bmp.bearingLeft) / w,
			PadRight:   float32(bmp.advance-bmp.width-bmp.bearingLeft) / w,
		}
		runes = append(runes, bmp.r)
	}

	Logger().Debug("glyphatlas: atlas built",
		"width", img.width, "height", img.height, "glyphs", len(runes))

	return &Atlas{
		pixels:  img.pixels,
		width:   img.width,
		height:  img.height,
		metrics: metrics,
		runes:   runes,
		size:    fontSize,
	}, nil
}

// Lookup returns the metrics for a character. A miss means the font does
// not map the character (or its glyph could not be rasterized) and is not
// an error; callers typically skip the character.
func (a *Atlas) Lookup(r rune) (CharacterMetrics, bool) {
	m, ok := a.metrics[r]
	return m, ok
}

// Width returns the texture width in pixels. Always a power of two.
func (a *Atlas) Width() int { return a.width }

// Height returns the texture height in pixels. Always a power of two.
func (a *Atlas) Height() int { return a.height }

// FontSize returns the pixel size the atlas was built at.
func (a *Atlas) FontSize() uint32 { return a.size }

// GlyphCount returns the number of characters in the atlas.
func (a *Atlas) GlyphCount() int { return len(a.runes) }

// Runes returns the characters in the atlas in character-map enumeration
// order.
func (a *Atlas) Runes() []rune {
	out := make([]rune, len(a.runes))
	copy(out, a.runes)
	return out
}

// Pixels returns the coverage data, one float in [0, 1] per pixel,
// row-major with stride Width. The returned slice must not be modified.
func (a *Atlas) Pixels() []float32 { return a.pixels }
