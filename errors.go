package glyphatlas

import (
	"errors"
	"fmt"
)

// Sentinel errors for atlas construction.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("glyphatlas: empty font data")

	// ErrFontLoad is returned when the font cannot be parsed or exposes
	// no character mapping. No partial atlas is ever returned alongside it.
	ErrFontLoad = errors.New("glyphatlas: font load failed")

	// ErrInvalidFontSize is returned when the requested pixel size is zero.
	ErrInvalidFontSize = errors.New("glyphatlas: font size must be positive")

	// ErrNilDevice is returned when a TextSystem is built without a device.
	ErrNilDevice = errors.New("glyphatlas: device is nil")

	// ErrNilSystem is returned when a TextMesh is built without a TextSystem.
	ErrNilSystem = errors.New("glyphatlas: text system is nil")

	// ErrNilAtlas is returned when a TextMesh is built without an Atlas.
	ErrNilAtlas = errors.New("glyphatlas: atlas is nil")

	// ErrTextTooLong is returned when a string holds more visible
	// characters than a 16-bit index buffer can address.
	ErrTextTooLong = errors.New("glyphatlas: too many visible characters for one mesh")

	// ErrSystemClosed is returned when using a TextSystem after Close.
	ErrSystemClosed = errors.New("glyphatlas: text system is closed")
)

// PackError is returned when a glyph cannot be placed in the atlas.
// The packer pre-scans glyph widths before choosing the atlas width, so this
// only fires on pathological input; the build fails rather than silently
// truncating the glyph.
type PackError struct {
	// Rune is the character whose glyph failed to pack.
	Rune rune

	// GlyphWidth is the glyph bitmap width in pixels.
	GlyphWidth int

	// AtlasWidth is the chosen atlas width in pixels.
	AtlasWidth int
}

func (e *PackError) Error() string {
	return fmt.Sprintf("glyphatlas: glyph %q is %d px wide, exceeds atlas width %d",
		e.Rune, e.GlyphWidth, e.AtlasWidth)
}
