package glyphatlas

import (
	"os"
	"testing"
)

// testAtlas builds a synthetic atlas covering the characters of
// "Hello world" plus 'é', without touching a real font. Metrics are
// normalized texture units like a real atlas would carry.
func testAtlas() *Atlas {
	glyph := func(col, row int) CharacterMetrics {
		return CharacterMetrics{
			OriginX:    float32(col) * 0.125,
			OriginY:    float32(row) * 0.25,
			Width:      0.1,
			Height:     0.2,
			BearingTop: 0.15,
			PadLeft:    0.01,
			PadRight:   0.02,
		}
	}

	metrics := map[rune]CharacterMetrics{
		'H': glyph(0, 0),
		'e': glyph(1, 0),
		'l': glyph(2, 0),
		'o': glyph(3, 0),
		'w': glyph(0, 1),
		'r': glyph(1, 1),
		'd': glyph(2, 1),
		'é': glyph(3, 1),
		// Space carries advance but no pixels.
		' ': {PadRight: 0.05},
	}

	runes := []rune{'H', 'e', 'l', 'o', ' ', 'w', 'r', 'd', 'é'}

	pixels := make([]float32, 8*8)
	for i := range pixels {
		pixels[i] = float32(i%2) * 0.5
	}

	return &Atlas{
		pixels:  pixels,
		width:   8,
		height:  8,
		metrics: metrics,
		runes:   runes,
		size:    70,
	}
}

// findSystemFont returns a readable TTF path, or "".
func findSystemFont() string {
	candidates := []string{
		"C:\\Windows\\Fonts\\arial.ttf",
		"/Library/Fonts/Arial.ttf",
		"/System/Library/Fonts/Supplemental/Arial.ttf",
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/TTF/DejaVuSans.ttf",
		"/usr/share/fonts/liberation/LiberationSans-Regular.ttf",
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// loadSystemFont reads a system font or skips the test.
func loadSystemFont(t *testing.T) []byte {
	t.Helper()
	path := findSystemFont()
	if path == "" {
		t.Skip("no system font available")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Skipf("cannot read system font: %v", err)
	}
	return data
}
