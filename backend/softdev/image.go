package softdev

import (
	"image"
	"image/png"
	"os"
)

// Image is the software device's render target: an RGBA pixmap plus a
// per-target draw call counter.
type Image struct {
	rgba      *image.RGBA
	drawCalls int
}

// NewImage creates a render target of the given size, initially fully
// transparent.
func NewImage(width, height int) *Image {
	return &Image{rgba: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// RGBA returns the underlying pixmap.
func (img *Image) RGBA() *image.RGBA { return img.rgba }

// Size returns the target dimensions in pixels.
func (img *Image) Size() (int, int) {
	b := img.rgba.Bounds()
	return b.Dx(), b.Dy()
}

// DrawCalls returns how many draw calls have landed on this target.
func (img *Image) DrawCalls() int { return img.drawCalls }

// Fill sets every pixel to the given color components in [0, 1].
func (img *Image) Fill(r, g, b, a float32) {
	b8 := []byte{toByte(r), toByte(g), toByte(b), toByte(a)}
	pix := img.rgba.Pix
	for i := 0; i < len(pix); i += 4 {
		copy(pix[i:i+4], b8)
	}
}

// SavePNG writes the target to a PNG file.
func (img *Image) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	return png.Encode(f, img.rgba)
}

func toByte(v float32) byte {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return byte(v*255 + 0.5)
}
