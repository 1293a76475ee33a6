package mandelbrot

import (
	"image"
	"image/color"
	"image/png"
	"io"
)

// PixelBuffer is a width x height RGBA image stored row-major, 4 bytes per
// pixel, with no padding between rows.
//
// Render writes every pixel of the buffer. Readers must not access it while
// a render is in progress.
type PixelBuffer struct {
	width  int
	height int
	data   []uint8 // RGBA format, 4 bytes per pixel
}

// NewPixelBuffer allocates a buffer of the given size.
// Non-positive sizes give an empty buffer, which Render rejects.
func NewPixelBuffer(width, height int) *PixelBuffer {
	if width <= 0 || height <= 0 {
		return &PixelBuffer{}
	}
	return &PixelBuffer{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width of the buffer.
func (b *PixelBuffer) Width() int {
	return b.width
}

// Height returns the height of the buffer.
func (b *PixelBuffer) Height() int {
	return b.height
}

// Size returns the buffer's dimensions.
func (b *PixelBuffer) Size() Size {
	return Size{Width: b.width, Height: b.height}
}

// Len returns the number of pixels.
func (b *PixelBuffer) Len() int {
	return b.width * b.height
}

// Data returns the raw pixel data (RGBA format).
func (b *PixelBuffer) Data() []uint8 {
	return b.data
}

// Pixel returns the color at (x, y), or transparent black outside the buffer.
func (b *PixelBuffer) Pixel(x, y int) color.RGBA {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return color.RGBA{}
	}
	i := (y*b.width + x) * 4
	return color.RGBA{R: b.data[i], G: b.data[i+1], B: b.data[i+2], A: b.data[i+3]}
}

func (b *PixelBuffer) empty() bool {
	return b == nil || b.width <= 0 || b.height <= 0 || len(b.data) != b.width*b.height*4
}

// ToImage copies the buffer into an image.RGBA.
func (b *PixelBuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.width, b.height))
	copy(img.Pix, b.data)
	return img
}

// EncodePNG writes the buffer to w as PNG.
func (b *PixelBuffer) EncodePNG(w io.Writer) error {
	return png.Encode(w, b.ToImage())
}

// At implements the image.Image interface.
func (b *PixelBuffer) At(x, y int) color.Color {
	return b.Pixel(x, y)
}

// Bounds implements the image.Image interface.
func (b *PixelBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// ColorModel implements the image.Image interface.
func (b *PixelBuffer) ColorModel() color.Model {
	return color.RGBAModel
}
