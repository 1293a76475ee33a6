package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/mandelbrot"
)

// downscale returns buf scaled to width x height. A buffer that already has
// that size is copied unchanged.
func downscale(buf *mandelbrot.PixelBuffer, width, height int) *image.RGBA {
	if buf.Width() == width && buf.Height() == height {
		return buf.ToImage()
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), buf, buf.Bounds(), xdraw.Src, nil)
	return dst
}

const labelPad = 4

// drawLabel prints text in the bottom-left corner on a dark band.
func drawLabel(img *image.RGBA, text string) {
	face := basicfont.Face7x13
	m := face.Metrics()
	lineH := (m.Ascent + m.Descent).Ceil()
	textW := font.MeasureString(face, text).Ceil()

	b := img.Bounds()
	band := image.Rect(b.Min.X, b.Max.Y-lineH-2*labelPad, b.Min.X+textW+2*labelPad, b.Max.Y).Intersect(b)
	draw.Draw(img, band, image.NewUniform(color.RGBA{A: 160}), image.Point{}, draw.Over)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(band.Min.X+labelPad, band.Max.Y-labelPad-m.Descent.Ceil()),
	}
	d.DrawString(text)
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}
