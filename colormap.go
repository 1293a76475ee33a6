package mandelbrot

import (
	"image/color"
	"math"
)

// Color mapping defaults. They set how fast the palette cycles with
// iteration depth.
const (
	DefaultColorScale  = 256.0
	DefaultColorOffset = 10.0
)

// Sentinel is the color of points that never escape: opaque black.
var Sentinel = color.RGBA{R: 0, G: 0, B: 0, A: 255}

// ColorMapper maps iteration results to gradient colors.
//
// A ColorMapper is immutable and safe for concurrent use.
type ColorMapper struct {
	gradient *Gradient
	scale    float64
	offset   float64
}

// NewColorMapper creates a mapper over g with the given scale and offset.
// Use DefaultColorScale and DefaultColorOffset for the stock look.
func NewColorMapper(g *Gradient, scale, offset float64) *ColorMapper {
	return &ColorMapper{gradient: g, scale: scale, offset: offset}
}

// Gradient returns the table the mapper indexes into.
func (m *ColorMapper) Gradient() *Gradient {
	return m.gradient
}

// Smooth returns log2(log2(|z|^2) / 2) for the escaping orbit value z,
// the fractional correction that removes banding between iteration counts.
//
// z must be the value that triggered escape; for |z| <= 1 the result is NaN.
func Smooth(z complex128) float64 {
	mag := real(z)*real(z) + imag(z)*imag(z)
	return math.Log2(math.Log2(mag) / 2)
}

// Index returns the gradient index for an escaped result:
//
//	floor(sqrt(iterations + offset - Smooth(final)) * scale) mod GradientSize
//
// A negative or NaN radicand is treated as zero.
func (m *ColorMapper) Index(res IterationResult) int {
	v := float64(res.Iterations) + m.offset - Smooth(res.Final)
	if !(v > 0) {
		v = 0
	}
	idx := int(math.Floor(math.Sqrt(v)*m.scale)) % GradientSize
	if idx < 0 {
		idx += GradientSize
	}
	return idx
}

// Color returns the pixel color for res: Sentinel for bounded points, the
// gradient entry at Index otherwise.
func (m *ColorMapper) Color(res IterationResult) color.RGBA {
	if !res.Escaped {
		return Sentinel
	}
	return m.gradient.colors[m.Index(res)]
}
