package mandelbrot

import (
	"image/color"
	"math"

	icolor "github.com/gogpu/mandelbrot/internal/color"
)

// GradientSize is the number of entries in every gradient table.
const GradientSize = 2048

// ControlPoint anchors a gradient color at a position in [0, 1].
type ControlPoint struct {
	Position float64    // Position in gradient, 0.0 to 1.0
	Color    color.RGBA // Color at this position; alpha is ignored
}

// DefaultControlPoints returns the stock palette: deep blue rising through
// white to orange and falling off to near black before wrapping.
func DefaultControlPoints() []ControlPoint {
	return []ControlPoint{
		{Position: 0.0, Color: color.RGBA{R: 0, G: 7, B: 100, A: 255}},
		{Position: 0.16, Color: color.RGBA{R: 32, G: 107, B: 203, A: 255}},
		{Position: 0.42, Color: color.RGBA{R: 237, G: 255, B: 255, A: 255}},
		{Position: 0.6425, Color: color.RGBA{R: 255, G: 170, B: 0, A: 255}},
		{Position: 0.8575, Color: color.RGBA{R: 0, G: 2, B: 0, A: 255}},
	}
}

// Gradient is a fixed table of GradientSize opaque colors sampled from a
// spline through control points. Entry i holds the color at position
// i/(GradientSize-1).
//
// A Gradient is immutable and safe for concurrent use.
type Gradient struct {
	colors [GradientSize]color.RGBA
}

// NewGradient builds a gradient table from control points using per-channel
// cubic Hermite interpolation.
//
// Points must be sorted by strictly increasing position, start at 0 and stay
// within [0, 1]. Positions past the last point take the last point's color.
func NewGradient(points []ControlPoint) (*Gradient, error) {
	if err := validateControlPoints(points); err != nil {
		return nil, err
	}

	knots := make([]icolor.Knot, len(points))
	for i, p := range points {
		knots[i] = icolor.Knot{
			X: p.Position,
			Y: icolor.FromRGB(p.Color.R, p.Color.G, p.Color.B),
		}
	}
	spline := icolor.NewSpline(knots)

	g := &Gradient{}
	for i := range g.colors {
		x := float64(i) / float64(GradientSize-1)
		r, gr, b := spline.Eval(x).Bytes()
		g.colors[i] = color.RGBA{R: r, G: gr, B: b, A: 255}
	}
	return g, nil
}

// DefaultGradient builds the gradient for DefaultControlPoints.
func DefaultGradient() *Gradient {
	g, err := NewGradient(DefaultControlPoints())
	if err != nil {
		panic(err) // the built-in palette is valid
	}
	return g
}

func validateControlPoints(points []ControlPoint) error {
	if len(points) < 2 {
		return ErrTooFewControlPoints
	}
	for i, p := range points {
		switch {
		case math.IsNaN(p.Position) || p.Position < 0 || p.Position > 1:
			return &ControlPointError{Index: i, Position: p.Position, Reason: "position outside [0, 1]"}
		case i == 0 && p.Position != 0:
			return &ControlPointError{Index: i, Position: p.Position, Reason: "first position must be 0"}
		case i > 0 && p.Position <= points[i-1].Position:
			return &ControlPointError{Index: i, Position: p.Position, Reason: "positions must be strictly increasing"}
		}
	}
	return nil
}

// Len returns the number of entries, always GradientSize.
func (g *Gradient) Len() int {
	return len(g.colors)
}

// At returns entry i. It panics if i is outside [0, GradientSize).
func (g *Gradient) At(i int) color.RGBA {
	return g.colors[i]
}

// Colors returns a copy of the table.
func (g *Gradient) Colors() []color.RGBA {
	out := make([]color.RGBA, len(g.colors))
	copy(out, g.colors[:])
	return out
}
