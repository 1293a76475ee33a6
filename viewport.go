package mandelbrot

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"
)

// Base view of the complex plane at zoom 1. It frames the whole set with a
// small margin.
const (
	BaseMinX = -2.00
	BaseMaxX = 0.47
	BaseMinY = -1.12
	BaseMaxY = 1.12
)

// ZoomFactor is the zoom multiplier applied by one click.
const ZoomFactor = 2.0

// Rect is an axis-aligned rectangle of the complex plane.
type Rect struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// BaseRect returns the rectangle shown at zoom 1.
func BaseRect() Rect {
	return Rect{MinX: BaseMinX, MaxX: BaseMaxX, MinY: BaseMinY, MaxY: BaseMaxY}
}

// Width returns MaxX - MinX.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns MaxY - MinY.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() complex128 {
	return complex((r.MinX+r.MaxX)/2, (r.MinY+r.MaxY)/2)
}

// Viewport selects the visible part of the plane: the base rectangle scaled
// down by Zoom and moved so its midpoint sits at Center.
//
// Viewport is a small value type; pass it by value.
type Viewport struct {
	Center complex128
	Zoom   float64
}

// DefaultViewport returns the initial view: the base rectangle, unmoved.
func DefaultViewport() Viewport {
	return Viewport{Center: BaseRect().Center(), Zoom: 1}
}

// Validate reports whether the viewport can be rendered.
func (v Viewport) Validate() error {
	if math.IsNaN(v.Zoom) || math.IsInf(v.Zoom, 0) || v.Zoom <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidZoom, v.Zoom)
	}
	if cmplx.IsNaN(v.Center) || cmplx.IsInf(v.Center) {
		return fmt.Errorf("%w: got %v", ErrInvalidCenter, v.Center)
	}
	return nil
}

// Rect returns the visible rectangle. Each base span is divided by Zoom.
func (v Viewport) Rect() Rect {
	hw := (BaseMaxX - BaseMinX) / 2 / v.Zoom
	hh := (BaseMaxY - BaseMinY) / 2 / v.Zoom
	cx, cy := real(v.Center), imag(v.Center)
	return Rect{MinX: cx - hw, MaxX: cx + hw, MinY: cy - hh, MaxY: cy + hh}
}

// ZoomIn returns v with Zoom multiplied by ZoomFactor.
func (v Viewport) ZoomIn() Viewport {
	v.Zoom *= ZoomFactor
	return v
}

// ZoomOut returns v with Zoom divided by ZoomFactor.
func (v Viewport) ZoomOut() Viewport {
	v.Zoom /= ZoomFactor
	return v
}

// String implements fmt.Stringer.
func (v Viewport) String() string {
	return fmt.Sprintf("center=(%.17g, %.17g) zoom=%g", real(v.Center), imag(v.Center), v.Zoom)
}

// RectViewport returns the viewport whose width matches r and whose center
// is r's center. The base aspect ratio is kept, so r's height is not honored
// exactly.
func RectViewport(r Rect) Viewport {
	return Viewport{Center: r.Center(), Zoom: (BaseMaxX - BaseMinX) / r.Width()}
}

// Well-known regions of the set.
var landmarks = map[string]Rect{
	"seahorse-valley":         {MinX: -0.8, MaxX: -0.7, MinY: 0.05, MaxY: 0.15},
	"elephant-valley":         {MinX: -1.85, MaxX: -1.75, MinY: -0.10, MaxY: -0.02},
	"spiral-minibrot":         {MinX: -0.7435, MaxX: -0.7420, MinY: 0.1310, MaxY: 0.1325},
	"triple-spiral":           {MinX: -0.7480, MaxX: -0.7450, MinY: 0.0950, MaxY: 0.0980},
	"valley-of-the-dragon":    {MinX: -0.7400, MaxX: -0.7350, MinY: 0.1800, MaxY: 0.1850},
	"minibrot-in-mini-spiral": {MinX: -1.7390, MaxX: -1.7375, MinY: -0.0235, MaxY: -0.0220},
}

// Landmark returns the viewport for a named region, such as
// "seahorse-valley". The boolean is false for unknown names.
func Landmark(name string) (Viewport, bool) {
	r, ok := landmarks[name]
	if !ok {
		return Viewport{}, false
	}
	return RectViewport(r), true
}

// LandmarkNames returns the known landmark names, sorted.
func LandmarkNames() []string {
	names := make([]string, 0, len(landmarks))
	for name := range landmarks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
