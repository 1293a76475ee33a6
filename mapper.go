package mandelbrot

import "fmt"

// Orientation selects which way buffer rows run on the imaginary axis.
type Orientation int

const (
	// OrientDown maps row 0 to MinY (default). Rows grow with the
	// imaginary part, so the image shows the set mirrored about the real
	// axis compared to the usual plot. The set is symmetric, so only
	// off-axis views look different.
	OrientDown Orientation = iota

	// OrientUp maps row 0 to MaxY, the usual mathematical orientation.
	OrientUp
)

// String returns "down" or "up".
func (o Orientation) String() string {
	switch o {
	case OrientDown:
		return "down"
	case OrientUp:
		return "up"
	default:
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
}

// Point is a position in pixel space. Fractional values are allowed.
type Point struct {
	X, Y float64
}

// Size is the extent of a window or buffer in pixels.
type Size struct {
	Width, Height int
}

// Empty reports whether either dimension is not positive.
func (s Size) Empty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Mapper converts between pixel coordinates of a width x height buffer and
// points of the complex plane inside a Rect.
type Mapper struct {
	rect   Rect
	width  float64
	height float64
	orient Orientation
}

// NewMapper creates a mapper from a width x height buffer onto rect.
func NewMapper(rect Rect, width, height int, orient Orientation) Mapper {
	return Mapper{rect: rect, width: float64(width), height: float64(height), orient: orient}
}

// Forward maps pixel (px, py) to the complex plane:
//
//	re = MinX + px/width  * (MaxX - MinX)
//	im = MinY + py/height * (MaxY - MinY)
//
// With OrientUp, im is measured down from MaxY instead.
func (m Mapper) Forward(px, py float64) complex128 {
	re := m.rect.MinX + px/m.width*m.rect.Width()
	var im float64
	if m.orient == OrientUp {
		im = m.rect.MaxY - py/m.height*m.rect.Height()
	} else {
		im = m.rect.MinY + py/m.height*m.rect.Height()
	}
	return complex(re, im)
}

// Inverse maps c back to pixel coordinates. It is the inverse of Forward.
func (m Mapper) Inverse(c complex128) (px, py float64) {
	px = (real(c) - m.rect.MinX) / m.rect.Width() * m.width
	if m.orient == OrientUp {
		py = (m.rect.MaxY - imag(c)) / m.rect.Height() * m.height
	} else {
		py = (imag(c) - m.rect.MinY) / m.rect.Height() * m.height
	}
	return px, py
}

// Button identifies the mouse button of a click.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

// String returns the button name.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonMiddle:
		return "middle"
	default:
		return fmt.Sprintf("Button(%d)", int(b))
	}
}

// OnClick returns the viewport that results from clicking at click in a
// window of the given size that displays a buffer of another size.
//
// The click is scaled from window to buffer pixels, mapped to the plane
// through v, and becomes the new center. ButtonLeft then zooms in by
// ZoomFactor, ButtonRight zooms out, and any other button only recenters.
//
// OnClick does not render.
func OnClick(v Viewport, click Point, window, buffer Size, button Button, orient Orientation) (Viewport, error) {
	if err := v.Validate(); err != nil {
		return v, err
	}
	if window.Empty() || buffer.Empty() {
		return v, fmt.Errorf("%w: window %dx%d, buffer %dx%d",
			ErrInvalidSize, window.Width, window.Height, buffer.Width, buffer.Height)
	}

	bx := click.X * float64(buffer.Width) / float64(window.Width)
	by := click.Y * float64(buffer.Height) / float64(window.Height)

	m := NewMapper(v.Rect(), buffer.Width, buffer.Height, orient)
	next := Viewport{Center: m.Forward(bx, by), Zoom: v.Zoom}

	switch button {
	case ButtonLeft:
		next = next.ZoomIn()
	case ButtonRight:
		next = next.ZoomOut()
	}
	if err := next.Validate(); err != nil {
		return v, err
	}

	Logger().Debug("mandelbrot: click",
		"button", button,
		"at", click,
		"center", next.Center,
		"zoom", next.Zoom)
	return next, nil
}
