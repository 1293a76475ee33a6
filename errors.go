package mandelbrot

import (
	"errors"
	"fmt"
)

// Sentinel errors. Typed errors below unwrap to one of these, so callers can
// test with errors.Is.
var (
	// ErrTooFewControlPoints is returned when a gradient has fewer than two control points.
	ErrTooFewControlPoints = errors.New("mandelbrot: gradient needs at least 2 control points")

	// ErrInvalidControlPoint is returned for unsorted, duplicate or out of range control points.
	ErrInvalidControlPoint = errors.New("mandelbrot: invalid control point")

	// ErrInvalidZoom is returned when a viewport zoom is zero, negative, NaN or infinite.
	ErrInvalidZoom = errors.New("mandelbrot: zoom must be finite and positive")

	// ErrInvalidCenter is returned when a viewport center is NaN or infinite.
	ErrInvalidCenter = errors.New("mandelbrot: center must be finite")

	// ErrInvalidTileCount is returned when the tile count does not evenly divide the pixel count.
	ErrInvalidTileCount = errors.New("mandelbrot: tile count must evenly divide the pixel count")

	// ErrEmptyBuffer is returned when rendering into a nil or zero-sized buffer.
	ErrEmptyBuffer = errors.New("mandelbrot: pixel buffer is empty")

	// ErrInvalidSize is returned when a window or buffer size used for click mapping is not positive.
	ErrInvalidSize = errors.New("mandelbrot: window and buffer sizes must be positive")

	// ErrInvalidConfig is returned for renderer options outside their valid range.
	ErrInvalidConfig = errors.New("mandelbrot: invalid configuration")
)

// ControlPointError describes why a control point was rejected.
type ControlPointError struct {
	Index    int
	Position float64
	Reason   string
}

func (e *ControlPointError) Error() string {
	return fmt.Sprintf("mandelbrot: control point %d at position %g: %s", e.Index, e.Position, e.Reason)
}

func (e *ControlPointError) Unwrap() error { return ErrInvalidControlPoint }

// TileCountError is returned by Render when the configured tile count does
// not divide the buffer's pixel count.
type TileCountError struct {
	Tiles  int
	Pixels int
}

func (e *TileCountError) Error() string {
	return fmt.Sprintf("mandelbrot: %d tiles do not evenly divide %d pixels", e.Tiles, e.Pixels)
}

func (e *TileCountError) Unwrap() error { return ErrInvalidTileCount }

// ConfigError reports a renderer option with an invalid value.
type ConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("mandelbrot: option %s = %v: %s", e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }
