package mandelbrot

import "fmt"

// Iteration defaults.
const (
	// DefaultMaxIterations is the iteration budget per point.
	DefaultMaxIterations = 150

	// DefaultEscapeRadius is the orbit radius beyond which a point has escaped.
	DefaultEscapeRadius = 2.0
)

// Precision selects the floating point width of the escape-time kernel.
type Precision int

const (
	// Precision64 iterates in float64 (default).
	Precision64 Precision = iota

	// Precision32 iterates in float32. It is faster on some targets and
	// loses detail a few zoom levels earlier.
	Precision32
)

// String returns "float64" or "float32".
func (p Precision) String() string {
	switch p {
	case Precision64:
		return "float64"
	case Precision32:
		return "float32"
	default:
		return fmt.Sprintf("Precision(%d)", int(p))
	}
}

// IterationResult is the outcome of iterating one point.
type IterationResult struct {
	// Escaped is false for points that stayed bounded for the whole budget.
	Escaped bool

	// Iterations is the 0-based iteration at which escape was detected, or
	// maxIter-1 for bounded points.
	Iterations int

	// Final is the orbit value that triggered escape (the last orbit value
	// for bounded points).
	Final complex128
}

// Iterate runs z = z*z + c from z = 0 for at most maxIter iterations with
// the default escape radius, in float64.
//
// The first iteration n (0-based) with |z|^2 > 4 ends the loop with
// Escaped = true, Iterations = n and Final = z. A point that never escapes
// returns Escaped = false and Iterations = maxIter-1.
func Iterate(c complex128, maxIter int) IterationResult {
	return IterateWith(c, maxIter, DefaultEscapeRadius, Precision64)
}

// IterateWith is Iterate with an explicit escape radius and precision.
func IterateWith(c complex128, maxIter int, radius float64, p Precision) IterationResult {
	limit := radius * radius
	if p == Precision32 {
		return escape(float32(real(c)), float32(imag(c)), maxIter, float32(limit))
	}
	return escape(real(c), imag(c), maxIter, limit)
}

type float interface {
	~float32 | ~float64
}

// escape is the escape-time loop shared by both precisions. Every operation
// stays in F so float32 rounding matches a pure float32 implementation.
func escape[F float](cr, ci F, maxIter int, limit F) IterationResult {
	var zr, zi F
	for n := range maxIter {
		zr, zi = zr*zr-zi*zi+cr, 2*zr*zi+ci
		if zr*zr+zi*zi > limit {
			return IterationResult{
				Escaped:    true,
				Iterations: n,
				Final:      complex(float64(zr), float64(zi)),
			}
		}
	}
	return IterationResult{
		Iterations: max(maxIter-1, 0),
		Final:      complex(float64(zr), float64(zi)),
	}
}
