package mandelbrot

import "math"

// Strategy selects how Render divides the buffer among workers.
type Strategy int

const (
	// StrategyChunks splits the linear pixel index space into equal
	// contiguous chunks that write straight into the buffer (default).
	StrategyChunks Strategy = iota

	// StrategyTiles renders 64x64 tiles into pooled storage and copies
	// them into the buffer. The result is identical to StrategyChunks.
	StrategyTiles
)

// String returns "chunks" or "tiles".
func (s Strategy) String() string {
	switch s {
	case StrategyChunks:
		return "chunks"
	case StrategyTiles:
		return "tiles"
	default:
		return "unknown"
	}
}

// Option configures a Renderer during creation.
//
// Example:
//
//	r, err := mandelbrot.NewRenderer(
//		mandelbrot.WithMaxIterations(500),
//		mandelbrot.WithTileCount(16),
//	)
type Option func(*options)

// options holds the Renderer configuration.
type options struct {
	maxIter     int
	tiles       int
	workers     int
	strategy    Strategy
	precision   Precision
	radius      float64
	colorScale  float64
	colorOffset float64
	points      []ControlPoint
	orient      Orientation
}

// defaultOptions returns the default renderer options.
func defaultOptions() options {
	return options{
		maxIter:     DefaultMaxIterations,
		tiles:       0, // one chunk per row
		workers:     0, // GOMAXPROCS
		strategy:    StrategyChunks,
		precision:   Precision64,
		radius:      DefaultEscapeRadius,
		colorScale:  DefaultColorScale,
		colorOffset: DefaultColorOffset,
		points:      DefaultControlPoints(),
		orient:      OrientDown,
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// validate checks the values that do not depend on the buffer size.
func (o *options) validate() error {
	switch {
	case o.maxIter < 1:
		return &ConfigError{Field: "MaxIterations", Value: o.maxIter, Reason: "must be at least 1"}
	case o.tiles < 0:
		return &ConfigError{Field: "TileCount", Value: o.tiles, Reason: "must not be negative"}
	case o.workers < 0:
		return &ConfigError{Field: "Workers", Value: o.workers, Reason: "must not be negative"}
	case o.strategy != StrategyChunks && o.strategy != StrategyTiles:
		return &ConfigError{Field: "Strategy", Value: o.strategy, Reason: "unknown strategy"}
	case o.precision != Precision64 && o.precision != Precision32:
		return &ConfigError{Field: "Precision", Value: o.precision, Reason: "unknown precision"}
	case !finite(o.radius) || o.radius < 2:
		return &ConfigError{Field: "EscapeRadius", Value: o.radius, Reason: "must be finite and at least 2"}
	case !finite(o.colorScale) || o.colorScale <= 0:
		return &ConfigError{Field: "ColorScale", Value: o.colorScale, Reason: "must be finite and positive"}
	case !finite(o.colorOffset):
		return &ConfigError{Field: "ColorOffset", Value: o.colorOffset, Reason: "must be finite"}
	case o.orient != OrientDown && o.orient != OrientUp:
		return &ConfigError{Field: "Orientation", Value: o.orient, Reason: "unknown orientation"}
	}
	return nil
}

// WithMaxIterations sets the iteration budget per pixel. Default 150.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		o.maxIter = n
	}
}

// WithTileCount sets the number of chunks a render is split into.
// It must evenly divide the pixel count of every buffer rendered; 0 (default)
// uses one chunk per row. StrategyTiles validates it too but always splits
// the buffer into 64x64 tiles.
func WithTileCount(k int) Option {
	return func(o *options) {
		o.tiles = k
	}
}

// WithWorkers sets the number of worker goroutines. 0 uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithStrategy sets how the buffer is divided among workers.
func WithStrategy(s Strategy) Option {
	return func(o *options) {
		o.strategy = s
	}
}

// WithPrecision sets the escape-time kernel precision.
func WithPrecision(p Precision) Option {
	return func(o *options) {
		o.precision = p
	}
}

// WithEscapeRadius sets the escape radius. It must be at least 2.
// Larger radii smooth the coloring further at the cost of a few iterations.
func WithEscapeRadius(r float64) Option {
	return func(o *options) {
		o.radius = r
	}
}

// WithColorScale sets how many gradient entries one unit of smoothed
// iteration depth advances. Default 256.
func WithColorScale(s float64) Option {
	return func(o *options) {
		o.colorScale = s
	}
}

// WithColorOffset sets the offset added to the iteration count before the
// square root. Default 10.
func WithColorOffset(off float64) Option {
	return func(o *options) {
		o.colorOffset = off
	}
}

// WithControlPoints replaces the gradient palette.
func WithControlPoints(points []ControlPoint) Option {
	points = append([]ControlPoint(nil), points...)
	return func(o *options) {
		o.points = append([]ControlPoint(nil), points...)
	}
}

// WithOrientation sets which way buffer rows run on the imaginary axis.
func WithOrientation(orient Orientation) Option {
	return func(o *options) {
		o.orient = orient
	}
}
