package mandelbrot

import (
	"errors"
	"time"

	"github.com/gogpu/mandelbrot/internal/parallel"
)

// Renderer fills pixel buffers with a view of the Mandelbrot set.
//
// The buffer is split into disjoint regions that are rendered in parallel on
// a fixed worker pool. Render blocks until every region is done. The output
// depends only on the viewport, the buffer size and the options, never on
// the number of workers or the scheduling order.
//
// A Renderer is safe for concurrent Render calls on distinct buffers.
type Renderer struct {
	opts   options
	colors *ColorMapper
	pool   *parallel.WorkerPool
	tiles  *parallel.TilePool
}

// NewRenderer creates a renderer. Invalid options are reported here, before
// any buffer is touched.
func NewRenderer(opts ...Option) (*Renderer, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}

	g, err := NewGradient(o.points)
	if err != nil {
		return nil, err
	}

	r := &Renderer{
		opts:   o,
		colors: NewColorMapper(g, o.colorScale, o.colorOffset),
		pool:   parallel.NewWorkerPool(o.workers),
		tiles:  parallel.NewTilePool(),
	}
	Logger().Info("mandelbrot: renderer created",
		"workers", r.pool.Workers(),
		"strategy", o.strategy,
		"precision", o.precision,
		"max_iter", o.maxIter)
	return r, nil
}

// Gradient returns the renderer's gradient table.
func (r *Renderer) Gradient() *Gradient {
	return r.colors.Gradient()
}

// ColorMapper returns the renderer's color mapper.
func (r *Renderer) ColorMapper() *ColorMapper {
	return r.colors
}

// MaxIterations returns the configured iteration budget.
func (r *Renderer) MaxIterations() int {
	return r.opts.maxIter
}

// Orientation returns the configured row orientation.
func (r *Renderer) Orientation() Orientation {
	return r.opts.orient
}

// Workers returns the number of worker goroutines.
func (r *Renderer) Workers() int {
	return r.pool.Workers()
}

// Close stops the worker pool. Render still works after Close but runs on
// the calling goroutine.
func (r *Renderer) Close() {
	if r.pool.IsRunning() {
		r.pool.Close()
		Logger().Info("mandelbrot: renderer closed")
	}
}

// Render writes the view v into every pixel of buf.
//
// Render fails without writing any pixel if buf is empty, v is invalid, or
// the configured tile count does not divide the pixel count.
func (r *Renderer) Render(v Viewport, buf *PixelBuffer) error {
	if buf.empty() {
		return ErrEmptyBuffer
	}
	if err := v.Validate(); err != nil {
		return err
	}

	total := buf.Len()
	k := r.opts.tiles
	if k == 0 {
		k = buf.height
	}
	spans, err := parallel.Partition(total, k)
	if err != nil {
		if errors.Is(err, parallel.ErrUnevenPartition) {
			return &TileCountError{Tiles: k, Pixels: total}
		}
		return err
	}

	start := time.Now()
	m := NewMapper(v.Rect(), buf.width, buf.height, r.opts.orient)

	regions := len(spans)
	switch r.opts.strategy {
	case StrategyTiles:
		regions = r.renderTiles(m, buf)
	default:
		r.renderChunks(m, buf, spans)
	}

	Logger().Debug("mandelbrot: render",
		"width", buf.width,
		"height", buf.height,
		"strategy", r.opts.strategy,
		"regions", regions,
		"viewport", v,
		"elapsed", time.Since(start))
	return nil
}

// renderChunks gives every span its own slice of the buffer.
func (r *Renderer) renderChunks(m Mapper, buf *PixelBuffer, spans []parallel.Span) {
	w := buf.width
	data := buf.data

	r.pool.ExecuteAll(len(spans), func(i int) {
		s := spans[i]
		dst := data[s.Start*4 : s.End*4]
		for idx := s.Start; idx < s.End; idx++ {
			c := r.shade(m, idx%w, idx/w)
			o := (idx - s.Start) * 4
			dst[o+0] = c[0]
			dst[o+1] = c[1]
			dst[o+2] = c[2]
			dst[o+3] = c[3]
		}
	})
}

// renderTiles renders 64x64 tiles in pooled storage and copies each one
// into its rectangle of the buffer. It returns the number of tiles.
func (r *Renderer) renderTiles(m Mapper, buf *PixelBuffer) int {
	grid := parallel.NewTileGrid(buf.width, buf.height, r.tiles)
	defer grid.Close()

	tiles := grid.Tiles()
	stride := buf.width * 4
	r.pool.ExecuteAll(len(tiles), func(i int) {
		t := tiles[i]
		ox, oy, tw, th := t.Bounds()
		for py := range th {
			for px := range tw {
				c := r.shade(m, ox+px, oy+py)
				o := t.PixelOffset(px, py)
				t.Data[o+0] = c[0]
				t.Data[o+1] = c[1]
				t.Data[o+2] = c[2]
				t.Data[o+3] = c[3]
			}
		}
		t.CopyTo(buf.data, stride)
	})
	return len(tiles)
}

// shade computes the color of pixel (x, y).
func (r *Renderer) shade(m Mapper, x, y int) [4]uint8 {
	c := m.Forward(float64(x), float64(y))
	res := IterateWith(c, r.opts.maxIter, r.opts.radius, r.opts.precision)
	col := r.colors.Color(res)
	return [4]uint8{col.R, col.G, col.B, col.A}
}
