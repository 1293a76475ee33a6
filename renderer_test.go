package mandelbrot

import (
	"bytes"
	"errors"
	"sync"
	"testing"
)

func newTestRenderer(t *testing.T, opts ...Option) *Renderer {
	t.Helper()
	r, err := NewRenderer(opts...)
	if err != nil {
		t.Fatalf("NewRenderer() = %v", err)
	}
	t.Cleanup(r.Close)
	return r
}

func render(t *testing.T, r *Renderer, v Viewport, w, h int) *PixelBuffer {
	t.Helper()
	buf := NewPixelBuffer(w, h)
	if err := r.Render(v, buf); err != nil {
		t.Fatalf("Render(%v, %dx%d) = %v", v, w, h, err)
	}
	return buf
}

func fill(buf *PixelBuffer, v uint8) {
	for i := range buf.Data() {
		buf.Data()[i] = v
	}
}

func untouched(buf *PixelBuffer, v uint8) bool {
	for _, b := range buf.Data() {
		if b != v {
			return false
		}
	}
	return true
}

// =============================================================================
// End-to-end Tests
// =============================================================================

func TestRender_FullHD(t *testing.T) {
	if testing.Short() {
		t.Skip("full HD render in short mode")
	}
	r := newTestRenderer(t)
	buf := render(t, r, DefaultViewport(), 1920, 1080)

	// -0.765 lies in the period-2 bulb.
	if got := buf.Pixel(960, 540); got != Sentinel {
		t.Errorf("center pixel = %v, want sentinel black", got)
	}

	// The top-left corner maps to -2-1.12i, outside the set.
	corner := buf.Pixel(0, 0)
	if corner == Sentinel {
		t.Error("corner pixel is black, want a gradient color")
	}
	rc := DefaultViewport().Rect()
	res := Iterate(complex(rc.MinX, rc.MinY), DefaultMaxIterations)
	if want := r.Gradient().At(r.ColorMapper().Index(res)); corner != want {
		t.Errorf("corner pixel = %v, want %v", corner, want)
	}

	for i := 3; i < len(buf.Data()); i += 4 {
		if buf.Data()[i] != 255 {
			t.Fatalf("pixel %d alpha = %d, want 255", i/4, buf.Data()[i])
		}
	}
}

func TestRender_EscapingPointUsesGradient(t *testing.T) {
	r := newTestRenderer(t)

	// Pixel (2, 1) of a 4x2 buffer is the viewport center.
	buf := render(t, r, Viewport{Center: 2 + 2i, Zoom: 1}, 4, 2)
	if got, want := buf.Pixel(2, 1), r.Gradient().At(785); got != want {
		t.Errorf("pixel at 2+2i = %v, want table[785] = %v", got, want)
	}
}

func TestRender_Idempotent(t *testing.T) {
	r := newTestRenderer(t)
	v := Viewport{Center: -0.75 + 0.1i, Zoom: 24.7}

	a := render(t, r, v, 160, 90)
	b := render(t, r, v, 160, 90)
	if !bytes.Equal(a.Data(), b.Data()) {
		t.Error("two renders of the same view differ")
	}
}

func TestRender_IndependentOfWorkersAndChunks(t *testing.T) {
	v := Viewport{Center: -0.745 + 0.11i, Zoom: 60}
	want := render(t, newTestRenderer(t, WithWorkers(1), WithTileCount(1)), v, 130, 70)

	configs := []struct {
		name string
		opts []Option
	}{
		{"8 workers, rows", []Option{WithWorkers(8)}},
		{"3 workers, 10 chunks", []Option{WithWorkers(3), WithTileCount(10)}},
		{"every pixel", []Option{WithWorkers(4), WithTileCount(130 * 70)}},
		{"tiles", []Option{WithWorkers(5), WithStrategy(StrategyTiles)}},
		{"tiles, one worker", []Option{WithWorkers(1), WithStrategy(StrategyTiles)}},
	}

	for _, cfg := range configs {
		t.Run(cfg.name, func(t *testing.T) {
			got := render(t, newTestRenderer(t, cfg.opts...), v, 130, 70)
			if !bytes.Equal(got.Data(), want.Data()) {
				t.Error("output differs from the single worker render")
			}
		})
	}
}

func TestRender_WritesEveryPixel(t *testing.T) {
	for _, s := range []Strategy{StrategyChunks, StrategyTiles} {
		t.Run(s.String(), func(t *testing.T) {
			r := newTestRenderer(t, WithStrategy(s), WithMaxIterations(20))
			buf := NewPixelBuffer(200, 75)
			fill(buf, 0)
			if err := r.Render(DefaultViewport(), buf); err != nil {
				t.Fatalf("Render() = %v", err)
			}
			for i := 3; i < len(buf.Data()); i += 4 {
				if buf.Data()[i] != 255 {
					t.Fatalf("pixel %d not written", i/4)
				}
			}
		})
	}
}

func TestRender_OrientUpMirrors(t *testing.T) {
	v := Viewport{Center: -0.75 + 0.1i, Zoom: 24.7}
	mirror := Viewport{Center: -0.75 - 0.1i, Zoom: 24.7}

	down := render(t, newTestRenderer(t), v, 96, 54)
	up := render(t, newTestRenderer(t, WithOrientation(OrientUp)), mirror, 96, 54)
	if !bytes.Equal(down.Data(), up.Data()) {
		t.Error("OrientUp of the conjugate view differs from OrientDown")
	}
}

func TestRender_Precision32(t *testing.T) {
	r := newTestRenderer(t, WithPrecision(Precision32))
	buf := render(t, r, DefaultViewport(), 192, 108)
	if got := buf.Pixel(96, 54); got != Sentinel {
		t.Errorf("float32 center pixel = %v, want sentinel black", got)
	}
}

func TestRender_Concurrent(t *testing.T) {
	r := newTestRenderer(t, WithWorkers(4))
	want := render(t, r, DefaultViewport(), 64, 36)

	var wg sync.WaitGroup
	bufs := make([]*PixelBuffer, 8)
	errs := make([]error, len(bufs))
	for i := range bufs {
		bufs[i] = NewPixelBuffer(64, 36)
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = r.Render(DefaultViewport(), bufs[i])
		}()
	}
	wg.Wait()

	for i, buf := range bufs {
		if errs[i] != nil {
			t.Fatalf("Render #%d = %v", i, errs[i])
		}
		if !bytes.Equal(buf.Data(), want.Data()) {
			t.Errorf("concurrent render #%d differs", i)
		}
	}
}

func TestRender_AfterClose(t *testing.T) {
	r := newTestRenderer(t, WithWorkers(2))
	want := render(t, r, DefaultViewport(), 40, 20)

	r.Close()
	r.Close()
	got := render(t, r, DefaultViewport(), 40, 20)
	if !bytes.Equal(got.Data(), want.Data()) {
		t.Error("render after Close differs")
	}
}

// =============================================================================
// Validation Tests
// =============================================================================

func TestRender_TileCountMustDivide(t *testing.T) {
	for _, s := range []Strategy{StrategyChunks, StrategyTiles} {
		t.Run(s.String(), func(t *testing.T) {
			r := newTestRenderer(t, WithTileCount(3), WithStrategy(s))
			buf := NewPixelBuffer(10, 10)
			fill(buf, 0xAB)

			err := r.Render(DefaultViewport(), buf)
			if !errors.Is(err, ErrInvalidTileCount) {
				t.Fatalf("Render() = %v, want ErrInvalidTileCount", err)
			}
			var tcErr *TileCountError
			if !errors.As(err, &tcErr) || tcErr.Tiles != 3 || tcErr.Pixels != 100 {
				t.Errorf("error = %#v, want TileCountError{3, 100}", err)
			}
			if !untouched(buf, 0xAB) {
				t.Error("failed render wrote pixels")
			}
		})
	}
}

func TestRender_TileCountAboveTotal(t *testing.T) {
	r := newTestRenderer(t, WithTileCount(200))
	err := r.Render(DefaultViewport(), NewPixelBuffer(10, 10))
	if !errors.Is(err, ErrInvalidTileCount) {
		t.Errorf("Render() = %v, want ErrInvalidTileCount", err)
	}
}

func TestRender_ValidTileCounts(t *testing.T) {
	// 192x108 splits into 1, 4 and 9 chunks just like 1920x1080.
	for _, k := range []int{1, 4, 9, 108} {
		r := newTestRenderer(t, WithTileCount(k), WithMaxIterations(30))
		if err := r.Render(DefaultViewport(), NewPixelBuffer(192, 108)); err != nil {
			t.Errorf("K=%d: Render() = %v", k, err)
		}
	}
}

func TestRender_InvalidInputs(t *testing.T) {
	r := newTestRenderer(t)

	if err := r.Render(DefaultViewport(), nil); !errors.Is(err, ErrEmptyBuffer) {
		t.Errorf("nil buffer: %v, want ErrEmptyBuffer", err)
	}
	if err := r.Render(DefaultViewport(), NewPixelBuffer(0, 10)); !errors.Is(err, ErrEmptyBuffer) {
		t.Errorf("zero width: %v, want ErrEmptyBuffer", err)
	}
	if err := r.Render(DefaultViewport(), &PixelBuffer{}); !errors.Is(err, ErrEmptyBuffer) {
		t.Errorf("zero buffer: %v, want ErrEmptyBuffer", err)
	}

	buf := NewPixelBuffer(8, 8)
	fill(buf, 7)
	if err := r.Render(Viewport{Center: -0.5, Zoom: -1}, buf); !errors.Is(err, ErrInvalidZoom) {
		t.Errorf("negative zoom: %v, want ErrInvalidZoom", err)
	}
	if !untouched(buf, 7) {
		t.Error("render with invalid viewport wrote pixels")
	}
}
