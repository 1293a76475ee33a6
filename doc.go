// Package mandelbrot renders the Mandelbrot set into an RGBA pixel buffer.
//
// # Overview
//
// The package is the rendering engine behind a pan/zoom viewer. A caller owns
// a Viewport (center and zoom) and a PixelBuffer; Renderer.Render fills the
// buffer from the viewport, and OnClick computes the next viewport from a
// mouse click. The engine keeps no state between calls.
//
// # Quick Start
//
//	r, err := mandelbrot.NewRenderer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	buf := mandelbrot.NewPixelBuffer(1920, 1080)
//	view := mandelbrot.DefaultViewport()
//	if err := r.Render(view, buf); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Left click at window position (500, 300) in a 1000x1000 window.
//	view, err = mandelbrot.OnClick(view, mandelbrot.Point{X: 500, Y: 300},
//	    mandelbrot.Size{Width: 1000, Height: 1000}, buf.Size(),
//	    mandelbrot.ButtonLeft, mandelbrot.OrientDown)
//
// # Pipeline
//
// Every pixel goes through the same steps:
//
//   - Mapper converts the pixel position to a point c of the complex plane.
//   - Iterate runs z = z*z + c from z = 0 until |z| exceeds the escape radius
//     or the iteration budget is spent.
//   - ColorMapper turns an escaped orbit into a smoothed index into the
//     Gradient table; bounded orbits become opaque black.
//
// # Parallelism
//
// Render splits the buffer into disjoint regions (equal linear chunks by
// default, or 64x64 tiles) and fills them on a worker pool, returning once
// every region is done. The gradient table and the mapper are read-only
// during a render, so no locks are taken. Output is byte-identical for any
// worker count and either strategy.
//
// # Precision
//
// Iteration uses float64 by default, or float32 with WithPrecision. Deep
// zooms eventually run out of precision and render as blocks.
package mandelbrot
