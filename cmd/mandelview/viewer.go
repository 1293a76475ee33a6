package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gogpu/mandelbrot"
)

// viewer implements ebiten.Game.
type viewer struct {
	renderer *mandelbrot.Renderer
	start    mandelbrot.Viewport
	view     mandelbrot.Viewport
	buf      *mandelbrot.PixelBuffer
	frame    *ebiten.Image

	// Logical screen size, equal to the window size.
	screen mandelbrot.Size

	landmark int
	dirty    bool
	err      error
}

func newViewer(r *mandelbrot.Renderer, start mandelbrot.Viewport, buffer mandelbrot.Size) *viewer {
	return &viewer{
		renderer: r,
		start:    start,
		view:     start,
		buf:      mandelbrot.NewPixelBuffer(buffer.Width, buffer.Height),
		landmark: -1,
		dirty:    true,
	}
}

var mouseButtons = []struct {
	ebiten ebiten.MouseButton
	button mandelbrot.Button
}{
	{ebiten.MouseButtonLeft, mandelbrot.ButtonLeft},
	{ebiten.MouseButtonRight, mandelbrot.ButtonRight},
	{ebiten.MouseButtonMiddle, mandelbrot.ButtonMiddle},
}

// Update handles input and re-renders after the view changed.
func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		v.reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		v.nextLandmark()
	}

	x, y := ebiten.CursorPosition()
	for _, mb := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(mb.ebiten) {
			v.click(mandelbrot.Point{X: float64(x), Y: float64(y)}, mb.button)
		}
	}

	if v.dirty {
		if err := v.render(); err != nil {
			return err
		}
	}
	return nil
}

func (v *viewer) reset() {
	v.view = v.start
	v.landmark = -1
	v.dirty = true
}

func (v *viewer) nextLandmark() {
	names := mandelbrot.LandmarkNames()
	v.landmark = (v.landmark + 1) % len(names)
	v.view, _ = mandelbrot.Landmark(names[v.landmark])
	v.dirty = true
}

func (v *viewer) click(at mandelbrot.Point, button mandelbrot.Button) {
	next, err := mandelbrot.OnClick(v.view, at, v.screen, v.buf.Size(), button, v.renderer.Orientation())
	if err != nil {
		// Clicks before the first layout have no window size yet.
		v.err = err
		return
	}
	v.view = next
	v.err = nil
	v.dirty = true
}

func (v *viewer) render() error {
	if err := v.renderer.Render(v.view, v.buf); err != nil {
		return err
	}
	if v.frame == nil {
		v.frame = ebiten.NewImage(v.buf.Width(), v.buf.Height())
	}
	v.frame.WritePixels(v.buf.Data())
	v.dirty = false
	return nil
}

// Draw stretches the frame over the screen.
func (v *viewer) Draw(screen *ebiten.Image) {
	if v.frame != nil {
		op := &ebiten.DrawImageOptions{}
		sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
		op.GeoM.Scale(float64(sw)/float64(v.buf.Width()), float64(sh)/float64(v.buf.Height()))
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(v.frame, op)
	}

	status := v.view.String()
	if v.err != nil {
		status += "\n" + v.err.Error()
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s\nL/R/M click: in/out/center  R: reset  N: landmark", status))
}

// Layout keeps one logical pixel per window pixel, so cursor positions are
// window coordinates.
func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	v.screen = mandelbrot.Size{Width: outsideWidth, Height: outsideHeight}
	return outsideWidth, outsideHeight
}
