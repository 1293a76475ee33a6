// Command mandelview opens a window for exploring the Mandelbrot set.
//
// Left click zooms in on the clicked point, right click zooms out around
// it, middle click only recenters. R resets the view, N steps through the
// named landmarks, Q or Escape quits.
//
// The window and the render buffer have independent sizes (1000x1000 and
// 1920x1080 by default). The frame is stretched to fill the window and
// clicks are mapped back to buffer pixels.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gogpu/mandelbrot"
	"github.com/gogpu/mandelbrot/internal/config"
)

type args struct {
	config.Flags
}

func (args) Description() string {
	return "Interactive Mandelbrot viewer. Click to zoom, R to reset, N for the next landmark."
}

func main() {
	var a args
	arg.MustParse(&a)

	level := slog.LevelInfo
	if a.Verbose {
		level = slog.LevelDebug
	}
	mandelbrot.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(a); err != nil {
		fmt.Fprintln(os.Stderr, "mandelview:", err)
		os.Exit(1)
	}
}

func run(a args) error {
	cfg, err := a.Load()
	if err != nil {
		return err
	}
	view, err := cfg.Viewport()
	if err != nil {
		return err
	}
	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	if cfg.Buffer().Empty() || cfg.Window().Empty() {
		return fmt.Errorf("%w: buffer %dx%d, window %dx%d", mandelbrot.ErrInvalidSize,
			cfg.Width, cfg.Height, cfg.WindowWidth, cfg.WindowHeight)
	}

	r, err := mandelbrot.NewRenderer(opts...)
	if err != nil {
		return err
	}
	defer r.Close()

	v := newViewer(r, view, cfg.Buffer())

	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	ebiten.SetWindowTitle("mandelbrot")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(v); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
