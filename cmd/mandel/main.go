// Command mandel renders one frame of the Mandelbrot set to a PNG file.
//
// Settings come from an optional TOML file, MANDEL_* environment variables
// and flags, in increasing priority:
//
//	mandel -o seahorse.png --landmark seahorse-valley -n 500 --supersample 2 --label
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/alexflint/go-arg"
	"github.com/pkg/profile"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/mandelbrot"
	"github.com/gogpu/mandelbrot/internal/config"
)

type args struct {
	config.Flags

	Output    string `arg:"-o,--output" default:"mandelbrot.png" help:"output PNG file"`
	Label     bool   `arg:"--label" help:"print the view center and zoom onto the image"`
	Profile   string `arg:"--profile" placeholder:"DIR" help:"write a CPU profile into DIR"`
	Landmarks bool   `arg:"--list-landmarks" help:"list named views and exit"`
}

func (args) Description() string {
	return "Render the Mandelbrot set to a PNG file."
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
		fmt.Fprintln(os.Stderr, "mandel:", err)
		os.Exit(1)
	}
}

func run(a args) error {
	if a.Landmarks {
		for _, name := range mandelbrot.LandmarkNames() {
			v, _ := mandelbrot.Landmark(name)
			fmt.Printf("%-24s %v\n", name, v)
		}
		return nil
	}

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
	ss := max(cfg.Supersample, 1)
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", mandelbrot.ErrInvalidSize, cfg.Width, cfg.Height)
	}

	r, err := mandelbrot.NewRenderer(opts...)
	if err != nil {
		return err
	}
	defer r.Close()

	if a.Profile != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(a.Profile), profile.Quiet).Stop()
	}

	buf := mandelbrot.NewPixelBuffer(cfg.Width*ss, cfg.Height*ss)
	start := time.Now()
	if err := r.Render(view, buf); err != nil {
		return err
	}
	elapsed := time.Since(start)

	img := downscale(buf, cfg.Width, cfg.Height)
	if a.Label {
		drawLabel(img, view.String())
	}
	if err := writePNG(a.Output, img); err != nil {
		return err
	}

	p := message.NewPrinter(language.English)
	p.Fprintf(os.Stderr, "%s: %d pixels (%dx%d, %dx supersampling, %d iterations) in %v\n",
		a.Output, buf.Len(), cfg.Width, cfg.Height, ss, r.MaxIterations(), elapsed.Round(time.Millisecond))
	return nil
}
