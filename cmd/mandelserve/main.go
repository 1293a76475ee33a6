// Command mandelserve serves the Mandelbrot viewer to a browser over a
// websocket.
//
//	mandelserve --addr :8080 --width 960 --height 540
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexflint/go-arg"

	"github.com/gogpu/mandelbrot"
	"github.com/gogpu/mandelbrot/integration/wsview"
	"github.com/gogpu/mandelbrot/internal/config"
)

type args struct {
	config.Flags

	Addr       string `arg:"-a,--addr" default:":8080" help:"listen address"`
	FrameCache int    `arg:"--frame-cache" default:"33554432" help:"bytes of encoded frames to keep (0 disables)"`
}

func (args) Description() string {
	return "Serve the Mandelbrot viewer over HTTP and websocket."
}

func main() {
	var a args
	arg.MustParse(&a)

	level := slog.LevelInfo
	if a.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	mandelbrot.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, a, logger); err != nil {
		fmt.Fprintln(os.Stderr, "mandelserve:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, a args, logger *slog.Logger) error {
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
	if cfg.Buffer().Empty() {
		return fmt.Errorf("%w: %dx%d", mandelbrot.ErrInvalidSize, cfg.Width, cfg.Height)
	}

	r, err := mandelbrot.NewRenderer(opts...)
	if err != nil {
		return err
	}

	ws := wsview.New(r,
		wsview.WithBufferSize(cfg.Buffer()),
		wsview.WithViewport(view),
		wsview.WithLogger(logger),
		wsview.WithFrameCache(a.FrameCache),
	)
	srv := &http.Server{
		Addr:              a.Addr,
		Handler:           ws.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("mandelserve: listening", "addr", a.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		_ = ws.Shutdown(context.Background())
		r.Close()
		return err
	case <-ctx.Done():
	}

	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdown); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	// Websocket sessions may still be rendering. The renderer is left open
	// if they do not finish in time, since the process is exiting anyway.
	if err := ws.Shutdown(shutdown); err != nil {
		return fmt.Errorf("waiting for sessions: %w", err)
	}
	r.Close()
	logger.Info("mandelserve: stopped")
	return nil
}
