package mandelbrot

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// captureLogs installs a text logger at level for the duration of the test.
func captureLogs(t *testing.T, level slog.Level) *bytes.Buffer {
	t.Helper()
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level})))
	return &buf
}

func TestLoggerSilentByDefault(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	SetLogger(slog.Default())
	SetLogger(nil)

	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) should restore a disabled logger")
	}

	// Renders go through the silent logger.
	r, err := NewRenderer(WithWorkers(2))
	if err != nil {
		t.Fatalf("NewRenderer() = %v", err)
	}
	defer r.Close()
	if err := r.Render(DefaultViewport(), NewPixelBuffer(8, 4)); err != nil {
		t.Fatalf("Render() = %v", err)
	}
}

func TestRendererLifecycleLogsAtInfo(t *testing.T) {
	buf := captureLogs(t, slog.LevelInfo)

	r, err := NewRenderer(WithWorkers(3), WithMaxIterations(40))
	if err != nil {
		t.Fatalf("NewRenderer() = %v", err)
	}
	if err := r.Render(DefaultViewport(), NewPixelBuffer(8, 4)); err != nil {
		t.Fatalf("Render() = %v", err)
	}
	r.Close()
	r.Close()

	out := buf.String()
	for _, want := range []string{"renderer created", "workers=3", "strategy=chunks", "max_iter=40"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
	if n := strings.Count(out, "renderer closed"); n != 1 {
		t.Errorf("renderer closed logged %d times, want 1", n)
	}
	if strings.Contains(out, `msg="mandelbrot: render"`) {
		t.Errorf("render timing logged at Info level:\n%s", out)
	}
}

func TestRenderLogsAtDebug(t *testing.T) {
	tests := []struct {
		name     string
		strategy Strategy
		regions  string
	}{
		{"chunks", StrategyChunks, "regions=4"},
		{"tiles", StrategyTiles, "regions=1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLogs(t, slog.LevelDebug)

			r, err := NewRenderer(WithWorkers(2), WithStrategy(tt.strategy))
			if err != nil {
				t.Fatalf("NewRenderer() = %v", err)
			}
			defer r.Close()

			if err := r.Render(DefaultViewport(), NewPixelBuffer(8, 4)); err != nil {
				t.Fatalf("Render() = %v", err)
			}

			out := buf.String()
			for _, want := range []string{`msg="mandelbrot: render"`, "width=8", "height=4", "strategy=" + tt.name, tt.regions, "elapsed="} {
				if !strings.Contains(out, want) {
					t.Errorf("log output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestRenderFailureDoesNotLogRender(t *testing.T) {
	buf := captureLogs(t, slog.LevelDebug)

	r, err := NewRenderer(WithWorkers(2))
	if err != nil {
		t.Fatalf("NewRenderer() = %v", err)
	}
	defer r.Close()

	if err := r.Render(Viewport{Zoom: -1}, NewPixelBuffer(8, 4)); err == nil {
		t.Fatal("Render() with negative zoom succeeded")
	}
	if strings.Contains(buf.String(), `msg="mandelbrot: render"`) {
		t.Errorf("failed render logged timing:\n%s", buf.String())
	}
}

func TestOnClickLogsAtDebug(t *testing.T) {
	buf := captureLogs(t, slog.LevelDebug)

	_, err := OnClick(DefaultViewport(), Point{X: 500, Y: 500}, testWindow, testBuffer, ButtonLeft, OrientDown)
	if err != nil {
		t.Fatalf("OnClick() = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"mandelbrot: click", "button=left", "zoom=2"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestSetLoggerDuringRender(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	r, err := NewRenderer(WithWorkers(2))
	if err != nil {
		t.Fatalf("NewRenderer() = %v", err)
	}
	defer r.Close()

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if err := r.Render(DefaultViewport(), NewPixelBuffer(16, 8)); err != nil {
				t.Errorf("Render() = %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			SetLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
			SetLogger(nil)
		}()
	}
	wg.Wait()
}

func BenchmarkRenderSilentLogger(b *testing.B) {
	r, err := NewRenderer(WithWorkers(2))
	if err != nil {
		b.Fatalf("NewRenderer() = %v", err)
	}
	defer r.Close()
	buf := NewPixelBuffer(64, 36)

	b.ReportAllocs()
	for b.Loop() {
		_ = r.Render(DefaultViewport(), buf)
	}
}
