// Package config loads renderer and viewer settings for the command line
// tools.
//
// Settings are layered: built-in defaults, then an optional TOML file, then
// MANDEL_* environment variables. Command line flags are applied on top by
// each binary. All keys live in the [mandel] section of the file:
//
//	[mandel]
//	width = 1920
//	height = 1080
//	max_iterations = 500
//	palette = "0:#000764, 0.16:#206bcb, 0.42:#edffff, 0.6425:#ffaa00, 0.8575:#000200"
//
// The same key is set from the environment as MANDEL_MAX_ITERATIONS=500.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"

	"github.com/gogpu/mandelbrot"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "MANDEL_"

// section is the TOML table holding all settings.
const section = "mandel"

// ErrInvalid is returned for settings that cannot be turned into renderer
// options.
var ErrInvalid = errors.New("config: invalid setting")

// Config holds every setting the binaries understand.
type Config struct {
	// Buffer size in pixels.
	Width  int `koanf:"width"`
	Height int `koanf:"height"`

	// Window size for the desktop viewer. Clicks are scaled from window
	// to buffer pixels.
	WindowWidth  int `koanf:"window_width"`
	WindowHeight int `koanf:"window_height"`

	MaxIterations int     `koanf:"max_iterations"`
	Tiles         int     `koanf:"tiles"`
	Workers       int     `koanf:"workers"`
	Strategy      string  `koanf:"strategy"`
	Precision     string  `koanf:"precision"`
	Orientation   string  `koanf:"orientation"`
	EscapeRadius  float64 `koanf:"escape_radius"`
	ColorScale    float64 `koanf:"color_scale"`
	ColorOffset   float64 `koanf:"color_offset"`
	Palette       string  `koanf:"palette"`

	// Initial view. A non-empty Landmark wins over the center and zoom.
	CenterRe float64 `koanf:"center_re"`
	CenterIm float64 `koanf:"center_im"`
	Zoom     float64 `koanf:"zoom"`
	Landmark string  `koanf:"landmark"`

	// Supersample renders at this many times the size and scales down.
	Supersample int `koanf:"supersample"`
}

// Default returns the built-in settings.
func Default() Config {
	v := mandelbrot.DefaultViewport()
	return Config{
		Width:         1920,
		Height:        1080,
		WindowWidth:   1000,
		WindowHeight:  1000,
		MaxIterations: mandelbrot.DefaultMaxIterations,
		Strategy:      mandelbrot.StrategyChunks.String(),
		Precision:     mandelbrot.Precision64.String(),
		Orientation:   mandelbrot.OrientDown.String(),
		EscapeRadius:  mandelbrot.DefaultEscapeRadius,
		ColorScale:    mandelbrot.DefaultColorScale,
		ColorOffset:   mandelbrot.DefaultColorOffset,
		Palette:       FormatPalette(mandelbrot.DefaultControlPoints()),
		CenterRe:      real(v.Center),
		CenterIm:      imag(v.Center),
		Zoom:          v.Zoom,
		Supersample:   1,
	}
}

// defaultsMap flattens Default into koanf keys.
func defaultsMap() map[string]interface{} {
	d := Default()
	return map[string]interface{}{
		section + ".width":          d.Width,
		section + ".height":         d.Height,
		section + ".window_width":   d.WindowWidth,
		section + ".window_height":  d.WindowHeight,
		section + ".max_iterations": d.MaxIterations,
		section + ".tiles":          d.Tiles,
		section + ".workers":        d.Workers,
		section + ".strategy":       d.Strategy,
		section + ".precision":      d.Precision,
		section + ".orientation":    d.Orientation,
		section + ".escape_radius":  d.EscapeRadius,
		section + ".color_scale":    d.ColorScale,
		section + ".color_offset":   d.ColorOffset,
		section + ".palette":        d.Palette,
		section + ".center_re":      d.CenterRe,
		section + ".center_im":      d.CenterIm,
		section + ".zoom":           d.Zoom,
		section + ".landmark":       d.Landmark,
		section + ".supersample":    d.Supersample,
	}
}

// envKey maps MANDEL_MAX_ITERATIONS to mandel.max_iterations.
func envKey(s string) string {
	return section + "." + strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// Load reads the settings. An empty path skips the file layer.
func Load(path string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultsMap(), "."), nil); err != nil {
		return Config{}, fmt.Errorf("config: loading defaults: %w", err)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return Config{}, fmt.Errorf("config: loading %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("config: loading environment: %w", err)
	}

	var c Config
	if err := k.Unmarshal(section, &c); err != nil {
		return Config{}, fmt.Errorf("config: decoding: %w", err)
	}
	return c, nil
}

// Buffer returns the render buffer size.
func (c Config) Buffer() mandelbrot.Size {
	return mandelbrot.Size{Width: c.Width, Height: c.Height}
}

// Window returns the viewer window size.
func (c Config) Window() mandelbrot.Size {
	return mandelbrot.Size{Width: c.WindowWidth, Height: c.WindowHeight}
}

// Viewport returns the initial view.
func (c Config) Viewport() (mandelbrot.Viewport, error) {
	if c.Landmark != "" {
		v, ok := mandelbrot.Landmark(c.Landmark)
		if !ok {
			return v, fmt.Errorf("%w: unknown landmark %q (known: %s)",
				ErrInvalid, c.Landmark, strings.Join(mandelbrot.LandmarkNames(), ", "))
		}
		return v, nil
	}
	v := mandelbrot.Viewport{Center: complex(c.CenterRe, c.CenterIm), Zoom: c.Zoom}
	if err := v.Validate(); err != nil {
		return v, err
	}
	return v, nil
}

// Options converts the settings to renderer options. Range checks are left
// to mandelbrot.NewRenderer; only names are checked here.
func (c Config) Options() ([]mandelbrot.Option, error) {
	strategy, err := parseStrategy(c.Strategy)
	if err != nil {
		return nil, err
	}
	precision, err := parsePrecision(c.Precision)
	if err != nil {
		return nil, err
	}
	orient, err := ParseOrientation(c.Orientation)
	if err != nil {
		return nil, err
	}
	points, err := ParsePalette(c.Palette)
	if err != nil {
		return nil, err
	}

	return []mandelbrot.Option{
		mandelbrot.WithMaxIterations(c.MaxIterations),
		mandelbrot.WithTileCount(c.Tiles),
		mandelbrot.WithWorkers(c.Workers),
		mandelbrot.WithStrategy(strategy),
		mandelbrot.WithPrecision(precision),
		mandelbrot.WithOrientation(orient),
		mandelbrot.WithEscapeRadius(c.EscapeRadius),
		mandelbrot.WithColorScale(c.ColorScale),
		mandelbrot.WithColorOffset(c.ColorOffset),
		mandelbrot.WithControlPoints(points),
	}, nil
}

func parseStrategy(s string) (mandelbrot.Strategy, error) {
	for _, st := range []mandelbrot.Strategy{mandelbrot.StrategyChunks, mandelbrot.StrategyTiles} {
		if strings.EqualFold(s, st.String()) {
			return st, nil
		}
	}
	return 0, fmt.Errorf("%w: strategy %q (want chunks or tiles)", ErrInvalid, s)
}

func parsePrecision(s string) (mandelbrot.Precision, error) {
	for _, p := range []mandelbrot.Precision{mandelbrot.Precision64, mandelbrot.Precision32} {
		if strings.EqualFold(s, p.String()) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: precision %q (want float64 or float32)", ErrInvalid, s)
}

// ParseOrientation parses "down" or "up".
func ParseOrientation(s string) (mandelbrot.Orientation, error) {
	for _, o := range []mandelbrot.Orientation{mandelbrot.OrientDown, mandelbrot.OrientUp} {
		if strings.EqualFold(s, o.String()) {
			return o, nil
		}
	}
	return 0, fmt.Errorf("%w: orientation %q (want down or up)", ErrInvalid, s)
}
