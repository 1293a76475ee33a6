package config

// Flags are the command line overrides shared by the binaries. They are
// parsed with go-arg by embedding Flags in a command's argument struct.
// Nil fields were not given on the command line and leave the loaded
// setting alone.
type Flags struct {
	Config string `arg:"-c,--config" help:"TOML settings file"`

	Width         *int     `arg:"--width" help:"buffer width in pixels"`
	Height        *int     `arg:"--height" help:"buffer height in pixels"`
	WindowWidth   *int     `arg:"--window-width" help:"viewer window width"`
	WindowHeight  *int     `arg:"--window-height" help:"viewer window height"`
	MaxIterations *int     `arg:"-n,--max-iter" help:"iteration budget per pixel"`
	Tiles         *int     `arg:"-k,--tiles" help:"chunk count, must divide width*height (0: one per row)"`
	Workers       *int     `arg:"-j,--workers" help:"worker goroutines (0: GOMAXPROCS)"`
	Strategy      *string  `arg:"--strategy" help:"chunks or tiles"`
	Precision     *string  `arg:"--precision" help:"float64 or float32"`
	Orientation   *string  `arg:"--orientation" help:"down (row 0 at min imaginary) or up"`
	EscapeRadius  *float64 `arg:"--radius" help:"escape radius, at least 2"`
	ColorScale    *float64 `arg:"--color-scale" help:"gradient entries per unit of smoothed depth"`
	ColorOffset   *float64 `arg:"--color-offset" help:"offset added to the iteration count"`
	Palette       *string  `arg:"--palette" help:"control points, e.g. \"0:#000764, 0.5:#ffffff\""`
	CenterRe      *float64 `arg:"--re" help:"real part of the view center"`
	CenterIm      *float64 `arg:"--im" help:"imaginary part of the view center"`
	Zoom          *float64 `arg:"-z,--zoom" help:"zoom factor, 1 shows the whole set"`
	Landmark      *string  `arg:"-l,--landmark" help:"named view, overrides center and zoom"`
	Supersample   *int     `arg:"-s,--supersample" help:"render at N times the size and scale down"`

	Verbose bool `arg:"-v,--verbose" help:"log at debug level"`
}

// Load reads the settings file named by f.Config and applies the overrides.
func (f Flags) Load() (Config, error) {
	c, err := Load(f.Config)
	if err != nil {
		return c, err
	}
	f.Apply(&c)
	return c, nil
}

// Apply copies every given override into c.
func (f Flags) Apply(c *Config) {
	set(&c.Width, f.Width)
	set(&c.Height, f.Height)
	set(&c.WindowWidth, f.WindowWidth)
	set(&c.WindowHeight, f.WindowHeight)
	set(&c.MaxIterations, f.MaxIterations)
	set(&c.Tiles, f.Tiles)
	set(&c.Workers, f.Workers)
	set(&c.Strategy, f.Strategy)
	set(&c.Precision, f.Precision)
	set(&c.Orientation, f.Orientation)
	set(&c.EscapeRadius, f.EscapeRadius)
	set(&c.ColorScale, f.ColorScale)
	set(&c.ColorOffset, f.ColorOffset)
	set(&c.Palette, f.Palette)
	set(&c.CenterRe, f.CenterRe)
	set(&c.CenterIm, f.CenterIm)
	set(&c.Zoom, f.Zoom)
	set(&c.Landmark, f.Landmark)
	set(&c.Supersample, f.Supersample)

	// An explicit center or zoom on the command line beats a landmark from
	// the file.
	if f.Landmark == nil && (f.CenterRe != nil || f.CenterIm != nil || f.Zoom != nil) {
		c.Landmark = ""
	}
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
