package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/gogpu/mandelbrot"
)

// ParsePalette parses a comma separated list of position:color stops, for
// example "0:#000764, 0.5:#ffffff". Colors are hex triplets in either the
// long or the short (#fff) form. Ordering rules are checked later by
// mandelbrot.NewGradient.
func ParsePalette(s string) ([]mandelbrot.ControlPoint, error) {
	var points []mandelbrot.ControlPoint
	for i, stop := range strings.Split(s, ",") {
		stop = strings.TrimSpace(stop)
		if stop == "" {
			continue
		}
		pos, hex, ok := strings.Cut(stop, ":")
		if !ok {
			return nil, fmt.Errorf("%w: palette stop %d %q: want position:#rrggbb", ErrInvalid, i, stop)
		}
		p, err := strconv.ParseFloat(strings.TrimSpace(pos), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: palette stop %d position: %v", ErrInvalid, i, err)
		}
		c, err := colorful.Hex(strings.TrimSpace(hex))
		if err != nil {
			return nil, fmt.Errorf("%w: palette stop %d color: %v", ErrInvalid, i, err)
		}
		r, g, b := c.RGB255()
		points = append(points, mandelbrot.ControlPoint{
			Position: p,
			Color:    color.RGBA{R: r, G: g, B: b, A: 255},
		})
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: empty palette", ErrInvalid)
	}
	return points, nil
}

// FormatPalette is the inverse of ParsePalette.
func FormatPalette(points []mandelbrot.ControlPoint) string {
	stops := make([]string, len(points))
	for i, p := range points {
		c, _ := colorful.MakeColor(color.RGBA{R: p.Color.R, G: p.Color.G, B: p.Color.B, A: 255})
		stops[i] = strconv.FormatFloat(p.Position, 'g', -1, 64) + ":" + c.Hex()
	}
	return strings.Join(stops, ", ")
}
