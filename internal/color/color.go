// Package color provides the per-channel spline math behind the gradient table.
//
// Colors are handled as three independent float64 channels in the byte range
// [0, 255]. Splines evaluate each channel separately and the result is clamped
// and rounded back to bytes only at the very end, so intermediate overshoot
// never wraps around.
package color

// Channels holds the red, green and blue components of a color.
// Each component is nominally in [0, 255] but may overshoot while a spline
// is being evaluated.
type Channels [3]float64

// FromRGB converts byte components to Channels.
func FromRGB(r, g, b uint8) Channels {
	return Channels{float64(r), float64(g), float64(b)}
}

// Bytes clamps and rounds every channel.
func (c Channels) Bytes() (r, g, b uint8) {
	return ToByte(c[0]), ToByte(c[1]), ToByte(c[2])
}

// Sub returns c - o per channel.
func (c Channels) Sub(o Channels) Channels {
	return Channels{c[0] - o[0], c[1] - o[1], c[2] - o[2]}
}

// Scale returns c * s per channel.
func (c Channels) Scale(s float64) Channels {
	return Channels{c[0] * s, c[1] * s, c[2] * s}
}
