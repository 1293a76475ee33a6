package color

import "math"

// ToByte clamps v to [0, 255] and rounds it to the nearest integer.
// NaN maps to 0.
func ToByte(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.Round(v))
}
