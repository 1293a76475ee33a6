package color

// Knot is a spline control point: channel values Y at position X.
type Knot struct {
	X float64
	Y Channels
}

// Spline is a piecewise cubic Hermite curve through a sorted set of knots,
// evaluated independently for each channel.
//
// Tangents follow a one-sided rule: the tangent at the left end of segment i
// is the slope of segment i-1 (or of segment i itself for the first segment),
// and the tangent at the right end is the slope of segment i+1 (or of segment
// i itself for the last segment). This is not the averaged Fritsch-Carlson
// tangent; overshoot is possible and is removed by clamping in ToByte.
//
// The zero Spline evaluates to black everywhere.
type Spline struct {
	knots  []Knot
	slopes []Channels
}

// NewSpline creates a spline through knots, which must be sorted by strictly
// increasing X. The slice is copied.
func NewSpline(knots []Knot) Spline {
	s := Spline{knots: make([]Knot, len(knots))}
	copy(s.knots, knots)

	if len(knots) > 1 {
		s.slopes = make([]Channels, len(knots)-1)
		for i := range s.slopes {
			a, b := s.knots[i], s.knots[i+1]
			s.slopes[i] = b.Y.Sub(a.Y).Scale(1 / (b.X - a.X))
		}
	}
	return s
}

// Len returns the number of knots.
func (s Spline) Len() int {
	return len(s.knots)
}

// Segment returns the index i of the segment [knots[i], knots[i+1]) that
// contains x, found by linear scan. Returns -1 when x is before the first
// knot and Len()-1 when x is at or beyond the last knot.
func (s Spline) Segment(x float64) int {
	n := len(s.knots)
	if n == 0 || x < s.knots[0].X {
		return -1
	}
	for i := 0; i < n-1; i++ {
		if x < s.knots[i+1].X {
			return i
		}
	}
	return n - 1
}

// Eval returns the channel values at x. Positions outside the knot range
// clamp to the nearest end knot.
func (s Spline) Eval(x float64) Channels {
	n := len(s.knots)
	switch n {
	case 0:
		return Channels{}
	case 1:
		return s.knots[0].Y
	}

	i := s.Segment(x)
	if i < 0 {
		return s.knots[0].Y
	}
	if i >= n-1 {
		return s.knots[n-1].Y
	}

	k0, k1 := s.knots[i], s.knots[i+1]
	h := k1.X - k0.X
	t := (x - k0.X) / h

	m0 := s.slopes[i]
	if i > 0 {
		m0 = s.slopes[i-1]
	}
	m1 := s.slopes[i]
	if i+1 < len(s.slopes) {
		m1 = s.slopes[i+1]
	}

	var out Channels
	for ch := range out {
		out[ch] = Hermite(k0.Y[ch], k1.Y[ch], m0[ch]*h, m1[ch]*h, t)
	}
	return out
}

// Hermite evaluates the cubic Hermite basis at t in [0, 1] for endpoint
// values p0, p1 and endpoint tangents m0, m1 already scaled to the unit
// interval.
func Hermite(p0, p1, m0, m1, t float64) float64 {
	t2 := t * t
	t3 := t2 * t

	h00 := 2*t3 - 3*t2 + 1
	h10 := t3 - 2*t2 + t
	h01 := -2*t3 + 3*t2
	h11 := t3 - t2

	return h00*p0 + h10*m0 + h01*p1 + h11*m1
}
