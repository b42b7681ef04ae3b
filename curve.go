package liquify

import "math"

// Line is a straight segment from P0 to P1.
type Line struct {
	P0, P1 Point
}

// Eval returns the point at parameter t.
func (l Line) Eval(t float64) Point {
	return l.P0.Lerp(l.P1, t)
}

// Length returns the segment length.
func (l Line) Length() float64 {
	return l.P0.Distance(l.P1)
}

// NearestT returns the parameter of the point on the segment closest to p,
// found by scalar projection and clamped to [0, 1].
func (l Line) NearestT(p Point) float64 {
	d := l.P1.Sub(l.P0)
	ls := d.Dot(d)
	if ls == 0 {
		return 0
	}
	return clamp01(p.Sub(l.P0).Dot(d) / ls)
}

// CubicBez is a cubic bezier segment.
type CubicBez struct {
	P0, P1, P2, P3 Point
}

// Eval returns the point at parameter t.
func (c CubicBez) Eval(t float64) Point {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	cc := 3 * mt * t * t
	d := t * t * t
	return Point{
		X: a*c.P0.X + b*c.P1.X + cc*c.P2.X + d*c.P3.X,
		Y: a*c.P0.Y + b*c.P1.Y + cc*c.P2.Y + d*c.P3.Y,
	}
}

// Split divides the curve at t by de Casteljau's construction.
func (c CubicBez) Split(t float64) (CubicBez, CubicBez) {
	p01 := c.P0.Lerp(c.P1, t)
	p12 := c.P1.Lerp(c.P2, t)
	p23 := c.P2.Lerp(c.P3, t)
	p012 := p01.Lerp(p12, t)
	p123 := p12.Lerp(p23, t)
	mid := p012.Lerp(p123, t)
	return CubicBez{c.P0, p01, p012, mid}, CubicBez{mid, p123, p23, c.P3}
}

// Flatten samples the curve at n uniformly spaced parameters, both ends
// included.
func (c CubicBez) Flatten(n int) []Point {
	if n < 2 {
		n = 2
	}
	out := make([]Point, n)
	step := 1 / float64(n-1)
	for i := range n - 1 {
		out[i] = c.Eval(float64(i) * step)
	}
	out[n-1] = c.P3
	return out
}

// NearestT returns the sample parameter, out of n uniform samples, whose
// point lies closest to p.
func (c CubicBez) NearestT(p Point, n int) float64 {
	if n < 2 {
		n = 2
	}
	best, bestT := math.Inf(1), 0.0
	for i := range n {
		t := float64(i) / float64(n-1)
		if d := c.Eval(t).Distance(p); d < best {
			best, bestT = d, t
		}
	}
	return bestT
}

// polyline is a sampled curve with cumulative chord lengths, used to move
// along a curve by arc length.
type polyline struct {
	pts []Point
	acc []float64
}

func newPolyline(pts []Point) *polyline {
	acc := make([]float64, len(pts))
	for i := 1; i < len(pts); i++ {
		acc[i] = acc[i-1] + pts[i].Distance(pts[i-1])
	}
	return &polyline{pts: pts, acc: acc}
}

func (pl *polyline) length() float64 {
	return pl.acc[len(pl.acc)-1]
}

// arcCursor remembers where the previous lookup stopped. Lookups with
// non-decreasing arc lengths therefore cost amortised O(1).
type arcCursor struct {
	i int
}

// pointAt returns the point at arc length s. A nil cursor searches from the
// start.
func (pl *polyline) pointAt(s float64, cur *arcCursor) Point {
	i := 1
	if cur != nil && cur.i > 1 && pl.acc[cur.i-1] <= s {
		i = cur.i
	}
	for i < len(pl.pts)-1 && pl.acc[i] < s {
		i++
	}
	if cur != nil {
		cur.i = i
	}
	seg := pl.acc[i] - pl.acc[i-1]
	if seg <= 0 {
		return pl.pts[i]
	}
	return pl.pts[i-1].Lerp(pl.pts[i], (s-pl.acc[i-1])/seg)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
