package liquify

import "math"

// WarpType selects how a warp displaces pixels.
type WarpType uint32

const (
	// Linear pushes every pixel under the warp along the strength vector.
	Linear WarpType = iota
	// RadialGrow pushes pixels away from the warp center.
	RadialGrow
	// RadialShrink pulls pixels towards the warp center.
	RadialShrink

	warpTypeCount
)

// Next returns the type that follows t in the Linear, RadialGrow,
// RadialShrink cycle.
func (t WarpType) Next() WarpType {
	return (t + 1) % warpTypeCount
}

func (t WarpType) String() string {
	switch t {
	case Linear:
		return "linear"
	case RadialGrow:
		return "grow"
	case RadialShrink:
		return "shrink"
	}
	return "unknown"
}

// Default feathering controls of a new warp.
const (
	DefaultControl1 = 0.5
	DefaultControl2 = 0.75
)

// Warp is a single circular distortion. Point is the hot spot; Radius and
// Strength are absolute positions whose offsets from Point give the warp
// radius and the strength vector. Control1 and Control2 place the two
// hardness control points of the falloff curve, as fractions of the radius.
type Warp struct {
	Point    Point
	Strength Point
	Radius   Point
	Control1 float64
	Control2 float64
	Type     WarpType
}

// NewWarp returns a zero-sized warp anchored at p with default controls.
func NewWarp(p Point) Warp {
	return Warp{
		Point:    p,
		Strength: p,
		Radius:   p,
		Control1: DefaultControl1,
		Control2: DefaultControl2,
		Type:     Linear,
	}
}

// EffectiveRadius returns |Radius-Point|.
func (w Warp) EffectiveRadius() float64 {
	return w.Radius.Distance(w.Point)
}

// StrengthVector returns Strength-Point.
func (w Warp) StrengthVector() Point {
	return w.Strength.Sub(w.Point)
}

// Translate moves the warp and its handles by d.
func (w *Warp) Translate(d Point) {
	w.Point = w.Point.Add(d)
	w.Radius = w.Radius.Add(d)
	w.Strength = w.Strength.Add(d)
}

// MixWarps interpolates two warps at t. The result is anchored at pt.
// Radius magnitude, strength magnitude and strength angle are interpolated
// separately; the type is taken from w1. The resulting radius handle lies
// along the positive x axis.
func MixWarps(w1, w2 Warp, pt Point, t float64) Warp {
	mix := func(a, b float64) float64 { return a + (b-a)*t }

	s1, s2 := w1.StrengthVector(), w2.StrengthVector()
	r := mix(w1.EffectiveRadius(), w2.EffectiveRadius())
	sr := mix(s1.Length(), s2.Length())
	phi := mix(s1.Angle(), s2.Angle())

	return Warp{
		Point:    pt,
		Radius:   pt.Add(Point{X: r}),
		Strength: pt.Add(Polar(sr, phi)),
		Control1: mix(w1.Control1, w2.Control1),
		Control2: mix(w1.Control2, w2.Control2),
		Type:     w1.Type,
	}
}

// Rotation is the angle added to the strength direction when drawing the
// warp's arrow. Shrinking warps point back at their center.
func (t WarpType) Rotation() float64 {
	if t == RadialShrink {
		return math.Pi
	}
	return 0
}
