package liquify

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func almostEqualPt(t *testing.T, want, got Point, eps float64) {
	t.Helper()
	if math.Abs(want.X-got.X) > eps || math.Abs(want.Y-got.Y) > eps {
		t.Errorf("got %v, want %v (eps %g)", got, want, eps)
	}
}

func TestPointNormalize(t *testing.T) {
	almostEqualPt(t, Pt(0.6, 0.8), Pt(3, 4).Normalize(), 1e-12)
	assert.Equal(t, Pt(1, 0), Pt(0, 0).Normalize())
	assert.Equal(t, Pt(1, 0), Pt(1e-7, 0).Normalize())
}

func TestPolarAngle(t *testing.T) {
	p := Polar(2, math.Pi/2)
	almostEqualPt(t, Pt(0, 2), p, 1e-12)
	assert.InDelta(t, math.Pi/2, p.Angle(), 1e-12)
	assert.InDelta(t, 2, p.Length(), 1e-12)
}

func TestPointRound(t *testing.T) {
	x, y := Pt(1.5, -2.4).Round()
	assert.Equal(t, 2, x)
	assert.Equal(t, -2, y)
}

func TestLineNearestT(t *testing.T) {
	l := Line{Pt(0, 0), Pt(10, 0)}
	tests := []struct {
		p    Point
		want float64
	}{
		{Pt(5, 3), 0.5},
		{Pt(-4, 1), 0},
		{Pt(20, -1), 1},
		{Pt(2.5, 0), 0.25},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, l.NearestT(tt.p), 1e-12, "point %v", tt.p)
	}
	assert.Equal(t, 0.0, Line{Pt(1, 1), Pt(1, 1)}.NearestT(Pt(4, 4)))
}

func TestCubicSplit(t *testing.T) {
	c := CubicBez{Pt(0, 0), Pt(0, 10), Pt(10, 10), Pt(10, 0)}
	for _, at := range []float64{0.25, 0.5, 0.8} {
		a, b := c.Split(at)
		almostEqualPt(t, c.Eval(at), a.P3, 1e-12)
		almostEqualPt(t, c.Eval(at), b.P0, 1e-12)
		// Both halves trace the original curve.
		for _, u := range []float64{0, 0.3, 0.7, 1} {
			almostEqualPt(t, c.Eval(at*u), a.Eval(u), 1e-9)
			almostEqualPt(t, c.Eval(at+(1-at)*u), b.Eval(u), 1e-9)
		}
	}
}

func TestCubicNearestT(t *testing.T) {
	c := CubicBez{Pt(0, 0), Pt(10, 0), Pt(20, 0), Pt(30, 0)}
	assert.InDelta(t, 0.5, c.NearestT(Pt(15, 5), InterpolationPoints), 0.02)
	assert.Equal(t, 0.0, c.NearestT(Pt(-10, 0), InterpolationPoints))
	assert.Equal(t, 1.0, c.NearestT(Pt(40, 0), InterpolationPoints))
}

func TestCubicFlatten(t *testing.T) {
	c := CubicBez{Pt(0, 0), Pt(1, 2), Pt(3, 2), Pt(4, 0)}
	pts := c.Flatten(InterpolationPoints)
	assert.Len(t, pts, InterpolationPoints)
	assert.Equal(t, c.P0, pts[0])
	assert.Equal(t, c.P3, pts[len(pts)-1])
}

func TestPolylinePointAt(t *testing.T) {
	pl := newPolyline([]Point{Pt(0, 0), Pt(3, 0), Pt(3, 4)})
	assert.Equal(t, 7.0, pl.length())

	var cur arcCursor
	almostEqualPt(t, Pt(1, 0), pl.pointAt(1, &cur), 1e-12)
	almostEqualPt(t, Pt(3, 0), pl.pointAt(3, &cur), 1e-12)
	almostEqualPt(t, Pt(3, 2), pl.pointAt(5, &cur), 1e-12)

	// A fresh lookup agrees with the cursor.
	almostEqualPt(t, pl.pointAt(5, nil), pl.pointAt(5, &cur), 1e-12)
	almostEqualPt(t, Pt(3, 4), pl.pointAt(7, &cur), 1e-12)
}

func TestMixWarps(t *testing.T) {
	w1 := Warp{Point: Pt(0, 0), Radius: Pt(10, 0), Strength: Pt(4, 0), Control1: 0.2, Control2: 0.6, Type: RadialGrow}
	w2 := Warp{Point: Pt(100, 0), Radius: Pt(100, 30), Strength: Pt(100, 8), Control1: 0.4, Control2: 1, Type: Linear}

	m := MixWarps(w1, w2, Pt(50, 5), 0.5)
	assert.Equal(t, Pt(50, 5), m.Point)
	assert.Equal(t, RadialGrow, m.Type)
	assert.InDelta(t, 20, m.EffectiveRadius(), 1e-12)
	almostEqualPt(t, Pt(70, 5), m.Radius, 1e-12)
	assert.InDelta(t, 6, m.StrengthVector().Length(), 1e-12)
	assert.InDelta(t, math.Pi/4, m.StrengthVector().Angle(), 1e-12)
	assert.InDelta(t, 0.3, m.Control1, 1e-12)
	assert.InDelta(t, 0.8, m.Control2, 1e-12)
}

func TestTypeCycles(t *testing.T) {
	assert.Equal(t, RadialGrow, Linear.Next())
	assert.Equal(t, RadialShrink, RadialGrow.Next())
	assert.Equal(t, Linear, RadialShrink.Next())

	nt := Cusp
	for _, want := range []NodeType{Smooth, Symmetrical, Autosmooth, Cusp} {
		nt = nt.Next()
		assert.Equal(t, want, nt)
	}
	assert.Equal(t, math.Pi, RadialShrink.Rotation())
	assert.Equal(t, 0.0, RadialGrow.Rotation())
}
