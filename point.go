package liquify

import "math"

// Point is a position or a vector in the plane.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Polar returns the vector of length r at angle phi.
func Polar(r, phi float64) Point {
	return Point{X: r * math.Cos(phi), Y: r * math.Sin(phi)}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul scales p by s.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Div divides p by s.
func (p Point) Div(s float64) Point {
	return Point{X: p.X / s, Y: p.Y / s}
}

// Dot returns the dot product.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Cross returns the z component of the 3D cross product.
func (p Point) Cross(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

// Length returns |p|.
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Distance returns |p-q|.
func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Length()
}

// Angle returns the direction of p in radians, in (-π, π].
func (p Point) Angle() float64 {
	return math.Atan2(p.Y, p.X)
}

// Normalize returns the unit vector along p. Vectors shorter than 1e-6
// normalize to (1, 0) so callers always get a usable direction.
func (p Point) Normalize() Point {
	l := p.Length()
	if l < 1e-6 {
		return Point{X: 1}
	}
	return p.Div(l)
}

// Rotate returns p rotated by angle radians around the origin.
func (p Point) Rotate(angle float64) Point {
	sin, cos := math.Sincos(angle)
	return Point{X: p.X*cos - p.Y*sin, Y: p.X*sin + p.Y*cos}
}

// Lerp returns p + (q-p)*t.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{X: p.X + (q.X-p.X)*t, Y: p.Y + (q.Y-p.Y)*t}
}

// Round returns the nearest integer coordinates.
func (p Point) Round() (x, y int) {
	return int(math.Round(p.X)), int(math.Round(p.Y))
}

// Complex returns p as x+iy.
func (p Point) Complex() complex128 {
	return complex(p.X, p.Y)
}
