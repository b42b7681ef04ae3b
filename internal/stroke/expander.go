package stroke

import "math"

// Point is a position or a direction in device space.
type Point struct {
	X, Y float64
}

func (p Point) Add(q Point) Point     { return Point{X: p.X + q.X, Y: p.Y + q.Y} }
func (p Point) Sub(q Point) Point     { return Point{X: p.X - q.X, Y: p.Y - q.Y} }
func (p Point) Scale(s float64) Point { return Point{X: p.X * s, Y: p.Y * s} }
func (p Point) Neg() Point            { return Point{X: -p.X, Y: -p.Y} }
func (p Point) Dot(q Point) float64   { return p.X*q.X + p.Y*q.Y }
func (p Point) Cross(q Point) float64 { return p.X*q.Y - p.Y*q.X }
func (p Point) Length() float64       { return math.Hypot(p.X, p.Y) }
func (p Point) Angle() float64        { return math.Atan2(p.Y, p.X) }

func (p Point) Lerp(q Point, t float64) Point {
	return Point{X: p.X + (q.X-p.X)*t, Y: p.Y + (q.Y-p.Y)*t}
}

// Perp returns the vector rotated 90 degrees counter-clockwise.
func (p Point) Perp() Point { return Point{X: -p.Y, Y: p.X} }

// Cap is the shape of open subpath ends.
type Cap int

const (
	// CapRound ends a subpath with a half disc.
	CapRound Cap = iota
	// CapButt ends a subpath flush with its end point.
	CapButt
)

// Join is the shape drawn where two segments meet.
type Join int

const (
	// JoinRound connects segments with a circular arc.
	JoinRound Join = iota
	// JoinBevel connects the outer offsets with a straight line.
	JoinBevel
)

// Style defines the stroke to expand.
type Style struct {
	Width float64
	Cap   Cap
	Join  Join
}

// PathElement is an element of an input or output path.
type PathElement interface {
	isPathElement()
}

// MoveTo starts a subpath.
type MoveTo struct{ Point Point }

func (MoveTo) isPathElement() {}

// LineTo draws a line.
type LineTo struct{ Point Point }

func (LineTo) isPathElement() {}

// CubicTo draws a cubic Bezier curve.
type CubicTo struct{ Control1, Control2, Point Point }

func (CubicTo) isPathElement() {}

// Close closes the subpath.
type Close struct{}

func (Close) isPathElement() {}

// Expander converts a stroked path into a path whose nonzero fill covers
// exactly the stroke. An Expander may be reused but not shared between
// goroutines.
type Expander struct {
	style     Style
	tolerance float64

	forward  *pathBuilder
	backward *pathBuilder
	output   *pathBuilder

	startPt   Point
	startNorm Point
	startTan  Point
	lastPt    Point
	lastTan   Point
	lastNorm  Point // scaled to half the width, points to the backward side

	// joins turning less than this (as sine of the angle) are skipped
	joinThresh float64
}

// NewExpander returns an expander for style with a flattening tolerance of
// a quarter pixel.
func NewExpander(style Style) *Expander {
	return &Expander{style: style, tolerance: 0.25}
}

// SetTolerance sets the curve flattening tolerance. Non-positive values
// are ignored.
func (e *Expander) SetTolerance(tolerance float64) {
	if tolerance > 0 {
		e.tolerance = tolerance
	}
}

// Expand returns the outline of the stroked elements. Curves are
// flattened; caps and round joins are emitted as cubic arcs.
func (e *Expander) Expand(elements []PathElement) []PathElement {
	if e.style.Width <= 0 {
		return nil
	}
	e.reset()

	for _, el := range elements {
		switch el := el.(type) {
		case MoveTo:
			e.finish()
			e.startPt = el.Point
			e.lastPt = el.Point
		case LineTo:
			if el.Point != e.lastPt {
				e.segment(el.Point)
			}
		case CubicTo:
			pts := []Point{e.lastPt}
			e.flattenCubic(e.lastPt, el.Control1, el.Control2, el.Point, 0, &pts)
			for _, p := range pts[1:] {
				if p.Sub(e.lastPt).Dot(p.Sub(e.lastPt)) > 1e-10 {
					e.segment(p)
				}
			}
		case Close:
			if e.lastPt != e.startPt {
				e.segment(e.startPt)
			}
			e.finishClosed()
		}
	}

	e.finish()
	return e.output.elements
}

func (e *Expander) reset() {
	e.forward = newPathBuilder()
	e.backward = newPathBuilder()
	e.output = newPathBuilder()
	e.startPt, e.startNorm, e.startTan = Point{}, Point{}, Point{}
	e.lastPt, e.lastTan, e.lastNorm = Point{}, Point{}, Point{}
	e.joinThresh = 2.0 * e.tolerance / e.style.Width
}

// normal returns the normal of tan scaled to half the stroke width.
func (e *Expander) normal(tan Point) Point {
	return tan.Perp().Scale(0.5 * e.style.Width / tan.Length())
}

// segment extends both offset paths with a line from lastPt to p.
func (e *Expander) segment(p Point) {
	tan := p.Sub(e.lastPt)
	e.join(tan)
	e.lastTan = tan

	norm := e.normal(tan)
	e.forward.lineTo(p.Sub(norm))
	e.backward.lineTo(p.Add(norm))
	e.lastPt = p
	e.lastNorm = norm
}

// join connects the previous segment to one leaving lastPt along tan.
func (e *Expander) join(tan Point) {
	p0 := e.lastPt
	norm := e.normal(tan)

	if e.forward.isEmpty() {
		e.forward.moveTo(p0.Sub(norm))
		e.backward.moveTo(p0.Add(norm))
		e.startTan = tan
		e.startNorm = norm
		return
	}

	cross := e.lastTan.Cross(tan)
	dot := e.lastTan.Dot(tan)
	hypot := math.Hypot(cross, dot)

	// Nearly straight: keep both offsets continuous without an arc.
	if dot > 0 && math.Abs(cross) < hypot*e.joinThresh {
		e.forward.lineTo(p0.Sub(norm))
		e.backward.lineTo(p0.Add(norm))
		return
	}

	if e.style.Join == JoinBevel {
		e.forward.lineTo(p0.Sub(norm))
		e.backward.lineTo(p0.Add(norm))
		return
	}

	lastNorm := e.normal(e.lastTan)
	angle := math.Atan2(cross, dot)
	if angle > 0 {
		// left turn, the forward side is outside
		e.backward.lineTo(p0.Add(norm))
		e.arc(e.forward, p0, lastNorm.Neg(), angle)
	} else {
		e.forward.lineTo(p0.Sub(norm))
		e.arc(e.backward, p0, lastNorm, angle)
	}
}

// finish closes an open subpath with caps at both ends.
func (e *Expander) finish() {
	if e.forward.isEmpty() {
		return
	}

	e.output.appendPath(e.forward)
	e.cap(e.lastPt, e.lastNorm.Neg())
	e.appendReversed(e.backward)
	e.cap(e.startPt, e.startNorm)
	e.output.close()

	e.forward = newPathBuilder()
	e.backward = newPathBuilder()
}

// finishClosed emits a closed subpath as two loops, the outer offset
// forward and the inner one reversed.
func (e *Expander) finishClosed() {
	if e.forward.isEmpty() {
		return
	}

	e.join(e.startTan)

	e.output.appendPath(e.forward)
	e.output.close()
	e.output.moveTo(e.backward.current)
	e.appendReversed(e.backward)
	e.output.close()

	e.forward = newPathBuilder()
	e.backward = newPathBuilder()
}

// cap continues the output from center+norm around to center-norm.
func (e *Expander) cap(center, norm Point) {
	switch e.style.Cap {
	case CapButt:
		e.output.lineTo(center.Sub(norm))
	case CapRound:
		e.arc(e.output, center, norm, math.Pi)
	}
}

// arc adds a circular arc around center starting at center+from and
// turning by angle, as cubic segments of at most a quarter turn.
func (e *Expander) arc(out *pathBuilder, center, from Point, angle float64) {
	n := max(1, int(math.Ceil(math.Abs(angle)/(math.Pi/2))))
	step := angle / float64(n)
	a := from.Angle()
	r := from.Length()

	for range n {
		a0, a1 := a, a+step
		k := math.Sin(step) * (math.Sqrt(4+3*math.Tan(step/2)*math.Tan(step/2)) - 1) / 3

		sin0, cos0 := math.Sincos(a0)
		sin1, cos1 := math.Sincos(a1)
		p0 := Point{X: center.X + r*cos0, Y: center.Y + r*sin0}
		p1 := Point{X: center.X + r*cos1, Y: center.Y + r*sin1}
		out.cubicTo(
			Point{X: p0.X - k*r*sin0, Y: p0.Y + k*r*cos0},
			Point{X: p1.X + k*r*sin1, Y: p1.Y - k*r*cos1},
			p1,
		)
		a = a1
	}
}

// appendReversed appends pb to the output from its last point back to its
// first.
func (e *Expander) appendReversed(pb *pathBuilder) {
	els := pb.elements
	for i := len(els) - 1; i >= 1; i-- {
		end := endPoint(els[i-1])
		switch el := els[i].(type) {
		case LineTo:
			e.output.lineTo(end)
		case CubicTo:
			e.output.cubicTo(el.Control2, el.Control1, end)
		}
	}
}

// flattenCubic appends the end points of a polyline within tolerance of
// the curve.
func (e *Expander) flattenCubic(p0, p1, p2, p3 Point, depth int, pts *[]Point) {
	if depth >= 16 || math.Max(distanceToSegment(p1, p0, p3), distanceToSegment(p2, p0, p3)) < e.tolerance {
		*pts = append(*pts, p3)
		return
	}

	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := p2.Lerp(p3, 0.5)
	r0 := q0.Lerp(q1, 0.5)
	r1 := q1.Lerp(q2, 0.5)
	s := r0.Lerp(r1, 0.5)

	e.flattenCubic(p0, q0, r0, s, depth+1, pts)
	e.flattenCubic(s, r1, q2, p3, depth+1, pts)
}

// distanceToSegment returns the distance from p to the segment ab.
func distanceToSegment(p, a, b Point) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 < 1e-20 {
		return p.Sub(a).Length()
	}
	t := math.Max(0, math.Min(1, p.Sub(a).Dot(ab)/l2))
	return p.Sub(a.Add(ab.Scale(t))).Length()
}

func endPoint(el PathElement) Point {
	switch el := el.(type) {
	case MoveTo:
		return el.Point
	case LineTo:
		return el.Point
	case CubicTo:
		return el.Point
	}
	return Point{}
}

type pathBuilder struct {
	elements []PathElement
	current  Point
}

func newPathBuilder() *pathBuilder {
	return &pathBuilder{elements: make([]PathElement, 0, 64)}
}

func (b *pathBuilder) isEmpty() bool { return len(b.elements) == 0 }

func (b *pathBuilder) moveTo(p Point) {
	b.elements = append(b.elements, MoveTo{Point: p})
	b.current = p
}

func (b *pathBuilder) lineTo(p Point) {
	b.elements = append(b.elements, LineTo{Point: p})
	b.current = p
}

func (b *pathBuilder) cubicTo(c1, c2, p Point) {
	b.elements = append(b.elements, CubicTo{Control1: c1, Control2: c2, Point: p})
	b.current = p
}

func (b *pathBuilder) close() {
	b.elements = append(b.elements, Close{})
}

func (b *pathBuilder) appendPath(other *pathBuilder) {
	b.elements = append(b.elements, other.elements...)
	b.current = other.current
}
