// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

// Point is a position in device space.
type Point struct {
	X, Y float64
}

// Lerp performs linear interpolation between two points.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{X: p.X + (q.X-p.X)*t, Y: p.Y + (q.Y-p.Y)*t}
}

// PathElement represents a single element in a path.
type PathElement interface {
	isPathElement()
}

// MoveTo starts a subpath.
type MoveTo struct {
	Point Point
}

func (MoveTo) isPathElement() {}

// LineTo draws a line to a point.
type LineTo struct {
	Point Point
}

func (LineTo) isPathElement() {}

// CubicTo draws a cubic Bezier curve.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

func (CubicTo) isPathElement() {}

// Close closes the current subpath.
type Close struct{}

func (Close) isPathElement() {}

// Path is a vector path in device space. Every subpath begins with a
// MoveTo.
type Path struct {
	elements []PathElement
	start    Point
	current  Point
	hasCur   bool
	open     bool // last subpath accepts more segments
}

// Elements returns the path elements.
func (p *Path) Elements() []PathElement {
	return p.elements
}

func (p *Path) reset() {
	p.elements = p.elements[:0]
	p.open = false
	p.hasCur = false
}

// IsEmpty reports whether the path has no segments.
func (p *Path) IsEmpty() bool {
	for _, el := range p.elements {
		switch el.(type) {
		case LineTo, CubicTo:
			return false
		}
	}
	return true
}

func (p *Path) moveTo(pt Point) {
	p.elements = append(p.elements, MoveTo{Point: pt})
	p.start, p.current = pt, pt
	p.hasCur, p.open = true, true
}

// begin makes sure a subpath is open before a segment is added. A segment
// following ClosePath starts a new subpath at the closed one's start.
func (p *Path) begin(fallback Point) {
	switch {
	case !p.hasCur:
		p.moveTo(fallback)
	case !p.open:
		p.moveTo(p.current)
	}
}

func (p *Path) lineTo(pt Point) {
	if !p.hasCur {
		p.moveTo(pt)
		return
	}
	p.begin(pt)
	p.elements = append(p.elements, LineTo{Point: pt})
	p.current = pt
}

func (p *Path) curveTo(c1, c2, end Point) {
	p.begin(c1)
	p.elements = append(p.elements, CubicTo{Control1: c1, Control2: c2, Point: end})
	p.current = end
}

func (p *Path) closePath() {
	if !p.open {
		return
	}
	p.elements = append(p.elements, Close{})
	p.open = false
	p.current = p.start
}

// newSubPath ends the open subpath and forgets the current point.
func (p *Path) newSubPath() {
	p.open = false
	p.hasCur = false
}
