// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"math"

	"github.com/gogpu/liquify/internal/stroke"
)

// windingTolerance is the flatness used when curves are crossed by the
// winding ray.
const windingTolerance = 0.1

// maxSubdivision bounds curve recursion for degenerate input.
const maxSubdivision = 16

// cubicBez is a cubic Bezier segment.
type cubicBez struct {
	P0, P1, P2, P3 Point
}

// subdivide splits the curve at t=0.5 (de Casteljau).
func (c cubicBez) subdivide() (cubicBez, cubicBez) {
	p01 := c.P0.Lerp(c.P1, 0.5)
	p12 := c.P1.Lerp(c.P2, 0.5)
	p23 := c.P2.Lerp(c.P3, 0.5)
	p012 := p01.Lerp(p12, 0.5)
	p123 := p12.Lerp(p23, 0.5)
	mid := p012.Lerp(p123, 0.5)

	return cubicBez{P0: c.P0, P1: p01, P2: p012, P3: mid},
		cubicBez{P0: mid, P1: p123, P2: p23, P3: c.P3}
}

// Winding returns the winding number of a point relative to the path.
// 0 = outside, non-zero = inside (for non-zero fill rule). Open subpaths
// are closed implicitly, the way Fill closes them.
// Uses ray casting with a horizontal ray to the right.
func (p *Path) Winding(pt Point) int {
	var winding int
	var current, start Point
	open := false

	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			if open {
				winding += lineWinding(current, start, pt)
			}
			start = e.Point
			current = e.Point
			open = true
		case LineTo:
			winding += lineWinding(current, e.Point, pt)
			current = e.Point
		case CubicTo:
			winding += cubicWinding(current, e.Control1, e.Control2, e.Point, pt)
			current = e.Point
		case Close:
			winding += lineWinding(current, start, pt)
			current = start
			open = false
		}
	}
	if open {
		winding += lineWinding(current, start, pt)
	}

	return winding
}

// lineWinding computes the winding contribution of a line segment.
func lineWinding(p0, p1, pt Point) int {
	if p0.Y <= pt.Y && p1.Y > pt.Y {
		// Upward crossing
		if isLeft(p0, p1, pt) > 0 {
			return 1
		}
	} else if p0.Y > pt.Y && p1.Y <= pt.Y {
		// Downward crossing
		if isLeft(p0, p1, pt) < 0 {
			return -1
		}
	}
	return 0
}

// isLeft returns positive if pt is left of line p0-p1, negative if right, 0 if on.
func isLeft(p0, p1, pt Point) float64 {
	return (p1.X-p0.X)*(pt.Y-p0.Y) - (pt.X-p0.X)*(p1.Y-p0.Y)
}

// cubicWinding computes the winding contribution of a cubic Bezier.
func cubicWinding(p0, p1, p2, p3, pt Point) int {
	// Early exit if point is outside the vertical range
	minY := math.Min(math.Min(p0.Y, p1.Y), math.Min(p2.Y, p3.Y))
	maxY := math.Max(math.Max(p0.Y, p1.Y), math.Max(p2.Y, p3.Y))
	if pt.Y < minY || pt.Y > maxY {
		return 0
	}

	// Early exit if point is to the right of the curve
	maxX := math.Max(math.Max(p0.X, p1.X), math.Max(p2.X, p3.X))
	if pt.X > maxX {
		return 0
	}

	var winding int
	cubicWindingRecursive(cubicBez{p0, p1, p2, p3}, pt, windingTolerance, 0, &winding)
	return winding
}

// cubicWindingRecursive subdivides until flat and accumulates line winding.
func cubicWindingRecursive(c cubicBez, pt Point, tolerance float64, depth int, winding *int) {
	if depth >= maxSubdivision || cubicFlatness(c) <= tolerance {
		*winding += lineWinding(c.P0, c.P3, pt)
		return
	}

	c1, c2 := c.subdivide()
	cubicWindingRecursive(c1, pt, tolerance, depth+1, winding)
	cubicWindingRecursive(c2, pt, tolerance, depth+1, winding)
}

// cubicFlatness returns the squared flatness metric of the control points
// against the chord; it is 16 times the squared deviation bound.
func cubicFlatness(c cubicBez) float64 {
	ux := 3.0*c.P1.X - 2.0*c.P0.X - c.P3.X
	uy := 3.0*c.P1.Y - 2.0*c.P0.Y - c.P3.Y
	vx := 3.0*c.P2.X - c.P0.X - 2.0*c.P3.X
	vy := 3.0*c.P2.Y - c.P0.Y - 2.0*c.P3.Y

	return math.Max(ux*ux+uy*uy, vx*vx+vy*vy)
}

// Contains tests if a point is inside the path using the non-zero fill rule.
func (p *Path) Contains(pt Point) bool {
	return p.Winding(pt) != 0
}

// Flatten converts the path to one polyline per subpath. Closed subpaths
// end with their start point.
func (p *Path) Flatten(tolerance float64) [][]Point {
	var polys [][]Point
	p.FlattenCallback(tolerance, func(pt Point, first bool) {
		if first {
			polys = append(polys, nil)
		}
		polys[len(polys)-1] = append(polys[len(polys)-1], pt)
	})
	return polys
}

// FlattenCallback calls fn for each point in the flattened path; first is
// set on the point that starts a subpath.
func (p *Path) FlattenCallback(tolerance float64, fn func(pt Point, first bool)) {
	if tolerance <= 0 {
		tolerance = 0.1
	}

	var current, start Point
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			fn(e.Point, true)
			start = e.Point
			current = e.Point
		case LineTo:
			fn(e.Point, false)
			current = e.Point
		case CubicTo:
			flattenCubic(cubicBez{current, e.Control1, e.Control2, e.Point}, tolerance*tolerance, 0, fn)
			current = e.Point
		case Close:
			if current != start {
				fn(start, false)
			}
			current = start
		}
	}
}

// flattenCubic recursively subdivides the cubic and emits chord ends.
func flattenCubic(c cubicBez, toleranceSq float64, depth int, fn func(pt Point, first bool)) {
	if depth >= maxSubdivision || cubicFlatness(c) <= toleranceSq*16 {
		fn(c.P3, false)
		return
	}

	c1, c2 := c.subdivide()
	flattenCubic(c1, toleranceSq, depth+1, fn)
	flattenCubic(c2, toleranceSq, depth+1, fn)
}

// toStrokeElements converts path elements for the stroke expander.
func toStrokeElements(els []PathElement) []stroke.PathElement {
	out := make([]stroke.PathElement, 0, len(els))
	for _, e := range els {
		switch el := e.(type) {
		case MoveTo:
			out = append(out, stroke.MoveTo{Point: stroke.Point(el.Point)})
		case LineTo:
			out = append(out, stroke.LineTo{Point: stroke.Point(el.Point)})
		case CubicTo:
			out = append(out, stroke.CubicTo{
				Control1: stroke.Point(el.Control1),
				Control2: stroke.Point(el.Control2),
				Point:    stroke.Point(el.Point),
			})
		case Close:
			out = append(out, stroke.Close{})
		}
	}
	return out
}

func fromStrokeElement(e stroke.PathElement) PathElement {
	switch el := e.(type) {
	case stroke.MoveTo:
		return MoveTo{Point: Point(el.Point)}
	case stroke.LineTo:
		return LineTo{Point: Point(el.Point)}
	case stroke.CubicTo:
		return CubicTo{Control1: Point(el.Control1), Control2: Point(el.Control2), Point: Point(el.Point)}
	}
	return Close{}
}
