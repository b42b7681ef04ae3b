// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

// Surface is a stateful 2D vector drawing context.
//
// Coordinates passed to path construction are transformed by the current
// transformation matrix at the time of the call. Save and Restore push and
// pop the matrix, line width and source color. Surfaces are not safe for
// concurrent use.
type Surface interface {
	// NewPath discards the current path.
	NewPath()

	// NewSubPath ends the current subpath without starting a new one, so a
	// following Arc does not connect to the previous point.
	NewSubPath()

	MoveTo(x, y float64)
	LineTo(x, y float64)
	CurveTo(x1, y1, x2, y2, x3, y3 float64)

	// Arc adds a clockwise (in y-down space) circular arc from angle a1 to
	// a2. When a current point exists a line joins it to the arc start.
	Arc(xc, yc, r, a1, a2 float64)

	ClosePath()

	Save()
	Restore()
	Translate(x, y float64)
	Rotate(angle float64)

	SetLineWidth(w float64)
	SetSourceRGBA(r, g, b, a float64)

	Fill()
	FillPreserve()
	Stroke()
	StrokePreserve()

	// InFill reports whether (x, y) lies inside the current path under the
	// nonzero winding rule.
	InFill(x, y float64) bool

	// InStroke reports whether (x, y) lies within the area Stroke would
	// paint.
	InStroke(x, y float64) bool

	// PushGroup redirects painting to a transparent layer.
	PushGroup()

	// PopGroup composites the layer pushed last onto the previous target
	// with the given opacity.
	PopGroup(alpha float64)
}
