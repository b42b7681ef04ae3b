package main

import (
	"image"

	"github.com/gogpu/liquify"
)

// demoPaths returns a small set of paths covering an image of the given
// size: a point that grows, a point that shrinks and a curved linear
// stroke across the middle.
func demoPaths(size image.Point) liquify.Paths {
	w, h := float64(size.X), float64(size.Y)
	r := min(w, h) / 6

	warp := func(p liquify.Point, radius float64, strength liquify.Point, t liquify.WarpType) liquify.Warp {
		wp := liquify.NewWarp(p)
		wp.Radius = p.Add(liquify.Pt(radius, 0))
		wp.Strength = p.Add(strength)
		wp.Type = t
		return wp
	}

	grow := liquify.NewMoveTo(liquify.Pt(w/4, h/4))
	grow.Warp = warp(grow.Point, r, liquify.Pt(r/2, 0), liquify.RadialGrow)

	shrink := liquify.NewMoveTo(liquify.Pt(3*w/4, h/4))
	shrink.Warp = warp(shrink.Point, r, liquify.Pt(r/2, 0), liquify.RadialShrink)

	start := liquify.NewMoveTo(liquify.Pt(w/5, 2*h/3))
	start.Warp = warp(start.Point, r/2, liquify.Pt(0, -r/3), liquify.Linear)
	end := liquify.NewCurveTo(liquify.Pt(2*w/5, h/2), liquify.Pt(3*w/5, 5*h/6), liquify.Pt(4*w/5, 2*h/3))
	end.Warp = warp(end.Point, r/2, liquify.Pt(0, r/3), liquify.Linear)

	return liquify.Paths{{grow}, {shrink}, {start, end}}
}
