package edit

import (
	"slices"

	"github.com/gogpu/liquify"
)

// newWarp returns the warp of a node created at p by a drawing tool.
func newWarp(p liquify.Point, radius, strength float64) liquify.Warp {
	w := liquify.NewWarp(p)
	w.Radius = p.Add(liquify.Pt(radius, 0))
	w.Strength = p.Add(liquify.Pt(strength, 0))
	return w
}

// insertAfter inserts n right after anchor in anchor's path. If anchor is
// not part of paths, n starts a new path.
func insertAfter(paths liquify.Paths, anchor, n liquify.Node) liquify.Paths {
	i, j := paths.Find(anchor)
	if i < 0 {
		return append(paths, liquify.Path{n})
	}
	paths[i] = slices.Insert(paths[i], j+1, n)
	return paths
}

// insertBefore inserts n right before anchor, which must be part of paths.
func insertBefore(paths liquify.Paths, anchor, n liquify.Node) liquify.Paths {
	i, j := paths.Find(anchor)
	if i < 0 {
		return paths
	}
	paths[i] = slices.Insert(paths[i], j, n)
	return paths
}

// replaceNode swaps old for n in place.
func replaceNode(paths liquify.Paths, old, n liquify.Node) {
	if i, j := paths.Find(old); i >= 0 {
		paths[i][j] = n
	}
}

// deleteNode removes n from its path. Deleting the first node of a longer
// path keeps the MoveTo and moves it onto the second node, which is
// removed instead. A path left empty is dropped.
func deleteNode(paths liquify.Paths, n liquify.Node) liquify.Paths {
	i, j := paths.Find(n)
	if i < 0 {
		return paths
	}
	path := paths[i]
	if j == 0 && len(path) > 1 {
		w, next := n.WarpRef(), path[1].WarpRef()
		if w == nil || next == nil {
			return slices.Delete(paths, i, i+1)
		}
		w.Point = next.Point
		w.Radius = next.Radius
		w.Strength = next.Strength
		j = 1
	}
	path = slices.Delete(path, j, j+1)
	if len(path) == 0 {
		return slices.Delete(paths, i, i+1)
	}
	paths[i] = path
	return paths
}

// deletePath removes the path holding n.
func deletePath(paths liquify.Paths, n liquify.Node) liquify.Paths {
	i, _ := paths.Find(n)
	if i < 0 {
		return paths
	}
	return slices.Delete(paths, i, i+1)
}

// splitSegment inserts a node into the segment ending at e, at the point
// of the segment nearest to at. The new node carries a warp blended from
// both ends of the segment. It reports false if e does not end a segment.
func splitSegment(paths liquify.Paths, e liquify.Node, at liquify.Point) (liquify.Paths, bool) {
	prev := paths.Prev(e)
	if prev == nil || prev.WarpRef() == nil {
		return paths, false
	}
	pw := *prev.WarpRef()

	switch e := e.(type) {
	case *liquify.CurveTo:
		c := liquify.CubicBez{P0: pw.Point, P1: e.Ctrl1, P2: e.Ctrl2, P3: e.Point}
		t := c.NearestT(at, liquify.InterpolationPoints)
		left, right := c.Split(t)
		n := liquify.NewCurveTo(left.P1, left.P2, left.P3)
		n.Warp = liquify.MixWarps(pw, e.Warp, left.P3, t)
		e.Ctrl1, e.Ctrl2 = right.P1, right.P2
		return insertBefore(paths, e, n), true

	case *liquify.LineTo:
		l := liquify.Line{P0: pw.Point, P1: e.Point}
		t := l.NearestT(at)
		mid := l.Eval(t)
		n := liquify.NewLineTo(mid)
		n.Warp = liquify.MixWarps(pw, e.Warp, mid, t)
		return insertBefore(paths, e, n), true
	}
	return paths, false
}

// convertSegment turns the curve ending at e into a line or the line into
// a curve with control points at thirds. The warp is kept.
func convertSegment(paths liquify.Paths, e liquify.Node) bool {
	prev := paths.Prev(e)
	if prev == nil || prev.WarpRef() == nil {
		return false
	}
	switch e := e.(type) {
	case *liquify.CurveTo:
		n := liquify.NewLineTo(e.Point)
		n.Warp = e.Warp
		replaceNode(paths, e, n)
		return true

	case *liquify.LineTo:
		p0, p1 := prev.WarpRef().Point, e.Point
		n := liquify.NewCurveTo(p0.Mul(2).Add(p1).Div(3), p0.Add(p1.Mul(2)).Div(3), p1)
		n.Warp = e.Warp
		replaceNode(paths, e, n)
		return true
	}
	return false
}

func findHovered(paths liquify.Paths) liquify.Node {
	for _, p := range paths {
		for _, n := range p {
			if n.Header().Hovered != 0 {
				return n
			}
		}
	}
	return nil
}

func unselectAll(paths liquify.Paths) {
	for _, p := range paths {
		for _, n := range p {
			n.Header().Selected = 0
		}
	}
}
