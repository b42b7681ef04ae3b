package edit

import (
	"math"

	"github.com/gogpu/liquify"
	"github.com/gogpu/liquify/surface"
)

// Sizes of overlay elements in UI pixels.
const (
	widthThinLine   = 1.0
	widthThickLine  = 3.0
	widthGizmo      = 8.0
	widthGizmoSmall = 6.0
)

// Hit is the result of a hit test: the topmost layer under the query point
// and the node that drew it.
type Hit struct {
	Layer Layer
	Node  liquify.Node
}

// Nowhere is the hit on empty background.
var Nowhere = Hit{Layer: LayerBackground}

// drawer walks paths layer by layer. With at set it does not paint:
// every hit-testable element tests its geometry against at instead and the
// walk stops at the first hit.
type drawer struct {
	s      surface.Surface
	scale  float64
	at     *liquify.Point
	fg, bg RGBA
}

func (d *drawer) width(w float64) float64 { return d.scale * w }

func (d *drawer) source(c RGBA) { d.s.SetSourceRGBA(c.R, c.G, c.B, c.A) }

func (d *drawer) hitTest() bool { return d.at != nil }

// gizmo fills the current path with the background color and outlines it
// with the foreground color. In hit mode it reports containment instead.
func (d *drawer) gizmo() bool {
	d.s.SetLineWidth(d.width(widthThinLine))
	if d.hitTest() {
		hit := d.s.InFill(d.at.X, d.at.Y) || d.s.InStroke(d.at.X, d.at.Y)
		d.s.NewPath()
		return hit
	}
	d.source(d.bg)
	d.s.FillPreserve()
	d.source(d.fg)
	d.s.Stroke()
	return false
}

// doubleLine strokes the current path as a thick foreground line with a
// thin background core. In hit mode it reports whether the thick line
// covers the query point.
func (d *drawer) doubleLine() bool {
	d.s.SetLineWidth(d.width(widthThickLine))
	if d.hitTest() {
		hit := d.s.InStroke(d.at.X, d.at.Y)
		d.s.NewPath()
		return hit
	}
	d.source(d.fg)
	d.s.StrokePreserve()
	d.s.SetLineWidth(d.width(widthThinLine))
	d.source(d.bg)
	d.s.Stroke()
	return false
}

func (d *drawer) thinLine() {
	d.s.SetLineWidth(d.width(widthThinLine))
	d.source(d.fg)
	d.s.Stroke()
}

func (d *drawer) moveTo(p liquify.Point) { d.s.MoveTo(p.X, p.Y) }
func (d *drawer) lineTo(p liquify.Point) { d.s.LineTo(p.X, p.Y) }

func (d *drawer) circle(c liquify.Point, diameter float64) {
	d.s.NewSubPath()
	d.s.Arc(c.X, c.Y, diameter/2, 0, 2*math.Pi)
}

func (d *drawer) rectangle(c liquify.Point, theta, size float64) {
	d.s.Save()
	d.s.Translate(c.X, c.Y)
	d.s.Rotate(theta)
	d.s.MoveTo(-size/2, -size/2)
	d.s.LineTo(size/2, -size/2)
	d.s.LineTo(size/2, size/2)
	d.s.LineTo(-size/2, size/2)
	d.s.ClosePath()
	d.s.Restore()
}

// triangle adds an arrow head with its tip at c pointing along theta.
func (d *drawer) triangle(c liquify.Point, theta, size float64) {
	d.s.Save()
	d.s.Translate(c.X, c.Y)
	d.s.Rotate(theta)
	d.s.MoveTo(-size, -size/2)
	d.s.LineTo(0, 0)
	d.s.LineTo(-size, size/2)
	d.s.ClosePath()
	d.s.Restore()
}

// drawPaths paints layers of paths onto s, or hit tests them when at is
// not nil. scale converts UI pixels into the coordinate space of paths.
// In hit mode the first element containing at is returned and layers must
// be ordered front to back.
func drawPaths(s surface.Surface, scale float64, paths liquify.Paths, layers []Layer, at *liquify.Point) Hit {
	d := &drawer{s: s, scale: scale, at: at}

	var interpolated []liquify.Warp
	if !d.hitTest() {
		interpolated = liquify.InterpolatePaths(paths)
	}

	for _, layer := range layers {
		style := layer.Style()
		if d.hitTest() && style.Flags&FlagHitTest == 0 {
			continue
		}
		group := !d.hitTest() && style.Opacity < 1
		if group {
			s.PushGroup()
		}

		d.fg, d.bg = style.FG, style.BG
		switch layer {
		case LayerRadius, LayerHardness1, LayerHardness2, LayerWarps:
			d.drawInterpolated(layer, interpolated)
		default:
			if n := d.drawNodes(layer, style, paths); n != nil {
				return Hit{Layer: layer, Node: n}
			}
		}

		if group {
			s.PopGroup(style.Opacity)
		}
	}
	return Nowhere
}

// drawInterpolated paints the layers that show every interpolated warp
// sample rather than the nodes themselves.
func (d *drawer) drawInterpolated(layer Layer, warps []liquify.Warp) {
	if len(warps) == 0 {
		return
	}
	d.s.NewPath()
	switch layer {
	case LayerRadius, LayerHardness1, LayerHardness2:
		for _, w := range warps {
			f := 1.0
			switch layer {
			case LayerHardness1:
				f = w.Control1
			case LayerHardness2:
				f = w.Control2
			}
			d.circle(w.Point, 2*w.EffectiveRadius()*f)
		}
		d.source(d.fg)
		d.s.Fill()

	case LayerWarps:
		for _, w := range warps {
			d.moveTo(w.Point)
			d.lineTo(w.Strength)
		}
		d.thinLine()

		small := d.width(widthGizmoSmall)
		for _, w := range warps {
			d.circle(w.Point, small)
			d.triangle(w.Strength, w.StrengthVector().Angle()+w.Type.Rotation(), small)
		}
		d.source(d.bg)
		d.s.FillPreserve()
		d.source(d.fg)
		d.s.Stroke()
	}
}

// drawNodes draws one per-node layer and returns the node hit, if any.
func (d *drawer) drawNodes(layer Layer, style LayerStyle, paths liquify.Paths) liquify.Node {
	for _, path := range paths {
		for j, n := range path {
			var prev liquify.Node
			if j > 0 {
				prev = path[j-1]
			}
			h := n.Header()
			if style.Flags&FlagNodeSelected != 0 && h.Selected == 0 {
				continue
			}
			if style.Flags&FlagPrevSelected != 0 && (prev == nil || prev.Header().Selected == 0) {
				continue
			}

			d.fg, d.bg = style.FG, style.BG
			if h.Selected == int(layer) {
				d.fg = ColorSelected
			}
			if h.Hovered == int(style.HoverMaster) {
				d.fg = ColorHover
			}

			d.s.NewPath()
			if n.WarpRef() == nil {
				continue
			}
			if d.drawNode(layer, n, prev) {
				return n
			}
		}
	}
	return nil
}

func nodeType(n liquify.Node) liquify.NodeType {
	if n == nil {
		return liquify.Cusp
	}
	return n.Header().NodeType
}

// drawNode draws the part of n belonging to layer and reports a hit.
func (d *drawer) drawNode(layer Layer, n, prev liquify.Node) bool {
	w := n.WarpRef()
	point := w.Point
	curve, _ := n.(*liquify.CurveTo)

	switch layer {
	case LayerPath:
		if prev == nil || prev.WarpRef() == nil {
			return false
		}
		switch n := n.(type) {
		case *liquify.LineTo:
			d.moveTo(prev.WarpRef().Point)
			d.lineTo(n.Point)
		case *liquify.CurveTo:
			d.moveTo(prev.WarpRef().Point)
			d.s.CurveTo(n.Ctrl1.X, n.Ctrl1.Y, n.Ctrl2.X, n.Ctrl2.Y, n.Point.X, n.Point.Y)
		default:
			return false
		}
		return d.doubleLine()

	case LayerCenterpoint:
		size := d.width(widthGizmo)
		switch n.Header().NodeType {
		case liquify.Cusp:
			d.triangle(point.Sub(liquify.Pt(0, size/2)), -math.Pi/2, size)
		case liquify.Smooth:
			d.rectangle(point, math.Pi/4, size)
		case liquify.Symmetrical:
			d.rectangle(point, 0, size)
		case liquify.Autosmooth:
			d.circle(point, size)
		}
		return d.gizmo()

	case LayerCtrlpoint1Handle:
		if curve != nil && prev != nil && prev.WarpRef() != nil && nodeType(prev) != liquify.Autosmooth {
			d.moveTo(prev.WarpRef().Point)
			d.lineTo(curve.Ctrl1)
			d.thinLine()
		}
	case LayerCtrlpoint2Handle:
		if curve != nil && nodeType(n) != liquify.Autosmooth {
			d.moveTo(point)
			d.lineTo(curve.Ctrl2)
			d.thinLine()
		}
	case LayerCtrlpoint1:
		if curve != nil && nodeType(prev) != liquify.Autosmooth {
			d.circle(curve.Ctrl1, d.width(widthGizmoSmall))
			return d.gizmo()
		}
	case LayerCtrlpoint2:
		if curve != nil && nodeType(n) != liquify.Autosmooth {
			d.circle(curve.Ctrl2, d.width(widthGizmoSmall))
			return d.gizmo()
		}

	case LayerRadiuspointHandle:
		d.circle(point, 2*w.EffectiveRadius())
		return d.doubleLine()
	case LayerRadiuspoint:
		d.circle(w.Radius, d.width(widthGizmoSmall))
		return d.gizmo()

	case LayerHardnesspoint1Handle:
		d.circle(point, 2*w.EffectiveRadius()*w.Control1)
		return d.doubleLine()
	case LayerHardnesspoint2Handle:
		d.circle(point, 2*w.EffectiveRadius()*w.Control2)
		return d.doubleLine()
	case LayerHardnesspoint1:
		d.triangle(point.Lerp(w.Radius, w.Control1), w.Radius.Sub(point).Angle(), d.width(widthGizmoSmall))
		return d.gizmo()
	case LayerHardnesspoint2:
		d.triangle(point.Lerp(w.Radius, w.Control2), point.Sub(w.Radius).Angle(), d.width(widthGizmoSmall))
		return d.gizmo()

	case LayerStrengthpointHandle:
		sv := w.StrengthVector()
		if w.Type == liquify.Linear {
			l := sv.Length()
			if l == 0 {
				return false
			}
			d.moveTo(point)
			d.lineTo(point.Lerp(w.Strength, 1-0.5*d.width(widthGizmoSmall)/l))
		} else {
			d.circle(point, 2*sv.Length())
		}
		return d.doubleLine()
	case LayerStrengthpoint:
		d.triangle(w.Strength, w.StrengthVector().Angle()+w.Type.Rotation(), d.width(widthGizmoSmall))
		return d.gizmo()
	}
	return false
}
