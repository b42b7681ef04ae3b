// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/gogpu/liquify/internal/stroke"
)

// flattenTolerance is the maximum distance in pixels between a painted
// curve and its polyline.
const flattenTolerance = 0.1

// gstate is the part of the context saved by Save.
type gstate struct {
	ctm       Matrix
	lineWidth float64
	source    color.NRGBA
}

// ImageSurface paints into an *image.RGBA. A surface created by
// NewHitSurface has no pixels: painting only consumes the path while the
// containment predicates work as usual.
type ImageSurface struct {
	img    *image.RGBA
	groups []*image.RGBA
	path   Path
	state  gstate
	stack  []gstate
	raster *vector.Rasterizer
}

// NewImageSurface returns a transparent surface of the given size.
// Dimensions below 1 are raised to 1.
func NewImageSurface(width, height int) *ImageSurface {
	return NewImageSurfaceFromImage(image.NewRGBA(image.Rect(0, 0, max(width, 1), max(height, 1))))
}

// NewImageSurfaceFromImage paints directly into img.
func NewImageSurfaceFromImage(img *image.RGBA) *ImageSurface {
	b := img.Bounds()
	return &ImageSurface{
		img:    img,
		state:  defaultState(),
		raster: vector.NewRasterizer(b.Dx(), b.Dy()),
	}
}

// NewHitSurface returns a surface that answers InFill and InStroke without
// painting anything.
func NewHitSurface() *ImageSurface {
	return &ImageSurface{state: defaultState()}
}

func defaultState() gstate {
	return gstate{ctm: Identity(), lineWidth: 2, source: color.NRGBA{A: 0xff}}
}

// Image returns the target image, nil for a hit surface.
func (s *ImageSurface) Image() *image.RGBA {
	return s.img
}

func (s *ImageSurface) user(x, y float64) Point {
	return s.state.ctm.Apply(Point{X: x, Y: y})
}

func (s *ImageSurface) NewPath()    { s.path.reset() }
func (s *ImageSurface) NewSubPath() { s.path.newSubPath() }
func (s *ImageSurface) ClosePath()  { s.path.closePath() }

func (s *ImageSurface) MoveTo(x, y float64) { s.path.moveTo(s.user(x, y)) }
func (s *ImageSurface) LineTo(x, y float64) { s.path.lineTo(s.user(x, y)) }

func (s *ImageSurface) CurveTo(x1, y1, x2, y2, x3, y3 float64) {
	s.path.curveTo(s.user(x1, y1), s.user(x2, y2), s.user(x3, y3))
}

// Arc approximates the arc with cubic segments of at most a quarter turn.
func (s *ImageSurface) Arc(xc, yc, r, a1, a2 float64) {
	for a2 < a1 {
		a2 += 2 * math.Pi
	}
	start := Point{X: xc + r*math.Cos(a1), Y: yc + r*math.Sin(a1)}
	if s.path.hasCur {
		s.LineTo(start.X, start.Y)
	} else {
		s.MoveTo(start.X, start.Y)
	}
	n := max(1, int(math.Ceil((a2-a1)/(math.Pi/2))))
	step := (a2 - a1) / float64(n)
	for i := range n {
		b1 := a1 + float64(i)*step
		b2 := b1 + step
		k := 4.0 / 3 * math.Tan((b2-b1)/4)
		sin1, cos1 := math.Sincos(b1)
		sin2, cos2 := math.Sincos(b2)
		s.CurveTo(
			xc+r*(cos1-k*sin1), yc+r*(sin1+k*cos1),
			xc+r*(cos2+k*sin2), yc+r*(sin2-k*cos2),
			xc+r*cos2, yc+r*sin2,
		)
	}
}

func (s *ImageSurface) Save() {
	s.stack = append(s.stack, s.state)
}

func (s *ImageSurface) Restore() {
	if n := len(s.stack); n > 0 {
		s.state = s.stack[n-1]
		s.stack = s.stack[:n-1]
	}
}

func (s *ImageSurface) Translate(x, y float64) { s.state.ctm = s.state.ctm.Translated(x, y) }
func (s *ImageSurface) Rotate(angle float64)   { s.state.ctm = s.state.ctm.Rotated(angle) }
func (s *ImageSurface) SetLineWidth(w float64) { s.state.lineWidth = w }

func (s *ImageSurface) SetSourceRGBA(r, g, b, a float64) {
	q := func(v float64) uint8 { return uint8(math.Round(math.Max(0, math.Min(1, v)) * 0xff)) }
	s.state.source = color.NRGBA{R: q(r), G: q(g), B: q(b), A: q(a)}
}

func (s *ImageSurface) Fill() {
	s.FillPreserve()
	s.path.reset()
}

func (s *ImageSurface) Stroke() {
	s.StrokePreserve()
	s.path.reset()
}

func (s *ImageSurface) FillPreserve() {
	if s.img == nil || s.path.IsEmpty() {
		return
	}
	s.rasterize(&s.path)
}

// StrokePreserve paints the path with round caps and round joins.
func (s *ImageSurface) StrokePreserve() {
	if s.img == nil || s.path.IsEmpty() {
		return
	}
	s.rasterize(s.strokeOutline())
}

// strokeOutline returns the area covered by stroking the current path, as
// a path to be filled with the nonzero rule.
func (s *ImageSurface) strokeOutline() *Path {
	e := stroke.NewExpander(stroke.Style{
		Width: s.state.lineWidth,
		Cap:   stroke.CapRound,
		Join:  stroke.JoinRound,
	})
	out := &Path{}
	for _, el := range e.Expand(toStrokeElements(s.path.elements)) {
		out.elements = append(out.elements, fromStrokeElement(el))
	}
	return out
}

// rasterize fills p over the current target. Open subpaths are closed.
func (s *ImageSurface) rasterize(p *Path) {
	s.raster.Reset(s.raster.Size().X, s.raster.Size().Y)
	p.FlattenCallback(flattenTolerance, func(pt Point, first bool) {
		if first {
			s.raster.ClosePath()
			s.raster.MoveTo(float32(pt.X), float32(pt.Y))
			return
		}
		s.raster.LineTo(float32(pt.X), float32(pt.Y))
	})
	s.raster.ClosePath()

	dst := s.target()
	s.raster.DrawOp = draw.Over
	s.raster.Draw(dst, dst.Bounds(), image.NewUniform(s.state.source), image.Point{})
}

func (s *ImageSurface) target() *image.RGBA {
	if n := len(s.groups); n > 0 {
		return s.groups[n-1]
	}
	return s.img
}

func (s *ImageSurface) InFill(x, y float64) bool {
	return s.path.Contains(s.user(x, y))
}

func (s *ImageSurface) InStroke(x, y float64) bool {
	if s.path.IsEmpty() {
		return false
	}
	return s.strokeOutline().Contains(s.user(x, y))
}

func (s *ImageSurface) PushGroup() {
	if s.img == nil {
		return
	}
	s.groups = append(s.groups, image.NewRGBA(s.img.Bounds()))
}

func (s *ImageSurface) PopGroup(alpha float64) {
	n := len(s.groups)
	if n == 0 {
		return
	}
	layer := s.groups[n-1]
	s.groups = s.groups[:n-1]
	mask := image.NewUniform(color.Alpha{A: uint8(math.Round(math.Max(0, math.Min(1, alpha)) * 0xff))})
	dst := s.target()
	draw.DrawMask(dst, dst.Bounds(), layer, dst.Bounds().Min, mask, image.Point{}, draw.Over)
}
