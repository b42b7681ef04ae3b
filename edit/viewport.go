package edit

import (
	"github.com/gogpu/liquify"
)

// Viewport maps between the host view and stored coordinates.
type Viewport interface {
	// ViewToRaw maps a pointer position to stored coordinates. It reports
	// false when no pipeline is ready.
	ViewToRaw(x, y float64) (liquify.Point, bool)

	// UIScale returns the number of stored units per view pixel.
	UIScale() float64

	// RawToDisplay maps every coordinate of paths into view coordinates in
	// place, with a single pipeline call.
	RawToDisplay(paths liquify.Paths) error
}

// PipelineView is a Viewport showing the output of a pipeline. A pipeline
// output pixel covers Zoom view pixels and the output origin sits at
// Offset in the view.
type PipelineView struct {
	Pipeline liquify.Pipeline
	// RawScale is the scale of stored coordinates relative to the pipeline
	// input.
	RawScale float64
	Zoom     float64
	Offset   liquify.Point
}

// NewPipelineView returns a view of p at 1:1 zoom.
func NewPipelineView(p liquify.Pipeline) *PipelineView {
	return &PipelineView{Pipeline: p, RawScale: 1, Zoom: 1}
}

func (v *PipelineView) ready() bool {
	return v != nil && v.Pipeline != nil && v.Zoom > 0 && v.RawScale > 0
}

func (v *PipelineView) ViewToRaw(x, y float64) (liquify.Point, bool) {
	if !v.ready() {
		return liquify.Point{}, false
	}
	p := liquify.Pt(x, y).Sub(v.Offset)
	p, err := liquify.DisplayToRaw(v.Pipeline, v.Zoom, v.RawScale).Point(p)
	if err != nil {
		liquify.Logger().Debug("view to raw", "x", x, "y", y, "err", err)
		return liquify.Point{}, false
	}
	return p, true
}

func (v *PipelineView) UIScale() float64 {
	if !v.ready() {
		return 1
	}
	return v.RawScale / v.Zoom
}

func (v *PipelineView) RawToDisplay(paths liquify.Paths) error {
	if !v.ready() {
		return liquify.ErrNoPipeline
	}
	if err := liquify.RawToDisplay(v.Pipeline, v.RawScale, v.Zoom).Paths(paths); err != nil {
		return err
	}
	paths.WalkPoints(func(p *liquify.Point) { *p = p.Add(v.Offset) })
	return nil
}
