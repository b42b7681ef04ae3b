package liquify

import (
	"errors"
	"fmt"
)

// ErrNoPipeline is returned when a transform is requested without a
// pipeline collaborator.
var ErrNoPipeline = errors.New("liquify: no pipeline")

// StageRange selects the pipeline stages a transform passes through,
// inclusive on both ends.
type StageRange struct {
	Min, Max int
}

// AllStages covers every stage of a pipeline.
var AllStages = StageRange{Min: 0, Max: 99999}

// Pipeline is the host's distortion chain. Points are interleaved x, y pairs
// transformed in place. DistortTransform maps towards the output of the
// selected stages; DistortBacktransform inverts it.
type Pipeline interface {
	DistortTransform(r StageRange, pts []float32) error
	DistortBacktransform(r StageRange, pts []float32) error
}

// IdentityPipeline distorts nothing.
type IdentityPipeline struct{}

func (IdentityPipeline) DistortTransform(StageRange, []float32) error     { return nil }
func (IdentityPipeline) DistortBacktransform(StageRange, []float32) error { return nil }

// Transform maps coordinates between two frames. Points are divided by
// FromScale, pushed through the pipeline, then multiplied by ToScale.
// Backward transforms run the pipeline in reverse.
type Transform struct {
	Pipeline  Pipeline
	FromScale float64
	ToScale   float64
	Forward   bool
	Stages    StageRange
}

// RawToPiece maps stored coordinates into a module's input frame at
// processing scale. rawScale is the scale of stored coordinates relative to
// the full pipeline input; stage is the module's position in the pipeline.
func RawToPiece(p Pipeline, rawScale, roiScale float64, stage int) Transform {
	return Transform{Pipeline: p, FromScale: rawScale, ToScale: roiScale, Forward: true, Stages: StageRange{0, stage}}
}

// RawToDisplay maps stored coordinates into display coordinates.
func RawToDisplay(p Pipeline, rawScale, displayScale float64) Transform {
	return Transform{Pipeline: p, FromScale: rawScale, ToScale: displayScale, Forward: true, Stages: AllStages}
}

// DisplayToRaw maps display coordinates back to stored coordinates.
func DisplayToRaw(p Pipeline, displayScale, rawScale float64) Transform {
	return Transform{Pipeline: p, FromScale: displayScale, ToScale: rawScale, Forward: false, Stages: AllStages}
}

// Points transforms pts in place with a single pipeline call.
func (t Transform) Points(pts []*Point) error {
	if len(pts) == 0 {
		return nil
	}
	if t.Pipeline == nil {
		return ErrNoPipeline
	}
	buf := make([]float32, 0, 2*len(pts))
	for _, p := range pts {
		buf = append(buf, float32(p.X/t.FromScale), float32(p.Y/t.FromScale))
	}

	var err error
	if t.Forward {
		err = t.Pipeline.DistortTransform(t.Stages, buf)
	} else {
		err = t.Pipeline.DistortBacktransform(t.Stages, buf)
	}
	if err != nil {
		return fmt.Errorf("liquify: distort %d points: %w", len(pts), err)
	}

	for i, p := range pts {
		p.X = float64(buf[2*i]) * t.ToScale
		p.Y = float64(buf[2*i+1]) * t.ToScale
	}
	return nil
}

// Point transforms a single point.
func (t Transform) Point(p Point) (Point, error) {
	err := t.Points([]*Point{&p})
	return p, err
}

// Paths transforms every coordinate of ps in place with one pipeline call.
func (t Transform) Paths(ps Paths) error {
	var pts []*Point
	ps.WalkPoints(func(p *Point) { pts = append(pts, p) })
	return t.Points(pts)
}
