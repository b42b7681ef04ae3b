package liquify

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/gogpu/liquify/internal/parallel"
)

// ErrInvalidROI is returned when a buffer does not match its region.
var ErrInvalidROI = errors.New("liquify: buffer does not match region of interest")

// Processor renders paths onto images. A Processor never sees the live
// path collection of an editor, only copies handed to Process.
//
// A Processor is safe for concurrent use; Close releases its workers.
type Processor struct {
	pipeline      Pipeline
	rawScale      float64
	stage         int
	interp        Interpolation
	workers       int
	accel         Accelerator
	useRegistered bool

	pool *parallel.WorkerPool
}

// NewProcessor returns a processor configured by opts.
func NewProcessor(opts ...Option) *Processor {
	pr := &Processor{
		pipeline: IdentityPipeline{},
		rawScale: 1,
		stage:    AllStages.Max,
		interp:   Bicubic,
	}
	for _, o := range opts {
		o(pr)
	}
	pr.pool = parallel.NewWorkerPool(pr.workers)
	return pr
}

// Close stops the worker goroutines.
func (pr *Processor) Close() {
	pr.pool.Close()
}

// Interpolation returns the configured kernel.
func (pr *Processor) Interpolation() Interpolation {
	return pr.interp
}

func (pr *Processor) accelerator() Accelerator {
	if pr.accel != nil {
		return pr.accel
	}
	if pr.useRegistered {
		return CurrentAccelerator()
	}
	return nil
}

// warps maps a copy of paths into the frame at scale and expands it.
func (pr *Processor) warps(paths Paths, scale float64) ([]Warp, error) {
	ps := paths.Clone()
	if err := RawToPiece(pr.pipeline, pr.rawScale, scale, pr.stage).Paths(ps); err != nil {
		return nil, err
	}
	return InterpolatePaths(ps), nil
}

// Process writes roiOut of the warped image to out. in covers roiIn, which
// should have been negotiated with ModifyROIIn. On error out holds the
// unwarped input.
func (pr *Processor) Process(paths Paths, in *Buffer, roiIn ROI, out *Buffer, roiOut ROI) error {
	if in.Width != roiIn.Width || in.Height != roiIn.Height ||
		out.Width != roiOut.Width || out.Height != roiOut.Height {
		return ErrInvalidROI
	}
	start := time.Now()
	copyRegion(in, roiIn, out, roiOut)

	warps, err := pr.warps(paths, roiIn.Scale)
	if err != nil {
		return err
	}
	m := BuildDistortionMap(warps, roiOut.Rect(), pr.pool)
	if m == nil {
		return nil
	}

	if a := pr.accelerator(); a != nil {
		desc, table := KernelTable(pr.interp)
		t := AccelTarget{In: in, RoiIn: roiIn, Out: out, RoiOut: roiOut}
		if err := a.ApplyDistortionMap(t, m, desc, table); err != nil {
			copyRegion(in, roiIn, out, roiOut)
			Logger().Warn("liquify: accelerator failed", "name", a.Name(), "err", err)
			return fmt.Errorf("%w: %s: %w", ErrAcceleratorFailed, a.Name(), err)
		}
	} else {
		ApplyDistortionMap(in, roiIn, out, roiOut, m, pr.interp, pr.pool)
	}

	Logger().Debug("liquify: processed",
		"warps", len(warps), "extent", m.Extent, "elapsed", time.Since(start))
	return nil
}

// ModifyROIIn returns the input region needed to produce roiOut: roiOut
// grown by every stamp that reaches into it, clamped to the full input of
// the given size at scale 1.
func (pr *Processor) ModifyROIIn(paths Paths, roiOut ROI, full image.Point) (ROI, error) {
	warps, err := pr.warps(paths, roiOut.Scale)
	if err != nil {
		return roiOut, err
	}
	r := roiOut.Rect()
	if ext := MapExtent(warps, r); !ext.Empty() {
		r = r.Union(ext)
	}
	bounds := image.Rect(0, 0,
		int(float64(full.X)*roiOut.Scale), int(float64(full.Y)*roiOut.Scale))
	return roiOut.WithRect(r.Intersect(bounds)), nil
}

// copyRegion copies the part of in that overlaps roiOut into out, clamping
// reads to the edge of in.
func copyRegion(in *Buffer, roiIn ROI, out *Buffer, roiOut ROI) {
	if in.Width == 0 || in.Height == 0 {
		return
	}
	for y := range roiOut.Height {
		sy := clampInt(y+roiOut.Y-roiIn.Y, 0, in.Height-1)
		for x := range roiOut.Width {
			sx := clampInt(x+roiOut.X-roiIn.X, 0, in.Width-1)
			copy(out.Pixel(x, y), in.Pixel(sx, sy))
		}
	}
}
