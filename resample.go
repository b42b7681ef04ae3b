package liquify

import (
	"math"

	"github.com/gogpu/liquify/internal/kernel"
	"github.com/gogpu/liquify/internal/parallel"
)

// Interpolation selects the reconstruction kernel of the resampler.
type Interpolation = kernel.Mode

const (
	Bilinear = kernel.Bilinear
	Bicubic  = kernel.Bicubic
	Lanczos2 = kernel.Lanczos2
	Lanczos3 = kernel.Lanczos3
)

// KernelDescriptor is the layout of a kernel coefficient table.
type KernelDescriptor = kernel.Descriptor

// ParseInterpolation returns the interpolation named s: "bilinear",
// "bicubic", "lanczos2" or "lanczos3".
func ParseInterpolation(s string) (Interpolation, error) {
	return kernel.Parse(s)
}

// KernelTable returns the coefficient table of interp and its layout, as
// handed to accelerators.
func KernelTable(interp Interpolation) (KernelDescriptor, []float32) {
	return interp.Descriptor(), kernel.Table(interp)
}

// ApplyDistortionMap resamples in through m into out. Only pixels of
// m.Extent ∩ roiOut with a non-zero displacement are written; everything
// else in out is left as is. Samples outside in are clamped to its edge.
func ApplyDistortionMap(in *Buffer, roiIn ROI, out *Buffer, roiOut ROI, m *DistortionMap, interp Interpolation, pool *parallel.WorkerPool) {
	if m == nil {
		return
	}
	area := m.Extent.Intersect(roiOut.Rect())
	if area.Empty() {
		return
	}

	rows := func(y0, y1 int) {
		s := newSampler(in, interp)
		for y := area.Min.Y + y0; y < area.Min.Y+y1; y++ {
			for x := area.Min.X; x < area.Max.X; x++ {
				d := m.At(x, y)
				if d == 0 {
					continue
				}
				sx := float64(x) + float64(real(d)) - float64(roiIn.X)
				sy := float64(y) + float64(imag(d)) - float64(roiIn.Y)
				s.sample(sx, sy, out.Pixel(x-roiOut.X, y-roiOut.Y))
			}
		}
	}
	if pool == nil {
		rows(0, area.Dy())
		return
	}
	pool.Rows(area.Dy(), 16, rows)
}

// sampler holds per-goroutine scratch for kernel weights.
type sampler struct {
	in     *Buffer
	interp Interpolation
	size   int
	wx, wy []float32
}

func newSampler(in *Buffer, interp Interpolation) *sampler {
	size := interp.Descriptor().Size
	return &sampler{
		in:     in,
		interp: interp,
		size:   size,
		wx:     make([]float32, 2*size),
		wy:     make([]float32, 2*size),
	}
}

func (s *sampler) sample(x, y float64, dst []float32) {
	fx, fy := math.Floor(x), math.Floor(y)
	kernel.Weights(s.interp, x-fx, s.wx)
	kernel.Weights(s.interp, y-fy, s.wy)
	x0 := int(fx) - s.size + 1
	y0 := int(fy) - s.size + 1

	var acc [4]float32
	for j, wy := range s.wy {
		if wy == 0 {
			continue
		}
		py := clampInt(y0+j, 0, s.in.Height-1)
		var row [4]float32
		for i, wx := range s.wx {
			if wx == 0 {
				continue
			}
			px := s.in.Pixel(clampInt(x0+i, 0, s.in.Width-1), py)
			row[0] += wx * px[0]
			row[1] += wx * px[1]
			row[2] += wx * px[2]
			row[3] += wx * px[3]
		}
		for c := range acc {
			acc[c] += wy * row[c]
		}
	}
	copy(dst, acc[:])
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
