package liquify

import (
	"image"

	"github.com/gogpu/liquify/internal/parallel"
)

// DistortionMap is a displacement field over Extent. For an output pixel p,
// the source sample is taken at p + Data[p]. Real parts are x offsets,
// imaginary parts y offsets.
type DistortionMap struct {
	Extent image.Rectangle
	Data   []complex64
}

// NewDistortionMap returns a zero field over extent.
func NewDistortionMap(extent image.Rectangle) *DistortionMap {
	return &DistortionMap{Extent: extent, Data: make([]complex64, extent.Dx()*extent.Dy())}
}

// At returns the displacement at absolute pixel (x, y), zero outside the
// extent.
func (m *DistortionMap) At(x, y int) complex64 {
	if !image.Pt(x, y).In(m.Extent) {
		return 0
	}
	return m.Data[(y-m.Extent.Min.Y)*m.Extent.Dx()+x-m.Extent.Min.X]
}

// AddStamp subtracts s, placed at w's hot pixel, from the map. Only the
// intersection of the stamp and the map is touched. Overlapping stamps sum.
func (m *DistortionMap) AddStamp(w Warp, s *Stamp) {
	cx, cy := w.Point.Round()
	ext := image.Rect(cx-s.Radius, cy-s.Radius, cx+s.Radius+1, cy+s.Radius+1)
	area := ext.Intersect(m.Extent)
	if area.Empty() {
		return
	}
	side := s.Side()
	mw := m.Extent.Dx()
	for y := area.Min.Y; y < area.Max.Y; y++ {
		src := s.Data[(y-ext.Min.Y)*side+area.Min.X-ext.Min.X:]
		dst := m.Data[(y-m.Extent.Min.Y)*mw+area.Min.X-m.Extent.Min.X:]
		for x := range area.Dx() {
			dst[x] -= src[x]
		}
	}
}

// Add accumulates o into m over the intersection of their extents.
func (m *DistortionMap) Add(o *DistortionMap) {
	area := o.Extent.Intersect(m.Extent)
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			m.Data[(y-m.Extent.Min.Y)*m.Extent.Dx()+x-m.Extent.Min.X] += o.At(x, y)
		}
	}
}

// MapExtent returns the union of the stamp extents of warps that overlap
// roi. Warps whose radius rounds to zero are ignored.
func MapExtent(warps []Warp, roi image.Rectangle) image.Rectangle {
	var ext image.Rectangle
	for _, w := range warps {
		if stampRadius(w) < 1 {
			continue
		}
		if se := StampExtent(w); se.Overlaps(roi) {
			ext = ext.Union(se)
		}
	}
	return ext
}

// BuildDistortionMap composites the stamps of all warps that affect roi.
// Stamps are synthesized on pool and accumulated in input order so the
// result is deterministic. A nil pool synthesizes serially. It returns nil
// when no warp touches roi.
func BuildDistortionMap(warps []Warp, roi image.Rectangle, pool *parallel.WorkerPool) *DistortionMap {
	var live []Warp
	for _, w := range warps {
		if stampRadius(w) >= 1 && StampExtent(w).Overlaps(roi) {
			live = append(live, w)
		}
	}
	if len(live) == 0 {
		return nil
	}
	ext := MapExtent(live, roi)
	Logger().Debug("liquify: distortion map", "extent", ext, "stamps", len(live))

	stamps := make([]*Stamp, len(live))
	work := make([]func(), len(live))
	for i := range live {
		work[i] = func() { stamps[i] = BuildRoundStamp(live[i]) }
	}
	if pool != nil {
		pool.ExecuteAll(work)
	} else {
		for _, fn := range work {
			fn()
		}
	}

	m := NewDistortionMap(ext)
	for i, s := range stamps {
		m.AddStamp(live[i], s)
	}
	return m
}
