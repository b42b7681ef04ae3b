package liquify

import (
	"errors"
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gradient returns a buffer whose red channel is x and green channel y.
func gradient(w, h int) *Buffer {
	b := NewBuffer(w, h)
	for y := range h {
		for x := range w {
			px := b.Pixel(x, y)
			px[0] = float32(x)
			px[1] = float32(y)
			px[3] = 1
		}
	}
	return b
}

func TestApplyDistortionMapIntegerShift(t *testing.T) {
	in := gradient(32, 32)
	roi := ROI{Width: 32, Height: 32, Scale: 1}
	for _, interp := range []Interpolation{Bilinear, Bicubic, Lanczos2, Lanczos3} {
		t.Run(interp.String(), func(t *testing.T) {
			out := gradient(32, 32)
			m := NewDistortionMap(image.Rect(8, 8, 24, 24))
			for i := range m.Data {
				m.Data[i] = complex(3, -2)
			}
			ApplyDistortionMap(in, roi, out, roi, m, interp, nil)

			for y := range 32 {
				for x := range 32 {
					wantX, wantY := float32(x), float32(y)
					if image.Pt(x, y).In(m.Extent) {
						wantX, wantY = float32(x+3), float32(y-2)
					}
					px := out.Pixel(x, y)
					assert.InDelta(t, wantX, px[0], 1e-4, "(%d,%d)", x, y)
					assert.InDelta(t, wantY, px[1], 1e-4, "(%d,%d)", x, y)
				}
			}
		})
	}
}

func TestApplyDistortionMapBilinearHalfPixel(t *testing.T) {
	in := gradient(8, 8)
	out := NewBuffer(8, 8)
	roi := ROI{Width: 8, Height: 8, Scale: 1}
	m := NewDistortionMap(image.Rect(2, 2, 3, 3))
	m.Data[0] = complex(0.5, 0.25)

	ApplyDistortionMap(in, roi, out, roi, m, Bilinear, nil)
	px := out.Pixel(2, 2)
	assert.InDelta(t, 2.5, px[0], 1e-6)
	assert.InDelta(t, 2.25, px[1], 1e-6)
	// Untouched pixels keep whatever out held.
	assert.Equal(t, float32(0), out.Pixel(3, 3)[0])
}

func TestProcessSinglePoint(t *testing.T) {
	pr := NewProcessor(WithInterpolation(Bilinear), WithWorkers(2))
	defer pr.Close()

	m := NewMoveTo(Pt(32, 32))
	m.Radius = Pt(42, 32)
	m.Strength = Pt(37, 32)

	in := gradient(64, 64)
	out := NewBuffer(64, 64)
	roi := ROI{Width: 64, Height: 64, Scale: 1}
	require.NoError(t, pr.Process(Paths{{m}}, in, roi, out, roi))

	// The hot pixel samples 5 pixels against the strength vector.
	assert.InDelta(t, 27, out.Pixel(32, 32)[0], 1e-3)
	// Pixels beyond the radius are copied verbatim.
	assert.Equal(t, in.Pixel(10, 10), out.Pixel(10, 10))
	assert.Equal(t, in.Pixel(32, 43), out.Pixel(32, 43))
}

func TestProcessOffsetROI(t *testing.T) {
	pr := NewProcessor(WithInterpolation(Bilinear))
	defer pr.Close()

	m := NewMoveTo(Pt(40, 40))
	m.Radius = Pt(48, 40)
	m.Strength = Pt(40, 44)

	full := gradient(80, 80)
	roiOut := ROI{X: 30, Y: 30, Width: 20, Height: 20, Scale: 1}
	roiIn, err := pr.ModifyROIIn(Paths{{m}}, roiOut, image.Pt(80, 80))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(30, 30, 50, 50), roiIn.Rect())

	in := NewBuffer(roiIn.Width, roiIn.Height)
	for y := range in.Height {
		for x := range in.Width {
			copy(in.Pixel(x, y), full.Pixel(x+roiIn.X, y+roiIn.Y))
		}
	}
	out := NewBuffer(roiOut.Width, roiOut.Height)
	require.NoError(t, pr.Process(Paths{{m}}, in, roiIn, out, roiOut))

	// Hot pixel at (40,40) is local (10,10); it samples 4 pixels up.
	px := out.Pixel(10, 10)
	assert.InDelta(t, 40, px[0], 1e-3)
	assert.InDelta(t, 36, px[1], 1e-3)
}

func TestModifyROIInGrowsAndClamps(t *testing.T) {
	pr := NewProcessor()
	defer pr.Close()

	m := NewMoveTo(Pt(5, 50))
	m.Radius = Pt(25, 50)
	paths := Paths{{m}}

	roiOut := ROI{X: 10, Y: 40, Width: 20, Height: 20, Scale: 1}
	roiIn, err := pr.ModifyROIIn(paths, roiOut, image.Pt(100, 100))
	require.NoError(t, err)
	// Stamp covers [-15, 26) x [30, 71); clamped to the image.
	assert.Equal(t, image.Rect(0, 30, 30, 71), roiIn.Rect())

	far := ROI{X: 80, Y: 80, Width: 10, Height: 10, Scale: 1}
	roiIn, err = pr.ModifyROIIn(paths, far, image.Pt(100, 100))
	require.NoError(t, err)
	assert.Equal(t, far, roiIn)
}

func TestProcessScalesPaths(t *testing.T) {
	pr := NewProcessor(WithInterpolation(Bilinear))
	defer pr.Close()

	m := NewMoveTo(Pt(64, 64))
	m.Radius = Pt(84, 64)
	m.Strength = Pt(74, 64)

	in := gradient(64, 64)
	out := NewBuffer(64, 64)
	roi := ROI{Width: 64, Height: 64, Scale: 0.5}
	require.NoError(t, pr.Process(Paths{{m}}, in, roi, out, roi))
	assert.InDelta(t, 27, out.Pixel(32, 32)[0], 1e-3)
}

func TestProcessRejectsMismatchedBuffers(t *testing.T) {
	pr := NewProcessor()
	defer pr.Close()
	err := pr.Process(nil, NewBuffer(4, 4), ROI{Width: 5, Height: 4}, NewBuffer(4, 4), ROI{Width: 4, Height: 4})
	assert.ErrorIs(t, err, ErrInvalidROI)
}

type failingPipeline struct{}

func (failingPipeline) DistortTransform(StageRange, []float32) error {
	return errors.New("pipeline busy")
}
func (failingPipeline) DistortBacktransform(StageRange, []float32) error {
	return errors.New("pipeline busy")
}

func TestProcessPipelineError(t *testing.T) {
	pr := NewProcessor(WithPipeline(failingPipeline{}))
	defer pr.Close()

	roi := ROI{Width: 8, Height: 8, Scale: 1}
	err := pr.Process(Paths{{NewMoveTo(Pt(1, 1))}}, gradient(8, 8), roi, NewBuffer(8, 8), roi)
	assert.ErrorContains(t, err, "pipeline busy")
}

func TestBufferImageRoundTrip(t *testing.T) {
	b := NewBuffer(3, 2)
	copy(b.Pixel(1, 1), []float32{0.25, 0.5, 1.5, 1})
	img := b.ToImage()
	back := FromImage(img)

	px := back.Pixel(1, 1)
	assert.InDelta(t, 0.25, px[0], 1e-4)
	assert.InDelta(t, 0.5, px[1], 1e-4)
	assert.InDelta(t, 1, px[2], 1e-4, "clamped")
	assert.False(t, math.IsNaN(float64(px[3])))
	assert.Equal(t, image.Rect(0, 0, 3, 2), b.Bounds())
}
