package liquify

import (
	"fmt"
	"image"
	"math"

	"github.com/chewxy/math32"
)

// LookupOversample is the number of falloff table entries per pixel of
// stamp radius.
const LookupOversample = 10

// BuildLookupTable returns distance+1 falloff samples over [0, 1]. The
// profile is the cubic bezier from (0,1) through (c1,1) and (c2,0) to (1,0)
// resampled at uniform x, so f(0)=1, f(distance)=0 and the slope is zero at
// both ends.
func BuildLookupTable(distance int, c1, c2 float32) []float32 {
	if distance < 1 {
		panic(fmt.Sprintf("liquify: lookup table distance %d", distance))
	}
	// Sample the curve densely in t; x(t) is non-decreasing for controls in
	// [0, 1].
	n := distance + 1
	xs := make([]float32, n)
	ys := make([]float32, n)
	for i := range n {
		t := float32(i) / float32(distance)
		mt := 1 - t
		b1 := 3 * mt * mt * t
		b2 := 3 * mt * t * t
		b3 := t * t * t
		xs[i] = b1*c1 + b2*c2 + b3
		ys[i] = mt*mt*mt + b1
	}

	lut := make([]float32, n)
	lut[0] = 1
	j := 1
	for i := 1; i < distance; i++ {
		x := float32(i) / float32(distance)
		for j < n-1 && xs[j] < x {
			j++
		}
		dx := xs[j] - xs[j-1]
		if dx <= 0 {
			lut[i] = ys[j]
			continue
		}
		f := math32.Min(1, math32.Max(0, (x-xs[j-1])/dx))
		lut[i] = ys[j-1] + f*(ys[j]-ys[j-1])
	}
	lut[distance] = 0
	return lut
}

// Stamp is a square displacement field of side 2*Radius+1 centred on the
// warp's hot pixel. Data is row major; real parts hold x displacements and
// imaginary parts y displacements.
type Stamp struct {
	Radius int
	Data   []complex64
}

// Side returns the stamp width and height.
func (s *Stamp) Side() int { return 2*s.Radius + 1 }

func (s *Stamp) at(x, y int) *complex64 {
	side := s.Side()
	return &s.Data[(y+s.Radius)*side+x+s.Radius]
}

// stampRadius is the effective radius rounded to whole pixels.
func stampRadius(w Warp) int {
	return int(math.Round(w.EffectiveRadius()))
}

// StampExtent returns the pixel rectangle covered by w's stamp.
func StampExtent(w Warp) image.Rectangle {
	r := stampRadius(w)
	cx, cy := w.Point.Round()
	return image.Rect(cx-r, cy-r, cx+r+1, cy+r+1)
}

// BuildRoundStamp synthesizes the displacement field of w. It panics when
// the rounded effective radius is below one pixel.
//
// Only the wedge 0 <= y <= x of the disc is evaluated; the other seven
// octants are mirrored from it.
func BuildRoundStamp(w Warp) *Stamp {
	r := stampRadius(w)
	if r < 1 {
		panic(fmt.Sprintf("liquify: stamp radius %v rounds to %d", w.EffectiveRadius(), r))
	}
	s := &Stamp{Radius: r, Data: make([]complex64, (2*r+1)*(2*r+1))}

	size := r * LookupOversample
	lut := BuildLookupTable(size, float32(w.Control1), float32(w.Control2))

	sv := w.StrengthVector()
	strength := complex(float32(sv.X), float32(sv.Y))
	abs := float32(0.5 * sv.Length() / float64(r))

	for y := 0; y <= r; y++ {
		for x := y; x <= r; x++ {
			fx, fy := float32(x), float32(y)
			idist := int(math32.Round(math32.Hypot(fx, fy) * LookupOversample))
			if idist >= size {
				break
			}
			f := lut[idist]

			// The eight images of (x, y) under the symmetries of the square.
			offs := [8][2]int{
				{x, -y}, {y, -x}, {-y, -x}, {-x, -y},
				{-x, y}, {-y, x}, {y, x}, {x, y},
			}
			switch w.Type {
			case RadialGrow, RadialShrink:
				a := abs * f
				if w.Type == RadialShrink {
					a = -a
				}
				for _, o := range offs {
					*s.at(o[0], o[1]) = complex(a*float32(o[0]), a*float32(o[1]))
				}
			default:
				v := strength * complex(f, 0)
				for _, o := range offs {
					*s.at(o[0], o[1]) = v
				}
			}
		}
	}
	return s
}
