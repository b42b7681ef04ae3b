// Package kernel provides the separable reconstruction kernels used when
// resampling an image through a displacement field.
package kernel

import (
	"fmt"
	"math"
	"sync"

	"golang.org/x/image/draw"
)

// Mode selects a reconstruction kernel.
type Mode int

const (
	Bilinear Mode = iota
	Bicubic
	Lanczos2
	Lanczos3
)

func (m Mode) String() string {
	switch m {
	case Bilinear:
		return "bilinear"
	case Bicubic:
		return "bicubic"
	case Lanczos2:
		return "lanczos2"
	case Lanczos3:
		return "lanczos3"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Parse returns the mode named s.
func Parse(s string) (Mode, error) {
	for m := Bilinear; m <= Lanczos3; m++ {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("kernel: unknown interpolation %q", s)
}

var (
	lanczos2 = &draw.Kernel{Support: 2, At: func(t float64) float64 { return lanczos(2, t) }}
	lanczos3 = &draw.Kernel{Support: 3, At: func(t float64) float64 { return lanczos(3, t) }}
)

// Kernel returns the continuous kernel for m. Bicubic is Catmull-Rom.
func (m Mode) Kernel() *draw.Kernel {
	switch m {
	case Bicubic:
		return draw.CatmullRom
	case Lanczos2:
		return lanczos2
	case Lanczos3:
		return lanczos3
	}
	return draw.BiLinear
}

func lanczos(a, x float64) float64 {
	x = math.Abs(x)
	if x < 1e-5 {
		return 1
	}
	if x >= a {
		return 0
	}
	px := math.Pi * x
	return a * math.Sin(px) * math.Sin(px/a) / (px * px)
}

// Descriptor describes a kernel table: Size is the kernel half-width in
// pixels and Resolution the number of table entries per pixel.
type Descriptor struct {
	Size       int
	Resolution int
}

// Descriptor returns the table layout for m.
func (m Mode) Descriptor() Descriptor {
	if m == Bilinear {
		return Descriptor{Size: 1, Resolution: 1}
	}
	return Descriptor{Size: int(m.Kernel().Support), Resolution: 100}
}

// Len returns the number of entries in a table with this layout.
func (d Descriptor) Len() int {
	return d.Size*d.Resolution + 1
}

type tableCache struct {
	mu     sync.RWMutex
	tables map[Mode][]float32
}

var cache = &tableCache{tables: make(map[Mode][]float32)}

// Table returns kernel values sampled at i/Resolution for i in [0, Len).
// The returned slice is shared and must not be modified.
func Table(m Mode) []float32 {
	cache.mu.RLock()
	t, ok := cache.tables[m]
	cache.mu.RUnlock()
	if ok {
		return t
	}

	d := m.Descriptor()
	k := m.Kernel()
	t = make([]float32, d.Len())
	for i := range t {
		t[i] = float32(k.At(float64(i) / float64(d.Resolution)))
	}

	cache.mu.Lock()
	cache.tables[m] = t
	cache.mu.Unlock()
	return t
}

// Weights fills w with the 2*Size normalised tap weights for a sample at
// fractional offset frac in [0, 1). Tap i corresponds to pixel
// floor(x) - Size + 1 + i.
func Weights(m Mode, frac float64, w []float32) {
	k := m.Kernel()
	size := m.Descriptor().Size
	var sum float32
	for i := range 2 * size {
		v := float32(k.At(math.Abs(float64(i-size+1) - frac)))
		w[i] = v
		sum += v
	}
	if sum != 0 {
		inv := 1 / sum
		for i := range 2 * size {
			w[i] *= inv
		}
	}
}
