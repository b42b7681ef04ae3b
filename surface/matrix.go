// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import "math"

// Matrix is a 2D affine transformation:
//
//	x' = A*x + B*y + C
//	y' = D*x + E*y + F
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transformation.
func Identity() Matrix {
	return Matrix{A: 1, E: 1}
}

// Multiply returns m * other, the transform applying other first.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// Translated returns m followed in user space by a translation.
func (m Matrix) Translated(x, y float64) Matrix {
	return m.Multiply(Matrix{A: 1, C: x, E: 1, F: y})
}

// Rotated returns m followed in user space by a rotation.
func (m Matrix) Rotated(angle float64) Matrix {
	sin, cos := math.Sincos(angle)
	return m.Multiply(Matrix{A: cos, B: -sin, D: sin, E: cos})
}

// Apply transforms a point.
func (m Matrix) Apply(p Point) Point {
	return Point{X: m.A*p.X + m.B*p.Y + m.C, Y: m.D*p.X + m.E*p.Y + m.F}
}

// Invert returns the inverse of m. A singular matrix returns the identity.
func (m Matrix) Invert() Matrix {
	det := m.A*m.E - m.B*m.D
	if det == 0 {
		return Identity()
	}
	inv := 1 / det
	return Matrix{
		A: m.E * inv,
		B: -m.B * inv,
		C: (m.B*m.F - m.E*m.C) * inv,
		D: -m.D * inv,
		E: m.A * inv,
		F: (m.D*m.C - m.A*m.F) * inv,
	}
}
