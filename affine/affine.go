// SPDX-License-Identifier: Apache-2.0

// Package affine implements component B: a one-dimensional
// offset+scale transform over ordinate.Ordinate, composable and
// invertible, generalizing gotio's opentime.TimeTransform from a
// float64 scale/offset pair to rational-exact arithmetic.
package affine

import (
	"errors"

	"github.com/wrinkles-go/wrinkles/ordinate"
)

// ErrNotInvertible is returned when Inverse is requested on a
// transform whose scale is zero (a degenerate projection — spec §4.B
// says the topology layer must handle this as an Empty mapping).
var ErrNotInvertible = errors.New("affine: transform with zero scale has no inverse")

// Transform is { offset, scale } acting on x as scale*x + offset.
type Transform struct {
	Offset ordinate.Ordinate
	Scale  ordinate.Ordinate
}

// Identity is the transform with scale=1, offset=0.
var Identity = Transform{Offset: ordinate.Zero, Scale: ordinate.FromInt64(1)}

// New builds a Transform from an offset and scale.
func New(offset, scale ordinate.Ordinate) Transform {
	return Transform{Offset: offset, Scale: scale}
}

// IsDegenerate reports whether Scale is exactly zero, the case spec
// §4.B calls out as a degenerate projection.
func (t Transform) IsDegenerate() bool {
	return t.Scale.IsFinite() && t.Scale.Sign() == 0
}

// Apply returns scale*x + offset.
func (t Transform) Apply(x ordinate.Ordinate) ordinate.Ordinate {
	return t.Scale.Mul(x).Add(t.Offset)
}

// ApplyInterval applies the transform to both endpoints of iv. A
// negative scale reverses the endpoint order, so the mapped endpoints
// are swapped before the interval is built.
func (t Transform) ApplyInterval(iv ordinate.Interval) ordinate.Interval {
	a := t.Apply(iv.Start())
	b := t.Apply(iv.End())
	if t.Scale.Sign() < 0 {
		a, b = b, a
	}
	return ordinate.NewInterval(a, b)
}

// Compose returns A∘B such that (A.Compose(B)).Apply(x) ==
// A.Apply(B.Apply(x)), per spec §4.B:
// scale = A.scale*B.scale, offset = A.scale*B.offset + A.offset.
func (a Transform) Compose(b Transform) Transform {
	return Transform{
		Offset: a.Scale.Mul(b.Offset).Add(a.Offset),
		Scale:  a.Scale.Mul(b.Scale),
	}
}

// Inverse returns the transform t such that t.Apply(a.Apply(x)) == x,
// or ErrNotInvertible if a.Scale is zero.
func (a Transform) Inverse() (Transform, error) {
	if a.IsDegenerate() {
		return Transform{}, ErrNotInvertible
	}
	invScale := ordinate.FromInt64(1).Div(a.Scale)
	return Transform{
		Scale:  invScale,
		Offset: a.Offset.Neg().Mul(invScale),
	}, nil
}

// Equal reports whether two transforms have the same offset and scale.
func (a Transform) Equal(b Transform) bool {
	return a.Offset.Equal(b.Offset) && a.Scale.Equal(b.Scale)
}
