// SPDX-License-Identifier: Apache-2.0

// Package mapping implements component D: Mapping, a tagged union
// over the four coordinate-space functions the system can evaluate
// — Empty, Affine, Linear (a LinearCurve), and Bezier (a bezier
// curve.Curve) — sharing one contract: input/output bounds,
// pointwise and interval projection, inversion, trimming, and
// splitting at an input ordinate. This generalizes gotio's
// TimeTransform/RationalTime split into the single polymorphic atom
// spec §4.D calls for.
package mapping

import (
	"github.com/wrinkles-go/wrinkles/affine"
	"github.com/wrinkles-go/wrinkles/curve"
	"github.com/wrinkles-go/wrinkles/ordinate"
)

// Kind tags which variant a Mapping holds.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindAffine
	KindLinear
	KindBezier
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "Empty"
	case KindAffine:
		return "Affine"
	case KindLinear:
		return "Linear"
	case KindBezier:
		return "Bezier"
	default:
		return "Unknown"
	}
}

// Mapping is one atom of a Topology: a function from an input bound
// interval to output values, in exactly one of four forms.
type Mapping struct {
	kind   Kind
	bounds ordinate.Interval // input bounds, always present (even for Empty)
	aff    affine.Transform
	lin    *curve.LinearCurve
	bez    *curve.Curve
}

// NewEmpty returns the Empty mapping over the given input bounds: it
// has no discrete output, but still occupies space in a Topology
// (spec §4.D, "Empty" / gap segments).
func NewEmpty(bounds ordinate.Interval) Mapping {
	return Mapping{kind: KindEmpty, bounds: bounds}
}

// NewAffine returns an Affine mapping valid over bounds.
func NewAffine(bounds ordinate.Interval, t affine.Transform) Mapping {
	return Mapping{kind: KindAffine, bounds: bounds, aff: t}
}

// NewLinear returns a Linear mapping backed by a LinearCurve. Its
// input bounds are lc.InputBounds(); a caller that needs narrower
// bounds trims the curve beforehand.
func NewLinear(lc *curve.LinearCurve) Mapping {
	return Mapping{kind: KindLinear, bounds: lc.InputBounds(), lin: lc}
}

// NewBezier returns a Bezier mapping backed by a bezier curve.Curve.
func NewBezier(bc *curve.Curve) Mapping {
	return Mapping{kind: KindBezier, bounds: bc.InputBounds(), bez: bc}
}

// Kind reports which variant this mapping holds.
func (m Mapping) Kind() Kind { return m.kind }

// AsAffine returns the underlying affine.Transform and true if this
// mapping is KindAffine, or the zero Transform and false otherwise.
func (m Mapping) AsAffine() (affine.Transform, bool) {
	if m.kind != KindAffine {
		return affine.Transform{}, false
	}
	return m.aff, true
}

// InputBounds returns the clopen interval over which this mapping is defined.
func (m Mapping) InputBounds() ordinate.Interval { return m.bounds }

// OutputBounds returns the mapping's output range. Empty returns an
// empty interval at the input bounds' start (it has no meaningful
// output space).
func (m Mapping) OutputBounds() ordinate.Interval {
	switch m.kind {
	case KindEmpty:
		return ordinate.NewInterval(m.bounds.Start(), m.bounds.Start())
	case KindAffine:
		return m.aff.ApplyInterval(m.bounds)
	case KindLinear:
		return m.lin.OutputBounds()
	case KindBezier:
		lo, _ := m.bez.EvalAtInput(m.bounds.Start())
		hi, err := m.bez.EvalAtInput(m.bounds.End())
		if err != nil {
			// If the solve at the end fails, read the curve's own
			// last segment endpoint instead.
			last := m.bez.Segments[len(m.bez.Segments)-1]
			_, outEnd := last.EvalAtU(1)
			hi = ordinate.FromFloat64(outEnd)
		}
		return ordinate.NewInterval(lo, hi)
	}
	return ordinate.NewInterval(ordinate.Zero, ordinate.Zero)
}

// ProjectOrdinate evaluates the mapping at x. Empty always returns
// ErrOutOfBounds (it has no discrete output value at any input, per
// spec §4.D); Affine/Linear/Bezier evaluate if x is in bounds.
func (m Mapping) ProjectOrdinate(x ordinate.Ordinate) (ordinate.Ordinate, error) {
	if !m.containsForEval(x) {
		return ordinate.Zero, &OutOfBoundsError{Value: x, Bounds: m.bounds}
	}
	switch m.kind {
	case KindEmpty:
		return ordinate.Zero, &OutOfBoundsError{Value: x, Bounds: m.bounds}
	case KindAffine:
		return m.aff.Apply(x), nil
	case KindLinear:
		return m.lin.EvalAtInput(x)
	case KindBezier:
		return m.bez.EvalAtInput(x)
	}
	return ordinate.Zero, &OutOfBoundsError{Value: x, Bounds: m.bounds}
}

// containsForEval applies the clopen rule [start,end), with the
// tie-break that a mapping consisting of a single degenerate
// (zero-width) interval accepts exactly its own start.
func (m Mapping) containsForEval(x ordinate.Ordinate) bool {
	if m.bounds.IsEmpty() {
		return x.Equal(m.bounds.Start())
	}
	return m.bounds.Contains(x)
}

// ProjectInterval maps iv through the mapping, clipping iv to the
// mapping's own input bounds first. Returns ErrOutOfBounds if the
// clipped interval is empty (no overlap at all).
func (m Mapping) ProjectInterval(iv ordinate.Interval) (ordinate.Interval, error) {
	clipped := iv.Intersection(m.bounds)
	if clipped.IsEmpty() && !m.bounds.IsEmpty() {
		return ordinate.Interval{}, &OutOfBoundsError{Value: iv.Start(), Bounds: m.bounds}
	}
	switch m.kind {
	case KindEmpty:
		return ordinate.Interval{}, &OutOfBoundsError{Value: iv.Start(), Bounds: m.bounds}
	case KindAffine:
		return m.aff.ApplyInterval(clipped), nil
	case KindLinear, KindBezier:
		lo, err := m.ProjectOrdinate(clipped.Start())
		if err != nil {
			return ordinate.Interval{}, err
		}
		hiX := clipped.End()
		var hi ordinate.Ordinate
		if hiX.Equal(m.bounds.End()) {
			hi = m.OutputBounds().End()
		} else {
			hi, err = m.ProjectOrdinate(hiX)
			if err != nil {
				return ordinate.Interval{}, err
			}
		}
		return ordinate.NewInterval(lo, hi), nil
	}
	return ordinate.Interval{}, &OutOfBoundsError{Value: iv.Start(), Bounds: m.bounds}
}

// Inverse returns the mapping m2 such that m2.ProjectOrdinate(m.ProjectOrdinate(x)) == x,
// or ErrNotInvertible.
func (m Mapping) Inverse() (Mapping, error) {
	switch m.kind {
	case KindEmpty:
		return Mapping{}, &NotInvertibleError{Kind: m.kind, Reason: "empty mapping has no inverse"}
	case KindAffine:
		inv, err := m.aff.Inverse()
		if err != nil {
			return Mapping{}, &NotInvertibleError{Kind: m.kind, Reason: err.Error()}
		}
		return NewAffine(m.aff.ApplyInterval(m.bounds), inv), nil
	case KindLinear:
		inv, err := m.lin.Inverse()
		if err != nil {
			return Mapping{}, &NotInvertibleError{Kind: m.kind, Reason: err.Error()}
		}
		return NewLinear(inv), nil
	case KindBezier:
		// As with TrimToInput, an exact analytic inverse of a cubic
		// is not closed-form-stable, so a monotonic-output Bezier
		// inverts via linearize-then-invert rather than failing
		// outright; only a genuinely non-monotonic output (the
		// spec's actual NotInvertible condition) is rejected.
		lc := m.bez.Linearize(curve.DefaultLinearizeEpsilon)
		inv, err := lc.Inverse()
		if err != nil {
			return Mapping{}, &NotInvertibleError{Kind: m.kind, Reason: err.Error()}
		}
		return NewLinear(inv), nil
	}
	return Mapping{}, &NotInvertibleError{Kind: m.kind, Reason: "unknown mapping kind"}
}

// TrimToInput restricts the mapping to iv intersected with its own bounds.
func (m Mapping) TrimToInput(iv ordinate.Interval) (Mapping, error) {
	clipped := iv.Intersection(m.bounds)
	if clipped.IsEmpty() && !m.bounds.IsEmpty() {
		return Mapping{}, &OutOfBoundsError{Value: iv.Start(), Bounds: m.bounds}
	}
	switch m.kind {
	case KindEmpty:
		return NewEmpty(clipped), nil
	case KindAffine:
		return NewAffine(clipped, m.aff), nil
	case KindLinear:
		lc, err := m.lin.TrimToInput(clipped)
		if err != nil {
			return Mapping{}, err
		}
		return NewLinear(lc), nil
	case KindBezier:
		// Bezier trimming is approximated via linearization: exact
		// analytic trim of a cubic is not closed-form-stable near
		// trim boundaries, so the curve is linearized here and the
		// resulting LinearCurve is trimmed (topology.Topology.TrimInput
		// reaches this for its boundary segments).
		lc := m.bez.Linearize(curve.DefaultLinearizeEpsilon)
		trimmed, err := lc.TrimToInput(clipped)
		if err != nil {
			return Mapping{}, err
		}
		return NewLinear(trimmed), nil
	}
	return Mapping{}, &OutOfBoundsError{Value: clipped.Start(), Bounds: m.bounds}
}

// SplitAtInput divides the mapping into [bounds.start, at) and
// [at, bounds.end), both trims of the original mapping.
func (m Mapping) SplitAtInput(at ordinate.Ordinate) (left, right Mapping, err error) {
	if !m.bounds.Contains(at) {
		return Mapping{}, Mapping{}, &OutOfBoundsError{Value: at, Bounds: m.bounds}
	}
	left, err = m.TrimToInput(ordinate.NewInterval(m.bounds.Start(), at))
	if err != nil {
		return Mapping{}, Mapping{}, err
	}
	right, err = m.TrimToInput(ordinate.NewInterval(at, m.bounds.End()))
	if err != nil {
		return Mapping{}, Mapping{}, err
	}
	return left, right, nil
}
