// SPDX-License-Identifier: Apache-2.0

package curve

import (
	"errors"

	"github.com/wrinkles-go/wrinkles/ordinate"
)

// ErrNotMonotonic is returned when knot construction finds a
// non-increasing "in" sequence.
var ErrNotMonotonic = errors.New("curve: knot \"in\" values must be strictly increasing")

// ErrNotInvertible is returned when Inverse is requested of a
// LinearCurve whose "out" values are not themselves monotonic.
var ErrNotInvertible = errors.New("curve: linear curve output is not monotonic")

// ErrOutOfBounds is returned when evaluating outside a curve's
// input bounds.
var ErrOutOfBounds = errors.New("curve: input out of bounds")

// Knot is one control point of a LinearCurve: { in, out }.
type Knot struct {
	In  ordinate.Ordinate
	Out ordinate.Ordinate
}

// LinearCurve is an ordered knot list, strictly increasing in "in",
// piecewise linear between knots. Output need not be monotonic in
// "out" (spec §3, Curve / LinearMonotonic).
type LinearCurve struct {
	Knots []Knot
}

// NewLinearCurve validates strict monotonicity of In and returns the curve.
func NewLinearCurve(knots []Knot) (*LinearCurve, error) {
	if len(knots) < 2 {
		return nil, errors.New("curve: a linear curve needs at least two knots")
	}
	for i := 1; i < len(knots); i++ {
		if !knots[i-1].In.Less(knots[i].In) {
			return nil, ErrNotMonotonic
		}
	}
	cp := make([]Knot, len(knots))
	copy(cp, knots)
	return &LinearCurve{Knots: cp}, nil
}

// InputBounds returns [first.In, last.In).
func (c *LinearCurve) InputBounds() ordinate.Interval {
	return ordinate.NewInterval(c.Knots[0].In, c.Knots[len(c.Knots)-1].In)
}

// OutputBounds returns the interval spanning the min and max "out" values.
func (c *LinearCurve) OutputBounds() ordinate.Interval {
	lo, hi := c.Knots[0].Out, c.Knots[0].Out
	for _, k := range c.Knots[1:] {
		if k.Out.Less(lo) {
			lo = k.Out
		}
		if hi.Less(k.Out) {
			hi = k.Out
		}
	}
	return ordinate.NewInterval(lo, hi)
}

// segmentFor returns the index i such that Knots[i].In <= x < Knots[i+1].In,
// or an error if x is outside the curve's input bounds. The final
// knot's In is always treated as exclusive per the clopen rule (spec
// §4.D); TrimToInput reaches it through evalClamped instead.
func (c *LinearCurve) segmentFor(x ordinate.Ordinate) (int, error) {
	n := len(c.Knots)
	if x.Less(c.Knots[0].In) || !x.Less(c.Knots[n-1].In) {
		return 0, ErrOutOfBounds
	}
	lo, hi := 0, n-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if c.Knots[mid].In.LessEqual(x) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo, nil
}

// EvalAtInput linearly interpolates Out at input x.
func (c *LinearCurve) EvalAtInput(x ordinate.Ordinate) (ordinate.Ordinate, error) {
	i, err := c.segmentFor(x)
	if err != nil {
		return ordinate.Zero, err
	}
	a, b := c.Knots[i], c.Knots[i+1]
	span := b.In.Sub(a.In)
	if span.Sign() == 0 {
		return a.Out, nil
	}
	t := x.Sub(a.In).Div(span)
	return a.Out.Add(b.Out.Sub(a.Out).Mul(t)), nil
}

// IsOutputMonotonic reports whether Out is monotonic across all
// knots (required for Inverse).
func (c *LinearCurve) IsOutputMonotonic() bool {
	increasing, decreasing := true, true
	for i := 1; i < len(c.Knots); i++ {
		if c.Knots[i-1].Out.Less(c.Knots[i].Out) {
			decreasing = false
		} else if c.Knots[i].Out.Less(c.Knots[i-1].Out) {
			increasing = false
		}
	}
	return increasing || decreasing
}

// Inverse swaps the role of In and Out, returning ErrNotInvertible if
// Out is not monotonic (spec §4.D).
func (c *LinearCurve) Inverse() (*LinearCurve, error) {
	if !c.IsOutputMonotonic() {
		return nil, ErrNotInvertible
	}
	knots := make([]Knot, len(c.Knots))
	for i, k := range c.Knots {
		knots[i] = Knot{In: k.Out, Out: k.In}
	}
	if knots[0].In.Cmp(knots[len(knots)-1].In) > 0 {
		for l, r := 0, len(knots)-1; l < r; l, r = l+1, r-1 {
			knots[l], knots[r] = knots[r], knots[l]
		}
	}
	return NewLinearCurve(knots)
}

// TrimToInput returns a new curve restricted to iv, re-knotting at
// the trim boundaries by linear interpolation.
func (c *LinearCurve) TrimToInput(iv ordinate.Interval) (*LinearCurve, error) {
	bounds := c.InputBounds()
	lo := iv.Start()
	if lo.Less(bounds.Start()) {
		lo = bounds.Start()
	}
	hi := iv.End()
	if bounds.End().Less(hi) {
		hi = bounds.End()
	}
	if !lo.Less(hi) {
		return nil, errors.New("curve: trim interval does not overlap curve bounds")
	}

	var knots []Knot
	loOut, err := c.evalClamped(lo)
	if err != nil {
		return nil, err
	}
	knots = append(knots, Knot{In: lo, Out: loOut})
	for _, k := range c.Knots {
		if k.In.Less(hi) && lo.Less(k.In) {
			knots = append(knots, k)
		}
	}
	hiOut, err := c.evalClamped(hi)
	if err != nil {
		return nil, err
	}
	if knots[len(knots)-1].In.Less(hi) {
		knots = append(knots, Knot{In: hi, Out: hiOut})
	}
	return NewLinearCurve(knots)
}

// evalClamped evaluates at x, treating the curve's own final
// endpoint as reachable (unlike the public clopen EvalAtInput) so
// trims landing exactly on the last knot still succeed.
func (c *LinearCurve) evalClamped(x ordinate.Ordinate) (ordinate.Ordinate, error) {
	last := c.Knots[len(c.Knots)-1]
	if x.Equal(last.In) {
		return last.Out, nil
	}
	return c.EvalAtInput(x)
}
