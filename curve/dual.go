// SPDX-License-Identifier: Apache-2.0

// Package curve implements component C: monotonic linear-knot
// sequences and cubic bezier segments, with a dual-number derivative
// path and a tolerance-driven linearizer. Curve math solves for a
// bezier's parametric root and therefore cannot stay rational-exact
// (a cube root is, in general, irrational); per the design note
// "exact rationals by default," this package works in float64
// internally and only the final projected ordinate crosses back into
// ordinate.Ordinate, at the boundary, via FromFloat64.
package curve

// Dual is a dual number (real, infinitesimal) pair: Eps carries the
// coefficient of an infinitesimal epsilon with eps^2=0. Evaluating a
// polynomial at Dual{x, 1} yields Val=f(x), Eps=f'(x) for free,
// avoiding a hand-written symbolic derivative (Design Note "Dual
// numbers for bezier derivatives").
type Dual struct {
	Val float64
	Eps float64
}

// D constructs a dual number representing a constant (zero derivative).
func D(v float64) Dual { return Dual{Val: v} }

// Var constructs the dual number representing the independent
// variable itself (derivative 1).
func Var(v float64) Dual { return Dual{Val: v, Eps: 1} }

// Add returns a+b.
func (a Dual) Add(b Dual) Dual {
	return Dual{Val: a.Val + b.Val, Eps: a.Eps + b.Eps}
}

// Sub returns a-b.
func (a Dual) Sub(b Dual) Dual {
	return Dual{Val: a.Val - b.Val, Eps: a.Eps - b.Eps}
}

// Mul returns a*b, applying the product rule via eps^2=0.
func (a Dual) Mul(b Dual) Dual {
	return Dual{Val: a.Val * b.Val, Eps: a.Val*b.Eps + a.Eps*b.Val}
}

// Scale returns a*k for a plain float64 scalar k.
func (a Dual) Scale(k float64) Dual {
	return Dual{Val: a.Val * k, Eps: a.Eps * k}
}

// Div returns a/b, applying the quotient rule.
func (a Dual) Div(b Dual) Dual {
	return Dual{
		Val: a.Val / b.Val,
		Eps: (a.Eps*b.Val - a.Val*b.Eps) / (b.Val * b.Val),
	}
}
