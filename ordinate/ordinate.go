// SPDX-License-Identifier: Apache-2.0

// Package ordinate provides rational-exact time scalars for the
// topology engine: a signed rational value with distinguished
// +Inf/-Inf/NaN states, the clopen ContinuousInterval built from it,
// and the DiscreteSampling index generator.
//
// Ordinate intentionally mirrors the shape of gotio's
// opentime.RationalTime (a value carried alongside arithmetic
// helpers) but swaps the float64 representation for math/big.Rat so
// that composing many layers of a timeline never accumulates drift.
package ordinate

import (
	"math"
	"math/big"
)

// kind distinguishes the finite/infinite/NaN states of an Ordinate.
type kind uint8

const (
	kindFinite kind = iota
	kindPosInf
	kindNegInf
	kindNaN
)

// Ordinate is a signed rational-exact scalar, or one of +Inf, -Inf, NaN.
// The zero value is the rational 0.
type Ordinate struct {
	k kind
	r *big.Rat // non-nil iff k == kindFinite
}

// Zero is the rational-exact zero ordinate.
var Zero = Ordinate{k: kindFinite, r: new(big.Rat)}

// PosInf is positive infinity.
var PosInf = Ordinate{k: kindPosInf}

// NegInf is negative infinity.
var NegInf = Ordinate{k: kindNegInf}

// NaN is the not-a-number ordinate.
var NaN = Ordinate{k: kindNaN}

// FromRat builds an Ordinate from an exact rational.
func FromRat(r *big.Rat) Ordinate {
	if r == nil {
		return Zero
	}
	return Ordinate{k: kindFinite, r: new(big.Rat).Set(r)}
}

// FromInt64 builds an Ordinate from an integer numerator over 1.
func FromInt64(n int64) Ordinate {
	return Ordinate{k: kindFinite, r: new(big.Rat).SetInt64(n)}
}

// FromFrac builds an Ordinate from an integer fraction num/den.
// A zero denominator yields PosInf, NegInf or NaN per the §4.A rules.
func FromFrac(num, den int64) Ordinate {
	if den == 0 {
		switch {
		case num > 0:
			return PosInf
		case num < 0:
			return NegInf
		default:
			return NaN
		}
	}
	return Ordinate{k: kindFinite, r: big.NewRat(num, den)}
}

// FromFloat64 builds an Ordinate from a float64, preserving Inf/NaN states.
// Finite values are converted exactly (no rounding beyond what float64
// itself already lost); this is a boundary conversion, never used
// internally once a value is rational.
func FromFloat64(f float64) Ordinate {
	switch {
	case math.IsNaN(f):
		return NaN
	case math.IsInf(f, 1):
		return PosInf
	case math.IsInf(f, -1):
		return NegInf
	default:
		r := new(big.Rat)
		r.SetFloat64(f)
		return Ordinate{k: kindFinite, r: r}
	}
}

// IsNaN reports whether this ordinate is NaN.
func (o Ordinate) IsNaN() bool { return o.k == kindNaN }

// IsInf reports whether this ordinate is +Inf or -Inf.
func (o Ordinate) IsInf() bool { return o.k == kindPosInf || o.k == kindNegInf }

// IsPosInf reports whether this ordinate is +Inf.
func (o Ordinate) IsPosInf() bool { return o.k == kindPosInf }

// IsNegInf reports whether this ordinate is -Inf.
func (o Ordinate) IsNegInf() bool { return o.k == kindNegInf }

// IsFinite reports whether this ordinate is an exact rational.
func (o Ordinate) IsFinite() bool { return o.k == kindFinite }

// Rat returns the underlying rational and true, or (nil, false) if
// this ordinate is not finite.
func (o Ordinate) Rat() (*big.Rat, bool) {
	if o.k != kindFinite {
		return nil, false
	}
	return new(big.Rat).Set(o.r), true
}

// Sign returns -1, 0, or 1 for a finite ordinate; for infinities it
// returns the sign of the infinity; NaN returns 0 by convention (it
// is caught separately by callers that care — see Cmp).
func (o Ordinate) Sign() int {
	switch o.k {
	case kindPosInf:
		return 1
	case kindNegInf:
		return -1
	case kindNaN:
		return 0
	default:
		return o.r.Sign()
	}
}

// Add returns o+other, propagating Inf/NaN per spec §3:
// x+INF=INF, INF+(-INF)=NaN, NaN absorbs.
func (o Ordinate) Add(other Ordinate) Ordinate {
	if o.IsNaN() || other.IsNaN() {
		return NaN
	}
	if o.IsInf() || other.IsInf() {
		if o.IsInf() && other.IsInf() && o.Sign() != other.Sign() {
			return NaN
		}
		if o.IsInf() {
			return o
		}
		return other
	}
	return FromRat(new(big.Rat).Add(o.r, other.r))
}

// Sub returns o-other.
func (o Ordinate) Sub(other Ordinate) Ordinate {
	return o.Add(other.Neg())
}

// Neg returns -o.
func (o Ordinate) Neg() Ordinate {
	switch o.k {
	case kindPosInf:
		return NegInf
	case kindNegInf:
		return PosInf
	case kindNaN:
		return NaN
	default:
		return FromRat(new(big.Rat).Neg(o.r))
	}
}

// Mul returns o*other. 0*INF = NaN per spec §3.
func (o Ordinate) Mul(other Ordinate) Ordinate {
	if o.IsNaN() || other.IsNaN() {
		return NaN
	}
	if o.IsInf() || other.IsInf() {
		if (o.IsFinite() && o.Sign() == 0) || (other.IsFinite() && other.Sign() == 0) {
			return NaN
		}
		sign := o.Sign() * other.Sign()
		if sign > 0 {
			return PosInf
		}
		return NegInf
	}
	return FromRat(new(big.Rat).Mul(o.r, other.r))
}

// Div returns o/other. x/0 = ±Inf with the sign of x; 0/0 = NaN,
// per spec §3 and §4.A.
func (o Ordinate) Div(other Ordinate) Ordinate {
	if o.IsNaN() || other.IsNaN() {
		return NaN
	}
	if other.IsInf() {
		if o.IsInf() {
			return NaN
		}
		return Zero
	}
	if other.r.Sign() == 0 {
		switch o.Sign() {
		case 0:
			return NaN
		case 1:
			return PosInf
		default:
			return NegInf
		}
	}
	if o.IsInf() {
		if other.r.Sign() > 0 {
			return o
		}
		return o.Neg()
	}
	return FromRat(new(big.Rat).Quo(o.r, other.r))
}

// Cmp returns -1, 0, or 1 comparing o and other under a total order
// where NegInf < finite < PosInf. Comparisons involving NaN return 2,
// a sentinel distinguishable from the three ordinary results; callers
// that need to detect it should check IsNaN first (see spec §7: NaN
// only becomes an error when a caller requests an integer conversion
// or an order-dependent comparison).
func (o Ordinate) Cmp(other Ordinate) int {
	if o.IsNaN() || other.IsNaN() {
		return 2
	}
	if o.k == other.k && o.k != kindFinite {
		return 0
	}
	rank := func(x Ordinate) int {
		switch x.k {
		case kindNegInf:
			return -1
		case kindPosInf:
			return 1
		default:
			return 0
		}
	}
	ro, rt := rank(o), rank(other)
	if ro != rt {
		if ro < rt {
			return -1
		}
		return 1
	}
	if ro != 0 {
		return 0
	}
	return o.r.Cmp(other.r)
}

// Equal is value equality after normalization: two finite ordinates
// are equal iff their reduced rationals match; the distinguished
// values are equal only to themselves.
func (o Ordinate) Equal(other Ordinate) bool {
	if o.k != other.k {
		return false
	}
	if o.k != kindFinite {
		return true
	}
	return o.r.Cmp(other.r) == 0
}

// Equivalent compares two ordinates' values regardless of how the
// underlying rational is represented (e.g. 2/4 vs 1/2 prior to
// reduction). big.Rat always stores reduced fractions, so today this
// coincides with Equal, but the two are kept distinct per spec §3 so
// a future non-reducing representation does not need an API change.
func (o Ordinate) Equivalent(other Ordinate) bool {
	return o.Equal(other)
}

// Less reports o < other under Cmp's total order. False for any
// comparison involving NaN.
func (o Ordinate) Less(other Ordinate) bool {
	return !o.IsNaN() && !other.IsNaN() && o.Cmp(other) < 0
}

// LessEqual reports o <= other.
func (o Ordinate) LessEqual(other Ordinate) bool {
	return !o.IsNaN() && !other.IsNaN() && o.Cmp(other) <= 0
}

// Floor returns the largest integer not greater than o. Infinities
// return themselves is meaningless as an int64, so Floor on an
// infinite or NaN ordinate returns an OverflowError — callers that
// need to floor an unbounded topology endpoint must check IsInf first.
func (o Ordinate) Floor() (int64, error) {
	if o.k != kindFinite {
		return 0, &OverflowError{Value: o}
	}
	q := new(big.Int).Quo(o.r.Num(), o.r.Denom())
	rem := new(big.Int).Rem(o.r.Num(), o.r.Denom())
	if rem.Sign() < 0 {
		q.Sub(q, big.NewInt(1))
	}
	if !q.IsInt64() {
		return 0, &OverflowError{Value: o}
	}
	return q.Int64(), nil
}

// FloorOrdinate returns Floor(o) re-wrapped as an exact integer Ordinate.
func (o Ordinate) FloorOrdinate() Ordinate {
	n, err := o.Floor()
	if err != nil {
		return o
	}
	return FromInt64(n)
}

// ToFloat64 returns a lossy float64 view of the ordinate, for
// visualization/debugging only — per the design note "Exact
// rationals by default," this value must never be re-entered into
// arithmetic.
func (o Ordinate) ToFloat64() float64 {
	switch o.k {
	case kindPosInf:
		return math.Inf(1)
	case kindNegInf:
		return math.Inf(-1)
	case kindNaN:
		return math.NaN()
	default:
		f, _ := o.r.Float64()
		return f
	}
}

// String renders the ordinate for debugging.
func (o Ordinate) String() string {
	switch o.k {
	case kindPosInf:
		return "+Inf"
	case kindNegInf:
		return "-Inf"
	case kindNaN:
		return "NaN"
	default:
		return o.r.RatString()
	}
}
