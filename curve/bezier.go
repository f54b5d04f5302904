// SPDX-License-Identifier: Apache-2.0

package curve

import (
	"errors"
	"math"

	"github.com/wrinkles-go/wrinkles/ordinate"
)

// Point is one control point of a bezier segment, in (in, out)
// coordinates.
type Point struct {
	In  ordinate.Ordinate
	Out ordinate.Ordinate
}

// Segment is a single cubic bezier segment with four control points,
// parametric on u in [0,1]. Construction enforces that In(u) is
// monotonic over [0,1] by splitting at derivative roots — see
// NewCurveFromPoints.
type Segment struct {
	P0, P1, P2, P3 Point
}

func (p Point) floatIn() float64  { return p.In.ToFloat64() }
func (p Point) floatOut() float64 { return p.Out.ToFloat64() }

// InputBounds returns [P0.In, P3.In). If the segment runs
// input-decreasing, NewInterval collapses it to the empty interval at
// P0.In.
func (s Segment) InputBounds() ordinate.Interval {
	return ordinate.NewInterval(s.P0.In, s.P3.In)
}

// evalDual evaluates the cubic bezier basis at parameter u (as a
// Dual, so d/du falls out of Eps) for one coordinate's four control
// values.
func evalDual(p0, p1, p2, p3 float64, u Dual) Dual {
	one := D(1)
	mu := one.Sub(u)
	mu2 := mu.Mul(mu)
	mu3 := mu2.Mul(mu)
	u2 := u.Mul(u)
	u3 := u2.Mul(u)

	term0 := mu3.Scale(p0)
	term1 := mu2.Mul(u).Scale(3 * p1)
	term2 := mu.Mul(u2).Scale(3 * p2)
	term3 := u3.Scale(p3)
	return term0.Add(term1).Add(term2).Add(term3)
}

// EvalAtU returns (in(u), out(u)) for u in [0,1].
func (s Segment) EvalAtU(u float64) (in, out float64) {
	ud := D(u)
	inD := evalDual(s.P0.floatIn(), s.P1.floatIn(), s.P2.floatIn(), s.P3.floatIn(), ud)
	outD := evalDual(s.P0.floatOut(), s.P1.floatOut(), s.P2.floatOut(), s.P3.floatOut(), ud)
	return inD.Val, outD.Val
}

// DerivativeAtU returns d(out)/d(in) at parameter u via the dual-number
// chain rule: (d out/du) / (d in/du), both obtained from a single
// Dual evaluation with Eps=1 at u.
func (s Segment) DerivativeAtU(u float64) float64 {
	ud := Var(u)
	inD := evalDual(s.P0.floatIn(), s.P1.floatIn(), s.P2.floatIn(), s.P3.floatIn(), ud)
	outD := evalDual(s.P0.floatOut(), s.P1.floatOut(), s.P2.floatOut(), s.P3.floatOut(), ud)
	if inD.Eps == 0 {
		return math.Inf(int(math.Copysign(1, outD.Eps)))
	}
	return outD.Eps / inD.Eps
}

// cubicCoeffs returns a,b,c,d for a*u^3+b*u^2+c*u+d given the four
// control values of one coordinate and a target value x (solves for
// f(u)-x=0).
func cubicCoeffs(p0, p1, p2, p3, x float64) (a, b, c, d float64) {
	a = -p0 + 3*p1 - 3*p2 + p3
	b = 3*p0 - 6*p1 + 3*p2
	c = -3*p0 + 3*p1
	d = p0 - x
	return
}

// solveCubicRealRoots returns the real roots of a*u^3+b*u^2+c*u+d=0
// via Cardano's formula (the closed-form cubic solver of spec §4.C).
func solveCubicRealRoots(a, b, c, d float64) []float64 {
	const eps = 1e-12
	if math.Abs(a) < eps {
		// Degenerates to quadratic (or linear, or constant).
		return solveQuadraticRealRoots(b, c, d)
	}
	// Normalize: u^3 + Bu^2 + Cu + D = 0
	B, C, D := b/a, c/a, d/a
	// Depress: u = t - B/3 -> t^3 + pt + q = 0
	p := C - B*B/3
	q := 2*B*B*B/27 - B*C/3 + D
	offset := -B / 3

	disc := q*q/4 + p*p*p/27
	switch {
	case disc > eps:
		sq := math.Sqrt(disc)
		u1 := cbrt(-q/2 + sq)
		u2 := cbrt(-q/2 - sq)
		return []float64{u1 + u2 + offset}
	case disc > -eps:
		// Repeated or triple root.
		if math.Abs(p) < eps && math.Abs(q) < eps {
			return []float64{offset}
		}
		u1 := cbrt(-q / 2)
		return []float64{2*u1 + offset, -u1 + offset}
	default:
		// Three distinct real roots (trigonometric form).
		r := math.Sqrt(-p * p * p / 27)
		phi := math.Acos(clamp(-q/(2*r), -1, 1))
		m := 2 * math.Sqrt(-p/3)
		roots := make([]float64, 3)
		for k := 0; k < 3; k++ {
			roots[k] = m*math.Cos((phi+2*math.Pi*float64(k))/3) + offset
		}
		return roots
	}
}

func solveQuadraticRealRoots(a, b, c float64) []float64 {
	const eps = 1e-12
	if math.Abs(a) < eps {
		if math.Abs(b) < eps {
			return nil
		}
		return []float64{-c / b}
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return nil
	}
	sq := math.Sqrt(disc)
	return []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}
}

func cbrt(x float64) float64 {
	if x < 0 {
		return -math.Cbrt(-x)
	}
	return math.Cbrt(x)
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// solveUForIn finds u in [0,1] such that in(u) == x, assuming the
// segment is monotonic in "in" over [0,1] (guaranteed by construction
// — see NewCurveFromPoints). When Cardano's formula yields more than
// one real root in range (can only happen from floating-point
// near-degeneracy at a monotonic segment's boundary), the root
// closest to the bracketing linear estimate is chosen, then refined
// one step by Newton's method for precision.
func (s Segment) solveUForIn(x ordinate.Ordinate) (float64, error) {
	xf := x.ToFloat64()
	a, b, c, d := cubicCoeffs(s.P0.floatIn(), s.P1.floatIn(), s.P2.floatIn(), s.P3.floatIn(), xf)
	roots := solveCubicRealRoots(a, b, c, d)
	if len(roots) == 0 {
		return 0, errors.New("curve: no real root for bezier input solve")
	}

	linEstimate := 0.5
	if span := s.P3.floatIn() - s.P0.floatIn(); span != 0 {
		linEstimate = clamp((xf-s.P0.floatIn())/span, 0, 1)
	}

	best := roots[0]
	bestDist := math.Abs(clamp(roots[0], 0, 1) - linEstimate)
	for _, r := range roots[1:] {
		cr := clamp(r, 0, 1)
		dist := math.Abs(cr - linEstimate)
		if dist < bestDist {
			best, bestDist = r, dist
		}
	}
	u := clamp(best, 0, 1)

	// One Newton refinement step using the dual-number derivative.
	inAtU, _ := s.EvalAtU(u)
	deriv := s.derivativeDInDu(u)
	if deriv != 0 {
		u = clamp(u-(inAtU-xf)/deriv, 0, 1)
	}
	return u, nil
}

func (s Segment) derivativeDInDu(u float64) float64 {
	ud := Var(u)
	inD := evalDual(s.P0.floatIn(), s.P1.floatIn(), s.P2.floatIn(), s.P3.floatIn(), ud)
	return inD.Eps
}

// EvalAtInput solves for u at input x and returns out(u).
func (s Segment) EvalAtInput(x ordinate.Ordinate) (ordinate.Ordinate, error) {
	u, err := s.solveUForIn(x)
	if err != nil {
		return ordinate.Zero, err
	}
	_, out := s.EvalAtU(u)
	return ordinate.FromFloat64(out), nil
}

// monotonicSplitPoints returns the roots of d(in)/du in the open
// interval (0,1), used to split a segment into monotonic pieces.
func (s Segment) monotonicSplitPoints() []float64 {
	p0, p1, p2, p3 := s.P0.floatIn(), s.P1.floatIn(), s.P2.floatIn(), s.P3.floatIn()
	// d/du of the cubic bezier basis is a quadratic in u:
	// derivative(u) = 3[(1-u)^2(p1-p0) + 2(1-u)u(p2-p1) + u^2(p3-p2)]
	// expanded to standard form a*u^2 + b*u + c:
	a := 3 * (p3 - 3*p2 + 3*p1 - p0)
	b := 6 * (p0 - 2*p1 + p2)
	c := 3 * (p1 - p0)
	roots := solveQuadraticRealRoots(a, b, c)
	var out []float64
	for _, r := range roots {
		if r > 1e-9 && r < 1-1e-9 {
			out = append(out, r)
		}
	}
	return out
}

// splitAtU de Casteljau-splits the segment at parameter u into two
// segments that join exactly at u.
func (s Segment) splitAtU(u float64) (Segment, Segment) {
	lerpPt := func(a, b Point, t float64) Point {
		return Point{
			In:  ordinate.FromFloat64(a.floatIn() + (b.floatIn()-a.floatIn())*t),
			Out: ordinate.FromFloat64(a.floatOut() + (b.floatOut()-a.floatOut())*t),
		}
	}
	p01 := lerpPt(s.P0, s.P1, u)
	p12 := lerpPt(s.P1, s.P2, u)
	p23 := lerpPt(s.P2, s.P3, u)
	p012 := lerpPt(p01, p12, u)
	p123 := lerpPt(p12, p23, u)
	p0123 := lerpPt(p012, p123, u)

	left := Segment{P0: s.P0, P1: p01, P2: p012, P3: p0123}
	right := Segment{P0: p0123, P1: p123, P2: p23, P3: s.P3}
	return left, right
}

// Curve is a finite sequence of monotonic bezier segments joining C0
// (spec §3, BezierCurve).
type Curve struct {
	Segments []Segment
}

// NewCurveFromPoints builds a Curve from one or more raw cubic
// segments, splitting each at any sign change of d(in)/du in (0,1)
// so every stored segment is monotonic in input, per spec §4.C
// "Monotonic split."
func NewCurveFromPoints(raw []Segment) (*Curve, error) {
	if len(raw) == 0 {
		return nil, errors.New("curve: bezier curve needs at least one segment")
	}
	var segments []Segment
	for _, seg := range raw {
		segments = append(segments, splitMonotonic(seg)...)
	}
	for i := 1; i < len(segments); i++ {
		if !segments[i-1].P3.In.Equal(segments[i].P0.In) {
			return nil, errors.New("curve: bezier segments must join C0 (matching input)")
		}
	}
	return &Curve{Segments: segments}, nil
}

func splitMonotonic(seg Segment) []Segment {
	roots := seg.monotonicSplitPoints()
	if len(roots) == 0 {
		return []Segment{seg}
	}
	sortFloats(roots)
	var result []Segment
	remaining := seg
	prevU := 0.0
	for _, r := range roots {
		localU := (r - prevU) / (1 - prevU)
		left, right := remaining.splitAtU(localU)
		result = append(result, left)
		remaining = right
		prevU = r
	}
	result = append(result, remaining)
	return result
}

func sortFloats(xs []float64) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
}

// InputBounds returns [first.P0.In, last.P3.In).
func (c *Curve) InputBounds() ordinate.Interval {
	return ordinate.NewInterval(c.Segments[0].P0.In, c.Segments[len(c.Segments)-1].P3.In)
}

func (c *Curve) segmentFor(x ordinate.Ordinate) (int, error) {
	bounds := c.InputBounds()
	if !bounds.Contains(x) && !x.Equal(bounds.End()) {
		return 0, ErrOutOfBounds
	}
	for i, seg := range c.Segments {
		sb := seg.InputBounds()
		if sb.Contains(x) || (i == len(c.Segments)-1 && x.Equal(sb.End())) {
			return i, nil
		}
	}
	return 0, ErrOutOfBounds
}

// EvalAtInput solves for the containing segment and evaluates it.
func (c *Curve) EvalAtInput(x ordinate.Ordinate) (ordinate.Ordinate, error) {
	i, err := c.segmentFor(x)
	if err != nil {
		return ordinate.Zero, err
	}
	return c.Segments[i].EvalAtInput(x)
}

// DefaultLinearizeEpsilon is spec §4.C's default tolerance, 1/4096.
var DefaultLinearizeEpsilon = 1.0 / 4096.0

// Linearize approximates the curve as a LinearCurve within epsilon,
// by recursive chord subdivision: a segment is accepted once its
// chord, read at the curve's own input, is within epsilon of the
// curve's output at u = 1/4, 1/2 and 3/4 of the segment's parameter
// range (spec §4.C).
func (c *Curve) Linearize(epsilon float64) *LinearCurve {
	if epsilon <= 0 {
		epsilon = DefaultLinearizeEpsilon
	}
	var knots []Knot
	for _, seg := range c.Segments {
		pts := linearizeSegment(seg, 0, 1, epsilon, 0)
		if len(knots) > 0 {
			pts = pts[1:]
		}
		knots = append(knots, pts...)
	}
	lc, err := NewLinearCurve(knots)
	if err != nil {
		// Collapsed to fewer than two distinct knots: duplicate the
		// single point so the curve stays well-formed.
		if len(knots) == 1 {
			knots = append(knots, knots[0])
			lc, _ = NewLinearCurve(knots)
		}
	}
	return lc
}

const maxLinearizeDepth = 24

func linearizeSegment(seg Segment, u0, u1, epsilon float64, depth int) []Knot {
	in0, out0 := seg.EvalAtU(u0)
	in1, out1 := seg.EvalAtU(u1)
	mid := (u0 + u1) / 2

	flat := true
	for _, f := range []float64{0.25, 0.5, 0.75} {
		in, out := seg.EvalAtU(u0 + (u1-u0)*f)
		chordOut := (out0 + out1) / 2
		if in1 != in0 {
			chordOut = out0 + (out1-out0)*(in-in0)/(in1-in0)
		}
		if math.Abs(chordOut-out) > epsilon {
			flat = false
			break
		}
	}
	if depth >= maxLinearizeDepth || flat {
		return []Knot{
			{In: ordinate.FromFloat64(in0), Out: ordinate.FromFloat64(out0)},
			{In: ordinate.FromFloat64(in1), Out: ordinate.FromFloat64(out1)},
		}
	}
	left := linearizeSegment(seg, u0, mid, epsilon, depth+1)
	right := linearizeSegment(seg, mid, u1, epsilon, depth+1)
	return append(left, right[1:]...)
}
