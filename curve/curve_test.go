// SPDX-License-Identifier: Apache-2.0

package curve

import (
	"math"
	"testing"

	"github.com/wrinkles-go/wrinkles/ordinate"
)

func TestLinearCurveEvalAndInverse(t *testing.T) {
	c, err := NewLinearCurve([]Knot{
		{In: ordinate.FromInt64(0), Out: ordinate.FromInt64(0)},
		{In: ordinate.FromInt64(10), Out: ordinate.FromInt64(20)},
	})
	if err != nil {
		t.Fatalf("NewLinearCurve: %v", err)
	}
	got, err := c.EvalAtInput(ordinate.FromInt64(5))
	if err != nil {
		t.Fatalf("EvalAtInput: %v", err)
	}
	if !got.Equal(ordinate.FromInt64(10)) {
		t.Errorf("EvalAtInput(5) = %v, want 10", got)
	}

	inv, err := c.Inverse()
	if err != nil {
		t.Fatalf("Inverse: %v", err)
	}
	back, err := inv.EvalAtInput(ordinate.FromInt64(10))
	if err != nil {
		t.Fatalf("inverse EvalAtInput: %v", err)
	}
	if !back.Equal(ordinate.FromInt64(5)) {
		t.Errorf("inverse round trip = %v, want 5", back)
	}
}

func TestLinearCurveRejectsNonMonotonic(t *testing.T) {
	_, err := NewLinearCurve([]Knot{
		{In: ordinate.FromInt64(0), Out: ordinate.FromInt64(0)},
		{In: ordinate.FromInt64(0), Out: ordinate.FromInt64(1)},
	})
	if err != ErrNotMonotonic {
		t.Errorf("err = %v, want ErrNotMonotonic", err)
	}
}

func TestLinearCurveTrim(t *testing.T) {
	c, _ := NewLinearCurve([]Knot{
		{In: ordinate.FromInt64(0), Out: ordinate.FromInt64(0)},
		{In: ordinate.FromInt64(10), Out: ordinate.FromInt64(100)},
	})
	trimmed, err := c.TrimToInput(ordinate.NewInterval(ordinate.FromInt64(2), ordinate.FromInt64(8)))
	if err != nil {
		t.Fatalf("TrimToInput: %v", err)
	}
	b := trimmed.InputBounds()
	if !b.Start().Equal(ordinate.FromInt64(2)) || !b.End().Equal(ordinate.FromInt64(8)) {
		t.Errorf("trimmed bounds = %v", b)
	}
	out, _ := trimmed.EvalAtInput(ordinate.FromInt64(2))
	if !out.Equal(ordinate.FromInt64(20)) {
		t.Errorf("trimmed start out = %v, want 20", out)
	}
}

// TestBezierEvalEndpoints checks that a bezier segment passes through
// its own endpoints at u=0 and u=1.
func TestBezierEvalEndpoints(t *testing.T) {
	seg := Segment{
		P0: Point{In: ordinate.FromInt64(0), Out: ordinate.FromInt64(0)},
		P1: Point{In: ordinate.FromInt64(1), Out: ordinate.FromInt64(0)},
		P2: Point{In: ordinate.FromInt64(2), Out: ordinate.FromInt64(3)},
		P3: Point{In: ordinate.FromInt64(3), Out: ordinate.FromInt64(3)},
	}
	in0, out0 := seg.EvalAtU(0)
	if in0 != 0 || out0 != 0 {
		t.Errorf("EvalAtU(0) = (%v,%v), want (0,0)", in0, out0)
	}
	in1, out1 := seg.EvalAtU(1)
	if in1 != 3 || out1 != 3 {
		t.Errorf("EvalAtU(1) = (%v,%v), want (3,3)", in1, out1)
	}
}

// TestBezierSolveUForIn checks that solving for u at a known input
// reproduces the expected output, for a monotonic-by-construction ease curve.
func TestBezierSolveUForIn(t *testing.T) {
	// Spec §8 scenario 5: a bezier retime ease curve monotonic in input.
	seg := Segment{
		P0: Point{In: ordinate.FromInt64(0), Out: ordinate.FromInt64(0)},
		P1: Point{In: ordinate.FromInt64(0), Out: ordinate.FromInt64(0)},
		P2: Point{In: ordinate.FromInt64(10), Out: ordinate.FromInt64(10)},
		P3: Point{In: ordinate.FromInt64(10), Out: ordinate.FromInt64(10)},
	}
	curve, err := NewCurveFromPoints([]Segment{seg})
	if err != nil {
		t.Fatalf("NewCurveFromPoints: %v", err)
	}
	mid, err := curve.EvalAtInput(ordinate.FromInt64(5))
	if err != nil {
		t.Fatalf("EvalAtInput: %v", err)
	}
	midF := mid.ToFloat64()
	if math.Abs(midF-5) > 0.5 {
		t.Errorf("EvalAtInput(5) = %v, want close to 5 (symmetric ease)", midF)
	}

	start, err := curve.EvalAtInput(ordinate.FromInt64(0))
	if err != nil {
		t.Fatalf("EvalAtInput(0): %v", err)
	}
	if math.Abs(start.ToFloat64()) > 1e-6 {
		t.Errorf("EvalAtInput(0) = %v, want 0", start.ToFloat64())
	}

	end, err := curve.EvalAtInput(ordinate.FromInt64(10))
	if err != nil {
		t.Fatalf("EvalAtInput(10): %v", err)
	}
	if math.Abs(end.ToFloat64()-10) > 1e-6 {
		t.Errorf("EvalAtInput(10) = %v, want 10", end.ToFloat64())
	}
}

// TestBezierMonotonicSplit checks that a segment with a non-monotonic
// input (an S-curve with a local extremum in "in") gets split into
// multiple monotonic pieces joining C0.
func TestBezierMonotonicSplit(t *testing.T) {
	seg := Segment{
		P0: Point{In: ordinate.FromInt64(0), Out: ordinate.FromInt64(0)},
		P1: Point{In: ordinate.FromInt64(10), Out: ordinate.FromInt64(2)},
		P2: Point{In: ordinate.FromInt64(-5), Out: ordinate.FromInt64(8)},
		P3: Point{In: ordinate.FromInt64(5), Out: ordinate.FromInt64(10)},
	}
	curve, err := NewCurveFromPoints([]Segment{seg})
	if err != nil {
		t.Fatalf("NewCurveFromPoints: %v", err)
	}
	if len(curve.Segments) < 2 {
		t.Errorf("expected a non-monotonic segment to split, got %d piece(s)", len(curve.Segments))
	}
	for i := 1; i < len(curve.Segments); i++ {
		if !curve.Segments[i-1].P3.In.Equal(curve.Segments[i].P0.In) {
			t.Errorf("segments %d and %d do not join C0", i-1, i)
		}
	}
}

func TestBezierLinearize(t *testing.T) {
	seg := Segment{
		P0: Point{In: ordinate.FromInt64(0), Out: ordinate.FromInt64(0)},
		P1: Point{In: ordinate.FromInt64(3), Out: ordinate.FromInt64(0)},
		P2: Point{In: ordinate.FromInt64(7), Out: ordinate.FromInt64(10)},
		P3: Point{In: ordinate.FromInt64(10), Out: ordinate.FromInt64(10)},
	}
	curve, err := NewCurveFromPoints([]Segment{seg})
	if err != nil {
		t.Fatalf("NewCurveFromPoints: %v", err)
	}
	lin := curve.Linearize(DefaultLinearizeEpsilon)
	if lin == nil {
		t.Fatal("Linearize returned nil")
	}
	if len(lin.Knots) < 2 {
		t.Fatalf("linearized curve has too few knots: %d", len(lin.Knots))
	}

	// Sample a handful of input points and confirm the linear
	// approximation tracks the true curve within a small multiple of
	// epsilon (accumulated over the chain, not just one segment).
	for _, x := range []int64{1, 2, 4, 6, 8, 9} {
		xo := ordinate.FromInt64(x)
		want, err := curve.EvalAtInput(xo)
		if err != nil {
			t.Fatalf("EvalAtInput(%d): %v", x, err)
		}
		got, err := lin.EvalAtInput(xo)
		if err != nil {
			t.Fatalf("linearized EvalAtInput(%d): %v", x, err)
		}
		if math.Abs(want.ToFloat64()-got.ToFloat64()) > 0.1 {
			t.Errorf("x=%d: linearized=%v true=%v diverge", x, got.ToFloat64(), want.ToFloat64())
		}
	}
}

func TestDualProductRule(t *testing.T) {
	// d/dx[x^2] at x=3 is 6.
	x := Var(3)
	y := x.Mul(x)
	if y.Val != 9 {
		t.Errorf("Val = %v, want 9", y.Val)
	}
	if y.Eps != 6 {
		t.Errorf("Eps = %v, want 6", y.Eps)
	}
}
