// SPDX-License-Identifier: Apache-2.0

package mapping

import (
	"errors"
	"testing"

	"github.com/wrinkles-go/wrinkles/affine"
	"github.com/wrinkles-go/wrinkles/curve"
	"github.com/wrinkles-go/wrinkles/ordinate"
)

func TestAffineMappingProject(t *testing.T) {
	bounds := ordinate.NewInterval(ordinate.FromInt64(0), ordinate.FromInt64(10))
	m := NewAffine(bounds, affine.New(ordinate.Zero, ordinate.FromInt64(2)))

	got, err := m.ProjectOrdinate(ordinate.FromInt64(3))
	if err != nil {
		t.Fatalf("ProjectOrdinate: %v", err)
	}
	if !got.Equal(ordinate.FromInt64(6)) {
		t.Errorf("got %v, want 6", got)
	}

	if _, err := m.ProjectOrdinate(ordinate.FromInt64(10)); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("at upper bound: err = %v, want ErrOutOfBounds (clopen)", err)
	}
}

func TestEmptyMappingNeverProjects(t *testing.T) {
	m := NewEmpty(ordinate.NewInterval(ordinate.FromInt64(0), ordinate.FromInt64(5)))
	if _, err := m.ProjectOrdinate(ordinate.FromInt64(2)); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Empty ProjectOrdinate err = %v, want ErrOutOfBounds", err)
	}
	if _, err := m.Inverse(); !errors.Is(err, ErrNotInvertible) {
		t.Errorf("Empty Inverse err = %v, want ErrNotInvertible", err)
	}
}

func TestAffineMappingInverse(t *testing.T) {
	bounds := ordinate.NewInterval(ordinate.FromInt64(0), ordinate.FromInt64(10))
	m := NewAffine(bounds, affine.New(ordinate.FromInt64(1), ordinate.FromInt64(2)))
	inv, err := m.Inverse()
	if err != nil {
		t.Fatalf("Inverse: %v", err)
	}
	y, _ := m.ProjectOrdinate(ordinate.FromInt64(4))
	x, err := inv.ProjectOrdinate(y)
	if err != nil {
		t.Fatalf("inverse ProjectOrdinate: %v", err)
	}
	if !x.Equal(ordinate.FromInt64(4)) {
		t.Errorf("round trip = %v, want 4", x)
	}
}

func TestLinearMappingTrimAndSplit(t *testing.T) {
	lc, _ := curve.NewLinearCurve([]curve.Knot{
		{In: ordinate.FromInt64(0), Out: ordinate.FromInt64(0)},
		{In: ordinate.FromInt64(10), Out: ordinate.FromInt64(100)},
	})
	m := NewLinear(lc)

	left, right, err := m.SplitAtInput(ordinate.FromInt64(4))
	if err != nil {
		t.Fatalf("SplitAtInput: %v", err)
	}
	if !left.InputBounds().End().Equal(ordinate.FromInt64(4)) {
		t.Errorf("left end = %v, want 4", left.InputBounds().End())
	}
	if !right.InputBounds().Start().Equal(ordinate.FromInt64(4)) {
		t.Errorf("right start = %v, want 4", right.InputBounds().Start())
	}

	rOut, err := right.ProjectOrdinate(ordinate.FromInt64(4))
	if err != nil {
		t.Fatalf("right ProjectOrdinate: %v", err)
	}
	if !rOut.Equal(ordinate.FromInt64(40)) {
		t.Errorf("right(4) = %v, want 40", rOut)
	}
}

func TestBezierMappingInverseRoundTrip(t *testing.T) {
	seg := curve.Segment{
		P0: curve.Point{In: ordinate.FromInt64(0), Out: ordinate.FromInt64(0)},
		P1: curve.Point{In: ordinate.FromInt64(3), Out: ordinate.FromInt64(1)},
		P2: curve.Point{In: ordinate.FromInt64(7), Out: ordinate.FromInt64(9)},
		P3: curve.Point{In: ordinate.FromInt64(10), Out: ordinate.FromInt64(10)},
	}
	bc, err := curve.NewCurveFromPoints([]curve.Segment{seg})
	if err != nil {
		t.Fatalf("NewCurveFromPoints: %v", err)
	}
	m := NewBezier(bc)

	inv, err := m.Inverse()
	if err != nil {
		t.Fatalf("Inverse: %v", err)
	}
	if inv.Kind() != KindLinear {
		t.Errorf("Bezier Inverse kind = %v, want Linear (linearize-then-invert)", inv.Kind())
	}

	y, err := m.ProjectOrdinate(ordinate.FromInt64(5))
	if err != nil {
		t.Fatalf("ProjectOrdinate: %v", err)
	}
	x, err := inv.ProjectOrdinate(y)
	if err != nil {
		t.Fatalf("inverse ProjectOrdinate: %v", err)
	}
	if diff := x.Sub(ordinate.FromInt64(5)); diff.ToFloat64() > 0.05 || diff.ToFloat64() < -0.05 {
		t.Errorf("round trip = %v, want ~5 (linearized approximation)", x)
	}
}

func TestBezierMappingNonMonotonicOutputNotInvertible(t *testing.T) {
	seg := curve.Segment{
		P0: curve.Point{In: ordinate.FromInt64(0), Out: ordinate.FromInt64(0)},
		P1: curve.Point{In: ordinate.FromInt64(3), Out: ordinate.FromInt64(10)},
		P2: curve.Point{In: ordinate.FromInt64(7), Out: ordinate.FromInt64(-10)},
		P3: curve.Point{In: ordinate.FromInt64(10), Out: ordinate.FromInt64(0)},
	}
	bc, err := curve.NewCurveFromPoints([]curve.Segment{seg})
	if err != nil {
		t.Fatalf("NewCurveFromPoints: %v", err)
	}
	m := NewBezier(bc)

	if _, err := m.Inverse(); !errors.Is(err, ErrNotInvertible) {
		t.Errorf("non-monotonic-output Bezier Inverse err = %v, want ErrNotInvertible", err)
	}
}

func TestProjectIntervalClipsToBounds(t *testing.T) {
	bounds := ordinate.NewInterval(ordinate.FromInt64(0), ordinate.FromInt64(10))
	m := NewAffine(bounds, affine.New(ordinate.Zero, ordinate.FromInt64(1)))
	got, err := m.ProjectInterval(ordinate.NewInterval(ordinate.FromInt64(-5), ordinate.FromInt64(5)))
	if err != nil {
		t.Fatalf("ProjectInterval: %v", err)
	}
	want := ordinate.NewInterval(ordinate.FromInt64(0), ordinate.FromInt64(5))
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
