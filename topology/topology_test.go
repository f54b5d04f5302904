// SPDX-License-Identifier: Apache-2.0

package topology

import (
	"errors"
	"testing"

	"github.com/wrinkles-go/wrinkles/affine"
	"github.com/wrinkles-go/wrinkles/mapping"
	"github.com/wrinkles-go/wrinkles/ordinate"
)

func iv(a, b int64) ordinate.Interval {
	return ordinate.NewInterval(ordinate.FromInt64(a), ordinate.FromInt64(b))
}

func TestNewRejectsGaps(t *testing.T) {
	segs := []mapping.Mapping{
		mapping.NewAffine(iv(0, 5), affine.Identity),
		mapping.NewAffine(iv(6, 10), affine.Identity),
	}
	if _, err := New(segs); !errors.Is(err, ErrNotContiguous) {
		t.Errorf("err = %v, want ErrNotContiguous", err)
	}
}

func TestTrimInput(t *testing.T) {
	segs := []mapping.Mapping{
		mapping.NewAffine(iv(0, 5), affine.Identity),
		mapping.NewAffine(iv(5, 10), affine.New(ordinate.FromInt64(1), ordinate.FromInt64(2))),
	}
	topo, err := New(segs)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	trimmed, err := topo.TrimInput(iv(3, 8))
	if err != nil {
		t.Fatalf("TrimInput: %v", err)
	}
	b := trimmed.InputBounds()
	if !b.Start().Equal(ordinate.FromInt64(3)) || !b.End().Equal(ordinate.FromInt64(8)) {
		t.Errorf("trimmed bounds = %v", b)
	}
}

func TestSplitAtInput(t *testing.T) {
	segs := []mapping.Mapping{
		mapping.NewAffine(iv(0, 10), affine.Identity),
	}
	topo, _ := New(segs)
	left, right, err := topo.SplitAtInput(ordinate.FromInt64(4))
	if err != nil {
		t.Fatalf("SplitAtInput: %v", err)
	}
	if !left.InputBounds().End().Equal(ordinate.FromInt64(4)) {
		t.Errorf("left end = %v, want 4", left.InputBounds().End())
	}
	if !right.InputBounds().Start().Equal(ordinate.FromInt64(4)) {
		t.Errorf("right start = %v, want 4", right.InputBounds().Start())
	}
}

func TestJoinAffineFastPath(t *testing.T) {
	// X -> Y: identity over [0,10)
	xy, _ := New([]mapping.Mapping{mapping.NewAffine(iv(0, 10), affine.Identity)})
	// Y -> Z: scale by 2, offset 1, over [0,10)
	yz, _ := New([]mapping.Mapping{mapping.NewAffine(iv(0, 10), affine.New(ordinate.FromInt64(1), ordinate.FromInt64(2)))})

	joined, err := xy.Join(yz)
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	z, err := joined.ProjectOrdinate(ordinate.FromInt64(3))
	if err != nil {
		t.Fatalf("ProjectOrdinate: %v", err)
	}
	if !z.Equal(ordinate.FromInt64(7)) {
		t.Errorf("joined(3) = %v, want 7 (2*3+1)", z)
	}
}

func TestJoinProducesEmptyOutsideOtherDomain(t *testing.T) {
	xy, _ := New([]mapping.Mapping{mapping.NewAffine(iv(0, 10), affine.Identity)})
	// Y -> Z only defined over [0,5): beyond that, X values 5..10 have no image.
	yz, _ := New([]mapping.Mapping{mapping.NewAffine(iv(0, 5), affine.Identity)})

	joined, err := xy.Join(yz)
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if _, err := joined.ProjectOrdinate(ordinate.FromInt64(7)); !errors.Is(err, mapping.ErrOutOfBounds) {
		t.Errorf("ProjectOrdinate(7) err = %v, want ErrOutOfBounds (Empty segment)", err)
	}
	ok, err := joined.ProjectOrdinate(ordinate.FromInt64(2))
	if err != nil {
		t.Fatalf("ProjectOrdinate(2): %v", err)
	}
	if !ok.Equal(ordinate.FromInt64(2)) {
		t.Errorf("ProjectOrdinate(2) = %v, want 2", ok)
	}
}

func TestInvertRoundTrip(t *testing.T) {
	segs := []mapping.Mapping{
		mapping.NewAffine(iv(0, 10), affine.New(ordinate.FromInt64(1), ordinate.FromInt64(2))),
	}
	topo, _ := New(segs)
	inv, err := topo.Invert()
	if err != nil {
		t.Fatalf("Invert: %v", err)
	}
	y, _ := topo.ProjectOrdinate(ordinate.FromInt64(3))
	x, err := inv.ProjectOrdinate(y)
	if err != nil {
		t.Fatalf("inv.ProjectOrdinate: %v", err)
	}
	if !x.Equal(ordinate.FromInt64(3)) {
		t.Errorf("round trip = %v, want 3", x)
	}
}

func TestEmptyTopologyNeverProjects(t *testing.T) {
	topo := NewEmpty(iv(0, 10))
	if _, err := topo.ProjectOrdinate(ordinate.FromInt64(5)); !errors.Is(err, mapping.ErrOutOfBounds) {
		t.Errorf("err = %v, want ErrOutOfBounds", err)
	}
	if _, err := topo.Invert(); !errors.Is(err, ErrNotInvertible) {
		t.Errorf("Invert err = %v, want ErrNotInvertible", err)
	}
}
