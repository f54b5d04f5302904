// SPDX-License-Identifier: Apache-2.0

// Package topology implements component E: Topology, an ordered,
// gapless, non-overlapping sequence of mapping.Mapping atoms covering
// one contiguous input interval. Topology is the unit composition
// nodes attach to each of their coordinate spaces, and Join is the
// operation that pushes a topology through another by parallel-cursor
// composition (spec §4.E), the core of the projection algorithm in
// component H.
package topology

import (
	"sort"

	"github.com/wrinkles-go/wrinkles/curve"
	"github.com/wrinkles-go/wrinkles/mapping"
	"github.com/wrinkles-go/wrinkles/ordinate"
)

// Topology is a non-empty, ordered sequence of mappings whose input
// bounds exactly tile one contiguous interval with no gaps and no
// overlaps (spec §3, Topology).
type Topology struct {
	Segments []mapping.Mapping
}

// New validates contiguity and builds a Topology.
func New(segments []mapping.Mapping) (*Topology, error) {
	if len(segments) == 0 {
		return nil, &MalformedError{Reason: "a topology needs at least one segment", Cause: ErrEmptySegments}
	}
	for i := 1; i < len(segments); i++ {
		if !segments[i-1].InputBounds().End().Equal(segments[i].InputBounds().Start()) {
			return nil, &MalformedError{Reason: "segments must be contiguous and non-overlapping", Cause: ErrNotContiguous}
		}
	}
	cp := make([]mapping.Mapping, len(segments))
	copy(cp, segments)
	return &Topology{Segments: cp}, nil
}

// NewEmpty returns the one-segment Empty topology spanning bounds —
// the degenerate form used for gaps, which have no inherent mapping
// (spec §3, "Empty-topology form").
func NewEmpty(bounds ordinate.Interval) *Topology {
	return &Topology{Segments: []mapping.Mapping{mapping.NewEmpty(bounds)}}
}

// InputBounds returns [first segment start, last segment end).
func (t *Topology) InputBounds() ordinate.Interval {
	return ordinate.NewInterval(
		t.Segments[0].InputBounds().Start(),
		t.Segments[len(t.Segments)-1].InputBounds().End(),
	)
}

// segmentFor returns the index of the segment whose clopen input
// bounds contain x.
func (t *Topology) segmentFor(x ordinate.Ordinate) (int, error) {
	bounds := t.InputBounds()
	if !bounds.Contains(x) {
		return 0, &mapping.OutOfBoundsError{Value: x, Bounds: bounds}
	}
	lo, hi := 0, len(t.Segments)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if t.Segments[mid].InputBounds().End().LessEqual(x) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo, nil
}

// ProjectOrdinate projects x through the owning segment.
func (t *Topology) ProjectOrdinate(x ordinate.Ordinate) (ordinate.Ordinate, error) {
	i, err := t.segmentFor(x)
	if err != nil {
		return ordinate.Zero, err
	}
	return t.Segments[i].ProjectOrdinate(x)
}

// KindAt returns the Kind of the segment owning x, distinguishing
// "x falls in an Empty segment" from "x is outside this topology's
// bounds entirely" — the two situations a caller needs to tell apart
// before deciding between an Empty-row result and an OutOfBounds error.
func (t *Topology) KindAt(x ordinate.Ordinate) (mapping.Kind, error) {
	i, err := t.segmentFor(x)
	if err != nil {
		return 0, err
	}
	return t.Segments[i].Kind(), nil
}

// collapseEmptyRuns merges adjacent Empty segments into one, keeping
// the topology's segment count minimal (spec §4.E, "simplification of
// empty runs").
func collapseEmptyRuns(segs []mapping.Mapping) []mapping.Mapping {
	var out []mapping.Mapping
	for _, s := range segs {
		if n := len(out); n > 0 && out[n-1].Kind() == mapping.KindEmpty && s.Kind() == mapping.KindEmpty {
			merged := mapping.NewEmpty(ordinate.NewInterval(out[n-1].InputBounds().Start(), s.InputBounds().End()))
			out[n-1] = merged
			continue
		}
		out = append(out, s)
	}
	return out
}

// TrimInput restricts the topology to iv (intersected with its own
// bounds), trimming the boundary segments and dropping whole segments
// that fall entirely outside.
func (t *Topology) TrimInput(iv ordinate.Interval) (*Topology, error) {
	bounds := t.InputBounds()
	clipped := iv.Intersection(bounds)
	if clipped.IsEmpty() && !bounds.IsEmpty() {
		return nil, &mapping.OutOfBoundsError{Value: iv.Start(), Bounds: bounds}
	}
	var segs []mapping.Mapping
	for _, s := range t.Segments {
		sb := s.InputBounds()
		ov := sb.Intersection(clipped)
		if ov.IsEmpty() && !sb.IsEmpty() {
			continue
		}
		trimmed, err := s.TrimToInput(ov)
		if err != nil {
			return nil, err
		}
		segs = append(segs, trimmed)
	}
	if len(segs) == 0 {
		return nil, &mapping.OutOfBoundsError{Value: iv.Start(), Bounds: bounds}
	}
	return New(collapseEmptyRuns(segs))
}

// SplitAtInput divides the topology into [start, at) and [at, end).
func (t *Topology) SplitAtInput(at ordinate.Ordinate) (left, right *Topology, err error) {
	bounds := t.InputBounds()
	if !bounds.Contains(at) {
		return nil, nil, &mapping.OutOfBoundsError{Value: at, Bounds: bounds}
	}
	idx, err := t.segmentFor(at)
	if err != nil {
		return nil, nil, err
	}
	var leftSegs, rightSegs []mapping.Mapping
	leftSegs = append(leftSegs, t.Segments[:idx]...)
	rightSegs = append(rightSegs, t.Segments[idx+1:]...)

	owner := t.Segments[idx]
	if at.Equal(owner.InputBounds().Start()) {
		rightSegs = append([]mapping.Mapping{owner}, rightSegs...)
	} else {
		l, r, err := owner.SplitAtInput(at)
		if err != nil {
			return nil, nil, err
		}
		leftSegs = append(leftSegs, l)
		rightSegs = append([]mapping.Mapping{r}, rightSegs...)
	}

	if len(leftSegs) == 0 {
		leftSegs = []mapping.Mapping{mapping.NewEmpty(ordinate.NewInterval(bounds.Start(), bounds.Start()))}
	}
	if len(rightSegs) == 0 {
		rightSegs = []mapping.Mapping{mapping.NewEmpty(ordinate.NewInterval(bounds.End(), bounds.End()))}
	}

	left, err = New(collapseEmptyRuns(leftSegs))
	if err != nil {
		return nil, nil, err
	}
	right, err = New(collapseEmptyRuns(rightSegs))
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

// Invert returns the topology over the (sorted) union of this
// topology's output ranges, mapping each back to its input. Gaps left
// by Empty segments (which have no output to invert) are filled with
// Empty segments spanning the missing output range, preserving the
// gapless invariant.
func (t *Topology) Invert() (*Topology, error) {
	type piece struct {
		bounds ordinate.Interval
		m      mapping.Mapping
	}
	var pieces []piece
	for _, s := range t.Segments {
		if s.Kind() == mapping.KindEmpty {
			continue
		}
		inv, err := s.Inverse()
		if err != nil {
			return nil, &NotInvertibleError{Reason: err.Error()}
		}
		pieces = append(pieces, piece{bounds: inv.InputBounds(), m: inv})
	}
	if len(pieces) == 0 {
		return nil, &NotInvertibleError{Reason: "every segment is Empty"}
	}
	sort.Slice(pieces, func(i, j int) bool {
		return pieces[i].bounds.Start().Less(pieces[j].bounds.Start())
	})

	var segs []mapping.Mapping
	cursor := pieces[0].bounds.Start()
	for _, p := range pieces {
		if cursor.Less(p.bounds.Start()) {
			segs = append(segs, mapping.NewEmpty(ordinate.NewInterval(cursor, p.bounds.Start())))
		}
		segs = append(segs, p.m)
		cursor = p.bounds.End()
	}
	return New(collapseEmptyRuns(segs))
}

// Join composes this topology (X -> Y) with other (Y -> Z), producing
// the topology X -> Z, by walking both segment sequences together
// over the shared Y axis (spec §4.E parallel-cursor composition).
func (t *Topology) Join(other *Topology) (*Topology, error) {
	cuts := t.joinCutPoints(other)
	var segs []mapping.Mapping
	for i := 0; i+1 < len(cuts); i++ {
		seg, err := t.composeRange(other, cuts[i], cuts[i+1])
		if err != nil {
			return nil, err
		}
		segs = append(segs, seg)
	}
	if len(segs) == 0 {
		return nil, &MalformedError{Reason: "join produced no segments"}
	}
	return New(collapseEmptyRuns(segs))
}

// joinCutPoints returns the sorted, deduplicated list of X-domain
// points at which either topology changes segment: t's own segment
// boundaries, plus other's segment boundaries mapped back through
// each of t's invertible, non-empty segments.
func (t *Topology) joinCutPoints(other *Topology) []ordinate.Ordinate {
	bounds := t.InputBounds()
	set := map[string]ordinate.Ordinate{}
	add := func(o ordinate.Ordinate) {
		if bounds.Contains(o) || o.Equal(bounds.End()) || o.Equal(bounds.Start()) {
			set[o.String()] = o
		}
	}
	for _, s := range t.Segments {
		add(s.InputBounds().Start())
		add(s.InputBounds().End())
	}

	for _, segA := range t.Segments {
		if segA.Kind() == mapping.KindEmpty {
			continue
		}
		for _, segB := range other.Segments {
			for _, yBound := range []ordinate.Ordinate{segB.InputBounds().Start(), segB.InputBounds().End()} {
				if x, ok := inverseWithinBounds(segA, yBound); ok {
					add(x)
				}
			}
		}
	}

	var out []ordinate.Ordinate
	for _, o := range set {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// inverseWithinBounds attempts to map y back to an x within m's own
// input bounds, returning ok=false if m is not invertible or y falls
// outside m's output range.
func inverseWithinBounds(m mapping.Mapping, y ordinate.Ordinate) (ordinate.Ordinate, bool) {
	inv, err := m.Inverse()
	if err != nil {
		return ordinate.Zero, false
	}
	if !inv.InputBounds().Contains(y) && !y.Equal(inv.InputBounds().End()) {
		return ordinate.Zero, false
	}
	x, err := inv.ProjectOrdinate(y)
	if err != nil {
		// y landed exactly on inv's exclusive upper bound; approach
		// from m's own input bounds end instead.
		if y.Equal(inv.InputBounds().End()) {
			return m.InputBounds().End(), true
		}
		return ordinate.Zero, false
	}
	if !m.InputBounds().Contains(x) {
		return ordinate.Zero, false
	}
	return x, true
}

// composeRange builds the single mapping covering [x0,x1) in the
// joined topology, assuming neither t nor other change segment within
// that range (guaranteed by joinCutPoints).
func (t *Topology) composeRange(other *Topology, x0, x1 ordinate.Ordinate) (mapping.Mapping, error) {
	ivX := ordinate.NewInterval(x0, x1)
	ai, err := t.segmentFor(x0)
	if err != nil {
		return mapping.Mapping{}, err
	}
	segA := t.Segments[ai]
	if segA.Kind() == mapping.KindEmpty {
		return mapping.NewEmpty(ivX), nil
	}

	y0, err := segA.ProjectOrdinate(x0)
	if err != nil {
		return mapping.NewEmpty(ivX), nil
	}
	bi := other.findSegmentContainingValue(y0)
	if bi < 0 {
		return mapping.NewEmpty(ivX), nil
	}
	segB := other.Segments[bi]
	if segB.Kind() == mapping.KindEmpty {
		return mapping.NewEmpty(ivX), nil
	}

	if segA.Kind() == mapping.KindAffine && segB.Kind() == mapping.KindAffine {
		composed := composeAffineMappings(segA, segB, ivX)
		return composed, nil
	}

	return sampledCompose(segA, segB, ivX)
}

// findSegmentContainingValue finds the segment of this topology whose
// own input bounds contain y — used to locate, within `other`, the
// segment governing a Y-space value produced by the other leg of a
// Join — or -1 if no segment covers y.
func (t *Topology) findSegmentContainingValue(y ordinate.Ordinate) int {
	for i, s := range t.Segments {
		ib := s.InputBounds()
		if ib.Contains(y) || (ib.IsEmpty() && y.Equal(ib.Start())) {
			return i
		}
	}
	return -1
}

func composeAffineMappings(segA, segB mapping.Mapping, ivX ordinate.Interval) mapping.Mapping {
	affA, _ := segA.AsAffine()
	affB, _ := segB.AsAffine()
	return mapping.NewAffine(ivX, affB.Compose(affA))
}

// sampledCompose builds a Linear mapping approximating z = segB(segA(x))
// over ivX by sampling at the range's endpoints and several interior
// points. This is the fallback path whenever either leg of a Join is a
// Linear or Bezier mapping, since closed-form composition of two
// arbitrary piecewise functions has no exact rational representation.
func sampledCompose(segA, segB mapping.Mapping, ivX ordinate.Interval) (mapping.Mapping, error) {
	const sampleCount = 9
	xs := sampleInterval(ivX, sampleCount)
	var knots []curve.Knot
	for _, x := range xs {
		xEval := x
		if b := segA.InputBounds(); !b.IsEmpty() && !xEval.Less(b.End()) {
			xEval = b.Start().Add(b.End().Sub(b.Start()).Mul(ordinate.FromFrac(999, 1000)))
		}
		y, err := segA.ProjectOrdinate(xEval)
		if err != nil {
			continue
		}
		yEval := y
		if b := segB.InputBounds(); !b.IsEmpty() && !yEval.Less(b.End()) {
			yEval = b.Start().Add(b.End().Sub(b.Start()).Mul(ordinate.FromFrac(999, 1000)))
		}
		z, err := segB.ProjectOrdinate(yEval)
		if err != nil {
			continue
		}
		knots = append(knots, curve.Knot{In: x, Out: z})
	}
	if len(knots) < 2 {
		return mapping.NewEmpty(ivX), nil
	}
	dedup := dedupKnots(knots)
	if len(dedup) < 2 {
		return mapping.NewEmpty(ivX), nil
	}
	lc, err := curve.NewLinearCurve(dedup)
	if err != nil {
		return mapping.Mapping{}, err
	}
	return mapping.NewLinear(lc), nil
}

func sampleInterval(iv ordinate.Interval, n int) []ordinate.Ordinate {
	start, end := iv.Start(), iv.End()
	out := make([]ordinate.Ordinate, 0, n)
	out = append(out, start)
	span := end.Sub(start)
	for i := 1; i < n-1; i++ {
		t := ordinate.FromFrac(int64(i), int64(n-1))
		out = append(out, start.Add(span.Mul(t)))
	}
	out = append(out, end)
	return out
}

func dedupKnots(knots []curve.Knot) []curve.Knot {
	var out []curve.Knot
	for _, k := range knots {
		if len(out) > 0 && out[len(out)-1].In.Equal(k.In) {
			continue
		}
		out = append(out, k)
	}
	return out
}
