// SPDX-License-Identifier: Apache-2.0

// Package projection implements component H: the projection builder.
// BuildProjection walks every branch reachable downward from a single
// source space and reduces the tree to a segment table: an ordered
// list of non-overlapping input-bounds rows, each carrying one mapping
// per simultaneously-visible destination (spec §4.H). ProjectionTo then
// reduces that table to a single topology for one specific destination,
// the second half of spec §6's build_projection / projection_to pair.
package projection

import (
	"sort"

	"github.com/wrinkles-go/wrinkles/affine"
	"github.com/wrinkles-go/wrinkles/composition"
	"github.com/wrinkles-go/wrinkles/mapping"
	"github.com/wrinkles-go/wrinkles/ordinate"
	"github.com/wrinkles-go/wrinkles/topology"
	"github.com/wrinkles-go/wrinkles/topomap"
)

// MappingEntry is one destination visible over a Row's input bounds,
// carrying the composed topology from the table's source space to
// that destination, restricted to the row.
type MappingEntry struct {
	Dest composition.Space
	Topo *topology.Topology
}

// Row is one non-overlapping slice of the source space's input bounds,
// carrying every destination simultaneously visible over that slice —
// more than one only at a fan-out such as a Stack (spec §8 scenario 4).
type Row struct {
	InputBounds ordinate.Interval
	Mappings    []MappingEntry
}

// Table is the segment table build_projection produces: the source
// space plus its ordered, non-overlapping Rows (spec §4.H, §6).
type Table struct {
	Src  composition.Space
	Rows []Row
}

// Projection is a single topology from one space to another, reduced
// from a Table for one specific destination by ProjectionTo (spec's
// projection_to), reusable for any number of point/interval queries.
type Projection struct {
	From, To composition.Space
	Topo     *topology.Topology
}

// Builder holds the topomap.Map it was created from. The tree walk
// does not consult the map (it follows composition.DirectEdges
// directly), and Builder exposes no query methods over it.
type Builder struct {
	m *topomap.Map
}

// NewBuilder wraps a built topomap.Map (spec's build_topological_map).
func NewBuilder(m *topomap.Map) *Builder {
	return &Builder{m: m}
}

// BuildProjection walks every branch reachable downward from src and
// returns the resulting segment table (spec's build_projection). It
// takes only a source space: unlike the single-destination reduction
// in ProjectionTo, this discovers every simultaneously-visible
// destination rather than requiring the caller to already know it.
func (b *Builder) BuildProjection(src composition.Space) (*Table, error) {
	bounds, err := spaceBounds(src)
	if err != nil {
		return nil, err
	}
	identity, err := topology.New([]mapping.Mapping{mapping.NewAffine(bounds, affine.Identity)})
	if err != nil {
		return nil, err
	}
	rows, err := expand(src, identity)
	if err != nil {
		return nil, err
	}
	return &Table{Src: src, Rows: rows}, nil
}

// spaceBounds returns the domain a space's own coordinate system
// spans, read off its node's intrinsic topology (the space this node
// exposes to its own children or media).
func spaceBounds(s composition.Space) (ordinate.Interval, error) {
	topo, err := s.Node.IntrinsicTopology()
	if err != nil {
		return ordinate.Interval{}, err
	}
	return topo.InputBounds(), nil
}

// expand is the recursive tree walk at the heart of build_projection:
// given the topology acc (src -> space, restricted to the branch under
// consideration), it either terminates the branch at space (a leaf, or
// any non-output space such as a Clip's media) or follows space's
// DirectEdges one level further and merges the children's rows back
// into one table for this level (spec §4.H steps: cut points, then
// per-segment mapping lists).
func expand(space composition.Space, acc *topology.Topology) ([]Row, error) {
	if space.Name != composition.SpaceOutput {
		return []Row{{InputBounds: acc.InputBounds(), Mappings: []MappingEntry{{Dest: space, Topo: acc}}}}, nil
	}
	edges, err := composition.DirectEdges(space.Node)
	if err != nil {
		return nil, err
	}
	if len(edges) == 0 {
		return []Row{{InputBounds: acc.InputBounds(), Mappings: []MappingEntry{{Dest: space, Topo: acc}}}}, nil
	}

	var rowSets [][]Row
	for _, e := range edges {
		joined, err := acc.Join(e.Topo)
		if err != nil {
			return nil, err
		}
		for _, run := range nonEmptyRuns(joined) {
			childRows, err := expand(e.To, run)
			if err != nil {
				return nil, err
			}
			rowSets = append(rowSets, childRows)
		}
	}
	if len(rowSets) == 0 {
		// None of space's edges cover any part of acc's domain — the
		// branch is as opaque as a leaf from here.
		return []Row{{InputBounds: acc.InputBounds(), Mappings: []MappingEntry{{Dest: space, Topo: acc}}}}, nil
	}
	return mergeRows(acc.InputBounds(), rowSets)
}

// nonEmptyRuns splits a topology into the maximal contiguous runs of
// non-Empty segments, each rebuilt as its own Topology — the parts of
// a Join's result where the destination actually has something to say.
func nonEmptyRuns(t *topology.Topology) []*topology.Topology {
	var runs []*topology.Topology
	var cur []mapping.Mapping
	flush := func() {
		if len(cur) == 0 {
			return
		}
		if run, err := topology.New(cur); err == nil {
			runs = append(runs, run)
		}
		cur = nil
	}
	for _, seg := range t.Segments {
		if seg.Kind() == mapping.KindEmpty {
			flush()
			continue
		}
		cur = append(cur, seg)
	}
	flush()
	return runs
}

// mergeRows combines the row sets produced by every direct child of
// one node into a single ordered, non-overlapping Row list spanning
// bounds: it collects every row boundary as a cut point, then for each
// resulting segment gathers the mapping entries of every row (from any
// child) that fully covers it — the fan-out case produces more than
// one entry per segment (spec §8 scenario 4).
func mergeRows(bounds ordinate.Interval, rowSets [][]Row) ([]Row, error) {
	seen := map[string]ordinate.Ordinate{}
	add := func(o ordinate.Ordinate) { seen[o.String()] = o }
	add(bounds.Start())
	add(bounds.End())
	for _, rows := range rowSets {
		for _, r := range rows {
			add(r.InputBounds.Start())
			add(r.InputBounds.End())
		}
	}
	cuts := make([]ordinate.Ordinate, 0, len(seen))
	for _, o := range seen {
		cuts = append(cuts, o)
	}
	sort.Slice(cuts, func(i, j int) bool { return cuts[i].Less(cuts[j]) })

	var out []Row
	for i := 0; i+1 < len(cuts); i++ {
		seg := ordinate.NewInterval(cuts[i], cuts[i+1])
		var entries []MappingEntry
		for _, rows := range rowSets {
			for _, r := range rows {
				if !r.InputBounds.ContainsInterval(seg) {
					continue
				}
				for _, me := range r.Mappings {
					trimmed, err := me.Topo.TrimInput(seg)
					if err != nil {
						return nil, err
					}
					entries = append(entries, MappingEntry{Dest: me.Dest, Topo: trimmed})
				}
			}
		}
		// entries stays nil when no child row covers this segment at
		// all — that slice of bounds is a genuine gap, carried through
		// as a Row with no visible destination rather than dropped, so
		// the table keeps tiling bounds gaplessly.
		out = append(out, Row{InputBounds: seg, Mappings: entries})
	}
	return out, nil
}

// ProjectionTo reduces a Table to a single topology for dst (spec's
// projection_to): rows where dst is visible contribute their trimmed
// segment, rows where it is occluded or absent contribute an Empty
// segment, so the resulting topology stays gapless over the table's
// full source domain.
func (b *Builder) ProjectionTo(table *Table, dst composition.Space) (*Projection, error) {
	var segs []mapping.Mapping
	found := false
	for _, row := range table.Rows {
		matched := false
		for _, me := range row.Mappings {
			if me.Dest == dst {
				segs = append(segs, me.Topo.Segments...)
				matched = true
				found = true
				break
			}
		}
		if !matched {
			segs = append(segs, mapping.NewEmpty(row.InputBounds))
		}
	}
	if !found {
		return nil, &UnreachableError{From: table.Src, To: dst}
	}
	topo, err := topology.New(segs)
	if err != nil {
		return nil, err
	}
	return &Projection{From: table.Src, To: dst, Topo: topo}, nil
}

// ProjectInstantaneous evaluates the projection at a single ordinate
// (spec's project_instantaneous_cc), returning OutOfBoundsError or
// EmptyError as appropriate rather than conflating the two.
func (p *Projection) ProjectInstantaneous(x ordinate.Ordinate) (ordinate.Ordinate, error) {
	kind, err := p.Topo.KindAt(x)
	if err != nil {
		return ordinate.Zero, &OutOfBoundsError{Value: x, Bounds: p.Topo.InputBounds()}
	}
	if kind == mapping.KindEmpty {
		return ordinate.Zero, &EmptyError{Value: x}
	}
	return p.Topo.ProjectOrdinate(x)
}

// ProjectInterval projects iv end to end (spec's project_interval_cc).
// If iv straddles both Empty and non-Empty regions, the returned
// interval spans only the reachable sub-portion's image; callers
// needing per-segment detail should walk p.Topo.Segments directly.
func (p *Projection) ProjectInterval(iv ordinate.Interval) (ordinate.Interval, error) {
	bounds := p.Topo.InputBounds()
	clipped := iv.Intersection(bounds)
	if clipped.IsEmpty() && !bounds.IsEmpty() {
		return ordinate.Interval{}, &OutOfBoundsError{Value: iv.Start(), Bounds: bounds}
	}

	var lo, hi ordinate.Ordinate
	haveLo := false
	for _, seg := range p.Topo.Segments {
		ov := seg.InputBounds().Intersection(clipped)
		if ov.IsEmpty() && !seg.InputBounds().IsEmpty() {
			continue
		}
		if seg.Kind() == mapping.KindEmpty {
			continue
		}
		segOut, err := seg.ProjectInterval(ov)
		if err != nil {
			continue
		}
		if !haveLo {
			lo, hi = segOut.Start(), segOut.End()
			haveLo = true
			continue
		}
		if segOut.Start().Less(lo) {
			lo = segOut.Start()
		}
		if hi.Less(segOut.End()) {
			hi = segOut.End()
		}
	}
	if !haveLo {
		return ordinate.Interval{}, &EmptyError{Value: clipped.Start()}
	}
	return ordinate.NewInterval(lo, hi), nil
}

// OrdinateToIndex projects x to the destination space and converts to
// a discrete sample index, requiring the destination to be a Clip's
// media space carrying a Sampling (spec's ordinate_to_index).
func (p *Projection) OrdinateToIndex(x ordinate.Ordinate) (int64, error) {
	y, err := p.ProjectInstantaneous(x)
	if err != nil {
		return 0, err
	}
	clip, ok := p.To.Node.(*composition.Clip)
	if !ok || clip.Sampling == nil {
		return 0, &NoDiscreteInfoError{Space: p.To}
	}
	return clip.Sampling.IndexAt(y)
}

// IndexToInterval converts a destination-space discrete index back to
// its continuous media interval (spec's index_to_interval) — it does
// not itself run the projection, since the destination sampling alone
// determines the answer.
func (p *Projection) IndexToInterval(i int64) (ordinate.Interval, error) {
	clip, ok := p.To.Node.(*composition.Clip)
	if !ok || clip.Sampling == nil {
		return ordinate.Interval{}, &NoDiscreteInfoError{Space: p.To}
	}
	return clip.Sampling.IntervalOf(i), nil
}
