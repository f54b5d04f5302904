// SPDX-License-Identifier: Apache-2.0

// Package composition implements component F: the composition tree
// (Timeline, Stack, Track, Clip, Gap, Warp), generalizing gotio's
// opentimelineio.Composable/Composition/Item hierarchy from
// opentime.RationalTime-keyed items to the rational-exact
// ordinate/topology stack. Each node exposes its own intrinsic
// topology (how its local input space maps onto its children's
// spaces, or onto discrete media samples for a Clip), and a stable
// Space handle identifying one of its coordinate spaces for use by
// the topomap and projection layers.
package composition

import (
	"github.com/wrinkles-go/wrinkles/affine"
	"github.com/wrinkles-go/wrinkles/mapping"
	"github.com/wrinkles-go/wrinkles/ordinate"
	"github.com/wrinkles-go/wrinkles/topology"
)

// Kind tags which node variant a Node is.
type Kind uint8

const (
	KindClip Kind = iota
	KindGap
	KindWarp
	KindTrack
	KindStack
	KindTimeline
)

func (k Kind) String() string {
	switch k {
	case KindClip:
		return "Clip"
	case KindGap:
		return "Gap"
	case KindWarp:
		return "Warp"
	case KindTrack:
		return "Track"
	case KindStack:
		return "Stack"
	case KindTimeline:
		return "Timeline"
	default:
		return "Unknown"
	}
}

// SpaceName names one of a node's coordinate spaces — its own local
// input ("media" for a Clip, "output" for a composition) or a named
// internal space such as "intrinsic" for a Warp's pre-warp space.
type SpaceName string

const (
	SpaceOutput    SpaceName = "output"
	SpaceMedia     SpaceName = "media"
	SpaceIntrinsic SpaceName = "intrinsic"
)

// Space is a handle identifying one coordinate space belonging to one
// node: the vertex type the topomap's graph is built from (spec §3,
// "node handles").
type Space struct {
	Node Node
	Name SpaceName
}

// Node is the common interface for every composition tree element.
type Node interface {
	Kind() Kind
	Name() string
	Parent() Node
	setParent(Node)

	// IntrinsicTopology returns the topology mapping this node's
	// output space to its primary child/media space. Clip and Gap
	// return a single-segment (Empty or identity-ish Affine)
	// topology over their own bounds; Track/Stack/Timeline/Warp
	// return the topology induced by their composition rule.
	IntrinsicTopology() (*topology.Topology, error)

	// OutputSpace returns this node's own output-space handle.
	OutputSpace() Space
}

// nodeBase factors the parent-pointer bookkeeping shared by every
// concrete node, mirroring gotio's ComposableBase.
type nodeBase struct {
	name   string
	parent Node
}

func (b *nodeBase) Name() string    { return b.name }
func (b *nodeBase) Parent() Node    { return b.parent }
func (b *nodeBase) setParent(p Node) { b.parent = p }

// Clip is a leaf referencing discrete media over a continuous media
// interval, optionally carrying a DiscreteSampling for index<->ordinate
// queries (spec §3, CompositionNode / Clip).
type Clip struct {
	nodeBase
	MediaBounds ordinate.Interval
	Sampling    *ordinate.Sampling
}

// NewClip builds a Clip spanning mediaBounds in its own media space.
func NewClip(name string, mediaBounds ordinate.Interval, sampling *ordinate.Sampling) *Clip {
	return &Clip{nodeBase: nodeBase{name: name}, MediaBounds: mediaBounds, Sampling: sampling}
}

func (c *Clip) Kind() Kind { return KindClip }

func (c *Clip) OutputSpace() Space { return Space{Node: c, Name: SpaceOutput} }

// MediaSpace returns the handle for this clip's underlying media space.
func (c *Clip) MediaSpace() Space { return Space{Node: c, Name: SpaceMedia} }

// IntrinsicTopology returns the identity affine mapping from output
// space to media space, over MediaBounds.
func (c *Clip) IntrinsicTopology() (*topology.Topology, error) {
	m := mapping.NewAffine(c.MediaBounds, affine.Identity)
	return topology.New([]mapping.Mapping{m})
}

// IndexAt converts a media ordinate to a discrete sample index, if
// this clip carries a Sampling.
func (c *Clip) IndexAt(o ordinate.Ordinate) (int64, error) {
	if c.Sampling == nil {
		return 0, ErrNoIntrinsicMedia
	}
	return c.Sampling.IndexAt(o)
}

// Gap is a leaf occupying Bounds in its parent's space with no media
// — its intrinsic topology is the single-segment Empty form.
type Gap struct {
	nodeBase
	Bounds ordinate.Interval
}

// NewGap builds a Gap spanning bounds.
func NewGap(name string, bounds ordinate.Interval) *Gap {
	return &Gap{nodeBase: nodeBase{name: name}, Bounds: bounds}
}

func (g *Gap) Kind() Kind          { return KindGap }
func (g *Gap) OutputSpace() Space  { return Space{Node: g, Name: SpaceOutput} }
func (g *Gap) IntrinsicTopology() (*topology.Topology, error) {
	return topology.NewEmpty(g.Bounds), nil
}

// Warp wraps a single child and re-times its output space through an
// arbitrary mapping.Mapping (Affine/Linear/Bezier), generalizing
// gotio's LinearTimeWarp to the full Mapping contract.
type Warp struct {
	nodeBase
	Child Node
	Remap mapping.Mapping // output (post-warp) space -> child's output (intrinsic/pre-warp) space
}

// NewWarp builds a Warp over child using remap.
func NewWarp(name string, child Node, remap mapping.Mapping) *Warp {
	w := &Warp{nodeBase: nodeBase{name: name}, Child: child, Remap: remap}
	child.setParent(w)
	return w
}

func (w *Warp) Kind() Kind         { return KindWarp }
func (w *Warp) OutputSpace() Space { return Space{Node: w, Name: SpaceOutput} }

// IntrinsicSpace is the handle for the child-facing (pre-warp) space.
func (w *Warp) IntrinsicSpace() Space { return Space{Node: w, Name: SpaceIntrinsic} }

func (w *Warp) IntrinsicTopology() (*topology.Topology, error) {
	return topology.New([]mapping.Mapping{w.Remap})
}

// item is one slot in a Track: the child node. The interval it
// occupies is derived from the children's durations when needed.
type item struct {
	node Node
}

// Composition is the interface implemented by Track/Stack/Timeline:
// nodes with an ordered list of children.
type Composition interface {
	Node
	Children() []Node
	ChildAtTime(o ordinate.Ordinate) (Node, ordinate.Ordinate, error)
}

// Track is a sequential composition: children occupy disjoint,
// contiguous, ordered sub-intervals of the track's own output space
// (spec's generalization of gotio's Track).
type Track struct {
	nodeBase
	items []item
}

// NewTrack builds an empty Track. Use Append to add children, each
// occupying the clopen interval [cursor, cursor+childDuration).
func NewTrack(name string) *Track {
	return &Track{nodeBase: nodeBase{name: name}}
}

func (t *Track) Kind() Kind         { return KindTrack }
func (t *Track) OutputSpace() Space { return Space{Node: t, Name: SpaceOutput} }

// Append adds child to the end of the track.
func (t *Track) Append(child Node) {
	child.setParent(t)
	t.items = append(t.items, item{node: child})
}

// Children returns the track's children in order.
func (t *Track) Children() []Node {
	out := make([]Node, len(t.items))
	for i, it := range t.items {
		out[i] = it.node
	}
	return out
}

// IntrinsicTopology builds the track's output->child-output mapping:
// one Affine (pure translation) segment per child, laid end to end.
func (t *Track) IntrinsicTopology() (*topology.Topology, error) {
	if len(t.items) == 0 {
		return nil, &MalformedError{Node: t.name, Reason: "empty track has no topology"}
	}
	var segs []mapping.Mapping
	cursor := ordinate.Zero
	for _, it := range t.items {
		childTopo, err := it.node.IntrinsicTopology()
		if err != nil {
			return nil, err
		}
		dur := childTopo.InputBounds().Duration()
		bounds := ordinate.NewInterval(cursor, cursor.Add(dur))
		// Translation so that this child's own input-space start
		// lines up with `cursor` in the track's output space.
		offset := childTopo.InputBounds().Start().Sub(cursor)
		segs = append(segs, mapping.NewAffine(bounds, affine.New(offset, ordinate.FromInt64(1))))
		cursor = cursor.Add(dur)
	}
	return topology.New(segs)
}

// ChildAtTime returns the child occupying output-space ordinate o and
// the equivalent ordinate in that child's own input space (a
// supplemented convenience query, spec SPEC_FULL "ChildAtTime").
func (t *Track) ChildAtTime(o ordinate.Ordinate) (Node, ordinate.Ordinate, error) {
	cursor := ordinate.Zero
	for _, it := range t.items {
		childTopo, err := it.node.IntrinsicTopology()
		if err != nil {
			return nil, ordinate.Zero, err
		}
		dur := childTopo.InputBounds().Duration()
		bounds := ordinate.NewInterval(cursor, cursor.Add(dur))
		if bounds.Contains(o) {
			local := o.Sub(cursor).Add(childTopo.InputBounds().Start())
			return it.node, local, nil
		}
		cursor = cursor.Add(dur)
	}
	return nil, ordinate.Zero, &ordinate.OutOfBoundsError{Value: o, Bounds: ordinate.NewInterval(ordinate.Zero, cursor)}
}

// Stack is a parallel composition: every child shares the same
// output-space interval (the union of their durations, per gotio's
// Stack), composited in layer order (spec's Composition/Stack).
type Stack struct {
	nodeBase
	children []Node
}

// NewStack builds an empty Stack.
func NewStack(name string) *Stack {
	return &Stack{nodeBase: nodeBase{name: name}}
}

func (s *Stack) Kind() Kind         { return KindStack }
func (s *Stack) OutputSpace() Space { return Space{Node: s, Name: SpaceOutput} }

// Append adds a layer to the stack.
func (s *Stack) Append(child Node) {
	child.setParent(s)
	s.children = append(s.children, child)
}

// Children returns the stack's layers, bottom to top.
func (s *Stack) Children() []Node { return append([]Node(nil), s.children...) }

// IntrinsicTopology returns the identity mapping over the longest
// child's duration: every layer shares the stack's own output space
// one-for-one (spec's Stack composition rule).
func (s *Stack) IntrinsicTopology() (*topology.Topology, error) {
	if len(s.children) == 0 {
		return nil, &MalformedError{Node: s.name, Reason: "empty stack has no topology"}
	}
	longest := ordinate.Zero
	for _, c := range s.children {
		topo, err := c.IntrinsicTopology()
		if err != nil {
			return nil, err
		}
		dur := topo.InputBounds().Duration()
		if longest.Less(dur) {
			longest = dur
		}
	}
	bounds := ordinate.NewInterval(ordinate.Zero, longest)
	return topology.New([]mapping.Mapping{mapping.NewAffine(bounds, affine.Identity)})
}

// ChildAtTime returns the topmost (last) child at output ordinate o,
// since stack layers composite with later children on top.
func (s *Stack) ChildAtTime(o ordinate.Ordinate) (Node, ordinate.Ordinate, error) {
	longest := ordinate.Zero
	for i := len(s.children) - 1; i >= 0; i-- {
		topo, err := s.children[i].IntrinsicTopology()
		if err != nil {
			return nil, ordinate.Zero, err
		}
		if dur := topo.InputBounds().Duration(); longest.Less(dur) {
			longest = dur
		}
		if topo.InputBounds().Contains(o) {
			return s.children[i], o, nil
		}
	}
	return nil, ordinate.Zero, &ordinate.OutOfBoundsError{Value: o, Bounds: ordinate.NewInterval(ordinate.Zero, longest)}
}

// Timeline is the root of a composition tree: a single top-level
// Stack under a named document, per gotio's Timeline.
type Timeline struct {
	nodeBase
	Tracks *Stack
}

// NewTimeline builds a Timeline rooted at tracks (conventionally a
// Stack of Tracks, mirroring gotio's Timeline.Tracks).
func NewTimeline(name string, tracks *Stack) *Timeline {
	tl := &Timeline{nodeBase: nodeBase{name: name}, Tracks: tracks}
	tracks.setParent(tl)
	return tl
}

func (tl *Timeline) Kind() Kind         { return KindTimeline }
func (tl *Timeline) OutputSpace() Space { return Space{Node: tl, Name: SpaceOutput} }

func (tl *Timeline) IntrinsicTopology() (*topology.Topology, error) {
	return tl.Tracks.IntrinsicTopology()
}

// Children returns the single child (the root stack), to satisfy Composition.
func (tl *Timeline) Children() []Node { return []Node{tl.Tracks} }

// ChildAtTime delegates to the root stack.
func (tl *Timeline) ChildAtTime(o ordinate.Ordinate) (Node, ordinate.Ordinate, error) {
	return tl.Tracks.ChildAtTime(o)
}

