// SPDX-License-Identifier: Apache-2.0

package composition

import (
	"github.com/wrinkles-go/wrinkles/affine"
	"github.com/wrinkles-go/wrinkles/mapping"
	"github.com/wrinkles-go/wrinkles/ordinate"
	"github.com/wrinkles-go/wrinkles/topology"
)

// Edge is one direct coordinate-space link out of a node: a topology
// mapping the From space onto the To space. The topomap package walks
// these to build its reachability graph (spec §4.G).
type Edge struct {
	From Space
	To   Space
	Topo *topology.Topology
}

// DirectEdges returns every direct space-to-space edge originating at
// n's own output space. Leaves with no further structure (Gap) return
// none; a Clip returns its output->media edge.
func DirectEdges(n Node) ([]Edge, error) {
	switch v := n.(type) {
	case *Clip:
		topo, err := v.IntrinsicTopology()
		if err != nil {
			return nil, err
		}
		return []Edge{{From: v.OutputSpace(), To: v.MediaSpace(), Topo: topo}}, nil

	case *Gap:
		return nil, nil

	case *Warp:
		topo, err := v.IntrinsicTopology()
		if err != nil {
			return nil, err
		}
		return []Edge{{From: v.OutputSpace(), To: v.Child.OutputSpace(), Topo: topo}}, nil

	case *Track:
		return trackEdges(v)

	case *Stack:
		return stackEdges(v)

	case *Timeline:
		topo, err := v.Tracks.IntrinsicTopology()
		if err != nil {
			return nil, err
		}
		return []Edge{{From: v.OutputSpace(), To: v.Tracks.OutputSpace(), Topo: topo}}, nil
	}
	return nil, nil
}

func trackEdges(t *Track) ([]Edge, error) {
	var edges []Edge
	cursor := ordinate.Zero
	for _, it := range t.items {
		childTopo, err := it.node.IntrinsicTopology()
		if err != nil {
			return nil, err
		}
		dur := childTopo.InputBounds().Duration()
		bounds := ordinate.NewInterval(cursor, cursor.Add(dur))
		offset := childTopo.InputBounds().Start().Sub(cursor)
		seg := mapping.NewAffine(bounds, affine.New(offset, ordinate.FromInt64(1)))
		topo, err := topology.New([]mapping.Mapping{seg})
		if err != nil {
			return nil, err
		}
		edges = append(edges, Edge{From: t.OutputSpace(), To: it.node.OutputSpace(), Topo: topo})
		cursor = cursor.Add(dur)
	}
	return edges, nil
}

func stackEdges(s *Stack) ([]Edge, error) {
	var edges []Edge
	for _, c := range s.children {
		childTopo, err := c.IntrinsicTopology()
		if err != nil {
			return nil, err
		}
		bounds := childTopo.InputBounds()
		seg := mapping.NewAffine(bounds, affine.Identity)
		topo, err := topology.New([]mapping.Mapping{seg})
		if err != nil {
			return nil, err
		}
		edges = append(edges, Edge{From: s.OutputSpace(), To: c.OutputSpace(), Topo: topo})
	}
	return edges, nil
}

// Walk visits n and every node reachable from it via child edges,
// calling fn once per node (pre-order).
func Walk(n Node, fn func(Node)) {
	fn(n)
	switch v := n.(type) {
	case *Warp:
		Walk(v.Child, fn)
	case *Track:
		for _, it := range v.items {
			Walk(it.node, fn)
		}
	case *Stack:
		for _, c := range v.children {
			Walk(c, fn)
		}
	case *Timeline:
		Walk(v.Tracks, fn)
	}
}
