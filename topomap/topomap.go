// SPDX-License-Identifier: Apache-2.0

// Package topomap implements component G: the topological map, a
// graph of (node, space) pairs built once over a composition root,
// answering reachability queries between any two spaces. It is
// backed by github.com/katalvlaran/lvlath's core.Graph and bfs.BFS,
// generalizing gotio's ad hoc parent-walking (Composable.Parent) into
// an explicit, queryable graph structure (spec §4.G).
package topomap

import (
	"fmt"

	"github.com/katalvlaran/lvlath/bfs"
	"github.com/katalvlaran/lvlath/core"

	"github.com/wrinkles-go/wrinkles/composition"
	"github.com/wrinkles-go/wrinkles/topology"
)

// Map is the built topological graph over one composition tree.
type Map struct {
	root     composition.Node
	g        *core.Graph
	ids      map[composition.Space]string
	spaces   map[string]composition.Space
	edgeTopo map[[2]string]*topology.Topology
	nextID   int
}

// Build walks root and every node reachable from it, registering one
// graph vertex per coordinate space and one directed edge per
// composition.DirectEdges link, so the map only needs to be built
// once per composition tree (spec §4.G, §5 "arena-scoped build").
func Build(root composition.Node) (*Map, error) {
	m := &Map{
		root:     root,
		g:        core.NewGraph(core.WithDirected(true)),
		ids:      make(map[composition.Space]string),
		spaces:   make(map[string]composition.Space),
		edgeTopo: make(map[[2]string]*topology.Topology),
	}

	var walkErr error
	composition.Walk(root, func(n composition.Node) {
		if walkErr != nil {
			return
		}
		m.registerSpace(n.OutputSpace())
		if clip, ok := n.(*composition.Clip); ok {
			m.registerSpace(clip.MediaSpace())
		}
		edges, err := composition.DirectEdges(n)
		if err != nil {
			walkErr = &MalformedError{NodeName: n.Name(), Cause: err}
			return
		}
		for _, e := range edges {
			fromID := m.registerSpace(e.From)
			toID := m.registerSpace(e.To)
			if _, err := m.g.AddEdge(fromID, toID, 0); err != nil {
				walkErr = &MalformedError{NodeName: n.Name(), Cause: fmt.Errorf("add edge %s->%s: %w", fromID, toID, err)}
				return
			}
			m.edgeTopo[[2]string{fromID, toID}] = e.Topo
		}
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return m, nil
}

func (m *Map) registerSpace(s composition.Space) string {
	if id, ok := m.ids[s]; ok {
		return id
	}
	id := fmt.Sprintf("v%d", m.nextID)
	m.nextID++
	m.ids[s] = id
	m.spaces[id] = s
	_ = m.g.AddVertex(id)
	return id
}

// idOf returns the vertex ID for s, or ErrUnknownSpace.
func (m *Map) idOf(s composition.Space) (string, error) {
	id, ok := m.ids[s]
	if !ok {
		return "", ErrUnknownSpace
	}
	return id, nil
}

// Reachable reports whether to is reachable from from via directed
// edges (parent output -> child output/media), per the tree's actual
// composition structure.
func (m *Map) Reachable(from, to composition.Space) (bool, error) {
	fromID, err := m.idOf(from)
	if err != nil {
		return false, err
	}
	toID, err := m.idOf(to)
	if err != nil {
		return false, err
	}
	if fromID == toID {
		return true, nil
	}
	res, err := bfs.BFS(m.g, fromID)
	if err != nil {
		return false, err
	}
	_, ok := res.Depth[toID]
	return ok, nil
}

// PathSpaces returns the ordered sequence of spaces from `from` to
// `to` (inclusive), or ErrUnreachable.
func (m *Map) PathSpaces(from, to composition.Space) ([]composition.Space, error) {
	fromID, err := m.idOf(from)
	if err != nil {
		return nil, err
	}
	toID, err := m.idOf(to)
	if err != nil {
		return nil, err
	}
	if fromID == toID {
		return []composition.Space{from}, nil
	}
	res, err := bfs.BFS(m.g, fromID)
	if err != nil {
		return nil, err
	}
	ids, err := res.PathTo(toID)
	if err != nil {
		return nil, &UnreachableError{From: from, To: to}
	}
	out := make([]composition.Space, len(ids))
	for i, id := range ids {
		out[i] = m.spaces[id]
	}
	return out, nil
}

// TopologyBetween returns the topology of the single direct edge
// between two adjacent spaces on a path, or (nil, false) if they are
// not directly linked.
func (m *Map) TopologyBetween(from, to composition.Space) (*topology.Topology, bool) {
	fromID, err1 := m.idOf(from)
	toID, err2 := m.idOf(to)
	if err1 != nil || err2 != nil {
		return nil, false
	}
	topo, ok := m.edgeTopo[[2]string{fromID, toID}]
	return topo, ok
}

// Root returns the composition root this map was built from.
func (m *Map) Root() composition.Node { return m.root }
