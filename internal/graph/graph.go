// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the node arena and the primitive, symmetry-preserving
// mutations every phase is built from.
package graph

import (
	"fmt"
	"sort"

	"github.com/specialistvlad/pathgraph/internal/geometry"
	"github.com/specialistvlad/pathgraph/internal/location"
)

// NodeID is a stable handle to a node in a Graph.
type NodeID int

// Edge is an undirected edge. Edges produced by Graph always have A < B.
type Edge struct {
	A, B NodeID
}

// NewEdge returns the edge between a and b with its endpoints ordered.
func NewEdge(a, b NodeID) Edge {
	if b < a {
		a, b = b, a
	}
	return Edge{A: a, B: b}
}

// Touches reports whether e and o share an endpoint.
func (e Edge) Touches(o Edge) bool {
	return e.A == o.A || e.A == o.B || e.B == o.A || e.B == o.B
}

type node struct {
	point     geometry.Point
	adj       map[NodeID]struct{}
	loc       *location.Location
	synthetic bool
	alive     bool
}

// Graph is an arena of path points. The zero value is an empty graph ready for
// use.
type Graph struct {
	nodes []node
	live  int
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{}
}

// AddNode appends a node at p carrying loc (which may be nil) and returns its
// handle.
func (g *Graph) AddNode(p geometry.Point, loc *location.Location) NodeID {
	g.nodes = append(g.nodes, node{
		point: p,
		adj:   make(map[NodeID]struct{}, 2),
		loc:   loc,
		alive: true,
	})
	g.live++
	return NodeID(len(g.nodes) - 1)
}

func (g *Graph) addSynthetic(p geometry.Point) NodeID {
	id := g.AddNode(p, nil)
	g.nodes[id].synthetic = true
	return id
}

// RemoveNode deletes the node and every edge touching it. Removing a node that
// is already gone is a no-op.
func (g *Graph) RemoveNode(id NodeID) {
	if !g.Alive(id) {
		return
	}
	n := &g.nodes[id]
	for k := range n.adj {
		delete(g.nodes[k].adj, id)
	}
	n.adj = nil
	n.loc = nil
	n.alive = false
	g.live--
}

// AddEdge connects a and b in both directions. It refuses self-loops and
// edges to removed nodes, and reports whether a new edge was created.
func (g *Graph) AddEdge(a, b NodeID) bool {
	if a == b || !g.Alive(a) || !g.Alive(b) {
		return false
	}
	if _, ok := g.nodes[a].adj[b]; ok {
		return false
	}
	g.nodes[a].adj[b] = struct{}{}
	g.nodes[b].adj[a] = struct{}{}
	return true
}

// RemoveEdge disconnects a and b in both directions and reports whether the
// edge existed.
func (g *Graph) RemoveEdge(a, b NodeID) bool {
	if !g.HasEdge(a, b) {
		return false
	}
	delete(g.nodes[a].adj, b)
	delete(g.nodes[b].adj, a)
	return true
}

// HasEdge reports whether a and b are adjacent.
func (g *Graph) HasEdge(a, b NodeID) bool {
	if !g.Alive(a) || !g.Alive(b) {
		return false
	}
	_, ok := g.nodes[a].adj[b]
	return ok
}

// Alive reports whether id refers to a node that has not been removed.
func (g *Graph) Alive(id NodeID) bool {
	return id >= 0 && int(id) < len(g.nodes) && g.nodes[id].alive
}

// Point returns the coordinate of the node. Removed nodes keep their
// coordinate.
func (g *Graph) Point(id NodeID) geometry.Point {
	return g.nodes[id].point
}

// Location returns the location attached to the node, or nil.
func (g *Graph) Location(id NodeID) *location.Location {
	return g.nodes[id].loc
}

// Synthetic reports whether the node was created by intersection resolution.
func (g *Graph) Synthetic(id NodeID) bool {
	return g.nodes[id].synthetic
}

// Degree returns the number of neighbors of the node.
func (g *Graph) Degree(id NodeID) int {
	return len(g.nodes[id].adj)
}

// Neighbors returns the node's neighbors in ascending handle order.
func (g *Graph) Neighbors(id NodeID) []NodeID {
	adj := g.nodes[id].adj
	out := make([]NodeID, 0, len(adj))
	for k := range adj {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Nodes returns the handles of all live nodes in ascending order.
func (g *Graph) Nodes() []NodeID {
	out := make([]NodeID, 0, g.live)
	for i := range g.nodes {
		if g.nodes[i].alive {
			out = append(out, NodeID(i))
		}
	}
	return out
}

// NodeCount returns the number of live nodes.
func (g *Graph) NodeCount() int {
	return g.live
}

// Edges returns every undirected edge once, ordered by (A, B).
func (g *Graph) Edges() []Edge {
	var out []Edge
	for _, a := range g.Nodes() {
		for _, b := range g.Neighbors(a) {
			if a < b {
				out = append(out, Edge{A: a, B: b})
			}
		}
	}
	return out
}

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for i := range g.nodes {
		n += len(g.nodes[i].adj)
	}
	return n / 2
}

// NodesAt returns the live nodes located exactly at p, in handle order.
func (g *Graph) NodesAt(p geometry.Point) []NodeID {
	var out []NodeID
	for _, id := range g.Nodes() {
		if g.nodes[id].point == p {
			out = append(out, id)
		}
	}
	return out
}

// Stats summarizes a graph for logging.
type Stats struct {
	Nodes         int
	Edges         int
	Synthetic     int
	WithLocation  int
	Isolated      int
	DistinctCoord int
}

// Stats returns node and edge counts.
func (g *Graph) Stats() Stats {
	s := Stats{Nodes: g.live, Edges: g.EdgeCount()}
	coords := make(map[geometry.Point]struct{}, g.live)
	for _, id := range g.Nodes() {
		n := &g.nodes[id]
		coords[n.point] = struct{}{}
		if n.synthetic {
			s.Synthetic++
		}
		if n.loc != nil {
			s.WithLocation++
		}
		if len(n.adj) == 0 {
			s.Isolated++
		}
	}
	s.DistinctCoord = len(coords)
	return s
}

// Verify checks the structural invariants: adjacency is symmetric, there are
// no self-loops and no edge points at a removed node.
func (g *Graph) Verify() error {
	for _, a := range g.Nodes() {
		for b := range g.nodes[a].adj {
			if a == b {
				return fmt.Errorf("%w: node %d at %s", ErrSelfLoop, a, g.nodes[a].point)
			}
			if !g.Alive(b) {
				return fmt.Errorf("%w: node %d points at removed node %d", ErrDanglingEdge, a, b)
			}
			if _, ok := g.nodes[b].adj[a]; !ok {
				return fmt.Errorf("%w: %d -> %d has no reverse edge", ErrAsymmetric, a, b)
			}
		}
	}
	return nil
}
