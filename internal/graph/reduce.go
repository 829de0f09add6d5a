package graph

import (
	"github.com/specialistvlad/pathgraph/internal/geometry"
)

// Vertex is a significant node of a RoutingGraph.
type Vertex struct {
	Node  NodeID         `json:"node" msgpack:"node"`
	Point geometry.Point `json:"point" msgpack:"point"`
	// LocationID and Name are zero when the vertex is a plain junction or
	// dead end.
	LocationID int    `json:"locationId,omitempty" msgpack:"locationId,omitempty"`
	Name       string `json:"name,omitempty" msgpack:"name,omitempty"`
}

// RouteEdge is a chain of pass-through nodes collapsed into one weighted edge.
// From and To index RoutingGraph.Vertices.
type RouteEdge struct {
	From   int              `json:"from" msgpack:"from"`
	To     int              `json:"to" msgpack:"to"`
	Path   []geometry.Point `json:"path" msgpack:"path"`
	Weight float64          `json:"weight" msgpack:"weight"`
}

// RoutingGraph is the weighted graph navigation works on.
type RoutingGraph struct {
	Vertices []Vertex    `json:"vertices" msgpack:"vertices"`
	Edges    []RouteEdge `json:"edges" msgpack:"edges"`
}

// IsGraphPoint reports whether a node survives reduction: dead ends,
// junctions of three or more edges, and nodes carrying a location other than
// a "<nolink>" marker.
func (g *Graph) IsGraphPoint(id NodeID) bool {
	if d := g.Degree(id); d == 1 || d > 2 {
		return true
	}
	loc := g.Location(id)
	return loc != nil && !loc.IsNoLink()
}

// Reduce collapses every chain of degree-2 nodes between two graph points into
// a single RouteEdge weighted by the chain's Euclidean length. Each chain is
// emitted once. Closed loops that contain no graph point are dropped.
func Reduce(g *Graph) *RoutingGraph {
	rg := &RoutingGraph{}
	index := make(map[NodeID]int)
	for _, id := range g.Nodes() {
		if !g.IsGraphPoint(id) {
			continue
		}
		v := Vertex{Node: id, Point: g.Point(id)}
		if loc := g.Location(id); loc != nil {
			v.LocationID, v.Name = loc.ID, loc.Name
		}
		index[id] = len(rg.Vertices)
		rg.Vertices = append(rg.Vertices, v)
	}

	walked := make(map[Edge]struct{})
	for _, start := range g.Nodes() {
		from, ok := index[start]
		if !ok {
			continue
		}
		for _, next := range g.Neighbors(start) {
			if _, done := walked[NewEdge(start, next)]; done {
				continue
			}
			walked[NewEdge(start, next)] = struct{}{}

			path := []geometry.Point{g.Point(start), g.Point(next)}
			weight := g.Point(start).DistanceTo(g.Point(next))
			prev, cur := start, next
			for !g.IsGraphPoint(cur) {
				step := g.traverse(cur, prev)
				if step < 0 {
					break
				}
				path = append(path, g.Point(step))
				weight += g.Point(cur).DistanceTo(g.Point(step))
				prev, cur = cur, step
			}
			walked[NewEdge(prev, cur)] = struct{}{}

			to, ok := index[cur]
			if !ok {
				continue
			}
			rg.Edges = append(rg.Edges, RouteEdge{From: from, To: to, Path: path, Weight: weight})
		}
	}
	return rg
}

// traverse returns the neighbor of a pass-through node that is not from, or
// -1 when the node is not a pass-through.
func (g *Graph) traverse(id, from NodeID) NodeID {
	nbrs := g.Neighbors(id)
	if len(nbrs) != 2 {
		return -1
	}
	if nbrs[0] == from {
		return nbrs[1]
	}
	return nbrs[0]
}
