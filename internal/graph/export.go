package graph

import (
	"github.com/specialistvlad/pathgraph/internal/dataset"
	"github.com/specialistvlad/pathgraph/internal/geometry"
	"github.com/specialistvlad/pathgraph/internal/location"
)

// ExportOptions tunes Export.
type ExportOptions struct {
	// Dedupe emits each undirected edge once, from its lower handle, instead
	// of once from each endpoint.
	Dedupe bool
}

// Export flattens g into the editor's path/location shape. Nodes are visited
// in handle order. A node carrying a location emits it; an isolated node emits
// a one-point path; every other node emits one two-point path per neighbor,
// node first.
//
// Without Dedupe every edge appears twice, as (A, B) and as (B, A).
func Export(g *Graph, opts ExportOptions) dataset.Dataset {
	var out dataset.Dataset
	seen := make(map[*location.Location]struct{})
	for _, id := range g.Nodes() {
		p := g.Point(id)
		if loc := g.Location(id); loc != nil {
			if _, dup := seen[loc]; !dup {
				seen[loc] = struct{}{}
				out.Locations = append(out.Locations, loc)
			}
		}

		nbrs := g.Neighbors(id)
		if len(nbrs) == 0 {
			out.Paths = append(out.Paths, geometry.Path{p})
			continue
		}
		for _, n := range nbrs {
			if opts.Dedupe && n < id {
				continue
			}
			out.Paths = append(out.Paths, geometry.Path{p, g.Point(n)})
		}
	}
	return out
}

// Intersections returns the crossing points a ResolveIntersections pass
// created, in creation order, as one-point paths without location metadata.
// It backs the debug export of crossing points and does not depend on the
// graph's later state.
func Intersections(report IntersectReport) []geometry.Path {
	out := make([]geometry.Path, 0, len(report.Created))
	for _, p := range report.Created {
		out = append(out, geometry.Path{p})
	}
	return out
}
