package graph

import (
	"context"

	"github.com/specialistvlad/pathgraph/internal/ctxlog"
	"github.com/specialistvlad/pathgraph/internal/geometry"
	"github.com/specialistvlad/pathgraph/internal/location"
)

// Build converts raw paths into a graph. Each path contributes its own nodes:
// a point repeated inside one path reuses that path's node, but two paths that
// touch the same coordinate get two distinct nodes until Condense merges them.
// Consecutive points become adjacent; a repeated consecutive point adds no
// self-loop.
//
// A newly created node takes the first location whose coordinate matches it
// exactly. The lookup is a linear scan over locs.
func Build(ctx context.Context, paths []geometry.Path, locs []*location.Location) *Graph {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Building path graph.", "paths", len(paths), "locations", len(locs))

	g := New()
	attached := 0
	for pi, path := range paths {
		if len(path) == 0 {
			logger.Debug("Skipping empty path.", "path_index", pi)
			continue
		}
		local := make(map[geometry.Point]NodeID, len(path))
		prev := NodeID(-1)
		for _, p := range path {
			cur, ok := local[p]
			if !ok {
				loc := location.At(locs, p)
				if loc != nil {
					attached++
				}
				cur = g.AddNode(p, loc)
				local[p] = cur
			}
			if prev >= 0 {
				g.AddEdge(prev, cur)
			}
			prev = cur
		}
	}

	logger.Debug("Path graph built.", "nodes", g.NodeCount(), "edges", g.EdgeCount(), "located_nodes", attached)
	return g
}
