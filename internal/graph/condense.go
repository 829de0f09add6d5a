package graph

import (
	"context"

	"github.com/specialistvlad/pathgraph/internal/ctxlog"
	"github.com/specialistvlad/pathgraph/internal/geometry"
	"github.com/specialistvlad/pathgraph/internal/location"
)

// LocationConflict records two different locations that ended up on one
// coordinate. Kept is the location the merged node retains.
type LocationConflict struct {
	Point   geometry.Point
	Kept    *location.Location
	Dropped *location.Location
}

// CondenseReport summarizes a Condense pass.
type CondenseReport struct {
	Merged    int
	Conflicts []LocationConflict
}

// Condense merges every group of live nodes sharing a coordinate into the
// lowest handle of the group. Each removed node's neighbors are rewired to the
// survivor, never producing a self-loop, so the survivor ends up adjacent to
// the union of the group's neighbors.
//
// The survivor keeps the first non-nil location in handle order. A different
// location found on another member of the group is reported as a conflict and
// dropped.
//
// Condense is idempotent.
func Condense(ctx context.Context, g *Graph) CondenseReport {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Condensing coincident nodes.", "nodes", g.NodeCount())

	var report CondenseReport
	canonical := make(map[geometry.Point]NodeID, g.NodeCount())
	// Nodes() is a snapshot of handles; removals below only tombstone slots
	// that the scan has already passed.
	for _, j := range g.Nodes() {
		p := g.Point(j)
		i, seen := canonical[p]
		if !seen {
			canonical[p] = j
			continue
		}
		if c, ok := g.merge(i, j); ok {
			report.Conflicts = append(report.Conflicts, c)
			logger.Warn("Conflicting locations on one coordinate; keeping the first.",
				"point", p.String(), "kept_id", c.Kept.ID, "kept", c.Kept.Name,
				"dropped_id", c.Dropped.ID, "dropped", c.Dropped.Name)
		}
		report.Merged++
	}

	logger.Debug("Condense finished.", "merged", report.Merged, "nodes", g.NodeCount(), "edges", g.EdgeCount())
	return report
}

// merge folds j into i and removes j.
func (g *Graph) merge(i, j NodeID) (LocationConflict, bool) {
	for _, k := range g.Neighbors(j) {
		g.RemoveEdge(k, j)
		if k != i {
			g.AddEdge(i, k)
		}
	}

	var conflict LocationConflict
	conflicted := false
	switch locI, locJ := g.nodes[i].loc, g.nodes[j].loc; {
	case locI == nil:
		g.nodes[i].loc = locJ
	case locJ != nil && locJ != locI:
		conflict = LocationConflict{Point: g.nodes[i].point, Kept: locI, Dropped: locJ}
		conflicted = true
	}

	g.RemoveNode(j)
	return conflict, conflicted
}
