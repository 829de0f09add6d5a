// Package metrics publishes optimizer counters through expvar, so a host
// process that serves /debug/vars exposes them without extra wiring.
package metrics

import "expvar"

var (
	runsTotal          = new(expvar.Int)
	nodesBuiltTotal    = new(expvar.Int)
	nodesMergedTotal   = new(expvar.Int)
	intersectionsTotal = new(expvar.Int)
	pathsExportedTotal = new(expvar.Int)
	loadFailures       = expvar.NewMap("pathgraph_load_failures_total")
)

func init() {
	expvar.Publish("pathgraph_runs_total", runsTotal)
	expvar.Publish("pathgraph_nodes_built_total", nodesBuiltTotal)
	expvar.Publish("pathgraph_nodes_merged_total", nodesMergedTotal)
	expvar.Publish("pathgraph_intersections_total", intersectionsTotal)
	expvar.Publish("pathgraph_paths_exported_total", pathsExportedTotal)
}

func IncRuns()                   { runsTotal.Add(1) }
func AddNodesBuilt(n int)        { nodesBuiltTotal.Add(int64(n)) }
func AddNodesMerged(n int)       { nodesMergedTotal.Add(int64(n)) }
func AddIntersections(n int)     { intersectionsTotal.Add(int64(n)) }
func AddPathsExported(n int)     { pathsExportedTotal.Add(int64(n)) }
func IncLoadFailure(kind string) { loadFailures.Add(kind, 1) }

// Snapshot returns the current counter values keyed by their short name.
func Snapshot() map[string]int64 {
	return map[string]int64{
		"runs":          runsTotal.Value(),
		"nodes_built":   nodesBuiltTotal.Value(),
		"nodes_merged":  nodesMergedTotal.Value(),
		"intersections": intersectionsTotal.Value(),
		"paths":         pathsExportedTotal.Value(),
	}
}
