package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/specialistvlad/pathgraph/internal/ctxlog"
	"github.com/specialistvlad/pathgraph/internal/dataset"
	"github.com/specialistvlad/pathgraph/internal/graph"
	"github.com/specialistvlad/pathgraph/internal/metrics"
	"github.com/specialistvlad/pathgraph/internal/serialization"
	"github.com/specialistvlad/pathgraph/internal/store"
)

// Result describes one completed (or aborted) optimization run.
type Result struct {
	RunID string
	Load  store.LoadReport

	Built       graph.Stats
	Condense    graph.CondenseReport
	Intersect   graph.IntersectReport
	Recondensed int
	Final       graph.Stats

	Exported dataset.Dataset
	Routing  *graph.RoutingGraph
}

// Run executes one optimization run: Load, Build, Condense, Intersect,
// optionally re-condense, Export and Save. Missing or malformed input is
// tolerated; geometry failures abort the run before anything is written.
// Every output is attempted and the failures are returned joined.
func (a *App) Run(ctx context.Context) (*Result, error) {
	runID := a.newRunID()
	logger := a.logger.With("run_id", runID)
	ctx = ctxlog.WithLogger(ctx, logger)
	started := a.now()
	metrics.IncRuns()
	logger.Debug("App.Run method started.")
	logger.Info("🚀 Optimization run started.",
		"input", describeInput(a.pipeline.Input), "output", describeOutput(a.pipeline.Output))

	res := &Result{RunID: runID}
	out, err := openOutputs(ctx, a.pipeline)
	if err != nil {
		logger.Error("Outputs could not be opened.", "error", err)
		return res, err
	}
	defer func() {
		if err := out.close(); err != nil {
			logger.Warn("Closing outputs failed.", "error", err)
		}
	}()

	runErr := a.execute(ctx, out, res)
	if out.runs != nil {
		a.recordRun(ctx, out.runs, res, started, runErr)
	}
	if runErr != nil {
		logger.Error("Optimization run failed.", "error", runErr)
		return res, runErr
	}

	logger.Info("🏁 Optimization run finished.",
		"nodes", res.Final.Nodes, "edges", res.Final.Edges,
		"merged", res.Condense.Merged+res.Recondensed, "splits", res.Intersect.Splits,
		"paths", len(res.Exported.Paths), "locations", len(res.Exported.Locations),
		"duration", a.now().Sub(started).String())
	logger.Debug("App.Run method finished.")
	return res, nil
}

func (a *App) execute(ctx context.Context, out *outputs, res *Result) error {
	logger := ctxlog.FromContext(ctx)
	p := a.pipeline

	src, release, err := openSource(ctx, p.Input)
	if err != nil {
		return err
	}
	ds, report := store.Load(ctx, src, a.alloc, store.LoadOptions{CompressIDs: p.Optimize.CompressIDs})
	release()
	res.Load = report

	g := graph.Build(ctx, ds.Paths, ds.Locations)
	res.Built = g.Stats()
	metrics.AddNodesBuilt(res.Built.Nodes)
	logger.Info("Graph built.", "nodes", res.Built.Nodes, "edges", res.Built.Edges,
		"with_location", res.Built.WithLocation, "isolated", res.Built.Isolated)

	res.Condense = graph.Condense(ctx, g)
	metrics.AddNodesMerged(res.Condense.Merged)
	logger.Info("Graph condensed.", "merged", res.Condense.Merged,
		"conflicts", len(res.Condense.Conflicts), "nodes", g.NodeCount(), "edges", g.EdgeCount())

	res.Intersect, err = graph.ResolveIntersections(ctx, g, p.Optimize.IntersectOptions())
	metrics.AddIntersections(res.Intersect.Splits)
	if err != nil {
		return fmt.Errorf("intersection phase failed: %w", err)
	}
	logger.Info("Intersections resolved.", "splits", res.Intersect.Splits,
		"created", len(res.Intersect.Created), "nodes", g.NodeCount(), "edges", g.EdgeCount())

	if p.Optimize.Recondense {
		r := graph.Condense(ctx, g)
		res.Recondensed = r.Merged
		metrics.AddNodesMerged(r.Merged)
		logger.Info("Graph re-condensed.", "merged", r.Merged, "nodes", g.NodeCount(), "edges", g.EdgeCount())
	}

	if err := g.Verify(); err != nil {
		return fmt.Errorf("graph invariant violated: %w", err)
	}
	res.Final = g.Stats()

	res.Exported = graph.Export(g, graph.ExportOptions{Dedupe: p.Optimize.Dedupe})
	metrics.AddPathsExported(len(res.Exported.Paths))
	logger.Info("Graph exported.", "paths", len(res.Exported.Paths),
		"locations", len(res.Exported.Locations), "dedupe", p.Optimize.Dedupe)

	if p.Output.RoutingGraph != "" {
		res.Routing = graph.Reduce(g)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("run interrupted before saving: %w", err)
	}
	return a.save(ctx, out, res)
}

// save writes every configured output and joins the failures.
func (a *App) save(ctx context.Context, out *outputs, res *Result) error {
	logger := ctxlog.FromContext(ctx)
	p := a.pipeline
	var errs []error

	if err := out.main.SavePaths(ctx, res.Exported.Paths); err != nil {
		errs = append(errs, fmt.Errorf("save paths: %w", err))
	}
	if err := out.main.SaveLocations(ctx, res.Exported.Locations); err != nil {
		errs = append(errs, fmt.Errorf("save locations: %w", err))
	}

	if out.intersections != nil {
		points := graph.Intersections(res.Intersect)
		if err := out.intersections.SavePaths(ctx, points); err != nil {
			errs = append(errs, fmt.Errorf("save intersections: %w", err))
		} else {
			logger.Info("Intersection points written.", "target", p.Output.Intersections, "points", len(points))
		}
	}

	if res.Routing != nil {
		compression := serialization.Compression(p.Serialization.Compression)
		if err := store.SaveRoutingGraph(ctx, p.Output.RoutingGraph, res.Routing, compression); err != nil {
			errs = append(errs, fmt.Errorf("save routing graph: %w", err))
		} else {
			logger.Info("Routing graph written.", "file", p.Output.RoutingGraph,
				"vertices", len(res.Routing.Vertices), "edges", len(res.Routing.Edges))
		}
	}

	for _, err := range errs {
		logger.Error("Output could not be written.", "error", err)
	}
	return errors.Join(errs...)
}

func (a *App) recordRun(ctx context.Context, runs *store.SQLiteStore, res *Result, started time.Time, runErr error) {
	r := store.Run{
		ID:         res.RunID,
		StartedAt:  started,
		FinishedAt: a.now(),
		Input:      describeInput(a.pipeline.Input),
		Output:     describeOutput(a.pipeline.Output),
		Nodes:      res.Final.Nodes,
		Edges:      res.Final.Edges,
		Merged:     res.Condense.Merged + res.Recondensed,
		Splits:     res.Intersect.Splits,
		Status:     "ok",
	}
	if runErr != nil {
		r.Status, r.Error = "failed", runErr.Error()
	}
	if err := runs.RecordRun(ctx, r); err != nil {
		ctxlog.FromContext(ctx).Warn("Run could not be recorded.", "error", err)
	}
}
