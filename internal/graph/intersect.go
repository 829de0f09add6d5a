package graph

import (
	"context"
	"fmt"

	"github.com/specialistvlad/pathgraph/internal/ctxlog"
	"github.com/specialistvlad/pathgraph/internal/geometry"
)

// Mode selects how a candidate crossing is accepted.
type Mode int

const (
	// ModeLine accepts any crossing of the two infinite lines, wherever it
	// falls. This is the editor's historical behaviour. With three or more
	// mutually non-parallel edges it usually keeps re-splitting until the
	// split budget runs out.
	ModeLine Mode = iota
	// ModeSegment additionally requires the crossing to lie inside both
	// segments' bounding rectangles.
	ModeSegment
)

// String returns the configuration name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeLine:
		return "line"
	case ModeSegment:
		return "segment"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode maps a configuration name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "line":
		return ModeLine, nil
	case "segment":
		return ModeSegment, nil
	}
	return 0, fmt.Errorf("graph: unknown intersection mode %q (want \"line\" or \"segment\")", s)
}

// VerticalPolicy selects what happens when a vertical segment has to be tested.
type VerticalPolicy int

const (
	// VerticalFail aborts the phase with a *GeometryError.
	VerticalFail VerticalPolicy = iota
	// VerticalSkip leaves vertical segments untested.
	VerticalSkip
)

// String returns the configuration name of the policy.
func (v VerticalPolicy) String() string {
	switch v {
	case VerticalFail:
		return "fail"
	case VerticalSkip:
		return "skip"
	default:
		return fmt.Sprintf("VerticalPolicy(%d)", int(v))
	}
}

// ParseVerticalPolicy maps a configuration name to a VerticalPolicy.
func ParseVerticalPolicy(s string) (VerticalPolicy, error) {
	switch s {
	case "fail":
		return VerticalFail, nil
	case "skip":
		return VerticalSkip, nil
	}
	return 0, fmt.Errorf("graph: unknown vertical segment policy %q (want \"fail\" or \"skip\")", s)
}

// DefaultMaxSplits bounds a single ResolveIntersections call.
const DefaultMaxSplits = 10000

// IntersectOptions tunes ResolveIntersections.
type IntersectOptions struct {
	Mode     Mode
	Vertical VerticalPolicy
	// MaxSplits is the most splits one call may perform; finding another
	// crossing after that fails with ErrSplitLimit. Zero means
	// DefaultMaxSplits.
	MaxSplits int
}

// DefaultIntersectOptions returns line mode, fail-fast on vertical segments and
// the default split budget.
func DefaultIntersectOptions() IntersectOptions {
	return IntersectOptions{Mode: ModeLine, Vertical: VerticalFail, MaxSplits: DefaultMaxSplits}
}

// IntersectReport summarizes a ResolveIntersections pass.
type IntersectReport struct {
	// Splits counts detected crossings.
	Splits int
	// Created lists the coordinates of the nodes added at crossings, in
	// creation order. Crossings that landed on an existing node reuse that
	// node and are not listed.
	Created []geometry.Point
}

// ResolveIntersections finds pairs of edges that share no endpoint and whose
// lines cross, and splits both edges at a node placed on the truncated
// crossing point: A-B and C-D become A-PI, PI-B, C-PI and PI-D. The new node
// carries no location. When the crossing coincides with one of the four
// endpoints, that endpoint is used as PI and only the other edge is split.
// When it coincides with any other live node, that node is used as PI.
//
// Edges whose two endpoints both carry a "<nolink>" location mark bridges and
// tunnels and are never tested. Edges with equal slopes are parallel and never
// cross.
//
// The phase runs a worklist of edges: every live edge is tested against every
// other live edge, and each split enqueues the edges it creates. It ends when
// the worklist drains, which means one complete pass found nothing. The
// context is checked before every test; cancellation returns the splits made
// so far together with the context's error.
//
// A zero-length edge aborts the phase with ErrDegenerateSegment regardless of
// the vertical policy.
func ResolveIntersections(ctx context.Context, g *Graph, opts IntersectOptions) (IntersectReport, error) {
	logger := ctxlog.FromContext(ctx)
	if opts.MaxSplits <= 0 {
		opts.MaxSplits = DefaultMaxSplits
	}
	logger.Debug("Resolving intersections.", "edges", g.EdgeCount(), "mode", opts.Mode.String(), "vertical", opts.Vertical.String())

	var report IntersectReport
	queue := g.Edges()
	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("intersections interrupted after %d splits: %w", report.Splits, err)
		}
		e := queue[0]
		queue = queue[1:]
		if !g.HasEdge(e.A, e.B) || g.noLink(e) {
			continue
		}

		f, p, found, err := g.findCrossing(e, opts)
		if err != nil {
			return report, err
		}
		if !found {
			continue
		}
		if report.Splits >= opts.MaxSplits {
			return report, fmt.Errorf("%w: %d splits", ErrSplitLimit, report.Splits)
		}

		pi, created, fresh := g.split(e, f, p)
		queue = append(queue, fresh...)
		report.Splits++
		if created {
			report.Created = append(report.Created, p)
		}
		logger.Debug("Intersection materialized.",
			"point", p.String(), "node", int(pi), "new_node", created,
			"segment", g.describe(e), "against", g.describe(f))
	}

	logger.Debug("Intersections resolved.", "splits", report.Splits, "created", len(report.Created), "nodes", g.NodeCount(), "edges", g.EdgeCount())
	return report, nil
}

// findCrossing tests e against every other live edge in (A, B) order and
// returns the first crossing.
func (g *Graph) findCrossing(e Edge, opts IntersectOptions) (Edge, geometry.Point, bool, error) {
	a, b := g.Point(e.A), g.Point(e.B)
	var (
		slopeE    float64
		haveSlope bool
	)
	for _, f := range g.Edges() {
		if f == e || f.Touches(e) || g.noLink(f) {
			continue
		}
		c, d := g.Point(f.A), g.Point(f.B)
		if a == b {
			return Edge{}, geometry.Point{}, false, &GeometryError{
				Segment: [2]geometry.Point{a, b}, Against: [2]geometry.Point{c, d}, Err: ErrDegenerateSegment,
			}
		}
		if c == d {
			return Edge{}, geometry.Point{}, false, &GeometryError{
				Segment: [2]geometry.Point{c, d}, Against: [2]geometry.Point{a, b}, Err: ErrDegenerateSegment,
			}
		}

		if !haveSlope {
			m, ok := geometry.Slope(a, b)
			if !ok {
				if opts.Vertical == VerticalSkip {
					return Edge{}, geometry.Point{}, false, nil
				}
				return Edge{}, geometry.Point{}, false, &GeometryError{
					Segment: [2]geometry.Point{a, b}, Against: [2]geometry.Point{c, d}, Err: ErrVerticalSegment,
				}
			}
			slopeE, haveSlope = m, true
		}

		slopeF, ok := geometry.Slope(c, d)
		if !ok {
			if opts.Vertical == VerticalSkip {
				continue
			}
			return Edge{}, geometry.Point{}, false, &GeometryError{
				Segment: [2]geometry.Point{c, d}, Against: [2]geometry.Point{a, b}, Err: ErrVerticalSegment,
			}
		}

		if slopeE == slopeF {
			continue
		}
		p, ok := geometry.Crossing(a, slopeE, c, slopeF)
		if !ok {
			continue
		}
		if opts.Mode == ModeSegment && !(geometry.WithinBounds(p, a, b) && geometry.WithinBounds(p, c, d)) {
			continue
		}
		return f, p, true, nil
	}
	return Edge{}, geometry.Point{}, false, nil
}

// split splices a node at p into e and f and returns it together with the
// edges that need (re)testing.
func (g *Graph) split(e, f Edge, p geometry.Point) (pi NodeID, created bool, fresh []Edge) {
	pi = -1
	for _, id := range [...]NodeID{e.A, e.B, f.A, f.B} {
		if g.Point(id) == p {
			pi = id
			break
		}
	}
	if pi < 0 {
		if ids := g.NodesAt(p); len(ids) > 0 {
			pi = ids[0]
		}
	}
	if pi < 0 {
		pi = g.addSynthetic(p)
		created = true
	}

	for _, s := range [...]Edge{e, f} {
		if s.A == pi || s.B == pi {
			// The crossing sits on this edge's endpoint: keep it and test
			// it again against the new pieces.
			fresh = append(fresh, s)
			continue
		}
		g.RemoveEdge(s.A, s.B)
		g.AddEdge(s.A, pi)
		g.AddEdge(pi, s.B)
		fresh = append(fresh, NewEdge(s.A, pi), NewEdge(pi, s.B))
	}
	return pi, created, fresh
}

// noLink reports whether both endpoints of e mark a bridge or tunnel.
func (g *Graph) noLink(e Edge) bool {
	return g.Location(e.A).IsNoLink() && g.Location(e.B).IsNoLink()
}

func (g *Graph) describe(e Edge) string {
	return g.Point(e.A).String() + "-" + g.Point(e.B).String()
}
