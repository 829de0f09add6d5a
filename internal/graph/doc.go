// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package graph turns the raw polylines traced in the map editor into a
// deduplicated, intersection-aware planar graph, and flattens that graph back
// into the editor's path/location shape.
//
// # Pipeline
//
// One optimization run walks the graph through four phases:
//
//	raw paths + locations
//	        │
//	        ▼
//	  ┌───────────┐   Build: one node per traced point, edges between
//	  │   Build   │   consecutive points of the same path only
//	  └─────┬─────┘
//	        ▼
//	  ┌───────────┐   Condense: nodes sharing a coordinate collapse into
//	  │ Condense  │   the lowest handle; adjacency is rewired
//	  └─────┬─────┘
//	        ▼
//	  ┌───────────┐   ResolveIntersections: crossing edges are split at a
//	  │ Intersect │   new node placed on the crossing point
//	  └─────┬─────┘
//	        ▼
//	  ┌───────────┐   Export: every node emits its location, and one
//	  │  Export   │   two-point path per neighbor
//	  └───────────┘
//
// Reduce is an optional fifth step that collapses chains of pass-through nodes
// into weighted routing edges.
//
// # Arena
//
// Nodes refer to each other (adjacency) and to locations, which in a pointer
// graph would be a web of cycles. Graph instead stores nodes in a slice and
// hands out stable integer handles (NodeID). Removing a node tombstones its
// slot; slots are never reused within a run, so any handle collected by a scan
// stays meaningful after later mutations. Adjacency is a set of handles, kept
// symmetric by every mutating method: A is adjacent to B exactly when B is
// adjacent to A, and no node is ever adjacent to itself.
//
// Locations are referenced, not owned. A node carries at most one location;
// nodes created while resolving intersections carry none.
//
// # Preserved behaviour
//
// Intersection resolution deliberately keeps the editor's historical
// arithmetic:
//
//   - ModeLine tests the infinite lines through two segments and never checks
//     that the crossing lies inside either segment. ModeSegment adds that
//     check. DefaultIntersectOptions keeps ModeLine, but with three or more
//     mutually non-parallel edges the truncated crossings keep landing beside
//     the existing ones, so the phase re-splits until MaxSplits and fails with
//     ErrSplitLimit. The pipeline configuration defaults to ModeSegment.
//   - A zero-length edge has no direction and aborts the phase with
//     ErrDegenerateSegment.
//   - Slopes are compared with exact float equality; equal slopes are treated
//     as parallel and never intersect, even when the segments overlap.
//   - Vertical segments have no slope. VerticalFail aborts the phase with a
//     *GeometryError, VerticalSkip leaves such segments untested.
//
// Export emits every undirected edge twice, once from each endpoint, unless
// the caller asks for deduplication.
//
// # Concurrency
//
// A Graph belongs to exactly one optimization run and is not safe for
// concurrent use. The context passed to each phase carries the logger;
// ResolveIntersections also stops when it is cancelled.
package graph
