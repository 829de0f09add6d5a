package graph

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/pathgraph/internal/geometry"
)

var (
	// ErrVerticalSegment indicates a segment with no defined slope.
	ErrVerticalSegment = errors.New("graph: vertical segment has no slope")
	// ErrDegenerateSegment indicates an edge whose endpoints share a coordinate.
	ErrDegenerateSegment = errors.New("graph: zero-length segment")
	// ErrSplitLimit indicates intersection resolution exceeded its split budget.
	ErrSplitLimit = errors.New("graph: intersection split limit exceeded")
	// ErrSelfLoop indicates a node adjacent to itself.
	ErrSelfLoop = errors.New("graph: self-loop")
	// ErrAsymmetric indicates an adjacency without its mirror.
	ErrAsymmetric = errors.New("graph: asymmetric adjacency")
	// ErrDanglingEdge indicates an adjacency to a removed node.
	ErrDanglingEdge = errors.New("graph: edge to removed node")
)

// GeometryError reports a segment the intersection arithmetic cannot handle.
// It aborts the intersection phase.
type GeometryError struct {
	Segment [2]geometry.Point
	Against [2]geometry.Point
	Err     error
}

// Error implements the error interface.
func (e *GeometryError) Error() string {
	return fmt.Sprintf("segment %s-%s tested against %s-%s: %v",
		e.Segment[0], e.Segment[1], e.Against[0], e.Against[1], e.Err)
}

// Unwrap returns the underlying cause.
func (e *GeometryError) Unwrap() error {
	return e.Err
}
