package geometry

import (
	"github.com/jbeda/geom"
)

// Slope returns dy/dx of the segment a-b. ok is false when the segment is
// vertical (a.X == b.X), in which case the slope is undefined.
func Slope(a, b Point) (slope float64, ok bool) {
	if a.X == b.X {
		return 0, false
	}
	return float64(b.Y-a.Y) / float64(b.X-a.X), true
}

// Crossing computes where the infinite line through a1 with slope mA meets the
// infinite line through b1 with slope mB. The X coordinate is solved from both
// line equations, each line's Y is evaluated at that X, and both values are
// truncated toward zero. ok reports whether the truncated Ys agree; the
// returned point is the truncated (X, Y).
//
// Slopes must differ; equal slopes describe parallel lines and the caller is
// expected to skip them before calling Crossing.
func Crossing(a1 Point, mA float64, b1 Point, mB float64) (p Point, ok bool) {
	x := ((mA*float64(a1.X) - float64(a1.Y)) - (mB*float64(b1.X) - float64(b1.Y))) / (mA - mB)
	yA := mA*(x-float64(a1.X)) + float64(a1.Y)
	yB := mB*(x-float64(b1.X)) + float64(b1.Y)
	if int(yA) != int(yB) {
		return Point{}, false
	}
	return Point{X: int(x), Y: int(yA)}, true
}

// Bounds returns the axis-aligned rectangle spanned by the segment a-b.
func Bounds(a, b Point) geom.Rect {
	r := geom.Rect{Min: a.Coord(), Max: a.Coord()}
	r.ExpandToContainCoord(b.Coord())
	return r
}

// WithinBounds reports whether p lies inside the closed bounding rectangle of
// the segment a-b.
func WithinBounds(p, a, b Point) bool {
	return Bounds(a, b).ContainsCoord(p.Coord())
}
