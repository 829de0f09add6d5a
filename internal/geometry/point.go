package geometry

import (
	"fmt"

	"github.com/jbeda/geom"
)

// Point is an integer (x, y) pair on the editor's pixel grid. Two points are
// equal only when both coordinates match exactly.
type Point struct {
	X int `json:"x" msgpack:"x"`
	Y int `json:"y" msgpack:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// String renders the point as "(x, y)".
func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Coord converts the point to a floating point geom.Coord.
func (p Point) Coord() geom.Coord {
	return geom.Coord{X: float64(p.X), Y: float64(p.Y)}
}

// DistanceTo returns the Euclidean distance between p and q.
func (p Point) DistanceTo(q Point) float64 {
	return p.Coord().DistanceFrom(q.Coord())
}

// Path is an ordered polyline as drawn by the user. Consecutive points are
// connected.
type Path []Point

// Clone returns a copy of the path that shares no storage with p.
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// CountPoints returns the total number of points over all paths.
func CountPoints(paths []Path) int {
	n := 0
	for _, p := range paths {
		n += len(p)
	}
	return n
}
