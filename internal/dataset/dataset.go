// Package dataset defines the raw path/location collections exchanged between
// the storage layer and the path-graph optimizer.
package dataset

import (
	"github.com/specialistvlad/pathgraph/internal/geometry"
	"github.com/specialistvlad/pathgraph/internal/location"
)

// Dataset is the shape the editor reads and writes: an ordered list of
// polylines and an ordered list of locations.
type Dataset struct {
	Paths     []geometry.Path      `json:"paths" msgpack:"paths"`
	Locations []*location.Location `json:"locations" msgpack:"locations"`
}

// Empty reports whether the dataset carries neither paths nor locations.
func (d Dataset) Empty() bool {
	return len(d.Paths) == 0 && len(d.Locations) == 0
}

// PointCount returns the number of points over all paths.
func (d Dataset) PointCount() int {
	return geometry.CountPoints(d.Paths)
}

// Clone returns a deep copy of d.
func (d Dataset) Clone() Dataset {
	out := Dataset{}
	if d.Paths != nil {
		out.Paths = make([]geometry.Path, len(d.Paths))
		for i, p := range d.Paths {
			out.Paths[i] = p.Clone()
		}
	}
	if d.Locations != nil {
		out.Locations = make([]*location.Location, len(d.Locations))
		for i, l := range d.Locations {
			out.Locations[i] = l.Clone()
		}
	}
	return out
}
