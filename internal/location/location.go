package location

import (
	"fmt"

	"github.com/specialistvlad/pathgraph/internal/geometry"
)

// NoLinkName is the reserved name of locations that mark the ends of a bridge
// or tunnel. A segment between two such locations never intersects anything.
const NoLinkName = "<nolink>"

// Location is a named point of interest on the map.
type Location struct {
	ID    int            `json:"id" msgpack:"id"`
	Coord geometry.Point `json:"coord" msgpack:"coord"`
	Name  string         `json:"name" msgpack:"name" validate:"required"`

	BuildingCode string   `json:"code,omitempty" msgpack:"code,omitempty"`
	Keywords     string   `json:"keywords,omitempty" msgpack:"keywords,omitempty"`
	Aliases      []string `json:"aliases,omitempty" msgpack:"aliases,omitempty" validate:"dive,required"`

	// CanPassThrough allows routes to use this point when linking paths.
	CanPassThrough bool `json:"passThrough" msgpack:"passThrough"`
	// AllowIntersections allows crossings to be materialized at this point.
	AllowIntersections bool `json:"intersect" msgpack:"intersect"`
	// DisplayName controls whether the name is rendered on the map.
	DisplayName bool `json:"displayName" msgpack:"displayName"`
}

// New creates a location at p with the next ID from alloc. Flags take the
// editor's defaults: intersections allowed, name displayed, no pass-through.
func New(alloc *IDAllocator, p geometry.Point, name string) *Location {
	return &Location{
		ID:                 alloc.Next(),
		Coord:              p,
		Name:               name,
		AllowIntersections: true,
		DisplayName:        true,
	}
}

// IsNoLink reports whether l marks a bridge or tunnel end.
func (l *Location) IsNoLink() bool {
	return l != nil && l.Name == NoLinkName
}

// String renders the location as "name @ (x, y)".
func (l *Location) String() string {
	return fmt.Sprintf("%s @ %s", l.Name, l.Coord)
}

// Clone returns a deep copy of l.
func (l *Location) Clone() *Location {
	if l == nil {
		return nil
	}
	c := *l
	if l.Aliases != nil {
		c.Aliases = append([]string(nil), l.Aliases...)
	}
	return &c
}
