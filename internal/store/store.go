package store

import (
	"context"
	"fmt"

	"github.com/specialistvlad/pathgraph/internal/geometry"
	"github.com/specialistvlad/pathgraph/internal/location"
)

// Collection names used in errors, logs and metrics.
const (
	CollectionPaths     = "paths"
	CollectionLocations = "locations"
)

// Source supplies raw paths and locations.
type Source interface {
	LoadPaths(ctx context.Context) ([]geometry.Path, error)
	LoadLocations(ctx context.Context) ([]*location.Location, error)
}

// Sink persists paths and locations.
type Sink interface {
	SavePaths(ctx context.Context, paths []geometry.Path) error
	SaveLocations(ctx context.Context, locs []*location.Location) error
}

// Format selects a file backend.
type Format string

const (
	FormatBinary Format = "binary"
	FormatXML    Format = "xml"
	FormatSQLite Format = "sqlite"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatBinary, FormatXML, FormatSQLite:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q (want \"binary\", \"xml\" or \"sqlite\")", ErrUnknownFormat, s)
}
