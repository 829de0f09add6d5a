package store

import (
	"context"
	"errors"

	"github.com/specialistvlad/pathgraph/internal/ctxlog"
	"github.com/specialistvlad/pathgraph/internal/dataset"
	"github.com/specialistvlad/pathgraph/internal/location"
	"github.com/specialistvlad/pathgraph/internal/metrics"
)

// MaxIDHinter is implemented by sources whose files announce the highest
// location ID in use.
type MaxIDHinter interface {
	MaxIDHint() int
}

// LoadOptions tunes Load.
type LoadOptions struct {
	// CompressIDs renumbers the loaded locations 1..n in load order.
	CompressIDs bool
}

// LoadReport describes what Load had to tolerate.
type LoadReport struct {
	PathsErr     error
	LocationsErr error
	// Dropped counts locations rejected by validation.
	Dropped int
}

// Load reads both collections from src. A collection that is missing or
// malformed is logged and replaced by an empty one; the cause is kept in the
// report. Invalid locations are logged and dropped.
//
// Location IDs are reconciled with alloc: with CompressIDs the allocator is
// reset and every location renumbered, otherwise every loaded ID is observed
// so later allocations never collide, and locations without an ID (0) get a
// fresh one.
func Load(ctx context.Context, src Source, alloc *location.IDAllocator, opts LoadOptions) (dataset.Dataset, LoadReport) {
	logger := ctxlog.FromContext(ctx)
	var (
		ds     dataset.Dataset
		report LoadReport
	)

	paths, err := src.LoadPaths(ctx)
	if err != nil {
		report.PathsErr = err
		logLoadFailure(ctx, CollectionPaths, err)
	} else {
		ds.Paths = paths
	}

	locs, err := src.LoadLocations(ctx)
	if err != nil {
		report.LocationsErr = err
		logLoadFailure(ctx, CollectionLocations, err)
	}
	for _, l := range locs {
		if err := location.Validate(l); err != nil {
			report.Dropped++
			logger.Warn("Dropping invalid location.", "error", err)
			continue
		}
		ds.Locations = append(ds.Locations, l)
	}

	if opts.CompressIDs {
		alloc.Reset()
		for _, l := range ds.Locations {
			l.ID = alloc.Next()
		}
	} else {
		if h, ok := src.(MaxIDHinter); ok {
			alloc.Observe(h.MaxIDHint())
		}
		for _, l := range ds.Locations {
			alloc.Observe(l.ID)
		}
		for _, l := range ds.Locations {
			if l.ID == 0 {
				l.ID = alloc.Next()
			}
		}
	}

	logger.Info("Input loaded.",
		"paths", len(ds.Paths), "points", ds.PointCount(),
		"locations", len(ds.Locations), "dropped_locations", report.Dropped,
		"next_location_id", alloc.Peek())
	return ds, report
}

func logLoadFailure(ctx context.Context, collection string, err error) {
	logger := ctxlog.FromContext(ctx)
	metrics.IncLoadFailure(collection)
	switch {
	case errors.Is(err, ErrMissingInput):
		logger.Warn("Input not found; continuing with an empty collection.", "collection", collection, "error", err)
	case errors.Is(err, ErrMalformedData):
		logger.Error("Input is malformed; continuing with an empty collection.", "collection", collection, "error", err)
	default:
		logger.Error("Input could not be read; continuing with an empty collection.", "collection", collection, "error", err)
	}
}
