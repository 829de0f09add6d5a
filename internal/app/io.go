package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/specialistvlad/pathgraph/internal/config"
	"github.com/specialistvlad/pathgraph/internal/ctxlog"
	"github.com/specialistvlad/pathgraph/internal/store"
)

// openSource returns the configured input and a function releasing it.
func openSource(ctx context.Context, in config.Input) (store.Source, func(), error) {
	format, err := store.ParseFormat(in.Format)
	if err != nil {
		return nil, nil, err
	}
	if format != store.FormatSQLite {
		src, err := store.NewFileStore(format, in.Paths, in.Locations)
		if err != nil {
			return nil, nil, err
		}
		return src, func() {}, nil
	}

	// Opening would create the file; an absent database reads as empty.
	if _, err := os.Stat(in.Database); errors.Is(err, fs.ErrNotExist) {
		return store.NewMemoryStore(in.Database), func() {}, nil
	}
	db, err := store.OpenSQLite(ctx, in.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("open input database: %w", err)
	}
	return store.NewSQLiteStore(db, in.Dataset), func() { db.Close() }, nil
}

// outputs bundles every sink a run writes to.
type outputs struct {
	main store.Sink
	// intersections is nil unless the debug export is configured.
	intersections store.Sink
	// runs is set for sqlite output and records the run history.
	runs  *store.SQLiteStore
	close func() error
}

func openOutputs(ctx context.Context, p *config.Pipeline) (*outputs, error) {
	out := p.Output
	format, err := store.ParseFormat(out.Format)
	if err != nil {
		return nil, err
	}

	if format == store.FormatSQLite {
		db, err := store.OpenSQLite(ctx, out.Database)
		if err != nil {
			return nil, fmt.Errorf("open output database: %w", err)
		}
		main := store.NewSQLiteStore(db, out.Dataset)
		o := &outputs{main: main, runs: main, close: db.Close}
		if out.Intersections != "" {
			o.intersections = main.WithDataset(out.Intersections)
		}
		return o, nil
	}

	opts := []store.FileOption{
		store.WithSerializer(p.Serialization.Serializer()),
		store.WithBinaryVersion(byte(p.Serialization.Version)),
	}
	main, err := store.NewFileStore(format, out.Paths, out.Locations, opts...)
	if err != nil {
		return nil, err
	}
	o := &outputs{main: main, close: func() error { return nil }}
	if out.Intersections != "" {
		if o.intersections, err = store.NewFileStore(format, out.Intersections, "", opts...); err != nil {
			return nil, err
		}
	}
	ctxlog.FromContext(ctx).Debug("Output files configured.", "paths", out.Paths, "locations", out.Locations)
	return o, nil
}

// describeInput renders an input for the runs table.
func describeInput(in config.Input) string {
	if in.Format == string(store.FormatSQLite) {
		return fmt.Sprintf("sqlite:%s#%s", in.Database, in.Dataset)
	}
	return fmt.Sprintf("%s:%s,%s", in.Format, in.Paths, in.Locations)
}

func describeOutput(out config.Output) string {
	return describeInput(config.Input{
		Format: out.Format, Paths: out.Paths, Locations: out.Locations,
		Database: out.Database, Dataset: out.Dataset,
	})
}
