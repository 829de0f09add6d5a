package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/specialistvlad/pathgraph/internal/ctxlog"
	"github.com/specialistvlad/pathgraph/internal/geometry"
	"github.com/specialistvlad/pathgraph/internal/location"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS paths (
	dataset    TEXT    NOT NULL,
	path_index INTEGER NOT NULL,
	PRIMARY KEY (dataset, path_index)
);
CREATE TABLE IF NOT EXISTS path_points (
	dataset    TEXT    NOT NULL,
	path_index INTEGER NOT NULL,
	seq        INTEGER NOT NULL,
	x          INTEGER NOT NULL,
	y          INTEGER NOT NULL,
	PRIMARY KEY (dataset, path_index, seq)
);
CREATE TABLE IF NOT EXISTS locations (
	dataset      TEXT    NOT NULL,
	seq          INTEGER NOT NULL,
	id           INTEGER NOT NULL,
	x            INTEGER NOT NULL,
	y            INTEGER NOT NULL,
	name         TEXT    NOT NULL,
	code         TEXT    NOT NULL DEFAULT '',
	keywords     TEXT    NOT NULL DEFAULT '',
	pass_through INTEGER NOT NULL DEFAULT 0,
	intersect    INTEGER NOT NULL DEFAULT 1,
	display_name INTEGER NOT NULL DEFAULT 1,
	PRIMARY KEY (dataset, seq)
);
CREATE TABLE IF NOT EXISTS location_aliases (
	dataset      TEXT    NOT NULL,
	location_seq INTEGER NOT NULL,
	seq          INTEGER NOT NULL,
	alias        TEXT    NOT NULL,
	PRIMARY KEY (dataset, location_seq, seq)
);
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	started_at  INTEGER NOT NULL,
	finished_at INTEGER NOT NULL,
	input       TEXT    NOT NULL,
	output      TEXT    NOT NULL,
	nodes       INTEGER NOT NULL,
	edges       INTEGER NOT NULL,
	merged      INTEGER NOT NULL,
	splits      INTEGER NOT NULL,
	status      TEXT    NOT NULL,
	error       TEXT    NOT NULL DEFAULT ''
);
`

// OpenSQLite opens (or creates) a database file and ensures the schema
// exists.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// One connection keeps ":memory:" databases coherent and serializes
	// writers.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema in %s: %w", path, err)
	}
	return db, nil
}

// SQLiteStore reads and writes one named dataset of a database.
type SQLiteStore struct {
	db      *sql.DB
	dataset string
}

// NewSQLiteStore returns a store bound to dataset.
func NewSQLiteStore(db *sql.DB, dataset string) *SQLiteStore {
	return &SQLiteStore{db: db, dataset: dataset}
}

// Dataset returns the dataset name the store is bound to.
func (s *SQLiteStore) Dataset() string { return s.dataset }

// WithDataset returns a store on the same database bound to another dataset.
func (s *SQLiteStore) WithDataset(name string) *SQLiteStore {
	return &SQLiteStore{db: s.db, dataset: name}
}

// LoadPaths reads the dataset's paths in their saved order.
func (s *SQLiteStore) LoadPaths(ctx context.Context) ([]geometry.Path, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM paths WHERE dataset = ?`, s.dataset).Scan(&count); err != nil {
		return nil, fmt.Errorf("count paths: %w", err)
	}
	if count == 0 {
		return nil, &MissingInputError{Collection: CollectionPaths, Source: s.dataset, Err: sql.ErrNoRows}
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT p.path_index, pp.x, pp.y
		FROM paths p
		LEFT JOIN path_points pp ON pp.dataset = p.dataset AND pp.path_index = p.path_index
		WHERE p.dataset = ?
		ORDER BY p.path_index, pp.seq`, s.dataset)
	if err != nil {
		return nil, fmt.Errorf("query paths: %w", err)
	}
	defer rows.Close()

	paths := make([]geometry.Path, 0, count)
	last := -1
	for rows.Next() {
		var (
			idx  int
			x, y sql.NullInt64
		)
		if err := rows.Scan(&idx, &x, &y); err != nil {
			return nil, &MalformedDataError{Collection: CollectionPaths, Source: s.dataset, Err: err}
		}
		if idx != last {
			paths = append(paths, geometry.Path{})
			last = idx
		}
		if x.Valid && y.Valid {
			i := len(paths) - 1
			paths[i] = append(paths[i], geometry.Pt(int(x.Int64), int(y.Int64)))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, &MalformedDataError{Collection: CollectionPaths, Source: s.dataset, Err: err}
	}
	ctxlog.FromContext(ctx).Debug("Paths loaded from database.", "dataset", s.dataset, "paths", len(paths))
	return paths, nil
}

// LoadLocations reads the dataset's locations and their aliases.
func (s *SQLiteStore) LoadLocations(ctx context.Context) ([]*location.Location, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, id, x, y, name, code, keywords, pass_through, intersect, display_name
		FROM locations WHERE dataset = ? ORDER BY seq`, s.dataset)
	if err != nil {
		return nil, fmt.Errorf("query locations: %w", err)
	}
	defer rows.Close()

	var locs []*location.Location
	bySeq := make(map[int]*location.Location)
	for rows.Next() {
		var (
			seq  int
			l    location.Location
			x, y int
		)
		if err := rows.Scan(&seq, &l.ID, &x, &y, &l.Name, &l.BuildingCode, &l.Keywords,
			&l.CanPassThrough, &l.AllowIntersections, &l.DisplayName); err != nil {
			return nil, &MalformedDataError{Collection: CollectionLocations, Source: s.dataset, Err: err}
		}
		l.Coord = geometry.Pt(x, y)
		locs = append(locs, &l)
		bySeq[seq] = &l
	}
	if err := rows.Err(); err != nil {
		return nil, &MalformedDataError{Collection: CollectionLocations, Source: s.dataset, Err: err}
	}
	if len(locs) == 0 {
		return nil, &MissingInputError{Collection: CollectionLocations, Source: s.dataset, Err: sql.ErrNoRows}
	}

	aliasRows, err := s.db.QueryContext(ctx, `
		SELECT location_seq, alias FROM location_aliases
		WHERE dataset = ? ORDER BY location_seq, seq`, s.dataset)
	if err != nil {
		return nil, fmt.Errorf("query aliases: %w", err)
	}
	defer aliasRows.Close()
	for aliasRows.Next() {
		var (
			seq   int
			alias string
		)
		if err := aliasRows.Scan(&seq, &alias); err != nil {
			return nil, &MalformedDataError{Collection: CollectionLocations, Source: s.dataset, Err: err}
		}
		if l, ok := bySeq[seq]; ok {
			l.AddAlias(alias)
		}
	}
	if err := aliasRows.Err(); err != nil {
		return nil, &MalformedDataError{Collection: CollectionLocations, Source: s.dataset, Err: err}
	}

	ctxlog.FromContext(ctx).Debug("Locations loaded from database.", "dataset", s.dataset, "locations", len(locs))
	return locs, nil
}

// SavePaths replaces the dataset's paths.
func (s *SQLiteStore) SavePaths(ctx context.Context, paths []geometry.Path) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, q := range []string{
			`DELETE FROM path_points WHERE dataset = ?`,
			`DELETE FROM paths WHERE dataset = ?`,
		} {
			if _, err := tx.ExecContext(ctx, q, s.dataset); err != nil {
				return fmt.Errorf("clear paths: %w", err)
			}
		}
		for i, p := range paths {
			if _, err := tx.ExecContext(ctx, `INSERT INTO paths (dataset, path_index) VALUES (?, ?)`, s.dataset, i); err != nil {
				return fmt.Errorf("insert path %d: %w", i, err)
			}
			for j, pt := range p {
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO path_points (dataset, path_index, seq, x, y) VALUES (?, ?, ?, ?, ?)`,
					s.dataset, i, j, pt.X, pt.Y); err != nil {
					return fmt.Errorf("insert point %d of path %d: %w", j, i, err)
				}
			}
		}
		return nil
	})
}

// SaveLocations replaces the dataset's locations.
func (s *SQLiteStore) SaveLocations(ctx context.Context, locs []*location.Location) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, q := range []string{
			`DELETE FROM location_aliases WHERE dataset = ?`,
			`DELETE FROM locations WHERE dataset = ?`,
		} {
			if _, err := tx.ExecContext(ctx, q, s.dataset); err != nil {
				return fmt.Errorf("clear locations: %w", err)
			}
		}
		for i, l := range locs {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO locations (dataset, seq, id, x, y, name, code, keywords, pass_through, intersect, display_name)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				s.dataset, i, l.ID, l.Coord.X, l.Coord.Y, l.Name, l.BuildingCode, l.Keywords,
				l.CanPassThrough, l.AllowIntersections, l.DisplayName); err != nil {
				return fmt.Errorf("insert location %d: %w", l.ID, err)
			}
			for j, a := range l.Aliases {
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO location_aliases (dataset, location_seq, seq, alias) VALUES (?, ?, ?, ?)`,
					s.dataset, i, j, a); err != nil {
					return fmt.Errorf("insert alias %d of location %d: %w", j, l.ID, err)
				}
			}
		}
		return nil
	})
}

func (s *SQLiteStore) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Run is one optimization run as recorded in the runs table.
type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Input      string
	Output     string
	Nodes      int
	Edges      int
	Merged     int
	Splits     int
	Status     string
	Error      string
}

// RecordRun inserts or replaces a run.
func (s *SQLiteStore) RecordRun(ctx context.Context, r Run) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO runs (id, started_at, finished_at, input, output, nodes, edges, merged, splits, status, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.StartedAt.UnixMilli(), r.FinishedAt.UnixMilli(), r.Input, r.Output,
		r.Nodes, r.Edges, r.Merged, r.Splits, r.Status, r.Error)
	if err != nil {
		return fmt.Errorf("record run %s: %w", r.ID, err)
	}
	return nil
}

// Runs lists recorded runs, oldest first.
func (s *SQLiteStore) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, finished_at, input, output, nodes, edges, merged, splits, status, error
		FROM runs ORDER BY started_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var (
			r                 Run
			started, finished int64
		)
		if err := rows.Scan(&r.ID, &started, &finished, &r.Input, &r.Output,
			&r.Nodes, &r.Edges, &r.Merged, &r.Splits, &r.Status, &r.Error); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.StartedAt, r.FinishedAt = time.UnixMilli(started), time.UnixMilli(finished)
		out = append(out, r)
	}
	return out, rows.Err()
}
