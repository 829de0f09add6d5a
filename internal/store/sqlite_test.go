package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/specialistvlad/pathgraph/internal/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "campus.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSQLiteStore(db, "raw")
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	// --- Arrange ---
	ctx := context.Background()
	s := openTestDB(t)
	paths := append(samplePaths(), geometry.Path{})

	// --- Act ---
	require.NoError(t, s.SavePaths(ctx, paths))
	require.NoError(t, s.SaveLocations(ctx, sampleLocations()))
	gotPaths, err := s.LoadPaths(ctx)
	require.NoError(t, err)
	gotLocs, err := s.LoadLocations(ctx)
	require.NoError(t, err)

	// --- Assert ---
	if diff := cmp.Diff(paths, gotPaths); diff != "" {
		t.Errorf("paths mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(sampleLocations(), gotLocs); diff != "" {
		t.Errorf("locations mismatch (-want +got):\n%s", diff)
	}
}

func TestSQLiteStore_SaveReplacesDataset(t *testing.T) {
	ctx := context.Background()
	s := openTestDB(t)
	require.NoError(t, s.SavePaths(ctx, samplePaths()))

	require.NoError(t, s.SavePaths(ctx, []geometry.Path{{geometry.Pt(1, 2)}}))

	got, err := s.LoadPaths(ctx)
	require.NoError(t, err)
	assert.Equal(t, []geometry.Path{{geometry.Pt(1, 2)}}, got)
}

func TestSQLiteStore_DatasetsAreIsolated(t *testing.T) {
	ctx := context.Background()
	raw := openTestDB(t)
	optimized := raw.WithDataset("optimized")
	require.NoError(t, raw.SavePaths(ctx, samplePaths()))

	_, err := optimized.LoadPaths(ctx)
	require.ErrorIs(t, err, ErrMissingInput)
	_, err = optimized.LoadLocations(ctx)
	require.ErrorIs(t, err, ErrMissingInput)
	assert.Equal(t, "optimized", optimized.Dataset())
}

func TestSQLiteStore_Runs(t *testing.T) {
	ctx := context.Background()
	s := openTestDB(t)
	started := time.UnixMilli(1_700_000_000_000)
	run := Run{
		ID:         uuid.NewString(),
		StartedAt:  started,
		FinishedAt: started.Add(1500 * time.Millisecond),
		Input:      "raw",
		Output:     "optimized",
		Nodes:      12,
		Edges:      14,
		Merged:     3,
		Splits:     2,
		Status:     "ok",
	}

	require.NoError(t, s.RecordRun(ctx, run))
	runs, err := s.Runs(ctx)

	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, run.ID, runs[0].ID)
	assert.True(t, run.StartedAt.Equal(runs[0].StartedAt))
	assert.True(t, run.FinishedAt.Equal(runs[0].FinishedAt))
	assert.Equal(t, 2, runs[0].Splits)
	assert.Equal(t, "ok", runs[0].Status)
}
