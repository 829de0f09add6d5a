package app_test

import (
	"context"
	"errors"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/pathgraph/internal/config"
	"github.com/specialistvlad/pathgraph/internal/dataset"
	"github.com/specialistvlad/pathgraph/internal/geometry"
	"github.com/specialistvlad/pathgraph/internal/graph"
	"github.com/specialistvlad/pathgraph/internal/location"
	"github.com/specialistvlad/pathgraph/internal/serialization"
	"github.com/specialistvlad/pathgraph/internal/store"
	"github.com/specialistvlad/pathgraph/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// campus is two crossing walkways and a spur towards the library. Paths 1 and
// 3 share (10,10).
func campus() dataset.Dataset {
	return dataset.Dataset{
		Paths: []geometry.Path{
			{geometry.Pt(0, 0), geometry.Pt(10, 10)},
			{geometry.Pt(0, 10), geometry.Pt(10, 0)},
			{geometry.Pt(10, 10), geometry.Pt(20, 0)},
		},
		Locations: []*location.Location{
			{ID: 7, Coord: geometry.Pt(20, 0), Name: "Library", AllowIntersections: true, DisplayName: true},
		},
	}
}

const segmentMode = `
optimize {
  mode = "segment"
}
`

func TestRun_OptimizesCampus(t *testing.T) {
	t.Parallel()

	// --- Act ---
	result := testutil.RunHCLPipelineTest(t, campus(), segmentMode)

	// --- Assert ---
	require.NoError(t, result.Err)
	res := result.Result
	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, 6, res.Built.Nodes)
	assert.Equal(t, 1, res.Condense.Merged)
	assert.Equal(t, 1, res.Intersect.Splits)
	assert.Equal(t, []geometry.Point{geometry.Pt(5, 5)}, res.Intersect.Created)
	assert.Equal(t, graph.Stats{Nodes: 6, Edges: 5, Synthetic: 1, WithLocation: 1, DistinctCoord: 6}, res.Final)

	out := result.Output(t)
	assert.Len(t, out.Paths, 10, "every edge is written from both ends")
	assert.Contains(t, out.Paths, geometry.Path{geometry.Pt(5, 5), geometry.Pt(0, 0)})
	assert.Contains(t, out.Paths, geometry.Path{geometry.Pt(20, 0), geometry.Pt(10, 10)})
	assert.NotContains(t, out.Paths, geometry.Path{geometry.Pt(0, 0), geometry.Pt(10, 10)})
	require.Len(t, out.Locations, 1)
	assert.Equal(t, 7, out.Locations[0].ID)
	assert.Equal(t, "Library", out.Locations[0].Name)

	testutil.AssertLogged(t, result, "Graph condensed.", "merged=1")
	testutil.AssertLogged(t, result, "Intersections resolved.", "splits=1")
	testutil.AssertLogged(t, result, "Optimization run finished.", "run_id="+res.RunID)
}

func TestRun_MissingInputIsTolerated(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{
		"pipeline.hcl": `
input {
  paths     = "{{dir}}/absent/paths.dat"
  locations = "{{dir}}/absent/locations.dat"
}

output {
  paths     = "{{dir}}/out/paths.dat"
  locations = "{{dir}}/out/locations.dat"
}
`,
	}

	// --- Act ---
	result := testutil.RunPipeline(t, files)

	// --- Assert ---
	require.NoError(t, result.Err)
	assert.ErrorIs(t, result.Result.Load.PathsErr, store.ErrMissingInput)
	assert.ErrorIs(t, result.Result.Load.LocationsErr, store.ErrMissingInput)
	assert.Zero(t, result.Result.Final.Nodes)
	testutil.AssertLogged(t, result, "Input not found", "collection=paths")

	out := testutil.ReadDataset(t, store.FormatBinary, result.Path("out/paths.dat"), result.Path("out/locations.dat"))
	assert.True(t, out.Empty())
}

func TestRun_MalformedInputIsTolerated(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{
		"in/paths.dat":     "not a path file",
		"in/locations.dat": "not a location file",
		"pipeline.hcl": `
input {
  paths     = "{{dir}}/in/paths.dat"
  locations = "{{dir}}/in/locations.dat"
}

output {
  paths     = "{{dir}}/out/paths.dat"
  locations = "{{dir}}/out/locations.dat"
}
`,
	}

	// --- Act ---
	result := testutil.RunPipeline(t, files)

	// --- Assert ---
	require.NoError(t, result.Err)
	assert.ErrorIs(t, result.Result.Load.PathsErr, store.ErrMalformedData)
	assert.ErrorIs(t, result.Result.Load.LocationsErr, store.ErrMalformedData)
	testutil.AssertLogged(t, result, "Input is malformed", "level=ERROR")
}

func TestRun_VerticalSegmentAbortsRun(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	input := dataset.Dataset{Paths: []geometry.Path{
		{geometry.Pt(5, 0), geometry.Pt(5, 10)},
		{geometry.Pt(0, 3), geometry.Pt(10, 4)},
	}}

	// --- Act ---
	result := testutil.RunHCLPipelineTest(t, input, "")

	// --- Assert ---
	require.Error(t, result.Err)
	var geomErr *graph.GeometryError
	require.ErrorAs(t, result.Err, &geomErr)
	assert.ErrorIs(t, result.Err, graph.ErrVerticalSegment)
	assert.Equal(t, [2]geometry.Point{geometry.Pt(5, 0), geometry.Pt(5, 10)}, geomErr.Segment)

	_, err := os.Stat(result.Path(testutil.OutputPaths))
	assert.ErrorIs(t, err, fs.ErrNotExist, "nothing is written after a geometry failure")
	testutil.AssertLogged(t, result, "Optimization run failed.")
}

func TestRun_VerticalSegmentsSkipped(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	input := dataset.Dataset{Paths: []geometry.Path{
		{geometry.Pt(5, 0), geometry.Pt(5, 10)},
		{geometry.Pt(0, 3), geometry.Pt(10, 4)},
	}}

	// --- Act ---
	result := testutil.RunHCLPipelineTest(t, input, `
optimize {
  vertical = "skip"
}
`)

	// --- Assert ---
	require.NoError(t, result.Err)
	assert.Zero(t, result.Result.Intersect.Splits)
	assert.Len(t, result.Output(t).Paths, 4)
}

func TestRun_CancelledContextWritesNothing(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	files := map[string]string{
		"pipeline.hcl": `
input {
  paths     = "{{dir}}/in/paths.dat"
  locations = "{{dir}}/in/locations.dat"
}

output {
  paths     = "{{dir}}/out/paths.dat"
  locations = "{{dir}}/out/locations.dat"
}
`,
	}
	writeCampus := func(dir string) {
		testutil.WriteDataset(t, store.FormatBinary,
			filepath.Join(dir, "in/paths.dat"), filepath.Join(dir, "in/locations.dat"), campus())
	}

	// --- Act ---
	result := testutil.RunPipelineWithContext(ctx, t, files, writeCampus)

	// --- Assert ---
	require.ErrorIs(t, result.Err, context.Canceled)
	assert.Zero(t, result.Result.Intersect.Splits)
	_, err := os.Stat(result.Path("out/paths.dat"))
	assert.ErrorIs(t, err, fs.ErrNotExist, "an interrupted run writes no output")
	testutil.AssertLogged(t, result, "Optimization run failed.")
}

func TestRun_DedupeAndRoutingGraph(t *testing.T) {
	t.Parallel()

	// --- Act ---
	result := testutil.RunHCLPipelineTest(t, campus(), `
optimize {
  mode   = "segment"
  dedupe = true
}

output {
  routing_graph = "{{dir}}/out/routes.json"
}
`)

	// --- Assert ---
	require.NoError(t, result.Err)
	assert.Len(t, result.Output(t).Paths, 5)

	rg, err := store.LoadRoutingGraph(result.Path("out/routes.json"), serialization.CompressionNone)
	require.NoError(t, err)
	assert.Len(t, rg.Vertices, 5, "(10,10) is a plain pass-through")
	require.Len(t, rg.Edges, 4)

	var spur *graph.RouteEdge
	for i, e := range rg.Edges {
		if len(e.Path) == 3 {
			spur = &rg.Edges[i]
		}
	}
	require.NotNil(t, spur, "the chain through (10,10) collapses into one edge")
	assert.InDelta(t, math.Sqrt(50)+math.Sqrt(200), spur.Weight, 1e-9)
}

func TestRun_CompressIDs(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	input := dataset.Dataset{
		Paths: []geometry.Path{{geometry.Pt(1, 1)}, {geometry.Pt(2, 2)}},
		Locations: []*location.Location{
			{ID: 40, Coord: geometry.Pt(1, 1), Name: "Gym"},
			{ID: 41, Coord: geometry.Pt(2, 2), Name: "Pool"},
		},
	}

	// --- Act ---
	result := testutil.RunHCLPipelineTest(t, input, `
optimize {
  compress_ids = true
}
`)

	// --- Assert ---
	require.NoError(t, result.Err)
	out := result.Output(t)
	require.Len(t, out.Locations, 2)
	assert.Equal(t, 1, out.Locations[0].ID)
	assert.Equal(t, 2, out.Locations[1].ID)
	assert.Equal(t, 3, result.App.Allocator().Peek())
	assert.Equal(t, []geometry.Path{{geometry.Pt(1, 1)}, {geometry.Pt(2, 2)}}, out.Paths)
}

func TestRun_SQLiteOutputRecordsRuns(t *testing.T) {
	t.Parallel()

	// --- Act ---
	result := testutil.RunHCLPipelineTest(t, campus(), `
optimize {
  mode = "segment"
}

output {
  format        = "sqlite"
  database      = "{{dir}}/campus.db"
  intersections = "crossings"
}
`)

	// --- Assert ---
	require.NoError(t, result.Err)

	ctx := context.Background()
	db, err := store.OpenSQLite(ctx, result.Path("campus.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	st := store.NewSQLiteStore(db, config.DefaultOutputDataset)

	paths, err := st.LoadPaths(ctx)
	require.NoError(t, err)
	assert.Len(t, paths, 10)

	crossings, err := st.WithDataset("crossings").LoadPaths(ctx)
	require.NoError(t, err)
	assert.Equal(t, []geometry.Path{{geometry.Pt(5, 5)}}, crossings)

	runs, err := st.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, result.Result.RunID, runs[0].ID)
	assert.Equal(t, "ok", runs[0].Status)
	assert.Equal(t, 1, runs[0].Splits)
	assert.Equal(t, 6, runs[0].Nodes)
}

func TestRun_SQLiteRecordsFailedRun(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	input := dataset.Dataset{Paths: []geometry.Path{
		{geometry.Pt(5, 0), geometry.Pt(5, 10)},
		{geometry.Pt(0, 3), geometry.Pt(10, 4)},
	}}

	// --- Act ---
	result := testutil.RunHCLPipelineTest(t, input, `
output {
  format   = "sqlite"
  database = "{{dir}}/campus.db"
}
`)

	// --- Assert ---
	require.ErrorIs(t, result.Err, graph.ErrVerticalSegment)

	ctx := context.Background()
	db, err := store.OpenSQLite(ctx, result.Path("campus.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	runs, err := store.NewSQLiteStore(db, config.DefaultOutputDataset).Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "failed", runs[0].Status)
	assert.Contains(t, runs[0].Error, "vertical segment")
}

func TestRun_ReadsSQLiteInput(t *testing.T) {
	t.Parallel()

	// --- Act ---
	result := testutil.RunPipeline(t, map[string]string{
		"pipeline.hcl": `
input {
  format   = "sqlite"
  database = "{{dir}}/maps.db"
  dataset  = "north"
}

optimize {
  mode = "segment"
}

output {
  format    = "xml"
  paths     = "{{dir}}/out/paths.xml"
  locations = "{{dir}}/out/locations.xml"
}
`,
	}, func(dir string) {
		ctx := context.Background()
		db, err := store.OpenSQLite(ctx, filepath.Join(dir, "maps.db"))
		require.NoError(t, err)
		defer db.Close()
		st := store.NewSQLiteStore(db, "north")
		require.NoError(t, st.SavePaths(ctx, campus().Paths))
		require.NoError(t, st.SaveLocations(ctx, campus().Locations))
	})

	// --- Assert ---
	require.NoError(t, result.Err)
	assert.Equal(t, 1, result.Result.Intersect.Splits)

	out := testutil.ReadDataset(t, store.FormatXML, result.Path("out/paths.xml"), result.Path("out/locations.xml"))
	assert.NotEmpty(t, out.Paths)
	require.Len(t, out.Locations, 1)
	assert.Equal(t, "Library", out.Locations[0].Name)
}

func TestRun_MissingSQLiteInputIsTolerated(t *testing.T) {
	t.Parallel()

	// --- Act ---
	result := testutil.RunPipeline(t, map[string]string{
		"pipeline.hcl": `
input {
  format   = "sqlite"
  database = "{{dir}}/absent.db"
}

output {
  paths     = "{{dir}}/out/paths.dat"
  locations = "{{dir}}/out/locations.dat"
}
`,
	})

	// --- Assert ---
	require.NoError(t, result.Err)
	assert.ErrorIs(t, result.Result.Load.PathsErr, store.ErrMissingInput)
	_, err := os.Stat(result.Path("absent.db"))
	assert.True(t, errors.Is(err, fs.ErrNotExist), "a missing input database is not created")
}

func TestNewApp_InvalidConfiguration(t *testing.T) {
	t.Parallel()

	// --- Act ---
	result := testutil.RunPipeline(t, map[string]string{
		"pipeline.hcl": `
optimize {
  mode = "diagonal"
}
`,
	})

	// --- Assert ---
	require.ErrorIs(t, result.Err, config.ErrInvalid)
	assert.Nil(t, result.App)
	assert.Contains(t, result.Err.Error(), "failed to load configuration")
}
