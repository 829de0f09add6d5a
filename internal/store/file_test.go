package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/pathgraph/internal/serialization"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_RoundTrip(t *testing.T) {
	for _, format := range []Format{FormatBinary, FormatXML} {
		t.Run(string(format), func(t *testing.T) {
			// --- Arrange ---
			ctx := context.Background()
			dir := filepath.Join(t.TempDir(), "out")
			s, err := NewFileStore(format, filepath.Join(dir, "paths.dat"), filepath.Join(dir, "locations.dat"),
				WithSerializer(serialization.New(serialization.Options{Compression: serialization.CompressionGzip})))
			require.NoError(t, err)

			// --- Act ---
			require.NoError(t, s.SavePaths(ctx, samplePaths()))
			require.NoError(t, s.SaveLocations(ctx, sampleLocations()))
			paths, err := s.LoadPaths(ctx)
			require.NoError(t, err)
			locs, err := s.LoadLocations(ctx)
			require.NoError(t, err)

			// --- Assert ---
			if diff := cmp.Diff(samplePaths(), paths); diff != "" {
				t.Errorf("paths mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(sampleLocations(), locs); diff != "" {
				t.Errorf("locations mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFileStore_MissingInput(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewFileStore(FormatBinary, filepath.Join(dir, "nope.dat"), "")
	require.NoError(t, err)

	_, err = s.LoadPaths(ctx)
	require.ErrorIs(t, err, ErrMissingInput)
	var missing *MissingInputError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, CollectionPaths, missing.Collection)

	_, err = s.LoadLocations(ctx)
	require.ErrorIs(t, err, ErrMissingInput, "an unset file name counts as missing")
}

func TestFileStore_MalformedInput(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.dat")
	require.NoError(t, os.WriteFile(bad, []byte("garbage"), 0o644))

	for _, format := range []Format{FormatBinary, FormatXML} {
		s, err := NewFileStore(format, bad, bad)
		require.NoError(t, err)

		_, err = s.LoadPaths(ctx)
		require.ErrorIs(t, err, ErrMalformedData, "format %s", format)
		_, err = s.LoadLocations(ctx)
		require.ErrorIs(t, err, ErrMalformedData, "format %s", format)
	}
}

func TestFileStore_XMLMaxIDHint(t *testing.T) {
	ctx := context.Background()
	name := filepath.Join(t.TempDir(), "locations.xml")
	require.NoError(t, os.WriteFile(name, []byte(editorLocations), 0o644))
	s, err := NewFileStore(FormatXML, "", name)
	require.NoError(t, err)

	_, err = s.LoadLocations(ctx)

	require.NoError(t, err)
	assert.Equal(t, 40, s.MaxIDHint())
}

func TestFileStore_XMLMaxIDHintSurvivesFailedReload(t *testing.T) {
	// --- Arrange ---
	ctx := context.Background()
	name := filepath.Join(t.TempDir(), "locations.xml")
	require.NoError(t, os.WriteFile(name, []byte(editorLocations), 0o644))
	s, err := NewFileStore(FormatXML, "", name)
	require.NoError(t, err)
	_, err = s.LoadLocations(ctx)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(name, []byte("<locations maxid=\"7\"><location"), 0o644))

	// --- Act ---
	_, err = s.LoadLocations(ctx)

	// --- Assert ---
	require.ErrorIs(t, err, ErrMalformedData)
	assert.Equal(t, 40, s.MaxIDHint())
}

func TestNewFileStore_RejectsSQLite(t *testing.T) {
	_, err := NewFileStore(FormatSQLite, "a", "b")
	require.ErrorIs(t, err, ErrUnknownFormat)

	_, err = ParseFormat("csv")
	require.ErrorIs(t, err, ErrUnknownFormat)
	f, err := ParseFormat("xml")
	require.NoError(t, err)
	assert.Equal(t, FormatXML, f)
}
