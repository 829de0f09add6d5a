package testutil

import (
	"context"
	"testing"

	"github.com/specialistvlad/pathgraph/internal/dataset"
	"github.com/specialistvlad/pathgraph/internal/store"
	"github.com/stretchr/testify/require"
)

// WriteDataset writes ds to a pair of files in the given format with the
// default serializer.
func WriteDataset(t *testing.T, format store.Format, pathsFile, locationsFile string, ds dataset.Dataset) {
	t.Helper()

	fs, err := store.NewFileStore(format, pathsFile, locationsFile)
	require.NoError(t, err)
	require.NoError(t, fs.SavePaths(context.Background(), ds.Paths))
	require.NoError(t, fs.SaveLocations(context.Background(), ds.Locations))
}

// ReadDataset reads a pair of files written in the given format. Both files
// must exist and decode.
func ReadDataset(t *testing.T, format store.Format, pathsFile, locationsFile string) dataset.Dataset {
	t.Helper()

	fs, err := store.NewFileStore(format, pathsFile, locationsFile)
	require.NoError(t, err)
	var ds dataset.Dataset
	ds.Paths, err = fs.LoadPaths(context.Background())
	require.NoError(t, err)
	ds.Locations, err = fs.LoadLocations(context.Background())
	require.NoError(t, err)
	return ds
}
