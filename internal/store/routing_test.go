package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/pathgraph/internal/geometry"
	"github.com/specialistvlad/pathgraph/internal/graph"
	"github.com/specialistvlad/pathgraph/internal/serialization"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoutingGraph_RoundTrip(t *testing.T) {
	ctx := context.Background()
	g := graph.Build(ctx, []geometry.Path{{geometry.Pt(0, 0), geometry.Pt(3, 0), geometry.Pt(3, 4)}}, nil)
	rg := graph.Reduce(g)

	for _, name := range []string{"routes.json", "routes.bin"} {
		t.Run(name, func(t *testing.T) {
			file := filepath.Join(t.TempDir(), name)

			require.NoError(t, SaveRoutingGraph(ctx, file, rg, serialization.CompressionZstd))
			got, err := LoadRoutingGraph(file, serialization.CompressionZstd)

			require.NoError(t, err)
			assert.Equal(t, rg, got)
		})
	}

	t.Run("json is readable", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "routes.json")
		require.NoError(t, SaveRoutingGraph(ctx, file, rg, serialization.CompressionZstd))

		data, err := os.ReadFile(file)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"weight":7`)
	})
}
