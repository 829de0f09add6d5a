package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/pathgraph/internal/ctxlog"
	"github.com/specialistvlad/pathgraph/internal/graph"
	"github.com/specialistvlad/pathgraph/internal/serialization"
)

// routingSerializer picks the encoding from the file extension: ".json" is
// plain JSON, anything else is msgpack with the configured compression.
func routingSerializer(name string, compression serialization.Compression) *serialization.Serializer {
	if strings.EqualFold(filepath.Ext(name), ".json") {
		return serialization.New(serialization.Options{Codec: serialization.JSON()})
	}
	return serialization.New(serialization.Options{Codec: serialization.MsgPack(), Compression: compression})
}

// SaveRoutingGraph writes rg to name.
func SaveRoutingGraph(ctx context.Context, name string, rg *graph.RoutingGraph, compression serialization.Compression) error {
	data, err := routingSerializer(name, compression).Marshal(rg)
	if err != nil {
		return fmt.Errorf("encode routing graph: %w", err)
	}
	if err := writeFile(name, data); err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Debug("Routing graph written.", "file", name,
		"vertices", len(rg.Vertices), "edges", len(rg.Edges), "bytes", len(data))
	return nil
}

// LoadRoutingGraph reads a file written by SaveRoutingGraph with the same
// compression.
func LoadRoutingGraph(name string, compression serialization.Compression) (*graph.RoutingGraph, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	var rg graph.RoutingGraph
	if err := routingSerializer(name, compression).Unmarshal(data, &rg); err != nil {
		return nil, &MalformedDataError{Collection: "routing graph", Source: name, Err: err}
	}
	return &rg, nil
}
