package config

import (
	"github.com/specialistvlad/pathgraph/internal/graph"
	"github.com/specialistvlad/pathgraph/internal/serialization"
	"github.com/specialistvlad/pathgraph/internal/store"
)

// Default file names used by the map editor.
const (
	DefaultInputPaths      = "rawPathDataS.dat"
	DefaultInputLocations  = "rawLocationDataS.dat"
	DefaultOutputPaths     = "rawPathData.dat"
	DefaultOutputLocations = "rawLocationData.dat"

	DefaultInputDataset  = "raw"
	DefaultOutputDataset = "optimized"
)

// Pipeline is the complete, validated configuration of one run.
type Pipeline struct {
	Input         Input
	Output        Output
	Optimize      Optimize
	Serialization Serialization
}

// Input describes where raw paths and locations are read from.
type Input struct {
	Format    string
	Paths     string
	Locations string
	// Database and Dataset are used by the sqlite format.
	Database string
	Dataset  string
}

// Output describes where optimized data is written.
type Output struct {
	Format    string
	Paths     string
	Locations string
	Database  string
	Dataset   string
	// Intersections, when set, receives the crossing points created by the
	// run as one-point paths.
	Intersections string
	// RoutingGraph, when set, receives the reduced routing graph. A ".json"
	// name is written as JSON, anything else as msgpack.
	RoutingGraph string
}

// Optimize tunes the graph phases.
type Optimize struct {
	Mode        string
	Vertical    string
	MaxSplits   int
	Dedupe      bool
	Recondense  bool
	CompressIDs bool
}

// Serialization selects the binary encoding of written files.
type Serialization struct {
	Codec       string
	Compression string
	Version     int
}

// Default returns the configuration used when no file is given.
func Default() *Pipeline {
	return &Pipeline{
		Input: Input{
			Format:    string(store.FormatBinary),
			Paths:     DefaultInputPaths,
			Locations: DefaultInputLocations,
			Dataset:   DefaultInputDataset,
		},
		Output: Output{
			Format:    string(store.FormatBinary),
			Paths:     DefaultOutputPaths,
			Locations: DefaultOutputLocations,
			Dataset:   DefaultOutputDataset,
		},
		Optimize: Optimize{
			Mode:      graph.ModeSegment.String(),
			Vertical:  graph.VerticalFail.String(),
			MaxSplits: graph.DefaultMaxSplits,
		},
		Serialization: Serialization{
			Codec:       "msgpack",
			Compression: string(serialization.CompressionZstd),
			Version:     int(store.CurrentBinaryVersion),
		},
	}
}

// IntersectOptions converts the optimize block. Call it on a validated
// Pipeline.
func (o Optimize) IntersectOptions() graph.IntersectOptions {
	mode, _ := graph.ParseMode(o.Mode)
	vertical, _ := graph.ParseVerticalPolicy(o.Vertical)
	return graph.IntersectOptions{Mode: mode, Vertical: vertical, MaxSplits: o.MaxSplits}
}

// Serializer builds the configured serializer. Call it on a validated
// Pipeline.
func (s Serialization) Serializer() *serialization.Serializer {
	codec, _ := serialization.ParseCodec(s.Codec)
	return serialization.New(serialization.Options{Codec: codec, Compression: serialization.Compression(s.Compression)})
}
