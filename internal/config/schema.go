package config

// fileRoot decodes the top-level blocks of one file. Every attribute is a
// pointer so that an unset attribute does not override an earlier file.
// Unknown blocks and attributes are rejected by the decoder.
type fileRoot struct {
	Input         *inputBlock         `hcl:"input,block"`
	Output        *outputBlock        `hcl:"output,block"`
	Optimize      *optimizeBlock      `hcl:"optimize,block"`
	Serialization *serializationBlock `hcl:"serialization,block"`
}

type inputBlock struct {
	Format    *string `hcl:"format,optional"`
	Paths     *string `hcl:"paths,optional"`
	Locations *string `hcl:"locations,optional"`
	Database  *string `hcl:"database,optional"`
	Dataset   *string `hcl:"dataset,optional"`
}

type outputBlock struct {
	Format        *string `hcl:"format,optional"`
	Paths         *string `hcl:"paths,optional"`
	Locations     *string `hcl:"locations,optional"`
	Database      *string `hcl:"database,optional"`
	Dataset       *string `hcl:"dataset,optional"`
	Intersections *string `hcl:"intersections,optional"`
	RoutingGraph  *string `hcl:"routing_graph,optional"`
}

type optimizeBlock struct {
	Mode        *string `hcl:"mode,optional"`
	Vertical    *string `hcl:"vertical,optional"`
	MaxSplits   *int    `hcl:"max_splits,optional"`
	Dedupe      *bool   `hcl:"dedupe,optional"`
	Recondense  *bool   `hcl:"recondense,optional"`
	CompressIDs *bool   `hcl:"compress_ids,optional"`
}

type serializationBlock struct {
	Codec       *string `hcl:"codec,optional"`
	Compression *string `hcl:"compression,optional"`
	Version     *int    `hcl:"version,optional"`
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func (p *Pipeline) apply(root *fileRoot) {
	if b := root.Input; b != nil {
		set(&p.Input.Format, b.Format)
		set(&p.Input.Paths, b.Paths)
		set(&p.Input.Locations, b.Locations)
		set(&p.Input.Database, b.Database)
		set(&p.Input.Dataset, b.Dataset)
	}
	if b := root.Output; b != nil {
		set(&p.Output.Format, b.Format)
		set(&p.Output.Paths, b.Paths)
		set(&p.Output.Locations, b.Locations)
		set(&p.Output.Database, b.Database)
		set(&p.Output.Dataset, b.Dataset)
		set(&p.Output.Intersections, b.Intersections)
		set(&p.Output.RoutingGraph, b.RoutingGraph)
	}
	if b := root.Optimize; b != nil {
		set(&p.Optimize.Mode, b.Mode)
		set(&p.Optimize.Vertical, b.Vertical)
		set(&p.Optimize.MaxSplits, b.MaxSplits)
		set(&p.Optimize.Dedupe, b.Dedupe)
		set(&p.Optimize.Recondense, b.Recondense)
		set(&p.Optimize.CompressIDs, b.CompressIDs)
	}
	if b := root.Serialization; b != nil {
		set(&p.Serialization.Codec, b.Codec)
		set(&p.Serialization.Compression, b.Compression)
		set(&p.Serialization.Version, b.Version)
	}
}
