package config

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/pathgraph/internal/graph"
	"github.com/specialistvlad/pathgraph/internal/serialization"
	"github.com/specialistvlad/pathgraph/internal/store"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid pipeline configuration")

// Validate checks enums and required fields and reports every problem at
// once.
func (p *Pipeline) Validate() error {
	var errs []error

	inFormat, err := store.ParseFormat(p.Input.Format)
	if err != nil {
		errs = append(errs, fmt.Errorf("input.format: %w", err))
	}
	if inFormat == store.FormatSQLite && p.Input.Database == "" {
		errs = append(errs, errors.New("input.database is required for the sqlite format"))
	}

	outFormat, err := store.ParseFormat(p.Output.Format)
	if err != nil {
		errs = append(errs, fmt.Errorf("output.format: %w", err))
	}
	switch outFormat {
	case store.FormatSQLite:
		if p.Output.Database == "" {
			errs = append(errs, errors.New("output.database is required for the sqlite format"))
		}
		if p.Output.Dataset == "" {
			errs = append(errs, errors.New("output.dataset must not be empty"))
		}
	case store.FormatBinary, store.FormatXML:
		if p.Output.Paths == "" || p.Output.Locations == "" {
			errs = append(errs, errors.New("output.paths and output.locations are required for file formats"))
		}
	}

	if _, err := graph.ParseMode(p.Optimize.Mode); err != nil {
		errs = append(errs, fmt.Errorf("optimize.mode: %w", err))
	}
	if _, err := graph.ParseVerticalPolicy(p.Optimize.Vertical); err != nil {
		errs = append(errs, fmt.Errorf("optimize.vertical: %w", err))
	}
	if p.Optimize.MaxSplits <= 0 {
		errs = append(errs, fmt.Errorf("optimize.max_splits must be positive, got %d", p.Optimize.MaxSplits))
	}

	if _, err := serialization.ParseCodec(p.Serialization.Codec); err != nil {
		errs = append(errs, fmt.Errorf("serialization.codec: %w", err))
	}
	if _, err := serialization.ParseCompression(p.Serialization.Compression); err != nil {
		errs = append(errs, fmt.Errorf("serialization.compression: %w", err))
	}
	if v := p.Serialization.Version; v != int(store.BinaryV1) && v != int(store.BinaryV2) {
		errs = append(errs, fmt.Errorf("serialization.version must be %d or %d, got %d", store.BinaryV1, store.BinaryV2, v))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}
