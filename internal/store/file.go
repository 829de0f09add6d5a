package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/specialistvlad/pathgraph/internal/ctxlog"
	"github.com/specialistvlad/pathgraph/internal/geometry"
	"github.com/specialistvlad/pathgraph/internal/location"
	"github.com/specialistvlad/pathgraph/internal/serialization"
)

// FileStore keeps paths and locations in two files of the same format.
type FileStore struct {
	format        Format
	pathsFile     string
	locationsFile string
	serializer    *serialization.Serializer
	version       byte

	maxID int
}

// FileOption configures a FileStore.
type FileOption func(*FileStore)

// WithSerializer sets the serializer used when writing binary files.
func WithSerializer(s *serialization.Serializer) FileOption {
	return func(st *FileStore) { st.serializer = s }
}

// WithBinaryVersion sets the version written to binary files.
func WithBinaryVersion(v byte) FileOption {
	return func(st *FileStore) { st.version = v }
}

// NewFileStore returns a binary or XML file store. Either file name may be
// empty when the store is only used for the other collection.
func NewFileStore(format Format, pathsFile, locationsFile string, opts ...FileOption) (*FileStore, error) {
	if format != FormatBinary && format != FormatXML {
		return nil, fmt.Errorf("%w: %q is not a file format", ErrUnknownFormat, format)
	}
	s := &FileStore{
		format:        format,
		pathsFile:     pathsFile,
		locationsFile: locationsFile,
		serializer:    serialization.Default(),
		version:       CurrentBinaryVersion,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// MaxIDHint returns the highest location ID announced by the last loaded
// locations file, or 0.
func (s *FileStore) MaxIDHint() int { return s.maxID }

func (s *FileStore) read(collection, name string) ([]byte, error) {
	if name == "" {
		return nil, &MissingInputError{Collection: collection, Source: name, Err: fs.ErrNotExist}
	}
	data, err := os.ReadFile(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &MissingInputError{Collection: collection, Source: name, Err: err}
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

// LoadPaths reads the paths file.
func (s *FileStore) LoadPaths(ctx context.Context) ([]geometry.Path, error) {
	data, err := s.read(CollectionPaths, s.pathsFile)
	if err != nil {
		return nil, err
	}
	var paths []geometry.Path
	switch s.format {
	case FormatXML:
		paths, err = DecodeXMLPaths(data)
	default:
		paths, err = DecodePaths(data)
	}
	if err != nil {
		return nil, &MalformedDataError{Collection: CollectionPaths, Source: s.pathsFile, Err: err}
	}
	ctxlog.FromContext(ctx).Debug("Paths file read.", "file", s.pathsFile, "format", string(s.format), "paths", len(paths))
	return paths, nil
}

// LoadLocations reads the locations file.
func (s *FileStore) LoadLocations(ctx context.Context) ([]*location.Location, error) {
	data, err := s.read(CollectionLocations, s.locationsFile)
	if err != nil {
		return nil, err
	}
	var (
		locs  []*location.Location
		maxID int
	)
	switch s.format {
	case FormatXML:
		locs, maxID, err = DecodeXMLLocations(data)
	default:
		locs, err = DecodeLocations(data)
	}
	if err != nil {
		return nil, &MalformedDataError{Collection: CollectionLocations, Source: s.locationsFile, Err: err}
	}
	s.maxID = maxID
	ctxlog.FromContext(ctx).Debug("Locations file read.", "file", s.locationsFile, "format", string(s.format), "locations", len(locs))
	return locs, nil
}

// SavePaths writes the paths file, creating its directory if needed.
func (s *FileStore) SavePaths(ctx context.Context, paths []geometry.Path) error {
	var (
		data []byte
		err  error
	)
	switch s.format {
	case FormatXML:
		data, err = EncodeXMLPaths(paths)
	default:
		data, err = EncodePaths(s.serializer, s.version, paths)
	}
	if err != nil {
		return fmt.Errorf("encode paths: %w", err)
	}
	if err := writeFile(s.pathsFile, data); err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Debug("Paths file written.", "file", s.pathsFile, "paths", len(paths), "bytes", len(data))
	return nil
}

// SaveLocations writes the locations file, creating its directory if needed.
func (s *FileStore) SaveLocations(ctx context.Context, locs []*location.Location) error {
	var (
		data []byte
		err  error
	)
	switch s.format {
	case FormatXML:
		data, err = EncodeXMLLocations(locs)
	default:
		data, err = EncodeLocations(s.serializer, s.version, locs)
	}
	if err != nil {
		return fmt.Errorf("encode locations: %w", err)
	}
	if err := writeFile(s.locationsFile, data); err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Debug("Locations file written.", "file", s.locationsFile, "locations", len(locs), "bytes", len(data))
	return nil
}

func writeFile(name string, data []byte) error {
	if name == "" {
		return errors.New("store: no output file configured")
	}
	if dir := filepath.Dir(name); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
