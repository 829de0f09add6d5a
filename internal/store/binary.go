package store

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/specialistvlad/pathgraph/internal/geometry"
	"github.com/specialistvlad/pathgraph/internal/location"
	"github.com/specialistvlad/pathgraph/internal/serialization"
)

// Binary file versions. Version 1 locations carry no building code or
// keywords; version 2 carries every field.
const (
	BinaryV1 byte = 1
	BinaryV2 byte = 2

	CurrentBinaryVersion = BinaryV2
)

var binaryMagic = []byte("PGRF")

const headerLen = 8

const (
	kindPaths     byte = 'P'
	kindLocations byte = 'L'
)

var errBadHeader = errors.New("bad header")

var codecIDs = map[string]byte{"msgpack": 1, "json": 2}

var compressionIDs = map[serialization.Compression]byte{
	serialization.CompressionNone: 0,
	serialization.CompressionGzip: 1,
	serialization.CompressionZstd: 2,
}

// header is magic, version, kind, codec and compression, one byte each after
// the magic.
type header struct {
	version     byte
	kind        byte
	codec       byte
	compression byte
}

func (h header) bytes() []byte {
	out := make([]byte, 0, headerLen)
	out = append(out, binaryMagic...)
	return append(out, h.version, h.kind, h.codec, h.compression)
}

// serializer rebuilds the serializer a file was written with.
func (h header) serializer() (*serialization.Serializer, error) {
	var opts serialization.Options
	for name, id := range codecIDs {
		if id == h.codec {
			c, err := serialization.ParseCodec(name)
			if err != nil {
				return nil, err
			}
			opts.Codec = c
		}
	}
	if opts.Codec == nil {
		return nil, fmt.Errorf("%w: codec id %d", errBadHeader, h.codec)
	}
	for c, id := range compressionIDs {
		if id == h.compression {
			opts.Compression = c
		}
	}
	if opts.Compression == "" {
		return nil, fmt.Errorf("%w: compression id %d", errBadHeader, h.compression)
	}
	return serialization.New(opts), nil
}

func parseHeader(data []byte, kind byte) (header, error) {
	if len(data) < headerLen || !bytes.Equal(data[:len(binaryMagic)], binaryMagic) {
		return header{}, fmt.Errorf("%w: not a path graph file", errBadHeader)
	}
	h := header{version: data[4], kind: data[5], codec: data[6], compression: data[7]}
	if h.version != BinaryV1 && h.version != BinaryV2 {
		return header{}, fmt.Errorf("%w: unsupported version %d", errBadHeader, h.version)
	}
	if h.kind != kind {
		return header{}, fmt.Errorf("%w: file holds %q records, want %q", errBadHeader, h.kind, kind)
	}
	return h, nil
}

func newHeader(ser *serialization.Serializer, version, kind byte) (header, error) {
	codec, ok := codecIDs[ser.Codec().Name()]
	if !ok {
		return header{}, fmt.Errorf("codec %q has no binary id", ser.Codec().Name())
	}
	return header{version: version, kind: kind, codec: codec, compression: compressionIDs[ser.Compression()]}, nil
}

// locationV1 is the version 1 location record.
type locationV1 struct {
	ID          int            `json:"id" msgpack:"id"`
	Coord       geometry.Point `json:"coord" msgpack:"coord"`
	Name        string         `json:"name" msgpack:"name"`
	Aliases     []string       `json:"aliases,omitempty" msgpack:"aliases,omitempty"`
	PassThrough bool           `json:"passThrough" msgpack:"passThrough"`
	Intersect   bool           `json:"intersect" msgpack:"intersect"`
	DisplayName bool           `json:"displayName" msgpack:"displayName"`
}

func (r locationV1) location() *location.Location {
	return &location.Location{
		ID:                 r.ID,
		Coord:              r.Coord,
		Name:               r.Name,
		Aliases:            r.Aliases,
		CanPassThrough:     r.PassThrough,
		AllowIntersections: r.Intersect,
		DisplayName:        r.DisplayName,
	}
}

func toV1(l *location.Location) locationV1 {
	return locationV1{
		ID:          l.ID,
		Coord:       l.Coord,
		Name:        l.Name,
		Aliases:     l.Aliases,
		PassThrough: l.CanPassThrough,
		Intersect:   l.AllowIntersections,
		DisplayName: l.DisplayName,
	}
}

// EncodePaths renders paths as a binary file.
func EncodePaths(ser *serialization.Serializer, version byte, paths []geometry.Path) ([]byte, error) {
	h, err := newHeader(ser, version, kindPaths)
	if err != nil {
		return nil, err
	}
	if paths == nil {
		paths = []geometry.Path{}
	}
	payload, err := ser.Marshal(paths)
	if err != nil {
		return nil, err
	}
	return append(h.bytes(), payload...), nil
}

// DecodePaths parses a binary paths file of any supported version.
func DecodePaths(data []byte) ([]geometry.Path, error) {
	h, err := parseHeader(data, kindPaths)
	if err != nil {
		return nil, err
	}
	ser, err := h.serializer()
	if err != nil {
		return nil, err
	}
	var paths []geometry.Path
	if err := ser.Unmarshal(data[headerLen:], &paths); err != nil {
		return nil, err
	}
	return paths, nil
}

// EncodeLocations renders locations as a binary file. Version 1 drops the
// building code and keywords.
func EncodeLocations(ser *serialization.Serializer, version byte, locs []*location.Location) ([]byte, error) {
	h, err := newHeader(ser, version, kindLocations)
	if err != nil {
		return nil, err
	}
	var payload []byte
	switch version {
	case BinaryV1:
		recs := make([]locationV1, 0, len(locs))
		for _, l := range locs {
			recs = append(recs, toV1(l))
		}
		payload, err = ser.Marshal(recs)
	case BinaryV2:
		if locs == nil {
			locs = []*location.Location{}
		}
		payload, err = ser.Marshal(locs)
	default:
		return nil, fmt.Errorf("unsupported binary version %d", version)
	}
	if err != nil {
		return nil, err
	}
	return append(h.bytes(), payload...), nil
}

// DecodeLocations parses a binary locations file of any supported version.
func DecodeLocations(data []byte) ([]*location.Location, error) {
	h, err := parseHeader(data, kindLocations)
	if err != nil {
		return nil, err
	}
	ser, err := h.serializer()
	if err != nil {
		return nil, err
	}
	if h.version == BinaryV1 {
		var recs []locationV1
		if err := ser.Unmarshal(data[headerLen:], &recs); err != nil {
			return nil, err
		}
		out := make([]*location.Location, 0, len(recs))
		for _, r := range recs {
			out = append(out, r.location())
		}
		return out, nil
	}
	var locs []*location.Location
	if err := ser.Unmarshal(data[headerLen:], &locs); err != nil {
		return nil, err
	}
	return locs, nil
}
