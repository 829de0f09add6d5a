// Package serialization turns datasets and routing graphs into bytes and back.
// A Serializer pairs a Codec (msgpack or JSON) with an optional compression
// layer (gzip or zstd).
package serialization

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

// Codec encodes values to bytes.
type Codec interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, v any) error
	Name() string
}

// Compression names a compression algorithm.
type Compression string

const (
	CompressionNone Compression = "none"
	CompressionGzip Compression = "gzip"
	CompressionZstd Compression = "zstd"
)

// Options configures a Serializer.
type Options struct {
	Codec       Codec
	Compression Compression
}

// Serializer runs the codec and the compression layer.
type Serializer struct {
	opts Options
}

// New returns a Serializer. A nil codec defaults to msgpack and an empty
// compression to none.
func New(opts Options) *Serializer {
	if opts.Codec == nil {
		opts.Codec = MsgPack()
	}
	if opts.Compression == "" {
		opts.Compression = CompressionNone
	}
	return &Serializer{opts: opts}
}

// Default is msgpack compressed with zstd.
func Default() *Serializer {
	return New(Options{Codec: MsgPack(), Compression: CompressionZstd})
}

// Codec returns the configured codec.
func (s *Serializer) Codec() Codec { return s.opts.Codec }

// Compression returns the configured compression.
func (s *Serializer) Compression() Compression { return s.opts.Compression }

// Marshal encodes v and compresses the result.
func (s *Serializer) Marshal(v any) ([]byte, error) {
	data, err := s.opts.Codec.Encode(v)
	if err != nil {
		return nil, fmt.Errorf("%s encode: %w", s.opts.Codec.Name(), err)
	}
	data, err = compress(s.opts.Compression, data)
	if err != nil {
		return nil, fmt.Errorf("%s compress: %w", s.opts.Compression, err)
	}
	return data, nil
}

// Unmarshal decompresses data and decodes it into v.
func (s *Serializer) Unmarshal(data []byte, v any) error {
	data, err := decompress(s.opts.Compression, data)
	if err != nil {
		return fmt.Errorf("%s decompress: %w", s.opts.Compression, err)
	}
	if err := s.opts.Codec.Decode(data, v); err != nil {
		return fmt.Errorf("%s decode: %w", s.opts.Codec.Name(), err)
	}
	return nil
}

func compress(c Compression, data []byte) ([]byte, error) {
	switch c {
	case CompressionNone:
		return data, nil
	case CompressionGzip:
		var buf bytes.Buffer
		w := gzip.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case CompressionZstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, err
		}
		defer enc.Close()
		return enc.EncodeAll(data, nil), nil
	}
	return nil, fmt.Errorf("unknown compression %q", c)
}

func decompress(c Compression, data []byte) ([]byte, error) {
	switch c {
	case CompressionNone:
		return data, nil
	case CompressionGzip:
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return io.ReadAll(r)
	case CompressionZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		return dec.DecodeAll(data, nil)
	}
	return nil, fmt.Errorf("unknown compression %q", c)
}

type jsonCodec struct{}

func (jsonCodec) Encode(v any) ([]byte, error)    { return json.Marshal(v) }
func (jsonCodec) Decode(data []byte, v any) error { return json.Unmarshal(data, v) }
func (jsonCodec) Name() string                    { return "json" }

type msgpackCodec struct{}

func (msgpackCodec) Encode(v any) ([]byte, error)    { return msgpack.Marshal(v) }
func (msgpackCodec) Decode(data []byte, v any) error { return msgpack.Unmarshal(data, v) }
func (msgpackCodec) Name() string                    { return "msgpack" }

// JSON returns the JSON codec.
func JSON() Codec { return jsonCodec{} }

// MsgPack returns the MessagePack codec.
func MsgPack() Codec { return msgpackCodec{} }

// ParseCodec maps a codec name to a Codec.
func ParseCodec(name string) (Codec, error) {
	switch name {
	case "msgpack":
		return MsgPack(), nil
	case "json":
		return JSON(), nil
	}
	return nil, fmt.Errorf("serialization: unknown codec %q (want \"msgpack\" or \"json\")", name)
}

// ParseCompression validates a compression name.
func ParseCompression(name string) (Compression, error) {
	switch c := Compression(name); c {
	case CompressionNone, CompressionGzip, CompressionZstd:
		return c, nil
	}
	return "", fmt.Errorf("serialization: unknown compression %q (want \"none\", \"gzip\" or \"zstd\")", name)
}
