package serialization

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name   string  `json:"name" msgpack:"name"`
	Points [][]int `json:"points" msgpack:"points"`
	Weight float64 `json:"weight" msgpack:"weight"`
}

func TestSerializer_AllCombinations(t *testing.T) {
	in := sample{
		Name:   "quad",
		Points: [][]int{{0, 0}, {10, 10}, {20, 0}},
		Weight: 28.28,
	}

	for _, codec := range []Codec{JSON(), MsgPack()} {
		for _, comp := range []Compression{CompressionNone, CompressionGzip, CompressionZstd} {
			t.Run(codec.Name()+"/"+string(comp), func(t *testing.T) {
				s := New(Options{Codec: codec, Compression: comp})

				data, err := s.Marshal(in)
				require.NoError(t, err)
				require.NotEmpty(t, data)

				var out sample
				require.NoError(t, s.Unmarshal(data, &out))
				assert.Equal(t, in, out)
			})
		}
	}
}

func TestSerializer_CompressesRepetitiveData(t *testing.T) {
	in := sample{Name: string(bytes.Repeat([]byte("corridor "), 500))}
	plain, err := New(Options{Codec: MsgPack()}).Marshal(in)
	require.NoError(t, err)

	packed, err := Default().Marshal(in)
	require.NoError(t, err)

	assert.Less(t, len(packed), len(plain))
}

func TestSerializer_RejectsGarbage(t *testing.T) {
	var out sample

	err := Default().Unmarshal([]byte("not zstd"), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "zstd decompress")

	err = New(Options{Codec: JSON()}).Unmarshal([]byte("{"), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "json decode")
}

func TestNew_Defaults(t *testing.T) {
	s := New(Options{})

	assert.Equal(t, "msgpack", s.Codec().Name())
	assert.Equal(t, CompressionNone, s.Compression())
}

func TestParse(t *testing.T) {
	c, err := ParseCodec("json")
	require.NoError(t, err)
	assert.Equal(t, "json", c.Name())
	_, err = ParseCodec("xml")
	assert.Error(t, err)

	comp, err := ParseCompression("gzip")
	require.NoError(t, err)
	assert.Equal(t, CompressionGzip, comp)
	_, err = ParseCompression("brotli")
	assert.Error(t, err)
}
