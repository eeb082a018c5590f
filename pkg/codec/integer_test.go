package codec

import (
	"encoding/binary"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTripInt64(t *testing.T) {
	c := New()

	tests := []struct {
		name string
		data []int64
	}{
		{"empty", []int64{}},
		{"single", []int64{42}},
		{"constant run", []int64{1000, 1000, 1000}},
		{"ascending", seqInt64(0, 10000)},
		{"negative swings", []int64{-5, 5, -5, 5, 0}},
		{"extremes", []int64{math.MinInt64, math.MaxInt64, 0, -1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blob, err := c.CompressInt64(tt.data)
			require.NoError(t, err)

			back, err := c.DecompressInt64(blob)
			require.NoError(t, err)
			assert.Equal(t, tt.data, back)
		})
	}
}

func TestConstantRunHeaderLayout(t *testing.T) {
	c := New()

	blob, err := c.CompressInt64([]int64{1000, 1000, 1000})
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(blob), 15)
	assert.Equal(t, "ORSO", string(blob[:4]))
	assert.Equal(t, byte(Version), blob[4])
	assert.Equal(t, byte(MethodLZ4), blob[5])
	assert.Equal(t, byte(TypeInt64), blob[6])
	assert.Equal(t, uint64(3), binary.LittleEndian.Uint64(blob[7:15]))
}

func TestEmptyInputProducesEmptyBlob(t *testing.T) {
	c := New()

	blob, err := c.CompressInt64(nil)
	require.NoError(t, err)
	assert.Empty(t, blob)

	back, err := c.DecompressInt64(nil)
	require.NoError(t, err)
	assert.Empty(t, back)
}

func TestRoundTripUint64(t *testing.T) {
	c := New()

	tests := []struct {
		name string
		data []uint64
	}{
		{"ascending", seqUint64(0, 10000)},
		{"descending wraps deltas", []uint64{100, 50, 25, 0}},
		{"max values", []uint64{math.MaxUint64, 0, math.MaxUint64}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blob, err := c.CompressUint64(tt.data)
			require.NoError(t, err)

			back, err := c.DecompressUint64(blob)
			require.NoError(t, err)
			assert.Equal(t, tt.data, back)
		})
	}
}

func TestRoundTripInt32(t *testing.T) {
	c := New()
	data := []int32{math.MinInt32, -1, 0, 1, math.MaxInt32}

	blob, err := c.CompressInt32(data)
	require.NoError(t, err)
	assert.Equal(t, byte(TypeInt32), blob[6])

	back, err := c.DecompressInt32(blob)
	require.NoError(t, err)
	assert.Equal(t, data, back)
}

func TestRoundTripUint32(t *testing.T) {
	c := New()
	data := []uint32{0, math.MaxUint32, 7, 7, 8}

	blob, err := c.CompressUint32(data)
	require.NoError(t, err)

	back, err := c.DecompressUint32(blob)
	require.NoError(t, err)
	assert.Equal(t, data, back)
}

func TestRoundTripRandomInt64(t *testing.T) {
	c := New()
	rng := rand.New(rand.NewSource(42))

	data := make([]int64, 50000)
	for i := range data {
		data[i] = rng.Int63() >> 3
		if rng.Intn(2) == 0 {
			data[i] = -data[i]
		}
	}

	blob, err := c.CompressInt64(data)
	require.NoError(t, err)

	back, err := c.DecompressInt64(blob)
	require.NoError(t, err)
	assert.Equal(t, data, back)
}

func TestSmoothSeriesCompresses(t *testing.T) {
	c := New()

	// EMA-like series: slow trend plus small oscillation, scaled to ints.
	data := make([]int64, 10000)
	ema := 117100.0
	for i := range data {
		x := float64(i)
		price := 117000.0 + 0.05*x + math.Sin(x/37.0)*30.0
		ema = 0.2*price + 0.8*ema
		data[i] = int64(math.Round(ema * 1e6))
	}

	blob, err := c.CompressInt64(data)
	require.NoError(t, err)
	assert.Less(t, len(blob), len(data)*8/4, "smooth series should compress at least 4x")

	back, err := c.DecompressInt64(blob)
	require.NoError(t, err)
	assert.Equal(t, data, back)
}

func TestRoundTripBytes(t *testing.T) {
	c := New()
	data := []byte("Hello, World! This is a test of the byte compression path.")

	blob, err := c.CompressBytes(data)
	require.NoError(t, err)
	assert.Equal(t, byte(TypeRaw), blob[6])

	back, err := c.DecompressBytes(blob)
	require.NoError(t, err)
	assert.Equal(t, data, back)
}

func seqInt64(start, n int) []int64 {
	out := make([]int64, n)
	for i := range out {
		out[i] = int64(start + i)
	}
	return out
}

func seqUint64(start, n int) []uint64 {
	out := make([]uint64, n)
	for i := range out {
		out[i] = uint64(start + i)
	}
	return out
}
