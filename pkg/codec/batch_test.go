package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchRoundTripInt64PreservesOrder(t *testing.T) {
	c := New()

	arrays := make([][]int64, 64)
	for k := range arrays {
		arr := make([]int64, 512)
		for i := range arr {
			arr[i] = int64(i + k)
		}
		arrays[k] = arr
	}

	blobs, err := c.CompressManyInt64(arrays)
	require.NoError(t, err)
	require.Len(t, blobs, len(arrays))

	back, err := c.DecompressManyInt64(blobs)
	require.NoError(t, err)
	assert.Equal(t, arrays, back)
}

func TestBatchRoundTripFloat64WithScales(t *testing.T) {
	c := New()

	arrays := [][]float64{
		{1.25, 2.5, 3.75},
		{100.001, 100.002},
		{},
	}
	scales := []float64{1000, 1e6, 0}

	blobs, err := c.CompressManyFloat64(arrays, scales)
	require.NoError(t, err)

	back, err := c.DecompressManyFloat64(blobs, nil)
	require.NoError(t, err)
	require.Len(t, back, len(arrays))
	for k := range arrays {
		require.Len(t, back[k], len(arrays[k]))
		for i := range arrays[k] {
			assert.InDelta(t, arrays[k][i], back[k][i], 1.0/(2*scales[k]))
		}
	}
}

func TestBatchRoundTripUint64(t *testing.T) {
	c := New()

	arrays := [][]uint64{{1, 2, 3}, {9, 8, 7}, {}}

	blobs, err := c.CompressManyUint64(arrays)
	require.NoError(t, err)

	back, err := c.DecompressManyUint64(blobs)
	require.NoError(t, err)
	assert.Equal(t, [][]uint64{{1, 2, 3}, {9, 8, 7}, {}}, back)
}

func TestBatchRoundTripFloat32(t *testing.T) {
	c := New()

	arrays := [][]float32{{0.5, 1.5}, {2.25}}

	blobs, err := c.CompressManyFloat32(arrays, nil)
	require.NoError(t, err)

	back, err := c.DecompressManyFloat32(blobs, nil)
	require.NoError(t, err)
	require.Len(t, back, 2)
	for k := range arrays {
		for i := range arrays[k] {
			assert.InDelta(t, float64(arrays[k][i]), float64(back[k][i]), 1e-5)
		}
	}
}

func TestBatchRejectsScaleCountMismatch(t *testing.T) {
	c := New()

	arrays := [][]float64{{1.5}, {2.5}, {3.5}}
	short := []float64{1000}

	_, err := c.CompressManyFloat64(arrays, short)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scale count")

	blobs, err := c.CompressManyFloat64(arrays, nil)
	require.NoError(t, err)
	_, err = c.DecompressManyFloat64(blobs, short)
	assert.Error(t, err)

	_, err = c.CompressManyFloat32([][]float32{{1}, {2}}, []float32{10})
	assert.Error(t, err)

	blobs32, err := c.CompressManyFloat32([][]float32{{1}, {2}}, nil)
	require.NoError(t, err)
	_, err = c.DecompressManyFloat32(blobs32, []float32{10})
	assert.Error(t, err)
}

func TestBatchPropagatesDecodeError(t *testing.T) {
	c := New()

	good, err := c.CompressInt64([]int64{1, 2, 3})
	require.NoError(t, err)

	bad := append([]byte(nil), good...)
	bad[0] = 'X'

	_, err = c.DecompressManyInt64([][]byte{good, bad})
	assert.ErrorIs(t, err, ErrBadMagic)
}
