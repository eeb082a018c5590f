package codec

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Batch variants process independent sequences in parallel and return
// results in input order. They are a throughput optimization only: each
// entry behaves exactly like the corresponding single-item call, and the
// first error cancels the batch.

// CompressManyInt64 compresses each sequence independently.
func (c Codec) CompressManyInt64(arrays [][]int64) ([][]byte, error) {
	out := make([][]byte, len(arrays))
	g := newGroup()
	for i, a := range arrays {
		i, a := i, a
		g.Go(func() error {
			blob, err := c.CompressInt64(a)
			out[i] = blob
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// DecompressManyInt64 decompresses each blob independently.
func (c Codec) DecompressManyInt64(blobs [][]byte) ([][]int64, error) {
	out := make([][]int64, len(blobs))
	g := newGroup()
	for i, b := range blobs {
		i, b := i, b
		g.Go(func() error {
			vals, err := c.DecompressInt64(b)
			out[i] = vals
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// CompressManyUint64 compresses each sequence independently.
func (c Codec) CompressManyUint64(arrays [][]uint64) ([][]byte, error) {
	out := make([][]byte, len(arrays))
	g := newGroup()
	for i, a := range arrays {
		i, a := i, a
		g.Go(func() error {
			blob, err := c.CompressUint64(a)
			out[i] = blob
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// DecompressManyUint64 decompresses each blob independently.
func (c Codec) DecompressManyUint64(blobs [][]byte) ([][]uint64, error) {
	out := make([][]uint64, len(blobs))
	g := newGroup()
	for i, b := range blobs {
		i, b := i, b
		g.Go(func() error {
			vals, err := c.DecompressUint64(b)
			out[i] = vals
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// CompressManyFloat64 compresses each sequence independently. scales may be
// nil (default scale for every entry) or one scale per entry.
func (c Codec) CompressManyFloat64(arrays [][]float64, scales []float64) ([][]byte, error) {
	if scales != nil && len(scales) != len(arrays) {
		return nil, fmt.Errorf("scale count %d does not match sequence count %d", len(scales), len(arrays))
	}
	out := make([][]byte, len(arrays))
	g := newGroup()
	for i, a := range arrays {
		i, a := i, a
		scale := 0.0
		if scales != nil {
			scale = scales[i]
		}
		g.Go(func() error {
			blob, err := c.CompressFloat64(a, scale)
			out[i] = blob
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// DecompressManyFloat64 decompresses each blob independently. scales may be
// nil (header scale for every entry) or one override per entry.
func (c Codec) DecompressManyFloat64(blobs [][]byte, scales []float64) ([][]float64, error) {
	if scales != nil && len(scales) != len(blobs) {
		return nil, fmt.Errorf("scale count %d does not match blob count %d", len(scales), len(blobs))
	}
	out := make([][]float64, len(blobs))
	g := newGroup()
	for i, b := range blobs {
		i, b := i, b
		scale := 0.0
		if scales != nil {
			scale = scales[i]
		}
		g.Go(func() error {
			vals, err := c.DecompressFloat64(b, scale)
			out[i] = vals
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// CompressManyFloat32 compresses each sequence independently.
func (c Codec) CompressManyFloat32(arrays [][]float32, scales []float32) ([][]byte, error) {
	if scales != nil && len(scales) != len(arrays) {
		return nil, fmt.Errorf("scale count %d does not match sequence count %d", len(scales), len(arrays))
	}
	out := make([][]byte, len(arrays))
	g := newGroup()
	for i, a := range arrays {
		i, a := i, a
		var scale float32
		if scales != nil {
			scale = scales[i]
		}
		g.Go(func() error {
			blob, err := c.CompressFloat32(a, scale)
			out[i] = blob
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// DecompressManyFloat32 decompresses each blob independently.
func (c Codec) DecompressManyFloat32(blobs [][]byte, scales []float32) ([][]float32, error) {
	if scales != nil && len(scales) != len(blobs) {
		return nil, fmt.Errorf("scale count %d does not match blob count %d", len(scales), len(blobs))
	}
	out := make([][]float32, len(blobs))
	g := newGroup()
	for i, b := range blobs {
		i, b := i, b
		var scale float32
		if scales != nil {
			scale = scales[i]
		}
		g.Go(func() error {
			vals, err := c.DecompressFloat32(b, scale)
			out[i] = vals
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func newGroup() *errgroup.Group {
	g := &errgroup.Group{}
	g.SetLimit(runtime.GOMAXPROCS(0))
	return g
}
