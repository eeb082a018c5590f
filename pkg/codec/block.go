package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/pierrec/lz4/v4"
)

// Inner block framing: [uncompressed size u32 LE][stored flag (1)][bytes].
// LZ4 block compression can refuse incompressible input, in which case the
// bytes are stored verbatim and the flag records that.
const (
	blockStored     = 0
	blockCompressed = 1
)

func compressBlock(src []byte) ([]byte, error) {
	out := make([]byte, 0, len(src)/2+5)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(src)))

	var c lz4.Compressor
	dst := make([]byte, lz4.CompressBlockBound(len(src)))
	n, err := c.CompressBlock(src, dst)
	if err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	if n == 0 || n >= len(src) {
		// Incompressible, store raw.
		out = append(out, blockStored)
		return append(out, src...), nil
	}
	out = append(out, blockCompressed)
	return append(out, dst[:n]...), nil
}

func decompressBlock(r *blobReader) ([]byte, error) {
	size, err := r.uint32()
	if err != nil {
		return nil, err
	}
	flag, err := r.byte()
	if err != nil {
		return nil, err
	}

	body := r.rest()
	switch flag {
	case blockStored:
		if uint32(len(body)) != size {
			return nil, fmt.Errorf("%w: stored block length %d, header says %d", ErrInvalidBlob, len(body), size)
		}
		return body, nil
	case blockCompressed:
		dst := make([]byte, size)
		n, err := lz4.UncompressBlock(body, dst)
		if err != nil {
			return nil, fmt.Errorf("%w: lz4 decompress: %v", ErrInvalidBlob, err)
		}
		if uint32(n) != size {
			return nil, fmt.Errorf("%w: decompressed length %d, header says %d", ErrInvalidBlob, n, size)
		}
		return dst, nil
	default:
		return nil, fmt.Errorf("%w: unknown block flag %d", ErrInvalidBlob, flag)
	}
}
