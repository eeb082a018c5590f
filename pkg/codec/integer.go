package codec

import (
	"encoding/binary"
	"fmt"
)

// Codec encodes and decodes numeric sequences to and from self-describing
// blobs. The zero value is ready to use; it is pure and stateless, so a
// single value may be shared across goroutines.
type Codec struct{}

// New returns a ready-to-use Codec.
func New() Codec { return Codec{} }

func zigzag64(i int64) uint64 {
	return uint64((i << 1) ^ (i >> 63))
}

func unzigzag64(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}

func zigzag32(i int32) uint32 {
	return uint32((i << 1) ^ (i >> 31))
}

func unzigzag32(u uint32) int32 {
	return int32(u>>1) ^ -int32(u&1)
}

// CompressInt64 encodes a signed 64-bit sequence: delta, zigzag, varint,
// LZ4 block. An empty input returns an empty blob.
func (Codec) CompressInt64(data []int64) ([]byte, error) {
	if len(data) == 0 {
		return []byte{}, nil
	}

	tmp := make([]byte, 0, len(data)*2)
	var prev int64
	for _, x := range data {
		d := x - prev // wrapping by Go semantics
		prev = x
		tmp = binary.AppendUvarint(tmp, zigzag64(d))
	}

	return sealBlob(TypeInt64, uint64(len(data)), nil, tmp)
}

// DecompressInt64 reverses CompressInt64. Malformed blobs return an error
// wrapping ErrInvalidBlob; the call never panics.
func (Codec) DecompressInt64(blob []byte) ([]int64, error) {
	if len(blob) == 0 {
		return []int64{}, nil
	}

	r := &blobReader{buf: blob}
	n, err := r.readHeader(TypeInt64)
	if err != nil {
		return nil, err
	}
	packed, err := decompressBlock(r)
	if err != nil {
		return nil, err
	}

	if err := checkCount(n, packed); err != nil {
		return nil, err
	}

	out := make([]int64, 0, n)
	var acc int64
	off := 0
	for i := uint64(0); i < n; i++ {
		v, w := binary.Uvarint(packed[off:])
		if w <= 0 {
			return nil, fmt.Errorf("%w: varint at element %d", ErrTruncated, i)
		}
		off += w
		acc += unzigzag64(v)
		out = append(out, acc)
	}
	return out, nil
}

// CompressUint64 encodes an unsigned 64-bit sequence. Deltas are taken with
// wrapping subtraction and written without zigzag; wrap-around is reversed
// exactly by the prefix sum on decode.
func (Codec) CompressUint64(data []uint64) ([]byte, error) {
	if len(data) == 0 {
		return []byte{}, nil
	}

	tmp := make([]byte, 0, len(data)*2)
	var prev uint64
	for _, x := range data {
		d := x - prev
		prev = x
		tmp = binary.AppendUvarint(tmp, d)
	}

	return sealBlob(TypeUint64, uint64(len(data)), nil, tmp)
}

// DecompressUint64 reverses CompressUint64.
func (Codec) DecompressUint64(blob []byte) ([]uint64, error) {
	if len(blob) == 0 {
		return []uint64{}, nil
	}

	r := &blobReader{buf: blob}
	n, err := r.readHeader(TypeUint64)
	if err != nil {
		return nil, err
	}
	packed, err := decompressBlock(r)
	if err != nil {
		return nil, err
	}

	if err := checkCount(n, packed); err != nil {
		return nil, err
	}

	out := make([]uint64, 0, n)
	var acc uint64
	off := 0
	for i := uint64(0); i < n; i++ {
		v, w := binary.Uvarint(packed[off:])
		if w <= 0 {
			return nil, fmt.Errorf("%w: varint at element %d", ErrTruncated, i)
		}
		off += w
		acc += v
		out = append(out, acc)
	}
	return out, nil
}

// CompressInt32 encodes a signed 32-bit sequence.
func (Codec) CompressInt32(data []int32) ([]byte, error) {
	if len(data) == 0 {
		return []byte{}, nil
	}

	tmp := make([]byte, 0, len(data)*2)
	var prev int32
	for _, x := range data {
		d := x - prev
		prev = x
		tmp = binary.AppendUvarint(tmp, uint64(zigzag32(d)))
	}

	return sealBlob(TypeInt32, uint64(len(data)), nil, tmp)
}

// DecompressInt32 reverses CompressInt32.
func (Codec) DecompressInt32(blob []byte) ([]int32, error) {
	if len(blob) == 0 {
		return []int32{}, nil
	}

	r := &blobReader{buf: blob}
	n, err := r.readHeader(TypeInt32)
	if err != nil {
		return nil, err
	}
	packed, err := decompressBlock(r)
	if err != nil {
		return nil, err
	}

	if err := checkCount(n, packed); err != nil {
		return nil, err
	}

	out := make([]int32, 0, n)
	var acc int32
	off := 0
	for i := uint64(0); i < n; i++ {
		v, w := binary.Uvarint(packed[off:])
		if w <= 0 {
			return nil, fmt.Errorf("%w: varint at element %d", ErrTruncated, i)
		}
		off += w
		acc += unzigzag32(uint32(v))
		out = append(out, acc)
	}
	return out, nil
}

// CompressUint32 encodes an unsigned 32-bit sequence.
func (Codec) CompressUint32(data []uint32) ([]byte, error) {
	if len(data) == 0 {
		return []byte{}, nil
	}

	tmp := make([]byte, 0, len(data)*2)
	var prev uint32
	for _, x := range data {
		d := x - prev
		prev = x
		tmp = binary.AppendUvarint(tmp, uint64(d))
	}

	return sealBlob(TypeUint32, uint64(len(data)), nil, tmp)
}

// DecompressUint32 reverses CompressUint32.
func (Codec) DecompressUint32(blob []byte) ([]uint32, error) {
	if len(blob) == 0 {
		return []uint32{}, nil
	}

	r := &blobReader{buf: blob}
	n, err := r.readHeader(TypeUint32)
	if err != nil {
		return nil, err
	}
	packed, err := decompressBlock(r)
	if err != nil {
		return nil, err
	}

	if err := checkCount(n, packed); err != nil {
		return nil, err
	}

	out := make([]uint32, 0, n)
	var acc uint32
	off := 0
	for i := uint64(0); i < n; i++ {
		v, w := binary.Uvarint(packed[off:])
		if w <= 0 {
			return nil, fmt.Errorf("%w: varint at element %d", ErrTruncated, i)
		}
		off += w
		acc += uint32(v)
		out = append(out, acc)
	}
	return out, nil
}

// CompressBytes wraps arbitrary bytes in the same self-describing envelope
// (element type raw, count = byte length) without any numeric transform.
// Callers use it to store pre-serialized payloads behind one header format.
func (Codec) CompressBytes(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return []byte{}, nil
	}
	return sealBlob(TypeRaw, uint64(len(data)), nil, data)
}

// DecompressBytes reverses CompressBytes.
func (Codec) DecompressBytes(blob []byte) ([]byte, error) {
	if len(blob) == 0 {
		return []byte{}, nil
	}

	r := &blobReader{buf: blob}
	n, err := r.readHeader(TypeRaw)
	if err != nil {
		return nil, err
	}
	data, err := decompressBlock(r)
	if err != nil {
		return nil, err
	}
	if uint64(len(data)) != n {
		return nil, fmt.Errorf("%w: payload length %d, header says %d", ErrInvalidBlob, len(data), n)
	}
	return data, nil
}

// checkCount validates the header element count against the unpacked
// payload before anything is allocated from it. Every element occupies at
// least one varint byte, so a count above the payload length can only come
// from a corrupt or hostile header.
func checkCount(n uint64, packed []byte) error {
	if n > uint64(len(packed)) {
		return fmt.Errorf("%w: header count %d exceeds payload capacity %d", ErrInvalidBlob, n, len(packed))
	}
	return nil
}

// sealBlob assembles header, optional scale bytes, and the compressed
// payload into the final blob.
func sealBlob(elem ElemType, count uint64, scale []byte, payload []byte) ([]byte, error) {
	comp, err := compressBlock(payload)
	if err != nil {
		return nil, err
	}
	blob := make([]byte, 0, headerSize+len(scale)+len(comp))
	blob = appendHeader(blob, elem, count)
	blob = append(blob, scale...)
	return append(blob, comp...), nil
}
