package codec

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Blob format constants. The header layout is an on-disk contract: any
// change to it requires bumping Version.
const (
	// Version is the current blob format version.
	Version = 1

	// MethodLZ4 identifies the size-prefixed LZ4 block compressor.
	MethodLZ4 = 1

	headerSize = 15 // magic(4) + version(1) + method(1) + type(1) + count(8)
)

var magic = [4]byte{'O', 'R', 'S', 'O'}

// ElemType is the element-type code stored in the blob header.
type ElemType byte

const (
	TypeInt64   ElemType = 0
	TypeUint64  ElemType = 1
	TypeInt32   ElemType = 2
	TypeUint32  ElemType = 3
	TypeFloat64 ElemType = 4
	TypeFloat32 ElemType = 5
	TypeRaw     ElemType = 6
)

// String returns the element type name.
func (t ElemType) String() string {
	switch t {
	case TypeInt64:
		return "int64"
	case TypeUint64:
		return "uint64"
	case TypeInt32:
		return "int32"
	case TypeUint32:
		return "uint32"
	case TypeFloat64:
		return "float64"
	case TypeFloat32:
		return "float32"
	case TypeRaw:
		return "raw"
	default:
		return fmt.Sprintf("elemtype(%d)", byte(t))
	}
}

// appendHeader appends the fixed blob header to dst.
func appendHeader(dst []byte, elem ElemType, count uint64) []byte {
	dst = append(dst, magic[:]...)
	dst = append(dst, Version, MethodLZ4, byte(elem))
	return binary.LittleEndian.AppendUint64(dst, count)
}

// blobReader is a length-checked cursor over a blob. Every read reports
// ErrTruncated instead of indexing past the end, keeping all bounds checks
// in one place.
type blobReader struct {
	buf []byte
	off int
}

func (r *blobReader) take(n int) ([]byte, error) {
	if len(r.buf)-r.off < n {
		return nil, ErrTruncated
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *blobReader) byte() (byte, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *blobReader) uint64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (r *blobReader) uint32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *blobReader) float64() (float64, error) {
	u, err := r.uint64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(u), nil
}

func (r *blobReader) float32() (float32, error) {
	u, err := r.uint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(u), nil
}

// rest returns the unread remainder of the blob.
func (r *blobReader) rest() []byte {
	return r.buf[r.off:]
}

// readHeader validates the fixed header and returns the element count.
// Validation order matters: magic and version are checked before anything
// else is interpreted.
func (r *blobReader) readHeader(want ElemType) (uint64, error) {
	m, err := r.take(4)
	if err != nil {
		return 0, err
	}
	if string(m) != string(magic[:]) {
		return 0, ErrBadMagic
	}

	version, err := r.byte()
	if err != nil {
		return 0, err
	}
	if version != Version {
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	method, err := r.byte()
	if err != nil {
		return 0, err
	}
	if method != MethodLZ4 {
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedMethod, method)
	}

	elem, err := r.byte()
	if err != nil {
		return 0, err
	}
	if ElemType(elem) != want {
		return 0, fmt.Errorf("%w: blob holds %s, want %s", ErrTypeMismatch, ElemType(elem), want)
	}

	return r.uint64()
}
