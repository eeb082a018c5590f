package codec

import (
	"errors"
	"fmt"
)

// ErrInvalidBlob is the root of every decode error. Malformed blobs are
// always locally recoverable: callers fall back to the textual array
// encoding instead of failing the read.
var ErrInvalidBlob = errors.New("invalid codec blob")

var (
	// ErrTruncated means the blob is shorter than its header or payload
	// requires.
	ErrTruncated = fmt.Errorf("%w: truncated", ErrInvalidBlob)

	// ErrBadMagic means the blob does not start with the "ORSO" magic.
	ErrBadMagic = fmt.Errorf("%w: bad magic", ErrInvalidBlob)

	// ErrUnsupportedVersion means the version byte is not one this codec
	// understands.
	ErrUnsupportedVersion = fmt.Errorf("%w: unsupported version", ErrInvalidBlob)

	// ErrUnsupportedMethod means the inner-compression method byte is not
	// one this codec understands.
	ErrUnsupportedMethod = fmt.Errorf("%w: unsupported compression method", ErrInvalidBlob)

	// ErrTypeMismatch means the element-type byte does not match the
	// sequence type the caller asked to decode.
	ErrTypeMismatch = fmt.Errorf("%w: element type mismatch", ErrInvalidBlob)
)
