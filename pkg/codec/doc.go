// Package codec implements the numeric block codec: a reversible
// transformation between same-width integer or float sequences and a single
// self-describing binary blob.
//
// # Blob Format
//
// Every non-empty blob starts with a fixed header:
//
//	[Magic "ORSO"(4)][Version(1)][Method(1)][ElemType(1)][Count(8, LE)]
//
// Float blobs additionally carry the scale factor used at encode time
// (8 bytes LE for float64, 4 bytes LE for float32) so decoding is
// deterministic without out-of-band state. The payload that follows is the
// varint stream produced by the integer pipeline, run through a
// size-prefixed LZ4 block compressor.
//
// # Pipeline
//
// Integers are delta-encoded against the previous element (the first delta
// is taken against zero) with wrapping arithmetic, zigzag-mapped when
// signed so small deltas of either sign stay numerically small, and written
// as varints. Floats are scaled by a fixed factor, rounded to the nearest
// integer, and fed through the same pipeline; their round trip is
// bounded-error rather than bit-exact.
//
// An empty input sequence encodes to an empty blob with no header, and an
// empty blob decodes to an empty sequence.
//
// # Error Handling
//
// Decoding never panics. Truncated blobs, bad magic, and unsupported
// version, method, or element-type bytes all return errors wrapping
// ErrInvalidBlob, so callers can detect any malformed blob with a single
// errors.Is check and fall back to the textual array encoding.
//
// The codec is pure and stateless; a Codec value is safe for concurrent
// use. The batch variants fan work out across workers and return results
// in input order.
package codec
