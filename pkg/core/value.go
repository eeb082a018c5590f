package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ValueKind identifies which variant of a Value is active.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindInteger
	KindReal
	KindText
	KindBlob
	KindBoolean
	KindTimestamp
	KindInt32Array
	KindInt64Array
	KindFloat64Array
)

// String returns the string representation of the kind.
func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInteger:
		return "integer"
	case KindReal:
		return "real"
	case KindText:
		return "text"
	case KindBlob:
		return "blob"
	case KindBoolean:
		return "boolean"
	case KindTimestamp:
		return "timestamp"
	case KindInt32Array:
		return "int32_array"
	case KindInt64Array:
		return "int64_array"
	case KindFloat64Array:
		return "float64_array"
	default:
		return "unknown"
	}
}

// Value is a tagged union over the column values the persistence layer
// exchanges with database adapters. Exactly one variant is active; use the
// constructor functions and the typed accessors rather than building a
// Value directly. The array variants carry uncompressed numeric columns;
// compressed columns travel as Blob and are never interpreted here.
type Value struct {
	kind ValueKind

	integer int64
	real    float64
	text    string
	blob    []byte
	boolean bool
	ts      time.Time
	i32s    []int32
	i64s    []int64
	f64s    []float64
}

// Null returns the null Value.
func Null() Value { return Value{kind: KindNull} }

// Integer returns an integer Value.
func Integer(v int64) Value { return Value{kind: KindInteger, integer: v} }

// Real returns a floating-point Value.
func Real(v float64) Value { return Value{kind: KindReal, real: v} }

// Text returns a text Value.
func Text(v string) Value { return Value{kind: KindText, text: v} }

// Blob returns a byte-sequence Value. The bytes are not copied.
func Blob(v []byte) Value { return Value{kind: KindBlob, blob: v} }

// Boolean returns a boolean Value.
func Boolean(v bool) Value { return Value{kind: KindBoolean, boolean: v} }

// Timestamp returns a timestamp Value, normalized to UTC.
func Timestamp(v time.Time) Value { return Value{kind: KindTimestamp, ts: v.UTC()} }

// Int32Array returns a Value holding an uncompressed int32 sequence.
func Int32Array(v []int32) Value { return Value{kind: KindInt32Array, i32s: v} }

// Int64Array returns a Value holding an uncompressed int64 sequence.
func Int64Array(v []int64) Value { return Value{kind: KindInt64Array, i64s: v} }

// Float64Array returns a Value holding an uncompressed float64 sequence.
func Float64Array(v []float64) Value { return Value{kind: KindFloat64Array, f64s: v} }

// Kind reports which variant is active.
func (v Value) Kind() ValueKind { return v.kind }

// IsNull reports whether the null variant is active.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Int returns the integer variant. ok is false if another variant is active.
func (v Value) Int() (int64, bool) { return v.integer, v.kind == KindInteger }

// Float returns the real variant.
func (v Value) Float() (float64, bool) { return v.real, v.kind == KindReal }

// String returns the text variant.
func (v Value) String() (string, bool) { return v.text, v.kind == KindText }

// Bytes returns the blob variant.
func (v Value) Bytes() ([]byte, bool) { return v.blob, v.kind == KindBlob }

// Bool returns the boolean variant.
func (v Value) Bool() (bool, bool) { return v.boolean, v.kind == KindBoolean }

// Time returns the timestamp variant.
func (v Value) Time() (time.Time, bool) { return v.ts, v.kind == KindTimestamp }

// Int32s returns the int32 array variant.
func (v Value) Int32s() ([]int32, bool) { return v.i32s, v.kind == KindInt32Array }

// Int64s returns the int64 array variant.
func (v Value) Int64s() ([]int64, bool) { return v.i64s, v.kind == KindInt64Array }

// Float64s returns the float64 array variant.
func (v Value) Float64s() ([]float64, bool) { return v.f64s, v.kind == KindFloat64Array }

// Driver converts the Value into a driver-compatible argument for
// database/sql. Array variants are rendered through the textual fallback
// encoding; adapters that support native arrays should unwrap them first.
func (v Value) Driver() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindInteger:
		return v.integer
	case KindReal:
		return v.real
	case KindText:
		return v.text
	case KindBlob:
		return v.blob
	case KindBoolean:
		return v.boolean
	case KindTimestamp:
		return v.ts.Format(time.RFC3339Nano)
	case KindInt32Array:
		return EncodeInt32ArrayText(v.i32s)
	case KindInt64Array:
		return EncodeInt64ArrayText(v.i64s)
	case KindFloat64Array:
		return EncodeFloat64ArrayText(v.f64s)
	default:
		return nil
	}
}

// EncodeInt64ArrayText renders an int64 sequence as a comma-joined string.
// This is the textual fallback representation used when a numeric column is
// stored uncompressed, or when a compressed blob fails to decode.
func EncodeInt64ArrayText(vals []int64) string {
	parts := make([]string, len(vals))
	for i, x := range vals {
		parts[i] = strconv.FormatInt(x, 10)
	}
	return strings.Join(parts, ",")
}

// EncodeInt32ArrayText renders an int32 sequence as a comma-joined string.
func EncodeInt32ArrayText(vals []int32) string {
	parts := make([]string, len(vals))
	for i, x := range vals {
		parts[i] = strconv.FormatInt(int64(x), 10)
	}
	return strings.Join(parts, ",")
}

// EncodeFloat64ArrayText renders a float64 sequence as a comma-joined string.
func EncodeFloat64ArrayText(vals []float64) string {
	parts := make([]string, len(vals))
	for i, x := range vals {
		parts[i] = strconv.FormatFloat(x, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

// DecodeInt64ArrayText parses the textual fallback representation back into
// an int64 sequence. An empty string decodes to an empty sequence.
func DecodeInt64ArrayText(s string) ([]int64, error) {
	if s == "" {
		return []int64{}, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int64, len(parts))
	for i, p := range parts {
		x, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse array element %d: %w", i, err)
		}
		out[i] = x
	}
	return out, nil
}

// DecodeInt32ArrayText parses the textual fallback representation back into
// an int32 sequence.
func DecodeInt32ArrayText(s string) ([]int32, error) {
	if s == "" {
		return []int32{}, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int32, len(parts))
	for i, p := range parts {
		x, err := strconv.ParseInt(strings.TrimSpace(p), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("failed to parse array element %d: %w", i, err)
		}
		out[i] = int32(x)
	}
	return out, nil
}

// DecodeFloat64ArrayText parses the textual fallback representation back
// into a float64 sequence.
func DecodeFloat64ArrayText(s string) ([]float64, error) {
	if s == "" {
		return []float64{}, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, len(parts))
	for i, p := range parts {
		x, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse array element %d: %w", i, err)
		}
		out[i] = x
	}
	return out, nil
}
