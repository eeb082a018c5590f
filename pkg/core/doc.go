// Package core defines the shared language of the orso persistence layer.
//
// This package contains:
//   - The tagged Value union exchanged with database adapters
//   - Column and TableSchema descriptors consumed by the comparator
//     and migration executor
//   - The semantic FieldType enumeration models declare columns with
//   - Identifier and timestamp helpers for client-side defaults
//
// The Golden Rule: pkg/core imports only stdlib and github.com/google/uuid.
// All other packages depend on core, not the reverse.
package core
