// Package dialect provides SQL dialect configuration for the persistence
// layer. A Dialect is a parameter object, not an abstraction layer: it
// carries the physical type map, quoting and placeholder styles, and the
// engine-side default expressions that DDL generation and catalog
// introspection need. Concrete dialects register themselves from this
// package's sqlite.go and postgres.go.
package dialect

import (
	"fmt"
	"strings"

	"github.com/orso-db/orso/pkg/core"
)

// PlaceholderStyle selects the bind-parameter syntax.
type PlaceholderStyle int

const (
	// PlaceholderQuestion uses "?" for every parameter (SQLite).
	PlaceholderQuestion PlaceholderStyle = iota
	// PlaceholderDollar uses "$1", "$2", ... (PostgreSQL).
	PlaceholderDollar
)

// Dialect holds the static configuration for one SQL dialect.
type Dialect struct {
	// Name is the registry key and the driver name hint ("sqlite", "postgres").
	Name string

	// DefaultSchema is the catalog schema unqualified tables live in.
	// Empty for engines without schema qualification.
	DefaultSchema string

	// OrdinalBase is the first ordinal position the catalog reports for a
	// column: 0 for SQLite's PRAGMA table_info, 1 for information_schema.
	OrdinalBase int

	// BlobType is the physical type for opaque binary columns. Compressed
	// columns always use it, and introspection infers the compressed flag
	// from it.
	BlobType string

	// RandomTextDefault is the engine-side expression generating a random
	// text primary key value.
	RandomTextDefault string

	// NowDefault is the engine-side expression for a current-timestamp
	// column default.
	NowDefault string

	// Placeholders selects the bind-parameter syntax.
	Placeholders PlaceholderStyle

	// CopyOrderBy is appended to the INSERT...SELECT copy statement during
	// migration to preserve physical row order, or "" when the engine has
	// no such handle.
	CopyOrderBy string

	types map[core.FieldType]string
}

// TypeFor maps a semantic field type to this dialect's physical SQL type.
// Compressed columns bypass the map and use the opaque blob type.
func (d *Dialect) TypeFor(ft core.FieldType, compressed bool) string {
	if compressed {
		return d.BlobType
	}
	if t, ok := d.types[ft]; ok {
		return t
	}
	return d.types[core.FieldText]
}

// Placeholder returns the bind parameter for 1-based position n.
func (d *Dialect) Placeholder(n int) string {
	if d.Placeholders == PlaceholderDollar {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// QuoteIdent quotes a table or column identifier, doubling any embedded
// quote characters.
func (d *Dialect) QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
