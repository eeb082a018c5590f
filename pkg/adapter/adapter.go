// Package adapter defines the database adapter contract for the
// persistence layer. Adapters wrap a pooled database/sql connection for one
// engine and expose the small query surface the introspector and migration
// executor need. Concrete implementations live in pkg/adapters/*/ and
// register themselves by dialect name.
package adapter

import (
	"context"
	"database/sql"

	"github.com/orso-db/orso/pkg/dialect"
)

// Config holds the configuration for connecting to a database.
type Config struct {
	// Type selects the adapter ("sqlite", "postgres").
	Type string

	// Path is the file path for file-based engines. Use ":memory:" for an
	// in-memory database.
	Path string

	// Host is the hostname for network-based engines.
	Host string

	// Port is the port number for network-based engines.
	Port int

	// Database is the database name.
	Database string

	// Username for authentication.
	Username string

	// Password for authentication.
	Password string

	// Options contains additional driver-specific options.
	Options map[string]string
}

// Rows wraps sql.Rows to keep adapter callers off the driver package.
type Rows struct {
	*sql.Rows
}

// Adapter is the interface all database adapters implement. All operations
// run over the underlying pooled connection; timeouts are inherited from
// the context, the adapter imposes none itself.
type Adapter interface {
	// Connect establishes a connection using the provided config.
	Connect(ctx context.Context, cfg Config) error

	// Close closes the database connection and releases resources.
	Close() error

	// Exec executes a statement that doesn't return rows.
	Exec(ctx context.Context, sql string, args ...any) error

	// Query executes a statement that returns rows.
	Query(ctx context.Context, sql string, args ...any) (*Rows, error)

	// QueryRow executes a statement expected to return at most one row. The
	// error reports a missing connection; statement errors surface from Scan
	// on the returned row.
	QueryRow(ctx context.Context, sql string, args ...any) (*sql.Row, error)

	// Dialect returns the static dialect configuration for this adapter.
	Dialect() *dialect.Dialect
}
