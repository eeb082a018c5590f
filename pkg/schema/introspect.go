package schema

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/orso-db/orso/pkg/adapter"
	"github.com/orso-db/orso/pkg/core"
)

// Catalog reads schema metadata from one engine's system catalog. Each
// dialect registers an implementation keyed by its dialect name.
type Catalog interface {
	// TableExists reports whether the table is present in the catalog.
	TableExists(ctx context.Context, db adapter.Adapter, table string) (bool, error)

	// Columns returns the table's columns in position order. A missing
	// table yields an empty slice, not an error.
	Columns(ctx context.Context, db adapter.Adapter, table string) ([]core.Column, error)

	// TablesLike returns the names of tables matching a SQL LIKE pattern.
	TablesLike(ctx context.Context, db adapter.Adapter, pattern string) ([]string, error)
}

var (
	catalogMu sync.RWMutex
	catalogs  = make(map[string]Catalog)
)

// RegisterCatalog registers a catalog implementation for a dialect name.
func RegisterCatalog(name string, c Catalog) {
	catalogMu.Lock()
	defer catalogMu.Unlock()
	catalogs[name] = c
}

func catalogFor(name string) (Catalog, error) {
	catalogMu.RLock()
	defer catalogMu.RUnlock()
	c, ok := catalogs[name]
	if !ok {
		return nil, fmt.Errorf("no catalog registered for dialect %s", name)
	}
	return c, nil
}

// Introspector produces TableSchema values from a live database.
type Introspector struct {
	db     adapter.Adapter
	cat    Catalog
	logger *slog.Logger
}

// NewIntrospector creates an introspector for the adapter's dialect.
// If logger is nil, a discard logger is used.
func NewIntrospector(db adapter.Adapter, logger *slog.Logger) (*Introspector, error) {
	cat, err := catalogFor(db.Dialect().Name)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Introspector{db: db, cat: cat, logger: logger}, nil
}

// TableExists reports whether the table is present in the catalog.
func (in *Introspector) TableExists(ctx context.Context, table string) (bool, error) {
	return in.cat.TableExists(ctx, in.db, table)
}

// Schema reads the current schema of a table. Columns are returned in
// position order, normalized to start at 0. A missing table yields an
// empty schema, not an error.
func (in *Introspector) Schema(ctx context.Context, table string) (core.TableSchema, error) {
	cols, err := in.cat.Columns(ctx, in.db, table)
	if err != nil {
		return core.TableSchema{}, fmt.Errorf("failed to introspect table %s: %w", table, err)
	}

	sort.SliceStable(cols, func(i, j int) bool { return cols[i].Position < cols[j].Position })
	base := in.db.Dialect().OrdinalBase
	for i := range cols {
		cols[i].Position -= base
	}

	in.logger.Debug("introspected table",
		slog.String("table", table), slog.Int("columns", len(cols)))

	return core.TableSchema{Table: table, Columns: cols}, nil
}

// TablesLike returns the names of tables matching a SQL LIKE pattern. The
// retention sweeper uses it to enumerate backup tables.
func (in *Introspector) TablesLike(ctx context.Context, pattern string) ([]string, error) {
	return in.cat.TablesLike(ctx, in.db, pattern)
}
