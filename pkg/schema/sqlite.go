package schema

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/orso-db/orso/pkg/adapter"
	"github.com/orso-db/orso/pkg/core"
)

func init() {
	RegisterCatalog("sqlite", sqliteCatalog{})
}

// sqliteCatalog introspects through the PRAGMA interface: table_info for
// columns, index_list/index_info for unique constraints, foreign_key_list
// for references. PRAGMA statements do not accept bind parameters, so
// identifiers are quoted inline.
type sqliteCatalog struct{}

func (sqliteCatalog) TableExists(ctx context.Context, db adapter.Adapter, table string) (bool, error) {
	row, err := db.QueryRow(ctx,
		"SELECT name FROM sqlite_master WHERE type='table' AND name = ?", table)
	if err != nil {
		return false, fmt.Errorf("failed to check table existence: %w", err)
	}
	var name string
	err = row.Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check table existence: %w", err)
	}
	return true, nil
}

func (sqliteCatalog) Columns(ctx context.Context, db adapter.Adapter, table string) ([]core.Column, error) {
	d := db.Dialect()

	rows, err := db.Query(ctx, fmt.Sprintf("PRAGMA table_info(%s)", d.QuoteIdent(table)))
	if err != nil {
		return nil, fmt.Errorf("failed to get table info: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var cols []core.Column
	byName := make(map[string]int)
	for rows.Next() {
		var (
			cid, notNull, pk int
			name, typeName   string
			dflt             sql.NullString
		)
		if err := rows.Scan(&cid, &name, &typeName, &notNull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("failed to scan table info: %w", err)
		}
		typeName = strings.ToUpper(typeName)
		cols = append(cols, core.Column{
			Name:       name,
			Type:       typeName,
			Nullable:   notNull == 0,
			Position:   cid,
			Unique:     pk != 0,
			PrimaryKey: pk != 0,
			HasDefault: dflt.Valid,
			Compressed: typeName == d.BlobType,
		})
		byName[name] = len(cols) - 1
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read table info: %w", err)
	}
	if len(cols) == 0 {
		return nil, nil
	}

	if err := sqliteUniqueColumns(ctx, db, table, cols, byName); err != nil {
		return nil, err
	}
	if err := sqliteForeignKeys(ctx, db, table, cols, byName); err != nil {
		return nil, err
	}
	return cols, nil
}

// sqliteUniqueColumns marks columns covered by a unique index, including
// the implicit indexes backing UNIQUE constraints.
func sqliteUniqueColumns(ctx context.Context, db adapter.Adapter, table string, cols []core.Column, byName map[string]int) error {
	d := db.Dialect()

	rows, err := db.Query(ctx, fmt.Sprintf("PRAGMA index_list(%s)", d.QuoteIdent(table)))
	if err != nil {
		return fmt.Errorf("failed to get index list: %w", err)
	}
	var uniqueIndexes []string
	for rows.Next() {
		var (
			seq, unique, partial int
			name, origin         string
		)
		if err := rows.Scan(&seq, &name, &unique, &origin, &partial); err != nil {
			_ = rows.Close()
			return fmt.Errorf("failed to scan index list: %w", err)
		}
		if unique != 0 {
			uniqueIndexes = append(uniqueIndexes, name)
		}
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return fmt.Errorf("failed to read index list: %w", err)
	}
	_ = rows.Close()

	for _, index := range uniqueIndexes {
		infoRows, err := db.Query(ctx, fmt.Sprintf("PRAGMA index_info(%s)", d.QuoteIdent(index)))
		if err != nil {
			return fmt.Errorf("failed to get index info: %w", err)
		}
		for infoRows.Next() {
			var (
				seqno, cid int
				column     sql.NullString
			)
			if err := infoRows.Scan(&seqno, &cid, &column); err != nil {
				_ = infoRows.Close()
				return fmt.Errorf("failed to scan index info: %w", err)
			}
			if column.Valid {
				if i, ok := byName[column.String]; ok {
					cols[i].Unique = true
				}
			}
		}
		if err := infoRows.Err(); err != nil {
			_ = infoRows.Close()
			return fmt.Errorf("failed to read index info: %w", err)
		}
		_ = infoRows.Close()
	}
	return nil
}

func sqliteForeignKeys(ctx context.Context, db adapter.Adapter, table string, cols []core.Column, byName map[string]int) error {
	d := db.Dialect()

	rows, err := db.Query(ctx, fmt.Sprintf("PRAGMA foreign_key_list(%s)", d.QuoteIdent(table)))
	if err != nil {
		return fmt.Errorf("failed to get foreign key list: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			id, seq                       int
			refTable, from                string
			to                            sql.NullString
			onUpdate, onDelete, matchKind string
		)
		if err := rows.Scan(&id, &seq, &refTable, &from, &to, &onUpdate, &onDelete, &matchKind); err != nil {
			return fmt.Errorf("failed to scan foreign key list: %w", err)
		}
		if i, ok := byName[from]; ok {
			ref := refTable
			if to.Valid && to.String != "" {
				ref = refTable + "." + to.String
			}
			cols[i].ForeignKey = ref
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read foreign key list: %w", err)
	}
	return nil
}

func (sqliteCatalog) TablesLike(ctx context.Context, db adapter.Adapter, pattern string) ([]string, error) {
	rows, err := db.Query(ctx,
		"SELECT name FROM sqlite_master WHERE type='table' AND name LIKE ?", pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read table names: %w", err)
	}
	return names, nil
}
