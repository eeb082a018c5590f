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
	RegisterCatalog("postgres", postgresCatalog{})
}

// postgresCatalog introspects through information_schema. Ordinal positions
// are 1-based here; the introspector normalizes them.
type postgresCatalog struct{}

func (postgresCatalog) TableExists(ctx context.Context, db adapter.Adapter, table string) (bool, error) {
	row, err := db.QueryRow(ctx, `
		SELECT table_name FROM information_schema.tables
		WHERE table_schema = $1 AND table_name = $2`,
		db.Dialect().DefaultSchema, table)
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

func (postgresCatalog) Columns(ctx context.Context, db adapter.Adapter, table string) ([]core.Column, error) {
	d := db.Dialect()

	rows, err := db.Query(ctx, `
		SELECT column_name, data_type, is_nullable, ordinal_position, column_default
		FROM information_schema.columns
		WHERE table_schema = $1 AND table_name = $2
		ORDER BY ordinal_position`,
		d.DefaultSchema, table)
	if err != nil {
		return nil, fmt.Errorf("failed to get table info: %w", err)
	}

	var cols []core.Column
	byName := make(map[string]int)
	for rows.Next() {
		var (
			name, dataType, isNullable string
			position                   int
			dflt                       sql.NullString
		)
		if err := rows.Scan(&name, &dataType, &isNullable, &position, &dflt); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("failed to scan table info: %w", err)
		}
		dataType = strings.ToUpper(dataType)
		cols = append(cols, core.Column{
			Name:       name,
			Type:       dataType,
			Nullable:   isNullable == "YES",
			Position:   position,
			HasDefault: dflt.Valid,
			Compressed: dataType == d.BlobType,
		})
		byName[name] = len(cols) - 1
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("failed to read table info: %w", err)
	}
	_ = rows.Close()
	if len(cols) == 0 {
		return nil, nil
	}

	if err := postgresConstraints(ctx, db, table, cols, byName); err != nil {
		return nil, err
	}
	if err := postgresForeignKeys(ctx, db, table, cols, byName); err != nil {
		return nil, err
	}
	return cols, nil
}

func postgresConstraints(ctx context.Context, db adapter.Adapter, table string, cols []core.Column, byName map[string]int) error {
	rows, err := db.Query(ctx, `
		SELECT kcu.column_name, tc.constraint_type
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
		ON tc.constraint_name = kcu.constraint_name
		WHERE tc.table_schema = $1 AND tc.table_name = $2
		AND tc.constraint_type IN ('PRIMARY KEY', 'UNIQUE')`,
		db.Dialect().DefaultSchema, table)
	if err != nil {
		return fmt.Errorf("failed to get constraint info: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var column, kind string
		if err := rows.Scan(&column, &kind); err != nil {
			return fmt.Errorf("failed to scan constraint info: %w", err)
		}
		i, ok := byName[column]
		if !ok {
			continue
		}
		switch kind {
		case "PRIMARY KEY":
			cols[i].PrimaryKey = true
			cols[i].Unique = true
		case "UNIQUE":
			cols[i].Unique = true
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read constraint info: %w", err)
	}
	return nil
}

func postgresForeignKeys(ctx context.Context, db adapter.Adapter, table string, cols []core.Column, byName map[string]int) error {
	rows, err := db.Query(ctx, `
		SELECT kcu.column_name, ccu.table_name, ccu.column_name
		FROM information_schema.referential_constraints rc
		JOIN information_schema.key_column_usage kcu
		ON rc.constraint_name = kcu.constraint_name
		JOIN information_schema.constraint_column_usage ccu
		ON rc.unique_constraint_name = ccu.constraint_name
		WHERE kcu.table_schema = $1 AND kcu.table_name = $2`,
		db.Dialect().DefaultSchema, table)
	if err != nil {
		return fmt.Errorf("failed to get foreign key list: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var column, refTable, refColumn string
		if err := rows.Scan(&column, &refTable, &refColumn); err != nil {
			return fmt.Errorf("failed to scan foreign key list: %w", err)
		}
		if i, ok := byName[column]; ok {
			cols[i].ForeignKey = refTable + "." + refColumn
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read foreign key list: %w", err)
	}
	return nil
}

func (postgresCatalog) TablesLike(ctx context.Context, db adapter.Adapter, pattern string) ([]string, error) {
	rows, err := db.Query(ctx, `
		SELECT table_name FROM information_schema.tables
		WHERE table_schema = $1 AND table_name LIKE $2`,
		db.Dialect().DefaultSchema, pattern)
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
