package schema

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/orso-db/orso/pkg/adapter"
	"github.com/orso-db/orso/pkg/adapters/postgres"
	"github.com/orso-db/orso/pkg/adapters/sqlite"
	"github.com/orso-db/orso/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteDB(t *testing.T) adapter.Adapter {
	t.Helper()
	a := sqlite.New(nil)
	require.NoError(t, a.Connect(context.Background(), adapter.Config{Path: ":memory:"}))
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestSQLiteTableExists(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)
	in, err := NewIntrospector(db, nil)
	require.NoError(t, err)

	exists, err := in.TableExists(ctx, "events")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, db.Exec(ctx, `CREATE TABLE "events" ("id" TEXT NOT NULL PRIMARY KEY)`))

	exists, err = in.TableExists(ctx, "events")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestSQLiteIntrospection(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)
	in, err := NewIntrospector(db, nil)
	require.NoError(t, err)

	require.NoError(t, db.Exec(ctx, `CREATE TABLE "events" (
		"id" TEXT NOT NULL PRIMARY KEY DEFAULT (lower(hex(randomblob(16)))),
		"name" TEXT NOT NULL,
		"samples" BLOB,
		"count" INTEGER NOT NULL,
		UNIQUE ("name")
	)`))

	schema, err := in.Schema(ctx, "events")
	require.NoError(t, err)
	require.NoError(t, schema.Validate())
	require.Len(t, schema.Columns, 4)

	id := schema.Columns[0]
	assert.Equal(t, "TEXT", id.Type)
	assert.True(t, id.PrimaryKey)
	assert.True(t, id.Unique)
	assert.False(t, id.Nullable)
	assert.True(t, id.HasDefault)

	name := schema.Columns[1]
	assert.True(t, name.Unique, "UNIQUE constraint surfaces through the implicit index")
	assert.False(t, name.PrimaryKey)

	samples := schema.Columns[2]
	assert.Equal(t, "BLOB", samples.Type)
	assert.True(t, samples.Compressed, "blob columns are assumed compressed")
	assert.True(t, samples.Nullable)

	count := schema.Columns[3]
	assert.Equal(t, "INTEGER", count.Type)
	assert.False(t, count.Compressed)

	for i, col := range schema.Columns {
		assert.Equal(t, i, col.Position)
	}
}

func TestSQLiteIntrospectionMissingTable(t *testing.T) {
	db := newSQLiteDB(t)
	in, err := NewIntrospector(db, nil)
	require.NoError(t, err)

	schema, err := in.Schema(context.Background(), "nope")
	require.NoError(t, err)
	assert.Equal(t, "nope", schema.Table)
	assert.Empty(t, schema.Columns)
}

func TestSQLiteForeignKeys(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)
	in, err := NewIntrospector(db, nil)
	require.NoError(t, err)

	require.NoError(t, db.Exec(ctx, `CREATE TABLE "parent" ("id" TEXT NOT NULL PRIMARY KEY)`))
	require.NoError(t, db.Exec(ctx, `CREATE TABLE "child" (
		"id" TEXT NOT NULL PRIMARY KEY,
		"parent_id" TEXT REFERENCES "parent"("id")
	)`))

	schema, err := in.Schema(ctx, "child")
	require.NoError(t, err)

	parentID, ok := schema.Column("parent_id")
	require.True(t, ok)
	assert.Equal(t, "parent.id", parentID.ForeignKey)
}

func TestSQLiteTablesLike(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)
	in, err := NewIntrospector(db, nil)
	require.NoError(t, err)

	require.NoError(t, db.Exec(ctx, `CREATE TABLE "users" ("id" TEXT PRIMARY KEY)`))
	require.NoError(t, db.Exec(ctx, `CREATE TABLE "users_migration_1700000000" ("id" TEXT PRIMARY KEY)`))
	require.NoError(t, db.Exec(ctx, `CREATE TABLE "users_migration_1700000100" ("id" TEXT PRIMARY KEY)`))

	names, err := in.TablesLike(ctx, "users_migration_%")
	require.NoError(t, err)
	assert.ElementsMatch(t,
		[]string{"users_migration_1700000000", "users_migration_1700000100"}, names)
}

func TestUnknownDialectCatalog(t *testing.T) {
	_, err := catalogFor("mystery")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no catalog registered")
}

func newMockPostgres(t *testing.T) (adapter.Adapter, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	a := postgres.New(nil)
	a.DB = db
	return a, mock
}

func TestPostgresIntrospection(t *testing.T) {
	db, mock := newMockPostgres(t)
	in, err := NewIntrospector(db, nil)
	require.NoError(t, err)

	mock.ExpectQuery("information_schema.columns").
		WithArgs("public", "users").
		WillReturnRows(sqlmock.NewRows(
			[]string{"column_name", "data_type", "is_nullable", "ordinal_position", "column_default"}).
			AddRow("id", "text", "NO", 1, "gen_random_uuid()").
			AddRow("samples", "bytea", "YES", 2, nil))

	mock.ExpectQuery("information_schema.table_constraints").
		WithArgs("public", "users").
		WillReturnRows(sqlmock.NewRows([]string{"column_name", "constraint_type"}).
			AddRow("id", "PRIMARY KEY"))

	mock.ExpectQuery("information_schema.referential_constraints").
		WithArgs("public", "users").
		WillReturnRows(sqlmock.NewRows([]string{"column_name", "table_name", "column_name"}))

	schema, err := in.Schema(context.Background(), "users")
	require.NoError(t, err)
	require.Len(t, schema.Columns, 2)

	id := schema.Columns[0]
	assert.Equal(t, "TEXT", id.Type)
	assert.Equal(t, 0, id.Position, "information_schema ordinals are normalized to 0-based")
	assert.True(t, id.PrimaryKey)
	assert.True(t, id.Unique)
	assert.True(t, id.HasDefault)

	samples := schema.Columns[1]
	assert.Equal(t, "BYTEA", samples.Type)
	assert.Equal(t, 1, samples.Position)
	assert.True(t, samples.Compressed)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTableExists(t *testing.T) {
	db, mock := newMockPostgres(t)
	in, err := NewIntrospector(db, nil)
	require.NoError(t, err)

	mock.ExpectQuery("information_schema.tables").
		WithArgs("public", "users").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("users"))

	exists, err := in.TableExists(context.Background(), "users")
	require.NoError(t, err)
	assert.True(t, exists)

	mock.ExpectQuery("information_schema.tables").
		WithArgs("public", "ghosts").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))

	exists, err = in.TableExists(context.Background(), "ghosts")
	require.NoError(t, err)
	assert.False(t, exists)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestComparatorAgainstIntrospectedSchema(t *testing.T) {
	// Round trip: DDL executed on a real engine, read back through the
	// catalog, and diffed against the same declared shape.
	ctx := context.Background()
	db := newSQLiteDB(t)
	in, err := NewIntrospector(db, nil)
	require.NoError(t, err)

	require.NoError(t, db.Exec(ctx, `CREATE TABLE "metrics" (
		"id" TEXT NOT NULL PRIMARY KEY,
		"series" BLOB,
		UNIQUE ("id")
	)`))

	current, err := in.Schema(ctx, "metrics")
	require.NoError(t, err)

	expected := core.TableSchema{
		Table: "metrics",
		Columns: []core.Column{
			{Name: "id", Type: "TEXT", Position: 0, Unique: true, PrimaryKey: true},
			{Name: "series", Type: "BLOB", Position: 1, Nullable: true, Compressed: true},
		},
	}

	diff := Compare(current, expected)
	assert.False(t, diff.NeedsMigration, "changes: %v", diff.Changes)
}
