package migrate

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/orso-db/orso/pkg/adapter"
	"github.com/orso-db/orso/pkg/adapters/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSweeper(t *testing.T, cfg Config) (*Sweeper, adapter.Adapter) {
	t.Helper()
	a := sqlite.New(nil)
	require.NoError(t, a.Connect(context.Background(), adapter.Config{Path: ":memory:"}))
	t.Cleanup(func() { _ = a.Close() })

	s, err := NewSweeper(a, cfg, nil)
	require.NoError(t, err)
	return s, a
}

func createBackup(t *testing.T, db adapter.Adapter, table string, ts int64) string {
	t.Helper()
	name := fmt.Sprintf("%s_migration_%d", table, ts)
	require.NoError(t, db.Exec(context.Background(),
		fmt.Sprintf(`CREATE TABLE "%s" ("id" TEXT PRIMARY KEY)`, name)))
	return name
}

func TestSweepCountLimit(t *testing.T) {
	ctx := context.Background()
	s, db := newTestSweeper(t, Config{MaxBackups: 2, RetentionDays: 365})
	now := time.Unix(1700000000, 0)
	s.now = func() time.Time { return now }

	// Four backups, minutes apart; the two oldest exceed the count limit.
	var names []string
	for i := int64(0); i < 4; i++ {
		names = append(names, createBackup(t, db, "users", now.Unix()-i*60))
	}

	dropped, err := s.Sweep(ctx, "users")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{names[2], names[3]}, dropped)

	remaining, err := s.Backups(ctx, "users")
	require.NoError(t, err)
	assert.Equal(t, []string{names[0], names[1]}, remaining, "newest first")
}

func TestSweepAgeLimit(t *testing.T) {
	ctx := context.Background()
	s, db := newTestSweeper(t, Config{MaxBackups: 10, RetentionDays: 30})
	now := time.Unix(1700000000, 0)
	s.now = func() time.Time { return now }

	fresh := createBackup(t, db, "users", now.Unix()-86400)
	stale := createBackup(t, db, "users", now.Unix()-40*86400)

	dropped, err := s.Sweep(ctx, "users")
	require.NoError(t, err)
	assert.Equal(t, []string{stale}, dropped,
		"an old backup is dropped even when within the count limit")

	remaining, err := s.Backups(ctx, "users")
	require.NoError(t, err)
	assert.Equal(t, []string{fresh}, remaining)
}

func TestSweepIgnoresUnrelatedTables(t *testing.T) {
	ctx := context.Background()
	s, db := newTestSweeper(t, Config{MaxBackups: 1})
	now := time.Unix(1700000000, 0)
	s.now = func() time.Time { return now }

	createBackup(t, db, "users", now.Unix())
	require.NoError(t, db.Exec(ctx, `CREATE TABLE "users" ("id" TEXT PRIMARY KEY)`))
	require.NoError(t, db.Exec(ctx, `CREATE TABLE "users_migration_notatimestamp" ("id" TEXT)`))
	require.NoError(t, db.Exec(ctx, `CREATE TABLE "orders_migration_1690000000" ("id" TEXT)`))

	dropped, err := s.Sweep(ctx, "users")
	require.NoError(t, err)
	assert.Empty(t, dropped)

	for _, table := range []string{"users", "users_migration_notatimestamp", "orders_migration_1690000000"} {
		row, err := db.QueryRow(ctx,
			"SELECT name FROM sqlite_master WHERE type='table' AND name = ?", table)
		require.NoError(t, err)
		var name string
		require.NoError(t, row.Scan(&name))
	}
}

func TestSweepTreatsPatternWildcardsLiterally(t *testing.T) {
	ctx := context.Background()
	s, db := newTestSweeper(t, Config{MaxBackups: 1})
	now := time.Unix(1700000000, 0)
	s.now = func() time.Time { return now }

	// "_" is a single-character wildcard in LIKE, so this name matches the
	// search pattern for "users" backups despite not being one.
	lookalike := "usersXmigrationX1690000000"
	require.NoError(t, db.Exec(ctx,
		fmt.Sprintf(`CREATE TABLE "%s" ("id" TEXT PRIMARY KEY)`, lookalike)))
	genuine := createBackup(t, db, "users", now.Unix())

	backups, err := s.Backups(ctx, "users")
	require.NoError(t, err)
	assert.Equal(t, []string{genuine}, backups)

	dropped, err := s.Sweep(ctx, "users")
	require.NoError(t, err)
	assert.Empty(t, dropped)

	row, err := db.QueryRow(ctx,
		"SELECT name FROM sqlite_master WHERE type='table' AND name = ?", lookalike)
	require.NoError(t, err)
	var name string
	require.NoError(t, row.Scan(&name))
}

func TestSweepCustomSuffix(t *testing.T) {
	ctx := context.Background()
	s, db := newTestSweeper(t, Config{MaxBackups: 1, Suffix: "bak"})
	now := time.Unix(1700000000, 0)
	s.now = func() time.Time { return now }

	keep := fmt.Sprintf("users_bak_%d", now.Unix())
	drop := fmt.Sprintf("users_bak_%d", now.Unix()-60)
	for _, name := range []string{keep, drop} {
		require.NoError(t, db.Exec(ctx,
			fmt.Sprintf(`CREATE TABLE "%s" ("id" TEXT PRIMARY KEY)`, name)))
	}

	dropped, err := s.Sweep(ctx, "users")
	require.NoError(t, err)
	assert.Equal(t, []string{drop}, dropped)
}

func TestSweepRunsAfterMigration(t *testing.T) {
	ctx := context.Background()
	e, db := newTestExecutor(t)
	e.cfg.MaxBackups = 1
	e.sweeper.cfg.MaxBackups = 1
	now := time.Unix(1700000000, 0)
	e.now = func() time.Time { return now }

	// Two pre-existing backups; the rebuild adds a third and the sweep
	// keeps only the newest.
	createBackup(t, db, "users", now.Unix()-120)
	createBackup(t, db, "users", now.Unix()-60)

	_, err := e.Migrate(ctx, usersModel(false))
	require.NoError(t, err)

	res, err := e.Migrate(ctx, usersModel(true))
	require.NoError(t, err)
	require.Equal(t, DataMigrated, res.Action)

	remaining, err := e.sweeper.Backups(ctx, "users")
	require.NoError(t, err)
	assert.Equal(t, []string{res.BackupTable}, remaining)
}
