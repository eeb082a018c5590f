package migrate

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/orso-db/orso/pkg/adapter"
	"github.com/orso-db/orso/pkg/model"
	"github.com/orso-db/orso/pkg/schema"
)

// Executor runs migrations for one database connection.
type Executor struct {
	db      adapter.Adapter
	intro   *schema.Introspector
	sweeper *Sweeper
	cfg     Config
	logger  *slog.Logger
	now     func() time.Time
}

// New creates an executor. A zero Config means defaults; if logger is nil,
// a discard logger is used.
func New(db adapter.Adapter, cfg Config, logger *slog.Logger) (*Executor, error) {
	intro, err := schema.NewIntrospector(db, logger)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	cfg = cfg.withDefaults()
	e := &Executor{
		db:     db,
		intro:  intro,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
	e.sweeper = &Sweeper{db: db, intro: intro, cfg: cfg, logger: logger, now: e.timeNow}
	return e, nil
}

func (e *Executor) timeNow() time.Time { return e.now() }

// MigrateAll migrates each definition in order, stopping at the first
// failure.
func (e *Executor) MigrateAll(ctx context.Context, defs []model.Definition) ([]Result, error) {
	results := make([]Result, 0, len(defs))
	for _, def := range defs {
		res, err := e.Migrate(ctx, def)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// Migrate brings the definition's table in line with its declared schema.
// A missing table is created, a matching one is left untouched, and a
// diverging one is rebuilt with the previous data preserved in a
// timestamped backup table.
func (e *Executor) Migrate(ctx context.Context, def model.Definition) (Result, error) {
	expected, err := def.Schema(e.db.Dialect())
	if err != nil {
		return Result{}, err
	}
	table := expected.Table

	exists, err := e.intro.TableExists(ctx, table)
	if err != nil {
		return Result{}, err
	}

	if !exists {
		ddl := CreateTableSQL(e.db.Dialect(), expected)
		if err := e.db.Exec(ctx, ddl); err != nil {
			return Result{}, &StepError{Step: "create table", Table: table, Err: err}
		}
		e.logger.Info("created table", slog.String("table", table))
		return Result{
			Action:  TableCreated,
			Table:   table,
			Changes: []string{fmt.Sprintf("Created table %s from schema", table)},
		}, nil
	}

	current, err := e.intro.Schema(ctx, table)
	if err != nil {
		return Result{}, err
	}

	diff := schema.Compare(current, expected)
	if !diff.NeedsMigration {
		e.logger.Debug("schema matches", slog.String("table", table))
		return Result{Action: SchemaMatched, Table: table}, nil
	}

	e.logger.Info("schema drift detected",
		slog.String("table", table), slog.Any("changes", diff.Changes))

	return e.rebuild(ctx, diff)
}

// rebuild performs the zero-loss table swap: create a temp table with the
// expected schema, copy every row across in one statement, rename the old
// table to a backup and the temp table into place, then verify and sweep.
// Failures after the first rename leave the backup in place for manual
// recovery.
func (e *Executor) rebuild(ctx context.Context, diff schema.Diff) (Result, error) {
	d := e.db.Dialect()
	table := diff.Expected.Table
	ts := e.now().Unix()

	tempTable := fmt.Sprintf("%s_temp_%d", table, ts)
	backupTable := fmt.Sprintf("%s_%s_%d", table, e.cfg.Suffix, ts)

	tempSchema := diff.Expected
	tempSchema.Table = tempTable
	if err := e.db.Exec(ctx, CreateTableSQL(d, tempSchema)); err != nil {
		return Result{}, &StepError{Step: "create temp table", Table: table, Err: err}
	}

	copySQL := CopySQL(d, table, tempTable, diff.Current, diff.Expected)
	if err := e.db.Exec(ctx, copySQL); err != nil {
		return Result{}, &StepError{Step: "copy data", Table: table, Err: err}
	}

	if err := e.db.Exec(ctx, renameSQL(d, table, backupTable)); err != nil {
		return Result{}, &StepError{Step: "rename to backup", Table: table, Err: err}
	}
	if err := e.db.Exec(ctx, renameSQL(d, tempTable, table)); err != nil {
		return Result{}, &StepError{Step: "rename temp table", Table: table, Err: err}
	}

	liveCount, err := e.countRows(ctx, table)
	if err != nil {
		return Result{}, &StepError{Step: "verify row count", Table: table, Err: err}
	}
	backupCount, err := e.countRows(ctx, backupTable)
	if err != nil {
		return Result{}, &StepError{Step: "verify row count", Table: table, Err: err}
	}
	if liveCount < backupCount {
		e.logger.Warn("row count shrank during migration",
			slog.String("table", table),
			slog.Int64("before", backupCount),
			slog.Int64("after", liveCount))
	}

	if _, err := e.sweeper.Sweep(ctx, table); err != nil {
		return Result{}, &StepError{Step: "retention sweep", Table: table, Err: err}
	}

	e.logger.Info("migrated table",
		slog.String("table", table),
		slog.String("backup", backupTable),
		slog.Int64("rows", liveCount))

	return Result{
		Action:       DataMigrated,
		Table:        table,
		BackupTable:  backupTable,
		RowsMigrated: liveCount,
		Changes:      diff.Changes,
	}, nil
}

func (e *Executor) countRows(ctx context.Context, table string) (int64, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", e.db.Dialect().QuoteIdent(table))
	row, err := e.db.QueryRow(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to count rows in %s: %w", table, err)
	}
	var n int64
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count rows in %s: %w", table, err)
	}
	return n, nil
}
