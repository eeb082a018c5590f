package migrate

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/orso-db/orso/pkg/adapter"
	"github.com/orso-db/orso/pkg/schema"
)

// Sweeper prunes old migration backups. Runs after every rebuild, and can
// be invoked on demand.
type Sweeper struct {
	db     adapter.Adapter
	intro  *schema.Introspector
	cfg    Config
	logger *slog.Logger
	now    func() time.Time
}

// NewSweeper creates a standalone sweeper. A zero Config means defaults;
// if logger is nil, a discard logger is used.
func NewSweeper(db adapter.Adapter, cfg Config, logger *slog.Logger) (*Sweeper, error) {
	intro, err := schema.NewIntrospector(db, logger)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Sweeper{db: db, intro: intro, cfg: cfg.withDefaults(), logger: logger, now: time.Now}, nil
}

type backup struct {
	name      string
	timestamp int64
}

// Backups lists the backup tables for one base table, newest first. Tables
// matching the name pattern but without a parseable trailing timestamp are
// ignored.
func (s *Sweeper) Backups(ctx context.Context, table string) ([]string, error) {
	backups, err := s.list(ctx, table)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(backups))
	for i, b := range backups {
		names[i] = b.name
	}
	return names, nil
}

// Sweep drops every backup of the table that exceeds the retention policy.
// The two limits apply independently: a backup is dropped when it ranks at
// or beyond MaxBackups newest-first, or when it is older than
// RetentionDays, whichever applies. Returns the dropped table names.
func (s *Sweeper) Sweep(ctx context.Context, table string) ([]string, error) {
	backups, err := s.list(ctx, table)
	if err != nil {
		return nil, err
	}

	nowSecs := s.now().Unix()
	var dropped []string

	for rank, b := range backups {
		ageDays := (nowSecs - b.timestamp) / 86400
		if rank < s.cfg.MaxBackups && ageDays <= int64(s.cfg.RetentionDays) {
			continue
		}

		drop := fmt.Sprintf("DROP TABLE IF EXISTS %s", s.db.Dialect().QuoteIdent(b.name))
		if err := s.db.Exec(ctx, drop); err != nil {
			return dropped, fmt.Errorf("failed to drop backup table %s: %w", b.name, err)
		}

		s.logger.Info("dropped expired backup",
			slog.String("table", b.name),
			slog.Int64("age_days", ageDays),
			slog.Int("rank", rank))
		dropped = append(dropped, b.name)
	}

	return dropped, nil
}

func (s *Sweeper) list(ctx context.Context, table string) ([]backup, error) {
	sep := fmt.Sprintf("_%s_", s.cfg.Suffix)
	names, err := s.intro.TablesLike(ctx, table+sep+"%")
	if err != nil {
		return nil, err
	}

	backups := make([]backup, 0, len(names))
	for _, name := range names {
		// LIKE treats "_" as a single-character wildcard, so the pattern can
		// match unrelated tables. Require the literal prefix before parsing.
		rest, ok := strings.CutPrefix(name, table+sep)
		if !ok {
			continue
		}
		ts, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			continue
		}
		backups = append(backups, backup{name: name, timestamp: ts})
	}

	sort.Slice(backups, func(i, j int) bool { return backups[i].timestamp > backups[j].timestamp })
	return backups, nil
}
