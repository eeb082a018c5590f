// Package migrate keeps live tables in sync with declared models. A table
// is created when absent, left alone when its schema matches, and rebuilt
// through a zero-loss copy into a fresh table otherwise. The previous table
// is renamed to a timestamped backup, never dropped; old backups are pruned
// by the retention sweeper.
package migrate

const (
	// DefaultMaxBackups is the number of newest backups kept per table.
	DefaultMaxBackups = 5
	// DefaultRetentionDays is the age limit beyond which a backup is
	// dropped regardless of the count limit.
	DefaultRetentionDays = 30
	// DefaultSuffix is the backup table name infix: {table}_{suffix}_{ts}.
	DefaultSuffix = "migration"
)

// Config controls backup naming and retention. The zero value means
// defaults, so Config{} is a valid configuration.
type Config struct {
	MaxBackups    int
	RetentionDays int
	Suffix        string
}

// DefaultConfig returns the default retention policy.
func DefaultConfig() Config {
	return Config{
		MaxBackups:    DefaultMaxBackups,
		RetentionDays: DefaultRetentionDays,
		Suffix:        DefaultSuffix,
	}
}

func (c Config) withDefaults() Config {
	if c.MaxBackups == 0 {
		c.MaxBackups = DefaultMaxBackups
	}
	if c.RetentionDays == 0 {
		c.RetentionDays = DefaultRetentionDays
	}
	if c.Suffix == "" {
		c.Suffix = DefaultSuffix
	}
	return c
}
