package dialect

import "github.com/orso-db/orso/pkg/core"

func init() {
	Register(SQLite())
}

// SQLite returns the dialect configuration for the embedded SQLite engine.
func SQLite() *Dialect {
	return &Dialect{
		Name:              "sqlite",
		DefaultSchema:     "",
		OrdinalBase:       0,
		BlobType:          "BLOB",
		RandomTextDefault: "(lower(hex(randomblob(16))))",
		NowDefault:        "CURRENT_TIMESTAMP",
		Placeholders:      PlaceholderQuestion,
		CopyOrderBy:       "rowid",
		types: map[core.FieldType]string{
			core.FieldText:      "TEXT",
			core.FieldInteger:   "INTEGER",
			core.FieldBigInt:    "INTEGER",
			core.FieldNumeric:   "REAL",
			core.FieldBoolean:   "INTEGER",
			core.FieldJsonB:     "TEXT",
			core.FieldTimestamp: "TEXT",
		},
	}
}
