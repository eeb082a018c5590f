package dialect

import "github.com/orso-db/orso/pkg/core"

func init() {
	Register(Postgres())
}

// Postgres returns the dialect configuration for the PostgreSQL
// client/server engine.
func Postgres() *Dialect {
	return &Dialect{
		Name:              "postgres",
		DefaultSchema:     "public",
		OrdinalBase:       1,
		BlobType:          "BYTEA",
		RandomTextDefault: "gen_random_uuid()",
		NowDefault:        "NOW()",
		Placeholders:      PlaceholderDollar,
		CopyOrderBy:       "",
		types: map[core.FieldType]string{
			core.FieldText:      "TEXT",
			core.FieldInteger:   "INTEGER",
			core.FieldBigInt:    "BIGINT",
			core.FieldNumeric:   "DOUBLE PRECISION",
			core.FieldBoolean:   "BOOLEAN",
			core.FieldJsonB:     "JSONB",
			core.FieldTimestamp: "TIMESTAMP WITH TIME ZONE",
		},
	}
}
