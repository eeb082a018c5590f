package migrate

import (
	"fmt"
	"strings"

	"github.com/orso-db/orso/pkg/core"
	"github.com/orso-db/orso/pkg/dialect"
)

// CreateTableSQL renders the CREATE TABLE statement for a schema. Unique
// columns become table-level UNIQUE constraints; the primary key column is
// declared inline and never also gets a UNIQUE constraint. Columns flagged
// as defaulted get engine-side expressions: a random value for text primary
// keys, the current time for timestamp audit columns.
func CreateTableSQL(d *dialect.Dialect, s core.TableSchema) string {
	textType := strings.ToUpper(d.TypeFor(core.FieldText, false))

	defs := make([]string, 0, len(s.Columns)+1)
	var constraints []string

	for _, col := range s.Columns {
		def := fmt.Sprintf("%s %s", d.QuoteIdent(col.Name), col.Type)

		if !col.Nullable {
			def += " NOT NULL"
		}
		if col.PrimaryKey {
			def += " PRIMARY KEY"
		}
		if expr := defaultExpr(d, col, textType); expr != "" {
			def += " DEFAULT " + expr
		}
		if col.ForeignKey != "" {
			def += " REFERENCES " + quoteReference(d, col.ForeignKey)
		}
		if col.Unique && !col.PrimaryKey {
			constraints = append(constraints, fmt.Sprintf("UNIQUE (%s)", d.QuoteIdent(col.Name)))
		}

		defs = append(defs, def)
	}

	defs = append(defs, constraints...)

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n  %s\n)",
		d.QuoteIdent(s.Table), strings.Join(defs, ",\n  "))
}

func defaultExpr(d *dialect.Dialect, col core.Column, textType string) string {
	if !col.HasDefault {
		return ""
	}
	if col.PrimaryKey && col.Type == textType {
		return d.RandomTextDefault
	}
	if col.Name == "created_at" || col.Name == "updated_at" {
		return d.NowDefault
	}
	return ""
}

// quoteReference renders a "table.column" reference as quoted SQL; a bare
// table name references its primary key implicitly.
func quoteReference(d *dialect.Dialect, ref string) string {
	table, column, ok := strings.Cut(ref, ".")
	if !ok {
		return d.QuoteIdent(table)
	}
	return fmt.Sprintf("%s(%s)", d.QuoteIdent(table), d.QuoteIdent(column))
}

// CopySQL renders the single INSERT...SELECT moving every row from source
// into target. Columns present in both schemas are selected verbatim, so
// blob columns are copied byte for byte without decoding. Columns the
// source lacks are filled with NULL when nullable or a type-appropriate
// zero value otherwise. Column order follows the expected schema.
func CopySQL(d *dialect.Dialect, source, target string, current, expected core.TableSchema) string {
	selects := make([]string, 0, len(expected.Columns))
	targets := make([]string, 0, len(expected.Columns))

	for _, col := range expected.Columns {
		targets = append(targets, d.QuoteIdent(col.Name))
		if _, ok := current.Column(col.Name); ok {
			selects = append(selects, d.QuoteIdent(col.Name))
			continue
		}
		if col.Nullable {
			selects = append(selects, "NULL")
			continue
		}
		selects = append(selects, zeroLiteral(col.Type))
	}

	sqlStr := fmt.Sprintf("INSERT INTO %s (%s) SELECT %s FROM %s",
		d.QuoteIdent(target), strings.Join(targets, ", "),
		strings.Join(selects, ", "), d.QuoteIdent(source))

	if d.CopyOrderBy != "" {
		sqlStr += " ORDER BY " + d.CopyOrderBy
	}
	return sqlStr
}

func zeroLiteral(sqlType string) string {
	switch {
	case strings.Contains(sqlType, "INT"):
		return "0"
	case strings.Contains(sqlType, "REAL"),
		strings.Contains(sqlType, "DOUBLE"),
		strings.Contains(sqlType, "NUMERIC"):
		return "0.0"
	case sqlType == "BOOLEAN":
		return "FALSE"
	case strings.Contains(sqlType, "TEXT"), strings.Contains(sqlType, "CHAR"):
		return "''"
	default:
		return "NULL"
	}
}

// renameSQL renders the table rename used for the backup and swap steps.
func renameSQL(d *dialect.Dialect, from, to string) string {
	return fmt.Sprintf("ALTER TABLE %s RENAME TO %s", d.QuoteIdent(from), d.QuoteIdent(to))
}
