// Package schema reads table schemas from the database catalog and
// compares them against the schemas models declare. Introspection is
// dialect-specific and lives behind the Catalog registry; comparison is a
// pure function over two core.TableSchema values.
package schema

import (
	"fmt"

	"github.com/orso-db/orso/pkg/core"
)

// Diff is the result of comparing a live table schema against the schema a
// model expects. Changes lists every detected difference as a human-readable
// message; the list is what migration logs and results report.
type Diff struct {
	NeedsMigration bool
	Changes        []string
	Current        core.TableSchema
	Expected       core.TableSchema
}

// Compare diffs the current (introspected) schema against the expected
// (declared) one. Every mismatching column attribute is recorded
// independently, so a single column can contribute several messages. The
// inputs are not modified.
func Compare(current, expected core.TableSchema) Diff {
	diff := Diff{Current: current, Expected: expected}

	if len(current.Columns) != len(expected.Columns) {
		diff.record("Column count differs: %d vs %d", len(current.Columns), len(expected.Columns))
	}

	currentByName := make(map[string]core.Column, len(current.Columns))
	for _, col := range current.Columns {
		currentByName[col.Name] = col
	}
	expectedByName := make(map[string]core.Column, len(expected.Columns))
	for _, col := range expected.Columns {
		expectedByName[col.Name] = col
	}

	for _, want := range expected.Columns {
		got, ok := currentByName[want.Name]
		if !ok {
			diff.record("Missing column: %s", want.Name)
			continue
		}
		if got.Type != want.Type {
			diff.record("Type mismatch for %s: %s vs %s", want.Name, got.Type, want.Type)
		}
		if got.Nullable != want.Nullable {
			diff.record("Nullability mismatch for %s: %t vs %t", want.Name, got.Nullable, want.Nullable)
		}
		if got.Position != want.Position {
			diff.record("Position mismatch for %s: %d vs %d", want.Name, got.Position, want.Position)
		}
		if got.Unique != want.Unique {
			diff.record("Unique constraint mismatch for %s: %t vs %t", want.Name, got.Unique, want.Unique)
		}
		if got.PrimaryKey != want.PrimaryKey {
			diff.record("Primary key mismatch for %s: %t vs %t", want.Name, got.PrimaryKey, want.PrimaryKey)
		}
		if got.Compressed != want.Compressed {
			diff.record("Compression mismatch for %s: %t vs %t", want.Name, got.Compressed, want.Compressed)
		}
	}

	for _, got := range current.Columns {
		if _, ok := expectedByName[got.Name]; !ok {
			diff.record("Extra column: %s", got.Name)
		}
	}

	return diff
}

func (d *Diff) record(format string, args ...any) {
	d.Changes = append(d.Changes, fmt.Sprintf(format, args...))
	d.NeedsMigration = true
}
