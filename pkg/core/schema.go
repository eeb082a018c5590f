package core

import "fmt"

// FieldType is the semantic column type a model declares. Dialects map each
// FieldType to a physical SQL type; compressed columns bypass the mapping
// and use the dialect's opaque blob type instead.
type FieldType int

const (
	FieldText FieldType = iota
	FieldInteger
	FieldBigInt
	FieldNumeric
	FieldBoolean
	FieldJsonB
	FieldTimestamp
)

// String returns the canonical name of the field type.
func (t FieldType) String() string {
	switch t {
	case FieldText:
		return "text"
	case FieldInteger:
		return "integer"
	case FieldBigInt:
		return "bigint"
	case FieldNumeric:
		return "numeric"
	case FieldBoolean:
		return "boolean"
	case FieldJsonB:
		return "jsonb"
	case FieldTimestamp:
		return "timestamp"
	default:
		return "unknown"
	}
}

// ParseFieldType parses a field type name as it appears in model
// configuration files.
func ParseFieldType(s string) (FieldType, error) {
	switch s {
	case "text":
		return FieldText, nil
	case "integer", "int":
		return FieldInteger, nil
	case "bigint":
		return FieldBigInt, nil
	case "numeric", "real", "float":
		return FieldNumeric, nil
	case "boolean", "bool":
		return FieldBoolean, nil
	case "jsonb", "json":
		return FieldJsonB, nil
	case "timestamp":
		return FieldTimestamp, nil
	default:
		return 0, fmt.Errorf("unknown field type %q", s)
	}
}

// Column is the structural metadata needed to generate DDL for one column
// and to detect drift between a model and a live table. Type holds the
// physical SQL type in the active dialect, uppercased.
type Column struct {
	Name       string
	Type       string
	Nullable   bool
	Position   int
	Unique     bool
	PrimaryKey bool
	// ForeignKey holds a "table.column" reference, or "" when absent.
	ForeignKey string
	HasDefault bool
	// Compressed marks columns stored as opaque codec blobs. On introspected
	// schemas this is inferred from the physical type being the dialect's
	// blob type, which misclassifies raw uncompressed byte columns.
	Compressed bool
}

// TableSchema is an ordered column list for one table. Two instances feed
// each migration: the expected schema derived from the model and the
// current schema read from the database catalog.
type TableSchema struct {
	Table   string
	Columns []Column
}

// Validate checks the structural invariants: unique column names, at most
// one primary key, and positions contiguous from 0 in column order.
func (s TableSchema) Validate() error {
	seen := make(map[string]struct{}, len(s.Columns))
	pks := 0
	for i, col := range s.Columns {
		if col.Name == "" {
			return fmt.Errorf("table %s: column %d has no name", s.Table, i)
		}
		if _, dup := seen[col.Name]; dup {
			return fmt.Errorf("table %s: duplicate column %s", s.Table, col.Name)
		}
		seen[col.Name] = struct{}{}
		if col.PrimaryKey {
			pks++
		}
		if col.Position != i {
			return fmt.Errorf("table %s: column %s has position %d, want %d", s.Table, col.Name, col.Position, i)
		}
	}
	if pks > 1 {
		return fmt.Errorf("table %s: %d primary key columns, at most one allowed", s.Table, pks)
	}
	return nil
}

// Column returns the column with the given name.
func (s TableSchema) Column(name string) (Column, bool) {
	for _, col := range s.Columns {
		if col.Name == name {
			return col, true
		}
	}
	return Column{}, false
}

// ColumnNames returns the column names in schema order.
func (s TableSchema) ColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, col := range s.Columns {
		names[i] = col.Name
	}
	return names
}
