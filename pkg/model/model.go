// Package model defines the schema descriptors callers register for each
// persisted table. Registration is explicit: a Definition is built either
// field by field or from parallel metadata arrays, never by reflection.
// The migration engine consumes the core.TableSchema a Definition produces.
package model

import (
	"fmt"
	"strings"

	"github.com/orso-db/orso/pkg/core"
	"github.com/orso-db/orso/pkg/dialect"
)

// Field declares one column of a model.
type Field struct {
	Name       string
	Type       core.FieldType
	Nullable   bool
	Unique     bool
	PrimaryKey bool
	// ForeignKey holds a "table.column" reference, or "" when absent.
	ForeignKey string
	// Compressed stores the column as an opaque codec blob instead of the
	// dialect's native type for Type.
	Compressed bool
}

// Definition is the declared schema for one table.
type Definition struct {
	Table  string
	Fields []Field
}

// FieldArityError reports parallel metadata arrays of different lengths
// passed to FromArrays.
type FieldArityError struct {
	Array string
	Got   int
	Want  int
}

func (e *FieldArityError) Error() string {
	return fmt.Sprintf("field arity mismatch: %s has %d entries, names has %d", e.Array, e.Got, e.Want)
}

// New builds a Definition from explicit fields.
func New(table string, fields ...Field) Definition {
	return Definition{Table: table, Fields: fields}
}

// FromArrays builds a Definition from parallel metadata arrays: one entry
// per column in names, types, nullable, and compressed. unique lists the
// names of uniquely constrained columns and primaryKey names the primary
// key column, or "" for none.
//
// Returns a *FieldArityError when the parallel arrays disagree in length.
func FromArrays(table string, names []string, types []core.FieldType, nullable, compressed []bool, unique []string, primaryKey string) (Definition, error) {
	n := len(names)
	if len(types) != n {
		return Definition{}, &FieldArityError{Array: "types", Got: len(types), Want: n}
	}
	if len(nullable) != n {
		return Definition{}, &FieldArityError{Array: "nullable", Got: len(nullable), Want: n}
	}
	if len(compressed) != n {
		return Definition{}, &FieldArityError{Array: "compressed", Got: len(compressed), Want: n}
	}

	uniqueSet := make(map[string]struct{}, len(unique))
	for _, u := range unique {
		uniqueSet[u] = struct{}{}
	}

	def := Definition{Table: table, Fields: make([]Field, n)}
	for i, name := range names {
		_, uniq := uniqueSet[name]
		def.Fields[i] = Field{
			Name:       name,
			Type:       types[i],
			Nullable:   nullable[i],
			Unique:     uniq,
			PrimaryKey: name == primaryKey && primaryKey != "",
			Compressed: compressed[i],
		}
	}

	if err := def.Validate(); err != nil {
		return Definition{}, err
	}
	if primaryKey != "" {
		if _, ok := def.Field(primaryKey); !ok {
			return Definition{}, fmt.Errorf("primary key %s is not a declared field of %s", primaryKey, table)
		}
	}
	return def, nil
}

// Validate checks the declaration invariants: a table name, uniquely named
// non-empty fields, and at most one primary key.
func (d Definition) Validate() error {
	if d.Table == "" {
		return fmt.Errorf("model has no table name")
	}
	seen := make(map[string]struct{}, len(d.Fields))
	pks := 0
	for i, f := range d.Fields {
		if f.Name == "" {
			return fmt.Errorf("model %s: field %d has no name", d.Table, i)
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("model %s: duplicate field %s", d.Table, f.Name)
		}
		seen[f.Name] = struct{}{}
		if f.PrimaryKey {
			pks++
		}
	}
	if pks > 1 {
		return fmt.Errorf("model %s: %d primary key fields, at most one allowed", d.Table, pks)
	}
	return nil
}

// Field returns the declared field with the given name.
func (d Definition) Field(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// WithTable returns a copy of the definition targeting a different table.
// The field list is shared, not copied.
func (d Definition) WithTable(table string) Definition {
	d.Table = table
	return d
}

// Schema materializes the expected core.TableSchema for this definition in
// the given dialect. The primary key field is forced NOT NULL and unique,
// text primary keys and created_at/updated_at timestamp columns are marked
// as carrying engine-side defaults, and positions run contiguously from 0.
func (d Definition) Schema(dia *dialect.Dialect) (core.TableSchema, error) {
	if err := d.Validate(); err != nil {
		return core.TableSchema{}, err
	}

	schema := core.TableSchema{Table: d.Table, Columns: make([]core.Column, len(d.Fields))}
	for i, f := range d.Fields {
		col := core.Column{
			Name:       f.Name,
			Type:       strings.ToUpper(dia.TypeFor(f.Type, f.Compressed)),
			Nullable:   f.Nullable && !f.PrimaryKey,
			Position:   i,
			Unique:     f.Unique || f.PrimaryKey,
			PrimaryKey: f.PrimaryKey,
			ForeignKey: f.ForeignKey,
			Compressed: f.Compressed,
		}
		if f.PrimaryKey && f.Type == core.FieldText && !f.Compressed {
			col.HasDefault = true
		}
		if f.Type == core.FieldTimestamp && (f.Name == "created_at" || f.Name == "updated_at") {
			col.HasDefault = true
		}
		schema.Columns[i] = col
	}

	if err := schema.Validate(); err != nil {
		return core.TableSchema{}, err
	}
	return schema, nil
}
