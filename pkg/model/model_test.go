package model

import (
	"testing"

	"github.com/orso-db/orso/pkg/core"
	"github.com/orso-db/orso/pkg/dialect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sensorModel() Definition {
	return New("sensor_readings",
		Field{Name: "id", Type: core.FieldText, PrimaryKey: true},
		Field{Name: "device", Type: core.FieldText, Unique: true},
		Field{Name: "samples", Type: core.FieldBigInt, Compressed: true, Nullable: true},
		Field{Name: "created_at", Type: core.FieldTimestamp},
	)
}

func TestFromArrays(t *testing.T) {
	def, err := FromArrays("events",
		[]string{"id", "name", "payload"},
		[]core.FieldType{core.FieldText, core.FieldText, core.FieldJsonB},
		[]bool{false, false, true},
		[]bool{false, false, false},
		[]string{"name"},
		"id",
	)
	require.NoError(t, err)
	assert.Equal(t, "events", def.Table)
	require.Len(t, def.Fields, 3)

	id, ok := def.Field("id")
	require.True(t, ok)
	assert.True(t, id.PrimaryKey)

	name, ok := def.Field("name")
	require.True(t, ok)
	assert.True(t, name.Unique)
	assert.False(t, name.PrimaryKey)

	payload, ok := def.Field("payload")
	require.True(t, ok)
	assert.True(t, payload.Nullable)
}

func TestFromArraysArityMismatch(t *testing.T) {
	tests := []struct {
		name     string
		types    []core.FieldType
		nullable []bool
		comp     []bool
		array    string
	}{
		{"short types", []core.FieldType{core.FieldText}, []bool{false, false}, []bool{false, false}, "types"},
		{"short nullable", []core.FieldType{core.FieldText, core.FieldText}, []bool{false}, []bool{false, false}, "nullable"},
		{"long compressed", []core.FieldType{core.FieldText, core.FieldText}, []bool{false, false}, []bool{false, false, true}, "compressed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromArrays("t", []string{"a", "b"}, tt.types, tt.nullable, tt.comp, nil, "")
			require.Error(t, err)
			var arity *FieldArityError
			require.ErrorAs(t, err, &arity)
			assert.Equal(t, tt.array, arity.Array)
		})
	}
}

func TestFromArraysUnknownPrimaryKey(t *testing.T) {
	_, err := FromArrays("t",
		[]string{"a"},
		[]core.FieldType{core.FieldText},
		[]bool{false}, []bool{false},
		nil, "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}

func TestValidate(t *testing.T) {
	assert.NoError(t, sensorModel().Validate())

	dup := New("t",
		Field{Name: "a", Type: core.FieldText},
		Field{Name: "a", Type: core.FieldInteger},
	)
	assert.ErrorContains(t, dup.Validate(), "duplicate field")

	twoPKs := New("t",
		Field{Name: "a", Type: core.FieldText, PrimaryKey: true},
		Field{Name: "b", Type: core.FieldText, PrimaryKey: true},
	)
	assert.ErrorContains(t, twoPKs.Validate(), "at most one")

	assert.ErrorContains(t, New("", Field{Name: "a"}).Validate(), "no table name")
}

func TestSchemaSQLite(t *testing.T) {
	schema, err := sensorModel().Schema(dialect.SQLite())
	require.NoError(t, err)
	require.NoError(t, schema.Validate())
	assert.Equal(t, "sensor_readings", schema.Table)
	require.Len(t, schema.Columns, 4)

	id := schema.Columns[0]
	assert.Equal(t, "TEXT", id.Type)
	assert.True(t, id.PrimaryKey)
	assert.True(t, id.Unique, "primary key implies unique")
	assert.False(t, id.Nullable, "primary key implies not null")
	assert.True(t, id.HasDefault, "text primary key gets a random default")

	samples := schema.Columns[2]
	assert.Equal(t, "BLOB", samples.Type, "compressed column uses the blob type")
	assert.True(t, samples.Compressed)
	assert.True(t, samples.Nullable)

	createdAt := schema.Columns[3]
	assert.True(t, createdAt.HasDefault, "created_at gets a now default")
	assert.Equal(t, "TEXT", createdAt.Type)

	for i, col := range schema.Columns {
		assert.Equal(t, i, col.Position)
	}
}

func TestSchemaPostgres(t *testing.T) {
	schema, err := sensorModel().Schema(dialect.Postgres())
	require.NoError(t, err)

	samples := schema.Columns[2]
	assert.Equal(t, "BYTEA", samples.Type)

	createdAt := schema.Columns[3]
	assert.Equal(t, "TIMESTAMP WITH TIME ZONE", createdAt.Type)
}

func TestSchemaIntegerPrimaryKeyHasNoDefault(t *testing.T) {
	def := New("counters",
		Field{Name: "id", Type: core.FieldInteger, PrimaryKey: true},
		Field{Name: "n", Type: core.FieldBigInt},
	)
	schema, err := def.Schema(dialect.SQLite())
	require.NoError(t, err)
	assert.False(t, schema.Columns[0].HasDefault)
}

func TestWithTable(t *testing.T) {
	def := sensorModel().WithTable("sensor_readings_v2")
	assert.Equal(t, "sensor_readings_v2", def.Table)
	assert.Equal(t, "sensor_readings", sensorModel().Table)

	schema, err := def.Schema(dialect.SQLite())
	require.NoError(t, err)
	assert.Equal(t, "sensor_readings_v2", schema.Table)
}
