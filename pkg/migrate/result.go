package migrate

import "fmt"

// Action is the outcome class of one migration call. Each call ends in
// exactly one terminal action.
type Action int

const (
	// TableCreated means the table did not exist and was created fresh.
	TableCreated Action = iota
	// SchemaMatched means the live schema already matched the model.
	SchemaMatched
	// DataMigrated means the table was rebuilt and its predecessor renamed
	// to a backup.
	DataMigrated
)

func (a Action) String() string {
	switch a {
	case TableCreated:
		return "TableCreated"
	case SchemaMatched:
		return "SchemaMatched"
	case DataMigrated:
		return "DataMigrated"
	default:
		return "Unknown"
	}
}

// Result describes what one migration call did.
type Result struct {
	Action Action
	Table  string
	// BackupTable is set only for DataMigrated.
	BackupTable string
	// RowsMigrated is the live table's row count after a DataMigrated
	// rebuild, zero otherwise.
	RowsMigrated int64
	// Changes lists the schema differences that triggered the rebuild, or
	// a creation note for TableCreated.
	Changes []string
}

// StepError tags a failure with the rebuild step it occurred in. Completed
// renames are not rolled back; the surviving backup table is the recovery
// path.
type StepError struct {
	Step  string
	Table string
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("migration step %q failed for table %s: %v", e.Step, e.Table, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
