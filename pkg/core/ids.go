package core

import (
	"time"

	"github.com/google/uuid"
)

// NewID returns a random UUID string for client-side primary key
// generation. Text primary keys created through the migration executor also
// get an engine-side random default, so this is only needed when the caller
// wants the key before the insert.
func NewID() string {
	return uuid.New().String()
}

// Now returns the current UTC time truncated to second precision, matching
// the resolution of the engine-side timestamp defaults.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// FormatTimestamp renders a timestamp in the RFC3339 form stored in
// timestamp columns.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ParseTimestamp parses an RFC3339 timestamp read back from a column.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
