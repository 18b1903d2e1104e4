package repository

import (
	"strings"
	"time"
)

// formatTime renders a timestamp for SQLite storage.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// parseTime is the inverse of formatTime.
func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// joinFields stores a field list in a single TEXT column.
func joinFields(fields []string) string {
	return strings.Join(fields, ",")
}

// splitFields is the inverse of joinFields. An empty column yields nil.
func splitFields(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
