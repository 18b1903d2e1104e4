package domain

import "time"

// Run is one extraction of a source workbook into a canonical record set.
type Run struct {
	ID         string
	SourcePath string
	RecordFile string
	Team       string
	Stats      RunStats
	CreatedAt  time.Time
}

// StoredWorkLog is a canonical record as held by the run ledger. Seq keeps
// the record's position within the run's canonical order.
type StoredWorkLog struct {
	ID    string
	RunID string
	Seq   int
	Log   WorkLog
}

// ReplayResult records what happened when one record was replayed.
type ReplayResult struct {
	ID        string
	RunID     string
	Seq       int
	Status    ReplayStatus
	Field     string
	Error     string
	Completed []string
	CreatedAt time.Time
}
