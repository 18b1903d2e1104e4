package service

import "errors"

var (
	// ErrNoSheets indicates a workbook with no non-empty sheet.
	ErrNoSheets = errors.New("workbook has no sheets with content")

	// ErrNoRecords indicates that nothing survived extraction, or that a
	// replay was asked for an empty record set.
	ErrNoRecords = errors.New("no canonical records")

	// ErrMissingCredentials indicates the legacy system URL, username or
	// password is not configured.
	ErrMissingCredentials = errors.New("missing legacy system credentials")

	// ErrNoRecordSource indicates a replay request naming neither a record
	// file nor a run.
	ErrNoRecordSource = errors.New("no record file or run given")
)
