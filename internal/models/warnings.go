package models

// WarningCode categorizes warnings by subsystem.
// W1xxx = calendar, W2xxx = snapshots.
type WarningCode string

const (
	WarnCalendarShort        WarningCode = "W1001" // calendar ended before reaching the requested number of days
	WarnOffsetUnavailable    WarningCode = "W1002" // offset reaches past the start of the calendar
	WarnHistoricalSnapshot   WarningCode = "W2001" // historical snapshot failed; its drift column is null
	WarnTodaySnapshotMissing WarningCode = "W2002" // target-date snapshot failed; the market contributes no rows
)

// Warning represents a non-fatal issue encountered during processing.
type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
}
