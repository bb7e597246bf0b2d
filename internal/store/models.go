package store

import "time"

// Scan types recorded alongside each row. Periodic scans come from the
// background scheduler, manual scans from a user action.
const (
	ScanTypePeriodic = "periodic"
	ScanTypeManual   = "manual"
)

// ScanRecord is one matched network observed during one scan attempt.
// Rows are immutable once inserted.
type ScanRecord struct {
	ID             int64
	Timestamp      int64 // epoch milliseconds, shared by all rows of one attempt
	NetworkName    string
	MatchedKeyword string
	SessionID      int64 // groups rows of one attempt; 0 for pre-upgrade rows
	ScanType       string
}

// Time returns the record timestamp as a local time.Time.
func (r ScanRecord) Time() time.Time {
	return time.UnixMilli(r.Timestamp)
}

type Setting struct {
	Key   string
	Value string
}

// Settings is the typed view of the settings table consumed by the
// recorder, scheduler and calendar.
type Settings struct {
	TargetKeyword       string
	ScanStartHour       int // [0,23]
	ScanEndHour         int // [0,23], window is [start,end) and may wrap midnight
	ScanIntervalMinutes int
	TargetDailyCount    int
}

// Setting keys and defaults.
const (
	KeyTargetKeyword       = "target_keyword"
	KeyScanStartHour       = "scan_start_hour"
	KeyScanEndHour         = "scan_end_hour"
	KeyScanIntervalMinutes = "scan_interval_minutes"
	KeyTargetDailyCount    = "target_daily_count"

	DefaultScanStartHour       = 8
	DefaultScanEndHour         = 20
	DefaultScanIntervalMinutes = 15
	DefaultTargetDailyCount    = 3
)
