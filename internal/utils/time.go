package utils

import (
	"time"
)

// TimestampLayout is how created_at and other instants are rendered.
const TimestampLayout = "2006-01-02 15:04:05"

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// FormatTimestamp formats t in UTC as "YYYY-MM-DD HH:MM:SS", matching
// SQLite's CURRENT_TIMESTAMP.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
