package models

import "time"

// ExportTimeLayout is the timestamp format used by export.xml attributes,
// e.g. "2024-12-21 23:45:30 -0800".
const ExportTimeLayout = "2006-01-02 15:04:05 -0700"

// DateLayout is the calendar date format used for all date keys and output.
const DateLayout = "2006-01-02"

// ParseExportTime parses an export.xml timestamp. A parse failure returns the
// zero time; per the data-quality policy the record carrying it is dropped by
// the window filter rather than aborting the run.
func ParseExportTime(s string) (time.Time, error) {
	return time.Parse(ExportTimeLayout, s)
}

// DateOf returns the calendar date key of t, in t's own location. Sessions
// are attributed to local calendar days, not UTC days.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}

// ClockOf returns the time-of-day of t as "HH:MM".
func ClockOf(t time.Time) string {
	return t.Format("15:04")
}
