package models

import "time"

// EventKind identifies which of the supported Apple Health record types a
// RawEvent carries. Only these four are extracted; everything else in the
// export is skipped at decode time.
type EventKind int

const (
	KindSleepStage EventKind = iota
	KindHeartRate
	KindRestingHeartRate
	KindHRV
)

// HealthKit record type identifiers as they appear in export.xml.
const (
	HKTypeSleepAnalysis    = "HKCategoryTypeIdentifierSleepAnalysis"
	HKTypeHeartRate        = "HKQuantityTypeIdentifierHeartRate"
	HKTypeRestingHeartRate = "HKQuantityTypeIdentifierRestingHeartRate"
	HKTypeHRVSDNN          = "HKQuantityTypeIdentifierHeartRateVariabilitySDNN"
)

func (k EventKind) String() string {
	switch k {
	case KindSleepStage:
		return "sleep_stage"
	case KindHeartRate:
		return "heart_rate"
	case KindRestingHeartRate:
		return "resting_heart_rate"
	case KindHRV:
		return "heart_rate_variability"
	default:
		return "unknown"
	}
}

// RawEvent is one decoded record from the export. Start and End are the zero
// time when the source timestamp failed to parse; the window filter drops
// such events. Value holds the numeric magnitude for the three cardiac kinds
// and is NaN when the source value was missing or non-numeric. StageLabel
// holds the raw sleep stage value string for KindSleepStage only.
type RawEvent struct {
	Kind       EventKind
	Start      time.Time
	End        time.Time
	Value      float64
	StageLabel string
	Unit       string
	Source     string
}

// SleepSession is one qualifying sleep stage record, attributed to the night
// it began (the calendar date of Start, so a session crossing midnight counts
// toward the previous day). Immutable once built.
type SleepSession struct {
	NightDate       string
	Start           time.Time
	End             time.Time
	DurationMinutes float64 // may be negative if the source data is malformed
	Stage           SleepStage
	Source          string
}

// CardiacMeasurement is one qualifying heart rate, resting heart rate, or
// HRV record keyed by the calendar date of its timestamp.
type CardiacMeasurement struct {
	Date      string
	Timestamp time.Time
	Kind      EventKind
	Value     float64
	Unit      string
	Source    string
}
