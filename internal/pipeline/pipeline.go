// Package pipeline converts raw export events into daily sleep and cardiac
// summaries and merges them into one dense, date-ordered table. It performs
// no I/O: callers hand it an already-decoded event slice, and the same input
// plus the same reference time always yields the same rows.
package pipeline

import (
	"log/slog"
	"math"
	"time"

	"github.com/claude/healthsheet/internal/models"
)

// DefaultDaysBack is the lookback horizon used when none is configured.
const DefaultDaysBack = 30

// Options configures one pipeline run. Now is the reference time anchoring
// the lookback window; the zero value means wall-clock time. Tests pin it.
// DaysBack zero is meaningful: only events starting at or after Now qualify.
// A negative DaysBack selects DefaultDaysBack.
type Options struct {
	DaysBack int
	Now      time.Time
}

// Stats counts per-record data-quality outcomes. No entry here is fatal;
// each counted record was skipped or tagged and the run continued.
type Stats struct {
	SleepSessions       int
	HeartRateReadings   int
	RestingHRReadings   int
	HRVReadings         int
	DroppedTimestamps   int // unparseable start/end, record dropped
	SkippedValues       int // missing or non-numeric measurement value
	UnknownStages       int // sessions tagged StageUnknown, still retained
	OutsideWindow       int
}

// Result holds the merged table plus the two per-day summary collections for
// reporting, and the run's data-quality stats.
type Result struct {
	Rows         []models.CombinedRow
	SleepDaily   []models.DailySleepSummary
	CardiacDaily []models.DailyCardiacSummary
	Stats        Stats
}

// Run executes the full extraction-and-aggregation pipeline over events.
func Run(events []models.RawEvent, opts Options, log *slog.Logger) *Result {
	if opts.DaysBack < 0 {
		opts.DaysBack = DefaultDaysBack
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	res := &Result{}

	sessions := extractSleepSessions(events, opts, &res.Stats, log)
	measurements := extractCardiacMeasurements(events, opts, &res.Stats, log)

	res.SleepDaily = AggregateNightlySleep(sessions)
	res.CardiacDaily = AggregateDailyCardiac(measurements)
	res.Rows = MergeDaily(res.SleepDaily, res.CardiacDaily)

	log.Info("pipeline complete",
		"sleep_sessions", res.Stats.SleepSessions,
		"heart_rate_readings", res.Stats.HeartRateReadings,
		"resting_hr_readings", res.Stats.RestingHRReadings,
		"hrv_readings", res.Stats.HRVReadings,
		"dropped_timestamps", res.Stats.DroppedTimestamps,
		"skipped_values", res.Stats.SkippedValues,
		"unknown_stages", res.Stats.UnknownStages,
		"outside_window", res.Stats.OutsideWindow,
		"sleep_days", len(res.SleepDaily),
		"cardiac_days", len(res.CardiacDaily),
		"rows", len(res.Rows),
	)
	return res
}

// withinWindow reports whether the event started inside the lookback window
// anchored at now. The cutoff is inclusive.
func withinWindow(ev models.RawEvent, now time.Time, daysBack int) bool {
	cutoff := now.AddDate(0, 0, -daysBack)
	return !ev.Start.Before(cutoff)
}

// round1 and round2 implement the summary field rounding. Rounding happens
// once, at summary construction; nothing downstream re-rounds.
func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
