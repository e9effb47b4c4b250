package pipeline

import (
	"log/slog"
	"math"

	"github.com/claude/healthsheet/internal/models"
)

// extractSleepSessions converts in-window sleep stage events into typed
// sessions. A session is attributed to the calendar date its start falls on,
// so one crossing midnight counts toward the night it began. Negative
// durations from malformed source data pass through unmodified; they surface
// in the output as a data-quality signal rather than being repaired here.
func extractSleepSessions(events []models.RawEvent, opts Options, stats *Stats, log *slog.Logger) []models.SleepSession {
	sessions := make([]models.SleepSession, 0, len(events)/2)

	for _, ev := range events {
		if ev.Kind != models.KindSleepStage {
			continue
		}
		if ev.Start.IsZero() || ev.End.IsZero() {
			stats.DroppedTimestamps++
			continue
		}
		if !withinWindow(ev, opts.Now, opts.DaysBack) {
			stats.OutsideWindow++
			continue
		}

		stage, known := models.NormalizeSleepStage(ev.StageLabel)
		if !known {
			stats.UnknownStages++
			log.Warn("unrecognized sleep stage", "value", ev.StageLabel, "source", ev.Source)
		}

		sessions = append(sessions, models.SleepSession{
			NightDate:       models.DateOf(ev.Start),
			Start:           ev.Start,
			End:             ev.End,
			DurationMinutes: ev.End.Sub(ev.Start).Minutes(),
			Stage:           stage,
			Source:          ev.Source,
		})
		stats.SleepSessions++
	}
	return sessions
}

// extractCardiacMeasurements converts in-window heart rate, resting heart
// rate, and HRV events into typed measurements keyed by calendar date. A
// missing or non-numeric value skips that single record; one corrupt reading
// never aborts the run.
func extractCardiacMeasurements(events []models.RawEvent, opts Options, stats *Stats, log *slog.Logger) []models.CardiacMeasurement {
	measurements := make([]models.CardiacMeasurement, 0, len(events)/2)

	for _, ev := range events {
		if ev.Kind == models.KindSleepStage {
			continue
		}
		if ev.Start.IsZero() {
			stats.DroppedTimestamps++
			continue
		}
		if !withinWindow(ev, opts.Now, opts.DaysBack) {
			stats.OutsideWindow++
			continue
		}
		if math.IsNaN(ev.Value) {
			stats.SkippedValues++
			log.Warn("skipping record with unusable value", "kind", ev.Kind.String(), "source", ev.Source)
			continue
		}

		measurements = append(measurements, models.CardiacMeasurement{
			Date:      models.DateOf(ev.Start),
			Timestamp: ev.Start,
			Kind:      ev.Kind,
			Value:     round1(ev.Value),
			Unit:      ev.Unit,
			Source:    ev.Source,
		})

		switch ev.Kind {
		case models.KindHeartRate:
			stats.HeartRateReadings++
		case models.KindRestingHeartRate:
			stats.RestingHRReadings++
		case models.KindHRV:
			stats.HRVReadings++
		}
	}
	return measurements
}
