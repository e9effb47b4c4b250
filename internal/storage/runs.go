package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ImportRun records a single export processing run's outcome.
type ImportRun struct {
	ID                uuid.UUID `json:"id"`
	CreatedAt         time.Time `json:"created_at"`
	SourcePath        string    `json:"source_path"`
	DaysBack          int       `json:"days_back"`
	SleepSessions     int       `json:"sleep_sessions"`
	HeartRateReadings int       `json:"heart_rate_readings"`
	RestingHRReadings int       `json:"resting_hr_readings"`
	HRVReadings       int       `json:"hrv_readings"`
	DroppedTimestamps int       `json:"dropped_timestamps"`
	SkippedValues     int       `json:"skipped_values"`
	UnknownStages     int       `json:"unknown_stages"`
	OutsideWindow     int       `json:"outside_window"`
	RowsWritten       int       `json:"rows_written"`
	DurationMs        *int      `json:"duration_ms"`
}

// InsertImportRun creates a new import run entry and returns its ID.
func (db *DB) InsertImportRun(ctx context.Context, run ImportRun) (uuid.UUID, error) {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO import_runs (id, source_path, days_back, sleep_sessions, heart_rate_readings,
		 resting_hr_readings, hrv_readings, dropped_timestamps, skipped_values, unknown_stages,
		 outside_window, rows_written, duration_ms)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		run.ID, run.SourcePath, run.DaysBack, run.SleepSessions, run.HeartRateReadings,
		run.RestingHRReadings, run.HRVReadings, run.DroppedTimestamps, run.SkippedValues,
		run.UnknownStages, run.OutsideWindow, run.RowsWritten, run.DurationMs,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("inserting import run: %w", err)
	}
	return run.ID, nil
}

// ListImportRuns returns the most recent import runs.
func (db *DB) ListImportRuns(ctx context.Context, limit int) ([]ImportRun, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.Pool.Query(ctx,
		`SELECT id, created_at, source_path, days_back, sleep_sessions, heart_rate_readings,
		 resting_hr_readings, hrv_readings, dropped_timestamps, skipped_values, unknown_stages,
		 outside_window, rows_written, duration_ms
		 FROM import_runs
		 ORDER BY created_at DESC
		 LIMIT $1`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("querying import runs: %w", err)
	}
	defer rows.Close()

	var result []ImportRun
	for rows.Next() {
		var r ImportRun
		if err := rows.Scan(&r.ID, &r.CreatedAt, &r.SourcePath, &r.DaysBack,
			&r.SleepSessions, &r.HeartRateReadings, &r.RestingHRReadings, &r.HRVReadings,
			&r.DroppedTimestamps, &r.SkippedValues, &r.UnknownStages, &r.OutsideWindow,
			&r.RowsWritten, &r.DurationMs); err != nil {
			return nil, fmt.Errorf("scanning import run: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
