package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/claude/healthsheet/internal/models"
)

// UpsertSleepSummaries batch-upserts nightly sleep rows keyed by date.
// Re-importing the same export overwrites the night with the fresh values.
func (db *DB) UpsertSleepSummaries(ctx context.Context, summaries []models.DailySleepSummary) (int64, error) {
	if len(summaries) == 0 {
		return 0, nil
	}

	query := `INSERT INTO daily_sleep (date, bedtime, wake_time, time_in_bed_hours, total_sleep_hours, awake_minutes, core_sleep_hours, deep_sleep_hours, rem_sleep_hours)
VALUES `
	args := make([]any, 0, len(summaries)*9)
	valueStrings := make([]string, 0, len(summaries))

	for i, s := range summaries {
		base := i * 9
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9,
		))
		args = append(args, s.Date, s.Bedtime, s.WakeTime, s.TimeInBedHours,
			s.TotalSleepHours, s.AwakeMinutes, s.CoreSleepHours, s.DeepSleepHours, s.REMSleepHours)
	}

	query += strings.Join(valueStrings, ",") + `
ON CONFLICT (date) DO UPDATE SET
  bedtime = EXCLUDED.bedtime,
  wake_time = EXCLUDED.wake_time,
  time_in_bed_hours = EXCLUDED.time_in_bed_hours,
  total_sleep_hours = EXCLUDED.total_sleep_hours,
  awake_minutes = EXCLUDED.awake_minutes,
  core_sleep_hours = EXCLUDED.core_sleep_hours,
  deep_sleep_hours = EXCLUDED.deep_sleep_hours,
  rem_sleep_hours = EXCLUDED.rem_sleep_hours,
  updated_at = now()`

	tag, err := db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("upserting sleep summaries: %w", err)
	}
	return tag.RowsAffected(), nil
}

// UpsertCardiacSummaries batch-upserts daily cardiac rows keyed by date.
func (db *DB) UpsertCardiacSummaries(ctx context.Context, summaries []models.DailyCardiacSummary) (int64, error) {
	if len(summaries) == 0 {
		return 0, nil
	}

	query := `INSERT INTO daily_cardiac (date, hr_avg, hr_min, hr_max, hr_measurements, resting_hr, hrv_sdnn)
VALUES `
	args := make([]any, 0, len(summaries)*7)
	valueStrings := make([]string, 0, len(summaries))

	for i, s := range summaries {
		base := i * 7
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7,
		))
		args = append(args, s.Date, s.HRAvg, s.HRMin, s.HRMax, s.HRCount, s.RestingHR, s.HRV)
	}

	query += strings.Join(valueStrings, ",") + `
ON CONFLICT (date) DO UPDATE SET
  hr_avg = EXCLUDED.hr_avg,
  hr_min = EXCLUDED.hr_min,
  hr_max = EXCLUDED.hr_max,
  hr_measurements = EXCLUDED.hr_measurements,
  resting_hr = EXCLUDED.resting_hr,
  hrv_sdnn = EXCLUDED.hrv_sdnn,
  updated_at = now()`

	tag, err := db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("upserting cardiac summaries: %w", err)
	}
	return tag.RowsAffected(), nil
}

// QuerySleepSummaries retrieves nightly sleep rows in [start, end), ascending.
func (db *DB) QuerySleepSummaries(ctx context.Context, start, end time.Time) ([]models.DailySleepSummary, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT date, bedtime, wake_time, time_in_bed_hours, total_sleep_hours, awake_minutes, core_sleep_hours, deep_sleep_hours, rem_sleep_hours
		 FROM daily_sleep
		 WHERE date >= $1 AND date < $2
		 ORDER BY date ASC`,
		start, end)
	if err != nil {
		return nil, fmt.Errorf("querying sleep summaries: %w", err)
	}
	defer rows.Close()

	var result []models.DailySleepSummary
	for rows.Next() {
		var s models.DailySleepSummary
		var date time.Time
		if err := rows.Scan(&date, &s.Bedtime, &s.WakeTime, &s.TimeInBedHours,
			&s.TotalSleepHours, &s.AwakeMinutes, &s.CoreSleepHours, &s.DeepSleepHours, &s.REMSleepHours); err != nil {
			return nil, fmt.Errorf("scanning sleep summary: %w", err)
		}
		s.Date = date.Format(models.DateLayout)
		result = append(result, s)
	}
	return result, rows.Err()
}

// QueryCardiacSummaries retrieves daily cardiac rows in [start, end), ascending.
func (db *DB) QueryCardiacSummaries(ctx context.Context, start, end time.Time) ([]models.DailyCardiacSummary, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT date, hr_avg, hr_min, hr_max, hr_measurements, resting_hr, hrv_sdnn
		 FROM daily_cardiac
		 WHERE date >= $1 AND date < $2
		 ORDER BY date ASC`,
		start, end)
	if err != nil {
		return nil, fmt.Errorf("querying cardiac summaries: %w", err)
	}
	defer rows.Close()

	var result []models.DailyCardiacSummary
	for rows.Next() {
		var s models.DailyCardiacSummary
		var date time.Time
		if err := rows.Scan(&date, &s.HRAvg, &s.HRMin, &s.HRMax, &s.HRCount, &s.RestingHR, &s.HRV); err != nil {
			return nil, fmt.Errorf("scanning cardiac summary: %w", err)
		}
		s.Date = date.Format(models.DateLayout)
		result = append(result, s)
	}
	return result, rows.Err()
}

// QueryDaily retrieves the merged daily table in [start, end), ascending.
// A full outer join keeps days where only one side has data.
func (db *DB) QueryDaily(ctx context.Context, start, end time.Time) ([]models.CombinedRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT COALESCE(s.date, c.date) AS date,
		        s.date, s.bedtime, s.wake_time, s.time_in_bed_hours, s.total_sleep_hours,
		        s.awake_minutes, s.core_sleep_hours, s.deep_sleep_hours, s.rem_sleep_hours,
		        c.date, c.hr_avg, c.hr_min, c.hr_max, c.hr_measurements, c.resting_hr, c.hrv_sdnn
		 FROM daily_sleep s
		 FULL OUTER JOIN daily_cardiac c ON s.date = c.date
		 WHERE COALESCE(s.date, c.date) >= $1 AND COALESCE(s.date, c.date) < $2
		 ORDER BY COALESCE(s.date, c.date) ASC`,
		start, end)
	if err != nil {
		return nil, fmt.Errorf("querying daily rows: %w", err)
	}
	defer rows.Close()

	var result []models.CombinedRow
	for rows.Next() {
		var (
			date       time.Time
			sleepDate  *time.Time
			bedtime    *string
			wakeTime   *string
			inBed      *float64
			total      *float64
			awake      *float64
			core       *float64
			deep       *float64
			rem        *float64
			cardDate   *time.Time
			hrAvg      *float64
			hrMin      *float64
			hrMax      *float64
			hrCount    *int
			restingHR  *float64
			hrv        *float64
		)
		if err := rows.Scan(&date,
			&sleepDate, &bedtime, &wakeTime, &inBed, &total, &awake, &core, &deep, &rem,
			&cardDate, &hrAvg, &hrMin, &hrMax, &hrCount, &restingHR, &hrv); err != nil {
			return nil, fmt.Errorf("scanning daily row: %w", err)
		}

		row := models.CombinedRow{Date: date.Format(models.DateLayout)}
		if sleepDate != nil {
			row.Sleep = &models.DailySleepSummary{
				Date: row.Date, Bedtime: *bedtime, WakeTime: *wakeTime,
				TimeInBedHours: *inBed, TotalSleepHours: *total, AwakeMinutes: *awake,
				CoreSleepHours: *core, DeepSleepHours: *deep, REMSleepHours: *rem,
			}
		}
		if cardDate != nil {
			row.Cardiac = &models.DailyCardiacSummary{
				Date: row.Date, HRAvg: hrAvg, HRMin: hrMin, HRMax: hrMax,
				HRCount: *hrCount, RestingHR: restingHR, HRV: hrv,
			}
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
