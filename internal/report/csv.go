// Package report renders the merged daily table for export.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/claude/healthsheet/internal/models"
)

// csvHeader is the fixed column order of the daily table. Consumers key on
// these names, so the order never changes.
var csvHeader = []string{
	"date",
	"bedtime",
	"wake_time",
	"time_in_bed_hours",
	"total_sleep_hours",
	"awake_minutes",
	"core_sleep_hours",
	"deep_sleep_hours",
	"rem_sleep_hours",
	"hr_avg",
	"hr_min",
	"hr_max",
	"hr_measurements",
	"resting_hr",
	"hrv_sdnn",
}

// WriteCSV writes the merged rows to w with the fixed header. Absent sides
// and absent measurements render as empty cells.
func WriteCSV(w io.Writer, rows []models.CombinedRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(csvRow(r)); err != nil {
			return fmt.Errorf("writing row %s: %w", r.Date, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the merged rows to path, creating or truncating it.
func WriteCSVFile(path string, rows []models.CombinedRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteCSV(f, rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func csvRow(r models.CombinedRow) []string {
	row := make([]string, len(csvHeader))
	row[0] = r.Date
	if s := r.Sleep; s != nil {
		row[1] = s.Bedtime
		row[2] = s.WakeTime
		row[3] = formatFloat(s.TimeInBedHours)
		row[4] = formatFloat(s.TotalSleepHours)
		row[5] = formatFloat(s.AwakeMinutes)
		row[6] = formatFloat(s.CoreSleepHours)
		row[7] = formatFloat(s.DeepSleepHours)
		row[8] = formatFloat(s.REMSleepHours)
	}
	if c := r.Cardiac; c != nil {
		row[9] = formatFloatPtr(c.HRAvg)
		row[10] = formatFloatPtr(c.HRMin)
		row[11] = formatFloatPtr(c.HRMax)
		row[12] = strconv.Itoa(c.HRCount)
		row[13] = formatFloatPtr(c.RestingHR)
		row[14] = formatFloatPtr(c.HRV)
	}
	return row
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatFloatPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}
