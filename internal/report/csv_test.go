package report

import (
	"bytes"
	"encoding/csv"
	"os"
	"strings"
	"testing"

	"github.com/claude/healthsheet/internal/models"
)

func fptr(v float64) *float64 { return &v }

// TestWriteCSV_ColumnOrder verifies the header and that every data row has
// the same width as the header.
func TestWriteCSV_ColumnOrder(t *testing.T) {
	rows := []models.CombinedRow{
		{
			Date: "2024-03-10",
			Sleep: &models.DailySleepSummary{
				Date: "2024-03-10", Bedtime: "23:00", WakeTime: "06:30",
				TimeInBedHours: 7.5, TotalSleepHours: 7.1, AwakeMinutes: 24.0,
				CoreSleepHours: 4.2, DeepSleepHours: 1.1, REMSleepHours: 1.8,
			},
			Cardiac: &models.DailyCardiacSummary{
				Date: "2024-03-10", HRAvg: fptr(68.4), HRMin: fptr(48), HRMax: fptr(132),
				HRCount: 412, RestingHR: fptr(54), HRV: fptr(41.7),
			},
		},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}

	wantHeader := "date,bedtime,wake_time,time_in_bed_hours,total_sleep_hours,awake_minutes,core_sleep_hours,deep_sleep_hours,rem_sleep_hours,hr_avg,hr_min,hr_max,hr_measurements,resting_hr,hrv_sdnn"
	if got := strings.Join(records[0], ","); got != wantHeader {
		t.Errorf("header = %q, want %q", got, wantHeader)
	}

	want := []string{
		"2024-03-10", "23:00", "06:30", "7.5", "7.1", "24", "4.2", "1.1", "1.8",
		"68.4", "48", "132", "412", "54", "41.7",
	}
	for i, cell := range want {
		if records[1][i] != cell {
			t.Errorf("column %s = %q, want %q", records[0][i], records[1][i], cell)
		}
	}
}

// TestWriteCSV_AbsentSides verifies a row missing one side renders empty
// cells for that side's columns.
func TestWriteCSV_AbsentSides(t *testing.T) {
	rows := []models.CombinedRow{
		{Date: "2024-03-10", Sleep: &models.DailySleepSummary{Date: "2024-03-10", Bedtime: "23:00", WakeTime: "06:30", TimeInBedHours: 7.5}},
		{Date: "2024-03-11", Cardiac: &models.DailyCardiacSummary{Date: "2024-03-11", RestingHR: fptr(55)}},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}

	sleepOnly := records[1]
	for i := 9; i < 15; i++ {
		if sleepOnly[i] != "" {
			t.Errorf("sleep-only row column %d = %q, want empty", i, sleepOnly[i])
		}
	}

	cardiacOnly := records[2]
	for i := 1; i < 9; i++ {
		if cardiacOnly[i] != "" {
			t.Errorf("cardiac-only row column %d = %q, want empty", i, cardiacOnly[i])
		}
	}
	// HR stats absent, count present.
	if cardiacOnly[9] != "" || cardiacOnly[12] != "0" || cardiacOnly[13] != "55" {
		t.Errorf("cardiac-only row = %v", cardiacOnly)
	}
}

// TestWriteCSV_Empty verifies an empty table is just the header.
func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}
	if lines := strings.Count(strings.TrimRight(buf.String(), "\n"), "\n"); lines != 0 {
		t.Errorf("expected header only, got %q", buf.String())
	}
}

// TestWriteCSVFile verifies the file writer round trip.
func TestWriteCSVFile(t *testing.T) {
	path := t.TempDir() + "/out.csv"
	rows := []models.CombinedRow{{Date: "2024-03-10"}}
	if err := WriteCSVFile(path, rows); err != nil {
		t.Fatalf("WriteCSVFile() error = %v", err)
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != buf.String() {
		t.Errorf("file content = %q, want %q", got, buf.String())
	}
}
