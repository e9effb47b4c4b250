package export

import (
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/claude/healthsheet/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

const sampleDoc = `<?xml version="1.0" encoding="UTF-8"?>
<HealthData locale="en_US">
 <ExportDate value="2024-12-22 10:00:00 -0800"/>
 <Record type="HKCategoryTypeIdentifierSleepAnalysis" sourceName="Apple Watch"
   startDate="2024-12-20 23:10:00 -0800" endDate="2024-12-21 01:00:00 -0800"
   value="HKCategoryValueSleepAnalysisAsleepCore"/>
 <Record type="HKQuantityTypeIdentifierHeartRate" sourceName="Apple Watch" unit="count/min"
   startDate="2024-12-21 08:00:00 -0800" endDate="2024-12-21 08:00:00 -0800" value="62"/>
 <Record type="HKQuantityTypeIdentifierRestingHeartRate" sourceName="Apple Watch" unit="count/min"
   startDate="2024-12-21 09:00:00 -0800" endDate="2024-12-21 09:00:00 -0800" value="55"/>
 <Record type="HKQuantityTypeIdentifierHeartRateVariabilitySDNN" sourceName="Apple Watch" unit="ms"
   startDate="2024-12-21 09:05:00 -0800" endDate="2024-12-21 09:05:00 -0800" value="48.3"/>
 <Record type="HKQuantityTypeIdentifierStepCount" sourceName="iPhone" unit="count"
   startDate="2024-12-21 10:00:00 -0800" endDate="2024-12-21 10:10:00 -0800" value="412"/>
</HealthData>`

// TestDecodeRecords verifies that only the four supported record types are
// materialized and their attributes land in the right fields.
func TestDecodeRecords(t *testing.T) {
	events, err := DecodeRecords(strings.NewReader(sampleDoc), testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 4 {
		t.Fatalf("events = %d, want 4 (step count must be skipped)", len(events))
	}

	sleep := events[0]
	if sleep.Kind != models.KindSleepStage {
		t.Errorf("kind = %v, want KindSleepStage", sleep.Kind)
	}
	if sleep.StageLabel != "HKCategoryValueSleepAnalysisAsleepCore" {
		t.Errorf("stage label = %q", sleep.StageLabel)
	}
	if sleep.Source != "Apple Watch" {
		t.Errorf("source = %q", sleep.Source)
	}
	if !sleep.End.After(sleep.Start) {
		t.Errorf("end %v should be after start %v", sleep.End, sleep.Start)
	}

	hr := events[1]
	if hr.Kind != models.KindHeartRate || hr.Value != 62 || hr.Unit != "count/min" {
		t.Errorf("heart rate event = %+v", hr)
	}

	hrv := events[3]
	if hrv.Kind != models.KindHRV || hrv.Value != 48.3 {
		t.Errorf("hrv event = %+v", hrv)
	}
}

// TestDecodeRecords_BadTimestamp verifies a malformed startDate yields the
// zero-time sentinel instead of an error, leaving the drop decision to the
// window filter.
func TestDecodeRecords_BadTimestamp(t *testing.T) {
	doc := `<HealthData>
 <Record type="HKQuantityTypeIdentifierHeartRate" sourceName="Watch" unit="count/min"
   startDate="garbage" endDate="2024-12-21 08:00:00 -0800" value="70"/>
</HealthData>`
	events, err := DecodeRecords(strings.NewReader(doc), testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	if !events[0].Start.IsZero() {
		t.Errorf("start = %v, want zero time sentinel", events[0].Start)
	}
}

// TestDecodeRecords_NonNumericValue verifies a non-numeric cardiac value is
// carried as NaN so the extractor can skip and count it.
func TestDecodeRecords_NonNumericValue(t *testing.T) {
	doc := `<HealthData>
 <Record type="HKQuantityTypeIdentifierHeartRate" sourceName="Watch" unit="count/min"
   startDate="2024-12-21 08:00:00 -0800" endDate="2024-12-21 08:00:00 -0800" value="n/a"/>
</HealthData>`
	events, err := DecodeRecords(strings.NewReader(doc), testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	if !math.IsNaN(events[0].Value) {
		t.Errorf("value = %v, want NaN", events[0].Value)
	}
}

// TestDecodeRecords_MissingSource verifies an absent sourceName falls back to
// "Unknown", matching the export's semantics for anonymous sources.
func TestDecodeRecords_MissingSource(t *testing.T) {
	doc := `<HealthData>
 <Record type="HKQuantityTypeIdentifierHeartRate" unit="count/min"
   startDate="2024-12-21 08:00:00 -0800" endDate="2024-12-21 08:00:00 -0800" value="70"/>
</HealthData>`
	events, err := DecodeRecords(strings.NewReader(doc), testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if events[0].Source != "Unknown" {
		t.Errorf("source = %q, want Unknown", events[0].Source)
	}
}
