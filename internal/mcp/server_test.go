package mcp

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/claude/healthsheet/internal/models"
	"github.com/claude/healthsheet/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// TestDefaultTimeRange verifies time range defaults (last 30 days) and parsing.
func TestDefaultTimeRange(t *testing.T) {
	// Both empty → defaults to last 30 days
	start, end, err := defaultTimeRange("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	diff := end.Sub(start)
	if diff.Hours() < 719 || diff.Hours() > 721 { // ~720 hours = 30 days
		t.Errorf("default range = %.0f hours, want ~720", diff.Hours())
	}

	// Explicit dates
	start, end, err = defaultTimeRange("2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.Year() != 2024 || start.Month() != 1 || start.Day() != 1 {
		t.Errorf("start = %v, want 2024-01-01", start)
	}
	if end.Year() != 2024 || end.Month() != 1 || end.Day() != 31 {
		t.Errorf("end = %v, want 2024-01-31", end)
	}

	// RFC3339
	start, _, err = defaultTimeRange("2024-06-15T10:30:00Z", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.Hour() != 10 || start.Minute() != 30 {
		t.Errorf("start = %v, want 10:30", start)
	}

	// Invalid
	_, _, err = defaultTimeRange("not-a-date", "")
	if err == nil {
		t.Error("expected error for invalid date")
	}
}

// stubSource returns canned rows for tool handler tests.
type stubSource struct {
	rows    []models.CombinedRow
	sleep   []models.DailySleepSummary
	cardiac []models.DailyCardiacSummary
	runs    []storage.ImportRun
}

func (s *stubSource) QueryDaily(ctx context.Context, start, end time.Time) ([]models.CombinedRow, error) {
	return s.rows, nil
}

func (s *stubSource) QuerySleepSummaries(ctx context.Context, start, end time.Time) ([]models.DailySleepSummary, error) {
	return s.sleep, nil
}

func (s *stubSource) QueryCardiacSummaries(ctx context.Context, start, end time.Time) ([]models.DailyCardiacSummary, error) {
	return s.cardiac, nil
}

func (s *stubSource) ListImportRuns(ctx context.Context, limit int) ([]storage.ImportRun, error) {
	return s.runs, nil
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// TestGetDailyRows verifies the tool returns JSON content for valid arguments.
func TestGetDailyRows(t *testing.T) {
	h := &handlers{ds: &stubSource{rows: []models.CombinedRow{{Date: "2024-03-10"}}}, log: testLogger()}

	result, err := h.getDailyRows(context.Background(), callRequest(map[string]any{
		"start": "2024-03-01", "end": "2024-03-20",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("tool error: %+v", result.Content)
	}
}

// TestGetDailyRowsBadDate verifies invalid dates become a tool error, not a
// protocol error.
func TestGetDailyRowsBadDate(t *testing.T) {
	h := &handlers{ds: &stubSource{}, log: testLogger()}

	result, err := h.getDailyRows(context.Background(), callRequest(map[string]any{
		"start": "not-a-date",
	}))
	if err != nil {
		t.Fatalf("unexpected protocol error: %v", err)
	}
	if !result.IsError {
		t.Error("expected tool error for invalid date")
	}
}

// TestListImportRunsBadLimit verifies a non-numeric limit becomes a tool error.
func TestListImportRunsBadLimit(t *testing.T) {
	h := &handlers{ds: &stubSource{}, log: testLogger()}

	result, err := h.listImportRuns(context.Background(), callRequest(map[string]any{
		"limit": "many",
	}))
	if err != nil {
		t.Fatalf("unexpected protocol error: %v", err)
	}
	if !result.IsError {
		t.Error("expected tool error for invalid limit")
	}
}
