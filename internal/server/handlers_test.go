package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/claude/healthsheet/internal/models"
	"github.com/claude/healthsheet/internal/storage"
)

// stubSource returns canned rows and records the last requested range.
type stubSource struct {
	rows      []models.CombinedRow
	sleep     []models.DailySleepSummary
	cardiac   []models.DailyCardiacSummary
	runs      []storage.ImportRun
	lastStart time.Time
	lastEnd   time.Time
	lastLimit int
}

func (s *stubSource) QueryDaily(ctx context.Context, start, end time.Time) ([]models.CombinedRow, error) {
	s.lastStart, s.lastEnd = start, end
	return s.rows, nil
}

func (s *stubSource) QuerySleepSummaries(ctx context.Context, start, end time.Time) ([]models.DailySleepSummary, error) {
	s.lastStart, s.lastEnd = start, end
	return s.sleep, nil
}

func (s *stubSource) QueryCardiacSummaries(ctx context.Context, start, end time.Time) ([]models.DailyCardiacSummary, error) {
	s.lastStart, s.lastEnd = start, end
	return s.cardiac, nil
}

func (s *stubSource) ListImportRuns(ctx context.Context, limit int) ([]storage.ImportRun, error) {
	s.lastLimit = limit
	return s.runs, nil
}

const testAPIKey = "test-key"

func newTestServer(ds DataSource) *Server {
	return New(ds, testAPIKey, slog.New(slog.DiscardHandler))
}

func authedRequest(method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("X-API-Key", testAPIKey)
	return req
}

// TestQueryDaily verifies the merged table endpoint returns the source rows as JSON.
func TestQueryDaily(t *testing.T) {
	ds := &stubSource{rows: []models.CombinedRow{
		{Date: "2024-03-10", Sleep: &models.DailySleepSummary{Date: "2024-03-10", Bedtime: "23:00"}},
		{Date: "2024-03-11"},
	}}
	srv := newTestServer(ds)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/v1/daily?start=2024-03-01&end=2024-03-20"))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var rows []models.CombinedRow
	if err := json.NewDecoder(rec.Body).Decode(&rows); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].Sleep == nil || rows[0].Sleep.Bedtime != "23:00" {
		t.Errorf("row 0 = %+v, want sleep with bedtime 23:00", rows[0])
	}

	wantStart := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	if !ds.lastStart.Equal(wantStart) {
		t.Errorf("start = %v, want %v", ds.lastStart, wantStart)
	}
	// Date-only end extends to end of day.
	wantEnd := time.Date(2024, 3, 21, 0, 0, 0, 0, time.UTC)
	if !ds.lastEnd.Equal(wantEnd) {
		t.Errorf("end = %v, want %v", ds.lastEnd, wantEnd)
	}
}

// TestQueryDailyBadRange verifies an unparseable start date is a 400.
func TestQueryDailyBadRange(t *testing.T) {
	srv := newTestServer(&stubSource{})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/v1/daily?start=yesterday"))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// TestQuerySleep verifies the sleep endpoint shape.
func TestQuerySleep(t *testing.T) {
	ds := &stubSource{sleep: []models.DailySleepSummary{
		{Date: "2024-03-10", Bedtime: "23:00", WakeTime: "06:30", TotalSleepHours: 7.5},
	}}
	srv := newTestServer(ds)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/v1/sleep"))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got []models.DailySleepSummary
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(got) != 1 || got[0].TotalSleepHours != 7.5 {
		t.Errorf("got = %+v", got)
	}
}

// TestListRunsLimit verifies the limit query parameter is forwarded.
func TestListRunsLimit(t *testing.T) {
	ds := &stubSource{}
	srv := newTestServer(ds)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/v1/runs?limit=5"))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ds.lastLimit != 5 {
		t.Errorf("limit = %d, want 5", ds.lastLimit)
	}
}

// TestListRunsBadLimit verifies a non-numeric limit is a 400.
func TestListRunsBadLimit(t *testing.T) {
	srv := newTestServer(&stubSource{})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/v1/runs?limit=many"))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// TestAPIKeyRequired verifies query endpoints reject requests without a key.
func TestAPIKeyRequired(t *testing.T) {
	srv := newTestServer(&stubSource{})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/daily", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

// TestHealthzNoAuth verifies the health endpoint is open.
func TestHealthzNoAuth(t *testing.T) {
	srv := newTestServer(&stubSource{})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
