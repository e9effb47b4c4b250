package mcp

import (
	"context"
	"time"

	"github.com/claude/healthsheet/internal/models"
	"github.com/claude/healthsheet/internal/storage"
)

// DataSource abstracts the data layer for MCP tools. *storage.DB satisfies
// this interface; tests substitute a stub.
type DataSource interface {
	QueryDaily(ctx context.Context, start, end time.Time) ([]models.CombinedRow, error)
	QuerySleepSummaries(ctx context.Context, start, end time.Time) ([]models.DailySleepSummary, error)
	QueryCardiacSummaries(ctx context.Context, start, end time.Time) ([]models.DailyCardiacSummary, error)
	ListImportRuns(ctx context.Context, limit int) ([]storage.ImportRun, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
