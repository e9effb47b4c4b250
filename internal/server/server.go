package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/claude/healthsheet/internal/models"
	"github.com/claude/healthsheet/internal/storage"
	"github.com/go-chi/chi/v5"
)

// DataSource is the storage surface the handlers need. *storage.DB satisfies
// it; tests substitute a stub.
type DataSource interface {
	QueryDaily(ctx context.Context, start, end time.Time) ([]models.CombinedRow, error)
	QuerySleepSummaries(ctx context.Context, start, end time.Time) ([]models.DailySleepSummary, error)
	QueryCardiacSummaries(ctx context.Context, start, end time.Time) ([]models.DailyCardiacSummary, error)
	ListImportRuns(ctx context.Context, limit int) ([]storage.ImportRun, error)
}

var _ DataSource = (*storage.DB)(nil)

// Server holds dependencies for HTTP handlers.
type Server struct {
	ds     DataSource
	log    *slog.Logger
	apiKey string
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(ds DataSource, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		ds:     ds,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Get("/healthz", s.handleHealthz)

	// Query endpoints (API key required when not behind tsnet)
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Get("/daily", s.handleQueryDaily)
		r.Get("/sleep", s.handleQuerySleep)
		r.Get("/cardiac", s.handleQueryCardiac)
		r.Get("/runs", s.handleListRuns)
	})
}
