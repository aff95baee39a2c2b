// Package handler implements the HTTP handlers for the checkpoint logbook API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, counter.go, etc.) but all share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/checkpoint-logbook/internal/domain"
	"github.com/pkordes/checkpoint-logbook/internal/service"
)

// CounterServicer defines the counter operations the handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type CounterServicer interface {
	List(ctx context.Context) ([]domain.Counter, int, error)
	Add(ctx context.Context, name string) ([]domain.Counter, error)
	RemoveLast(ctx context.Context) ([]domain.Counter, error)
	Update(ctx context.Context, index int, patch domain.CounterPatch) (domain.Counter, error)
	Change(ctx context.Context, index, delta int) (domain.Counter, error)
	Reset(ctx context.Context, index int) (domain.Counter, error)
	ResetAll(ctx context.Context) ([]domain.Counter, error)
	Share(ctx context.Context) (domain.ShareMessage, error)
}

// LogServicer defines the arrival log operations the handlers depend on.
type LogServicer interface {
	Record(ctx context.Context, entry domain.LogEntry) (domain.LogEntry, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, date time.Time, p domain.PaginationParams) ([]domain.LogEntry, int, error)
	Summaries(ctx context.Context) ([]domain.DailySummary, error)
}

// RegistryServicer defines the registry operations the handlers depend on.
type RegistryServicer interface {
	Import(ctx context.Context, uploads []service.Upload) (domain.ImportReport, error)
	ListFiles(ctx context.Context) ([]domain.RegistryFileSummary, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (domain.RegistryFileSummary, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, q domain.SearchQuery) ([]domain.SearchHit, error)
}

// SettingsServicer defines the settings operations the handlers depend on.
type SettingsServicer interface {
	Get(ctx context.Context) (domain.Settings, error)
	Update(ctx context.Context, in domain.Settings) (domain.Settings, error)
}

// ExportServicer defines the report operations the export handler depends on.
type ExportServicer interface {
	Rows(ctx context.Context) ([]domain.ExportRow, error)
	State(ctx context.Context) (domain.State, error)
}

// StateResetter replaces all stored data with the seed defaults.
type StateResetter interface {
	Reset(ctx context.Context) (domain.State, error)
}

// Services bundles the Server dependencies. Nil fields are allowed in tests
// that only exercise other routes.
type Services struct {
	Counters CounterServicer
	Logs     LogServicer
	Registry RegistryServicer
	Settings SettingsServicer
	Export   ExportServicer
	State    StateResetter
}

// Server holds the dependencies of every API endpoint.
// Wire it in main.go via Server.Routes.
type Server struct {
	svc    Services
	logger *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(svc Services, logger *slog.Logger) *Server {
	return &Server{svc: svc, logger: logger}
}

// Routes registers every endpoint on a new chi router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/counters", func(r chi.Router) {
		r.Get("/", s.ListCounters)
		r.Post("/", s.AddCounter)
		r.Delete("/last", s.RemoveLastCounter)
		r.Post("/reset", s.ResetAllCounters)
		r.Put("/{index}", s.UpdateCounter)
		r.Post("/{index}/change", s.ChangeCounter)
		r.Post("/{index}/reset", s.ResetCounter)
	})
	r.Get("/share", s.GetShareMessage)

	r.Route("/logs", func(r chi.Router) {
		r.Get("/", s.ListLogs)
		r.Post("/", s.RecordLog)
		r.Get("/summary", s.SummarizeLogs)
		r.Delete("/{id}", s.DeleteLog)
	})

	r.Route("/registry", func(r chi.Router) {
		r.Get("/files", s.ListRegistryFiles)
		r.Post("/files", s.ImportRegistryFiles)
		r.Patch("/files/{id}", s.SetRegistryFileActive)
		r.Delete("/files/{id}", s.DeleteRegistryFile)
		r.Get("/search", s.SearchRegistry)
	})

	r.Get("/settings", s.GetSettings)
	r.Put("/settings", s.UpdateSettings)

	r.Get("/export", s.GetExport)
	r.Post("/state/reset", s.ResetState)

	return r
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler(logger *slog.Logger) *Server {
	return NewServer(Services{}, logger)
}
