package handler

import (
	"net/http"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/checkpoint-logbook/internal/domain"
)

// RecordLogRequest is the body of POST /logs.
type RecordLogRequest struct {
	Org    string `json:"org"`
	Type   string `json:"type"`
	Status string `json:"status"`
}

// Pagination describes the page returned by a list endpoint.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// LogList is the body of GET /logs.
type LogList struct {
	Data       []domain.LogEntry `json:"data"`
	Pagination Pagination        `json:"pagination"`
}

// RecordLog handles POST /logs.
func (s *Server) RecordLog(w http.ResponseWriter, r *http.Request) {
	var req RecordLogRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	entry, err := s.svc.Logs.Record(r.Context(), domain.LogEntry{Org: req.Org, Type: req.Type, Status: req.Status})
	if err != nil {
		s.writeError(w, r, err, "log entry")
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// ListLogs handles GET /logs.
// Supports ?date=YYYY-MM-DD plus ?page= and ?limit= (defaults: page=1, limit=20, max=100).
func (s *Server) ListLogs(w http.ResponseWriter, r *http.Request) {
	var (
		date        *openapi_types.Date
		page, limit *int
	)
	if !queryParam(w, r, "date", &date) || !queryParam(w, r, "page", &page) || !queryParam(w, r, "limit", &limit) {
		return
	}

	var day time.Time
	if date != nil {
		day = date.Time
	}
	params := domain.NewPaginationParams(page, limit)
	entries, total, err := s.svc.Logs.List(r.Context(), day, params)
	if err != nil {
		s.writeError(w, r, err, "log entry")
		return
	}
	writeJSON(w, http.StatusOK, LogList{
		Data:       entries,
		Pagination: Pagination{Page: params.Page, Limit: params.Limit, Total: total},
	})
}

// DeleteLog handles DELETE /logs/{id}.
func (s *Server) DeleteLog(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := s.svc.Logs.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err, "log entry")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SummarizeLogs handles GET /logs/summary.
func (s *Server) SummarizeLogs(w http.ResponseWriter, r *http.Request) {
	sums, err := s.svc.Logs.Summaries(r.Context())
	if err != nil {
		s.writeError(w, r, err, "log entry")
		return
	}
	writeJSON(w, http.StatusOK, sums)
}
