package handler

import (
	"net/http"

	"github.com/pkordes/checkpoint-logbook/internal/domain"
)

// GetSettings handles GET /settings.
func (s *Server) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.svc.Settings.Get(r.Context())
	if err != nil {
		s.writeError(w, r, err, "settings")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// UpdateSettings handles PUT /settings.
func (s *Server) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req domain.Settings
	if !decodeJSON(w, r, &req) {
		return
	}
	settings, err := s.svc.Settings.Update(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err, "settings")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// ResetState handles POST /state/reset.
func (s *Server) ResetState(w http.ResponseWriter, r *http.Request) {
	if _, err := s.svc.State.Reset(r.Context()); err != nil {
		s.writeError(w, r, err, "state")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
