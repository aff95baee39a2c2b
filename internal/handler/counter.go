package handler

import (
	"net/http"

	"github.com/pkordes/checkpoint-logbook/internal/domain"
)

// CounterList is the body of every response that returns all counters.
type CounterList struct {
	Data  []domain.Counter `json:"data"`
	Total int              `json:"total"`
}

// AddCounterRequest is the optional body of POST /counters.
type AddCounterRequest struct {
	Name string `json:"name"`
}

// UpdateCounterRequest is the body of PUT /counters/{index}.
// Omitted fields are left unchanged.
type UpdateCounterRequest struct {
	Name  *string `json:"name"`
	Value *int    `json:"value"`
}

// ChangeCounterRequest is the body of POST /counters/{index}/change.
type ChangeCounterRequest struct {
	Delta *int `json:"delta"`
}

// ListCounters handles GET /counters.
func (s *Server) ListCounters(w http.ResponseWriter, r *http.Request) {
	counters, total, err := s.svc.Counters.List(r.Context())
	if err != nil {
		s.writeError(w, r, err, "counter")
		return
	}
	writeJSON(w, http.StatusOK, CounterList{Data: counters, Total: total})
}

// AddCounter handles POST /counters. The body may be empty.
func (s *Server) AddCounter(w http.ResponseWriter, r *http.Request) {
	var req AddCounterRequest
	if r.ContentLength != 0 && !decodeJSON(w, r, &req) {
		return
	}
	counters, err := s.svc.Counters.Add(r.Context(), req.Name)
	if err != nil {
		s.writeError(w, r, err, "counter")
		return
	}
	writeJSON(w, http.StatusCreated, CounterList{Data: counters, Total: domain.CounterTotal(counters)})
}

// RemoveLastCounter handles DELETE /counters/last.
func (s *Server) RemoveLastCounter(w http.ResponseWriter, r *http.Request) {
	counters, err := s.svc.Counters.RemoveLast(r.Context())
	if err != nil {
		s.writeError(w, r, err, "counter")
		return
	}
	writeJSON(w, http.StatusOK, CounterList{Data: counters, Total: domain.CounterTotal(counters)})
}

// ResetAllCounters handles POST /counters/reset.
func (s *Server) ResetAllCounters(w http.ResponseWriter, r *http.Request) {
	counters, err := s.svc.Counters.ResetAll(r.Context())
	if err != nil {
		s.writeError(w, r, err, "counter")
		return
	}
	writeJSON(w, http.StatusOK, CounterList{Data: counters, Total: 0})
}

// UpdateCounter handles PUT /counters/{index}.
func (s *Server) UpdateCounter(w http.ResponseWriter, r *http.Request) {
	index, ok := indexParam(w, r)
	if !ok {
		return
	}
	var req UpdateCounterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	c, err := s.svc.Counters.Update(r.Context(), index, domain.CounterPatch{Name: req.Name, Value: req.Value})
	if err != nil {
		s.writeError(w, r, err, "counter")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// ChangeCounter handles POST /counters/{index}/change.
func (s *Server) ChangeCounter(w http.ResponseWriter, r *http.Request) {
	index, ok := indexParam(w, r)
	if !ok {
		return
	}
	var req ChangeCounterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Delta == nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("delta is required"))
		return
	}
	c, err := s.svc.Counters.Change(r.Context(), index, *req.Delta)
	if err != nil {
		s.writeError(w, r, err, "counter")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// ResetCounter handles POST /counters/{index}/reset.
func (s *Server) ResetCounter(w http.ResponseWriter, r *http.Request) {
	index, ok := indexParam(w, r)
	if !ok {
		return
	}
	c, err := s.svc.Counters.Reset(r.Context(), index)
	if err != nil {
		s.writeError(w, r, err, "counter")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// GetShareMessage handles GET /share.
func (s *Server) GetShareMessage(w http.ResponseWriter, r *http.Request) {
	msg, err := s.svc.Counters.Share(r.Context())
	if err != nil {
		s.writeError(w, r, err, "counter")
		return
	}
	writeJSON(w, http.StatusOK, msg)
}
