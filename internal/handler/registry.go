package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/pkordes/checkpoint-logbook/internal/domain"
	"github.com/pkordes/checkpoint-logbook/internal/service"
)

// uploadField is the multipart form field holding the CSV files.
const uploadField = "files"

// multipartMemory is how much of an upload is buffered in memory before
// the rest spills to temporary files.
const multipartMemory = 8 << 20

// SetActiveRequest is the body of PATCH /registry/files/{id}.
type SetActiveRequest struct {
	IsActive *bool `json:"is_active"`
}

// ImportRegistryFiles handles POST /registry/files.
// The request is multipart/form-data with one or more "files" parts.
func (s *Server) ImportRegistryFiles(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeJSON(w, http.StatusRequestEntityTooLarge, requestBody("upload too large"))
			return
		}
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("request must be multipart/form-data"))
		return
	}
	defer r.MultipartForm.RemoveAll() //nolint:errcheck

	headers := r.MultipartForm.File[uploadField]
	if len(headers) == 0 {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("at least one file is required in field \""+uploadField+"\""))
		return
	}

	uploads := make([]service.Upload, 0, len(headers))
	for _, fh := range headers {
		uploads = append(uploads, service.Upload{
			Name: fh.Filename,
			Open: func() (io.ReadCloser, error) { return fh.Open() },
		})
	}

	report, err := s.svc.Registry.Import(r.Context(), uploads)
	if err != nil {
		s.writeError(w, r, err, "registry file")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// ListRegistryFiles handles GET /registry/files.
func (s *Server) ListRegistryFiles(w http.ResponseWriter, r *http.Request) {
	files, err := s.svc.Registry.ListFiles(r.Context())
	if err != nil {
		s.writeError(w, r, err, "registry file")
		return
	}
	writeJSON(w, http.StatusOK, files)
}

// SetRegistryFileActive handles PATCH /registry/files/{id}.
func (s *Server) SetRegistryFileActive(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req SetActiveRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.IsActive == nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("is_active is required"))
		return
	}
	f, err := s.svc.Registry.SetActive(r.Context(), id, *req.IsActive)
	if err != nil {
		s.writeError(w, r, err, "registry file")
		return
	}
	writeJSON(w, http.StatusOK, f)
}

// DeleteRegistryFile handles DELETE /registry/files/{id}.
func (s *Server) DeleteRegistryFile(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := s.svc.Registry.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err, "registry file")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SearchRegistry handles GET /registry/search.
// Supports ?q=, ?sort=<column> and ?dir=asc|desc.
func (s *Server) SearchRegistry(w http.ResponseWriter, r *http.Request) {
	var q, sortColumn, dir *string
	if !queryParam(w, r, "q", &q) || !queryParam(w, r, "sort", &sortColumn) || !queryParam(w, r, "dir", &dir) {
		return
	}

	var query domain.SearchQuery
	if q != nil {
		query.Text = *q
	}
	if sortColumn != nil {
		query.SortColumn = *sortColumn
	}
	if dir != nil {
		query.Direction = domain.SortDirection(*dir)
	}

	hits, err := s.svc.Registry.Search(r.Context(), query)
	if err != nil {
		s.writeError(w, r, err, "registry file")
		return
	}
	writeJSON(w, http.StatusOK, hits)
}
