package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/pkordes/checkpoint-logbook/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{"Date", "Time", "Org", "Type", "Status"}

// csvBOM makes spreadsheet apps read the file as UTF-8, which Hebrew values need.
const csvBOM = "\ufeff"

// Export formats accepted by ?format=.
const (
	formatCSV  = "csv"
	formatJSON = "json"
)

// GetExport handles GET /export.
// ?format=csv returns the arrival log as CSV; the default (or ?format=json)
// returns the whole state as a JSON backup.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	var format *string
	if !queryParam(w, r, "format", &format) {
		return
	}

	switch {
	case format == nil || *format == formatJSON:
		st, err := s.svc.Export.State(r.Context())
		if err != nil {
			s.writeError(w, r, err, "state")
			return
		}
		w.Header().Set("Content-Disposition", `attachment; filename="trucks-log.json"`)
		writeJSON(w, http.StatusOK, st)
	case *format == formatCSV:
		rows, err := s.svc.Export.Rows(r.Context())
		if err != nil {
			s.writeError(w, r, err, "log entry")
			return
		}
		writeCSV(w, rows)
	default:
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("format must be csv or json"))
	}
}

// writeCSV encodes rows behind a byte order mark and the header row.
func writeCSV(w http.ResponseWriter, rows []domain.ExportRow) {
	var buf bytes.Buffer
	buf.WriteString(csvBOM)
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		cw.Write(domainRowToCSVRecord(r))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="trucks-log.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	w.Write(buf.Bytes())
}

// domainRowToCSVRecord encodes a domain.ExportRow as a flat string slice.
func domainRowToCSVRecord(r domain.ExportRow) []string {
	return []string{r.Date, r.Time, r.Org, r.Type, r.Status}
}
