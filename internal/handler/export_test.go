package handler_test

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/checkpoint-logbook/internal/domain"
	"github.com/pkordes/checkpoint-logbook/internal/handler"
)

// ---- helpers ---------------------------------------------------------------

// newExportHTTPHandler wires a Server with only the export service mock.
func newExportHTTPHandler(svc handler.ExportServicer) http.Handler {
	return newHTTPHandler(handler.Services{Export: svc})
}

// exportRowFixture returns a fully-populated domain.ExportRow for testing.
func exportRowFixture() domain.ExportRow {
	return domain.ExportRow{
		Date:   "05/03/2025",
		Time:   "09:05",
		Org:    "WFP",
		Type:   "משאית",
		Status: "נכנס",
	}
}

func rowsSvc(rows ...domain.ExportRow) *mockExportServicer {
	return &mockExportServicer{
		rows: func(context.Context) ([]domain.ExportRow, error) { return rows, nil },
	}
}

// ---- GET /export - JSON ----------------------------------------------------

func TestGetExport_DefaultJSON_FullState(t *testing.T) {
	svc := &mockExportServicer{
		state: func(context.Context) (domain.State, error) { return domain.DefaultState(), nil },
	}

	rec := do(newExportHTTPHandler(svc), httptest.NewRequest(http.MethodGet, "/export", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var st domain.State
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&st))
	assert.Equal(t, domain.StateVersion, st.Version)
	assert.Equal(t, domain.DefaultCounters(), st.Counters)
}

func TestGetExport_FormatJSON_ExplicitParam(t *testing.T) {
	svc := &mockExportServicer{
		state: func(context.Context) (domain.State, error) { return domain.DefaultState(), nil },
	}

	rec := do(newExportHTTPHandler(svc), httptest.NewRequest(http.MethodGet, "/export?format=json", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "trucks-log.json")
}

// ---- GET /export - CSV -----------------------------------------------------

func TestGetExport_CSV_FormatParam_ContentType(t *testing.T) {
	rec := do(newExportHTTPHandler(rowsSvc()), httptest.NewRequest(http.MethodGet, "/export?format=csv", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
}

func TestGetExport_CSV_EmptyResult_HasBOMAndHeaderRow(t *testing.T) {
	rec := do(newExportHTTPHandler(rowsSvc()), httptest.NewRequest(http.MethodGet, "/export?format=csv", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "\ufeffDate,Time,Org,Type,Status"), "CSV should start with BOM and header row, got: %q", body)
}

func TestGetExport_CSV_OneRow_HasHeaderAndDataRow(t *testing.T) {
	row := exportRowFixture()

	rec := do(newExportHTTPHandler(rowsSvc(row)), httptest.NewRequest(http.MethodGet, "/export?format=csv", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	records, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(rec.Body.String(), "\ufeff"))).ReadAll()
	require.NoError(t, err)
	// Header + 1 data row.
	require.Len(t, records, 2)
	assert.Equal(t, []string{"Date", "Time", "Org", "Type", "Status"}, records[0])
	assert.Equal(t, []string{"05/03/2025", "09:05", "WFP", "משאית", "נכנס"}, records[1])
}

func TestGetExport_CSV_QuotesCommas(t *testing.T) {
	row := exportRowFixture()
	row.Org = "UK MED, Gaza"

	rec := do(newExportHTTPHandler(rowsSvc(row)), httptest.NewRequest(http.MethodGet, "/export?format=csv", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"UK MED, Gaza"`)
}

func TestGetExport_UnknownFormat_Returns422(t *testing.T) {
	rec := do(newExportHTTPHandler(&mockExportServicer{}), httptest.NewRequest(http.MethodGet, "/export?format=xml", nil))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

// ---- error handling --------------------------------------------------------

func TestGetExport_ServiceError_Returns500(t *testing.T) {
	svc := &mockExportServicer{
		rows: func(context.Context) ([]domain.ExportRow, error) {
			return nil, fmt.Errorf("database unavailable")
		},
	}

	rec := do(newExportHTTPHandler(svc), httptest.NewRequest(http.MethodGet, "/export?format=csv", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
