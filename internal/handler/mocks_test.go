package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/checkpoint-logbook/internal/domain"
	"github.com/pkordes/checkpoint-logbook/internal/handler"
	"github.com/pkordes/checkpoint-logbook/internal/service"
)

// Each mock below is a test double for one handler.*Servicer interface.
// Set only the method fields your test needs.

type mockCounterServicer struct {
	list       func(ctx context.Context) ([]domain.Counter, int, error)
	add        func(ctx context.Context, name string) ([]domain.Counter, error)
	removeLast func(ctx context.Context) ([]domain.Counter, error)
	update     func(ctx context.Context, index int, patch domain.CounterPatch) (domain.Counter, error)
	change     func(ctx context.Context, index, delta int) (domain.Counter, error)
	reset      func(ctx context.Context, index int) (domain.Counter, error)
	resetAll   func(ctx context.Context) ([]domain.Counter, error)
	share      func(ctx context.Context) (domain.ShareMessage, error)
}

func (m *mockCounterServicer) List(ctx context.Context) ([]domain.Counter, int, error) {
	return m.list(ctx)
}
func (m *mockCounterServicer) Add(ctx context.Context, name string) ([]domain.Counter, error) {
	return m.add(ctx, name)
}
func (m *mockCounterServicer) RemoveLast(ctx context.Context) ([]domain.Counter, error) {
	return m.removeLast(ctx)
}
func (m *mockCounterServicer) Update(ctx context.Context, index int, patch domain.CounterPatch) (domain.Counter, error) {
	return m.update(ctx, index, patch)
}
func (m *mockCounterServicer) Change(ctx context.Context, index, delta int) (domain.Counter, error) {
	return m.change(ctx, index, delta)
}
func (m *mockCounterServicer) Reset(ctx context.Context, index int) (domain.Counter, error) {
	return m.reset(ctx, index)
}
func (m *mockCounterServicer) ResetAll(ctx context.Context) ([]domain.Counter, error) {
	return m.resetAll(ctx)
}
func (m *mockCounterServicer) Share(ctx context.Context) (domain.ShareMessage, error) {
	return m.share(ctx)
}

type mockLogServicer struct {
	record    func(ctx context.Context, entry domain.LogEntry) (domain.LogEntry, error)
	delete    func(ctx context.Context, id uuid.UUID) error
	list      func(ctx context.Context, date time.Time, p domain.PaginationParams) ([]domain.LogEntry, int, error)
	summaries func(ctx context.Context) ([]domain.DailySummary, error)
}

func (m *mockLogServicer) Record(ctx context.Context, entry domain.LogEntry) (domain.LogEntry, error) {
	return m.record(ctx, entry)
}
func (m *mockLogServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockLogServicer) List(ctx context.Context, date time.Time, p domain.PaginationParams) ([]domain.LogEntry, int, error) {
	return m.list(ctx, date, p)
}
func (m *mockLogServicer) Summaries(ctx context.Context) ([]domain.DailySummary, error) {
	return m.summaries(ctx)
}

type mockRegistryServicer struct {
	importFiles func(ctx context.Context, uploads []service.Upload) (domain.ImportReport, error)
	listFiles   func(ctx context.Context) ([]domain.RegistryFileSummary, error)
	setActive   func(ctx context.Context, id uuid.UUID, active bool) (domain.RegistryFileSummary, error)
	delete      func(ctx context.Context, id uuid.UUID) error
	search      func(ctx context.Context, q domain.SearchQuery) ([]domain.SearchHit, error)
}

func (m *mockRegistryServicer) Import(ctx context.Context, uploads []service.Upload) (domain.ImportReport, error) {
	return m.importFiles(ctx, uploads)
}
func (m *mockRegistryServicer) ListFiles(ctx context.Context) ([]domain.RegistryFileSummary, error) {
	return m.listFiles(ctx)
}
func (m *mockRegistryServicer) SetActive(ctx context.Context, id uuid.UUID, active bool) (domain.RegistryFileSummary, error) {
	return m.setActive(ctx, id, active)
}
func (m *mockRegistryServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockRegistryServicer) Search(ctx context.Context, q domain.SearchQuery) ([]domain.SearchHit, error) {
	return m.search(ctx, q)
}

type mockSettingsServicer struct {
	get    func(ctx context.Context) (domain.Settings, error)
	update func(ctx context.Context, in domain.Settings) (domain.Settings, error)
}

func (m *mockSettingsServicer) Get(ctx context.Context) (domain.Settings, error) {
	return m.get(ctx)
}
func (m *mockSettingsServicer) Update(ctx context.Context, in domain.Settings) (domain.Settings, error) {
	return m.update(ctx, in)
}

type mockExportServicer struct {
	rows  func(ctx context.Context) ([]domain.ExportRow, error)
	state func(ctx context.Context) (domain.State, error)
}

func (m *mockExportServicer) Rows(ctx context.Context) ([]domain.ExportRow, error) {
	return m.rows(ctx)
}
func (m *mockExportServicer) State(ctx context.Context) (domain.State, error) {
	return m.state(ctx)
}

type mockStateResetter struct {
	reset func(ctx context.Context) (domain.State, error)
}

func (m *mockStateResetter) Reset(ctx context.Context) (domain.State, error) {
	return m.reset(ctx)
}

// compile-time checks: every mock must satisfy its handler interface.
var (
	_ handler.CounterServicer  = (*mockCounterServicer)(nil)
	_ handler.LogServicer      = (*mockLogServicer)(nil)
	_ handler.RegistryServicer = (*mockRegistryServicer)(nil)
	_ handler.SettingsServicer = (*mockSettingsServicer)(nil)
	_ handler.ExportServicer   = (*mockExportServicer)(nil)
	_ handler.StateResetter    = (*mockStateResetter)(nil)
)

// ---- helpers ---------------------------------------------------------------

// newHTTPHandler wires a Server with the given mocks into its chi router.
// This mirrors how main.go wires it in production.
func newHTTPHandler(svc handler.Services) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return handler.NewServer(svc, logger).Routes()
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

// do sends req through h and returns the recorded response.
func do(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// decodeError reads an ErrorResponse from rec.
func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorResponse {
	t.Helper()
	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}
