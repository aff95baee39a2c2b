package handler_test

import (
	"context"
	"encoding/json"
	"errors"
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

func counterHandler(m *mockCounterServicer) http.Handler {
	return newHTTPHandler(handler.Services{Counters: m})
}

// ---- GET /counters ---------------------------------------------------------

func TestListCounters_200(t *testing.T) {
	svc := &mockCounterServicer{
		list: func(context.Context) ([]domain.Counter, int, error) {
			return []domain.Counter{{Name: "WFP", Value: 2}, {Name: "WCK", Value: 1}}, 3, nil
		},
	}

	rec := do(counterHandler(svc), httptest.NewRequest(http.MethodGet, "/counters", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp handler.CounterList
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 3, resp.Total)
	assert.Len(t, resp.Data, 2)
}

func TestListCounters_500(t *testing.T) {
	svc := &mockCounterServicer{
		list: func(context.Context) ([]domain.Counter, int, error) {
			return nil, 0, errors.New("database unavailable")
		},
	}

	rec := do(counterHandler(svc), httptest.NewRequest(http.MethodGet, "/counters", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal_error", decodeError(t, rec).Error.Code)
	assert.NotContains(t, rec.Body.String(), "database unavailable")
}

// ---- POST /counters --------------------------------------------------------

func TestAddCounter_201(t *testing.T) {
	var gotName string
	svc := &mockCounterServicer{
		add: func(_ context.Context, name string) ([]domain.Counter, error) {
			gotName = name
			return []domain.Counter{{Name: name}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/counters", jsonBody(t, map[string]any{"name": "UNICEF"}))
	rec := do(counterHandler(svc), req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "UNICEF", gotName)
}

func TestAddCounter_EmptyBody(t *testing.T) {
	called := false
	svc := &mockCounterServicer{
		add: func(_ context.Context, name string) ([]domain.Counter, error) {
			called = true
			assert.Empty(t, name)
			return []domain.Counter{{Name: domain.DefaultCounterName}}, nil
		},
	}

	rec := do(counterHandler(svc), httptest.NewRequest(http.MethodPost, "/counters", nil))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, called)
}

// ---- DELETE /counters/last, POST /counters/reset ---------------------------

func TestRemoveLastCounter_200(t *testing.T) {
	svc := &mockCounterServicer{
		removeLast: func(context.Context) ([]domain.Counter, error) {
			return []domain.Counter{{Name: "WFP", Value: 4}}, nil
		},
	}

	rec := do(counterHandler(svc), httptest.NewRequest(http.MethodDelete, "/counters/last", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp handler.CounterList
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 4, resp.Total)
}

func TestResetAllCounters_200(t *testing.T) {
	svc := &mockCounterServicer{
		resetAll: func(context.Context) ([]domain.Counter, error) {
			return []domain.Counter{{Name: "WFP"}}, nil
		},
	}

	rec := do(counterHandler(svc), httptest.NewRequest(http.MethodPost, "/counters/reset", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

// ---- PUT /counters/{index} -------------------------------------------------

func TestUpdateCounter_200(t *testing.T) {
	var gotIndex int
	var gotPatch domain.CounterPatch
	svc := &mockCounterServicer{
		update: func(_ context.Context, index int, patch domain.CounterPatch) (domain.Counter, error) {
			gotIndex, gotPatch = index, patch
			return domain.Counter{Name: "UNOPS", Value: 7}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPut, "/counters/2", jsonBody(t, map[string]any{"value": 7}))
	rec := do(counterHandler(svc), req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, gotIndex)
	assert.Nil(t, gotPatch.Name)
	require.NotNil(t, gotPatch.Value)
	assert.Equal(t, 7, *gotPatch.Value)

	var resp domain.Counter
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, domain.Counter{Name: "UNOPS", Value: 7}, resp)
}

func TestUpdateCounter_404(t *testing.T) {
	svc := &mockCounterServicer{
		update: func(context.Context, int, domain.CounterPatch) (domain.Counter, error) {
			return domain.Counter{}, fmt.Errorf("service.CounterService.Update: %w", domain.ErrNotFound)
		},
	}

	req := httptest.NewRequest(http.MethodPut, "/counters/9", jsonBody(t, map[string]any{"name": "x"}))
	rec := do(counterHandler(svc), req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "not_found", resp.Error.Code)
	assert.Equal(t, "counter not found", resp.Error.Message)
}

func TestUpdateCounter_422_Validation(t *testing.T) {
	svc := &mockCounterServicer{
		update: func(context.Context, int, domain.CounterPatch) (domain.Counter, error) {
			return domain.Counter{}, fmt.Errorf("service.CounterService.Update: %w: value must not be negative", domain.ErrValidation)
		},
	}

	req := httptest.NewRequest(http.MethodPut, "/counters/0", jsonBody(t, map[string]any{"value": -1}))
	rec := do(counterHandler(svc), req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "validation_error", resp.Error.Code)
	assert.Equal(t, "value must not be negative", resp.Error.Message)
}

func TestUpdateCounter_422_BadIndex(t *testing.T) {
	rec := do(counterHandler(&mockCounterServicer{}),
		httptest.NewRequest(http.MethodPut, "/counters/abc", jsonBody(t, map[string]any{"value": 1})))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestUpdateCounter_422_MalformedBody(t *testing.T) {
	rec := do(counterHandler(&mockCounterServicer{}),
		httptest.NewRequest(http.MethodPut, "/counters/0", strings.NewReader("{")))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

// ---- POST /counters/{index}/change, /reset ---------------------------------

func TestChangeCounter_200(t *testing.T) {
	svc := &mockCounterServicer{
		change: func(_ context.Context, index, delta int) (domain.Counter, error) {
			assert.Equal(t, 1, index)
			assert.Equal(t, -1, delta)
			return domain.Counter{Name: "WCK", Value: 0}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/counters/1/change", jsonBody(t, map[string]any{"delta": -1}))
	rec := do(counterHandler(svc), req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestChangeCounter_422_MissingDelta(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/counters/1/change", jsonBody(t, map[string]any{}))
	rec := do(counterHandler(&mockCounterServicer{}), req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "delta is required", decodeError(t, rec).Error.Message)
}

func TestResetCounter_200(t *testing.T) {
	svc := &mockCounterServicer{
		reset: func(_ context.Context, index int) (domain.Counter, error) {
			return domain.Counter{Name: "WFP"}, nil
		},
	}

	rec := do(counterHandler(svc), httptest.NewRequest(http.MethodPost, "/counters/0/reset", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

// ---- GET /share ------------------------------------------------------------

func TestGetShareMessage_200(t *testing.T) {
	svc := &mockCounterServicer{
		share: func(context.Context) (domain.ShareMessage, error) {
			return domain.ShareMessage{Text: "hello", URL: "https://wa.me/?text=hello"}, nil
		},
	}

	rec := do(counterHandler(svc), httptest.NewRequest(http.MethodGet, "/share", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp domain.ShareMessage
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "https://wa.me/?text=hello", resp.URL)
}
