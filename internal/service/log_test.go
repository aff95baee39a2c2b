package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/checkpoint-logbook/internal/domain"
	"github.com/pkordes/checkpoint-logbook/internal/service"
)

// jerusalem is fixed at UTC+3 so tests do not depend on the tz database.
var jerusalem = time.FixedZone("IDT", 3*60*60)

// stepClock returns a clock that starts at start and advances by step on every call.
func stepClock(start time.Time, step time.Duration) func() time.Time {
	next := start
	return func() time.Time {
		now := next
		next = next.Add(step)
		return now
	}
}

func newLogService(t *testing.T, now func() time.Time) (*service.LogService, *service.CounterService, *memRepo) {
	t.Helper()
	m := newMemRepo()
	store := newStore(m)
	return service.NewLogService(store, now, jerusalem), service.NewCounterService(store), m
}

func TestLogService_Record_Defaults(t *testing.T) {
	now := time.Date(2025, 3, 5, 9, 30, 0, 0, time.UTC)
	svc, counters, _ := newLogService(t, func() time.Time { return now })
	ctx := context.Background()

	got, err := svc.Record(ctx, domain.LogEntry{Org: " WFP "})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, now, got.Timestamp)
	assert.Equal(t, "WFP", got.Org)
	assert.Equal(t, "משאית", got.Type)
	assert.Equal(t, domain.DefaultLogStatus, got.Status)

	list, total, err := counters.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, list[0].Value)
	assert.Equal(t, 1, total)
}

func TestLogService_Record_UnknownOrgLeavesCounters(t *testing.T) {
	svc, counters, m := newLogService(t, time.Now)
	ctx := context.Background()

	_, err := svc.Record(ctx, domain.LogEntry{Org: "UNICEF", Type: "מכולה", Status: "יצא"})
	require.NoError(t, err)

	_, total, err := counters.List(ctx)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Len(t, m.stored(t).Logs, 1)
}

func TestLogService_Record_Validation(t *testing.T) {
	tests := []struct {
		name  string
		entry domain.LogEntry
	}{
		{name: "missing org", entry: domain.LogEntry{Org: "  "}},
		{name: "unknown type", entry: domain.LogEntry{Org: "WFP", Type: "אוטובוס"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, _, m := newLogService(t, time.Now)

			_, err := svc.Record(context.Background(), tc.entry)

			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Zero(t, m.writes)
		})
	}
}

func TestLogService_Delete_DecrementsCounter(t *testing.T) {
	svc, counters, _ := newLogService(t, time.Now)
	ctx := context.Background()

	e, err := svc.Record(ctx, domain.LogEntry{Org: "WCK"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, e.ID))

	list, _, err := counters.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, list[2].Value)
	entries, total, err := svc.List(ctx, time.Time{}, domain.NewPaginationParams(nil, nil))
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Zero(t, total)
}

func TestLogService_Delete_CounterStaysAtZero(t *testing.T) {
	svc, counters, _ := newLogService(t, time.Now)
	ctx := context.Background()

	e, err := svc.Record(ctx, domain.LogEntry{Org: "WFP"})
	require.NoError(t, err)
	_, err = counters.Reset(ctx, 0)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, e.ID))

	list, _, err := counters.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, list[0].Value)
}

func TestLogService_Delete_NotFound(t *testing.T) {
	svc, _, _ := newLogService(t, time.Now)

	err := svc.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLogService_List_NewestFirstAndPaged(t *testing.T) {
	start := time.Date(2025, 3, 5, 6, 0, 0, 0, time.UTC)
	svc, _, _ := newLogService(t, stepClock(start, time.Minute))
	ctx := context.Background()

	var ids []uuid.UUID
	for range 5 {
		e, err := svc.Record(ctx, domain.LogEntry{Org: "WFP"})
		require.NoError(t, err)
		ids = append(ids, e.ID)
	}

	page, limit := 2, 2
	got, total, err := svc.List(ctx, time.Time{}, domain.NewPaginationParams(&page, &limit))

	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, got, 2)
	assert.Equal(t, ids[2], got[0].ID)
	assert.Equal(t, ids[1], got[1].ID)
}

func TestLogService_List_FiltersByLocalDate(t *testing.T) {
	// 22:30 UTC on the 4th is 01:30 local on the 5th.
	times := []time.Time{
		time.Date(2025, 3, 4, 12, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 4, 22, 30, 0, 0, time.UTC),
		time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC),
	}
	i := 0
	svc, _, _ := newLogService(t, func() time.Time { now := times[i]; i++; return now })
	ctx := context.Background()
	for range times {
		_, err := svc.Record(ctx, domain.LogEntry{Org: "WFP"})
		require.NoError(t, err)
	}

	day := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	got, total, err := svc.List(ctx, day, domain.NewPaginationParams(nil, nil))

	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, times[2], got[0].Timestamp)
	assert.Equal(t, times[1], got[1].Timestamp)
}

func TestLogService_Summaries(t *testing.T) {
	times := []time.Time{
		time.Date(2025, 3, 4, 8, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 5, 8, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 5, 9, 0, 0, 0, time.UTC),
	}
	orgs := []string{"WFP", "WFP", "WCK"}
	i := 0
	svc, _, _ := newLogService(t, func() time.Time { now := times[i]; i++; return now })
	ctx := context.Background()
	for _, org := range orgs {
		_, err := svc.Record(ctx, domain.LogEntry{Org: org})
		require.NoError(t, err)
	}

	got, err := svc.Summaries(ctx)

	require.NoError(t, err)
	assert.Equal(t, []domain.DailySummary{
		{Date: "2025-03-05", Total: 2, ByOrg: map[string]int{"WFP": 1, "WCK": 1}},
		{Date: "2025-03-04", Total: 1, ByOrg: map[string]int{"WFP": 1}},
	}, got)
}
