package service

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/checkpoint-logbook/internal/domain"
)

// LogService records truck arrivals and aggregates them per day.
// Recording an arrival also bumps the counter named after its organization.
type LogService struct {
	store *StateStore
	now   func() time.Time
	loc   *time.Location
}

// NewLogService constructs a LogService. now supplies timestamps and loc
// decides which calendar day an entry belongs to.
func NewLogService(store *StateStore, now func() time.Time, loc *time.Location) *LogService {
	return &LogService{store: store, now: now, loc: loc}
}

// Record validates and appends an arrival stamped with the current time.
// An empty Type defaults to the first configured category and an empty
// Status to domain.DefaultLogStatus.
func (s *LogService) Record(ctx context.Context, entry domain.LogEntry) (domain.LogEntry, error) {
	entry.Org = strings.TrimSpace(entry.Org)
	entry.Type = strings.TrimSpace(entry.Type)
	entry.Status = strings.TrimSpace(entry.Status)
	if entry.Org == "" {
		return domain.LogEntry{}, fmt.Errorf("service.LogService.Record: %w: org is required", domain.ErrValidation)
	}
	if entry.Status == "" {
		entry.Status = domain.DefaultLogStatus
	}
	entry.ID = uuid.New()
	entry.Timestamp = s.now().UTC()

	_, err := s.store.Update(ctx, func(st *domain.State) error {
		if entry.Type == "" {
			entry.Type = st.Settings.Categories[0]
		}
		if !slices.Contains(st.Settings.Categories, entry.Type) {
			return fmt.Errorf("%w: unknown type %q", domain.ErrValidation, entry.Type)
		}
		st.Logs = append(st.Logs, entry)
		if i := counterIndex(st.Counters, entry.Org); i >= 0 {
			st.Counters[i].Value++
		}
		return nil
	})
	if err != nil {
		return domain.LogEntry{}, fmt.Errorf("service.LogService.Record: %w", err)
	}
	return entry, nil
}

// Delete removes an entry and takes it back off its organization's counter.
// Returns domain.ErrNotFound if no entry has that ID.
func (s *LogService) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.store.Update(ctx, func(st *domain.State) error {
		i := slices.IndexFunc(st.Logs, func(e domain.LogEntry) bool { return e.ID == id })
		if i < 0 {
			return domain.ErrNotFound
		}
		if c := counterIndex(st.Counters, st.Logs[i].Org); c >= 0 && st.Counters[c].Value > 0 {
			st.Counters[c].Value--
		}
		st.Logs = slices.Delete(st.Logs, i, i+1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("service.LogService.Delete: %w", err)
	}
	return nil
}

// List returns one page of entries, newest first, and the number of entries
// matching the filter. A zero date returns entries of every day.
func (s *LogService) List(ctx context.Context, date time.Time, p domain.PaginationParams) ([]domain.LogEntry, int, error) {
	st, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("service.LogService.List: %w", err)
	}

	day := ""
	if !date.IsZero() {
		day = date.Format(time.DateOnly)
	}
	entries := []domain.LogEntry{}
	for _, e := range st.Logs {
		if day == "" || s.localDay(e.Timestamp) == day {
			entries = append(entries, e)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})

	start, end := p.Bounds(len(entries))
	return entries[start:end], len(entries), nil
}

// Summaries aggregates entries per local calendar day, newest day first.
func (s *LogService) Summaries(ctx context.Context) ([]domain.DailySummary, error) {
	st, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.LogService.Summaries: %w", err)
	}

	byDay := map[string]*domain.DailySummary{}
	for _, e := range st.Logs {
		day := s.localDay(e.Timestamp)
		sum, ok := byDay[day]
		if !ok {
			sum = &domain.DailySummary{Date: day, ByOrg: map[string]int{}}
			byDay[day] = sum
		}
		sum.Total++
		sum.ByOrg[e.Org]++
	}

	out := make([]domain.DailySummary, 0, len(byDay))
	for _, sum := range byDay {
		out = append(out, *sum)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (s *LogService) localDay(t time.Time) string {
	return t.In(s.loc).Format(time.DateOnly)
}

// counterIndex returns the index of the counter named org, or -1.
func counterIndex(counters []domain.Counter, org string) int {
	return slices.IndexFunc(counters, func(c domain.Counter) bool {
		return strings.TrimSpace(c.Name) == org
	})
}
