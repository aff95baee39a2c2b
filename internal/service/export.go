package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/pkordes/checkpoint-logbook/internal/domain"
)

// ExportService produces the downloadable reports.
type ExportService struct {
	store *StateStore
	loc   *time.Location
}

// NewExportService constructs an ExportService. Timestamps are rendered in loc.
func NewExportService(store *StateStore, loc *time.Location) *ExportService {
	return &ExportService{store: store, loc: loc}
}

// Rows returns one row per log entry, oldest first, with the date and time
// split into local "02/01/2006" and "15:04" columns.
func (s *ExportService) Rows(ctx context.Context) ([]domain.ExportRow, error) {
	st, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Rows: %w", err)
	}

	logs := st.Logs
	sort.SliceStable(logs, func(i, j int) bool { return logs[i].Timestamp.Before(logs[j].Timestamp) })

	rows := make([]domain.ExportRow, 0, len(logs))
	for _, e := range logs {
		t := e.Timestamp.In(s.loc)
		rows = append(rows, domain.ExportRow{
			Date:   t.Format("02/01/2006"),
			Time:   t.Format("15:04"),
			Org:    e.Org,
			Type:   e.Type,
			Status: e.Status,
		})
	}
	return rows, nil
}

// State returns the whole application state for backup.
func (s *ExportService) State(ctx context.Context) (domain.State, error) {
	st, err := s.store.Snapshot(ctx)
	if err != nil {
		return domain.State{}, fmt.Errorf("service.ExportService.State: %w", err)
	}
	return st, nil
}
