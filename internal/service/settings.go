package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkordes/checkpoint-logbook/internal/domain"
)

// SettingsService reads and replaces the user preferences.
type SettingsService struct {
	store *StateStore
}

// NewSettingsService constructs a SettingsService over the shared store.
func NewSettingsService(store *StateStore) *SettingsService {
	return &SettingsService{store: store}
}

// Get returns the current settings.
func (s *SettingsService) Get(ctx context.Context) (domain.Settings, error) {
	st, err := s.store.Snapshot(ctx)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("service.SettingsService.Get: %w", err)
	}
	return st.Settings, nil
}

// Update validates and replaces the settings. Categories are trimmed and
// de-duplicated; blank ones are dropped.
// Returns domain.ErrValidation if MaxSearchResults is out of range or no
// category is left.
func (s *SettingsService) Update(ctx context.Context, in domain.Settings) (domain.Settings, error) {
	if in.MaxSearchResults < 1 || in.MaxSearchResults > domain.MaxSearchResultsLimit {
		return domain.Settings{}, fmt.Errorf("service.SettingsService.Update: %w: max_search_results must be between 1 and %d",
			domain.ErrValidation, domain.MaxSearchResultsLimit)
	}

	categories := make([]string, 0, len(in.Categories))
	seen := map[string]bool{}
	for _, c := range in.Categories {
		c = strings.TrimSpace(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		categories = append(categories, c)
	}
	if len(categories) == 0 {
		return domain.Settings{}, fmt.Errorf("service.SettingsService.Update: %w: at least one category is required", domain.ErrValidation)
	}
	in.Categories = categories

	st, err := s.store.Update(ctx, func(st *domain.State) error {
		st.Settings = in
		return nil
	})
	if err != nil {
		return domain.Settings{}, fmt.Errorf("service.SettingsService.Update: %w", err)
	}
	return st.Settings, nil
}
