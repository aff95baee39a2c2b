package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkordes/checkpoint-logbook/internal/domain"
)

// shareURL is the chat deep link the share text is appended to.
const shareURL = "https://wa.me/?text="

// componentEscaper turns url.QueryEscape output into URI component encoding:
// spaces become %20 and !'()* stay literal.
var componentEscaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// CounterService implements the per-organization tallies.
type CounterService struct {
	store *StateStore
}

// NewCounterService constructs a CounterService over the shared store.
func NewCounterService(store *StateStore) *CounterService {
	return &CounterService{store: store}
}

// List returns all counters in display order and their total.
func (s *CounterService) List(ctx context.Context) ([]domain.Counter, int, error) {
	st, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("service.CounterService.List: %w", err)
	}
	return st.Counters, domain.CounterTotal(st.Counters), nil
}

// Add appends a counter at zero. A blank name gets the default name.
func (s *CounterService) Add(ctx context.Context, name string) ([]domain.Counter, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = domain.DefaultCounterName
	}
	st, err := s.store.Update(ctx, func(st *domain.State) error {
		st.Counters = append(st.Counters, domain.Counter{Name: name})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("service.CounterService.Add: %w", err)
	}
	return st.Counters, nil
}

// RemoveLast drops the last counter. It is a no-op when there are none.
func (s *CounterService) RemoveLast(ctx context.Context) ([]domain.Counter, error) {
	st, err := s.store.Update(ctx, func(st *domain.State) error {
		if n := len(st.Counters); n > 0 {
			st.Counters = st.Counters[:n-1]
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("service.CounterService.RemoveLast: %w", err)
	}
	return st.Counters, nil
}

// Update renames a counter and/or overwrites its value.
// Returns domain.ErrNotFound for an unknown index and domain.ErrValidation
// for a blank name or a negative value.
func (s *CounterService) Update(ctx context.Context, index int, patch domain.CounterPatch) (domain.Counter, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return domain.Counter{}, fmt.Errorf("service.CounterService.Update: %w: name must not be blank", domain.ErrValidation)
	}
	if patch.Value != nil && *patch.Value < 0 {
		return domain.Counter{}, fmt.Errorf("service.CounterService.Update: %w: value must not be negative", domain.ErrValidation)
	}
	c, err := s.mutate(ctx, index, func(c *domain.Counter) {
		if patch.Name != nil {
			c.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.Value != nil {
			c.Value = *patch.Value
		}
	})
	if err != nil {
		return domain.Counter{}, fmt.Errorf("service.CounterService.Update: %w", err)
	}
	return c, nil
}

// Change adds delta to a counter. The value never drops below zero.
func (s *CounterService) Change(ctx context.Context, index, delta int) (domain.Counter, error) {
	c, err := s.mutate(ctx, index, func(c *domain.Counter) {
		c.Value = max(c.Value+delta, 0)
	})
	if err != nil {
		return domain.Counter{}, fmt.Errorf("service.CounterService.Change: %w", err)
	}
	return c, nil
}

// Reset sets one counter back to zero.
func (s *CounterService) Reset(ctx context.Context, index int) (domain.Counter, error) {
	c, err := s.mutate(ctx, index, func(c *domain.Counter) {
		c.Value = 0
	})
	if err != nil {
		return domain.Counter{}, fmt.Errorf("service.CounterService.Reset: %w", err)
	}
	return c, nil
}

// ResetAll sets every counter back to zero, keeping names and order.
func (s *CounterService) ResetAll(ctx context.Context) ([]domain.Counter, error) {
	st, err := s.store.Update(ctx, func(st *domain.State) error {
		for i := range st.Counters {
			st.Counters[i].Value = 0
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("service.CounterService.ResetAll: %w", err)
	}
	return st.Counters, nil
}

// Share builds the arrivals-so-far message and its chat link.
// Counters at zero are left out when the HideEmpty setting is on.
func (s *CounterService) Share(ctx context.Context) (domain.ShareMessage, error) {
	st, err := s.store.Snapshot(ctx)
	if err != nil {
		return domain.ShareMessage{}, fmt.Errorf("service.CounterService.Share: %w", err)
	}

	var b strings.Builder
	b.WriteString("כניסת משאיות עד כה:\n")
	for _, c := range st.Counters {
		if st.Settings.HideEmpty && c.Value == 0 {
			continue
		}
		b.WriteString(c.Name + ": " + strconv.Itoa(c.Value) + " משאיות\n")
	}
	b.WriteString("\nסה\"כ " + strconv.Itoa(domain.CounterTotal(st.Counters)) + " משאיות")

	text := b.String()
	return domain.ShareMessage{
		Text: text,
		URL:  shareURL + componentEscaper.Replace(url.QueryEscape(text)),
	}, nil
}

// mutate applies fn to the counter at index and returns the stored result.
func (s *CounterService) mutate(ctx context.Context, index int, fn func(*domain.Counter)) (domain.Counter, error) {
	st, err := s.store.Update(ctx, func(st *domain.State) error {
		if index < 0 || index >= len(st.Counters) {
			return domain.ErrNotFound
		}
		fn(&st.Counters[index])
		return nil
	})
	if err != nil {
		return domain.Counter{}, err
	}
	return st.Counters[index], nil
}
