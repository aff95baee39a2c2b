// Package service contains the business logic for the checkpoint logbook.
// Services validate inputs, enforce business rules, and mutate the shared
// application state through a StateStore.
// No SQL lives here; the store depends on the repo interface, not an implementation.
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pkordes/checkpoint-logbook/internal/domain"
	"github.com/pkordes/checkpoint-logbook/internal/repo"
)

// StateStore owns the application state blob. It loads the blob on first use,
// serializes every mutation, and writes the whole blob back after each one.
// All services share a single StateStore.
type StateStore struct {
	repo   repo.StateRepo
	key    string
	logger *slog.Logger

	mu    sync.Mutex
	state *domain.State // nil until the first load
}

// NewStateStore constructs a StateStore persisting under key.
func NewStateStore(r repo.StateRepo, key string, logger *slog.Logger) *StateStore {
	return &StateStore{repo: r, key: key, logger: logger}
}

// Snapshot returns a copy of the current state that the caller may modify freely.
func (s *StateStore) Snapshot(ctx context.Context) (domain.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return domain.State{}, fmt.Errorf("service.StateStore.Snapshot: %w", err)
	}
	return cloneState(*s.state)
}

// Update applies fn to a copy of the state. If fn succeeds the copy is stored
// and becomes current; if fn or the write fails, the current state is kept.
// The stored state is returned.
func (s *StateStore) Update(ctx context.Context, fn func(*domain.State) error) (domain.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return domain.State{}, fmt.Errorf("service.StateStore.Update: %w", err)
	}
	next, err := cloneState(*s.state)
	if err != nil {
		return domain.State{}, fmt.Errorf("service.StateStore.Update: %w", err)
	}
	if err := fn(&next); err != nil {
		return domain.State{}, err
	}
	next.Version = domain.StateVersion

	raw, err := json.Marshal(next)
	if err != nil {
		return domain.State{}, fmt.Errorf("service.StateStore.Update: encode: %w", err)
	}
	if err := s.repo.Store(ctx, s.key, string(raw)); err != nil {
		return domain.State{}, fmt.Errorf("service.StateStore.Update: %w", err)
	}
	s.state = &next
	return cloneState(next)
}

// Reset replaces the stored state with the seed defaults.
func (s *StateStore) Reset(ctx context.Context) (domain.State, error) {
	st, err := s.Update(ctx, func(st *domain.State) error {
		*st = domain.DefaultState()
		return nil
	})
	if err != nil {
		return domain.State{}, err
	}
	s.logger.InfoContext(ctx, "state reset to defaults", "key", s.key)
	return st, nil
}

// ensureLoaded reads the blob on first use. A missing blob yields the seed
// state; a blob that cannot be decoded is discarded in favour of the seed
// state. Only repo failures are returned. Callers must hold s.mu.
func (s *StateStore) ensureLoaded(ctx context.Context) error {
	if s.state != nil {
		return nil
	}

	raw, err := s.repo.Load(ctx, s.key)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	st := domain.DefaultState()
	if err == nil {
		decoded, decodeErr := decodeState(raw)
		if decodeErr != nil {
			s.logger.WarnContext(ctx, "stored state is malformed, using defaults",
				"key", s.key, "error", decodeErr)
		} else {
			st = decoded
		}
	}
	s.state = &st
	return nil
}

// decodeState parses a stored blob. Besides the versioned object it accepts
// the bare counter array written by the first release.
func decodeState(raw string) (domain.State, error) {
	trimmed := bytes.TrimSpace([]byte(raw))
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var counters []domain.Counter
		if err := json.Unmarshal(trimmed, &counters); err != nil {
			return domain.State{}, err
		}
		st := domain.State{Version: 1, Counters: counters}
		st.ApplyDefaults()
		return st, nil
	}

	var st domain.State
	if err := json.Unmarshal(trimmed, &st); err != nil {
		return domain.State{}, err
	}
	st.ApplyDefaults()
	return st, nil
}

func cloneState(st domain.State) (domain.State, error) {
	raw, err := json.Marshal(st)
	if err != nil {
		return domain.State{}, fmt.Errorf("clone state: %w", err)
	}
	var out domain.State
	if err := json.Unmarshal(raw, &out); err != nil {
		return domain.State{}, fmt.Errorf("clone state: %w", err)
	}
	return out, nil
}
