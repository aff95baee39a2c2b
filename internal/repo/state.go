// Package repo contains all database access logic for the checkpoint logbook.
// The application state is a single JSON blob stored under a key, so the
// only repository is a key/value store. No business logic lives here.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/checkpoint-logbook/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// StateRepo loads and stores whole state blobs by key.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type StateRepo interface {
	// Load returns the blob stored under key.
	// Returns domain.ErrNotFound if nothing has been stored yet.
	Load(ctx context.Context, key string) (string, error)

	// Store writes value under key, replacing any previous blob.
	Store(ctx context.Context, key, value string) error
}

// pgStateRepo is the Postgres implementation of StateRepo.
type pgStateRepo struct {
	db db
}

// NewStateRepo constructs a StateRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewStateRepo(db db) StateRepo {
	return &pgStateRepo{db: db}
}

// Load reads the blob stored under key.
func (r *pgStateRepo) Load(ctx context.Context, key string) (string, error) {
	const q = `SELECT value FROM app_state WHERE key = @key`

	var value string
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"key": key}).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("repo.StateRepo.Load: %w", domain.ErrNotFound)
		}
		return "", fmt.Errorf("repo.StateRepo.Load: %w", err)
	}
	return value, nil
}

// Store upserts the blob under key. The blob is stored as text, not jsonb,
// so a corrupt value can still be read back and discarded by the caller.
func (r *pgStateRepo) Store(ctx context.Context, key, value string) error {
	const q = `
		INSERT INTO app_state (key, value)
		VALUES (@key, @value)
		ON CONFLICT (key) DO UPDATE
		SET value      = EXCLUDED.value,
		    updated_at = now()`

	_, err := r.db.Exec(ctx, q, pgx.NamedArgs{"key": key, "value": value})
	if err != nil {
		return fmt.Errorf("repo.StateRepo.Store: %w", err)
	}
	return nil
}
