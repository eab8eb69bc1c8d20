package storage

import (
	"context"
	"errors"
	"log/slog"
)

// Keys used by the session context. Each entry is independent.
const (
	KeyToken = "esportivo.token"
	KeyUser  = "esportivo.user"
	KeyClub  = "esportivo.selected_club"
)

// ErrNotFound is returned by a Backend when a key has no value.
var ErrNotFound = errors.New("key not found")

//go:generate mockgen -source=store.go -destination=mocks/mock_backend.go -package=mocks Backend

// Backend is a device-local string key-value store.
type Backend interface {
	// Get returns the value for key or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set writes value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// Store exposes a Backend with fail-silent semantics: backend errors are
// logged and never reach the caller.
type Store struct {
	backend Backend
	logger  *slog.Logger
}

// NewStore wraps backend.
func NewStore(backend Backend, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{backend: backend, logger: logger}
}

// Get returns the stored value and whether it was present. Any backend
// failure reads as absent.
func (s *Store) Get(ctx context.Context, key string) (string, bool) {
	value, err := s.backend.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.ErrorContext(ctx, "Failed to read storage entry",
				slog.String("key", key),
				slog.Any("error", err),
			)
		}
		return "", false
	}
	return value, true
}

// Set writes value under key.
func (s *Store) Set(ctx context.Context, key, value string) {
	if err := s.backend.Set(ctx, key, value); err != nil {
		s.logger.ErrorContext(ctx, "Failed to write storage entry",
			slog.String("key", key),
			slog.Any("error", err),
		)
	}
}

// Remove deletes key.
func (s *Store) Remove(ctx context.Context, key string) {
	if err := s.backend.Delete(ctx, key); err != nil && !errors.Is(err, ErrNotFound) {
		s.logger.ErrorContext(ctx, "Failed to remove storage entry",
			slog.String("key", key),
			slog.Any("error", err),
		)
	}
}

// Token implements the apiclient token source: the bearer credential is read
// from storage before every request.
func (s *Store) Token(ctx context.Context) (string, bool) {
	token, ok := s.Get(ctx, KeyToken)
	if !ok || token == "" {
		return "", false
	}
	return token, true
}
