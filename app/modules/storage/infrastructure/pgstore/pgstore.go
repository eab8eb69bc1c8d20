package pgstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Black-And-White-Club/esportivo/app/modules/storage"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// Impl implements storage.Backend using Bun ORM.
type Impl struct {
	db bun.IDB
}

// New creates a postgres-backed store on an existing handle.
func New(db bun.IDB) *Impl {
	return &Impl{db: db}
}

// Open dials dsn with pgdriver and wraps it in bun.
func Open(dsn string) *bun.DB {
	pgdb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return bun.NewDB(pgdb, pgdialect.New())
}

// Get implements storage.Backend.
func (r *Impl) Get(ctx context.Context, key string) (string, error) {
	entry := new(Entry)
	err := r.db.NewSelect().
		Model(entry).
		Where("key = ?", key).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", storage.ErrNotFound
		}
		return "", fmt.Errorf("failed to get entry: %w", err)
	}
	return entry.Value, nil
}

// Set implements storage.Backend.
func (r *Impl) Set(ctx context.Context, key, value string) error {
	entry := &Entry{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	_, err := r.db.NewInsert().
		Model(entry).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert entry: %w", err)
	}
	return nil
}

// Delete implements storage.Backend.
func (r *Impl) Delete(ctx context.Context, key string) error {
	_, err := r.db.NewDelete().
		Model((*Entry)(nil)).
		Where("key = ?", key).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	return nil
}
