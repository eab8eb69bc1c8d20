package pgstore

import (
	"context"
	"fmt"

	kvmigrations "github.com/Black-And-White-Club/esportivo/app/modules/storage/infrastructure/pgstore/migrations"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

// NewMigrator returns a migrator over the key-value store migrations.
func NewMigrator(db *bun.DB) *migrate.Migrator {
	return migrate.NewMigrator(db, kvmigrations.Migrations)
}

// Migrate creates the migration tables if needed and applies pending
// migrations.
func Migrate(ctx context.Context, db *bun.DB) error {
	migrator := NewMigrator(db)
	if err := migrator.Init(ctx); err != nil {
		return fmt.Errorf("failed to init migrations: %w", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
