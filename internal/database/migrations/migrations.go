package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

//nolint:gochecknoglobals // migrations are global
var migrations = migrate.NewMigrations()

// Migrate applies every registered migration that has not run yet.
func Migrate(ctx context.Context, db *bun.DB) error {
	// a failed migration must stay unapplied so a restarted recorder retries it
	migrator := migrate.NewMigrator(db, migrations, migrate.WithMarkAppliedOnSuccess(true))

	err := migrator.Init(ctx)
	if err != nil {
		return fmt.Errorf("failed to init migrations: %w", err)
	}

	if err = migrator.Lock(ctx); err != nil {
		return fmt.Errorf("failed to lock migrations: %w", err)
	}
	defer migrator.Unlock(ctx) //nolint:errcheck // nothing we can really do if this fails

	_, err = migrator.Migrate(ctx)
	return err
}
