package migrationmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating migration_runs table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS migration_runs (
					id UUID PRIMARY KEY,
					dry_run BOOLEAN NOT NULL DEFAULT FALSE,
					include_events BOOLEAN NOT NULL DEFAULT FALSE,
					started_at TIMESTAMPTZ NOT NULL,
					finished_at TIMESTAMPTZ NOT NULL,
					created INTEGER NOT NULL DEFAULT 0,
					failed INTEGER NOT NULL DEFAULT 0,
					report JSONB NOT NULL
				);
				CREATE INDEX IF NOT EXISTS idx_migration_runs_started_at ON migration_runs(started_at DESC);
			`); err != nil {
				return fmt.Errorf("failed to create migration_runs table: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping migration_runs table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS migration_runs;`); err != nil {
				return fmt.Errorf("failed to drop migration_runs table: %w", err)
			}
			return nil
		})
	})
}
