// Package bundb opens the optional Postgres store used for sessions and
// migration history, and exposes the per-module bun migrators.
package bundb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	authmigrations "github.com/raynzz/eventdesk/app/modules/auth/infrastructure/repositories/migrations"
	migrationmigrations "github.com/raynzz/eventdesk/app/modules/migration/infrastructure/repositories/migrations"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
)

// Open connects to Postgres through pgdriver and verifies the connection.
func Open(ctx context.Context, dsn string) (*bun.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres dsn is empty")
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(dsn),
		pgdriver.WithTimeout(10*time.Second),
	))
	db := bun.NewDB(sqldb, pgdialect.New())

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// Migrators returns one bun migrator per module owning tables. Each module
// keeps its own bookkeeping tables so groups roll back independently.
func Migrators(db *bun.DB) map[string]*migrate.Migrator {
	return map[string]*migrate.Migrator{
		"auth": migrate.NewMigrator(db, authmigrations.Migrations,
			migrate.WithTableName("bun_migrations_auth"),
			migrate.WithLocksTableName("bun_migration_locks_auth"),
		),
		"migration": migrate.NewMigrator(db, migrationmigrations.Migrations,
			migrate.WithTableName("bun_migrations_migration"),
			migrate.WithLocksTableName("bun_migration_locks_migration"),
		),
	}
}

// MigrateAll initializes and applies every module's migrations.
func MigrateAll(ctx context.Context, db *bun.DB) error {
	for name, m := range Migrators(db) {
		if err := m.Init(ctx); err != nil {
			return fmt.Errorf("init %s migrations: %w", name, err)
		}
		if _, err := m.Migrate(ctx); err != nil {
			return fmt.Errorf("apply %s migrations: %w", name, err)
		}
	}
	return nil
}
