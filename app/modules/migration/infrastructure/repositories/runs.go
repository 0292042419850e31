package migrationdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	migrationdomain "github.com/raynzz/eventdesk/app/modules/migration/domain"
	"github.com/uptrace/bun"
)

// ErrNotFound is returned when a run is not in the history.
var ErrNotFound = errors.New("migration run not found")

// Impl implements RunRepository using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRunRepository creates a Postgres run repository.
func NewRunRepository(db bun.IDB) RunRepository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// SaveRun stores a finished run.
func (r *Impl) SaveRun(ctx context.Context, db bun.IDB, report *migrationdomain.Report) error {
	db = r.resolveDB(db)
	if _, err := db.NewInsert().Model(newRun(report)).Exec(ctx); err != nil {
		return fmt.Errorf("failed to save migration run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs first.
func (r *Impl) ListRuns(ctx context.Context, db bun.IDB, limit int) ([]migrationdomain.RunSummary, error) {
	db = r.resolveDB(db)
	var runs []Run
	err := db.NewSelect().
		Model(&runs).
		Column("id", "dry_run", "include_events", "started_at", "finished_at", "created", "failed").
		Order("started_at DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list migration runs: %w", err)
	}
	out := make([]migrationdomain.RunSummary, 0, len(runs))
	for i := range runs {
		out = append(out, runs[i].summary())
	}
	return out, nil
}

// GetRun returns the full report of a run.
func (r *Impl) GetRun(ctx context.Context, db bun.IDB, id uuid.UUID) (*migrationdomain.Report, error) {
	db = r.resolveDB(db)
	run := new(Run)
	err := db.NewSelect().
		Model(run).
		Where("mr.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get migration run: %w", err)
	}
	return run.Report, nil
}
