package migrationdb

import (
	"time"

	"github.com/google/uuid"
	migrationdomain "github.com/raynzz/eventdesk/app/modules/migration/domain"
	"github.com/uptrace/bun"
)

// Run is a stored migration report.
type Run struct {
	bun.BaseModel `bun:"table:migration_runs,alias:mr"`

	ID            uuid.UUID               `bun:"id,pk,type:uuid"`
	DryRun        bool                    `bun:"dry_run,notnull"`
	IncludeEvents bool                    `bun:"include_events,notnull"`
	StartedAt     time.Time               `bun:"started_at,notnull"`
	FinishedAt    time.Time               `bun:"finished_at,notnull"`
	Created       int                     `bun:"created,notnull"`
	Failed        int                     `bun:"failed,notnull"`
	Report        *migrationdomain.Report `bun:"report,type:jsonb,notnull"`
}

func newRun(report *migrationdomain.Report) *Run {
	created, failed := report.Totals()
	return &Run{
		ID:            report.RunID,
		DryRun:        report.DryRun,
		IncludeEvents: report.IncludeEvents,
		StartedAt:     report.StartedAt,
		FinishedAt:    report.FinishedAt,
		Created:       created,
		Failed:        failed,
		Report:        report,
	}
}

func (r *Run) summary() migrationdomain.RunSummary {
	return migrationdomain.RunSummary{
		RunID:         r.ID,
		DryRun:        r.DryRun,
		IncludeEvents: r.IncludeEvents,
		StartedAt:     r.StartedAt,
		FinishedAt:    r.FinishedAt,
		Created:       r.Created,
		Failed:        r.Failed,
	}
}
