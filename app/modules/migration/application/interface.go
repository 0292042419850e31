package migrationservice

import (
	"context"

	"github.com/google/uuid"
	migrationdomain "github.com/raynzz/eventdesk/app/modules/migration/domain"
)

// Options controls a migration run.
type Options struct {
	// IncludeEvents also migrates eventos, eventos_requisitos and
	// eventos_participantes.
	IncludeEvents bool `json:"include_events"`
	// DryRun reads and maps every record without creating anything.
	DryRun bool `json:"dry_run"`
}

// Service copies the legacy collections into the new ones.
type Service interface {
	Run(ctx context.Context, opts Options) (*migrationdomain.Report, error)
	ListRuns(ctx context.Context, limit int) ([]migrationdomain.RunSummary, error)
	GetRun(ctx context.Context, id uuid.UUID) (*migrationdomain.Report, error)
}
