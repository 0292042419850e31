package migrationdb

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	migrationdomain "github.com/raynzz/eventdesk/app/modules/migration/domain"
	"github.com/raynzz/eventdesk/pkg/directus"
	"github.com/uptrace/bun"
)

// Collections reads legacy collections and writes the new ones.
type Collections interface {
	// ReadAll returns every record of collection, undecoded.
	ReadAll(ctx context.Context, collection string) ([]json.RawMessage, error)

	// Create stores one record and returns its new primary key.
	Create(ctx context.Context, collection string, record any) (directus.ID, error)
}

// RunRepository keeps the history of migration runs.
type RunRepository interface {
	SaveRun(ctx context.Context, db bun.IDB, report *migrationdomain.Report) error
	ListRuns(ctx context.Context, db bun.IDB, limit int) ([]migrationdomain.RunSummary, error)
	GetRun(ctx context.Context, db bun.IDB, id uuid.UUID) (*migrationdomain.Report, error)
}
