package migration

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	migrationservice "github.com/raynzz/eventdesk/app/modules/migration/application"
	migrationhandlers "github.com/raynzz/eventdesk/app/modules/migration/infrastructure/handlers"
	migrationdb "github.com/raynzz/eventdesk/app/modules/migration/infrastructure/repositories"
	migrationrouter "github.com/raynzz/eventdesk/app/modules/migration/infrastructure/router"
	"github.com/raynzz/eventdesk/pkg/directus"
	"github.com/raynzz/eventdesk/pkg/eventbus"
	"github.com/raynzz/eventdesk/pkg/observability"
	"github.com/uptrace/bun"
)

// Module represents the migration module.
type Module struct {
	service migrationservice.Service
}

// NewModule creates the migration module. Run history is stored in Postgres
// when db is set, in memory otherwise.
func NewModule(
	ctx context.Context,
	obs observability.Observability,
	adminClient *directus.Client,
	publisher eventbus.Publisher,
	db *bun.DB,
	httpRouter chi.Router,
	admin func(http.Handler) http.Handler,
) (*Module, error) {
	logger := obs.Logger
	logger.InfoContext(ctx, "Initializing migration module")

	var runs migrationdb.RunRepository
	if db != nil {
		runs = migrationdb.NewRunRepository(db)
	} else {
		logger.WarnContext(ctx, "No database configured, migration history is kept in memory")
		runs = migrationdb.NewMemoryRunRepository()
	}

	service := migrationservice.NewMigrationService(
		migrationdb.NewCollections(adminClient),
		runs,
		publisher,
		logger,
		obs.OperationMetrics(),
		obs.Tracer,
		db,
	)

	if httpRouter != nil {
		handlers := migrationhandlers.NewMigrationHandlers(service, logger)
		migrationrouter.NewRouter(handlers, admin).Configure(httpRouter)
	}

	return &Module{service: service}, nil
}

// GetService returns the migration service.
func (m *Module) GetService() migrationservice.Service {
	return m.service
}
