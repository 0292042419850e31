package dashboard

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	dashboardservice "github.com/raynzz/eventdesk/app/modules/dashboard/application"
	dashboardhandlers "github.com/raynzz/eventdesk/app/modules/dashboard/infrastructure/handlers"
	dashboarddb "github.com/raynzz/eventdesk/app/modules/dashboard/infrastructure/repositories"
	dashboardrouter "github.com/raynzz/eventdesk/app/modules/dashboard/infrastructure/router"
	"github.com/raynzz/eventdesk/pkg/directus"
	"github.com/raynzz/eventdesk/pkg/observability"
)

// Module represents the dashboard module.
type Module struct {
	service dashboardservice.Service
}

// NewModule creates the dashboard module and registers its routes on
// httpRouter behind authenticated.
func NewModule(
	ctx context.Context,
	obs observability.Observability,
	client *directus.Client,
	httpRouter chi.Router,
	authenticated func(http.Handler) http.Handler,
) (*Module, error) {
	logger := obs.Logger
	logger.InfoContext(ctx, "Initializing dashboard module")

	service := dashboardservice.NewDashboardService(
		dashboarddb.NewRepository(client),
		logger,
		obs.OperationMetrics(),
		obs.Tracer,
	)

	if httpRouter != nil {
		handlers := dashboardhandlers.NewDashboardHandlers(service, logger)
		dashboardrouter.NewRouter(handlers, authenticated).Configure(httpRouter)
	}

	return &Module{service: service}, nil
}

// GetService returns the dashboard service, also used by the export command.
func (m *Module) GetService() dashboardservice.Service {
	return m.service
}
