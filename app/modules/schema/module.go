package schema

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	schemaservice "github.com/raynzz/eventdesk/app/modules/schema/application"
	schemahandlers "github.com/raynzz/eventdesk/app/modules/schema/infrastructure/handlers"
	schemadb "github.com/raynzz/eventdesk/app/modules/schema/infrastructure/repositories"
	schemarouter "github.com/raynzz/eventdesk/app/modules/schema/infrastructure/router"
	"github.com/raynzz/eventdesk/pkg/directus"
	"github.com/raynzz/eventdesk/pkg/eventbus"
	"github.com/raynzz/eventdesk/pkg/observability"
)

// Module represents the schema module.
type Module struct {
	service schemaservice.Service
}

// NewModule creates the schema module. adminClient must carry the admin
// token; routes are registered on httpRouter behind admin when it is set.
func NewModule(
	ctx context.Context,
	obs observability.Observability,
	adminClient *directus.Client,
	publisher eventbus.Publisher,
	httpRouter chi.Router,
	admin func(http.Handler) http.Handler,
) (*Module, error) {
	logger := obs.Logger
	logger.InfoContext(ctx, "Initializing schema module")

	service := schemaservice.NewSchemaService(
		schemadb.NewRepository(adminClient),
		publisher,
		logger,
		obs.OperationMetrics(),
		obs.Tracer,
	)

	if httpRouter != nil {
		handlers := schemahandlers.NewSchemaHandlers(service, logger)
		schemarouter.NewRouter(handlers, admin).Configure(httpRouter)
	}

	return &Module{service: service}, nil
}

// GetService returns the schema service.
func (m *Module) GetService() schemaservice.Service {
	return m.service
}
