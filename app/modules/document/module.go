package document

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	documentservice "github.com/raynzz/eventdesk/app/modules/document/application"
	documenthandlers "github.com/raynzz/eventdesk/app/modules/document/infrastructure/handlers"
	documentdb "github.com/raynzz/eventdesk/app/modules/document/infrastructure/repositories"
	documentrouter "github.com/raynzz/eventdesk/app/modules/document/infrastructure/router"
	"github.com/raynzz/eventdesk/pkg/directus"
	"github.com/raynzz/eventdesk/pkg/eventbus"
	"github.com/raynzz/eventdesk/pkg/observability"
)

// Module represents the document module.
type Module struct {
	service documentservice.Service
}

// NewModule creates the document module and registers its routes on
// httpRouter behind authenticated.
func NewModule(
	ctx context.Context,
	obs observability.Observability,
	client *directus.Client,
	providers documentservice.ProviderLookup,
	publisher eventbus.Publisher,
	httpRouter chi.Router,
	authenticated func(http.Handler) http.Handler,
) (*Module, error) {
	logger := obs.Logger
	logger.InfoContext(ctx, "Initializing document module")

	service := documentservice.NewDocumentService(
		documentdb.NewRepository(client),
		providers,
		publisher,
		logger,
		obs.OperationMetrics(),
		obs.Tracer,
	)

	if httpRouter != nil {
		handlers := documenthandlers.NewDocumentHandlers(service, logger)
		documentrouter.NewRouter(handlers, authenticated).Configure(httpRouter)
	}

	return &Module{service: service}, nil
}

// GetService returns the document service for use by other modules.
func (m *Module) GetService() documentservice.Service {
	return m.service
}
