package provider

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	providerservice "github.com/raynzz/eventdesk/app/modules/provider/application"
	providerhandlers "github.com/raynzz/eventdesk/app/modules/provider/infrastructure/handlers"
	providerdb "github.com/raynzz/eventdesk/app/modules/provider/infrastructure/repositories"
	providerrouter "github.com/raynzz/eventdesk/app/modules/provider/infrastructure/router"
	"github.com/raynzz/eventdesk/pkg/directus"
	"github.com/raynzz/eventdesk/pkg/eventbus"
	"github.com/raynzz/eventdesk/pkg/observability"
)

// Module represents the provider module.
type Module struct {
	service providerservice.Service
}

// NewModule creates the provider module and registers its routes on
// httpRouter behind authenticated.
func NewModule(
	ctx context.Context,
	obs observability.Observability,
	client *directus.Client,
	publisher eventbus.Publisher,
	httpRouter chi.Router,
	authenticated func(http.Handler) http.Handler,
) (*Module, error) {
	logger := obs.Logger
	logger.InfoContext(ctx, "Initializing provider module")

	service := providerservice.NewProviderService(
		providerdb.NewRepository(client),
		publisher,
		logger,
		obs.OperationMetrics(),
		obs.Tracer,
	)

	if httpRouter != nil {
		handlers := providerhandlers.NewProviderHandlers(service, logger)
		providerrouter.NewRouter(handlers, authenticated).Configure(httpRouter)
	}

	return &Module{service: service}, nil
}

// GetService returns the provider service for use by other modules.
func (m *Module) GetService() providerservice.Service {
	return m.service
}
