package event

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	eventservice "github.com/raynzz/eventdesk/app/modules/event/application"
	eventhandlers "github.com/raynzz/eventdesk/app/modules/event/infrastructure/handlers"
	eventdb "github.com/raynzz/eventdesk/app/modules/event/infrastructure/repositories"
	eventrouter "github.com/raynzz/eventdesk/app/modules/event/infrastructure/router"
	eventtime "github.com/raynzz/eventdesk/app/modules/event/time_utils"
	"github.com/raynzz/eventdesk/pkg/directus"
	"github.com/raynzz/eventdesk/pkg/eventbus"
	"github.com/raynzz/eventdesk/pkg/observability"
)

// Module represents the event module.
type Module struct {
	service eventservice.Service
}

// NewModule creates the event module and registers its routes on httpRouter
// behind authenticated. dates resolves the date strings of event bodies.
func NewModule(
	ctx context.Context,
	obs observability.Observability,
	client *directus.Client,
	providers eventservice.ProviderLookup,
	requirements eventservice.RequirementLookup,
	dates eventtime.Parser,
	publisher eventbus.Publisher,
	httpRouter chi.Router,
	authenticated func(http.Handler) http.Handler,
) (*Module, error) {
	logger := obs.Logger
	logger.InfoContext(ctx, "Initializing event module")

	service := eventservice.NewEventService(
		eventdb.NewRepository(client),
		providers,
		requirements,
		dates,
		publisher,
		logger,
		obs.OperationMetrics(),
		obs.Tracer,
	)

	if httpRouter != nil {
		handlers := eventhandlers.NewEventHandlers(service, logger)
		eventrouter.NewRouter(handlers, authenticated).Configure(httpRouter)
	}

	return &Module{service: service}, nil
}

// GetService returns the event service for use by other modules.
func (m *Module) GetService() eventservice.Service {
	return m.service
}
