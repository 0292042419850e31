package activity

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	activityservice "github.com/raynzz/eventdesk/app/modules/activity/application"
	activityhandlers "github.com/raynzz/eventdesk/app/modules/activity/infrastructure/handlers"
	activitydb "github.com/raynzz/eventdesk/app/modules/activity/infrastructure/repositories"
	activityrouter "github.com/raynzz/eventdesk/app/modules/activity/infrastructure/router"
	"github.com/raynzz/eventdesk/pkg/events"
	"github.com/raynzz/eventdesk/pkg/observability"
	"github.com/raynzz/eventdesk/pkg/observability/attr"
)

// Module represents the activity module.
type Module struct {
	service        activityservice.Service
	activityRouter *activityrouter.ActivityRouter
	logger         *slog.Logger

	// stopped is cancelled by Close, which may run before Run starts.
	stopped context.Context
	stop    context.CancelFunc
}

// NewModule creates the activity module. Its message router subscribes to
// every domain event topic on subscriber and starts with Run.
func NewModule(
	ctx context.Context,
	obs observability.Observability,
	subscriber message.Subscriber,
	capacity int,
	httpRouter chi.Router,
	authenticated func(http.Handler) http.Handler,
) (*Module, error) {
	logger := obs.Logger
	logger.InfoContext(ctx, "Initializing activity module")

	service := activityservice.NewActivityService(
		activitydb.NewRing(capacity),
		logger,
		obs.OperationMetrics(),
		obs.Tracer,
	)
	handlers := activityhandlers.NewActivityHandlers(service, logger)

	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: 10 * time.Second}, watermill.NewSlogLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create activity router: %w", err)
	}
	activityRouter := activityrouter.NewActivityRouter(logger, router, subscriber, obs.Registry)
	if err := activityRouter.Configure(ctx, handlers, events.AllTopics); err != nil {
		return nil, fmt.Errorf("failed to configure activity router: %w", err)
	}

	if httpRouter != nil {
		activityrouter.NewHTTPRouter(handlers, authenticated).Configure(httpRouter)
	}

	stopped, stop := context.WithCancel(context.Background())
	return &Module{
		service:        service,
		activityRouter: activityRouter,
		logger:         logger,
		stopped:        stopped,
		stop:           stop,
	}, nil
}

// Run consumes domain events until the context is cancelled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	m.logger.InfoContext(ctx, "Starting activity module")

	if wg != nil {
		defer wg.Done()
	}
	if m.stopped.Err() != nil {
		m.logger.InfoContext(ctx, "Activity module closed before start")
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	unwatch := context.AfterFunc(m.stopped, cancel)
	defer unwatch()

	if err := m.activityRouter.Router.Run(ctx); err != nil {
		m.logger.ErrorContext(ctx, "Activity router stopped", attr.Error(err))
		return
	}
	m.logger.InfoContext(ctx, "Activity module goroutine stopped")
}

// Running is closed once every subscription is in place.
func (m *Module) Running() chan struct{} {
	return m.activityRouter.Router.Running()
}

// Close stops the activity module.
func (m *Module) Close() error {
	m.logger.Info("Stopping activity module")
	m.stop()
	return m.activityRouter.Close()
}

// GetService returns the activity service.
func (m *Module) GetService() activityservice.Service {
	return m.service
}
