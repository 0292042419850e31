package activityrouter

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	activityhandlers "github.com/raynzz/eventdesk/app/modules/activity/infrastructure/handlers"
	"github.com/raynzz/eventdesk/pkg/observability/attr"
)

// ActivityPath serves the feed.
const ActivityPath = "/api/activity"

// ActivityRouter subscribes the feed to domain event topics.
type ActivityRouter struct {
	logger         *slog.Logger
	Router         *message.Router
	subscriber     message.Subscriber
	metricsBuilder *metrics.PrometheusMetricsBuilder
}

// NewActivityRouter creates a message router wrapper. A nil registry skips
// the watermill Prometheus middleware.
func NewActivityRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber message.Subscriber,
	registry *prometheus.Registry,
) *ActivityRouter {
	var metricsBuilder *metrics.PrometheusMetricsBuilder
	if registry != nil {
		builder := metrics.NewPrometheusMetricsBuilder(registry, "eventdesk", "activity")
		metricsBuilder = &builder
	}
	return &ActivityRouter{
		logger:         logger,
		Router:         router,
		subscriber:     subscriber,
		metricsBuilder: metricsBuilder,
	}
}

// Configure adds middleware and one handler per topic.
func (r *ActivityRouter) Configure(ctx context.Context, handlers activityhandlers.Handlers, topics []string) error {
	if r.metricsBuilder != nil {
		r.metricsBuilder.AddPrometheusRouterMetrics(r.Router)
	}

	r.Router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Recoverer,
	)

	if err := r.RegisterHandlers(ctx, handlers, topics); err != nil {
		return fmt.Errorf("failed to register handlers: %w", err)
	}
	return nil
}

// RegisterHandlers subscribes HandleDomainEvent to every topic.
func (r *ActivityRouter) RegisterHandlers(ctx context.Context, handlers activityhandlers.Handlers, topics []string) error {
	for _, topic := range topics {
		handlerName := fmt.Sprintf("activity.%s", topic)
		r.Router.AddHandler(
			handlerName,
			topic,
			r.subscriber,
			"",
			nil,
			func(msg *message.Message) ([]*message.Message, error) {
				if _, err := handlers.HandleDomainEvent(msg); err != nil {
					r.logger.ErrorContext(ctx, "Error processing message",
						attr.String("handler", handlerName),
						attr.String("message_id", msg.UUID),
						attr.Error(err),
					)
					return nil, err
				}
				return nil, nil
			},
		)
	}
	return nil
}

func (r *ActivityRouter) Close() error {
	return r.Router.Close()
}

// HTTPRouter mounts the feed endpoint.
type HTTPRouter struct {
	handlers      activityhandlers.Handlers
	authenticated func(http.Handler) http.Handler
}

// NewHTTPRouter creates the feed's HTTP router.
func NewHTTPRouter(handlers activityhandlers.Handlers, authenticated func(http.Handler) http.Handler) *HTTPRouter {
	return &HTTPRouter{handlers: handlers, authenticated: authenticated}
}

// Configure registers the feed route on mux.
func (r *HTTPRouter) Configure(mux chi.Router) {
	mux.Group(func(rt chi.Router) {
		if r.authenticated != nil {
			rt.Use(r.authenticated)
		}
		rt.Get(ActivityPath, r.handlers.HandleRecent)
	})
}
