// Package app wires configuration, the CMS client, the optional local store,
// the event bus and every module into one HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/raynzz/eventdesk/app/modules/activity"
	"github.com/raynzz/eventdesk/app/modules/auth"
	authhandlers "github.com/raynzz/eventdesk/app/modules/auth/infrastructure/handlers"
	"github.com/raynzz/eventdesk/app/modules/dashboard"
	"github.com/raynzz/eventdesk/app/modules/document"
	"github.com/raynzz/eventdesk/app/modules/event"
	eventtime "github.com/raynzz/eventdesk/app/modules/event/time_utils"
	"github.com/raynzz/eventdesk/app/modules/migration"
	"github.com/raynzz/eventdesk/app/modules/provider"
	"github.com/raynzz/eventdesk/app/modules/schema"
	"github.com/raynzz/eventdesk/config"
	"github.com/raynzz/eventdesk/db/bundb"
	"github.com/raynzz/eventdesk/pkg/directus"
	"github.com/raynzz/eventdesk/pkg/eventbus"
	"github.com/raynzz/eventdesk/pkg/httpx"
	"github.com/raynzz/eventdesk/pkg/observability"
	"github.com/raynzz/eventdesk/pkg/observability/attr"
	"github.com/uptrace/bun"
)

// Modules holds every initialized module.
type Modules struct {
	Auth      *auth.Module
	Provider  *provider.Module
	Document  *document.Module
	Event     *event.Module
	Dashboard *dashboard.Module
	Activity  *activity.Module
	Schema    *schema.Module
	Migration *migration.Module
}

// App is the assembled service.
type App struct {
	Config        *config.Config
	Observability observability.Observability
	Directus      *directus.Client
	DB            *bun.DB
	EventBus      *eventbus.Bus
	Router        chi.Router
	Modules       Modules
}

// New builds the service from cfg. Nothing is started until Run.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	obs := NewObservability(cfg)
	logger := obs.Logger
	logger.InfoContext(ctx, "Initializing eventdesk", attr.String("config", cfg.String()))

	client, err := NewDirectusClient(cfg, obs, false)
	if err != nil {
		return nil, err
	}

	var db *bun.DB
	if cfg.Postgres.DSN != "" {
		db, err = bundb.Open(ctx, cfg.Postgres.DSN)
		if err != nil {
			return nil, err
		}
		if err := bundb.MigrateAll(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	bus, err := NewEventBus(cfg, obs)
	if err != nil {
		closeDB(db)
		return nil, err
	}

	a := &App{
		Config:        cfg,
		Observability: obs,
		Directus:      client,
		DB:            db,
		EventBus:      bus,
	}
	a.Router = a.newRouter()

	if err := a.initModules(ctx); err != nil {
		_ = bus.Close()
		closeDB(db)
		return nil, err
	}
	return a, nil
}

func (a *App) newRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		observability.CorrelationMiddleware,
		middleware.Recoverer,
		observability.NewHTTPMetrics(a.Observability.Registry).Middleware,
		observability.RequestLogger(a.Observability.Logger),
		authhandlers.CORSMiddleware(a.Config.HTTP.AllowedOrigins),
	)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]string{
			"status":   "ok",
			"eventbus": a.EventBus.Backend(),
		})
	})
	if a.Config.Observability.MetricsAddress == "" {
		r.Handle("/metrics", a.Observability.MetricsHandler())
	}
	return r
}

func (a *App) initModules(ctx context.Context) error {
	obs := a.Observability

	authModule, err := auth.NewModule(ctx, a.Config, obs, a.Directus, a.Router, a.DB)
	if err != nil {
		return fmt.Errorf("failed to initialize auth module: %w", err)
	}
	authenticated := authModule.Authenticated()
	admin := authModule.AdminOnly()

	providerModule, err := provider.NewModule(ctx, obs, a.Directus, a.EventBus, a.Router, authenticated)
	if err != nil {
		return fmt.Errorf("failed to initialize provider module: %w", err)
	}

	documentModule, err := document.NewModule(ctx, obs, a.Directus, providerModule.GetService(), a.EventBus, a.Router, authenticated)
	if err != nil {
		return fmt.Errorf("failed to initialize document module: %w", err)
	}

	loc, err := a.Config.Location()
	if err != nil {
		return err
	}
	eventModule, err := event.NewModule(ctx, obs, a.Directus,
		providerModule.GetService(),
		documentModule.GetService(),
		eventtime.NewTimeParser(loc, eventtime.SystemClock{}),
		a.EventBus, a.Router, authenticated,
	)
	if err != nil {
		return fmt.Errorf("failed to initialize event module: %w", err)
	}

	dashboardModule, err := dashboard.NewModule(ctx, obs, a.Directus, a.Router, authenticated)
	if err != nil {
		return fmt.Errorf("failed to initialize dashboard module: %w", err)
	}

	activityModule, err := activity.NewModule(ctx, obs, a.EventBus, a.Config.Dashboard.ActivityEntries, a.Router, authenticated)
	if err != nil {
		return fmt.Errorf("failed to initialize activity module: %w", err)
	}

	schemaModule, err := schema.NewModule(ctx, obs, a.Directus, a.EventBus, a.Router, admin)
	if err != nil {
		return fmt.Errorf("failed to initialize schema module: %w", err)
	}

	migrationModule, err := migration.NewModule(ctx, obs, a.Directus, a.EventBus, a.DB, a.Router, admin)
	if err != nil {
		return fmt.Errorf("failed to initialize migration module: %w", err)
	}

	a.Modules = Modules{
		Auth:      authModule,
		Provider:  providerModule,
		Document:  documentModule,
		Event:     eventModule,
		Dashboard: dashboardModule,
		Activity:  activityModule,
		Schema:    schemaModule,
		Migration: migrationModule,
	}
	return nil
}

// NewObservability builds the logger, tracer and registry from cfg.
func NewObservability(cfg *config.Config) observability.Observability {
	return observability.New(observability.Config{
		ServiceName: "eventdesk",
		Environment: cfg.Observability.Environment,
		LogLevel:    cfg.Observability.LogLevel,
		LogFormat:   cfg.Observability.LogFormat,
	})
}

// NewDirectusClient creates the CMS client. Requests made on behalf of a
// session carry the user's token; everything else uses the admin token.
// requireAdmin fails when no admin token is configured.
func NewDirectusClient(cfg *config.Config, obs observability.Observability, requireAdmin bool) (*directus.Client, error) {
	opts := []directus.Option{
		directus.WithTimeout(cfg.Directus.Timeout),
		directus.WithLogger(obs.Logger),
		directus.WithMetrics(observability.NewDirectusMetrics(obs.Registry)),
	}

	token, err := cfg.AdminToken()
	switch {
	case err == nil:
		opts = append(opts, directus.WithStaticToken(token))
	case requireAdmin || !errors.Is(err, config.ErrMissingAdminToken):
		return nil, err
	default:
		obs.Logger.Warn("No Directus admin token configured, admin operations are unavailable")
	}

	client, err := directus.New(cfg.Directus.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create directus client: %w", err)
	}
	return client, nil
}

// NewEventBus connects to NATS when configured and falls back to the
// in-process bus.
func NewEventBus(cfg *config.Config, obs observability.Observability) (*eventbus.Bus, error) {
	if cfg.NATS.URL == "" {
		return eventbus.NewInMemory(obs.Logger), nil
	}
	bus, err := eventbus.NewNATS(eventbus.NATSConfig{
		URL:              cfg.NATS.URL,
		NKeySeed:         cfg.NATS.NKeySeed,
		QueueGroupPrefix: "eventdesk",
		ClientName:       "eventdesk",
	}, obs.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect event bus: %w", err)
	}
	return bus, nil
}

func closeDB(db *bun.DB) {
	if db != nil {
		_ = db.Close()
	}
}

const shutdownTimeout = 15 * time.Second
