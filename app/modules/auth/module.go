package auth

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	authservice "github.com/raynzz/eventdesk/app/modules/auth/application"
	authhandlers "github.com/raynzz/eventdesk/app/modules/auth/infrastructure/handlers"
	authjwt "github.com/raynzz/eventdesk/app/modules/auth/infrastructure/jwt"
	authdb "github.com/raynzz/eventdesk/app/modules/auth/infrastructure/repositories"
	authrouter "github.com/raynzz/eventdesk/app/modules/auth/infrastructure/router"
	"github.com/raynzz/eventdesk/config"
	"github.com/raynzz/eventdesk/pkg/observability"
	"github.com/raynzz/eventdesk/pkg/observability/attr"
	"github.com/uptrace/bun"
)

// PurgeInterval is how often expired sessions are deleted.
const PurgeInterval = 15 * time.Minute

// Issuer is the iss claim of session tokens.
const Issuer = "eventdesk"

// Module represents the auth module.
type Module struct {
	service authservice.Service
	router  *authrouter.Router
	logger  *slog.Logger

	// stopped is cancelled by Close, which may run before Run starts.
	stopped context.Context
	stop    context.CancelFunc
}

// NewModule creates the auth module and registers its routes on httpRouter.
// Sessions are stored in Postgres when db is set, in memory otherwise.
func NewModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	directusClient authservice.DirectusAuth,
	httpRouter chi.Router,
	db *bun.DB,
) (*Module, error) {
	logger := obs.Logger
	logger.InfoContext(ctx, "Initializing auth module")

	var repo authdb.Repository
	if db != nil {
		repo = authdb.NewRepository(db)
	} else {
		logger.WarnContext(ctx, "No database configured, sessions are kept in memory")
		repo = authdb.NewMemoryRepository()
	}

	service := authservice.NewService(
		directusClient,
		repo,
		authjwt.NewProvider(cfg.Session.Secret, Issuer),
		authservice.Config{SessionTTL: cfg.Session.TTL, Issuer: Issuer},
		logger,
		obs.OperationMetrics(),
		obs.Tracer,
		db,
	)

	cookies := authhandlers.CookieSettings{
		SessionName: cfg.Session.CookieName,
		Secure:      cfg.HTTP.SecureCookies,
	}
	handlers := authhandlers.NewAuthHandlers(service, cookies, logger, obs.Tracer)
	router := authrouter.NewRouter(handlers, service, cookies, logger)

	if httpRouter != nil {
		router.Configure(httpRouter)
	}

	stopped, stop := context.WithCancel(context.Background())
	return &Module{
		service: service,
		router:  router,
		logger:  logger,
		stopped: stopped,
		stop:    stop,
	}, nil
}

// Run purges expired sessions until the context is cancelled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	m.logger.InfoContext(ctx, "Starting auth module")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	unwatch := context.AfterFunc(m.stopped, cancel)
	defer unwatch()

	if wg != nil {
		defer wg.Done()
	}

	ticker := time.NewTicker(PurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.InfoContext(ctx, "Auth module goroutine stopped")
			return
		case <-ticker.C:
			n, err := m.service.PurgeExpired(ctx)
			if err != nil {
				m.logger.WarnContext(ctx, "Failed to purge expired sessions", attr.Error(err))
				continue
			}
			if n > 0 {
				m.logger.InfoContext(ctx, "Purged expired sessions", attr.Int("count", n))
			}
		}
	}
}

// Close stops the auth module.
func (m *Module) Close() error {
	m.logger.Info("Stopping auth module")
	m.stop()
	return nil
}

// GetService returns the auth service for use by other modules.
func (m *Module) GetService() authservice.Service {
	return m.service
}

// Authenticated is the middleware that requires a live session.
func (m *Module) Authenticated() func(http.Handler) http.Handler {
	return m.router.Authenticated
}

// AdminOnly is the middleware that requires a Directus admin session.
func (m *Module) AdminOnly() func(http.Handler) http.Handler {
	return m.router.AdminOnly
}
