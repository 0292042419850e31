package authrouter

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	authservice "github.com/raynzz/eventdesk/app/modules/auth/application"
	authhandlers "github.com/raynzz/eventdesk/app/modules/auth/infrastructure/handlers"
	"golang.org/x/time/rate"
)

const (
	// BasePath is where the auth routes are mounted.
	BasePath = "/api/auth"

	// LoginRate and LoginBurst bound login and refresh attempts per IP.
	LoginRate  rate.Limit = 5
	LoginBurst            = 10
)

// Router mounts the auth HTTP routes and hands out the session middlewares
// other modules protect their routes with.
type Router struct {
	handlers authhandlers.Handlers
	service  authservice.Service
	cookies  authhandlers.CookieSettings
	limiter  *authhandlers.IPRateLimiter
	logger   *slog.Logger
}

// NewRouter creates a new auth router.
func NewRouter(
	handlers authhandlers.Handlers,
	service authservice.Service,
	cookies authhandlers.CookieSettings,
	logger *slog.Logger,
) *Router {
	return &Router{
		handlers: handlers,
		service:  service,
		cookies:  cookies,
		limiter:  authhandlers.NewIPRateLimiter(LoginRate, LoginBurst),
		logger:   logger,
	}
}

// Configure registers the auth routes on mux.
func (r *Router) Configure(mux chi.Router) {
	mux.Route(BasePath, func(rt chi.Router) {
		rt.Group(func(rt chi.Router) {
			rt.Use(authhandlers.RateLimitMiddleware(r.limiter))
			rt.Post("/login", r.handlers.HandleLogin)
			rt.Post("/refresh", r.handlers.HandleRefresh)
		})
		rt.Post("/logout", r.handlers.HandleLogout)

		rt.Group(func(rt chi.Router) {
			rt.Use(r.Authenticated)
			rt.Get("/me", r.handlers.HandleMe)
		})
	})
}

// Authenticated requires a live session.
func (r *Router) Authenticated(next http.Handler) http.Handler {
	return authhandlers.AuthMiddleware(r.service, r.cookies, r.logger)(next)
}

// AdminOnly requires a live session whose Directus role has admin access.
func (r *Router) AdminOnly(next http.Handler) http.Handler {
	return r.Authenticated(authhandlers.RequireAdmin(r.service, r.logger)(next))
}
