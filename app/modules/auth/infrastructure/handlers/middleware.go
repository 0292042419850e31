package authhandlers

import (
	"log/slog"
	"net/http"

	authservice "github.com/raynzz/eventdesk/app/modules/auth/application"
	authdomain "github.com/raynzz/eventdesk/app/modules/auth/domain"
	"github.com/raynzz/eventdesk/pkg/directus"
	"github.com/raynzz/eventdesk/pkg/httpx"
	"github.com/raynzz/eventdesk/pkg/observability/attr"
)

// AuthMiddleware resolves the session of the request. On failure the session
// cookies are cleared and the request is answered with 401. On success the
// principal and its Directus access token are stored on the request context.
func AuthMiddleware(service authservice.Service, cookies CookieSettings, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			principal, err := service.Authenticate(ctx, cookies.SessionToken(r))
			if err != nil {
				status := statusFor(err)
				if status == http.StatusUnauthorized {
					cookies.Clear(w)
					httpx.WriteError(w, status, err.Error())
					return
				}
				logger.ErrorContext(ctx, "Session lookup failed", attr.ExtractCorrelationID(ctx), attr.Error(err))
				httpx.WriteError(w, status, "authentication service unavailable")
				return
			}

			ctx = authdomain.WithPrincipal(ctx, principal)
			ctx = directus.WithAccessToken(ctx, principal.AccessToken)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects callers whose Directus role lacks admin access. It must
// run after AuthMiddleware.
func RequireAdmin(service authservice.Service, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			principal, ok := authdomain.PrincipalFromContext(ctx)
			if !ok {
				httpx.WriteError(w, http.StatusUnauthorized, authservice.ErrMissingToken.Error())
				return
			}
			if err := service.RequireAdmin(ctx, principal); err != nil {
				status := statusFor(err)
				if status >= http.StatusInternalServerError {
					logger.ErrorContext(ctx, "Admin check failed", attr.ExtractCorrelationID(ctx), attr.Error(err))
				}
				httpx.WriteError(w, status, err.Error())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
