package authhandlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	authservice "github.com/raynzz/eventdesk/app/modules/auth/application"
	authdomain "github.com/raynzz/eventdesk/app/modules/auth/domain"
	"github.com/raynzz/eventdesk/pkg/directus"
	"github.com/raynzz/eventdesk/pkg/httpx"
	"github.com/raynzz/eventdesk/pkg/observability/attr"
	"go.opentelemetry.io/otel/trace"
)

// Handlers is the HTTP surface of the auth module.
type Handlers interface {
	HandleLogin(w http.ResponseWriter, r *http.Request)
	HandleRefresh(w http.ResponseWriter, r *http.Request)
	HandleLogout(w http.ResponseWriter, r *http.Request)
	HandleMe(w http.ResponseWriter, r *http.Request)
}

// CookieSettings controls how the session cookies are written.
type CookieSettings struct {
	SessionName string
	Secure      bool
}

func (c CookieSettings) sessionName() string {
	if c.SessionName == "" {
		return authdomain.SessionCookie
	}
	return c.SessionName
}

// Set writes the session and access token cookies.
func (c CookieSettings) Set(w http.ResponseWriter, res *authservice.LoginResult) {
	http.SetCookie(w, c.cookie(c.sessionName(), res.SessionToken, res.ExpiresAt))
	http.SetCookie(w, c.cookie(authdomain.AccessTokenCookie, res.AccessToken, res.ExpiresAt))
}

// Clear expires both cookies on the client.
func (c CookieSettings) Clear(w http.ResponseWriter) {
	for _, name := range []string{c.sessionName(), authdomain.AccessTokenCookie} {
		ck := c.cookie(name, "", time.Unix(0, 0))
		ck.MaxAge = -1
		http.SetCookie(w, ck)
	}
}

func (c CookieSettings) cookie(name, value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  expires,
	}
}

// SessionToken reads the session token from the cookie, falling back to a
// bearer Authorization header.
func (c CookieSettings) SessionToken(r *http.Request) string {
	if ck, err := r.Cookie(c.sessionName()); err == nil && ck.Value != "" {
		return ck.Value
	}
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// AuthHandlers implements Handlers.
type AuthHandlers struct {
	service authservice.Service
	cookies CookieSettings
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewAuthHandlers creates a new AuthHandlers instance.
func NewAuthHandlers(
	service authservice.Service,
	cookies CookieSettings,
	logger *slog.Logger,
	tracer trace.Tracer,
) Handlers {
	return &AuthHandlers{
		service: service,
		cookies: cookies,
		logger:  logger,
		tracer:  tracer,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	SessionToken    string         `json:"session_token,omitempty"`
	ExpiresAt       time.Time      `json:"expires_at"`
	AccessExpiresAt time.Time      `json:"access_expires_at,omitzero"`
	User            *directus.User `json:"user,omitempty"`
}

func (h *AuthHandlers) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "AuthHandlers.HandleLogin")
	defer span.End()

	var req loginRequest
	if err := httpx.Decode(w, r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.service.Login(ctx, strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		h.fail(w, r, "Login failed", err)
		return
	}

	h.cookies.Set(w, res)
	httpx.WriteJSON(w, http.StatusOK, sessionResponse{
		SessionToken:    res.SessionToken,
		ExpiresAt:       res.ExpiresAt,
		AccessExpiresAt: res.AccessExpiresAt,
		User:            res.User,
	})
}

func (h *AuthHandlers) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "AuthHandlers.HandleRefresh")
	defer span.End()

	res, err := h.service.Refresh(ctx, h.cookies.SessionToken(r))
	if err != nil {
		if statusFor(err) == http.StatusUnauthorized {
			h.cookies.Clear(w)
		}
		h.fail(w, r, "Session refresh failed", err)
		return
	}

	h.cookies.Set(w, res)
	httpx.WriteJSON(w, http.StatusOK, sessionResponse{
		SessionToken:    res.SessionToken,
		ExpiresAt:       res.ExpiresAt,
		AccessExpiresAt: res.AccessExpiresAt,
	})
}

func (h *AuthHandlers) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if token := h.cookies.SessionToken(r); token != "" {
		if err := h.service.Logout(ctx, token); err != nil {
			h.logger.WarnContext(ctx, "Logout failed", attr.ExtractCorrelationID(ctx), attr.Error(err))
		}
	}

	h.cookies.Clear(w)
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandlers) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal, ok := authdomain.PrincipalFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, authservice.ErrMissingToken.Error())
		return
	}

	user, err := h.service.CurrentUser(ctx, principal)
	if err != nil {
		h.fail(w, r, "Current user lookup failed", err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, sessionResponse{
		ExpiresAt: principal.ExpiresAt,
		User:      user,
	})
}

func (h *AuthHandlers) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	ctx := r.Context()
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, msg, attr.ExtractCorrelationID(ctx), attr.Error(err))
		httpx.WriteError(w, status, "authentication service unavailable")
		return
	}
	h.logger.InfoContext(ctx, msg, attr.ExtractCorrelationID(ctx), attr.Error(err))
	httpx.WriteFailure(w, status, err, "authentication service unavailable")
}

// statusFor maps auth errors to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, authservice.ErrMissingCredentials):
		return http.StatusBadRequest
	case errors.Is(err, authservice.ErrMissingToken),
		errors.Is(err, authservice.ErrInvalidCredentials),
		errors.Is(err, authservice.ErrInvalidSession),
		errors.Is(err, authservice.ErrSessionExpired):
		return http.StatusUnauthorized
	case errors.Is(err, authservice.ErrForbidden):
		return http.StatusForbidden
	}
	return httpx.UpstreamStatus(err)
}
