package authservice

import (
	"context"
	"time"

	authdomain "github.com/raynzz/eventdesk/app/modules/auth/domain"
	"github.com/raynzz/eventdesk/pkg/directus"
)

// Service defines the session service interface.
type Service interface {
	// Login authenticates against Directus and opens a session.
	Login(ctx context.Context, email, password string) (*LoginResult, error)

	// Refresh rotates the Directus tokens and extends the session by the fixed extension.
	Refresh(ctx context.Context, sessionToken string) (*LoginResult, error)

	// Logout ends the session. Unknown or invalid tokens are ignored.
	Logout(ctx context.Context, sessionToken string) error

	// Authenticate resolves a session token to the calling principal.
	Authenticate(ctx context.Context, sessionToken string) (*authdomain.Principal, error)

	// CurrentUser returns the Directus user of the principal.
	CurrentUser(ctx context.Context, principal *authdomain.Principal) (*directus.User, error)

	// RequireAdmin fails with ErrForbidden unless the principal's role has admin access.
	RequireAdmin(ctx context.Context, principal *authdomain.Principal) error

	// PurgeExpired deletes expired sessions.
	PurgeExpired(ctx context.Context) (int, error)
}

// DirectusAuth is the subset of the CMS client the service needs.
type DirectusAuth interface {
	Login(ctx context.Context, email, password string) (*directus.AuthTokens, error)
	Refresh(ctx context.Context, refreshToken string) (*directus.AuthTokens, error)
	Logout(ctx context.Context, refreshToken string) error
	CurrentUser(ctx context.Context) (*directus.User, error)
}

// LoginResult is returned by Login and Refresh.
type LoginResult struct {
	SessionToken    string         `json:"session_token"`
	AccessToken     string         `json:"access_token"`
	ExpiresAt       time.Time      `json:"expires_at"`
	AccessExpiresAt time.Time      `json:"access_expires_at"`
	User            *directus.User `json:"user,omitempty"`
}

// Config holds the service settings.
type Config struct {
	SessionTTL time.Duration
	Issuer     string
}
