package authdomain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	// SessionCookie holds the signed session token.
	SessionCookie = "directus_session"
	// AccessTokenCookie holds the Directus access token of the session.
	AccessTokenCookie = "directus_access_token"
	// SessionExtension is how far login and refresh push the session expiry.
	SessionExtension = 24 * time.Hour
	// AccessTokenSkew refreshes the Directus token slightly before it expires.
	AccessTokenSkew = 30 * time.Second
)

// Claims are the contents of a session token.
type Claims struct {
	SessionID uuid.UUID
	UserID    string
	Email     string
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// Principal is the authenticated caller of a request.
type Principal struct {
	SessionID   uuid.UUID `json:"session_id"`
	UserID      string    `json:"user_id"`
	Email       string    `json:"email"`
	AccessToken string    `json:"-"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type principalKey struct{}

// WithPrincipal stores the caller on the context.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the caller stored by WithPrincipal.
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok && p != nil
}
