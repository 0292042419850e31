package authjwt

import (
	authdomain "github.com/raynzz/eventdesk/app/modules/auth/domain"
)

// Provider defines the interface for session token operations.
type Provider interface {
	// GenerateToken signs a session token that expires at claims.ExpiresAt.
	GenerateToken(claims *authdomain.Claims) (string, error)

	// ValidateToken validates a session token and returns its claims.
	ValidateToken(tokenString string) (*authdomain.Claims, error)
}
