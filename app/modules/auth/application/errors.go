package authservice

import "errors"

var (
	// ErrMissingToken is returned when no session token is provided.
	ErrMissingToken = errors.New("missing session token")

	// ErrMissingCredentials is returned when email or password is empty.
	ErrMissingCredentials = errors.New("email and password are required")

	// ErrInvalidCredentials is returned when Directus rejects the login.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidSession is returned when the token is malformed or its session is gone.
	ErrInvalidSession = errors.New("invalid session")

	// ErrSessionExpired is returned when the session is past its expiry or can no
	// longer be refreshed against Directus.
	ErrSessionExpired = errors.New("session has expired")

	// ErrForbidden is returned when the caller lacks the admin role.
	ErrForbidden = errors.New("admin access required")
)

// IsClientError reports errors caused by the caller rather than the system.
func IsClientError(err error) bool {
	return errors.Is(err, ErrMissingToken) ||
		errors.Is(err, ErrMissingCredentials) ||
		errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrInvalidSession) ||
		errors.Is(err, ErrSessionExpired) ||
		errors.Is(err, ErrForbidden)
}
