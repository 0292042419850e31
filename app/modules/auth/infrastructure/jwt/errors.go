package authjwt

import "errors"

var (
	// ErrInvalidToken is returned when the session token is malformed or its claims are unusable.
	ErrInvalidToken = errors.New("invalid session token")

	// ErrExpiredToken is returned when the session token is past its expiry.
	ErrExpiredToken = errors.New("session token has expired")

	// ErrInvalidSignature is returned when the session token was not signed with our secret.
	ErrInvalidSignature = errors.New("invalid session token signature")
)
