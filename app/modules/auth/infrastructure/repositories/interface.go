package authdb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository defines the contract for session persistence.
type Repository interface {
	// Create stores a new session.
	Create(ctx context.Context, db bun.IDB, session *Session) error

	// GetByID retrieves a session by id.
	GetByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*Session, error)

	// Update overwrites the tokens and expiry of an existing session.
	Update(ctx context.Context, db bun.IDB, session *Session) error

	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, db bun.IDB, id uuid.UUID) error

	// DeleteExpired removes sessions that expired before now and returns how many were removed.
	DeleteExpired(ctx context.Context, db bun.IDB, now time.Time) (int, error)
}
