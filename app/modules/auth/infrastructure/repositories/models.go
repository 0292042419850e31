package authdb

import (
	"time"

	"github.com/google/uuid"
	authdomain "github.com/raynzz/eventdesk/app/modules/auth/domain"
	"github.com/uptrace/bun"
)

// Session is a dashboard login backed by a Directus token pair.
type Session struct {
	bun.BaseModel `bun:"table:sessions,alias:s"`

	ID              uuid.UUID `bun:"id,pk,type:uuid"`
	UserID          string    `bun:"user_id,notnull"`
	Email           string    `bun:"email,notnull"`
	AccessToken     string    `bun:"access_token,notnull"`
	RefreshToken    string    `bun:"refresh_token,notnull"`
	AccessExpiresAt time.Time `bun:"access_expires_at,notnull"`
	ExpiresAt       time.Time `bun:"expires_at,notnull"`
	CreatedAt       time.Time `bun:"created_at,notnull,default:current_timestamp"`
	RefreshedAt     time.Time `bun:"refreshed_at,notnull,default:current_timestamp"`
}

// Expired reports whether the session itself is over.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// AccessExpired reports whether the Directus access token needs a refresh.
func (s *Session) AccessExpired(now time.Time) bool {
	return !now.Add(authdomain.AccessTokenSkew).Before(s.AccessExpiresAt)
}
