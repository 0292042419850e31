package authservice

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	authdomain "github.com/raynzz/eventdesk/app/modules/auth/domain"
	authjwt "github.com/raynzz/eventdesk/app/modules/auth/infrastructure/jwt"
	authdb "github.com/raynzz/eventdesk/app/modules/auth/infrastructure/repositories"
	"github.com/raynzz/eventdesk/pkg/directus"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Session Repo
// ------------------------

type FakeSessionRepo struct {
	trace    []string
	sessions map[uuid.UUID]authdb.Session

	CreateFunc        func(ctx context.Context, db bun.IDB, session *authdb.Session) error
	UpdateFunc        func(ctx context.Context, db bun.IDB, session *authdb.Session) error
	DeleteExpiredFunc func(ctx context.Context, db bun.IDB, now time.Time) (int, error)
}

func NewFakeSessionRepo() *FakeSessionRepo {
	return &FakeSessionRepo{
		trace:    []string{},
		sessions: map[uuid.UUID]authdb.Session{},
	}
}

func (f *FakeSessionRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeSessionRepo) Create(ctx context.Context, db bun.IDB, session *authdb.Session) error {
	f.record("Create")
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, db, session)
	}
	f.sessions[session.ID] = *session
	return nil
}

func (f *FakeSessionRepo) GetByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*authdb.Session, error) {
	f.record("GetByID")
	s, ok := f.sessions[id]
	if !ok {
		return nil, authdb.ErrNotFound
	}
	return &s, nil
}

func (f *FakeSessionRepo) Update(ctx context.Context, db bun.IDB, session *authdb.Session) error {
	f.record("Update")
	if f.UpdateFunc != nil {
		return f.UpdateFunc(ctx, db, session)
	}
	f.sessions[session.ID] = *session
	return nil
}

func (f *FakeSessionRepo) Delete(ctx context.Context, db bun.IDB, id uuid.UUID) error {
	f.record("Delete")
	delete(f.sessions, id)
	return nil
}

func (f *FakeSessionRepo) DeleteExpired(ctx context.Context, db bun.IDB, now time.Time) (int, error) {
	f.record("DeleteExpired")
	if f.DeleteExpiredFunc != nil {
		return f.DeleteExpiredFunc(ctx, db, now)
	}
	return 0, nil
}

func (f *FakeSessionRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ authdb.Repository = (*FakeSessionRepo)(nil)

// ------------------------
// Fake Directus
// ------------------------

type FakeDirectus struct {
	mu    sync.Mutex
	trace []string

	LoginFunc       func(ctx context.Context, email, password string) (*directus.AuthTokens, error)
	RefreshFunc     func(ctx context.Context, refreshToken string) (*directus.AuthTokens, error)
	LogoutFunc      func(ctx context.Context, refreshToken string) error
	CurrentUserFunc func(ctx context.Context) (*directus.User, error)
}

func (f *FakeDirectus) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

func (f *FakeDirectus) Login(ctx context.Context, email, password string) (*directus.AuthTokens, error) {
	f.record("Login")
	if f.LoginFunc != nil {
		return f.LoginFunc(ctx, email, password)
	}
	return &directus.AuthTokens{AccessToken: "access", RefreshToken: "refresh", ExpiresAt: time.Now().Add(15 * time.Minute)}, nil
}

func (f *FakeDirectus) Refresh(ctx context.Context, refreshToken string) (*directus.AuthTokens, error) {
	f.record("Refresh")
	if f.RefreshFunc != nil {
		return f.RefreshFunc(ctx, refreshToken)
	}
	return &directus.AuthTokens{AccessToken: "access-2", RefreshToken: "refresh-2", ExpiresAt: time.Now().Add(15 * time.Minute)}, nil
}

func (f *FakeDirectus) Logout(ctx context.Context, refreshToken string) error {
	f.record("Logout")
	if f.LogoutFunc != nil {
		return f.LogoutFunc(ctx, refreshToken)
	}
	return nil
}

func (f *FakeDirectus) CurrentUser(ctx context.Context) (*directus.User, error) {
	f.record("CurrentUser")
	if f.CurrentUserFunc != nil {
		return f.CurrentUserFunc(ctx)
	}
	return &directus.User{ID: "user-1", Email: "ana@example.com"}, nil
}

func (f *FakeDirectus) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ DirectusAuth = (*FakeDirectus)(nil)

// ------------------------
// Fake JWT Provider
// ------------------------

// FakeJWTProvider encodes the session id as the token itself.
type FakeJWTProvider struct {
	ValidateErr error
	Expiries    map[uuid.UUID]time.Time
}

func (f *FakeJWTProvider) GenerateToken(c *authdomain.Claims) (string, error) {
	if f.Expiries == nil {
		f.Expiries = map[uuid.UUID]time.Time{}
	}
	f.Expiries[c.SessionID] = c.ExpiresAt
	return c.SessionID.String(), nil
}

func (f *FakeJWTProvider) ValidateToken(token string) (*authdomain.Claims, error) {
	if f.ValidateErr != nil {
		return nil, f.ValidateErr
	}
	id, err := uuid.Parse(token)
	if err != nil {
		return nil, authjwt.ErrInvalidToken
	}
	return &authdomain.Claims{SessionID: id}, nil
}

var _ authjwt.Provider = (*FakeJWTProvider)(nil)
