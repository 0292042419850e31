package authservice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	authdomain "github.com/raynzz/eventdesk/app/modules/auth/domain"
	authjwt "github.com/raynzz/eventdesk/app/modules/auth/infrastructure/jwt"
	authdb "github.com/raynzz/eventdesk/app/modules/auth/infrastructure/repositories"
	"github.com/raynzz/eventdesk/pkg/directus"
	"github.com/raynzz/eventdesk/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace/noop"
)

var fixedNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

type testDeps struct {
	repo     *FakeSessionRepo
	directus *FakeDirectus
	jwt      *FakeJWTProvider
}

func newTestService(t *testing.T) (*AuthService, testDeps) {
	t.Helper()
	deps := testDeps{
		repo:     NewFakeSessionRepo(),
		directus: &FakeDirectus{},
		jwt:      &FakeJWTProvider{},
	}
	svc := NewService(
		deps.directus,
		deps.repo,
		deps.jwt,
		Config{},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		observability.NewNoopMetrics(),
		noop.NewTracerProvider().Tracer("test"),
		nil,
	)
	svc.now = func() time.Time { return fixedNow }
	return svc, deps
}

func seedSession(repo *FakeSessionRepo, mutate func(*authdb.Session)) authdb.Session {
	s := authdb.Session{
		ID:              uuid.New(),
		UserID:          "user-1",
		Email:           "ana@example.com",
		AccessToken:     "access",
		RefreshToken:    "refresh",
		AccessExpiresAt: fixedNow.Add(10 * time.Minute),
		ExpiresAt:       fixedNow.Add(time.Hour),
	}
	if mutate != nil {
		mutate(&s)
	}
	repo.sessions[s.ID] = s
	return s
}

func TestAuthService_Login(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		password  string
		setup     func(d testDeps)
		wantErr   error
		wantTrace []string
		verify    func(t *testing.T, res *LoginResult, d testDeps)
	}{
		{
			name:      "success opens a 24h session",
			email:     "ana@example.com",
			password:  "secret",
			wantTrace: []string{"Login", "CurrentUser"},
			verify: func(t *testing.T, res *LoginResult, d testDeps) {
				assert.Equal(t, fixedNow.Add(24*time.Hour), res.ExpiresAt)
				assert.Equal(t, "access", res.AccessToken)
				require.NotNil(t, res.User)
				assert.Equal(t, "ana@example.com", res.User.Email)
				assert.Equal(t, []string{"Create"}, d.repo.Trace())

				id, err := uuid.Parse(res.SessionToken)
				require.NoError(t, err)
				stored := d.repo.sessions[id]
				assert.Equal(t, "user-1", stored.UserID)
				assert.Equal(t, "refresh", stored.RefreshToken)
			},
		},
		{
			name:    "missing credentials",
			email:   "ana@example.com",
			wantErr: ErrMissingCredentials,
		},
		{
			name:     "directus rejects credentials",
			email:    "ana@example.com",
			password: "wrong",
			setup: func(d testDeps) {
				d.directus.LoginFunc = func(ctx context.Context, email, password string) (*directus.AuthTokens, error) {
					return nil, &directus.Error{Status: http.StatusUnauthorized}
				}
			},
			wantErr:   ErrInvalidCredentials,
			wantTrace: []string{"Login"},
		},
		{
			name:     "current user uses the new access token",
			email:    "ana@example.com",
			password: "secret",
			setup: func(d testDeps) {
				d.directus.CurrentUserFunc = func(ctx context.Context) (*directus.User, error) {
					tok, ok := directus.AccessTokenFromContext(ctx)
					if !ok || tok != "access" {
						return nil, errors.New("token not forwarded")
					}
					return &directus.User{ID: "user-9", Email: "ana@example.com"}, nil
				}
			},
			wantTrace: []string{"Login", "CurrentUser"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, deps := newTestService(t)
			if tt.setup != nil {
				tt.setup(deps)
			}

			res, err := svc.Login(context.Background(), tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			if tt.wantTrace != nil {
				assert.Equal(t, tt.wantTrace, deps.directus.Trace())
			}
			if tt.verify != nil {
				tt.verify(t, res, deps)
			}
		})
	}
}

func TestAuthService_Refresh(t *testing.T) {
	t.Run("extends by a fixed 24 hours and rotates tokens", func(t *testing.T) {
		svc, deps := newTestService(t)
		s := seedSession(deps.repo, func(s *authdb.Session) { s.ExpiresAt = fixedNow.Add(time.Minute) })

		res, err := svc.Refresh(context.Background(), s.ID.String())
		require.NoError(t, err)

		assert.Equal(t, fixedNow.Add(authdomain.SessionExtension), res.ExpiresAt)
		assert.Equal(t, "access-2", res.AccessToken)
		stored := deps.repo.sessions[s.ID]
		assert.Equal(t, "refresh-2", stored.RefreshToken)
		assert.Equal(t, fixedNow, stored.RefreshedAt)
		assert.Equal(t, fixedNow.Add(authdomain.SessionExtension), deps.jwt.Expiries[s.ID])
	})

	t.Run("expired session is deleted", func(t *testing.T) {
		svc, deps := newTestService(t)
		s := seedSession(deps.repo, func(s *authdb.Session) { s.ExpiresAt = fixedNow.Add(-time.Second) })

		_, err := svc.Refresh(context.Background(), s.ID.String())
		assert.ErrorIs(t, err, ErrSessionExpired)
		assert.NotContains(t, deps.repo.sessions, s.ID)
		assert.Empty(t, deps.directus.Trace())
	})

	t.Run("rejected refresh token ends the session", func(t *testing.T) {
		svc, deps := newTestService(t)
		s := seedSession(deps.repo, nil)
		deps.directus.RefreshFunc = func(ctx context.Context, refreshToken string) (*directus.AuthTokens, error) {
			return nil, &directus.Error{Status: http.StatusUnauthorized}
		}

		_, err := svc.Refresh(context.Background(), s.ID.String())
		assert.ErrorIs(t, err, ErrSessionExpired)
		assert.NotContains(t, deps.repo.sessions, s.ID)
	})

	t.Run("unknown session", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.Refresh(context.Background(), uuid.NewString())
		assert.ErrorIs(t, err, ErrInvalidSession)
	})

	t.Run("expired token", func(t *testing.T) {
		svc, deps := newTestService(t)
		deps.jwt.ValidateErr = authjwt.ErrExpiredToken
		_, err := svc.Refresh(context.Background(), uuid.NewString())
		assert.ErrorIs(t, err, ErrSessionExpired)
	})
}

func TestAuthService_Authenticate(t *testing.T) {
	tests := []struct {
		name       string
		token      func(s authdb.Session) string
		mutate     func(*authdb.Session)
		setup      func(d testDeps)
		wantErr    error
		wantAccess string
		wantTrace  []string
	}{
		{
			name:       "valid session",
			token:      func(s authdb.Session) string { return s.ID.String() },
			wantAccess: "access",
			wantTrace:  []string{},
		},
		{
			name:       "expired access token is refreshed",
			token:      func(s authdb.Session) string { return s.ID.String() },
			mutate:     func(s *authdb.Session) { s.AccessExpiresAt = fixedNow.Add(-time.Minute) },
			wantAccess: "access-2",
			wantTrace:  []string{"Refresh"},
		},
		{
			name:    "missing token",
			token:   func(authdb.Session) string { return "" },
			wantErr: ErrMissingToken,
		},
		{
			name:    "garbage token",
			token:   func(authdb.Session) string { return "garbage" },
			wantErr: ErrInvalidSession,
		},
		{
			name:    "expired session",
			token:   func(s authdb.Session) string { return s.ID.String() },
			mutate:  func(s *authdb.Session) { s.ExpiresAt = fixedNow },
			wantErr: ErrSessionExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, deps := newTestService(t)
			s := seedSession(deps.repo, tt.mutate)
			if tt.setup != nil {
				tt.setup(deps)
			}

			p, err := svc.Authenticate(context.Background(), tt.token(s))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, s.ID, p.SessionID)
			assert.Equal(t, tt.wantAccess, p.AccessToken)
			assert.Equal(t, s.ExpiresAt, p.ExpiresAt, "access refresh does not extend the session")
			assert.Equal(t, tt.wantTrace, deps.directus.Trace())
		})
	}
}

func TestAuthService_Authenticate_ConcurrentRefresh(t *testing.T) {
	svc, deps := newTestService(t)
	repo := authdb.NewMemoryRepository()
	svc.repo = repo

	session := authdb.Session{
		ID:              uuid.New(),
		UserID:          "user-1",
		Email:           "ana@example.com",
		AccessToken:     "access",
		RefreshToken:    "refresh-1",
		AccessExpiresAt: fixedNow.Add(-time.Minute),
		ExpiresAt:       fixedNow.Add(time.Hour),
	}
	require.NoError(t, repo.Create(context.Background(), nil, &session))

	// Directus refresh tokens are single use: a stale one is rejected.
	var (
		mu        sync.Mutex
		current   = "refresh-1"
		refreshes int
	)
	deps.directus.RefreshFunc = func(ctx context.Context, refreshToken string) (*directus.AuthTokens, error) {
		time.Sleep(50 * time.Millisecond)
		mu.Lock()
		defer mu.Unlock()
		if refreshToken != current {
			return nil, &directus.Error{Status: http.StatusUnauthorized}
		}
		refreshes++
		current = fmt.Sprintf("refresh-%d", refreshes+1)
		return &directus.AuthTokens{
			AccessToken:  fmt.Sprintf("access-%d", refreshes+1),
			RefreshToken: current,
			ExpiresAt:    fixedNow.Add(15 * time.Minute),
		}, nil
	}

	token := session.ID.String()
	var wg sync.WaitGroup
	principals := make([]*authdomain.Principal, 2)
	errs := make([]error, 2)
	for i := range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			principals[i], errs[i] = svc.Authenticate(context.Background(), token)
		}()
	}
	wg.Wait()

	for i := range 2 {
		require.NoError(t, errs[i])
		assert.Equal(t, "access-2", principals[i].AccessToken)
	}
	mu.Lock()
	assert.Equal(t, 1, refreshes)
	mu.Unlock()

	p, err := svc.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "access-2", p.AccessToken)

	stored, err := repo.GetByID(context.Background(), nil, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "refresh-2", stored.RefreshToken)
}

func TestAuthService_Logout(t *testing.T) {
	t.Run("deletes the session even if directus fails", func(t *testing.T) {
		svc, deps := newTestService(t)
		s := seedSession(deps.repo, nil)
		deps.directus.LogoutFunc = func(ctx context.Context, refreshToken string) error {
			return errors.New("directus down")
		}

		require.NoError(t, svc.Logout(context.Background(), s.ID.String()))
		assert.NotContains(t, deps.repo.sessions, s.ID)
		assert.Equal(t, []string{"Logout"}, deps.directus.Trace())
	})

	t.Run("invalid token is ignored", func(t *testing.T) {
		svc, deps := newTestService(t)
		require.NoError(t, svc.Logout(context.Background(), "garbage"))
		assert.Empty(t, deps.directus.Trace())
	})
}

func TestAuthService_RequireAdmin(t *testing.T) {
	principal := &authdomain.Principal{AccessToken: "access"}

	tests := []struct {
		name    string
		user    *directus.User
		userErr error
		wantErr error
	}{
		{name: "admin role", user: &directus.User{Role: &directus.Role{AdminAccess: true}}},
		{name: "editor role", user: &directus.User{Role: &directus.Role{Name: "Editor"}}, wantErr: ErrForbidden},
		{name: "token rejected", userErr: &directus.Error{Status: http.StatusUnauthorized}, wantErr: ErrSessionExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, deps := newTestService(t)
			deps.directus.CurrentUserFunc = func(ctx context.Context) (*directus.User, error) {
				return tt.user, tt.userErr
			}

			err := svc.RequireAdmin(context.Background(), principal)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestAuthService_PurgeExpired(t *testing.T) {
	svc, deps := newTestService(t)
	var gotNow time.Time
	deps.repo.DeleteExpiredFunc = func(ctx context.Context, _ bun.IDB, now time.Time) (int, error) {
		gotNow = now
		return 3, nil
	}

	n, err := svc.PurgeExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, fixedNow, gotNow)
}
