package authhandlers

import (
	"context"
	"time"

	authservice "github.com/raynzz/eventdesk/app/modules/auth/application"
	authdomain "github.com/raynzz/eventdesk/app/modules/auth/domain"
	"github.com/raynzz/eventdesk/pkg/directus"
)

// ------------------------
// Fake Service
// ------------------------

type FakeService struct {
	trace []string

	LoginFunc        func(ctx context.Context, email, password string) (*authservice.LoginResult, error)
	RefreshFunc      func(ctx context.Context, sessionToken string) (*authservice.LoginResult, error)
	LogoutFunc       func(ctx context.Context, sessionToken string) error
	AuthenticateFunc func(ctx context.Context, sessionToken string) (*authdomain.Principal, error)
	CurrentUserFunc  func(ctx context.Context, principal *authdomain.Principal) (*directus.User, error)
	RequireAdminFunc func(ctx context.Context, principal *authdomain.Principal) error
	PurgeExpiredFunc func(ctx context.Context) (int, error)
}

func (f *FakeService) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func fakeResult() *authservice.LoginResult {
	return &authservice.LoginResult{
		SessionToken: "session-token",
		AccessToken:  "access-token",
		ExpiresAt:    time.Now().Add(24 * time.Hour),
	}
}

func (f *FakeService) Login(ctx context.Context, email, password string) (*authservice.LoginResult, error) {
	f.record("Login")
	if f.LoginFunc != nil {
		return f.LoginFunc(ctx, email, password)
	}
	return fakeResult(), nil
}

func (f *FakeService) Refresh(ctx context.Context, sessionToken string) (*authservice.LoginResult, error) {
	f.record("Refresh")
	if f.RefreshFunc != nil {
		return f.RefreshFunc(ctx, sessionToken)
	}
	return fakeResult(), nil
}

func (f *FakeService) Logout(ctx context.Context, sessionToken string) error {
	f.record("Logout")
	if f.LogoutFunc != nil {
		return f.LogoutFunc(ctx, sessionToken)
	}
	return nil
}

func (f *FakeService) Authenticate(ctx context.Context, sessionToken string) (*authdomain.Principal, error) {
	f.record("Authenticate")
	if f.AuthenticateFunc != nil {
		return f.AuthenticateFunc(ctx, sessionToken)
	}
	return &authdomain.Principal{UserID: "user-1", AccessToken: "access-token"}, nil
}

func (f *FakeService) CurrentUser(ctx context.Context, principal *authdomain.Principal) (*directus.User, error) {
	f.record("CurrentUser")
	if f.CurrentUserFunc != nil {
		return f.CurrentUserFunc(ctx, principal)
	}
	return &directus.User{ID: "user-1", Email: "ana@example.com"}, nil
}

func (f *FakeService) RequireAdmin(ctx context.Context, principal *authdomain.Principal) error {
	f.record("RequireAdmin")
	if f.RequireAdminFunc != nil {
		return f.RequireAdminFunc(ctx, principal)
	}
	return nil
}

func (f *FakeService) PurgeExpired(ctx context.Context) (int, error) {
	f.record("PurgeExpired")
	if f.PurgeExpiredFunc != nil {
		return f.PurgeExpiredFunc(ctx)
	}
	return 0, nil
}

var _ authservice.Service = (*FakeService)(nil)
