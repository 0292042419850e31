package directus

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// AuthTokens is the Directus answer to login and refresh.
type AuthTokens struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresMS    int64     `json:"expires"`
	ExpiresAt    time.Time `json:"-"`
}

// Role is the subset of a Directus role the dashboard needs.
type Role struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	AdminAccess bool   `json:"admin_access"`
}

// User is the authenticated Directus user.
type User struct {
	ID        ID     `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      *Role  `json:"role"`
}

// IsAdmin reports whether the user's role grants admin access.
func (u *User) IsAdmin() bool {
	if u == nil || u.Role == nil {
		return false
	}
	return u.Role.AdminAccess || strings.EqualFold(u.Role.Name, "administrator")
}

func (t *AuthTokens) stamp(now time.Time) *AuthTokens {
	t.ExpiresAt = now.Add(time.Duration(t.ExpiresMS) * time.Millisecond)
	return t
}

// Login exchanges credentials for an access and refresh token.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthTokens, error) {
	var tokens AuthTokens
	err := c.do(ctx, request{
		method:    http.MethodPost,
		path:      "/auth/login",
		body:      map[string]string{"email": email, "password": password, "mode": "json"},
		anonymous: true,
	}, &tokens)
	if err != nil {
		return nil, err
	}
	return tokens.stamp(time.Now()), nil
}

// Refresh rotates a refresh token into a new token pair.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*AuthTokens, error) {
	var tokens AuthTokens
	err := c.do(ctx, request{
		method:    http.MethodPost,
		path:      "/auth/refresh",
		body:      map[string]string{"refresh_token": refreshToken, "mode": "json"},
		anonymous: true,
	}, &tokens)
	if err != nil {
		return nil, err
	}
	return tokens.stamp(time.Now()), nil
}

// Logout invalidates the refresh token.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	return c.do(ctx, request{
		method:    http.MethodPost,
		path:      "/auth/logout",
		body:      map[string]string{"refresh_token": refreshToken},
		anonymous: true,
	}, nil)
}

// CurrentUser returns the user owning the request token.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/users/me",
		query: url.Values{
			"fields": {"id,email,first_name,last_name,role.id,role.name,role.admin_access"},
		},
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
