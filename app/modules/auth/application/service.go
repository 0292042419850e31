package authservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	authdomain "github.com/raynzz/eventdesk/app/modules/auth/domain"
	authjwt "github.com/raynzz/eventdesk/app/modules/auth/infrastructure/jwt"
	authdb "github.com/raynzz/eventdesk/app/modules/auth/infrastructure/repositories"
	"github.com/raynzz/eventdesk/pkg/directus"
	"github.com/raynzz/eventdesk/pkg/observability"
	"github.com/raynzz/eventdesk/pkg/observability/attr"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"
)

// AuthService implements the Service interface.
type AuthService struct {
	directus  DirectusAuth
	repo      authdb.Repository
	jwt       authjwt.Provider
	config    Config
	logger    *slog.Logger
	telemetry observability.Telemetry
	db        bun.IDB
	now       func() time.Time

	// refreshes serializes Directus token rotation per session id.
	refreshes singleflight.Group
}

// NewService creates a new AuthService. db may be nil when sessions live in memory.
func NewService(
	directusClient DirectusAuth,
	repo authdb.Repository,
	jwtProvider authjwt.Provider,
	cfg Config,
	logger *slog.Logger,
	metrics observability.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = authdomain.SessionExtension
	}
	s := &AuthService{
		directus: directusClient,
		repo:     repo,
		jwt:      jwtProvider,
		config:   cfg,
		logger:   logger,
		telemetry: observability.Telemetry{
			Service:  "AuthService",
			Logger:   logger,
			Tracer:   tracer,
			Metrics:  metrics,
			Expected: IsClientError,
		},
		now: time.Now,
	}
	if db != nil {
		s.db = db
	}
	return s
}

// Login authenticates against Directus and opens a session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	return observability.Run(ctx, s.telemetry, "Login", email, func(ctx context.Context) (*LoginResult, error) {
		if email == "" || password == "" {
			return nil, ErrMissingCredentials
		}

		tokens, err := s.directus.Login(ctx, email, password)
		if err != nil {
			if directus.IsUnauthorized(err) {
				return nil, ErrInvalidCredentials
			}
			return nil, fmt.Errorf("directus login: %w", err)
		}

		user, err := s.directus.CurrentUser(directus.WithAccessToken(ctx, tokens.AccessToken))
		if err != nil {
			return nil, fmt.Errorf("load current user: %w", err)
		}

		now := s.now()
		session := &authdb.Session{
			ID:              uuid.New(),
			UserID:          user.ID.String(),
			Email:           user.Email,
			AccessToken:     tokens.AccessToken,
			RefreshToken:    tokens.RefreshToken,
			AccessExpiresAt: tokens.ExpiresAt,
			ExpiresAt:       now.Add(s.config.SessionTTL),
			CreatedAt:       now,
			RefreshedAt:     now,
		}
		if err := s.repo.Create(ctx, s.db, session); err != nil {
			return nil, err
		}

		result, err := s.issue(session, now)
		if err != nil {
			return nil, err
		}
		result.User = user
		return result, nil
	})
}

// Refresh rotates the Directus token pair and pushes the session expiry out by
// the fixed extension.
func (s *AuthService) Refresh(ctx context.Context, sessionToken string) (*LoginResult, error) {
	return observability.Run(ctx, s.telemetry, "Refresh", "", func(ctx context.Context) (*LoginResult, error) {
		session, err := s.loadSession(ctx, sessionToken)
		if err != nil {
			return nil, err
		}

		now := s.now()
		if err := s.rotate(ctx, session, now); err != nil {
			return nil, err
		}
		session.ExpiresAt = now.Add(s.config.SessionTTL)
		session.RefreshedAt = now
		if err := s.repo.Update(ctx, s.db, session); err != nil {
			return nil, err
		}

		return s.issue(session, now)
	})
}

// Logout ends the session. Directus logout is best effort.
func (s *AuthService) Logout(ctx context.Context, sessionToken string) error {
	_, err := observability.Run(ctx, s.telemetry, "Logout", "", func(ctx context.Context) (struct{}, error) {
		claims, err := s.jwt.ValidateToken(sessionToken)
		if err != nil {
			// Nothing to end; the handler clears the cookies regardless.
			return struct{}{}, nil
		}
		session, err := s.repo.GetByID(ctx, s.db, claims.SessionID)
		if err != nil {
			if errors.Is(err, authdb.ErrNotFound) {
				return struct{}{}, nil
			}
			return struct{}{}, err
		}

		if err := s.directus.Logout(ctx, session.RefreshToken); err != nil {
			s.logger.WarnContext(ctx, "Directus logout failed",
				attr.ExtractCorrelationID(ctx),
				attr.String("session_id", session.ID.String()),
				attr.Error(err),
			)
		}
		return struct{}{}, s.repo.Delete(ctx, s.db, session.ID)
	})
	return err
}

// Authenticate resolves a session token, refreshing the Directus access token
// when it has expired while the session has not.
func (s *AuthService) Authenticate(ctx context.Context, sessionToken string) (*authdomain.Principal, error) {
	session, err := s.loadSession(ctx, sessionToken)
	if err != nil {
		return nil, err
	}

	if session.AccessExpired(s.now()) {
		session, err = s.refreshAccess(ctx, session.ID)
		if err != nil {
			return nil, err
		}
	}

	return &authdomain.Principal{
		SessionID:   session.ID,
		UserID:      session.UserID,
		Email:       session.Email,
		AccessToken: session.AccessToken,
		ExpiresAt:   session.ExpiresAt,
	}, nil
}

// refreshAccess rotates the Directus tokens of a session once, however many
// requests found the access token expired at the same time. Directus refresh
// tokens are single use.
func (s *AuthService) refreshAccess(ctx context.Context, id uuid.UUID) (*authdb.Session, error) {
	v, err, _ := s.refreshes.Do(id.String(), func() (any, error) {
		ctx := context.WithoutCancel(ctx)
		session, err := s.repo.GetByID(ctx, s.db, id)
		if err != nil {
			if errors.Is(err, authdb.ErrNotFound) {
				return nil, ErrSessionExpired
			}
			return nil, err
		}

		now := s.now()
		if !session.AccessExpired(now) {
			return session, nil
		}
		if err := s.rotate(ctx, session, now); err != nil {
			return nil, err
		}
		if err := s.repo.Update(ctx, s.db, session); err != nil {
			return nil, err
		}
		s.logger.DebugContext(ctx, "Directus access token refreshed",
			attr.ExtractCorrelationID(ctx),
			attr.String("session_id", session.ID.String()),
		)
		return session, nil
	})
	if err != nil {
		return nil, err
	}
	// Callers get their own copy.
	session := *v.(*authdb.Session)
	return &session, nil
}

// CurrentUser returns the Directus user of the principal.
func (s *AuthService) CurrentUser(ctx context.Context, principal *authdomain.Principal) (*directus.User, error) {
	if principal == nil {
		return nil, ErrMissingToken
	}
	user, err := s.directus.CurrentUser(directus.WithAccessToken(ctx, principal.AccessToken))
	if err != nil {
		if directus.IsUnauthorized(err) {
			return nil, ErrSessionExpired
		}
		return nil, fmt.Errorf("load current user: %w", err)
	}
	return user, nil
}

// RequireAdmin checks the principal's Directus role.
func (s *AuthService) RequireAdmin(ctx context.Context, principal *authdomain.Principal) error {
	user, err := s.CurrentUser(ctx, principal)
	if err != nil {
		return err
	}
	if !user.IsAdmin() {
		return ErrForbidden
	}
	return nil
}

// PurgeExpired deletes expired sessions.
func (s *AuthService) PurgeExpired(ctx context.Context) (int, error) {
	return observability.Run(ctx, s.telemetry, "PurgeExpired", "", func(ctx context.Context) (int, error) {
		return s.repo.DeleteExpired(ctx, s.db, s.now())
	})
}

// loadSession validates the token and loads a live session. Expired sessions
// are deleted on sight.
func (s *AuthService) loadSession(ctx context.Context, sessionToken string) (*authdb.Session, error) {
	if sessionToken == "" {
		return nil, ErrMissingToken
	}

	claims, err := s.jwt.ValidateToken(sessionToken)
	if err != nil {
		if errors.Is(err, authjwt.ErrExpiredToken) {
			return nil, ErrSessionExpired
		}
		return nil, ErrInvalidSession
	}

	session, err := s.repo.GetByID(ctx, s.db, claims.SessionID)
	if err != nil {
		if errors.Is(err, authdb.ErrNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}

	if session.Expired(s.now()) {
		if err := s.repo.Delete(ctx, s.db, session.ID); err != nil {
			s.logger.WarnContext(ctx, "Failed to delete expired session", attr.Error(err))
		}
		return nil, ErrSessionExpired
	}
	return session, nil
}

// rotate swaps the session's Directus tokens. A rejected refresh token ends the session.
func (s *AuthService) rotate(ctx context.Context, session *authdb.Session, now time.Time) error {
	tokens, err := s.directus.Refresh(ctx, session.RefreshToken)
	if err != nil {
		if directus.IsUnauthorized(err) {
			if delErr := s.repo.Delete(ctx, s.db, session.ID); delErr != nil {
				s.logger.WarnContext(ctx, "Failed to delete session after refresh rejection", attr.Error(delErr))
			}
			return ErrSessionExpired
		}
		return fmt.Errorf("directus refresh: %w", err)
	}

	session.AccessToken = tokens.AccessToken
	if tokens.RefreshToken != "" {
		session.RefreshToken = tokens.RefreshToken
	}
	session.AccessExpiresAt = tokens.ExpiresAt
	if session.AccessExpiresAt.IsZero() {
		session.AccessExpiresAt = now
	}
	return nil
}

func (s *AuthService) issue(session *authdb.Session, now time.Time) (*LoginResult, error) {
	token, err := s.jwt.GenerateToken(&authdomain.Claims{
		SessionID: session.ID,
		UserID:    session.UserID,
		Email:     session.Email,
		ExpiresAt: session.ExpiresAt,
		IssuedAt:  now,
	})
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		SessionToken:    token,
		AccessToken:     session.AccessToken,
		ExpiresAt:       session.ExpiresAt,
		AccessExpiresAt: session.AccessExpiresAt,
	}, nil
}
