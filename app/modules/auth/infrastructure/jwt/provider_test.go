package authjwt

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	authdomain "github.com/raynzz/eventdesk/app/modules/auth/domain"
)

const testSecret = "test-secret-at-least-32-chars-long!!"

func TestProvider_GenerateAndValidateToken(t *testing.T) {
	p := NewProvider(testSecret, "eventdesk")
	sessionID := uuid.New()

	tests := []struct {
		name        string
		claims      *authdomain.Claims
		validator   Provider
		tamper      func(string) string
		expectedErr error
		verify      func(t *testing.T, got *authdomain.Claims)
	}{
		{
			name: "success",
			claims: &authdomain.Claims{
				SessionID: sessionID,
				UserID:    "user-123",
				Email:     "ana@example.com",
				ExpiresAt: time.Now().Add(time.Hour),
			},
			validator: p,
			verify: func(t *testing.T, got *authdomain.Claims) {
				if got.SessionID != sessionID {
					t.Errorf("expected session %v, got %v", sessionID, got.SessionID)
				}
				if got.UserID != "user-123" || got.Email != "ana@example.com" {
					t.Errorf("unexpected claims %+v", got)
				}
				if got.IssuedAt.IsZero() {
					t.Error("expected issued at to be set")
				}
			},
		},
		{
			name: "expired token",
			claims: &authdomain.Claims{
				SessionID: sessionID,
				UserID:    "user-123",
				ExpiresAt: time.Now().Add(-time.Hour),
			},
			validator:   p,
			expectedErr: ErrExpiredToken,
		},
		{
			name: "wrong secret",
			claims: &authdomain.Claims{
				SessionID: sessionID,
				ExpiresAt: time.Now().Add(time.Hour),
			},
			validator:   NewProvider("another-secret-at-least-32-chars-long", "eventdesk"),
			expectedErr: ErrInvalidSignature,
		},
		{
			name: "wrong issuer",
			claims: &authdomain.Claims{
				SessionID: sessionID,
				ExpiresAt: time.Now().Add(time.Hour),
			},
			validator:   NewProvider(testSecret, "someone-else"),
			expectedErr: ErrInvalidToken,
		},
		{
			name: "malformed token",
			claims: &authdomain.Claims{
				SessionID: sessionID,
				ExpiresAt: time.Now().Add(time.Hour),
			},
			validator:   p,
			tamper:      func(string) string { return "not.a.jwt" },
			expectedErr: ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := p.GenerateToken(tt.claims)
			if err != nil {
				t.Fatalf("GenerateToken failed: %v", err)
			}
			if tt.tamper != nil {
				token = tt.tamper(token)
			}

			got, err := tt.validator.ValidateToken(token)
			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Fatalf("expected error %v, got %v", tt.expectedErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateToken failed: %v", err)
			}
			if tt.verify != nil {
				tt.verify(t, got)
			}
		})
	}
}

func TestProvider_RejectsNonUUIDSessionID(t *testing.T) {
	claims := jwt.RegisteredClaims{
		ID:        "not-a-uuid",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := NewProvider(testSecret, "").ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestProvider_RejectsNoneAlgorithm(t *testing.T) {
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := NewProvider(testSecret, "").ValidateToken(token); err == nil {
		t.Fatal("expected none-signed token to be rejected")
	}
}
