package adapters

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	domainerror "github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/error"
)

const testSecret = "integration-test-secret"

func signToken(t *testing.T, userID uuid.UUID, email, tokenType string, expiresIn time.Duration) string {
	t.Helper()

	now := time.Now().UTC()
	claims := CustomClaims{
		UserID:    userID.String(),
		Email:     email,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   userID.String(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return signed
}

func TestValidateAccessToken(t *testing.T) {
	service := NewTokenService(testSecret)
	userID := uuid.New()

	t.Run("valid token returns claims", func(t *testing.T) {
		token := signToken(t, userID, "ana@example.com", tokenTypeAccess, time.Hour)

		claims, err := service.ValidateAccessToken(context.Background(), token)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if claims.UserID != userID {
			t.Errorf("expected user ID %s, got %s", userID, claims.UserID)
		}
		if claims.Email != "ana@example.com" {
			t.Errorf("expected email ana@example.com, got %s", claims.Email)
		}
	})

	t.Run("refresh token is rejected", func(t *testing.T) {
		token := signToken(t, userID, "ana@example.com", "refresh", time.Hour)

		if _, err := service.ValidateAccessToken(context.Background(), token); !errors.Is(err, domainerror.ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		token := signToken(t, userID, "ana@example.com", tokenTypeAccess, -time.Minute)

		if _, err := service.ValidateAccessToken(context.Background(), token); !errors.Is(err, domainerror.ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("token signed with another secret is rejected", func(t *testing.T) {
		claims := CustomClaims{
			UserID:    userID.String(),
			TokenType: tokenTypeAccess,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("wrong-secret"))
		if err != nil {
			t.Fatalf("failed to sign test token: %v", err)
		}

		if _, err := service.ValidateAccessToken(context.Background(), token); !errors.Is(err, domainerror.ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		if _, err := service.ValidateAccessToken(context.Background(), "not-a-token"); !errors.Is(err, domainerror.ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})
}
