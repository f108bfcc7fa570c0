package adapter

import (
	"context"

	"github.com/google/uuid"
)

// TokenClaims carries the identity extracted from a validated access token.
type TokenClaims struct {
	UserID uuid.UUID
	Email  string
}

// TokenService validates access tokens issued by the external identity
// service. Issuance and refresh live outside this system.
type TokenService interface {
	// ValidateAccessToken verifies the token signature and claims and
	// returns the authenticated identity.
	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)
}
