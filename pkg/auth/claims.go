package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID uuid.UUID
	Name   string
}

// AccessTokenClaims represents the typed JWT issued by the platform's identity
// service. The ledger only cares about a stable caller identity; roles and
// permissions live elsewhere.
type AccessTokenClaims struct {
	UserID uuid.UUID `json:"user_id"`
	Name   string    `json:"nome,omitempty"`
	jwt.RegisteredClaims
}
