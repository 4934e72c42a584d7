package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// SessionTokenPayload captures the data available when minting a JWT.
// Submitters are anonymous, so the session id (jti) is the only identity.
type SessionTokenPayload struct {
	SessionID string
}

// SessionTokenClaims represents the typed JWT issued to anonymous callers.
type SessionTokenClaims struct {
	jwt.RegisteredClaims
}
