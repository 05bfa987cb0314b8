package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the full payload of a session token: the registered
// subject (user id), issuer, issued-at and expiry. Nothing else is embedded.
type SessionClaims struct {
	jwt.RegisteredClaims
}
