package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is what the client can read out of its own bearer token for
// display purposes. The signature is not checked; only the backend can verify
// the token, the client just peeks at it.
type TokenClaims struct {
	Subject   string
	ExpiresAt time.Time
}

// PeekClaims decodes the token without verification. An error means the token
// is not a JWT at all, which is fine: the backend treats tokens as opaque and
// so does the rest of this client.
func PeekClaims(token string) (TokenClaims, error) {
	if token == "" {
		return TokenClaims{}, errors.New("no token")
	}

	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return TokenClaims{}, err
	}

	out := TokenClaims{Subject: claims.Subject}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

// Expired reports whether the claims carry an expiry in the past.
func (c TokenClaims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && c.ExpiresAt.Before(now)
}
