// Package token inspects stored bearer tokens on the client side.
// Inspection is deliberately unverified: the client has no signing key, and
// the server remains authoritative. Opaque (non-JWT) API tokens pass through
// as non-expiring.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNotJWT = errors.New("token is not a JWT")

var parser = jwt.NewParser(jwt.WithoutClaimsValidation())

// Inspect parses the claims of a JWT without verifying its signature.
// Returns ErrNotJWT for opaque tokens.
func Inspect(raw string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return nil, ErrNotJWT
	}
	return claims, nil
}

// Expired reports whether a JWT bearer token is past its expiry. Opaque
// tokens and JWTs without an exp claim are treated as non-expiring.
func Expired(raw string) bool {
	claims, err := Inspect(raw)
	if err != nil || claims.ExpiresAt == nil {
		return false
	}
	return time.Now().After(claims.ExpiresAt.Time)
}
