package authtoken

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the decoded payload of an access token. It embeds the registered
// JWT claim set, so callers get Subject, ExpiresAt and friends directly.
//
// Claims are read without verifying the token signature. The manager only
// needs the expiry to schedule refreshes; verification is the server's job.
type Claims struct {
	jwt.RegisteredClaims
}

// TimeLeft returns how long the token remains valid as seen from now.
// The result is negative once the token has expired.
func (c *Claims) TimeLeft(now time.Time) time.Duration {
	return c.ExpiresAt.Time.Sub(now)
}

// parser is shared by all decodes; it holds no per-token state.
var parser = jwt.NewParser()

// decodeClaims parses an access token without signature verification.
// A token that cannot be parsed, or that carries no numeric exp claim,
// is invalid.
func decodeClaims(token string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("authtoken: decode access token: %w", err)
	}

	if claims.ExpiresAt == nil {
		return nil, errors.New("authtoken: access token has no exp claim")
	}

	return claims, nil
}
