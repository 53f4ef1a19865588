package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultSessionTTL is the lifetime of a dashboard session token.
const DefaultSessionTTL = 12 * time.Hour

// clockSkew is tolerated on nbf and exp.
const clockSkew = 30 * time.Second

// Claims carried by a dashboard session token. The token only proves who
// signed in; the session it names must also still be live on the server.
type Claims struct {
	jwt.RegisteredClaims

	SID   string `json:"sid,omitempty"`
	Email string `json:"email,omitempty"`
}

// NewSessionClaims returns claims for session sid, valid from now for ttl.
func NewSessionClaims(sid, email, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		SID:   sid,
		Email: email,
	}
}

// ValidAt checks the token window against now, allowing a little clock skew.
func (c Claims) ValidAt(now time.Time) error {
	switch {
	case c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(clockSkew)):
		return ErrExpired
	case c.NotBefore != nil && now.Add(clockSkew).Before(c.NotBefore.Time):
		return ErrNotYetValid
	}
	return nil
}
