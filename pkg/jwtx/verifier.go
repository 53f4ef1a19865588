package jwtx

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier checks a session token and returns its claims.
type Verifier interface {
	Verify(token string) (Claims, error)
}

var (
	ErrUnknownKID   = errors.New("jwtx: unknown kid")
	ErrIssuer       = errors.New("jwtx: issuer mismatch")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrNotYetValid  = errors.New("jwtx: token not yet valid")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
)

// EdDSAVerifier trusts a fixed set of Ed25519 keys by kid.
type EdDSAVerifier struct {
	keys   map[string]ed25519.PublicKey
	issuer string
	now    func() time.Time
}

// NewVerifierEdDSA trusts the public keys of the given signers.
func NewVerifierEdDSA(issuer string, signers ...*EdDSASigner) *EdDSAVerifier {
	keys := make(map[string]ed25519.PublicKey, len(signers))
	for _, s := range signers {
		keys[s.KID()] = s.PublicKey()
	}
	return &EdDSAVerifier{keys: keys, issuer: issuer, now: time.Now}
}

// Verify checks the signature, then the issuer and the validity window.
func (v *EdDSAVerifier) Verify(token string) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	var claims Claims
	_, err := parser.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if pub, ok := v.keys[kid]; ok {
			return pub, nil
		}
		return nil, fmt.Errorf("%w %q", ErrUnknownKID, kid)
	})
	if err != nil {
		return Claims{}, fmt.Errorf("jwtx: verify: %w", err)
	}

	switch {
	case claims.Issuer != v.issuer:
		return Claims{}, ErrIssuer
	case claims.SID == "" || claims.ExpiresAt == nil:
		return Claims{}, ErrInvalidClaim
	}

	if err := claims.ValidAt(v.now()); err != nil {
		return Claims{}, err
	}
	return claims, nil
}
