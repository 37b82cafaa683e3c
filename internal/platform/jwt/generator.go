// Package jwtmw signs and parses session tokens and provides the gin middleware
// that turns a bearer token into an authenticated principal.
package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrMalformedToken is returned when a token cannot be decoded or its signature does not verify.
var ErrMalformedToken = errors.New("malformed token")

// Signer issues and parses HS256 session tokens.
//
// Tokens carry no expiry: a session lives exactly as long as the token stays in
// the user's stored token set, so revocation takes effect immediately.
type Signer struct {
	secret []byte
	now    func() time.Time
}

// NewSigner creates a Signer with the provided HMAC secret.
func NewSigner(secret string) *Signer {
	return &Signer{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// Sign creates a signed token for userID.
// Each token gets a random jti so two tokens issued in the same second never collide.
func (s *Signer) Sign(userID string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:  userID,
		IssuedAt: jwt.NewNumericDate(s.now()),
		ID:       uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies the signature of tokenStr and returns the embedded user id.
func (s *Signer) Parse(tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		// only HMAC is accepted
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", ErrMalformedToken
	}
	if claims.Subject == "" {
		return "", ErrMalformedToken
	}
	return claims.Subject, nil
}
