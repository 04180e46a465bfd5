// Package jwtmw provides JWT issuing, verification and the gin middleware
// guarding authenticated routes.
package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned when a token is expired, unparseable or its
// signature does not verify. It is a reportable outcome, never a panic.
var ErrInvalidToken = errors.New("invalid token")

// Generator issues and verifies HS256-signed bearer tokens.
type Generator struct {
	secret     []byte
	defaultTTL time.Duration
}

// NewGenerator creates a new JWT generator with the provided secret, signing
// algorithm identifier and default token lifetime. Only HS256 is supported;
// any other algorithm identifier is a configuration error.
func NewGenerator(secret, algorithm string, defaultTTL time.Duration) (*Generator, error) {
	if algorithm != "HS256" {
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}
	return &Generator{
		secret:     []byte(secret),
		defaultTTL: defaultTTL,
	}, nil
}

// GenerateToken creates a signed JWT token for the given username.
// extraClaims may be nil; reserved claims (sub, exp, iat) always win over
// caller-supplied entries. A zero ttl means the configured default lifetime.
func (g *Generator) GenerateToken(username string, extraClaims map[string]any, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = g.defaultTTL
	}

	claims := jwt.MapClaims{}
	for k, v := range extraClaims {
		claims[k] = v
	}
	now := time.Now()
	claims["sub"] = username
	claims["exp"] = now.Add(ttl).Unix()
	claims["iat"] = now.Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// UsernameFromToken verifies the token's signature and expiry and returns the
// subject claim. Any failure is reported as ErrInvalidToken.
func (g *Generator) UsernameFromToken(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		// Check signing algorithm (only HMAC allowed)
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return g.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}
