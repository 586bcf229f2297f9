// Package auth issues and verifies the signed, time-boxed credentials used
// by every protected endpoint, and wraps the password hashing primitive.
package auth

import (
	"time"

	"github.com/atinyakov/HabitTracker/internal/apperr"
	"github.com/golang-jwt/jwt/v5"
)

// TokenLifetime is how long an issued credential stays valid.
const TokenLifetime = time.Hour

// claims is the payload of an issued credential.
type claims struct {
	jwt.RegisteredClaims
	// UserID identifies the authenticated subject.
	UserID string `json:"id"`
}

// TokenManager signs and verifies HS256 credentials with a secret fixed at
// construction time.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager returns a TokenManager using secret and the default lifetime.
func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    TokenLifetime,
		now:    time.Now,
	}
}

// Issue returns a signed credential asserting userID.
func (m *TokenManager) Issue(userID string) (string, error) {
	issuedAt := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(m.ttl)),
		},
		UserID: userID,
	})
	return token.SignedString(m.secret)
}

// Verify checks token and returns the user id it asserts.
//
// An empty token yields apperr.Unauthenticated. A token that is malformed,
// signed with another key or algorithm, expired, or lacks a subject yields
// apperr.InvalidCredential.
func (m *TokenManager) Verify(token string) (string, error) {
	if token == "" {
		return "", apperr.Unauthenticated()
	}

	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !parsed.Valid {
		return "", apperr.InvalidCredential()
	}
	if c.UserID == "" {
		return "", apperr.InvalidCredential()
	}
	return c.UserID, nil
}
