package helpers

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every verification failure: bad structure, wrong
// signature, wrong algorithm, or expiry. Callers treat them uniformly.
var ErrInvalidToken = errors.New("invalid token")

// JWTManager issues and verifies the bearer tokens that identify users.
// The secret, signing method and default TTL come from configuration and are
// never mutated after construction.
type JWTManager struct {
	secret []byte
	method *jwt.SigningMethodHMAC
	ttl    time.Duration
}

// NewJWTManager builds a manager for the given HMAC algorithm (HS256, HS384
// or HS512; anything else falls back to HS256) and default token lifetime.
func NewJWTManager(secret, algorithm string, ttl time.Duration) *JWTManager {
	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		method = jwt.SigningMethodHS256
	}
	return &JWTManager{secret: []byte(secret), method: method, ttl: ttl}
}

// TTL returns the configured default token lifetime.
func (m *JWTManager) TTL() time.Duration { return m.ttl }

// Issue signs a token whose subject is the user id, expiring after ttl.
// A zero ttl uses the configured default; a negative ttl produces an
// already-expired token.
func (m *JWTManager) Issue(userID int64, ttl time.Duration) (string, error) {
	if ttl == 0 {
		ttl = m.ttl
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	return jwt.NewWithClaims(m.method, claims).SignedString(m.secret)
}

// Verify checks structure, signature and expiry, and returns the subject
// user id. Any failure maps to ErrInvalidToken; no error from the JWT layer
// escapes this boundary.
func (m *JWTManager) Verify(tokenStr string) (int64, error) {
	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != m.method.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil || !tkn.Valid {
		return 0, ErrInvalidToken
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return id, nil
}
