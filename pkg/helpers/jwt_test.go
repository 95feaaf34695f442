package helpers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTIssueVerify(t *testing.T) {
	m := NewJWTManager("test-secret", "HS256", time.Hour)

	token, err := m.Issue(42, 0)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	id, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestJWTExpired(t *testing.T) {
	m := NewJWTManager("test-secret", "HS256", time.Hour)

	token, err := m.Issue(7, -time.Second)
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTWrongSecret(t *testing.T) {
	issuer := NewJWTManager("secret-a", "HS256", time.Hour)
	verifier := NewJWTManager("secret-b", "HS256", time.Hour)

	token, err := issuer.Issue(7, 0)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTAlgorithmMismatch(t *testing.T) {
	issuer := NewJWTManager("test-secret", "HS512", time.Hour)
	verifier := NewJWTManager("test-secret", "HS256", time.Hour)

	token, err := issuer.Issue(7, 0)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTMalformed(t *testing.T) {
	m := NewJWTManager("test-secret", "HS256", time.Hour)

	for _, raw := range []string{"", "garbage", "a.b.c"} {
		_, err := m.Verify(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestJWTNonNumericSubject(t *testing.T) {
	m := NewJWTManager("test-secret", "HS256", time.Hour)

	claims := jwt.RegisteredClaims{
		Subject:   "not-a-number",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTUnknownAlgorithmFallsBack(t *testing.T) {
	m := NewJWTManager("test-secret", "RS256", time.Hour)

	token, err := m.Issue(1, 0)
	require.NoError(t, err)

	id, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
}
