package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquaguard/api/internal/core/domain"
)

var testUser = &domain.User{
	ID:    42,
	Email: "alice@example.com",
	Name:  "Alice",
	Roles: []string{domain.RoleUser},
}

func TestJWTIssuer_IssueAndVerify(t *testing.T) {
	issuer := NewJWTIssuer([]byte("test-secret"), 15*time.Minute)

	token, expiresAt, err := issuer.Issue(testUser)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 2*time.Second)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, []string{domain.RoleUser}, claims.Roles)
	assert.WithinDuration(t, expiresAt, claims.ExpiresAt, time.Second)
}

func TestJWTIssuer_RejectsExpiredToken(t *testing.T) {
	issuer := NewJWTIssuer([]byte("test-secret"), -time.Second)

	token, _, err := issuer.Issue(testUser)
	require.NoError(t, err)

	// Expiry is checked with zero leeway: a token past its instant is dead.
	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestJWTIssuer_AcceptsTokenStrictlyBeforeExpiry(t *testing.T) {
	issuer := NewJWTIssuer([]byte("test-secret"), 2*time.Second)

	token, _, err := issuer.Issue(testUser)
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.NoError(t, err)
}

func TestJWTIssuer_RejectsWrongKey(t *testing.T) {
	issuer := NewJWTIssuer([]byte("test-secret"), 15*time.Minute)
	forger := NewJWTIssuer([]byte("other-secret"), 15*time.Minute)

	token, _, err := forger.Issue(testUser)
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestJWTIssuer_RejectsGarbage(t *testing.T) {
	issuer := NewJWTIssuer([]byte("test-secret"), 15*time.Minute)

	_, err := issuer.Verify("not.a.token")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestJWTIssuer_RejectsWrongTokenType(t *testing.T) {
	secret := []byte("test-secret")
	issuer := NewJWTIssuer(secret, 15*time.Minute)

	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(15 * time.Minute)),
		},
		TokenType: "refresh",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestJWTIssuer_RejectsMissingSubject(t *testing.T) {
	secret := []byte("test-secret")
	issuer := NewJWTIssuer(secret, 15*time.Minute)

	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(15 * time.Minute)),
		},
		TokenType: accessTokenType,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
