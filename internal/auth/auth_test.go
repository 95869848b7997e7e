package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	tm := NewTokenManager("test-secret", 0)

	token, err := tm.Issue("64b7f0c2a1d3e4f5a6b7c8d9")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "64b7f0c2a1d3e4f5a6b7c8d9", userID)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	issuedAt := time.Now().Add(-25 * time.Hour)
	tm.now = func() time.Time { return issuedAt }

	token, err := tm.Issue("user-1")
	require.NoError(t, err)

	tm.now = time.Now
	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	other := NewTokenManager("other-secret", 0)
	token, err := other.Issue("user-1")
	require.NoError(t, err)

	_, err = NewTokenManager("test-secret", 0).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsMissingSubject(t *testing.T) {
	claims := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = NewTokenManager("test-secret", 0).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyEmpty(t *testing.T) {
	_, err := NewTokenManager("test-secret", 0).Verify("  ")
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)
	assert.True(t, VerifyPassword("secret1", hash))
	assert.False(t, VerifyPassword("secret2", hash))
}
