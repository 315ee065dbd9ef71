// internal/utils/jwt_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := GenerateSessionToken(42, "ramesh", "Seller", 168)
	require.NoError(t, err)

	claims, err := ValidateSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "ramesh", claims.Username)
	assert.Equal(t, "Seller", claims.Role)
}

func TestSessionTokenRejectsWrongSecret(t *testing.T) {
	SetJWTSecret("test-secret")
	token, err := GenerateSessionToken(1, "ramesh", "Seller", 168)
	require.NoError(t, err)

	SetJWTSecret("another-secret")
	_, err = ValidateSessionToken(token)
	assert.Error(t, err)
}

func TestEmailTokenRoundTrip(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := GenerateEmailToken("ramesh@example.com", 24)
	require.NoError(t, err)

	email, err := ValidateEmailToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ramesh@example.com", email)
}

func TestExpiredTokenIsRejected(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := GenerateSessionToken(1, "ramesh", "Seller", -1)
	require.NoError(t, err)

	_, err = ValidateSessionToken(token)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	SetJWTSecret("test-secret")

	_, err := ValidateSessionToken("not.a.token")
	assert.Error(t, err)

	_, err = ValidateEmailToken("")
	assert.Error(t, err)
}
