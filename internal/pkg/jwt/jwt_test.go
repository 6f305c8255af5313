package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestGenerateAndValidate(t *testing.T) {
	token, err := Generate(42, "ADMIN", testSecret, DefaultTTL)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := Validate(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "ADMIN", claims.Role)
}

func TestValidateWrongSecret(t *testing.T) {
	token, err := Generate(1, "STUDENT", testSecret, DefaultTTL)
	require.NoError(t, err)

	_, err = Validate(token, "another-secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateExpiredToken(t *testing.T) {
	token, err := Generate(1, "STUDENT", testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = Validate(token, testSecret)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateGarbage(t *testing.T) {
	_, err := Validate("not-a-token", testSecret)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTTLPolicies(t *testing.T) {
	assert.Equal(t, 7*24*time.Hour, DefaultTTL)
	assert.Equal(t, 24*time.Hour, StudentTTL)

	token, err := Generate(7, "STUDENT", testSecret, StudentTTL)
	require.NoError(t, err)

	claims, err := Validate(token, testSecret)
	require.NoError(t, err)

	remaining := time.Until(claims.ExpiresAt.Time)
	assert.InDelta(t, StudentTTL.Seconds(), remaining.Seconds(), 60)
}
