package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	t.Setenv("JWT_KEY", "round-trip-key")

	token, err := GenerateJWT("user-1", "user@example.com")
	require.NoError(t, err)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
}

func TestJWTKeyReadPerCall(t *testing.T) {
	// The signing key must reflect the environment at call time, not at
	// package init, since the .env file is loaded after init.
	t.Setenv("JWT_KEY", "first-key")
	token, err := GenerateJWT("user-1", "user@example.com")
	require.NoError(t, err)

	t.Setenv("JWT_KEY", "second-key")
	_, err = ValidateJWT(token)
	assert.Error(t, err)

	t.Setenv("JWT_KEY", "first-key")
	_, err = ValidateJWT(token)
	assert.NoError(t, err)
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_KEY", "some-key")

	_, err := ValidateJWT("not-a-token")
	assert.Error(t, err)
}
