package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken(42, "secret", time.Now())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := VerifyAccessToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, int32(42), userID)
}

func TestVerifyAccessToken_WrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(42, "secret", time.Now())
	require.NoError(t, err)

	_, err = VerifyAccessToken(token, "other-secret")
	assert.Error(t, err)
}

func TestVerifyAccessToken_Expired(t *testing.T) {
	issued := time.Now().Add(-AccessTokenDuration - time.Hour)
	token, err := GenerateAccessToken(42, "secret", issued)
	require.NoError(t, err)

	_, err = VerifyAccessToken(token, "secret")
	assert.Error(t, err)
}

func TestVerifyAccessToken_Garbage(t *testing.T) {
	_, err := VerifyAccessToken("not-a-token", "secret")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.True(t, ComparePassword(hash, "hunter22"))
	assert.False(t, ComparePassword(hash, "hunter23"))
}

func TestExtractBearerToken(t *testing.T) {
	assert.Equal(t, "abc", extractBearerToken("Bearer abc"))
	assert.Equal(t, "abc", extractBearerToken("bearer abc"))
	assert.Empty(t, extractBearerToken(""))
	assert.Empty(t, extractBearerToken("Basic abc"))
	assert.Empty(t, extractBearerToken("Bearer"))
}
