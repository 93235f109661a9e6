package auth

import (
	"testing"

	"hwreview_backend/internal/config"
	"hwreview_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, CheckPasswordHash("correct horse battery staple", hash))
	assert.False(t, CheckPasswordHash("wrong password", hash))
}

func TestValidatePassword(t *testing.T) {
	assert.Error(t, ValidatePassword("short"))
	assert.NoError(t, ValidatePassword("longenough"))
}

func TestGenerateVerificationToken(t *testing.T) {
	token := GenerateVerificationToken()
	assert.Len(t, token, 32)
	assert.NotEqual(t, token, GenerateVerificationToken())
}

func TestGenerateResetCode(t *testing.T) {
	code := GenerateResetCode()
	require.Len(t, code, 6)
	for _, r := range code {
		assert.True(t, r >= '0' && r <= '9', "code must be digits only, got %q", code)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	config.AppConfig = &config.Config{}
	config.AppConfig.JWT.Secret = "unit-test-secret"
	config.AppConfig.JWT.TTL = 60

	token, err := GenerateToken("user-123", models.UserRoleEditor)
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, models.UserRoleEditor, claims.Role)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	config.AppConfig = &config.Config{}
	config.AppConfig.JWT.Secret = "unit-test-secret"

	_, err := ParseToken("not.a.token")
	assert.Error(t, err)
}
