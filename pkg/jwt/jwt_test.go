package jwt

import (
	"testing"
	"time"

	"clinic-booking-api/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 24 * time.Hour,
	})
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	svc := newTestService()
	userID := uuid.New()

	token, tokenID, err := svc.GenerateAccessToken(userID, "patient@example.com", 4)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, tokenID)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "patient@example.com", claims.Email)
	assert.Equal(t, 4, claims.RoleID)
	assert.Equal(t, AccessToken, claims.TokenType)
	assert.Equal(t, tokenID, claims.TokenID)
}

func TestRefreshTokenHasRefreshType(t *testing.T) {
	svc := newTestService()

	token, _, err := svc.GenerateRefreshToken(uuid.New(), "doctor@example.com", 2)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, RefreshToken, claims.TokenType)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	svc := newTestService()
	other := NewJWTService(config.JWTConfig{Secret: "other-secret", AccessExpiry: time.Minute})

	token, _, err := svc.GenerateAccessToken(uuid.New(), "a@b.c", 1)
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{
		Secret:       "test-secret",
		AccessExpiry: -time.Minute,
	})

	token, _, err := svc.GenerateAccessToken(uuid.New(), "a@b.c", 1)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := newTestService()
	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestTokenIDsAreUnique(t *testing.T) {
	svc := newTestService()
	userID := uuid.New()

	_, first, err := svc.GenerateAccessToken(userID, "a@b.c", 1)
	require.NoError(t, err)
	_, second, err := svc.GenerateAccessToken(userID, "a@b.c", 1)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
