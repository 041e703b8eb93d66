package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJWTService_AccessTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("access-secret", "refresh-secret")

	token, err := svc.GenerateAccessToken("user-1")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.VerifyAccessToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "user-1", claims.Subject)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestJWTService_RefreshTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("access-secret", "refresh-secret")

	token, err := svc.GenerateRefreshToken("user-1")
	assert.NoError(t, err)

	claims, err := svc.VerifyRefreshToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestJWTService_SecretsAreIndependent(t *testing.T) {
	svc := NewJWTService("access-secret", "refresh-secret")

	accessToken, err := svc.GenerateAccessToken("user-1")
	assert.NoError(t, err)
	refreshToken, err := svc.GenerateRefreshToken("user-1")
	assert.NoError(t, err)

	// Each kind only verifies against its own secret.
	_, err = svc.VerifyRefreshToken(accessToken)
	assert.Error(t, err)
	_, err = svc.VerifyAccessToken(refreshToken)
	assert.Error(t, err)
}

func TestJWTService_RejectsForeignSignature(t *testing.T) {
	svc := NewJWTService("access-secret", "refresh-secret")
	other := NewJWTService("other-access", "other-refresh")

	token, err := other.GenerateAccessToken("user-1")
	assert.NoError(t, err)

	_, err = svc.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	secret := []byte("access-secret")
	token, err := generate("user-1", secret, -time.Minute)
	assert.NoError(t, err)

	_, err = verify(token, secret)
	assert.Error(t, err)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	svc := NewJWTService("access-secret", "refresh-secret")

	_, err := svc.VerifyAccessToken("not-a-jwt")
	assert.Error(t, err)
}
