package services

import (
	"context"
	"testing"
	"time"

	"matchly/config"
	"matchly/internal/types"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService() *AuthService {
	return NewAuthService(config.Config{JWTSecret: "test-secret", JWTTTLHours: 1})
}

func TestAuthService_IssueAndValidate(t *testing.T) {
	ctx := context.Background()
	service := newTestAuthService()

	issued, err := service.IssueToken(ctx, 42)
	require.NoError(t, err)
	assert.NotEmpty(t, issued.Token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), issued.ExpiresAt, 5*time.Second)

	userID, err := service.ValidateToken(ctx, issued.Token)
	require.NoError(t, err)
	assert.Equal(t, 42, userID)
}

func TestAuthService_ValidateToken_Rejects(t *testing.T) {
	ctx := context.Background()
	service := newTestAuthService()

	issued, err := service.IssueToken(ctx, 42)
	require.NoError(t, err)

	otherSecret := NewAuthService(config.Config{JWTSecret: "other-secret", JWTTTLHours: 1})
	foreign, err := otherSecret.IssueToken(ctx, 42)
	require.NoError(t, err)

	expired := newTestAuthService()
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	stale, err := expired.IssueToken(ctx, 42)
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   "not-a-number",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.token"},
		{"tampered", issued.Token + "x"},
		{"wrong secret", foreign.Token},
		{"expired", stale.Token},
		{"alg none", unsigned},
		{"non numeric subject", badSubject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.ValidateToken(ctx, tt.token)
			assert.ErrorIs(t, err, types.ErrAuthentication)
		})
	}
}

func TestAuthService_Passwords(t *testing.T) {
	service := newTestAuthService()

	hash, err := service.HashPassword("password")
	require.NoError(t, err)
	assert.NotEqual(t, "password", hash)

	assert.True(t, service.CheckPassword(hash, "password"))
	assert.False(t, service.CheckPassword(hash, "wrong"))
	assert.False(t, service.CheckPassword("not-a-hash", "password"))
}
